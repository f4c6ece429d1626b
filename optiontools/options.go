/*
Copyright © 2024 the HydPy authors.
This file is part of HydPy.

HydPy is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

HydPy is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with HydPy.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package optiontools provides the configuration knobs of the variable
// management core.  Each option supports permanent assignment, deletion
// (restoring a fixed default), and scoped temporary overrides through a
// restore function intended for deferred invocation, so the previous
// value comes back even when the guarded block panics.
package optiontools

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/hydpy-dev/hydpy-sub001/timetools"
)

// Option is one named configuration value of type T.  Raw assignments
// pass through a cast-based converter and an optional validator.
type Option[T any] struct {
	name     string
	dflt     T
	value    T
	convert  func(any) (T, error)
	validate func(T) error
}

func newOption[T any](name string, dflt T,
	convert func(any) (T, error), validate func(T) error) *Option[T] {
	return &Option[T]{
		name:     name,
		dflt:     dflt,
		value:    dflt,
		convert:  convert,
		validate: validate,
	}
}

// Name returns the option name.
func (o *Option[T]) Name() string { return o.name }

// Value returns the current value.
func (o *Option[T]) Value() T { return o.value }

// Default returns the fixed default value.
func (o *Option[T]) Default() T { return o.dflt }

// Set converts, validates, and permanently assigns the given value.
func (o *Option[T]) Set(raw any) error {
	value, err := o.convert(raw)
	if err != nil {
		return fmt.Errorf(
			"while trying to assign %v to option `%s`: %w", raw, o.name, err)
	}
	if o.validate != nil {
		if err := o.validate(value); err != nil {
			return fmt.Errorf(
				"while trying to assign %v to option `%s`: %w",
				raw, o.name, err)
		}
	}
	o.value = value
	return nil
}

// Delete restores the fixed default value.
func (o *Option[T]) Delete() {
	o.value = o.dflt
}

// Scoped installs the given value temporarily and returns a restore
// function to be deferred by the caller.  Passing nil re-enters with the
// current value, which locks in the present state without changing it.
// Conversion and validation apply exactly as for Set.
func (o *Option[T]) Scoped(raw any) (restore func(), err error) {
	previous := o.value
	if raw != nil {
		if err := o.Set(raw); err != nil {
			return nil, err
		}
	}
	return func() { o.value = previous }, nil
}

func convertBool(raw any) (bool, error)     { return cast.ToBoolE(raw) }
func convertInt(raw any) (int, error)       { return cast.ToIntE(raw) }
func convertString(raw any) (string, error) { return cast.ToStringE(raw) }

func convertPeriod(raw any) (timetools.Period, error) {
	switch v := raw.(type) {
	case timetools.Period:
		return v, nil
	case time.Duration:
		return timetools.NewPeriod(v)
	case string:
		return timetools.ParsePeriod(v)
	}
	return timetools.Period{}, fmt.Errorf(
		"a value of type %T cannot be converted to a period", raw)
}

func enumValidator(choices ...string) func(string) error {
	return func(value string) error {
		for _, choice := range choices {
			if value == choice {
				return nil
			}
		}
		return fmt.Errorf(
			"the value `%s` is not implemented, choose one of: `%s`",
			value, strings.Join(choices, "`, `"))
	}
}

// NewBoolOption creates a boolean option.
func NewBoolOption(name string, dflt bool) *Option[bool] {
	return newOption(name, dflt, convertBool, nil)
}

// NewIntOption creates an integer option.
func NewIntOption(name string, dflt int) *Option[int] {
	return newOption(name, dflt, convertInt, nil)
}

// NewStringOption creates a string option restricted to the given
// choices (no restriction when choices is empty).
func NewStringOption(name, dflt string, choices ...string) *Option[string] {
	var validate func(string) error
	if len(choices) > 0 {
		validate = enumValidator(choices...)
	}
	return newOption(name, dflt, convertString, validate)
}

// NewPeriodOption creates a period option accepting Period, Duration,
// and string values.
func NewPeriodOption(name string, dflt timetools.Period) *Option[timetools.Period] {
	return newOption(name, dflt, convertPeriod, nil)
}

// SimulationstepOption derives its value from the published time grids
// whenever they are available and only consults its own stored value
// otherwise.
type SimulationstepOption struct {
	opt       *Option[timetools.Period]
	timegrids func() *timetools.Timegrids
}

// NewSimulationstepOption creates the step-size option.  The timegrids
// callback reports the currently published grids (nil when absent).
func NewSimulationstepOption(
	timegrids func() *timetools.Timegrids) *SimulationstepOption {
	return &SimulationstepOption{
		opt:       NewPeriodOption("simulationstep", timetools.Period{}),
		timegrids: timegrids,
	}
}

// Value returns the published grids' step size when grids are available,
// else the stored fallback value.
func (o *SimulationstepOption) Value() timetools.Period {
	if o.timegrids != nil {
		if tgs := o.timegrids(); tgs != nil {
			return tgs.Sim.Step
		}
	}
	return o.opt.Value()
}

// Set assigns the fallback value consulted while no grids are published.
func (o *SimulationstepOption) Set(raw any) error { return o.opt.Set(raw) }

// Delete clears the fallback value.
func (o *SimulationstepOption) Delete() { o.opt.Delete() }

// Scoped temporarily overrides the fallback value.
func (o *SimulationstepOption) Scoped(raw any) (func(), error) {
	return o.opt.Scoped(raw)
}

// Options is the registry of all configuration knobs of one simulation
// run.  It is designed for single-threaded use; the scoped-override
// idiom is a save-restore convenience, not a lock.
type Options struct {
	// CheckSeries controls whether time series are checked for missing
	// values when loaded.
	CheckSeries *Option[bool]
	// TrimVariables globally enables or disables trimming.
	TrimVariables *Option[bool]
	// WarnTrim controls whether trimming adjustments beyond tolerance
	// emit warnings.
	WarnTrim *Option[bool]
	// UseDefaultValues controls whether freshly shaped variables count
	// their default fill as a complete value.
	UseDefaultValues *Option[bool]
	// ReprDigits is the number of decimal digits used when printing
	// floating point values (negative means full precision).
	ReprDigits *Option[int]
	// Ellipsis is the number of leading and trailing array entries shown
	// when printing large arrays.
	Ellipsis *Option[int]
	// SeriesFileType selects the file format of the (external) time
	// series persistence layer.
	SeriesFileType *Option[string]
	// SeriesAggregation selects how time series are aggregated by the
	// (external) persistence layer.
	SeriesAggregation *Option[string]
	// Simulationstep is the active step size, derived from the published
	// time grids whenever available.
	Simulationstep *SimulationstepOption
}

// NewOptions creates an options registry with all defaults in place.
// The timegrids callback (which may be nil) connects the Simulationstep
// option to the published time grids.
func NewOptions(timegrids func() *timetools.Timegrids) *Options {
	return &Options{
		CheckSeries:      NewBoolOption("checkseries", true),
		TrimVariables:    NewBoolOption("trimvariables", true),
		WarnTrim:         NewBoolOption("warntrim", true),
		UseDefaultValues: NewBoolOption("usedefaultvalues", false),
		ReprDigits:       NewIntOption("reprdigits", -1),
		Ellipsis:         NewIntOption("ellipsis", -999),
		SeriesFileType: NewStringOption(
			"seriesfiletype", "npy", "npy", "asc", "nc"),
		SeriesAggregation: NewStringOption(
			"seriesaggregation", "none", "none", "mean"),
		Simulationstep: NewSimulationstepOption(timegrids),
	}
}
