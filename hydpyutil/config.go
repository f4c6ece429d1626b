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

package hydpyutil

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hydpy-dev/hydpy-sub001"
	"github.com/hydpy-dev/hydpy-sub001/optiontools"
	"github.com/hydpy-dev/hydpy-sub001/timetools"
)

// RunConfig is the TOML description of one simulation run: the
// initialisation horizon, an optional simulation sub-window, option
// overrides, and the registered seasonal interpolation algorithms.
type RunConfig struct {
	FirstDate string `toml:"firstdate"`
	LastDate  string `toml:"lastdate"`
	StepSize  string `toml:"stepsize"`

	Sim *SimWindow `toml:"sim"`

	Options map[string]interface{} `toml:"options"`

	Interpolators []InterpolatorConfig `toml:"interpolator"`
}

// SimWindow restricts the simulation period to a sub-window of the
// initialisation horizon.
type SimWindow struct {
	FirstDate string `toml:"firstdate"`
	LastDate  string `toml:"lastdate"`
}

// InterpolatorConfig registers one constant-output network at one time
// of year.
type InterpolatorConfig struct {
	TOY        string    `toml:"toy"`
	Intercepts []float64 `toml:"intercepts"`
}

// ReadRunConfig decodes the TOML run configuration at the given path.
func ReadRunConfig(path string) (*RunConfig, error) {
	c := new(RunConfig)
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf(
			"hydpy: problem reading configuration file %s: %w", path, err)
	}
	return c, nil
}

// Timegrids builds the initialisation and simulation grids described by
// the configuration.
func (c *RunConfig) Timegrids() (*timetools.Timegrids, error) {
	first, err := timetools.ParseDate(c.FirstDate)
	if err != nil {
		return nil, fmt.Errorf("hydpy: firstdate: %w", err)
	}
	last, err := timetools.ParseDate(c.LastDate)
	if err != nil {
		return nil, fmt.Errorf("hydpy: lastdate: %w", err)
	}
	step, err := timetools.ParsePeriod(c.StepSize)
	if err != nil {
		return nil, fmt.Errorf("hydpy: stepsize: %w", err)
	}
	init, err := timetools.NewTimegrid(first, last, step)
	if err != nil {
		return nil, err
	}
	var sim *timetools.Timegrid
	if c.Sim != nil {
		simFirst, err := timetools.ParseDate(c.Sim.FirstDate)
		if err != nil {
			return nil, fmt.Errorf("hydpy: sim.firstdate: %w", err)
		}
		simLast, err := timetools.ParseDate(c.Sim.LastDate)
		if err != nil {
			return nil, fmt.Errorf("hydpy: sim.lastdate: %w", err)
		}
		sim, err = timetools.NewTimegrid(simFirst, simLast, step)
		if err != nil {
			return nil, err
		}
	}
	return timetools.NewTimegrids(init, sim)
}

// Publish builds the configured time grids, publishes them on the given
// context, and applies all option overrides.
func (c *RunConfig) Publish(pub *hydpy.Pub) error {
	tgs, err := c.Timegrids()
	if err != nil {
		return err
	}
	if err := pub.SetTimegrids(tgs); err != nil {
		return err
	}
	for name, value := range c.Options {
		if err := applyOption(pub.Options, name, value); err != nil {
			return err
		}
	}
	return nil
}

// Interpolator builds the configured seasonal blend.  All registered
// networks are constant-output ones defined by their output intercepts.
func (c *RunConfig) Interpolator(pub *hydpy.Pub) (
	*hydpy.SeasonalInterpolator, error) {
	if len(c.Interpolators) == 0 {
		return nil, fmt.Errorf(
			"hydpy: the configuration file defines no [[interpolator]] tables")
	}
	si := hydpy.NewSeasonalInterpolator(pub)
	for _, ic := range c.Interpolators {
		ann := hydpy.NewANN(0, 0, len(ic.Intercepts))
		copy(ann.InterceptsOutput, ic.Intercepts)
		if err := si.Add(ic.TOY, ann); err != nil {
			return nil, err
		}
	}
	return si, nil
}

// applyOption routes a raw override from the configuration file to the
// matching registry knob.
func applyOption(opts *optiontools.Options, name string, value interface{}) error {
	switch strings.ToLower(name) {
	case "checkseries":
		return opts.CheckSeries.Set(value)
	case "trimvariables":
		return opts.TrimVariables.Set(value)
	case "warntrim":
		return opts.WarnTrim.Set(value)
	case "usedefaultvalues":
		return opts.UseDefaultValues.Set(value)
	case "reprdigits":
		return opts.ReprDigits.Set(value)
	case "ellipsis":
		return opts.Ellipsis.Set(value)
	case "seriesfiletype":
		return opts.SeriesFileType.Set(value)
	case "seriesaggregation":
		return opts.SeriesAggregation.Set(value)
	case "simulationstep":
		return opts.Simulationstep.Set(value)
	}
	return fmt.Errorf("hydpy: the configuration file addresses the "+
		"unknown option `%s`", name)
}
