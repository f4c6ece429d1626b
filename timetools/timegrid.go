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

package timetools

import (
	"fmt"
	"time"
)

// Timegrid defines a regular time axis through its first date, its last
// date, and its step size.
type Timegrid struct {
	First Date
	Last  Date
	Step  Period
}

// NewTimegrid creates and verifies a time grid.
func NewTimegrid(first, last Date, step Period) (*Timegrid, error) {
	tg := &Timegrid{First: first, Last: last, Step: step}
	if err := tg.Verify(); err != nil {
		return nil, err
	}
	return tg, nil
}

// Verify checks that the step size is positive, that the first date
// precedes the last date, and that the covered span is an exact integer
// multiple of the step size.
func (tg *Timegrid) Verify() error {
	if tg.Step.Seconds() <= 0 {
		return fmt.Errorf(
			"timetools: the step size of timegrid %v must cover at least "+
				"one second", tg)
	}
	if !tg.First.Before(tg.Last) {
		return fmt.Errorf(
			"timetools: the first date of timegrid %v must precede its "+
				"last date", tg)
	}
	if span := tg.Last.Sub(tg.First); span.NotDivisibleBy(tg.Step) {
		return fmt.Errorf(
			"timetools: the span of timegrid %v (%v) is not an integer "+
				"multiple of its step size (%v)", tg, span, tg.Step)
	}
	return nil
}

// Len returns the number of time steps covered by the grid.
func (tg *Timegrid) Len() int {
	return int(tg.Last.Sub(tg.First).Seconds() / tg.Step.Seconds())
}

// Date converts a step index into the corresponding date.  Indices
// outside the grid's own bounds extrapolate without error.
func (tg *Timegrid) Date(index int) Date {
	shift := time.Duration(int64(index)*tg.Step.Seconds()) * time.Second
	return Date{t: tg.First.Time().Add(shift)}
}

// Index converts a date into the corresponding step index.  Dates that do
// not fall exactly on a grid line are rejected.
func (tg *Timegrid) Index(date Date) (int, error) {
	diff := date.Sub(tg.First)
	if diff.Seconds()%tg.Step.Seconds() != 0 {
		return 0, fmt.Errorf(
			"timetools: date %v does not fall on a grid line of timegrid %v",
			date, tg)
	}
	return int(diff.Seconds() / tg.Step.Seconds()), nil
}

// Contains reports whether the given date lies within the grid's bounds
// and aligns exactly with its step size.
func (tg *Timegrid) Contains(date Date) bool {
	if date.Before(tg.First) || date.After(tg.Last) {
		return false
	}
	return date.Sub(tg.First).Seconds()%tg.Step.Seconds() == 0
}

// ContainsGrid reports whether the other grid nests wholly within tg:
// both its endpoints must be contained and the step sizes must agree.
func (tg *Timegrid) ContainsGrid(other *Timegrid) bool {
	if !tg.Step.Equal(other.Step) {
		return false
	}
	return tg.Contains(other.First) && tg.Contains(other.Last)
}

// Equal reports whether both grids describe the same time axis.
func (tg *Timegrid) Equal(other *Timegrid) bool {
	if other == nil {
		return false
	}
	return tg.First.Equal(other.First) &&
		tg.Last.Equal(other.Last) &&
		tg.Step.Equal(other.Step)
}

func (tg *Timegrid) String() string {
	return fmt.Sprintf("Timegrid(%v, %v, %v)", tg.First, tg.Last, tg.Step)
}

// ToArray returns the flat 13-number encoding consumed by the
// persistence layer: six numbers for the first date, six for the last
// date, and the step size in seconds.
func (tg *Timegrid) ToArray() [13]float64 {
	var a [13]float64
	for i, d := range []Date{tg.First, tg.Last} {
		t := d.Time()
		a[6*i+0] = float64(t.Year())
		a[6*i+1] = float64(t.Month())
		a[6*i+2] = float64(t.Day())
		a[6*i+3] = float64(t.Hour())
		a[6*i+4] = float64(t.Minute())
		a[6*i+5] = float64(t.Second())
	}
	a[12] = float64(tg.Step.Seconds())
	return a
}

// TimegridFromArray reverses ToArray.
func TimegridFromArray(a [13]float64) (*Timegrid, error) {
	dates := make([]Date, 2)
	for i := range dates {
		t := time.Date(int(a[6*i]), time.Month(a[6*i+1]), int(a[6*i+2]),
			int(a[6*i+3]), int(a[6*i+4]), int(a[6*i+5]), 0, time.UTC)
		dates[i] = Date{t: t}
	}
	step, err := NewPeriod(time.Duration(a[12]) * time.Second)
	if err != nil {
		return nil, fmt.Errorf(
			"timetools: while trying to decode the step size of a "+
				"13-number timegrid encoding: %w", err)
	}
	return NewTimegrid(dates[0], dates[1], step)
}

// Timegrids bundles the initialisation grid covering the full data
// horizon and the simulation grid covering the active sub-window.
type Timegrids struct {
	Init *Timegrid
	Sim  *Timegrid
}

// NewTimegrids creates and verifies a Timegrids object.  Passing a nil
// simulation grid selects the complete initialisation grid.
func NewTimegrids(init, sim *Timegrid) (*Timegrids, error) {
	if sim == nil {
		simCopy := *init
		sim = &simCopy
	}
	tgs := &Timegrids{Init: init, Sim: sim}
	if err := tgs.Verify(); err != nil {
		return nil, err
	}
	return tgs, nil
}

// Verify checks that the simulation grid nests within the initialisation
// grid with an identical and aligned step size.
func (tgs *Timegrids) Verify() error {
	if err := tgs.Init.Verify(); err != nil {
		return fmt.Errorf(
			"timetools: while trying to verify the initialisation grid: %w", err)
	}
	if err := tgs.Sim.Verify(); err != nil {
		return fmt.Errorf(
			"timetools: while trying to verify the simulation grid: %w", err)
	}
	if !tgs.Init.ContainsGrid(tgs.Sim) {
		return fmt.Errorf(
			"timetools: the simulation grid %v is not properly nested "+
				"within the initialisation grid %v (the endpoints must lie "+
				"within the initialisation horizon and both step sizes "+
				"must agree and align)", tgs.Sim, tgs.Init)
	}
	return nil
}

// Equal reports whether both objects describe the same pair of grids.
func (tgs *Timegrids) Equal(other *Timegrids) bool {
	if other == nil {
		return false
	}
	return tgs.Init.Equal(other.Init) && tgs.Sim.Equal(other.Sim)
}

func (tgs *Timegrids) String() string {
	return fmt.Sprintf("Timegrids(init=%v, sim=%v)", tgs.Init, tgs.Sim)
}
