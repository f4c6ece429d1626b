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

package hydpy

import (
	"fmt"

	"github.com/hydpy-dev/hydpy-sub001/timetools"
)

// Indexer caches per-timestep integer arrays derived from the published
// initialisation time grid: month of year, day of year, time of year,
// and the standard clock time.  The cache is recomputed whenever the
// published time grids differ from the ones it was computed from.
type Indexer struct {
	grids *timetools.Timegrids

	monthOfYear       []int
	dayOfYear         []int
	timeOfYear        []int
	standardClockTime []float64
}

// refresh recomputes all derived arrays if the published grids changed.
func (ix *Indexer) refresh(p *Pub) error {
	grids, err := p.Timegrids()
	if err != nil {
		return fmt.Errorf(
			"while trying to derive indices from the published time "+
				"grids: %w", err)
	}
	if ix.grids != nil && ix.grids.Equal(grids) {
		return nil
	}
	init := grids.Init
	n := init.Len()
	stepSecs := init.Step.Seconds()
	halfStep := init.Step.Seconds() / 2
	ix.monthOfYear = make([]int, n)
	ix.dayOfYear = make([]int, n)
	ix.timeOfYear = make([]int, n)
	ix.standardClockTime = make([]float64, n)
	for i := 0; i < n; i++ {
		date := init.Date(i)
		ix.monthOfYear[i] = int(date.Time().Month())
		ix.dayOfYear[i] = int(timetools.TOYFromDate(date).SecondsPassed() / 86400)
		centreSecs := timetools.TOYFromDate(date).SecondsPassed() + halfStep
		centreSecs %= timetools.SecondsPerYear
		ix.timeOfYear[i] = int(centreSecs / stepSecs)
		clockSecs := int64(date.Time().Hour())*3600 +
			int64(date.Time().Minute())*60 +
			int64(date.Time().Second()) + halfStep
		clockSecs %= 86400
		ix.standardClockTime[i] = float64(clockSecs) / 3600
	}
	// Copy the grid values themselves so that in-place mutation of the
	// published grids cannot bypass the change detection above.
	initCopy, simCopy := *grids.Init, *grids.Sim
	ix.grids = &timetools.Timegrids{Init: &initCopy, Sim: &simCopy}
	return nil
}

// MonthOfYear returns the month (1 to 12) of every timestep of the
// initialisation grid.
func (ix *Indexer) MonthOfYear(p *Pub) ([]int, error) {
	if err := ix.refresh(p); err != nil {
		return nil, err
	}
	return ix.monthOfYear, nil
}

// DayOfYear returns the zero-based day of the year of every timestep,
// with February 29th mapping onto February 28th.
func (ix *Indexer) DayOfYear(p *Pub) ([]int, error) {
	if err := ix.refresh(p); err != nil {
		return nil, err
	}
	return ix.dayOfYear, nil
}

// TimeOfYear returns, for every timestep, the index of its centred time
// of year within one calendar year discretised at the step size.
func (ix *Indexer) TimeOfYear(p *Pub) ([]int, error) {
	if err := ix.refresh(p); err != nil {
		return nil, err
	}
	return ix.timeOfYear, nil
}

// StandardClockTime returns, for every timestep, the clock time of its
// interval centre in hours.
func (ix *Indexer) StandardClockTime(p *Pub) ([]float64, error) {
	if err := ix.refresh(p); err != nil {
		return nil, err
	}
	return ix.standardClockTime, nil
}
