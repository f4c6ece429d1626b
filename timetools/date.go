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

// Package timetools implements the calendar primitives underlying all
// time-indexed computations: Date, Period, Timegrid, Timegrids, and TOY.
package timetools

import (
	"fmt"
	"time"
)

// Date styles supported by Format and ParseDate.
const (
	StyleOS  = "os"  // 1997_08_01_00_00_00 (machine sortable)
	StyleISO = "iso" // 1997-08-01T00:00:00
	StyleDIN = "din" // 01.08.1997 00:00:00
)

var dateLayouts = map[string]string{
	StyleOS:  "2006_01_02_15_04_05",
	StyleISO: "2006-01-02T15:04:05",
	StyleDIN: "02.01.2006 15:04:05",
}

// Date is a timestamp truncated to whole seconds.  The zero value is not
// a usable date; construct dates with NewDate or ParseDate.
type Date struct {
	t time.Time
}

// NewDate wraps a time.Time as a Date.  Sub-second precision is rejected
// because one second is the finest granularity of the simulation time axis.
func NewDate(t time.Time) (Date, error) {
	if t.Nanosecond() != 0 {
		return Date{}, fmt.Errorf(
			"timetools: date %v contains a fraction of a second; "+
				"whole seconds are the finest supported granularity", t)
	}
	return Date{t: t.UTC()}, nil
}

// MustDate is like NewDate but panics on error.  It is intended for
// constants in tests and examples.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses a date string in any of the three supported styles
// (StyleOS, StyleISO, StyleDIN).  The ISO style also accepts a space
// instead of the "T" separator.
func ParseDate(s string) (Date, error) {
	tries := []string{
		dateLayouts[StyleISO],
		"2006-01-02 15:04:05",
		"2006-01-02",
		dateLayouts[StyleOS],
		dateLayouts[StyleDIN],
	}
	for _, layout := range tries {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Date{t: t}, nil
		}
	}
	return Date{}, fmt.Errorf(
		"timetools: date string %q matches neither the `os` style (%s), "+
			"the `iso` style (%s), nor the `din` style (%s)",
		s, dateLayouts[StyleOS], dateLayouts[StyleISO], dateLayouts[StyleDIN])
}

// Time returns the underlying time.Time (always UTC).
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether d is the (unusable) zero date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Add returns the date shifted forward by p.
func (d Date) Add(p Period) Date { return Date{t: d.t.Add(p.d)} }

// SubPeriod returns the date shifted backward by p.
func (d Date) SubPeriod(p Period) Date { return Date{t: d.t.Add(-p.d)} }

// Sub returns the period between d and the (earlier) date o.
func (d Date) Sub(o Date) Period { return Period{d: d.t.Sub(o.t)} }

// Equal reports whether both dates denote the same instant.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// Before reports whether d lies before o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After reports whether d lies after o.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Compare returns -1, 0, or +1 depending on the temporal order of d and o.
func (d Date) Compare(o Date) int { return d.t.Compare(o.t) }

// Format renders the date in the requested style.
func (d Date) Format(style string) (string, error) {
	layout, ok := dateLayouts[style]
	if !ok {
		return "", fmt.Errorf(
			"timetools: date style %q is not implemented, choose one of: "+
				"`os`, `iso`, `din`", style)
	}
	return d.t.Format(layout), nil
}

func (d Date) String() string {
	return d.t.Format(dateLayouts[StyleISO])
}
