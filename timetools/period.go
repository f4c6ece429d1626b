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
	"math"
	"strconv"
	"time"
)

// Period is a duration truncated to whole seconds.
type Period struct {
	d time.Duration
}

// NewPeriod wraps a time.Duration as a Period.  Durations that are not a
// whole number of seconds are rejected.
func NewPeriod(d time.Duration) (Period, error) {
	if d%time.Second != 0 {
		return Period{}, fmt.Errorf(
			"timetools: period %v contains a fraction of a second; "+
				"whole seconds are the finest supported granularity", d)
	}
	return Period{d: d}, nil
}

// ParsePeriod parses strings like "1d", "12h", "30m", or "90s".
func ParsePeriod(s string) (Period, error) {
	if len(s) < 2 {
		return Period{}, fmt.Errorf(
			"timetools: period string %q is too short; expected an integer "+
				"followed by one of the unit letters `d`, `h`, `m`, or `s`", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Period{}, fmt.Errorf(
			"timetools: period string %q does not start with an integer: %w", s, err)
	}
	var factor time.Duration
	switch s[len(s)-1] {
	case 'd':
		factor = 24 * time.Hour
	case 'h':
		factor = time.Hour
	case 'm':
		factor = time.Minute
	case 's':
		factor = time.Second
	default:
		return Period{}, fmt.Errorf(
			"timetools: period string %q ends with %q; expected one of the "+
				"unit letters `d`, `h`, `m`, or `s`", s, s[len(s)-1:])
	}
	return Period{d: time.Duration(n) * factor}, nil
}

// MustPeriod is like ParsePeriod but panics on error.
func MustPeriod(s string) Period {
	p, err := ParsePeriod(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Duration returns the underlying time.Duration.
func (p Period) Duration() time.Duration { return p.d }

// Seconds returns the number of whole seconds.
func (p Period) Seconds() int64 { return int64(p.d / time.Second) }

// IsZero reports whether the period is empty.
func (p Period) IsZero() bool { return p.d == 0 }

// Add returns the sum of both periods.
func (p Period) Add(o Period) Period { return Period{d: p.d + o.d} }

// Sub returns the difference of both periods.
func (p Period) Sub(o Period) Period { return Period{d: p.d - o.d} }

// Neg returns the negated period.
func (p Period) Neg() Period { return Period{d: -p.d} }

// Times scales the period by the given factor.  The result must again be
// a whole number of seconds.
func (p Period) Times(factor float64) (Period, error) {
	secs := float64(p.Seconds()) * factor
	if secs != math.Trunc(secs) {
		return Period{}, fmt.Errorf(
			"timetools: period %v times %v is not a whole number of seconds",
			p, factor)
	}
	return Period{d: time.Duration(secs) * time.Second}, nil
}

// Ratio returns the dimensionless quotient of both periods.
func (p Period) Ratio(o Period) float64 {
	return float64(p.d) / float64(o.d)
}

// DivisibleBy reports whether p is an exact integer multiple of o.  The
// original system answered this question through its floor-division
// operator; the boolean result is intentional.  Nothing is divisible by
// an empty period.
func (p Period) DivisibleBy(o Period) bool {
	if o.IsZero() {
		return false
	}
	return p.d%o.d == 0
}

// NotDivisibleBy is the negation of DivisibleBy, mirroring the original
// system's modulo operator, which likewise returned a boolean.
func (p Period) NotDivisibleBy(o Period) bool {
	return !p.DivisibleBy(o)
}

// Equal reports whether both periods have the same length.
func (p Period) Equal(o Period) bool { return p.d == o.d }

// Less reports whether p is shorter than o.
func (p Period) Less(o Period) bool { return p.d < o.d }

// Compare returns -1, 0, or +1 depending on the order of p and o.
func (p Period) Compare(o Period) int {
	switch {
	case p.d < o.d:
		return -1
	case p.d > o.d:
		return 1
	}
	return 0
}

// String selects the coarsest unit (day, hour, minute, second) that
// yields an integer magnitude.
func (p Period) String() string {
	secs := p.Seconds()
	neg := ""
	if secs < 0 {
		neg = "-"
		secs = -secs
	}
	switch {
	case secs == 0:
		return "0s"
	case secs%86400 == 0:
		return fmt.Sprintf("%s%dd", neg, secs/86400)
	case secs%3600 == 0:
		return fmt.Sprintf("%s%dh", neg, secs/3600)
	case secs%60 == 0:
		return fmt.Sprintf("%s%dm", neg, secs/60)
	}
	return fmt.Sprintf("%s%ds", neg, secs)
}
