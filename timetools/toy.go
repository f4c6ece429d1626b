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
	"strconv"
	"strings"
	"time"
)

// SecondsPerYear is the length of the non-leap reference year all TOY
// arithmetic is based on.
const SecondsPerYear int64 = 365 * 86400

// All TOY calculations refer to a non-leap year, so February 29th does
// not exist.
var daysPerMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// TOY ("time of year") is a (month, day, hour, minute, second) tuple with
// the year stripped out, used for periodic and seasonal indexing.
type TOY struct {
	month, day, hour, minute, second int
}

// NewTOY parses strings like "3_13_23_33_43" or "toy_3_13".  An optional
// non-numeric prefix before the first number is ignored.  Omitted
// trailing components default to 1 (month, day) or 0 (hour, minute,
// second).
func NewTOY(s string) (TOY, error) {
	t := TOY{month: 1, day: 1}
	parts := strings.Split(s, "_")
	for len(parts) > 0 {
		if _, err := strconv.Atoi(parts[0]); err == nil {
			break
		}
		parts = parts[1:]
	}
	if len(parts) > 5 {
		return TOY{}, fmt.Errorf(
			"timetools: the TOY string %q contains %d numeric components, "+
				"but at most five (month_day_hour_minute_second) are allowed",
			s, len(parts))
	}
	setters := []func(int) error{
		t.SetMonth, t.SetDay, t.SetHour, t.SetMinute, t.SetSecond,
	}
	for i, part := range parts {
		if part == "" {
			continue
		}
		value, err := strconv.Atoi(part)
		if err != nil {
			return TOY{}, fmt.Errorf(
				"timetools: while trying to parse component %d of the TOY "+
					"string %q: %w", i+1, s, err)
		}
		if err := setters[i](value); err != nil {
			return TOY{}, fmt.Errorf(
				"timetools: while trying to initialise a TOY from string "+
					"%q: %w", s, err)
		}
	}
	return t, nil
}

// MustTOY is like NewTOY but panics on error.
func MustTOY(s string) TOY {
	t, err := NewTOY(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TOYFromDate drops the year of the given date.  February 29th of leap
// years maps onto February 28th.
func TOYFromDate(d Date) TOY {
	t := d.Time()
	day := t.Day()
	if t.Month() == time.February && day == 29 {
		day = 28
	}
	return TOY{
		month:  int(t.Month()),
		day:    day,
		hour:   t.Hour(),
		minute: t.Minute(),
		second: t.Second(),
	}
}

// Month returns the month component.
func (t TOY) Month() int { return t.month }

// Day returns the day component.
func (t TOY) Day() int { return t.day }

// Hour returns the hour component.
func (t TOY) Hour() int { return t.hour }

// Minute returns the minute component.
func (t TOY) Minute() int { return t.minute }

// Second returns the second component.
func (t TOY) Second() int { return t.second }

// SetMonth assigns the month.  When a day is already defined, it must
// remain valid within the new month.
func (t *TOY) SetMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf(
			"timetools: month %d of TOY %v lies outside the range [1, 12]",
			month, t)
	}
	if t.day > daysPerMonth[month] {
		return fmt.Errorf(
			"timetools: the already defined day %d of TOY %v would become "+
				"invalid within month %d, which has only %d days",
			t.day, t, month, daysPerMonth[month])
	}
	t.month = month
	return nil
}

// SetDay assigns the day, validated against the actual length of the
// current month (February is capped at 28 days).
func (t *TOY) SetDay(day int) error {
	if day < 1 || day > daysPerMonth[t.month] {
		return fmt.Errorf(
			"timetools: day %d of TOY %v lies outside the range [1, %d] "+
				"valid for month %d", day, t, daysPerMonth[t.month], t.month)
	}
	t.day = day
	return nil
}

// SetHour assigns the hour.
func (t *TOY) SetHour(hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf(
			"timetools: hour %d of TOY %v lies outside the range [0, 23]",
			hour, t)
	}
	t.hour = hour
	return nil
}

// SetMinute assigns the minute.
func (t *TOY) SetMinute(minute int) error {
	if minute < 0 || minute > 59 {
		return fmt.Errorf(
			"timetools: minute %d of TOY %v lies outside the range [0, 59]",
			minute, t)
	}
	t.minute = minute
	return nil
}

// SetSecond assigns the second.
func (t *TOY) SetSecond(second int) error {
	if second < 0 || second > 59 {
		return fmt.Errorf(
			"timetools: second %d of TOY %v lies outside the range [0, 59]",
			second, t)
	}
	t.second = second
	return nil
}

// SecondsPassed returns the number of seconds between the beginning of
// the (non-leap) reference year and the moment the TOY describes.
func (t TOY) SecondsPassed() int64 {
	days := int64(t.day - 1)
	for month := 1; month < t.month; month++ {
		days += int64(daysPerMonth[month])
	}
	return days*86400 + int64(t.hour)*3600 + int64(t.minute)*60 + int64(t.second)
}

// Sub returns the seconds until the next occurrence of t at or after o's
// position within the year.  The result wraps forward across the year
// boundary and is never negative.
func (t TOY) Sub(o TOY) Period {
	diff := t.SecondsPassed() - o.SecondsPassed()
	if diff < 0 {
		diff += SecondsPerYear
	}
	return Period{d: time.Duration(diff) * time.Second}
}

// Equal reports whether both TOYs describe the same moment of the year.
func (t TOY) Equal(o TOY) bool {
	return t.SecondsPassed() == o.SecondsPassed()
}

// Less reports whether t occurs earlier within the year than o.
func (t TOY) Less(o TOY) bool {
	return t.SecondsPassed() < o.SecondsPassed()
}

// Compare returns -1, 0, or +1 depending on the position of t and o
// within the year.
func (t TOY) Compare(o TOY) int {
	a, b := t.SecondsPassed(), o.SecondsPassed()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (t TOY) String() string {
	return fmt.Sprintf("toy_%d_%d_%d_%d_%d",
		t.month, t.day, t.hour, t.minute, t.second)
}

// CenteredTOYs returns the mid-interval TOYs of one calendar year
// discretised at the given step size.  These are the query points for
// which seasonal interpolation weights are precomputed.  The step size
// must divide the year into a whole number of intervals.
func CenteredTOYs(step Period) ([]TOY, error) {
	secs := step.Seconds()
	if secs <= 0 || SecondsPerYear%secs != 0 {
		return nil, fmt.Errorf(
			"timetools: step size %v does not divide one year into a whole "+
				"number of intervals", step)
	}
	ref := time.Date(2005, time.January, 1, 0, 0, 0, 0, time.UTC)
	n := int(SecondsPerYear / secs)
	toys := make([]TOY, n)
	for i := 0; i < n; i++ {
		centre := ref.Add(time.Duration(int64(i)*secs)*time.Second +
			time.Duration(secs/2)*time.Second)
		toys[i] = TOYFromDate(Date{t: centre})
	}
	return toys, nil
}
