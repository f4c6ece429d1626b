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
	"strings"
	"testing"
	"time"
)

func TestDateParseAndFormat(t *testing.T) {
	for _, s := range []string{
		"1997-08-01T00:00:00",
		"1997-08-01 00:00:00",
		"1997_08_01_00_00_00",
		"01.08.1997 00:00:00",
	} {
		d, err := ParseDate(s)
		if err != nil {
			t.Fatalf("parsing %q: %v", s, err)
		}
		if have, want := d.String(), "1997-08-01T00:00:00"; have != want {
			t.Errorf("have %q, want %q", have, want)
		}
	}
	if _, err := ParseDate("not a date"); err == nil {
		t.Error("expected an error for an unparsable date string")
	}
	have, err := MustDate("1997-08-01T12:30:00").Format(StyleDIN)
	if err != nil {
		t.Fatal(err)
	}
	if want := "01.08.1997 12:30:00"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
}

func TestDateRejectsSubsecondPrecision(t *testing.T) {
	_, err := NewDate(time.Date(2000, 1, 1, 0, 0, 0, 500, time.UTC))
	if err == nil {
		t.Error("expected an error for sub-second precision")
	}
}

func TestDatePeriodArithmetic(t *testing.T) {
	d1 := MustDate("2000-01-01T00:00:00")
	d2 := MustDate("2000-01-02T00:00:00")
	if have, want := d2.Sub(d1).String(), "1d"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
	if have := d1.Add(MustPeriod("24h")); !have.Equal(d2) {
		t.Errorf("have %v, want %v", have, d2)
	}
	if have := d2.SubPeriod(MustPeriod("1d")); !have.Equal(d1) {
		t.Errorf("have %v, want %v", have, d1)
	}
}

func TestPeriodDisplayPicksCoarsestUnit(t *testing.T) {
	cases := map[string]string{
		"24h": "1d",
		"36h": "36h",
		"90m": "90m",
		"60m": "1h",
		"59s": "59s",
		"60s": "1m",
	}
	for in, want := range cases {
		if have := MustPeriod(in).String(); have != want {
			t.Errorf("%q: have %q, want %q", in, have, want)
		}
	}
}

func TestPeriodDivisibility(t *testing.T) {
	day, hour := MustPeriod("1d"), MustPeriod("1h")
	if !day.DivisibleBy(hour) {
		t.Error("one day should be divisible by one hour")
	}
	if day.NotDivisibleBy(hour) {
		t.Error("NotDivisibleBy should negate DivisibleBy")
	}
	if MustPeriod("25h").DivisibleBy(day) {
		t.Error("25 hours should not be divisible by one day")
	}
	if have, want := day.Ratio(hour), 24.0; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
	if day.DivisibleBy(Period{}) {
		t.Error("nothing should be divisible by an empty period")
	}
}

func TestTimegridVerify(t *testing.T) {
	first := MustDate("2000-01-01T00:00:00")
	last := MustDate("2000-01-11T00:00:00")
	if _, err := NewTimegrid(first, last, MustPeriod("1d")); err != nil {
		t.Fatal(err)
	}
	if _, err := NewTimegrid(last, first, MustPeriod("1d")); err == nil {
		t.Error("expected an error for reversed dates")
	}
	if _, err := NewTimegrid(first, last, MustPeriod("3d")); err == nil {
		t.Error("expected an error for a span not divisible by the step size")
	}
}

func TestTimegridRejectsNonPositiveStep(t *testing.T) {
	first := MustDate("2000-01-01T00:00:00")
	last := MustDate("2000-01-11T00:00:00")
	zero, err := ParsePeriod("0s")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTimegrid(first, last, zero); err == nil ||
		!strings.Contains(err.Error(), "at least one second") {
		t.Errorf("unexpected error for a zero step size: %v", err)
	}
	if _, err := NewTimegrid(first, last, MustPeriod("1d").Neg()); err == nil {
		t.Error("expected an error for a negative step size")
	}
}

func TestTimegridIndexing(t *testing.T) {
	tg, err := NewTimegrid(
		MustDate("2000-01-01T00:00:00"),
		MustDate("2000-01-11T00:00:00"),
		MustPeriod("1d"))
	if err != nil {
		t.Fatal(err)
	}
	if have, want := tg.Len(), 10; have != want {
		t.Errorf("have %d, want %d", have, want)
	}
	for _, i := range []int{-2, 0, 5, 10, 15} {
		date := tg.Date(i)
		back, err := tg.Index(date)
		if err != nil {
			t.Fatalf("index of %v: %v", date, err)
		}
		if back != i {
			t.Errorf("have %d, want %d", back, i)
		}
	}
	if _, err := tg.Index(MustDate("2000-01-01T12:00:00")); err == nil {
		t.Error("expected an error for an off-grid date")
	}
}

func TestTimegridContainment(t *testing.T) {
	outer, _ := NewTimegrid(
		MustDate("2000-01-01T00:00:00"),
		MustDate("2000-02-01T00:00:00"),
		MustPeriod("1d"))
	inner, _ := NewTimegrid(
		MustDate("2000-01-05T00:00:00"),
		MustDate("2000-01-10T00:00:00"),
		MustPeriod("1d"))
	if !outer.ContainsGrid(inner) {
		t.Error("inner grid should be contained in outer grid")
	}
	shifted, _ := NewTimegrid(
		MustDate("2000-01-05T12:00:00"),
		MustDate("2000-01-10T12:00:00"),
		MustPeriod("1d"))
	if outer.ContainsGrid(shifted) {
		t.Error("misaligned grid should not be contained")
	}
	coarser, _ := NewTimegrid(
		MustDate("2000-01-05T00:00:00"),
		MustDate("2000-01-09T00:00:00"),
		MustPeriod("2d"))
	if outer.ContainsGrid(coarser) {
		t.Error("grid with deviating step size should not be contained")
	}
}

func TestTimegridsVerify(t *testing.T) {
	init, _ := NewTimegrid(
		MustDate("2000-01-01T00:00:00"),
		MustDate("2000-02-01T00:00:00"),
		MustPeriod("1d"))
	sim, _ := NewTimegrid(
		MustDate("2000-01-05T00:00:00"),
		MustDate("2000-01-10T00:00:00"),
		MustPeriod("1d"))
	if _, err := NewTimegrids(init, sim); err != nil {
		t.Fatal(err)
	}
	early, _ := NewTimegrid(
		MustDate("1999-12-30T00:00:00"),
		MustDate("2000-01-10T00:00:00"),
		MustPeriod("1d"))
	if _, err := NewTimegrids(init, early); err == nil {
		t.Error("expected an error for a simulation grid starting too early")
	}
	if tgs, err := NewTimegrids(init, nil); err != nil {
		t.Fatal(err)
	} else if !tgs.Sim.Equal(init) {
		t.Error("nil simulation grid should default to the initialisation grid")
	}
}

func TestTimegridArrayRoundTrip(t *testing.T) {
	tg, _ := NewTimegrid(
		MustDate("1996-11-01T06:00:00"),
		MustDate("1997-11-01T06:00:00"),
		MustPeriod("12h"))
	back, err := TimegridFromArray(tg.ToArray())
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(tg) {
		t.Errorf("have %v, want %v", back, tg)
	}
}

func TestTOYParsing(t *testing.T) {
	toy := MustTOY("toy_3_13_23_33_43")
	if toy.Month() != 3 || toy.Day() != 13 || toy.Hour() != 23 ||
		toy.Minute() != 33 || toy.Second() != 43 {
		t.Errorf("unexpected components: %v", toy)
	}
	if have, want := MustTOY("7").String(), "toy_7_1_0_0_0"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
	if _, err := NewTOY("2_30"); err == nil {
		t.Error("expected an error for February 30th")
	}
	if _, err := NewTOY("2_29"); err == nil {
		t.Error("expected an error for February 29th (non-leap reference year)")
	}
	if _, err := NewTOY("1_2_3_4_5_6"); err == nil {
		t.Error("expected an error for too many components")
	}
}

func TestTOYFieldCrossChecks(t *testing.T) {
	toy := MustTOY("1_31")
	if err := toy.SetMonth(4); err == nil {
		t.Error("expected an error: April has no 31st day")
	}
	if err := toy.SetMonth(3); err != nil {
		t.Errorf("March has a 31st day: %v", err)
	}
	if err := toy.SetDay(32); err == nil {
		t.Error("expected an error for day 32")
	}
}

func TestTOYPeriodicSubtraction(t *testing.T) {
	a := MustTOY("1_1_0_0_0")
	b := MustTOY("12_31_23_59_0")
	if have, want := a.Sub(b).Seconds(), int64(60); have != want {
		t.Errorf("have %d, want %d", have, want)
	}
	if have, want := b.Sub(a).Seconds(), SecondsPerYear-60; have != want {
		t.Errorf("have %d, want %d", have, want)
	}
	if have := a.Sub(a).Seconds(); have != 0 {
		t.Errorf("have %d, want 0", have)
	}
}

func TestTOYOrdering(t *testing.T) {
	a, b := MustTOY("3_1"), MustTOY("4_1")
	if !a.Less(b) || b.Less(a) {
		t.Error("March 1st should order before April 1st")
	}
	if !a.Equal(MustTOY("prefix_3_1_0_0_0")) {
		t.Error("equality should depend on seconds passed only")
	}
}

func TestTOYFromDateLeapDay(t *testing.T) {
	d := MustDate("2000-02-29T12:00:00")
	toy := TOYFromDate(d)
	if toy.Month() != 2 || toy.Day() != 28 {
		t.Errorf("leap day should map onto February 28th, have %v", toy)
	}
}

func TestCenteredTOYs(t *testing.T) {
	toys, err := CenteredTOYs(MustPeriod("1d"))
	if err != nil {
		t.Fatal(err)
	}
	if have, want := len(toys), 365; have != want {
		t.Fatalf("have %d, want %d", have, want)
	}
	if have, want := toys[0].String(), "toy_1_1_12_0_0"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
	if have, want := toys[364].String(), "toy_12_31_12_0_0"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
	if _, err := CenteredTOYs(MustPeriod("7d")); err == nil {
		t.Error("expected an error: one week does not divide one year")
	}
}
