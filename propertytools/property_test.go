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

package propertytools

import (
	"errors"
	"strings"
	"testing"
)

func TestPropertyUnimplementedOperations(t *testing.T) {
	p := &Property[float64, float64]{Owner: "model", Name: "area"}
	if _, err := p.Get(); err == nil ||
		!strings.Contains(err.Error(), "not gettable") {
		t.Errorf("unexpected error: %v", err)
	}
	if err := p.Set(1.0); err == nil ||
		!strings.Contains(err.Error(), "not settable") {
		t.Errorf("unexpected error: %v", err)
	}
	if err := p.Delete(); err == nil ||
		!strings.Contains(err.Error(), "not deletable") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPropertyDistinctInputOutputTypes(t *testing.T) {
	var store float64
	p := &Property[int, float64]{
		Owner: "model",
		Name:  "area",
		Fget:  func() (float64, error) { return store, nil },
		Fset:  func(v int) error { store = float64(v); return nil },
	}
	if err := p.Set(3); err != nil {
		t.Fatal(err)
	}
	v, err := p.Get()
	if err != nil {
		t.Fatal(err)
	}
	if v != 3.0 {
		t.Errorf("have %v, want 3.0", v)
	}
}

func TestProtectedLifecycle(t *testing.T) {
	p := NewProtected[float64]("model", "x")
	if p.Ready() {
		t.Error("fresh protected attribute should not be ready")
	}
	if _, err := p.Get(); err == nil ||
		!strings.Contains(err.Error(), "has not been prepared so far") {
		t.Errorf("unexpected error: %v", err)
	}
	p.Set(2.5)
	if !p.Ready() {
		t.Error("attribute should be ready after Set")
	}
	if v, err := p.Get(); err != nil || v != 2.5 {
		t.Errorf("have %v, %v", v, err)
	}
	p.Delete()
	if p.Ready() {
		t.Error("attribute should be unready after Delete")
	}
}

func TestGroupAllReady(t *testing.T) {
	x := NewProtected[float64]("model", "x")
	y := NewProtected[int]("model", "y")
	group := Group{&x, &y}
	if group.AllReady() {
		t.Error("group with unready members should not be all-ready")
	}
	x.Set(1.0)
	y.Set(2)
	if !group.AllReady() {
		t.Error("group with all members set should be all-ready")
	}
}

// A protected attribute `x` guards a dependent attribute `y`: reading `y`
// before `x` is set must fail naming `x`; afterwards `y` is readable.
func TestDependentGatedOnProtected(t *testing.T) {
	x := NewProtected[float64]("model", "x")
	var stored float64
	y := &Dependent[float64, float64]{
		Owner:    "model",
		Name:     "y",
		Protects: Group{&x},
		Fget:     func() (float64, error) { return stored, nil },
		Fset:     func(v float64) error { stored = v; return nil },
	}
	_, err := y.Get()
	var nre *NotReadyError
	if !errors.As(err, &nre) {
		t.Fatalf("expected a NotReadyError, have %v", err)
	}
	if nre.Prerequisite != "x" {
		t.Errorf("error should name `x`, have %q", nre.Prerequisite)
	}
	x.Set(42.0)
	if err := y.Set(7.0); err != nil {
		t.Fatal(err)
	}
	if v, err := y.Get(); err != nil || v != 7.0 {
		t.Errorf("have %v, %v", v, err)
	}
}

func TestDependentNamesFirstUnreadyPrerequisite(t *testing.T) {
	a := NewProtected[int]("model", "a")
	b := NewProtected[int]("model", "b")
	d := &Dependent[int, int]{
		Owner:    "model",
		Name:     "y",
		Protects: Group{&a, &b},
		Fget:     func() (int, error) { return 0, nil },
	}
	a.Set(1)
	_, err := d.Get()
	var nre *NotReadyError
	if !errors.As(err, &nre) {
		t.Fatalf("expected a NotReadyError, have %v", err)
	}
	if nre.Prerequisite != "b" {
		t.Errorf("error should name `b`, have %q", nre.Prerequisite)
	}
}

func TestDefaultNotCached(t *testing.T) {
	calls := 0
	d := NewDefault[int]("n", func() int { calls++; return calls })
	if d.Get() != 1 || d.Get() != 2 {
		t.Error("the default function should be invoked on every call")
	}
	d.Set(99)
	if d.Get() != 99 || calls != 2 {
		t.Error("a custom value should shadow the computed default")
	}
	d.Delete()
	if d.Get() != 3 {
		t.Error("deleting the custom value should re-enable the default")
	}
}
