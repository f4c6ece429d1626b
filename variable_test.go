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
	"math"
	"reflect"
	"strings"
	"testing"
)

func floatDef(name string, ndim int) *Definition {
	return &Definition{
		Name:      name,
		Doc:       "Test quantity [mm].",
		NDim:      ndim,
		Type:      Float,
		SpanLower: math.NaN(),
		SpanUpper: math.NaN(),
		Init:      math.NaN(),
	}
}

func TestScalarVariableLifecycle(t *testing.T) {
	v := NewVariable(floatDef("Area", 0))
	shape, err := v.Shape()
	if err != nil {
		t.Fatal(err)
	}
	if len(shape) != 0 {
		t.Errorf("have %v, want an empty shape", shape)
	}
	if err := v.SetShape(3); err == nil ||
		!strings.Contains(err.Error(), "0-dimensional") {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := v.Values(); err == nil ||
		!strings.Contains(err.Error(), "no value(s) have been defined") {
		t.Errorf("unexpected error: %v", err)
	}
	if err := v.SetValues(2.5); err != nil {
		t.Fatal(err)
	}
	if f, err := v.Float(); err != nil || f != 2.5 {
		t.Errorf("have %v, %v", f, err)
	}
	if err := v.SetValues([]float64{1, 2}); err == nil ||
		!strings.Contains(err.Error(), "scalar") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestScalarVariableItemAccess(t *testing.T) {
	v := NewVariable(floatDef("Area", 0))
	if err := v.SetAt(4.0, 0); err != nil {
		t.Fatal(err)
	}
	if f, err := v.At(0); err != nil || f != 4.0 {
		t.Errorf("have %v, %v", f, err)
	}
	if f, err := v.At(); err != nil || f != 4.0 {
		t.Errorf("have %v, %v", f, err)
	}
	if _, err := v.At(1); err == nil ||
		!strings.Contains(err.Error(), "only allowed keys are `0` and `:`") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestShapeGatesValueAccess(t *testing.T) {
	v := NewVariable(floatDef("ZoneTemp", 1))
	if _, err := v.Values(); err == nil ||
		!strings.Contains(err.Error(), "after it has been defined") {
		t.Errorf("unexpected error: %v", err)
	}
	if err := v.SetShape(2, 3); err == nil ||
		!strings.Contains(err.Error(), "indicates 2 dimensions") {
		t.Errorf("unexpected error: %v", err)
	}
	if err := v.SetShape(4); err != nil {
		t.Fatal(err)
	}
	shape, err := v.Shape()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(shape, []int{4}) {
		t.Errorf("have %v, want [4]", shape)
	}
}

func TestShapeAssignmentRefillsWithDefault(t *testing.T) {
	def := floatDef("Fc", 1)
	def.Init = 100.0
	def.InitInfo = true
	v := NewVariable(def)
	if err := v.SetShape(3); err != nil {
		t.Fatal(err)
	}
	values, err := v.Values()
	if err != nil {
		t.Fatal(err)
	}
	for _, value := range values.Elements {
		if value != 100.0 {
			t.Errorf("have %v, want 100.0", value)
		}
	}
	if err := v.SetValues([]float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	// Reassigning the shape must reinitialise all values.
	if err := v.SetShape(2); err != nil {
		t.Fatal(err)
	}
	values, _ = v.Values()
	if !reflect.DeepEqual(values.Elements, []float64{100, 100}) {
		t.Errorf("have %v, want [100 100]", values.Elements)
	}
}

func TestUnpreparedValuesWithoutInitInfo(t *testing.T) {
	v := NewVariable(floatDef("ZoneTemp", 1))
	if err := v.SetShape(3); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Values(); err == nil ||
		!strings.Contains(err.Error(), "no value(s) have been defined") {
		t.Errorf("unexpected error: %v", err)
	}
	// Zero-element arrays are returned unconditionally.
	if err := v.SetShape(0); err != nil {
		t.Fatal(err)
	}
	if values, err := v.Values(); err != nil || len(values.Elements) != 0 {
		t.Errorf("have %v, %v", values, err)
	}
}

func TestValueRoundTripWithCoercion(t *testing.T) {
	intDef := &Definition{
		Name: "NmbZones", NDim: 0, Type: Int,
		SpanLower: 1, SpanUpper: math.NaN(), Init: math.NaN(),
	}
	v := NewVariable(intDef)
	if err := v.SetValues("7"); err != nil {
		t.Fatal(err)
	}
	if n, err := v.Int(); err != nil || n != 7 {
		t.Errorf("have %v, %v", n, err)
	}
	boolDef := &Definition{Name: "Resparea", NDim: 0, Type: Bool}
	b := NewVariable(boolDef)
	if err := b.SetValues(1); err != nil {
		t.Fatal(err)
	}
	if value, err := b.Bool(); err != nil || !value {
		t.Errorf("have %v, %v", value, err)
	}
}

func TestBroadcasting(t *testing.T) {
	v := NewVariable(floatDef("SnowCover", 2))
	if err := v.SetShape(2, 3); err != nil {
		t.Fatal(err)
	}
	if err := v.SetValues(1.5); err != nil {
		t.Fatal(err)
	}
	values, _ := v.Values()
	if !reflect.DeepEqual(values.Elements,
		[]float64{1.5, 1.5, 1.5, 1.5, 1.5, 1.5}) {
		t.Errorf("scalar broadcast failed: %v", values.Elements)
	}
	if err := v.SetValues([]float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	values, _ = v.Values()
	if !reflect.DeepEqual(values.Elements, []float64{1, 2, 3, 1, 2, 3}) {
		t.Errorf("row broadcast failed: %v", values.Elements)
	}
	err := v.SetValues([]float64{1, 2})
	if err == nil || !strings.Contains(err.Error(), "broadcast") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMultidimensionalScalarConversionFails(t *testing.T) {
	v := NewVariable(floatDef("ZoneTemp", 1))
	if err := v.SetShape(2); err != nil {
		t.Fatal(err)
	}
	if err := v.SetValues(0.0); err != nil {
		t.Fatal(err)
	}
	_, err := v.Float()
	if err == nil || !strings.Contains(err.Error(),
		"1-dimensional and thus cannot be converted to a scalar") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNaNTolerantEquality(t *testing.T) {
	nan := math.NaN()
	v := NewVariable(floatDef("ZoneTemp", 1))
	if err := v.SetShape(3); err != nil {
		t.Fatal(err)
	}
	if err := v.SetValues([]float64{1, nan, 3}); err != nil {
		t.Fatal(err)
	}
	if !v.EqualValues([]float64{1, nan, 3}) {
		t.Error("matching NaN positions must not break equality")
	}
	if v.NotEqualValues([]float64{1, nan, 3}) {
		t.Error("matching NaN positions must not count as differences")
	}
	if v.EqualValues([]float64{1, nan, 4}) {
		t.Error("a deviating non-NaN position must break equality")
	}
	if v.EqualValues([]float64{1, 2, 3}) {
		t.Error("NaN versus non-NaN must break equality")
	}
}

func TestComparisonsAgainstIncompatibleShapes(t *testing.T) {
	v := NewVariable(floatDef("ZoneTemp", 1))
	if err := v.SetShape(3); err != nil {
		t.Fatal(err)
	}
	if err := v.SetValues([]float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if v.EqualValues([]float64{1, 2}) {
		t.Error("shape-incompatible equality should be false")
	}
	if !v.NotEqualValues([]float64{1, 2}) {
		t.Error("shape-incompatible inequality should be true")
	}
	if _, err := v.LessValues([]float64{1, 2}); err == nil {
		t.Error("shape-incompatible ordering should fail loudly")
	}
}

func TestOrderingIgnoresNaNs(t *testing.T) {
	nan := math.NaN()
	v := NewVariable(floatDef("ZoneTemp", 1))
	if err := v.SetShape(3); err != nil {
		t.Fatal(err)
	}
	if err := v.SetValues([]float64{1, nan, 3}); err != nil {
		t.Fatal(err)
	}
	less, err := v.LessValues([]float64{2, 0, 4})
	if err != nil || !less {
		t.Errorf("have %v, %v", less, err)
	}
	lessEqual, err := v.LessEqualValues([]float64{1, nan, 3})
	if err != nil || !lessEqual {
		t.Errorf("have %v, %v", lessEqual, err)
	}
	strict, err := v.LessValues([]float64{1, nan, 3})
	if err != nil || strict {
		t.Errorf("have %v, %v", strict, err)
	}
}

func TestStrictOrderingSkipsNaNPositions(t *testing.T) {
	nan := math.NaN()
	v := NewVariable(floatDef("ZoneTemp", 1))
	if err := v.SetShape(2); err != nil {
		t.Fatal(err)
	}
	if err := v.SetValues([]float64{1, nan}); err != nil {
		t.Fatal(err)
	}
	// A NaN on either side makes a pair inconclusive; the remaining
	// conclusive pairs decide the strict comparison.
	less, err := v.LessValues([]float64{2, 5})
	if err != nil || !less {
		t.Errorf("have %v, %v", less, err)
	}
	greater, err := v.GreaterValues([]float64{0, 5})
	if err != nil || !greater {
		t.Errorf("have %v, %v", greater, err)
	}
	if err := v.SetValues([]float64{nan, nan}); err != nil {
		t.Fatal(err)
	}
	less, err = v.LessValues([]float64{2, 5})
	if err != nil || less {
		t.Errorf("all-NaN arrays must never be strictly ordered: %v, %v",
			less, err)
	}
	lessEqual, err := v.LessEqualValues([]float64{2, 5})
	if err != nil || !lessEqual {
		t.Errorf("have %v, %v", lessEqual, err)
	}
}

func TestArithmetic(t *testing.T) {
	v := NewVariable(floatDef("ZoneTemp", 1))
	if err := v.SetShape(3); err != nil {
		t.Fatal(err)
	}
	if err := v.SetValues([]float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	sum, err := v.Add(1.0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sum.Elements, []float64{2, 3, 4}) {
		t.Errorf("have %v, want [2 3 4]", sum.Elements)
	}
	product, err := v.Multiply([]float64{2, 2, 2})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(product.Elements, []float64{2, 4, 6}) {
		t.Errorf("have %v, want [2 4 6]", product.Elements)
	}
	unprepared := NewVariable(floatDef("Empty", 1))
	_, err = unprepared.Add(1.0)
	if err == nil || !strings.Contains(err.Error(), "while trying to add") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCopyBreaksAliasing(t *testing.T) {
	v := NewVariable(floatDef("ZoneTemp", 1))
	if err := v.SetShape(2); err != nil {
		t.Fatal(err)
	}
	if err := v.SetValues([]float64{1, 2}); err != nil {
		t.Fatal(err)
	}
	c := v.Copy()
	if !c.EqualValues(v) {
		t.Error("the copy should be value-equal to the original")
	}
	if err := c.SetValues([]float64{9, 9}); err != nil {
		t.Fatal(err)
	}
	values, _ := v.Values()
	if !reflect.DeepEqual(values.Elements, []float64{1, 2}) {
		t.Error("mutating the copy must not affect the original")
	}
	if c == v {
		t.Error("the copy must be a distinct instance")
	}
}

func TestUnitParsing(t *testing.T) {
	def := &Definition{Name: "T", Doc: "Mean air temperature [°C]."}
	if have, want := def.Unit(), "°C"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
	bare := &Definition{Name: "X", Doc: "No unit declared."}
	if bare.Unit() != "" {
		t.Errorf("have %q, want an empty unit", bare.Unit())
	}
}

func TestToUnit(t *testing.T) {
	def := floatDef("Area", 0)
	def.Doc = "Catchment area [km²]."
	v := NewVariable(def)
	if err := v.SetValues(12.5); err != nil {
		t.Fatal(err)
	}
	u, err := v.ToUnit()
	if err != nil {
		t.Fatal(err)
	}
	if u.Value() != 12.5 {
		t.Errorf("have %v, want 12.5", u.Value())
	}
}

func TestSubVariables(t *testing.T) {
	sub, err := NewSubVariables("control", nil,
		floatDef("Area", 0), floatDef("ZoneTemp", 1))
	if err != nil {
		t.Fatal(err)
	}
	if have, want := sub.Names(), []string{"area", "zonetemp"}; !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}
	if _, err := sub.Variable("AREA"); err != nil {
		t.Errorf("lookup should be case-insensitive: %v", err)
	}
	if _, err := sub.Variable("missing"); err == nil {
		t.Error("expected an error for an unknown name")
	}
	if _, err := NewSubVariables("control", nil,
		floatDef("Area", 0), floatDef("area", 0)); err == nil {
		t.Error("expected an error for duplicate names")
	}
}

func TestStringHonoursFormattingOptions(t *testing.T) {
	pub := NewPub()
	sub, err := NewSubVariables("control", pub, floatDef("ZoneTemp", 1))
	if err != nil {
		t.Fatal(err)
	}
	v, _ := sub.Variable("zonetemp")
	if err := v.SetShape(6); err != nil {
		t.Fatal(err)
	}
	if err := v.SetValues([]float64{1, 2, 3, 4, 5, 6.5}); err != nil {
		t.Fatal(err)
	}
	if have, want := v.String(), "ZoneTemp(1, 2, 3, 4, 5, 6.5)"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
	restore, err := pub.Options.ReprDigits.Scoped(1)
	if err != nil {
		t.Fatal(err)
	}
	if have, want := v.String(), "ZoneTemp(1.0, 2.0, 3.0, 4.0, 5.0, 6.5)"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
	restore()
	restore, err = pub.Options.Ellipsis.Scoped(2)
	if err != nil {
		t.Fatal(err)
	}
	defer restore()
	if have, want := v.String(), "ZoneTemp(1, 2, ..., 5, 6.5)"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
}

func TestUseDefaultValuesMakesFreshShapesReady(t *testing.T) {
	pub := NewPub()
	restore, err := pub.Options.UseDefaultValues.Scoped(true)
	if err != nil {
		t.Fatal(err)
	}
	defer restore()
	def := &Definition{
		Name: "NmbZones", NDim: 1, Type: Int,
		SpanLower: 1, SpanUpper: math.NaN(), Init: math.NaN(),
	}
	sub, err := NewSubVariables("control", pub, def)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := sub.Variable("nmbzones")
	if err := v.SetShape(2); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Values(); err != nil {
		t.Errorf("the default fill should count as a defined value: %v", err)
	}
}
