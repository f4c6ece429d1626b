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
	"math"
	"strconv"
	"strings"

	"github.com/ctessum/sparse"
	"github.com/ctessum/unit"
	"github.com/spf13/cast"

	"github.com/hydpy-dev/hydpy-sub001/optiontools"
)

// VarType is the element type of a Variable.
type VarType int

const (
	// Float marks double precision floating point variables.
	Float VarType = iota
	// Int marks integer variables.
	Int
	// Bool marks boolean variables.
	Bool
)

func (t VarType) String() string {
	switch t {
	case Float:
		return "float"
	case Int:
		return "int"
	case Bool:
		return "bool"
	}
	return fmt.Sprintf("VarType(%d)", int(t))
}

// TimeFlag states whether a variable's value scales with the simulation
// step size.
type TimeFlag int

const (
	// TimeIndifferent marks variables unrelated to the step size.
	TimeIndifferent TimeFlag = iota
	// TimeDependent marks variables whose values refer to one step.
	TimeDependent
	// TimeIndependent marks variables explicitly independent of the
	// step size.
	TimeIndependent
)

// IntNaN is the sentinel marking missing values of integer variables.
const IntNaN = -999999

// Definition carries the class-level metadata of one variable kind:
// dimensionality, element type, time dependence, domain bounds, default
// fill value, and the documentation string carrying the unit in bracket
// notation (for example "Mean air temperature [°C]").
type Definition struct {
	Name      string
	Doc       string
	NDim      int
	Type      VarType
	Time      TimeFlag
	SpanLower float64 // NaN means unbounded below
	SpanUpper float64 // NaN means unbounded above
	Init      float64
	InitInfo  bool // whether the default fill counts as a complete value
}

// Unit returns the unit parsed from the bracket notation of the
// documentation string, or an empty string when none is declared.
func (d *Definition) Unit() string {
	open := strings.LastIndex(d.Doc, "[")
	close_ := strings.LastIndex(d.Doc, "]")
	if open < 0 || close_ < open {
		return ""
	}
	return d.Doc[open+1 : close_]
}

var knownDimensions = map[string]unit.Dimensions{
	"m":    {unit.LengthDim: 1},
	"mm":   {unit.LengthDim: 1},
	"km":   {unit.LengthDim: 1},
	"km²":  {unit.LengthDim: 2},
	"m²":   {unit.LengthDim: 2},
	"m³":   {unit.LengthDim: 3},
	"s":    {unit.TimeDim: 1},
	"m/s":  {unit.LengthDim: 1, unit.TimeDim: -1},
	"mm/T": {unit.LengthDim: 1, unit.TimeDim: -1},
	"m³/s": {unit.LengthDim: 3, unit.TimeDim: -1},
	"°C":   {unit.TemperatureDim: 1},
	"K":    {unit.TemperatureDim: 1},
	"-":    unit.Dimless,
	"":     unit.Dimless,
}

// Dimensions maps the declared unit onto SI base dimensions.  Units
// without a known mapping count as dimensionless.
func (d *Definition) Dimensions() unit.Dimensions {
	if dims, ok := knownDimensions[d.Unit()]; ok {
		return dims
	}
	return unit.Dimless
}

// defaultFill returns the type's default fill value in float
// representation (NaN, the integer missing sentinel, or false as zero).
func (d *Definition) defaultFill() float64 {
	if !math.IsNaN(d.Init) {
		return d.Init
	}
	switch d.Type {
	case Int:
		return IntNaN
	case Bool:
		return 0
	}
	return math.NaN()
}

// Variable is the generic N-dimensional typed value container underlying
// every model parameter and time sequence.  Values are backed by one
// flat dense array regardless of dimensionality; zero-dimensional
// variables skip the unallocated state because their shape is trivially
// known.
type Variable struct {
	def *Definition
	pub *Pub // non-owning; nil falls back to the package default

	shape      []int
	shapeReady bool
	values     *sparse.DenseArray
	valueReady bool

	mask       Mask
	refweights func() (*sparse.DenseArray, error)
}

// NewVariable creates a variable from its definition.  Zero-dimensional
// variables are immediately allocated; multi-dimensional ones await a
// shape assignment.
func NewVariable(def *Definition) *Variable {
	v := &Variable{def: def}
	if def.NDim == 0 {
		v.allocate(nil)
	}
	return v
}

// Definition returns the variable's metadata.
func (v *Variable) Definition() *Definition { return v.def }

// Name returns the (lowercase) variable name.
func (v *Variable) Name() string { return strings.ToLower(v.def.Name) }

func (v *Variable) options() *optiontools.Options {
	if v.pub != nil {
		return v.pub.Options
	}
	return defaultPub.Options
}

func (v *Variable) allocate(shape []int) {
	v.shape = shape
	v.shapeReady = true
	v.values = sparse.ZerosDense(shape...)
	fill := v.def.defaultFill()
	for i := range v.values.Elements {
		v.values.Elements[i] = fill
	}
	ready := v.def.InitInfo || len(v.values.Elements) == 0
	if !ready && !math.IsNaN(fill) &&
		v.options().UseDefaultValues.Value() {
		ready = true
	}
	v.valueReady = ready
}

// SetShape allocates the backing array for a multi-dimensional variable,
// filling it with the type's default value.  The number of dimensions
// must match the declared dimensionality exactly.
func (v *Variable) SetShape(shape ...int) error {
	if v.def.NDim == 0 {
		if len(shape) == 0 {
			return nil
		}
		return fmt.Errorf(
			"variable `%s` is 0-dimensional; its shape is always `()` and "+
				"cannot be set to %v", v.Name(), shape)
	}
	if len(shape) != v.def.NDim {
		return fmt.Errorf(
			"variable `%s` is %d-dimensional, but the given shape %v "+
				"indicates %d dimensions", v.Name(), v.def.NDim, shape,
			len(shape))
	}
	for _, length := range shape {
		if length < 0 {
			return fmt.Errorf(
				"while trying to set the shape of variable `%s`: the "+
					"length %d is negative", v.Name(), length)
		}
	}
	v.allocate(append([]int(nil), shape...))
	return nil
}

// Shape returns the current shape.  For multi-dimensional variables it
// fails until a shape has been assigned.
func (v *Variable) Shape() ([]int, error) {
	if !v.shapeReady {
		return nil, fmt.Errorf(
			"shape information for variable `%s` can only be retrieved "+
				"after it has been defined", v.Name())
	}
	return v.shape, nil
}

// DeleteShape returns a multi-dimensional variable to the unallocated
// state.
func (v *Variable) DeleteShape() {
	if v.def.NDim == 0 {
		return
	}
	v.shape = nil
	v.shapeReady = false
	v.values = nil
	v.valueReady = false
}

// Length returns the total number of elements.
func (v *Variable) Length() (int, error) {
	if _, err := v.Shape(); err != nil {
		return 0, err
	}
	return len(v.values.Elements), nil
}

// Values returns the backing array in float representation.  Integer
// variables store the missing sentinel, boolean variables zeros and
// ones.  Access fails before the shape is ready and before any value is
// available, except that zero-element arrays are returned
// unconditionally.
func (v *Variable) Values() (*sparse.DenseArray, error) {
	if !v.shapeReady {
		return nil, fmt.Errorf(
			"shape information for variable `%s` can only be retrieved "+
				"after it has been defined", v.Name())
	}
	if len(v.values.Elements) == 0 {
		return v.values, nil
	}
	if !v.valueReady {
		return nil, fmt.Errorf(
			"for variable `%s`, no value(s) have been defined so far",
			v.Name())
	}
	return v.values, nil
}

// coerceScalar converts a raw scalar through the variable's element
// type.
func (v *Variable) coerceScalar(raw any) (float64, error) {
	switch v.def.Type {
	case Int:
		if f, ok := toFloat(raw); ok && (math.IsNaN(f) || f == IntNaN) {
			return IntNaN, nil
		}
		n, err := cast.ToIntE(raw)
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	case Bool:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return 0, err
		}
		if b {
			return 1, nil
		}
		return 0, nil
	}
	return cast.ToFloat64E(raw)
}

func toFloat(raw any) (float64, bool) {
	f, err := cast.ToFloat64E(raw)
	return f, err == nil
}

// SetValues assigns new values, accepting scalars (broadcast to every
// element), nested slices, dense arrays, and other variables.  All
// inputs pass through the element type's coercion, and array inputs are
// broadcast to the current shape.
func (v *Variable) SetValues(raw any) error {
	wrap := func(err error) error {
		return fmt.Errorf(
			"while trying to set the value(s) of variable `%s`: %w",
			v.Name(), err)
	}
	if !v.shapeReady {
		return wrap(fmt.Errorf(
			"shape information can only be retrieved after it has been " +
				"defined"))
	}
	flat, shape, scalar, err := flatten(raw)
	if err != nil {
		// Not array-like, so treat it as a raw scalar.
		value, cerr := v.coerceScalar(raw)
		if cerr != nil {
			return wrap(cerr)
		}
		flat, scalar = []float64{value}, true
	} else if !scalar {
		if v.def.NDim == 0 {
			return wrap(fmt.Errorf(
				"%d values cannot be assigned to the scalar variable",
				len(flat)))
		}
		for i, value := range flat {
			coerced, cerr := v.coerceScalar(value)
			if cerr != nil {
				return wrap(cerr)
			}
			flat[i] = coerced
		}
		flat, err = broadcast(flat, shape, v.shape)
		if err != nil {
			return wrap(err)
		}
	} else {
		value, cerr := v.coerceScalar(flat[0])
		if cerr != nil {
			return wrap(cerr)
		}
		flat = []float64{value}
	}
	if scalar {
		fill := flat[0]
		for i := range v.values.Elements {
			v.values.Elements[i] = fill
		}
	} else {
		copy(v.values.Elements, flat)
	}
	v.valueReady = true
	return nil
}

// DeleteValues resets all values to the type's default fill.
func (v *Variable) DeleteValues() {
	if !v.shapeReady {
		return
	}
	fill := v.def.defaultFill()
	for i := range v.values.Elements {
		v.values.Elements[i] = fill
	}
	v.valueReady = v.def.InitInfo || len(v.values.Elements) == 0
}

// flatten converts nested slices and dense arrays into a flat float
// slice plus its shape.  Scalars report scalar=true.  Inputs that are
// neither scalars nor array-like yield an error.
func flatten(raw any) (flat []float64, shape []int, scalar bool, err error) {
	switch data := raw.(type) {
	case *Variable:
		values, verr := data.Values()
		if verr != nil {
			return nil, nil, false, verr
		}
		return append([]float64(nil), values.Elements...),
			append([]int(nil), values.Shape...), data.def.NDim == 0, nil
	case *sparse.DenseArray:
		return append([]float64(nil), data.Elements...),
			append([]int(nil), data.Shape...), false, nil
	case *sparse.DenseArrayInt:
		flat = make([]float64, len(data.Elements))
		for i, n := range data.Elements {
			flat[i] = float64(n)
		}
		return flat, append([]int(nil), data.Shape...), false, nil
	case []float64:
		return append([]float64(nil), data...), []int{len(data)}, false, nil
	case []int:
		flat = make([]float64, len(data))
		for i, n := range data {
			flat[i] = float64(n)
		}
		return flat, []int{len(data)}, false, nil
	case []bool:
		flat = make([]float64, len(data))
		for i, b := range data {
			if b {
				flat[i] = 1
			}
		}
		return flat, []int{len(data)}, false, nil
	case [][]float64:
		if len(data) == 0 {
			return nil, []int{0, 0}, false, nil
		}
		cols := len(data[0])
		for _, row := range data {
			if len(row) != cols {
				return nil, nil, false, fmt.Errorf(
					"the given nested sequence is ragged and cannot form " +
						"a rectangular array")
			}
			flat = append(flat, row...)
		}
		return flat, []int{len(data), cols}, false, nil
	case [][][]float64:
		if len(data) == 0 || len(data[0]) == 0 {
			return nil, []int{0, 0, 0}, false, nil
		}
		rows, cols := len(data[0]), len(data[0][0])
		for _, plane := range data {
			if len(plane) != rows {
				return nil, nil, false, fmt.Errorf(
					"the given nested sequence is ragged and cannot form " +
						"a rectangular array")
			}
			for _, row := range plane {
				if len(row) != cols {
					return nil, nil, false, fmt.Errorf(
						"the given nested sequence is ragged and cannot " +
							"form a rectangular array")
				}
				flat = append(flat, row...)
			}
		}
		return flat, []int{len(data), rows, cols}, false, nil
	}
	if f, ok := toFloat(raw); ok {
		return []float64{f}, nil, true, nil
	}
	return nil, nil, false, fmt.Errorf(
		"a value of type %T is neither a scalar nor array-like", raw)
}

// broadcast stretches the flat source array of the given shape to the
// target shape following trailing-dimension alignment: each source
// dimension must either equal the corresponding target dimension or be
// one.
func broadcast(flat []float64, shape, target []int) ([]float64, error) {
	if len(shape) > len(target) {
		return nil, fmt.Errorf(
			"an array of shape %v cannot be broadcast to shape %v",
			shape, target)
	}
	// Left-pad the source shape with ones.
	padded := make([]int, len(target))
	for i := range padded {
		padded[i] = 1
	}
	copy(padded[len(target)-len(shape):], shape)
	for i := range target {
		if padded[i] != target[i] && padded[i] != 1 {
			return nil, fmt.Errorf(
				"an array of shape %v cannot be broadcast to shape %v",
				shape, target)
		}
	}
	size := 1
	for _, length := range target {
		size *= length
	}
	out := make([]float64, size)
	if size == 0 {
		return out, nil
	}
	// Strides of the (padded) source array, zero along stretched axes.
	strides := make([]int, len(target))
	stride := 1
	for i := len(target) - 1; i >= 0; i-- {
		if padded[i] == 1 {
			strides[i] = 0
		} else {
			strides[i] = stride
		}
		stride *= padded[i]
	}
	index := make([]int, len(target))
	for i := 0; i < size; i++ {
		src := 0
		for axis := range index {
			src += index[axis] * strides[axis]
		}
		out[i] = flat[src]
		for axis := len(index) - 1; axis >= 0; axis-- {
			index[axis]++
			if index[axis] < target[axis] {
				break
			}
			index[axis] = 0
		}
	}
	return out, nil
}

// At returns one element.  Zero-dimensional variables accept only the
// index 0 (or no index at all, standing for the full slice).
func (v *Variable) At(indices ...int) (float64, error) {
	values, err := v.Values()
	if err != nil {
		return 0, fmt.Errorf(
			"while trying to access an item of variable `%s`: %w",
			v.Name(), err)
	}
	if v.def.NDim == 0 {
		if len(indices) == 0 || (len(indices) == 1 && indices[0] == 0) {
			return values.Elements[0], nil
		}
		return 0, fmt.Errorf(
			"variable `%s` is 0-dimensional; the only allowed keys are "+
				"`0` and `:`", v.Name())
	}
	if len(indices) != v.def.NDim {
		return 0, fmt.Errorf(
			"variable `%s` is %d-dimensional, but %d indices were given",
			v.Name(), v.def.NDim, len(indices))
	}
	if err := values.CheckIndex(indices); err != nil {
		return 0, fmt.Errorf(
			"while trying to access an item of variable `%s`: %w",
			v.Name(), err)
	}
	return values.Get(indices...), nil
}

// SetAt assigns one element, following the same index rules as At.
func (v *Variable) SetAt(value any, indices ...int) error {
	wrap := func(err error) error {
		return fmt.Errorf(
			"while trying to set an item of variable `%s`: %w",
			v.Name(), err)
	}
	if !v.shapeReady {
		return wrap(fmt.Errorf(
			"shape information can only be retrieved after it has been " +
				"defined"))
	}
	coerced, err := v.coerceScalar(value)
	if err != nil {
		return wrap(err)
	}
	if v.def.NDim == 0 {
		if len(indices) == 0 || (len(indices) == 1 && indices[0] == 0) {
			v.values.Elements[0] = coerced
			v.valueReady = true
			return nil
		}
		return fmt.Errorf(
			"variable `%s` is 0-dimensional; the only allowed keys are "+
				"`0` and `:`", v.Name())
	}
	if len(indices) != v.def.NDim {
		return wrap(fmt.Errorf(
			"%d indices were given for the %d-dimensional variable",
			len(indices), v.def.NDim))
	}
	if err := v.values.CheckIndex(indices); err != nil {
		return wrap(err)
	}
	// DenseArray.Set ignores zero assignments, so write directly.
	v.values.Elements[v.values.Index1d(indices...)] = coerced
	v.valueReady = true
	return nil
}

// Float converts a 0-dimensional variable's value to a float64.
func (v *Variable) Float() (float64, error) {
	if v.def.NDim != 0 {
		return 0, fmt.Errorf(
			"variable `%s` is %d-dimensional and thus cannot be converted "+
				"to a scalar", v.Name(), v.def.NDim)
	}
	values, err := v.Values()
	if err != nil {
		return 0, err
	}
	return values.Elements[0], nil
}

// Int converts a 0-dimensional variable's value to an int.
func (v *Variable) Int() (int, error) {
	f, err := v.Float()
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Bool converts a 0-dimensional variable's value to a bool.  Any nonzero
// value counts as true.
func (v *Variable) Bool() (bool, error) {
	f, err := v.Float()
	if err != nil {
		return false, err
	}
	return f != 0, nil
}

// ToUnit exports a 0-dimensional float variable's value together with
// its declared SI dimensions.
func (v *Variable) ToUnit() (*unit.Unit, error) {
	f, err := v.Float()
	if err != nil {
		return nil, fmt.Errorf(
			"while trying to export variable `%s` as a unit-aware value: %w",
			v.Name(), err)
	}
	return unit.New(f, v.def.Dimensions()), nil
}

// Copy produces an independent variable with the same shape and values.
// Collection membership and the publication context are never copied;
// copies serve as distinct identity-hashed keys even when value-equal.
func (v *Variable) Copy() *Variable {
	c := &Variable{def: v.def}
	if v.shapeReady {
		c.shape = append([]int(nil), v.shape...)
		c.shapeReady = true
		c.values = v.values.Copy()
		c.valueReady = v.valueReady
	}
	if v.mask != nil {
		c.mask = append(Mask(nil), v.mask...)
	}
	return c
}

// formatValue renders one element honouring the ReprDigits option
// (negative means full precision).
func (v *Variable) formatValue(value float64) string {
	if digits := v.options().ReprDigits.Value(); digits >= 0 &&
		v.def.Type == Float {
		return strconv.FormatFloat(value, 'f', digits, 64)
	}
	return fmt.Sprintf("%v", value)
}

func (v *Variable) String() string {
	if !v.shapeReady {
		return fmt.Sprintf("%s(?)", v.Name())
	}
	if !v.valueReady && len(v.values.Elements) > 0 {
		return fmt.Sprintf("%s(-)", v.Name())
	}
	if v.def.NDim == 0 {
		return fmt.Sprintf("%s(%s)", v.Name(),
			v.formatValue(v.values.Elements[0]))
	}
	elements := v.values.Elements
	parts := make([]string, 0, len(elements))
	// The Ellipsis option limits the number of leading and trailing
	// entries shown for large arrays.
	if n := v.options().Ellipsis.Value(); n > 0 && len(elements) > 2*n {
		for _, value := range elements[:n] {
			parts = append(parts, v.formatValue(value))
		}
		parts = append(parts, "...")
		for _, value := range elements[len(elements)-n:] {
			parts = append(parts, v.formatValue(value))
		}
	} else {
		for _, value := range elements {
			parts = append(parts, v.formatValue(value))
		}
	}
	return fmt.Sprintf("%s(%s)", v.Name(), strings.Join(parts, ", "))
}
