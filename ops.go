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

	"github.com/ctessum/sparse"
)

// operands aligns the variable's values and the other operand into two
// equally shaped flat slices.
func (v *Variable) operands(other any) (a, b []float64, shape []int, err error) {
	values, err := v.Values()
	if err != nil {
		return nil, nil, nil, err
	}
	flat, oshape, scalar, err := flatten(other)
	if err != nil {
		return nil, nil, nil, err
	}
	if scalar {
		b = make([]float64, len(values.Elements))
		for i := range b {
			b[i] = flat[0]
		}
	} else {
		b, err = broadcast(flat, oshape, values.Shape)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return values.Elements, b, values.Shape, nil
}

func (v *Variable) binary(verb string, other any,
	op func(a, b float64) float64) (*sparse.DenseArray, error) {
	a, b, shape, err := v.operands(other)
	if err != nil {
		return nil, fmt.Errorf(
			"while trying to %s variable `%s` and `%v`, the following "+
				"error occurred: %w", verb, v.Name(), other, err)
	}
	result := sparse.ZerosDense(shape...)
	for i := range a {
		result.Elements[i] = op(a[i], b[i])
	}
	return result, nil
}

// Add returns the elementwise sum of the variable and the other operand.
func (v *Variable) Add(other any) (*sparse.DenseArray, error) {
	return v.binary("add", other, func(a, b float64) float64 { return a + b })
}

// Subtract returns the elementwise difference.
func (v *Variable) Subtract(other any) (*sparse.DenseArray, error) {
	return v.binary("subtract", other,
		func(a, b float64) float64 { return a - b })
}

// Multiply returns the elementwise product.
func (v *Variable) Multiply(other any) (*sparse.DenseArray, error) {
	return v.binary("multiply", other,
		func(a, b float64) float64 { return a * b })
}

// Divide returns the elementwise quotient.
func (v *Variable) Divide(other any) (*sparse.DenseArray, error) {
	return v.binary("divide", other,
		func(a, b float64) float64 { return a / b })
}

// FloorDivide returns the elementwise floored quotient.
func (v *Variable) FloorDivide(other any) (*sparse.DenseArray, error) {
	return v.binary("floor-divide", other,
		func(a, b float64) float64 { return math.Floor(a / b) })
}

// Mod returns the elementwise remainder.
func (v *Variable) Mod(other any) (*sparse.DenseArray, error) {
	return v.binary("take the modulo of", other, math.Mod)
}

// Pow returns the elementwise power.
func (v *Variable) Pow(other any) (*sparse.DenseArray, error) {
	return v.binary("exponentiate", other, math.Pow)
}

func (v *Variable) unary(verb string,
	op func(float64) float64) (*sparse.DenseArray, error) {
	values, err := v.Values()
	if err != nil {
		return nil, fmt.Errorf(
			"while trying to %s variable `%s`, the following error "+
				"occurred: %w", verb, v.Name(), err)
	}
	result := sparse.ZerosDense(values.Shape...)
	for i, a := range values.Elements {
		result.Elements[i] = op(a)
	}
	return result, nil
}

// Neg returns the elementwise negation.
func (v *Variable) Neg() (*sparse.DenseArray, error) {
	return v.unary("negate", func(a float64) float64 { return -a })
}

// Abs returns the elementwise absolute value.
func (v *Variable) Abs() (*sparse.DenseArray, error) {
	return v.unary("take the absolute value of", math.Abs)
}

// Floor returns the elementwise floor.
func (v *Variable) Floor() (*sparse.DenseArray, error) {
	return v.unary("floor", math.Floor)
}

// Ceil returns the elementwise ceiling.
func (v *Variable) Ceil() (*sparse.DenseArray, error) {
	return v.unary("ceil", math.Ceil)
}

// Round returns the values rounded to the given number of decimal
// digits.
func (v *Variable) Round(digits int) (*sparse.DenseArray, error) {
	factor := math.Pow(10, float64(digits))
	return v.unary("round", func(a float64) float64 {
		return math.Round(a*factor) / factor
	})
}

// EqualValues reports aggregate equality: true only if every compared
// pair is equal or both members are NaN.  Shape-incompatible operands
// compare unequal without error.
func (v *Variable) EqualValues(other any) bool {
	a, b, _, err := v.operands(other)
	if err != nil {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) && math.IsNaN(b[i]) {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NotEqualValues reports whether any compared pair differs; pairs where
// both members are NaN never count as a difference.
func (v *Variable) NotEqualValues(other any) bool {
	return !v.EqualValues(other)
}

// ordering aggregates an elementwise ordering comparison.  Positions
// where either side is NaN are inconclusive: they satisfy the
// non-strict operators vacuously but never the strict ones.
func (v *Variable) ordering(verb string, other any, strict bool,
	op func(a, b float64) bool) (bool, error) {
	a, b, _, err := v.operands(other)
	if err != nil {
		return false, fmt.Errorf(
			"while trying to compare (%s) variable `%s` and `%v`, the "+
				"following error occurred: %w", verb, v.Name(), other, err)
	}
	conclusive := 0
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		conclusive++
		if !op(a[i], b[i]) {
			return false, nil
		}
	}
	if strict && conclusive == 0 && len(a) > 0 {
		return false, nil
	}
	return true, nil
}

// LessValues reports whether all conclusively comparable pairs satisfy
// strict less-than.  Pairs containing a NaN are skipped rather than
// counted as violations, so mixed arrays can still be strictly ordered;
// only when no pair is comparable at all does the answer become false.
func (v *Variable) LessValues(other any) (bool, error) {
	return v.ordering("<", other, true,
		func(a, b float64) bool { return a < b })
}

// LessEqualValues reports whether all conclusively comparable pairs
// satisfy less-or-equal.
func (v *Variable) LessEqualValues(other any) (bool, error) {
	return v.ordering("<=", other, false,
		func(a, b float64) bool { return a <= b })
}

// GreaterValues reports whether all conclusively comparable pairs
// satisfy strict greater-than.  NaN pairs are skipped like in
// LessValues.
func (v *Variable) GreaterValues(other any) (bool, error) {
	return v.ordering(">", other, true,
		func(a, b float64) bool { return a > b })
}

// GreaterEqualValues reports whether all conclusively comparable pairs
// satisfy greater-or-equal.
func (v *Variable) GreaterEqualValues(other any) (bool, error) {
	return v.ordering(">=", other, false,
		func(a, b float64) bool { return a >= b })
}
