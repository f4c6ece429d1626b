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
	"gonum.org/v1/gonum/floats"
)

// SetRefWeights installs the weighting-coefficient hook consulted by
// AverageValues.  Model code typically points it at a sibling parameter
// (for example the relative zone areas); the reference is non-owning.
func (v *Variable) SetRefWeights(hook func() (*sparse.DenseArray, error)) {
	v.refweights = hook
}

// AverageValues computes the weighted mean over a selectable subset of
// elements.  The given masks combine via union and must all be sub-masks
// of the variable's own relevance mask; without arguments, the relevance
// mask itself is used.  Weighting coefficients come from the refweights
// hook.  An empty selection yields NaN.
func (v *Variable) AverageValues(masks ...Mask) (float64, error) {
	wrap := func(err error) (float64, error) {
		return math.NaN(), fmt.Errorf(
			"while trying to average the value(s) of variable `%s`: %w",
			v.Name(), err)
	}
	values, err := v.Values()
	if err != nil {
		return wrap(err)
	}
	relevance, err := v.RelevanceMask()
	if err != nil {
		return wrap(err)
	}
	var selection Mask
	if len(masks) == 0 {
		selection = relevance
	} else {
		selection = make(Mask, len(relevance))
		for _, mask := range masks {
			if !mask.SubmaskOf(relevance) {
				return wrap(fmt.Errorf(
					"the given mask is not a sub-mask of the variable's " +
						"relevance mask"))
			}
			selection, err = selection.Union(mask)
			if err != nil {
				return wrap(err)
			}
		}
	}
	if selection.Count() == 0 {
		return math.NaN(), nil
	}
	if v.refweights == nil {
		return wrap(fmt.Errorf(
			"the variable does not define any weighting coefficients"))
	}
	weights, err := v.refweights()
	if err != nil {
		return wrap(err)
	}
	if len(weights.Elements) != len(values.Elements) {
		return wrap(fmt.Errorf(
			"the weighting coefficients comprise %d values, but %d are "+
				"required", len(weights.Elements), len(values.Elements)))
	}
	var selWeights, selProducts []float64
	for i, selected := range selection {
		if selected {
			selWeights = append(selWeights, weights.Elements[i])
			selProducts = append(selProducts,
				weights.Elements[i]*values.Elements[i])
		}
	}
	return floats.Sum(selProducts) / floats.Sum(selWeights), nil
}
