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

	"github.com/Knetic/govaluate"
	"gonum.org/v1/gonum/floats"
)

// Outputter evaluates user-defined expressions over the variables of one
// collection, yielding ad hoc derived quantities without a dedicated
// parameter subclass.  Expressions can reference 0-dimensional variables
// by name directly and multi-dimensional ones through the aggregate
// functions.
type Outputter struct {
	expressions map[string]*govaluate.EvaluableExpression
	functions   map[string]govaluate.ExpressionFunction
}

// NewOutputter parses the given name-to-expression mapping.  Default
// functions include:
//
// 'exp(x)' which applies the exponential function e^x.
//
// 'sum(x)' which sums a multi-dimensional variable's values.
//
// 'mean(x)' which averages a multi-dimensional variable's values.
func NewOutputter(expressions map[string]string,
	functions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	defaultFuncs := map[string]govaluate.ExpressionFunction{
		"exp": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf(
					"got %d arguments for function 'exp', but needs 1",
					len(args))
			}
			return math.Exp(args[0].(float64)), nil
		},
		"sum": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf(
					"got %d arguments for function 'sum', but needs 1",
					len(args))
			}
			values, ok := args[0].([]float64)
			if !ok {
				return nil, fmt.Errorf(
					"function 'sum' requires a multi-dimensional variable")
			}
			return floats.Sum(values), nil
		},
		"mean": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf(
					"got %d arguments for function 'mean', but needs 1",
					len(args))
			}
			values, ok := args[0].([]float64)
			if !ok {
				return nil, fmt.Errorf(
					"function 'mean' requires a multi-dimensional variable")
			}
			if len(values) == 0 {
				return math.NaN(), nil
			}
			return floats.Sum(values) / float64(len(values)), nil
		},
	}
	for name, function := range functions {
		defaultFuncs[name] = function
	}
	o := &Outputter{
		expressions: make(map[string]*govaluate.EvaluableExpression,
			len(expressions)),
		functions: defaultFuncs,
	}
	for name, text := range expressions {
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(
			text, defaultFuncs)
		if err != nil {
			return nil, fmt.Errorf(
				"while trying to parse the output expression `%s` (%s): %w",
				name, text, err)
		}
		o.expressions[name] = expression
	}
	return o, nil
}

// Evaluate computes all expressions against the given collection.
// Zero-dimensional variables enter as scalars, multi-dimensional ones as
// flat value slices.
func (o *Outputter) Evaluate(subvars *SubVariables) (map[string]float64, error) {
	parameters := make(map[string]interface{}, subvars.Len())
	for _, v := range subvars.Variables() {
		values, err := v.Values()
		if err != nil {
			return nil, fmt.Errorf(
				"while trying to collect the input values for the output "+
					"expressions: %w", err)
		}
		if v.Definition().NDim == 0 {
			parameters[v.Name()] = values.Elements[0]
		} else {
			parameters[v.Name()] = values.Elements
		}
	}
	results := make(map[string]float64, len(o.expressions))
	for name, expression := range o.expressions {
		result, err := expression.Evaluate(parameters)
		if err != nil {
			return nil, fmt.Errorf(
				"while trying to evaluate the output expression `%s`: %w",
				name, err)
		}
		value, ok := result.(float64)
		if !ok {
			return nil, fmt.Errorf(
				"the output expression `%s` does not yield a number but "+
					"a value of type %T", name, result)
		}
		results[name] = value
	}
	return results, nil
}
