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

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Logger exposes the package logger, allowing callers to redirect or
// silence its output.
func Logger() *logrus.Logger { return log }

// GetTolerance returns the numerical tolerance accepted around a domain
// bound: a relative band of 1e-15 of the bound's magnitude, and zero for
// infinite bounds.
func GetTolerance(value float64) float64 {
	if math.IsInf(value, 0) {
		return 0
	}
	return math.Abs(value) * 1e-15
}

// DomainError reports values of an integer variable lying outside its
// declared span.
type DomainError struct {
	Variable string
	Values   []float64
	Lower    float64
	Upper    float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf(
		"the value(s) %v of variable `%s` lie(s) outside the valid "+
			"domain [%v, %v]", e.Values, e.Variable, e.Lower, e.Upper)
}

// Trim clamps the variable's values into its declared span.  See
// TrimBounds for the exact semantics.
func (v *Variable) Trim() (bool, error) {
	return v.TrimBounds(math.NaN(), math.NaN())
}

// TrimBounds clamps float values into [lower, upper].  NaN arguments
// fall back to the declared span, and NaN span entries mean "no bound on
// this side".  Values within a tolerance band around a bound are clamped
// silently; alterations beyond tolerance are reported through the return
// value and (unless suppressed via the WarnTrim option) a warning naming
// the old and new values.  Integer variables are not clamped: any value
// outside the bounds except the missing sentinel is a hard DomainError.
// Boolean variables are never trimmed.  The TrimVariables option
// disables trimming globally.
func (v *Variable) TrimBounds(lower, upper float64) (bool, error) {
	opts := v.options()
	if !opts.TrimVariables.Value() || v.def.Type == Bool {
		return false, nil
	}
	if math.IsNaN(lower) {
		lower = v.def.SpanLower
	}
	if math.IsNaN(upper) {
		upper = v.def.SpanUpper
	}
	values, err := v.Values()
	if err != nil {
		return false, fmt.Errorf(
			"while trying to trim the value(s) of variable `%s`: %w",
			v.Name(), err)
	}
	if v.def.Type == Int {
		var offenders []float64
		for _, value := range values.Elements {
			if value == IntNaN {
				continue
			}
			if (!math.IsNaN(lower) && value < lower) ||
				(!math.IsNaN(upper) && value > upper) {
				offenders = append(offenders, value)
			}
		}
		if len(offenders) > 0 {
			return false, &DomainError{
				Variable: v.Name(),
				Values:   offenders,
				Lower:    lower,
				Upper:    upper,
			}
		}
		return false, nil
	}
	old := append([]float64(nil), values.Elements...)
	altered := false
	for i, value := range values.Elements {
		if math.IsNaN(value) {
			continue
		}
		if !math.IsNaN(lower) && value < lower {
			values.Elements[i] = lower
			if lower-value > GetTolerance(lower) {
				altered = true
			}
		}
		if !math.IsNaN(upper) && value > upper {
			values.Elements[i] = upper
			if value-upper > GetTolerance(upper) {
				altered = true
			}
		}
	}
	if altered && opts.WarnTrim.Value() {
		log.Warnf(
			"for variable `%s`, the old value(s) %v had to be trimmed to "+
				"the new value(s) %v", v.Name(), old, values.Elements)
	}
	return altered, nil
}

// Verify raises an error when values required by the relevance mask are
// still missing (NaN), unless the declared default fill is itself NaN,
// in which case missing values are an accepted steady state.
func (v *Variable) Verify() error {
	if math.IsNaN(v.def.Init) && v.def.Type == Float && v.def.InitInfo {
		return nil
	}
	values, err := v.Values()
	if err != nil {
		return fmt.Errorf(
			"while trying to verify variable `%s`: %w", v.Name(), err)
	}
	mask, err := v.RelevanceMask()
	if err != nil {
		return fmt.Errorf(
			"while trying to verify variable `%s`: %w", v.Name(), err)
	}
	missing := 0
	for i, value := range values.Elements {
		if !mask[i] {
			continue
		}
		if math.IsNaN(value) || (v.def.Type == Int && value == IntNaN) {
			missing++
		}
	}
	if missing > 0 {
		return fmt.Errorf(
			"variable `%s` contains %d required value(s) that have not "+
				"been set yet", v.Name(), missing)
	}
	return nil
}
