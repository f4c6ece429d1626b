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
)

// Mask selects elements of a variable's flattened value array.  A
// variable's "relevance mask" marks the elements that carry meaning for
// the represented process; sub-masks select subsets for averaging.
type Mask []bool

// NewMask creates an all-true mask of the given length.
func NewMask(length int) Mask {
	m := make(Mask, length)
	for i := range m {
		m[i] = true
	}
	return m
}

// Union combines both masks elementwise.
func (m Mask) Union(other Mask) (Mask, error) {
	if len(m) != len(other) {
		return nil, fmt.Errorf(
			"masks of lengths %d and %d cannot be combined",
			len(m), len(other))
	}
	out := make(Mask, len(m))
	for i := range m {
		out[i] = m[i] || other[i]
	}
	return out, nil
}

// SubmaskOf reports whether every selected element of m is also selected
// by the other mask.
func (m Mask) SubmaskOf(other Mask) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if m[i] && !other[i] {
			return false
		}
	}
	return true
}

// Count returns the number of selected elements.
func (m Mask) Count() int {
	n := 0
	for _, selected := range m {
		if selected {
			n++
		}
	}
	return n
}

// SetMask installs a custom relevance mask.  Its length must match the
// variable's total element count.
func (v *Variable) SetMask(mask Mask) error {
	length, err := v.Length()
	if err != nil {
		return fmt.Errorf(
			"while trying to set the relevance mask of variable `%s`: %w",
			v.Name(), err)
	}
	if len(mask) != length {
		return fmt.Errorf(
			"the relevance mask of variable `%s` requires %d entries, "+
				"but %d are given", v.Name(), length, len(mask))
	}
	v.mask = append(Mask(nil), mask...)
	return nil
}

// RelevanceMask returns the variable's relevance mask, defaulting to
// all-true.
func (v *Variable) RelevanceMask() (Mask, error) {
	length, err := v.Length()
	if err != nil {
		return nil, err
	}
	if v.mask == nil {
		return NewMask(length), nil
	}
	return v.mask, nil
}
