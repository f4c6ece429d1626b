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
	"strings"
)

// SubVariables is an ordered, named collection of variables sharing one
// role (for example all control parameters of one model instance).
// Membership is fixed at construction; each contained variable is
// exclusively owned by its collection.
type SubVariables struct {
	name      string
	pub       *Pub
	variables []*Variable
	byName    map[string]*Variable
}

// NewSubVariables instantiates one variable per definition.  Names are
// case-normalised to lowercase and must be unique.  Passing a nil Pub
// selects the package default context.
func NewSubVariables(name string, pub *Pub,
	defs ...*Definition) (*SubVariables, error) {
	if pub == nil {
		pub = defaultPub
	}
	sub := &SubVariables{
		name:   name,
		pub:    pub,
		byName: make(map[string]*Variable, len(defs)),
	}
	for _, def := range defs {
		v := NewVariable(def)
		v.pub = pub
		key := strings.ToLower(def.Name)
		if _, exists := sub.byName[key]; exists {
			return nil, fmt.Errorf(
				"subvariables collection `%s` cannot hold two variables "+
					"named `%s`", name, key)
		}
		sub.byName[key] = v
		sub.variables = append(sub.variables, v)
	}
	return sub, nil
}

// Name returns the collection name.
func (s *SubVariables) Name() string { return s.name }

// Len returns the number of contained variables.
func (s *SubVariables) Len() int { return len(s.variables) }

// Variables returns the contained variables in definition order.
func (s *SubVariables) Variables() []*Variable { return s.variables }

// Names returns the lowercase variable names in definition order.
func (s *SubVariables) Names() []string {
	names := make([]string, len(s.variables))
	for i, v := range s.variables {
		names[i] = v.Name()
	}
	return names
}

// Variable looks a member up by its (case-insensitive) name.
func (s *SubVariables) Variable(name string) (*Variable, error) {
	v, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf(
			"subvariables collection `%s` does not handle a variable "+
				"named `%s`", s.name, strings.ToLower(name))
	}
	return v, nil
}

// Verify verifies all contained variables.
func (s *SubVariables) Verify() error {
	for _, v := range s.variables {
		if err := v.Verify(); err != nil {
			return fmt.Errorf(
				"while trying to verify subvariables collection `%s`: %w",
				s.name, err)
		}
	}
	return nil
}

// Trim trims all contained variables against their declared spans.
func (s *SubVariables) Trim() error {
	for _, v := range s.variables {
		if _, err := v.Trim(); err != nil {
			return fmt.Errorf(
				"while trying to trim subvariables collection `%s`: %w",
				s.name, err)
		}
	}
	return nil
}
