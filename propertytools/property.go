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

// Package propertytools provides attribute-access contracts richer than
// plain struct fields: plain properties with distinct input and output
// types, protected properties that refuse access until prepared,
// properties depending on groups of protected properties, and properties
// falling back to computed defaults.  Host objects embed these types as
// fields, so per-host state lives directly on the host.
package propertytools

import (
	"fmt"
)

// NotReadyError reports access to an attribute before its required
// preparation step.  It always names the specific missing prerequisite.
type NotReadyError struct {
	Owner        string
	Attribute    string
	Prerequisite string
}

func (e *NotReadyError) Error() string {
	if e.Prerequisite != "" {
		return fmt.Sprintf(
			"attribute `%s` of object `%s` is not usable so far; "+
				"prepare attribute `%s` first",
			e.Attribute, e.Owner, e.Prerequisite)
	}
	return fmt.Sprintf(
		"attribute `%s` of object `%s` has not been prepared so far",
		e.Attribute, e.Owner)
}

// Property couples optional getter, setter, and deleter functions under
// one name, allowing distinct input and output types.  Unimplemented
// operations fail with a descriptive error instead of a nil call.
type Property[In, Out any] struct {
	Owner string
	Name  string
	Fget  func() (Out, error)
	Fset  func(In) error
	Fdel  func() error
}

// Get invokes the getter.
func (p *Property[In, Out]) Get() (Out, error) {
	if p.Fget == nil {
		var zero Out
		return zero, fmt.Errorf(
			"attribute `%s` of object `%s` is not gettable", p.Name, p.Owner)
	}
	return p.Fget()
}

// Set invokes the setter.
func (p *Property[In, Out]) Set(value In) error {
	if p.Fset == nil {
		return fmt.Errorf(
			"attribute `%s` of object `%s` is not settable", p.Name, p.Owner)
	}
	return p.Fset(value)
}

// Delete invokes the deleter.
func (p *Property[In, Out]) Delete() error {
	if p.Fdel == nil {
		return fmt.Errorf(
			"attribute `%s` of object `%s` is not deletable", p.Name, p.Owner)
	}
	return p.Fdel()
}

// Protected stores one value together with a "has been explicitly set"
// flag.  Reading before the first successful set fails with a
// NotReadyError; deleting resets to the unprepared state.  Hosts embed
// Protected values as fields, which keeps the per-host hidden state
// explicit.
type Protected[T any] struct {
	owner string
	name  string
	value T
	ready bool
}

// NewProtected prepares an (initially unready) protected attribute.
func NewProtected[T any](owner, name string) Protected[T] {
	return Protected[T]{owner: owner, name: name}
}

// Name returns the attribute name.
func (p *Protected[T]) Name() string { return p.name }

// Ready reports whether the attribute has been set at least once.
func (p *Protected[T]) Ready() bool { return p.ready }

// Get returns the stored value or a NotReadyError.
func (p *Protected[T]) Get() (T, error) {
	if !p.ready {
		var zero T
		return zero, &NotReadyError{Owner: p.owner, Attribute: p.name}
	}
	return p.value, nil
}

// Set stores the value and marks the attribute as prepared.
func (p *Protected[T]) Set(value T) {
	p.value = value
	p.ready = true
}

// Delete resets the attribute to the unprepared state.
func (p *Protected[T]) Delete() {
	var zero T
	p.value = zero
	p.ready = false
}

// Readiness is the aspect of a protected attribute a dependent property
// needs to know about.
type Readiness interface {
	Name() string
	Ready() bool
}

// Group is an ordered collection of protected attributes.
type Group []Readiness

// AllReady reports whether every member of the group is prepared.
func (g Group) AllReady() bool {
	for _, member := range g {
		if !member.Ready() {
			return false
		}
	}
	return true
}

// firstUnready returns the first unprepared member, if any.
func (g Group) firstUnready() (Readiness, bool) {
	for _, member := range g {
		if !member.Ready() {
			return member, true
		}
	}
	return nil, false
}

// Dependent gates its getter, setter, and deleter on a group of
// protected attributes.  On failure it names the first unready
// prerequisite found, not all of them.
type Dependent[In, Out any] struct {
	Owner    string
	Name     string
	Protects Group
	Fget     func() (Out, error)
	Fset     func(In) error
	Fdel     func() error
}

func (d *Dependent[In, Out]) check() error {
	if member, found := d.Protects.firstUnready(); found {
		return &NotReadyError{
			Owner:        d.Owner,
			Attribute:    d.Name,
			Prerequisite: member.Name(),
		}
	}
	return nil
}

// Get checks the prerequisites and invokes the getter.
func (d *Dependent[In, Out]) Get() (Out, error) {
	if err := d.check(); err != nil {
		var zero Out
		return zero, err
	}
	if d.Fget == nil {
		var zero Out
		return zero, fmt.Errorf(
			"attribute `%s` of object `%s` is not gettable", d.Name, d.Owner)
	}
	return d.Fget()
}

// Set checks the prerequisites and invokes the setter.
func (d *Dependent[In, Out]) Set(value In) error {
	if err := d.check(); err != nil {
		return err
	}
	if d.Fset == nil {
		return fmt.Errorf(
			"attribute `%s` of object `%s` is not settable", d.Name, d.Owner)
	}
	return d.Fset(value)
}

// Delete checks the prerequisites and invokes the deleter.
func (d *Dependent[In, Out]) Delete() error {
	if err := d.check(); err != nil {
		return err
	}
	if d.Fdel == nil {
		return fmt.Errorf(
			"attribute `%s` of object `%s` is not deletable", d.Name, d.Owner)
	}
	return d.Fdel()
}

// Default returns a stored custom value when one has been assigned and
// otherwise invokes the default-computing function on every call (the
// default is never cached).
type Default[T any] struct {
	name     string
	fdefault func() T
	custom   T
	assigned bool
}

// NewDefault prepares a default-valued attribute.
func NewDefault[T any](name string, fdefault func() T) Default[T] {
	return Default[T]{name: name, fdefault: fdefault}
}

// Name returns the attribute name.
func (d *Default[T]) Name() string { return d.name }

// Get returns the custom value if assigned, else the computed default.
func (d *Default[T]) Get() T {
	if d.assigned {
		return d.custom
	}
	return d.fdefault()
}

// Set stores a custom value.
func (d *Default[T]) Set(value T) {
	d.custom = value
	d.assigned = true
}

// Delete removes the custom value, re-enabling the computed default.
func (d *Default[T]) Delete() {
	var zero T
	d.custom = zero
	d.assigned = false
}

// Assigned reports whether a custom value is currently stored.
func (d *Default[T]) Assigned() bool { return d.assigned }
