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

	"github.com/hydpy-dev/hydpy-sub001/optiontools"
	"github.com/hydpy-dev/hydpy-sub001/propertytools"
	"github.com/hydpy-dev/hydpy-sub001/timetools"
)

// Pub is the explicit per-run context replacing process-wide singletons:
// it bundles the options registry, the slot for the currently published
// time grids, and the index cache derived from them.  One Pub belongs to
// one single-threaded simulation run.
type Pub struct {
	Options *optiontools.Options

	timegrids *timetools.Timegrids
	indexer   *Indexer
}

// NewPub creates a fresh context with default options, no published time
// grids, and an empty index cache.
func NewPub() *Pub {
	p := &Pub{}
	p.Options = optiontools.NewOptions(
		func() *timetools.Timegrids { return p.timegrids })
	p.indexer = &Indexer{}
	return p
}

// defaultPub serves objects created without an explicit context.
var defaultPub = NewPub()

// DefaultPub returns the context used by objects created without an
// explicit one.
func DefaultPub() *Pub { return defaultPub }

// Timegrids returns the published time grids or a not-ready error when
// none are configured yet.
func (p *Pub) Timegrids() (*timetools.Timegrids, error) {
	if p.timegrids == nil {
		return nil, &propertytools.NotReadyError{
			Owner:     "pub",
			Attribute: "timegrids",
		}
	}
	return p.timegrids, nil
}

// SetTimegrids verifies and publishes the given time grids.
func (p *Pub) SetTimegrids(tgs *timetools.Timegrids) error {
	if err := tgs.Verify(); err != nil {
		return fmt.Errorf(
			"while trying to publish new time grids: %w", err)
	}
	p.timegrids = tgs
	return nil
}

// DeleteTimegrids removes the published time grids.
func (p *Pub) DeleteTimegrids() {
	p.timegrids = nil
}

// Indexer returns the context's index cache.
func (p *Pub) Indexer() *Indexer { return p.indexer }
