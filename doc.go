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

// Package hydpy implements the generic variable and parameter management
// core of a hydrological simulation framework: strongly typed,
// shape-polymorphic, unit-aware value containers with lazy shape
// enforcement, broadcasting, domain trimming, masked averaging, and the
// time-of-year machinery for seasonal interpolation.  The concrete
// process equations of the individual hydrological models sit on top of
// this package and are out of its scope.
package hydpy

// Version is the semantic version of this release.
const Version = "0.1.0"
