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

// Command hydpy is a command-line interface for the HydPy variable
// management core.
package main

import (
	"fmt"
	"os"

	"github.com/hydpy-dev/hydpy-sub001/hydpyutil"
)

func main() {
	if err := hydpyutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
