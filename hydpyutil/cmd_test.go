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

package hydpyutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestVerifyCommand(t *testing.T) {
	Root.SetArgs([]string{"verify",
		"--firstdate", "2000-01-01",
		"--lastdate", "2001-01-01",
		"--stepsize", "1d"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
}

func TestVerifyCommandRejectsMisalignedSpan(t *testing.T) {
	Root.SetArgs([]string{"verify",
		"--firstdate", "2000-01-01",
		"--lastdate", "2000-01-02T12:00:00",
		"--stepsize", "1d"})
	if err := Root.Execute(); err == nil {
		t.Error("expected an error for a span not divisible by the step size")
	}
}

func TestVerifyCommandRejectsZeroStepSize(t *testing.T) {
	Root.SetArgs([]string{"verify",
		"--firstdate", "2000-01-01",
		"--lastdate", "2001-01-01",
		"--stepsize", "0s"})
	if err := Root.Execute(); err == nil ||
		!strings.Contains(err.Error(), "at least one second") {
		t.Errorf("unexpected error for a zero step size: %v", err)
	}
}

func TestInfoCommand(t *testing.T) {
	out := new(bytes.Buffer)
	infoCmd.SetOutput(out)
	Root.SetArgs([]string{"info",
		"--firstdate", "2000-01-01",
		"--lastdate", "2001-01-01",
		"--stepsize", "1d"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "366 steps") {
		t.Errorf("the step count is missing from:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "simulation step:     1d") {
		t.Errorf("the step size is missing from:\n%s", out.String())
	}
}

func TestInterpCommand(t *testing.T) {
	path := writeConfig(t, `
firstdate = "2000-01-01"
lastdate = "2001-01-01"
stepsize = "1d"

[[interpolator]]
toy = "1_1"
intercepts = [1.0]

[[interpolator]]
toy = "7_1"
intercepts = [-1.0]
`)
	out := new(bytes.Buffer)
	interpCmd.SetOutput(out)
	Root.SetArgs([]string{"interp", "--config", path, "--toy", "1_1"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1") {
		t.Errorf("the blended output is missing from:\n%s", out.String())
	}
}

func TestInterpCommandRequiresConfig(t *testing.T) {
	Root.SetArgs([]string{"interp", "--config", "", "--toy", "1_1"})
	if err := Root.Execute(); err == nil {
		t.Error("expected an error without a configuration file")
	}
}

func TestVersionCommand(t *testing.T) {
	out := new(bytes.Buffer)
	versionCmd.SetOutput(out)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "HydPy v") {
		t.Errorf("unexpected version output:\n%s", out.String())
	}
}
