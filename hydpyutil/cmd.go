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

// Package hydpyutil wires the variable management core to a command-line
// interface: an options table bound to cobra flag sets and a viper
// configuration, plus the TOML run configuration.
package hydpyutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hydpy-dev/hydpy-sub001"
	"github.com/hydpy-dev/hydpy-sub001/timetools"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var log = logrus.New()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the HydPy
	// command-line interface.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the run configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "firstdate",
			usage: `
              firstdate specifies the first date of the initialisation
              horizon in one of the supported date styles.`,
			defaultVal: "",
			flagsets: []*pflag.FlagSet{verifyCmd.Flags(), infoCmd.Flags(),
				interpCmd.Flags()},
		},
		{
			name: "lastdate",
			usage: `
              lastdate specifies the last date of the initialisation
              horizon in one of the supported date styles.`,
			defaultVal: "",
			flagsets: []*pflag.FlagSet{verifyCmd.Flags(), infoCmd.Flags(),
				interpCmd.Flags()},
		},
		{
			name: "stepsize",
			usage: `
              stepsize specifies the simulation step size as an integer
              followed by one of the unit letters d, h, m, or s.`,
			defaultVal: "1d",
			flagsets: []*pflag.FlagSet{verifyCmd.Flags(), infoCmd.Flags(),
				interpCmd.Flags()},
		},
		{
			name: "toy",
			usage: `
              toy specifies the time of year at which the configured
              seasonal blend is evaluated, for example 4_1 or
              7_15_12_0_0.`,
			shorthand:  "t",
			defaultVal: "1_1",
			flagsets:   []*pflag.FlagSet{interpCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("HYDPY")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(verifyCmd)
	Root.AddCommand(infoCmd)
	Root.AddCommand(interpCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf(
				"hydpy: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// timegridsFromCfg builds the time grids addressed by the active flag
// and configuration values.
func timegridsFromCfg(cfg *viper.Viper) (*timetools.Timegrids, error) {
	c := &RunConfig{
		FirstDate: cfg.GetString("firstdate"),
		LastDate:  cfg.GetString("lastdate"),
		StepSize:  cfg.GetString("stepsize"),
	}
	return c.Timegrids()
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "hydpy",
	Short: "The variable management core of the HydPy framework.",
	Long: `hydpy provides command-line access to the time grid and seasonal
interpolation machinery of the HydPy variable management core.

Refer to the subcommand documentation for configuration options and default
settings.  Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'HYDPY_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of HydPy.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("HydPy v%s\n", hydpy.Version)
	},
	DisableAutoGenTag: true,
}

// verifyCmd builds the configured time grids and reports whether they
// form a consistent pair.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the configured time grids",
	Long: `verify builds the initialisation and simulation grids from the active
configuration and checks their consistency: the first date must precede the
last date, the covered span must be an integer multiple of the step size,
and the simulation window must nest within the initialisation horizon.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tgs, err := runTimegrids()
		if err != nil {
			return err
		}
		log.WithField("timegrids", tgs.String()).Info("verification succeeded")
		return nil
	},
	DisableAutoGenTag: true,
}

// infoCmd prints the configured time grids and option values.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the run configuration",
	Long: `info builds the configured time grids, publishes them, and prints the
resulting simulation layout together with the active option values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pub := hydpy.NewPub()
		tgs, err := runTimegrids()
		if err != nil {
			return err
		}
		if err := pub.SetTimegrids(tgs); err != nil {
			return err
		}
		if cfgpath := Cfg.GetString("config"); cfgpath != "" {
			c, err := ReadRunConfig(cfgpath)
			if err != nil {
				return err
			}
			for name, value := range c.Options {
				if err := applyOption(pub.Options, name, value); err != nil {
					return err
				}
			}
		}
		cmd.Printf("initialisation grid: %v (%d steps)\n",
			tgs.Init, tgs.Init.Len())
		cmd.Printf("simulation grid:     %v (%d steps)\n",
			tgs.Sim, tgs.Sim.Len())
		cmd.Printf("simulation step:     %v\n",
			pub.Options.Simulationstep.Value())
		cmd.Printf("trimvariables:       %v\n",
			pub.Options.TrimVariables.Value())
		cmd.Printf("warntrim:            %v\n",
			pub.Options.WarnTrim.Value())
		cmd.Printf("usedefaultvalues:    %v\n",
			pub.Options.UseDefaultValues.Value())
		cmd.Printf("seriesfiletype:      %v\n",
			pub.Options.SeriesFileType.Value())
		cmd.Printf("seriesaggregation:   %v\n",
			pub.Options.SeriesAggregation.Value())
		return nil
	},
	DisableAutoGenTag: true,
}

// interpCmd evaluates the configured seasonal blend at one time of year.
var interpCmd = &cobra.Command{
	Use:   "interp",
	Short: "Evaluate the configured seasonal blend",
	Long: `interp registers the interpolation algorithms listed in the
configuration file, blends the two temporally nearest ones at the time of
year given by the --toy flag, and prints the blended outputs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgpath := Cfg.GetString("config")
		if cfgpath == "" {
			return fmt.Errorf(
				"hydpy: the interp command requires a configuration file " +
					"defining [[interpolator]] tables; provide one with --config")
		}
		c, err := ReadRunConfig(cfgpath)
		if err != nil {
			return err
		}
		pub := hydpy.NewPub()
		if err := c.Publish(pub); err != nil {
			return err
		}
		si, err := c.Interpolator(pub)
		if err != nil {
			return err
		}
		toy, err := timetools.NewTOY(Cfg.GetString("toy"))
		if err != nil {
			return err
		}
		outputs, err := si.Interpolate(toy, nil)
		if err != nil {
			return err
		}
		for i, output := range outputs {
			cmd.Printf("output %d at %v: %g\n", i, toy, output)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// runTimegrids prefers the full TOML run configuration and falls back to
// the scalar flag values.
func runTimegrids() (*timetools.Timegrids, error) {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		c, err := ReadRunConfig(cfgpath)
		if err != nil {
			return nil, err
		}
		return c.Timegrids()
	}
	return timegridsFromCfg(Cfg)
}
