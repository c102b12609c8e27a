/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/notargets/gotsunami/InputParameters"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One dimensional shallow water problems",
	Long: `
Runs a one dimensional setup, either from a scenario file or from the flags,

gotsunami 1D --setup ShockShock1d --value Height=10 --value Momentum=5 --cells 800
gotsunami 1D --setup TsunamiEvent1d --file Bathymetry=profile.csv --width 440000 --bathymetry --endTime 3600`,
	Run: func(cmd *cobra.Command, args []string) {
		sc, err := scenario1D(cmd)
		exitOnError(err)
		exitOnError(RunScenario(sc, options(cmd)))
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	addOneDFlags(OneDCmd)
}

func addOneDFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("inputConditionsFile", "I", "", "YAML scenario file, the setup flags are ignored when given")
	cmd.Flags().StringP("setup", "s", "DamBreak1d", "setup to run")
	cmd.Flags().StringToString("value", nil, "setup constant, like HeightLeft=10")
	cmd.Flags().StringToString("file", nil, "setup input file by role, like Bathymetry=profile.csv")
	cmd.Flags().IntP("cells", "k", 400, "number of cells")
	cmd.Flags().Float64("width", 100, "length of the domain")
	cmd.Flags().String("solver", "fwave", "Riemann solver: fwave or roe")
	cmd.Flags().Float64("CFL", InputParameters.DefaultCFL, "CFL - increase for speedup, decrease for stability")
	cmd.Flags().Bool("bathymetry", false, "include the bathymetry source term")
	cmd.Flags().StringSlice("reflect", nil, "reflecting sides: left, right")
	cmd.Flags().StringP("output", "o", "csv", "output format: csv, netcdf or none")
	cmd.Flags().String("outputDir", "solutions", "directory receiving the output")
	cmd.Flags().Int("writeFrequency", 0, "steps between outputs, 0 writes the first and last step")
	addRunFlags(cmd, 5)
}

// scenario1D builds the scenario of the 1D command, from the file or the flags
func scenario1D(cmd *cobra.Command) (sc *InputParameters.Scenario, err error) {
	var (
		flags      = cmd.Flags()
		file, _    = flags.GetString("inputConditionsFile")
		restart, _ = flags.GetString("restart")
		endTime, _ = flags.GetFloat64("endTime")
	)
	switch {
	case file != "":
		if sc, err = ReadScenario(file); err != nil {
			return
		}
		if flags.Changed("endTime") {
			sc.EndTime = endTime
		}
	case restart == "":
		sc = &InputParameters.Scenario{Dimensions: 1, EndTime: endTime}
		sc.Setup.Name, _ = flags.GetString("setup")
		var values map[string]string
		values, _ = flags.GetStringToString("value")
		sc.Setup.Values = make(map[string]float64, len(values))
		for key, v := range values {
			if sc.Setup.Values[key], err = strconv.ParseFloat(v, 64); err != nil {
				return nil, fmt.Errorf("setup value %s: %w", key, err)
			}
		}
		sc.Setup.Files, _ = flags.GetStringToString("file")
		sc.CellsX, _ = flags.GetInt("cells")
		sc.Width, _ = flags.GetFloat64("width")
		sc.Solver, _ = flags.GetString("solver")
		sc.CFL, _ = flags.GetFloat64("CFL")
		sc.Bathymetry, _ = flags.GetBool("bathymetry")
		sc.Reflect, _ = flags.GetStringSlice("reflect")
		sc.OutputFormat, _ = flags.GetString("output")
		sc.OutputDirectory, _ = flags.GetString("outputDir")
		sc.WriteFrequency, _ = flags.GetInt("writeFrequency")
		sc.Title = "1D " + sc.Setup.Name
		sc.SetDefaults()
	}
	if restart != "" {
		if sc, err = RestartScenario(restart, sc); err != nil {
			return
		}
		if flags.Changed("endTime") {
			sc.EndTime = endTime
		}
	}
	if sc.Dimensions != 1 {
		return nil, fmt.Errorf("scenario %q is %dD, use the 2D command", sc.Title, sc.Dimensions)
	}
	return
}
