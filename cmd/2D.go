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
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/gotsunami/InputParameters"
)

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional solver, runs a scenario file on a single patch or an adaptive hierarchy",
	Long: `
Two dimensional solver, runs a scenario file on a single patch or, when the
scenario has an AMR section, on an adaptive hierarchy of patches,

gotsunami 2D -I scenario.yaml --serve localhost:8080
gotsunami 2D --restart solutions/checkpoint.nc --endTime 7200`,
	Run: func(cmd *cobra.Command, args []string) {
		sc, err := scenario2D(cmd)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			fmt.Printf("Example File:%s\n", exampleScenario)
			os.Exit(1)
		}
		exitOnError(RunScenario(sc, options(cmd)))
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	addTwoDFlags(TwoDCmd)
}

func addTwoDFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("inputConditionsFile", "I", "", "YAML scenario file")
	cmd.Flags().String("serve", "", "stream solution frames over a websocket at this address, like localhost:8080")
	addRunFlags(cmd, 0)
}

func scenario2D(cmd *cobra.Command) (sc *InputParameters.Scenario, err error) {
	var (
		flags      = cmd.Flags()
		file, _    = flags.GetString("inputConditionsFile")
		restart, _ = flags.GetString("restart")
		endTime, _ = flags.GetFloat64("endTime")
	)
	if file == "" && restart == "" {
		return nil, fmt.Errorf("must supply a scenario file (-I, --inputConditionsFile) or a checkpoint (--restart)")
	}
	if file != "" {
		if sc, err = ReadScenario(file); err != nil {
			return
		}
	}
	if restart != "" {
		if sc, err = RestartScenario(restart, sc); err != nil {
			return
		}
	}
	if flags.Changed("endTime") {
		sc.EndTime = endTime
	}
	if sc.Dimensions != 2 {
		return nil, fmt.Errorf("scenario %q is %dD, use the 1D command", sc.Title, sc.Dimensions)
	}
	return
}
