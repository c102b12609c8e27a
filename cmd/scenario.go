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
	"github.com/spf13/viper"

	"github.com/notargets/gotsunami/InputParameters"
	"github.com/notargets/gotsunami/model_problems/Tsunami"
	"github.com/notargets/gotsunami/readfiles"
)

var exampleScenario = `
########################################
Title: "Circular Dam Break"
Setup:
  Name: CircularDamBreak2d
  Values:
    HeightCenter: 10
    HeightOutside: 5
CellsX: 200
CellsY: 200
Width: 100
Height: 100
Solver: fwave
Reflect: [left, right, top, bottom]
EndTime: 10
WriteFrequency: 20
OutputFormat: netcdf
OutputDirectory: solutions
CheckpointFrequency: 100
########################################
`

// ReadScenario parses a scenario file
func ReadScenario(filename string) (sc *InputParameters.Scenario, err error) {
	var data []byte
	if data, err = os.ReadFile(filename); err != nil {
		return
	}
	sc = &InputParameters.Scenario{}
	if err = sc.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return
}

/*
RestartScenario continues the run stored in a checkpoint. The scenario embedded
in the checkpoint is used unless sc is given, either way the setup is replaced
by the checkpoint.
*/
func RestartScenario(checkpoint string, sc *InputParameters.Scenario) (restart *InputParameters.Scenario, err error) {
	if sc == nil {
		var cp *readfiles.Checkpoint
		if cp, err = readfiles.ReadCheckpoint(checkpoint); err != nil {
			return
		}
		sc = &InputParameters.Scenario{}
		if err = sc.Parse([]byte(cp.Scenario)); err != nil {
			return nil, fmt.Errorf("scenario of checkpoint %s: %w", checkpoint, err)
		}
	}
	restart = sc
	restart.Setup = InputParameters.SetupParameters{
		Name:  "Checkpoint",
		Files: map[string]string{"Checkpoint": checkpoint},
	}
	return
}

// options collects the run options shared by the commands
func options(cmd *cobra.Command) (opts Tsunami.Options) {
	opts.Verbose = viper.GetBool("verbose")
	opts.ParallelDegree = viper.GetInt("procs")
	opts.Graph, _ = cmd.Flags().GetBool("graph")
	opts.Snapshots, _ = cmd.Flags().GetInt("snapshots")
	opts.Progress, _ = cmd.Flags().GetBool("progress")
	opts.Perf, _ = cmd.Flags().GetBool("perf")
	opts.LogFrequency, _ = cmd.Flags().GetInt("logFrequency")
	if cmd.Flags().Lookup("serve") != nil {
		opts.Serve, _ = cmd.Flags().GetString("serve")
	}
	return
}

func addRunFlags(cmd *cobra.Command, endTime float64) {
	cmd.Flags().BoolP("graph", "g", false, "display water surface profiles once the run is over")
	cmd.Flags().Int("snapshots", 10, "number of profiles in the graph")
	cmd.Flags().Bool("progress", false, "show a progress bar instead of the update table")
	cmd.Flags().Bool("perf", false, "count CPU cycles of the sweeps, linux only")
	cmd.Flags().Int("logFrequency", 100, "steps between lines of the update table")
	cmd.Flags().String("restart", "", "checkpoint file to continue from")
	cmd.Flags().Float64("endTime", endTime, "end time, overrides the one of a scenario file when given")
}

func RunScenario(sc *InputParameters.Scenario, opts Tsunami.Options) (err error) {
	var c *Tsunami.Tsunami
	if c, err = Tsunami.NewTsunami(sc, opts); err != nil {
		return
	}
	if err = c.Run(); err != nil {
		return
	}
	if opts.Graph {
		c.ShowGraph()
	}
	return
}

func exitOnError(err error) {
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
}
