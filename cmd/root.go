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
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gotsunami",
	Short: "Shallow water solver for dam breaks and tsunami scenarios",
	Long: `
Solves the shallow water equations with the f-wave or Roe solver on a single
patch, or on a block structured adaptive hierarchy of patches.

gotsunami 1D --setup DamBreak1d --cells 400
gotsunami 2D -I scenario.yaml`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		startProfile(viper.GetString("profile"))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gotsunami.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print the scenario and per level details")
	rootCmd.PersistentFlags().IntP("procs", "p", 0, "maximum number of go routines, 0 uses every CPU")
	rootCmd.PersistentFlags().String("profile", "", "write a profile of the run: cpu, mem or block")
	rootCmd.PersistentFlags().String("profileDir", ".", "directory receiving the profile")
	for _, name := range []string{"verbose", "procs", "profile", "profileDir"} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".gotsunami" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".gotsunami")
	}

	viper.SetEnvPrefix("GOTSUNAMI")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func startProfile(kind string) {
	var mode func(*profile.Profile)
	switch strings.ToLower(kind) {
	case "":
		return
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "block":
		mode = profile.BlockProfile
	default:
		fmt.Printf("unknown profile %q, running without one\n", kind)
		return
	}
	profiler = profile.Start(mode, profile.ProfilePath(viper.GetString("profileDir")), profile.NoShutdownHook)
}
