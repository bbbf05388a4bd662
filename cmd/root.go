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
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gotherm/cise4"
	"github.com/notargets/gotherm/hydraulics"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gotherm",
	Short: "Single channel BWR thermal hydraulics",
	Long: `
Computes the non-boiling height and CISE-4 critical heat flux margin of a
boiling water reactor channel, its axial temperature profiles, the loop
pressure drop and the spread of the margin under input uncertainty.

Inputs are YAML files with dimensional values carrying their units, for example

gotherm channel -I hotchannel.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		var lvl log.Level
		if lvl, err = log.ParseLevel(viper.GetString("log.level")); err != nil {
			return
		}
		log.SetLevel(lvl)
		switch mode := viper.GetString("profile"); mode {
		case "":
		case "cpu":
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		case "mem":
			profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		default:
			err = fmt.Errorf("unknown profile mode %q, use cpu or mem", mode)
		}
		return
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gotherm.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "logging level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("profile", "", "write a cpu or mem profile to the working directory")
	rootCmd.PersistentFlags().String("steam-table", "", "steam table file used when the input names none")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("steam.table", rootCmd.PersistentFlags().Lookup("steam-table"))
	setDefaults()
}

func setDefaults() {
	viper.SetDefault("cise4.intervals", cise4.DefaultOptions.Intervals)
	viper.SetDefault("cise4.tolerance", cise4.DefaultOptions.Tolerance)
	viper.SetDefault("loop.quadrature", hydraulics.DefaultOptions.QuadraturePoints)
	viper.SetDefault("loop.gmin", hydraulics.DefaultOptions.GMin)
	viper.SetDefault("loop.gmax", hydraulics.DefaultOptions.GMax)
	viper.SetDefault("loop.intervals", hydraulics.DefaultOptions.Intervals)
	viper.SetDefault("loop.tolerance", hydraulics.DefaultOptions.Tolerance)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			log.Warn(err)
		} else {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".gotherm")
	}
	viper.SetEnvPrefix("GOTHERM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	} else if cfgFile != "" {
		log.Warn(err)
	}
}

func cise4Options() cise4.Options {
	return cise4.Options{
		Intervals: viper.GetInt("cise4.intervals"),
		Tolerance: viper.GetFloat64("cise4.tolerance"),
	}
}

func loopOptions() hydraulics.Options {
	return hydraulics.Options{
		QuadraturePoints: viper.GetInt("loop.quadrature"),
		GMin:             viper.GetFloat64("loop.gmin"),
		GMax:             viper.GetFloat64("loop.gmax"),
		Intervals:        viper.GetInt("loop.intervals"),
		Tolerance:        viper.GetFloat64("loop.tolerance"),
	}
}
