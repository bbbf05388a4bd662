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
	"io"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gotherm/InputParameters"
	"github.com/notargets/gotherm/hydraulics"
	"github.com/notargets/gotherm/units"
)

type LoopRun struct {
	InputFile    string
	MassFlux     string // Evaluate the pressure drop at this mass flux
	PressureDrop string // Solve for the mass flux at this pressure drop, overrides the input file
	Samples      int    // Axial intervals of the void profile, none when zero
}

// LoopCmd represents the loop command
var LoopCmd = &cobra.Command{
	Use:   "loop",
	Short: "Pressure drop and mass flux of the channel and downcomer loop",
	Long: `
Evaluates the loop pressure drop at a mass flux, or solves for the mass flux
that a given pressure drop drives, and sizes the recirculation pump.

gotherm loop -I loop.yaml --dP "45 kPa"
gotherm loop -I loop.yaml --G "1500 kg/m2/s"`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		lr := &LoopRun{}
		if lr.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			return
		}
		lr.MassFlux, _ = cmd.Flags().GetString("G")
		lr.PressureDrop, _ = cmd.Flags().GetString("dP")
		lr.Samples, _ = cmd.Flags().GetInt("samples")
		if len(lr.InputFile) == 0 {
			return fmt.Errorf("must supply an input parameters file (-I, --inputFile)")
		}
		var lp *InputParameters.LoopParameters
		if lp, err = InputParameters.ReadLoopFile(lr.InputFile); err != nil {
			return
		}
		if len(lp.Channel.SteamTable) == 0 {
			lp.Channel.SteamTable = viper.GetString("steam.table")
		}
		return RunLoop(cmd.OutOrStdout(), lr, lp)
	},
}

func init() {
	rootCmd.AddCommand(LoopCmd)
	LoopCmd.Flags().StringP("inputFile", "I", "", "YAML file for loop parameters")
	LoopCmd.Flags().String("G", "", "core mass flux at which to evaluate the pressure drop, like \"1500 kg/m2/s\"")
	LoopCmd.Flags().String("dP", "", "loop pressure drop to solve the mass flux for, like \"45 kPa\"")
	LoopCmd.Flags().IntP("samples", "n", 0, "number of axial intervals in the void fraction profile")
}

func RunLoop(w io.Writer, lr *LoopRun, lp *InputParameters.LoopParameters) (err error) {
	var (
		l  hydraulics.Loop
		G  float64
		dp hydraulics.PressureDrop
	)
	lp.Fprint(w)
	if l, err = lp.Loop(loopOptions(), cise4Options()); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"H0":          l.H0,
		"ExitQuality": l.ExitQuality,
		"Multiplier":  l.Multiplier.String(),
	}).Debug("loop model")
	dPInput := lp.PressureDrop
	if len(lr.PressureDrop) != 0 {
		dPInput = lr.PressureDrop
	}
	switch {
	case len(lr.MassFlux) != 0:
		if G, err = units.ParseAs(lr.MassFlux, units.KgPerM2S); err != nil {
			return
		}
	case len(dPInput) != 0:
		var dP float64
		if dP, err = units.ParseAs(dPInput, units.Pascal); err != nil {
			return
		}
		if G, err = l.GFromDP(dP); err != nil {
			return
		}
		log.WithFields(log.Fields{"dP": dP, "G": G}).Info("mass flux from pressure drop")
		fmt.Fprintf(w, "G = %.4f kg/m2/s drives dP = %.5g Pa\n", G, dP)
	default:
		if G, err = units.ParseAs(lp.Channel.MassFlux, units.KgPerM2S); err != nil {
			return
		}
	}
	if dp, err = l.DPFromG(G); err != nil {
		return
	}
	fmt.Fprintln(w, dp)
	if lp.PumpEfficiency > 0 {
		var pd hydraulics.PumpDuty
		if pd, err = l.PumpPower(G, dp.Total, lp.PumpEfficiency); err != nil {
			return
		}
		fmt.Fprintln(w, pd)
	}
	if lr.Samples > 0 {
		z, x, alpha := l.VoidProfile(G, lr.Samples)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "z[m]\tx\talpha\t")
		for i := range z {
			fmt.Fprintf(tw, "%.4f\t%.4f\t%.4f\t\n", z[i], x[i], alpha[i])
		}
		err = tw.Flush()
	}
	return
}
