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
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/unit"

	"github.com/notargets/gotherm/InputParameters"
	"github.com/notargets/gotherm/cise4"
	"github.com/notargets/gotherm/profile"
	"github.com/notargets/gotherm/units"
)

type ChannelRun struct {
	InputFile  string
	Samples    int     // Axial intervals of the temperature profile, none when zero
	Step       float64 // Grid spacing for tabulated crossings, none when zero
	Precision  int
	RecordFile string
}

// ChannelCmd represents the channel command
var ChannelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Non-boiling height, critical heat flux and temperature profiles of one channel",
	Long: `
Solves the CISE-4 subcooled boiling balance for the non-boiling height, sizes
the critical heat flux and reports the margin to the operating flux. With
pin data the clad and fuel temperature profiles are tabulated.

gotherm channel -I hotchannel.yaml -n 48`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cr := &ChannelRun{}
		if cr.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			return
		}
		cr.Samples, _ = cmd.Flags().GetInt("samples")
		cr.Step, _ = cmd.Flags().GetFloat64("step")
		cr.Precision, _ = cmd.Flags().GetInt("precision")
		cr.RecordFile, _ = cmd.Flags().GetString("record")
		var cp *InputParameters.ChannelParameters
		if cp, err = readChannel(cr.InputFile); err != nil {
			return
		}
		return RunChannel(cmd.OutOrStdout(), cr, cp)
	},
}

func init() {
	rootCmd.AddCommand(ChannelCmd)
	ChannelCmd.Flags().StringP("inputFile", "I", "", "YAML file for channel parameters")
	ChannelCmd.Flags().IntP("samples", "n", 0, "number of axial intervals in the temperature profile")
	ChannelCmd.Flags().Float64("step", 0, "tabulate boiling balance crossings on a grid of this spacing, meters")
	ChannelCmd.Flags().Int("precision", 3, "decimals to which both sides of the balance must agree at a crossing")
	ChannelCmd.Flags().String("record", "", "write inputs and results to this INI file")
}

func readChannel(path string) (cp *InputParameters.ChannelParameters, err error) {
	if len(path) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputFile)")
		return
	}
	if cp, err = InputParameters.ReadChannelFile(path); err != nil {
		return
	}
	if len(cp.SteamTable) == 0 {
		cp.SteamTable = viper.GetString("steam.table")
	}
	return
}

func RunChannel(w io.Writer, cr *ChannelRun, cp *InputParameters.ChannelParameters) (err error) {
	var (
		c InputParameters.Case
		r cise4.Result
	)
	cp.Fprint(w)
	if c, err = cp.Case(); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"Tsat[C]":   units.ToCelsius(c.Props.Tsat),
		"hin[J/kg]": float64(c.Props.Hin),
		"subcool":   c.Props.Subcooling(),
	}).Debug("saturation state")
	if cr.Step > 0 {
		var heights []float64
		if heights, err = cise4.Crossings(c.Geom, c.Flow, c.Props, cr.Step, cr.Precision); err != nil {
			return
		}
		fmt.Fprintf(w, "Tabulated crossings [m] = %v\n", heights)
	}
	if r, err = cise4.Analyze(c.Geom, c.Flow, c.Props, c.Gamma, c.QppOp, cise4Options()); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"H0":   r.H0,
		"CHFR": r.CHFR,
	}).Info("thermal margin")
	fmt.Fprintln(w, r)
	results := map[string]float64{
		"H0":              r.H0,
		"A":               r.A,
		"B":               r.B,
		"CriticalQuality": r.CriticalQuality,
		"CriticalFlux":    r.CriticalFlux,
	}
	if c.QppOp > 0 {
		results["CHFR"] = r.CHFR
		if cr.Samples > 0 {
			if err = writeProfile(w, cr.Samples, cp, c, results); err != nil {
				return
			}
		}
	}
	if len(cr.RecordFile) != 0 {
		err = writeRecord(cr.RecordFile, InputParameters.Record{Inputs: cp.Inputs(), Results: results})
	}
	return
}

func writeProfile(w io.Writer, n int, cp *InputParameters.ChannelParameters, c InputParameters.Case,
	results map[string]float64) (err error) {
	var (
		ch profile.Channel
		p  profile.Profile
	)
	if ch, err = cp.Channel(c); err != nil {
		return
	}
	if p, err = ch.Sample(n); err != nil {
		return
	}
	if err = p.Write(w); err != nil {
		return
	}
	z, T, err := ch.MaxCladTemp(n)
	if err != nil {
		return
	}
	results["ExitQuality"] = p.Quality[len(p.Quality)-1]
	results["MaxWallTemp"] = T
	fmt.Fprintf(w, "Max wall temperature %.2f C at z = %.4f m\n", units.ToCelsius(unit.Temperature(T)), z)
	if len(p.Centerline) == 0 {
		log.Warn("no clad and gap data, fuel temperatures skipped")
		return
	}
	if z, T, err = ch.MaxCenterlineTemp(n); err != nil {
		return
	}
	results["MaxCenterlineTemp"] = T
	fmt.Fprintf(w, "Max fuel centerline temperature %.1f C at z = %.4f m\n", units.ToCelsius(unit.Temperature(T)), z)
	return
}

func writeRecord(path string, rec InputParameters.Record) (err error) {
	var f *os.File
	if f, err = os.Create(path); err != nil {
		return
	}
	if err = rec.Write(f); err != nil {
		f.Close()
		return
	}
	log.WithField("file", path).Info("wrote record")
	return f.Close()
}
