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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/gotherm/InputParameters"
	"github.com/notargets/gotherm/uq"
)

type UQRun struct {
	InputFile  string
	Samples    int
	Seed       uint64
	Limit      float64
	RecordFile string
}

// UQCmd represents the uq command
var UQCmd = &cobra.Command{
	Use:   "uq",
	Short: "Propagate operating point uncertainty through the thermal margin",
	Long: `
Samples mass flux, pressure, inlet temperature and heat flux from normal
distributions with the one sigma spreads given under Uncertainty in the input
file, and summarizes the non-boiling height and CHFR.

gotherm uq -I hotchannel.yaml --samples 1000 --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ur := &UQRun{}
		if ur.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			return
		}
		ur.Samples, _ = cmd.Flags().GetInt("samples")
		ur.Seed, _ = cmd.Flags().GetUint64("seed")
		ur.Limit, _ = cmd.Flags().GetFloat64("limit")
		ur.RecordFile, _ = cmd.Flags().GetString("record")
		var cp *InputParameters.ChannelParameters
		if cp, err = readChannel(ur.InputFile); err != nil {
			return
		}
		return RunUQ(cmd.OutOrStdout(), ur, cp)
	},
}

func init() {
	rootCmd.AddCommand(UQCmd)
	UQCmd.Flags().StringP("inputFile", "I", "", "YAML file for channel parameters with an Uncertainty map")
	UQCmd.Flags().IntP("samples", "n", 1000, "number of realizations")
	UQCmd.Flags().Uint64("seed", 1, "random seed, a given seed reproduces the study")
	UQCmd.Flags().Float64("limit", 1, "CHFR below which a realization counts as a failure")
	UQCmd.Flags().String("record", "", "write inputs and summary statistics to this INI file")
}

func RunUQ(w io.Writer, ur *UQRun, cp *InputParameters.ChannelParameters) (err error) {
	var (
		c   InputParameters.Case
		st  uq.Study
		sum uq.Summary
	)
	cp.Fprint(w)
	if c, err = cp.Case(); err != nil {
		return
	}
	if st, err = cp.Study(c, ur.Samples, ur.Seed); err != nil {
		return
	}
	st.Options = cise4Options()
	st.Limit = ur.Limit
	if sum, err = st.Run(); err != nil {
		return
	}
	if sum.Rejected > 0 {
		log.WithFields(log.Fields{
			"rejected": sum.Rejected,
			"samples":  ur.Samples,
		}).Warn("realizations outside the correlation domain")
	}
	fmt.Fprintln(w, sum)
	if len(ur.RecordFile) != 0 {
		results := map[string]float64{
			"H0.Mean":         sum.H0.Mean,
			"H0.StdDev":       sum.H0.StdDev,
			"CHFR.Mean":       sum.CHFR.Mean,
			"CHFR.StdDev":     sum.CHFR.StdDev,
			"CHFR.P05":        sum.CHFR.P05,
			"CHFR.Min":        sum.CHFR.Min,
			"FailureFraction": sum.FailureFraction,
			"Rejected":        float64(sum.Rejected),
		}
		err = writeRecord(ur.RecordFile, InputParameters.Record{Inputs: cp.Inputs(), Results: results})
	}
	return
}
