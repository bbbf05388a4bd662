package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotherm/InputParameters"
)

var channelFile = []byte(`
Title: Test Case
RodDiameter: 0.374 in
HeatedLength: 12 ft
Extrapolation: 18 in
Pitch: 0.496 in
CladThickness: 0.572 mm
GapThickness: 0.08 mm
MassFlux: 1500 kg/m2/s
Pressure: 7 MPa
InletTemperature: 270 C
HeatFlux: 5.e5 W/m2
Gamma: 0.974
CladConductivity: 17 W/m/K
GapConductance: 5678 W/m2/K
Uncertainty:
  G: 30 kg/m2/s
  P: 50 kPa
  Tin: 1 C
  HeatFlux: 1.e4 W/m2
`)

var loopFile = []byte(`
Channel:
  RodDiameter: 0.374 in
  HeatedLength: 12 ft
  Extrapolation: 18 in
  Pitch: 0.496 in
  MassFlux: 1500 kg/m2/s
  Pressure: 7 MPa
  InletTemperature: 270 C
  HeatFlux: 5.e5 W/m2
  Gamma: 0.974
Multiplier: homogeneous
Downcomer:
  Length: 4 m
  Height: 3.6576 m
  Dh: 0.05 m
  AreaRatio: 0.5
SpacerGrids:
  Count: 5
  K: 1
Losses:
  - Name: inlet orifice
    K: 5
    Z: 0 m
PumpEfficiency: 0.8
`)

func writeInput(t *testing.T, name string, data []byte) (path string) {
	path = filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return
}

func TestRunChannel(t *testing.T) {
	var cp InputParameters.ChannelParameters
	require.NoError(t, cp.Parse(channelFile))
	record := filepath.Join(t.TempDir(), "run.ini")
	var buf bytes.Buffer
	cr := &ChannelRun{Samples: 24, Step: 0.01, Precision: 2, RecordFile: record}
	require.NoError(t, RunChannel(&buf, cr, &cp))
	out := buf.String()
	{
		assert.Contains(t, out, "= Title")
		assert.Contains(t, out, "Tabulated crossings")
		assert.Contains(t, out, "CHFR = ")
		assert.Contains(t, out, "Tcl[C]")
		assert.Contains(t, out, "Max fuel centerline temperature")
	}
	{ // The record reads back
		data, err := os.ReadFile(record)
		require.NoError(t, err)
		rec, err := InputParameters.LoadRecord(data)
		require.NoError(t, err)
		assert.Equal(t, "7 MPa", rec.Inputs["Pressure"])
		assert.True(t, rec.Results["H0"] > 0)
		assert.True(t, rec.Results["CHFR"] > 0, "CHFR = %v", rec.Results["CHFR"])
		assert.True(t, rec.Results["MaxCenterlineTemp"] > rec.Results["MaxWallTemp"])
	}
	{
		bad := cp
		bad.MassFlux = "1500 ft"
		assert.Error(t, RunChannel(&buf, &ChannelRun{}, &bad))
	}
}

func TestRunLoop(t *testing.T) {
	var lp InputParameters.LoopParameters
	require.NoError(t, lp.Parse(loopFile))
	{ // Forward at the channel mass flux
		var buf bytes.Buffer
		require.NoError(t, RunLoop(&buf, &LoopRun{Samples: 12}, &lp))
		assert.Contains(t, buf.String(), "G = 1500.00 kg/m2/s: core friction")
		assert.Contains(t, buf.String(), "hp)")
		assert.Contains(t, buf.String(), "alpha")
	}
	{ // Inverse from a pressure drop that the forward run produced
		l, err := lp.Loop(loopOptions(), cise4Options())
		require.NoError(t, err)
		dp, err := l.DPFromG(3000)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, RunLoop(&buf, &LoopRun{PressureDrop: formatPa(dp.Total)}, &lp))
		assert.Contains(t, buf.String(), "drives dP")
		G, err := l.GFromDP(dp.Total)
		require.NoError(t, err)
		assert.InEpsilon(t, 3000, G, 1.e-6)
	}
	{
		var buf bytes.Buffer
		assert.Error(t, RunLoop(&buf, &LoopRun{MassFlux: "12 ft"}, &lp))
	}
}

func formatPa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64) + " Pa"
}

func TestRunUQ(t *testing.T) {
	var cp InputParameters.ChannelParameters
	require.NoError(t, cp.Parse(channelFile))
	var buf bytes.Buffer
	ur := &UQRun{Samples: 50, Seed: 3, Limit: 1}
	require.NoError(t, RunUQ(&buf, ur, &cp))
	assert.Contains(t, buf.String(), "CHFR:")
	{ // Reproducible from the seed
		var again bytes.Buffer
		require.NoError(t, RunUQ(&again, ur, &cp))
		assert.Equal(t, buf.String(), again.String())
	}
	{
		assert.Error(t, RunUQ(&buf, &UQRun{Samples: 1}, &cp))
	}
}

func TestCommandLine(t *testing.T) {
	path := writeInput(t, "channel.yaml", channelFile)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	{ // Flag values persist between executions, so failures go first
		rootCmd.SetArgs([]string{"channel"})
		assert.Error(t, rootCmd.Execute())
		rootCmd.SetArgs([]string{"channel", "-I", path, "--profile", "gpu"})
		assert.Error(t, rootCmd.Execute())
	}
	buf.Reset()
	rootCmd.SetArgs([]string{"channel", "-I", path, "--log-level", "warn", "--profile", ""})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "CHFR = ")
	{
		loopPath := writeInput(t, "loop.yaml", loopFile)
		buf.Reset()
		rootCmd.SetArgs([]string{"loop", "-I", loopPath, "--G", "2000 kg/m2/s"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, buf.String(), "G = 2000.00 kg/m2/s")
	}
}
