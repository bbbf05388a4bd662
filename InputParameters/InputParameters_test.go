package InputParameters

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotherm/cise4"
	"github.com/notargets/gotherm/hydraulics"
	"github.com/notargets/gotherm/profile"
	"github.com/notargets/gotherm/shape"
	"github.com/notargets/gotherm/types"
	"github.com/notargets/gotherm/units"
)

var channelInput = []byte(`
Title: BWR hot channel
RodDiameter: 0.374 in
HeatedLength: 12 ft
Extrapolation: 18 in
Pitch: 0.496 in
CladThickness: 0.572 mm
GapThickness: 0.08 mm
MassFlux: 1.1e6 lbm/ft2/hr
Pressure: 1000 psia
InletTemperature: 530 F
HeatFlux: 5.e5 W/m2
Gamma: 0.974
Film: Weisman
CladConductivity: 17 W/m/K
GapConductance: 5678 W/m2/K
Uncertainty:
  G: 5.e4 lbm/ft2/hr
  Tin: 2 F
`)

func TestParseChannel(t *testing.T) {
	var cp ChannelParameters
	require.NoError(t, cp.Parse(channelInput))
	{
		assert.Equal(t, "BWR hot channel", cp.Title)
		assert.Equal(t, "12 ft", cp.HeatedLength)
		assert.Equal(t, 0.974, cp.Gamma)
		assert.Equal(t, "2 F", cp.Uncertainty["Tin"])
		var buf bytes.Buffer
		cp.Fprint(&buf)
		assert.Contains(t, buf.String(), "= Heated Length")
		assert.Contains(t, buf.String(), "Uncertainty[G] = 5.e4 lbm/ft2/hr")
	}
	{ // Conversion to SI
		geom, err := cp.Geometry()
		require.NoError(t, err)
		assert.InDelta(t, 3.6576, float64(geom.H), 1.e-12)
		assert.InDelta(t, 0.4572, float64(geom.Lambda), 1.e-12)
		assert.True(t, geom.De > 0)
		assert.InDelta(t, float64(geom.D)/2-0.000572-0.00008, float64(geom.FuelRadius), 1.e-12)
		flow, err := cp.FlowState()
		require.NoError(t, err)
		assert.InDelta(t, 1491.85, float64(flow.G), 0.01)
		assert.Equal(t, types.WaterCriticalPressure, flow.Pc)
		assert.InDelta(t, 549.817, float64(flow.Tin), 1.e-3)
	}
	{ // Spreads are differences
		u, err := cp.UncertaintyOf()
		require.NoError(t, err)
		assert.InDelta(t, 10./9, u.Tin, 1.e-12)
		assert.InDelta(t, 67.81, u.G, 0.01)
		assert.Equal(t, 0., u.P)
		bad := cp
		bad.Uncertainty = map[string]string{"enthalpy": "1 kJ/kg"}
		_, err = bad.UncertaintyOf()
		assert.Error(t, err)
	}
	{ // Operating point and pin
		c, err := cp.Case()
		require.NoError(t, err)
		assert.Equal(t, 5.e5, c.QppOp)
		ch, err := cp.Channel(c)
		require.NoError(t, err)
		assert.Equal(t, profile.Film_Weisman, ch.Film)
		assert.Equal(t, units.ThermalConductivity(17), ch.Pin.CladConductivity)
		st, err := cp.Study(c, 10, 7)
		require.NoError(t, err)
		assert.Equal(t, c.QppOp, st.QppOp)
	}
}

func TestChannelAlternatives(t *testing.T) {
	var cp ChannelParameters
	require.NoError(t, cp.Parse(channelInput))
	{ // Peaking factor in place of the extrapolation length
		alt := cp
		alt.Extrapolation, alt.PeakingFactor = "", 1.4
		geom, err := alt.Geometry()
		require.NoError(t, err)
		shp := shape.AxialShape{H: float64(geom.H), Lambda: float64(geom.Lambda)}
		Fz, err := shp.PeakingFactor()
		require.NoError(t, err)
		assert.InEpsilon(t, 1.4, Fz, 1.e-8)
	}
	{ // Flux from core power
		alt := cp
		alt.HeatFlux, alt.CorePower, alt.Rods = "", "3.5 MW", 62
		geom, err := alt.Geometry()
		require.NoError(t, err)
		qpp, err := alt.OperatingFlux(geom)
		require.NoError(t, err)
		expect := profile.FluxAmplitude(3.5e6, 62, 0.974, float64(geom.D), float64(geom.H), float64(geom.Lambda))
		assert.Equal(t, expect, qpp)
		alt.Rods = 0
		_, err = alt.OperatingFlux(geom)
		assert.Error(t, err)
	}
	{ // Missing and mistyped inputs
		alt := cp
		alt.HeatedLength = ""
		_, err := alt.Geometry()
		assert.Error(t, err)
		alt = cp
		alt.Pressure = "1000 ft"
		_, err = alt.FlowState()
		assert.Error(t, err)
		alt = cp
		alt.Film = "chen"
		_, err = alt.FilmType()
		assert.Error(t, err)
	}
	{
		alt := cp
		alt.Gamma = 0
		assert.Equal(t, 1., alt.GammaOrDefault())
	}
}

func TestParseLoop(t *testing.T) {
	var lp LoopParameters
	input := append([]byte("Channel:\n"), indent(channelInput)...)
	input = append(input, []byte(`
Multiplier: martinelli
Downcomer:
  Length: 4 m
  Height: 3.6576 m
  Dh: 0.05 m
  AreaRatio: 0.5
SpacerGrids:
  Count: 5
  K: 1.0
Losses:
  - Name: inlet orifice
    K: 5
    Z: 0 m
  - Name: separator
    K: 2
    Z: 12 ft
  - Name: downcomer
    K: 1
    Leg: downcomer
PressureDrop: 50 kPa
PumpEfficiency: 0.8
`)...)
	require.NoError(t, lp.Parse(input))
	assert.Equal(t, 5, lp.SpacerGrids.Count)
	assert.Equal(t, "downcomer", lp.Losses[2].Leg)
	l, err := lp.Loop(hydraulics.DefaultOptions, cise4.DefaultOptions)
	require.NoError(t, err)
	{
		assert.Equal(t, hydraulics.Multiplier_Martinelli, l.Multiplier)
		assert.Equal(t, 7, len(l.Losses.Core()))
		assert.Equal(t, 1, len(l.Losses.Downcomer()))
		assert.True(t, l.H0 > 0 && l.H0 < float64(l.Core.H), "H0 = %v", l.H0)
		assert.True(t, l.ExitQuality > 0 && l.ExitQuality < 1, "xe = %v", l.ExitQuality)
	}
	{ // The non-boiling height search follows the options handed in
		coarse := cise4.Options{Intervals: 16, Tolerance: 1.e-3}
		lc, err := lp.Loop(hydraulics.DefaultOptions, coarse)
		require.NoError(t, err)
		c, err := lp.Channel.Case()
		require.NoError(t, err)
		H0, err := cise4.NonBoilingHeight(c.Geom, c.Flow, c.Props, coarse)
		require.NoError(t, err)
		assert.Equal(t, H0, lc.H0)
		assert.NotEqual(t, l.H0, lc.H0)
		assert.InDelta(t, l.H0, lc.H0, 1.e-3)
	}
	{ // Given H0 and exit quality are used as is
		lp.NonBoilingHeight, lp.ExitQuality = "1 m", 0.12
		l, err = lp.Loop(hydraulics.DefaultOptions, cise4.DefaultOptions)
		require.NoError(t, err)
		assert.Equal(t, 1., l.H0)
		assert.Equal(t, 0.12, l.ExitQuality)
	}
	{
		var buf bytes.Buffer
		lp.Fprint(&buf)
		assert.Contains(t, buf.String(), "= Two-Phase Multiplier")
		assert.Contains(t, buf.String(), "5 grids")
	}
}

func indent(b []byte) (r []byte) {
	for _, line := range bytes.Split(bytes.TrimLeft(b, "\n"), []byte("\n")) {
		if len(line) != 0 {
			r = append(r, "  "...)
			r = append(r, line...)
		}
		r = append(r, '\n')
	}
	return
}

func TestRecord(t *testing.T) {
	var cp ChannelParameters
	require.NoError(t, cp.Parse(channelInput))
	rec := Record{
		Inputs:  cp.Inputs(),
		Results: map[string]float64{"H0": 1.2345678901234, "CHFR": 1.87},
	}
	var buf bytes.Buffer
	require.NoError(t, rec.Write(&buf))
	{
		assert.Contains(t, buf.String(), "[results]")
		assert.NotContains(t, buf.String(), "CorePower")
	}
	back, err := LoadRecord(buf.Bytes())
	require.NoError(t, err)
	{
		assert.Equal(t, rec.Results, back.Results)
		assert.Equal(t, "12 ft", back.Inputs["HeatedLength"])
		assert.Equal(t, "BWR hot channel", back.Inputs["Title"])
		assert.Equal(t, "0.974", back.Inputs["Gamma"])
	}
	{
		_, err = LoadRecord([]byte("[results]\nH0 = tall\n"))
		assert.Error(t, err)
	}
}
