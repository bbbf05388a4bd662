package cise4

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/unit"

	"github.com/notargets/gotherm/roots"
	"github.com/notargets/gotherm/shape"
	"github.com/notargets/gotherm/steam"
	"github.com/notargets/gotherm/types"
	"github.com/notargets/gotherm/units"
)

// Reference case: D = 0.374 in, H = 12 ft, lambda = 1.5 ft,
// G = 2.5e6 lbm/ft2/hr, P = 1000 psia, Tin = 530 F
func referenceCase(t *testing.T) (geom types.ChannelGeometry, flow types.FlowState, props steam.Properties) {
	var (
		must = func(s string, tag units.Tag) float64 {
			v, err := units.ParseAs(s, tag)
			require.NoError(t, err)
			return v
		}
	)
	geom = types.ChannelGeometry{
		D:      unit.Length(must("0.374 in", units.Meter)),
		H:      unit.Length(must("12 ft", units.Meter)),
		Lambda: unit.Length(must("1.5 ft", units.Meter)),
	}
	flow = types.FlowState{
		G:   units.MassFlux(must("2.5e6 lbm/ft2/hr", units.KgPerM2S)),
		P:   unit.Pressure(must("1000 psia", units.Pascal)),
		Pc:  types.WaterCriticalPressure,
		Tin: unit.Temperature(must("530 F", units.Kelvin)),
	}
	tb, err := steam.NewWaterTable()
	require.NoError(t, err)
	props, err = steam.ForFlow(tb, flow)
	require.NoError(t, err)
	return
}

func TestCoefficients(t *testing.T) {
	{ // a is continuous across the regime switch
		Pc := 22.064e6
		for _, P := range []float64{1.e6, 4.e6, 6.895e6, 10.e6, 15.e6} {
			gs := Threshold(P, Pc)
			left, right := A(gs*(1-1.e-12), P, Pc), A(gs*(1+1.e-12), P, Pc)
			assert.Equal(t, LowMassFlux, RegimeOf(gs, P, Pc))
			assert.Equal(t, HighMassFlux, RegimeOf(gs*(1+1.e-12), P, Pc))
			assert.InEpsilon(t, left, right, 1.e-3, "P = %v", P)
			// Both sides approach 2/3
			assert.InDelta(t, 2./3, left, 1.e-9)
		}
	}
	{ // a decreases with mass flux in both regimes
		P, Pc := 6.895e6, 22.064e6
		gs := Threshold(P, Pc)
		assert.True(t, A(0.5*gs, P, Pc) > A(0.9*gs, P, Pc))
		assert.True(t, A(2*gs, P, Pc) > A(3*gs, P, Pc))
	}
	{ // Hand computed values away from G* = 1096.7 at 1000 psia
		P, Pc := 6.895e6, 22.064e6
		r := 1 - P/Pc
		assert.InDelta(t, 1096.7, Threshold(P, Pc), 0.1)
		low := A(300, P, Pc)
		assert.Equal(t, LowMassFlux, RegimeOf(300, P, Pc))
		assert.InEpsilon(t, 1/(1+1.481e-4*300/(r*r*r)), low, 1.e-14)
		assert.InDelta(t, 0.8797, low, 1.e-4)
		high := A(3390, P, Pc)
		assert.Equal(t, HighMassFlux, RegimeOf(3390, P, Pc))
		assert.InEpsilon(t, r/math.Cbrt(3.39), high, 1.e-14)
		assert.InDelta(t, 0.4577, high, 1.e-4)
		for _, G := range []float64{10, 100, 500, 1000, 1200, 3000, 8000} {
			a := A(G, P, Pc)
			assert.True(t, a > 0 && a < 1, "G = %v, a = %v", G, a)
		}
	}
	{ // b power law
		D, G, P, Pc := 0.0095, 3000., 7.e6, 22.064e6
		assert.InEpsilon(t, 0.199*math.Pow(Pc/P-1, 0.4)*G*math.Pow(D, 1.4), B(D, G, P, Pc), 1.e-15)
		assert.InEpsilon(t, 2*B(D, G, P, Pc), B(D, 2*G, P, Pc), 1.e-14)
	}
	{ // Correlation domain
		var de *types.DomainError
		assert.True(t, errors.As(CheckDomain(0.01, 3000, 22.064e6, 22.064e6), &de))
		assert.Equal(t, Name, de.Correlation)
		assert.Error(t, CheckDomain(0.01, -1, 7.e6, 22.064e6))
		assert.Error(t, CheckDomain(0, 3000, 7.e6, 22.064e6))
		assert.NoError(t, CheckDomain(0.01, 3000, 7.e6, 22.064e6))
	}
}

func TestMassFlowRoundTrip(t *testing.T) {
	var (
		D, H, lambda = 0.0095, 3.6576, 0.4572
		hf, hin      = 1261.6e3, 1220.6e3
		gamma        = 0.974
	)
	for _, H0 := range []float64{0.1, 0.35, 1.2} {
		for _, qpp := range []float64{2.e5, 1.e6, 3.5e6} {
			mdot := MassFlowRate(qpp, D, H0, H, lambda, hf, hin, gamma)
			assert.True(t, mdot > 0)
			// The coolant takes up the full power qpp/gamma up to H0
			assert.InEpsilon(t, math.Pi*D*qpp*shape.IntShape(0, H0, H, lambda)/gamma, mdot*(hf-hin), 1.e-12)
			assert.InEpsilon(t, qpp, CriticalHeatFlux(mdot, D, H0, H, lambda, hf, hin, gamma), 1.e-12)
		}
	}
}

func TestNonBoilingHeight(t *testing.T) {
	geom, flow, props := referenceCase(t)
	H := float64(geom.H)
	H0, err := NonBoilingHeight(geom, flow, props, DefaultOptions)
	require.NoError(t, err)
	{ // Strictly inside the channel and on the satisfying side
		assert.True(t, H0 > 0 && H0 < H, "H0 = %v", H0)
		lhs, rhs, err := Residuals(geom, flow, props, []float64{H0})
		require.NoError(t, err)
		assert.True(t, lhs[0] < rhs[0])
	}
	{ // The crossing is unique on a 1 mm grid and matches the exhaustive scan
		grid := roots.GridStep(0, H, 0.001)
		lhs, rhs, err := Residuals(geom, flow, props, grid)
		require.NoError(t, err)
		var down, up int
		for i := 1; i < len(grid); i++ {
			prev, cur := lhs[i-1] < rhs[i-1], lhs[i] < rhs[i]
			switch {
			case prev && !cur:
				down++
			case !prev && cur:
				up++
			}
		}
		assert.Equal(t, 1, down)
		assert.Equal(t, 0, up)
		last := roots.LastSatisfying(grid, func(z float64) bool {
			l, r, _ := Residuals(geom, flow, props, []float64{z})
			return l[0] < r[0]
		})
		assert.True(t, H0 >= grid[last])
		assert.True(t, H0-grid[last] < grid[1]-grid[0])
	}
	{ // Tabulated crossings cluster around the bracketed root
		hs, err := Crossings(geom, flow, props, 0.001, 2)
		require.NoError(t, err)
		require.NotEmpty(t, hs)
		for _, h := range hs {
			assert.InDelta(t, H0, h, 0.05)
		}
	}
	{ // Identical inputs give bit identical outputs
		again, err := NonBoilingHeight(geom, flow, props, DefaultOptions)
		require.NoError(t, err)
		assert.Equal(t, H0, again)
	}
	{ // Resolution follows the tolerance
		coarse, err := NonBoilingHeight(geom, flow, props, Options{Intervals: 16, Tolerance: 1.e-3})
		require.NoError(t, err)
		assert.InDelta(t, H0, coarse, 1.e-3)
	}
}

func TestNonBoilingHeightFailures(t *testing.T) {
	geom, flow, props := referenceCase(t)
	{ // Saturated inlet: the inequality holds nowhere
		sat := props
		sat.Hin = sat.Hf
		_, err := NonBoilingHeight(geom, flow, sat, DefaultOptions)
		var rnf *roots.RootNotFoundError
		require.True(t, errors.As(err, &rnf))
		assert.Equal(t, float64(flow.G), rnf.Inputs["G"])
		assert.Contains(t, err.Error(), "no crossing")
	}
	{ // Out of domain inputs
		bad := flow
		bad.P = bad.Pc
		_, err := NonBoilingHeight(geom, bad, props, DefaultOptions)
		var de *types.DomainError
		assert.True(t, errors.As(err, &de))
		badGeom := geom
		badGeom.H = 0
		_, err = NonBoilingHeight(badGeom, flow, props, DefaultOptions)
		assert.True(t, errors.As(err, &de))
		assert.Equal(t, Name, de.Correlation)
	}
}

func TestAnalyze(t *testing.T) {
	geom, flow, props := referenceCase(t)
	geom = types.NewSquareLatticeGeometry(geom.D, geom.H, geom.Lambda, unit.Length(0.0126))
	var (
		gamma = 0.974
		qppOp = 1.e6
	)
	r, err := Analyze(geom, flow, props, gamma, qppOp, DefaultOptions)
	require.NoError(t, err)
	H0, err := NonBoilingHeight(geom, flow, props, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, H0, r.H0)
	assert.Equal(t, HighMassFlux, r.Regime)
	assert.Equal(t, B(float64(geom.D), float64(flow.G), float64(flow.P), float64(flow.Pc)), r.B)
	assert.True(t, r.CriticalQuality > 0 && r.CriticalQuality < r.A)
	assert.InEpsilon(t, float64(flow.G)*geom.FlowArea(), r.MassFlowRate, 1.e-14)
	assert.True(t, r.CriticalFlux > 0)
	assert.InEpsilon(t, r.MassFlowRate,
		MassFlowRate(r.CriticalFlux, float64(geom.D), r.H0, float64(geom.H), float64(geom.Lambda),
			float64(props.Hf), float64(props.Hin), gamma), 1.e-12)
	assert.InEpsilon(t, r.CriticalFlux/qppOp, r.CHFR, 1.e-15)
	assert.Contains(t, r.String(), "CHFR")
	{ // Without an operating flux no ratio is reported
		r2, err := Analyze(geom, flow, props, gamma, 0, DefaultOptions)
		require.NoError(t, err)
		assert.Equal(t, 0., r2.CHFR)
		assert.Equal(t, r.CriticalFlux, r2.CriticalFlux)
	}
	{
		_, err := Analyze(geom, flow, props, 1.5, qppOp, DefaultOptions)
		assert.Error(t, err)
		noPitch := geom
		noPitch.S = 0
		_, err = Analyze(noPitch, flow, props, gamma, qppOp, DefaultOptions)
		assert.Error(t, err)
	}
}

func TestDiameterRatio(t *testing.T) {
	geom, flow, props := referenceCase(t)
	geom = types.NewSquareLatticeGeometry(geom.D, geom.H, geom.Lambda, unit.Length(0.0126))
	require.Equal(t, 1., geom.DiameterRatio())
	wetted := geom
	wetted.Dh = 0.8 * geom.De
	heights := []float64{0.2, 0.6, 1.4, 2.9}
	{ // The allowed quality scales with Dh/De, the required one does not
		lhs, rhs, err := Residuals(geom, flow, props, heights)
		require.NoError(t, err)
		lhsW, rhsW, err := Residuals(wetted, flow, props, heights)
		require.NoError(t, err)
		for i := range heights {
			assert.InEpsilon(t, 0.8*lhs[i], lhsW[i], 1.e-14)
			assert.Equal(t, rhs[i], rhsW[i])
		}
	}
	{ // b stays on the rod diameter whatever the channel diameters are
		r, err := Analyze(geom, flow, props, 1, 0, DefaultOptions)
		require.NoError(t, err)
		rW, err := Analyze(wetted, flow, props, 1, 0, DefaultOptions)
		require.NoError(t, err)
		assert.Equal(t, r.B, rW.B)
		assert.Equal(t, r.A, rW.A)
		// A lower allowed quality moves the crossing downstream
		assert.True(t, rW.H0 > r.H0, "H0 = %v, %v", rW.H0, r.H0)
		assert.InEpsilon(t, 0.8*CriticalQuality(rW.BoilingLength, rW.A, rW.B), rW.CriticalQuality, 1.e-14)
	}
}
