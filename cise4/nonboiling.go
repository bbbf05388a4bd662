package cise4

import (
	"fmt"
	"math"

	"github.com/notargets/gotherm/roots"
	"github.com/notargets/gotherm/shape"
	"github.com/notargets/gotherm/steam"
	"github.com/notargets/gotherm/types"
)

// Options control the non-boiling height search
type Options struct {
	Intervals int     // Coarse scan intervals over (0, H)
	Tolerance float64 // Bisection tolerance on H0, meters
}

var DefaultOptions = Options{
	Intervals: 256,
	Tolerance: 1.e-9,
}

func (o Options) withDefaults() Options {
	if o.Intervals < 1 {
		o.Intervals = DefaultOptions.Intervals
	}
	if !(o.Tolerance > 0) {
		o.Tolerance = DefaultOptions.Tolerance
	}
	return o
}

// boilingBalance holds everything the subcooled boiling inequality needs,
// in SI magnitudes
type boilingBalance struct {
	H, lambda   float64
	a, b        float64
	diamRat     float64 // Dh/De
	enthalpyRat float64 // (hf - hin)/hfg
}

func newBoilingBalance(geom types.ChannelGeometry, flow types.FlowState, props steam.Properties) (bb boilingBalance, err error) {
	var (
		D         = float64(geom.D)
		G, P, Pc  = float64(flow.G), float64(flow.P), float64(flow.Pc)
		hfg       = props.Hfg()
		subcooled = props.Subcooling()
	)
	if err = geom.Validate(); err != nil {
		return bb, types.InCorrelation(err, Name)
	}
	if err = CheckDomain(D, G, P, Pc); err != nil {
		return
	}
	if !(hfg > 0) {
		err = &types.DomainError{Correlation: Name, Quantity: "latent heat hfg", Value: hfg, Limit: "hfg > 0"}
		return
	}
	bb = boilingBalance{
		H:           float64(geom.H),
		lambda:      float64(geom.Lambda),
		a:           A(G, P, Pc),
		b:           B(D, G, P, Pc),
		diamRat:     geom.DiameterRatio(),
		enthalpyRat: subcooled / hfg,
	}
	return
}

// lhs is the critical quality the correlation allows over the boiling
// length, scaled from the heated to the wetted channel by Dh/De
func (bb boilingBalance) lhs(H0 float64) float64 {
	LB := bb.H - H0
	return bb.diamRat * CriticalQuality(LB, bb.a, bb.b)
}

// rhs is the exit quality reached when the subcooling is removed by H0
func (bb boilingBalance) rhs(H0 float64) float64 {
	return bb.enthalpyRat * shape.IntShape(H0, bb.H, bb.H, bb.lambda) /
		shape.IntShape(0, H0, bb.H, bb.lambda)
}

func (bb boilingBalance) residual(H0 float64) float64 {
	return bb.lhs(H0) - bb.rhs(H0)
}

func (bb boilingBalance) inputs(flow types.FlowState, props steam.Properties) roots.Inputs {
	return roots.Inputs{
		"H": bb.H, "lambda": bb.lambda, "a": bb.a, "b": bb.b, "Dh/De": bb.diamRat,
		"G": float64(flow.G), "P": float64(flow.P), "Pc": float64(flow.Pc),
		"hf": float64(props.Hf), "hin": float64(props.Hin), "hfg": props.Hfg(),
	}
}

/*
	NonBoilingHeight finds the highest height H0 in (0, H) satisfying the
	subcooled boiling inequality

		Dh/De a (H - H0)/(H - H0 + b) < (hf - hin)/hfg * IntShape(H0, H)/IntShape(0, H0)

	with b evaluated on the rod diameter D.

	A coarse scan brackets the last sign change of LHS - RHS and bisection
	refines it to opts.Tolerance; the result is the satisfying side of the
	bracket. When the inequality holds nowhere or everywhere on the channel a
	RootNotFoundError carrying the inputs is returned.
*/
func NonBoilingHeight(geom types.ChannelGeometry, flow types.FlowState, props steam.Properties,
	opts Options) (H0 float64, err error) {
	var (
		bb boilingBalance
	)
	opts = opts.withDefaults()
	if bb, err = newBoilingBalance(geom, flow, props); err != nil {
		return
	}
	if H0, err = roots.LastCrossing(bb.residual, 0, bb.H, opts.Intervals, opts.Tolerance); err != nil {
		err = roots.WithInputs(err, "CISE-4 subcooled boiling inequality", bb.inputs(flow, props))
		return
	}
	return
}

// Residuals evaluates both sides of the subcooled boiling inequality on a grid
// of candidate heights
func Residuals(geom types.ChannelGeometry, flow types.FlowState, props steam.Properties,
	heights []float64) (lhs, rhs []float64, err error) {
	var bb boilingBalance
	if bb, err = newBoilingBalance(geom, flow, props); err != nil {
		return
	}
	lhs, rhs = make([]float64, len(heights)), make([]float64, len(heights))
	for i, h := range heights {
		lhs[i], rhs[i] = bb.lhs(h), bb.rhs(h)
	}
	return
}

// Crossings tabulates the inequality on a grid of spacing step and reports
// the heights where both sides agree to precision decimals
func Crossings(geom types.ChannelGeometry, flow types.FlowState, props steam.Properties,
	step float64, precision int) (heights []float64, err error) {
	var (
		grid     = roots.GridStep(0, float64(geom.H), step)
		lhs, rhs []float64
	)
	if lhs, rhs, err = Residuals(geom, flow, props, grid); err != nil {
		return
	}
	for _, i := range roots.FindIntersection(lhs, rhs, precision) {
		heights = append(heights, grid[i])
	}
	return
}

// Result summarizes a CISE-4 thermal margin calculation
type Result struct {
	H0              float64 // Non-boiling height, m
	BoilingLength   float64 // H - H0, m
	A, B            float64
	Regime          Regime
	CriticalQuality float64 // At the channel exit
	MassFlowRate    float64 // Channel flow G*A, kg/s
	CriticalFlux    float64 // Shape amplitude at the critical condition, W/m2
	OperatingFlux   float64 // Shape amplitude in operation, W/m2
	CHFR            float64 // CriticalFlux/OperatingFlux, zero when OperatingFlux is not set
}

func (r Result) String() string {
	return fmt.Sprintf("H0 = %.4f m, L_B = %.4f m, a = %.5f, b = %.5f m (%s), x_cr = %.4f, q''_crit = %.5g W/m2, CHFR = %.4f",
		r.H0, r.BoilingLength, r.A, r.B, r.Regime, r.CriticalQuality, r.CriticalFlux, r.CHFR)
}

// Analyze sizes the channel's critical heat flux at its operating mass flux.
// gamma is the fraction of the channel power delivered through the clad
// surface; qppOp is the operating flux amplitude, may be zero.
func Analyze(geom types.ChannelGeometry, flow types.FlowState, props steam.Properties,
	gamma, qppOp float64, opts Options) (r Result, err error) {
	var (
		D      = float64(geom.D)
		G      = float64(flow.G)
		P, Pc  = float64(flow.P), float64(flow.Pc)
		area   = geom.FlowArea()
		lambda = float64(geom.Lambda)
		H      = float64(geom.H)
	)
	if !(area > 0) {
		err = &types.DomainError{Correlation: Name, Quantity: "flow area", Value: area, Limit: "S > D"}
		return
	}
	if !(gamma > 0) || gamma > 1 {
		err = &types.DomainError{Correlation: Name, Quantity: "gamma", Value: gamma, Limit: "0 < gamma <= 1"}
		return
	}
	if r.H0, err = NonBoilingHeight(geom, flow, props, opts); err != nil {
		return
	}
	r.BoilingLength = H - r.H0
	r.A, r.B = A(G, P, Pc), B(D, G, P, Pc)
	r.Regime = RegimeOf(G, P, Pc)
	r.CriticalQuality = geom.DiameterRatio() * CriticalQuality(r.BoilingLength, r.A, r.B)
	r.MassFlowRate = G * area
	r.CriticalFlux = CriticalHeatFlux(r.MassFlowRate, D, r.H0, H, lambda,
		float64(props.Hf), float64(props.Hin), gamma)
	if qppOp > 0 {
		r.OperatingFlux = qppOp
		r.CHFR = r.CriticalFlux / qppOp
	}
	if math.IsNaN(r.CriticalFlux) || math.IsInf(r.CriticalFlux, 0) {
		err = &types.DomainError{Correlation: Name, Quantity: "critical heat flux", Value: r.CriticalFlux, Limit: "finite"}
	}
	return
}
