package hydraulics

import (
	"fmt"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/unit"

	"github.com/notargets/gotherm/roots"
	"github.com/notargets/gotherm/shape"
	"github.com/notargets/gotherm/steam"
	"github.com/notargets/gotherm/types"
	"github.com/notargets/gotherm/units"
)

// DowncomerLeg is the unheated return path feeding the channel inlet
type DowncomerLeg struct {
	Length    unit.Length // Flow path length
	Height    unit.Length // Elevation drop along the flow direction
	Dh        unit.Length // Hydraulic diameter
	AreaRatio float64     // Core flow area over downcomer flow area, 1 when unset
}

// refineIntervals subdivide the last GFromDP bracket at each narrowing step
const refineIntervals = 16

type Options struct {
	QuadraturePoints int     // Gauss-Legendre points over the boiling length
	GMin, GMax       float64 // Mass flux search range for GFromDP, kg/m2/s
	Intervals        int     // Coarse scan intervals on [GMin, GMax]
	Tolerance        float64 // Relative to GMax
}

var DefaultOptions = Options{
	QuadraturePoints: 32,
	GMin:             1,
	GMax:             2.e4,
	Intervals:        400,
	Tolerance:        1.e-12,
}

func (o Options) withDefaults() Options {
	if o.QuadraturePoints < 1 {
		o.QuadraturePoints = DefaultOptions.QuadraturePoints
	}
	if !(o.GMin > 0) {
		o.GMin = DefaultOptions.GMin
	}
	if !(o.GMax > o.GMin) {
		o.GMax = DefaultOptions.GMax
	}
	if o.Intervals < 1 {
		o.Intervals = DefaultOptions.Intervals
	}
	if !(o.Tolerance > 0) {
		o.Tolerance = DefaultOptions.Tolerance
	}
	return o
}

/*
	Loop is a heated channel plus its downcomer. Below the non-boiling height
	H0 the core is liquid; above it the flow quality rises with the deposited
	power to ExitQuality at the top of the heated length,

		x(z) = ExitQuality IntShape(H0, z)/IntShape(H0, H)
*/
type Loop struct {
	Core        types.ChannelGeometry
	Downcomer   DowncomerLeg
	Losses      types.LossCoefficientSet
	Props       steam.Properties
	H0          float64
	ExitQuality float64
	Multiplier  MULTIPLIER
	Options     Options
}

func (l Loop) Validate() (err error) {
	var (
		H = float64(l.Core.H)
	)
	if err = l.Core.Validate(); err != nil {
		return
	}
	switch {
	case l.H0 < 0 || l.H0 > H:
		err = &types.DomainError{Quantity: "non-boiling height H0", Value: l.H0, Limit: fmt.Sprintf("0 <= H0 <= H = %g", H)}
	case l.ExitQuality < 0 || l.ExitQuality > 1:
		err = &types.DomainError{Quantity: "exit quality", Value: l.ExitQuality, Limit: "0 <= x <= 1"}
	case !(l.Props.RhoF > 0) || !(l.Props.RhoG > 0):
		err = &types.DomainError{Quantity: "saturated density", Value: float64(l.Props.RhoG), Limit: "rho > 0"}
	case !(l.Props.MuF > 0):
		err = &types.DomainError{Quantity: "liquid viscosity", Value: float64(l.Props.MuF), Limit: "mu > 0"}
	case l.Downcomer.Length > 0 && !(l.Downcomer.Dh > 0):
		err = &types.DomainError{Quantity: "downcomer hydraulic diameter", Value: float64(l.Downcomer.Dh), Limit: "Dh > 0"}
	case l.Downcomer.AreaRatio < 0:
		err = &types.DomainError{Quantity: "downcomer area ratio", Value: l.Downcomer.AreaRatio, Limit: ">= 0"}
	}
	if err != nil {
		return
	}
	return l.Losses.Validate()
}

// Quality is the flow quality at height z in the core
func (l Loop) Quality(z float64) float64 {
	var (
		H, lambda = float64(l.Core.H), float64(l.Core.Lambda)
	)
	if z <= l.H0 || l.H0 >= H || l.ExitQuality <= 0 {
		return 0
	}
	if z > H {
		z = H
	}
	return l.ExitQuality * shape.IntShape(l.H0, z, H, lambda) / shape.IntShape(l.H0, H, H, lambda)
}

func (l Loop) multiplier(z, x float64) float64 {
	if l.Multiplier == Multiplier_Martinelli {
		if z < l.H0 {
			return 1
		}
		return MartinelliMultiplier(x, l.Props.Saturation)
	}
	return HomogeneousMultiplier(z, l.H0, x, l.Props.Saturation)
}

// PressureDrop is the loop pressure difference decomposed by leg and
// mechanism, Pa. Downcomer elevation is a gain, so it is negative.
type PressureDrop struct {
	G                  float64
	CoreFriction       float64
	CoreLocal          float64
	CoreElevation      float64
	DowncomerFriction  float64
	DowncomerLocal     float64
	DowncomerElevation float64
	Total              float64
}

func (dp PressureDrop) String() string {
	return fmt.Sprintf("G = %.2f kg/m2/s: core friction %.1f, core local %.1f, core elevation %.1f, "+
		"downcomer friction %.1f, downcomer local %.1f, downcomer elevation %.1f, total %.1f Pa",
		dp.G, dp.CoreFriction, dp.CoreLocal, dp.CoreElevation,
		dp.DowncomerFriction, dp.DowncomerLocal, dp.DowncomerElevation, dp.Total)
}

// DPFromG evaluates the loop pressure difference at core mass flux G
func (l Loop) DPFromG(G float64) (dp PressureDrop, err error) {
	if !(G > 0) {
		err = &types.DomainError{Quantity: "mass flux G", Value: G, Limit: "G > 0"}
		return
	}
	if err = l.Validate(); err != nil {
		return
	}
	dp = l.pressureDrop(G)
	return
}

func (l Loop) pressureDrop(G float64) (dp PressureDrop) {
	var (
		opts    = l.Options.withDefaults()
		sat     = l.Props.Saturation
		rf      = float64(sat.RhoF)
		mu      = float64(sat.MuF)
		H       = float64(l.Core.H)
		H0      = l.H0
		Dh      = l.Core.HydraulicDiameter()
		dynamic = G * G / (2 * rf)
		phi2, rhoM float64
	)
	if H0 > H {
		H0 = H
	}
	if H0 < H {
		phi2 = quad.Fixed(func(z float64) float64 {
			return l.multiplier(z, l.Quality(z))
		}, H0, H, opts.QuadraturePoints, quad.Legendre{}, 0)
		rhoM = quad.Fixed(func(z float64) float64 {
			return MixtureDensity(AlphaZuberFindlay(l.Quality(z), G, sat), sat)
		}, H0, H, opts.QuadraturePoints, quad.Legendre{}, 0)
	}
	dp.G = G
	dp.CoreFriction = FrictionFactor(Reynolds(G, Dh, mu)) * dynamic / Dh * (H0 + phi2)
	for _, lc := range l.Losses.WithQualities(l.Quality).Core() {
		dp.CoreLocal += lc.K * dynamic * l.multiplier(float64(lc.Z), lc.Quality)
	}
	dp.CoreElevation = Gravity * (rf*H0 + rhoM)

	var (
		dc      = l.Downcomer
		ratio   = dc.AreaRatio
		Gdc, dh float64
	)
	if ratio == 0 {
		ratio = 1
	}
	Gdc = G * ratio
	dynamic = Gdc * Gdc / (2 * rf)
	if dc.Length > 0 {
		dh = float64(dc.Dh)
		dp.DowncomerFriction = FrictionFactor(Reynolds(Gdc, dh, mu)) * dynamic * float64(dc.Length) / dh
	}
	for _, lc := range l.Losses.Downcomer() {
		dp.DowncomerLocal += lc.K * dynamic
	}
	dp.DowncomerElevation = -rf * Gravity * float64(dc.Height)

	dp.Total = dp.CoreFriction + dp.CoreLocal + dp.CoreElevation +
		dp.DowncomerFriction + dp.DowncomerLocal + dp.DowncomerElevation
	return
}

/*
	GFromDP inverts DPFromG for the core mass flux. The loop characteristic is
	scanned on [GMin, GMax]; where the elevation head makes it non monotone
	and several mass fluxes give the same dP, the highest one is returned,
	which lies on the rising (friction dominated) branch.

	The friction factor drops by about 2.5% where the core Reynolds number
	crosses 30000, so dP(G) falls briefly there. For G within roughly half a
	percent below that switch the same dP is reached again just above it, and
	GFromDP returns the higher mass flux: the round trip holds for dP but not
	for G in that band.
*/
func (l Loop) GFromDP(dP float64) (G float64, err error) {
	var (
		opts = l.Options.withDefaults()
		in   = roots.Inputs{
			"dP": dP, "H": float64(l.Core.H), "H0": l.H0, "xe": l.ExitQuality,
			"GMin": opts.GMin, "GMax": opts.GMax,
		}
	)
	if err = l.Validate(); err != nil {
		return
	}
	f := func(g float64) float64 {
		return l.pressureDrop(g).Total - dP
	}
	if G, err = roots.HighestRoot(f, opts.GMin, opts.GMax, opts.Intervals, refineIntervals,
		opts.Tolerance*opts.GMax); err != nil {
		err = roots.WithInputs(err, "DPFromG(G) = dP", in)
	}
	return
}

// VoidProfile tabulates flow quality and drift flux void fraction on n+1
// heights over the core at mass flux G
func (l Loop) VoidProfile(G float64, n int) (z, x, alpha []float64) {
	z = roots.Grid(0, float64(l.Core.H), n)
	x = make([]float64, len(z))
	for i := range z {
		x[i] = l.Quality(z[i])
	}
	alpha = VoidFractions(x, G, l.Props.Saturation)
	return
}

// PumpDuty is the power needed to drive the loop at a given operating point
type PumpDuty struct {
	MassFlow   units.MassFlowRate
	VolumeFlow float64 // m3/s of liquid
	Hydraulic  unit.Power
	Shaft      unit.Power
	Horsepower float64 // Shaft power in hp
}

func (pd PumpDuty) String() string {
	return fmt.Sprintf("mdot = %.4g kg/s, Q = %.4g m3/s, hydraulic = %.4g W, shaft = %.4g W (%.3f hp)",
		float64(pd.MassFlow), pd.VolumeFlow, float64(pd.Hydraulic), float64(pd.Shaft), pd.Horsepower)
}

// PumpPower converts the loop pressure difference at core mass flux G into
// pump hydraulic and shaft power. The pump moves saturated liquid.
func (l Loop) PumpPower(G, dP, efficiency float64) (pd PumpDuty, err error) {
	var (
		area = l.Core.FlowArea()
		rf   = float64(l.Props.RhoF)
	)
	switch {
	case !(efficiency > 0) || efficiency > 1:
		err = &types.DomainError{Quantity: "pump efficiency", Value: efficiency, Limit: "0 < eta <= 1"}
	case !(area > 0):
		err = &types.DomainError{Quantity: "core flow area", Value: area, Limit: "S > D"}
	case !(rf > 0):
		err = &types.DomainError{Quantity: "liquid density", Value: rf, Limit: "rho > 0"}
	}
	if err != nil {
		return
	}
	pd.MassFlow = units.MassFlowRate(G * area)
	pd.VolumeFlow = float64(pd.MassFlow) / rf
	pd.Hydraulic = unit.Power(pd.VolumeFlow * dP)
	pd.Shaft = pd.Hydraulic / unit.Power(efficiency)
	pd.Horsepower = units.ToHorsepower(pd.Shaft)
	return
}
