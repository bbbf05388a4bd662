package profile

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/unit"

	"github.com/notargets/gotherm/shape"
	"github.com/notargets/gotherm/steam"
	"github.com/notargets/gotherm/types"
	"github.com/notargets/gotherm/units"
)

type FILM uint8

const (
	Film_DittusBoelter FILM = iota
	Film_Weisman
)

var FilmNameMap = map[string]FILM{
	"dittus-boelter": Film_DittusBoelter,
	"db":             Film_DittusBoelter,
	"weisman":        Film_Weisman,
}

func (f FILM) String() string {
	switch f {
	case Film_DittusBoelter:
		return "dittus-boelter"
	case Film_Weisman:
		return "weisman"
	}
	return fmt.Sprintf("FILM(%d)", uint8(f))
}

func NewFilm(name string) (f FILM, err error) {
	var ok bool
	if f, ok = FilmNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown film coefficient correlation %q", name)
	}
	return
}

// Pin holds the fuel rod materials needed for the conduction network
type Pin struct {
	CladConductivity units.ThermalConductivity
	GapConductance   units.HeatTransferCoefficient
}

/*
	Channel is one heated channel at a fixed operating point. Qpp0 is the
	amplitude of the chopped cosine heat flux, so q''(z) = Qpp0 Z(z). Qpp0
	is the share Gamma of the rod power generated in the fuel, so the
	coolant picks up Qpp0/Gamma per unit of clad area.
	Every method is a pure function of the receiver.
*/
type Channel struct {
	Geom  types.ChannelGeometry
	Flow  types.FlowState
	Props steam.Properties
	Qpp0  float64 // W/m2
	Mdot  float64 // kg/s
	Gamma float64
	Film  FILM
	Pin   Pin
}

// NewChannel validates the operating point
func NewChannel(geom types.ChannelGeometry, flow types.FlowState, props steam.Properties,
	qpp0, mdot, gamma float64) (c Channel, err error) {
	c = Channel{
		Geom:  geom,
		Flow:  flow,
		Props: props,
		Qpp0:  qpp0,
		Mdot:  mdot,
		Gamma: gamma,
	}
	if err = geom.Validate(); err != nil {
		return
	}
	if err = flow.Validate(); err != nil {
		return
	}
	switch {
	case qpp0 < 0:
		err = &types.DomainError{Quantity: "heat flux amplitude qpp0", Value: qpp0, Limit: "qpp0 >= 0"}
	case !(mdot > 0):
		err = &types.DomainError{Quantity: "mass flow rate mdot", Value: mdot, Limit: "mdot > 0"}
	case !(gamma > 0) || gamma > 1:
		err = &types.DomainError{Quantity: "gamma", Value: gamma, Limit: "0 < gamma <= 1"}
	case !(props.Hfg() > 0) || !(props.CpF > 0):
		err = &types.DomainError{Quantity: "fluid properties", Value: props.Hfg(), Limit: "hfg > 0, cp > 0"}
	}
	return
}

func (c Channel) shape() shape.AxialShape {
	return shape.NewAxialShape(float64(c.Geom.H), float64(c.Geom.Lambda))
}

// FluxAmplitude is the shape amplitude that delivers a core power Q over n
// rods: qpp0 = gamma Q / (n pi D IntShape(0, H))
func FluxAmplitude(Q float64, n int, gamma, D, H, lambda float64) float64 {
	return gamma * Q / (float64(n) * math.Pi * D * shape.IntShape(0, H, H, lambda))
}

// enthalpyRise is the coefficient c in h(z) = h_in + c IntShape(0, z)
func (c Channel) enthalpyRise() float64 {
	return math.Pi * float64(c.Geom.D) * c.Qpp0 / (c.Gamma * c.Mdot)
}

func (c Channel) HeatFlux(z float64) float64 {
	return c.Qpp0 * c.shape().At(z)
}

func (c Channel) LinearPower(z float64) float64 {
	return math.Pi * float64(c.Geom.D) * c.HeatFlux(z)
}

func (c Channel) Enthalpy(z float64) float64 {
	return float64(c.Props.Hin) + c.enthalpyRise()*c.shape().Integral(0, z)
}

// AverageEnthalpy is the axial mean of Enthalpy over the heated length, in
// closed form using the antiderivative of IntShape
func (c Channel) AverageEnthalpy() float64 {
	var (
		H      = float64(c.Geom.H)
		lambda = float64(c.Geom.Lambda)
		He     = H + 2*lambda
		w0     = shape.Omega(0, H, lambda)
		wH     = shape.Omega(H, H, lambda)
		P      = func(w float64) float64 { return w*math.Sin(w) + 2*math.Cos(w) }
		p0     = w0*math.Cos(w0) - math.Sin(w0)
	)
	intOfInt := He / math.Pi * (He/math.Pi*(P(w0)-P(wH)) - H*p0)
	return float64(c.Props.Hin) + c.enthalpyRise()*intOfInt/H
}

// Quality is the thermodynamic equilibrium quality, negative while subcooled
func (c Channel) Quality(z float64) float64 {
	return (c.Enthalpy(z) - float64(c.Props.Hf)) / c.Props.Hfg()
}

// FluidTemp is the bulk liquid temperature, capped at saturation
func (c Channel) FluidTemp(z float64) unit.Temperature {
	T := float64(c.Flow.Tin) + (c.Enthalpy(z)-float64(c.Props.Hin))/float64(c.Props.CpF)
	return unit.Temperature(math.Min(T, float64(c.Props.Tsat)))
}

// FilmCoefficient is the single phase forced convection coefficient,
// W/m2/K, evaluated with saturated liquid properties
func (c Channel) FilmCoefficient() (h units.HeatTransferCoefficient, err error) {
	var (
		De     = c.Geom.EquivalentDiameter()
		mu, cp = float64(c.Props.MuF), float64(c.Props.CpF)
		k      = float64(c.Props.KF)
		Re     = float64(c.Flow.G) * De / mu
		Pr     = cp * mu / k
		Nu     float64
	)
	if !(k > 0) || !(mu > 0) {
		err = &types.DomainError{Correlation: c.Film.String(), Quantity: "liquid conductivity", Value: k, Limit: "k > 0, mu > 0"}
		return
	}
	switch c.Film {
	case Film_Weisman:
		if !(c.Geom.S > 0) {
			err = &types.DomainError{Correlation: c.Film.String(), Quantity: "pitch S", Value: float64(c.Geom.S), Limit: "S > D"}
			return
		}
		C := 0.042*float64(c.Geom.S/c.Geom.D) - 0.024
		Nu = C * math.Pow(Re, 0.8) * math.Cbrt(Pr)
	default:
		Nu = 0.023 * math.Pow(Re, 0.8) * math.Pow(Pr, 0.4)
	}
	h = units.HeatTransferCoefficient(Nu * k / De)
	return
}

// CladTemp is the clad outer surface temperature under single phase forced
// convection from the bulk fluid
func (c Channel) CladTemp(z float64) (T unit.Temperature, err error) {
	var h units.HeatTransferCoefficient
	if h, err = c.FilmCoefficient(); err != nil {
		return
	}
	T = c.FluidTemp(z) + unit.Temperature(c.HeatFlux(z)/float64(h))
	return
}

// CladTempJensLottes is the nucleate boiling wall temperature,
//
//	Tsat + dT,  dT[F] = 1.897 q''[Btu/hr/ft2]^0.25 exp(-P[psia]/900)
//
// The constants belong to the English unit basis; only the inputs and the
// result are converted.
func (c Channel) CladTempJensLottes(z float64) unit.Temperature {
	var (
		qpp = units.ToBtuPerHrFt2(units.HeatFlux(math.Max(c.HeatFlux(z), 0)))
		P   = units.ToPsia(c.Flow.P)
		dTF = 1.897 * math.Pow(qpp, 0.25) * math.Exp(-P/900)
	)
	return c.Props.Tsat + unit.Temperature(units.DeltaFahrenheitToKelvin(dTF))
}

// WallTemp takes the lower of the forced convection and nucleate boiling
// estimates, the usual switch onto the boiling curve
func (c Channel) WallTemp(z float64) (T unit.Temperature, err error) {
	if T, err = c.CladTemp(z); err != nil {
		return
	}
	if jl := c.CladTempJensLottes(z); jl < T {
		T = jl
	}
	return
}
