package InputParameters

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/unit"

	"github.com/notargets/gotherm/cise4"
	"github.com/notargets/gotherm/hydraulics"
	"github.com/notargets/gotherm/profile"
	"github.com/notargets/gotherm/shape"
	"github.com/notargets/gotherm/steam"
	"github.com/notargets/gotherm/types"
	"github.com/notargets/gotherm/units"
	"github.com/notargets/gotherm/uq"
)

// quantity parses a required dimensional field
func quantity(field, s string, want units.Tag) (v float64, err error) {
	if len(strings.TrimSpace(s)) == 0 {
		return 0, fmt.Errorf("missing input %s (in %s)", field, want)
	}
	if v, err = units.ParseAs(s, want); err != nil {
		err = fmt.Errorf("input %s: %w", field, err)
	}
	return
}

// optional parses a dimensional field that may be left empty
func optional(field, s string, want units.Tag) (v float64, err error) {
	if len(strings.TrimSpace(s)) == 0 {
		return
	}
	return quantity(field, s, want)
}

// Table returns the steam table named by SteamTable, or the built in water table
func (cp *ChannelParameters) Table() (steam.PropertyTable, error) {
	if len(cp.SteamTable) != 0 {
		return steam.LoadTable(cp.SteamTable)
	}
	return steam.NewWaterTable()
}

func (cp *ChannelParameters) Geometry() (geom types.ChannelGeometry, err error) {
	var (
		D, H, lambda, S float64
	)
	if D, err = quantity("RodDiameter", cp.RodDiameter, units.Meter); err != nil {
		return
	}
	if H, err = quantity("HeatedLength", cp.HeatedLength, units.Meter); err != nil {
		return
	}
	switch {
	case len(cp.Extrapolation) != 0:
		if lambda, err = quantity("Extrapolation", cp.Extrapolation, units.Meter); err != nil {
			return
		}
	case cp.PeakingFactor > 0:
		if lambda, err = shape.FindLambdaPeaking(H, cp.PeakingFactor); err != nil {
			return
		}
	}
	if S, err = optional("Pitch", cp.Pitch, units.Meter); err != nil {
		return
	}
	if S > 0 {
		geom = types.NewSquareLatticeGeometry(unit.Length(D), unit.Length(H), unit.Length(lambda), unit.Length(S))
	} else {
		geom = types.ChannelGeometry{D: unit.Length(D), H: unit.Length(H), Lambda: unit.Length(lambda)}
	}
	var clad, gap float64
	if clad, err = optional("CladThickness", cp.CladThickness, units.Meter); err != nil {
		return
	}
	if gap, err = optional("GapThickness", cp.GapThickness, units.Meter); err != nil {
		return
	}
	geom.CladThickness, geom.GapThickness = unit.Length(clad), unit.Length(gap)
	if clad > 0 {
		geom.FuelRadius = geom.D/2 - geom.CladThickness - geom.GapThickness
	}
	err = geom.Validate()
	return
}

func (cp *ChannelParameters) FlowState() (flow types.FlowState, err error) {
	var G, P, Pc, Tin float64
	if G, err = quantity("MassFlux", cp.MassFlux, units.KgPerM2S); err != nil {
		return
	}
	if P, err = quantity("Pressure", cp.Pressure, units.Pascal); err != nil {
		return
	}
	if Pc, err = optional("CriticalPressure", cp.CriticalPressure, units.Pascal); err != nil {
		return
	}
	if Pc == 0 {
		Pc = float64(types.WaterCriticalPressure)
	}
	if Tin, err = quantity("InletTemperature", cp.InletTemperature, units.Kelvin); err != nil {
		return
	}
	flow = types.FlowState{
		G:   units.MassFlux(G),
		P:   unit.Pressure(P),
		Pc:  unit.Pressure(Pc),
		Tin: unit.Temperature(Tin),
	}
	err = flow.Validate()
	return
}

// GammaOrDefault is the fraction of rod power reaching the coolant, 1 when unset
func (cp *ChannelParameters) GammaOrDefault() float64 {
	if cp.Gamma == 0 {
		return 1
	}
	return cp.Gamma
}

// OperatingFlux is the heat flux amplitude, given directly or spread from
// the core power over the rods. Zero when neither is set.
func (cp *ChannelParameters) OperatingFlux(geom types.ChannelGeometry) (qpp float64, err error) {
	if len(cp.HeatFlux) != 0 {
		return quantity("HeatFlux", cp.HeatFlux, units.WPerM2)
	}
	if len(cp.CorePower) == 0 {
		return
	}
	var Q float64
	if Q, err = quantity("CorePower", cp.CorePower, units.Watt); err != nil {
		return
	}
	if cp.Rods < 1 {
		err = fmt.Errorf("input Rods must be positive with CorePower, have %d", cp.Rods)
		return
	}
	qpp = profile.FluxAmplitude(Q, cp.Rods, cp.GammaOrDefault(), float64(geom.D), float64(geom.H), float64(geom.Lambda))
	return
}

func (cp *ChannelParameters) Pin() (pin profile.Pin, err error) {
	var kc, hg float64
	if kc, err = optional("CladConductivity", cp.CladConductivity, units.WPerMK); err != nil {
		return
	}
	if hg, err = optional("GapConductance", cp.GapConductance, units.WPerM2K); err != nil {
		return
	}
	pin = profile.Pin{
		CladConductivity: units.ThermalConductivity(kc),
		GapConductance:   units.HeatTransferCoefficient(hg),
	}
	return
}

func (cp *ChannelParameters) FilmType() (profile.FILM, error) {
	if len(cp.Film) == 0 {
		return profile.Film_DittusBoelter, nil
	}
	return profile.NewFilm(cp.Film)
}

// UncertaintyOf converts the one sigma spreads to SI
func (cp *ChannelParameters) UncertaintyOf() (u uq.Uncertainty, err error) {
	for key, val := range cp.Uncertainty {
		switch strings.ToLower(key) {
		case "g", "massflux":
			u.G, err = units.ParseDeltaAs(val, units.KgPerM2S)
		case "p", "pressure":
			u.P, err = units.ParseDeltaAs(val, units.Pascal)
		case "tin", "inlettemperature":
			u.Tin, err = units.ParseDeltaAs(val, units.Kelvin)
		case "heatflux", "qpp":
			u.Qpp, err = units.ParseDeltaAs(val, units.WPerM2)
		default:
			err = fmt.Errorf("unknown uncertain input %q", key)
		}
		if err != nil {
			err = fmt.Errorf("input Uncertainty[%s]: %w", key, err)
			return
		}
	}
	return
}

// Case bundles everything a thermal margin calculation needs
type Case struct {
	Geom  types.ChannelGeometry
	Flow  types.FlowState
	Props steam.Properties
	Table steam.PropertyTable
	Gamma float64
	QppOp float64
}

func (cp *ChannelParameters) Case() (c Case, err error) {
	if c.Geom, err = cp.Geometry(); err != nil {
		return
	}
	if c.Flow, err = cp.FlowState(); err != nil {
		return
	}
	if c.Table, err = cp.Table(); err != nil {
		return
	}
	if c.Props, err = steam.ForFlow(c.Table, c.Flow); err != nil {
		return
	}
	c.Gamma = cp.GammaOrDefault()
	c.QppOp, err = cp.OperatingFlux(c.Geom)
	return
}

// Channel builds the axial profile model at the operating point
func (cp *ChannelParameters) Channel(c Case) (ch profile.Channel, err error) {
	var (
		mdot = float64(c.Flow.G) * c.Geom.FlowArea()
	)
	if ch, err = profile.NewChannel(c.Geom, c.Flow, c.Props, c.QppOp, mdot, c.Gamma); err != nil {
		return
	}
	if ch.Film, err = cp.FilmType(); err != nil {
		return
	}
	ch.Pin, err = cp.Pin()
	return
}

// Loop builds the pressure drop model. A missing H0 is computed with
// CISE-4 under bopts, a missing exit quality from the channel energy balance.
func (lp *LoopParameters) Loop(opts hydraulics.Options, bopts cise4.Options) (l hydraulics.Loop, err error) {
	var (
		c   Case
		cp  = &lp.Channel
		dc  hydraulics.DowncomerLeg
		v   float64
		leg types.LEG
	)
	if c, err = cp.Case(); err != nil {
		return
	}
	l = hydraulics.Loop{
		Core:        c.Geom,
		Props:       c.Props,
		ExitQuality: lp.ExitQuality,
		Options:     opts,
	}
	if len(lp.Multiplier) != 0 {
		if l.Multiplier, err = hydraulics.NewMultiplier(lp.Multiplier); err != nil {
			return
		}
	}
	if len(lp.NonBoilingHeight) != 0 {
		if l.H0, err = quantity("NonBoilingHeight", lp.NonBoilingHeight, units.Meter); err != nil {
			return
		}
	} else if l.H0, err = cise4.NonBoilingHeight(c.Geom, c.Flow, c.Props, bopts); err != nil {
		return
	}
	if l.ExitQuality == 0 && c.QppOp > 0 {
		var ch profile.Channel
		if ch, err = cp.Channel(c); err != nil {
			return
		}
		if x := ch.Quality(float64(c.Geom.H)); x > 0 {
			l.ExitQuality = x
		}
	}
	if v, err = optional("Downcomer.Length", lp.Downcomer.Length, units.Meter); err != nil {
		return
	}
	dc.Length = unit.Length(v)
	if v, err = optional("Downcomer.Height", lp.Downcomer.Height, units.Meter); err != nil {
		return
	}
	dc.Height = unit.Length(v)
	if v, err = optional("Downcomer.Dh", lp.Downcomer.Dh, units.Meter); err != nil {
		return
	}
	dc.Dh = unit.Length(v)
	dc.AreaRatio = lp.Downcomer.AreaRatio
	l.Downcomer = dc
	if lp.SpacerGrids.Count > 0 {
		l.Losses = append(l.Losses, types.SpacerGrids(lp.SpacerGrids.Count, c.Geom.H, lp.SpacerGrids.K)...)
	}
	for i, lc := range lp.Losses {
		if v, err = optional(fmt.Sprintf("Losses[%d].Z", i), lc.Z, units.Meter); err != nil {
			return
		}
		leg = types.Leg_Core
		if len(lc.Leg) != 0 {
			if leg, err = types.NewLeg(lc.Leg); err != nil {
				return
			}
		}
		l.Losses = l.Losses.Add(types.LossCoefficient{Name: lc.Name, K: lc.K, Z: unit.Length(v), Leg: leg})
	}
	err = l.Validate()
	return
}

// Study sets up the uncertainty propagation around the operating point
func (cp *ChannelParameters) Study(c Case, samples int, seed uint64) (st uq.Study, err error) {
	st = uq.Study{
		Geom:    c.Geom,
		Flow:    c.Flow,
		Table:   c.Table,
		Gamma:   c.Gamma,
		QppOp:   c.QppOp,
		Samples: samples,
		Seed:    seed,
		Options: cise4.DefaultOptions,
	}
	if st.Sigma, err = cp.UncertaintyOf(); err != nil {
		return
	}
	err = st.Validate()
	return
}
