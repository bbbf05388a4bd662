package profile

import (
	"math"

	"gonum.org/v1/gonum/unit"

	"github.com/notargets/gotherm/roots"
	"github.com/notargets/gotherm/types"
	"github.com/notargets/gotherm/units"
)

const (
	centerlineSpan      = 3000. // Search Tcl on [Ts, Ts + span], C
	centerlineIntervals = 300
	centerlineTol       = 1.e-9
)

// ConductivityIntegralUO2 is the integral of the UO2 thermal conductivity
// from a reference temperature to T, with T in degrees C, W/m. The
// conductivity is the Todreas and Kazimi fit for 95% dense UO2,
//
//	k = 3824/(402.4 + T) + 6.1256e-11 (T + 273)^3  W/m/K
//
// which is the metric form of 3978.1/(692.6 + T[F]) + 6.02366e-12 (T[F] + 460)^3
// Btu/hr/ft/F, since 692.6 + T[F] = 1.8 (402.6 + T).
func ConductivityIntegralUO2(T float64) float64 {
	Tk := T + 273
	return 3824*math.Log(402.4+T) + 6.1256e-11/4*Tk*Tk*Tk*Tk
}

// radii returns the clad outer and inner radius
func (c Channel) radii() (Ro, Ri float64, err error) {
	Ro = float64(c.Geom.D) / 2
	Ri = Ro - float64(c.Geom.CladThickness)
	switch {
	case !(c.Geom.CladThickness > 0) || !(Ri > 0):
		err = &types.DomainError{Quantity: "clad thickness", Value: float64(c.Geom.CladThickness),
			Limit: "0 < t < D/2"}
	case !(c.Pin.CladConductivity > 0):
		err = &types.DomainError{Quantity: "clad conductivity", Value: float64(c.Pin.CladConductivity), Limit: "k > 0"}
	case !(c.Pin.GapConductance > 0):
		err = &types.DomainError{Quantity: "gap conductance", Value: float64(c.Pin.GapConductance), Limit: "H > 0"}
	}
	return
}

// FuelSurfaceTemp adds the clad conduction and gap resistances to the wall
// temperature:
//
//	Ts = Tw + q'' Ro (ln(Ro/Ri)/k_c + 1/(H_G Ri))
func (c Channel) FuelSurfaceTemp(z float64) (T unit.Temperature, err error) {
	var (
		Ro, Ri float64
		kc     = float64(c.Pin.CladConductivity)
		hg     = float64(c.Pin.GapConductance)
	)
	if Ro, Ri, err = c.radii(); err != nil {
		return
	}
	if T, err = c.WallTemp(z); err != nil {
		return
	}
	T += unit.Temperature(c.HeatFlux(z) * Ro * (math.Log(Ro/Ri)/kc + 1/(hg*Ri)))
	return
}

// FuelCenterlineTemp solves the pellet conduction balance
//
//	K(Tcl) - K(Ts) = q'/(4 pi)
//
// for the centerline temperature, bracketing the last grid point below the
// balance and bisecting.
func (c Channel) FuelCenterlineTemp(z float64) (T unit.Temperature, err error) {
	var (
		Ts     unit.Temperature
		target = c.LinearPower(z) / (4 * math.Pi)
		tsC    float64
		tcl    float64
	)
	if Ts, err = c.FuelSurfaceTemp(z); err != nil {
		return
	}
	if !(target > 0) {
		return Ts, nil
	}
	tsC = units.ToCelsius(Ts)
	kS := ConductivityIntegralUO2(tsC)
	f := func(t float64) float64 {
		return ConductivityIntegralUO2(t) - kS - target
	}
	if tcl, err = roots.LastCrossing(f, tsC, tsC+centerlineSpan, centerlineIntervals, centerlineTol); err != nil {
		err = roots.WithInputs(err, "K(Tcl) - K(Ts) = q'/(4 pi)", roots.Inputs{
			"z": z, "Ts": tsC, "q'": c.LinearPower(z),
		})
		return
	}
	T = units.FromCelsius(tcl)
	return
}
