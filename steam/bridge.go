package steam

import (
	"gonum.org/v1/gonum/unit"

	"github.com/notargets/gotherm/types"
	"github.com/notargets/gotherm/units"
)

// PropertyTable is the steam table service the thermal-hydraulics models
// consult; the models never compute water properties themselves.
type PropertyTable interface {
	Saturation(P unit.Pressure) (Saturation, error)
	SubcooledEnthalpy(P unit.Pressure, T unit.Temperature) (units.SpecificEnthalpy, error)
}

// Saturation holds saturated liquid (f) and vapor (g) properties at one pressure
type Saturation struct {
	P     unit.Pressure
	Tsat  unit.Temperature
	Hf    units.SpecificEnthalpy
	Hg    units.SpecificEnthalpy
	RhoF  units.Density
	RhoG  units.Density
	CpF   units.SpecificHeat
	MuF   units.Viscosity
	MuG   units.Viscosity
	Sigma units.SurfaceTension
	KF    units.ThermalConductivity
}

func (s Saturation) Hfg() float64 {
	return float64(s.Hg - s.Hf)
}

// Properties is the full property set for one operating point
type Properties struct {
	Saturation
	Hin units.SpecificEnthalpy
}

// Subcooling returns h_f - h_in
func (p Properties) Subcooling() float64 {
	return float64(p.Hf - p.Hin)
}

// Bridge queries the table for the saturation state at P and the inlet
// enthalpy at (P, Tin).
func Bridge(table PropertyTable, P unit.Pressure, Tin unit.Temperature) (p Properties, err error) {
	if p.Saturation, err = table.Saturation(P); err != nil {
		return
	}
	if Tin > p.Tsat {
		err = &types.DomainError{Correlation: "property bridge", Quantity: "inlet temperature Tin",
			Value: float64(Tin), Limit: "Tin <= Tsat(P)"}
		return
	}
	p.Hin, err = table.SubcooledEnthalpy(P, Tin)
	return
}

// ForFlow is Bridge for a flow state
func ForFlow(table PropertyTable, f types.FlowState) (Properties, error) {
	return Bridge(table, f.P, f.Tin)
}
