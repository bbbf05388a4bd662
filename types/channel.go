package types

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/unit"

	"github.com/notargets/gotherm/units"
)

// ChannelGeometry describes a single fuel rod and the coolant subchannel
// around it. All lengths are SI meters.
type ChannelGeometry struct {
	D      unit.Length // Rod (clad outer) diameter
	H      unit.Length // Heated length
	Lambda unit.Length // Extrapolation length beyond each end, where flux goes to zero
	S      unit.Length // Lattice pitch
	De     unit.Length // Heated equivalent diameter
	Dh     unit.Length // Hydraulic (wetted) diameter

	// Fuel pin internals, only needed for temperature profiles
	CladThickness unit.Length
	GapThickness  unit.Length
	FuelRadius    unit.Length
}

// NewSquareLatticeGeometry derives the equivalent diameters of a rod in a
// square lattice of pitch S.
func NewSquareLatticeGeometry(D, H, Lambda, S unit.Length) (g ChannelGeometry) {
	g = ChannelGeometry{D: D, H: H, Lambda: Lambda, S: S}
	area := g.FlowArea()
	g.De = unit.Length(4 * area / (math.Pi * float64(D)))
	g.Dh = g.De // wetted perimeter equals heated perimeter for a bare rod
	return
}

func (g ChannelGeometry) Validate() (err error) {
	switch {
	case !(g.H > 0):
		err = &DomainError{Quantity: "heated length H", Value: float64(g.H), Limit: "H > 0"}
	case g.Lambda < 0:
		err = &DomainError{Quantity: "extrapolation length lambda", Value: float64(g.Lambda), Limit: "lambda >= 0"}
	case !(g.D > 0):
		err = &DomainError{Quantity: "rod diameter D", Value: float64(g.D), Limit: "D > 0"}
	case g.S > 0 && g.S <= g.D:
		err = &DomainError{Quantity: "pitch S", Value: float64(g.S), Limit: fmt.Sprintf("S > D = %g", float64(g.D))}
	case g.De < 0 || g.Dh < 0:
		err = &DomainError{Quantity: "equivalent diameter", Value: math.Min(float64(g.De), float64(g.Dh)), Limit: ">= 0"}
	}
	return
}

// FlowArea is the subchannel coolant area of a square lattice cell
func (g ChannelGeometry) FlowArea() float64 {
	return float64(g.S*g.S) - math.Pi*float64(g.D*g.D)/4
}

func (g ChannelGeometry) HeatedPerimeter() float64 {
	return math.Pi * float64(g.D)
}

// HydraulicDiameter returns Dh if set, otherwise falls back to De then D
func (g ChannelGeometry) HydraulicDiameter() float64 {
	switch {
	case g.Dh > 0:
		return float64(g.Dh)
	case g.De > 0:
		return float64(g.De)
	}
	return float64(g.D)
}

// EquivalentDiameter returns De if set, otherwise the rod diameter
func (g ChannelGeometry) EquivalentDiameter() float64 {
	if g.De > 0 {
		return float64(g.De)
	}
	return float64(g.D)
}

// DiameterRatio is Dh/De, 1 unless both diameters are set
func (g ChannelGeometry) DiameterRatio() float64 {
	if g.Dh > 0 && g.De > 0 {
		return float64(g.Dh / g.De)
	}
	return 1
}

// FlowState holds the coolant operating point
type FlowState struct {
	G   units.MassFlux   // Mass flux
	P   unit.Pressure    // System pressure
	Pc  unit.Pressure    // Critical pressure
	Tin unit.Temperature // Inlet temperature
}

// WaterCriticalPressure is the thermodynamic critical pressure of water
const WaterCriticalPressure = unit.Pressure(22.064e6)

func (f FlowState) Validate() (err error) {
	switch {
	case !(f.Pc > 0):
		err = &DomainError{Quantity: "critical pressure Pc", Value: float64(f.Pc), Limit: "Pc > 0"}
	case !(f.P > 0) || f.P >= f.Pc:
		err = &DomainError{Quantity: "pressure P", Value: float64(f.P), Limit: fmt.Sprintf("0 < P < Pc = %g", float64(f.Pc))}
	case !(f.G > 0):
		err = &DomainError{Quantity: "mass flux G", Value: float64(f.G), Limit: "G > 0"}
	case !(f.Tin > 0):
		err = &DomainError{Quantity: "inlet temperature Tin", Value: float64(f.Tin), Limit: "Tin > 0 K"}
	}
	return
}

// ReducedPressure is P/Pc
func (f FlowState) ReducedPressure() float64 {
	return float64(f.P / f.Pc)
}

// WithMassFlux returns a copy of the state at a different mass flux
func (f FlowState) WithMassFlux(G units.MassFlux) FlowState {
	f.G = G
	return f
}
