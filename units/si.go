package units

import (
	"math"

	"gonum.org/v1/gonum/unit"
)

/*
	SI scalar types for the quantities gonum/unit does not define. Each one
	satisfies unit.Uniter so it can be checked against gonum's dimensional
	types, and being a distinct type, assigning one to another is a compile
	time error.
*/

type MassFlux float64                // kg/m2/s
type SpecificEnthalpy float64        // J/kg
type HeatFlux float64                // W/m2
type MassFlowRate float64            // kg/s
type Density float64                 // kg/m3
type SurfaceTension float64          // N/m
type Viscosity float64               // Pa s
type SpecificHeat float64            // J/kg/K
type LinearPower float64             // W/m
type ThermalConductivity float64     // W/m/K
type HeatTransferCoefficient float64 // W/m2/K

func (v MassFlux) Unit() *unit.Unit         { return unit.New(float64(v), dMassFlux) }
func (v SpecificEnthalpy) Unit() *unit.Unit { return unit.New(float64(v), dSpecificEnergy) }
func (v HeatFlux) Unit() *unit.Unit         { return unit.New(float64(v), dHeatFlux) }
func (v MassFlowRate) Unit() *unit.Unit     { return unit.New(float64(v), dMassFlowRate) }
func (v Density) Unit() *unit.Unit          { return unit.New(float64(v), dDensity) }
func (v SurfaceTension) Unit() *unit.Unit   { return unit.New(float64(v), dSurfaceTension) }
func (v Viscosity) Unit() *unit.Unit        { return unit.New(float64(v), dViscosity) }
func (v SpecificHeat) Unit() *unit.Unit     { return unit.New(float64(v), dSpecificHeat) }
func (v LinearPower) Unit() *unit.Unit      { return unit.New(float64(v), dLinearPower) }
func (v ThermalConductivity) Unit() *unit.Unit {
	return unit.New(float64(v), dConductivity)
}
func (v HeatTransferCoefficient) Unit() *unit.Unit {
	return unit.New(float64(v), dFilmCoefficient)
}

// ToCelsius returns the temperature in degrees Celsius
func ToCelsius(t unit.Temperature) float64 {
	return float64(t) - 273.15
}

// FromCelsius builds a gonum temperature from degrees Celsius
func FromCelsius(c float64) unit.Temperature {
	return unit.Temperature(c + 273.15)
}

// The empirical English-unit correlations keep their constants; these
// convert their inputs and outputs at the boundary only.

func ToPsia(p unit.Pressure) float64 {
	return float64(p) / psiToPa
}

func ToBtuPerHrFt2(q HeatFlux) float64 {
	return float64(q) / (btuToJ / hrToS / (ftToM * ftToM))
}

// DeltaFahrenheitToKelvin converts a temperature difference
func DeltaFahrenheitToKelvin(dF float64) float64 {
	return dF * fahrScale
}

func ToHorsepower(p unit.Power) float64 {
	return float64(p) / hpToW
}

// Near reports whether a and b agree to a relative tolerance, falling back
// to an absolute comparison around zero.
func Near(a, b, tol float64) bool {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		scale = 1
	}
	return math.Abs(a-b) <= tol*scale
}
