package cise4

import (
	"math"

	"github.com/notargets/gotherm/shape"
	"github.com/notargets/gotherm/types"
)

/*
	CISE-4 critical quality - boiling length correlation (SI units: G in
	kg/m2/s, D in m, pressures in any consistent unit)

		x_cr = a L_B / (L_B + b)

	with the mass flux dependent coefficient a switching regime at
	G* = 3375 (1 - P/Pc)^3.
*/

const (
	gStarCoeff = 3375.
	aLowCoeff  = 1.481e-4
	bCoeff     = 0.199
	Name       = "CISE-4"
)

type Regime uint8

const (
	LowMassFlux Regime = iota
	HighMassFlux
)

func (r Regime) String() string {
	if r == LowMassFlux {
		return "low mass flux"
	}
	return "high mass flux"
}

// Threshold is the regime switch mass flux G*
func Threshold(P, Pc float64) float64 {
	return gStarCoeff * math.Pow(1-P/Pc, 3)
}

func RegimeOf(G, P, Pc float64) Regime {
	if G <= Threshold(P, Pc) {
		return LowMassFlux
	}
	return HighMassFlux
}

// A is the CISE-4 asymptotic critical quality coefficient
func A(G, P, Pc float64) float64 {
	var (
		r = 1 - P/Pc
	)
	if G <= Threshold(P, Pc) {
		return 1 / (1 + aLowCoeff*G/(r*r*r))
	}
	return r / math.Cbrt(G/1000)
}

// B is the CISE-4 boiling length coefficient, in meters
func B(D, G, P, Pc float64) float64 {
	return bCoeff * math.Pow(Pc/P-1, 0.4) * G * math.Pow(D, 1.4)
}

// CriticalQuality evaluates x_cr for a boiling length LB
func CriticalQuality(LB, a, b float64) float64 {
	return a * LB / (LB + b)
}

// CheckDomain rejects inputs outside the correlation's validity
func CheckDomain(D, G, P, Pc float64) (err error) {
	switch {
	case !(Pc > 0):
		err = &types.DomainError{Correlation: Name, Quantity: "critical pressure Pc", Value: Pc, Limit: "Pc > 0"}
	case !(P > 0) || P >= Pc:
		err = &types.DomainError{Correlation: Name, Quantity: "pressure P", Value: P, Limit: "0 < P < Pc"}
	case !(G > 0):
		err = &types.DomainError{Correlation: Name, Quantity: "mass flux G", Value: G, Limit: "G > 0"}
	case !(D > 0):
		err = &types.DomainError{Correlation: Name, Quantity: "diameter D", Value: D, Limit: "D > 0"}
	}
	return
}

// MassFlowRate is the coolant flow that brings the inlet to saturation at
// the non-boiling height H0 under a chopped cosine flux of amplitude qpp:
//
//	gamma mdot (hf - hin) = pi D qpp IntShape(0, H0)
//
// qpp already carries the fraction gamma of the rod power deposited in the
// fuel, so the coolant picks up qpp/gamma per unit of clad area.
func MassFlowRate(qpp, D, H0, H, lambda, hf, hin, gamma float64) float64 {
	return math.Pi * D * qpp * shape.IntShape(0, H0, H, lambda) / (gamma * (hf - hin))
}

// CriticalHeatFlux is the algebraic inverse of MassFlowRate
func CriticalHeatFlux(mdot, D, H0, H, lambda, hf, hin, gamma float64) float64 {
	return gamma * mdot * (hf - hin) / (math.Pi * D * shape.IntShape(0, H0, H, lambda))
}
