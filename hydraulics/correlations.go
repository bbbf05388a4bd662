package hydraulics

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gotherm/steam"
)

const (
	Gravity       = 9.80665
	reTransition  = 30000.
	chisholmC     = 20. // Turbulent liquid, turbulent vapor
	driftVelCoeff = 2.9
)

// Reynolds is G D / mu
func Reynolds(G, D, mu float64) float64 {
	return G * D / mu
}

// FrictionFactor is the smooth tube Darcy friction factor, Blasius below the
// transition Reynolds number and McAdams above it.
func FrictionFactor(Re float64) float64 {
	if Re < reTransition {
		return 0.3164 * math.Pow(Re, -0.25)
	}
	return 0.184 * math.Pow(Re, -0.2)
}

type MULTIPLIER uint8

const (
	Multiplier_Homogeneous MULTIPLIER = iota
	Multiplier_Martinelli
)

var MultiplierNameMap = map[string]MULTIPLIER{
	"homogeneous":       Multiplier_Homogeneous,
	"hem":               Multiplier_Homogeneous,
	"martinelli":        Multiplier_Martinelli,
	"martinelli-nelson": Multiplier_Martinelli,
}

func (m MULTIPLIER) String() string {
	switch m {
	case Multiplier_Homogeneous:
		return "homogeneous"
	case Multiplier_Martinelli:
		return "martinelli-nelson"
	}
	return fmt.Sprintf("MULTIPLIER(%d)", uint8(m))
}

func NewMultiplier(name string) (m MULTIPLIER, err error) {
	var ok bool
	if m, ok = MultiplierNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown two-phase multiplier %q", name)
	}
	return
}

/*
	MartinelliMultiplier is the liquid-only two-phase friction multiplier from
	the Lockhart-Martinelli parameter

		Xtt = ((1-x)/x)^0.9 (rho_g/rho_f)^0.5 (mu_f/mu_g)^0.1

	with the Chisholm form phi_l^2 = 1 + C/Xtt + 1/Xtt^2, so that
	phi_lo^2 = (1-x)^1.8 phi_l^2. Written out in x, the expression below stays
	finite up to x = 1. Single phase (x <= 0) is exactly 1.
*/
func MartinelliMultiplier(x float64, sat steam.Saturation) float64 {
	if x <= 0 {
		return 1
	}
	if x > 1 {
		x = 1
	}
	var (
		r = math.Sqrt(float64(sat.RhoG/sat.RhoF)) * math.Pow(float64(sat.MuF/sat.MuG), 0.1)
	)
	return math.Pow(1-x, 1.8) + chisholmC*math.Pow(x*(1-x), 0.9)/r + math.Pow(x, 1.8)/(r*r)
}

// HomogeneousMultiplier is the homogeneous flow friction multiplier. There is
// no two-phase contribution below the non-boiling height or for x <= 0.
func HomogeneousMultiplier(z, H0, x float64, sat steam.Saturation) float64 {
	if z < H0 || x <= 0 {
		return 1
	}
	return 1 + x*(float64(sat.RhoF/sat.RhoG)-1)
}

// Dix is the Zuber-Findlay distribution parameter correlated by Dix,
//
//	C0 = beta (1 + (1/beta - 1)^b),  b = (rho_g/rho_f)^0.1
//
// with beta the volumetric flow fraction of vapor. C0 goes to zero with x.
func Dix(x float64, sat steam.Saturation) float64 {
	if x <= 0 {
		return 0
	}
	var (
		rr   = float64(sat.RhoG / sat.RhoF)
		beta = x / (x + (1-x)*rr)
		b    = math.Pow(rr, 0.1)
	)
	return beta * (1 + math.Pow(1/beta-1, b))
}

// DriftVelocity is the churn-turbulent weighted mean drift velocity, m/s
func DriftVelocity(sat steam.Saturation) float64 {
	var (
		rf, rg = float64(sat.RhoF), float64(sat.RhoG)
	)
	return driftVelCoeff * math.Pow((rf-rg)*float64(sat.Sigma)*Gravity/(rf*rf), 0.25)
}

// AlphaZuberFindlay is the drift flux void fraction at quality x and mass
// flux G. Subcooled liquid (x <= 0) carries no void.
func AlphaZuberFindlay(x, G float64, sat steam.Saturation) float64 {
	if x <= 0 {
		return 0
	}
	var (
		rr  = float64(sat.RhoG / sat.RhoF)
		c0  = Dix(x, sat)
		vgj = DriftVelocity(sat)
	)
	return x / (c0*(x+(1-x)*rr) + float64(sat.RhoG)*vgj/G)
}

// VoidFractions evaluates AlphaZuberFindlay on a quality array, zero filled
// wherever x <= 0
func VoidFractions(xs []float64, G float64, sat steam.Saturation) (alpha []float64) {
	alpha = make([]float64, len(xs))
	for i, x := range xs {
		if x > 0 {
			alpha[i] = AlphaZuberFindlay(x, G, sat)
		}
	}
	return
}

// MixtureDensity is the void weighted density
func MixtureDensity(alpha float64, sat steam.Saturation) float64 {
	return alpha*float64(sat.RhoG) + (1-alpha)*float64(sat.RhoF)
}
