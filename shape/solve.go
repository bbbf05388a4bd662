package shape

import (
	"math"

	"github.com/notargets/gotherm/roots"
)

const (
	trivialOmega   = 0.1 // Roots of tan(theta) = -theta below this are the theta = 0 solution
	omegaIntervals = 400
	lambdaSpan     = 20. // Search lambda on [0, lambdaSpan*H]
	lambdaInterval = 2000
)

// PeakOmega solves tan(theta) = -theta for its first nontrivial root, which
// is where omega sin(omega) is maximum. The equation is scanned in the pole
// free form sin(theta) + theta cos(theta) = 0.
func PeakOmega() (w float64, err error) {
	var (
		r, kept []float64
		g       = func(th float64) float64 { return math.Sin(th) + th*math.Cos(th) }
	)
	if r, err = roots.Roots(g, 0, math.Pi, omegaIntervals, 1.e-14); err != nil {
		return 0, roots.WithInputs(err, "tan(theta) = -theta", roots.Inputs{"thetaMax": math.Pi})
	}
	if kept, err = roots.NonTrivial(r, trivialOmega); err != nil {
		return 0, roots.WithInputs(err, "tan(theta) = -theta", roots.Inputs{"thetaMax": math.Pi})
	}
	w = kept[0]
	return
}

// FindLambda solves the channel energy balance
//
//	Q = pi D qpp0 IntShape(0, H, H, lambda)
//
// for the extrapolation length, given the channel power Q and the shape
// amplitude qpp0.
func FindLambda(Q, qpp0, D, H float64) (lambda float64, err error) {
	var (
		in = roots.Inputs{"Q": Q, "qpp0": qpp0, "D": D, "H": H}
		f  = func(l float64) float64 {
			return math.Pi*D*qpp0*IntShape(0, H, H, l) - Q
		}
		r []float64
	)
	if r, err = roots.Roots(f, 0, lambdaSpan*H, lambdaInterval, 1.e-12*H); err != nil {
		return 0, roots.WithInputs(err, "Q = pi D qpp0 IntShape(0, H)", in)
	}
	if r, err = roots.NonTrivial(r, 0); err != nil {
		return 0, roots.WithInputs(err, "Q = pi D qpp0 IntShape(0, H)", in)
	}
	lambda = r[0]
	return
}

// PeakingFactor is the ratio of the maximum of the shape on [0, H] to its
// axial average
func (as AxialShape) PeakingFactor() (Fz float64, err error) {
	var zMax float64
	if _, zMax, err = as.PeakLocation(); err != nil {
		return
	}
	Fz = zMax * as.H / as.Total()
	return
}

// FindLambdaPeaking solves for the extrapolation length that gives an axial
// peaking factor Fz. Fz falls from about 1.82 at lambda = 0 toward 1 as the
// shape flattens.
func FindLambdaPeaking(H, Fz float64) (lambda float64, err error) {
	var (
		in = roots.Inputs{"H": H, "Fz": Fz}
		r  []float64
		f  = func(l float64) float64 {
			fz, _ := NewAxialShape(H, l).PeakingFactor()
			return fz - Fz
		}
	)
	if _, err = PeakOmega(); err != nil {
		return
	}
	if r, err = roots.Roots(f, 0, lambdaSpan*H, lambdaInterval, 1.e-12*H); err != nil {
		return 0, roots.WithInputs(err, "PeakingFactor(lambda) = Fz", in)
	}
	lambda = r[0]
	return
}
