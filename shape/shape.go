package shape

import (
	"math"
)

/*
	Chopped cosine axial power shape. The flux is a cosine whose zeros sit an
	extrapolation length lambda beyond each end of the heated length H, written
	in terms of the phase

		omega(z) = pi (H + lambda - z) / (H + 2 lambda)

	which runs from near pi at the inlet (z = 0) to near 0 at the outlet
	(z = H). The normalized shape is Z(z) = omega sin(omega).
*/

func Omega(z, H, lambda float64) float64 {
	return math.Pi * (H + lambda - z) / (H + 2*lambda)
}

// Shape is the normalized chopped cosine Z(z) = omega sin(omega), valid on [0, H]
func Shape(z, H, lambda float64) float64 {
	w := Omega(z, H, lambda)
	return w * math.Sin(w)
}

// antiderivative of Shape in z, up to the constant (H + 2 lambda)/pi
func primitive(w float64) float64 {
	return w*math.Cos(w) - math.Sin(w)
}

// IntShape integrates Shape from start to stop in closed form. There is no
// ordering check: start > stop yields the negated integral.
func IntShape(start, stop, H, lambda float64) float64 {
	var (
		wStart = Omega(start, H, lambda)
		wStop  = Omega(stop, H, lambda)
	)
	return (H + 2*lambda) / math.Pi * (primitive(wStop) - primitive(wStart))
}

// AxialShape binds the shape parameters of one channel
type AxialShape struct {
	H, Lambda float64
}

func NewAxialShape(H, lambda float64) AxialShape {
	return AxialShape{H: H, Lambda: lambda}
}

func (as AxialShape) At(z float64) float64 {
	return Shape(z, as.H, as.Lambda)
}

func (as AxialShape) Omega(z float64) float64 {
	return Omega(z, as.H, as.Lambda)
}

// ZOfOmega inverts Omega
func (as AxialShape) ZOfOmega(w float64) float64 {
	return as.H + as.Lambda - w*(as.H+2*as.Lambda)/math.Pi
}

func (as AxialShape) Integral(start, stop float64) float64 {
	return IntShape(start, stop, as.H, as.Lambda)
}

// Total is the integral of the shape over the heated length
func (as AxialShape) Total() float64 {
	return as.Integral(0, as.H)
}

// PeakLocation returns the axial position of the maximum of the shape on
// [0, H] and the shape value there.
func (as AxialShape) PeakLocation() (z, zMax float64, err error) {
	var w float64
	if w, err = PeakOmega(); err != nil {
		return
	}
	z = as.ZOfOmega(w)
	switch {
	case z < 0:
		z = 0
	case z > as.H:
		z = as.H
	}
	zMax = as.At(z)
	return
}
