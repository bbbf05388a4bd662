package roots

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	DefaultTolerance = 1.e-9
	maxBisections    = 200
)

/*
	Tabulated intersection: both curves are rounded to a number of decimals
	and compared for exact equality. This is a tolerance equality search, not
	interpolation. Matches are reported in ascending index order; when several
	indices match, the first one is authoritative (FirstIntersection).
*/

func FindIntersection(lhs, rhs []float64, precision int) (idx []int) {
	n := len(lhs)
	if len(rhs) < n {
		n = len(rhs)
	}
	for i := 0; i < n; i++ {
		if scalar.Round(lhs[i], precision) == scalar.Round(rhs[i], precision) {
			idx = append(idx, i)
		}
	}
	return
}

func FirstIntersection(lhs, rhs []float64, precision int) (i int, err error) {
	idx := FindIntersection(lhs, rhs, precision)
	if len(idx) == 0 {
		err = &RootNotFoundError{Equation: "tabulated intersection", Lo: 0, Hi: float64(len(lhs) - 1)}
		return
	}
	i = idx[0]
	return
}

// Grid returns n+1 equally spaced points from lo to hi inclusive
func Grid(lo, hi float64, n int) (x []float64) {
	if n < 1 {
		n = 1
	}
	x = make([]float64, n+1)
	floats.Span(x, lo, hi)
	x[n] = hi
	return
}

// GridStep returns the grid covering [lo, hi] with spacing no larger than step
func GridStep(lo, hi, step float64) (x []float64) {
	n := int(math.Ceil((hi - lo) / step))
	return Grid(lo, hi, n)
}

// LastSatisfying is the exhaustive scan: the last index of the grid where
// pred holds, or -1 when it holds nowhere.
func LastSatisfying(grid []float64, pred func(x float64) bool) (last int) {
	last = -1
	for i, x := range grid {
		if pred(x) {
			last = i
		}
	}
	return
}

// Bracket is an interval over which f changes sign
type Bracket struct {
	Lo, Hi   float64
	FLo, FHi float64
}

// AllBrackets scans f on n intervals of [a, b] and returns every interval
// where f changes sign or touches zero at its left end.
func AllBrackets(f func(x float64) float64, a, b float64, n int) (brs []Bracket) {
	var (
		x  = Grid(a, b, n)
		fx = make([]float64, len(x))
	)
	for i := range x {
		fx[i] = f(x[i])
	}
	for i := 0; i < len(x)-1; i++ {
		if fx[i] == 0 || math.Signbit(fx[i]) != math.Signbit(fx[i+1]) {
			brs = append(brs, Bracket{x[i], x[i+1], fx[i], fx[i+1]})
		}
	}
	return
}

// LastBracket finds the last grid interval whose left end satisfies f < 0 and
// whose right end does not. If f < 0 at the final grid point, or nowhere,
// there is no crossing inside [a, b].
func LastBracket(f func(x float64) float64, a, b float64, n int) (br Bracket, err error) {
	var (
		x    = Grid(a, b, n)
		fx   = make([]float64, len(x))
		last = -1
	)
	for i := range x {
		if fx[i] = f(x[i]); fx[i] < 0 {
			last = i
		}
	}
	if last < 0 || last == len(x)-1 {
		err = &RootNotFoundError{Lo: a, Hi: b}
		return
	}
	br = Bracket{x[last], x[last+1], fx[last], fx[last+1]}
	return
}

// Bisect refines a bracket with f(Lo) < 0 <= f(Hi) (or the reverse) until its
// width is below tol, returning the end that keeps the sign of f(Lo).
func Bisect(f func(x float64) float64, br Bracket, tol float64) (x float64, err error) {
	var (
		lo, hi   = br.Lo, br.Hi
		negAtLo  = br.FLo < 0
		iter     int
		fMid, xm float64
	)
	if (br.FLo < 0) == (br.FHi < 0) {
		err = &RootNotFoundError{Lo: br.Lo, Hi: br.Hi}
		return
	}
	for iter = 0; iter < maxBisections && math.Abs(hi-lo) > tol; iter++ {
		xm = 0.5 * (lo + hi)
		if xm == lo || xm == hi {
			break
		}
		fMid = f(xm)
		if (fMid < 0) == negAtLo {
			lo = xm
		} else {
			hi = xm
		}
	}
	x = lo
	return
}

// LastCrossing combines a coarse scan with bisection: the highest x in
// [a, b] where f(x) < 0 holds just before f turns non-negative, resolved to tol.
func LastCrossing(f func(x float64) float64, a, b float64, n int, tol float64) (x float64, err error) {
	var br Bracket
	if br, err = LastBracket(f, a, b, n); err != nil {
		return
	}
	return Bisect(f, br, tol)
}

// Roots returns every bisected root of f on [a, b], in ascending order
func Roots(f func(x float64) float64, a, b float64, n int, tol float64) (r []float64, err error) {
	var x float64
	for _, br := range AllBrackets(f, a, b, n) {
		if br.FLo == 0 {
			r = append(r, br.Lo)
			continue
		}
		if x, err = Bisect(f, br, tol); err != nil {
			return
		}
		r = append(r, x)
	}
	if len(r) == 0 {
		err = &RootNotFoundError{Lo: a, Hi: b}
	}
	return
}

// HighestRoot returns the largest sign change of f on [a, b]. The last
// bracket of the scan is subdivided into refine pieces and narrowed to its
// last sign change until it is no wider than tol, so several roots sharing
// one coarse interval, or a jump inside it, still resolve to the highest one.
func HighestRoot(f func(x float64) float64, a, b float64, n, refine int, tol float64) (x float64, err error) {
	var (
		brs = AllBrackets(f, a, b, n)
		br  Bracket
	)
	if len(brs) == 0 {
		err = &RootNotFoundError{Lo: a, Hi: b}
		return
	}
	if refine < 2 {
		refine = 2
	}
	br = brs[len(brs)-1]
	for iter := 0; iter < maxBisections && br.Hi-br.Lo > tol; iter++ {
		if br.FLo == 0 {
			break
		}
		if brs = AllBrackets(f, br.Lo, br.Hi, refine); len(brs) == 0 {
			break
		}
		br = brs[len(brs)-1]
	}
	x = br.Lo
	return
}

// NonTrivial drops roots below threshold, failing if none remain
func NonTrivial(r []float64, threshold float64) (kept []float64, err error) {
	for _, x := range r {
		if x >= threshold {
			kept = append(kept, x)
		}
	}
	if len(kept) == 0 {
		err = &DegenerateSolutionError{Threshold: threshold, Candidates: r}
	}
	return
}
