package uq

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/unit"

	"github.com/notargets/gotherm/cise4"
	"github.com/notargets/gotherm/roots"
	"github.com/notargets/gotherm/steam"
	"github.com/notargets/gotherm/types"
	"github.com/notargets/gotherm/units"
)

// Uncertainty holds one standard deviation of each sampled input, in SI.
// A zero entry leaves that input at its nominal value.
type Uncertainty struct {
	G   float64 // kg/m2/s
	P   float64 // Pa
	Tin float64 // K
	Qpp float64 // W/m2
}

/*
	Study propagates normally distributed operating point uncertainty through
	the CISE-4 thermal margin calculation. Realizations are drawn in sequence
	from a single PCG stream, so a seed fixes the whole result.
*/
type Study struct {
	Geom    types.ChannelGeometry
	Flow    types.FlowState
	Table   steam.PropertyTable
	Gamma   float64
	QppOp   float64
	Sigma   Uncertainty
	Samples int
	Seed    uint64
	Options cise4.Options
	// Realizations with CHFR below Limit count toward FailureFraction
	Limit float64
}

// Stats summarizes one sampled output
type Stats struct {
	N             int
	Mean, StdDev  float64
	Min, Max      float64
	P05, P50, P95 float64
}

func newStats(x []float64) (s Stats) {
	if len(x) == 0 {
		return
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	s.N = len(sorted)
	s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	s.Min, s.Max = sorted[0], sorted[len(sorted)-1]
	s.P05 = stat.Quantile(0.05, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return
}

func (s Stats) String() string {
	return fmt.Sprintf("n = %d, mean = %.5g, std = %.3g, min = %.5g, p05 = %.5g, p50 = %.5g, p95 = %.5g, max = %.5g",
		s.N, s.Mean, s.StdDev, s.Min, s.P05, s.P50, s.P95, s.Max)
}

type Summary struct {
	H0, CHFR        Stats
	Rejected        int // Realizations outside a correlation's domain or without a crossing
	FailureFraction float64
	Limit           float64
}

func (s Summary) String() string {
	return fmt.Sprintf("H0 [m]: %s\nCHFR:   %s\nrejected = %d, P(CHFR < %.3g) = %.4f",
		s.H0, s.CHFR, s.Rejected, s.Limit, s.FailureFraction)
}

func (st Study) Validate() (err error) {
	switch {
	case st.Samples < 2:
		err = &types.DomainError{Quantity: "samples", Value: float64(st.Samples), Limit: ">= 2"}
	case st.Table == nil:
		err = errors.New("uncertainty study needs a property table")
	case st.Sigma.G < 0 || st.Sigma.P < 0 || st.Sigma.Tin < 0 || st.Sigma.Qpp < 0:
		err = &types.DomainError{Quantity: "standard deviation", Value: -1, Limit: ">= 0"}
	case !(st.QppOp > 0):
		err = &types.DomainError{Quantity: "operating flux qppOp", Value: st.QppOp, Limit: "> 0"}
	}
	return
}

// Run draws the realizations and summarizes H0 and CHFR. Realizations that
// a correlation rejects are counted, other errors stop the study.
func (st Study) Run() (sum Summary, err error) {
	if err = st.Validate(); err != nil {
		return
	}
	var (
		src  = rand.NewPCG(st.Seed, st.Seed^0x9e3779b97f4a7c15)
		draw = func(mu, sigma float64) float64 {
			if sigma == 0 {
				return mu
			}
			return distuv.Normal{Mu: mu, Sigma: sigma, Src: src}.Rand()
		}
		h0s, chfrs []float64
		failed     int
	)
	sum.Limit = st.Limit
	if sum.Limit == 0 {
		sum.Limit = 1
	}
	for i := 0; i < st.Samples; i++ {
		flow := st.Flow
		flow.G = units.MassFlux(draw(float64(st.Flow.G), st.Sigma.G))
		flow.P = unit.Pressure(draw(float64(st.Flow.P), st.Sigma.P))
		flow.Tin = unit.Temperature(draw(float64(st.Flow.Tin), st.Sigma.Tin))
		qpp := draw(st.QppOp, st.Sigma.Qpp)
		var (
			props steam.Properties
			r     cise4.Result
		)
		if props, err = steam.ForFlow(st.Table, flow); err == nil {
			r, err = cise4.Analyze(st.Geom, flow, props, st.Gamma, qpp, st.Options)
		}
		if err != nil {
			if rejected(err) {
				sum.Rejected++
				err = nil
				continue
			}
			return
		}
		h0s = append(h0s, r.H0)
		if qpp > 0 {
			chfrs = append(chfrs, r.CHFR)
			if r.CHFR < sum.Limit {
				failed++
			}
		}
	}
	sum.H0, sum.CHFR = newStats(h0s), newStats(chfrs)
	if len(chfrs) > 0 {
		sum.FailureFraction = float64(failed) / float64(len(chfrs))
	}
	return
}

func rejected(err error) bool {
	var (
		de  *types.DomainError
		rnf *roots.RootNotFoundError
	)
	return errors.As(err, &de) || errors.As(err, &rnf)
}
