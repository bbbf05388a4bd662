package types

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/unit"
)

type LEG uint8

const (
	Leg_Core LEG = iota
	Leg_Downcomer
)

var LegNameMap = map[string]LEG{
	"core":      Leg_Core,
	"channel":   Leg_Core,
	"downcomer": Leg_Downcomer,
	"dc":        Leg_Downcomer,
}

func (l LEG) String() string {
	switch l {
	case Leg_Core:
		return "core"
	case Leg_Downcomer:
		return "downcomer"
	}
	return fmt.Sprintf("LEG(%d)", uint8(l))
}

func NewLeg(name string) (l LEG, err error) {
	var ok bool
	if l, ok = LegNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown loop leg %q", name)
	}
	return
}

// LossCoefficient is a local form loss at a physical fixture: inlet orifice,
// spacer grid, tie plate, separator...
type LossCoefficient struct {
	Name    string
	K       float64
	Z       unit.Length // Axial location measured from the bottom of the leg
	Quality float64     // Local flow quality at the fixture, 0 for liquid
	Leg     LEG
}

// LossCoefficientSet keeps fixtures in insertion order; each entry is a
// distinct fixture so order and duplicates are significant.
type LossCoefficientSet []LossCoefficient

func (ls LossCoefficientSet) Add(lc LossCoefficient) LossCoefficientSet {
	return append(ls, lc)
}

func (ls LossCoefficientSet) Core() LossCoefficientSet {
	return ls.filter(Leg_Core)
}

func (ls LossCoefficientSet) Downcomer() LossCoefficientSet {
	return ls.filter(Leg_Downcomer)
}

func (ls LossCoefficientSet) filter(leg LEG) (r LossCoefficientSet) {
	for _, lc := range ls {
		if lc.Leg == leg {
			r = append(r, lc)
		}
	}
	return
}

// WithQualities returns a copy whose core fixtures carry the quality given by
// qualityAt at their axial location; downcomer fixtures stay liquid.
func (ls LossCoefficientSet) WithQualities(qualityAt func(z float64) float64) (r LossCoefficientSet) {
	r = make(LossCoefficientSet, len(ls))
	for i, lc := range ls {
		if lc.Leg == Leg_Core {
			lc.Quality = qualityAt(float64(lc.Z))
		} else {
			lc.Quality = 0
		}
		r[i] = lc
	}
	return
}

func (ls LossCoefficientSet) Validate() (err error) {
	for i, lc := range ls {
		if lc.K < 0 {
			return &DomainError{Quantity: fmt.Sprintf("loss coefficient %d (%s) K", i, lc.Name), Value: lc.K, Limit: "K >= 0"}
		}
		if lc.Quality < 0 || lc.Quality > 1 {
			return &DomainError{Quantity: fmt.Sprintf("loss coefficient %d (%s) quality", i, lc.Name), Value: lc.Quality, Limit: "0 <= x <= 1"}
		}
	}
	return
}

// SpacerGrids places n grids of loss coefficient K evenly along a heated
// length H, excluding both ends
func SpacerGrids(n int, H unit.Length, K float64) (ls LossCoefficientSet) {
	for i := 1; i <= n; i++ {
		ls = ls.Add(LossCoefficient{
			Name: fmt.Sprintf("spacer grid %d", i),
			K:    K,
			Z:    H * unit.Length(i) / unit.Length(n+1),
			Leg:  Leg_Core,
		})
	}
	return
}
