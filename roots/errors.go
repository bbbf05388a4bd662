package roots

import (
	"fmt"
	"sort"
	"strings"
)

// Inputs records the physical inputs of a failed solve for diagnostics
type Inputs map[string]float64

func (in Inputs) String() string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%g", k, in[k])
	}
	return b.String()
}

// RootNotFoundError is returned when a scan finds no point where the
// crossing condition changes.
type RootNotFoundError struct {
	Equation string
	Lo, Hi   float64 // Domain searched
	Inputs   Inputs
}

func (e *RootNotFoundError) Error() string {
	msg := fmt.Sprintf("no crossing found for %s on [%g, %g]", e.Equation, e.Lo, e.Hi)
	if len(e.Inputs) != 0 {
		msg += " (" + e.Inputs.String() + ")"
	}
	return msg
}

// DegenerateSolutionError is returned when every candidate root falls below
// the threshold used to reject trivial solutions.
type DegenerateSolutionError struct {
	Equation   string
	Threshold  float64
	Candidates []float64
	Inputs     Inputs
}

func (e *DegenerateSolutionError) Error() string {
	msg := fmt.Sprintf("only trivial solutions of %s below %g: %v", e.Equation, e.Threshold, e.Candidates)
	if len(e.Inputs) != 0 {
		msg += " (" + e.Inputs.String() + ")"
	}
	return msg
}

// WithInputs attaches inputs to a solver error, leaving other errors alone
func WithInputs(err error, equation string, in Inputs) error {
	switch e := err.(type) {
	case *RootNotFoundError:
		cp := *e
		cp.Equation, cp.Inputs = equation, in
		return &cp
	case *DegenerateSolutionError:
		cp := *e
		cp.Equation, cp.Inputs = equation, in
		return &cp
	}
	return err
}
