package types

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/unit"

	"github.com/notargets/gotherm/units"
)

func TestChannelGeometry(t *testing.T) {
	{ // Square lattice equivalent diameter
		g := NewSquareLatticeGeometry(0.0095, 3.6576, 0.4572, 0.0125)
		area := 0.0125*0.0125 - math.Pi*0.0095*0.0095/4
		assert.InDelta(t, area, g.FlowArea(), 1.e-15)
		assert.InDelta(t, 4*area/(math.Pi*0.0095), float64(g.De), 1.e-15)
		assert.Equal(t, g.De, g.Dh)
		assert.NoError(t, g.Validate())
	}
	{ // Invariants
		var de *DomainError
		g := ChannelGeometry{D: 0.01, H: 0, Lambda: 0.1}
		assert.True(t, errors.As(g.Validate(), &de))
		assert.Equal(t, "heated length H", de.Quantity)
		g = ChannelGeometry{D: 0.01, H: 1, Lambda: -0.1}
		assert.Error(t, g.Validate())
		g = ChannelGeometry{D: 0.01, H: 1, Lambda: 0, S: 0.005}
		assert.Error(t, g.Validate())
	}
	{ // Fallback diameters
		g := ChannelGeometry{D: 0.01, H: 1}
		assert.Equal(t, 0.01, g.HydraulicDiameter())
		assert.Equal(t, 0.01, g.EquivalentDiameter())
		assert.Equal(t, 1., g.DiameterRatio())
		g.Dh = 0.008
		assert.Equal(t, 1., g.DiameterRatio())
		g.De = 0.012
		assert.InEpsilon(t, 0.008/0.012, g.DiameterRatio(), 1.e-15)
	}
}

func TestFlowState(t *testing.T) {
	f := FlowState{
		G:   units.MassFlux(3390),
		P:   unit.Pressure(6.895e6),
		Pc:  WaterCriticalPressure,
		Tin: units.FromCelsius(276.7),
	}
	assert.NoError(t, f.Validate())
	assert.InDelta(t, 6.895/22.064, f.ReducedPressure(), 1.e-12)
	{
		bad := f
		bad.P = bad.Pc
		err := bad.Validate()
		var de *DomainError
		assert.True(t, errors.As(err, &de))
		assert.Contains(t, err.Error(), "pressure P")
		err = InCorrelation(err, "CISE-4")
		assert.Contains(t, err.Error(), "CISE-4: pressure P")
	}
	{
		bad := f.WithMassFlux(-1)
		assert.Error(t, bad.Validate())
		assert.Equal(t, units.MassFlux(3390), f.G)
	}
}

func TestLossCoefficientSet(t *testing.T) {
	var ls LossCoefficientSet
	ls = ls.Add(LossCoefficient{Name: "inlet orifice", K: 20, Z: 0, Leg: Leg_Core})
	ls = ls.Add(LossCoefficient{Name: "downcomer entry", K: 1.5, Z: 0, Leg: Leg_Downcomer})
	ls = ls.Add(LossCoefficient{Name: "spacer", K: 1.2, Z: 1, Leg: Leg_Core})
	ls = ls.Add(LossCoefficient{Name: "spacer", K: 1.2, Z: 2, Leg: Leg_Core})
	assert.Equal(t, 3, len(ls.Core()))
	assert.Equal(t, "spacer", ls.Core()[1].Name)
	assert.Equal(t, unit.Length(2), ls.Core()[2].Z)
	assert.Equal(t, 1, len(ls.Downcomer()))
	withX := ls.WithQualities(func(z float64) float64 { return 0.1 * z })
	assert.Equal(t, 0.2, withX[3].Quality)
	assert.Equal(t, 0., withX[1].Quality)
	assert.Equal(t, 0., ls[3].Quality)
	assert.NoError(t, withX.Validate())
	assert.Error(t, ls.Add(LossCoefficient{K: -1}).Validate())
	leg, err := NewLeg(" DC ")
	assert.NoError(t, err)
	assert.Equal(t, Leg_Downcomer, leg)
	assert.Equal(t, "downcomer", leg.String())
	_, err = NewLeg("riser")
	assert.Error(t, err)
	{ // Spacer grids sit strictly inside the heated length
		sg := SpacerGrids(3, 4, 1.1)
		require.Equal(t, 3, len(sg))
		assert.Equal(t, unit.Length(1), sg[0].Z)
		assert.Equal(t, unit.Length(3), sg[2].Z)
		assert.Equal(t, "spacer grid 2", sg[1].Name)
		assert.Empty(t, SpacerGrids(0, 4, 1.1))
	}
}
