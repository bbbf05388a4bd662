package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/unit"
)

func TestQuantity(t *testing.T) {
	{ // Length conversions
		q, err := Parse("12 ft")
		require.NoError(t, err)
		assert.Equal(t, Foot, q.Unit)
		assert.InDelta(t, 3.6576, q.SI(), 1.e-12)
		in, err := Convert(Quantity{0.374, Inch}, Millimeter)
		require.NoError(t, err)
		assert.InDelta(t, 9.4996, in.Value, 1.e-9)
	}
	{ // Pressure and mass flux used by the reference BWR case
		p, err := ParseAs("1000 psia", MPa)
		require.NoError(t, err)
		assert.InDelta(t, 6.894757e6, p, 1.)
		g, err := ParseAs("2.5e6 lbm/ft2/hr", KgPerM2S)
		require.NoError(t, err)
		assert.InDelta(t, 3390.58, g, 0.01)
	}
	{ // Affine temperatures
		c, err := Convert(Quantity{212, Fahrenheit}, Celsius)
		require.NoError(t, err)
		assert.InDelta(t, 100., c.Value, 1.e-9)
		k, err := ParseAs("530 F", Kelvin)
		require.NoError(t, err)
		assert.InDelta(t, 549.817, k, 1.e-3)
		assert.InDelta(t, 276.667, ToCelsius(unit.Temperature(k)), 1.e-3)
	}
	{ // Mismatched dimensions fail at construction
		_, err := Convert(Quantity{1, Foot}, Psia)
		assert.Error(t, err)
		_, err = ParseAs("3 MPa", Meter)
		assert.Error(t, err)
		_, err = Parse("3 furlongs")
		assert.Error(t, err)
		_, err = Parse("")
		assert.Error(t, err)
		assert.False(t, Compatible(KgPerM2S, KgPerS))
		assert.True(t, Compatible(BtuPerLbm, KJPerKg))
	}
	{ // Round trip through SI
		q, err := FromSI(1.e6, BtuPerHrFt2)
		require.NoError(t, err)
		assert.InDelta(t, 1.e6, q.SI(), 1.e-6)
		assert.InDelta(t, q.Value, ToBtuPerHrFt2(HeatFlux(1.e6)), 1.e-9)
	}
	{ // Typed SI scalars carry gonum dimensions
		assert.True(t, unit.DimensionsMatch(MassFlux(1), unit.New(1, dMassFlux)))
		assert.False(t, unit.DimensionsMatch(MassFlux(1), MassFlowRate(1)))
		assert.True(t, unit.DimensionsMatch(HeatFlux(1), unit.New(1, unit.Dimensions{
			unit.MassDim: 1, unit.TimeDim: -3})))
		assert.Equal(t, "12 ft", Quantity{12, Foot}.String())
	}
	{ // Differences skip the scale offset
		v, err := ParseDeltaAs("9 F", Kelvin)
		require.NoError(t, err)
		assert.InDelta(t, 5., v, 1.e-12)
		v, err = ParseDeltaAs("3 C", Kelvin)
		require.NoError(t, err)
		assert.Equal(t, 3., v)
		_, err = ParseDeltaAs("3 ft", Kelvin)
		assert.Error(t, err)
	}
}
