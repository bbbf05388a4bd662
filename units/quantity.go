package units

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/unit"
)

// Tag names the unit a Quantity's magnitude is expressed in
type Tag string

const (
	Meter      Tag = "m"
	Millimeter Tag = "mm"
	Foot       Tag = "ft"
	Inch       Tag = "in"

	Pascal Tag = "Pa"
	KPa    Tag = "kPa"
	MPa    Tag = "MPa"
	Bar    Tag = "bar"
	Psia   Tag = "psia"
	Psi    Tag = "psi"

	Kelvin     Tag = "K"
	Celsius    Tag = "C"
	Fahrenheit Tag = "F"
	Rankine    Tag = "R"

	KgPerM2S     Tag = "kg/m2/s"
	LbmPerFt2Hr  Tag = "lbm/ft2/hr"
	JPerKg       Tag = "J/kg"
	KJPerKg      Tag = "kJ/kg"
	BtuPerLbm    Tag = "Btu/lbm"
	WPerM2       Tag = "W/m2"
	BtuPerHrFt2  Tag = "Btu/hr/ft2"
	KgPerS       Tag = "kg/s"
	LbmPerHr     Tag = "lbm/hr"
	Watt         Tag = "W"
	KiloWatt     Tag = "kW"
	MegaWatt     Tag = "MW"
	Horsepower   Tag = "hp"
	BtuPerHr     Tag = "Btu/hr"
	KgPerM3      Tag = "kg/m3"
	LbmPerFt3    Tag = "lbm/ft3"
	NPerM        Tag = "N/m"
	PaS          Tag = "Pa*s"
	JPerKgK      Tag = "J/kg/K"
	WPerM        Tag = "W/m"
	KWPerM       Tag = "kW/m"
	WPerMK       Tag = "W/m/K"
	WPerM2K      Tag = "W/m2/K"

	Dimensionless Tag = "1"
)

const (
	ftToM     = 0.3048
	lbmToKg   = 0.45359237
	btuToJ    = 1055.05585262
	psiToPa   = 6894.757293168
	hrToS     = 3600.
	hpToW     = 745.69987158227
	fahrScale = 5. / 9.
)

type tagInfo struct {
	dims          unit.Dimensions
	scale, offset float64 // SI = Value*scale + offset
}

var (
	dLength          = unit.Dimensions{unit.LengthDim: 1}
	dPressure        = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2}
	dTemperature     = unit.Dimensions{unit.TemperatureDim: 1}
	dMassFlux        = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -2, unit.TimeDim: -1}
	dSpecificEnergy  = unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -2}
	dHeatFlux        = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -3}
	dMassFlowRate    = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -1}
	dPower           = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3}
	dDensity         = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3}
	dSurfaceTension  = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -2}
	dViscosity       = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -1}
	dSpecificHeat    = unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -2, unit.TemperatureDim: -1}
	dLinearPower     = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -3}
	dConductivity    = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -3, unit.TemperatureDim: -1}
	dFilmCoefficient = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -3, unit.TemperatureDim: -1}
)

var tags = map[Tag]tagInfo{
	Meter:      {dLength, 1, 0},
	Millimeter: {dLength, 1.e-3, 0},
	Foot:       {dLength, ftToM, 0},
	Inch:       {dLength, ftToM / 12, 0},

	Pascal: {dPressure, 1, 0},
	KPa:    {dPressure, 1.e3, 0},
	MPa:    {dPressure, 1.e6, 0},
	Bar:    {dPressure, 1.e5, 0},
	Psia:   {dPressure, psiToPa, 0},
	Psi:    {dPressure, psiToPa, 0},

	Kelvin:     {dTemperature, 1, 0},
	Celsius:    {dTemperature, 1, 273.15},
	Fahrenheit: {dTemperature, fahrScale, 273.15 - 32*fahrScale},
	Rankine:    {dTemperature, fahrScale, 0},

	KgPerM2S:      {dMassFlux, 1, 0},
	LbmPerFt2Hr:   {dMassFlux, lbmToKg / (ftToM * ftToM) / hrToS, 0},
	JPerKg:        {dSpecificEnergy, 1, 0},
	KJPerKg:       {dSpecificEnergy, 1.e3, 0},
	BtuPerLbm:     {dSpecificEnergy, btuToJ / lbmToKg, 0},
	WPerM2:        {dHeatFlux, 1, 0},
	BtuPerHrFt2:   {dHeatFlux, btuToJ / hrToS / (ftToM * ftToM), 0},
	KgPerS:        {dMassFlowRate, 1, 0},
	LbmPerHr:      {dMassFlowRate, lbmToKg / hrToS, 0},
	Watt:          {dPower, 1, 0},
	KiloWatt:      {dPower, 1.e3, 0},
	MegaWatt:      {dPower, 1.e6, 0},
	Horsepower:    {dPower, hpToW, 0},
	BtuPerHr:      {dPower, btuToJ / hrToS, 0},
	KgPerM3:       {dDensity, 1, 0},
	LbmPerFt3:     {dDensity, lbmToKg / (ftToM * ftToM * ftToM), 0},
	NPerM:         {dSurfaceTension, 1, 0},
	PaS:           {dViscosity, 1, 0},
	JPerKgK:       {dSpecificHeat, 1, 0},
	WPerM:         {dLinearPower, 1, 0},
	KWPerM:        {dLinearPower, 1.e3, 0},
	WPerMK:        {dConductivity, 1, 0},
	WPerM2K:       {dFilmCoefficient, 1, 0},
	Dimensionless: {unit.Dimensions{}, 1, 0},
}

// Quantity is a magnitude paired with the unit it is expressed in
type Quantity struct {
	Value float64
	Unit  Tag
}

func New(value float64, tag Tag) (q Quantity, err error) {
	if _, ok := tags[tag]; !ok {
		err = fmt.Errorf("unknown unit %q", tag)
		return
	}
	q = Quantity{Value: value, Unit: tag}
	return
}

func (q Quantity) String() string {
	return strconv.FormatFloat(q.Value, 'g', -1, 64) + " " + string(q.Unit)
}

// Dimensions returns the gonum dimensions measured by the quantity's unit
func (q Quantity) Dimensions() unit.Dimensions {
	return tags[q.Unit].dims
}

// Compatible reports whether two tags measure the same physical dimension
func Compatible(a, b Tag) bool {
	ia, oka := tags[a]
	ib, okb := tags[b]
	if !oka || !okb {
		return false
	}
	return unit.DimensionsMatch(unit.New(1, ia.dims), unit.New(1, ib.dims))
}

// Convert expresses q in the target unit. Converting between units of
// different dimension is an error.
func Convert(q Quantity, to Tag) (r Quantity, err error) {
	var (
		from, okF = tags[q.Unit]
		dest, okT = tags[to]
	)
	switch {
	case !okF:
		err = fmt.Errorf("unknown unit %q", q.Unit)
		return
	case !okT:
		err = fmt.Errorf("unknown unit %q", to)
		return
	case !Compatible(q.Unit, to):
		err = fmt.Errorf("cannot convert %s to %s: dimensions %v and %v differ",
			q, to, from.dims, dest.dims)
		return
	}
	si := q.Value*from.scale + from.offset
	r = Quantity{Value: (si - dest.offset) / dest.scale, Unit: to}
	return
}

// SI returns the magnitude of q in the SI unit of its dimension
func (q Quantity) SI() float64 {
	info := tags[q.Unit]
	return q.Value*info.scale + info.offset
}

// As returns the SI magnitude of q after checking it measures the same
// dimension as want.
func (q Quantity) As(want Tag) (v float64, err error) {
	var r Quantity
	if r, err = Convert(q, want); err != nil {
		return
	}
	v = r.SI()
	return
}

// Parse reads strings of the form "12 ft" or "2.5e6 lbm/ft2/hr". A bare
// number is dimensionless.
func Parse(s string) (q Quantity, err error) {
	var (
		fields = strings.Fields(strings.TrimSpace(s))
		value  float64
	)
	if len(fields) == 0 || len(fields) > 2 {
		err = fmt.Errorf("malformed quantity %q", s)
		return
	}
	if value, err = strconv.ParseFloat(fields[0], 64); err != nil {
		err = fmt.Errorf("malformed quantity %q: %w", s, err)
		return
	}
	tag := Dimensionless
	if len(fields) == 2 {
		tag = Tag(fields[1])
	}
	return New(value, tag)
}

// ParseAs parses s and returns its SI magnitude, requiring the dimension of want
func ParseAs(s string, want Tag) (v float64, err error) {
	var q Quantity
	if q, err = Parse(s); err != nil {
		return
	}
	return q.As(want)
}

// FromSI expresses an SI magnitude in the unit tag
func FromSI(si float64, tag Tag) (q Quantity, err error) {
	info, ok := tags[tag]
	if !ok {
		err = fmt.Errorf("unknown unit %q", tag)
		return
	}
	q = Quantity{Value: (si - info.offset) / info.scale, Unit: tag}
	return
}

// ParseDeltaAs parses a difference, like a temperature spread of "2 F", and
// returns its SI magnitude. Offsets between scales do not apply to
// differences.
func ParseDeltaAs(s string, want Tag) (v float64, err error) {
	var q Quantity
	if q, err = Parse(s); err != nil {
		return
	}
	if !Compatible(q.Unit, want) {
		err = fmt.Errorf("cannot use %s as %s: dimensions differ", q, want)
		return
	}
	v = q.Value * tags[q.Unit].scale
	return
}
