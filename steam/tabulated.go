package steam

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/unit"

	"github.com/notargets/gotherm/types"
	"github.com/notargets/gotherm/units"
)

//go:embed water.yaml
var waterTable []byte

var requiredColumns = []string{"T", "P", "rhof", "rhog", "hf", "hg", "cpf", "muf", "mug", "sigma", "kf"}

// tableFile is the on-disk saturation table layout, one row per saturation
// temperature in the units documented in water.yaml
type tableFile struct {
	Title   string      `json:"Title"`
	Columns []string    `json:"Columns"`
	Rows    [][]float64 `json:"Rows"`
}

// column unit scaling to SI, T is handled separately
var columnScale = map[string]float64{
	"P":     1.e6,
	"rhof":  1,
	"rhog":  1,
	"hf":    1.e3,
	"hg":    1.e3,
	"cpf":   1.e3,
	"muf":   1.e-6,
	"mug":   1.e-6,
	"sigma": 1.e-3,
	"kf":    1.e-3,
}

// Tabulated interpolates a saturation table linearly in pressure (for
// saturation states) and in temperature (for subcooled liquid).
type Tabulated struct {
	Title      string
	Pmin, Pmax float64
	Tmin, Tmax float64
	byP        map[string]*interp.PiecewiseLinear
	byT        map[string]*interp.PiecewiseLinear
}

// NewWaterTable returns the built in water table
func NewWaterTable() (*Tabulated, error) {
	return ParseTable(waterTable)
}

// LoadTable reads a user supplied table in the water.yaml format
func LoadTable(path string) (tb *Tabulated, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	return ParseTable(data)
}

func ParseTable(data []byte) (tb *Tabulated, err error) {
	var (
		tf  tableFile
		col = make(map[string]int)
	)
	if err = yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing steam table: %w", err)
	}
	for i, name := range tf.Columns {
		col[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("steam table %q missing column %s", tf.Title, name)
		}
	}
	if len(tf.Rows) < 2 {
		return nil, fmt.Errorf("steam table %q needs at least two rows", tf.Title)
	}
	rows := make([][]float64, len(tf.Rows))
	for i, r := range tf.Rows {
		if len(r) != len(tf.Columns) {
			return nil, fmt.Errorf("steam table %q row %d has %d values, want %d",
				tf.Title, i, len(r), len(tf.Columns))
		}
		rows[i] = r
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][col["T"]] < rows[j][col["T"]] })
	var (
		n     = len(rows)
		T     = make([]float64, n)
		P     = make([]float64, n)
		table = &Tabulated{
			Title: tf.Title,
			byP:   make(map[string]*interp.PiecewiseLinear),
			byT:   make(map[string]*interp.PiecewiseLinear),
		}
	)
	for i, r := range rows {
		T[i] = float64(units.FromCelsius(r[col["T"]]))
		P[i] = r[col["P"]] * columnScale["P"]
		if i > 0 && !(P[i] > P[i-1] && T[i] > T[i-1]) {
			return nil, fmt.Errorf("steam table %q is not monotonic at row %d", tf.Title, i)
		}
	}
	fit := func(x, y []float64) (pl *interp.PiecewiseLinear, err error) {
		pl = &interp.PiecewiseLinear{}
		err = pl.Fit(x, y)
		return
	}
	for _, name := range requiredColumns {
		y := make([]float64, n)
		for i, r := range rows {
			if name == "T" {
				y[i] = T[i]
			} else {
				y[i] = r[col[name]] * columnScale[name]
			}
		}
		if table.byP[name], err = fit(P, y); err != nil {
			return nil, err
		}
		if table.byT[name], err = fit(T, y); err != nil {
			return nil, err
		}
	}
	table.Pmin, table.Pmax = P[0], P[n-1]
	table.Tmin, table.Tmax = T[0], T[n-1]
	return table, nil
}

func (tb *Tabulated) Saturation(P unit.Pressure) (s Saturation, err error) {
	p := float64(P)
	if p < tb.Pmin || p > tb.Pmax {
		err = &types.DomainError{Correlation: tb.Title, Quantity: "pressure P", Value: p,
			Limit: fmt.Sprintf("%g <= P <= %g", tb.Pmin, tb.Pmax)}
		return
	}
	at := func(name string) float64 { return tb.byP[name].Predict(p) }
	s = Saturation{
		P:     P,
		Tsat:  unit.Temperature(at("T")),
		Hf:    units.SpecificEnthalpy(at("hf")),
		Hg:    units.SpecificEnthalpy(at("hg")),
		RhoF:  units.Density(at("rhof")),
		RhoG:  units.Density(at("rhog")),
		CpF:   units.SpecificHeat(at("cpf")),
		MuF:   units.Viscosity(at("muf")),
		MuG:   units.Viscosity(at("mug")),
		Sigma: units.SurfaceTension(at("sigma")),
		KF:    units.ThermalConductivity(at("kf")),
	}
	return
}

// SubcooledEnthalpy uses the compressed liquid approximation
//
//	h(P, T) = hf(T) + (P - Psat(T)) / rhof(T)
func (tb *Tabulated) SubcooledEnthalpy(P unit.Pressure, T unit.Temperature) (h units.SpecificEnthalpy, err error) {
	t := float64(T)
	if t < tb.Tmin || t > tb.Tmax {
		err = &types.DomainError{Correlation: tb.Title, Quantity: "temperature T", Value: t,
			Limit: fmt.Sprintf("%g <= T <= %g", tb.Tmin, tb.Tmax)}
		return
	}
	var (
		hf   = tb.byT["hf"].Predict(t)
		psat = tb.byT["P"].Predict(t)
		rhof = tb.byT["rhof"].Predict(t)
	)
	h = units.SpecificEnthalpy(hf + (float64(P)-psat)/rhof)
	return
}
