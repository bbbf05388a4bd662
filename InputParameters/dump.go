package InputParameters

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"gopkg.in/ini.v1"
)

const resultsSection = "results"

// Record is a run archive: the inputs as given plus the computed results.
// It is written as INI with inputs in the default section.
type Record struct {
	Inputs  map[string]string
	Results map[string]float64
}

// Inputs flattens the parameters that were set into key/value pairs
func (cp *ChannelParameters) Inputs() (m map[string]string) {
	m = make(map[string]string)
	set := func(key, val string) {
		if len(val) != 0 {
			m[key] = val
		}
	}
	set("Title", cp.Title)
	set("RodDiameter", cp.RodDiameter)
	set("HeatedLength", cp.HeatedLength)
	set("Extrapolation", cp.Extrapolation)
	if cp.PeakingFactor > 0 {
		m["PeakingFactor"] = strconv.FormatFloat(cp.PeakingFactor, 'g', -1, 64)
	}
	set("Pitch", cp.Pitch)
	set("CladThickness", cp.CladThickness)
	set("GapThickness", cp.GapThickness)
	set("MassFlux", cp.MassFlux)
	set("Pressure", cp.Pressure)
	set("CriticalPressure", cp.CriticalPressure)
	set("InletTemperature", cp.InletTemperature)
	set("HeatFlux", cp.HeatFlux)
	set("CorePower", cp.CorePower)
	if cp.Rods > 0 {
		m["Rods"] = strconv.Itoa(cp.Rods)
	}
	m["Gamma"] = strconv.FormatFloat(cp.GammaOrDefault(), 'g', -1, 64)
	set("Film", cp.Film)
	set("CladConductivity", cp.CladConductivity)
	set("GapConductance", cp.GapConductance)
	set("SteamTable", cp.SteamTable)
	return
}

func sortedKeys[V any](m map[string]V) (keys []string) {
	keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

func (r Record) Write(w io.Writer) (err error) {
	var (
		f   = ini.Empty()
		def = f.Section("")
		res *ini.Section
	)
	for _, key := range sortedKeys(r.Inputs) {
		if _, err = def.NewKey(key, r.Inputs[key]); err != nil {
			return
		}
	}
	if res, err = f.NewSection(resultsSection); err != nil {
		return
	}
	for _, key := range sortedKeys(r.Results) {
		if _, err = res.NewKey(key, strconv.FormatFloat(r.Results[key], 'g', -1, 64)); err != nil {
			return
		}
	}
	_, err = f.WriteTo(w)
	return
}

// LoadRecord reads back an archive written by Record.Write
func LoadRecord(data []byte) (r Record, err error) {
	var f *ini.File
	if f, err = ini.Load(data); err != nil {
		return
	}
	r.Inputs = make(map[string]string)
	r.Results = make(map[string]float64)
	for _, key := range f.Section("").Keys() {
		r.Inputs[key.Name()] = key.String()
	}
	if !f.HasSection(resultsSection) {
		return
	}
	for _, key := range f.Section(resultsSection).Keys() {
		if r.Results[key.Name()], err = key.Float64(); err != nil {
			err = fmt.Errorf("result %s: %w", key.Name(), err)
			return
		}
	}
	return
}
