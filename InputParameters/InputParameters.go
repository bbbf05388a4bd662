package InputParameters

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file. Dimensional values are
// strings carrying their unit, like "12 ft" or "1000 psia".
type ChannelParameters struct {
	Title            string            `json:"Title"`
	RodDiameter      string            `json:"RodDiameter"`
	HeatedLength     string            `json:"HeatedLength"`
	Extrapolation    string            `json:"Extrapolation"` // lambda, or derived from PeakingFactor
	PeakingFactor    float64           `json:"PeakingFactor"`
	Pitch            string            `json:"Pitch"`
	CladThickness    string            `json:"CladThickness"`
	GapThickness     string            `json:"GapThickness"`
	MassFlux         string            `json:"MassFlux"`
	Pressure         string            `json:"Pressure"`
	CriticalPressure string            `json:"CriticalPressure"` // Water when empty
	InletTemperature string            `json:"InletTemperature"`
	HeatFlux         string            `json:"HeatFlux"` // Operating amplitude, or derived from CorePower
	CorePower        string            `json:"CorePower"`
	Rods             int               `json:"Rods"`
	Gamma            float64           `json:"Gamma"`
	Film             string            `json:"Film"`
	CladConductivity string            `json:"CladConductivity"`
	GapConductance   string            `json:"GapConductance"`
	SteamTable       string            `json:"SteamTable"`  // Optional table file, built in water otherwise
	Uncertainty      map[string]string `json:"Uncertainty"` // One sigma of G, P, Tin, HeatFlux
}

type LossParameters struct {
	Name string  `json:"Name"`
	K    float64 `json:"K"`
	Z    string  `json:"Z"`
	Leg  string  `json:"Leg"`
}

type DowncomerParameters struct {
	Length    string  `json:"Length"`
	Height    string  `json:"Height"`
	Dh        string  `json:"Dh"`
	AreaRatio float64 `json:"AreaRatio"`
}

type SpacerParameters struct {
	Count int     `json:"Count"`
	K     float64 `json:"K"`
}

// LoopParameters describe the channel plus its downcomer for the pressure
// drop engine. H0 and the exit quality come from the channel when not given.
type LoopParameters struct {
	Channel          ChannelParameters   `json:"Channel"`
	NonBoilingHeight string              `json:"NonBoilingHeight"`
	ExitQuality      float64             `json:"ExitQuality"`
	Multiplier       string              `json:"Multiplier"`
	Downcomer        DowncomerParameters `json:"Downcomer"`
	SpacerGrids      SpacerParameters    `json:"SpacerGrids"`
	Losses           []LossParameters    `json:"Losses"`
	PressureDrop     string              `json:"PressureDrop"`
	PumpEfficiency   float64             `json:"PumpEfficiency"`
}

func (cp *ChannelParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

func (lp *LoopParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, lp)
}

// ReadChannelFile loads channel parameters from a YAML file
func ReadChannelFile(path string) (cp *ChannelParameters, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	cp = &ChannelParameters{}
	if err = cp.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return
}

// ReadLoopFile loads loop parameters from a YAML file
func ReadLoopFile(path string) (lp *LoopParameters, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	lp = &LoopParameters{}
	if err = lp.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return
}

func (cp *ChannelParameters) Print() {
	cp.Fprint(os.Stdout)
}

func (cp *ChannelParameters) Fprint(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", cp.Title)
	fmt.Fprintf(w, "[%s]\t\t= Rod Diameter\n", cp.RodDiameter)
	fmt.Fprintf(w, "[%s]\t\t= Heated Length\n", cp.HeatedLength)
	if len(cp.Extrapolation) != 0 {
		fmt.Fprintf(w, "[%s]\t\t= Extrapolation Length\n", cp.Extrapolation)
	} else {
		fmt.Fprintf(w, "%8.5f\t\t= Peaking Factor\n", cp.PeakingFactor)
	}
	if len(cp.Pitch) != 0 {
		fmt.Fprintf(w, "[%s]\t\t= Pitch\n", cp.Pitch)
	}
	fmt.Fprintf(w, "[%s]\t= Mass Flux\n", cp.MassFlux)
	fmt.Fprintf(w, "[%s]\t\t= Pressure\n", cp.Pressure)
	fmt.Fprintf(w, "[%s]\t\t= Inlet Temperature\n", cp.InletTemperature)
	if len(cp.HeatFlux) != 0 {
		fmt.Fprintf(w, "[%s]\t= Heat Flux\n", cp.HeatFlux)
	}
	if len(cp.CorePower) != 0 {
		fmt.Fprintf(w, "[%s] over %d rods\t= Core Power\n", cp.CorePower, cp.Rods)
	}
	fmt.Fprintf(w, "%8.5f\t\t= Gamma\n", cp.Gamma)
	keys := make([]string, len(cp.Uncertainty))
	i := 0
	for k := range cp.Uncertainty {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "Uncertainty[%s] = %v\n", key, cp.Uncertainty[key])
	}
}

func (lp *LoopParameters) Print() {
	lp.Fprint(os.Stdout)
}

func (lp *LoopParameters) Fprint(w io.Writer) {
	lp.Channel.Fprint(w)
	if len(lp.NonBoilingHeight) != 0 {
		fmt.Fprintf(w, "[%s]\t\t= Non Boiling Height\n", lp.NonBoilingHeight)
	}
	fmt.Fprintf(w, "%8.5f\t\t= Exit Quality\n", lp.ExitQuality)
	fmt.Fprintf(w, "[%s]\t\t= Two-Phase Multiplier\n", lp.Multiplier)
	fmt.Fprintf(w, "Downcomer = %+v\n", lp.Downcomer)
	if lp.SpacerGrids.Count > 0 {
		fmt.Fprintf(w, "%d grids, K = %g\t= Spacer Grids\n", lp.SpacerGrids.Count, lp.SpacerGrids.K)
	}
	for _, l := range lp.Losses {
		fmt.Fprintf(w, "Loss[%s] = K %g at %s (%s)\n", l.Name, l.K, l.Z, l.Leg)
	}
}
