package profile

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/unit"

	"github.com/notargets/gotherm/roots"
	"github.com/notargets/gotherm/units"
)

// Profile tabulates the channel state at axial stations Z. Temperatures are
// in kelvin.
type Profile struct {
	Z           []float64
	HeatFlux    []float64
	LinearPower []float64
	Enthalpy    []float64
	Quality     []float64
	FluidTemp   []float64
	CladTemp    []float64
	JensLottes  []float64
	WallTemp    []float64
	FuelSurface []float64
	Centerline  []float64
}

// Sample evaluates every profile on n+1 equally spaced stations over [0, H].
// Fuel temperatures are left empty when the pin is not described.
func (c Channel) Sample(n int) (p Profile, err error) {
	p.Z = roots.Grid(0, float64(c.Geom.H), n)
	np := len(p.Z)
	alloc := func() []float64 { return make([]float64, np) }
	p.HeatFlux, p.LinearPower, p.Enthalpy, p.Quality = alloc(), alloc(), alloc(), alloc()
	p.FluidTemp, p.CladTemp, p.JensLottes, p.WallTemp = alloc(), alloc(), alloc(), alloc()
	_, _, pinErr := c.radii()
	if pinErr == nil {
		p.FuelSurface, p.Centerline = alloc(), alloc()
	}
	for i, z := range p.Z {
		p.HeatFlux[i] = c.HeatFlux(z)
		p.LinearPower[i] = c.LinearPower(z)
		p.Enthalpy[i] = c.Enthalpy(z)
		p.Quality[i] = c.Quality(z)
		p.FluidTemp[i] = float64(c.FluidTemp(z))
		p.JensLottes[i] = float64(c.CladTempJensLottes(z))
		clad, err := c.CladTemp(z)
		if err != nil {
			return p, err
		}
		p.CladTemp[i] = float64(clad)
		wall, err := c.WallTemp(z)
		if err != nil {
			return p, err
		}
		p.WallTemp[i] = float64(wall)
		if pinErr != nil {
			continue
		}
		fs, err := c.FuelSurfaceTemp(z)
		if err != nil {
			return p, err
		}
		p.FuelSurface[i] = float64(fs)
		cl, err := c.FuelCenterlineTemp(z)
		if err != nil {
			return p, err
		}
		p.Centerline[i] = float64(cl)
	}
	return
}

// MaxCladTemp is the hottest wall station of an n interval sampling
func (c Channel) MaxCladTemp(n int) (z, T float64, err error) {
	var p Profile
	if p, err = c.Sample(n); err != nil {
		return
	}
	i := floats.MaxIdx(p.WallTemp)
	return p.Z[i], p.WallTemp[i], nil
}

// MaxCenterlineTemp is the hottest fuel centerline station of an n interval
// sampling
func (c Channel) MaxCenterlineTemp(n int) (z, T float64, err error) {
	var p Profile
	if p, err = c.Sample(n); err != nil {
		return
	}
	if len(p.Centerline) == 0 {
		_, _, err = c.radii()
		return
	}
	i := floats.MaxIdx(p.Centerline)
	return p.Z[i], p.Centerline[i], nil
}

// Write prints the profile as an aligned table, temperatures in C
func (p Profile) Write(w io.Writer) (err error) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "z[m]\tq''[W/m2]\th[kJ/kg]\tx\tTf[C]\tTclad[C]\tTwall[C]\tTs[C]\tTcl[C]\t")
	for i, z := range p.Z {
		var ts, tcl string
		if len(p.Centerline) > 0 {
			ts = fmt.Sprintf("%.1f", units.ToCelsius(unit.Temperature(p.FuelSurface[i])))
			tcl = fmt.Sprintf("%.1f", units.ToCelsius(unit.Temperature(p.Centerline[i])))
		}
		fmt.Fprintf(tw, "%.4f\t%.5g\t%.2f\t%.4f\t%.2f\t%.2f\t%.2f\t%s\t%s\t\n",
			z, p.HeatFlux[i], p.Enthalpy[i]/1000, p.Quality[i],
			units.ToCelsius(unit.Temperature(p.FluidTemp[i])), units.ToCelsius(unit.Temperature(p.CladTemp[i])),
			units.ToCelsius(unit.Temperature(p.WallTemp[i])), ts, tcl)
	}
	return tw.Flush()
}
