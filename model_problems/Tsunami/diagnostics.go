package Tsunami

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gotsunami/patches"
)

// Diagnostics are integral and extremal values of the wet cells of a patch
type Diagnostics struct {
	Mass                   float64 // Water volume, the height integrated over the cells
	MinSurface, MaxSurface float64 // Extrema of the water surface h+b
	MaxSpeed               float64 // Largest particle speed
	WetCells               int
}

func Diagnose(p patches.WavePropagation, dx, dy Real) (d Diagnostics) {
	var (
		nx, ny    = p.GetCellsX(), p.GetCellsY()
		stride    = p.GetStride()
		h, hu, hv = p.GetHeight(), p.GetMomentumX(), p.GetMomentumY()
		b         = p.GetBathymetry()
		height    = make([]float64, 0, nx*ny)
		surface   = make([]float64, 0, nx*ny)
		speed     = make([]float64, 0, nx*ny)
	)
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			k := iy*stride + ix
			if h[k] <= 0 {
				continue
			}
			var (
				hk = float64(h[k])
				u  = float64(hu[k]) / hk
				v  float64
			)
			if hv != nil {
				v = float64(hv[k]) / hk
			}
			height = append(height, hk)
			surface = append(surface, hk+float64(b[k]))
			speed = append(speed, math.Hypot(u, v))
		}
	}
	if d.WetCells = len(height); d.WetCells == 0 {
		return
	}
	d.Mass = floats.Sum(height) * float64(dx) * float64(dy)
	d.MinSurface, d.MaxSurface = floats.Min(surface), floats.Max(surface)
	d.MaxSpeed = floats.Max(speed)
	return
}
