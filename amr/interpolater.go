package amr

import (
	"math"
)

/*
interpolate is the state of cell (i,j) of level lev from the coarser level at
time. With bathymetry the limited slopes act on the water surface h+b and the
height is the surface above the bed of the fine cell, so a lake at rest stays
at rest across coarse-fine faces.
*/
func (c *AMRCore) interpolate(lev, i, j int, time float64) (s cellState) {
	var (
		cl     = lev - 1
		r      = c.cfg.RefRatio[cl]
		ic, jc = floorDiv(i, r), floorDiv(j, r)
		alpha  = c.timeFraction(cl, time)
		hint   int
	)
	s0, ok := c.valid(cl, ic, jc, alpha, &hint)
	if !ok {
		s0 = c.domainValue(cl, ic, jc, time, &hint)
	}
	s = s0
	s.B = c.bed(lev, i, j, s0.B)
	if c.cfg.Bathymetry {
		s.H += s0.B
	}
	if c.cfg.Interpolation == Interp_LinearLimited {
		var (
			xOff = (float64(i-ic*r)+0.5)/float64(r) - 0.5
			yOff = (float64(j-jc*r)+0.5)/float64(r) - 0.5
			sx   = c.slopes(cl, ic, jc, 1, 0, s0, alpha, &hint)
			sy   = c.slopes(cl, ic, jc, 0, 1, s0, alpha, &hint)
		)
		s.H += xOff*sx.H + yOff*sy.H
		s.Hu += xOff*sx.Hu + yOff*sy.Hu
		s.Hv += xOff*sx.Hv + yOff*sy.Hv
	}
	if c.cfg.Bathymetry {
		s.H = math.Max(s.H-s.B, 0)
		if s0.H <= 0 {
			s.H = 0
		}
		s = fixFinePatch(s, s0, c.cfg.ShoreThreshold)
	}
	return
}

// bed is the bathymetry of cell (i,j) of level lev, sampled like the interior cells of the level
func (c *AMRCore) bed(lev, i, j int, coarse float64) float64 {
	if c.setup == nil {
		return coarse
	}
	return float64(c.setup.GetBathymetry(c.cellCenter(lev, i, j)))
}

// slopes are zero in a direction that lacks a valid neighbor on either side
func (c *AMRCore) slopes(lev, i, j, di, dj int, s0 cellState, alpha float64, hint *int) (d cellState) {
	sm, okM := c.valid(lev, i-di, j-dj, alpha, hint)
	sp, okP := c.valid(lev, i+di, j+dj, alpha, hint)
	if !okM || !okP {
		return
	}
	if c.cfg.Bathymetry {
		d.H = limitedSlope(sm.H+sm.B, s0.H+s0.B, sp.H+sp.B)
	} else {
		d.H = limitedSlope(sm.H, s0.H, sp.H)
	}
	d.Hu = limitedSlope(sm.Hu, s0.Hu, sp.Hu)
	d.Hv = limitedSlope(sm.Hv, s0.Hv, sp.Hv)
	return
}

// limitedSlope is the monotonized central slope
func limitedSlope(um, u0, up float64) float64 {
	dl, dr := u0-um, up-u0
	if dl*dr <= 0 {
		return 0
	}
	var (
		dc = 0.5 * (up - um)
		s  = math.Min(math.Abs(dc), 2*math.Min(math.Abs(dl), math.Abs(dr)))
	)
	return math.Copysign(s, dc)
}

/*
fixFinePatch protects the shoreline: next to a coarse cell whose bathymetry is
close to zero the fine cell takes the flat surface and the momenta of the
coarse cell pc, a cell on land is dry. Dry cells carry no momentum.
*/
func fixFinePatch(s, pc cellState, shoreThreshold float64) cellState {
	if math.Abs(pc.B) < shoreThreshold {
		s.H, s.Hu, s.Hv = 0, pc.Hu, pc.Hv
		if pc.H > 0 {
			s.H = math.Max(pc.H+pc.B-s.B, 0)
		}
	}
	if s.B >= 0 {
		s.H = 0
	}
	if s.H == 0 {
		s.Hu, s.Hv = 0, 0
	}
	return s
}
