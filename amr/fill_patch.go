package amr

import (
	"fmt"

	"github.com/notargets/gotsunami/types"
)

/*
FillPatch writes the ghost ring of patch n of level lev at time. A ghost cell
inside the domain copies a valid cell of the same level or is interpolated
from the level below. Outside the domain it takes the value of the nearest
domain cell, on a reflecting side it is dry with reversed normal momentum.
*/
func (c *AMRCore) FillPatch(lev, n int, time float64) {
	var (
		l    = c.levels[lev]
		b    = l.Boxes[n]
		f    = l.Patches[n].State()
		g    = b.Grow(1)
		hint = n
	)
	for j := g.Lo[1]; j <= g.Hi[1]; j++ {
		step := 1
		if j != g.Lo[1] && j != g.Hi[1] {
			step = g.NX() - 1
		}
		for i := g.Lo[0]; i <= g.Hi[0]; i += step {
			writeCell(f, l.index(n, i, j), c.ghostValue(lev, i, j, time, &hint))
		}
	}
}

func (c *AMRCore) ghostValue(lev, i, j int, time float64, hint *int) (s cellState) {
	d := c.domains[lev]
	if d.Contains(i, j) {
		return c.domainValue(lev, i, j, time, hint)
	}
	var (
		ic = min(max(i, d.Lo[0]), d.Hi[0])
		jc = min(max(j, d.Lo[1]), d.Hi[1])
	)
	s = c.domainValue(lev, ic, jc, time, hint)
	reflect := c.cfg.Reflect
	if (i < d.Lo[0] && reflect[types.Side_Left]) || (i > d.Hi[0] && reflect[types.Side_Right]) {
		s.H, s.Hu = 0, -s.Hu
	}
	if (j < d.Lo[1] && reflect[types.Side_Top]) || (j > d.Hi[1] && reflect[types.Side_Bottom]) {
		s.H, s.Hv = 0, -s.Hv
	}
	return
}

func (c *AMRCore) domainValue(lev, i, j int, time float64, hint *int) (s cellState) {
	l := c.levels[lev]
	if n := l.Boxes.Find(i, j, hint); n >= 0 {
		return l.current(n, i, j)
	}
	if lev == 0 {
		panic(fmt.Errorf("cell (%d,%d) is inside the domain but not on level 0", i, j))
	}
	return c.interpolate(lev, i, j, time)
}

// timeFraction places time between the two time levels of level lev
func (c *AMRCore) timeFraction(lev int, time float64) (alpha float64) {
	span := c.tNew[lev] - c.tOld[lev]
	if span <= 0 {
		return 1
	}
	alpha = (time - c.tOld[lev]) / span
	return min(max(alpha, 0), 1)
}

func (c *AMRCore) valid(lev, i, j int, alpha float64, hint *int) (s cellState, ok bool) {
	l := c.levels[lev]
	if n := l.Boxes.Find(i, j, hint); n >= 0 {
		return l.blended(n, i, j, alpha), true
	}
	return
}
