package amr

import (
	"github.com/notargets/gotsunami/utils"
)

type Cell struct {
	I, J int
}

// ErrorIndicator is (u²+v²)(h+b)², a wave amplitude weighted by the kinetic energy
func ErrorIndicator(h, hu, hv, b float64) float64 {
	var (
		u, v = hu / h, hv / h
		eta  = h + b
	)
	return (u*u + v*v) * eta * eta
}

/*
ErrorEst returns the wet cells of level lev whose error indicator is strictly
above the square of the level threshold. The patches are scanned in parallel.
*/
func (c *AMRCore) ErrorEst(lev int) (tags []Cell) {
	var (
		l         = c.levels[lev]
		nP        = len(l.Patches)
		threshold = c.cfg.Thresholds[lev]
		limit     = threshold * threshold
		perPatch  = make([][]Cell, nP)
		pm        = utils.NewPartitionMap(utils.ParallelDegree(c.cfg.ParallelDegree, nP), nP)
	)
	pm.Run(func(n0, n1 int) {
		for n := n0; n < n1; n++ {
			var (
				b      = l.Boxes[n]
				p      = l.Patches[n]
				stride = p.GetStride()
				h, hu  = p.GetHeight(), p.GetMomentumX()
				hv, bb = p.GetMomentumY(), p.GetBathymetry()
			)
			for iy := 0; iy < b.NY(); iy++ {
				for ix := 0; ix < b.NX(); ix++ {
					k := iy*stride + ix
					if h[k] <= 0 {
						continue
					}
					ind := ErrorIndicator(float64(h[k]), float64(hu[k]), float64(hv[k]), float64(bb[k]))
					if ind > limit {
						perPatch[n] = append(perPatch[n], Cell{b.Lo[0] + ix, b.Lo[1] + iy})
					}
				}
			}
		}
	})
	for _, t := range perPatch {
		tags = append(tags, t...)
	}
	return
}
