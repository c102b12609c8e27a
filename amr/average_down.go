package amr

import (
	"github.com/notargets/gotsunami/utils"
)

/*
buildRestriction assembles, per box of level lev, the operator that maps the
box cells onto the cells of its coarse footprint. Every fine cell contributes
1/r² to its coarse parent.
*/
func (c *AMRCore) buildRestriction(lev int) {
	var (
		l = c.levels[lev]
		r = c.cfg.RefRatio[lev-1]
		w = 1 / float64(r*r)
	)
	l.restrict = make([]utils.CSR, len(l.Boxes))
	for n, b := range l.Boxes {
		var (
			cb = b.Coarsen(r)
			R  = utils.NewDOK(cb.NumCells(), b.NumCells())
		)
		for j := b.Lo[1]; j <= b.Hi[1]; j++ {
			for i := b.Lo[0]; i <= b.Hi[0]; i++ {
				ix, iy := b.Local(i, j)
				cx, cy := cb.Local(floorDiv(i, r), floorDiv(j, r))
				R.Set(cy*cb.NX()+cx, iy*b.NX()+ix, w)
			}
		}
		l.restrict[n] = R.SetReadOnly("R").ToCSR()
	}
}

/*
AverageDownTo overwrites the covered cells of level lev with the averages of
level lev+1. The bathymetry is averaged too, so the coarse surface is the
average of the fine one.
*/
func (c *AMRCore) AverageDownTo(lev int) {
	var (
		coarse = c.levels[lev]
		fine   = c.levels[lev+1]
		r      = c.cfg.RefRatio[lev]
		hint   int
	)
	for n, b := range fine.Boxes {
		var (
			p      = fine.Patches[n]
			stride = p.GetStride()
			cb     = b.Coarsen(r)
			nF     = b.NumCells()
			R      = fine.restrict[n]
			x      = make([]float64, nF)
			y      = make([][4]float64, cb.NumCells())
			dst    = make([]float64, cb.NumCells())
		)
		for q, field := range [][]Real{p.GetHeight(), p.GetMomentumX(), p.GetMomentumY(), p.GetBathymetry()} {
			for iy := 0; iy < b.NY(); iy++ {
				for ix := 0; ix < b.NX(); ix++ {
					x[iy*b.NX()+ix] = float64(field[iy*stride+ix])
				}
			}
			R.MulVec(dst, x)
			for k, v := range dst {
				y[k][q] = v
			}
		}
		for j := cb.Lo[1]; j <= cb.Hi[1]; j++ {
			for i := cb.Lo[0]; i <= cb.Hi[0]; i++ {
				m := coarse.Boxes.Find(i, j, &hint)
				if m < 0 {
					continue
				}
				var (
					f      = coarse.Patches[m].MutableState()
					k      = coarse.index(m, i, j)
					cx, cy = cb.Local(i, j)
					v      = y[cy*cb.NX()+cx]
				)
				f.H[k], f.Hu[k], f.Hv[k], f.B[k] = Real(v[0]), Real(v[1]), Real(v[2]), Real(v[3])
			}
		}
	}
}
