package amr

import (
	"github.com/notargets/gotsunami/patches"
	"github.com/notargets/gotsunami/types"
	"github.com/notargets/gotsunami/utils"
)

type Real = types.Real

type cellState struct {
	H, Hu, Hv, B float64
}

// Level is one refinement level, every box owns a patch with a ghost ring
type Level struct {
	Boxes    BoxList
	Patches  []*patches.WavePropagation2D
	Domain   Box
	Dx, Dy   float64
	restrict []utils.CSR // restriction of each box onto its coarse footprint
	faces    []*faceRecorder
}

func (l *Level) Empty() bool { return len(l.Boxes) == 0 }

func (l *Level) NumCells() int { return l.Boxes.NumCells() }

func (c *AMRCore) newPatch(b Box) (p *patches.WavePropagation2D) {
	p = patches.NewWavePropagation2D(b.NX(), b.NY())
	p.SetSolver(c.cfg.Solver)
	p.EnableBathymetry(c.cfg.Bathymetry)
	for side := types.Side(0); side < types.NumSides; side++ {
		p.SetReflection(side, c.cfg.Reflect[side])
	}
	p.SetParallelDegree(c.cfg.ParallelDegree)
	return
}

// index of level cell (i,j) in the ghost inclusive arrays of patch n
func (l *Level) index(n, i, j int) int {
	var (
		b      = l.Boxes[n]
		ix, iy = b.Local(i, j)
	)
	return (iy+1)*l.Patches[n].GetStride() + ix + 1
}

func (l *Level) current(n, i, j int) (s cellState) {
	var (
		f = l.Patches[n].State()
		k = l.index(n, i, j)
	)
	return cellState{float64(f.H[k]), float64(f.Hu[k]), float64(f.Hv[k]), float64(f.B[k])}
}

// blended is the state of a valid cell at the fraction alpha between the two time levels
func (l *Level) blended(n, i, j int, alpha float64) (s cellState) {
	var (
		f, fp = l.Patches[n].State(), l.Patches[n].PrevState()
		k     = l.index(n, i, j)
		beta  = 1 - alpha
	)
	s.H = beta*float64(fp.H[k]) + alpha*float64(f.H[k])
	s.Hu = beta*float64(fp.Hu[k]) + alpha*float64(f.Hu[k])
	s.Hv = beta*float64(fp.Hv[k]) + alpha*float64(f.Hv[k])
	s.B = float64(f.B[k])
	return
}

func writeCell(f patches.Fields, k int, s cellState) {
	f.H[k] = Real(s.H)
	f.Hu[k] = Real(s.Hu)
	f.Hv[k] = Real(s.Hv)
	f.B[k] = Real(s.B)
}

// cellCenter is the physical position of cell (i,j) of level lev
func (c *AMRCore) cellCenter(lev, i, j int) (x, y Real) {
	x = Real(c.cfg.OriginX + (float64(i)+0.5)*c.dx[lev])
	y = Real(c.cfg.OriginY + (float64(j)+0.5)*c.dy[lev])
	return
}
