package patches

import (
	"github.com/notargets/gotsunami/solvers"
	"github.com/notargets/gotsunami/types"
)

type WavePropagation1D struct {
	patchConfig
	nCells             int
	step               int
	h, hu              [2][]Real
	b, totalHeight     []Real
	isDirtyTotalHeight bool
}

func NewWavePropagation1D(nCells int) (p *WavePropagation1D) {
	bufs := newArena(6, nCells+2)
	p = &WavePropagation1D{
		nCells:             nCells,
		h:                  [2][]Real{bufs[0], bufs[1]},
		hu:                 [2][]Real{bufs[2], bufs[3]},
		b:                  bufs[4],
		totalHeight:        bufs[5],
		isDirtyTotalHeight: true,
	}
	return
}

func (p *WavePropagation1D) TimeStep(scaling Real) {
	var (
		fn, bath    = p.kernel()
		hOld, huOld = p.h[p.step], p.hu[p.step]
		next        = (p.step + 1) & 1
		hNew, huNew = p.h[next], p.hu[next]
		b           []Real
	)
	copy(hNew, hOld)
	copy(huNew, huOld)
	if bath {
		b = p.b
	}
	SweepX(fn, hOld, huOld, b, hNew, huNew, p.nCells+2, 0, 1, scaling)
	p.step = next
	p.isDirtyTotalHeight = true
}

func (p *WavePropagation1D) SetGhostOutflow() {
	var (
		h, hu = p.h[p.step], p.hu[p.step]
	)
	mirrorGhost(h, hu, nil, p.b, 0, 1, p.reflect[types.Side_Left])
	mirrorGhost(h, hu, nil, p.b, p.nCells+1, p.nCells, p.reflect[types.Side_Right])
}

func (p *WavePropagation1D) GetStride() int { return p.nCells + 2 }
func (p *WavePropagation1D) GetCellsX() int { return p.nCells }
func (p *WavePropagation1D) GetCellsY() int { return 1 }

func (p *WavePropagation1D) interior(a []Real) []Real {
	return a[1 : p.nCells+1]
}

func (p *WavePropagation1D) GetHeight() []Real { return p.interior(p.h[p.step]) }
func (p *WavePropagation1D) GetMomentumX() []Real { return p.interior(p.hu[p.step]) }
func (p *WavePropagation1D) GetMomentumY() []Real { return nil }
func (p *WavePropagation1D) GetBathymetry() []Real { return p.interior(p.b) }

func (p *WavePropagation1D) GetTotalHeight() []Real {
	if p.isDirtyTotalHeight {
		h := p.h[p.step]
		for i := 1; i <= p.nCells; i++ {
			p.totalHeight[i] = h[i] + p.b[i]
		}
		p.isDirtyTotalHeight = false
	}
	return p.interior(p.totalHeight)
}

func (p *WavePropagation1D) SetHeight(ix, _ int, h Real) {
	p.h[p.step][ix+1] = h
	p.isDirtyTotalHeight = true
}

func (p *WavePropagation1D) SetMomentumX(ix, _ int, hu Real) { p.hu[p.step][ix+1] = hu }

func (p *WavePropagation1D) SetMomentumY(int, int, Real) {}

func (p *WavePropagation1D) SetBathymetry(ix, _ int, b Real) {
	p.b[ix+1] = b
	p.isDirtyTotalHeight = true
}

func (p *WavePropagation1D) UpdateWaterHeight() {
	clampWaterHeight(p.interior(p.h[p.step]), p.interior(p.b))
	p.isDirtyTotalHeight = true
}

func (p *WavePropagation1D) MaxWaveSpeed() Real {
	return solvers.MaxWaveSpeed(p.GetHeight(), p.GetMomentumX(), nil)
}
