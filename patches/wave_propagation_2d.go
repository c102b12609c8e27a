package patches

import (
	"github.com/notargets/gotsunami/solvers"
	"github.com/notargets/gotsunami/types"
	"github.com/notargets/gotsunami/utils"
)

// Fields are the ghost inclusive arrays of one time level of a 2D patch
type Fields struct {
	H, Hu, Hv, B []Real
}

/*
WavePropagation2D is the dimensionally split patch. Row 0 is the ghost row on
the Side_Top boundary and row ny+1 the one on Side_Bottom.
*/
type WavePropagation2D struct {
	patchConfig
	nx, ny, stride     int
	step               int
	h, hu, hv          [2][]Real
	hMid               []Real
	b, totalHeight     []Real
	isDirtyTotalHeight bool
	rows, tiles        *utils.PartitionMap
	recorder           FaceRecorder
}

func NewWavePropagation2D(nx, ny int) (p *WavePropagation2D) {
	var (
		stride = nx + 2
		bufs   = newArena(9, stride*(ny+2))
	)
	p = &WavePropagation2D{
		nx:                 nx,
		ny:                 ny,
		stride:             stride,
		h:                  [2][]Real{bufs[0], bufs[1]},
		hu:                 [2][]Real{bufs[2], bufs[3]},
		hv:                 [2][]Real{bufs[4], bufs[5]},
		hMid:               bufs[6],
		b:                  bufs[7],
		totalHeight:        bufs[8],
		isDirtyTotalHeight: true,
	}
	p.SetParallelDegree(0)
	return
}

// SetParallelDegree limits the sweep goroutines, zero uses every CPU
func (p *WavePropagation2D) SetParallelDegree(procLimit int) {
	var (
		nRows  = p.ny + 2
		nTiles = (p.nx + TileSize - 1) / TileSize
	)
	p.ParallelDegree = procLimit
	p.rows = utils.NewPartitionMap(utils.ParallelDegree(procLimit, nRows), nRows)
	p.tiles = utils.NewPartitionMap(utils.ParallelDegree(procLimit, nTiles), nTiles)
}

func (p *WavePropagation2D) SetFaceRecorder(rec FaceRecorder) { p.recorder = rec }

func (p *WavePropagation2D) TimeStep(scaling Real) { p.TimeStepXY(scaling, scaling) }

/*
TimeStepXY runs the x-sweep over every row, ghost rows included, then the
y-sweep over the interior columns from the x-swept height. The previous time
level stays intact in the other buffers.
*/
func (p *WavePropagation2D) TimeStepXY(scalingX, scalingY Real) {
	var (
		fn, bath           = p.kernel()
		hOld, huOld, hvOld = p.h[p.step], p.hu[p.step], p.hv[p.step]
		next               = (p.step + 1) & 1
		hNew, huNew, hvNew = p.h[next], p.hu[next], p.hv[next]
		b                  []Real
		stride, nRows      = p.stride, p.ny + 2
	)
	if bath {
		b = p.b
	}
	copy(hNew, hOld)
	copy(huNew, huOld)
	copy(hvNew, hvOld)

	if p.recorder != nil {
		p.recorder.RecordX(fn, hOld, huOld, b, scalingX)
	}
	p.rows.Run(func(row0, row1 int) {
		SweepX(fn, hOld, huOld, b, hNew, huNew, stride, row0, row1, scalingX)
	})

	copy(p.hMid, hNew)
	if p.recorder != nil {
		p.recorder.RecordY(fn, p.hMid, hvOld, b, scalingY)
	}
	p.tiles.Run(func(tile0, tile1 int) {
		for tile := tile0; tile < tile1; tile++ {
			col0 := 1 + tile*TileSize
			col1 := min(col0+TileSize, p.nx+1)
			SweepY(fn, p.hMid, hvOld, b, hNew, hvNew, stride, nRows, col0, col1, scalingY)
		}
	})

	p.step = next
	p.isDirtyTotalHeight = true
}

func (p *WavePropagation2D) SetGhostOutflow() {
	var (
		h, hu, hv = p.h[p.step], p.hu[p.step], p.hv[p.step]
		stride    = p.stride
	)
	for iy := 1; iy <= p.ny; iy++ {
		row := iy * stride
		mirrorGhost(h, hu, hv, p.b, row, row+1, p.reflect[types.Side_Left])
		mirrorGhost(h, hu, hv, p.b, row+p.nx+1, row+p.nx, p.reflect[types.Side_Right])
	}
	bottom := (p.ny + 1) * stride
	for i := 0; i < stride; i++ {
		mirrorGhost(h, hv, hu, p.b, i, stride+i, p.reflect[types.Side_Top])
		mirrorGhost(h, hv, hu, p.b, bottom+i, bottom-stride+i, p.reflect[types.Side_Bottom])
	}
}

func (p *WavePropagation2D) GetStride() int { return p.stride }
func (p *WavePropagation2D) GetCellsX() int { return p.nx }
func (p *WavePropagation2D) GetCellsY() int { return p.ny }

func (p *WavePropagation2D) interior(a []Real) []Real {
	return a[p.stride+1 : p.ny*p.stride+p.nx+1]
}

func (p *WavePropagation2D) GetHeight() []Real { return p.interior(p.h[p.step]) }
func (p *WavePropagation2D) GetMomentumX() []Real { return p.interior(p.hu[p.step]) }
func (p *WavePropagation2D) GetMomentumY() []Real { return p.interior(p.hv[p.step]) }
func (p *WavePropagation2D) GetBathymetry() []Real { return p.interior(p.b) }

func (p *WavePropagation2D) GetTotalHeight() []Real {
	if p.isDirtyTotalHeight {
		h := p.h[p.step]
		for iy := 1; iy <= p.ny; iy++ {
			for ix := 1; ix <= p.nx; ix++ {
				k := iy*p.stride + ix
				p.totalHeight[k] = h[k] + p.b[k]
			}
		}
		p.isDirtyTotalHeight = false
	}
	return p.interior(p.totalHeight)
}

func (p *WavePropagation2D) index(ix, iy int) int { return (iy+1)*p.stride + ix + 1 }

func (p *WavePropagation2D) SetHeight(ix, iy int, h Real) {
	p.h[p.step][p.index(ix, iy)] = h
	p.isDirtyTotalHeight = true
}

func (p *WavePropagation2D) SetMomentumX(ix, iy int, hu Real) { p.hu[p.step][p.index(ix, iy)] = hu }

func (p *WavePropagation2D) SetMomentumY(ix, iy int, hv Real) { p.hv[p.step][p.index(ix, iy)] = hv }

func (p *WavePropagation2D) SetBathymetry(ix, iy int, b Real) {
	p.b[p.index(ix, iy)] = b
	p.isDirtyTotalHeight = true
}

func (p *WavePropagation2D) UpdateWaterHeight() {
	h := p.h[p.step]
	for iy := 1; iy <= p.ny; iy++ {
		row := iy * p.stride
		clampWaterHeight(h[row+1:row+p.nx+1], p.b[row+1:row+p.nx+1])
	}
	p.isDirtyTotalHeight = true
}

func (p *WavePropagation2D) MaxWaveSpeed() (speed Real) {
	var (
		h, hu, hv = p.h[p.step], p.hu[p.step], p.hv[p.step]
	)
	for iy := 1; iy <= p.ny; iy++ {
		row := iy*p.stride + 1
		s := solvers.MaxWaveSpeed(h[row:row+p.nx], hu[row:row+p.nx], hv[row:row+p.nx])
		if s > speed {
			speed = s
		}
	}
	return
}

// State is the current time level including the ghost ring
func (p *WavePropagation2D) State() Fields {
	return Fields{H: p.h[p.step], Hu: p.hu[p.step], Hv: p.hv[p.step], B: p.b}
}

// MutableState is State for callers that write interior cells
func (p *WavePropagation2D) MutableState() Fields {
	p.isDirtyTotalHeight = true
	return p.State()
}

// PrevState is the time level the last TimeStep started from
func (p *WavePropagation2D) PrevState() Fields {
	prev := (p.step + 1) & 1
	return Fields{H: p.h[prev], Hu: p.hu[prev], Hv: p.hv[prev], B: p.b}
}

// SyncPrevState makes the previous time level a copy of the current one
func (p *WavePropagation2D) SyncPrevState() {
	prev := (p.step + 1) & 1
	copy(p.h[prev], p.h[p.step])
	copy(p.hu[prev], p.hu[p.step])
	copy(p.hv[prev], p.hv[p.step])
}
