package patches

import (
	"github.com/notargets/gotsunami/solvers"
	"github.com/notargets/gotsunami/types"
)

/*
WavePropagation is a structured patch of cells with one ghost cell on every
side. Getters return views that start at the first interior cell, cell (ix,
iy) of a view is at iy*GetStride()+ix. Setters take interior coordinates.
*/
type WavePropagation interface {
	TimeStep(scaling Real)
	SetGhostOutflow()
	GetStride() int
	GetCellsX() int
	GetCellsY() int
	GetHeight() []Real
	GetMomentumX() []Real
	GetMomentumY() []Real
	GetBathymetry() []Real
	GetTotalHeight() []Real
	SetHeight(ix, iy int, h Real)
	SetMomentumX(ix, iy int, hu Real)
	SetMomentumY(ix, iy int, hv Real)
	SetBathymetry(ix, iy int, b Real)
	SetSolver(solver types.SolverType)
	EnableBathymetry(enable bool)
	SetReflection(side types.Side, enable bool)
	UpdateWaterHeight()
	MaxWaveSpeed() Real
	Validate() error
}

type patchConfig struct {
	solver         types.SolverType
	bathymetry     bool
	reflect        [types.NumSides]bool
	ParallelDegree int
}

func (pc *patchConfig) SetSolver(solver types.SolverType) { pc.solver = solver }

func (pc *patchConfig) EnableBathymetry(enable bool) { pc.bathymetry = enable }

func (pc *patchConfig) SetReflection(side types.Side, enable bool) { pc.reflect[side] = enable }

func (pc *patchConfig) Reflects(side types.Side) bool { return pc.reflect[side] }

func (pc *patchConfig) HasBathymetry() bool { return pc.bathymetry }

func (pc *patchConfig) Solver() types.SolverType { return pc.solver }

// Validate rejects solver and bathymetry combinations the kernels can't run
func (pc *patchConfig) Validate() (err error) {
	_, err = solvers.Select(pc.solver, pc.bathymetry)
	return
}

func (pc *patchConfig) kernel() (fn solvers.NetUpdatesFunc, b bool) {
	var err error
	if fn, err = solvers.Select(pc.solver, pc.bathymetry); err != nil {
		panic(err)
	}
	b = pc.bathymetry
	return
}

/*
mirrorGhost copies the interior cell src into the ghost cell dst. On a
reflecting side the ghost is dry, so the reflection resolver builds the wall
from the interior cell, and its normal momentum is reversed.
*/
func mirrorGhost(h, normal, tangential, b []Real, dst, src int, reflect bool) {
	h[dst] = h[src]
	normal[dst] = normal[src]
	if tangential != nil {
		tangential[dst] = tangential[src]
	}
	b[dst] = b[src]
	if reflect {
		h[dst] = 0
		normal[dst] = -normal[src]
	}
}

func clampWaterHeight(h, b []Real) {
	for i := range h {
		h[i] -= b[i]
		if h[i] < 0 {
			h[i] = 0
		}
	}
}
