package patches

import (
	"github.com/notargets/gotsunami/solvers"
	"github.com/notargets/gotsunami/types"
)

// TileSize is the number of columns the y-sweep processes together
const TileSize = 16

/*
InterfaceUpdate computes the net-updates of the interface between cells iL and
iR. A shore cell gets a zero update. ok is false when both cells are dry and
nothing may be applied.
*/
func InterfaceUpdate(fn solvers.NetUpdatesFunc, h, hu, b []Real, iL, iR int) (upd [2][2]Real, ok bool) {
	if h[iL] == 0 && h[iR] == 0 {
		return
	}
	s, r := ResolveReflection(h, hu, b, iL, iR)
	upd = fn(s.HL, s.HR, s.HuL, s.HuR, s.BL, s.BR)
	if r.Has(types.Reflect_Right) {
		upd[0] = [2]Real{}
	}
	if r.Has(types.Reflect_Left) {
		upd[1] = [2]Real{}
	}
	ok = true
	return
}

func applyInterface(fn solvers.NetUpdatesFunc, h, hu, b, hNew, huNew []Real, iL, iR int, scaling Real) {
	upd, ok := InterfaceUpdate(fn, h, hu, b, iL, iR)
	if !ok {
		return
	}
	hNew[iL] -= scaling * upd[0][0]
	huNew[iL] -= scaling * upd[0][1]
	hNew[iR] -= scaling * upd[1][0]
	huNew[iR] -= scaling * upd[1][1]
}

// SweepX applies every x interface of the rows [row0,row1), reading h and hu
// and accumulating into hNew and huNew
func SweepX(fn solvers.NetUpdatesFunc, h, hu, b, hNew, huNew []Real, stride, row0, row1 int, scaling Real) {
	for row := row0; row < row1; row++ {
		base := row * stride
		for i := 0; i < stride-1; i++ {
			applyInterface(fn, h, hu, b, hNew, huNew, base+i, base+i+1, scaling)
		}
	}
}

// SweepY applies every y interface of the columns [col0,col1) for a patch of
// nRows rows including the ghost rows
func SweepY(fn solvers.NetUpdatesFunc, h, hv, b, hNew, hvNew []Real, stride, nRows, col0, col1 int, scaling Real) {
	for j := 0; j < nRows-1; j++ {
		base := j * stride
		for col := col0; col < col1; col++ {
			iT := base + col
			applyInterface(fn, h, hv, b, hNew, hvNew, iT, iT+stride, scaling)
		}
	}
}

/*
FaceRecorder observes the state a 2D patch sweeps from. RecordX sees the
ghost filled state ahead of the x-sweep, RecordY sees the height after the
x-sweep together with the unchanged y momentum.
*/
type FaceRecorder interface {
	RecordX(fn solvers.NetUpdatesFunc, h, hu, b []Real, scaling Real)
	RecordY(fn solvers.NetUpdatesFunc, h, hv, b []Real, scaling Real)
}
