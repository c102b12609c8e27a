package setups

import (
	"fmt"

	"github.com/notargets/gotsunami/readfiles"
)

/*
TsunamiEvent2d maps the domain [0, ScaleX] x [0, ScaleY] onto the extent of a
gridded bathymetry and adds a gridded vertical displacement where the two
overlap. Values are taken from the nearest grid point. Depths and heights
smaller than Delta are clamped to Delta.
*/
type TsunamiEvent2d struct {
	Bathymetry, Displacement *readfiles.Grid
	ScaleX, ScaleY, Delta    Real
}

func NewTsunamiEvent2d(bathymetry, displacement *readfiles.Grid, scaleX, scaleY, delta Real) (te *TsunamiEvent2d, err error) {
	if bathymetry == nil || displacement == nil {
		return nil, fmt.Errorf("tsunami event needs a bathymetry and a displacement grid")
	}
	if scaleX <= 0 || scaleY <= 0 {
		return nil, fmt.Errorf("domain scale must be positive, have %v x %v", scaleX, scaleY)
	}
	te = &TsunamiEvent2d{
		Bathymetry:   bathymetry,
		Displacement: displacement,
		ScaleX:       scaleX,
		ScaleY:       scaleY,
		Delta:        delta,
	}
	return
}

// toGrid maps domain coordinates onto the bathymetry axes
func (te *TsunamiEvent2d) toGrid(x, y Real) (gx, gy float64) {
	var (
		ax, ay = te.Bathymetry.X, te.Bathymetry.Y
	)
	gx = float64(x/te.ScaleX)*(ax[len(ax)-1]-ax[0]) + ax[0]
	gy = float64(y/te.ScaleY)*(ay[len(ay)-1]-ay[0]) + ay[0]
	return
}

func (te *TsunamiEvent2d) bed(x, y Real) Real {
	return Real(te.Bathymetry.Nearest(te.toGrid(x, y)))
}

func (te *TsunamiEvent2d) GetHeight(x, y Real) Real {
	if b := te.bed(x, y); b < 0 {
		return max(-b, te.Delta)
	}
	return 0
}

func (te *TsunamiEvent2d) GetMomentumX(_, _ Real) Real { return 0 }

func (te *TsunamiEvent2d) GetMomentumY(_, _ Real) Real { return 0 }

func (te *TsunamiEvent2d) GetBathymetry(x, y Real) Real {
	var (
		gx, gy = te.toGrid(x, y)
		b      = Real(te.Bathymetry.Nearest(gx, gy))
		d      Real
	)
	if te.Displacement.Contains(gx, gy) {
		d = Real(te.Displacement.Nearest(gx, gy))
	}
	if b < 0 {
		return min(b, -te.Delta) + d
	}
	return max(b, te.Delta) + d
}
