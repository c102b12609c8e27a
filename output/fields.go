package output

import (
	"github.com/notargets/gotsunami/patches"
	"github.com/notargets/gotsunami/types"
)

type Real = types.Real

// Field names, in the order they are written
var FieldNames = []string{"totalHeight", "bathymetry", "momentumX", "momentumY"}

/*
packFields copies the interior cells of the patch into dense row-major arrays
in the order of FieldNames. A patch without y momentum gets zeros.
*/
func packFields(p patches.WavePropagation) (fields [][]float32) {
	var (
		nx, ny = p.GetCellsX(), p.GetCellsY()
		stride = p.GetStride()
		src    = [][]Real{p.GetTotalHeight(), p.GetBathymetry(), p.GetMomentumX(), p.GetMomentumY()}
	)
	fields = make([][]float32, len(src))
	for n, s := range src {
		fields[n] = make([]float32, nx*ny)
		if s == nil {
			continue
		}
		for iy := 0; iy < ny; iy++ {
			copy(fields[n][iy*nx:(iy+1)*nx], s[iy*stride:iy*stride+nx])
		}
	}
	return
}
