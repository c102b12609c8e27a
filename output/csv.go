package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/notargets/gotsunami/patches"
)

/*
WriteCsv writes one row per interior cell, x running fastest. The y momentum
column is left out for patches that have none.
*/
func WriteCsv(w io.Writer, dx, dy Real, p patches.WavePropagation) (err error) {
	var (
		cw       = csv.NewWriter(w)
		stride   = p.GetStride()
		h, hu    = p.GetHeight(), p.GetMomentumX()
		hv, b    = p.GetMomentumY(), p.GetBathymetry()
		eta      = p.GetTotalHeight()
		header   = []string{"x", "y", "height", "momentum_x"}
		format   = func(v Real) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
		row      []string
		nColumns int
	)
	if hv != nil {
		header = append(header, "momentum_y")
	}
	header = append(header, "bathymetry", "total_height")
	nColumns = len(header)
	if err = cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	row = make([]string, 0, nColumns)
	for iy := 0; iy < p.GetCellsY(); iy++ {
		for ix := 0; ix < p.GetCellsX(); ix++ {
			k := iy*stride + ix
			row = append(row[:0],
				format((Real(ix)+0.5)*dx), format((Real(iy)+0.5)*dy), format(h[k]), format(hu[k]))
			if hv != nil {
				row = append(row, format(hv[k]))
			}
			row = append(row, format(b[k]), format(eta[k]))
			if err = cw.Write(row); err != nil {
				return fmt.Errorf("writing csv row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
