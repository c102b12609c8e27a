package output

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"

	"github.com/notargets/gotsunami/patches"
)

/*
NetCdf writes one time record of the interior cells per call to Write. The
file has dimensions (time, y, x), cell center axes x and y, and the grid
spacing as the global attributes dx and dy. A checkpoint file additionally
carries the time step index per record and the scenario of the run as the
global attribute "checkpoint".
*/
type NetCdf struct {
	filename   string
	file       *os.File
	f          *cdf.File
	nx, ny     int
	record     int
	checkpoint bool
}

func NewNetCdf(filename string, nx, ny int, dx, dy Real) (nc *NetCdf, err error) {
	return createNetCdf(filename, nx, ny, dx, dy, "")
}

func createNetCdf(filename string, nx, ny int, dx, dy Real, scenario string) (nc *NetCdf, err error) {
	h := cdf.NewHeader([]string{"time", "y", "x"}, []int{0, ny, nx})
	h.AddAttribute("", "comment", "shallow water solution")
	h.AddAttribute("", "dx", []float64{float64(dx)})
	h.AddAttribute("", "dy", []float64{float64(dy)})
	h.AddVariable("x", []string{"x"}, []float32{0})
	h.AddAttribute("x", "units", "m")
	h.AddVariable("y", []string{"y"}, []float32{0})
	h.AddAttribute("y", "units", "m")
	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddAttribute("time", "units", "s")
	for _, name := range FieldNames {
		h.AddVariable(name, []string{"time", "y", "x"}, []float32{0})
	}
	if scenario != "" {
		h.AddAttribute("", "checkpoint", scenario)
		h.AddVariable("timeStep", []string{"time"}, []int32{0})
	}
	h.Define()

	nc = &NetCdf{
		filename:   filename,
		nx:         nx,
		ny:         ny,
		checkpoint: scenario != "",
	}
	if nc.file, err = os.Create(filename); err != nil {
		return nil, fmt.Errorf("unable to create netCDF file %s: %w", filename, err)
	}
	if nc.f, err = cdf.Create(nc.file, h); err != nil {
		nc.file.Close()
		return nil, fmt.Errorf("netCDF file %s: %w", filename, err)
	}
	axis := func(n int, d Real) (a []float32) {
		a = make([]float32, n)
		for i := range a {
			a[i] = (float32(i) + 0.5) * d
		}
		return
	}
	if err = nc.put("x", []int{0}, []int{nx}, axis(nx, dx)); err == nil {
		err = nc.put("y", []int{0}, []int{ny}, axis(ny, dy))
	}
	if err != nil {
		nc.file.Close()
		return nil, err
	}
	return
}

func (nc *NetCdf) put(name string, begin, end []int, data interface{}) (err error) {
	if _, err = nc.f.Writer(name, begin, end).Write(data); err != nil {
		err = fmt.Errorf("netCDF file %s: writing %s: %w", nc.filename, name, err)
	}
	return
}

// Records is the number of time records written so far
func (nc *NetCdf) Records() int { return nc.record }

// Write appends the interior cells of the patch as a new time record
func (nc *NetCdf) Write(time float64, step int, p patches.WavePropagation) (err error) {
	if p.GetCellsX() != nc.nx || p.GetCellsY() != nc.ny {
		return fmt.Errorf("netCDF file %s: patch has %dx%d cells, file has %dx%d",
			nc.filename, p.GetCellsX(), p.GetCellsY(), nc.nx, nc.ny)
	}
	var (
		rec    = nc.record
		fields = packFields(p)
	)
	for n, name := range FieldNames {
		if err = nc.put(name, []int{rec, 0, 0}, []int{rec + 1, nc.ny, nc.nx}, fields[n]); err != nil {
			return
		}
	}
	if err = nc.put("time", []int{rec}, []int{rec + 1}, []float64{time}); err != nil {
		return
	}
	if nc.checkpoint {
		if err = nc.put("timeStep", []int{rec}, []int{rec + 1}, []int32{int32(step)}); err != nil {
			return
		}
	}
	nc.record++
	if err = cdf.UpdateNumRecs(nc.file); err != nil {
		err = fmt.Errorf("netCDF file %s: %w", nc.filename, err)
	}
	return
}

func (nc *NetCdf) Close() (err error) {
	if err = cdf.UpdateNumRecs(nc.file); err != nil {
		nc.file.Close()
		return fmt.Errorf("netCDF file %s: %w", nc.filename, err)
	}
	return nc.file.Close()
}

/*
WriteCheckpoint writes a single record checkpoint of the patch. The file is
written next to filename and moved over it once complete, so an interrupted
write leaves the previous checkpoint in place.
*/
func WriteCheckpoint(filename, scenario string, dx, dy Real, time float64, step int,
	p patches.WavePropagation) (err error) {
	if scenario == "" {
		return fmt.Errorf("checkpoint %s: the scenario of the run is required", filename)
	}
	var (
		tmp = filename + ".tmp"
		nc  *NetCdf
	)
	if nc, err = createNetCdf(tmp, p.GetCellsX(), p.GetCellsY(), dx, dy, scenario); err != nil {
		return
	}
	if err = nc.Write(time, step, p); err != nil {
		nc.Close()
		return
	}
	if err = nc.Close(); err != nil {
		return
	}
	if err = os.Rename(tmp, filename); err != nil {
		err = fmt.Errorf("checkpoint %s: %w", filename, err)
	}
	return
}
