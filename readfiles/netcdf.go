package readfiles

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

/*
Grid is a field sampled on a rectilinear grid: ascending axes X and Y and the
values Z with shape [len(Y), len(X)].
*/
type Grid struct {
	X, Y []float64
	Z    *sparse.DenseArray
}

// ReadNetCdfGrid reads the axes xName, yName and the field zName(yName, xName) of a netCDF file
func ReadNetCdfGrid(filename, xName, yName, zName string) (g *Grid, err error) {
	var (
		file *os.File
		f    *cdf.File
	)
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open netCDF file %s: %w", filename, err)
	}
	defer file.Close()
	if f, err = cdf.Open(file); err != nil {
		return nil, fmt.Errorf("netCDF file %s: %w", filename, err)
	}
	g = &Grid{}
	if g.X, err = readAll(f, xName); err != nil {
		return nil, fmt.Errorf("netCDF file %s: %w", filename, err)
	}
	if g.Y, err = readAll(f, yName); err != nil {
		return nil, fmt.Errorf("netCDF file %s: %w", filename, err)
	}
	if dims := f.Header.Lengths(zName); len(dims) != 2 || dims[0] != len(g.Y) || dims[1] != len(g.X) {
		return nil, fmt.Errorf("netCDF file %s: %s has shape %v, want [%d %d]",
			filename, zName, dims, len(g.Y), len(g.X))
	}
	var z []float64
	if z, err = readAll(f, zName); err != nil {
		return nil, fmt.Errorf("netCDF file %s: %w", filename, err)
	}
	g.Z = sparse.ZerosDense(len(g.Y), len(g.X))
	copy(g.Z.Elements, z)
	for _, axis := range [][]float64{g.X, g.Y} {
		if !sort.Float64sAreSorted(axis) {
			return nil, fmt.Errorf("netCDF file %s: axes must be ascending", filename)
		}
	}
	return
}

// Contains is true for points inside the axes bounds
func (g *Grid) Contains(x, y float64) bool {
	return g.X[0] <= x && x <= g.X[len(g.X)-1] && g.Y[0] <= y && y <= g.Y[len(g.Y)-1]
}

// Nearest returns the value at the grid point nearest to (x, y), points outside the grid are clamped to it
func (g *Grid) Nearest(x, y float64) float64 {
	return g.Z.Get(nearestIndex(g.Y, y), nearestIndex(g.X, x))
}

func nearestIndex(axis []float64, v float64) (i int) {
	i = sort.SearchFloat64s(axis, v)
	switch {
	case i == 0:
		return
	case i == len(axis):
		return i - 1
	}
	if math.Abs(axis[i-1]-v) <= math.Abs(axis[i]-v) {
		i--
	}
	return
}

/*
Checkpoint is the last record of a checkpoint file together with the scenario
the run was started from.
*/
type Checkpoint struct {
	Nx, Ny                  int
	Dx, Dy                  float64
	TotalHeight, Bathymetry *sparse.DenseArray
	MomentumX, MomentumY    *sparse.DenseArray
	Time                    float64
	TimeStep                int
	Scenario                string
}

func ReadCheckpoint(filename string) (cp *Checkpoint, err error) {
	var (
		file *os.File
		f    *cdf.File
	)
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open checkpoint %s: %w", filename, err)
	}
	defer file.Close()
	if f, err = cdf.Open(file); err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", filename, err)
	}
	if cp, err = readCheckpoint(f); err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", filename, err)
	}
	return
}

func readCheckpoint(f *cdf.File) (cp *Checkpoint, err error) {
	scenario, ok := f.Header.GetAttribute("", "checkpoint").(string)
	if !ok {
		return nil, fmt.Errorf("no checkpoint attribute, not a checkpoint file")
	}
	dims := f.Header.Lengths("totalHeight")
	if len(dims) != 3 {
		return nil, fmt.Errorf("totalHeight has shape %v, want [time y x]", dims)
	}
	nRec := dims[0]
	if nRec < 1 {
		return nil, fmt.Errorf("no records to restart from")
	}
	cp = &Checkpoint{
		Ny:       dims[1],
		Nx:       dims[2],
		Scenario: scenario,
	}
	if v, ok := f.Header.GetAttribute("", "dx").([]float64); ok && len(v) == 1 {
		cp.Dx = v[0]
	}
	if v, ok := f.Header.GetAttribute("", "dy").([]float64); ok && len(v) == 1 {
		cp.Dy = v[0]
	}
	for _, field := range []struct {
		name string
		dst  **sparse.DenseArray
	}{
		{"totalHeight", &cp.TotalHeight},
		{"bathymetry", &cp.Bathymetry},
		{"momentumX", &cp.MomentumX},
		{"momentumY", &cp.MomentumY},
	} {
		var v []float64
		if v, err = readRange(f, field.name, []int{nRec - 1, 0, 0}, []int{nRec, cp.Ny, cp.Nx}); err != nil {
			return nil, err
		}
		*field.dst = sparse.ZerosDense(cp.Ny, cp.Nx)
		copy((*field.dst).Elements, v)
	}
	var v []float64
	if v, err = readRange(f, "time", []int{nRec - 1}, []int{nRec}); err != nil {
		return nil, err
	}
	cp.Time = v[0]
	if v, err = readRange(f, "timeStep", []int{nRec - 1}, []int{nRec}); err != nil {
		return nil, err
	}
	cp.TimeStep = int(v[0])
	return
}

func readAll(f *cdf.File, name string) (v []float64, err error) {
	dims := f.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, fmt.Errorf("no variable named %s", name)
	}
	return readRange(f, name, make([]int, len(dims)), dims)
}

// readRange reads the hyperslab [begin, end) of a numeric variable as float64
func readRange(f *cdf.File, name string, begin, end []int) (v []float64, err error) {
	if len(f.Header.Lengths(name)) == 0 {
		return nil, fmt.Errorf("no variable named %s", name)
	}
	n := 1
	for i := range end {
		n *= end[i] - begin[i]
	}
	var (
		r   = f.Reader(name, begin, end)
		buf = r.Zero(n)
	)
	if _, err = r.Read(buf); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	v = make([]float64, n)
	switch data := buf.(type) {
	case []float32:
		for i, x := range data {
			v[i] = float64(x)
		}
	case []float64:
		copy(v, data)
	case []int32:
		for i, x := range data {
			v[i] = float64(x)
		}
	case []int16:
		for i, x := range data {
			v[i] = float64(x)
		}
	default:
		return nil, fmt.Errorf("variable %s has unsupported type %T", name, buf)
	}
	return
}
