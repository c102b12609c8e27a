package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotsunami/patches"
	"github.com/notargets/gotsunami/readfiles"
)

func lake1D(n int) (p *patches.WavePropagation1D) {
	p = patches.NewWavePropagation1D(n)
	for i := 0; i < n; i++ {
		p.SetHeight(i, 0, Real(i+1))
		p.SetMomentumX(i, 0, 0.5)
		p.SetBathymetry(i, 0, -1)
	}
	return
}

func lake2D(nx, ny int) (p *patches.WavePropagation2D) {
	p = patches.NewWavePropagation2D(nx, ny)
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			p.SetHeight(ix, iy, Real(10*iy+ix+1))
			p.SetMomentumX(ix, iy, Real(ix))
			p.SetMomentumY(ix, iy, Real(-iy))
			p.SetBathymetry(ix, iy, -5)
		}
	}
	return
}

func TestWriteCsv(t *testing.T) {
	{ // 1D patches have no y momentum column
		var buf bytes.Buffer
		require.NoError(t, WriteCsv(&buf, 2, 1, lake1D(3)))
		assert.Equal(t, "x,y,height,momentum_x,bathymetry,total_height\n"+
			"1,0.5,1,0.5,-1,0\n"+
			"3,0.5,2,0.5,-1,1\n"+
			"5,0.5,3,0.5,-1,2\n", buf.String())
	}
	{ // 2D patches are written row by row
		var buf bytes.Buffer
		require.NoError(t, WriteCsv(&buf, 1, 2, lake2D(3, 2)))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 7)
		assert.Equal(t, "x,y,height,momentum_x,momentum_y,bathymetry,total_height", lines[0])
		assert.Equal(t, "2.5,1,3,2,0,-5,-2", lines[3])
		assert.Equal(t, "0.5,3,11,0,-1,-5,6", lines[4])
	}
}

func TestNetCdf(t *testing.T) {
	dir := t.TempDir()
	{ // Time records of a solution
		var (
			name = filepath.Join(dir, "solution.nc")
			p    = lake2D(3, 2)
		)
		nc, err := NewNetCdf(name, 3, 2, 10, 20)
		require.NoError(t, err)
		require.NoError(t, nc.Write(0, 0, p))
		p.SetHeight(0, 0, 7)
		require.NoError(t, nc.Write(1.5, 3, p))
		assert.Equal(t, 2, nc.Records())
		assert.Error(t, nc.Write(2, 4, lake2D(2, 2)))
		require.NoError(t, nc.Close())

		file, err := os.Open(name)
		require.NoError(t, err)
		defer file.Close()
		f, err := cdf.Open(file)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 2, 3}, f.Header.Lengths("totalHeight"))

		times := make([]float64, 2)
		_, err = f.Reader("time", []int{0}, []int{2}).Read(times)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1.5}, times)

		x := make([]float32, 3)
		_, err = f.Reader("x", []int{0}, []int{3}).Read(x)
		require.NoError(t, err)
		assert.Equal(t, []float32{5, 15, 25}, x)

		eta := make([]float32, 6)
		_, err = f.Reader("totalHeight", []int{1, 0, 0}, []int{2, 2, 3}).Read(eta)
		require.NoError(t, err)
		assert.Equal(t, []float32{2, -3, -2, 6, 7, 8}, eta)
		hv := make([]float32, 6)
		_, err = f.Reader("momentumY", []int{0, 0, 0}, []int{1, 2, 3}).Read(hv)
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 0, 0, -1, -1, -1}, hv)
	}
	{ // A 1D patch writes zero y momentum
		name := filepath.Join(dir, "solution1d.nc")
		nc, err := NewNetCdf(name, 3, 1, 2, 1)
		require.NoError(t, err)
		require.NoError(t, nc.Write(0, 0, lake1D(3)))
		require.NoError(t, nc.Close())
	}
}

func TestCheckpoint(t *testing.T) {
	var (
		dir  = t.TempDir()
		name = filepath.Join(dir, "checkpoint.nc")
		p    = lake2D(3, 2)
	)
	assert.Error(t, WriteCheckpoint(name, "", 10, 20, 1, 1, p))
	require.NoError(t, WriteCheckpoint(name, "Title: lake\n", 10, 20, 2.25, 9, p))
	p.SetHeight(2, 1, 100)
	require.NoError(t, WriteCheckpoint(name, "Title: lake\n", 10, 20, 4.5, 18, p))
	_, err := os.Stat(name + ".tmp")
	assert.True(t, os.IsNotExist(err))

	cp, err := readfiles.ReadCheckpoint(name)
	require.NoError(t, err)
	assert.Equal(t, "Title: lake\n", cp.Scenario)
	assert.Equal(t, 4.5, cp.Time)
	assert.Equal(t, 18, cp.TimeStep)
	assert.Equal(t, 3, cp.Nx)
	assert.Equal(t, 2, cp.Ny)
	assert.Equal(t, 10., cp.Dx)
	assert.Equal(t, 20., cp.Dy)
	assert.Equal(t, 95., cp.TotalHeight.Get(1, 2))
	assert.Equal(t, -5., cp.Bathymetry.Get(1, 2))
	assert.Equal(t, 2., cp.MomentumX.Get(1, 2))
	assert.Equal(t, -1., cp.MomentumY.Get(1, 2))

	{ // A plain solution file is not a checkpoint
		sol := filepath.Join(dir, "solution.nc")
		nc, err := NewNetCdf(sol, 3, 2, 10, 20)
		require.NoError(t, err)
		require.NoError(t, nc.Write(0, 0, p))
		require.NoError(t, nc.Close())
		_, err = readfiles.ReadCheckpoint(sol)
		assert.ErrorContains(t, err, "not a checkpoint")
	}
}

func TestStations(t *testing.T) {
	var (
		dir = t.TempDir()
		p   = lake1D(10)
	)
	{ // Stations outside of the domain are rejected
		_, err := NewStations(dir, 1, 1, 1, 10, 1, p.GetStride(), []Station{{Name: "far", X: 10.5}})
		assert.Error(t, err)
		_, err = NewStations(dir, 0, 1, 1, 10, 1, p.GetStride(), nil)
		assert.Error(t, err)
	}
	s, err := NewStations(dir, 1, 1, 1, 10, 1, p.GetStride(), []Station{{Name: "buoy", X: 3.5}})
	require.NoError(t, err)
	{ // Samples follow the station frequency
		assert.True(t, s.Due(0))
		require.NoError(t, s.Write(0, p))
		assert.False(t, s.Due(0.5))
		require.NoError(t, s.Write(0.5, p))
		p.SetHeight(3, 0, 42)
		require.NoError(t, s.Write(1.25, p))
		assert.False(t, s.Due(1.9))
		assert.True(t, s.Due(2))
		require.NoError(t, s.Close())
	}
	data, err := os.ReadFile(filepath.Join(dir, "buoy.csv"))
	require.NoError(t, err)
	assert.Equal(t, "time,height,momentum_x,momentum_y,bathymetry,total_height\n"+
		"0,4,0.5,0,-1,3\n"+
		"1.25,42,0.5,0,-1,41\n", string(data))
}
