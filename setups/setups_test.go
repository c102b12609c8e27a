package setups

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotsunami/readfiles"
)

func TestOneDimensional(t *testing.T) {
	{ // Dam break and middle states split at the location, the location itself is left
		db := NewDamBreak1d(10, 5, 3)
		assert.Equal(t, Real(10), db.GetHeight(3, 0))
		assert.Equal(t, Real(5), db.GetHeight(3.01, 7))
		assert.Equal(t, Real(0), db.GetMomentumX(0, 0))
		ms := NewMiddleStates1d(8, 7, -1, 2, 3)
		assert.Equal(t, Real(-1), ms.GetMomentumX(2, 0))
		assert.Equal(t, Real(2), ms.GetMomentumX(4, 0))
		assert.Equal(t, Real(0), ms.GetMomentumY(4, 0))
		assert.Equal(t, Real(0), ms.GetBathymetry(4, 0))
	}
	{ // Rare-rare streams apart, shock-shock streams together
		rr := NewRareRare1d(10, 3, 5)
		ss := NewShockShock1d(10, 3, 5)
		for _, x := range []Real{0, 5} {
			assert.Equal(t, Real(-3), rr.GetMomentumX(x, 0))
			assert.Equal(t, Real(3), ss.GetMomentumX(x, 0))
		}
		assert.Equal(t, Real(3), rr.GetMomentumX(6, 0))
		assert.Equal(t, Real(-3), ss.GetMomentumX(6, 0))
		assert.Equal(t, Real(10), rr.GetHeight(6, 0))
		assert.Equal(t, Real(10), ss.GetHeight(0, 0))
	}
	{ // Critical flows fill the bed up to zero, the hump range is open
		sub := NewSubcriticalFlow1d()
		assert.InDelta(t, -1.8, sub.GetBathymetry(10, 0), 1e-6)
		assert.InDelta(t, 1.8, sub.GetHeight(10, 0), 1e-6)
		assert.InDelta(t, -1.85, sub.GetBathymetry(11, 0), 1e-6)
		assert.Equal(t, Real(-2), sub.GetBathymetry(8, 0))
		assert.Equal(t, Real(-2), sub.GetBathymetry(12, 0))
		assert.Equal(t, Real(4.42), sub.GetMomentumX(3, 0))
		super := NewSupercriticalFlow1d()
		assert.InDelta(t, -0.12, super.GetBathymetry(10, 0), 1e-6)
		assert.InDelta(t, 0.33, super.GetHeight(20, 0), 1e-6)
		assert.Equal(t, Real(0.18), super.GetMomentumX(3, 0))
	}
}

func TestTsunamiEvent1d(t *testing.T) {
	{ // Profile interpolation and the shore clamp
		te, err := NewTsunamiEvent1d([]float64{-100, -100, 50}, 20, 200)
		require.NoError(t, err)
		assert.InDelta(t, 100, te.GetHeight(50, 0), 1e-4)
		assert.InDelta(t, -100, te.GetBathymetry(50, 0), 1e-4)
		assert.InDelta(t, 25, te.GetHeight(150, 0), 1e-4)
		assert.InDelta(t, -25, te.GetBathymetry(150, 0), 1e-4)
		assert.Equal(t, Real(0), te.GetHeight(195, 0))
		assert.InDelta(t, 42.5, te.GetBathymetry(195, 0), 1e-4)
		assert.Equal(t, Real(0), te.GetMomentumX(195, 0))
	}
	{ // Shallow water and low land are pushed to delta
		te, err := NewTsunamiEvent1d([]float64{-5, -5}, 20, 10)
		require.NoError(t, err)
		assert.InDelta(t, 20, te.GetHeight(5, 0), 1e-6)
		assert.InDelta(t, -20, te.GetBathymetry(5, 0), 1e-6)
		te, err = NewTsunamiEvent1d([]float64{5, 5}, 20, 10)
		require.NoError(t, err)
		assert.Equal(t, Real(0), te.GetHeight(5, 0))
		assert.InDelta(t, 20, te.GetBathymetry(5, 0), 1e-6)
	}
	{ // The displacement is a negative half sine wave trough at 193.75km
		te, err := NewTsunamiEvent1d([]float64{-1000, -1000}, 20, 500000)
		require.NoError(t, err)
		assert.InDelta(t, -2000, te.GetBathymetry(193750, 0), 1e-1)
		assert.InDelta(t, 1000, te.GetHeight(193750, 0), 1e-1)
		assert.InDelta(t, -1000, te.GetBathymetry(175000, 0), 1e-1)
		assert.InDelta(t, -1000, te.GetBathymetry(300000, 0), 1e-1)
	}
	{ // Degenerate input
		_, err := NewTsunamiEvent1d([]float64{-1}, 20, 10)
		assert.Error(t, err)
		_, err = NewTsunamiEvent1d([]float64{-1, -1}, 20, 0)
		assert.Error(t, err)
	}
}

func TestTwoDimensional(t *testing.T) {
	{ // Circular dam break, the circle boundary is outside
		cd := NewCircularDamBreak2d()
		assert.Equal(t, Real(10), cd.GetHeight(50, 50))
		assert.Equal(t, Real(10), cd.GetHeight(59, 50))
		assert.Equal(t, Real(5), cd.GetHeight(60, 50))
		assert.Equal(t, Real(5), cd.GetHeight(0, 0))
		assert.Equal(t, Real(0), cd.GetBathymetry(50, 50))
	}
	{ // Artificial tsunami displaces the floor in the center square only
		at := NewArtificialTsunami2d()
		assert.Equal(t, Real(100), at.GetHeight(1, 1))
		assert.InDelta(t, -100, at.GetBathymetry(5000, 5000), 1e-4)
		assert.InDelta(t, -95, at.GetBathymetry(4750, 5000), 1e-4)
		assert.InDelta(t, -103.75, at.GetBathymetry(5250, 5250), 1e-4)
		assert.InDelta(t, -100, at.GetBathymetry(5000, 5500), 1e-4)
		assert.Equal(t, Real(-100), at.GetBathymetry(0, 0))
		assert.Equal(t, Real(-100), at.GetBathymetry(5501, 5000))
	}
}

func grid(x, y []float64, rows ...[]float64) (g *readfiles.Grid) {
	g = &readfiles.Grid{X: x, Y: y, Z: sparse.ZerosDense(len(y), len(x))}
	for j, row := range rows {
		for i, v := range row {
			g.Z.Set(v, j, i)
		}
	}
	return
}

func TestTsunamiEvent2d(t *testing.T) {
	var (
		bathy = grid([]float64{0, 10, 20}, []float64{0, 10},
			[]float64{-100, -5, 50},
			[]float64{-200, -300, 10})
		displ = grid([]float64{0, 10}, []float64{0, 10},
			[]float64{1, 1},
			[]float64{1, 1})
	)
	te, err := NewTsunamiEvent2d(bathy, displ, 20, 10, 20)
	require.NoError(t, err)
	{ // Sea floor with displacement
		assert.InDelta(t, 100, te.GetHeight(0, 0), 1e-6)
		assert.InDelta(t, -99, te.GetBathymetry(0, 0), 1e-6)
		assert.InDelta(t, 300, te.GetHeight(10, 10), 1e-6)
		assert.InDelta(t, -299, te.GetBathymetry(10, 10), 1e-6)
	}
	{ // Shallow water is clamped to delta
		assert.InDelta(t, 20, te.GetHeight(10, 0), 1e-6)
		assert.InDelta(t, -19, te.GetBathymetry(10, 0), 1e-6)
	}
	{ // Land outside of the displacement
		assert.Equal(t, Real(0), te.GetHeight(20, 0))
		assert.InDelta(t, 50, te.GetBathymetry(20, 0), 1e-6)
		assert.InDelta(t, 20, te.GetBathymetry(20, 10), 1e-6)
	}
	{ // Nearest neighbor lookup, ties go to the lower grid point
		assert.InDelta(t, 20, te.GetHeight(14, 0), 1e-6)
		assert.InDelta(t, 20, te.GetHeight(15, 0), 1e-6)
		assert.Equal(t, Real(0), te.GetHeight(16, 0))
	}
	{ // The domain scale stretches onto the grid extent
		te2, err := NewTsunamiEvent2d(bathy, displ, 2000, 1000, 20)
		require.NoError(t, err)
		assert.InDelta(t, 300, te2.GetHeight(1000, 1000), 1e-6)
		assert.Equal(t, Real(0), te2.GetMomentumX(1000, 1000))
	}
	_, err = NewTsunamiEvent2d(nil, displ, 1, 1, 20)
	assert.Error(t, err)
}

func TestCheckpoint(t *testing.T) {
	data := &readfiles.Checkpoint{
		Nx: 4, Ny: 2,
		TotalHeight: sparse.ZerosDense(2, 4),
		Bathymetry:  sparse.ZerosDense(2, 4),
		MomentumX:   sparse.ZerosDense(2, 4),
		MomentumY:   sparse.ZerosDense(2, 4),
		Time:        12.5,
		TimeStep:    40,
		Scenario:    "Title: restart",
	}
	for j := 0; j < 2; j++ {
		for i := 0; i < 4; i++ {
			data.Bathymetry.Set(-10, j, i)
			data.TotalHeight.Set(float64(j*4+i), j, i)
			data.MomentumX.Set(float64(i), j, i)
			data.MomentumY.Set(float64(j), j, i)
		}
	}
	cp, err := newCheckpoint(data, 400, 200)
	require.NoError(t, err)
	assert.Equal(t, 12.5, cp.Time())
	assert.Equal(t, 40, cp.TimeStep())
	assert.Equal(t, "Title: restart", cp.Scenario())
	{ // Cell centers map onto the file cells
		assert.Equal(t, Real(16), cp.GetHeight(250, 150))
		assert.Equal(t, Real(2), cp.GetMomentumX(250, 150))
		assert.Equal(t, Real(1), cp.GetMomentumY(250, 150))
		assert.Equal(t, Real(-10), cp.GetBathymetry(250, 150))
		assert.Equal(t, Real(10), cp.GetHeight(50, 50))
	}
	{ // Points on the far edges are clamped
		assert.Equal(t, Real(17), cp.GetHeight(400, 200))
	}
	_, err = newCheckpoint(data, 0, 1)
	assert.Error(t, err)
}

func TestNewSetup(t *testing.T) {
	{ // Names are case insensitive, unknown names are listed
		st, err := NewSetupType(" CircularDamBreak2D ")
		require.NoError(t, err)
		assert.Equal(t, Setup_CircularDamBreak2d, st)
		assert.Equal(t, "CircularDamBreak2d", st.String())
		_, err = NewSetup(Params{Name: "bogus"})
		assert.ErrorContains(t, err, "tsunamievent2d")
	}
	{ // Defaults and overrides
		s, err := NewSetup(Params{Name: "DamBreak1d", Width: 100})
		require.NoError(t, err)
		assert.Equal(t, Real(10), s.GetHeight(50, 0))
		assert.Equal(t, Real(5), s.GetHeight(51, 0))
		s, err = NewSetup(Params{Name: "CircularDamBreak2d", Values: map[string]float64{"Radius": 20}})
		require.NoError(t, err)
		assert.Equal(t, Real(10), s.GetHeight(65, 50))
	}
	{ // File based setups
		dir := t.TempDir()
		_, err := NewSetup(Params{Name: "TsunamiEvent1d", Width: 200})
		assert.ErrorContains(t, err, "Bathymetry")
		profile := filepath.Join(dir, "profile.csv")
		require.NoError(t, os.WriteFile(profile, []byte("# profile\nx,depth\n0,-100\n1,-100\n2,50\n"), 0o644))
		s, err := NewSetup(Params{Name: "TsunamiEvent1d", Width: 200, Files: map[string]string{"Bathymetry": profile}})
		require.NoError(t, err)
		assert.InDelta(t, 25, s.GetHeight(150, 0), 1e-4)
		states := filepath.Join(dir, "states.csv")
		require.NoError(t, os.WriteFile(states, []byte("hl,hr,hul,hur,hstar\n8,7,-1,2,7.5\n3,4,5,6,3.5\n"), 0o644))
		s, err = NewSetup(Params{Name: "MiddleStates1d", Width: 10,
			Values: map[string]float64{"Row": 1}, Files: map[string]string{"MiddleStates": states}})
		require.NoError(t, err)
		assert.Equal(t, Real(3), s.GetHeight(5, 0))
		assert.Equal(t, Real(6), s.GetMomentumX(6, 0))
		_, err = NewSetup(Params{Name: "MiddleStates1d", Width: 10,
			Values: map[string]float64{"Row": 2}, Files: map[string]string{"MiddleStates": states}})
		assert.Error(t, err)
		_, err = NewSetup(Params{Name: "Checkpoint", Files: map[string]string{"Checkpoint": filepath.Join(dir, "none.nc")}})
		assert.Error(t, err)
	}
}
