package solvers

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotsunami/types"
)

const tol = 1.e-3

func TestFWaveParts(t *testing.T) {
	{ // h: 10 | 9, u: -3 | 3
		s1, s2 := eigenvalues(10, 9, -3, 3)
		assert.InDelta(t, -9.7311093998375095, float64(s1), tol)
		assert.InDelta(t, 9.5731051658991654, float64(s2), tol)
	}
	{
		df := deltaFlux(10, 9, -30, 27, -3, 3)
		assert.InDelta(t, 57., float64(df[0]), tol)
		assert.InDelta(t, -102.163175, float64(df[1]), tol)
	}
	{ // bed rises to the right by 5 under a flat water column of 10
		assert.InDelta(t, -490.3325, float64(bathymetryEffect(10, 10, 10, 5)), tol)
		assert.InDelta(t, 490.3325, float64(bathymetryEffect(10, 10, 5, 10)), tol)
	}
	{
		a1, a2 := eigencoefficients(4, 5, [2]Real{10, 2})
		assert.InDelta(t, 48., float64(a1), tol)
		assert.InDelta(t, -38., float64(a2), tol)
	}
}

func TestFWaveNetUpdates(t *testing.T) {
	{
		upd := FWaveNetUpdates(10, 9, -30, 27)
		assert.InDelta(t, 33.5590017014261447899292, float64(upd[0][0]), tol)
		assert.InDelta(t, -326.56631690591093200508, float64(upd[0][1]), tol)
		assert.InDelta(t, 23.4409982985738561366777, float64(upd[1][0]), tol)
		assert.InDelta(t, 224.403141905910928927533, float64(upd[1][1]), tol)
	}
	{ // dam break
		upd := FWaveNetUpdates(10, 8, 0, 0)
		assert.InDelta(t, 9.394671362, float64(upd[0][0]), tol)
		assert.InDelta(t, -88.25985, float64(upd[0][1]), tol)
		assert.InDelta(t, -9.394671362, float64(upd[1][0]), tol)
		assert.InDelta(t, -88.25985, float64(upd[1][1]), tol)
	}
	{ // supersonic to the left, everything goes to the left cell
		upd := FWaveNetUpdates(10, 1, -100, 0)
		assert.InDelta(t, 100., float64(upd[0][0]), tol)
		assert.InDelta(t, -1485.4292, float64(upd[0][1]), 1.e-2)
		assert.Equal(t, [2]Real{0, 0}, upd[1])
	}
	{ // steady state
		upd := FWaveNetUpdates(10, 10, 0, 0)
		assert.Equal(t, [2][2]Real{}, upd)
	}
}

func TestFWaveProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for n := 0; n < 1000; n++ {
		var (
			hL  = Real(0.1 + 20*rnd.Float64())
			hR  = Real(0.1 + 20*rnd.Float64())
			huL = Real(40 * (rnd.Float64() - 0.5))
			huR = Real(40 * (rnd.Float64() - 0.5))
			b   = Real(-50 * rnd.Float64())
		)
		upd := FWaveNetUpdates(hL, hR, huL, huR)
		// a flat bed must not change anything
		assertUpdatesNear(t, upd, FWaveNetUpdatesBathymetry(hL, hR, huL, huR, 0, 0), 1.e-6)
		assertUpdatesNear(t, upd, FWaveNetUpdatesBathymetry(hL, hR, huL, huR, b, b), 1.e-6)
		// the waves sum to the flux jump
		df := deltaFlux(hL, hR, huL, huR, huL/hL, huR/hR)
		for q := 0; q < 2; q++ {
			sum := float64(upd[0][q] + upd[1][q])
			scale := 1 + abs64(float64(upd[0][q])) + abs64(float64(upd[1][q]))
			assert.InDelta(t, float64(df[q]), sum, 1.e-4*scale)
		}
	}
	{ // lake at rest over a sloping bed
		upd := FWaveNetUpdatesBathymetry(10, 5, 0, 0, -10, -5)
		assertUpdatesNear(t, [2][2]Real{}, upd, tol)
	}
}

func TestRoeNetUpdates(t *testing.T) {
	{ // the dam break decomposes identically to the f-wave solver
		upd := RoeNetUpdates(10, 8, 0, 0)
		assertUpdatesNear(t, FWaveNetUpdates(10, 8, 0, 0), upd, tol)
	}
	{
		upd := RoeNetUpdates(10, 10, 0, 0)
		assert.Equal(t, [2][2]Real{}, upd)
	}
	{ // the height component is exactly the momentum jump
		upd := RoeNetUpdates(10, 9, -30, 27)
		assert.InDelta(t, 57., float64(upd[0][0]+upd[1][0]), tol)
	}
}

func TestSelect(t *testing.T) {
	{
		fn, err := Select(types.Solver_FWave, false)
		require.NoError(t, err)
		assert.Equal(t, FWaveNetUpdates(10, 8, 0, 0), fn(10, 8, 0, 0, -3, 7))
	}
	{
		fn, err := Select(types.Solver_FWave, true)
		require.NoError(t, err)
		assert.Equal(t, FWaveNetUpdatesBathymetry(10, 8, 1, 2, -3, 7), fn(10, 8, 1, 2, -3, 7))
	}
	{
		fn, err := Select(types.Solver_Roe, false)
		require.NoError(t, err)
		assert.Equal(t, RoeNetUpdates(10, 8, 0, 0), fn(10, 8, 0, 0, 0, 0))
	}
	{
		_, err := Select(types.Solver_Roe, true)
		assert.Error(t, err)
	}
	{
		h := []Real{10, 0, 4}
		hu := []Real{0, 5, 8}
		assert.InDelta(t, float64(GSqrt)*3.16227766, float64(MaxWaveSpeed(h, hu, nil)), tol)
		hv := []Real{0, 0, 40}
		assert.InDelta(t, 10+2*float64(GSqrt), float64(MaxWaveSpeed(h, hu, hv)), tol)
	}
}

func assertUpdatesNear(t *testing.T, expected, actual [2][2]Real, relTol float64) {
	t.Helper()
	for i := 0; i < 2; i++ {
		for q := 0; q < 2; q++ {
			e := float64(expected[i][q])
			assert.InDelta(t, e, float64(actual[i][q]), relTol*(1+abs64(e)))
		}
	}
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
