package solvers

import (
	"math"

	"github.com/notargets/gotsunami/types"
)

type Real = types.Real

const (
	G     Real = 9.80665
	GSqrt Real = 3.131557121
)

func sqrt(x Real) Real { return Real(math.Sqrt(float64(x))) }

// Roe averaged wave speeds, u is the particle velocity hu/h of each side
func eigenvalues(hL, hR, uL, uR Real) (s1, s2 Real) {
	var (
		hSqrtL, hSqrtR = sqrt(hL), sqrt(hR)
		hRoe           = 0.5 * (hL + hR)
		uRoe           = (hSqrtL*uL + hSqrtR*uR) / (hSqrtL + hSqrtR)
		c              = GSqrt * sqrt(hRoe)
	)
	s1, s2 = uRoe-c, uRoe+c
	return
}

func deltaFlux(hL, hR, huL, huR, uL, uR Real) (df [2]Real) {
	df[0] = huR - huL
	df[1] = (huR*uR + 0.5*G*hR*hR) - (huL*uL + 0.5*G*hL*hL)
	return
}

// Source term of the bed slope added to the momentum flux jump
func bathymetryEffect(hL, hR, bL, bR Real) Real {
	return -G * (bL - bR) * (0.5 * (hL + hR))
}

// Closed form inverse of the eigenvector matrix [[1,1],[s1,s2]] applied to d
func eigencoefficients(s1, s2 Real, d [2]Real) (a1, a2 Real) {
	denom := 1 / (s2 - s1)
	a1 = (s2*d[0] - d[1]) * denom
	a2 = (-s1*d[0] + d[1]) * denom
	return
}

// route sends each wave w_k = z_k*{1, s_k} entirely to the left cell when
// it travels left and to the right cell otherwise
func route(s1, s2, z1, z2 Real) (upd [2][2]Real) {
	if s1 < 0 {
		upd[0][0] += z1
		upd[0][1] += z1 * s1
	} else {
		upd[1][0] += z1
		upd[1][1] += z1 * s1
	}
	if s2 < 0 {
		upd[0][0] += z2
		upd[0][1] += z2 * s2
	} else {
		upd[1][0] += z2
		upd[1][1] += z2 * s2
	}
	return
}

/*
FWaveNetUpdates decomposes the jump in fluxes across an interface into the two
Roe eigenvectors. upd[0] is the {height, momentum} update of the left cell and
upd[1] the update of the right cell. Both heights must be positive.
*/
func FWaveNetUpdates(hL, hR, huL, huR Real) (upd [2][2]Real) {
	var (
		uL, uR = huL / hL, huR / hR
		s1, s2 = eigenvalues(hL, hR, uL, uR)
		df     = deltaFlux(hL, hR, huL, huR, uL, uR)
		a1, a2 = eigencoefficients(s1, s2, df)
	)
	upd = route(s1, s2, a1, a2)
	return
}

func FWaveNetUpdatesBathymetry(hL, hR, huL, huR, bL, bR Real) (upd [2][2]Real) {
	var (
		uL, uR = huL / hL, huR / hR
		s1, s2 = eigenvalues(hL, hR, uL, uR)
		df     = deltaFlux(hL, hR, huL, huR, uL, uR)
	)
	df[1] += bathymetryEffect(hL, hR, bL, bR)
	a1, a2 := eigencoefficients(s1, s2, df)
	upd = route(s1, s2, a1, a2)
	return
}
