package solvers

import (
	"fmt"

	"github.com/notargets/gotsunami/types"
)

// NetUpdatesFunc is the common signature of the interface kernels, solvers
// without a bed source term ignore bL and bR
type NetUpdatesFunc func(hL, hR, huL, huR, bL, bR Real) [2][2]Real

func fwaveFlat(hL, hR, huL, huR, _, _ Real) [2][2]Real {
	return FWaveNetUpdates(hL, hR, huL, huR)
}

func roeFlat(hL, hR, huL, huR, _, _ Real) [2][2]Real {
	return RoeNetUpdates(hL, hR, huL, huR)
}

func Select(solver types.SolverType, bathymetry bool) (fn NetUpdatesFunc, err error) {
	switch solver {
	case types.Solver_FWave:
		if bathymetry {
			fn = FWaveNetUpdatesBathymetry
		} else {
			fn = fwaveFlat
		}
	case types.Solver_Roe:
		if bathymetry {
			err = fmt.Errorf("the %s solver has no bathymetry source term", solver)
			return
		}
		fn = roeFlat
	default:
		err = fmt.Errorf("unknown solver %s", solver)
	}
	return
}

// MaxWaveSpeed is the largest |u|+sqrt(g*h) over the wet cells of h and hu
func MaxWaveSpeed(h, hu, hv []Real) (speed Real) {
	for i := range h {
		if h[i] <= 0 {
			continue
		}
		c := sqrt(G * h[i])
		u := hu[i] / h[i]
		if u < 0 {
			u = -u
		}
		if u+c > speed {
			speed = u + c
		}
		if hv != nil {
			v := hv[i] / h[i]
			if v < 0 {
				v = -v
			}
			if v+c > speed {
				speed = v + c
			}
		}
	}
	return
}
