package setups

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

/*
TsunamiEvent1d stretches a bathymetry profile over [0, Scale] and lifts the
sea floor by a sine shaped displacement between 175km and 250km. Depths and
heights smaller than Delta are clamped to Delta to keep the shore away from
the water line.
*/
type TsunamiEvent1d struct {
	Delta, Scale Real
	profile      interp.PiecewiseLinear
}

// NewTsunamiEvent1d samples the profile at equidistant points of [0, scale]
func NewTsunamiEvent1d(profile []float64, delta, scale Real) (te *TsunamiEvent1d, err error) {
	if len(profile) < 2 {
		return nil, fmt.Errorf("bathymetry profile needs at least two samples, have %d", len(profile))
	}
	if scale <= 0 {
		return nil, fmt.Errorf("profile scale must be positive, have %v", scale)
	}
	te = &TsunamiEvent1d{Delta: delta, Scale: scale}
	xs := make([]float64, len(profile))
	for i := range xs {
		xs[i] = float64(i) / float64(len(xs)-1) * float64(scale)
	}
	if err = te.profile.Fit(xs, profile); err != nil {
		return nil, fmt.Errorf("fitting bathymetry profile: %w", err)
	}
	return
}

func (te *TsunamiEvent1d) bed(x Real) Real { return Real(te.profile.Predict(float64(x))) }

func (te *TsunamiEvent1d) GetHeight(x, _ Real) Real {
	if b := te.bed(x); b < 0 {
		return max(-b, te.Delta)
	}
	return 0
}

func (te *TsunamiEvent1d) GetMomentumX(_, _ Real) Real { return 0 }

func (te *TsunamiEvent1d) GetMomentumY(_, _ Real) Real { return 0 }

func (te *TsunamiEvent1d) GetBathymetry(x, _ Real) Real {
	b := te.bed(x)
	if b < 0 {
		return min(b, -te.Delta) + displacement1d(x)
	}
	return max(b, te.Delta) + displacement1d(x)
}

func displacement1d(x Real) Real {
	if 175000 < x && x < 250000 {
		return Real(1000 * math.Sin((float64(x)-175000)/37500*math.Pi+math.Pi))
	}
	return 0
}
