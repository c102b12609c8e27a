package dam_break

import (
	"fmt"
	"math"
)

const G = 9.80665

/*
DamBreak is the exact solution of the shallow water Riemann problem on a flat
bed with wet states on both sides of X0. Each side is connected to the middle
state (HStar, UStar) by a rarefaction when the middle height is below the side
height and by a shock otherwise.
*/
type DamBreak struct {
	HL, HR, UL, UR float64
	X0             float64
	HStar, UStar   float64
}

func NewDamBreak(hL, hR, huL, huR, x0 float64) (db *DamBreak, err error) {
	if hL <= 0 || hR <= 0 {
		return nil, fmt.Errorf("dam break needs wet states, have hL = %v, hR = %v", hL, hR)
	}
	db = &DamBreak{HL: hL, HR: hR, UL: huL / hL, UR: huR / hR, X0: x0}
	cL, cR := math.Sqrt(G*hL), math.Sqrt(G*hR)
	if 2*(cL+cR) <= db.UR-db.UL {
		return nil, fmt.Errorf("the states separate into a dry middle region")
	}
	db.HStar = fzero(db.middle, db.guess())
	fL, _ := waveFunction(db.HStar, hL)
	fR, _ := waveFunction(db.HStar, hR)
	db.UStar = 0.5*(db.UL+db.UR) + 0.5*(fR-fL)
	return
}

// guess is the two rarefaction middle height, exact when both waves are rarefactions
func (db *DamBreak) guess() float64 {
	c := 0.5*(math.Sqrt(G*db.HL)+math.Sqrt(G*db.HR)) + 0.25*(db.UL-db.UR)
	return math.Max(c*c/G, 1.e-8)
}

func (db *DamBreak) middle(h float64) (y, dy float64) {
	fL, dfL := waveFunction(h, db.HL)
	fR, dfR := waveFunction(h, db.HR)
	return fL + fR + db.UR - db.UL, dfL + dfR
}

// waveFunction is the velocity jump across the wave joining hK to h, with its derivative
func waveFunction(h, hK float64) (f, df float64) {
	if h <= hK {
		c, cK := math.Sqrt(G*h), math.Sqrt(G*hK)
		return 2 * (c - cK), G / c
	}
	var (
		s  = math.Sqrt(0.5 * G * (h + hK) / (h * hK))
		dh = h - hK
	)
	f = dh * s
	df = s - 0.25*G*dh/(s*h*h)
	return
}

func fzero(f func(h float64) (y, dy float64), start float64) float64 {
	var (
		tol = 1.e-12
		h   = start
	)
	for i := 0; i < 100; i++ {
		y, dy := f(h)
		hNew := h - y/dy
		if hNew <= 0 {
			hNew = 0.5 * h
		}
		if math.Abs(hNew-h) <= tol*h {
			return hNew
		}
		h = hNew
	}
	return h
}

// Sample returns the height and momentum at x and time t > 0
func (db *DamBreak) Sample(x, t float64) (h, hu float64) {
	var (
		xi     = (x - db.X0) / t
		cL, cR = math.Sqrt(G * db.HL), math.Sqrt(G * db.HR)
		cStar  = math.Sqrt(G * db.HStar)
		u      float64
	)
	if xi <= db.UStar {
		if db.HStar > db.HL {
			sL := db.UL - cL*math.Sqrt(0.5*db.HStar*(db.HStar+db.HL))/db.HL
			if xi < sL {
				return db.HL, db.HL * db.UL
			}
			return db.HStar, db.HStar * db.UStar
		}
		switch {
		case xi < db.UL-cL:
			return db.HL, db.HL * db.UL
		case xi < db.UStar-cStar:
			u = (db.UL + 2*cL + 2*xi) / 3
			c := (db.UL + 2*cL - xi) / 3
			h = c * c / G
			return h, h * u
		}
		return db.HStar, db.HStar * db.UStar
	}
	if db.HStar > db.HR {
		sR := db.UR + cR*math.Sqrt(0.5*db.HStar*(db.HStar+db.HR))/db.HR
		if xi > sR {
			return db.HR, db.HR * db.UR
		}
		return db.HStar, db.HStar * db.UStar
	}
	switch {
	case xi > db.UR+cR:
		return db.HR, db.HR * db.UR
	case xi > db.UStar+cStar:
		u = (db.UR - 2*cR + 2*xi) / 3
		c := (-db.UR + 2*cR + xi) / 3
		h = c * c / G
		return h, h * u
	}
	return db.HStar, db.HStar * db.UStar
}

// Calc samples the solution at time t on n equidistant points of [xMin, xMax]
func (db *DamBreak) Calc(t, xMin, xMax float64, n int) (X, H, HU []float64) {
	X, H, HU = make([]float64, n), make([]float64, n), make([]float64, n)
	for i := range X {
		X[i] = xMin + (xMax-xMin)*float64(i)/float64(max(n-1, 1))
		if t <= 0 {
			if X[i] <= db.X0 {
				H[i], HU[i] = db.HL, db.HL*db.UL
			} else {
				H[i], HU[i] = db.HR, db.HR*db.UR
			}
			continue
		}
		H[i], HU[i] = db.Sample(X[i], t)
	}
	return
}
