package setups

import (
	"math"
)

// CircularDamBreak2d raises the water inside a circle, the bed is flat at zero
type CircularDamBreak2d struct {
	HeightCenter, HeightOutside Real
	CenterX, CenterY            Real
	Radius                      Real
}

func NewCircularDamBreak2d() *CircularDamBreak2d {
	return &CircularDamBreak2d{
		HeightCenter:  10,
		HeightOutside: 5,
		CenterX:       50,
		CenterY:       50,
		Radius:        10,
	}
}

func (cd *CircularDamBreak2d) GetHeight(x, y Real) Real {
	dx, dy := float64(x-cd.CenterX), float64(y-cd.CenterY)
	if math.Sqrt(dx*dx+dy*dy) < float64(cd.Radius) {
		return cd.HeightCenter
	}
	return cd.HeightOutside
}

func (cd *CircularDamBreak2d) GetMomentumX(_, _ Real) Real { return 0 }

func (cd *CircularDamBreak2d) GetMomentumY(_, _ Real) Real { return 0 }

func (cd *CircularDamBreak2d) GetBathymetry(_, _ Real) Real { return 0 }

/*
ArtificialTsunami2d is a lake of constant depth whose floor is displaced in a
1km square around the center: 5 sin((x/500+1)π)(1-(y/500)²) in coordinates
relative to the center.
*/
type ArtificialTsunami2d struct {
	Depth            Real
	CenterX, CenterY Real
}

func NewArtificialTsunami2d() *ArtificialTsunami2d {
	return &ArtificialTsunami2d{Depth: 100, CenterX: 5000, CenterY: 5000}
}

func (at *ArtificialTsunami2d) GetHeight(_, _ Real) Real { return at.Depth }

func (at *ArtificialTsunami2d) GetMomentumX(_, _ Real) Real { return 0 }

func (at *ArtificialTsunami2d) GetMomentumY(_, _ Real) Real { return 0 }

func (at *ArtificialTsunami2d) GetBathymetry(x, y Real) Real {
	var (
		dx = float64(x - at.CenterX)
		dy = float64(y - at.CenterY)
	)
	if -500 <= dx && dx <= 500 && -500 <= dy && dy <= 500 {
		f := math.Sin((dx/500 + 1) * math.Pi)
		g := 1 - (dy/500)*(dy/500)
		return -at.Depth + Real(5*f*g)
	}
	return -at.Depth
}
