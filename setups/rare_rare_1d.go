package setups

// RareRare1d sends two equal streams apart from Location
type RareRare1d struct {
	Height, Momentum, Location Real
}

func NewRareRare1d(h, hu, location Real) *RareRare1d {
	return &RareRare1d{Height: h, Momentum: hu, Location: location}
}

func (rr *RareRare1d) GetHeight(_, _ Real) Real { return rr.Height }

func (rr *RareRare1d) GetMomentumX(x, _ Real) Real {
	if x <= rr.Location {
		return -rr.Momentum
	}
	return rr.Momentum
}

func (rr *RareRare1d) GetMomentumY(_, _ Real) Real { return 0 }

func (rr *RareRare1d) GetBathymetry(_, _ Real) Real { return 0 }

// ShockShock1d sends two equal streams against each other at Location
type ShockShock1d struct {
	Height, Momentum, Location Real
}

func NewShockShock1d(h, hu, location Real) *ShockShock1d {
	return &ShockShock1d{Height: h, Momentum: hu, Location: location}
}

func (ss *ShockShock1d) GetHeight(_, _ Real) Real { return ss.Height }

func (ss *ShockShock1d) GetMomentumX(x, _ Real) Real {
	if x <= ss.Location {
		return ss.Momentum
	}
	return -ss.Momentum
}

func (ss *ShockShock1d) GetMomentumY(_, _ Real) Real { return 0 }

func (ss *ShockShock1d) GetBathymetry(_, _ Real) Real { return 0 }
