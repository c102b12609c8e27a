package setups

/*
CriticalFlow1d is a steady stream of constant momentum over a parabolic hump
centered at x=10 on the open interval (8, 12). The water height fills the bed
up to zero. Depending on the constants the flow is subcritical everywhere or
turns supercritical behind the hump, see NewSubcriticalFlow1d and
NewSupercriticalFlow1d.
*/
type CriticalFlow1d struct {
	Momentum               Real
	BedLevel, HumpLevel    Real
	RangeStart, RangeEnd   Real
	HumpCenter, HumpFactor Real
}

func NewSubcriticalFlow1d() *CriticalFlow1d {
	return &CriticalFlow1d{
		Momentum:   4.42,
		BedLevel:   -2,
		HumpLevel:  -1.8,
		RangeStart: 8,
		RangeEnd:   12,
		HumpCenter: 10,
		HumpFactor: 0.05,
	}
}

func NewSupercriticalFlow1d() *CriticalFlow1d {
	return &CriticalFlow1d{
		Momentum:   0.18,
		BedLevel:   -0.33,
		HumpLevel:  -0.12,
		RangeStart: 8,
		RangeEnd:   12,
		HumpCenter: 10,
		HumpFactor: 0.05,
	}
}

func (cf *CriticalFlow1d) GetHeight(x, y Real) Real { return -cf.GetBathymetry(x, y) }

func (cf *CriticalFlow1d) GetMomentumX(_, _ Real) Real { return cf.Momentum }

func (cf *CriticalFlow1d) GetMomentumY(_, _ Real) Real { return 0 }

func (cf *CriticalFlow1d) GetBathymetry(x, _ Real) Real {
	if cf.RangeStart < x && x < cf.RangeEnd {
		dx := x - cf.HumpCenter
		return cf.HumpLevel - cf.HumpFactor*dx*dx
	}
	return cf.BedLevel
}
