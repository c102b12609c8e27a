package setups

/*
DamBreak1d is a Riemann problem in x. Cells left of Location (inclusive) get
the left state, the others the right state. The bed is flat at zero.
*/
type DamBreak1d struct {
	HeightLeft, HeightRight     Real
	MomentumLeft, MomentumRight Real
	Location                    Real
}

func NewDamBreak1d(hL, hR, location Real) (db *DamBreak1d) {
	db = &DamBreak1d{
		HeightLeft:  hL,
		HeightRight: hR,
		Location:    location,
	}
	return
}

// NewMiddleStates1d builds the dam break of one row of a middle states table
func NewMiddleStates1d(hL, hR, huL, huR, location Real) (db *DamBreak1d) {
	db = NewDamBreak1d(hL, hR, location)
	db.MomentumLeft, db.MomentumRight = huL, huR
	return
}

func (db *DamBreak1d) GetHeight(x, _ Real) Real {
	if x <= db.Location {
		return db.HeightLeft
	}
	return db.HeightRight
}

func (db *DamBreak1d) GetMomentumX(x, _ Real) Real {
	if x <= db.Location {
		return db.MomentumLeft
	}
	return db.MomentumRight
}

func (db *DamBreak1d) GetMomentumY(_, _ Real) Real { return 0 }

func (db *DamBreak1d) GetBathymetry(_, _ Real) Real { return 0 }
