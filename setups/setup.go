package setups

import (
	"github.com/notargets/gotsunami/types"
)

type Real = types.Real

// Setup gives the initial state at a point of the domain
type Setup interface {
	GetHeight(x, y Real) Real
	GetMomentumX(x, y Real) Real
	GetMomentumY(x, y Real) Real
	GetBathymetry(x, y Real) Real
}
