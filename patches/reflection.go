package patches

import (
	"github.com/notargets/gotsunami/types"
)

// InterfaceState is the left/right input to a Riemann solve
type InterfaceState struct {
	HL, HR   Real
	HuL, HuR Real
	BL, BR   Real
}

/*
ResolveReflection reads the cells iL and iR and substitutes a mirrored state
for a dry cell (height exactly zero) so the solver sees a reflecting wall.
A nil b reads as a flat bed. The returned flag names the wet side whose
neighbor is the shore: Reflect_Left means the right cell is dry.
*/
func ResolveReflection(h, hu, b []Real, iL, iR int) (s InterfaceState, r types.Reflection) {
	s = InterfaceState{HL: h[iL], HR: h[iR], HuL: hu[iL], HuR: hu[iR]}
	if b != nil {
		s.BL, s.BR = b[iL], b[iR]
	}
	var (
		leftDry  = s.HL == 0
		rightDry = s.HR == 0
	)
	switch {
	case leftDry && rightDry:
		r = types.Reflect_Both
	case rightDry:
		s.HR, s.HuR, s.BR = s.HL, -s.HuL, s.BL
		r = types.Reflect_Left
	case leftDry:
		s.HL, s.HuL, s.BL = s.HR, -s.HuR, s.BR
		r = types.Reflect_Right
	}
	return
}
