package solvers

// RoeNetUpdates decomposes the jump in the conserved quantities instead of the
// jump in fluxes, each wave is scaled by its speed. There is no bed source term.
func RoeNetUpdates(hL, hR, huL, huR Real) (upd [2][2]Real) {
	var (
		uL, uR = huL / hL, huR / hR
		s1, s2 = eigenvalues(hL, hR, uL, uR)
		dq     = [2]Real{hR - hL, huR - huL}
		a1, a2 = eigencoefficients(s1, s2, dq)
	)
	upd = route(s1, s2, s1*a1, s2*a2)
	return
}
