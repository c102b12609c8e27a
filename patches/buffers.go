package patches

import (
	"unsafe"

	"github.com/notargets/gotsunami/types"
)

type Real = types.Real

// Alignment of every buffer handed out by newArena, in bytes
const Alignment = 64

/*
newArena carves nBuf buffers of n values out of a single allocation. Every
buffer starts on an Alignment byte boundary and is capped at n so an append
can never run into its neighbor.
*/
func newArena(nBuf, n int) (bufs [][]Real) {
	var (
		perLine = Alignment / int(unsafe.Sizeof(Real(0)))
		padded  = (n + perLine - 1) / perLine * perLine
		raw     = make([]Real, nBuf*padded+perLine)
		addr    = uintptr(unsafe.Pointer(&raw[0]))
		offset  = int((Alignment-addr%Alignment)%Alignment) / int(unsafe.Sizeof(Real(0)))
	)
	bufs = make([][]Real, nBuf)
	for i := range bufs {
		start := offset + i*padded
		bufs[i] = raw[start : start+n : start+n]
	}
	return
}
