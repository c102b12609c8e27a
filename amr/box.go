package amr

import (
	"fmt"
	"sort"
)

// Box is an inclusive rectangle of cells in the index space of one level
type Box struct {
	Lo, Hi [2]int
}

func NewBox(i0, j0, i1, j1 int) Box { return Box{Lo: [2]int{i0, j0}, Hi: [2]int{i1, j1}} }

func (b Box) String() string {
	return fmt.Sprintf("[(%d,%d) (%d,%d)]", b.Lo[0], b.Lo[1], b.Hi[0], b.Hi[1])
}

func (b Box) Empty() bool { return b.Hi[0] < b.Lo[0] || b.Hi[1] < b.Lo[1] }

func (b Box) NX() int { return b.Hi[0] - b.Lo[0] + 1 }
func (b Box) NY() int { return b.Hi[1] - b.Lo[1] + 1 }

func (b Box) NumCells() int {
	if b.Empty() {
		return 0
	}
	return b.NX() * b.NY()
}

func (b Box) Contains(i, j int) bool {
	return i >= b.Lo[0] && i <= b.Hi[0] && j >= b.Lo[1] && j <= b.Hi[1]
}

func (b Box) ContainsBox(o Box) bool {
	return b.Contains(o.Lo[0], o.Lo[1]) && b.Contains(o.Hi[0], o.Hi[1])
}

func (b Box) Intersect(o Box) (r Box, ok bool) {
	r = Box{
		Lo: [2]int{max(b.Lo[0], o.Lo[0]), max(b.Lo[1], o.Lo[1])},
		Hi: [2]int{min(b.Hi[0], o.Hi[0]), min(b.Hi[1], o.Hi[1])},
	}
	ok = !r.Empty()
	return
}

func (b Box) Grow(n int) Box {
	return NewBox(b.Lo[0]-n, b.Lo[1]-n, b.Hi[0]+n, b.Hi[1]+n)
}

func (b Box) Refine(r int) Box {
	return NewBox(b.Lo[0]*r, b.Lo[1]*r, (b.Hi[0]+1)*r-1, (b.Hi[1]+1)*r-1)
}

func (b Box) Coarsen(r int) Box {
	return NewBox(floorDiv(b.Lo[0], r), floorDiv(b.Lo[1], r), floorDiv(b.Hi[0], r), floorDiv(b.Hi[1], r))
}

// Local converts level indices to interior patch coordinates
func (b Box) Local(i, j int) (ix, iy int) { return i - b.Lo[0], j - b.Lo[1] }

func floorDiv(a, r int) int {
	q := a / r
	if a%r != 0 && a < 0 {
		q--
	}
	return q
}

// BoxList is the set of disjoint boxes of one level
type BoxList []Box

/*
Find returns the index of the box containing (i,j) or -1. hint is the result of
a previous search and is tried first, it is updated on success.
*/
func (bl BoxList) Find(i, j int, hint *int) int {
	if h := *hint; h >= 0 && h < len(bl) && bl[h].Contains(i, j) {
		return h
	}
	for n, b := range bl {
		if b.Contains(i, j) {
			*hint = n
			return n
		}
	}
	return -1
}

func (bl BoxList) Contains(i, j int) bool {
	var hint int
	return bl.Find(i, j, &hint) >= 0
}

func (bl BoxList) NumCells() (n int) {
	for _, b := range bl {
		n += b.NumCells()
	}
	return
}

// Sort orders the boxes by row of their low corner, then by column
func (bl BoxList) Sort() {
	sort.Slice(bl, func(a, b int) bool {
		if bl[a].Lo[1] != bl[b].Lo[1] {
			return bl[a].Lo[1] < bl[b].Lo[1]
		}
		return bl[a].Lo[0] < bl[b].Lo[0]
	})
}
