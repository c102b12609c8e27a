package amr

import (
	"sort"
)

/*
Regrid rebuilds the levels above lev from the tags of the level below them.
Cells of a new level take the data of the old level where the two overlap and
are interpolated from the coarser level elsewhere. Levels that end up without
boxes are cleared.
*/
func (c *AMRCore) Regrid(lev int, time float64) {
	for k := lev; k < c.cfg.MaxLevel && k <= c.finest; k++ {
		boxes := c.makeFineBoxes(k)
		if len(boxes) == 0 {
			c.ClearLevel(k + 1)
			break
		}
		c.remakeLevel(k+1, boxes, time)
	}
	c.linkLevels(c.finest)
}

// ClearLevel drops lev and every finer level
func (c *AMRCore) ClearLevel(lev int) {
	for l := lev; l <= c.cfg.MaxLevel; l++ {
		c.levels[l] = nil
		c.registers[l].Clear()
	}
	if c.finest >= lev {
		c.finest = lev - 1
	}
	c.linkLevels(c.finest)
}

func (c *AMRCore) remakeLevel(lev int, boxes BoxList, time float64) {
	var (
		old = c.levels[lev]
		nl  = c.newLevel(lev, boxes)
	)
	for n, b := range boxes {
		var (
			p       = nl.Patches[n]
			f       = p.MutableState()
			oldHint int
		)
		for j := b.Lo[1]; j <= b.Hi[1]; j++ {
			for i := b.Lo[0]; i <= b.Hi[0]; i++ {
				k := nl.index(n, i, j)
				if old != nil {
					if m := old.Boxes.Find(i, j, &oldHint); m >= 0 {
						writeCell(f, k, old.current(m, i, j))
						continue
					}
				}
				writeCell(f, k, c.interpolate(lev, i, j, time))
			}
		}
		p.SyncPrevState()
	}
	c.levels[lev] = nl
	if old == nil {
		c.tOld[lev], c.tNew[lev] = time, time
	}
	c.finest = max(c.finest, lev)
	c.linkLevels(lev - 1)
}

/*
makeFineBoxes grows the tags of level k by the error buffer, covers them with
blocking factor tiles, drops the tiles that would not be properly nested,
merges the tiles of a row into boxes and refines them into level k+1.
*/
func (c *AMRCore) makeFineBoxes(k int) (fine BoxList) {
	var (
		d     = c.domains[k]
		bf    = c.cfg.BlockingFactor
		tiles = make(map[[2]int]bool)
	)
	for _, cell := range c.ErrorEst(k) {
		g, ok := NewBox(cell.I, cell.J, cell.I, cell.J).Grow(c.cfg.ErrorBuffer).Intersect(d)
		if !ok {
			continue
		}
		for tj := floorDiv(g.Lo[1], bf); tj <= floorDiv(g.Hi[1], bf); tj++ {
			for ti := floorDiv(g.Lo[0], bf); ti <= floorDiv(g.Hi[0], bf); ti++ {
				tiles[[2]int{ti, tj}] = true
			}
		}
	}
	keys := make([][2]int, 0, len(tiles))
	for key := range tiles {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a][1] != keys[b][1] {
			return keys[a][1] < keys[b][1]
		}
		return keys[a][0] < keys[b][0]
	})
	var boxes BoxList
	for _, key := range keys {
		tile, ok := NewBox(key[0]*bf, key[1]*bf, (key[0]+1)*bf-1, (key[1]+1)*bf-1).Intersect(d)
		if !ok || !c.properlyNested(k, tile) {
			continue
		}
		if last := len(boxes) - 1; last >= 0 && boxes[last].Lo[1] == tile.Lo[1] &&
			boxes[last].Hi[1] == tile.Hi[1] && boxes[last].Hi[0]+1 == tile.Lo[0] {
			boxes[last].Hi[0] = tile.Hi[0]
			continue
		}
		boxes = append(boxes, tile)
	}
	r := c.cfg.RefRatio[k]
	for _, b := range boxes {
		fine = append(fine, b.Refine(r))
	}
	return
}

// properlyNested is true when the tile grown by one cell lies in level k or outside the domain
func (c *AMRCore) properlyNested(k int, tile Box) bool {
	if k == 0 {
		return true
	}
	var (
		l    = c.levels[k]
		hint int
	)
	g, _ := tile.Grow(1).Intersect(c.domains[k])
	for j := g.Lo[1]; j <= g.Hi[1]; j++ {
		for i := g.Lo[0]; i <= g.Hi[0]; i++ {
			if l.Boxes.Find(i, j, &hint) < 0 {
				return false
			}
		}
	}
	return true
}
