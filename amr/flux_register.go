package amr

import (
	"github.com/notargets/gotsunami/patches"
	"github.com/notargets/gotsunami/solvers"
)

const (
	dirX uint8 = iota
	dirY
)

// faceKey names one face of a coarse cell next to the fine region
type faceKey struct {
	I, J int
	Dir  uint8
	Side uint8 // 0 when the coarse cell is left of (above) the face
}

type face struct {
	iL, iR int // ghost inclusive patch indices of the cells sharing the face
	key    faceKey
}

// faceSet accumulates the scaled net-updates its faces apply to the coarse side
type faceSet struct {
	x, y       []face
	xAcc, yAcc [][2]float64
	weight     float64
}

func (fs *faceSet) reset(weight float64) {
	fs.x, fs.y = fs.x[:0], fs.y[:0]
	fs.weight = weight
}

func (fs *faceSet) add(dir uint8, f face) {
	if dir == dirX {
		fs.x = append(fs.x, f)
	} else {
		fs.y = append(fs.y, f)
	}
}

func (fs *faceSet) seal() {
	fs.xAcc = make([][2]float64, len(fs.x))
	fs.yAcc = make([][2]float64, len(fs.y))
}

/*
accumulate adds the face flux seen from the register side cell. Left of the
face that is f(q)+A⁻ΔQ, right of it the register keeps A⁺ΔQ-f(q), so
subtracting the fine sum from the coarse value gives the missing update.
*/
func accumulate(faces []face, acc [][2]float64, fn solvers.NetUpdatesFunc, h, hu, b []Real, scaling float64) {
	for n, f := range faces {
		upd, ok := patches.InterfaceUpdate(fn, h, hu, b, f.iL, f.iR)
		if !ok {
			continue
		}
		var (
			u    = upd[f.key.Side]
			iC   = f.iL
			sign = 1.
		)
		if f.key.Side == 1 {
			iC, sign = f.iR, -1
		}
		fh, fhu := physicalFlux(float64(h[iC]), float64(hu[iC]))
		acc[n][0] += scaling * (float64(u[0]) + sign*fh)
		acc[n][1] += scaling * (float64(u[1]) + sign*fhu)
	}
}

func physicalFlux(h, hu float64) (fh, fhu float64) {
	if h <= 0 {
		return
	}
	return hu, hu*hu/h + 0.5*float64(solvers.G)*h*h
}

/*
faceRecorder is the patch side of the flux registers. The coarse set holds the
faces of uncovered cells next to the finer level, the fine set the faces
between the patch and the ghost cells that belong to the coarser level.
*/
type faceRecorder struct {
	coarse, fine faceSet
}

func (fr *faceRecorder) RecordX(fn solvers.NetUpdatesFunc, h, hu, b []Real, scaling Real) {
	for _, fs := range []*faceSet{&fr.coarse, &fr.fine} {
		accumulate(fs.x, fs.xAcc, fn, h, hu, b, fs.weight*float64(scaling))
	}
}

func (fr *faceRecorder) RecordY(fn solvers.NetUpdatesFunc, h, hv, b []Real, scaling Real) {
	for _, fs := range []*faceSet{&fr.coarse, &fr.fine} {
		accumulate(fs.y, fs.yAcc, fn, h, hv, b, fs.weight*float64(scaling))
	}
}

/*
FluxRegister holds, per coarse face on the coarse-fine boundary, the coarse
update minus the sum of the fine updates over the fine faces and substeps
covering it.
*/
type FluxRegister struct {
	values map[faceKey][2]float64
}

func NewFluxRegister() *FluxRegister {
	return &FluxRegister{values: make(map[faceKey][2]float64)}
}

func (fr *FluxRegister) Len() int { return len(fr.values) }

func (fr *FluxRegister) Clear() { clear(fr.values) }

func (fr *FluxRegister) collect(fs *faceSet) {
	gather := func(faces []face, acc [][2]float64) {
		for n, f := range faces {
			v := fr.values[f.key]
			v[0] += acc[n][0]
			v[1] += acc[n][1]
			fr.values[f.key] = v
			acc[n] = [2]float64{}
		}
	}
	gather(fs.x, fs.xAcc)
	gather(fs.y, fs.yAcc)
}

// Reflux corrects the coarse cells of the register and clears it
func (fr *FluxRegister) Reflux(coarse *Level) {
	var hint int
	for key, v := range fr.values {
		n := coarse.Boxes.Find(key.I, key.J, &hint)
		if n < 0 {
			continue
		}
		var (
			f = coarse.Patches[n].MutableState()
			k = coarse.index(n, key.I, key.J)
		)
		f.H[k] += Real(v[0])
		if key.Dir == dirX {
			f.Hu[k] += Real(v[1])
		} else {
			f.Hv[k] += Real(v[1])
		}
	}
	fr.Clear()
}

/*
linkLevels rebuilds the coupling between level lev and level lev+1: the coarse
faces of every patch of lev, the fine faces and restriction operators of
lev+1, and an empty register.
*/
func (c *AMRCore) linkLevels(lev int) {
	var (
		l    = c.levels[lev]
		fine *Level
	)
	if lev < c.finest {
		fine = c.levels[lev+1]
	}
	for n := range l.Patches {
		fs := &l.faces[n].coarse
		fs.reset(1)
		if fine != nil {
			c.coarseFaces(lev, n, fs)
		}
		fs.seal()
	}
	if fine == nil {
		return
	}
	r := c.cfg.RefRatio[lev]
	for n := range fine.Patches {
		fs := &fine.faces[n].fine
		fs.reset(-1 / float64(r*r))
		c.fineFaces(lev+1, n, fs)
		fs.seal()
	}
	c.buildRestriction(lev + 1)
	c.registers[lev+1].Clear()
}

func (c *AMRCore) coarseFaces(lev, n int, fs *faceSet) {
	var (
		l       = c.levels[lev]
		b       = l.Boxes[n]
		d       = c.domains[lev]
		r       = c.cfg.RefRatio[lev]
		covered BoxList
		hint    int
	)
	for _, fb := range c.levels[lev+1].Boxes {
		covered = append(covered, fb.Coarsen(r))
	}
	isCovered := func(i, j int) bool { return d.Contains(i, j) && covered.Find(i, j, &hint) >= 0 }
	for j := b.Lo[1]; j <= b.Hi[1]; j++ {
		for i := b.Lo[0]; i <= b.Hi[0]; i++ {
			if isCovered(i, j) {
				continue
			}
			k := l.index(n, i, j)
			if isCovered(i+1, j) {
				fs.add(dirX, face{k, l.index(n, i+1, j), faceKey{i, j, dirX, 0}})
			}
			if isCovered(i-1, j) {
				fs.add(dirX, face{l.index(n, i-1, j), k, faceKey{i, j, dirX, 1}})
			}
			if isCovered(i, j+1) {
				fs.add(dirY, face{k, l.index(n, i, j+1), faceKey{i, j, dirY, 0}})
			}
			if isCovered(i, j-1) {
				fs.add(dirY, face{l.index(n, i, j-1), k, faceKey{i, j, dirY, 1}})
			}
		}
	}
}

func (c *AMRCore) fineFaces(lev, n int, fs *faceSet) {
	var (
		l    = c.levels[lev]
		b    = l.Boxes[n]
		d    = c.domains[lev]
		r    = c.cfg.RefRatio[lev-1]
		hint = n
	)
	// the ghost cell must belong to the coarse level
	coarseGhost := func(i, j int) bool { return d.Contains(i, j) && l.Boxes.Find(i, j, &hint) < 0 }
	key := func(i, j int, dir, side uint8) faceKey {
		return faceKey{floorDiv(i, r), floorDiv(j, r), dir, side}
	}
	for j := b.Lo[1]; j <= b.Hi[1]; j++ {
		if i := b.Lo[0] - 1; coarseGhost(i, j) {
			fs.add(dirX, face{l.index(n, i, j), l.index(n, i+1, j), key(i, j, dirX, 0)})
		}
		if i := b.Hi[0] + 1; coarseGhost(i, j) {
			fs.add(dirX, face{l.index(n, i-1, j), l.index(n, i, j), key(i, j, dirX, 1)})
		}
	}
	for i := b.Lo[0]; i <= b.Hi[0]; i++ {
		if j := b.Lo[1] - 1; coarseGhost(i, j) {
			fs.add(dirY, face{l.index(n, i, j), l.index(n, i, j+1), key(i, j, dirY, 0)})
		}
		if j := b.Hi[1] + 1; coarseGhost(i, j) {
			fs.add(dirY, face{l.index(n, i, j-1), l.index(n, i, j), key(i, j, dirY, 1)})
		}
	}
}
