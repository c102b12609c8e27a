package amr

import (
	"fmt"
	"math"

	"github.com/notargets/gotsunami/patches"
	"github.com/notargets/gotsunami/setups"
	"github.com/notargets/gotsunami/utils"
)

// Growth limit of the coarse time step between two steps
const dtChangeMax = 1.1

/*
AMRCore advances a hierarchy of levels 0..MaxLevel with subcycling. Level 0 is
a single box over the domain, every finer level is a list of boxes aligned to
the blocking factor and properly nested in the level below.
*/
type AMRCore struct {
	cfg            Config
	Verbose        bool
	levels         []*Level
	registers      []*FluxRegister // registers[l] couples levels l-1 and l
	finest         int
	step           []int
	lastRegridStep []int
	nSubSteps      []int
	tOld, tNew, dt []float64
	domains        []Box
	dx, dy         []float64
	setup          setups.Setup // bathymetry of cells created by regrid and ghost fill
}

func NewAMRCore(cfg Config) (c *AMRCore, err error) {
	if err = cfg.Validate(); err != nil {
		err = fmt.Errorf("invalid AMR configuration: %w", err)
		return
	}
	nLev := cfg.MaxLevel + 1
	c = &AMRCore{
		cfg:            cfg,
		levels:         make([]*Level, nLev),
		registers:      make([]*FluxRegister, nLev),
		step:           make([]int, nLev),
		lastRegridStep: make([]int, nLev),
		nSubSteps:      make([]int, nLev),
		tOld:           make([]float64, nLev),
		tNew:           make([]float64, nLev),
		dt:             make([]float64, nLev),
		domains:        make([]Box, nLev),
		dx:             make([]float64, nLev),
		dy:             make([]float64, nLev),
	}
	c.domains[0] = NewBox(0, 0, cfg.Nx-1, cfg.Ny-1)
	c.dx[0], c.dy[0] = cfg.Width/float64(cfg.Nx), cfg.Height/float64(cfg.Ny)
	c.nSubSteps[0] = 1
	for l := 1; l < nLev; l++ {
		r := cfg.RefRatio[l-1]
		c.domains[l] = c.domains[l-1].Refine(r)
		c.dx[l], c.dy[l] = c.dx[l-1]/float64(r), c.dy[l-1]/float64(r)
		c.nSubSteps[l] = r
		c.registers[l] = NewFluxRegister()
	}
	return
}

func (c *AMRCore) Config() Config { return c.cfg }

func (c *AMRCore) FinestLevel() int { return c.finest }

func (c *AMRCore) Level(lev int) *Level { return c.levels[lev] }

// Base is the level 0 patch, after every coarse step it carries the averaged composite solution
func (c *AMRCore) Base() *patches.WavePropagation2D { return c.levels[0].Patches[0] }

func (c *AMRCore) Time() float64 { return c.tNew[0] }

func (c *AMRCore) Step() int { return c.step[0] }

func (c *AMRCore) LevelTime(lev int) (tOld, tNew, dt float64) {
	return c.tOld[lev], c.tNew[lev], c.dt[lev]
}

func (c *AMRCore) LevelStep(lev int) int { return c.step[lev] }

func (c *AMRCore) Done() bool {
	return c.cfg.EndTime-c.tNew[0] <= 1.e-9*c.cfg.EndTime
}

func (c *AMRCore) RefRatio(lev int) int { return c.cfg.RefRatio[lev] }

func (c *AMRCore) newLevel(lev int, boxes BoxList) (l *Level) {
	l = &Level{
		Boxes:   boxes,
		Patches: make([]*patches.WavePropagation2D, len(boxes)),
		faces:   make([]*faceRecorder, len(boxes)),
		Domain:  c.domains[lev],
		Dx:      c.dx[lev],
		Dy:      c.dy[lev],
	}
	for n, b := range boxes {
		l.Patches[n] = c.newPatch(b)
		l.faces[n] = &faceRecorder{}
		if c.cfg.Reflux {
			l.Patches[n].SetFaceRecorder(l.faces[n])
		}
	}
	return
}

// InitFromScratch builds the hierarchy by sampling the setup at the cell centers of every level
func (c *AMRCore) InitFromScratch(setup setups.Setup) {
	c.setup = setup
	c.levels[0] = c.newLevel(0, BoxList{c.domains[0]})
	c.sample(0, setup)
	c.finest = 0
	for k := 0; k < c.cfg.MaxLevel; k++ {
		boxes := c.makeFineBoxes(k)
		if len(boxes) == 0 {
			break
		}
		c.levels[k+1] = c.newLevel(k+1, boxes)
		c.sample(k+1, setup)
		c.finest = k + 1
		c.linkLevels(k)
	}
	c.linkLevels(c.finest)
	for l := range c.tNew {
		c.tOld[l], c.tNew[l], c.step[l], c.lastRegridStep[l] = 0, 0, 0, 0
	}
}

// SetTime moves every level to time and the coarse step count to step, used when resuming a checkpoint
func (c *AMRCore) SetTime(time float64, step int) {
	for l := range c.tNew {
		c.tOld[l], c.tNew[l] = time, time
		c.step[l], c.lastRegridStep[l] = 0, 0
	}
	c.step[0], c.lastRegridStep[0] = step, step
}

func (c *AMRCore) sample(lev int, setup setups.Setup) {
	l := c.levels[lev]
	for n, b := range l.Boxes {
		p := l.Patches[n]
		for j := b.Lo[1]; j <= b.Hi[1]; j++ {
			for i := b.Lo[0]; i <= b.Hi[0]; i++ {
				var (
					x, y   = c.cellCenter(lev, i, j)
					ix, iy = b.Local(i, j)
				)
				p.SetHeight(ix, iy, setup.GetHeight(x, y))
				p.SetMomentumX(ix, iy, setup.GetMomentumX(x, y))
				p.SetMomentumY(ix, iy, setup.GetMomentumY(x, y))
				p.SetBathymetry(ix, iy, setup.GetBathymetry(x, y))
			}
		}
		p.SyncPrevState()
	}
}

/*
Evolve runs coarse steps until the end time. The callback sees the coarse step
count and time after every coarse step, an error from it ends the run.
*/
func (c *AMRCore) Evolve(callback func(step int, time float64) error) (err error) {
	for !c.Done() {
		c.CoarseStep()
		if callback != nil {
			if err = callback(c.step[0], c.tNew[0]); err != nil {
				return
			}
		}
	}
	return
}

// CoarseStep runs one coarse step with all finer levels subcycled
func (c *AMRCore) CoarseStep() {
	c.ComputeDt()
	c.TimeStepWithSubcycling(0, c.tNew[0], 1)
}

// ComputeDt sets the CFL limited step of every level, the coarse step is clipped to the end time
func (c *AMRCore) ComputeDt() {
	var (
		dt0     = math.MaxFloat64
		nFactor = 1
	)
	for lev := 0; lev <= c.finest; lev++ {
		nFactor *= c.nSubSteps[lev]
		dt0 = math.Min(dt0, float64(nFactor)*c.estTimeStep(lev))
	}
	if c.dt[0] > 0 {
		dt0 = math.Min(dt0, dtChangeMax*c.dt[0])
	}
	var (
		t0  = c.tNew[0]
		eps = 1.e-3 * dt0
	)
	if t0+dt0 > c.cfg.EndTime-eps {
		dt0 = c.cfg.EndTime - t0
	}
	c.dt[0] = dt0
	for lev := 1; lev <= c.cfg.MaxLevel; lev++ {
		c.dt[lev] = c.dt[lev-1] / float64(c.nSubSteps[lev])
	}
}

func (c *AMRCore) estTimeStep(lev int) float64 {
	var speed float64
	for _, p := range c.levels[lev].Patches {
		speed = math.Max(speed, float64(p.MaxWaveSpeed()))
	}
	if speed == 0 {
		return math.MaxFloat64
	}
	return c.cfg.CFL * math.Min(c.dx[lev], c.dy[lev]) / speed
}

func (c *AMRCore) TimeStepWithSubcycling(lev int, time float64, iteration int) {
	if c.cfg.RegridFrequency > 0 && lev < c.cfg.MaxLevel &&
		c.step[lev] > c.lastRegridStep[lev] && c.step[lev]%c.cfg.RegridFrequency == 0 {
		oldFinest := c.finest
		c.Regrid(lev, time)
		for k := lev; k <= c.finest; k++ {
			c.lastRegridStep[k] = c.step[k]
		}
		for k := oldFinest + 1; k <= c.finest; k++ {
			c.dt[k] = c.dt[k-1] / float64(c.nSubSteps[k])
		}
	}
	if c.Verbose {
		fmt.Printf("[Level %d step %d] ADVANCE with time = %g dt = %g, iteration %d of %d\n",
			lev, c.step[lev]+1, time, c.dt[lev], iteration, c.nSubSteps[lev])
	}
	c.Advance(lev, time, c.dt[lev])
	c.step[lev]++

	if lev < c.finest {
		for i := 1; i <= c.nSubSteps[lev+1]; i++ {
			c.TimeStepWithSubcycling(lev+1, time+float64(i-1)*c.dt[lev+1], i)
		}
		if c.cfg.Reflux {
			c.registers[lev+1].Reflux(c.levels[lev])
		}
		c.AverageDownTo(lev)
	}
}

// Advance fills the ghost rings of level lev at time and sweeps every patch by dt
func (c *AMRCore) Advance(lev int, time, dt float64) {
	var (
		l      = c.levels[lev]
		nP     = len(l.Patches)
		pm     = utils.NewPartitionMap(utils.ParallelDegree(c.cfg.ParallelDegree, nP), nP)
		sx, sy = Real(dt / l.Dx), Real(dt / l.Dy)
	)
	c.tOld[lev] = c.tNew[lev]
	c.tNew[lev] += dt

	pm.Run(func(n0, n1 int) {
		for n := n0; n < n1; n++ {
			c.FillPatch(lev, n, time)
		}
	})
	pm.Run(func(n0, n1 int) {
		for n := n0; n < n1; n++ {
			l.Patches[n].TimeStepXY(sx, sy)
		}
	})

	if !c.cfg.Reflux {
		return
	}
	for _, rec := range l.faces {
		if lev < c.finest {
			c.registers[lev+1].collect(&rec.coarse)
		}
		if lev > 0 {
			c.registers[lev].collect(&rec.fine)
		}
	}
}
