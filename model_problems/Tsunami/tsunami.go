package Tsunami

import (
	"fmt"
	"math"
	"time"

	"github.com/gosuri/uiprogress"

	"github.com/notargets/gotsunami/InputParameters"
	"github.com/notargets/gotsunami/amr"
	"github.com/notargets/gotsunami/patches"
	"github.com/notargets/gotsunami/setups"
	"github.com/notargets/gotsunami/types"
	"github.com/notargets/gotsunami/utils"
)

type Real = types.Real

type Options struct {
	Verbose        bool
	Progress       bool   // Show a progress bar instead of the update table
	Graph          bool   // Plot profiles of the middle row once the run is over
	Snapshots      int    // Number of profiles in the graph
	Serve          string // Listen address of the websocket frame stream, empty disables it
	Perf           bool   // Count CPU cycles of the sweeps with the hardware counters
	ParallelDegree int    // Number of go routines used by the 2D sweeps
	LogFrequency   int    // Steps between lines of the update table
}

/*
Tsunami runs a scenario to its end time. Scenarios without an AMR section run
on a single patch, the others on an adaptive hierarchy whose level 0 patch
carries the composite solution used for output.
*/
type Tsunami struct {
	Scenario     *InputParameters.Scenario
	Setup        setups.Setup
	Patch        patches.WavePropagation // Single patch runs
	AMR          *amr.AMRCore            // Adaptive runs
	Dx, Dy       Real
	Time         float64
	Steps        int
	opts         Options
	scenarioText string
	out          *outputs
	chart        *ChartState
	stream       *Streamer
	counter      *cycleCounter
	elapsed      time.Duration
	first        Diagnostics
}

func NewTsunami(sc *InputParameters.Scenario, opts Options) (c *Tsunami, err error) {
	if err = sc.Validate(); err != nil {
		return
	}
	c = &Tsunami{
		Scenario: sc,
		opts:     opts,
		Dx:       Real(sc.Width / float64(sc.CellsX)),
		Dy:       Real(sc.Height / float64(sc.CellsY)),
	}
	if c.opts.LogFrequency <= 0 {
		c.opts.LogFrequency = 100
	}
	if c.opts.Snapshots <= 0 {
		c.opts.Snapshots = 10
	}
	var text []byte
	if text, err = sc.Marshal(); err != nil {
		return
	}
	c.scenarioText = string(text)
	if c.Setup, err = setups.NewSetup(setups.Params{
		Name:   sc.Setup.Name,
		Values: sc.Setup.Values,
		Files:  sc.Setup.Files,
		Width:  Real(sc.Width),
		Height: Real(sc.Height),
	}); err != nil {
		return
	}
	if cp, ok := c.Setup.(*setups.Checkpoint); ok {
		c.Time, c.Steps = cp.Time(), cp.TimeStep()
		if c.Time >= sc.EndTime {
			return nil, fmt.Errorf("checkpoint time %v is past the end time %v", c.Time, sc.EndTime)
		}
	}
	st, _ := types.NewSolverType(sc.Solver)
	reflect, _ := sc.ReflectingSides()
	if sc.AMR != nil {
		err = c.initAMR(st, reflect)
	} else {
		err = c.initPatch(st, reflect)
	}
	if err != nil {
		return
	}
	if opts.Verbose {
		fmt.Printf("Shallow Water Equations in %d Dimension(s)\n", sc.Dimensions)
		fmt.Printf("Using %d go routines in parallel\n", utils.ParallelDegree(opts.ParallelDegree, sc.CellsY))
		sc.Print()
	}
	return
}

func (c *Tsunami) initPatch(st types.SolverType, reflect [types.NumSides]bool) (err error) {
	var (
		sc = c.Scenario
		p  patches.WavePropagation
	)
	if sc.Dimensions == 1 {
		p = patches.NewWavePropagation1D(sc.CellsX)
	} else {
		p2 := patches.NewWavePropagation2D(sc.CellsX, sc.CellsY)
		p2.SetParallelDegree(c.opts.ParallelDegree)
		p = p2
	}
	p.SetSolver(st)
	p.EnableBathymetry(sc.Bathymetry)
	for side, on := range reflect {
		p.SetReflection(types.Side(side), on)
	}
	if err = p.Validate(); err != nil {
		return
	}
	for iy := 0; iy < sc.CellsY; iy++ {
		y := (Real(iy) + 0.5) * c.Dy
		for ix := 0; ix < sc.CellsX; ix++ {
			x := (Real(ix) + 0.5) * c.Dx
			p.SetHeight(ix, iy, c.Setup.GetHeight(x, y))
			p.SetMomentumX(ix, iy, c.Setup.GetMomentumX(x, y))
			p.SetMomentumY(ix, iy, c.Setup.GetMomentumY(x, y))
			p.SetBathymetry(ix, iy, c.Setup.GetBathymetry(x, y))
		}
	}
	c.Patch = p
	return
}

func (c *Tsunami) initAMR(st types.SolverType, reflect [types.NumSides]bool) (err error) {
	var (
		sc  = c.Scenario
		a   = sc.AMR
		cfg = amr.DefaultConfig()
	)
	cfg.Nx, cfg.Ny = sc.CellsX, sc.CellsY
	cfg.Width, cfg.Height = sc.Width, sc.Height
	cfg.MaxLevel = a.MaxLevel
	cfg.RefRatio, cfg.Thresholds = a.RefRatio, a.Thresholds
	if a.RegridFrequency > 0 {
		cfg.RegridFrequency = a.RegridFrequency
	}
	if a.BlockingFactor > 0 {
		cfg.BlockingFactor = a.BlockingFactor
	}
	if a.ErrorBuffer > 0 {
		cfg.ErrorBuffer = a.ErrorBuffer
	}
	if a.ShoreThreshold > 0 {
		cfg.ShoreThreshold = a.ShoreThreshold
	}
	if a.Reflux != nil {
		cfg.Reflux = *a.Reflux
	}
	if a.Interpolation != "" {
		if cfg.Interpolation, err = amr.NewInterpolationType(a.Interpolation); err != nil {
			return
		}
	}
	cfg.CFL, cfg.EndTime = sc.CFL, sc.EndTime
	cfg.Solver, cfg.Bathymetry, cfg.Reflect = st, sc.Bathymetry, reflect
	cfg.ParallelDegree = c.opts.ParallelDegree
	if c.AMR, err = amr.NewAMRCore(cfg); err != nil {
		return
	}
	c.AMR.InitFromScratch(c.Setup)
	if c.Time > 0 {
		c.AMR.SetTime(c.Time, c.Steps)
	}
	return
}

// Solution is the patch holding the solution on the scenario grid
func (c *Tsunami) Solution() patches.WavePropagation {
	if c.AMR != nil {
		return c.AMR.Base()
	}
	return c.Patch
}

func (c *Tsunami) Run() (err error) {
	sc := c.Scenario
	if c.out, err = newOutputs(sc, c.scenarioText, c.Dx, c.Dy, c.Solution()); err != nil {
		return
	}
	defer func() {
		if cerr := c.out.Close(); err == nil {
			err = cerr
		}
	}()
	if c.opts.Graph {
		c.chart = NewChartState(sc.EndTime, c.opts.Snapshots, c.Setup)
	}
	if c.opts.Serve != "" {
		if c.stream, err = NewStreamer(c.opts.Serve); err != nil {
			return
		}
		defer c.stream.Close()
		fmt.Printf("Streaming frames on ws://%s/ws\n", c.stream.Addr())
	}
	if c.opts.Perf {
		c.counter = newCycleCounter()
	}
	var bar *uiprogress.Bar
	if c.opts.Progress {
		uiprogress.Start()
		defer uiprogress.Stop()
		bar = uiprogress.AddBar(1000).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return fmt.Sprintf("t = %10.3f", c.Time)
		})
	} else {
		c.PrintInitialization()
	}

	c.first = Diagnose(c.Solution(), c.Dx, c.Dy)
	if err = c.observe(false); err != nil {
		return
	}
	advanced := func(step int, t float64) (err error) {
		c.Steps, c.Time = step, t
		finished := c.CheckIfFinished()
		if err = c.observe(finished); err != nil {
			return
		}
		if bar != nil {
			bar.Set(int(1000 * c.Time / sc.EndTime))
		} else if finished || c.Steps%c.opts.LogFrequency == 0 {
			c.PrintUpdate()
		}
		return
	}
	if c.AMR != nil {
		var (
			start      = time.Now()
			inCallback time.Duration
		)
		c.AMR.Verbose = c.opts.Verbose
		err = c.AMR.Evolve(func(s int, t float64) error {
			cb := time.Now()
			defer func() { inCallback += time.Since(cb) }()
			return advanced(s, t)
		})
		c.elapsed = time.Since(start) - inCallback
	} else {
		for !c.CheckIfFinished() && err == nil {
			dt := c.ComputeDt()
			start := time.Now()
			c.Advance(dt)
			c.elapsed += time.Since(start)
			err = advanced(c.Steps+1, c.Time+dt)
		}
	}
	if err != nil {
		return
	}
	if bar != nil {
		bar.Set(1000)
	}
	c.PrintFinal()
	return
}

// ShowGraph draws the profiles collected by Run, it does not return
func (c *Tsunami) ShowGraph() {
	if c.chart != nil {
		c.chart.Show()
	}
}

// ComputeDt is the CFL limited step of the patch, clipped to the end time
func (c *Tsunami) ComputeDt() (dt float64) {
	var (
		remaining = c.Scenario.EndTime - c.Time
		speed     = float64(c.Patch.MaxWaveSpeed())
	)
	if speed == 0 {
		return remaining
	}
	dt = c.Scenario.CFL * math.Min(float64(c.Dx), float64(c.Dy)) / speed
	if dt > remaining {
		dt = remaining
	}
	return
}

// Advance fills the ghost cells and sweeps the patch by dt
func (c *Tsunami) Advance(dt float64) {
	sweep := func() {
		c.Patch.SetGhostOutflow()
		if p2, ok := c.Patch.(*patches.WavePropagation2D); ok {
			p2.TimeStepXY(Real(dt/float64(c.Dx)), Real(dt/float64(c.Dy)))
			return
		}
		c.Patch.TimeStep(Real(dt / float64(c.Dx)))
	}
	if c.counter == nil {
		sweep()
		return
	}
	if err := c.counter.measure(sweep); err != nil {
		fmt.Printf("Disabling cycle counts: %v\n", err)
		c.counter = nil
	}
}

func (c *Tsunami) CheckIfFinished() bool {
	return c.Scenario.EndTime-c.Time <= 1.e-9*c.Scenario.EndTime
}

// observe runs the outputs due after a step, the first call always writes the fields
func (c *Tsunami) observe(final bool) (err error) {
	p := c.Solution()
	if utils.IsNan(p.GetHeight()) {
		return fmt.Errorf("NaN in the water height after step %d at t = %v", c.Steps, c.Time)
	}
	if err = c.out.Observe(c.Time, c.Steps, p, final); err != nil {
		return
	}
	if c.chart != nil {
		c.chart.Plot(c.Time, p, c.Dx, final)
	}
	if c.stream != nil {
		c.stream.Broadcast(NewFrame(c.Time, c.Steps, c.Dx, c.Dy, p))
	}
	return
}

func (c *Tsunami) PrintInitialization() {
	sc := c.Scenario
	fmt.Printf("Solving [%s] on %dx%d cells until finaltime = %8.5f\n", sc.Setup.Name, sc.CellsX, sc.CellsY, sc.EndTime)
	if c.Time > 0 {
		fmt.Printf("Resuming from t = %8.5f at step %d\n", c.Time, c.Steps)
	}
	fmt.Printf("    iter    time")
	fmt.Printf("       Mass     MinEta     MaxEta   MaxSpeed\n")
}

func (c *Tsunami) PrintUpdate() {
	var (
		format = "%11.4e"
		d      = Diagnose(c.Solution(), c.Dx, c.Dy)
	)
	fmt.Printf("%8d%8.3f", c.Steps, c.Time)
	fmt.Printf(format, d.Mass)
	fmt.Printf(format, d.MinSurface)
	fmt.Printf(format, d.MaxSurface)
	fmt.Printf(format, d.MaxSpeed)
	if c.AMR != nil {
		fmt.Printf("  levels = %d", c.AMR.FinestLevel()+1)
	}
	fmt.Printf("\n")
}

func (c *Tsunami) PrintFinal() {
	var (
		cells = c.Scenario.CellsX * c.Scenario.CellsY
		d     = Diagnose(c.Solution(), c.Dx, c.Dy)
	)
	if c.Steps > 0 {
		rate := float64(c.elapsed.Microseconds()) / float64(cells*c.Steps)
		fmt.Printf("\nRate of execution = %8.5f us/(cell*iteration) over %d iterations\n", rate, c.Steps)
	}
	if c.first.Mass != 0 {
		fmt.Printf("Relative mass change = %11.4e\n", (d.Mass-c.first.Mass)/c.first.Mass)
	}
	if c.counter != nil {
		c.counter.Print(cells)
	}
	if c.opts.Verbose {
		fmt.Println(utils.GetMemUsage())
	}
}
