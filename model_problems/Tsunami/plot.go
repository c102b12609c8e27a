package Tsunami

import (
	"image/color"
	"math"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/gotsunami/dam_break"
	"github.com/notargets/gotsunami/patches"
	"github.com/notargets/gotsunami/setups"
)

type profile struct {
	time float64
	x, f []float32
}

/*
ChartState collects water surface profiles along the middle row of the
domain. Snapshots are taken every Interval of simulated time and drawn
together with the bathymetry once the run is over.
*/
type ChartState struct {
	Interval   float64
	next       float64
	snapshots  []profile
	bathymetry profile
	exact      *profile
	setup      setups.Setup
}

func NewChartState(endTime float64, snapshots int, setup setups.Setup) *ChartState {
	return &ChartState{
		Interval: endTime / float64(max(snapshots, 1)),
		setup:    setup,
	}
}

// cut returns the cell centers of the middle row and a field sampled on them
func cut(p patches.WavePropagation, dx Real, field []Real) (x, f []float32) {
	var (
		nx = p.GetCellsX()
		k0 = (p.GetCellsY() / 2) * p.GetStride()
	)
	x, f = make([]float32, nx), make([]float32, nx)
	for ix := 0; ix < nx; ix++ {
		x[ix] = (float32(ix) + 0.5) * dx
		f[ix] = field[k0+ix]
	}
	return
}

func (cs *ChartState) Plot(t float64, p patches.WavePropagation, dx Real, final bool) {
	if t < cs.next && !final {
		return
	}
	cs.next += cs.Interval
	for cs.next <= t {
		cs.next += cs.Interval
	}
	if cs.snapshots == nil {
		x, b := cut(p, dx, p.GetBathymetry())
		cs.bathymetry = profile{x: x, f: b}
	}
	x, f := cut(p, dx, p.GetTotalHeight())
	cs.snapshots = append(cs.snapshots, profile{time: t, x: x, f: f})
	if final {
		cs.exact = exactProfile(cs.setup, t, x)
	}
}

// exactProfile is the analytic water surface of a flat bed dam break, nil for other setups
func exactProfile(setup setups.Setup, t float64, x []float32) *profile {
	db, ok := setup.(*setups.DamBreak1d)
	if !ok || t <= 0 {
		return nil
	}
	exact, err := dam_break.NewDamBreak(float64(db.HeightLeft), float64(db.HeightRight),
		float64(db.MomentumLeft), float64(db.MomentumRight), float64(db.Location))
	if err != nil {
		return nil
	}
	pr := &profile{time: t, x: x, f: make([]float32, len(x))}
	for i, xx := range x {
		h, _ := exact.Sample(float64(xx), t)
		pr.f[i] = float32(h)
	}
	return pr
}

func segments(pr profile) (line []float32) {
	for i := 1; i < len(pr.x); i++ {
		line = append(line, pr.x[i-1], pr.f[i-1], pr.x[i], pr.f[i])
	}
	return
}

// shade runs from blue at the first snapshot to red at the last
func shade(n, count int) color.RGBA {
	frac := 1.
	if count > 1 {
		frac = float64(n) / float64(count-1)
	}
	return color.RGBA{R: uint8(255 * frac), B: uint8(255 * (1 - frac)), A: 255}
}

func (cs *ChartState) bounds() (xMin, xMax, fMin, fMax float32) {
	xMin, xMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	fMin, fMax = xMin, xMax
	all := append([]profile{cs.bathymetry}, cs.snapshots...)
	for _, pr := range all {
		for i := range pr.x {
			xMin, xMax = min(xMin, pr.x[i]), max(xMax, pr.x[i])
			fMin, fMax = min(fMin, pr.f[i]), max(fMax, pr.f[i])
		}
	}
	pad := 0.05 * (fMax - fMin)
	if pad == 0 {
		pad = 1
	}
	return xMin, xMax, fMin - pad, fMax + pad
}

// Show draws the collected profiles and keeps the window up until the process ends
func (cs *ChartState) Show() {
	if len(cs.snapshots) == 0 {
		return
	}
	xMin, xMax, fMin, fMax := cs.bounds()
	ch := chart2d.NewChart2D(xMin, xMax, fMin, fMax,
		1920, 1280, utils2.WHITE, utils2.BLACK)
	ch.AddLine(segments(cs.bathymetry), utils2.BLACK)
	for n, pr := range cs.snapshots {
		ch.AddLine(segments(pr), shade(n, len(cs.snapshots)))
	}
	if cs.exact != nil {
		ch.AddLine(segments(*cs.exact), color.RGBA{G: 160, A: 255})
	}
	for {
		time.Sleep(time.Second)
	}
}
