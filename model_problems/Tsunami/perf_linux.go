//go:build linux

package Tsunami

import (
	"fmt"
	"runtime"

	perf "github.com/hodgesds/perf-utils"
)

// cycleCounter sums the CPU cycles the hardware counters see on the thread running the sweeps
type cycleCounter struct {
	cycles  uint64
	samples int
}

func newCycleCounter() *cycleCounter { return &cycleCounter{} }

// measure runs sweep exactly once, also when the counter can't be read
func (cc *cycleCounter) measure(sweep func()) (err error) {
	var ran bool
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	pv, err := perf.CPUCycles(func() error {
		sweep()
		ran = true
		return nil
	})
	if err != nil {
		if !ran {
			sweep()
		}
		return fmt.Errorf("reading the cycle counter: %w", err)
	}
	cc.cycles += pv.Value
	cc.samples++
	return
}

func (cc *cycleCounter) Print(cells int) {
	if cc.samples == 0 {
		return
	}
	perCell := float64(cc.cycles) / float64(cells*cc.samples)
	fmt.Printf("CPU cycles = %d over %d sweeps, %8.2f cycles/(cell*iteration) on the driving thread\n",
		cc.cycles, cc.samples, perCell)
}
