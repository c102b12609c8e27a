package setups

import (
	"fmt"

	"github.com/notargets/gotsunami/readfiles"
)

/*
Checkpoint restarts a run from the last record of a checkpoint file. The file
grid is mapped onto [0, ScaleX] x [0, ScaleY], so a restart may use another
resolution than the run that wrote it.
*/
type Checkpoint struct {
	ScaleX, ScaleY Real
	data           *readfiles.Checkpoint
}

func NewCheckpoint(filename string, scaleX, scaleY Real) (cp *Checkpoint, err error) {
	var data *readfiles.Checkpoint
	if data, err = readfiles.ReadCheckpoint(filename); err != nil {
		return
	}
	if cp, err = newCheckpoint(data, scaleX, scaleY); err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", filename, err)
	}
	return
}

func newCheckpoint(data *readfiles.Checkpoint, scaleX, scaleY Real) (cp *Checkpoint, err error) {
	if scaleX <= 0 || scaleY <= 0 {
		return nil, fmt.Errorf("domain scale must be positive, have %v x %v", scaleX, scaleY)
	}
	cp = &Checkpoint{ScaleX: scaleX, ScaleY: scaleY, data: data}
	return
}

// Time is the simulated time of the restored record
func (cp *Checkpoint) Time() float64 { return cp.data.Time }

func (cp *Checkpoint) TimeStep() int { return cp.data.TimeStep }

// Scenario is the scenario file content of the run that wrote the checkpoint
func (cp *Checkpoint) Scenario() string { return cp.data.Scenario }

func (cp *Checkpoint) cell(x, y Real) (j, i int) {
	var (
		nx, ny = cp.data.Nx, cp.data.Ny
	)
	i = min(max(int(x/cp.ScaleX*Real(nx)), 0), nx-1)
	j = min(max(int(y/cp.ScaleY*Real(ny)), 0), ny-1)
	return
}

func (cp *Checkpoint) GetHeight(x, y Real) Real {
	j, i := cp.cell(x, y)
	return Real(cp.data.TotalHeight.Get(j, i) - cp.data.Bathymetry.Get(j, i))
}

func (cp *Checkpoint) GetMomentumX(x, y Real) Real {
	return Real(cp.data.MomentumX.Get(cp.cell(x, y)))
}

func (cp *Checkpoint) GetMomentumY(x, y Real) Real {
	return Real(cp.data.MomentumY.Get(cp.cell(x, y)))
}

func (cp *Checkpoint) GetBathymetry(x, y Real) Real {
	return Real(cp.data.Bathymetry.Get(cp.cell(x, y)))
}
