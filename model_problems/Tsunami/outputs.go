package Tsunami

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/notargets/gotsunami/InputParameters"
	"github.com/notargets/gotsunami/output"
	"github.com/notargets/gotsunami/patches"
)

type fieldWriter interface {
	Write(time float64, step int, p patches.WavePropagation) error
	Close() error
}

// csvWriter writes one file per output step
type csvWriter struct {
	dir    string
	dx, dy Real
}

func (w *csvWriter) Write(_ float64, step int, p patches.WavePropagation) (err error) {
	var (
		filename = filepath.Join(w.dir, fmt.Sprintf("solution_%d.csv", step))
		f        *os.File
	)
	if f, err = os.Create(filename); err != nil {
		return
	}
	if err = output.WriteCsv(f, w.dx, w.dy, p); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return f.Close()
}

func (w *csvWriter) Close() error { return nil }

/*
outputs schedules the field output, the station samples and the checkpoints
of a run. Fields are written every WriteFrequency steps, checkpoints every
CheckpointFrequency steps, and both at the end of the run.
*/
type outputs struct {
	writeFrequency      int
	checkpointFrequency int
	scenario            string
	dx, dy              Real
	fields              fieldWriter
	stations            *output.Stations
	checkpoint          string
	written             int
}

func newOutputs(sc *InputParameters.Scenario, scenario string, dx, dy Real,
	p patches.WavePropagation) (o *outputs, err error) {
	o = &outputs{
		writeFrequency:      sc.WriteFrequency,
		checkpointFrequency: sc.CheckpointFrequency,
		scenario:            scenario,
		dx:                  dx,
		dy:                  dy,
	}
	format := strings.ToLower(sc.OutputFormat)
	if format == "none" && len(sc.Stations) == 0 && sc.CheckpointFrequency == 0 {
		return
	}
	if err = os.MkdirAll(sc.OutputDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}
	switch format {
	case "csv":
		o.fields = &csvWriter{dir: sc.OutputDirectory, dx: dx, dy: dy}
	case "netcdf":
		filename := filepath.Join(sc.OutputDirectory, "solution.nc")
		if o.fields, err = output.NewNetCdf(filename, p.GetCellsX(), p.GetCellsY(), dx, dy); err != nil {
			return nil, err
		}
	}
	if len(sc.Stations) != 0 {
		stations := make([]output.Station, len(sc.Stations))
		for n, s := range sc.Stations {
			stations[n] = output.Station{Name: s.Name, X: s.X, Y: s.Y}
		}
		if o.stations, err = output.NewStations(filepath.Join(sc.OutputDirectory, "stations"),
			sc.StationFrequency, dx, dy, p.GetCellsX(), p.GetCellsY(), p.GetStride(), stations); err != nil {
			o.Close()
			return nil, err
		}
	}
	if sc.CheckpointFrequency > 0 {
		o.checkpoint = filepath.Join(sc.OutputDirectory, "checkpoint.nc")
	}
	return
}

func (o *outputs) Observe(time float64, step int, p patches.WavePropagation, final bool) (err error) {
	if o.fields != nil && (o.written == 0 || final || (o.writeFrequency > 0 && step%o.writeFrequency == 0)) {
		if err = o.fields.Write(time, step, p); err != nil {
			return
		}
		o.written++
	}
	if o.stations != nil && o.stations.Due(time) {
		if err = o.stations.Write(time, p); err != nil {
			return
		}
	}
	if o.checkpoint != "" && step > 0 && (final || step%o.checkpointFrequency == 0) {
		err = output.WriteCheckpoint(o.checkpoint, o.scenario, o.dx, o.dy, time, step, p)
	}
	return
}

func (o *outputs) Close() (err error) {
	if o.fields != nil {
		err = o.fields.Close()
	}
	if o.stations != nil {
		if serr := o.stations.Close(); err == nil {
			err = serr
		}
	}
	return
}
