package output

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/notargets/gotsunami/patches"
)

type Station struct {
	Name string
	X, Y float64
}

type probe struct {
	Station
	k    int // cell offset in the patch views
	file *os.File
	w    *csv.Writer
}

/*
Stations records the state of the cells under a set of points into one CSV
time series per point. Samples are taken at most every Frequency seconds of
simulated time, independent of the field output.
*/
type Stations struct {
	Frequency float64
	next      float64
	probes    []*probe
}

/*
NewStations creates dir/<name>.csv for every station. dx and dy are the cell
sizes of the patch that will be sampled, a station outside of its nx by ny
cells is an error.
*/
func NewStations(dir string, frequency float64, dx, dy Real, nx, ny, stride int,
	stations []Station) (s *Stations, err error) {
	if frequency <= 0 {
		return nil, fmt.Errorf("station output frequency must be positive, have %v", frequency)
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create station directory %s: %w", dir, err)
	}
	s = &Stations{Frequency: frequency}
	for _, st := range stations {
		var (
			ix = int(math.Floor(st.X / float64(dx)))
			iy = int(math.Floor(st.Y / float64(dy)))
		)
		if ny == 1 {
			iy = 0
		}
		if ix < 0 || ix >= nx || iy < 0 || iy >= ny {
			s.Close()
			return nil, fmt.Errorf("station %s at (%v, %v) is outside of the domain", st.Name, st.X, st.Y)
		}
		pr := &probe{Station: st, k: iy*stride + ix}
		filename := filepath.Join(dir, st.Name+".csv")
		if pr.file, err = os.Create(filename); err != nil {
			s.Close()
			return nil, fmt.Errorf("unable to create station file %s: %w", filename, err)
		}
		pr.w = csv.NewWriter(pr.file)
		s.probes = append(s.probes, pr)
		if err = pr.w.Write([]string{"time", "height", "momentum_x", "momentum_y", "bathymetry", "total_height"}); err != nil {
			s.Close()
			return nil, fmt.Errorf("station %s: %w", st.Name, err)
		}
	}
	return
}

// Due is true when a sample is pending at the given time
func (s *Stations) Due(time float64) bool { return len(s.probes) > 0 && time >= s.next }

// Write samples every station if a sample is due
func (s *Stations) Write(time float64, p patches.WavePropagation) (err error) {
	if !s.Due(time) {
		return
	}
	for s.next <= time {
		s.next += s.Frequency
	}
	var (
		h, hu  = p.GetHeight(), p.GetMomentumX()
		hv, b  = p.GetMomentumY(), p.GetBathymetry()
		eta    = p.GetTotalHeight()
		format = func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	)
	for _, pr := range s.probes {
		var v Real
		if hv != nil {
			v = hv[pr.k]
		}
		row := []string{format(time), format(float64(h[pr.k])), format(float64(hu[pr.k])),
			format(float64(v)), format(float64(b[pr.k])), format(float64(eta[pr.k]))}
		if err = pr.w.Write(row); err != nil {
			return fmt.Errorf("station %s: %w", pr.Name, err)
		}
		pr.w.Flush()
		if err = pr.w.Error(); err != nil {
			return fmt.Errorf("station %s: %w", pr.Name, err)
		}
	}
	return
}

func (s *Stations) Close() (err error) {
	for _, pr := range s.probes {
		if pr.w != nil {
			pr.w.Flush()
		}
		if cerr := pr.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return
}
