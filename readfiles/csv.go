package readfiles

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

/*
ReadBathymetryProfile reads a bathymetry profile, one sample per row with the
bathymetry in the last column. Rows starting with '#' and rows whose last
column is not a number (a header) are skipped.
*/
func ReadBathymetryProfile(filename string, verbose bool) (b []float64, err error) {
	var file *os.File
	if verbose {
		fmt.Printf("Reading bathymetry profile named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open bathymetry profile %s: %w", filename, err)
	}
	defer file.Close()
	if b, err = readBathymetryProfile(file); err != nil {
		return nil, fmt.Errorf("bathymetry profile %s: %w", filename, err)
	}
	if verbose {
		fmt.Printf("Read %d bathymetry samples\n", len(b))
	}
	return
}

func readBathymetryProfile(r io.Reader) (b []float64, err error) {
	err = forEachRecord(r, func(line int, rec []string) error {
		v, perr := strconv.ParseFloat(strings.TrimSpace(rec[len(rec)-1]), 64)
		if perr != nil {
			if len(b) == 0 {
				return nil
			}
			return fmt.Errorf("line %d: %w", line, perr)
		}
		b = append(b, v)
		return nil
	})
	if err == nil && len(b) < 2 {
		err = fmt.Errorf("need at least two samples, have %d", len(b))
	}
	return
}

// MiddleState is one row of a middle states table: two Riemann states and the reference middle height
type MiddleState struct {
	HeightLeft, HeightRight     float64
	MomentumLeft, MomentumRight float64
	HeightStar                  float64
}

func ReadMiddleStates(filename string) (ms []MiddleState, err error) {
	var file *os.File
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open middle states %s: %w", filename, err)
	}
	defer file.Close()
	if ms, err = readMiddleStates(file); err != nil {
		return nil, fmt.Errorf("middle states %s: %w", filename, err)
	}
	return
}

func readMiddleStates(r io.Reader) (ms []MiddleState, err error) {
	err = forEachRecord(r, func(line int, rec []string) error {
		if len(rec) != 5 {
			return fmt.Errorf("line %d: want 5 columns, have %d", line, len(rec))
		}
		var v [5]float64
		for i, field := range rec {
			var perr error
			if v[i], perr = strconv.ParseFloat(strings.TrimSpace(field), 64); perr != nil {
				if len(ms) == 0 && i == 0 {
					return nil
				}
				return fmt.Errorf("line %d: %w", line, perr)
			}
		}
		ms = append(ms, MiddleState{v[0], v[1], v[2], v[3], v[4]})
		return nil
	})
	return
}

func forEachRecord(r io.Reader, fn func(line int, rec []string) error) (err error) {
	var (
		reader = csv.NewReader(r)
		rec    []string
	)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true
	for {
		if rec, err = reader.Read(); err == io.EOF {
			return nil
		} else if err != nil {
			return
		}
		line, _ := reader.FieldPos(0)
		if err = fn(line, rec); err != nil {
			return
		}
	}
}
