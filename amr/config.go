package amr

import (
	"fmt"
	"strings"

	"github.com/notargets/gotsunami/solvers"
	"github.com/notargets/gotsunami/types"
)

type InterpolationType uint8

const (
	Interp_LinearLimited InterpolationType = iota // cell conservative, limited slopes
	Interp_PieceWiseConstant
)

var (
	InterpolationNameMap = map[string]InterpolationType{
		"lincc":    Interp_LinearLimited,
		"linear":   Interp_LinearLimited,
		"pc":       Interp_PieceWiseConstant,
		"pcinterp": Interp_PieceWiseConstant,
	}
	InterpolationPrintNames = []string{"Limited Linear", "Piecewise Constant"}
)

func (it InterpolationType) String() string { return InterpolationPrintNames[it] }

func NewInterpolationType(label string) (it InterpolationType, err error) {
	var ok bool
	if it, ok = InterpolationNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown interpolation %q", label)
	}
	return
}

type Config struct {
	Nx, Ny           int     // level 0 cells
	Width, Height    float64 // physical extent of the domain
	OriginX, OriginY float64
	MaxLevel         int
	RefRatio         []int     // ratio between level l and l+1
	Thresholds       []float64 // refinement threshold of each level
	RegridFrequency  int
	BlockingFactor   int
	ErrorBuffer      int
	ShoreThreshold   float64
	CFL              float64
	EndTime          float64
	Solver           types.SolverType
	Bathymetry       bool
	Reflect          [types.NumSides]bool
	Reflux           bool
	Interpolation    InterpolationType
	ParallelDegree   int
}

func DefaultConfig() Config {
	return Config{
		MaxLevel:        0,
		RegridFrequency: 2,
		BlockingFactor:  8,
		ErrorBuffer:     1,
		ShoreThreshold:  0.5,
		CFL:             0.45,
		Reflux:          true,
	}
}

func (cfg Config) Validate() (err error) {
	switch {
	case cfg.Nx <= 0 || cfg.Ny <= 0:
		err = fmt.Errorf("level 0 needs cells in both directions, have %d x %d", cfg.Nx, cfg.Ny)
	case cfg.Width <= 0 || cfg.Height <= 0:
		err = fmt.Errorf("domain extent must be positive, have %v x %v", cfg.Width, cfg.Height)
	case cfg.MaxLevel < 0:
		err = fmt.Errorf("max level %d is negative", cfg.MaxLevel)
	case len(cfg.RefRatio) < cfg.MaxLevel:
		err = fmt.Errorf("have %d refinement ratios for %d levels", len(cfg.RefRatio), cfg.MaxLevel)
	case len(cfg.Thresholds) < cfg.MaxLevel:
		err = fmt.Errorf("have %d refinement thresholds for %d levels", len(cfg.Thresholds), cfg.MaxLevel)
	case cfg.BlockingFactor <= 0:
		err = fmt.Errorf("blocking factor %d must be positive", cfg.BlockingFactor)
	case cfg.Nx%cfg.BlockingFactor != 0 || cfg.Ny%cfg.BlockingFactor != 0:
		err = fmt.Errorf("level 0 cells %d x %d are not a multiple of the blocking factor %d",
			cfg.Nx, cfg.Ny, cfg.BlockingFactor)
	case cfg.ErrorBuffer < 0:
		err = fmt.Errorf("error buffer %d is negative", cfg.ErrorBuffer)
	case cfg.CFL <= 0 || cfg.CFL > 1:
		err = fmt.Errorf("CFL number %v is outside (0,1]", cfg.CFL)
	case cfg.EndTime <= 0:
		err = fmt.Errorf("end time %v must be positive", cfg.EndTime)
	}
	if err != nil {
		return
	}
	for l := 0; l < cfg.MaxLevel; l++ {
		if cfg.RefRatio[l] < 2 {
			return fmt.Errorf("refinement ratio %d of level %d is below 2", cfg.RefRatio[l], l)
		}
		if cfg.Thresholds[l] < 0 {
			return fmt.Errorf("refinement threshold %v of level %d is negative", cfg.Thresholds[l], l)
		}
	}
	if _, err = solvers.Select(cfg.Solver, cfg.Bathymetry); err != nil {
		return
	}
	return
}
