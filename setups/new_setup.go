package setups

import (
	"fmt"
	"sort"
	"strings"

	"github.com/notargets/gotsunami/readfiles"
)

type SetupType uint8

const (
	Setup_DamBreak1d SetupType = iota
	Setup_MiddleStates1d
	Setup_RareRare1d
	Setup_ShockShock1d
	Setup_SubcriticalFlow1d
	Setup_SupercriticalFlow1d
	Setup_TsunamiEvent1d
	Setup_CircularDamBreak2d
	Setup_ArtificialTsunami2d
	Setup_TsunamiEvent2d
	Setup_Checkpoint
)

var SetupNameMap = map[string]SetupType{
	"dambreak1d":          Setup_DamBreak1d,
	"dambreak":            Setup_DamBreak1d,
	"middlestates1d":      Setup_MiddleStates1d,
	"rarerare1d":          Setup_RareRare1d,
	"shockshock1d":        Setup_ShockShock1d,
	"subcriticalflow1d":   Setup_SubcriticalFlow1d,
	"supercriticalflow1d": Setup_SupercriticalFlow1d,
	"tsunamievent1d":      Setup_TsunamiEvent1d,
	"circulardambreak2d":  Setup_CircularDamBreak2d,
	"artificialtsunami2d": Setup_ArtificialTsunami2d,
	"tsunamievent2d":      Setup_TsunamiEvent2d,
	"checkpoint":          Setup_Checkpoint,
}

func (st SetupType) String() string {
	return [...]string{"DamBreak1d", "MiddleStates1d", "RareRare1d", "ShockShock1d",
		"SubcriticalFlow1d", "SupercriticalFlow1d", "TsunamiEvent1d",
		"CircularDamBreak2d", "ArtificialTsunami2d", "TsunamiEvent2d", "Checkpoint"}[st]
}

func NewSetupType(label string) (st SetupType, err error) {
	var ok bool
	if st, ok = SetupNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		names := make([]string, 0, len(SetupNameMap))
		for name := range SetupNameMap {
			names = append(names, name)
		}
		sort.Strings(names)
		err = fmt.Errorf("unknown setup %q, valid setups are %s", label, strings.Join(names, ", "))
	}
	return
}

/*
Params selects and parameterizes a setup. Values and Files are looked up by
name, missing values take the setup defaults. Width and Height are the extent
of the domain, used as default locations and scales.
*/
type Params struct {
	Name          string
	Values        map[string]float64
	Files         map[string]string
	Width, Height Real
}

func (p Params) value(key string, def Real) Real {
	if v, ok := p.Values[key]; ok {
		return Real(v)
	}
	return def
}

func (p Params) file(key string) (name string, err error) {
	var ok bool
	if name, ok = p.Files[key]; !ok || name == "" {
		err = fmt.Errorf("setup %s needs the file %s", p.Name, key)
	}
	return
}

// NewSetup builds the setup named in params
func NewSetup(params Params) (s Setup, err error) {
	var st SetupType
	if st, err = NewSetupType(params.Name); err != nil {
		return
	}
	var (
		center = params.Width / 2
		fname  string
	)
	switch st {
	case Setup_DamBreak1d:
		s = NewMiddleStates1d(params.value("HeightLeft", 10), params.value("HeightRight", 5),
			params.value("MomentumLeft", 0), params.value("MomentumRight", 0),
			params.value("Location", center))
	case Setup_MiddleStates1d:
		var ms []readfiles.MiddleState
		if fname, err = params.file("MiddleStates"); err != nil {
			return
		}
		if ms, err = readfiles.ReadMiddleStates(fname); err != nil {
			return
		}
		row := int(params.value("Row", 0))
		if row < 0 || row >= len(ms) {
			return nil, fmt.Errorf("middle states row %d out of range [0, %d)", row, len(ms))
		}
		m := ms[row]
		s = NewMiddleStates1d(Real(m.HeightLeft), Real(m.HeightRight),
			Real(m.MomentumLeft), Real(m.MomentumRight), params.value("Location", center))
	case Setup_RareRare1d:
		s = NewRareRare1d(params.value("Height", 10), params.value("Momentum", 1), params.value("Location", center))
	case Setup_ShockShock1d:
		s = NewShockShock1d(params.value("Height", 10), params.value("Momentum", 1), params.value("Location", center))
	case Setup_SubcriticalFlow1d:
		s = NewSubcriticalFlow1d()
	case Setup_SupercriticalFlow1d:
		s = NewSupercriticalFlow1d()
	case Setup_TsunamiEvent1d:
		var profile []float64
		if fname, err = params.file("Bathymetry"); err != nil {
			return
		}
		if profile, err = readfiles.ReadBathymetryProfile(fname, false); err != nil {
			return
		}
		var te *TsunamiEvent1d
		if te, err = NewTsunamiEvent1d(profile, params.value("Delta", 20), params.value("Scale", params.Width)); err != nil {
			return
		}
		s = te
	case Setup_CircularDamBreak2d:
		cd := NewCircularDamBreak2d()
		cd.HeightCenter = params.value("HeightCenter", cd.HeightCenter)
		cd.HeightOutside = params.value("HeightOutside", cd.HeightOutside)
		cd.CenterX = params.value("CenterX", cd.CenterX)
		cd.CenterY = params.value("CenterY", cd.CenterY)
		cd.Radius = params.value("Radius", cd.Radius)
		s = cd
	case Setup_ArtificialTsunami2d:
		at := NewArtificialTsunami2d()
		at.Depth = params.value("Depth", at.Depth)
		at.CenterX = params.value("CenterX", at.CenterX)
		at.CenterY = params.value("CenterY", at.CenterY)
		s = at
	case Setup_TsunamiEvent2d:
		var grids [2]*readfiles.Grid
		for n, key := range []string{"Bathymetry", "Displacement"} {
			if fname, err = params.file(key); err != nil {
				return
			}
			if grids[n], err = readfiles.ReadNetCdfGrid(fname, "x", "y", "z"); err != nil {
				return
			}
		}
		var te *TsunamiEvent2d
		if te, err = NewTsunamiEvent2d(grids[0], grids[1], params.value("ScaleX", params.Width),
			params.value("ScaleY", params.Height), params.value("Delta", 20)); err != nil {
			return
		}
		s = te
	case Setup_Checkpoint:
		if fname, err = params.file("Checkpoint"); err != nil {
			return
		}
		var cp *Checkpoint
		if cp, err = NewCheckpoint(fname, params.value("ScaleX", params.Width), params.value("ScaleY", params.Height)); err != nil {
			return
		}
		s = cp
	}
	return
}
