package types

import (
	"fmt"
	"strings"
)

// Real is the working precision of the solver state
type Real = float32

type BCFLAG uint8

const (
	BC_Outflow BCFLAG = iota
	BC_Reflect
)

var BCNameMap = map[string]BCFLAG{
	"out":        BC_Outflow,
	"outflow":    BC_Outflow,
	"open":       BC_Outflow,
	"wall":       BC_Reflect,
	"reflect":    BC_Reflect,
	"reflection": BC_Reflect,
}

func (bc BCFLAG) String() string {
	switch bc {
	case BC_Outflow:
		return "Outflow"
	case BC_Reflect:
		return "Reflect"
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bc))
}

func NewBCFLAG(label string) (bc BCFLAG, err error) {
	var ok bool
	if bc, ok = BCNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown boundary condition %q", label)
	}
	return
}

type Side uint8

const (
	Side_Left Side = iota
	Side_Right
	Side_Top
	Side_Bottom
	NumSides
)

var SideNameMap = map[string]Side{
	"left":   Side_Left,
	"right":  Side_Right,
	"top":    Side_Top,
	"bottom": Side_Bottom,
}

func (s Side) String() string {
	return [...]string{"Left", "Right", "Top", "Bottom"}[s]
}

func NewSide(label string) (s Side, err error) {
	var ok bool
	if s, ok = SideNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown side %q", label)
	}
	return
}

/*
Reflection marks which cell of an interface pair is the wet side of a shore.
Reflect_Left means the right cell is dry and the wall sits on the far side of
the left cell, so the right cell must not receive an update.
*/
type Reflection uint8

const (
	Reflect_Left Reflection = 1 << iota
	Reflect_Right
)

const (
	Reflect_None Reflection = 0
	Reflect_Both            = Reflect_Left | Reflect_Right
)

func (r Reflection) Has(flag Reflection) bool { return r&flag == flag }

func (r Reflection) String() string {
	switch r {
	case Reflect_None:
		return "None"
	case Reflect_Left:
		return "Left"
	case Reflect_Right:
		return "Right"
	case Reflect_Both:
		return "Both"
	}
	return fmt.Sprintf("Reflection(%d)", uint8(r))
}

type SolverType uint8

const (
	Solver_FWave SolverType = iota
	Solver_Roe
)

var SolverNameMap = map[string]SolverType{
	"fwave":  Solver_FWave,
	"f-wave": Solver_FWave,
	"roe":    Solver_Roe,
}

func (st SolverType) String() string {
	switch st {
	case Solver_FWave:
		return "FWave"
	case Solver_Roe:
		return "Roe"
	}
	return fmt.Sprintf("SolverType(%d)", uint8(st))
}

func NewSolverType(label string) (st SolverType, err error) {
	var ok bool
	if st, ok = SolverNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown solver %q, valid solvers are fwave and roe", label)
	}
	return
}
