package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Reflection is a flag set, Both carries both sides
		assert.True(t, Reflect_Both.Has(Reflect_Left))
		assert.True(t, Reflect_Both.Has(Reflect_Right))
		assert.False(t, Reflect_Left.Has(Reflect_Right))
		assert.False(t, Reflect_None.Has(Reflect_Left))
		assert.True(t, Reflect_None.Has(Reflect_None))
		assert.Equal(t, Reflect_Both, Reflect_Left|Reflect_Right)
		assert.Equal(t, "Both", Reflect_Both.String())
	}
	{
		tokens := []string{"FWave", " roe ", "f-wave"}
		solvers := []SolverType{Solver_FWave, Solver_Roe, Solver_FWave}
		for i, token := range tokens {
			st, err := NewSolverType(token)
			assert.NoError(t, err)
			assert.Equal(t, solvers[i], st)
		}
		_, err := NewSolverType("hllc")
		assert.Error(t, err)
	}
	{
		tokens := []string{"Wall", "outflow", "REFLECT", "open"}
		flags := []BCFLAG{BC_Reflect, BC_Outflow, BC_Reflect, BC_Outflow}
		for i, token := range tokens {
			bc, err := NewBCFLAG(token)
			assert.NoError(t, err)
			assert.Equal(t, flags[i], bc)
		}
		_, err := NewBCFLAG("periodic")
		assert.Error(t, err)
	}
	{
		s, err := NewSide("Bottom")
		assert.NoError(t, err)
		assert.Equal(t, Side_Bottom, s)
		assert.Equal(t, "Bottom", s.String())
		_, err = NewSide("front")
		assert.Error(t, err)
	}
}
