package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparse(t *testing.T) {
	{ // 2:1 average of a row of four values
		R := NewDOK(2, 4)
		for i := 0; i < 2; i++ {
			R.Set(i, 2*i, 0.5)
			R.Set(i, 2*i+1, 0.5)
		}
		R.SetReadOnly("R")
		assert.Panics(t, func() { R.Set(0, 0, 1) })
		C := R.ToCSR()
		nr, nc := C.Dims()
		assert.Equal(t, [2]int{2, 4}, [2]int{nr, nc})
		assert.Equal(t, 0.5, C.At(1, 3))
		assert.Equal(t, 0., C.At(1, 0))
		dst := []float64{7, 7}
		C.MulVec(dst, []float64{1, 3, 5, 7})
		assert.Equal(t, []float64{2, 6}, dst)
		assert.Panics(t, func() { C.MulVec(dst, []float64{1, 2}) })
	}
	{
		assert.False(t, IsNan([]float32{1, 2}))
		assert.True(t, IsNan([]float32{1, float32(math.NaN())}))
		assert.True(t, IsNan(math.NaN()))
		assert.True(t, IsNan([][]float32{{0}, {float32(math.NaN())}}))
		assert.False(t, IsNan("not a number"))
		assert.Contains(t, GetMemUsage(), "MiB")
	}
}
