package readfiles

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBathymetryProfile(t *testing.T) {
	{ // Comments and the header are skipped, the last column is the bathymetry
		input := []byte("# GEBCO profile\nlon,lat,distance,depth\n" +
			"0.1,0.2,0,14.7254650696\n0.1,0.3,250,-7260.18122445\n0.1,0.4,500,-12.5\n")
		b, err := readBathymetryProfile(bytes.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, []float64{14.7254650696, -7260.18122445, -12.5}, b)
	}
	{ // A single column works too
		b, err := readBathymetryProfile(bytes.NewReader([]byte("-1\n-2\n")))
		require.NoError(t, err)
		assert.Equal(t, []float64{-1, -2}, b)
	}
	{ // Garbage after the first sample and too short profiles are errors
		_, err := readBathymetryProfile(bytes.NewReader([]byte("-1\nabc\n")))
		assert.ErrorContains(t, err, "line 2")
		_, err = readBathymetryProfile(bytes.NewReader([]byte("depth\n-1\n")))
		assert.Error(t, err)
	}
	{ // From a file
		dir := t.TempDir()
		name := filepath.Join(dir, "profile.csv")
		require.NoError(t, os.WriteFile(name, []byte("-1\n-2\n-3\n"), 0o644))
		b, err := ReadBathymetryProfile(name, false)
		require.NoError(t, err)
		assert.Len(t, b, 3)
		_, err = ReadBathymetryProfile(filepath.Join(dir, "missing.csv"), false)
		assert.Error(t, err)
	}
}

func TestReadMiddleStates(t *testing.T) {
	{ // Middle states table
		input := []byte("#\n# comment\n" +
			"hLeft,hRight,huLeft,huRight,hStar\n" +
			"8899.739847378269,8965.94341539052,-122.0340922987273,-293.3336478853254,8932.845698144888\n" +
			"9976.904476606509,9880.564368304345,-43.54587891943425,-318.3917556511107,9922.565851412414\n")
		ms, err := readMiddleStates(bytes.NewReader(input))
		require.NoError(t, err)
		require.Len(t, ms, 2)
		assert.Equal(t, MiddleState{
			HeightLeft:    8899.739847378269,
			HeightRight:   8965.94341539052,
			MomentumLeft:  -122.0340922987273,
			MomentumRight: -293.3336478853254,
			HeightStar:    8932.845698144888,
		}, ms[0])
		assert.Equal(t, 9922.565851412414, ms[1].HeightStar)
	}
	{ // Wrong column counts
		_, err := readMiddleStates(bytes.NewReader([]byte("1,2,3,4\n")))
		assert.ErrorContains(t, err, "5 columns")
		_, err = readMiddleStates(bytes.NewReader([]byte("1,2,3,4,5\n1,2,x,4,5\n")))
		assert.Error(t, err)
	}
}
