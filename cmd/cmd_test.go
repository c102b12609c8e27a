package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotsunami/output"
	"github.com/notargets/gotsunami/patches"
)

func TestScenario1D(t *testing.T) {
	{ // From the flags
		cmd := &cobra.Command{}
		addOneDFlags(cmd)
		require.NoError(t, cmd.Flags().Set("setup", "ShockShock1d"))
		require.NoError(t, cmd.Flags().Set("value", "Height=8"))
		require.NoError(t, cmd.Flags().Set("value", "Momentum=2"))
		require.NoError(t, cmd.Flags().Set("cells", "200"))
		require.NoError(t, cmd.Flags().Set("reflect", "left,right"))
		sc, err := scenario1D(cmd)
		require.NoError(t, err)
		assert.Equal(t, "ShockShock1d", sc.Setup.Name)
		assert.Equal(t, map[string]float64{"Height": 8, "Momentum": 2}, sc.Setup.Values)
		assert.Equal(t, 200, sc.CellsX)
		assert.Equal(t, 1, sc.CellsY)
		assert.Equal(t, 0.5, sc.Height)
		assert.Equal(t, 5., sc.EndTime)
		assert.Equal(t, []string{"left", "right"}, sc.Reflect)
		assert.NoError(t, sc.Validate())
	}
	{
		cmd := &cobra.Command{}
		addOneDFlags(cmd)
		require.NoError(t, cmd.Flags().Set("value", "Height=high"))
		_, err := scenario1D(cmd)
		assert.Error(t, err)
	}
	{ // A scenario file keeps its end time unless the flag is given
		filename := filepath.Join(t.TempDir(), "scenario.yaml")
		require.NoError(t, os.WriteFile(filename, []byte(`
Title: file
Setup:
  Name: RareRare1d
CellsX: 100
Width: 10
EndTime: 2
`), 0o644))
		cmd := &cobra.Command{}
		addOneDFlags(cmd)
		require.NoError(t, cmd.Flags().Set("inputConditionsFile", filename))
		sc, err := scenario1D(cmd)
		require.NoError(t, err)
		assert.Equal(t, "file", sc.Title)
		assert.Equal(t, 2., sc.EndTime)
		require.NoError(t, cmd.Flags().Set("endTime", "3"))
		sc, err = scenario1D(cmd)
		require.NoError(t, err)
		assert.Equal(t, 3., sc.EndTime)

		cmd = &cobra.Command{}
		addTwoDFlags(cmd)
		require.NoError(t, cmd.Flags().Set("inputConditionsFile", filename))
		_, err = scenario2D(cmd)
		assert.Error(t, err)
	}
}

func TestScenario2D(t *testing.T) {
	cmd := &cobra.Command{}
	addTwoDFlags(cmd)
	_, err := scenario2D(cmd)
	assert.Error(t, err)

	var (
		dir      = t.TempDir()
		filename = filepath.Join(dir, "checkpoint.nc")
		p        = patches.NewWavePropagation2D(4, 4)
		text     = `
Title: restart me
Setup:
  Name: CircularDamBreak2d
CellsX: 4
CellsY: 4
Width: 100
Height: 100
EndTime: 10
`
	)
	for iy := 0; iy < 4; iy++ {
		for ix := 0; ix < 4; ix++ {
			p.SetHeight(ix, iy, 5)
		}
	}
	require.NoError(t, output.WriteCheckpoint(filename, text, 25, 25, 4, 40, p))
	require.NoError(t, cmd.Flags().Set("restart", filename))
	require.NoError(t, cmd.Flags().Set("endTime", "20"))
	sc, err := scenario2D(cmd)
	require.NoError(t, err)
	assert.Equal(t, "restart me", sc.Title)
	assert.Equal(t, "Checkpoint", sc.Setup.Name)
	assert.Equal(t, filename, sc.Setup.Files["Checkpoint"])
	assert.Equal(t, 20., sc.EndTime)
	assert.Equal(t, 2, sc.Dimensions)

	_, err = RestartScenario(filepath.Join(dir, "missing.nc"), nil)
	assert.Error(t, err)
}
