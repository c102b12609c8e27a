package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotsunami/types"
)

func TestParse(t *testing.T) {
	{ // 1D defaults
		var sc Scenario
		require.NoError(t, sc.Parse([]byte(`
Title: Dam Break
Setup:
  Name: DamBreak1d
  Values:
    HeightLeft: 14
CellsX: 200
Width: 50
EndTime: 3
`)))
		assert.Equal(t, "Dam Break", sc.Title)
		assert.Equal(t, 14., sc.Setup.Values["HeightLeft"])
		assert.Equal(t, 1, sc.Dimensions)
		assert.Equal(t, 1, sc.CellsY)
		assert.Equal(t, 0.25, sc.Height)
		assert.Equal(t, "fwave", sc.Solver)
		assert.Equal(t, DefaultCFL, sc.CFL)
		assert.Equal(t, "csv", sc.OutputFormat)
		assert.Equal(t, "solutions", sc.OutputDirectory)
		assert.Nil(t, sc.AMR)
		assert.NoError(t, sc.Validate())
	}
	{ // 2D with stations and an AMR section
		var sc Scenario
		require.NoError(t, sc.Parse([]byte(`
Title: Tohoku
Setup:
  Name: TsunamiEvent2d
  Files:
    Bathymetry: bathy.nc
    Displacement: displ.nc
CellsX: 270
CellsY: 150
Width: 2700000
Height: 1500000
Bathymetry: true
Reflect: [Left, top]
EndTime: 36000
OutputFormat: NetCDF
Stations:
  - Name: Sendai
    X: 1200000
    Y: 800000
CheckpointFrequency: 50
AMR:
  MaxLevel: 2
  RefRatio: [2, 4]
  Thresholds: [1, 2]
  Reflux: false
`)))
		assert.Equal(t, 2, sc.Dimensions)
		assert.Equal(t, "displ.nc", sc.Setup.Files["Displacement"])
		assert.Equal(t, 1., sc.StationFrequency)
		require.NotNil(t, sc.AMR)
		assert.Equal(t, []int{2, 4}, sc.AMR.RefRatio)
		require.NotNil(t, sc.AMR.Reflux)
		assert.False(t, *sc.AMR.Reflux)
		assert.NoError(t, sc.Validate())
		reflect, err := sc.ReflectingSides()
		require.NoError(t, err)
		assert.Equal(t, [types.NumSides]bool{true, false, true, false}, reflect)

		// the rendered scenario parses back to the same values
		data, err := sc.Marshal()
		require.NoError(t, err)
		var back Scenario
		require.NoError(t, back.Parse(data))
		assert.Equal(t, sc, back)
	}
	{
		var sc Scenario
		assert.Error(t, sc.Parse([]byte("CellsX: [1, 2]")))
	}
}

func TestValidate(t *testing.T) {
	valid := func() Scenario {
		sc := Scenario{
			Title:   "valid",
			Setup:   SetupParameters{Name: "CircularDamBreak2d"},
			CellsX:  10,
			CellsY:  10,
			Width:   100,
			Height:  100,
			EndTime: 1,
		}
		sc.SetDefaults()
		return sc
	}
	sc := valid()
	require.NoError(t, sc.Validate())
	for _, breakIt := range []func(sc *Scenario){
		func(sc *Scenario) { sc.Setup.Name = "" },
		func(sc *Scenario) { sc.Dimensions = 3 },
		func(sc *Scenario) { sc.CellsX = 0 },
		func(sc *Scenario) { sc.Width = -1 },
		func(sc *Scenario) { sc.CFL = 1.5 },
		func(sc *Scenario) { sc.EndTime = 0 },
		func(sc *Scenario) { sc.WriteFrequency = -1 },
		func(sc *Scenario) { sc.Solver = "hllc" },
		func(sc *Scenario) { sc.Solver, sc.Bathymetry = "roe", true },
		func(sc *Scenario) { sc.Reflect = []string{"north"} },
		func(sc *Scenario) { sc.OutputFormat = "vtk" },
		func(sc *Scenario) { sc.Stations = []StationParameters{{Name: "out", X: 200, Y: 5}} },
		func(sc *Scenario) { sc.Dimensions, sc.CellsY, sc.AMR = 1, 1, &AMRParameters{} },
	} {
		sc := valid()
		breakIt(&sc)
		assert.Error(t, sc.Validate())
	}
}
