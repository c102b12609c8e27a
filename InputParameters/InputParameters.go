package InputParameters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gotsunami/types"
)

type SetupParameters struct {
	Name   string             `json:"Name"`
	Values map[string]float64 `json:"Values"` // Setup constants by name, missing ones take the setup defaults
	Files  map[string]string  `json:"Files"`  // Input files by role, e.g. Bathymetry, Displacement
}

type StationParameters struct {
	Name string  `json:"Name"`
	X    float64 `json:"X"`
	Y    float64 `json:"Y"`
}

type AMRParameters struct {
	MaxLevel        int       `json:"MaxLevel"`
	RefRatio        []int     `json:"RefRatio"`
	Thresholds      []float64 `json:"Thresholds"`
	RegridFrequency int       `json:"RegridFrequency"`
	BlockingFactor  int       `json:"BlockingFactor"`
	ErrorBuffer     int       `json:"ErrorBuffer"`
	ShoreThreshold  float64   `json:"ShoreThreshold"`
	Reflux          *bool     `json:"Reflux"`
	Interpolation   string    `json:"Interpolation"`
}

// Parameters obtained from the YAML scenario file
type Scenario struct {
	Title               string              `json:"Title"`
	Setup               SetupParameters     `json:"Setup"`
	Dimensions          int                 `json:"Dimensions"`
	CellsX              int                 `json:"CellsX"`
	CellsY              int                 `json:"CellsY"`
	Width               float64             `json:"Width"`
	Height              float64             `json:"Height"`
	Solver              string              `json:"Solver"`
	Bathymetry          bool                `json:"Bathymetry"`
	Reflect             []string            `json:"Reflect"` // Sides with a reflecting wall: left, right, top, bottom
	CFL                 float64             `json:"CFL"`
	EndTime             float64             `json:"EndTime"`
	WriteFrequency      int                 `json:"WriteFrequency"` // Steps between field outputs, 0 writes the first and last step only
	OutputFormat        string              `json:"OutputFormat"`   // csv, netcdf or none
	OutputDirectory     string              `json:"OutputDirectory"`
	Stations            []StationParameters `json:"Stations"`
	StationFrequency    float64             `json:"StationFrequency"`    // Seconds of simulated time between station samples
	CheckpointFrequency int                 `json:"CheckpointFrequency"` // Steps between checkpoints, 0 disables them
	AMR                 *AMRParameters      `json:"AMR"`
}

var (
	OutputFormats = []string{"csv", "netcdf", "none"}
	DefaultCFL    = 0.45
)

func (sc *Scenario) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, sc); err != nil {
		return fmt.Errorf("parsing scenario: %w", err)
	}
	sc.SetDefaults()
	return
}

func (sc *Scenario) SetDefaults() {
	if sc.Dimensions == 0 {
		sc.Dimensions = 1
		if sc.CellsY > 1 {
			sc.Dimensions = 2
		}
	}
	if sc.Dimensions == 1 {
		sc.CellsY = 1
		if sc.Height == 0 {
			sc.Height = sc.Width / float64(max(sc.CellsX, 1))
		}
	}
	if sc.Solver == "" {
		sc.Solver = "fwave"
	}
	if sc.CFL == 0 {
		sc.CFL = DefaultCFL
	}
	if sc.OutputFormat == "" {
		sc.OutputFormat = "csv"
	}
	if sc.OutputDirectory == "" {
		sc.OutputDirectory = "solutions"
	}
	if len(sc.Stations) != 0 && sc.StationFrequency == 0 {
		sc.StationFrequency = 1
	}
}

// Validate checks everything that can be checked without building the solver
func (sc *Scenario) Validate() (err error) {
	var (
		st    types.SolverType
		issue = func(format string, args ...interface{}) error {
			return fmt.Errorf("scenario %q: "+format, append([]interface{}{sc.Title}, args...)...)
		}
	)
	switch {
	case sc.Setup.Name == "":
		return issue("no setup named")
	case sc.Dimensions != 1 && sc.Dimensions != 2:
		return issue("dimensions must be 1 or 2, have %d", sc.Dimensions)
	case sc.CellsX < 1 || sc.CellsY < 1:
		return issue("need at least one cell in each direction, have %dx%d", sc.CellsX, sc.CellsY)
	case sc.Width <= 0 || sc.Height <= 0:
		return issue("domain extent must be positive, have %vx%v", sc.Width, sc.Height)
	case sc.CFL <= 0 || sc.CFL > 1:
		return issue("CFL must be in (0, 1], have %v", sc.CFL)
	case sc.EndTime <= 0:
		return issue("end time must be positive, have %v", sc.EndTime)
	case sc.WriteFrequency < 0 || sc.CheckpointFrequency < 0:
		return issue("output frequencies can't be negative")
	case sc.AMR != nil && sc.Dimensions != 2:
		return issue("adaptive refinement needs a 2D scenario")
	}
	if st, err = types.NewSolverType(sc.Solver); err != nil {
		return issue("%w", err)
	}
	if st == types.Solver_Roe && sc.Bathymetry {
		return issue("the Roe solver does not support bathymetry")
	}
	if _, err = sc.ReflectingSides(); err != nil {
		return issue("%w", err)
	}
	if !contains(OutputFormats, strings.ToLower(sc.OutputFormat)) {
		return issue("unknown output format %q, valid formats are %s",
			sc.OutputFormat, strings.Join(OutputFormats, ", "))
	}
	for _, s := range sc.Stations {
		if s.X < 0 || s.X > sc.Width || s.Y < 0 || (sc.Dimensions == 2 && s.Y > sc.Height) {
			return issue("station %s at (%v, %v) is outside of the domain", s.Name, s.X, s.Y)
		}
	}
	return
}

func (sc *Scenario) ReflectingSides() (reflect [types.NumSides]bool, err error) {
	var side types.Side
	for _, label := range sc.Reflect {
		if side, err = types.NewSide(label); err != nil {
			return
		}
		reflect[side] = true
	}
	return
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}

func (sc *Scenario) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", sc.Title)
	fmt.Printf("[%s]\t\t= Setup\n", sc.Setup.Name)
	keys := make([]string, 0, len(sc.Setup.Values))
	for k := range sc.Setup.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Setup[%s] = %v\n", key, sc.Setup.Values[key])
	}
	for _, role := range sortedKeys(sc.Setup.Files) {
		fmt.Printf("File[%s] = %s\n", role, sc.Setup.Files[role])
	}
	fmt.Printf("[%d]\t\t\t\t= Dimensions\n", sc.Dimensions)
	fmt.Printf("[%dx%d]\t\t\t= Cells\n", sc.CellsX, sc.CellsY)
	fmt.Printf("[%gx%g]\t\t= Domain\n", sc.Width, sc.Height)
	fmt.Printf("[%s]\t\t\t= Solver\n", sc.Solver)
	fmt.Printf("[%v]\t\t\t= Bathymetry\n", sc.Bathymetry)
	fmt.Printf("%v\t\t\t= Reflect\n", sc.Reflect)
	fmt.Printf("%8.5f\t\t= CFL\n", sc.CFL)
	fmt.Printf("%8.5f\t\t= EndTime\n", sc.EndTime)
	fmt.Printf("[%s] every %d steps\t= Output\n", sc.OutputFormat, sc.WriteFrequency)
	if len(sc.Stations) != 0 {
		fmt.Printf("[%d] every %gs\t\t= Stations\n", len(sc.Stations), sc.StationFrequency)
	}
	if sc.CheckpointFrequency > 0 {
		fmt.Printf("[%d]\t\t\t\t= Checkpoint Frequency\n", sc.CheckpointFrequency)
	}
	if a := sc.AMR; a != nil {
		fmt.Printf("[%d] levels, ratios %v, thresholds %v\t= AMR\n", a.MaxLevel, a.RefRatio, a.Thresholds)
	}
}

func sortedKeys(m map[string]string) (keys []string) {
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

// Marshal renders the scenario back to YAML, used to embed it into checkpoints
func (sc *Scenario) Marshal() (data []byte, err error) {
	if data, err = yaml.Marshal(sc); err != nil {
		err = fmt.Errorf("rendering scenario: %w", err)
	}
	return
}
