package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gotsunami/InputParameters"
	"github.com/notargets/gotsunami/dam_break"
	"github.com/notargets/gotsunami/model_problems/Tsunami"
)

var (
	csvFile   string
	cells     = "50,100,200,400,800"
	solver    = "fwave"
	finalTime = 1.5
	CFL       = InputParameters.DefaultCFL
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file receiving the convergence study, printed instead when it exists and no cells are given")
	cellsPtr := flag.String("cells", cells, "comma separated resolutions of the study")
	solverPtr := flag.String("solver", solver, "Riemann solver: fwave or roe")
	finalTimePtr := flag.Float64("finalTime", finalTime, "end time of the dam break")
	CFLPtr := flag.Float64("CFL", CFL, "CFL number")
	flag.Parse()
	csvFile, cells, solver, finalTime, CFL = *csvFilePtr, *cellsPtr, *solverPtr, *finalTimePtr, *CFLPtr

	cellsGiven := false
	flag.Visit(func(f *flag.Flag) { cellsGiven = cellsGiven || f.Name == "cells" })
	if _, err := os.Stat(csvFile); csvFile != "" && err == nil && !cellsGiven {
		fmt.Printf("Input file: %v\n", csvFile)
		for _, cs := range readCSV(csvFile) {
			cs.Print()
		}
		return
	}
	var resolutions []int
	for _, txt := range strings.Split(cells, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(txt))
		if err != nil || n < 2 {
			fmt.Printf("invalid resolution %q\n", txt)
			flag.Usage()
			os.Exit(1)
		}
		resolutions = append(resolutions, n)
	}
	cs := NewConvergenceStudy("DamBreak1d", solver, CFL)
	for _, n := range resolutions {
		if err := cs.Run(n, finalTime); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	}
	cs.Print()
	if csvFile != "" {
		if err := cs.WriteCSV(csvFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	}
}

type ConvergenceStudy struct {
	title, solver   string
	numCells        []int
	CFL             float64
	hL1, hRMS, hMAX []float64
	huL1, huMAX     []float64
}

func NewConvergenceStudy(title, solver string, CFL float64) *ConvergenceStudy {
	return &ConvergenceStudy{
		title:  title,
		solver: solver,
		CFL:    CFL,
	}
}

func (cs *ConvergenceStudy) Add(numCells int, hL1, hRMS, hMAX, huL1, huMAX float64) {
	cs.numCells = append(cs.numCells, numCells)
	cs.hL1 = append(cs.hL1, hL1)
	cs.hRMS = append(cs.hRMS, hRMS)
	cs.hMAX = append(cs.hMAX, hMAX)
	cs.huL1 = append(cs.huL1, huL1)
	cs.huMAX = append(cs.huMAX, huMAX)
}

// Run solves the 10|5 dam break on n cells and adds its errors against the exact solution
func (cs *ConvergenceStudy) Run(n int, finalTime float64) (err error) {
	sc := &InputParameters.Scenario{
		Title:        fmt.Sprintf("%s %d", cs.title, n),
		Setup:        InputParameters.SetupParameters{Name: cs.title},
		Dimensions:   1,
		CellsX:       n,
		Width:        100,
		Solver:       cs.solver,
		CFL:          cs.CFL,
		EndTime:      finalTime,
		OutputFormat: "none",
	}
	sc.SetDefaults()
	var c *Tsunami.Tsunami
	if c, err = Tsunami.NewTsunami(sc, Tsunami.Options{Progress: true}); err != nil {
		return
	}
	if err = c.Run(); err != nil {
		return
	}
	var exact *dam_break.DamBreak
	if exact, err = dam_break.NewDamBreak(10, 5, 0, 0, 50); err != nil {
		return
	}
	var (
		h, hu            = c.Patch.GetHeight(), c.Patch.GetMomentumX()
		dx               = float64(c.Dx)
		l1, l2, mx       float64
		l1Hu, mxHu, norm float64
	)
	for i := 0; i < n; i++ {
		he, hue := exact.Sample((float64(i)+0.5)*dx, c.Time)
		e := math.Abs(float64(h[i]) - he)
		eHu := math.Abs(float64(hu[i]) - hue)
		l1 += e * dx
		l2 += e * e * dx
		mx = math.Max(mx, e)
		l1Hu += eHu * dx
		mxHu = math.Max(mxHu, eHu)
		norm += he * dx
	}
	cs.Add(n, l1/norm, math.Sqrt(l2/sc.Width), mx, l1Hu/norm, mxHu)
	return
}

// orders are the observed convergence rates between successive resolutions
func (cs *ConvergenceStudy) orders(errs []float64) (p []float64) {
	p = make([]float64, len(errs))
	for i := 1; i < len(errs); i++ {
		ratio := float64(cs.numCells[i]) / float64(cs.numCells[i-1])
		p[i] = math.Log(errs[i-1]/errs[i]) / math.Log(ratio)
	}
	return
}

func (cs *ConvergenceStudy) Print() {
	fmt.Printf("Title = %s, Solver = %s, CFL = %5.2f\n", cs.title, cs.solver, cs.CFL)
	fmt.Printf("%8s%12s%8s%12s%12s%12s%8s%12s\n", "cells", "hL1", "order", "hRMS", "hMAX", "huL1", "order", "huMAX")
	pH, pHu := cs.orders(cs.hL1), cs.orders(cs.huL1)
	for i := range cs.numCells {
		fmt.Printf("%8d%12.4e%8.3f%12.4e%12.4e%12.4e%8.3f%12.4e\n",
			cs.numCells[i], cs.hL1[i], pH[i], cs.hRMS[i], cs.hMAX[i], cs.huL1[i], pHu[i], cs.huMAX[i])
	}
}

func (cs *ConvergenceStudy) WriteCSV(csvFile string) (err error) {
	var f *os.File
	if f, err = os.Create(csvFile); err != nil {
		return
	}
	w := csv.NewWriter(f)
	w.Write([]string{"title", "cells", "solver", "CFL", "hL1", "hRMS", "hMAX", "huL1", "huMAX"})
	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i, n := range cs.numCells {
		w.Write([]string{cs.title, strconv.Itoa(n), cs.solver, format(cs.CFL),
			format(cs.hL1[i]), format(cs.hRMS[i]), format(cs.hMAX[i]), format(cs.huL1[i]), format(cs.huMAX[i])})
	}
	w.Flush()
	if err = w.Error(); err != nil {
		f.Close()
		return
	}
	return f.Close()
}

func readCSV(csvFile string) (studies map[string]*ConvergenceStudy) {
	var (
		records                      [][]string
		err                          error
		f                            *os.File
		ok                           bool
		cs                           *ConvergenceStudy
		cfl                          float64
		hL1, hRMS, hMAX, huL1, huMAX float64
	)
	studies = make(map[string]*ConvergenceStudy)
	if f, err = os.Open(csvFile); err != nil {
		panic(err)
	}
	defer f.Close()
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		panic(err)
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		title, ntxt, solverTxt, cfltxt := rec[0], rec[1], rec[2], rec[3]
		n, _ := strconv.Atoi(ntxt)
		_, _ = fmt.Sscanf(cfltxt, "%f", &cfl)
		combTitle := title + solverTxt
		if cs, ok = studies[combTitle]; !ok {
			cs = NewConvergenceStudy(title, solverTxt, cfl)
			studies[combTitle] = cs
		}
		_, _ = fmt.Sscanf(rec[4], "%g", &hL1)
		_, _ = fmt.Sscanf(rec[5], "%g", &hRMS)
		_, _ = fmt.Sscanf(rec[6], "%g", &hMAX)
		_, _ = fmt.Sscanf(rec[7], "%g", &huL1)
		_, _ = fmt.Sscanf(rec[8], "%g", &huMAX)
		cs.Add(n, hL1, hRMS, hMAX, huL1, huMAX)
	}
	return
}
