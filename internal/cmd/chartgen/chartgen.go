// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Chartgen renders the results of BenchmarkThroughput as SVG charts in a
// "charts" directory. It reads benchmark output from the files named on the
// command line, or from standard input:
//
//	go test -run '^$' -bench Throughput -count 10 . > bench.txt
//	cd internal/cmd/chartgen && go run . ../../../bench.txt
package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"slices"
	"strconv"

	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchmath"
	"golang.org/x/perf/benchproc"
	"golang.org/x/perf/benchunit"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// referenceImpl is the implementation speedups are measured against.
const referenceImpl = "mutex"

type ImplKey struct{ benchproc.Key }
type PairsKey struct{ benchproc.Key }

type Data struct {
	Sample  benchmath.Sample
	Summary benchmath.Summary
}

type series struct {
	Label  string
	Points plotter.XYs
	Errors plotter.YErrors
}

// errorPoints pairs a series' points with its error bars for
// plotter.NewYErrorBars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

type chart struct {
	Title        string
	XAxisLabel   string
	YAxisLabel   string
	Pairs        []int
	Series       []series
	FileBasename string
}

func setupPlot(c *chart) *plot.Plot {
	p := plot.New()

	p.Title.Text = c.Title
	p.X.Label.Text = c.XAxisLabel
	p.Y.Label.Text = c.YAxisLabel

	gray := color.Gray{128}
	p.Title.TextStyle.Color = gray
	p.X.Color = gray
	p.Y.Color = gray
	p.X.Label.TextStyle.Color = gray
	p.Y.Label.TextStyle.Color = gray
	p.X.Tick.Color = gray
	p.Y.Tick.Color = gray
	p.X.Tick.Label.Color = gray
	p.Y.Tick.Label.Color = gray
	p.Legend.TextStyle.Color = gray

	p.X.Scale = plot.LogScale{}
	ticks := make([]plot.Tick, len(c.Pairs))
	for i, n := range c.Pairs {
		ticks[i] = plot.Tick{Value: float64(n), Label: strconv.Itoa(n)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = 1 * vg.Millimeter
	p.BackgroundColor = color.Transparent
	return p
}

func plotLines(c *chart) error {
	p := setupPlot(c)

	// Qualitative brewer palettes start at three colors.
	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Dark2", max(3, len(c.Series)))
	if err != nil {
		return err
	}
	colors := palette.Colors()

	for i, s := range c.Series {
		line, points, err := plotter.NewLinePoints(s.Points)
		if err != nil {
			return err
		}
		line.Color = colors[i]
		points.Color = colors[i]

		bars, err := plotter.NewYErrorBars(errorPoints{s.Points, s.Errors})
		if err != nil {
			return err
		}
		bars.Color = gray(colors[i])

		p.Add(line, points, bars)
		p.Legend.Add(s.Label, line, points)
	}
	return savePlot(c, p)
}

// gray blends c halfway towards gray for drawing error bars.
func gray(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	mix := func(v uint32) uint8 { return uint8((v>>8 + 128) / 2) }
	return color.RGBA{mix(r), mix(g), mix(b), uint8(a >> 8)}
}

func savePlot(c *chart, p *plot.Plot) error {
	if err := os.MkdirAll("charts", 0755); err != nil {
		return err
	}
	return p.Save(9*vg.Inch, 6*vg.Inch, "charts/"+c.FileBasename+".svg")
}

func main() {
	var pp benchproc.ProjectionParser
	implP, err := pp.Parse("/impl", nil)
	if err != nil {
		log.Fatal(err)
	}
	pairsP, err := pp.Parse("/pairs", nil)
	if err != nil {
		log.Fatal(err)
	}
	residueP := pp.Residue()

	dataByImplPairsUnit := make(map[ImplKey]map[PairsKey]map[string]*Data)
	var implKeys []ImplKey
	pairsByKey := make(map[PairsKey]int)
	var residues []benchproc.Key

	benchFiles := &benchfmt.Files{
		Paths:       os.Args[1:],
		AllowStdin:  true,
		AllowLabels: true,
	}
	for benchFiles.Scan() {
		var res *benchfmt.Result
		switch rec := benchFiles.Result(); rec := rec.(type) {
		case *benchfmt.Result:
			res = rec
		case *benchfmt.SyntaxError:
			log.Print(rec)
			continue
		default:
			continue
		}

		implKey := ImplKey{implP.Project(res)}
		dataByPairsUnit, ok := dataByImplPairsUnit[implKey]
		if !ok {
			dataByPairsUnit = make(map[PairsKey]map[string]*Data)
			dataByImplPairsUnit[implKey] = dataByPairsUnit
			implKeys = append(implKeys, implKey)
		}

		pairsKey := PairsKey{pairsP.Project(res)}
		if _, ok := pairsByKey[pairsKey]; !ok {
			s := pairsKey.Get(pairsP.Fields()[0])
			n, err := strconv.Atoi(s)
			if err != nil {
				log.Fatalf("Error parsing pair count %q: %v", s, err)
			}
			pairsByKey[pairsKey] = n
		}
		dataByUnit, ok := dataByPairsUnit[pairsKey]
		if !ok {
			dataByUnit = make(map[string]*Data)
			dataByPairsUnit[pairsKey] = dataByUnit
		}

		for _, v := range res.Values {
			data := dataByUnit[v.Unit]
			if data == nil {
				data = &Data{}
				dataByUnit[v.Unit] = data
			}
			data.Sample.Values = append(data.Sample.Values, v.Value)
		}
		residues = append(residues, residueP.Project(res))
	}
	if err := benchFiles.Err(); err != nil {
		log.Fatalf("Error reading benchmark files: %v", err)
	}
	if len(implKeys) == 0 {
		log.Fatal("no BenchmarkThroughput results found")
	}

	if nonsingular := benchproc.NonSingularFields(residues); len(nonsingular) > 0 {
		fmt.Printf("warning: results vary in %s\n", nonsingular)
	}

	pairsKeys := make([]PairsKey, 0, len(pairsByKey))
	for k := range pairsByKey {
		pairsKeys = append(pairsKeys, k)
	}
	slices.SortFunc(pairsKeys, func(a, b PairsKey) int {
		return pairsByKey[a] - pairsByKey[b]
	})
	pairs := make([]int, len(pairsKeys))
	for i, k := range pairsKeys {
		pairs[i] = pairsByKey[k]
	}

	confidence := 0.95
	thresholds := benchmath.DefaultThresholds
	for _, dataByPairsUnit := range dataByImplPairsUnit {
		for _, dataByUnit := range dataByPairsUnit {
			for _, data := range dataByUnit {
				data.Sample = *benchmath.NewSample(data.Sample.Values, &thresholds)
				data.Summary = benchmath.AssumeNothing.Summary(&data.Sample, confidence)
				for _, w := range data.Summary.Warnings {
					if w.Error() != "all samples are equal" {
						log.Printf("summary warning: %v", w)
					}
				}
			}
		}
	}

	var referenceKey *ImplKey
	for i, k := range implKeys {
		if k.Get(implP.Fields()[0]) == referenceImpl {
			referenceKey = &implKeys[i]
		}
	}

	throughputChart := chart{
		Title:        "Push/Pop Throughput",
		XAxisLabel:   "Producer/Consumer Pairs",
		YAxisLabel:   "Pops / Second",
		Pairs:        pairs,
		FileBasename: "throughput",
	}
	speedupChart := chart{
		Title:        "Throughput vs. Mutex Stack",
		XAxisLabel:   "Producer/Consumer Pairs",
		YAxisLabel:   "Speedup",
		Pairs:        pairs,
		FileBasename: "speedup",
	}
	allocationsChart := chart{
		Title:        "Allocations Per Pop",
		XAxisLabel:   "Producer/Consumer Pairs",
		YAxisLabel:   "Allocations / Op",
		Pairs:        pairs,
		FileBasename: "allocations",
	}

	for _, implKey := range implKeys {
		label := implKey.Get(implP.Fields()[0])
		throughput := series{Label: label}
		speedup := series{Label: label}
		allocations := series{Label: label}

		for _, pairsKey := range pairsKeys {
			x := float64(pairsByKey[pairsKey])
			dataByUnit := dataByImplPairsUnit[implKey][pairsKey]

			if data := dataByUnit["completed/s"]; data != nil {
				s := &data.Summary
				throughput.add(x, s)
				log.Printf("%s/pairs=%v: %s pops/s", label, x, formatSummary(s, benchunit.Decimal))

				if referenceKey != nil {
					if ref := dataByImplPairsUnit[*referenceKey][pairsKey]["completed/s"]; ref != nil {
						speedup.add(x, ratio(s, &ref.Summary))
					}
				}
			}
			if data := dataByUnit["allocs/op"]; data != nil {
				allocations.add(x, &data.Summary)
			}
		}

		throughputChart.Series = append(throughputChart.Series, throughput)
		speedupChart.Series = append(speedupChart.Series, speedup)
		allocationsChart.Series = append(allocationsChart.Series, allocations)
	}

	for _, c := range []*chart{&throughputChart, &speedupChart, &allocationsChart} {
		if err := plotLines(c); err != nil {
			log.Fatalf("Error creating chart %s: %v", c.FileBasename, err)
		}
	}
	fmt.Println("Charts generated successfully in the 'charts' directory.")
}

func (s *series) add(x float64, summary *benchmath.Summary) {
	s.Points = append(s.Points, plotter.XY{X: x, Y: summary.Center})
	s.Errors = append(s.Errors, struct{ Low, High float64 }{
		Low:  summary.Center - summary.Lo,
		High: summary.Hi - summary.Center,
	})
}

// ratio divides s by ref, combining their relative uncertainties.
func ratio(s, ref *benchmath.Summary) *benchmath.Summary {
	y := s.Center / ref.Center
	plus := s.Hi - s.Center
	minus := s.Center - s.Lo
	refPlus := ref.Hi - ref.Center
	refMinus := ref.Center - ref.Lo
	spread := y * math.Sqrt((plus*minus)/(s.Center*s.Center)+
		(refPlus*refMinus)/(ref.Center*ref.Center))
	return &benchmath.Summary{
		Center: y,
		Hi:     y + spread,
		Lo:     y - spread,
	}
}

func formatRatio(n, d float64) string {
	switch {
	case d == 0:
		if n == 0 {
			return "0%"
		}
		return fmt.Sprintf("%.2g", n)
	case math.Abs(n/d) < 1:
		return fmt.Sprintf("%.2g%%", math.Round(100*n/d))
	default:
		return fmt.Sprintf("%.2gx", n/d)
	}
}

func formatSummary(s *benchmath.Summary, class benchunit.Class) string {
	center := benchunit.Scale(s.Center, class)
	plus := formatRatio(s.Hi-s.Center, s.Center)
	minus := formatRatio(s.Center-s.Lo, s.Center)
	if plus == minus {
		return fmt.Sprintf("%s ±%s", center, plus)
	}
	return fmt.Sprintf("%s +%s -%s", center, plus, minus)
}
