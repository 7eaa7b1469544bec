// plotstats renders the CSV produced by tools/arithbench (or any
// telemetry.CSVSink) as an interactive HTML line chart, one series per
// op/device pair, duration against input size.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type row struct {
	op         string
	device     string
	elements   int
	durationMs int64
}

func readStats(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, want := range []string{"op", "device", "elements", "duration_ms"} {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, want)
		}
	}

	out := make([]row, 0, len(records)-1)
	for _, rec := range records[1:] {
		elements, err := strconv.Atoi(rec[col["elements"]])
		if err != nil {
			return nil, err
		}
		durationMs, err := strconv.ParseInt(rec[col["duration_ms"]], 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, row{
			op:         rec[col["op"]],
			device:     rec[col["device"]],
			elements:   elements,
			durationMs: durationMs,
		})
	}
	return out, nil
}

// one series per op/device pair, points ordered by input size
func buildSeries(rows []row) (xLabels []string, series map[string][]opts.LineData) {
	sizes := map[int]struct{}{}
	for _, r := range rows {
		sizes[r.elements] = struct{}{}
	}
	sorted := make([]int, 0, len(sizes))
	for s := range sizes {
		sorted = append(sorted, s)
	}
	sort.Ints(sorted)
	index := make(map[int]int, len(sorted))
	for i, s := range sorted {
		index[s] = i
		xLabels = append(xLabels, strconv.Itoa(s))
	}

	series = map[string][]opts.LineData{}
	for _, r := range rows {
		name := r.op + " / " + r.device
		pts, ok := series[name]
		if !ok {
			pts = make([]opts.LineData, len(sorted))
			for i := range pts {
				pts[i] = opts.LineData{Value: nil}
			}
		}
		pts[index[r.elements]] = opts.LineData{Value: r.durationMs}
		series[name] = pts
	}
	return xLabels, series
}

func main() {
	inPath := flag.String("in", "arith_stats.csv", "input stats CSV")
	outPath := flag.String("out", "arith_stats.html", "output HTML file")
	flag.Parse()

	rows, err := readStats(*inPath)
	if err != nil {
		log.Fatalln(err)
	}

	xLabels, series := buildSeries(rows)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Arithmetic core timings",
			Subtitle: fmt.Sprintf("%d runs from %s", len(rows), *inPath),
		}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Arithmetic core timings", Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "elements"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "duration (ms)"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(xLabels)

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		line.AddSeries(name, series[name],
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	}

	page := components.NewPage().SetPageTitle("Arithmetic core timings")
	page.AddCharts(line)

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalln(err)
	}
	fmt.Println("wrote", *outPath)
}
