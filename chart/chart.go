// Package chart renders the experiment's comparison chart: the value of
// the initial stake invested in the portfolio versus the same stake
// invested in the benchmark index.
package chart

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/etnz/microcap"
)

// Comparison describes the two series to plot, both rebased to the same
// initial stake.
type Comparison struct {
	Title         string
	PortfolioName string
	BenchmarkName string
	Portfolio     []microcap.EquityPoint
	Benchmark     []microcap.EquityPoint
}

// Render draws the comparison as a PNG line chart and returns the raw
// bytes. Each series needs at least 2 points.
func Render(c Comparison) ([]byte, error) {
	if len(c.Portfolio) < 2 {
		return nil, fmt.Errorf("need at least 2 portfolio points, got %d", len(c.Portfolio))
	}
	if len(c.Benchmark) < 2 {
		return nil, fmt.Errorf("need at least 2 benchmark points, got %d", len(c.Benchmark))
	}

	portfolioSeries := chart.TimeSeries{
		Name: c.PortfolioName,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue
			StrokeWidth: 2.5,
		},
	}
	portfolioSeries.XValues, portfolioSeries.YValues = split(c.Portfolio)

	benchmarkSeries := chart.TimeSeries{
		Name: c.BenchmarkName,
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("f97316"), // orange
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
	}
	benchmarkSeries.XValues, benchmarkSeries.YValues = split(c.Benchmark)

	graph := chart.Chart{
		Title:  c.Title,
		Width:  900,
		Height: 500,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 02")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{portfolioSeries, benchmarkSeries},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func split(points []microcap.EquityPoint) ([]time.Time, []float64) {
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Date.Time()
		ys[i] = p.Equity.AsFloat()
	}
	return xs, ys
}
