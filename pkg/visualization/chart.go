package visualization

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
)

// SweepPoint is the score of one cutoff radius
type SweepPoint struct {
	Cutoff  float64
	LowMSE  float64
	HighMSE float64
}

// SweepChart plots low-pass and high-pass MSE against cutoff radius.
// Points must be sorted by cutoff and span at least two distinct radii.
func SweepChart(points []SweepPoint, title string, w io.Writer) error {
	if len(points) < 2 {
		return errors.New("not enough sweep points to chart")
	}

	xvalues := make([]float64, len(points))
	low := make([]float64, len(points))
	high := make([]float64, len(points))
	for i, p := range points {
		xvalues[i] = p.Cutoff
		low[i] = p.LowMSE
		high[i] = p.HighMSE
	}

	xmin, xmax := floats.Min(xvalues), floats.Max(xvalues)
	if xmin == xmax {
		return fmt.Errorf("sweep spans a single cutoff %v", xmin)
	}
	ymax := max(floats.Max(low), floats.Max(high))
	if ymax == 0 {
		ymax = 1
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			Name:  "Cutoff radius",
			Range: &chart.ContinuousRange{Min: xmin, Max: xmax},
		},
		YAxis: chart.YAxis{
			Name:  "MSE",
			Range: &chart.ContinuousRange{Min: 0, Max: ymax * 1.05},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Low-pass",
				Style:   chart.Style{StrokeColor: chart.ColorBlue},
				XValues: xvalues,
				YValues: low,
			},
			chart.ContinuousSeries{
				Name:    "High-pass",
				Style:   chart.Style{StrokeColor: chart.ColorRed},
				XValues: xvalues,
				YValues: high,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// SaveSweepChart renders the sweep chart to a PNG file
func SaveSweepChart(points []SweepPoint, title, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer file.Close()

	if err := SweepChart(points, title, file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return file.Close()
}
