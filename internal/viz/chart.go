package viz

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
)

// RenderComparison draws the distance modulus curves of two models
// over a shared redshift grid and writes the chart to path. A .svg
// extension selects the vector renderer, anything else gets a PNG.
// The first curve is drawn solid red, the second dashed blue.
func RenderComparison(path string, z, muA, muB []float64, labelA, labelB, title string) error {
	if len(z) < 2 || len(muA) != len(z) || len(muB) != len(z) {
		return fmt.Errorf("viz: comparison needs matching curves with at least 2 points")
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 600,
		XAxis: chart.XAxis{
			Name: "Redshift z",
		},
		YAxis: chart.YAxis{
			Name: "Distance Modulus μ",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    labelA,
				XValues: z,
				YValues: muA,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2.5,
				},
			},
			chart.ContinuousSeries{
				Name:    labelB,
				XValues: z,
				YValues: muB,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2.5,
					StrokeDashArray: []float64{
						5.0, 5.0,
					},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	renderer := chart.PNG
	if filepath.Ext(path) == ".svg" {
		renderer = chart.SVG
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(renderer, file)
}
