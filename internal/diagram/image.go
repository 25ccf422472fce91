package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gotmd/internal/report"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	groundColor    = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	floorColor     = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	damperColor    = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	bareFloorColor = color.RGBA{R: 200, G: 0, B: 0, A: 255}
)

// Series is a named time series for plotting
type Series struct {
	Label string
	Y     []float64
	Color color.Color
}

// ExportTimeHistory exports ground acceleration, floor displacement and damper
// stroke as three stacked plots in one image file
func ExportTimeHistory(rep *report.Report, filename string) error {
	time, _ := rep.Column("time")
	ground, _ := rep.Column("ground_accel")
	floor, _ := rep.Column("floor_disp")
	stroke, _ := rep.Column("damper_rel_disp")

	panels := []struct {
		title  string
		ylabel string
		series []Series
	}{
		{"Ground Acceleration", "a_g (m/s²)", []Series{{Label: "ground", Y: ground, Color: groundColor}}},
		{"Floor Displacement", "x_s (m)", []Series{{Label: "floor", Y: floor, Color: floorColor}}},
		{"Damper Stroke", "x_r (m)", []Series{{Label: "damper", Y: stroke, Color: damperColor}}},
	}

	plots := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		pl, err := newLinePlot(p.title, "Time (s)", p.ylabel, time, p.series)
		if err != nil {
			return err
		}
		plots[i] = []*plot.Plot{pl}
	}

	return saveTiled(plots, 8*vg.Inch, 9*vg.Inch, filename)
}

// ExportComparison exports the floor displacement with and without the damper
func ExportComparison(cmp *report.Comparison, filename string) error {
	p, err := newLinePlot(
		fmt.Sprintf("Floor Displacement (peak reduction %.1f%%)", cmp.DispReduction*100),
		"Time (s)", "x_s (m)", cmp.Time,
		[]Series{
			{Label: "without TMD", Y: cmp.BareFloorDisp, Color: bareFloorColor},
			{Label: "with TMD", Y: cmp.FloorDisp, Color: floorColor},
		},
	)
	if err != nil {
		return err
	}

	filename = withExtension(filename)
	ensureDir(filename)
	return p.Save(8*vg.Inch, 5*vg.Inch, filename)
}

func newLinePlot(title, xlabel, ylabel string, x []float64, series []Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	for _, s := range series {
		if len(s.Y) != len(x) {
			return nil, fmt.Errorf("series %q has %d points, expected %d", s.Label, len(s.Y), len(x))
		}
		pts := make(plotter.XYs, len(x))
		for i := range x {
			pts[i] = plotter.XY{X: x[i], Y: s.Y[i]}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1)
		line.LineStyle.Color = s.Color
		p.Add(line)
		if len(series) > 1 {
			p.Legend.Add(s.Label, line)
		}
	}
	p.Legend.Top = true

	return p, nil
}

// saveTiled draws a column of plots onto a single canvas
func saveTiled(plots [][]*plot.Plot, width, height vg.Length, filename string) error {
	if len(plots) == 0 {
		return fmt.Errorf("nothing to plot")
	}

	filename = withExtension(filename)
	format := strings.TrimPrefix(filepath.Ext(filename), ".")
	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return err
	}

	t := draw.Tiles{
		Rows: len(plots),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 2 * vg.Millimeter,
	}
	canvases := plot.Align(plots, t, draw.New(c))
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}

	ensureDir(filename)
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// withExtension appends .png when the file name has no image extension
func withExtension(filename string) string {
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".tif", ".tiff":
		return filename
	default:
		return filename + ".png"
	}
}

// ensureDir creates the parent directory of filename if needed
func ensureDir(filename string) {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}
}
