package diagram

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alexiusacademia/gotmd/internal/model"
	"github.com/alexiusacademia/gotmd/internal/motion"
	"github.com/alexiusacademia/gotmd/internal/newmark"
	"github.com/alexiusacademia/gotmd/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport(t *testing.T) (*report.Report, *report.Comparison) {
	t.Helper()
	s := model.Structure{Mass: 1000, Omega: 2 * math.Pi, Zeta: 0.02}
	d := model.Damper{MassRatio: 0.03, FrequencyRatio: 0.97, Zeta: 0.08}

	times := make([]float64, 400)
	accels := make([]float64, 400)
	for i := range times {
		times[i] = float64(i) * 0.01
		accels[i] = 0.1 * math.Sin(2*math.Pi*times[i])
	}
	rec, err := motion.NewRecord("sine", times, accels)
	require.NoError(t, err)

	hist, err := newmark.Integrate(model.TMDSystem(s, d), rec.Accelerations(9.81), rec.Dt(), newmark.AverageAcceleration)
	require.NoError(t, err)
	rep, err := report.Build(rec, hist, 9.81)
	require.NoError(t, err)

	bare, err := newmark.Integrate(model.BareSystem(s), rec.Accelerations(9.81), rec.Dt(), newmark.AverageAcceleration)
	require.NoError(t, err)
	cmp, err := report.Compare(rep, bare)
	require.NoError(t, err)
	return rep, cmp
}

func TestExportTimeHistory(t *testing.T) {
	rep, _ := testReport(t)
	dir := t.TempDir()

	for _, name := range []string{"history.png", "history.svg", "nested/history.pdf"} {
		path := filepath.Join(dir, name)
		require.NoError(t, ExportTimeHistory(rep, path), name)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	require.NoError(t, ExportTimeHistory(rep, filepath.Join(dir, "noext")))
	_, err := os.Stat(filepath.Join(dir, "noext.png"))
	assert.NoError(t, err)
}

func TestExportComparison(t *testing.T) {
	_, cmp := testReport(t)
	path := filepath.Join(t.TempDir(), "compare.png")
	require.NoError(t, ExportComparison(cmp, path))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestASCIIChart(t *testing.T) {
	y := make([]float64, 500)
	for i := range y {
		y[i] = math.Sin(float64(i) / 20)
	}
	y[250] = 3

	out := ASCIIChart(y, "floor", 60, 8)
	assert.Contains(t, out, "floor")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 8)
	assert.Empty(t, ASCIIChart(nil, "x", 10, 5))

	ds := downsample(y, 60)
	require.Len(t, ds, 60)
	assert.Contains(t, ds, 3.0)
}

func TestDrawSummaryBox(t *testing.T) {
	box := DrawSummaryBox("PEAK RESPONSE", []string{"x_s = 0.0123 m", "reduction ≈ 45%"})
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, 5)

	width := utf8.RuneCountInString(lines[0])
	for _, l := range lines {
		assert.Equal(t, width, utf8.RuneCountInString(l), l)
	}
}
