package cmd

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gotmd/internal/model"
	"github.com/alexiusacademia/gotmd/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag of c and its children back to its default and
// clears Changed, so one Execute does not leak into the next.
func resetFlags(t *testing.T, c *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue), f.Name)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(t, child)
	}
}

// execute runs the root command with args on fresh flags and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t, rootCmd)
	rootCmd.SetArgs(args)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		io.Copy(&buf, r)
		close(done)
	}()

	runErr := rootCmd.Execute()

	w.Close()
	os.Stdout = stdout
	<-done
	r.Close()
	return buf.String(), runErr
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func writePulse(t *testing.T) string {
	return writeFile(t, "pulse.txt", "time accel\n0 0.1\n0.01 0\n0.02 0\n0.03 0\n0.04 0\n0.05 0\n")
}

// writeResonant writes a 1 Hz sine record that drives the default structure at resonance
func writeResonant(t *testing.T) string {
	var sb strings.Builder
	sb.WriteString("time accel\n")
	for i := 0; i < 2000; i++ {
		tm := float64(i) * 0.01
		fmt.Fprintf(&sb, "%.2f %.6f\n", tm, 0.05*math.Sin(2*math.Pi*tm))
	}
	return writeFile(t, "resonant.txt", sb.String())
}

// line returns the first output line containing label
func line(out, label string) string {
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, label) {
			return l
		}
	}
	return ""
}

func TestSimulateCommand(t *testing.T) {
	in := writePulse(t)
	out := filepath.Join(t.TempDir(), "nested", "response.csv")

	stdout, err := execute(t, "simulate", "-i", in, "-o", out, "--compare", "--rows", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "DAMPER EFFECTIVENESS")
	assert.NotEmpty(t, runID)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7)
	assert.Equal(t, report.Columns, records[0])
}

func TestSimulateCommandFlagsDoNotLeak(t *testing.T) {
	in := writePulse(t)
	out := filepath.Join(t.TempDir(), "first.csv")

	_, err := execute(t, "simulate", "-i", in, "-o", out, "--compare")
	require.NoError(t, err)
	require.NoError(t, os.Remove(out))

	stdout, err := execute(t, "simulate", "-i", in)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "DAMPER EFFECTIVENESS")
	_, err = os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSimulateCommandNoExtension(t *testing.T) {
	out := filepath.Join(t.TempDir(), "response")

	_, err := execute(t, "simulate", "-i", writePulse(t), "-o", out)
	require.NoError(t, err)
	_, err = os.Stat(out + ".csv")
	assert.NoError(t, err)
}

func TestSimulateCommandErrors(t *testing.T) {
	_, err := execute(t, "simulate", "-i", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, "simulate")
	assert.ErrorContains(t, err, "no ground motion record")

	_, err = execute(t, "simulate", "-i", writeFile(t, "nan.txt", "t a\n0 0.1\n0.01 NaN\n0.02 0\n"))
	assert.ErrorContains(t, err, "non-finite")

	_, err = execute(t, "params", "--mu=-0.1")
	assert.Error(t, err)

	_, err = execute(t, "params", "--log-level", "verbose")
	assert.Error(t, err)
}

func TestFlagOverridesEnv(t *testing.T) {
	t.Setenv("GOTMD_DAMPER_MASS_RATIO", "0.07")

	_, err := execute(t, "params")
	require.NoError(t, err)
	assert.Equal(t, 0.07, cfg.Damper.MassRatio)

	stdout, err := execute(t, "params", "--mu", "0.02")
	require.NoError(t, err)
	assert.Equal(t, 0.02, cfg.Damper.MassRatio)
	assert.Contains(t, line(stdout, "Mass ratio (μ):"), "0.0200")
}

func TestTuneCommand(t *testing.T) {
	in := writeResonant(t)

	stdout, err := execute(t, "tune", "-i", in, "--from", "0.5", "--to", "1.5", "--steps", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "BEST FREQUENCY RATIO α = 1.0000")
	assert.Contains(t, line(stdout, "✓ best"), "1.0000")
	assert.Contains(t, line(stdout, "Damper damping (ζd):"), "0.0500")

	_, zetaOpt := model.DenHartog(0.03)
	stdout, err = execute(t, "tune", "-i", in, "--from", "0.9", "--to", "1.1", "--steps", "2", "--den-hartog")
	require.NoError(t, err)
	assert.Contains(t, line(stdout, "Damper damping (ζd):"), fmt.Sprintf("%.4f", zetaOpt))
}

func TestTuneCommandErrors(t *testing.T) {
	in := writePulse(t)

	cases := []struct {
		name string
		args []string
		msg  string
	}{
		{"no record", []string{"tune"}, "no ground motion record"},
		{"zero start", []string{"tune", "-i", in, "--from", "0"}, "invalid sweep range"},
		{"reversed range", []string{"tune", "-i", in, "--from", "1.2", "--to", "0.8"}, "invalid sweep range"},
		{"no steps", []string{"tune", "-i", in, "--steps", "0"}, "invalid number of steps"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			assert.ErrorContains(t, err, tc.msg)
		})
	}
}

func TestMotionCommand(t *testing.T) {
	in := writePulse(t)

	stdout, err := execute(t, "motion", in, "--rows", "2")
	require.NoError(t, err)
	assert.Contains(t, line(stdout, "Record:"), "pulse")
	assert.Contains(t, line(stdout, "Samples:"), "6")
	assert.Contains(t, line(stdout, "Time step"), "✓ (uniform)")

	// falls back to input.path
	t.Setenv("GOTMD_INPUT_PATH", in)
	stdout, err = execute(t, "motion", "--rows", "0")
	require.NoError(t, err)
	assert.Contains(t, line(stdout, "Record:"), "pulse")
}

func TestMotionCommandErrors(t *testing.T) {
	_, err := execute(t, "motion")
	assert.ErrorContains(t, err, "no ground motion record")

	_, err = execute(t, "motion", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, "motion", "a.txt", "b.txt")
	assert.Error(t, err)
}

func TestComparisonPlotName(t *testing.T) {
	assert.Equal(t, "out/plot_compare.png", comparisonPlotName("out/plot.png"))
	assert.Equal(t, "plot_compare", comparisonPlotName("plot"))
}

func TestTuningMark(t *testing.T) {
	assert.Equal(t, " ✓", tuningMark(0.98, 0.97))
	assert.Contains(t, tuningMark(1.2, 0.97), "⚠")
	assert.Equal(t, "", tuningMark(1, 0))
}
