package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gotmd/internal/diagram"
	"github.com/alexiusacademia/gotmd/internal/motion"
	"github.com/alexiusacademia/gotmd/internal/report"
	"github.com/alexiusacademia/gotmd/internal/simulation"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	simInput   string
	simOutput  string
	simPlot    string
	simCompare bool
	simDiagram bool
	simRows    int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Integrate the seismic response of a structure with a tuned mass damper",
	Long: `Run a ground motion record through a single-storey structure fitted
with a tuned mass damper (TMD) using the Newmark-beta method.

The record is a whitespace separated text file with a one-line header
followed by time (s) and ground acceleration (g) columns.

Stiffness and damping are derived from the modal properties:
  - k = m·ω²
  - c = 2·ζ·m·ω
  - md = μ·ms, ωd = α·ωs

The response table is written by extension:
  .csv      comma separated values
  .parquet  snappy compressed parquet
  .db       SQLite database (runs + samples tables)

Examples:
  # Simulate with the default structure and damper
  gotmd simulate --input elcentro.txt --output results/response.csv

  # A stiffer structure with a heavier damper, with plots
  gotmd simulate -i elcentro.txt -o out.parquet --omega 12.57 --mu 0.05 --plot out.png

  # Compare against the bare structure and chart it in the terminal
  gotmd simulate -i elcentro.txt --compare --diagram`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	// I/O flags
	simulateCmd.Flags().StringVarP(&simInput, "input", "i", "", "Ground motion record (time, accel in g)")
	simulateCmd.Flags().StringVarP(&simOutput, "output", "o", "", "Response table (.csv, .parquet or .db)")
	simulateCmd.Flags().StringVarP(&simPlot, "plot", "p", "", "Time-history plot (.png, .svg or .pdf)")

	addModelFlags(simulateCmd)

	// Report flags
	simulateCmd.Flags().BoolVar(&simCompare, "compare", false, "Also run the structure without the damper")
	simulateCmd.Flags().BoolVar(&simDiagram, "diagram", false, "Chart the floor displacement in the terminal")
	simulateCmd.Flags().IntVar(&simRows, "rows", 10, "Response rows to preview (0 to skip)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("input") {
		cfg.Input.Path = simInput
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Path = simOutput
	}
	if cmd.Flags().Changed("plot") {
		cfg.Output.Plot = simPlot
	}
	if err := applyModelFlags(cmd.Flags(), cfg); err != nil {
		return err
	}
	if cfg.Input.Path == "" {
		return errors.New("no ground motion record: pass --input or set input.path")
	}

	rec, err := motion.LoadFromFile(cfg.Input.Path)
	if err != nil {
		return err
	}
	logger.Info("loaded ground motion",
		zap.String("record", rec.Name),
		zap.Int("samples", rec.Len()),
		zap.Float64("dt", rec.Dt()),
	)
	if !rec.IsUniform(1e-6) {
		logger.Warn("record time step is not uniform, integrating with the first interval",
			zap.Float64("dt", rec.Dt()))
	}

	res, err := simulation.Run(rec, simulation.Params{
		Structure: cfg.StructureParams(),
		Damper:    cfg.DamperParams(),
		Newmark:   cfg.NewmarkParams(),
		Gravity:   cfg.Gravity,
		Compare:   simCompare,
	})
	if err != nil {
		return err
	}
	logger.Debug("integration complete", zap.Int("steps", res.History.Len()))

	printSimulation(res)

	if cfg.Output.Path != "" {
		saved, err := res.Report.Save(cmd.Context(), cfg.Output.Path, runID)
		if err != nil {
			return fmt.Errorf("save response: %w", err)
		}
		logger.Info("response saved", zap.String("path", saved))
	}

	if cfg.Output.Plot != "" {
		if err := diagram.ExportTimeHistory(res.Report, cfg.Output.Plot); err != nil {
			return fmt.Errorf("plot response: %w", err)
		}
		logger.Info("time-history plot saved", zap.String("path", cfg.Output.Plot))

		if res.Comparison != nil {
			name := comparisonPlotName(cfg.Output.Plot)
			if err := diagram.ExportComparison(res.Comparison, name); err != nil {
				return fmt.Errorf("plot comparison: %w", err)
			}
			logger.Info("comparison plot saved", zap.String("path", name))
		}
	}

	return nil
}

func printSimulation(res *simulation.Result) {
	rep := res.Report
	c := res.Coefficients

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     TUNED MASS DAMPER SEISMIC RESPONSE - NEWMARK-BETA")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("GROUND MOTION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Record:\t%s\n", rep.Name)
	fmt.Fprintf(w, "  Samples:\t%d\n", len(rep.Rows))
	fmt.Fprintf(w, "  Time step (Δt):\t%.4f s\n", rep.Dt)
	fmt.Fprintf(w, "  Duration:\t%.2f s\n", rep.Rows[len(rep.Rows)-1].Time-rep.Rows[0].Time)
	fmt.Fprintf(w, "  Peak ground acceleration:\t%.4f m/s² (%.4f g)\n",
		rep.Summary.MaxGroundAccel, rep.Summary.MaxGroundAccel/cfg.Gravity)
	w.Flush()
	fmt.Println()

	fmt.Println("SYSTEM PROPERTIES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	printCoefficients(c)
	fmt.Println()

	fmt.Println("INTEGRATION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	p := cfg.NewmarkParams()
	fmt.Fprintf(w, "  γ, β:\t%.4f, %.4f", p.Gamma, p.Beta)
	if p.IsUnconditionallyStable() {
		fmt.Fprintf(w, " ✓ (unconditionally stable)")
	} else {
		fmt.Fprintf(w, " ⚠ (conditionally stable)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Steps:\t%d\n", res.History.Len())
	w.Flush()
	fmt.Println()

	if simRows > 0 {
		fmt.Println("RESPONSE (first rows):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		printRows(rep.Rows, simRows)
		fmt.Println()
	}

	s := rep.Summary
	fmt.Print(diagram.DrawSummaryBox("PEAK RESPONSE", []string{
		fmt.Sprintf("Floor displacement:     %.6f m at %.2f s", s.MaxFloorDisp, s.PeakFloorDispTime),
		fmt.Sprintf("Floor acceleration:     %.4f m/s²", s.MaxFloorAccel),
		fmt.Sprintf("Damper stroke:          %.6f m", s.MaxDamperRelDisp),
		fmt.Sprintf("Damper acceleration:    %.4f m/s²", s.MaxDamperAbsAccel),
		fmt.Sprintf("Dominant frequency:     %.3f Hz", s.DominantFrequencyHz),
	}))
	fmt.Println()

	if res.Comparison != nil {
		printComparison(res.Comparison)
	}

	if simDiagram {
		disp, _ := rep.Column("floor_disp")
		fmt.Println(diagram.ASCIIChart(disp, "Floor displacement (m)", 70, 12))
		fmt.Println()
		if res.Comparison != nil {
			fmt.Println(diagram.ASCIIChart(res.Comparison.BareFloorDisp, "Floor displacement without damper (m)", 70, 12))
			fmt.Println()
		}
	}
}

func printRows(rows []report.Row, n int) {
	if n > len(rows) {
		n = len(rows)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"t (s)", "ag (m/s²)", "xs (m)", "ẍs,abs (m/s²)", "xr (m)", "ẍd,abs (m/s²)"})
	for _, r := range rows[:n] {
		t.AppendRow(table.Row{
			fmt.Sprintf("%.3f", r.Time),
			fmt.Sprintf("%.4f", r.GroundAccel),
			fmt.Sprintf("%.6f", r.FloorDisp),
			fmt.Sprintf("%.4f", r.FloorAbsAccel),
			fmt.Sprintf("%.6f", r.DamperRelDisp),
			fmt.Sprintf("%.4f", r.DamperAbsAccel),
		})
	}
	if n < len(rows) {
		t.AppendFooter(table.Row{fmt.Sprintf("%d more", len(rows)-n)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func printComparison(cmp *report.Comparison) {
	fmt.Println("DAMPER EFFECTIVENESS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  \tWithout TMD\tWith TMD\tReduction")
	fmt.Fprintf(w, "  Peak floor displacement:\t%.6f m\t%.6f m\t%.1f%%\n",
		cmp.PeakDispBare, cmp.PeakDisp, 100*cmp.DispReduction)
	fmt.Fprintf(w, "  Peak floor acceleration:\t%.4f m/s²\t%.4f m/s²\t%.1f%%\n",
		cmp.PeakAccelBare, cmp.PeakAccel, 100*cmp.AccelReduction)
	w.Flush()
	fmt.Println()
}

// comparisonPlotName turns out.png into out_compare.png
func comparisonPlotName(plot string) string {
	ext := filepath.Ext(plot)
	return strings.TrimSuffix(plot, ext) + "_compare" + ext
}
