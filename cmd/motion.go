package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gotmd/internal/diagram"
	"github.com/alexiusacademia/gotmd/internal/motion"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	motionRows    int
	motionDiagram bool
)

var motionCmd = &cobra.Command{
	Use:   "motion [record]",
	Short: "Inspect a ground motion record",
	Long: `Load a ground motion record and report its sampling and peak
acceleration without running a simulation.

The record path defaults to input.path from the config.

Examples:
  gotmd motion elcentro.txt
  gotmd motion elcentro.txt --rows 20 --diagram`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMotion,
}

func init() {
	rootCmd.AddCommand(motionCmd)

	motionCmd.Flags().IntVar(&motionRows, "rows", 10, "Samples to preview (0 to skip)")
	motionCmd.Flags().BoolVar(&motionDiagram, "diagram", false, "Chart the record in the terminal")
}

func runMotion(cmd *cobra.Command, args []string) error {
	path := cfg.Input.Path
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no ground motion record: pass a path or set input.path")
	}

	rec, err := motion.LoadFromFile(path)
	if err != nil {
		return err
	}
	peak, at := rec.PeakAccel()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     GROUND MOTION RECORD")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Record:\t%s\n", rec.Name)
	fmt.Fprintf(w, "  Samples:\t%d\n", rec.Len())
	fmt.Fprintf(w, "  Time step (Δt):\t%.4f s", rec.Dt())
	if rec.IsUniform(1e-6) {
		fmt.Fprintln(w, " ✓ (uniform)")
	} else {
		fmt.Fprintln(w, " ⚠ (non-uniform, the first interval is used)")
	}
	fmt.Fprintf(w, "  Duration:\t%.2f s\n", rec.Duration())
	fmt.Fprintf(w, "  Peak ground acceleration:\t%.4f g (%.4f m/s²) at %.2f s\n", peak, peak*cfg.Gravity, at)
	w.Flush()
	fmt.Println()

	if motionRows > 0 {
		n := motionRows
		if n > rec.Len() {
			n = rec.Len()
		}
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "t (s)", "ag (g)", "ag (m/s²)"})
		for i, s := range rec.Samples[:n] {
			t.AppendRow(table.Row{
				i,
				fmt.Sprintf("%.3f", s.Time),
				fmt.Sprintf("%.5f", s.Accel),
				fmt.Sprintf("%.4f", s.Accel*cfg.Gravity),
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		fmt.Println()
	}

	if motionDiagram {
		fmt.Println(diagram.ASCIIChart(rec.Accelerations(1), "Ground acceleration (g)", 70, 10))
		fmt.Println()
	}

	return nil
}
