package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gotmd/internal/model"
	"github.com/alexiusacademia/gotmd/internal/motion"
	"github.com/alexiusacademia/gotmd/internal/simulation"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	tuneInput     string
	tuneFrom      float64
	tuneTo        float64
	tuneSteps     int
	tuneDenHartog bool
)

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Sweep the damper frequency ratio against a ground motion record",
	Long: `Run the same ground motion through the structure for a range of
damper frequency ratios (α = ωd/ωs) and report the peak response of
each, marking the ratio with the smallest peak floor displacement.

The Den Hartog optimum for the chosen mass ratio is shown for
reference. With --den-hartog the damper damping ratio is set to the
Den Hartog optimum before sweeping.

Examples:
  gotmd tune -i elcentro.txt
  gotmd tune -i elcentro.txt --mu 0.05 --from 0.85 --to 1.05 --steps 21 --den-hartog`,
	RunE: runTune,
}

func init() {
	rootCmd.AddCommand(tuneCmd)

	tuneCmd.Flags().StringVarP(&tuneInput, "input", "i", "", "Ground motion record (time, accel in g)")
	addModelFlags(tuneCmd)

	// Sweep flags
	tuneCmd.Flags().Float64Var(&tuneFrom, "from", 0.8, "Lowest frequency ratio")
	tuneCmd.Flags().Float64Var(&tuneTo, "to", 1.2, "Highest frequency ratio")
	tuneCmd.Flags().IntVar(&tuneSteps, "steps", 9, "Number of ratios to try")
	tuneCmd.Flags().BoolVar(&tuneDenHartog, "den-hartog", false, "Use the Den Hartog optimum damper damping ratio")
}

func runTune(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("input") {
		cfg.Input.Path = tuneInput
	}
	if err := applyModelFlags(cmd.Flags(), cfg); err != nil {
		return err
	}
	if cfg.Input.Path == "" {
		return errors.New("no ground motion record: pass --input or set input.path")
	}
	if tuneFrom <= 0 || tuneTo < tuneFrom {
		return fmt.Errorf("invalid sweep range %g..%g", tuneFrom, tuneTo)
	}
	if tuneSteps < 1 {
		return fmt.Errorf("invalid number of steps: %d", tuneSteps)
	}

	rec, err := motion.LoadFromFile(cfg.Input.Path)
	if err != nil {
		return err
	}

	alphaOpt, zetaOpt := model.DenHartog(cfg.Damper.MassRatio)
	p := simulation.Params{
		Structure: cfg.StructureParams(),
		Damper:    cfg.DamperParams(),
		Newmark:   cfg.NewmarkParams(),
		Gravity:   cfg.Gravity,
	}
	if tuneDenHartog {
		p.Damper.Zeta = zetaOpt
	}

	ratios := simulation.Ratios(tuneFrom, tuneTo, tuneSteps)
	logger.Info("sweeping frequency ratio",
		zap.String("record", rec.Name),
		zap.Float64("from", tuneFrom),
		zap.Float64("to", tuneTo),
		zap.Int("steps", len(ratios)),
	)
	points, err := simulation.Sweep(rec, p, ratios)
	if err != nil {
		return err
	}
	best := simulation.Best(points)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     TUNED MASS DAMPER FREQUENCY SWEEP")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Record:\t%s (%d samples)\n", rec.Name, rec.Len())
	fmt.Fprintf(w, "  Structure frequency (ωs):\t%.4f rad/s\n", p.Structure.Omega)
	fmt.Fprintf(w, "  Mass ratio (μ):\t%.4f\n", p.Damper.MassRatio)
	fmt.Fprintf(w, "  Damper damping (ζd):\t%.4f\n", p.Damper.Zeta)
	fmt.Fprintf(w, "  Den Hartog α_opt, ζd_opt:\t%.4f, %.4f\n", alphaOpt, zetaOpt)
	w.Flush()
	fmt.Println()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"α", "ωd (rad/s)", "xs,max (m)", "ẍs,abs,max (m/s²)", "xr,max (m)", ""})
	for i, pt := range points {
		mark := ""
		if i == best {
			mark = "✓ best"
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("%.4f", pt.FrequencyRatio),
			fmt.Sprintf("%.4f", pt.FrequencyRatio*p.Structure.Omega),
			fmt.Sprintf("%.6f", pt.Summary.MaxFloorDisp),
			fmt.Sprintf("%.4f", pt.Summary.MaxFloorAccel),
			fmt.Sprintf("%.6f", pt.Summary.MaxDamperRelDisp),
			mark,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
	fmt.Println()

	fmt.Printf("  ╔═════════════════════════════════════════╗\n")
	fmt.Printf("  ║  BEST FREQUENCY RATIO α = %.4f         \n", points[best].FrequencyRatio)
	fmt.Printf("  ╚═════════════════════════════════════════╝\n")
	fmt.Println()

	return nil
}
