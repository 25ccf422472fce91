package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gotmd/internal/model"
	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Show the derived mass, stiffness and damping of the system",
	Long: `Derive the physical coefficients of the structure and the tuned mass
damper from their modal properties and show the Den Hartog optimum
tuning for the chosen mass ratio.

  ks = ms·ωs²           cs = 2·ζs·ms·ωs
  md = μ·ms             ωd = α·ωs
  kd = md·ωd²           cd = 2·ζd·md·ωd

Den Hartog optimum for harmonic base excitation:
  α_opt = 1/(1+μ)       ζd_opt = √(3μ / 8(1+μ)³)

Examples:
  # Defaults (or the values from --config)
  gotmd params

  # A 2 Hz structure with a 5% damper
  gotmd params --omega 12.566 --mu 0.05`,
	RunE: runParams,
}

func init() {
	rootCmd.AddCommand(paramsCmd)
	addModelFlags(paramsCmd)
}

func runParams(cmd *cobra.Command, args []string) error {
	if err := applyModelFlags(cmd.Flags(), cfg); err != nil {
		return err
	}

	s := cfg.StructureParams()
	d := cfg.DamperParams()
	c := model.Derive(s, d)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     STRUCTURE + TUNED MASS DAMPER PROPERTIES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Structure mass (ms):\t%.2f kg\n", s.Mass)
	fmt.Fprintf(w, "  Structure frequency (ωs):\t%.4f rad/s (%.4f Hz, T = %.4f s)\n", s.Omega, s.FrequencyHz(), s.Period())
	fmt.Fprintf(w, "  Structure damping (ζs):\t%.4f\n", s.Zeta)
	fmt.Fprintf(w, "  Mass ratio (μ):\t%.4f\n", d.MassRatio)
	fmt.Fprintf(w, "  Frequency ratio (α):\t%.4f\n", d.FrequencyRatio)
	fmt.Fprintf(w, "  Damper damping (ζd):\t%.4f\n", d.Zeta)
	w.Flush()
	fmt.Println()

	fmt.Println("DERIVED COEFFICIENTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	printCoefficients(c)
	fmt.Println()

	alpha, zeta := model.DenHartog(d.MassRatio)
	fmt.Println("DEN HARTOG OPTIMUM:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  α_opt:\t%.4f", alpha)
	fmt.Fprintln(w, tuningMark(d.FrequencyRatio, alpha))
	fmt.Fprintf(w, "  ζd_opt:\t%.4f", zeta)
	fmt.Fprintln(w, tuningMark(d.Zeta, zeta))
	fmt.Fprintf(w, "  ωd_opt:\t%.4f rad/s\n", alpha*s.Omega)
	w.Flush()
	fmt.Println()

	return nil
}

func printCoefficients(c model.Coefficients) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  \tStructure\tDamper")
	fmt.Fprintf(w, "  Mass:\t%.2f kg\t%.2f kg\n", c.Ms, c.Md)
	fmt.Fprintf(w, "  Stiffness:\t%.2f N/m\t%.2f N/m\n", c.Ks, c.Kd)
	fmt.Fprintf(w, "  Damping:\t%.2f N·s/m\t%.2f N·s/m\n", c.Cs, c.Cd)
	fmt.Fprintf(w, "  Frequency:\t%.4f rad/s\t%.4f rad/s\n", c.OmegaS, c.OmegaD)
	w.Flush()
}

// tuningMark flags values more than 5% away from the optimum
func tuningMark(actual, optimum float64) string {
	if optimum == 0 {
		return ""
	}
	off := (actual - optimum) / optimum
	if off < -0.05 || off > 0.05 {
		return fmt.Sprintf(" ⚠ (current %.4f)", actual)
	}
	return " ✓"
}
