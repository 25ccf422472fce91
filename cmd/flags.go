package cmd

import (
	"github.com/alexiusacademia/gotmd/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Model flags shared by simulate and tune. They only override the loaded
// config when set on the command line.
var (
	flagMass    float64
	flagOmega   float64
	flagZeta    float64
	flagMu      float64
	flagAlpha   float64
	flagZetaD   float64
	flagGamma   float64
	flagBeta    float64
	flagGravity float64
)

func addModelFlags(c *cobra.Command) {
	d := config.New()

	// Structure flags
	c.Flags().Float64VarP(&flagMass, "mass", "m", d.Structure.Mass, "Structure mass ms (kg)")
	c.Flags().Float64VarP(&flagOmega, "omega", "w", d.Structure.Omega, "Structure natural frequency ωs (rad/s)")
	c.Flags().Float64Var(&flagZeta, "zeta", d.Structure.Zeta, "Structure damping ratio ζs")

	// Damper flags
	c.Flags().Float64Var(&flagMu, "mu", d.Damper.MassRatio, "Damper mass ratio μ = md/ms")
	c.Flags().Float64Var(&flagAlpha, "alpha", d.Damper.FrequencyRatio, "Damper frequency ratio α = ωd/ωs")
	c.Flags().Float64Var(&flagZetaD, "zeta-d", d.Damper.Zeta, "Damper damping ratio ζd")

	// Integration flags
	c.Flags().Float64Var(&flagGamma, "gamma", d.Newmark.Gamma, "Newmark γ")
	c.Flags().Float64Var(&flagBeta, "beta", d.Newmark.Beta, "Newmark β")
	c.Flags().Float64VarP(&flagGravity, "gravity", "g", d.Gravity, "Conversion from g to m/s²")
}

// applyModelFlags copies every changed model flag into c and revalidates it
func applyModelFlags(flags *pflag.FlagSet, c *config.Config) error {
	set := map[string]*float64{
		"mass":    &c.Structure.Mass,
		"omega":   &c.Structure.Omega,
		"zeta":    &c.Structure.Zeta,
		"mu":      &c.Damper.MassRatio,
		"alpha":   &c.Damper.FrequencyRatio,
		"zeta-d":  &c.Damper.Zeta,
		"gamma":   &c.Newmark.Gamma,
		"beta":    &c.Newmark.Beta,
		"gravity": &c.Gravity,
	}
	for name, dst := range set {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetFloat64(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	return c.Validate()
}
