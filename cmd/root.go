package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gotmd/internal/config"
	"github.com/alexiusacademia/gotmd/internal/logging"
	"github.com/alexiusacademia/gotmd/internal/version"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	logLevel   string

	// set in PersistentPreRunE
	cfg    *config.Config
	logger = zap.NewNop()
	runID  string
)

var rootCmd = &cobra.Command{
	Use:   "gotmd",
	Short: "Seismic response of structures with tuned mass dampers",
	Long: `gotmd - Go Tuned Mass Damper Simulator

A CLI tool for the time-history analysis of a single-storey structure
fitted with a tuned mass damper (TMD) under earthquake ground motion.

This tool helps structural engineers:
  - Derive stiffness and damping from modal properties
  - Integrate the 2-DOF response with the Newmark-beta method
  - Tabulate floor and damper response and their peaks
  - Compare the response with and without the damper
  - Sweep damper tuning against a recorded ground motion

Configuration is read from defaults, an optional YAML file (--config or
GOTMD_CONFIG) and GOTMD_* environment variables; flags override all three.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}

		runID = uuid.NewString()
		l, err := logging.New(
			logging.WithLevel(cfg.Log.Level),
			logging.WithFields(map[string]interface{}{"run_id": runID}),
		)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   %-56s║\n", version.Short())
		fmt.Println("  ║   Go Tuned Mass Damper Simulator                          ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the seismic time-history analysis of a")
		fmt.Println("  structure equipped with a tuned mass damper.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Newmark-beta integration of the structure + damper system")
		fmt.Println("    • Floor and damper response tables (CSV, Parquet, SQLite)")
		fmt.Println("    • Time-history plots (PNG, SVG, PDF) and terminal charts")
		fmt.Println("    • Den Hartog tuning and frequency ratio sweeps")
		fmt.Println()
		fmt.Println("  Use 'gotmd --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (default $GOTMD_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}
