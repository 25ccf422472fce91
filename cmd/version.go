package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gotmd/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gotmd",
	// no config needed to print a version
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Short())
		fmt.Println(version.Detail())
		fmt.Println("Tuned Mass Damper Seismic Response Simulator")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
