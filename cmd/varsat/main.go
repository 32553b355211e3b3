// Command varsat drives the variability analyzer over a Kconfig-style
// model file and a preprocessor block-fixture file: it decides dead and
// undead blocks, synthesizes covering configurations, enumerates the
// config-space symbols a file references, and reports a minimal
// unsatisfiable core for a single block.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "varsat",
		Short: "varsat",
		Long:  "varsat analyzes conditional-compilation variability guarded by preprocessor macros.",

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newSymbolsCmd())
	rootCmd.AddCommand(newMUSCmd())
	rootCmd.AddCommand(newCNFCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
