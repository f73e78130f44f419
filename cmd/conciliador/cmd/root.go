// Package cmd provides CLI commands for conciliador.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "conciliador",
	Short: "Reconcile financial records against the reconciliation service",
	Long: `conciliador is a CLI for the reconciliation service: it fetches
ranked match suggestions for a financial record (bank movement, invoice,
expense, tax, payroll) and confirms a chosen link.

It supports:
- Fetching ranked suggestions with a date/amount tolerance window
- Confirming a link (with an idempotency key against double submission)
- Listing already-established links for a record
- Local link history in SQLite for offline stats
- Validating and formatting Chilean RUT numbers

Example:
  conciliador sugerir --tipo expense --monto 15000 --fecha 2025-01-10 --ref E-102
  conciliador confirmar --tipo expense --ref E-102 --target-tipo bank --target-ref B-55 --fecha 2025-01-11 --monto 15000
  conciliador links --expense-id E-102
  conciliador rut 12345678-5`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(sugerirCmd)
	rootCmd.AddCommand(confirmarCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(rutCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
