package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ofitec/conciliador/pkg/config"
	"github.com/ofitec/conciliador/pkg/db"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display local link history statistics",
	Long: `Display statistics from the local link history.

Shows:
- Total number of confirmed links
- Breakdown by source type
- Last confirmation timestamp

Example:
  conciliador stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	slog.Info("Loading configuration")

	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	slog.Debug("Opening database", "path", cfg.Local.DBPath)
	conn, err := db.Open(cfg.Local.DBPath)
	exitOnError(err, "failed to open database")
	defer conn.Close()

	history := db.NewLinkHistory(conn)

	stats, err := history.GetStats()
	exitOnError(err, "failed to get statistics")

	fmt.Println("\n=== Historial de conciliaciones ===")
	fmt.Printf("Total de conciliaciones: %d\n", stats.TotalLinks)
	for sourceType, count := range stats.LinksByType {
		fmt.Printf("  %-10s %d\n", sourceType, count)
	}

	if stats.LastConfirmed.Valid {
		fmt.Printf("Última confirmación:     %s\n", stats.LastConfirmed.String)
	} else {
		fmt.Printf("Última confirmación:     (nunca)\n")
	}

	fmt.Println()
}
