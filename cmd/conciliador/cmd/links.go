package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ofitec/conciliador/pkg/config"
	"github.com/ofitec/conciliador/pkg/format"
	"github.com/ofitec/conciliador/pkg/reconcile"
	"github.com/spf13/cobra"
)

var (
	linksExpenseID  string
	linksTaxPeriod  string
	linksTaxTipo    string
	linksSourceType string
	linksSourceRef  string
)

// linksCmd represents the links command.
var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List established links for a record",
	Long: `List the links already established for a record on the
reconciliation service. Read-only.

Example:
  conciliador links --expense-id E-102
  conciliador links --tax-period 2025-01 --tax-tipo F29
  conciliador links --tipo bank --ref MOV-991`,
	Run: runLinks,
}

func init() {
	linksCmd.Flags().StringVar(&linksExpenseID, "expense-id", "", "Filter by expense ID")
	linksCmd.Flags().StringVar(&linksTaxPeriod, "tax-period", "", "Filter by tax period (with --tax-tipo)")
	linksCmd.Flags().StringVar(&linksTaxTipo, "tax-tipo", "", "Tax form type (with --tax-period)")
	linksCmd.Flags().StringVar(&linksSourceType, "tipo", "", "Filter by source type (with --ref)")
	linksCmd.Flags().StringVar(&linksSourceRef, "ref", "", "Filter by source reference (with --tipo)")
}

func runLinks(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	filter := reconcile.LinkFilter{
		ExpenseID:  linksExpenseID,
		TaxPeriod:  linksTaxPeriod,
		TaxTipo:    linksTaxTipo,
		SourceType: reconcile.SourceType(linksSourceType),
		SourceRef:  linksSourceRef,
	}

	client := newClient(cfg)
	slog.Debug("Listing links", "base_url", client.BaseURL())

	links, err := client.Links(cmd.Context(), filter)
	exitOnError(err, "failed to list links")

	if len(links) == 0 {
		fmt.Println("Sin conciliaciones registradas")
		return
	}

	fmt.Println("\n=== Conciliaciones ===")
	for _, l := range links {
		fmt.Printf("%-6s [%-8s] %-12s %s  %12s\n",
			l.ID, l.Type, l.Ref, format.Date(l.Fecha, format.StyleShort), format.Currency(l.Amount))
	}
	fmt.Println()
}
