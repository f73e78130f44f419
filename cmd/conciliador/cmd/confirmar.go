package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ofitec/conciliador/pkg/config"
	"github.com/ofitec/conciliador/pkg/db"
	"github.com/ofitec/conciliador/pkg/format"
	"github.com/ofitec/conciliador/pkg/reconcile"
	"github.com/spf13/cobra"
)

var (
	confTipo       string
	confRef        string
	confTargetTipo string
	confTargetRef  string
	confFecha      string
	confMonto      float64
)

// confirmarCmd represents the confirmar command.
var confirmarCmd = &cobra.Command{
	Use:   "confirmar",
	Short: "Confirm a reconciliation link",
	Long: `Confirm a link between a source financial record and a target
document. The confirmation is submitted exactly once with an idempotency
key and, on acceptance, recorded in the local link history.

Example:
  conciliador confirmar --tipo expense --ref E-102 --target-tipo bank --target-ref B-55 --fecha 2025-01-11 --monto 15000`,
	Run: runConfirmar,
}

func init() {
	confirmarCmd.Flags().StringVar(&confTipo, "tipo", "", "Source type (required)")
	confirmarCmd.Flags().StringVar(&confRef, "ref", "", "Source reference (required)")
	confirmarCmd.Flags().StringVar(&confTargetTipo, "target-tipo", "", "Target kind (required)")
	confirmarCmd.Flags().StringVar(&confTargetRef, "target-ref", "", "Target document (required)")
	confirmarCmd.Flags().StringVar(&confFecha, "fecha", "", "Date of the matched document (YYYY-MM-DD)")
	confirmarCmd.Flags().Float64Var(&confMonto, "monto", 0, "Amount of the matched document")

	confirmarCmd.MarkFlagRequired("tipo")
	confirmarCmd.MarkFlagRequired("ref")
	confirmarCmd.MarkFlagRequired("target-tipo")
	confirmarCmd.MarkFlagRequired("target-ref")
}

func runConfirmar(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	client := newClient(cfg)

	confirmation := reconcile.Confirmation{
		SourceType: reconcile.SourceType(confTipo),
		SourceRef:  confRef,
		TargetType: confTargetTipo,
		TargetRef:  confTargetRef,
		Metadata: map[string]any{
			"fecha":  confFecha,
			"amount": confMonto,
		},
	}

	slog.Info("Confirming link",
		"source_type", confTipo,
		"source_ref", confRef,
		"target_type", confTargetTipo,
		"target_ref", confTargetRef,
	)

	accepted, err := client.Confirm(cmd.Context(), confirmation)
	exitOnError(err, "failed to confirm link")

	if !accepted {
		exitOnError(fmt.Errorf("the service rejected the link"), "confirmation rejected")
	}

	// Record locally so stats/links work offline. A local write failure is
	// logged, not fatal: the backend already accepted the link.
	conn, err := db.Open(cfg.Local.DBPath)
	if err != nil {
		slog.Error("failed to open local history", "error", err)
	} else {
		defer conn.Close()
		history := db.NewLinkHistory(conn)
		if err := history.RecordLink(db.LinkRecord{
			SourceType: confTipo,
			SourceRef:  confRef,
			TargetType: confTargetTipo,
			TargetRef:  confTargetRef,
			Fecha:      confFecha,
			Amount:     confMonto,
		}); err != nil {
			slog.Error("failed to record link locally", "error", err)
		}
	}

	fmt.Printf("Conciliación confirmada: %s %s ↔ %s %s (%s, %s)\n",
		confTipo, confRef, confTargetTipo, confTargetRef,
		format.Date(confFecha, format.StyleShort), format.Currency(confMonto))
}
