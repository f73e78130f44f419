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
	sugTipo   string
	sugID     string
	sugMonto  float64
	sugFecha  string
	sugRef    string
	sugDays   int
	sugTol    float64
	sugMoneda string
)

// sugerirCmd represents the sugerir command.
var sugerirCmd = &cobra.Command{
	Use:   "sugerir",
	Short: "Fetch match suggestions for a financial record",
	Long: `Fetch ranked reconciliation candidates for a financial record.

The service matches within a tolerance window (default 5 days, 1% amount)
and returns candidates ranked by score; the first 10 are displayed.

Example:
  conciliador sugerir --tipo expense --monto 15000 --fecha 2025-01-10 --ref E-102`,
	Run: runSugerir,
}

func init() {
	sugerirCmd.Flags().StringVar(&sugTipo, "tipo", "", "Source type: bank|purchase|sales|expense|tax|payroll (required)")
	sugerirCmd.Flags().StringVar(&sugID, "id", "", "Source record ID")
	sugerirCmd.Flags().Float64Var(&sugMonto, "monto", 0, "Source amount")
	sugerirCmd.Flags().StringVar(&sugFecha, "fecha", "", "Source date (YYYY-MM-DD)")
	sugerirCmd.Flags().StringVar(&sugRef, "ref", "", "Source reference / document number")
	sugerirCmd.Flags().IntVar(&sugDays, "days", 0, "Date tolerance window in days (default from config)")
	sugerirCmd.Flags().Float64Var(&sugTol, "amount-tol", 0, "Relative amount tolerance (default from config)")
	sugerirCmd.Flags().StringVar(&sugMoneda, "moneda", "", "Currency code")

	sugerirCmd.MarkFlagRequired("tipo")
}

func runSugerir(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	mapper := loadMapper(cfg)
	if !mapper.HasType(sugTipo) {
		exitOnError(fmt.Errorf("unknown source type %q", sugTipo), "invalid arguments")
	}

	source := reconcile.Source{
		Type:     reconcile.SourceType(sugTipo),
		ID:       sugID,
		Date:     sugFecha,
		Ref:      sugRef,
		Currency: sugMoneda,
	}
	if cmd.Flags().Changed("monto") {
		source.Amount = &sugMonto
	}

	opts := reconcile.SuggestOptions{Days: cfg.Suggest.Days, AmountTol: cfg.Suggest.AmountTol}
	if sugDays > 0 {
		opts.Days = sugDays
	}
	if sugTol > 0 {
		opts.AmountTol = sugTol
	}

	client := newClient(cfg)
	slog.Info("Fetching suggestions", "tipo", sugTipo, "days", opts.Days, "amount_tol", opts.AmountTol)

	panel := reconcile.NewPanel(client, source, opts)
	if err := panel.Open(cmd.Context()); err != nil {
		exitOnError(err, "failed to fetch suggestions")
	}

	visible := panel.Visible()
	if len(visible) == 0 {
		fmt.Println("Sin candidatos para", mapper.LabelFor(sugTipo))
		return
	}

	fmt.Printf("\n=== Candidatos para %s %s ===\n", mapper.LabelFor(sugTipo), sourceLabel(source))
	for i, c := range visible {
		fmt.Printf("%2d. [%-8s] %-12s %s  %12s  score %.2f\n",
			i+1, c.TargetKind, c.Doc, format.Date(c.Fecha, format.StyleShort), format.Currency(c.Amount), c.Score)
	}
	if total := len(panel.Candidates()); total > len(visible) {
		fmt.Printf("... y %d candidatos más\n", total-len(visible))
	}
	fmt.Println()
}

func sourceLabel(source reconcile.Source) string {
	if source.Ref != "" {
		return source.Ref
	}
	return source.ID
}
