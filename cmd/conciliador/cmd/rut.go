package cmd

import (
	"fmt"
	"os"

	"github.com/ofitec/conciliador/pkg/rut"
	"github.com/spf13/cobra"
)

// rutCmd represents the rut command.
var rutCmd = &cobra.Command{
	Use:   "rut <valor>...",
	Short: "Validate and format Chilean RUT numbers",
	Long: `Validate one or more Chilean RUT numbers and print them in
canonical form (dotted body, dash, check digit). Separators and case in
the input are ignored.

Example:
  conciliador rut 12345678-5 76.123.456-K`,
	Args: cobra.MinimumNArgs(1),
	Run:  runRut,
}

func runRut(cmd *cobra.Command, args []string) {
	exitCode := 0
	for _, arg := range args {
		if rut.IsValid(arg) {
			fmt.Printf("%-15s válido    %s\n", arg, rut.Format(arg))
		} else {
			body, _, ok := rut.Normalize(arg)
			if ok {
				fmt.Printf("%-15s inválido  dígito verificador esperado: %s\n", arg, rut.ComputeCheckDigit(body))
			} else {
				fmt.Printf("%-15s inválido\n", arg)
			}
			exitCode = 1
		}
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
