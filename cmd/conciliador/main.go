// Package main is the entry point for the conciliador CLI.
package main

import (
	"os"

	"github.com/ofitec/conciliador/cmd/conciliador/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
