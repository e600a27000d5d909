// Package main provides the siuba CLI.
package main

import (
	"os"

	"github.com/Alex-Monahan/siuba/internal/cli"

	// Register the SQL dialects via init()
	_ "github.com/Alex-Monahan/siuba/pkg/dialects/ansi"
	_ "github.com/Alex-Monahan/siuba/pkg/dialects/duckdb"
	_ "github.com/Alex-Monahan/siuba/pkg/dialects/postgres"
	_ "github.com/Alex-Monahan/siuba/pkg/dialects/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
