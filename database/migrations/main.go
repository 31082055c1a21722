// Atlas schema loader: prints the SQL schema derived from the gorm models so
// atlas can diff and plan versioned migrations.
package main

import (
	"fmt"
	"io"
	"os"

	"ariga.io/atlas-provider-gorm/gormschema"
	"github.com/mintgate/sparkd/database/models"
)

func main() {
	stmts, err := gormschema.New("postgres").Load(&models.MintQuote{}, &models.MeltQuote{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load gorm schema: %v\n", err)
		os.Exit(1)
	}

	if _, err := io.WriteString(os.Stdout, stmts); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write to stdout: %v\n", err)
		os.Exit(1)
	}
}
