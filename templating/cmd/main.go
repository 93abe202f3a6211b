// Binary workflowgen generates workflow files from
// "<<name>>" templates and a YAML catalogue of shared
// definitions, and checks committed files for drift.
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
