// Package importcsv bulk-imports risks or signals from CSV or Excel files.
package importcsv

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riskradar/riskradar-go/internal/conf"
	"github.com/riskradar/riskradar-go/internal/datastore"
	"github.com/riskradar/riskradar-go/internal/importer"
)

// Command creates the import command.
func Command(settings *conf.Settings) *cobra.Command {
	var entity string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Bulk import risks or signals from a CSV or Excel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(settings, args[0], entity)
		},
	}

	cmd.Flags().StringVar(&entity, "type", "risks", "What the file contains: risks or signals")

	return cmd
}

func runImport(settings *conf.Settings, path, entity string) error {
	if entity != "risks" && entity != "signals" {
		return fmt.Errorf("unknown import type %q, expected risks or signals", entity)
	}

	ds := datastore.New(settings)
	if ds == nil {
		return fmt.Errorf("no database backend enabled in configuration")
	}
	if err := ds.Open(); err != nil {
		return fmt.Errorf("failed to open datastore: %w", err)
	}
	defer ds.Close()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	rows, err := importer.ReadRows(path, file)
	if err != nil {
		return err
	}

	im := importer.New(ds, nil)
	var summary *importer.Summary
	if entity == "risks" {
		summary = im.ImportRisks(rows)
	} else {
		summary = im.ImportSignals(rows)
	}

	fmt.Printf("Processed %d rows, created %d %s.\n", summary.Processed, summary.Created, entity)

	maxErrors := settings.Import.MaxReportedErrors
	if maxErrors <= 0 {
		maxErrors = 10
	}
	for i, msg := range summary.Errors {
		if i >= maxErrors {
			fmt.Printf("... and %d more error(s)\n", len(summary.Errors)-maxErrors)
			break
		}
		fmt.Printf("  error: %s\n", msg)
	}

	return nil
}
