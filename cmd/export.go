package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/stratfit/scenario-cli/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a persisted run to xlsx or csv",
	Long: `Exports a saved simulation run. XLSX output produces a workbook with
Valuation, Distribution, and Levers sheets; CSV output produces one row per
lever with headline metrics.

Examples:
  export 9f1c2d3a --format xlsx --output run.xlsx
  export 9f1c2d3a --format csv --output run.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("format", "xlsx", "export format: xlsx or csv")
	f.String("output", "", "output file path (required for xlsx, default stdout for csv)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	run, err := st.GetRun(ctx, args[0])
	if err != nil {
		return eris.Wrap(err, "export")
	}
	r := report.FromRun(run)

	switch format {
	case "xlsx":
		if outputPath == "" {
			return eris.New("export: --output is required for xlsx")
		}
		if err := report.WriteXLSX(outputPath, r); err != nil {
			return err
		}
		fmt.Printf("Exported run %s to %s\n", truncateID(run.ID), outputPath)
		return nil

	case "csv":
		w := os.Stdout
		if outputPath != "" {
			w, err = os.Create(outputPath)
			if err != nil {
				return eris.Wrapf(err, "export: create %s", outputPath)
			}
			defer w.Close() //nolint:errcheck
		}
		return report.WriteCSV(w, r)

	default:
		return eris.Errorf("export: --format must be xlsx or csv (got %q)", format)
	}
}
