package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opsvantage/triage-cli/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the priority hit list as a workbook",
	Long: `Builds the engineering hit list (curated prioritization columns, sorted
descending by risk score, deduplicated) and writes it as XLSX or CSV.

Examples:
  export --out Priority_Report.xlsx
  export --file "data/Repeat Outage.xlsx" --region EAS --out report.csv --top 100`,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("file", "", "workbook path or http(s) URL (default from config)")
	f.String("region", "", "region code (default from config)")
	f.String("out", "", "output path, .xlsx or .csv (required)")
	f.Int("top", 0, "row cap, 0 = unlimited (default from config)")
	_ = exportCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(exportCmd)
}

// exportTopN resolves the row cap: the configured default unless --top was
// given, where an explicit 0 means no cap at all.
func exportTopN(cmd *cobra.Command) int {
	if !cmd.Flags().Changed("top") {
		return cfg.Report.TopN
	}
	top, _ := cmd.Flags().GetInt("top")
	return top
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := cfg.Validate("export"); err != nil {
		return err
	}

	file, _ := cmd.Flags().GetString("file")
	region, _ := cmd.Flags().GetString("region")
	out, _ := cmd.Flags().GetString("out")
	top := exportTopN(cmd)

	src, err := resolveSource(ctx, file)
	if err != nil {
		return err
	}
	reg, err := resolveRegion(region)
	if err != nil {
		return err
	}

	res, err := newMemoizer().Reconcile(src, reg)
	if err != nil {
		return eris.Wrap(err, "export")
	}

	hl := report.Build(res, top)

	switch {
	case strings.HasSuffix(out, ".csv"):
		err = report.WriteCSV(hl, out)
	case strings.HasSuffix(out, ".xlsx"):
		err = report.WriteXLSX(hl, out)
	default:
		return eris.Errorf("export: unsupported output extension for %q (use .xlsx or .csv)", out)
	}
	if err != nil {
		return err
	}

	zap.L().Info("export complete",
		zap.String("out", out),
		zap.Int("rows", len(hl.Rows)),
		zap.Strings("columns", hl.Columns),
	)
	return nil
}
