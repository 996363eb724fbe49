package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/opsvantage/triage-cli/internal/model"
	"github.com/opsvantage/triage-cli/internal/reconcile"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a report workbook and print triage KPIs",
	Long: `Reconciles the incident sheet against the regional site inventory and
prints the KPI summary plus the available filter values.

Examples:
  # Reconcile the configured default workbook for KZN
  reconcile

  # Reconcile a specific file for a region
  reconcile --file "data/Repeat Outage.xlsx" --region WES

  # Restrict by county and week
  reconcile --county Umgungundlovu --week 202433 --week 202434

  # Full records as JSON
  reconcile --format json --output reconciled.json`,
	RunE: runReconcile,
}

func init() {
	f := reconcileCmd.Flags()
	f.String("file", "", "workbook path or http(s) URL (default from config)")
	f.String("region", "", "region code (default from config)")
	f.StringSlice("county", nil, "county filter, repeatable (empty = all)")
	f.StringSlice("week", nil, "year-week filter, repeatable (empty = all)")
	f.String("format", "table", "output format: table or json")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := cfg.Validate("reconcile"); err != nil {
		return err
	}

	file, _ := cmd.Flags().GetString("file")
	region, _ := cmd.Flags().GetString("region")
	counties, _ := cmd.Flags().GetStringSlice("county")
	weeks, _ := cmd.Flags().GetStringSlice("week")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

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
		return eris.Wrap(err, "reconcile")
	}

	sel := reconcile.Selection{Counties: counties, Weeks: weeks}
	records := res.Filtered(sel)

	out := io.Writer(os.Stdout)
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return eris.Wrap(err, "reconcile: create output file")
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		return writeReconcileJSON(out, res, sel, records)
	case "table":
		writeReconcileTable(out, res, sel, records)
		return nil
	default:
		return eris.Errorf("unknown format %q", format)
	}
}

func writeReconcileJSON(w io.Writer, res *reconcile.Result, sel reconcile.Selection, records []model.MasterRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		RunID     string                `json:"run_id"`
		Region    model.Region          `json:"region"`
		Summary   reconcile.Summary     `json:"summary"`
		Counties  []string              `json:"counties"`
		Weeks     []string              `json:"weeks"`
		Selection reconcile.Selection   `json:"selection"`
		Records   []model.MasterRecord  `json:"records"`
	}{res.RunID, res.Region, reconcile.Summarize(records), res.Counties, res.Weeks, sel, records})
}

func writeReconcileTable(w io.Writer, res *reconcile.Result, sel reconcile.Selection, records []model.MasterRecord) {
	sum := reconcile.Summarize(records)

	fmt.Fprintf(w, "Run %s  region=%s  active=%d/%d\n\n", res.RunID, res.Region, len(records), len(res.Records))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total incidents\t%d\n", sum.TotalIncidents)
	fmt.Fprintf(tw, "P4 critical\t%d\n", sum.P4Count)
	fmt.Fprintf(tw, "SLA failure rate\t%.1f%%\n", sum.SLAFailureRate*100)
	fmt.Fprintf(tw, "Avg MTTR\t%.2fh\n", sum.AvgMTTRHours)
	fmt.Fprintf(tw, "Problem children\t%d\n", sum.ProblemChildren)
	fmt.Fprintf(tw, "Avg variance\t%.2fh\n", sum.AvgVariance)
	fmt.Fprintf(tw, "Max risk score\t%.2f\n", sum.MaxRiskScore)
	tw.Flush()

	if !sel.Empty() {
		fmt.Fprintf(w, "\nFilters: counties=%s weeks=%s\n",
			strings.Join(sel.Counties, ","), strings.Join(sel.Weeks, ","))
	}
	fmt.Fprintf(w, "\nCounties: %s\n", strings.Join(res.Counties, ", "))
	fmt.Fprintf(w, "Weeks:    %s\n", strings.Join(res.Weeks, ", "))

	offenders := reconcile.TopRepeatOffenders(records, 15)
	if len(offenders) > 0 {
		fmt.Fprintln(w, "\nTop repeat offenders (critical incidents):")
		otw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, o := range offenders {
			fmt.Fprintf(otw, "  %s\t%d\n", o.Site, o.Count)
		}
		otw.Flush()
	}
}
