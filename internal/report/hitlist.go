// Package report builds the engineering hit list: the prioritization view of
// a reconciled table, exportable as a workbook for field teams.
package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/opsvantage/triage-cli/internal/model"
	"github.com/opsvantage/triage-cli/internal/reconcile"
)

// hitListColumns is the curated column order of the priority report. County
// is included only when the source inventory carried it.
var hitListColumns = []string{
	"Site",
	"Site Rank",
	"Frequency",
	"MTTR (Hours)",
	"Variance",
	"Risk_Score",
	"County",
}

// HitList is a rendered priority report: headers plus pre-formatted rows,
// sorted descending by risk score with exact-duplicate rows removed.
type HitList struct {
	Columns []string
	Rows    [][]string
}

// Build renders the hit list from a reconciled result, keeping at most topN
// rows (0 means unlimited).
func Build(res *reconcile.Result, topN int) *HitList {
	hasCounty := false
	for _, c := range res.SiteColumns {
		if c == "County" {
			hasCounty = true
		}
	}

	columns := hitListColumns
	if !hasCounty {
		columns = hitListColumns[:len(hitListColumns)-1]
	}

	records := make([]model.MasterRecord, len(res.Records))
	copy(records, res.Records)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RiskScore > records[j].RiskScore
	})

	hl := &HitList{Columns: columns}
	seen := make(map[string]bool, len(records))

	for i := range records {
		row := hitListRow(&records[i], hasCounty)
		key := strings.Join(row, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		hl.Rows = append(hl.Rows, row)
		if topN > 0 && len(hl.Rows) >= topN {
			break
		}
	}

	return hl
}

func hitListRow(r *model.MasterRecord, hasCounty bool) []string {
	row := []string{
		r.Incident.Site,
		formatNumber(r.SiteRank),
		strconv.Itoa(r.Frequency),
		formatNumber(r.MTTRHours),
		formatNumber(r.Variance),
		formatNumber(r.RiskScore),
	}
	if hasCounty {
		row = append(row, r.County())
	}
	return row
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
