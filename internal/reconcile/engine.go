package reconcile

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opsvantage/triage-cli/internal/model"
	"github.com/opsvantage/triage-cli/internal/workbook"
)

// Result is a fully reconciled dataset: the enriched incident table, the
// filter choices it supports, and its KPI summary.
type Result struct {
	RunID       string               `json:"run_id"`
	Region      model.Region         `json:"region"`
	Records     []model.MasterRecord `json:"records"`
	SiteColumns []string             `json:"site_columns"` // enrichment columns present in the source
	Counties    []string             `json:"counties"`
	Weeks       []string             `json:"weeks"`
	Summary     Summary              `json:"summary"`
}

// Engine runs the reconciliation pipeline. Each run operates on its own
// in-memory copies, so a single Engine is safe for concurrent use.
//
// The pipeline is a bounded synchronous transform with no mid-run abort:
// resolve sheets, normalize join keys, dedupe and left-join the inventory,
// coerce numerics and derive metrics.
type Engine struct{}

// NewEngine creates a reconciliation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Run reconciles workbook bytes for a region. The only error it returns is a
// *workbook.DataLoadError (possibly wrapped): a corrupt workbook or a missing
// incident sheet. Every softer failure degrades to empty tables, omitted
// columns or zeroed metrics.
func (e *Engine) Run(data []byte, region model.Region) (*Result, error) {
	start := time.Now()

	f, err := workbook.Open(data)
	if err != nil {
		return nil, &workbook.DataLoadError{Reason: "workbook unreadable", Cause: err}
	}

	sheets, err := workbook.Resolve(f, region)
	if err != nil {
		return nil, err
	}

	idx := buildSiteIndex(sheets.Sites)
	records := leftJoin(sheets.Incidents, idx)
	computeMetrics(records)

	res := &Result{
		RunID:       uuid.New().String(),
		Region:      region,
		Records:     records,
		SiteColumns: idx.columns,
		Counties:    DistinctCounties(records),
		Weeks:       DistinctWeeks(records),
		Summary:     Summarize(records),
	}

	zap.L().Info("reconcile: run complete",
		zap.String("run_id", res.RunID),
		zap.String("region", region.String()),
		zap.Int("incidents", len(records)),
		zap.Int("inventory_sites", len(idx.attrs)),
		zap.Int("enrichment_columns", len(idx.columns)),
		zap.Duration("took", time.Since(start)),
	)

	return res, nil
}

// RunSource loads a workbook source and reconciles it.
func (e *Engine) RunSource(src workbook.Source, region model.Region) (*Result, error) {
	data, err := src.Load()
	if err != nil {
		return nil, &workbook.DataLoadError{Reason: "source unreadable", Cause: err}
	}
	return e.Run(data, region)
}

// Filtered returns a shallow copy of the result's records with the selection
// applied. The cached result itself is never mutated.
func (r *Result) Filtered(sel Selection) []model.MasterRecord {
	return ApplyFilters(r.Records, sel)
}
