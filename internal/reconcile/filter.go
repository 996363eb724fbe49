package reconcile

import (
	"sort"

	"github.com/opsvantage/triage-cli/internal/model"
)

// Selection holds the operator's filter choices. An empty slice means "no
// restriction" for that dimension, not "match nothing"; the two filters are
// combined with logical AND.
type Selection struct {
	Counties []string `json:"counties,omitempty"`
	Weeks    []string `json:"weeks,omitempty"`
}

// Empty reports whether the selection restricts nothing.
func (s Selection) Empty() bool {
	return len(s.Counties) == 0 && len(s.Weeks) == 0
}

// ApplyFilters returns the records passing every non-empty filter. Matching
// is exact and case-sensitive against the reconciled values.
func ApplyFilters(records []model.MasterRecord, sel Selection) []model.MasterRecord {
	if sel.Empty() {
		return records
	}

	counties := toSet(sel.Counties)
	weeks := toSet(sel.Weeks)

	out := make([]model.MasterRecord, 0, len(records))
	for _, r := range records {
		if len(counties) > 0 && !counties[r.County()] {
			continue
		}
		if len(weeks) > 0 && !weeks[r.Incident.YearWeek] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// DistinctCounties returns the sorted distinct non-empty county values,
// suitable for presenting filter choices to the operator.
func DistinctCounties(records []model.MasterRecord) []string {
	return distinct(records, func(r *model.MasterRecord) string { return r.County() })
}

// DistinctWeeks returns the sorted distinct non-empty year-week values.
func DistinctWeeks(records []model.MasterRecord) []string {
	return distinct(records, func(r *model.MasterRecord) string { return r.Incident.YearWeek })
}

func distinct(records []model.MasterRecord, value func(*model.MasterRecord) string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range records {
		v := value(&records[i])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
