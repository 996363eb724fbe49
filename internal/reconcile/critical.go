package reconcile

import (
	"sort"
	"strings"

	"github.com/opsvantage/triage-cli/internal/model"
)

// criticalTokens flags incident summaries describing a full service loss.
var criticalTokens = []string{
	"out_of_service",
	"link_failure",
	"site_oos",
	"sites_down",
	"faulty",
	"down",
}

// IsCriticalIncident reports whether an incident summary mentions any of the
// service-loss tokens. Matching is case-insensitive substring search.
func IsCriticalIncident(summary string) bool {
	if summary == "" {
		return false
	}
	s := strings.ToLower(summary)
	for _, t := range criticalTokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// SiteCount pairs a site name with its critical-incident count.
type SiteCount struct {
	Site  string `json:"site"`
	Count int    `json:"count"`
}

// TopRepeatOffenders ranks sites by their number of critical incidents,
// descending, capped at limit. Ties keep the lexically smaller site first so
// the ordering is stable across runs.
func TopRepeatOffenders(records []model.MasterRecord, limit int) []SiteCount {
	counts := make(map[string]int)
	for i := range records {
		r := &records[i]
		if IsCriticalIncident(r.Incident.Summary) {
			counts[r.Incident.Site]++
		}
	}

	out := make([]SiteCount, 0, len(counts))
	for site, n := range counts {
		out = append(out, SiteCount{Site: site, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Site < out[j].Site
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
