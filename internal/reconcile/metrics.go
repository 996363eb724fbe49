package reconcile

import (
	"math"
	"strconv"
	"strings"

	"github.com/opsvantage/triage-cli/internal/model"
)

// fallbackRank substitutes for a zero or unparsable site rank so the risk
// formula never divides by zero: unranked sites score near-zero risk instead
// of infinite.
const fallbackRank = 10000

// CoerceNumber parses a numeric-as-text cell. Comma decimal separators are
// accepted; anything unparsable coerces to 0 so downstream arithmetic always
// sees a finite value. ParseFloat accepts "nan" and "inf" tokens, which would
// make the derived metrics non-finite and unserializable, so those coerce to
// 0 as well.
func CoerceNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// computeMetrics coerces the numeric incident fields and derives Variance,
// Frequency and RiskScore in place. It must run before anything reads the
// coerced fields.
func computeMetrics(records []model.MasterRecord) {
	// Frequency is a per-dataset histogram of join keys broadcast back onto
	// every row sharing the key.
	freq := make(map[string]int, len(records))
	for i := range records {
		freq[records[i].JoinKey]++
	}

	for i := range records {
		r := &records[i]

		r.MTTRHours = CoerceNumber(r.Incident.MTTRHours)
		r.MTTRTarget = CoerceNumber(r.Incident.MTTRTarget)
		r.SiteRank = CoerceNumber(r.Incident.SiteRank)
		r.Incident.SLA = NormalizeSLA(r.Incident.SLA)

		r.Variance = r.MTTRHours - r.MTTRTarget
		r.Frequency = freq[r.JoinKey]

		safeRank := r.SiteRank
		if safeRank == 0 {
			safeRank = fallbackRank
		}
		r.RiskScore = float64(r.Frequency) * (1 / safeRank) * 100
	}
}
