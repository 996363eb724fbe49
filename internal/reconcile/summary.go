package reconcile

import "github.com/opsvantage/triage-cli/internal/model"

// Summary holds the triage KPIs computed over a reconciled table.
type Summary struct {
	TotalIncidents  int     `json:"total_incidents"`
	P4Count         int     `json:"p4_count"`
	SLAFailureRate  float64 `json:"sla_failure_rate"` // share of incidents with OUT outcome
	AvgMTTRHours    float64 `json:"avg_mttr_hours"`
	ProblemChildren int     `json:"problem_children"` // incidents over MTTR target
	AvgVariance     float64 `json:"avg_variance"`
	MaxRiskScore    float64 `json:"max_risk_score"`
}

// Summarize computes the KPI block for a reconciled table. An empty table
// yields the zero Summary.
func Summarize(records []model.MasterRecord) Summary {
	s := Summary{TotalIncidents: len(records)}
	if len(records) == 0 {
		return s
	}

	var outCount int
	var mttrSum, varianceSum float64

	for i := range records {
		r := &records[i]
		if r.Incident.Priority == "P4" {
			s.P4Count++
		}
		if r.Incident.SLA == "OUT" {
			outCount++
		}
		if r.Variance > 0 {
			s.ProblemChildren++
		}
		mttrSum += r.MTTRHours
		varianceSum += r.Variance
		if r.RiskScore > s.MaxRiskScore {
			s.MaxRiskScore = r.RiskScore
		}
	}

	n := float64(len(records))
	s.SLAFailureRate = float64(outCount) / n
	s.AvgMTTRHours = mttrSum / n
	s.AvgVariance = varianceSum / n

	return s
}
