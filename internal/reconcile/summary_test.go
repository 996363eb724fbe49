package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsvantage/triage-cli/internal/model"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalIncidents)
	assert.Zero(t, s.SLAFailureRate)
	assert.Zero(t, s.MaxRiskScore)
}

func TestSummarize_KPIs(t *testing.T) {
	records := []model.MasterRecord{
		{
			Incident:  model.IncidentRecord{Priority: "P4", SLA: "OUT"},
			MTTRHours: 6, Variance: 1, RiskScore: 0.02,
		},
		{
			Incident:  model.IncidentRecord{Priority: "P4", SLA: "OUT"},
			MTTRHours: 6, Variance: 1, RiskScore: 0.02,
		},
		{
			Incident:  model.IncidentRecord{Priority: "P2", SLA: "IN"},
			MTTRHours: 3, Variance: -1, RiskScore: 5,
		},
		{
			Incident:  model.IncidentRecord{Priority: "P1", SLA: "IN"},
			MTTRHours: 1, Variance: 0, RiskScore: 2,
		},
	}

	s := Summarize(records)
	assert.Equal(t, 4, s.TotalIncidents)
	assert.Equal(t, 2, s.P4Count)
	assert.InDelta(t, 0.5, s.SLAFailureRate, 1e-9)
	assert.InDelta(t, 4.0, s.AvgMTTRHours, 1e-9)
	assert.Equal(t, 2, s.ProblemChildren)
	assert.InDelta(t, 0.25, s.AvgVariance, 1e-9)
	assert.InDelta(t, 5.0, s.MaxRiskScore, 1e-9)
}
