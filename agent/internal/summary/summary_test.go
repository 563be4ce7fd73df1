package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/agent/internal/predictor"
)

func prob(p float64) *float64 { return &p }

func TestSummarize(t *testing.T) {
	results := []predictor.RecordResult{
		{Index: 0, Status: "ok", ChurnProbability: prob(0.9)},
		{Index: 1, Status: "ok", ChurnProbability: prob(0.5)},
		{Index: 2, Status: "ok", ChurnProbability: prob(0.1)},
		{Index: 3, Status: "failed", ErrorCode: "missing_field"},
	}

	s := Summarize(results, 0.5)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Churners, "порог включается в уходящих")
	assert.Equal(t, 1, s.Failed)
	assert.InDelta(t, 66.67, s.ChurnRate, 0.01)
}

func TestSummarize_FailedRecordsExcludedFromRate(t *testing.T) {
	results := []predictor.RecordResult{
		{Index: 0, Status: "ok", ChurnProbability: prob(1.0)},
		{Index: 1, Status: "failed"},
		{Index: 2, Status: "failed"},
	}

	s := Summarize(results, 0.5)

	assert.Equal(t, 1, s.Total)
	assert.Equal(t, 2, s.Failed)
	assert.Equal(t, 100.0, s.ChurnRate)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, 0.5)

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.ChurnRate)
	assert.Equal(t, "No churn data available for summarization.", s.String())
}

func TestSummaryString(t *testing.T) {
	s := Summary{Total: 50, Churners: 12, ChurnRate: 24.0}

	assert.Equal(t,
		"Out of the latest 50 customer records, 12 customers are predicted to churn, resulting in a churn rate of 24.00%.",
		s.String())
}
