package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func items(levels ...EffortLevel) []RecommendationItem {
	out := make([]RecommendationItem, len(levels))
	for i, l := range levels {
		out[i] = RecommendationItem{Risk: l, Difficulty: l}
	}
	return out
}

func TestAggregateLevel(t *testing.T) {
	pickRisk := func(it RecommendationItem) EffortLevel { return it.Risk }

	tests := []struct {
		name  string
		items []RecommendationItem
		want  SummaryLevel
	}{
		{"empty set is low", nil, SummaryLow},
		{"all low", items(EffortLow, EffortLow), SummaryLow},
		{"mean exactly 1.5 is low", items(EffortLow, EffortMedium), SummaryLow},
		{"mean above 1.5 is medium", items(EffortLow, EffortMedium, EffortMedium), SummaryMedium},
		{"mean exactly 2.5 is medium", items(EffortMedium, EffortHigh), SummaryMedium},
		{"mean above 2.5 is high", items(EffortHigh, EffortHigh, EffortMedium, EffortHigh), SummaryHigh},
		{"complex scores as high", items(EffortComplex, EffortComplex), SummaryHigh},
		{"unknown level defaults to low", items(EffortLevel("weird")), SummaryLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateLevel(tt.items, pickRisk))
		})
	}
}

func TestTotalPotentialSavings(t *testing.T) {
	set := []RecommendationItem{
		{MonthlySavingsEstimate: 100},
		{MonthlySavingsEstimate: 50, Dismissed: true},
		{MonthlySavingsEstimate: 25, Applied: true},
		{MonthlySavingsEstimate: 10},
	}

	assert.InDelta(t, 110, TotalPotentialSavings(set), 0.001)
}

func TestSummarize(t *testing.T) {
	set := []RecommendationItem{
		{MonthlySavingsEstimate: 40, Risk: EffortLow, Difficulty: EffortHigh},
		{MonthlySavingsEstimate: 60, Risk: EffortLow, Difficulty: EffortHigh},
	}

	summary := Summarize(set)

	assert.Equal(t, 2, summary.TotalRecommendations)
	assert.InDelta(t, 100, summary.TotalMonthlySavings, 0.001)
	assert.Equal(t, SummaryLow, summary.RiskLevel)
	assert.Equal(t, SummaryHigh, summary.ImplementationEffort)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	assert.Zero(t, summary.TotalRecommendations)
	assert.Equal(t, SummaryLow, summary.RiskLevel)
	assert.Equal(t, SummaryLow, summary.ImplementationEffort)
}
