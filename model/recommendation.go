package model

import "time"

// EffortLevel grades the difficulty or risk of applying a recommendation
type EffortLevel string

const (
	EffortLow     EffortLevel = "low"
	EffortMedium  EffortLevel = "medium"
	EffortHigh    EffortLevel = "high"
	EffortComplex EffortLevel = "complex"
)

// SummaryLevel is the bucketed aggregate of effort levels over a set
type SummaryLevel string

const (
	SummaryLow    SummaryLevel = "low"
	SummaryMedium SummaryLevel = "medium"
	SummaryHigh   SummaryLevel = "high"
)

// RecommendationItem is one savings recommendation. PriorityScore and
// Reasoning are assigned only after the prioritization stage.
type RecommendationItem struct {
	ID                     string
	Title                  string
	Description            string
	AffectedResourceIDs    []string
	MonthlySavingsEstimate float64
	Difficulty             EffortLevel
	Risk                   EffortLevel
	PriorityScore          int
	Reasoning              string
	Dismissed              bool
	Applied                bool
	CreatedAt              time.Time
}

// TotalPotentialSavings sums monthly savings over all non-dismissed,
// non-applied items
func TotalPotentialSavings(items []RecommendationItem) float64 {
	var total float64
	for _, it := range items {
		if it.Dismissed || it.Applied {
			continue
		}
		total += it.MonthlySavingsEstimate
	}
	return total
}

func effortScore(l EffortLevel) float64 {
	switch l {
	case EffortMedium:
		return 2
	case EffortHigh, EffortComplex:
		return 3
	default:
		return 1
	}
}

// AggregateLevel buckets the mean 3-point encoding of the selected effort
// level over a recommendation set. An empty set is defined as low.
func AggregateLevel(items []RecommendationItem, pick func(RecommendationItem) EffortLevel) SummaryLevel {
	if len(items) == 0 {
		return SummaryLow
	}
	var sum float64
	for _, it := range items {
		sum += effortScore(pick(it))
	}
	mean := sum / float64(len(items))
	switch {
	case mean <= 1.5:
		return SummaryLow
	case mean <= 2.5:
		return SummaryMedium
	default:
		return SummaryHigh
	}
}

// AnalysisSummary carries the derived summary fields returned by Analyze
type AnalysisSummary struct {
	TotalRecommendations int
	TotalMonthlySavings  float64
	RiskLevel            SummaryLevel
	ImplementationEffort SummaryLevel
}

// Summarize computes the derived summary for a recommendation set
func Summarize(items []RecommendationItem) AnalysisSummary {
	return AnalysisSummary{
		TotalRecommendations: len(items),
		TotalMonthlySavings:  TotalPotentialSavings(items),
		RiskLevel:            AggregateLevel(items, func(it RecommendationItem) EffortLevel { return it.Risk }),
		ImplementationEffort: AggregateLevel(items, func(it RecommendationItem) EffortLevel { return it.Difficulty }),
	}
}
