package recommend

import (
	"time"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

type service struct {
	now func() time.Time
}

type Engine interface {
	// Draft turns gathered data into draft recommendation records.
	// Both arguments tolerate nil.
	Draft(snapshot *model.CloudSnapshot, analysis *model.CostAnalysis) []model.RecommendationItem

	// RankingPrompt renders the instruction sent to the completion
	// service for the prioritization stage
	RankingPrompt(items []model.RecommendationItem) string

	// ApplyRanking reorders items according to a completion reply. The
	// second return value reports whether the reply parsed; when it did
	// not, the result is the deterministic savings-descending fallback
	// with PriorityScore and Reasoning left unset.
	ApplyRanking(items []model.RecommendationItem, reply string) ([]model.RecommendationItem, bool)

	// RankBySavings is the deterministic fallback order: stable sort by
	// MonthlySavingsEstimate descending, ties keep generation order
	RankBySavings(items []model.RecommendationItem) []model.RecommendationItem
}

// flat monthly estimates used when a resource carries no cost figure
const (
	volumeCostPerGBMonth      = 0.08
	unusedIPCostPerMonth      = 3.6
	stoppedInstancePerMonth   = 15.0
	idleLoadBalancerPerMonth  = 18.0
	rightsizeFallbackPerMonth = 30.0

	idleCPUThresholdPercent = 10.0
)
