package synthetic

import "github.com/reachskumar/ai-ops-guardian-angel-sub007/model"

// Generator produces plausible pseudo-random telemetry with the same
// shape/unit contract as the live adapters
type Generator interface {
	Metrics(resourceID string, resourceType model.ResourceType, timeRange model.TimeRange) []model.MetricSeries
	CostBreakdown(provider model.Provider, accountID string, timeRange model.TimeRange) *model.CostBreakdown
	Resources(provider model.Provider, accountID string, timeRange model.TimeRange) []model.CloudResource
	Waste(provider model.Provider, accountID string) *model.WasteReport
}

// service produces plausible pseudo-random telemetry with the same
// shape/unit contract as the live adapters. It is the degrade-gracefully
// substitute used whenever a provider call is unavailable or fails.
type service struct {
	seed int64
}

// Option configures the generator
type Option func(*service)

// WithSeed fixes the base seed so generated data is fully reproducible
func WithSeed(seed int64) Option {
	return func(s *service) {
		s.seed = seed
	}
}
