package model

// DateInterval represents a time period for cost analysis
type DateInterval struct {
	Start *string
	End   *string
}

// CostGroup maps service names to their cost data
type CostGroup map[string]struct {
	Amount float64
	Unit   string
}

// Total sums the amounts of every service in the group
func (g CostGroup) Total() float64 {
	var total float64
	for _, v := range g {
		total += v.Amount
	}
	return total
}

// ServiceCost represents cost for a single service
type ServiceCost struct {
	Name   string
	Amount float64
	Unit   string
}

// CostBreakdown contains per-service cost data for one account, as returned
// by a provider cost adapter or the synthetic generator
type CostBreakdown struct {
	Provider  Provider
	AccountID string
	DateInterval
	CostGroup
	Currency  string
	Synthetic bool
}

// CostAnalysis is the structured result of the analyze_costs stage
type CostAnalysis struct {
	CurrentMonthTotal float64
	LastMonthTotal    float64
	Delta             float64
	DeltaPercent      float64
	Currency          string
	ByService         CostGroup
	TopServices       []ServiceCost
	ForecastNextMonth float64
	Synthetic         bool
}
