package pipeline

import (
	"sort"
	"time"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

var nowFunc = time.Now

const topServiceCount = 5

// buildCostAnalysis aggregates the snapshot's cost breakdowns into the
// analyze_costs result. Each account contributes a current-period
// breakdown and optionally the preceding period's; the breakdown with the
// later start date is the current one.
func buildCostAnalysis(snapshot *model.CloudSnapshot, includeForecast bool) *model.CostAnalysis {
	analysis := &model.CostAnalysis{
		Currency:  "USD",
		ByService: model.CostGroup{},
	}
	if snapshot == nil || len(snapshot.Costs) == 0 {
		return analysis
	}

	type accountCosts struct {
		current  *model.CostBreakdown
		previous []model.CostBreakdown
	}
	byAccount := map[string]*accountCosts{}

	for i := range snapshot.Costs {
		breakdown := &snapshot.Costs[i]
		key := string(breakdown.Provider) + "/" + breakdown.AccountID
		entry, ok := byAccount[key]
		if !ok {
			entry = &accountCosts{}
			byAccount[key] = entry
		}

		switch {
		case entry.current == nil:
			entry.current = breakdown
		case intervalStart(breakdown).After(intervalStart(entry.current)):
			entry.previous = append(entry.previous, *entry.current)
			entry.current = breakdown
		default:
			entry.previous = append(entry.previous, *breakdown)
		}
	}

	var currentStart, currentEnd time.Time
	for _, entry := range byAccount {
		for name, cost := range entry.current.CostGroup {
			existing := analysis.ByService[name]
			existing.Amount += cost.Amount
			if existing.Unit == "" {
				existing.Unit = cost.Unit
			}
			analysis.ByService[name] = existing
		}
		analysis.CurrentMonthTotal += entry.current.Total()
		if entry.current.Currency != "" {
			analysis.Currency = entry.current.Currency
		}
		if entry.current.Synthetic {
			analysis.Synthetic = true
		}

		start := intervalStart(entry.current)
		end := intervalEnd(entry.current)
		if currentStart.IsZero() || start.Before(currentStart) {
			currentStart = start
		}
		if end.After(currentEnd) {
			currentEnd = end
		}

		for _, previous := range entry.previous {
			analysis.LastMonthTotal += previous.Total()
		}
	}

	analysis.Delta = analysis.CurrentMonthTotal - analysis.LastMonthTotal
	if analysis.LastMonthTotal > 0 {
		analysis.DeltaPercent = analysis.Delta / analysis.LastMonthTotal * 100
	}
	analysis.TopServices = topServices(analysis.ByService, topServiceCount)

	if includeForecast && !currentStart.IsZero() && currentEnd.After(currentStart) {
		days := currentEnd.Sub(currentStart).Hours() / 24
		if days >= 1 {
			analysis.ForecastNextMonth = analysis.CurrentMonthTotal / days * 30
		}
	}

	return analysis
}

// topServices returns the n most expensive services, spend descending,
// ties broken by name for a stable order
func topServices(group model.CostGroup, n int) []model.ServiceCost {
	services := make([]model.ServiceCost, 0, len(group))
	for name, cost := range group {
		services = append(services, model.ServiceCost{Name: name, Amount: cost.Amount, Unit: cost.Unit})
	}
	sort.Slice(services, func(i, j int) bool {
		if services[i].Amount != services[j].Amount {
			return services[i].Amount > services[j].Amount
		}
		return services[i].Name < services[j].Name
	})
	if len(services) > n {
		services = services[:n]
	}
	return services
}

const intervalDateLayout = "2006-01-02"

func intervalStart(breakdown *model.CostBreakdown) time.Time {
	return parseIntervalDate(breakdown.DateInterval.Start)
}

func intervalEnd(breakdown *model.CostBreakdown) time.Time {
	return parseIntervalDate(breakdown.DateInterval.End)
}

func parseIntervalDate(raw *string) time.Time {
	if raw == nil {
		return time.Time{}
	}
	if parsed, err := time.Parse(intervalDateLayout, *raw); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.RFC3339, *raw); err == nil {
		return parsed
	}
	return time.Time{}
}
