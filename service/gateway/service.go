package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/synthetic"
)

func NewService(validators []service.CredentialValidator, generator synthetic.Generator, log *slog.Logger, opts ...Option) *gateway {
	byProvider := make(map[model.Provider]service.CredentialValidator, len(validators))
	for _, v := range validators {
		byProvider[v.Provider()] = v
	}

	g := &gateway{
		factory:         liveAdapters,
		validators:      byProvider,
		generator:       generator,
		providerTimeout: defaultProviderTimeout,
		log:             log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// accountResult carries whatever one account contributed, live or
// synthetic
type accountResult struct {
	resources []model.CloudResource
	costs     []model.CostBreakdown
	waste     *model.WasteReport
	warnings  []string
	synthetic bool
}

// Snapshot implements service.SnapshotService. It never fails: every
// provider error degrades that account to synthetic data and is recorded
// as a warning on the snapshot.
func (g *gateway) Snapshot(ctx context.Context, accounts []model.CloudAccount, timeRange model.TimeRange) (*model.CloudSnapshot, error) {
	if timeRange.IsZero() {
		timeRange = model.LastNDays(30)
	}

	snapshot := &model.CloudSnapshot{GatheredAt: time.Now()}

	if len(accounts) == 0 {
		result := g.syntheticResult(model.ProviderAWS, syntheticAccountID, timeRange,
			"no cloud accounts connected, using synthetic data")
		g.merge(snapshot, syntheticAccountID, result)
		return snapshot, nil
	}

	results := make(map[string]accountResult, len(accounts))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, account := range accounts {
		wg.Add(1)
		go func(account model.CloudAccount) {
			defer wg.Done()
			result := g.collect(ctx, account, timeRange)
			mu.Lock()
			results[account.ID] = result
			mu.Unlock()
		}(account)
	}
	wg.Wait()

	// merge in a fixed order so warnings and resources are stable
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		g.merge(snapshot, id, results[id])
	}

	return snapshot, nil
}

func (g *gateway) merge(snapshot *model.CloudSnapshot, accountID string, result accountResult) {
	snapshot.AccountIDs = append(snapshot.AccountIDs, accountID)
	snapshot.Resources = append(snapshot.Resources, result.resources...)
	snapshot.Costs = append(snapshot.Costs, result.costs...)
	snapshot.Waste.Merge(result.waste)
	snapshot.Warnings = append(snapshot.Warnings, result.warnings...)
	if result.synthetic {
		snapshot.Synthetic = true
	}
}

func (g *gateway) collect(ctx context.Context, account model.CloudAccount, timeRange model.TimeRange) accountResult {
	ctx, cancel := context.WithTimeout(ctx, g.providerTimeout)
	defer cancel()

	validator, ok := g.validators[account.Provider]
	if !ok {
		return g.syntheticResult(account.Provider, account.ID, timeRange,
			fmt.Sprintf("account %s: unsupported provider %q, using synthetic data", account.ID, account.Provider))
	}
	if format := validator.ValidateFormat(account.Bundle); !format.Valid {
		return g.syntheticResult(account.Provider, account.ID, timeRange,
			fmt.Sprintf("account %s: invalid credentials (%s), using synthetic data", account.ID, format.ErrorMessage()))
	}

	adapters, err := g.factory(ctx, account)
	if err != nil {
		g.log.Warn("failed to build provider adapters",
			"account", account.ID, "provider", account.Provider, "error", err)
		return g.syntheticResult(account.Provider, account.ID, timeRange,
			fmt.Sprintf("account %s: provider unavailable (%v), using synthetic data", account.ID, err))
	}

	result := accountResult{}

	resources, err := adapters.Inventory.ListResources(ctx)
	if err != nil {
		g.log.Warn("resource listing failed", "account", account.ID, "error", err)
		result.resources = g.generator.Resources(account.Provider, account.ID, timeRange)
		result.warnings = append(result.warnings,
			fmt.Sprintf("account %s: resource listing failed (%v), using synthetic resources", account.ID, err))
		result.synthetic = true
	} else {
		result.resources = g.attachMetrics(ctx, adapters.Telemetry, resources, timeRange, account.ID, &result)
	}

	cost, err := adapters.Telemetry.FetchCostBreakdown(ctx, timeRange)
	if err != nil {
		g.log.Warn("cost breakdown failed", "account", account.ID, "error", err)
		cost = g.generator.CostBreakdown(account.Provider, account.ID, timeRange)
		result.warnings = append(result.warnings,
			fmt.Sprintf("account %s: cost data unavailable (%v), using synthetic costs", account.ID, err))
		result.synthetic = true
	}
	result.costs = append(result.costs, *cost)

	// the preceding period of equal length feeds the month-over-month
	// comparison; a miss here is not worth degrading the whole account
	previous := model.TimeRange{Start: timeRange.Start.Add(-timeRange.Duration()), End: timeRange.Start}
	if previousCost, err := adapters.Telemetry.FetchCostBreakdown(ctx, previous); err != nil {
		g.log.Debug("previous period cost breakdown failed", "account", account.ID, "error", err)
	} else {
		result.costs = append(result.costs, *previousCost)
	}

	waste, err := adapters.Inventory.WasteReport(ctx)
	if err != nil {
		g.log.Warn("waste detection failed", "account", account.ID, "error", err)
		waste = g.generator.Waste(account.Provider, account.ID)
		result.warnings = append(result.warnings,
			fmt.Sprintf("account %s: waste detection failed (%v), using synthetic signals", account.ID, err))
		result.synthetic = true
	}
	result.waste = waste

	return result
}

// attachMetrics fetches metrics for each resource concurrently. A failed
// fetch degrades that one resource to synthetic series.
func (g *gateway) attachMetrics(ctx context.Context, telemetry service.TelemetryService, resources []model.CloudResource, timeRange model.TimeRange, accountID string, result *accountResult) []model.CloudResource {
	var wg sync.WaitGroup
	var mu sync.Mutex
	degraded := false

	for i := range resources {
		wg.Add(1)
		go func(resource *model.CloudResource) {
			defer wg.Done()
			series, err := telemetry.FetchMetrics(ctx, resource.ID, resource.Type, timeRange)
			if err != nil {
				series = g.generator.Metrics(resource.ID, resource.Type, timeRange)
				mu.Lock()
				degraded = true
				mu.Unlock()
			}
			resource.Metrics = series
		}(&resources[i])
	}
	wg.Wait()

	if degraded {
		result.warnings = append(result.warnings,
			fmt.Sprintf("account %s: some metrics unavailable, filled with synthetic series", accountID))
	}
	return resources
}

func (g *gateway) syntheticResult(provider model.Provider, accountID string, timeRange model.TimeRange, warning string) accountResult {
	previous := model.TimeRange{Start: timeRange.Start.Add(-timeRange.Duration()), End: timeRange.Start}
	return accountResult{
		resources: g.generator.Resources(provider, accountID, timeRange),
		costs: []model.CostBreakdown{
			*g.generator.CostBreakdown(provider, accountID, timeRange),
			*g.generator.CostBreakdown(provider, accountID, previous),
		},
		waste:     g.generator.Waste(provider, accountID),
		warnings:  []string{warning},
		synthetic: true,
	}
}
