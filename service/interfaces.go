package service

import (
	"context"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

// CredentialValidator performs two-tier validation for one provider.
// ValidateLive must run the format tier first and short-circuit on failure,
// never spending a network round-trip on malformed input.
type CredentialValidator interface {
	Provider() model.Provider
	ValidateFormat(bundle model.CredentialBundle) model.ValidationResult
	ValidateLive(ctx context.Context, bundle model.CredentialBundle) model.ValidationResult
}

// TelemetryService fetches metric time series and cost breakdowns for one
// provider account
type TelemetryService interface {
	Provider() model.Provider
	FetchMetrics(ctx context.Context, resourceID string, resourceType model.ResourceType, timeRange model.TimeRange) ([]model.MetricSeries, error)
	FetchCostBreakdown(ctx context.Context, timeRange model.TimeRange) (*model.CostBreakdown, error)
}

// InventoryService lists resources and waste signals for one provider account
type InventoryService interface {
	Provider() model.Provider
	ListResources(ctx context.Context) ([]model.CloudResource, error)
	WasteReport(ctx context.Context) (*model.WasteReport, error)
}

// CompletionService sends a role-tagged message list to a text-completion
// model and returns free text. No structured-output guarantee is assumed.
type CompletionService interface {
	Complete(ctx context.Context, messages []model.Message) (string, error)
}

// AccountRepository owns connected cloud account records and their
// credential bundles
type AccountRepository interface {
	Get(id string) (model.CloudAccount, bool)
	ListByUser(userID string) []model.CloudAccount
	Put(account model.CloudAccount) error
	Remove(id string) bool
}

// SnapshotService produces a best-effort cloud snapshot for a set of
// accounts. The live implementation degrades failed provider calls to
// synthetic data instead of returning an error.
type SnapshotService interface {
	Snapshot(ctx context.Context, accounts []model.CloudAccount, timeRange model.TimeRange) (*model.CloudSnapshot, error)
}
