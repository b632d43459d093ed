package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/synthetic"
)

// Adapters bundles the provider services built for one account's bundle
type Adapters struct {
	Telemetry service.TelemetryService
	Inventory service.InventoryService
}

// AdapterFactory builds live provider adapters for an account
type AdapterFactory func(ctx context.Context, account model.CloudAccount) (*Adapters, error)

type gateway struct {
	factory         AdapterFactory
	validators      map[model.Provider]service.CredentialValidator
	generator       synthetic.Generator
	providerTimeout time.Duration
	log             *slog.Logger
}

type Option func(*gateway)

// WithAdapterFactory replaces the live provider constructors
func WithAdapterFactory(factory AdapterFactory) Option {
	return func(g *gateway) { g.factory = factory }
}

// WithProviderTimeout overrides the per-account deadline
func WithProviderTimeout(d time.Duration) Option {
	return func(g *gateway) { g.providerTimeout = d }
}

const defaultProviderTimeout = 30 * time.Second

// syntheticAccountID names the pseudo-account used when no real account
// is connected
const syntheticAccountID = "synthetic"
