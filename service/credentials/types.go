package credentials

import (
	"context"
	"time"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service"
)

const defaultLiveTimeout = 15 * time.Second

// Validator is the caller-facing two-tier validation surface
type Validator interface {
	Validate(ctx context.Context, bundle model.CredentialBundle, live bool) model.ValidationResult
}

// service dispatches validation calls to the per-provider validators and
// enforces the live-probe timeout
type dispatcher struct {
	validators  map[model.Provider]service.CredentialValidator
	liveTimeout time.Duration
}

// Option configures the dispatcher
type Option func(*dispatcher)

// WithLiveTimeout overrides the default live-probe timeout
func WithLiveTimeout(d time.Duration) Option {
	return func(s *dispatcher) {
		s.liveTimeout = d
	}
}
