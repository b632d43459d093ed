package credentials

import (
	"context"
	"fmt"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service"
)

func NewService(validators []service.CredentialValidator, opts ...Option) *dispatcher {
	s := &dispatcher{
		validators:  make(map[model.Provider]service.CredentialValidator, len(validators)),
		liveTimeout: defaultLiveTimeout,
	}
	for _, v := range validators {
		s.validators[v.Provider()] = v
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate runs format validation and, when live is requested and the format
// tier passed, the live probe under the configured timeout. It never returns
// an error for a rejected credential; rejection is a ValidationResult.
func (s *dispatcher) Validate(ctx context.Context, bundle model.CredentialBundle, live bool) model.ValidationResult {
	if bundle == nil {
		return model.ValidationResult{
			Tier:   model.TierFormat,
			Errors: []string{"credential bundle is required"},
		}
	}

	validator, ok := s.validators[bundle.Provider()]
	if !ok {
		return model.ValidationResult{
			Tier:   model.TierFormat,
			Errors: []string{fmt.Sprintf("unsupported provider %q", bundle.Provider())},
		}
	}

	result := validator.ValidateFormat(bundle)
	if !result.Valid || !live {
		return result
	}

	liveCtx, cancel := context.WithTimeout(ctx, s.liveTimeout)
	defer cancel()
	return validator.ValidateLive(liveCtx, bundle)
}
