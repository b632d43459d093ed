package accounts

import (
	"sync"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

// service is an in-memory account repository. Lifetime is scoped to the
// process that constructed it; nothing here is ambient global state.
type service struct {
	mu      sync.RWMutex
	byID    map[string]model.CloudAccount
	removed func(accountID string)
}

// Option configures the repository
type Option func(*service)

// WithRemovalHook registers a callback invoked after an account is removed,
// used to purge dependent state such as sync status.
func WithRemovalHook(hook func(accountID string)) Option {
	return func(s *service) {
		s.removed = hook
	}
}
