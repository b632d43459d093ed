package accounts

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

func NewService(opts ...Option) *service {
	s := &service{
		byID: make(map[string]model.CloudAccount),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores an account record, assigning an id when absent
func (s *service) Put(account model.CloudAccount) error {
	if account.UserID == "" {
		return fmt.Errorf("account is missing a user id")
	}
	if account.Bundle == nil {
		return fmt.Errorf("account %q has no credential bundle", account.Name)
	}
	if account.Provider == "" {
		account.Provider = account.Bundle.Provider()
	}
	if account.Provider != account.Bundle.Provider() {
		return fmt.Errorf("account provider %s does not match bundle provider %s", account.Provider, account.Bundle.Provider())
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[account.ID] = account
	return nil
}

// Get returns the account record for an id
func (s *service) Get(id string) (model.CloudAccount, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.byID[id]
	return account, ok
}

// ListByUser returns all accounts connected by a user, ordered by name
func (s *service) ListByUser(userID string) []model.CloudAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.CloudAccount
	for _, account := range s.byID {
		if account.UserID == userID {
			result = append(result, account)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Remove deletes the account record and notifies the removal hook so
// dependent state (sync status, cached warnings) is purged with it
func (s *service) Remove(id string) bool {
	s.mu.Lock()
	_, ok := s.byID[id]
	delete(s.byID, id)
	s.mu.Unlock()

	if ok && s.removed != nil {
		s.removed(id)
	}
	return ok
}
