package sync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service"
)

type syncService struct {
	accounts   service.AccountRepository
	validators map[model.Provider]service.CredentialValidator
	snapshots  service.SnapshotService
	tracker    Tracker
	log        *slog.Logger
}

func NewService(accounts service.AccountRepository, validators []service.CredentialValidator, snapshots service.SnapshotService, tracker Tracker, log *slog.Logger) *syncService {
	if log == nil {
		log = slog.Default()
	}
	byProvider := make(map[model.Provider]service.CredentialValidator, len(validators))
	for _, v := range validators {
		byProvider[v.Provider()] = v
	}
	return &syncService{
		accounts:   accounts,
		validators: byProvider,
		snapshots:  snapshots,
		tracker:    tracker,
		log:        log,
	}
}

// SyncAccount runs one full synchronization for the account: credential
// format validation, then a snapshot fetch. A snapshot that had to fall back
// to synthetic data is still a success, degraded with a warning.
func (s *syncService) SyncAccount(ctx context.Context, accountID string) (model.SyncState, error) {
	account, ok := s.accounts.Get(accountID)
	if !ok {
		return model.SyncState{AccountID: accountID, Phase: model.SyncUnknown}, fmt.Errorf("unknown account %q", accountID)
	}

	if err := s.tracker.Begin(accountID); err != nil {
		return s.tracker.Status(accountID), err
	}

	validator, ok := s.validators[account.Provider]
	if !ok {
		s.tracker.Fail(accountID, fmt.Errorf("no validator for provider %s", account.Provider))
		return s.tracker.Status(accountID), nil
	}

	if result := validator.ValidateFormat(account.Bundle); !result.Valid {
		s.tracker.Fail(accountID, &model.ValidationError{
			Provider: account.Provider,
			Fields:   result.Errors,
		})
		return s.tracker.Status(accountID), nil
	}

	snapshot, err := s.snapshots.Snapshot(ctx, []model.CloudAccount{account}, model.LastNDays(30))
	if err != nil {
		s.tracker.Fail(accountID, err)
		return s.tracker.Status(accountID), nil
	}

	var warning string
	if snapshot.Synthetic {
		warning = "live provider data unavailable, synchronized with synthetic telemetry"
	} else if len(snapshot.Warnings) > 0 {
		warning = strings.Join(snapshot.Warnings, "; ")
	}

	s.log.Info("account synchronized",
		"account", accountID,
		"provider", account.Provider,
		"resources", len(snapshot.Resources),
		"degraded", warning != "")

	s.tracker.Succeed(accountID, warning)
	return s.tracker.Status(accountID), nil
}

// Status reports the tracked state for an account
func (s *syncService) Status(accountID string) model.SyncState {
	return s.tracker.Status(accountID)
}

// Disconnect removes the account record and purges its sync state
func (s *syncService) Disconnect(accountID string) bool {
	removed := s.accounts.Remove(accountID)
	s.tracker.Forget(accountID)
	return removed
}
