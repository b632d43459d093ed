package gcpcredentials

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/option"
)

func NewService() *service {
	return &service{}
}

func (s *service) Provider() model.Provider { return model.ProviderGCP }

// ValidateFormat parses the service-account key file and checks its required
// fields. All missing fields are enumerated in one pass.
func (s *service) ValidateFormat(bundle model.CredentialBundle) model.ValidationResult {
	result := model.ValidationResult{Tier: model.TierFormat}

	creds, ok := bundle.(model.GCPCredentials)
	if !ok {
		result.Errors = append(result.Errors, fmt.Sprintf("expected GCP credentials, got %s bundle", bundle.Provider()))
		return result
	}

	var key serviceAccountKey
	if err := json.Unmarshal(creds.ServiceAccountJSON, &key); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("service account key is not valid JSON: %v", err))
		return result
	}

	var missing []string
	for field, value := range map[string]string{
		"type":           key.Type,
		"project_id":     key.ProjectID,
		"private_key_id": key.PrivateKeyID,
		"private_key":    key.PrivateKey,
		"client_email":   key.ClientEmail,
		"client_id":      key.ClientID,
	} {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("missing fields: %s", strings.Join(sortedCopy(missing), ", ")))
	}

	if key.Type != "" && key.Type != serviceAccountType {
		result.Errors = append(result.Errors, fmt.Sprintf("type must be %q", serviceAccountType))
	}
	if key.PrivateKey != "" && !strings.Contains(key.PrivateKey, pemPrivateKeyMark) {
		result.Errors = append(result.Errors, "private_key is not a PEM-encoded private key")
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateLive exchanges the key for credentials and resolves the project.
// Format failures short-circuit before any network call.
func (s *service) ValidateLive(ctx context.Context, bundle model.CredentialBundle) model.ValidationResult {
	if result := s.ValidateFormat(bundle); !result.Valid {
		return result
	}
	creds := bundle.(model.GCPCredentials)

	result := model.ValidationResult{Tier: model.TierLive}

	googleCreds, err := google.CredentialsFromJSON(ctx, creds.ServiceAccountJSON,
		cloudresourcemanager.CloudPlatformReadOnlyScope)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to load service account credentials: %v", err))
		return result
	}

	client, err := cloudresourcemanager.NewService(ctx, option.WithCredentials(googleCreds))
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to create resource manager client: %v", err))
		return result
	}

	project, err := client.Projects.Get(googleCreds.ProjectID).Context(ctx).Do()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("project lookup failed: %v", err))
		return result
	}

	result.Valid = true
	result.Identity = &model.AccountInfo{
		Provider:    model.ProviderGCP,
		AccountID:   googleCreds.ProjectID,
		AccountName: project.Name,
	}
	return result
}

func sortedCopy(fields []string) []string {
	out := make([]string, len(fields))
	copy(out, fields)
	sort.Strings(out)
	return out
}
