package azurecredentials

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

func NewService() *service {
	return &service{}
}

func (s *service) Provider() model.Provider { return model.ProviderAzure }

// ValidateFormat checks required service-principal fields and GUID shapes.
// All failing fields are reported in one pass.
func (s *service) ValidateFormat(bundle model.CredentialBundle) model.ValidationResult {
	result := model.ValidationResult{Tier: model.TierFormat}

	creds, ok := bundle.(model.AzureCredentials)
	if !ok {
		result.Errors = append(result.Errors, fmt.Sprintf("expected Azure credentials, got %s bundle", bundle.Provider()))
		return result
	}

	if creds.TenantID == "" {
		result.Errors = append(result.Errors, "tenantId is required")
	} else if !guidPattern.MatchString(creds.TenantID) {
		result.Errors = append(result.Errors, "tenantId must be a GUID")
	}

	if creds.ClientID == "" {
		result.Errors = append(result.Errors, "clientId is required")
	} else if !guidPattern.MatchString(creds.ClientID) {
		result.Errors = append(result.Errors, "clientId must be a GUID")
	}

	if creds.ClientSecret == "" {
		result.Errors = append(result.Errors, "clientSecret is required")
	}

	if creds.SubscriptionID != "" && !guidPattern.MatchString(creds.SubscriptionID) {
		result.Errors = append(result.Errors, "subscriptionId must be a GUID")
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateLive acquires an ARM token with the service principal and, when a
// subscription is configured, resolves its display name. Format failures
// short-circuit before any network call.
func (s *service) ValidateLive(ctx context.Context, bundle model.CredentialBundle) model.ValidationResult {
	if result := s.ValidateFormat(bundle); !result.Valid {
		return result
	}
	creds := bundle.(model.AzureCredentials)

	result := model.ValidationResult{Tier: model.TierLive}

	credential, err := azidentity.NewClientSecretCredential(creds.TenantID, creds.ClientID, creds.ClientSecret, nil)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to build service principal credential: %v", err))
		return result
	}

	if _, err := credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{armTokenScope}}); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("token acquisition failed: %v", err))
		return result
	}

	identity := &model.AccountInfo{
		Provider:    model.ProviderAzure,
		AccountID:   creds.TenantID,
		AccountName: creds.TenantID,
	}

	if creds.SubscriptionID != "" {
		client, err := armsubscriptions.NewClient(credential, nil)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to create subscriptions client: %v", err))
			return result
		}
		resp, err := client.Get(ctx, creds.SubscriptionID, nil)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("subscription lookup failed: %v", err))
			return result
		}
		identity.AccountID = creds.SubscriptionID
		if resp.DisplayName != nil {
			identity.AccountName = *resp.DisplayName
		}
	}

	result.Valid = true
	result.Identity = identity
	return result
}
