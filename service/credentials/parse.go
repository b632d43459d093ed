package credentials

import (
	"encoding/json"
	"fmt"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

type awsPayload struct {
	AccessKeyID     string `json:"accessKeyId"`
	SecretAccessKey string `json:"secretAccessKey"`
	SessionToken    string `json:"sessionToken"`
	Region          string `json:"region"`
}

type azurePayload struct {
	TenantID       string `json:"tenantId"`
	ClientID       string `json:"clientId"`
	ClientSecret   string `json:"clientSecret"`
	SubscriptionID string `json:"subscriptionId"`
}

// ParseBundle builds a credential bundle from a caller-supplied JSON
// payload. For GCP the payload is the service account key itself, with an
// optional top-level "billingAccount" passed alongside the key fields.
func ParseBundle(provider model.Provider, raw []byte) (model.CredentialBundle, error) {
	switch provider {
	case model.ProviderAWS:
		var payload awsPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("failed to parse aws credentials: %w", err)
		}
		return model.AWSCredentials{
			AccessKeyID:     payload.AccessKeyID,
			SecretAccessKey: payload.SecretAccessKey,
			SessionToken:    payload.SessionToken,
			Region:          payload.Region,
		}, nil

	case model.ProviderAzure:
		var payload azurePayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("failed to parse azure credentials: %w", err)
		}
		return model.AzureCredentials{
			TenantID:       payload.TenantID,
			ClientID:       payload.ClientID,
			ClientSecret:   payload.ClientSecret,
			SubscriptionID: payload.SubscriptionID,
		}, nil

	case model.ProviderGCP:
		var payload struct {
			BillingAccount string `json:"billingAccount"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("failed to parse gcp credentials: %w", err)
		}
		return model.GCPCredentials{
			ServiceAccountJSON: raw,
			BillingAccount:     payload.BillingAccount,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
}
