package azurecredentials

import (
	"testing"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validTenantID       = "11111111-2222-3333-4444-555555555555"
	validClientID       = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	validSubscriptionID = "99999999-8888-7777-6666-555555555555"
)

func TestValidateFormat(t *testing.T) {
	svc := NewService()

	tests := []struct {
		name       string
		creds      model.AzureCredentials
		wantValid  bool
		wantErrors []string
	}{
		{
			name: "valid service principal",
			creds: model.AzureCredentials{
				TenantID:     validTenantID,
				ClientID:     validClientID,
				ClientSecret: "s3cret",
			},
			wantValid: true,
		},
		{
			name: "valid with subscription",
			creds: model.AzureCredentials{
				TenantID:       validTenantID,
				ClientID:       validClientID,
				ClientSecret:   "s3cret",
				SubscriptionID: validSubscriptionID,
			},
			wantValid: true,
		},
		{
			name: "tenant id not a guid",
			creds: model.AzureCredentials{
				TenantID:     "not-a-guid",
				ClientID:     validClientID,
				ClientSecret: "s3cret",
			},
			wantErrors: []string{"tenantId must be a GUID"},
		},
		{
			name: "client secret missing",
			creds: model.AzureCredentials{
				TenantID: validTenantID,
				ClientID: validClientID,
			},
			wantErrors: []string{"clientSecret is required"},
		},
		{
			name: "subscription id malformed",
			creds: model.AzureCredentials{
				TenantID:       validTenantID,
				ClientID:       validClientID,
				ClientSecret:   "s3cret",
				SubscriptionID: "12345",
			},
			wantErrors: []string{"subscriptionId must be a GUID"},
		},
		{
			name:  "all required fields missing are reported together",
			creds: model.AzureCredentials{},
			wantErrors: []string{
				"tenantId is required",
				"clientId is required",
				"clientSecret is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.ValidateFormat(tt.creds)

			assert.Equal(t, model.TierFormat, result.Tier)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Equal(t, tt.wantErrors, result.Errors)
		})
	}
}

func TestValidateFormatRejectsOtherBundle(t *testing.T) {
	svc := NewService()

	result := svc.ValidateFormat(model.AWSCredentials{})

	require.False(t, result.Valid)
	assert.Contains(t, result.ErrorMessage(), "expected Azure credentials")
}
