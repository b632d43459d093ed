package credentials

import (
	"context"
	"testing"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingValidator counts tier invocations so tests can assert the
// format tier short-circuits the live probe.
type recordingValidator struct {
	provider    model.Provider
	formatValid bool
	formatCalls int
	liveCalls   int
}

var _ service.CredentialValidator = (*recordingValidator)(nil)

func (v *recordingValidator) Provider() model.Provider { return v.provider }

func (v *recordingValidator) ValidateFormat(model.CredentialBundle) model.ValidationResult {
	v.formatCalls++
	result := model.ValidationResult{Tier: model.TierFormat, Valid: v.formatValid}
	if !v.formatValid {
		result.Errors = []string{"accessKeyId is required"}
	}
	return result
}

func (v *recordingValidator) ValidateLive(context.Context, model.CredentialBundle) model.ValidationResult {
	v.liveCalls++
	return model.ValidationResult{Tier: model.TierLive, Valid: true}
}

func TestValidateNilBundle(t *testing.T) {
	svc := NewService(nil)

	result := svc.Validate(context.Background(), nil, false)

	require.False(t, result.Valid)
	assert.Equal(t, model.TierFormat, result.Tier)
	assert.Equal(t, []string{"credential bundle is required"}, result.Errors)
}

func TestValidateUnsupportedProvider(t *testing.T) {
	svc := NewService([]service.CredentialValidator{
		&recordingValidator{provider: model.ProviderAWS, formatValid: true},
	})

	result := svc.Validate(context.Background(), model.AzureCredentials{}, false)

	require.False(t, result.Valid)
	assert.Contains(t, result.ErrorMessage(), `unsupported provider "azure"`)
}

func TestValidateFormatOnly(t *testing.T) {
	validator := &recordingValidator{provider: model.ProviderAWS, formatValid: true}
	svc := NewService([]service.CredentialValidator{validator})

	result := svc.Validate(context.Background(), model.AWSCredentials{}, false)

	assert.True(t, result.Valid)
	assert.Equal(t, model.TierFormat, result.Tier)
	assert.Equal(t, 1, validator.formatCalls)
	assert.Zero(t, validator.liveCalls, "live probe must not run when not requested")
}

func TestValidateFormatFailureShortCircuitsLive(t *testing.T) {
	validator := &recordingValidator{provider: model.ProviderAWS, formatValid: false}
	svc := NewService([]service.CredentialValidator{validator})

	result := svc.Validate(context.Background(), model.AWSCredentials{}, true)

	require.False(t, result.Valid)
	assert.Equal(t, model.TierFormat, result.Tier)
	assert.Zero(t, validator.liveCalls, "live probe must not run after a format failure")
}

func TestValidateLiveRunsAfterFormatPass(t *testing.T) {
	validator := &recordingValidator{provider: model.ProviderAWS, formatValid: true}
	svc := NewService([]service.CredentialValidator{validator})

	result := svc.Validate(context.Background(), model.AWSCredentials{}, true)

	assert.True(t, result.Valid)
	assert.Equal(t, model.TierLive, result.Tier)
	assert.Equal(t, 1, validator.liveCalls)
}

func TestParseBundle(t *testing.T) {
	t.Run("aws", func(t *testing.T) {
		bundle, err := ParseBundle(model.ProviderAWS, []byte(`{"accessKeyId":"AKIA","secretAccessKey":"s","region":"eu-west-1"}`))
		require.NoError(t, err)

		creds, ok := bundle.(model.AWSCredentials)
		require.True(t, ok)
		assert.Equal(t, "AKIA", creds.AccessKeyID)
		assert.Equal(t, "eu-west-1", creds.Region)
	})

	t.Run("azure", func(t *testing.T) {
		bundle, err := ParseBundle(model.ProviderAzure, []byte(`{"tenantId":"t","clientId":"c","clientSecret":"s"}`))
		require.NoError(t, err)

		creds, ok := bundle.(model.AzureCredentials)
		require.True(t, ok)
		assert.Equal(t, "t", creds.TenantID)
	})

	t.Run("gcp keeps raw key and billing account", func(t *testing.T) {
		raw := []byte(`{"type":"service_account","billingAccount":"ABC-DEF"}`)
		bundle, err := ParseBundle(model.ProviderGCP, raw)
		require.NoError(t, err)

		creds, ok := bundle.(model.GCPCredentials)
		require.True(t, ok)
		assert.Equal(t, raw, creds.ServiceAccountJSON)
		assert.Equal(t, "ABC-DEF", creds.BillingAccount)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		_, err := ParseBundle(model.Provider("oracle"), []byte(`{}`))
		assert.ErrorContains(t, err, `unsupported provider "oracle"`)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := ParseBundle(model.ProviderAWS, []byte(`{`))
		assert.ErrorContains(t, err, "failed to parse aws credentials")
	})
}
