package awscredentials

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

func NewService(defaultRegion string) *service {
	if defaultRegion == "" {
		defaultRegion = "us-east-1"
	}
	return &service{defaultRegion: defaultRegion}
}

func (s *service) Provider() model.Provider { return model.ProviderAWS }

// ValidateFormat runs the structural tier: access key id shape and secret
// length. All failing fields are reported in one pass.
func (s *service) ValidateFormat(bundle model.CredentialBundle) model.ValidationResult {
	result := model.ValidationResult{Tier: model.TierFormat}

	creds, ok := bundle.(model.AWSCredentials)
	if !ok {
		result.Errors = append(result.Errors, fmt.Sprintf("expected AWS credentials, got %s bundle", bundle.Provider()))
		return result
	}

	if creds.AccessKeyID == "" {
		result.Errors = append(result.Errors, "accessKeyId is required")
	} else if !accessKeyIDPattern.MatchString(creds.AccessKeyID) {
		result.Errors = append(result.Errors, "accessKeyId must be 20 uppercase alphanumeric characters")
	}

	if creds.SecretAccessKey == "" {
		result.Errors = append(result.Errors, "secretAccessKey is required")
	} else if len(creds.SecretAccessKey) != secretAccessKeyLength {
		result.Errors = append(result.Errors, fmt.Sprintf("secretAccessKey must be exactly %d characters", secretAccessKeyLength))
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateLive resolves the caller identity via STS. Format failures
// short-circuit before any network call.
func (s *service) ValidateLive(ctx context.Context, bundle model.CredentialBundle) model.ValidationResult {
	if result := s.ValidateFormat(bundle); !result.Valid {
		return result
	}
	creds := bundle.(model.AWSCredentials)

	result := model.ValidationResult{Tier: model.TierLive}

	region := creds.Region
	if region == "" {
		region = s.defaultRegion
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(awscreds.NewStaticCredentialsProvider(
			creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)),
	)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to configure AWS client: %v", err))
		return result
	}

	output, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("STS identity lookup failed: %v", err))
		return result
	}

	result.Valid = true
	result.Identity = &model.AccountInfo{
		Provider:    model.ProviderAWS,
		AccountID:   aws.ToString(output.Account),
		AccountName: aws.ToString(output.Arn),
	}
	return result
}
