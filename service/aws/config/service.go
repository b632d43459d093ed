package awsconfig

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

func NewService() *service {
	return &service{}
}

// FromBundle builds an AWS config from a stored credential bundle
func (s *service) FromBundle(ctx context.Context, creds model.AWSCredentials) (aws.Config, error) {
	region := creds.Region
	if region == "" {
		region = "us-east-1"
	}
	return config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(awscreds.NewStaticCredentialsProvider(
			creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)),
	)
}

// Default builds an AWS config from the ambient credential chain
func (s *service) Default(ctx context.Context, region, profile string) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx, config.WithRegion(region), config.WithSharedConfigProfile(profile))
}
