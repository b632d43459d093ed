package awsconfig

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

type service struct{}

type ConfigService interface {
	FromBundle(ctx context.Context, creds model.AWSCredentials) (aws.Config, error)
	Default(ctx context.Context, region, profile string) (aws.Config, error)
}
