package gcpconfig

import (
	"context"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"golang.org/x/oauth2/google"
)

type service struct{}

type ConfigService interface {
	FromBundle(ctx context.Context, creds model.GCPCredentials) (*google.Credentials, error)
}
