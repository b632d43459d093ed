package gcpconfig

import (
	"context"
	"fmt"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/monitoring/v3"
)

func NewService() *service {
	return &service{}
}

// FromBundle exchanges a stored service-account key for Google credentials.
// The returned credentials carry the key's project id.
func (s *service) FromBundle(ctx context.Context, creds model.GCPCredentials) (*google.Credentials, error) {
	googleCreds, err := google.CredentialsFromJSON(ctx, creds.ServiceAccountJSON,
		cloudresourcemanager.CloudPlatformReadOnlyScope,
		compute.ComputeReadonlyScope,
		monitoring.MonitoringReadScope,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load service account credentials: %w", err)
	}
	return googleCreds, nil
}
