package azureconfig

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

func NewService() *service {
	return &service{}
}

// FromBundle builds a service-principal credential from a stored bundle
func (s *service) FromBundle(creds model.AzureCredentials) (*azidentity.ClientSecretCredential, error) {
	credential, err := azidentity.NewClientSecretCredential(creds.TenantID, creds.ClientID, creds.ClientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}
	return credential, nil
}
