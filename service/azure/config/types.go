package azureconfig

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

type service struct{}

type ConfigService interface {
	FromBundle(creds model.AzureCredentials) (*azidentity.ClientSecretCredential, error)
}

// Credential is what the Azure adapters accept, allowing reuse across services
type Credential = azidentity.ClientSecretCredential
