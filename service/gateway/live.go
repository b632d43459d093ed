package gateway

import (
	"context"
	"fmt"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	awsconfig "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/aws/config"
	awsinventory "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/aws/inventory"
	awstelemetry "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/aws/telemetry"
	azureconfig "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/azure/config"
	azureinventory "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/azure/inventory"
	azuretelemetry "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/azure/telemetry"
	gcpconfig "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/gcp/config"
	gcpinventory "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/gcp/inventory"
	gcptelemetry "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/gcp/telemetry"
)

// liveAdapters is the default AdapterFactory, building real provider
// clients from the account's credential bundle
func liveAdapters(ctx context.Context, account model.CloudAccount) (*Adapters, error) {
	switch bundle := account.Bundle.(type) {
	case model.AWSCredentials:
		cfg, err := awsconfig.NewService().FromBundle(ctx, bundle)
		if err != nil {
			return nil, err
		}
		return &Adapters{
			Telemetry: awstelemetry.NewService(cfg, account.ID),
			Inventory: awsinventory.NewService(cfg),
		}, nil

	case model.AzureCredentials:
		credential, err := azureconfig.NewService().FromBundle(bundle)
		if err != nil {
			return nil, err
		}
		telemetry, err := azuretelemetry.NewService(bundle.SubscriptionID, credential)
		if err != nil {
			return nil, err
		}
		inventory, err := azureinventory.NewService(bundle.SubscriptionID, credential)
		if err != nil {
			return nil, err
		}
		return &Adapters{Telemetry: telemetry, Inventory: inventory}, nil

	case model.GCPCredentials:
		creds, err := gcpconfig.NewService().FromBundle(ctx, bundle)
		if err != nil {
			return nil, err
		}
		telemetry, err := gcptelemetry.NewService(ctx, creds, creds.ProjectID, bundle.BillingAccount)
		if err != nil {
			return nil, err
		}
		inventory, err := gcpinventory.NewService(ctx, creds, creds.ProjectID)
		if err != nil {
			return nil, err
		}
		return &Adapters{Telemetry: telemetry, Inventory: inventory}, nil

	default:
		return nil, fmt.Errorf("unsupported credential bundle for provider %q", account.Provider)
	}
}
