package azuretelemetry

import (
	"github.com/Azure/azure-sdk-for-go/sdk/monitor/azquery"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
)

type service struct {
	subscriptionID string
	metricsClient  *azquery.MetricsClient
	queryClient    *armcostmanagement.QueryClient
}
