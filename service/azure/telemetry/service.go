package azuretelemetry

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/monitor/azquery"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	azureconfig "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/azure/config"
)

func NewService(subscriptionID string, credential *azureconfig.Credential) (*service, error) {
	metricsClient, err := azquery.NewMetricsClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics client: %w", err)
	}

	queryClient, err := armcostmanagement.NewQueryClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
	}

	return &service{
		subscriptionID: subscriptionID,
		metricsClient:  metricsClient,
		queryClient:    queryClient,
	}, nil
}

func (s *service) Provider() model.Provider { return model.ProviderAzure }

// FetchMetrics queries Azure Monitor for the metric set surfaced by the
// resource type. resourceID must be a full ARM resource id.
func (s *service) FetchMetrics(ctx context.Context, resourceID string, resourceType model.ResourceType, timeRange model.TimeRange) ([]model.MetricSeries, error) {
	names := model.MetricNamesFor(resourceType)
	monitorNames, ok := monitorMetricsFor(resourceType)
	if !ok {
		return nil, &model.ProviderAPIError{
			Provider: model.ProviderAzure,
			Op:       "Metrics.QueryResource",
			Err:      fmt.Errorf("unsupported resource type %q", resourceType),
		}
	}

	metricNames := ""
	for i, n := range monitorNames {
		if i > 0 {
			metricNames += ","
		}
		metricNames += n
	}

	resp, err := s.metricsClient.QueryResource(ctx, resourceID, &azquery.MetricsClientQueryResourceOptions{
		MetricNames: to.Ptr(metricNames),
		Timespan:    to.Ptr(azquery.NewTimeInterval(timeRange.Start, timeRange.End)),
		Interval:    to.Ptr("PT1H"),
		Aggregation: to.SliceOfPtrs(azquery.AggregationTypeAverage),
	})
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAzure, Op: "Metrics.QueryResource", Err: err}
	}

	series := make([]model.MetricSeries, 0, len(names))
	for i, name := range names {
		ms := model.MetricSeries{
			ResourceID: resourceID,
			Name:       name,
			Unit:       model.MetricUnit(name),
		}
		for _, metric := range resp.Value {
			if metric.Name == nil || metric.Name.Value == nil || *metric.Name.Value != monitorNames[i] {
				continue
			}
			for _, element := range metric.TimeSeries {
				for _, value := range element.Data {
					if value.TimeStamp == nil || value.Average == nil {
						continue
					}
					ms.Points = append(ms.Points, model.MetricPoint{
						Timestamp: *value.TimeStamp,
						Value:     *value.Average,
					})
				}
			}
		}
		series = append(series, ms)
	}

	return series, nil
}

// FetchCostBreakdown queries Cost Management grouped by ServiceName over the
// range
func (s *service) FetchCostBreakdown(ctx context.Context, timeRange model.TimeRange) (*model.CostBreakdown, error) {
	scope := fmt.Sprintf("/subscriptions/%s", s.subscriptionID)

	queryDefinition := armcostmanagement.QueryDefinition{
		Type:      to.Ptr(armcostmanagement.ExportTypeActualCost),
		Timeframe: to.Ptr(armcostmanagement.TimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: to.Ptr(timeRange.Start),
			To:   to.Ptr(timeRange.End),
		},
		Dataset: &armcostmanagement.QueryDataset{
			Granularity: to.Ptr(armcostmanagement.GranularityTypeDaily),
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"totalCost": {
					Name:     to.Ptr("Cost"),
					Function: to.Ptr(armcostmanagement.FunctionTypeSum),
				},
			},
			Grouping: []*armcostmanagement.QueryGrouping{
				{
					Type: to.Ptr(armcostmanagement.QueryColumnTypeDimension),
					Name: to.Ptr("ServiceName"),
				},
			},
		},
	}

	resp, err := s.queryClient.Usage(ctx, scope, queryDefinition, nil)
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAzure, Op: "Query.Usage", Err: err}
	}

	group := make(model.CostGroup)
	if resp.Properties != nil && resp.Properties.Rows != nil {
		for _, row := range resp.Properties.Rows {
			if len(row) < 2 {
				continue
			}
			// Row format: [cost, serviceName, ...]
			cost, ok := row[0].(float64)
			if !ok {
				continue
			}
			serviceName, ok := row[1].(string)
			if !ok {
				continue
			}
			if cost <= 0 {
				continue
			}
			existing := group[serviceName]
			group[serviceName] = struct {
				Amount float64
				Unit   string
			}{Amount: existing.Amount + cost, Unit: "USD"}
		}
	}

	start := timeRange.Start.Format("2006-01-02")
	end := timeRange.End.Format("2006-01-02")

	return &model.CostBreakdown{
		Provider:     model.ProviderAzure,
		AccountID:    s.subscriptionID,
		DateInterval: model.DateInterval{Start: &start, End: &end},
		CostGroup:    group,
		Currency:     "USD",
	}, nil
}

// monitorMetricsFor maps the neutral metric set onto Azure Monitor metric
// names, index-aligned with model.MetricNamesFor.
func monitorMetricsFor(resourceType model.ResourceType) ([]string, bool) {
	switch resourceType {
	case model.ResourceTypeInstance:
		return []string{"Percentage CPU", "Network In Total", "Network Out Total"}, true
	case model.ResourceTypeDatabase:
		return []string{"cpu_percent", "connection_successful", "physical_data_read_percent"}, true
	case model.ResourceTypeFunction:
		return []string{"FunctionExecutionCount", "Http5xx", "FunctionExecutionUnits"}, true
	case model.ResourceTypeVolume:
		return []string{"Composite Disk Read Operations/sec", "Composite Disk Write Operations/sec"}, true
	case model.ResourceTypeLoadBalancer:
		return []string{"PacketCount", "SnatConnectionCount"}, true
	}
	return nil, false
}
