package gcptelemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
	"google.golang.org/api/monitoring/v3"
	"google.golang.org/api/option"
)

func NewService(ctx context.Context, creds *google.Credentials, projectID, billingAccount string) (*service, error) {
	monitoringClient, err := monitoring.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create monitoring client: %w", err)
	}

	bqClient, err := bigquery.NewClient(ctx, projectID, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}

	return &service{
		projectID:        projectID,
		billingAccount:   billingAccount,
		monitoringClient: monitoringClient,
		bqClient:         bqClient,
	}, nil
}

// Close closes the BigQuery client
func (s *service) Close() error {
	return s.bqClient.Close()
}

func (s *service) Provider() model.Provider { return model.ProviderGCP }

// FetchMetrics lists Cloud Monitoring time series for the metric set
// surfaced by the resource type, aligned to hourly means.
func (s *service) FetchMetrics(ctx context.Context, resourceID string, resourceType model.ResourceType, timeRange model.TimeRange) ([]model.MetricSeries, error) {
	names := model.MetricNamesFor(resourceType)
	metricTypes, ok := monitoringMetricsFor(resourceType)
	if !ok {
		return nil, &model.ProviderAPIError{
			Provider: model.ProviderGCP,
			Op:       "TimeSeries.List",
			Err:      fmt.Errorf("unsupported resource type %q", resourceType),
		}
	}

	series := make([]model.MetricSeries, 0, len(names))
	for i, name := range names {
		filter := fmt.Sprintf(`metric.type = %q AND resource.labels.instance_id = %q`, metricTypes[i], resourceID)
		if resourceType == model.ResourceTypeDatabase {
			filter = fmt.Sprintf(`metric.type = %q AND resource.labels.database_id = %q`, metricTypes[i], resourceID)
		}

		resp, err := s.monitoringClient.Projects.TimeSeries.List("projects/"+s.projectID).
			Filter(filter).
			IntervalStartTime(timeRange.Start.Format(time.RFC3339)).
			IntervalEndTime(timeRange.End.Format(time.RFC3339)).
			AggregationAlignmentPeriod("3600s").
			AggregationPerSeriesAligner("ALIGN_MEAN").
			Context(ctx).Do()
		if err != nil {
			return nil, &model.ProviderAPIError{Provider: model.ProviderGCP, Op: "TimeSeries.List", Err: err}
		}

		ms := model.MetricSeries{
			ResourceID: resourceID,
			Name:       name,
			Unit:       model.MetricUnit(name),
		}
		for _, ts := range resp.TimeSeries {
			for _, point := range ts.Points {
				if point.Interval == nil || point.Value == nil {
					continue
				}
				stamp, err := time.Parse(time.RFC3339, point.Interval.EndTime)
				if err != nil {
					continue
				}
				ms.Points = append(ms.Points, model.MetricPoint{
					Timestamp: stamp,
					Value:     typedValue(point.Value),
				})
			}
		}
		series = append(series, ms)
	}

	return series, nil
}

// FetchCostBreakdown queries the BigQuery billing export table grouped by
// service. Billing export must be enabled for the billing account.
func (s *service) FetchCostBreakdown(ctx context.Context, timeRange model.TimeRange) (*model.CostBreakdown, error) {
	billingAccountID := strings.ReplaceAll(s.billingAccount, "billingAccounts/", "")
	billingAccountID = strings.ReplaceAll(billingAccountID, "-", "_")

	query := fmt.Sprintf(`
		SELECT
			service.description AS service_name,
			SUM(cost) AS total_cost,
			currency
		FROM %s.%s.gcp_billing_export_v1_%s
		WHERE
			project.id = @projectID
			AND DATE(usage_start_time) >= @startDate
			AND DATE(usage_start_time) < @endDate
		GROUP BY service.description, currency
		HAVING SUM(cost) > 0
		ORDER BY total_cost DESC
	`, s.projectID, billingExportDataset, billingAccountID)

	q := s.bqClient.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "projectID", Value: s.projectID},
		{Name: "startDate", Value: timeRange.Start.Format("2006-01-02")},
		{Name: "endDate", Value: timeRange.End.Format("2006-01-02")},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderGCP, Op: "billing export query", Err: err}
	}

	group := make(model.CostGroup)
	currency := "USD"
	for {
		var row struct {
			ServiceName string  `bigquery:"service_name"`
			TotalCost   float64 `bigquery:"total_cost"`
			Currency    string  `bigquery:"currency"`
		}

		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &model.ProviderAPIError{Provider: model.ProviderGCP, Op: "billing export read", Err: err}
		}

		if row.Currency != "" {
			currency = row.Currency
		}
		group[row.ServiceName] = struct {
			Amount float64
			Unit   string
		}{Amount: row.TotalCost, Unit: row.Currency}
	}

	start := timeRange.Start.Format("2006-01-02")
	end := timeRange.End.Format("2006-01-02")

	return &model.CostBreakdown{
		Provider:     model.ProviderGCP,
		AccountID:    s.projectID,
		DateInterval: model.DateInterval{Start: &start, End: &end},
		CostGroup:    group,
		Currency:     currency,
	}, nil
}

func typedValue(v *monitoring.TypedValue) float64 {
	switch {
	case v.DoubleValue != nil:
		return *v.DoubleValue
	case v.Int64Value != nil:
		return float64(*v.Int64Value)
	default:
		return 0
	}
}

// monitoringMetricsFor maps the neutral metric set onto Cloud Monitoring
// metric types, index-aligned with model.MetricNamesFor.
func monitoringMetricsFor(resourceType model.ResourceType) ([]string, bool) {
	switch resourceType {
	case model.ResourceTypeInstance:
		return []string{
			"compute.googleapis.com/instance/cpu/utilization",
			"compute.googleapis.com/instance/network/received_bytes_count",
			"compute.googleapis.com/instance/network/sent_bytes_count",
		}, true
	case model.ResourceTypeDatabase:
		return []string{
			"cloudsql.googleapis.com/database/cpu/utilization",
			"cloudsql.googleapis.com/database/network/connections",
			"cloudsql.googleapis.com/database/disk/read_ops_count",
		}, true
	case model.ResourceTypeFunction:
		return []string{
			"cloudfunctions.googleapis.com/function/execution_count",
			"cloudfunctions.googleapis.com/function/execution_count",
			"cloudfunctions.googleapis.com/function/execution_times",
		}, true
	case model.ResourceTypeVolume:
		return []string{
			"compute.googleapis.com/instance/disk/read_ops_count",
			"compute.googleapis.com/instance/disk/write_ops_count",
		}, true
	case model.ResourceTypeLoadBalancer:
		return []string{
			"loadbalancing.googleapis.com/https/request_count",
			"loadbalancing.googleapis.com/tcp_ssl_proxy/open_connections",
		}, true
	}
	return nil, false
}
