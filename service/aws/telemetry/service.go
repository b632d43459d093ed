package awstelemetry

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

func NewService(awsconfig aws.Config, accountID string) *service {
	return &service{
		accountID:  accountID,
		cwClient:   cloudwatch.NewFromConfig(awsconfig),
		costClient: costexplorer.NewFromConfig(awsconfig),
	}
}

func (s *service) Provider() model.Provider { return model.ProviderAWS }

// FetchMetrics queries CloudWatch for the metric set surfaced by the
// resource type, one series per metric, hourly resolution.
func (s *service) FetchMetrics(ctx context.Context, resourceID string, resourceType model.ResourceType, timeRange model.TimeRange) ([]model.MetricSeries, error) {
	names := model.MetricNamesFor(resourceType)

	queries := make([]cwtypes.MetricDataQuery, 0, len(names))
	for i, name := range names {
		cw, ok := cloudwatchMetricFor(resourceType, name)
		if !ok {
			return nil, &model.ProviderAPIError{
				Provider: model.ProviderAWS,
				Op:       "GetMetricData",
				Err:      fmt.Errorf("unsupported resource type %q", resourceType),
			}
		}
		queries = append(queries, cwtypes.MetricDataQuery{
			Id: aws.String(fmt.Sprintf("m%d", i)),
			MetricStat: &cwtypes.MetricStat{
				Metric: &cwtypes.Metric{
					Namespace:  aws.String(cw.namespace),
					MetricName: aws.String(cw.metricName),
					Dimensions: []cwtypes.Dimension{
						{Name: aws.String(cw.dimension), Value: aws.String(resourceID)},
					},
				},
				Period: aws.Int32(3600),
				Stat:   aws.String(cw.stat),
			},
		})
	}

	output, err := s.cwClient.GetMetricData(ctx, &cloudwatch.GetMetricDataInput{
		StartTime:         aws.Time(timeRange.Start),
		EndTime:           aws.Time(timeRange.End),
		MetricDataQueries: queries,
	})
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAWS, Op: "GetMetricData", Err: err}
	}

	series := make([]model.MetricSeries, 0, len(names))
	for i, name := range names {
		id := fmt.Sprintf("m%d", i)
		ms := model.MetricSeries{
			ResourceID: resourceID,
			Name:       name,
			Unit:       model.MetricUnit(name),
		}
		for _, result := range output.MetricDataResults {
			if aws.ToString(result.Id) != id {
				continue
			}
			for j := range result.Values {
				ms.Points = append(ms.Points, model.MetricPoint{
					Timestamp: result.Timestamps[j],
					Value:     result.Values[j],
				})
			}
		}
		sort.Slice(ms.Points, func(a, b int) bool {
			return ms.Points[a].Timestamp.Before(ms.Points[b].Timestamp)
		})
		series = append(series, ms)
	}

	return series, nil
}

// FetchCostBreakdown queries Cost Explorer grouped by service over the range
func (s *service) FetchCostBreakdown(ctx context.Context, timeRange model.TimeRange) (*model.CostBreakdown, error) {
	costsAggregation := "UnblendedCost"

	input := &costexplorer.GetCostAndUsageInput{
		Granularity: cetypes.GranularityMonthly,
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(timeRange.Start.Format("2006-01-02")),
			End:   aws.String(timeRange.End.Format("2006-01-02")),
		},
		Metrics: []string{costsAggregation},
		GroupBy: []cetypes.GroupDefinition{
			{
				Key:  aws.String("SERVICE"),
				Type: cetypes.GroupDefinitionTypeDimension,
			},
		},
	}

	output, err := s.costClient.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAWS, Op: "GetCostAndUsage", Err: err}
	}

	group := make(model.CostGroup)
	currency := "USD"
	for _, timeResult := range output.ResultsByTime {
		for _, g := range timeResult.Groups {
			metric, ok := g.Metrics[costsAggregation]
			if !ok || metric.Amount == nil || len(g.Keys) == 0 {
				continue
			}
			amount, err := strconv.ParseFloat(*metric.Amount, 64)
			if err != nil || amount == 0 {
				continue
			}
			unit := currency
			if metric.Unit != nil {
				unit = *metric.Unit
				currency = unit
			}
			existing := group[g.Keys[0]]
			group[g.Keys[0]] = struct {
				Amount float64
				Unit   string
			}{Amount: existing.Amount + amount, Unit: unit}
		}
	}

	start := timeRange.Start.Format("2006-01-02")
	end := timeRange.End.Format("2006-01-02")

	return &model.CostBreakdown{
		Provider:     model.ProviderAWS,
		AccountID:    s.accountID,
		DateInterval: model.DateInterval{Start: &start, End: &end},
		CostGroup:    group,
		Currency:     currency,
	}, nil
}

func cloudwatchMetricFor(resourceType model.ResourceType, name string) (cloudwatchMetric, bool) {
	switch resourceType {
	case model.ResourceTypeInstance:
		m := map[string]cloudwatchMetric{
			"cpu_utilization": {"AWS/EC2", "CPUUtilization", "InstanceId", "Average"},
			"network_in":      {"AWS/EC2", "NetworkIn", "InstanceId", "Sum"},
			"network_out":     {"AWS/EC2", "NetworkOut", "InstanceId", "Sum"},
		}
		cw, ok := m[name]
		return cw, ok
	case model.ResourceTypeDatabase:
		m := map[string]cloudwatchMetric{
			"cpu_utilization":      {"AWS/RDS", "CPUUtilization", "DBInstanceIdentifier", "Average"},
			"database_connections": {"AWS/RDS", "DatabaseConnections", "DBInstanceIdentifier", "Average"},
			"read_iops":            {"AWS/RDS", "ReadIOPS", "DBInstanceIdentifier", "Average"},
		}
		cw, ok := m[name]
		return cw, ok
	case model.ResourceTypeFunction:
		m := map[string]cloudwatchMetric{
			"invocations": {"AWS/Lambda", "Invocations", "FunctionName", "Sum"},
			"errors":      {"AWS/Lambda", "Errors", "FunctionName", "Sum"},
			"duration":    {"AWS/Lambda", "Duration", "FunctionName", "Average"},
		}
		cw, ok := m[name]
		return cw, ok
	case model.ResourceTypeVolume:
		m := map[string]cloudwatchMetric{
			"read_ops":  {"AWS/EBS", "VolumeReadOps", "VolumeId", "Sum"},
			"write_ops": {"AWS/EBS", "VolumeWriteOps", "VolumeId", "Sum"},
		}
		cw, ok := m[name]
		return cw, ok
	case model.ResourceTypeLoadBalancer:
		m := map[string]cloudwatchMetric{
			"request_count":      {"AWS/ApplicationELB", "RequestCount", "LoadBalancer", "Sum"},
			"active_connections": {"AWS/ApplicationELB", "ActiveConnectionCount", "LoadBalancer", "Sum"},
		}
		cw, ok := m[name]
		return cw, ok
	}
	return cloudwatchMetric{}, false
}
