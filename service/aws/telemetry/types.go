package awstelemetry

import (
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
)

type service struct {
	accountID  string
	cwClient   *cloudwatch.Client
	costClient *costexplorer.Client
}

// cloudwatchMetric maps a provider-neutral metric name onto a CloudWatch
// namespace/metric pair
type cloudwatchMetric struct {
	namespace  string
	metricName string
	dimension  string
	stat       string
}
