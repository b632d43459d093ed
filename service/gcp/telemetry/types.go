package gcptelemetry

import (
	"cloud.google.com/go/bigquery"
	"google.golang.org/api/monitoring/v3"
)

type service struct {
	projectID        string
	billingAccount   string
	monitoringClient *monitoring.Service
	bqClient         *bigquery.Client
}

// billingExportDataset is the conventional dataset holding the billing
// export table
const billingExportDataset = "billing_export"
