package model

import "time"

// TimeRange bounds a metric or cost query
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// LastNDays returns a range ending now and starting n days earlier
func LastNDays(n int) TimeRange {
	now := time.Now().UTC()
	return TimeRange{Start: now.AddDate(0, 0, -n), End: now}
}

// Duration returns the length of the range
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// IsZero reports whether the range is unset
func (r TimeRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// MetricPoint is a single sample in a time series
type MetricPoint struct {
	Timestamp time.Time
	Value     float64
}

// MetricSeries is a named time series for one resource. Live adapters and the
// synthetic generator produce the same shape so callers never branch on origin.
type MetricSeries struct {
	ResourceID string
	Name       string
	Unit       string
	Points     []MetricPoint
	Synthetic  bool
}

// MetricNamesFor returns the provider-neutral metric set surfaced for a
// resource type. Adapters translate these to provider-specific metric ids.
func MetricNamesFor(rt ResourceType) []string {
	switch rt {
	case ResourceTypeDatabase:
		return []string{"cpu_utilization", "database_connections", "read_iops"}
	case ResourceTypeFunction:
		return []string{"invocations", "errors", "duration"}
	case ResourceTypeVolume:
		return []string{"read_ops", "write_ops"}
	case ResourceTypeLoadBalancer:
		return []string{"request_count", "active_connections"}
	default:
		return []string{"cpu_utilization", "network_in", "network_out"}
	}
}

// MetricUnit returns the unit contract for a metric name
func MetricUnit(name string) string {
	switch name {
	case "cpu_utilization":
		return "Percent"
	case "network_in", "network_out":
		return "Bytes"
	case "duration":
		return "Milliseconds"
	default:
		return "Count"
	}
}
