package synthetic

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

const defaultSeed = 1

func NewService(opts ...Option) *service {
	s := &service{seed: defaultSeed}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// rngFor derives a deterministic source from the base seed and a key, so the
// same resource always yields the same series regardless of call order.
func (s *service) rngFor(key string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(key))
	return rand.New(rand.NewSource(s.seed ^ int64(h.Sum64())))
}

// Metrics generates one series per metric name surfaced for the resource
// type, sampled hourly over the requested range.
func (s *service) Metrics(resourceID string, resourceType model.ResourceType, timeRange model.TimeRange) []model.MetricSeries {
	if timeRange.IsZero() || !timeRange.End.After(timeRange.Start) {
		timeRange = model.LastNDays(7)
	}

	names := model.MetricNamesFor(resourceType)
	series := make([]model.MetricSeries, 0, len(names))

	for _, name := range names {
		rng := s.rngFor(resourceID + "/" + name)
		unit := model.MetricUnit(name)
		base, amplitude := baseline(unit, rng)

		var points []model.MetricPoint
		for t := timeRange.Start.Truncate(time.Hour); !t.After(timeRange.End); t = t.Add(time.Hour) {
			// Daily cycle plus noise keeps the shape plausible without
			// ever producing negative samples.
			phase := float64(t.Hour()) / 24 * 2 * math.Pi
			value := base + amplitude*math.Sin(phase) + rng.Float64()*amplitude/2
			if unit == "Percent" {
				value = math.Min(value, 100)
			}
			points = append(points, model.MetricPoint{
				Timestamp: t,
				Value:     math.Max(0, value),
			})
		}

		series = append(series, model.MetricSeries{
			ResourceID: resourceID,
			Name:       name,
			Unit:       unit,
			Points:     points,
			Synthetic:  true,
		})
	}

	return series
}

// CostBreakdown generates a per-service cost group for one account
func (s *service) CostBreakdown(provider model.Provider, accountID string, timeRange model.TimeRange) *model.CostBreakdown {
	if timeRange.IsZero() || !timeRange.End.After(timeRange.Start) {
		timeRange = model.LastNDays(30)
	}

	rng := s.rngFor(string(provider) + "/" + accountID + "/costs")
	days := timeRange.Duration().Hours() / 24

	group := make(model.CostGroup)
	for _, svc := range serviceNames(provider) {
		amount := (20 + rng.Float64()*400) * days / 30
		group[svc] = struct {
			Amount float64
			Unit   string
		}{Amount: math.Round(amount*100) / 100, Unit: "USD"}
	}

	start := timeRange.Start.Format("2006-01-02")
	end := timeRange.End.Format("2006-01-02")

	return &model.CostBreakdown{
		Provider:     provider,
		AccountID:    accountID,
		DateInterval: model.DateInterval{Start: &start, End: &end},
		CostGroup:    group,
		Currency:     "USD",
		Synthetic:    true,
	}
}

// Resources generates a small plausible resource inventory for one account,
// with metrics attached.
func (s *service) Resources(provider model.Provider, accountID string, timeRange model.TimeRange) []model.CloudResource {
	rng := s.rngFor(string(provider) + "/" + accountID + "/resources")

	types := []model.ResourceType{
		model.ResourceTypeInstance,
		model.ResourceTypeInstance,
		model.ResourceTypeDatabase,
		model.ResourceTypeFunction,
		model.ResourceTypeVolume,
	}

	resources := make([]model.CloudResource, 0, len(types))
	for i, rt := range types {
		id := fmt.Sprintf("%s-%s-%04d", provider, rt, rng.Intn(10000))
		resources = append(resources, model.CloudResource{
			ID:          id,
			Name:        fmt.Sprintf("%s-%d", rt, i),
			Provider:    provider,
			Type:        rt,
			Region:      regionFor(provider),
			State:       "running",
			MonthlyCost: math.Round((10+rng.Float64()*300)*100) / 100,
			Metrics:     s.Metrics(id, rt, timeRange),
		})
	}
	return resources
}

// Waste generates plausible waste signals for one account
func (s *service) Waste(provider model.Provider, accountID string) *model.WasteReport {
	rng := s.rngFor(string(provider) + "/" + accountID + "/waste")

	report := &model.WasteReport{}
	for i := 0; i < 1+rng.Intn(3); i++ {
		report.UnusedVolumes = append(report.UnusedVolumes, model.UnusedVolume{
			ID:     fmt.Sprintf("%s-vol-%04d", provider, rng.Intn(10000)),
			SizeGB: int32(50 + rng.Intn(450)),
			Status: "available",
		})
	}
	if rng.Intn(2) == 0 {
		report.UnusedIPs = append(report.UnusedIPs, model.UnusedIP{
			Address:      fmt.Sprintf("203.0.113.%d", rng.Intn(255)),
			AllocationID: fmt.Sprintf("ip-%04d", rng.Intn(10000)),
		})
	}
	if rng.Intn(2) == 0 {
		report.StoppedInstances = append(report.StoppedInstances, model.StoppedInstance{
			ID:          fmt.Sprintf("%s-instance-%04d", provider, rng.Intn(10000)),
			Name:        "batch-worker",
			StoppedDays: 30 + rng.Intn(90),
		})
	}
	return report
}

func baseline(unit string, rng *rand.Rand) (base, amplitude float64) {
	switch unit {
	case "Percent":
		return 20 + rng.Float64()*40, 10
	case "Bytes":
		return 1e6 + rng.Float64()*1e8, 5e5
	case "Milliseconds":
		return 50 + rng.Float64()*500, 25
	default:
		return rng.Float64() * 100, 10
	}
}

func serviceNames(provider model.Provider) []string {
	switch provider {
	case model.ProviderAzure:
		return []string{"Virtual Machines", "Storage", "Azure SQL Database", "Load Balancer", "Bandwidth"}
	case model.ProviderGCP:
		return []string{"Compute Engine", "Cloud Storage", "Cloud SQL", "Cloud Functions", "Networking"}
	default:
		return []string{"Amazon Elastic Compute Cloud", "Amazon Simple Storage Service", "Amazon Relational Database Service", "AWS Lambda", "Amazon CloudWatch"}
	}
}

func regionFor(provider model.Provider) string {
	switch provider {
	case model.ProviderAzure:
		return "eastus"
	case model.ProviderGCP:
		return "us-central1"
	default:
		return "us-east-1"
	}
}
