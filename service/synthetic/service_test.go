package synthetic

import (
	"testing"
	"time"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRange() model.TimeRange {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return model.TimeRange{Start: start, End: start.AddDate(0, 0, 7)}
}

func TestMetricsDeterministicForSeed(t *testing.T) {
	a := NewService(WithSeed(42))
	b := NewService(WithSeed(42))

	first := a.Metrics("i-1", model.ResourceTypeInstance, testRange())
	second := b.Metrics("i-1", model.ResourceTypeInstance, testRange())

	assert.Equal(t, first, second)
}

func TestMetricsDifferPerResource(t *testing.T) {
	svc := NewService(WithSeed(42))

	first := svc.Metrics("i-1", model.ResourceTypeInstance, testRange())
	second := svc.Metrics("i-2", model.ResourceTypeInstance, testRange())

	require.NotEmpty(t, first[0].Points)
	assert.NotEqual(t, first[0].Points, second[0].Points)
}

func TestMetricsShape(t *testing.T) {
	svc := NewService()

	series := svc.Metrics("i-1", model.ResourceTypeInstance, testRange())

	require.Len(t, series, len(model.MetricNamesFor(model.ResourceTypeInstance)))
	for _, ms := range series {
		assert.Equal(t, "i-1", ms.ResourceID)
		assert.True(t, ms.Synthetic)
		assert.NotEmpty(t, ms.Points)
		for _, p := range ms.Points {
			assert.GreaterOrEqual(t, p.Value, 0.0)
			if ms.Unit == "Percent" {
				assert.LessOrEqual(t, p.Value, 100.0)
			}
		}
	}
}

func TestMetricsZeroRangeDefaults(t *testing.T) {
	svc := NewService()

	series := svc.Metrics("i-1", model.ResourceTypeVolume, model.TimeRange{})

	require.NotEmpty(t, series)
	assert.NotEmpty(t, series[0].Points)
}

func TestCostBreakdown(t *testing.T) {
	svc := NewService(WithSeed(7))

	breakdown := svc.CostBreakdown(model.ProviderGCP, "proj-1", testRange())

	assert.Equal(t, model.ProviderGCP, breakdown.Provider)
	assert.Equal(t, "proj-1", breakdown.AccountID)
	assert.True(t, breakdown.Synthetic)
	assert.Equal(t, "USD", breakdown.Currency)
	require.NotEmpty(t, breakdown.CostGroup)
	assert.Greater(t, breakdown.CostGroup.Total(), 0.0)
	require.NotNil(t, breakdown.DateInterval.Start)
	assert.Equal(t, "2026-08-01", *breakdown.DateInterval.Start)

	again := NewService(WithSeed(7)).CostBreakdown(model.ProviderGCP, "proj-1", testRange())
	assert.Equal(t, breakdown, again)
}

func TestResources(t *testing.T) {
	svc := NewService(WithSeed(3))

	resources := svc.Resources(model.ProviderAWS, "123456789012", testRange())

	require.NotEmpty(t, resources)
	for _, r := range resources {
		assert.Equal(t, model.ProviderAWS, r.Provider)
		assert.NotEmpty(t, r.ID)
		assert.Greater(t, r.MonthlyCost, 0.0)
		assert.NotEmpty(t, r.Metrics)
	}
}

func TestWasteNeverEmpty(t *testing.T) {
	svc := NewService(WithSeed(11))

	report := svc.Waste(model.ProviderAzure, "sub-1")

	require.NotNil(t, report)
	assert.NotEmpty(t, report.UnusedVolumes)
	for _, v := range report.UnusedVolumes {
		assert.Equal(t, "available", v.Status)
		assert.Positive(t, v.SizeGB)
	}
}
