package recommend

import (
	"fmt"
	"testing"
	"time"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftFromWaste(t *testing.T) {
	svc := NewService()

	snapshot := &model.CloudSnapshot{
		Waste: model.WasteReport{
			UnusedVolumes: []model.UnusedVolume{
				{ID: "vol-1", SizeGB: 100, Status: "available"},
				{ID: "vol-2", SizeGB: 50, Status: "available"},
			},
			UnusedIPs: []model.UnusedIP{
				{AllocationID: "eip-1"},
			},
			StoppedInstances: []model.StoppedInstance{
				{ID: "i-1"},
			},
		},
	}

	items := svc.Draft(snapshot, nil)

	require.Len(t, items, 3)

	volumes := items[0]
	assert.Equal(t, "Delete 2 unattached storage volumes", volumes.Title)
	assert.Equal(t, []string{"vol-1", "vol-2"}, volumes.AffectedResourceIDs)
	assert.InDelta(t, 150*volumeCostPerGBMonth, volumes.MonthlySavingsEstimate, 0.001)
	assert.NotEmpty(t, volumes.ID)
	assert.Zero(t, volumes.PriorityScore, "drafts carry no priority before ranking")

	ips := items[1]
	assert.InDelta(t, unusedIPCostPerMonth, ips.MonthlySavingsEstimate, 0.001)

	stopped := items[2]
	assert.Equal(t, model.EffortMedium, stopped.Difficulty)
}

func TestDraftFromIdleInstances(t *testing.T) {
	svc := NewService()

	cpu := func(values ...float64) []model.MetricSeries {
		points := make([]model.MetricPoint, len(values))
		for i, v := range values {
			points[i] = model.MetricPoint{Timestamp: time.Now(), Value: v}
		}
		return []model.MetricSeries{{Name: "cpu_utilization", Points: points}}
	}

	snapshot := &model.CloudSnapshot{
		Resources: []model.CloudResource{
			{ID: "i-idle", Type: model.ResourceTypeInstance, Metrics: cpu(2, 4, 3), MonthlyCost: 80},
			{ID: "i-busy", Type: model.ResourceTypeInstance, Metrics: cpu(60, 70)},
			{ID: "i-nodata", Type: model.ResourceTypeInstance},
			{ID: "vol-x", Type: model.ResourceTypeVolume, Metrics: cpu(1)},
		},
	}

	items := svc.Draft(snapshot, nil)

	require.Len(t, items, 1)
	assert.Equal(t, []string{"i-idle"}, items[0].AffectedResourceIDs)
	assert.InDelta(t, 40, items[0].MonthlySavingsEstimate, 0.001)
}

func TestDraftFromCostIncrease(t *testing.T) {
	svc := NewService()

	analysis := &model.CostAnalysis{
		Delta:        200,
		DeltaPercent: 35,
		TopServices:  []model.ServiceCost{{Name: "Compute Engine", Amount: 500}},
	}

	items := svc.Draft(nil, analysis)

	require.Len(t, items, 1)
	assert.Equal(t, "Investigate month-over-month cost increase", items[0].Title)
	assert.Contains(t, items[0].Description, "Compute Engine")
	assert.InDelta(t, 50, items[0].MonthlySavingsEstimate, 0.001)
}

func TestDraftIgnoresModestIncrease(t *testing.T) {
	svc := NewService()

	items := svc.Draft(nil, &model.CostAnalysis{Delta: 10, DeltaPercent: 5})

	assert.Empty(t, items)
}

func TestDraftNilInputs(t *testing.T) {
	svc := NewService()

	assert.Empty(t, svc.Draft(nil, nil))
}

func TestRankBySavings(t *testing.T) {
	svc := NewService()

	items := []model.RecommendationItem{
		{ID: "a", MonthlySavingsEstimate: 10},
		{ID: "b", MonthlySavingsEstimate: 40},
		{ID: "c", MonthlySavingsEstimate: 40},
		{ID: "d", MonthlySavingsEstimate: 25},
	}

	ranked := svc.RankBySavings(items)

	ids := make([]string, len(ranked))
	for i, it := range ranked {
		ids[i] = it.ID
	}
	assert.Equal(t, []string{"b", "c", "d", "a"}, ids, "ties keep generation order")
	assert.Equal(t, "a", items[0].ID, "input order is untouched")
}

func TestApplyRanking(t *testing.T) {
	svc := NewService()

	items := []model.RecommendationItem{
		{ID: "a", MonthlySavingsEstimate: 10},
		{ID: "b", MonthlySavingsEstimate: 40},
		{ID: "c", MonthlySavingsEstimate: 25},
	}

	t.Run("fenced json reply", func(t *testing.T) {
		reply := "Here is the order:\n```json\n[\n" +
			"{\"id\": \"c\", \"priorityScore\": 9, \"reasoning\": \"quick win\"},\n" +
			"{\"id\": \"b\", \"priorityScore\": 7, \"reasoning\": \"large savings\"},\n" +
			"{\"id\": \"a\", \"priorityScore\": 3, \"reasoning\": \"minor\"}\n" +
			"]\n```"

		ranked, parsed := svc.ApplyRanking(items, reply)

		require.True(t, parsed)
		require.Len(t, ranked, 3)
		assert.Equal(t, "c", ranked[0].ID)
		assert.Equal(t, 9, ranked[0].PriorityScore)
		assert.Equal(t, "quick win", ranked[0].Reasoning)
		assert.Equal(t, "b", ranked[1].ID)
	})

	t.Run("skipped items keep generation order at the tail", func(t *testing.T) {
		ranked, parsed := svc.ApplyRanking(items, `[{"id": "c", "priorityScore": 8, "reasoning": "r"}]`)

		require.True(t, parsed)
		require.Len(t, ranked, 3)
		assert.Equal(t, "c", ranked[0].ID)
		assert.Equal(t, "a", ranked[1].ID)
		assert.Equal(t, "b", ranked[2].ID)
		assert.Zero(t, ranked[1].PriorityScore)
	})

	t.Run("out of range scores are clamped", func(t *testing.T) {
		ranked, parsed := svc.ApplyRanking(items, `[{"id": "a", "priorityScore": 42, "reasoning": "r"}, {"id": "b", "priorityScore": -1, "reasoning": "r"}]`)

		require.True(t, parsed)
		assert.Equal(t, 10, ranked[0].PriorityScore)
		assert.Equal(t, 1, ranked[1].PriorityScore)
	})

	t.Run("unknown ids only falls back", func(t *testing.T) {
		ranked, parsed := svc.ApplyRanking(items, `[{"id": "nope", "priorityScore": 5, "reasoning": "r"}]`)

		assert.False(t, parsed)
		assert.Equal(t, "b", ranked[0].ID)
	})

	t.Run("prose reply falls back to savings order", func(t *testing.T) {
		ranked, parsed := svc.ApplyRanking(items, "I would start with the load balancers.")

		assert.False(t, parsed)
		require.Len(t, ranked, 3)
		assert.Equal(t, "b", ranked[0].ID)
		assert.Equal(t, "c", ranked[1].ID)
		assert.Equal(t, "a", ranked[2].ID)
		for _, it := range ranked {
			assert.Zero(t, it.PriorityScore)
			assert.Empty(t, it.Reasoning)
		}
	})

	t.Run("malformed json falls back", func(t *testing.T) {
		ranked, parsed := svc.ApplyRanking(items, `[{"id": "a", "priorityScore": }]`)

		assert.False(t, parsed)
		assert.Len(t, ranked, 3)
	})
}

func TestRankingPromptListsEveryItem(t *testing.T) {
	svc := NewService()

	items := []model.RecommendationItem{
		{ID: "a", Title: "First", MonthlySavingsEstimate: 12.5, Difficulty: model.EffortLow, Risk: model.EffortMedium},
		{ID: "b", Title: "Second", MonthlySavingsEstimate: 3, Difficulty: model.EffortHigh, Risk: model.EffortLow},
	}

	prompt := svc.RankingPrompt(items)

	assert.Contains(t, prompt, "JSON array")
	for _, it := range items {
		assert.Contains(t, prompt, fmt.Sprintf("id=%s", it.ID))
		assert.Contains(t, prompt, fmt.Sprintf("title=%q", it.Title))
	}
}
