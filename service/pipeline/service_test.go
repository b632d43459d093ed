package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/accounts"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSnapshots struct {
	snapshot *model.CloudSnapshot
	err      error
}

func (s *stubSnapshots) Snapshot(context.Context, []model.CloudAccount, model.TimeRange) (*model.CloudSnapshot, error) {
	return s.snapshot, s.err
}

// scriptedCompletion answers each prompt by matching a substring of the
// last user message
type scriptedCompletion struct {
	replies map[string]string
	err     error
	calls   []string
}

func (c *scriptedCompletion) Complete(_ context.Context, messages []model.Message) (string, error) {
	prompt := messages[len(messages)-1].Content
	c.calls = append(c.calls, prompt)
	if c.err != nil {
		return "", c.err
	}
	for needle, reply := range c.replies {
		if strings.Contains(prompt, needle) {
			return reply, nil
		}
	}
	return "Here is your cost overview.", nil
}

func wasteSnapshot() *model.CloudSnapshot {
	return &model.CloudSnapshot{
		AccountIDs: []string{"acc-1"},
		Waste: model.WasteReport{
			UnusedVolumes: []model.UnusedVolume{{ID: "vol-1", SizeGB: 200, Status: "available"}},
			UnusedIPs:     []model.UnusedIP{{AllocationID: "eip-1"}},
		},
		GatheredAt: time.Now(),
	}
}

func newTestPipeline(snapshots *stubSnapshots, completion *scriptedCompletion) *pipelineService {
	return NewService(
		accounts.NewService(),
		snapshots,
		recommend.NewService(),
		completion,
		slog.New(slog.DiscardHandler),
	)
}

func TestRunInputValidation(t *testing.T) {
	p := newTestPipeline(&stubSnapshots{snapshot: wasteSnapshot()}, &scriptedCompletion{})

	tests := []struct {
		name      string
		message   string
		userID    string
		sessionID string
		wantErr   string
	}{
		{"empty message", "", "u", "s", "message must not be empty"},
		{"blank message", "   ", "u", "s", "message must not be empty"},
		{"empty user", "hi", "", "s", "userId must not be empty"},
		{"empty session", "hi", "u", "", "sessionId must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Run(context.Background(), tt.message, tt.userID, tt.sessionID)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRunHappyPath(t *testing.T) {
	completion := &scriptedCompletion{replies: map[string]string{
		"Reorder":        `[]`,
		"The user asked": "You can save about $19 a month by cleaning up unused volumes.",
	}}
	p := newTestPipeline(&stubSnapshots{snapshot: wasteSnapshot()}, completion)

	answer, err := p.Run(context.Background(), "where is my money going?", "user-1", "sess-1")

	require.NoError(t, err)
	assert.Equal(t, "You can save about $19 a month by cleaning up unused volumes.", answer)
	require.Len(t, completion.calls, 2, "one ranking call, one synthesis call")
	assert.Contains(t, completion.calls[0], "Reorder")
	assert.Contains(t, completion.calls[1], `where is my money going?`)
	assert.Contains(t, completion.calls[1], "Total potential monthly savings")
}

func TestRunSurvivesTotalFailure(t *testing.T) {
	completion := &scriptedCompletion{err: errors.New("model overloaded")}
	p := newTestPipeline(&stubSnapshots{err: errors.New("all providers down")}, completion)

	answer, err := p.Run(context.Background(), "help", "user-1", "sess-1")

	require.NoError(t, err, "stage failures never abort the run")
	assert.NotEmpty(t, answer)
	assert.Contains(t, answer, "I apologize")
	assert.Contains(t, answer, "model overloaded")
}

func TestRunEmptySynthesisReplyGetsApology(t *testing.T) {
	completion := &scriptedCompletion{replies: map[string]string{
		"Reorder":        `[]`,
		"The user asked": "   ",
	}}
	p := newTestPipeline(&stubSnapshots{snapshot: wasteSnapshot()}, completion)

	answer, err := p.Run(context.Background(), "help", "user-1", "sess-1")

	require.NoError(t, err)
	assert.Contains(t, answer, "I apologize")
	assert.Contains(t, answer, "empty message")
}

func TestGatherDataRecordsErrorMarker(t *testing.T) {
	p := newTestPipeline(&stubSnapshots{err: errors.New("boom")}, &scriptedCompletion{})
	state := &model.RunState{UserID: "user-1"}

	p.gatherData(context.Background(), state, model.TimeRange{})

	require.NotNil(t, state.CloudData)
	assert.False(t, state.CloudData.OK())
	assert.Equal(t, "boom", state.CloudData.Err)
	assert.Equal(t, model.StageGatherData.ErrorTag(), state.Stage)
}

func TestAnalyzeCostsToleratesMissingData(t *testing.T) {
	p := newTestPipeline(&stubSnapshots{}, &scriptedCompletion{})
	state := &model.RunState{CloudData: &model.SnapshotResult{Err: "boom"}}

	p.analyzeCosts(state, false)

	require.True(t, state.CostAnalysis.OK())
	assert.Zero(t, state.CostAnalysis.Data.CurrentMonthTotal)
	assert.Equal(t, "USD", state.CostAnalysis.Data.Currency)
}

func TestPrioritizeCompletionFailureFallsBackToSavingsOrder(t *testing.T) {
	p := newTestPipeline(&stubSnapshots{}, &scriptedCompletion{err: errors.New("timeout")})
	state := &model.RunState{Recommendations: []model.RecommendationItem{
		{ID: "a", MonthlySavingsEstimate: 5},
		{ID: "b", MonthlySavingsEstimate: 50},
	}}

	p.prioritizeRecommendations(context.Background(), state)

	assert.Equal(t, model.StagePrioritizeRecs.ErrorTag(), state.Stage)
	require.Len(t, state.Recommendations, 2)
	assert.Equal(t, "b", state.Recommendations[0].ID)
	assert.Zero(t, state.Recommendations[0].PriorityScore)
}

func TestPrioritizeUnparsableReplyKeepsStageClean(t *testing.T) {
	completion := &scriptedCompletion{replies: map[string]string{
		"Reorder": "I cannot rank these, sorry.",
	}}
	p := newTestPipeline(&stubSnapshots{}, completion)
	state := &model.RunState{Recommendations: []model.RecommendationItem{
		{ID: "a", MonthlySavingsEstimate: 5},
		{ID: "b", MonthlySavingsEstimate: 50},
	}}

	p.prioritizeRecommendations(context.Background(), state)

	assert.Equal(t, model.StagePrioritizeRecs, state.Stage, "a garbled reply is not a stage failure")
	assert.Equal(t, "b", state.Recommendations[0].ID)
}

func TestPrioritizeSkipsEmptySet(t *testing.T) {
	completion := &scriptedCompletion{}
	p := newTestPipeline(&stubSnapshots{}, completion)
	state := &model.RunState{}

	p.prioritizeRecommendations(context.Background(), state)

	assert.Empty(t, completion.calls, "no completion round-trip without recommendations")
}

func TestAnalyze(t *testing.T) {
	p := newTestPipeline(&stubSnapshots{snapshot: wasteSnapshot()}, &scriptedCompletion{})

	result, err := p.Analyze(context.Background(), "user-1", AnalyzeOptions{})

	require.NoError(t, err)
	require.NotNil(t, result.CloudData)
	require.NotNil(t, result.CostAnalysis)
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, 2, result.Summary.TotalRecommendations)
	assert.Greater(t, result.Summary.TotalMonthlySavings, 0.0)
}

func TestAnalyzeEmptyUser(t *testing.T) {
	p := newTestPipeline(&stubSnapshots{snapshot: wasteSnapshot()}, &scriptedCompletion{})

	_, err := p.Analyze(context.Background(), "  ", AnalyzeOptions{})

	assert.ErrorContains(t, err, "userId must not be empty")
}

func TestAnalyzeEmptyRecommendationSet(t *testing.T) {
	p := newTestPipeline(&stubSnapshots{snapshot: &model.CloudSnapshot{AccountIDs: []string{"acc-1"}}}, &scriptedCompletion{})

	result, err := p.Analyze(context.Background(), "user-1", AnalyzeOptions{})

	require.NoError(t, err)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, model.SummaryLow, result.Summary.RiskLevel)
	assert.Equal(t, model.SummaryLow, result.Summary.ImplementationEffort)
}

func TestAnalyzeFocusFilter(t *testing.T) {
	p := newTestPipeline(&stubSnapshots{snapshot: wasteSnapshot()}, &scriptedCompletion{})

	result, err := p.Analyze(context.Background(), "user-1", AnalyzeOptions{FocusAreas: []string{"VOLUME"}})

	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)
	assert.Contains(t, strings.ToLower(result.Recommendations[0].Title), "volume")
}

func TestAnalyzeGatherFailurePropagatesWarning(t *testing.T) {
	p := newTestPipeline(&stubSnapshots{err: errors.New("providers down")}, &scriptedCompletion{})

	result, err := p.Analyze(context.Background(), "user-1", AnalyzeOptions{})

	require.NoError(t, err)
	assert.Nil(t, result.CloudData)
	assert.Contains(t, result.Warnings, "providers down")
	assert.Empty(t, result.Recommendations)
}

func costBreakdown(provider model.Provider, accountID, start, end string, services map[string]float64) model.CostBreakdown {
	group := make(model.CostGroup, len(services))
	for name, amount := range services {
		group[name] = struct {
			Amount float64
			Unit   string
		}{Amount: amount, Unit: "USD"}
	}
	return model.CostBreakdown{
		Provider:     provider,
		AccountID:    accountID,
		DateInterval: model.DateInterval{Start: &start, End: &end},
		CostGroup:    group,
		Currency:     "USD",
	}
}

func TestBuildCostAnalysis(t *testing.T) {
	snapshot := &model.CloudSnapshot{Costs: []model.CostBreakdown{
		costBreakdown(model.ProviderAWS, "acc-1", "2026-07-01", "2026-08-01", map[string]float64{"EC2": 100}),
		costBreakdown(model.ProviderAWS, "acc-1", "2026-08-01", "2026-08-31", map[string]float64{"EC2": 120, "S3": 30}),
		costBreakdown(model.ProviderGCP, "proj-1", "2026-08-01", "2026-08-31", map[string]float64{"Compute Engine": 50}),
	}}

	analysis := buildCostAnalysis(snapshot, false)

	assert.InDelta(t, 200, analysis.CurrentMonthTotal, 0.001)
	assert.InDelta(t, 100, analysis.LastMonthTotal, 0.001)
	assert.InDelta(t, 100, analysis.Delta, 0.001)
	assert.InDelta(t, 100, analysis.DeltaPercent, 0.001)
	assert.Equal(t, "USD", analysis.Currency)

	require.Len(t, analysis.TopServices, 3)
	assert.Equal(t, "EC2", analysis.TopServices[0].Name)
	assert.InDelta(t, 120, analysis.TopServices[0].Amount, 0.001)
	assert.Equal(t, "Compute Engine", analysis.TopServices[1].Name)
	assert.Equal(t, "S3", analysis.TopServices[2].Name)

	assert.Zero(t, analysis.ForecastNextMonth)
}

func TestBuildCostAnalysisForecast(t *testing.T) {
	snapshot := &model.CloudSnapshot{Costs: []model.CostBreakdown{
		costBreakdown(model.ProviderAWS, "acc-1", "2026-08-01", "2026-08-16", map[string]float64{"EC2": 150}),
	}}

	analysis := buildCostAnalysis(snapshot, true)

	// 150 over 15 days projects to 300 over 30
	assert.InDelta(t, 300, analysis.ForecastNextMonth, 0.001)
	assert.Zero(t, analysis.DeltaPercent, "no previous period, no percent change")
}

func TestBuildCostAnalysisNilSnapshot(t *testing.T) {
	analysis := buildCostAnalysis(nil, true)

	assert.Zero(t, analysis.CurrentMonthTotal)
	assert.Equal(t, "USD", analysis.Currency)
	assert.Empty(t, analysis.TopServices)
}

func TestBuildCostAnalysisTopServicesTruncated(t *testing.T) {
	services := map[string]float64{}
	for i := 0; i < 8; i++ {
		services[fmt.Sprintf("service-%d", i)] = float64(10 * (i + 1))
	}
	snapshot := &model.CloudSnapshot{Costs: []model.CostBreakdown{
		costBreakdown(model.ProviderAWS, "acc-1", "2026-08-01", "2026-08-31", services),
	}}

	analysis := buildCostAnalysis(snapshot, false)

	require.Len(t, analysis.TopServices, topServiceCount)
	assert.Equal(t, "service-7", analysis.TopServices[0].Name)
}
