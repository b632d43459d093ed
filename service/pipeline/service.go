package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/recommend"
)

func NewService(accounts service.AccountRepository, snapshots service.SnapshotService, engine recommend.Engine, completion service.CompletionService, log *slog.Logger, opts ...Option) *pipelineService {
	if log == nil {
		log = slog.Default()
	}
	p := &pipelineService{
		accounts:   accounts,
		snapshots:  snapshots,
		engine:     engine,
		completion: completion,
		timeRange:  defaultLookback,
		log:        log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

const systemPrompt = "You are a cloud cost optimization assistant. You analyze multi-cloud " +
	"resource and billing data and explain savings opportunities in plain language."

// Run implements Orchestrator. Every stage failure is recorded on the run
// state and the pipeline continues; the terminal stage always produces a
// non-empty answer.
func (p *pipelineService) Run(ctx context.Context, message, userID, sessionID string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message must not be empty")
	}
	if strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("userId must not be empty")
	}
	if strings.TrimSpace(sessionID) == "" {
		return "", fmt.Errorf("sessionId must not be empty")
	}

	state := &model.RunState{SessionID: sessionID, UserID: userID}
	state.Append(model.RoleUser, message)

	timeRange := model.TimeRange{}
	p.gatherData(ctx, state, timeRange)
	p.analyzeCosts(state, false)
	p.generateRecommendations(state)
	p.prioritizeRecommendations(ctx, state)
	p.createResponse(ctx, state, message)

	return state.LastAssistantMessage(), nil
}

// Analyze implements Orchestrator
func (p *pipelineService) Analyze(ctx context.Context, userID string, options AnalyzeOptions) (*AnalyzeResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("userId must not be empty")
	}

	state := &model.RunState{UserID: userID}
	p.gatherData(ctx, state, options.TimeRange)
	p.analyzeCosts(state, options.IncludeForecasting)
	p.generateRecommendations(state)

	recommendations := filterByFocus(state.Recommendations, options.FocusAreas)

	result := &AnalyzeResult{
		Recommendations: recommendations,
		Summary:         model.Summarize(recommendations),
	}
	if state.CloudData.OK() {
		result.CloudData = state.CloudData.Data
		result.Warnings = state.CloudData.Data.Warnings
	} else if state.CloudData != nil && state.CloudData.Err != "" {
		result.Warnings = append(result.Warnings, state.CloudData.Err)
	}
	if state.CostAnalysis.OK() {
		result.CostAnalysis = state.CostAnalysis.Data
	}

	return result, nil
}

func (p *pipelineService) gatherData(ctx context.Context, state *model.RunState, timeRange model.TimeRange) {
	state.Stage = model.StageGatherData

	if timeRange.IsZero() {
		now := nowFunc()
		timeRange = model.TimeRange{Start: now.Add(-p.timeRange), End: now}
	}

	accounts := p.accounts.ListByUser(state.UserID)
	snapshot, err := p.snapshots.Snapshot(ctx, accounts, timeRange)
	if err != nil {
		p.log.Error("gather_data failed", "session", state.SessionID, "error", err)
		state.CloudData = &model.SnapshotResult{Err: err.Error()}
		state.Stage = model.StageGatherData.ErrorTag()
		return
	}
	state.CloudData = &model.SnapshotResult{Data: snapshot}
}

// analyzeCosts is pure over the gathered snapshot; an errored gather
// yields an empty analysis rather than a stage failure
func (p *pipelineService) analyzeCosts(state *model.RunState, includeForecast bool) {
	state.Stage = model.StageAnalyzeCosts

	var snapshot *model.CloudSnapshot
	if state.CloudData.OK() {
		snapshot = state.CloudData.Data
	}
	state.CostAnalysis = &model.AnalysisResult{Data: buildCostAnalysis(snapshot, includeForecast)}
}

func (p *pipelineService) generateRecommendations(state *model.RunState) {
	state.Stage = model.StageGenerateRecs

	var snapshot *model.CloudSnapshot
	if state.CloudData.OK() {
		snapshot = state.CloudData.Data
	}
	var analysis *model.CostAnalysis
	if state.CostAnalysis.OK() {
		analysis = state.CostAnalysis.Data
	}
	state.Recommendations = p.engine.Draft(snapshot, analysis)
}

// prioritizeRecommendations asks the completion service to reorder the
// list. An unparsable reply or a completion failure falls back to the
// deterministic savings-descending order.
func (p *pipelineService) prioritizeRecommendations(ctx context.Context, state *model.RunState) {
	state.Stage = model.StagePrioritizeRecs

	if len(state.Recommendations) == 0 {
		return
	}

	reply, err := p.completion.Complete(ctx, []model.Message{
		{Role: model.RoleSystem, Content: systemPrompt},
		{Role: model.RoleUser, Content: p.engine.RankingPrompt(state.Recommendations)},
	})
	if err != nil {
		p.log.Error("prioritize_recommendations failed", "session", state.SessionID, "error", err)
		state.Recommendations = p.engine.RankBySavings(state.Recommendations)
		state.Stage = model.StagePrioritizeRecs.ErrorTag()
		return
	}

	ranked, parsed := p.engine.ApplyRanking(state.Recommendations, reply)
	if !parsed {
		p.log.Warn("ranking reply unparsable, using savings order", "session", state.SessionID)
	}
	state.Recommendations = ranked
}

// createResponse always leaves a non-empty assistant message on the
// conversation, substituting an apology when synthesis itself fails
func (p *pipelineService) createResponse(ctx context.Context, state *model.RunState, userMessage string) {
	state.Stage = model.StageCreateResponse

	reply, err := p.completion.Complete(ctx, []model.Message{
		{Role: model.RoleSystem, Content: systemPrompt},
		{Role: model.RoleUser, Content: p.synthesisPrompt(state, userMessage)},
	})
	if err != nil || strings.TrimSpace(reply) == "" {
		if err == nil {
			err = fmt.Errorf("completion returned an empty message")
		}
		p.log.Error("create_response failed", "session", state.SessionID, "error", err)
		state.Stage = model.StageCreateResponse.ErrorTag()
		reply = fmt.Sprintf("I apologize, but I could not finish preparing your cost analysis (%v). "+
			"The gathered data is saved, so please ask again in a moment.", err)
	}

	state.Append(model.RoleAssistant, reply)
}

func (p *pipelineService) synthesisPrompt(state *model.RunState, userMessage string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "The user asked: %q\n\n", userMessage)
	sb.WriteString(dataSummary(state))

	totalSavings := model.TotalPotentialSavings(state.Recommendations)
	fmt.Fprintf(&sb, "\nTotal potential monthly savings: $%.2f\n", totalSavings)

	if len(state.Recommendations) > 0 {
		sb.WriteString("\nTop recommendations:\n")
		top := state.Recommendations
		if len(top) > 5 {
			top = top[:5]
		}
		for i, rec := range top {
			fmt.Fprintf(&sb, "%d. %s (saves ~$%.2f/month, difficulty %s, risk %s)\n",
				i+1, rec.Title, rec.MonthlySavingsEstimate, rec.Difficulty, rec.Risk)
		}
	}

	sb.WriteString("\nWrite a clear answer of at most 500 words referencing the user's request, " +
		"the data summary, the total savings and the top recommendations.")
	return sb.String()
}

func dataSummary(state *model.RunState) string {
	var sb strings.Builder

	if state.CloudData.OK() {
		snapshot := state.CloudData.Data
		fmt.Fprintf(&sb, "Data summary: %d accounts, %d resources", len(snapshot.AccountIDs), len(snapshot.Resources))
		if snapshot.Synthetic {
			sb.WriteString(" (partially synthetic)")
		}
		sb.WriteString(".\n")
		for _, warning := range snapshot.Warnings {
			fmt.Fprintf(&sb, "Warning: %s\n", warning)
		}
	} else if state.CloudData != nil && state.CloudData.Err != "" {
		fmt.Fprintf(&sb, "Cloud data could not be gathered: %s\n", state.CloudData.Err)
	}

	if state.CostAnalysis.OK() {
		analysis := state.CostAnalysis.Data
		fmt.Fprintf(&sb, "Current period spend: %.2f %s", analysis.CurrentMonthTotal, analysis.Currency)
		if analysis.LastMonthTotal > 0 {
			fmt.Fprintf(&sb, " (%+.1f%% vs previous period)", analysis.DeltaPercent)
		}
		sb.WriteString(".\n")
	}

	return sb.String()
}

func filterByFocus(items []model.RecommendationItem, focusAreas []string) []model.RecommendationItem {
	if len(focusAreas) == 0 {
		return items
	}

	filtered := make([]model.RecommendationItem, 0, len(items))
	for _, item := range items {
		haystack := strings.ToLower(item.Title + " " + item.Description)
		for _, focus := range focusAreas {
			if strings.Contains(haystack, strings.ToLower(focus)) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}
