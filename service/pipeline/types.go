package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/recommend"
)

type pipelineService struct {
	accounts   service.AccountRepository
	snapshots  service.SnapshotService
	engine     recommend.Engine
	completion service.CompletionService
	timeRange  time.Duration
	log        *slog.Logger
}

// Orchestrator drives the fixed five-stage cost-optimization workflow
type Orchestrator interface {
	// Run executes the full conversational pipeline and returns the
	// final assistant message. It only fails on invalid input; stage
	// failures degrade the answer instead of aborting the run.
	Run(ctx context.Context, message, userID, sessionID string) (string, error)

	// Analyze executes gather, analyze and generate for
	// non-conversational callers
	Analyze(ctx context.Context, userID string, options AnalyzeOptions) (*AnalyzeResult, error)
}

// AnalyzeOptions tunes a non-conversational analysis call
type AnalyzeOptions struct {
	TimeRange          model.TimeRange
	FocusAreas         []string
	IncludeForecasting bool
}

// AnalyzeResult is the structured payload returned by Analyze
type AnalyzeResult struct {
	CloudData       *model.CloudSnapshot       `json:"cloudData"`
	CostAnalysis    *model.CostAnalysis        `json:"costAnalysis"`
	Recommendations []model.RecommendationItem `json:"recommendations"`
	Summary         model.AnalysisSummary      `json:"summary"`
	Warnings        []string                   `json:"warnings,omitempty"`
}

type Option func(*pipelineService)

// WithLookback overrides the default gather window
func WithLookback(d time.Duration) Option {
	return func(p *pipelineService) { p.timeRange = d }
}

const defaultLookback = 30 * 24 * time.Hour
