package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/cmd/mcp/response"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/pipeline"
)

// RegisterAdvisorTools registers the cost-optimization pipeline tools
func RegisterAdvisorTools(s *server.MCPServer, orchestrator pipeline.Orchestrator) {
	s.AddTool(
		mcp.NewTool("advisor_run",
			mcp.WithDescription("Run the full cost-optimization pipeline for a user message and return the assistant's answer"),
			mcp.WithString("message", mcp.Required(), mcp.Description("The user's question or request")),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("Identity of the requesting user")),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation session identifier")),
		),
		makeAdvisorRunHandler(orchestrator),
	)

	s.AddTool(
		mcp.NewTool("advisor_analyze",
			mcp.WithDescription("Run a non-conversational cost analysis: gathered data, cost comparison, recommendations and a summary"),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("Identity of the requesting user")),
			mcp.WithNumber("time_range_days", mcp.Description("Lookback window in days, default 30")),
			mcp.WithString("focus_areas", mcp.Description("Comma-separated keywords to filter recommendations, e.g. 'volume,instance'")),
			mcp.WithBoolean("include_forecasting", mcp.Description("Include a next-month spend forecast")),
		),
		makeAdvisorAnalyzeHandler(orchestrator),
	)
}

func makeAdvisorRunHandler(orchestrator pipeline.Orchestrator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := request.RequireString("message")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		userID, err := request.RequireString("user_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		answer, err := orchestrator.Run(ctx, message, userID, sessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to run pipeline: %v", err)), nil
		}
		return mcp.NewToolResultText(answer), nil
	}
}

func makeAdvisorAnalyzeHandler(orchestrator pipeline.Orchestrator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := request.RequireString("user_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		options := pipeline.AnalyzeOptions{
			IncludeForecasting: request.GetBool("include_forecasting", false),
		}
		if days := request.GetFloat("time_range_days", 0); days > 0 {
			now := time.Now()
			options.TimeRange = model.TimeRange{Start: now.Add(-time.Duration(days) * 24 * time.Hour), End: now}
		}
		if focus := request.GetString("focus_areas", ""); focus != "" {
			for _, area := range strings.Split(focus, ",") {
				if trimmed := strings.TrimSpace(area); trimmed != "" {
					options.FocusAreas = append(options.FocusAreas, trimmed)
				}
			}
		}

		result, err := orchestrator.Analyze(ctx, userID, options)
		if err != nil {
			resp := response.AnalyzeResponse{Success: false, Error: err.Error()}
			data, _ := json.MarshalIndent(resp, "", "  ")
			return mcp.NewToolResultText(string(data)), nil
		}

		resp := response.AnalyzeResponse{Success: true, Data: response.ConvertAnalyzeResult(result)}
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
