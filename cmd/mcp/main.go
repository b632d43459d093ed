package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/openai/openai-go"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/cmd/mcp/tools"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/accounts"
	awscredentials "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/aws/credentials"
	azurecredentials "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/azure/credentials"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/completion"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/credentials"
	gcpcredentials "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/gcp/credentials"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/gateway"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/pipeline"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/recommend"
	syncsvc "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/sync"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/synthetic"
)

func main() {
	cfg := LoadConfig()

	// stdout carries the MCP stdio transport, logs go to stderr
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	validators := []service.CredentialValidator{
		awscredentials.NewService(cfg.AWSDefaultRegion),
		azurecredentials.NewService(),
		gcpcredentials.NewService(),
	}
	validator := credentials.NewService(validators)

	generator := synthetic.NewService()
	snapshots := gateway.NewService(validators, generator, log)

	tracker := syncsvc.NewTracker()
	repo := accounts.NewService(accounts.WithRemovalHook(tracker.Forget))
	syncer := syncsvc.NewService(repo, validators, snapshots, tracker, log)

	completionOpts := []completion.Option{}
	if cfg.OpenAIModel != "" {
		completionOpts = append(completionOpts, completion.WithModel(openai.ChatModel(cfg.OpenAIModel)))
	}
	completer := completion.NewService(cfg.OpenAIAPIKey, completionOpts...)

	orchestrator := pipeline.NewService(repo, snapshots, recommend.NewService(), completer, log)

	s := server.NewMCPServer(
		"cost-pipeline-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterAdvisorTools(s, orchestrator)
	tools.RegisterAccountTools(s, repo, validator, syncer)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func logLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
