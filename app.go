package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/accounts"
	awscredentials "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/aws/credentials"
	azurecredentials "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/azure/credentials"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/completion"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/flag"
	gcpcredentials "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/gcp/credentials"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/gateway"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/pipeline"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/recommend"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/synthetic"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/utils"
)

func main() {
	utils.DrawBanner()

	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		panic(err)
	}

	_ = godotenv.Load()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	validators := []service.CredentialValidator{
		awscredentials.NewService(os.Getenv("AWS_DEFAULT_REGION")),
		azurecredentials.NewService(),
		gcpcredentials.NewService(),
	}
	snapshots := gateway.NewService(validators, synthetic.NewService(), log)

	completionOpts := []completion.Option{}
	if m := os.Getenv("OPENAI_MODEL"); m != "" {
		completionOpts = append(completionOpts, completion.WithModel(openai.ChatModel(m)))
	}
	completer := completion.NewService(os.Getenv("OPENAI_API_KEY"), completionOpts...)

	orchestrator := pipeline.NewService(accounts.NewService(), snapshots, recommend.NewService(), completer, log)

	utils.StartSpinner()

	if flags.Analyze {
		runAnalysis(orchestrator, flags)
		return
	}

	message := flags.Message
	if message == "" {
		message = "Where can I save money on my cloud spend?"
	}

	answer, err := orchestrator.Run(context.Background(), message, flags.UserID, flags.Session)
	utils.StopSpinner()
	if err != nil {
		panic(err)
	}

	fmt.Println()
	fmt.Println(answer)
}

func runAnalysis(orchestrator pipeline.Orchestrator, flags model.Flags) {
	now := time.Now()
	options := pipeline.AnalyzeOptions{
		TimeRange: model.TimeRange{
			Start: now.Add(-time.Duration(flags.Days) * 24 * time.Hour),
			End:   now,
		},
		IncludeForecasting: flags.Forecast,
	}
	for _, area := range strings.Split(flags.Focus, ",") {
		if trimmed := strings.TrimSpace(area); trimmed != "" {
			options.FocusAreas = append(options.FocusAreas, trimmed)
		}
	}

	result, err := orchestrator.Analyze(context.Background(), flags.UserID, options)
	utils.StopSpinner()
	if err != nil {
		panic(err)
	}

	utils.DrawCostTable(result.CostAnalysis)
	utils.DrawRecommendationTable(result.Recommendations)
	utils.DrawSavingsChart(result.Recommendations)

	fmt.Printf("\n risk level: %s, implementation effort: %s\n",
		result.Summary.RiskLevel, result.Summary.ImplementationEffort)
	for _, warning := range result.Warnings {
		fmt.Printf(" warning: %s\n", warning)
	}
}
