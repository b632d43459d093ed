package flag

import (
	"flag"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

func NewService() *service {
	return &service{}
}

type service struct{}

func (s *service) GetParsedFlags() (model.Flags, error) {
	message := flag.String("message", "", "Question for the cost-optimization pipeline")
	user := flag.String("user", "cli", "User identity")
	session := flag.String("session", "cli-session", "Conversation session identifier")
	analyze := flag.Bool("analyze", false, "Run a non-conversational analysis instead of the full pipeline")
	days := flag.Int("days", 30, "Lookback window in days")
	forecast := flag.Bool("forecast", false, "Include a next-month spend forecast")
	focus := flag.String("focus", "", "Comma-separated keywords to filter recommendations")

	flag.Parse()

	return model.Flags{
		Message:  *message,
		UserID:   *user,
		Session:  *session,
		Analyze:  *analyze,
		Days:     *days,
		Forecast: *forecast,
		Focus:    *focus,
	}, nil
}
