package completion

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

func NewService(apiKey string, opts ...Option) *service {
	s := &service{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   openai.ChatModelGPT4o,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Complete implements service.CompletionService
func (s *service) Complete(ctx context.Context, messages []model.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:    s.model,
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
	}
	for _, message := range messages {
		switch message.Role {
		case model.RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(message.Content))
		case model.RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(message.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(message.Content))
		}
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completion returned no content")
	}

	return resp.Choices[0].Message.Content, nil
}
