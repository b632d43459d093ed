package completion

import (
	"time"

	"github.com/openai/openai-go"
)

type service struct {
	client  openai.Client
	model   openai.ChatModel
	timeout time.Duration
}

type Option func(*service)

// WithModel overrides the default chat model
func WithModel(m openai.ChatModel) Option {
	return func(s *service) { s.model = m }
}

// WithTimeout overrides the per-call deadline
func WithTimeout(d time.Duration) Option {
	return func(s *service) { s.timeout = d }
}

const defaultTimeout = 60 * time.Second
