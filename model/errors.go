package model

import (
	"fmt"
	"strings"
)

// ValidationError marks a malformed or unauthorized credential bundle.
// Never retried automatically.
type ValidationError struct {
	Provider Provider
	Fields   []string
	Reason   string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s credential validation failed: %s", e.Provider, strings.Join(e.Fields, "; "))
	}
	return fmt.Sprintf("%s credential validation failed: %s", e.Provider, e.Reason)
}

// ProviderAPIError marks a transient failure against a cloud API. Callers
// fall back to synthetic data rather than retrying.
type ProviderAPIError struct {
	Provider Provider
	Op       string
	Err      error
}

func (e *ProviderAPIError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderAPIError) Unwrap() error { return e.Err }

// StageError marks a failure inside a pipeline stage. It is recorded into
// run state and never propagated to the caller.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// SynthesisError marks a final-stage failure. The orchestrator substitutes a
// fixed user-visible apology that embeds the underlying message.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("response synthesis failed: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
