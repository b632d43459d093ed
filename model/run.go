package model

// Role tags a conversation message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a run's conversation
type Message struct {
	Role    Role
	Content string
}

// Stage names a pipeline step, optionally suffixed with "_error" when the
// step failed. The tag records the last stage reached for observability and
// lets downstream stages treat errored upstream fields as "no data".
type Stage string

const (
	StageGatherData     Stage = "gather_data"
	StageAnalyzeCosts   Stage = "analyze_costs"
	StageGenerateRecs   Stage = "generate_recommendations"
	StagePrioritizeRecs Stage = "prioritize_recommendations"
	StageCreateResponse Stage = "create_response"
)

// ErrorTag returns the failure variant of the stage tag
func (s Stage) ErrorTag() Stage { return s + "_error" }

// SnapshotResult is the gather_data outcome: either a snapshot or an error
// marker. The error variant is first-class so "errored-but-continue" never
// needs an ad hoc shape.
type SnapshotResult struct {
	Data *CloudSnapshot
	Err  string
}

// OK reports whether usable data is present
func (r *SnapshotResult) OK() bool { return r != nil && r.Err == "" && r.Data != nil }

// AnalysisResult is the analyze_costs outcome
type AnalysisResult struct {
	Data *CostAnalysis
	Err  string
}

// OK reports whether usable data is present
func (r *AnalysisResult) OK() bool { return r != nil && r.Err == "" && r.Data != nil }

// RunState is the mutable record threaded through one pipeline invocation.
// It is exclusively owned by its run and never shared across invocations.
type RunState struct {
	SessionID       string
	UserID          string
	Conversation    []Message
	CloudData       *SnapshotResult
	CostAnalysis    *AnalysisResult
	Recommendations []RecommendationItem
	Stage           Stage
}

// Append adds a message to the conversation
func (s *RunState) Append(role Role, content string) {
	s.Conversation = append(s.Conversation, Message{Role: role, Content: content})
}

// LastAssistantMessage returns the text of the most recent assistant message
func (s *RunState) LastAssistantMessage() string {
	for i := len(s.Conversation) - 1; i >= 0; i-- {
		if s.Conversation[i].Role == RoleAssistant {
			return s.Conversation[i].Content
		}
	}
	return ""
}
