package schema

// Stage identifies where the agent is in its run when a progress
// update is emitted.
type Stage string

const (
	StageToolSelectionStarting  Stage = "tool_selection_starting"
	StageToolExecutionStarting  Stage = "tool_execution_starting"
	StageToolExecutionCompleted Stage = "tool_execution_completed"
	StageAnswerGeneration       Stage = "answer_generation"
)

// GenerateAnswerRequest is a single question submitted to the agent.
type GenerateAnswerRequest struct {
	SessionId string `json:"session_id,omitempty"`
	Question  string `json:"question"`
	Context   string `json:"context,omitempty"`
}

// ToolResultChunk is one unit of output produced by a tool handler.
// A failed tool call sets Error instead of returning a Go error so the
// agent loop always sees a completed call.
type ToolResultChunk struct {
	Title       string            `json:"title,omitempty"`
	Sentences   []string          `json:"sentences,omitempty"`
	Attribution string            `json:"attribution,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	ToolName    string            `json:"tool_name,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// ProgressUpdateChunk reports agent progress to the reporter.
type ProgressUpdateChunk struct {
	Stage          Stage  `json:"stage"`
	Timestamp      int64  `json:"timestamp"`
	Message        string `json:"message"`
	EstimatedSteps int    `json:"estimated_steps,omitempty"`
}

// AnswerChunk is a streamed fragment of the final answer.
type AnswerChunk struct {
	Content string `json:"content"`
}

// StreamComplete carries the final result of one agent execution.
type StreamComplete struct {
	Answer         string            `json:"answer"`
	ToolsUsed      []string          `json:"tools_used"`
	ProcessingTime int64             `json:"processing_time_ms"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// StreamError reports a non-fatal failure inside the agent loop.
type StreamError struct {
	ErrorMessage string `json:"error_message"`
	ErrorCode    string `json:"error_code"`
}

// AgentStreamChunk is one event on the agent's progress stream. Exactly
// one of the fields is set.
type AgentStreamChunk struct {
	Progress   *ProgressUpdateChunk `json:"progress,omitempty"`
	ToolResult *ToolResultChunk     `json:"tool_result,omitempty"`
	Answer     *AnswerChunk         `json:"answer,omitempty"`
	Complete   *StreamComplete      `json:"complete,omitempty"`
	Error      *StreamError         `json:"error,omitempty"`
}

// GetComplete returns the completion payload, or nil if this chunk is
// not a completion event.
func (c *AgentStreamChunk) GetComplete() *StreamComplete {
	if c == nil {
		return nil
	}
	return c.Complete
}
