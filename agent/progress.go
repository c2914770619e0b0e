package agent

import (
	"fmt"
	"time"

	"github.com/definehq/define-agent/schema"
)

// ProgressReporter is an interface for reporting agent execution progress
type ProgressReporter interface {
	// Send sends a progress update
	Send(event *schema.AgentStreamChunk) error
}

// NoOpProgressReporter implements ProgressReporter with no-op operations
type NoOpProgressReporter struct{}

// Send does nothing
func (r *NoOpProgressReporter) Send(event *schema.AgentStreamChunk) error {
	return nil
}

// ConsoleReporter prints progress to standard output. This is the demo
// surface: container logs are the only observer of a one-shot run.
type ConsoleReporter struct {
	// Verbose also echoes tool result bodies, not just their titles.
	Verbose bool
}

func (r *ConsoleReporter) Send(event *schema.AgentStreamChunk) error {
	switch {
	case event.Progress != nil:
		fmt.Printf("[progress] %s\n", event.Progress.Message)
	case event.ToolResult != nil:
		if event.ToolResult.Error != "" {
			fmt.Printf("[tool error] %s: %s\n", event.ToolResult.ToolName, event.ToolResult.Error)
		} else {
			fmt.Printf("[tool] %s: %s\n", event.ToolResult.ToolName, event.ToolResult.Title)
			if r.Verbose {
				for _, sentence := range event.ToolResult.Sentences {
					fmt.Printf("       %s\n", sentence)
				}
			}
		}
	case event.Error != nil:
		fmt.Printf("[error] %s (%s)\n", event.Error.ErrorMessage, event.Error.ErrorCode)
	}
	return nil
}

// Helper functions for creating progress events
func NewProgressUpdate(stage schema.Stage, message string) *schema.AgentStreamChunk {
	return &schema.AgentStreamChunk{
		Progress: &schema.ProgressUpdateChunk{
			Stage:          stage,
			Timestamp:      time.Now().UnixMilli(),
			Message:        message,
			EstimatedSteps: 3,
		},
	}
}

// NewToolExecutionResult creates a tool result chunk event
func NewToolExecutionResult(toolName string, result *schema.ToolResultChunk) *schema.AgentStreamChunk {
	result.ToolName = toolName

	return &schema.AgentStreamChunk{
		ToolResult: result,
	}
}

// NewAnswerChunk creates an answer fragment event
func NewAnswerChunk(answerChunk *schema.AnswerChunk) *schema.AgentStreamChunk {
	return &schema.AgentStreamChunk{
		Answer: answerChunk,
	}
}

// NewStreamComplete creates a completion event
func NewStreamComplete(finalResponse *schema.StreamComplete) *schema.AgentStreamChunk {
	return &schema.AgentStreamChunk{
		Complete: finalResponse,
	}
}

// NewStreamError creates an error event
func NewStreamError(message, code string) *schema.AgentStreamChunk {
	return &schema.AgentStreamChunk{
		Error: &schema.StreamError{
			ErrorMessage: message,
			ErrorCode:    code,
		},
	}
}
