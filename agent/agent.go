package agent

import (
	"context"

	"github.com/definehq/define-agent/llm"
	"github.com/definehq/define-agent/memory"
	"github.com/definehq/define-agent/schema"
	"github.com/ollama/ollama/api"
)

// AgentConfig holds configuration for the agent
type AgentConfig struct {
	BigModel     llm.LLMClient
	MiniModel    llm.LLMClient
	ToolSelector llm.LLMClient
	SystemPrompt string
	Tools        []MCPTool
	MaxTokens    int
	MaxTurns     int
	Temperature  float64

	// Conversation management
	ConversationManager *memory.ConversationManager
}

// Agent runs a single question through the tool-selection loop and a
// final inference. Construct it with NewAgentBuilder.
type Agent struct {
	config AgentConfig
}

// MCPTool is one callable unit the agent may invoke: a tool schema plus
// a streaming handler. Locally defined tools and tools discovered from
// an MCP gateway both satisfy this shape, so the agent never cares
// where a tool came from.
type MCPTool struct {
	api.Tool
	// SummarizeContext enables automatic summarization of tool results using the mini model.
	// When enabled, each result chunk's sentences are summarized with respect to the user's
	// query and irrelevant content is dropped. Useful for search-style tools.
	SummarizeContext bool `json:"summarize_context"`
	Handler          func(ctx context.Context, params api.ToolCallFunctionArguments) <-chan *schema.ToolResultChunk
}
