package agent

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/definehq/define-agent/llm"
	"github.com/definehq/define-agent/memory"
	"github.com/definehq/define-agent/prompts"
	"github.com/definehq/define-agent/schema"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// Execute runs one question through the agent: up to MaxTurns rounds of
// tool selection and execution, then a single final inference on the
// big model. The loop ends early as soon as the selector asks for no
// more tools.
func (a *Agent) Execute(ctx context.Context, reporter ProgressReporter, req *schema.GenerateAnswerRequest) (*schema.StreamComplete, error) {
	startTime := getCurrentTimeMs()

	response := &schema.StreamComplete{ToolsUsed: []string{}, Metadata: map[string]string{}}

	// Load previous conversation messages
	conversation := &memory.Conversation{ID: req.SessionId}
	if a.config.ConversationManager != nil {
		conversation = a.config.ConversationManager.LoadSession(ctx, req.SessionId)
	}

	// Add user message to conversation
	conversation.AddUserMessage(req.Question)

	for turn := 0; turn < a.config.MaxTurns; turn++ {
		toolCalls := a.SelectTools(ctx, reporter, conversation.Messages, turn)
		if len(toolCalls) == 0 {
			break
		}

		for _, toolCall := range toolCalls {
			toolResultContext, err := a.RunTool(ctx, reporter, req.Question, &toolCall)
			if err != nil {
				continue
			}

			response.ToolsUsed = append(response.ToolsUsed, toolCall.Function.Name)

			// Add tool result to conversation
			conversation.AddToolResult(toolResultContext)
		}
	}

	// Final inference over the accumulated conversation
	reporter.Send(NewProgressUpdate(schema.StageAnswerGeneration, "Generating final answer"))

	var inference strings.Builder
	err := a.config.BigModel.GenerateInference(
		ctx, conversation.Messages,
		func(chunk string) error {
			inference.WriteString(chunk)
			reporter.Send(NewAnswerChunk(&schema.AnswerChunk{Content: chunk}))
			return nil
		},
		llm.WithMaxTokens(a.config.MaxTokens),
		llm.WithTemperature(a.config.Temperature),
		llm.WithSystemPrompt(a.config.SystemPrompt),
	)

	if err != nil {
		logger.Error("Failed to run inference", zap.Error(err))
		reporter.Send(NewStreamError(err.Error(), "inference_failed"))
	}

	response.Answer = inference.String()
	response.ProcessingTime = getCurrentTimeMs() - startTime

	conversation.AddAssistantMessage(response.Answer)
	// Save session with assistant response
	if a.config.ConversationManager != nil {
		a.config.ConversationManager.SaveSession(ctx, conversation)
	}

	reporter.Send(NewStreamComplete(response))
	return response, nil
}

// SelectTools asks the tool-selector model which tools, if any, the
// next turn needs.
func (a *Agent) SelectTools(ctx context.Context, reporter ProgressReporter, msgs []llm.Message, turn int) []api.ToolCall {
	var toolCalls []api.ToolCall

	if len(a.config.Tools) == 0 {
		return toolCalls
	}

	systemPrompt, err := prompts.RenderToolSelectionPrompt(turn, a.config.MaxTurns)
	if err != nil {
		logger.Error("Failed to render tool selection prompt", zap.Error(err))
		reporter.Send(NewStreamError(err.Error(), "prompt_rendering_failed"))
		return toolCalls
	}

	reporter.Send(NewProgressUpdate(schema.StageToolSelectionStarting, "Selecting tools"))

	err = a.config.ToolSelector.GenerateInferenceWithTools(
		ctx, msgs,
		func(chunk string) error { return nil }, // answer content is ignored here
		func(calls []api.ToolCall) error {
			toolCalls = append(toolCalls, calls...)
			return nil
		},
		llm.WithTools(toAPITools(a.config.Tools)),
		llm.WithMaxTokens(a.config.MaxTokens),
		llm.WithSystemPrompt(systemPrompt),
	)

	if err != nil {
		logger.Error("Failed to select tools", zap.Error(err))
		reporter.Send(NewStreamError(err.Error(), "tool_selection_failed"))
	}

	return toolCalls
}
