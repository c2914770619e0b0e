package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/definehq/define-agent/llm"
	"github.com/definehq/define-agent/schema"
	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
)

// MockProgressReporter implements ProgressReporter for testing
type MockProgressReporter struct {
	events []*schema.AgentStreamChunk
}

func (m *MockProgressReporter) Send(event *schema.AgentStreamChunk) error {
	m.events = append(m.events, event)
	return nil
}

func (m *MockProgressReporter) GetEvents() []*schema.AgentStreamChunk {
	return m.events
}

func (m *MockProgressReporter) GetEventCount() int {
	return len(m.events)
}

// Mock LLM client with configurable responses per call
type testLLMClient struct {
	model            string
	response         string
	toolCalls        []api.ToolCall
	shouldError      bool
	errorMessage     string
	callCount        int
	inferenceCalls   int
	responses        []string
	toolCallsPerTurn [][]api.ToolCall
}

func (m *testLLMClient) GenerateInference(
	ctx context.Context,
	messages []llm.Message,
	callback func(chunk string) error,
	opts ...llm.LLMOption,
) error {
	if m.shouldError {
		return errors.New(m.errorMessage)
	}

	response := m.response
	if m.callCount < len(m.responses) {
		response = m.responses[m.callCount]
	}
	m.callCount++
	m.inferenceCalls++

	return callback(response)
}

func (m *testLLMClient) GenerateInferenceWithTools(
	ctx context.Context,
	messages []llm.Message,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
	opts ...llm.LLMOption,
) error {
	if m.shouldError {
		return errors.New(m.errorMessage)
	}

	response := m.response
	var toolCalls []api.ToolCall

	if m.callCount < len(m.responses) {
		response = m.responses[m.callCount]
	}
	if m.callCount < len(m.toolCallsPerTurn) {
		toolCalls = m.toolCallsPerTurn[m.callCount]
	} else if len(m.toolCalls) > 0 {
		toolCalls = m.toolCalls
	}

	m.callCount++

	if len(toolCalls) > 0 {
		return toolCallback(toolCalls)
	}

	return contentCallback(response)
}

func (m *testLLMClient) Capabilities() llm.Capability {
	return llm.NativeToolCalling
}

func (m *testLLMClient) GetModel() string {
	return m.model
}

func echoTool(name string, sentences ...string) MCPTool {
	return MCPTool{
		Tool: api.Tool{
			Function: api.ToolFunction{
				Name: name,
			},
		},
		Handler: func(ctx context.Context, params api.ToolCallFunctionArguments) <-chan *schema.ToolResultChunk {
			ch := make(chan *schema.ToolResultChunk, 1)
			ch <- &schema.ToolResultChunk{
				Sentences: sentences,
				Title:     name,
			}
			close(ch)
			return ch
		},
	}
}

func TestAgentExecute(t *testing.T) {
	mockBigModel := &testLLMClient{
		model:    "test-big-model",
		response: "This is the final answer",
	}

	agentInstance := NewAgentBuilder().
		WithBigModel(mockBigModel).
		WithSystemPrompt("You are a helpful assistant").
		WithMaxTokens(1000).
		WithMaxTurns(3).
		Build()

	reporter := &MockProgressReporter{}

	req := &schema.GenerateAnswerRequest{
		Question: "What is 2+2?",
	}

	result, err := agentInstance.Execute(context.Background(), reporter, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "This is the final answer", result.Answer)
	assert.GreaterOrEqual(t, result.ProcessingTime, int64(0))
	assert.NotNil(t, result.ToolsUsed)
	assert.NotNil(t, result.Metadata)

	// With no tools registered the model is hit exactly once
	assert.Equal(t, 1, mockBigModel.callCount)
	assert.Equal(t, 1, mockBigModel.inferenceCalls)

	// Check the final StreamComplete event was sent
	hasCompleteEvent := false
	for _, event := range reporter.GetEvents() {
		if event.GetComplete() != nil {
			hasCompleteEvent = true
			break
		}
	}
	assert.True(t, hasCompleteEvent, "Should have sent a StreamComplete event")
}

func TestAgentExecuteWithTools(t *testing.T) {
	mockTool := echoTool("calculator", "2 + 2 = 4")

	mockBigModel := &testLLMClient{
		model: "test-big-model",
		toolCallsPerTurn: [][]api.ToolCall{
			{
				{
					Function: api.ToolCallFunction{
						Name:      "calculator",
						Arguments: map[string]any{"expression": "2+2"},
					},
				},
			},
			{}, // no tool calls on the second turn ends the loop
		},
		responses: []string{"", "", "The answer is 4"},
	}

	agentInstance := NewAgentBuilder().
		WithBigModel(mockBigModel).
		WithMaxTokens(1000).
		WithMaxTurns(3).
		AddTool(mockTool).
		Build()

	reporter := &MockProgressReporter{}

	req := &schema.GenerateAnswerRequest{
		Question: "What is 2+2?",
	}

	result, err := agentInstance.Execute(context.Background(), reporter, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "The answer is 4", result.Answer)
	assert.Equal(t, []string{"calculator"}, result.ToolsUsed)

	// Two selector turns plus exactly one final inference
	assert.Equal(t, 3, mockBigModel.callCount)
	assert.Equal(t, 1, mockBigModel.inferenceCalls)

	assert.GreaterOrEqual(t, reporter.GetEventCount(), 1)
}

func TestAgentExecuteMaxTurns(t *testing.T) {
	// Model that always asks for another tool call
	mockBigModel := &testLLMClient{
		model: "test-big-model",
		toolCalls: []api.ToolCall{
			{
				Function: api.ToolCallFunction{
					Name:      "endless-tool",
					Arguments: map[string]any{},
				},
			},
		},
	}

	agentInstance := NewAgentBuilder().
		WithBigModel(mockBigModel).
		WithMaxTokens(1000).
		WithMaxTurns(2).
		AddTool(echoTool("endless-tool", "Tool executed")).
		Build()

	reporter := &MockProgressReporter{}

	req := &schema.GenerateAnswerRequest{
		Question: "Test question",
	}

	result, err := agentInstance.Execute(context.Background(), reporter, req)

	// Should still complete once max turns is reached
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 3, mockBigModel.callCount) // maxTurns selector calls + 1 final inference
	assert.Equal(t, 1, mockBigModel.inferenceCalls)
}

func TestAgentExecuteUnknownTool(t *testing.T) {
	mockBigModel := &testLLMClient{
		model: "test-big-model",
		toolCallsPerTurn: [][]api.ToolCall{
			{
				{
					Function: api.ToolCallFunction{
						Name:      "no-such-tool",
						Arguments: map[string]any{},
					},
				},
			},
			{},
		},
		responses: []string{"", "", "Recovered answer"},
	}

	agentInstance := NewAgentBuilder().
		WithBigModel(mockBigModel).
		WithMaxTokens(1000).
		WithMaxTurns(3).
		AddTool(echoTool("calculator", "unused")).
		Build()

	reporter := &MockProgressReporter{}

	result, err := agentInstance.Execute(context.Background(), reporter, &schema.GenerateAnswerRequest{Question: "q"})

	assert.NoError(t, err)
	assert.Equal(t, "Recovered answer", result.Answer)
	assert.Empty(t, result.ToolsUsed)

	hasErrorEvent := false
	for _, event := range reporter.GetEvents() {
		if event.Error != nil && event.Error.ErrorCode == "unknown_tool" {
			hasErrorEvent = true
		}
	}
	assert.True(t, hasErrorEvent, "Should have reported the unknown tool")
}

func TestAgentExecuteLLMError(t *testing.T) {
	mockBigModel := &testLLMClient{
		model:        "test-big-model",
		shouldError:  true,
		errorMessage: "LLM service unavailable",
	}

	agentInstance := NewAgentBuilder().
		WithBigModel(mockBigModel).
		WithMaxTokens(1000).
		WithMaxTurns(3).
		Build()

	reporter := &MockProgressReporter{}

	req := &schema.GenerateAnswerRequest{
		Question: "Test question",
	}

	// LLM failures are reported on the stream, not returned
	result, err := agentInstance.Execute(context.Background(), reporter, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "", result.Answer)
	assert.GreaterOrEqual(t, result.ProcessingTime, int64(0))
}
