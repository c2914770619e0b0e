package agent

import (
	"context"
	"testing"

	"github.com/definehq/define-agent/schema"
	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
)

func TestNewMCPTool(t *testing.T) {
	tool := NewMCPTool("save_definition", "Save a word's definition to a text file").
		StringParam("word", "The word being defined", true).
		StringParam("definition", "The definition text", true).
		StringParam("source", "Optional attribution", false).
		Build()

	assert.Equal(t, "function", tool.Type)
	assert.Equal(t, "save_definition", tool.Function.Name)
	assert.Equal(t, "Save a word's definition to a text file", tool.Function.Description)
	assert.Equal(t, "object", tool.Function.Parameters.Type)

	props := tool.Function.Parameters.Properties
	assert.Len(t, props, 3)
	assert.Equal(t, api.PropertyType{"string"}, props["word"].Type)
	assert.Equal(t, "The word being defined", props["word"].Description)

	assert.Equal(t, []string{"word", "definition"}, tool.Function.Parameters.Required)
}

func TestNewMCPToolStringSliceParam(t *testing.T) {
	tool := NewMCPTool("search", "Search for information").
		StringSliceParam("queries", "Refined search queries", true).
		Build()

	prop := tool.Function.Parameters.Properties["queries"]
	assert.Equal(t, api.PropertyType{"array"}, prop.Type)
	assert.Equal(t, map[string]any{"type": "string"}, prop.Items)
}

func TestNewMCPToolRequiredNotDuplicated(t *testing.T) {
	b := NewMCPTool("t", "d").StringParam("x", "desc", true)
	b.setProp("x", api.ToolProperty{Type: api.PropertyType{"string"}}, true)

	tool := b.Build()
	assert.Equal(t, []string{"x"}, tool.Function.Parameters.Required)
}

func TestNewMCPToolWithHandler(t *testing.T) {
	handler := func(ctx context.Context, params api.ToolCallFunctionArguments) <-chan *schema.ToolResultChunk {
		ch := make(chan *schema.ToolResultChunk)
		close(ch)
		return ch
	}

	tool := NewMCPTool("noop", "does nothing").
		Summarize(true).
		WithHandler(handler).
		Build()

	assert.True(t, tool.SummarizeContext)
	assert.NotNil(t, tool.Handler)
}

func TestToolResultChunkBuilder(t *testing.T) {
	chunk := NewToolResultChunk().
		Title("Search Result").
		Sentences("first fact", "second fact").
		Attribution("mock search").
		MetadataKV("query", "zorgon").
		ToolName("search").
		Build()

	assert.Equal(t, "Search Result", chunk.Title)
	assert.Equal(t, []string{"first fact", "second fact"}, chunk.Sentences)
	assert.Equal(t, "mock search", chunk.Attribution)
	assert.Equal(t, "zorgon", chunk.Metadata["query"])
	assert.Equal(t, "search", chunk.ToolName)
	assert.Empty(t, chunk.Error)
}

func TestToolResultChunkBuilderError(t *testing.T) {
	chunk := NewToolResultChunk().
		Error("something went wrong").
		Build()

	assert.Equal(t, "something went wrong", chunk.Error)
}
