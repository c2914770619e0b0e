package tools

import (
	"context"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleSearch(t *testing.T) {
	tool := SimpleSearch()

	assert.Equal(t, "simple_search", tool.Function.Name)

	chunks := collect(t, tool.Handler(context.Background(), api.ToolCallFunctionArguments{
		"query": "photosynthesis",
	}))

	require.Len(t, chunks, 1)
	assert.Empty(t, chunks[0].Error)
	assert.Contains(t, chunks[0].Sentences[0], "photosynthesis")
	assert.Equal(t, "simple_search", chunks[0].Attribution)
}

func TestSimpleSearchMissingQuery(t *testing.T) {
	tool := SimpleSearch()

	chunks := collect(t, tool.Handler(context.Background(), api.ToolCallFunctionArguments{}))

	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Error, "Missing query")
}
