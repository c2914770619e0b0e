package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/definehq/define-agent/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunkChannel(chunks ...*schema.ToolResultChunk) <-chan *schema.ToolResultChunk {
	ch := make(chan *schema.ToolResultChunk, len(chunks))
	for _, c := range chunks {
		ch <- c
	}
	close(ch)
	return ch
}

func TestRenderWithoutSummarization(t *testing.T) {
	r := NewToolResultRenderer()

	results, err := r.Render(context.Background(), "query", "", chunkChannel(
		&schema.ToolResultChunk{
			Title:     "Search Result",
			Sentences: []string{"Zorgon is fictional.", "It appears in demos."},
		},
	), false)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0], "### Search Result")
	assert.Contains(t, results[0], "- Zorgon is fictional.")
	assert.Contains(t, results[0], "- It appears in demos.")
}

func TestRenderErrorChunk(t *testing.T) {
	r := NewToolResultRenderer()

	results, err := r.Render(context.Background(), "query", "", chunkChannel(
		&schema.ToolResultChunk{
			Error: "permission denied",
		},
	), false)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0], "> **Error:** permission denied")
}

func TestRenderSummarizationDropsIrrelevant(t *testing.T) {
	mini := &testLLMClient{
		model:    "mini",
		response: "# IRRELEVANT",
	}

	r := NewToolResultRenderer(WithSummarizationModel(mini))

	results, err := r.Render(context.Background(), "Define Zorgon", "", chunkChannel(
		&schema.ToolResultChunk{
			Title:     "Noise",
			Sentences: []string{"Totally unrelated content."},
		},
	), true)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRenderSummarizationRewrites(t *testing.T) {
	mini := &testLLMClient{
		model:    "mini",
		response: "Zorgon: a fictional being used in demos.",
	}

	r := NewToolResultRenderer(WithSummarizationModel(mini))

	results, err := r.Render(context.Background(), "Define Zorgon", "", chunkChannel(
		&schema.ToolResultChunk{
			Title:     "Search Result",
			Sentences: []string{"lots", "of", "raw", "output"},
		},
	), true)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0], "Zorgon: a fictional being used in demos.")
	assert.Contains(t, results[0], "summarized")
	assert.Equal(t, 1, mini.inferenceCalls)
}

func TestRenderSummarizationKeepsErrorChunks(t *testing.T) {
	mini := &testLLMClient{model: "mini", response: "# IRRELEVANT"}
	r := NewToolResultRenderer(WithSummarizationModel(mini))

	results, err := r.Render(context.Background(), "q", "", chunkChannel(
		&schema.ToolResultChunk{Error: "disk full"},
	), true)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0], "disk full")
	// The error chunk must not be sent to the summarizer
	assert.Equal(t, 0, mini.inferenceCalls)
}

func TestFormatToolResultToMD(t *testing.T) {
	t.Run("nil chunk", func(t *testing.T) {
		assert.Equal(t, "", formatToolResultToMD(nil))
	})

	t.Run("single sentence inline", func(t *testing.T) {
		md := formatToolResultToMD(&schema.ToolResultChunk{
			Sentences: []string{"one fact"},
		})
		assert.Contains(t, md, "one fact")
		assert.False(t, strings.Contains(md, "- one fact"))
	})

	t.Run("metadata table sorted", func(t *testing.T) {
		md := formatToolResultToMD(&schema.ToolResultChunk{
			Title:    "T",
			Metadata: map[string]string{"b": "2", "a": "1"},
		})
		aIdx := strings.Index(md, "| a | 1 |")
		bIdx := strings.Index(md, "| b | 2 |")
		assert.Greater(t, bIdx, aIdx)
	})

	t.Run("tool name used as fallback title", func(t *testing.T) {
		md := formatToolResultToMD(&schema.ToolResultChunk{
			ToolName:  "search",
			Sentences: []string{"x"},
		})
		assert.Contains(t, md, "### search")
		assert.False(t, strings.Contains(md, "_via"))
	})
}
