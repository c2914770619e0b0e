package tools

import (
	"context"
	"testing"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentTimeDefaultsToUTC(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	tool := currentTimeWithClock(func() time.Time { return fixed })

	chunks := collect(t, tool.Handler(context.Background(), api.ToolCallFunctionArguments{}))

	require.Len(t, chunks, 1)
	assert.Empty(t, chunks[0].Error)
	assert.Contains(t, chunks[0].Sentences[0], "UTC")
	assert.Contains(t, chunks[0].Sentences[0], "09:26:53")
	assert.Equal(t, "UTC", chunks[0].Metadata["timezone"])
}

func TestCurrentTimeNamedZone(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	tool := currentTimeWithClock(func() time.Time { return fixed })

	chunks := collect(t, tool.Handler(context.Background(), api.ToolCallFunctionArguments{
		"timezone": "America/New_York",
	}))

	require.Len(t, chunks, 1)
	assert.Empty(t, chunks[0].Error)
	assert.Contains(t, chunks[0].Sentences[0], "America/New_York")
	// 09:00 UTC is 05:00 in New York in March (EDT).
	assert.Contains(t, chunks[0].Sentences[0], "05:00:00")
}

func TestCurrentTimeUnknownZone(t *testing.T) {
	tool := CurrentTime()

	chunks := collect(t, tool.Handler(context.Background(), api.ToolCallFunctionArguments{
		"timezone": "Atlantis/Lost_City",
	}))

	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Error, "Unknown timezone")
}
