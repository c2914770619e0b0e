package agent

import (
	"context"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

func getCurrentTimeMs() int64 {
	return time.Now().UnixMilli()
}

// findMCPToolByName finds an MCPTool by its function name
func findMCPToolByName(tools []MCPTool, name string) *MCPTool {
	for i := range tools {
		if tools[i].Function.Name == name {
			return &tools[i]
		}
	}
	return nil
}

// toAPITools converts MCPTools to api.Tools for native tool calling
func toAPITools(tools []MCPTool) []api.Tool {
	apiTools := make([]api.Tool, len(tools))
	for i, tool := range tools {
		apiTools[i] = tool.Tool
	}
	return apiTools
}

// MergeTools combines remotely discovered tools with locally defined
// ones, deduplicated by function name. Locals are listed last but win
// collisions: a gateway tool must never shadow a local definition.
func MergeTools(ctx context.Context, remote, local []MCPTool) []MCPTool {
	combined := make([]MCPTool, 0, len(remote)+len(local))
	combined = append(combined, local...)
	combined = append(combined, remote...)

	merged, err := linq.Pipe2(
		linq.FromSlice(ctx, combined),
		linq.Distinct(func(t MCPTool) string { return t.Function.Name }),
		linq.ToSlice[MCPTool](),
	)
	if err != nil {
		logger.Error("Failed to deduplicate tools", zap.Error(err))
		merged = combined
	}

	// Present remote tools first, matching discovery order
	out := make([]MCPTool, 0, len(merged))
	for _, t := range merged {
		if !containsToolName(local, t.Function.Name) {
			out = append(out, t)
		}
	}
	for _, t := range merged {
		if containsToolName(local, t.Function.Name) {
			out = append(out, t)
		}
	}
	return out
}

func containsToolName(tools []MCPTool, name string) bool {
	return findMCPToolByName(tools, name) != nil
}
