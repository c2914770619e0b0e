package tools

import (
	"context"
	"fmt"

	"github.com/definehq/define-agent/agent"
	"github.com/definehq/define-agent/schema"
	"github.com/ollama/ollama/api"
)

// SimpleSearch builds the simple_search tool. It returns a canned
// result templated on the query, enough to let a model exercise the
// tool-call loop without any real backend.
func SimpleSearch() agent.MCPTool {
	return agent.NewMCPTool("simple_search", "Search for information on a topic.").
		StringParam("query", "The search query", true).
		WithHandler(func(ctx context.Context, params api.ToolCallFunctionArguments) <-chan *schema.ToolResultChunk {
			ch := make(chan *schema.ToolResultChunk, 1)

			go func() {
				defer close(ch)

				query, _ := params["query"].(string)
				if query == "" {
					ch <- agent.NewToolResultChunk().
						Error("Missing query parameter").
						Build()
					return
				}

				ch <- agent.NewToolResultChunk().
					Title("Search Result").
					Sentences(fmt.Sprintf("Here is information about %s: this is a mock search result for demonstration purposes.", query)).
					Attribution("simple_search").
					Build()
			}()

			return ch
		}).
		Build()
}
