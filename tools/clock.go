package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/definehq/define-agent/agent"
	"github.com/definehq/define-agent/schema"
	"github.com/ollama/ollama/api"
)

// CurrentTime builds the current_time tool. The timezone parameter is
// an IANA zone name and defaults to UTC; unknown zones are reported as
// error chunks rather than failures.
func CurrentTime() agent.MCPTool {
	return currentTimeWithClock(time.Now)
}

func currentTimeWithClock(now func() time.Time) agent.MCPTool {
	return agent.NewMCPTool("current_time", "Get the current time in a timezone.").
		StringParam("timezone", "IANA timezone name, for example Europe/Paris", false).
		WithHandler(func(ctx context.Context, params api.ToolCallFunctionArguments) <-chan *schema.ToolResultChunk {
			ch := make(chan *schema.ToolResultChunk, 1)

			go func() {
				defer close(ch)

				tz, _ := params["timezone"].(string)
				if tz == "" {
					tz = "UTC"
				}

				loc, err := time.LoadLocation(tz)
				if err != nil {
					ch <- agent.NewToolResultChunk().
						Error(fmt.Sprintf("Unknown timezone %q: %v", tz, err)).
						Build()
					return
				}

				ch <- agent.NewToolResultChunk().
					Title("Current Time").
					Sentences(fmt.Sprintf("The current time in %s is %s.", tz, now().In(loc).Format(time.RFC1123))).
					MetadataKV("timezone", tz).
					Build()
			}()

			return ch
		}).
		Build()
}
