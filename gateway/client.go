package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"

	"github.com/definehq/define-agent/agent"
	"github.com/definehq/define-agent/schema"
)

// Client is a connection to an MCP gateway over SSE. Tools discovered
// through it are wrapped as agent tools whose handlers proxy calls
// back to the gateway.
type Client struct {
	mcpClient  *client.Client
	serverName string
}

// Dial connects to an MCP server at the given SSE URL and completes
// the initialize handshake.
func Dial(ctx context.Context, url string) (*Client, error) {
	sseTransport, err := transport.NewSSE(url)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSE transport: %w", err)
	}

	mcpClient := client.NewClient(sseTransport)
	if err := mcpClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "define-agent",
		Version: "1.0.0",
	}

	serverInfo, err := mcpClient.Initialize(ctx, initRequest)
	if err != nil {
		mcpClient.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	logger.Info("Connected to MCP server",
		zap.String("name", serverInfo.ServerInfo.Name),
		zap.String("version", serverInfo.ServerInfo.Version))

	if serverInfo.Capabilities.Tools == nil {
		logger.Info("MCP server does not advertise tools")
	}

	return &Client{
		mcpClient:  mcpClient,
		serverName: serverInfo.ServerInfo.Name,
	}, nil
}

// Tools lists the server's tools and wraps each as an agent tool.
// A server without the tools capability yields an empty slice.
func (c *Client) Tools(ctx context.Context) ([]agent.MCPTool, error) {
	result, err := c.mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	wrapped := make([]agent.MCPTool, 0, len(result.Tools))
	for _, tool := range result.Tools {
		wrapped = append(wrapped, c.wrapTool(tool))
	}

	logger.Info("Discovered MCP tools", zap.Int("count", len(wrapped)))
	return wrapped, nil
}

func (c *Client) Close() error {
	return c.mcpClient.Close()
}

// wrapTool converts an MCP tool descriptor into an agent tool whose
// handler proxies the call to the gateway and streams the text
// content back as result chunks.
func (c *Client) wrapTool(tool mcp.Tool) agent.MCPTool {
	name := tool.Name
	attribution := c.serverName

	apiTool := api.Tool{
		Type: "function",
		Function: api.ToolFunction{
			Name:        name,
			Description: tool.Description,
		},
	}
	applyInputSchema(&apiTool, tool.InputSchema)

	return agent.MCPTool{
		Tool: apiTool,
		Handler: func(ctx context.Context, params api.ToolCallFunctionArguments) <-chan *schema.ToolResultChunk {
			ch := make(chan *schema.ToolResultChunk, 4)

			go func() {
				defer close(ch)

				request := mcp.CallToolRequest{}
				request.Params.Name = name
				request.Params.Arguments = map[string]any(params)

				result, err := c.mcpClient.CallTool(ctx, request)
				if err != nil {
					ch <- agent.NewToolResultChunk().
						ToolName(name).
						Error(fmt.Sprintf("MCP call failed: %v", err)).
						Build()
					return
				}

				if result.IsError {
					ch <- agent.NewToolResultChunk().
						ToolName(name).
						Error(textFromContent(result.Content)).
						Build()
					return
				}

				for _, content := range result.Content {
					textContent, ok := mcp.AsTextContent(content)
					if !ok || textContent.Text == "" {
						continue
					}

					ch <- agent.NewToolResultChunk().
						ToolName(name).
						Attribution(attribution).
						Sentences(textContent.Text).
						Build()
				}
			}()

			return ch
		},
	}
}

// applyInputSchema maps an MCP JSON schema onto the tool parameter
// shape the LLM clients expect. Unknown property attributes are
// dropped; only type, description, enum, and items carry over.
func applyInputSchema(tool *api.Tool, in mcp.ToolInputSchema) {
	params := &tool.Function.Parameters

	params.Type = "object"
	if in.Type != "" {
		params.Type = in.Type
	}
	params.Required = in.Required
	params.Properties = make(map[string]api.ToolProperty, len(in.Properties))

	for propName, raw := range in.Properties {
		params.Properties[propName] = convertProperty(raw)
	}
}

func convertProperty(raw any) api.ToolProperty {
	prop := api.ToolProperty{Type: api.PropertyType{"string"}}

	m, ok := raw.(map[string]any)
	if !ok {
		return prop
	}

	if t, ok := m["type"].(string); ok && t != "" {
		prop.Type = api.PropertyType{t}
	}
	if desc, ok := m["description"].(string); ok {
		prop.Description = desc
	}
	if items, ok := m["items"]; ok {
		prop.Items = items
	}
	if enum, ok := m["enum"].([]any); ok {
		prop.Enum = enum
	}

	return prop
}

func textFromContent(contents []mcp.Content) string {
	var parts []string
	for _, content := range contents {
		if textContent, ok := mcp.AsTextContent(content); ok && textContent.Text != "" {
			parts = append(parts, textContent.Text)
		}
	}

	if len(parts) == 0 {
		return "tool returned an error with no message"
	}
	return strings.Join(parts, "\n")
}
