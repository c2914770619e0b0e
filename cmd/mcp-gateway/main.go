package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// mcp-gateway is a stand-in for the compose-internal tool gateway: an
// SSE MCP server exposing a mock search tool, so the define agent has
// something to discover when no real gateway is around.
func main() {
	godotenv.Load()

	s := server.NewMCPServer(
		"mcp-gateway",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	searchTool := mcp.NewTool(
		"search",
		mcp.WithDescription("Search for information about a topic and return a short text summary."),
		mcp.WithString("query",
			mcp.Description("The search query"),
			mcp.Required(),
		),
	)

	s.AddTool(searchTool, handleSearch)

	addr := os.Getenv("MCP_GATEWAY_ADDR")
	if addr == "" {
		addr = ":8811"
	}

	log.Printf("MCP gateway listening on %s (SSE at /sse)", addr)
	sseServer := server.NewSSEServer(s)
	if err := sseServer.Start(addr); err != nil {
		log.Fatalf("Failed to serve MCP gateway: %v", err)
	}
}

func handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("No query provided"), nil
	}

	log.Printf("Received search query: %s", query)
	return mcp.NewToolResultText(fmt.Sprintf(
		"Results for %q: %s is best understood through its defining characteristics; consult the saved definition for details.",
		query, query,
	)), nil
}
