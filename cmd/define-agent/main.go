package main

import (
	"context"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"

	"github.com/definehq/define-agent/agent"
	"github.com/definehq/define-agent/appconfig"
	"github.com/definehq/define-agent/gateway"
	"github.com/definehq/define-agent/llm"
	"github.com/definehq/define-agent/prompts"
	"github.com/definehq/define-agent/schema"
	"github.com/definehq/define-agent/tools"
)

// define-agent answers a single QUESTION, pulling tools from the MCP
// gateway plus the local save_definition and current_time tools, and
// saves the resulting definition to disk.
func main() {
	dotenv.LoadEnv()
	cfg := appconfig.Load()

	client, modelCfg := llm.ResolveModel(llm.ModelSelection{
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenAIModelName:  cfg.OpenAIModelName,
		ModelRunnerURL:   cfg.ModelRunnerURL,
		ModelRunnerModel: cfg.ModelRunnerModel,
	})
	fmt.Printf("Using model: %s (%s)\n", modelCfg.Model, modelCfg.BaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gw, err := gateway.Dial(ctx, cfg.MCPServerURL)
	if err != nil {
		fmt.Printf("Could not reach the MCP gateway at %s\n", cfg.MCPServerURL)
		fmt.Println("  - is the mcp-gateway container running?")
		fmt.Println("  - does MCP_SERVER_URL point at its /sse endpoint?")
		logger.Fatal("MCP gateway connection failed", zap.Error(err))
	}
	defer gw.Close()

	remoteTools, err := gw.Tools(ctx)
	if err != nil {
		logger.Fatal("MCP tool discovery failed", zap.Error(err))
	}

	toolset := agent.MergeTools(ctx, remoteTools, []agent.MCPTool{
		tools.SaveDefinition(cfg.DefinitionsDir),
		tools.CurrentTime(),
	})

	systemPrompt, err := prompts.RenderDefinitionPrompt(cfg.Question)
	if err != nil {
		logger.Fatal("Failed to render system prompt", zap.Error(err))
	}

	definitionAgent := agent.NewAgentBuilder().
		WithBigModel(client).
		WithSystemPrompt(systemPrompt).
		AddTools(toolset...).
		WithMaxTokens(modelCfg.MaxTokens).
		WithTemperature(modelCfg.Temperature).
		Build()

	fmt.Printf("Processing: %s\n\n", cfg.Question)

	response, err := definitionAgent.Execute(ctx, &agent.ConsoleReporter{}, &schema.GenerateAnswerRequest{
		Question: cfg.Question,
	})
	if err != nil {
		logger.Fatal("Agent run failed", zap.Error(err))
	}

	fmt.Printf("\nResponse: %s\n", response.Answer)
	fmt.Printf("Tools used: %v (%dms)\n", response.ToolsUsed, response.ProcessingTime)
}
