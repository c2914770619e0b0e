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
	"github.com/definehq/define-agent/llm"
	"github.com/definehq/define-agent/prompts"
	"github.com/definehq/define-agent/schema"
	"github.com/definehq/define-agent/tools"
)

// simple-agent is the gateway-free variant: the same one-shot loop over
// local tools only, useful for checking the model wiring in isolation.
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

	systemPrompt, err := prompts.RenderSimplePrompt()
	if err != nil {
		logger.Fatal("Failed to render system prompt", zap.Error(err))
	}

	simpleAgent := agent.NewAgentBuilder().
		WithBigModel(client).
		WithSystemPrompt(systemPrompt).
		AddTools(tools.SimpleSearch(), tools.SaveFile(cfg.DefinitionsDir)).
		WithMaxTokens(modelCfg.MaxTokens).
		WithTemperature(modelCfg.Temperature).
		Build()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Printf("Processing: %s\n\n", cfg.Question)

	response, err := simpleAgent.Execute(ctx, &agent.ConsoleReporter{}, &schema.GenerateAnswerRequest{
		Question: cfg.Question,
	})
	if err != nil {
		logger.Fatal("Agent run failed", zap.Error(err))
	}

	fmt.Printf("\nResponse: %s\n", response.Answer)
	fmt.Printf("Tools used: %v (%dms)\n", response.ToolsUsed, response.ProcessingTime)
}
