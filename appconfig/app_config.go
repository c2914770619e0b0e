package appconfig

import "os"

// Defaults match the container wiring the agents ship with: the Docker
// Model Runner endpoint for local inference and the compose-internal
// gateway address for MCP tool discovery.
const (
	DefaultModelRunnerURL   = "http://model-runner.docker.internal/engines/llama.cpp/v1"
	DefaultModelRunnerModel = "ai/qwen3"
	DefaultOpenAIModelName  = "gpt-4o-mini"
	DefaultMCPServerURL     = "http://mcp-gateway:8811/sse"
	DefaultQuestion         = "Define Zorgon"
	DefaultDefinitionsDir   = "/app/definitions"
)

// AppConfig holds every environment-sourced value the agents consume.
// It is populated once at startup and immutable afterwards.
type AppConfig struct {
	ModelRunnerURL   string // MODEL_RUNNER_URL: local OpenAI-compatible inference endpoint
	ModelRunnerModel string // MODEL_RUNNER_MODEL: model id served by the local runner
	OpenAIModelName  string // OPENAI_MODEL_NAME: model id for the hosted API branch
	OpenAIAPIKey     string // OPENAI_API_KEY: hosted API credential, empty for local runs
	MCPServerURL     string // MCP_SERVER_URL: SSE address of the MCP tool gateway
	Question         string // QUESTION: the single question submitted this run
	DefinitionsDir   string // DEFINITIONS_DIR: where saved definitions land
}

// Load reads the environment and applies the fixed fallback defaults.
func Load() *AppConfig {
	return &AppConfig{
		ModelRunnerURL:   envOr("MODEL_RUNNER_URL", DefaultModelRunnerURL),
		ModelRunnerModel: envOr("MODEL_RUNNER_MODEL", DefaultModelRunnerModel),
		OpenAIModelName:  envOr("OPENAI_MODEL_NAME", DefaultOpenAIModelName),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		MCPServerURL:     envOr("MCP_SERVER_URL", DefaultMCPServerURL),
		Question:         envOr("QUESTION", DefaultQuestion),
		DefinitionsDir:   envOr("DEFINITIONS_DIR", DefaultDefinitionsDir),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
