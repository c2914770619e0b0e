package llm

// Conservative sampling for single-shot definition runs: deterministic
// output, capped length.
const (
	defaultTemperature = 0.0
	defaultMaxTokens   = 512
)

// ModelSelection carries the environment-sourced values the two-way
// backend choice depends on.
type ModelSelection struct {
	OpenAIAPIKey     string
	OpenAIModelName  string
	ModelRunnerURL   string
	ModelRunnerModel string
}

// ResolveModel picks the chat backend for this run. A present,
// non-placeholder OpenAI key selects the hosted API; anything else
// (empty included) selects the local model runner with the placeholder
// key. Exactly one credential source is consulted — there is no
// fallback chain, and reachability is not checked here.
func ResolveModel(sel ModelSelection) (LLMClient, ModelConfig) {
	if sel.OpenAIAPIKey != "" && sel.OpenAIAPIKey != PlaceholderAPIKey {
		cfg := ModelConfig{
			BaseURL:     defaultOpenAIBaseURL,
			Model:       sel.OpenAIModelName,
			APIKey:      sel.OpenAIAPIKey,
			Temperature: defaultTemperature,
			MaxTokens:   defaultMaxTokens,
		}
		return NewOpenAIClient(cfg), cfg
	}

	cfg := ModelConfig{
		BaseURL:     sel.ModelRunnerURL,
		Model:       sel.ModelRunnerModel,
		APIKey:      PlaceholderAPIKey,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}
	return NewOpenAIClient(cfg), cfg
}
