package prompts

import (
	"bytes"
	"embed"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

func render(name string, data any) (string, error) {
	content, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// RenderDefinitionPrompt renders the definition agent's system prompt:
// a fixed worked example plus the live question.
func RenderDefinitionPrompt(question string) (string, error) {
	return render("definition_system.md", struct {
		Question string
	}{Question: question})
}

// RenderSimplePrompt renders the terse system prompt used by the basic
// variant with no MCP gateway.
func RenderSimplePrompt() (string, error) {
	return render("simple_system.md", nil)
}

// RenderToolSelectionPrompt renders the per-turn tool selection system prompt.
func RenderToolSelectionPrompt(turn, maxTurns int) (string, error) {
	return render("tool_selection_system.md", struct {
		Turn     int
		MaxTurns int
	}{Turn: turn + 1, MaxTurns: maxTurns})
}

// RenderSummarizationPrompt renders the summarization prompt pair used to
// condense tool output with respect to the user's query.
func RenderSummarizationPrompt(query, content, toolInputs string) (systemPrompt, userPrompt string, err error) {
	data := struct {
		Query      string
		Content    string
		ToolInputs string
	}{
		Query:      query,
		Content:    content,
		ToolInputs: toolInputs,
	}

	systemPrompt, err = render("summarize_context_system.md", data)
	if err != nil {
		return "", "", err
	}

	userPrompt, err = render("summarize_context_user.md", data)
	if err != nil {
		return "", "", err
	}

	return systemPrompt, userPrompt, nil
}
