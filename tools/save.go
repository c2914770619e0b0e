package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/definehq/define-agent/agent"
	"github.com/definehq/define-agent/schema"
	"github.com/ollama/ollama/api"
)

// SanitizeFilename reduces a name to a safe filename base: everything
// outside alphanumerics, space, hyphen, and underscore is removed, and
// leading/trailing whitespace stripped. "C++/C#" becomes "CC".
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// SaveDefinition builds the save_definition tool: it writes a word's
// definition to <dir>/<word>.txt, fully overwriting any previous file.
// Filesystem failures come back as error text in the result chunk —
// the agent loop never sees a tool error as a Go error.
func SaveDefinition(dir string) agent.MCPTool {
	return agent.NewMCPTool("save_definition", "Save a word's definition to a text file.").
		StringParam("word", "The word being defined", true).
		StringParam("definition", "The definition text to save", true).
		WithHandler(func(ctx context.Context, params api.ToolCallFunctionArguments) <-chan *schema.ToolResultChunk {
			ch := make(chan *schema.ToolResultChunk, 1)

			go func() {
				defer close(ch)

				word, _ := params["word"].(string)
				definition, _ := params["definition"].(string)

				if definition == "" {
					ch <- agent.NewToolResultChunk().
						Error("Missing definition parameter").
						Build()
					return
				}

				path, err := writeDefinition(dir, word, definition)
				if err != nil {
					ch <- agent.NewToolResultChunk().
						Error(fmt.Sprintf("Failed to save definition: %v", err)).
						Build()
					return
				}

				ch <- agent.NewToolResultChunk().
					Title("Definition Saved").
					Sentences(fmt.Sprintf("The definition for '%s' has been found and saved. Mission Completed! Stop", word)).
					MetadataKV("file", path).
					Build()
			}()

			return ch
		}).
		Build()
}

// SaveFile builds the save_file tool used by the basic variant: it
// writes arbitrary text under dir with the same filename sanitization.
func SaveFile(dir string) agent.MCPTool {
	return agent.NewMCPTool("save_file", "Save content to a file.").
		StringParam("filename", "Name for the saved file", true).
		StringParam("content", "Text content to write", true).
		WithHandler(func(ctx context.Context, params api.ToolCallFunctionArguments) <-chan *schema.ToolResultChunk {
			ch := make(chan *schema.ToolResultChunk, 1)

			go func() {
				defer close(ch)

				filename, _ := params["filename"].(string)
				content, _ := params["content"].(string)

				base := SanitizeFilename(strings.TrimSuffix(filename, ".txt"))
				if base == "" {
					ch <- agent.NewToolResultChunk().
						Error(fmt.Sprintf("Invalid filename: %q", filename)).
						Build()
					return
				}

				if err := os.MkdirAll(dir, 0o755); err != nil {
					ch <- agent.NewToolResultChunk().
						Error(fmt.Sprintf("Failed to create output directory: %v", err)).
						Build()
					return
				}

				path := filepath.Join(dir, base+".txt")
				if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
					ch <- agent.NewToolResultChunk().
						Error(fmt.Sprintf("Failed to save file: %v", err)).
						Build()
					return
				}

				ch <- agent.NewToolResultChunk().
					Title("File Saved").
					Sentences(fmt.Sprintf("Saved to %s", path)).
					MetadataKV("file", path).
					Build()
			}()

			return ch
		}).
		Build()
}

// writeDefinition sanitizes the word, ensures the output directory
// exists, and overwrites <base>.txt with the trimmed definition.
func writeDefinition(dir, word, definition string) (string, error) {
	base := SanitizeFilename(word)
	if base == "" {
		return "", fmt.Errorf("word %q sanitizes to an empty filename", word)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, base+".txt")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(definition)+"\n"), 0o644); err != nil {
		return "", err
	}

	return path, nil
}
