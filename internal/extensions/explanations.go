package extensions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
)

// ExplanationsFileName is the default name of the id → description file.
const ExplanationsFileName = "vscode-extensions-explain.json"

type explanation struct {
	ID      string `json:"id"`
	Explain string `json:"explain"`
}

// ReadExplanations reads an array of {id, explain} objects into a map.
// A missing file is an empty map; a malformed one is an error.
func ReadExplanations(fs afero.Fs, path string) (map[string]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading extension explanations: %w", err)
	}

	data = bytes.TrimSpace(jsonc.ToJSON(bytes.TrimPrefix(data, utf8BOM)))
	var items []explanation
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, &ParseError{Source: path, Err: err}
		}
	}

	out := make(map[string]string, len(items))
	for _, item := range items {
		out[item.ID] = item.Explain
	}
	return out, nil
}

// MissingExplanations returns the ids with no entry in explanations, in the
// order given.
func MissingExplanations(ids []string, explanations map[string]string) []string {
	var missing []string
	for _, id := range ids {
		if explanations[id] == "" {
			missing = append(missing, id)
		}
	}
	return missing
}
