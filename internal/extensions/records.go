package extensions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
)

// ListFileName is the extension list stored in each profile dir.
const ListFileName = "vscode-extensions.json"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Record is one entry of a profile's extension list.
type Record struct {
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
	Enabled bool   `json:"enabled"`
}

// UnmarshalJSON decodes a record. A missing "enabled" means true; an
// explicit null means false.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      string          `json:"id"`
		Version *string         `json:"version"`
		Enabled json.RawMessage `json:"enabled"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ID = raw.ID
	r.Version = ""
	if raw.Version != nil {
		r.Version = *raw.Version
	}
	r.Enabled = true
	if raw.Enabled != nil {
		// an explicit null disables
		var enabled *bool
		if err := json.Unmarshal(raw.Enabled, &enabled); err != nil {
			return err
		}
		r.Enabled = enabled != nil && *enabled
	}
	return nil
}

// ParseError reports an extension list or explanation file that cannot be
// decoded.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing extension list for %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseList decodes an extension list. A single object not wrapped in an
// array is treated as a one-element list.
func ParseList(data []byte, source string) ([]Record, error) {
	data = bytes.TrimSpace(jsonc.ToJSON(bytes.TrimPrefix(data, utf8BOM)))
	if len(data) == 0 {
		return nil, nil
	}

	var records []Record
	if data[0] == '{' {
		var single Record
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, &ParseError{Source: source, Err: err}
		}
		records = []Record{single}
	} else if err := json.Unmarshal(data, &records); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	for i, r := range records {
		if r.ID == "" {
			return nil, &ParseError{Source: source, Err: fmt.Errorf("entry %d has no id", i)}
		}
	}
	return records, nil
}

// ReadList reads an extension list file. A missing file is an empty list
// with found=false.
func ReadList(fs afero.Fs, path, source string) (records []Record, found bool, err error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading extension list for %s: %w", source, err)
	}
	records, err = ParseList(data, source)
	return records, true, err
}

// MarshalList encodes records the way export writes them: an array with
// 4-space indentation.
func MarshalList(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding extension list: %w", err)
	}
	return buf.Bytes(), nil
}

// IDs returns the ids of records in order.
func IDs(records []Record) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}
