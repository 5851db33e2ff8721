package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ruminaider/code-profiles/internal/merge"
	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
)

// FileName is the settings file inside a VS Code user dir or a profile dir.
const FileName = "settings.json"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseError reports a settings document that is not valid JSON(C) or is
// not an object at the top level.
type ParseError struct {
	Source string
	Path   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing %s settings: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("parsing %s settings (%s): %v", e.Source, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes settings bytes. Comments, trailing commas and a leading BOM
// are accepted. Blank input is an empty document.
func Parse(data []byte, source string) (merge.Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = jsonc.ToJSON(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return merge.Document{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	if dec.More() {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("unexpected data after top-level value")}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("expected an object at top level, got %T", raw)}
	}
	return merge.Document(obj), nil
}

// Read reads a settings file. A missing file yields an empty document and
// found=false.
func Read(fs afero.Fs, path, source string) (doc merge.Document, found bool, err error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return merge.Document{}, false, nil
		}
		return nil, false, fmt.Errorf("reading %s settings: %w", source, err)
	}

	doc, err = Parse(data, source)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, true, err
	}
	return doc, true, nil
}

// Encode renders doc with sorted keys, 4-space indentation and non-ASCII
// text left as-is.
func Encode(doc merge.Document) ([]byte, error) {
	if doc == nil {
		doc = merge.Document{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(map[string]any(doc)); err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return buf.Bytes(), nil
}

// Write encodes doc and writes it to path, creating the parent directory.
func Write(fs afero.Fs, path string, doc merge.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// BackupPath returns the timestamped backup name for path.
func BackupPath(path string, now time.Time) string {
	name := fmt.Sprintf("settings.backup-%s.json", now.Format("20060102-150405"))
	return filepath.Join(filepath.Dir(path), name)
}

// Backup copies path to its timestamped backup and returns the backup path.
// Returns "" and nil error when there is nothing to back up.
func Backup(fs afero.Fs, path string, now time.Time) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading settings for backup: %w", err)
	}

	mode := os.FileMode(0644)
	if info, err := fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dst := BackupPath(path, now)
	if err := afero.WriteFile(fs, dst, data, mode); err != nil {
		return "", fmt.Errorf("writing settings backup: %w", err)
	}
	return dst, nil
}
