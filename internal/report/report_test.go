package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ruminaider/code-profiles/internal/merge"
	"github.com/ruminaider/code-profiles/internal/style"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Report {
	return Report{
		RunID:           "run-1",
		GeneratedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Installed:       []string{"golang.go"},
		AlreadyPresent:  []string{"a.b", "c.d"},
		Failed:          []string{"bad.ext"},
		SelectedProfile: "alice",
		CommonProfile:   ".project-common",
		SafePreset:      true,
		Log: []merge.Entry{
			{Key: "editor.fontSize", Action: merge.Overwritten, Source: "alice", Old: "12", New: "14"},
			{Key: "a|b", Action: merge.Added, Source: ".project-common", Old: "none", New: "x`y"},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sample())

	assert.Contains(t, md, "Generated: 2026-01-02 03:04:05")
	assert.Contains(t, md, "Run: run-1")
	assert.Contains(t, md, "Mode: apply\n")
	assert.Contains(t, md, "- Installed: 1\n")
	assert.Contains(t, md, "- Already present: 2\n")
	assert.Contains(t, md, "### Failed\n- bad.ext\n")
	assert.Contains(t, md, "### Applied profile\n- alice\n")
	assert.Contains(t, md, "- Safe preset: on")
	assert.Contains(t, md, "| `editor.fontSize` | overwritten | alice | `12` | `14` |")
	assert.Contains(t, md, "| `a\\|b` | added | .project-common | `none` | `` x`y `` |")
	assert.NotContains(t, md, "Would install")
}

func TestMarkdown_EmptyAndDryRun(t *testing.T) {
	md := Markdown(Report{
		DryRun:        true,
		CommonProfile: ".project-common",
		Pending:       []string{"golang.go"},
	})

	assert.Contains(t, md, "Mode: dry run")
	assert.Contains(t, md, "### Would install\n- golang.go\n")
	assert.Contains(t, md, "### Installed\n(none)\n")
	assert.Contains(t, md, "### Applied profile\n(none)\n")
	assert.Contains(t, md, "| - | - | - | - | - |")
}

func TestMarkdown_SkipReason(t *testing.T) {
	md := Markdown(Report{ExtensionsSkipped: "code command not found"})
	assert.Contains(t, md, "Skipped: code command not found")
}

func TestWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, Write(fs, "/work/report.md", sample()))

	data, err := afero.ReadFile(fs, "/work/report.md")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# VS Code settings and extensions report"))
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	r := sample()
	r.Log = append(r.Log, merge.Entry{Key: "window.zoomLevel", Action: merge.Protected})
	Summary(&buf, r, style.Formatter{})

	out := buf.String()
	assert.Contains(t, out, "installed: 1")
	assert.Contains(t, out, "already present: 2")
	assert.Contains(t, out, "failed: 1")
	assert.Contains(t, out, "selected: alice")
	assert.Contains(t, out, "added: 1")
	assert.Contains(t, out, "overwritten: 1")
	assert.Contains(t, out, "protected: 1")
	assert.NotContains(t, out, "\x1b[")
}

func TestSummary_NoProtectedLineWhenZero(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, Report{DryRun: true}, style.Formatter{})
	assert.NotContains(t, buf.String(), "protected")
	assert.Contains(t, buf.String(), "dry run")
	assert.Contains(t, buf.String(), "selected: none")
}

func TestNewRunID(t *testing.T) {
	id := NewRunID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewRunID())
}
