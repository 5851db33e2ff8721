// Package report renders the result of an apply run as a markdown file and
// as a console summary.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ruminaider/code-profiles/internal/merge"
	"github.com/ruminaider/code-profiles/internal/style"
	"github.com/spf13/afero"
)

// Report is everything an apply run shows the user afterwards.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	DryRun      bool

	// ExtensionsSkipped is why extension processing did not run, or "".
	ExtensionsSkipped string
	Installed         []string
	AlreadyPresent    []string
	Failed            []string
	// Pending lists ids a dry run would have installed.
	Pending []string

	SelectedProfile string
	CommonProfile   string
	SafePreset      bool
	BackupPath      string
	Log             []merge.Entry
}

// NewRunID returns a fresh identifier for one run.
func NewRunID() string {
	return uuid.NewString()
}

// Markdown renders r as a markdown document.
func Markdown(r Report) string {
	var b strings.Builder
	line := func(format string, a ...any) {
		fmt.Fprintf(&b, format, a...)
		b.WriteByte('\n')
	}
	list := func(items []string) {
		if len(items) == 0 {
			line("(none)")
			return
		}
		for _, item := range items {
			line("- %s", item)
		}
	}

	mode := "apply"
	if r.DryRun {
		mode = "dry run (nothing applied)"
	}

	line("# VS Code settings and extensions report")
	line("")
	line("Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	line("Run: %s", r.RunID)
	line("Mode: %s", mode)
	line("")
	line("## Extensions")
	line("")
	if r.ExtensionsSkipped != "" {
		line("Skipped: %s", r.ExtensionsSkipped)
		line("")
	}
	line("- Installed: %d", len(r.Installed))
	if r.DryRun {
		line("- Would install: %d", len(r.Pending))
	}
	line("- Already present: %d", len(r.AlreadyPresent))
	line("- Failed: %d", len(r.Failed))
	line("")
	line("### Installed")
	list(r.Installed)
	if r.DryRun {
		line("")
		line("### Would install")
		list(r.Pending)
	}
	line("")
	line("### Failed")
	list(r.Failed)
	line("")
	line("## Settings")
	line("")
	line("### Applied profile")
	if r.SelectedProfile != "" {
		line("- %s", r.SelectedProfile)
	} else {
		line("(none)")
	}
	line("- Common profile: %s (always applied)", r.CommonProfile)
	line("- Safe preset: %s", onOff(r.SafePreset))
	if r.BackupPath != "" {
		line("- Backup: %s", r.BackupPath)
	}
	line("")
	line("### Merge log")
	line("")
	line("| Key | Action | Source | Old | New |")
	line("|-----|--------|--------|-----|-----|")
	if len(r.Log) == 0 {
		line("| - | - | - | - | - |")
	}
	for _, e := range r.Log {
		line("| %s | %s | %s | %s | %s |",
			codeSpan(e.Key), e.Action, cell(e.Source), codeSpan(e.Old), codeSpan(e.New))
	}
	line("")
	line("---")
	line("*Generated by code-profiles*")
	return b.String()
}

// Write renders r to path, creating the parent directory.
func Write(fs afero.Fs, path string, r Report) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}
	if err := afero.WriteFile(fs, path, []byte(Markdown(r)), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Summary prints the console summary of r to w.
func Summary(w io.Writer, r Report, f style.Formatter) {
	rule := f.Heading(strings.Repeat("═", 59))
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, f.Heading("  Summary"))
	fmt.Fprintln(w, rule)
	if r.DryRun {
		fmt.Fprintln(w, f.Accent("[dry run: nothing was applied]"))
	}

	fmt.Fprintln(w, f.Warn("\nExtensions"))
	if r.ExtensionsSkipped != "" {
		fmt.Fprintln(w, f.Muted("  skipped: "+r.ExtensionsSkipped))
	}
	fmt.Fprintln(w, f.Successf("  installed: %d", len(r.Installed)))
	if r.DryRun && len(r.Pending) > 0 {
		fmt.Fprintln(w, f.Accent(fmt.Sprintf("  would install: %d", len(r.Pending))))
	}
	fmt.Fprintln(w, f.Muted(fmt.Sprintf("  already present: %d", len(r.AlreadyPresent))))
	if len(r.Failed) > 0 {
		fmt.Fprintln(w, f.Errorf("  failed: %d", len(r.Failed)))
	}

	fmt.Fprintln(w, f.Warn("\nProfiles"))
	if r.SelectedProfile != "" {
		fmt.Fprintf(w, "  selected: %s\n", r.SelectedProfile)
	} else {
		fmt.Fprintln(w, f.Muted("  selected: none"))
	}
	fmt.Fprintf(w, "  common: %s (always applied)\n", r.CommonProfile)
	fmt.Fprintf(w, "  safe preset: %s\n", onOff(r.SafePreset))

	counts := map[merge.Action]int{}
	for _, e := range r.Log {
		counts[e.Action]++
	}
	fmt.Fprintln(w, f.Warn("\nSettings merge"))
	fmt.Fprintln(w, f.Successf("  added: %d", counts[merge.Added]))
	fmt.Fprintln(w, f.Warnf("  overwritten: %d", counts[merge.Overwritten]))
	fmt.Fprintf(w, "  array-merged: %d\n", counts[merge.ArrayMerged])
	fmt.Fprintf(w, "  recursively-merged: %d\n", counts[merge.RecursivelyMerged])
	if counts[merge.Protected] > 0 {
		fmt.Fprintln(w, f.Heading(fmt.Sprintf("  protected: %d", counts[merge.Protected])))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// codeSpan wraps s in a code span that survives backticks and pipes.
func codeSpan(s string) string {
	s = cell(s)
	if strings.Contains(s, "`") {
		return "`` " + s + " ``"
	}
	return "`" + s + "`"
}
