package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/code-profiles/internal/extensions"
	"github.com/ruminaider/code-profiles/internal/selection"

	tea "github.com/charmbracelet/bubbletea"
)

// CommonOnlyLabel is the first profile option; it applies only the common
// profile.
const CommonOnlyLabel = "Common settings only"

// Selector is the full-screen terminal selection.Selector: a bubbletea
// picker for extensions and a huh select for the profile.
type Selector struct {
	runPicker  func(ExtensionPicker) (ExtensionPicker, error)
	runOptions func(title string, options []huh.Option[string]) (string, error)
}

var _ selection.Selector = (*Selector)(nil)

// NewSelector returns a Selector that draws on the terminal.
func NewSelector() *Selector {
	return &Selector{runPicker: runPicker, runOptions: runOptions}
}

func runPicker(p ExtensionPicker) (ExtensionPicker, error) {
	model, err := tea.NewProgram(p).Run()
	if err != nil {
		return p, err
	}
	return model.(ExtensionPicker), nil
}

func runOptions(title string, options []huh.Option[string]) (string, error) {
	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&value),
		),
	).Run()
	return value, err
}

// SelectExtensions runs the picker. Backing out reports
// selection.ErrCancelled.
func (s *Selector) SelectExtensions(m *extensions.Matrix) ([]string, error) {
	if len(m.Optional()) == 0 {
		return []string{}, nil
	}
	p, err := s.runPicker(NewExtensionPicker(m))
	if err != nil {
		return nil, fmt.Errorf("extension picker: %w", err)
	}
	if p.Cancelled() {
		return nil, selection.ErrCancelled
	}
	return p.Selected(), nil
}

// SelectProfile offers "Common settings only" followed by each profile
// with its theme preview. Aborting the form applies common settings only.
func (s *Selector) SelectProfile(choices []selection.ProfileChoice) (string, error) {
	if len(choices) == 0 {
		return "", nil
	}
	name, err := s.runOptions("Apply which profile?", ProfileOptions(choices))
	if errors.Is(err, huh.ErrUserAborted) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("profile selection: %w", err)
	}
	return name, nil
}

// ProfileOptions builds the profile select options. The common-only option
// has the empty value.
func ProfileOptions(choices []selection.ProfileChoice) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(choices)+1)
	options = append(options, huh.NewOption(CommonOnlyLabel, ""))
	for _, c := range choices {
		label := fmt.Sprintf("%s  (theme: %s, icons: %s)", c.Name, c.ColorTheme, c.IconTheme)
		options = append(options, huh.NewOption(label, c.Name))
	}
	return options
}
