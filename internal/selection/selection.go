// Package selection asks the user which optional extensions to install and
// which profile to apply.
package selection

import (
	"errors"
	"fmt"

	"github.com/ruminaider/code-profiles/internal/extensions"
	"github.com/ruminaider/code-profiles/internal/profiles"
)

// ErrCancelled is returned when the user backs out of a question. From
// SelectExtensions it skips extension processing entirely; from
// SelectProfile it means common settings only.
var ErrCancelled = errors.New("selection cancelled")

// ProfileChoice is one selectable profile with its theme preview.
type ProfileChoice struct {
	Name       string
	ColorTheme string
	IconTheme  string
}

// ChoiceFor builds the choice shown for p.
func ChoiceFor(p *profiles.Profile) ProfileChoice {
	color, icon := p.Themes()
	return ProfileChoice{Name: p.Name, ColorTheme: color, IconTheme: icon}
}

// Selector is the interaction capability used by apply. The returned
// extension ids are drawn from m.Optional(); common ids are added by the
// caller. An empty profile name means "common settings only".
type Selector interface {
	SelectExtensions(m *extensions.Matrix) ([]string, error)
	SelectProfile(choices []ProfileChoice) (string, error)
}

// Fixed answers from command-line flags without asking.
type Fixed struct {
	// Extensions lists the chosen optional ids. Ids not in the matrix are
	// ignored.
	Extensions []string
	// AllExtensions selects every optional row.
	AllExtensions bool
	// SkipExtensions makes SelectExtensions report ErrCancelled.
	SkipExtensions bool
	// Profile is the chosen profile, "" for common only.
	Profile string
}

func (f Fixed) SelectExtensions(m *extensions.Matrix) ([]string, error) {
	if f.SkipExtensions {
		return nil, ErrCancelled
	}
	optional := m.Optional()
	if f.AllExtensions {
		ids := make([]string, 0, len(optional))
		for _, r := range optional {
			ids = append(ids, r.ID)
		}
		return ids, nil
	}
	want := make(map[string]bool, len(f.Extensions))
	for _, id := range f.Extensions {
		want[id] = true
	}
	var ids []string
	for _, r := range optional {
		if want[r.ID] {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (f Fixed) SelectProfile(choices []ProfileChoice) (string, error) {
	if f.Profile == "" {
		return "", nil
	}
	for _, c := range choices {
		if c.Name == f.Profile {
			return c.Name, nil
		}
	}
	return "", &UnknownProfileError{Name: f.Profile}
}

// UnknownProfileError reports a requested profile that is not selectable.
type UnknownProfileError struct {
	Name string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown profile %q", e.Name)
}
