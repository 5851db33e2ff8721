package profiles

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/ruminaider/code-profiles/internal/extensions"
	"github.com/ruminaider/code-profiles/internal/merge"
	"github.com/ruminaider/code-profiles/internal/settings"
	"github.com/spf13/afero"
)

const (
	KeybindingsFileName = "keybindings.json"
	SnippetsDirName     = "snippets"

	// Unchanged is shown for a theme a profile does not set.
	Unchanged = "unchanged"
)

var validName = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateName checks a new profile name: lower-case letters, digits and
// hyphens only.
func ValidateName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid profile name %q: use lower-case letters, digits and hyphens", name)
	}
	return nil
}

// Profile is one profile directory loaded into memory.
type Profile struct {
	Name          string
	Dir           string
	Settings      merge.Document
	HasSettings   bool
	Extensions    []extensions.Record
	HasExtensions bool
}

// Themes returns the colour and icon theme the profile sets, or Unchanged.
func (p *Profile) Themes() (color, icon string) {
	return themeValue(p.Settings, "workbench.colorTheme"), themeValue(p.Settings, "workbench.iconTheme")
}

func themeValue(doc merge.Document, key string) string {
	switch v := doc[key].(type) {
	case nil:
		return Unchanged
	case string:
		if v == "" {
			return Unchanged
		}
		return v
	default:
		return merge.Summarize(v)
	}
}

// Store reads and writes profile directories under Dir.
type Store struct {
	FS     afero.Fs
	Dir    string
	Ignore []string // doublestar patterns matched against directory names
	Logger zerolog.Logger
}

// NewStore returns a Store over fs rooted at dir.
func NewStore(fs afero.Fs, dir string, ignore []string, logger zerolog.Logger) *Store {
	return &Store{FS: fs, Dir: dir, Ignore: ignore, Logger: logger}
}

// Path returns the directory of profile name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Exists reports whether profile name has a directory.
func (s *Store) Exists(name string) bool {
	ok, err := afero.DirExists(s.FS, s.Path(name))
	return err == nil && ok
}

// List returns all profile directory names, sorted, including dot-dirs.
// A missing profiles dir is an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := afero.ReadDir(s.FS, s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			s.Logger.Info().Str("dir", s.Dir).Msg("profiles dir not found")
			return []string{}, nil
		}
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if s.ignored(name) {
			s.Logger.Debug().Str("profile", name).Msg("ignored")
			continue
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// Selectable returns the profiles a user may pick: those not starting with
// a dot.
func (s *Store) Selectable() ([]string, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, name := range all {
		if !strings.HasPrefix(name, ".") {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *Store) ignored(name string) bool {
	for _, pattern := range s.Ignore {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Load reads a profile's settings and extension list. Missing parts are
// empty; malformed parts are errors naming the profile.
func (s *Store) Load(name string) (*Profile, error) {
	dir := s.Path(name)
	p := &Profile{Name: name, Dir: dir}

	doc, found, err := settings.Read(s.FS, filepath.Join(dir, settings.FileName), name)
	if err != nil {
		return nil, fmt.Errorf("loading profile %q: %w", name, err)
	}
	p.Settings, p.HasSettings = doc, found

	recs, found, err := extensions.ReadList(s.FS, filepath.Join(dir, extensions.ListFileName), name)
	if err != nil {
		return nil, fmt.Errorf("loading profile %q: %w", name, err)
	}
	p.Extensions, p.HasExtensions = recs, found

	if !p.HasSettings && !p.HasExtensions {
		s.Logger.Info().Str("profile", name).Msg("profile has no settings or extensions")
	}
	return p, nil
}

// LoadAll loads every listed profile in List order.
func (s *Store) LoadAll() ([]*Profile, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}
	out := make([]*Profile, 0, len(names))
	for _, name := range names {
		p, err := s.Load(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ExtensionLists converts loaded profiles to matrix input.
func ExtensionLists(ps []*Profile) []extensions.ProfileExtensions {
	out := make([]extensions.ProfileExtensions, 0, len(ps))
	for _, p := range ps {
		out = append(out, extensions.ProfileExtensions{Name: p.Name, Records: p.Extensions})
	}
	return out
}
