package commands

import (
	"github.com/rs/zerolog"
	"github.com/ruminaider/code-profiles/internal/config"
	"github.com/ruminaider/code-profiles/internal/extensions"
	"github.com/ruminaider/code-profiles/internal/profiles"
	"github.com/spf13/afero"
)

// LoadMatrix builds the extension matrix for every profile in the store.
func LoadMatrix(fs afero.Fs, cfg config.Config, log zerolog.Logger) (*extensions.Matrix, error) {
	store := profiles.NewStore(fs, cfg.ProfilesDir, cfg.IgnoreProfiles, log)
	loaded, err := store.LoadAll()
	if err != nil {
		return nil, err
	}
	explanations, err := extensions.ReadExplanations(fs, cfg.ExplanationsPath())
	if err != nil {
		return nil, err
	}
	return extensions.BuildMatrix(profiles.ExtensionLists(loaded), cfg.CommonProfile, explanations,
		extensions.MatrixOptions{FoldCase: cfg.FoldExtensionCase}), nil
}

// ProfileInfo summarizes one profile for listing.
type ProfileInfo struct {
	Name       string
	Common     bool
	ColorTheme string
	IconTheme  string
	Settings   int
	Extensions int
}

// ListProfiles loads every profile and summarizes it, common profile first.
func ListProfiles(fs afero.Fs, cfg config.Config, log zerolog.Logger) ([]ProfileInfo, error) {
	store := profiles.NewStore(fs, cfg.ProfilesDir, cfg.IgnoreProfiles, log)
	loaded, err := store.LoadAll()
	if err != nil {
		return nil, err
	}

	var common, rest []ProfileInfo
	for _, p := range loaded {
		color, icon := p.Themes()
		info := ProfileInfo{
			Name:       p.Name,
			Common:     p.Name == cfg.CommonProfile,
			ColorTheme: color,
			IconTheme:  icon,
			Settings:   len(p.Settings),
			Extensions: len(p.Extensions),
		}
		if info.Common {
			common = append(common, info)
		} else {
			rest = append(rest, info)
		}
	}
	return append(common, rest...), nil
}
