package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/code-profiles/internal/commands"
	"github.com/ruminaider/code-profiles/internal/profiles"
	"github.com/spf13/cobra"
)

var (
	exportAlias              string
	exportIncludeKeybindings bool
	exportIncludeSnippets    bool
)

const newProfileOption = "+ New profile"

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save your current VS Code settings and extensions into a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		name := exportAlias
		if name == "" {
			store := profiles.NewStore(e.fs, e.cfg.ProfilesDir, e.cfg.IgnoreProfiles, e.log)
			existing, err := store.List()
			if err != nil {
				return err
			}
			name, err = pickExportProfile(existing)
			if err != nil {
				return err
			}
		}

		_, err = commands.Export(cmd.Context(), commands.ExportOptions{
			FS:                 e.fs,
			Config:             e.cfg,
			UserDir:            e.userDir,
			Profile:            name,
			IncludeKeybindings: exportIncludeKeybindings,
			IncludeSnippets:    exportIncludeSnippets,
			CLI:                newCodeCLI(e),
			Logger:             e.log,
			Out:                os.Stdout,
			Format:             e.format,
		})
		return err
	},
}

// pickExportProfile asks for an existing profile or a new name, then
// confirms before existing files are overwritten.
func pickExportProfile(existing []string) (string, error) {
	choice := newProfileOption
	if len(existing) > 0 {
		options := make([]huh.Option[string], 0, len(existing)+1)
		for _, name := range existing {
			options = append(options, huh.NewOption(name, name))
		}
		options = append(options, huh.NewOption(newProfileOption, newProfileOption))

		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Save to which profile?").
					Options(options...).
					Value(&choice),
			),
		).Run()
		if err != nil {
			return "", err
		}
	}

	if choice == newProfileOption {
		var name string
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("New profile name").
					Description("lowercase letters, digits and hyphens").
					Validate(profiles.ValidateName).
					Value(&name),
			),
		).Run()
		if err != nil {
			return "", err
		}
		return name, nil
	}

	confirmed := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Overwrite settings in profile %q?", choice)).
				Value(&confirmed),
		),
	).Run()
	if err != nil {
		return "", err
	}
	if !confirmed {
		return "", fmt.Errorf("export cancelled")
	}
	return choice, nil
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportAlias, "alias", "", "Profile to save into (created if missing)")
	f.BoolVar(&exportIncludeKeybindings, "include-keybindings", false, "Also save keybindings.json")
	f.BoolVar(&exportIncludeSnippets, "include-snippets", false, "Also save the snippets directory")
}
