package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/ruminaider/code-profiles/internal/config"
	"github.com/ruminaider/code-profiles/internal/extensions"
	"github.com/ruminaider/code-profiles/internal/profiles"
	"github.com/ruminaider/code-profiles/internal/settings"
	"github.com/ruminaider/code-profiles/internal/style"
	"github.com/spf13/afero"
)

// Lister lists installed extensions with versions.
type Lister interface {
	Available() bool
	ListWithVersions(ctx context.Context) ([]extensions.Record, error)
}

// ExportOptions configures saving the current user configuration into a
// profile.
type ExportOptions struct {
	FS                 afero.Fs
	Config             config.Config
	UserDir            string
	Profile            string
	IncludeKeybindings bool
	IncludeSnippets    bool
	CLI                Lister
	Logger             zerolog.Logger
	Out                io.Writer
	Format             style.Formatter
}

// ExportResult reports what was saved.
type ExportResult struct {
	Profile             string
	Dir                 string
	Created             bool
	SettingsSaved       bool
	KeybindingsSaved    bool
	SnippetsCopied      int // -1 if the user has no snippets dir
	Extensions          []extensions.Record
	ExtensionsSaved     bool
	MissingExplanations []string
}

// Export copies the user's settings (and optionally keybindings and
// snippets) into the profile and records the installed extensions. Missing
// sources are skipped; a missing code command only skips the extension list.
func Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	out, f, log := opts.Out, opts.Format, opts.Logger
	cfg := opts.Config

	store := profiles.NewStore(opts.FS, cfg.ProfilesDir, cfg.IgnoreProfiles, log)
	res := &ExportResult{Profile: opts.Profile, Dir: store.Path(opts.Profile), SnippetsCopied: -1}

	if !store.Exists(opts.Profile) {
		if err := profiles.ValidateName(opts.Profile); err != nil {
			return nil, err
		}
		if err := store.Create(opts.Profile); err != nil {
			return nil, err
		}
		res.Created = true
		fmt.Fprintln(out, f.Successf("✓ created profile %s", opts.Profile))
	}
	fmt.Fprintf(out, "Saving to %s (%s)\n", opts.Profile, res.Dir)

	userSettings := filepath.Join(opts.UserDir, settings.FileName)
	if _, _, err := settings.Read(opts.FS, userSettings, "user"); err != nil {
		return nil, err
	}
	saved, err := store.CopyFileIn(userSettings, opts.Profile, settings.FileName)
	if err != nil {
		return nil, err
	}
	res.SettingsSaved = saved
	printCopied(out, f, settings.FileName, saved)

	if opts.IncludeKeybindings {
		saved, err := store.CopyFileIn(filepath.Join(opts.UserDir, profiles.KeybindingsFileName), opts.Profile, profiles.KeybindingsFileName)
		if err != nil {
			return nil, err
		}
		res.KeybindingsSaved = saved
		printCopied(out, f, profiles.KeybindingsFileName, saved)
	}

	if opts.IncludeSnippets {
		n, err := store.CopyDirIn(filepath.Join(opts.UserDir, profiles.SnippetsDirName), opts.Profile, profiles.SnippetsDirName)
		if err != nil {
			return nil, err
		}
		res.SnippetsCopied = n
		printCopied(out, f, profiles.SnippetsDirName, n >= 0)
	}

	if err := exportExtensions(ctx, opts, store, res); err != nil {
		return nil, err
	}

	fmt.Fprintln(out, f.Heading(fmt.Sprintf("\nDone: saved settings and extensions to profile %q.", opts.Profile)))
	return res, nil
}

func exportExtensions(ctx context.Context, opts ExportOptions, store *profiles.Store, res *ExportResult) error {
	out, f, log := opts.Out, opts.Format, opts.Logger

	if opts.CLI == nil || !opts.CLI.Available() {
		fmt.Fprintln(out, f.Warn("warning: code command not found, extension list not saved"))
		return nil
	}
	records, err := opts.CLI.ListWithVersions(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("listing extensions failed")
		fmt.Fprintln(out, f.Warnf("warning: could not list extensions: %v", err))
		return nil
	}
	if len(records) == 0 {
		fmt.Fprintln(out, f.Warn("warning: no installed extensions reported"))
		return nil
	}

	if err := store.SaveExtensions(opts.Profile, records); err != nil {
		return err
	}
	res.Extensions = records
	res.ExtensionsSaved = true
	fmt.Fprintln(out, f.Successf("✓ saved %d extensions to %s", len(records), extensions.ListFileName))

	explanations, err := extensions.ReadExplanations(opts.FS, opts.Config.ExplanationsPath())
	if err != nil {
		log.Warn().Err(err).Msg("explanations not readable")
		return nil
	}
	res.MissingExplanations = extensions.MissingExplanations(extensions.IDs(records), explanations)
	if n := len(res.MissingExplanations); n > 0 {
		fmt.Fprintln(out, f.Warnf("  %d extensions have no explanation:", n))
		for _, id := range res.MissingExplanations {
			fmt.Fprintln(out, f.Muted("    - "+id))
		}
	}
	return nil
}

func printCopied(out io.Writer, f style.Formatter, name string, ok bool) {
	if ok {
		fmt.Fprintln(out, f.Successf("✓ saved %s", name))
		return
	}
	fmt.Fprintln(out, f.Muted(name+" not found, skipped"))
}
