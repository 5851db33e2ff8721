package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/ruminaider/code-profiles/internal/config"
	"github.com/ruminaider/code-profiles/internal/extensions"
	"github.com/ruminaider/code-profiles/internal/merge"
	"github.com/ruminaider/code-profiles/internal/profiles"
	"github.com/ruminaider/code-profiles/internal/report"
	"github.com/ruminaider/code-profiles/internal/selection"
	"github.com/ruminaider/code-profiles/internal/settings"
	"github.com/ruminaider/code-profiles/internal/style"
	"github.com/spf13/afero"
)

// Skip reasons recorded in the report.
const (
	SkipCancelled = "extension selection cancelled"
	SkipNoCode    = "code command not found"
	SkipDisabled  = "--no-install-extensions"
)

// Installer is the part of the VS Code CLI that apply needs.
type Installer interface {
	Available() bool
	ListInstalled(ctx context.Context) extensions.InstalledSet
	Install(ctx context.Context, id string) error
}

// ApplyOptions configures one apply run.
type ApplyOptions struct {
	FS       afero.Fs
	Config   config.Config
	UserDir  string
	Selector selection.Selector
	CLI      Installer

	NoInstall  bool
	SafePreset bool
	DryRun     bool
	ShowDiff   bool

	Now        func() time.Time
	RunID      string
	NewBackOff func() backoff.BackOff
	Logger     zerolog.Logger
	Out        io.Writer
	Format     style.Formatter
}

// ApplyResult is what an apply run produced.
type ApplyResult struct {
	Matrix     *extensions.Matrix
	Extensions *extensions.Result // nil when extension processing was skipped
	Merged     merge.Document
	Log        *merge.Log
	Diff       string
	BackupPath string
	ReportPath string
	Report     report.Report
}

func (o *ApplyOptions) defaults() {
	if o.FS == nil {
		o.FS = afero.NewOsFs()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.RunID == "" {
		o.RunID = report.NewRunID()
	}
	if o.Out == nil {
		o.Out = io.Discard
	}
	if o.Selector == nil {
		o.Selector = selection.Fixed{}
	}
	if o.NewBackOff == nil {
		o.NewBackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			b.MaxElapsedTime = 30 * time.Second
			b.Reset()
			return b
		}
	}
	if o.SafePreset && len(o.Config.SafePresetKeys) == 0 {
		o.Config.SafePresetKeys = merge.SafePresetKeys
	}
}

// Apply runs the full flow: extension matrix and installs, profile
// selection, settings merge, backup and write, report and summary.
// Malformed inputs abort before anything is written.
func Apply(ctx context.Context, opts ApplyOptions) (*ApplyResult, error) {
	opts.defaults()
	cfg := opts.Config
	out, f, log := opts.Out, opts.Format, opts.Logger

	store := profiles.NewStore(opts.FS, cfg.ProfilesDir, cfg.IgnoreProfiles, log)
	loaded, err := store.LoadAll()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*profiles.Profile, len(loaded))
	for _, p := range loaded {
		byName[p.Name] = p
	}

	explanations, err := extensions.ReadExplanations(opts.FS, cfg.ExplanationsPath())
	if err != nil {
		return nil, err
	}

	userPath := filepath.Join(opts.UserDir, settings.FileName)
	userDoc, userFound, err := settings.Read(opts.FS, userPath, "user")
	if err != nil {
		return nil, err
	}
	if !userFound {
		log.Info().Str("path", userPath).Msg("no user settings yet, starting from empty")
	}

	res := &ApplyResult{Log: merge.NewLog()}
	rep := report.Report{
		RunID:         opts.RunID,
		GeneratedAt:   opts.Now(),
		DryRun:        opts.DryRun,
		CommonProfile: cfg.CommonProfile,
		SafePreset:    opts.SafePreset,
	}

	// Extensions
	fmt.Fprintln(out, f.Heading("Extensions"))
	res.Matrix = extensions.BuildMatrix(profiles.ExtensionLists(loaded), cfg.CommonProfile, explanations,
		extensions.MatrixOptions{FoldCase: cfg.FoldExtensionCase})
	fmt.Fprintf(out, "  %d extensions across %d profiles (%d common)\n",
		len(res.Matrix.Rows), len(res.Matrix.Profiles), len(res.Matrix.CommonIDs))
	if res.Matrix.MissingExplanations > 0 {
		fmt.Fprintln(out, f.Warnf("  %d extensions have no explanation; consider updating %s",
			res.Matrix.MissingExplanations, filepath.Base(cfg.ExplanationsPath())))
	}

	choice, err := opts.chooseExtensions(res.Matrix)
	if err != nil {
		return nil, err
	}
	if choice.reason != "" {
		rep.ExtensionsSkipped = choice.reason
		fmt.Fprintln(out, f.Warn("  skipping extension installation: "+choice.reason))
	} else {
		res.Extensions = extensions.Reconcile(choice.selected, res.Matrix.CommonIDs, opts.CLI.ListInstalled(ctx))
		opts.installAll(ctx, res.Extensions)
		rep.AlreadyPresent = res.Extensions.AlreadyPresent
		rep.Failed = res.Extensions.Failed
		if opts.DryRun {
			rep.Pending = res.Extensions.ToInstall
		} else {
			rep.Installed = res.Extensions.Installed()
		}
	}

	// Profile
	fmt.Fprintln(out, f.Heading("\nProfile"))
	var choices []selection.ProfileChoice
	for _, p := range loaded {
		if strings.HasPrefix(p.Name, ".") || p.Name == cfg.CommonProfile {
			continue
		}
		choices = append(choices, selection.ChoiceFor(p))
	}
	selected, err := opts.Selector.SelectProfile(choices)
	if errors.Is(err, selection.ErrCancelled) {
		selected, err = "", nil
	}
	if err != nil {
		return nil, err
	}
	rep.SelectedProfile = selected
	if selected == "" {
		fmt.Fprintln(out, f.Muted("  no profile selected, applying common settings only"))
	} else {
		fmt.Fprintf(out, "  selected %s\n", selected)
	}

	// Settings
	fmt.Fprintln(out, f.Heading("\nSettings"))
	merged := userDoc.Clone()
	for _, name := range []string{cfg.CommonProfile, selected} {
		if name == "" {
			continue
		}
		p, ok := byName[name]
		if !ok || len(p.Settings) == 0 {
			fmt.Fprintln(out, f.Muted(fmt.Sprintf("  skip %s (no settings)", name)))
			continue
		}
		fmt.Fprintf(out, "  merging %s (%d keys)\n", name, len(p.Settings))
		merged = merge.Merge(merged, p.Settings, name, res.Log)
	}
	if opts.SafePreset {
		fmt.Fprintln(out, "  applying safe preset")
		merged = merge.ProtectKeys(merged, userDoc, cfg.SafePresetKeys, res.Log)
	}
	res.Merged = merged

	if opts.ShowDiff {
		res.Diff, err = settings.Diff(userDoc, merged)
		if err != nil {
			return nil, err
		}
		if res.Diff == "" {
			fmt.Fprintln(out, f.Muted("  no changes"))
		} else {
			fmt.Fprint(out, res.Diff)
		}
	}

	if opts.DryRun {
		fmt.Fprintln(out, f.Accent("  [dry run] settings not written"))
	} else {
		if userFound {
			res.BackupPath, err = settings.Backup(opts.FS, userPath, opts.Now())
			if err != nil {
				return nil, err
			}
			fmt.Fprintln(out, f.Successf("  ✓ backup: %s", res.BackupPath))
		}
		if err := settings.Write(opts.FS, userPath, merged); err != nil {
			return nil, err
		}
		fmt.Fprintln(out, f.Successf("  ✓ wrote %s", userPath))
	}
	rep.BackupPath = res.BackupPath
	rep.Log = res.Log.Entries()
	res.Report = rep

	// Report
	res.ReportPath = cfg.ReportPath()
	if err := report.Write(opts.FS, res.ReportPath, rep); err != nil {
		log.Warn().Err(err).Str("path", res.ReportPath).Msg("report not saved")
		fmt.Fprintln(out, f.Warnf("warning: report not saved: %v", err))
		res.ReportPath = ""
	} else {
		fmt.Fprintln(out, f.Successf("\n✓ report saved: %s", res.ReportPath))
	}
	report.Summary(out, rep, f)

	return res, nil
}

type extensionChoice struct {
	selected []string
	reason   string
}

func (o *ApplyOptions) chooseExtensions(m *extensions.Matrix) (extensionChoice, error) {
	if o.NoInstall {
		return extensionChoice{reason: SkipDisabled}, nil
	}
	selected, err := o.Selector.SelectExtensions(m)
	if errors.Is(err, selection.ErrCancelled) {
		return extensionChoice{reason: SkipCancelled}, nil
	}
	if err != nil {
		return extensionChoice{}, err
	}
	if o.CLI == nil || !o.CLI.Available() {
		return extensionChoice{reason: SkipNoCode}, nil
	}
	return extensionChoice{selected: selected}, nil
}

// installAll installs r.ToInstall one at a time. Failures are retried with
// backoff up to install.retries times, then moved to r.Failed. After a
// cancelled context the remaining ids are marked failed without trying.
func (o *ApplyOptions) installAll(ctx context.Context, r *extensions.Result) {
	out, f := o.Out, o.Format
	fmt.Fprintf(out, "  %d targets: %d already installed, %d to install\n",
		len(r.Targets), len(r.AlreadyPresent), len(r.ToInstall))
	for _, id := range r.AlreadyPresent {
		fmt.Fprintln(out, f.Muted("  - "+id+" (already installed)"))
	}

	pending := append([]string(nil), r.ToInstall...)
	for _, id := range pending {
		if o.DryRun {
			fmt.Fprintln(out, f.Accent("  [dry run] would install "+id))
			continue
		}
		if ctx.Err() != nil {
			r.MarkFailed(id)
			continue
		}

		fmt.Fprintf(out, "  Installing %s...\n", id)
		if err := o.installWithRetry(ctx, id); err != nil {
			r.MarkFailed(id)
			o.Logger.Warn().Err(err).Str("extension", id).Msg("install failed")
			fmt.Fprintln(out, f.Errorf("  ✗ %s: %v", id, err))
			continue
		}
		fmt.Fprintln(out, f.Successf("  ✓ %s", id))
	}
}

func (o *ApplyOptions) installWithRetry(ctx context.Context, id string) error {
	attempt := 0
	op := func() error {
		attempt++
		err := o.CLI.Install(ctx, id)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		if err != nil {
			o.Logger.Debug().Err(err).Str("extension", id).Int("attempt", attempt).Msg("install attempt failed")
		}
		return err
	}
	b := backoff.WithContext(backoff.WithMaxRetries(o.NewBackOff(), uint64(o.Config.Install.Retries)), ctx)
	return backoff.Retry(op, b)
}
