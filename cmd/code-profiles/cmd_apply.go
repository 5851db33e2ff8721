package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/ruminaider/code-profiles/cmd/code-profiles/tui"
	"github.com/ruminaider/code-profiles/internal/commands"
	"github.com/ruminaider/code-profiles/internal/extensions"
	"github.com/ruminaider/code-profiles/internal/selection"
	"github.com/ruminaider/code-profiles/internal/vscode"
	"github.com/spf13/cobra"
)

var (
	applyNoInstall     bool
	applySafePreset    bool
	applyDryRun        bool
	applyDiff          bool
	applyProfile       string
	applyCommonOnly    bool
	applyExtensions    []string
	applyAllExtensions bool
	applyUI            string
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Install profile extensions and merge profile settings",
	Long: "apply installs the common profile's extensions plus the ones you pick, " +
		"merges the common profile and the chosen profile into your user settings.json " +
		"(backing it up first) and writes a markdown report next to the profiles directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		sel, err := applySelector(cmd, e)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		res, err := commands.Apply(ctx, commands.ApplyOptions{
			FS:         e.fs,
			Config:     e.cfg,
			UserDir:    e.userDir,
			Selector:   sel,
			CLI:        newCodeCLI(e),
			NoInstall:  applyNoInstall,
			SafePreset: applySafePreset,
			DryRun:     applyDryRun,
			ShowDiff:   applyDiff,
			Logger:     e.log,
			Out:        os.Stdout,
			Format:     e.format,
		})
		if err != nil {
			return err
		}

		if res.Extensions != nil && len(res.Extensions.Failed) > 0 {
			fmt.Fprintf(os.Stderr, "\n%s\n", e.format.Warnf("%d extension(s) could not be installed. Check the errors above.", len(res.Extensions.Failed)))
		}
		return nil
	},
}

func newCodeCLI(e *env) *vscode.CLI {
	cli := vscode.New(e.cfg.CodeCommand, e.log)
	cli.Force = e.cfg.Install.Force
	cli.InsecureSSL = e.cfg.Install.InsecureSSL
	return cli
}

// applySelector picks the interactive selector from --ui and lets the
// extension and profile flags answer their question without asking.
func applySelector(cmd *cobra.Command, e *env) (selection.Selector, error) {
	var interactive selection.Selector
	switch applyUI {
	case "tui":
		interactive = tui.NewSelector()
	case "text":
		interactive = selection.NewPrompt(os.Stdin, os.Stdout, e.format, e.cfg.CommonProfile)
	case "auto":
		if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
			interactive = tui.NewSelector()
		} else {
			interactive = selection.NewPrompt(os.Stdin, os.Stdout, e.format, e.cfg.CommonProfile)
		}
	default:
		return nil, fmt.Errorf("invalid --ui %q (want auto, tui or text)", applyUI)
	}

	if applyCommonOnly && cmd.Flags().Changed("profile") {
		return nil, fmt.Errorf("--profile and --common-only are mutually exclusive")
	}

	return flagSelector{
		fixed: selection.Fixed{
			Extensions:    applyExtensions,
			AllExtensions: applyAllExtensions,
			Profile:       applyProfile,
		},
		fixedExtensions: applyAllExtensions || cmd.Flags().Changed("extensions"),
		fixedProfile:    applyCommonOnly || cmd.Flags().Changed("profile"),
		interactive:     interactive,
	}, nil
}

// flagSelector answers from flags where given and asks otherwise.
type flagSelector struct {
	fixed           selection.Fixed
	fixedExtensions bool
	fixedProfile    bool
	interactive     selection.Selector
}

func (s flagSelector) SelectExtensions(m *extensions.Matrix) ([]string, error) {
	if s.fixedExtensions {
		return s.fixed.SelectExtensions(m)
	}
	return s.interactive.SelectExtensions(m)
}

func (s flagSelector) SelectProfile(choices []selection.ProfileChoice) (string, error) {
	if s.fixedProfile {
		return s.fixed.SelectProfile(choices)
	}
	return s.interactive.SelectProfile(choices)
}

func init() {
	f := applyCmd.Flags()
	f.BoolVar(&applyNoInstall, "no-install-extensions", false, "Skip extension installation")
	f.BoolVar(&applySafePreset, "safe-preset", false, "Keep your theme, font size and other personal keys")
	f.BoolVar(&applyDryRun, "dry-run", false, "Show what would change without installing or writing settings")
	f.BoolVar(&applyDiff, "diff", false, "Print a diff of settings.json before and after the merge")
	f.StringVar(&applyProfile, "profile", "", "Profile to apply on top of the common profile")
	f.BoolVar(&applyCommonOnly, "common-only", false, "Apply only the common profile")
	f.StringSliceVar(&applyExtensions, "extensions", nil, "Optional extension ids to install (comma-separated)")
	f.BoolVar(&applyAllExtensions, "all-extensions", false, "Install every optional extension")
	f.StringVar(&applyUI, "ui", "auto", "Selection interface: auto, tui or text")
}
