package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var reportRaw bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Work with the merge report",
}

var reportShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Render the last merge report",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		path := e.cfg.ReportPath()
		data, err := afero.ReadFile(e.fs, path)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("no report at %s; run 'code-profiles apply' first", path)
			}
			return fmt.Errorf("reading report: %w", err)
		}

		if reportRaw || !isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Print(string(data))
			return nil
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return err
		}
		out, err := r.Render(string(data))
		if err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	reportShowCmd.Flags().BoolVar(&reportRaw, "raw", false, "Print the markdown source")
	reportCmd.AddCommand(reportShowCmd)
}
