package main

import (
	"fmt"
	"path/filepath"

	"github.com/ruminaider/code-profiles/internal/config"
	"github.com/ruminaider/code-profiles/internal/paths"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage code-profiles configuration",
	Long:  "Commands for creating and inspecting ~/.code-profiles/config.yaml.",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFlag
		if path == "" {
			path = paths.ConfigFile()
		}
		fs := afero.NewOsFs()

		if exists, _ := afero.Exists(fs, path); exists && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		data, err := config.Marshal(config.Default())
		if err != nil {
			return err
		}
		if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
		if err := afero.WriteFile(fs, path, data, 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Printf("✓ Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		data, err := config.Marshal(e.cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		fmt.Printf("# user settings dir: %s\n", e.userDir)
		fmt.Printf("# explanations: %s\n", e.cfg.ExplanationsPath())
		fmt.Printf("# report: %s\n", e.cfg.ReportPath())
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
