package main

import (
	"fmt"

	"github.com/ruminaider/code-profiles/internal/commands"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect settings profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles with their themes and extension counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		infos, err := commands.ListProfiles(e.fs, e.cfg, e.log)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Printf("No profiles in %s.\n", e.cfg.ProfilesDir)
			return nil
		}

		for _, p := range infos {
			marker := " "
			if p.Common {
				marker = "*"
			}
			fmt.Printf("%s %s: %d settings, %d extensions, theme %s, icons %s\n",
				marker, e.format.Accent(p.Name), p.Settings, p.Extensions, p.ColorTheme, p.IconTheme)
		}
		fmt.Println(e.format.Muted("\n* always applied"))
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileListCmd)
}
