package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ruminaider/code-profiles/cmd/code-profiles/tui"
	"github.com/ruminaider/code-profiles/internal/commands"
	"github.com/ruminaider/code-profiles/internal/extensions"
	"github.com/spf13/cobra"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Show which profiles include which extensions",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		m, err := commands.LoadMatrix(e.fs, e.cfg, e.log)
		if err != nil {
			return err
		}
		if len(m.Rows) == 0 {
			fmt.Println("No extensions listed in any profile.")
			return nil
		}

		fmt.Println(renderMatrix(m, e.format.Color))
		fmt.Println(tui.DimStyle.Render("● enabled  ○ disabled  C common  · absent"))
		if m.MissingExplanations > 0 {
			fmt.Println(e.format.Warnf("%d extensions have no explanation.", m.MissingExplanations))
		}
		return nil
	},
}

func renderMatrix(m *extensions.Matrix, color bool) string {
	headers := append([]string{"extension"}, m.Profiles...)
	headers = append(headers, "explanation")

	cell := tui.StatusGlyph
	if color {
		cell = tui.StatusCell
	}

	rows := make([][]string, 0, len(m.Rows))
	for _, r := range m.Rows {
		row := []string{r.ID}
		for _, name := range m.Profiles {
			row = append(row, cell(r.Status(name)))
		}
		rows = append(rows, append(row, r.Explanation))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Inherit(tui.HeaderStyle)
			}
			if col > 0 && col <= len(m.Profiles) {
				return s.Align(lipgloss.Center)
			}
			return s
		})
	return t.Render()
}
