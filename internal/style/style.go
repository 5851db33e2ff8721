// Package style formats console output. It holds no global colour state:
// every Formatter decides colour from its own flag.
package style

import (
	"fmt"

	"github.com/fatih/color"
)

// Formatter wraps text in terminal colours when Color is set.
type Formatter struct {
	Color bool
}

func (f Formatter) paint(text string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if f.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

// Heading renders section titles in bold cyan.
func (f Formatter) Heading(text string) string { return f.paint(text, color.FgCyan, color.Bold) }

// Success renders completed steps in green.
func (f Formatter) Success(text string) string { return f.paint(text, color.FgGreen) }

// Warn renders recoverable problems in yellow.
func (f Formatter) Warn(text string) string { return f.paint(text, color.FgYellow) }

// Error renders failures in red.
func (f Formatter) Error(text string) string { return f.paint(text, color.FgRed) }

// Muted renders secondary detail in grey.
func (f Formatter) Muted(text string) string { return f.paint(text, color.FgHiBlack) }

// Accent renders profile names and dry-run notes in bold magenta.
func (f Formatter) Accent(text string) string { return f.paint(text, color.FgMagenta, color.Bold) }

// Successf formats then colours as Success.
func (f Formatter) Successf(format string, a ...any) string {
	return f.Success(fmt.Sprintf(format, a...))
}

// Warnf formats then colours as Warn.
func (f Formatter) Warnf(format string, a ...any) string {
	return f.Warn(fmt.Sprintf(format, a...))
}

// Errorf formats then colours as Error.
func (f Formatter) Errorf(format string, a ...any) string {
	return f.Error(fmt.Sprintf(format, a...))
}
