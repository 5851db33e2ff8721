package selection

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ruminaider/code-profiles/internal/extensions"
	"github.com/ruminaider/code-profiles/internal/style"
)

// Prompt is the line-based text selector.
type Prompt struct {
	in     *bufio.Reader
	out    io.Writer
	format style.Formatter
	common string
}

// NewPrompt reads answers from in and writes prompts to out. common names
// the common profile in messages.
func NewPrompt(in io.Reader, out io.Writer, format style.Formatter, common string) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out, format: format, common: common}
}

func (p *Prompt) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// SelectExtensions lists the optional rows and reads comma-separated
// numbers. "all" selects every row; empty input cancels.
func (p *Prompt) SelectExtensions(m *extensions.Matrix) ([]string, error) {
	f := p.format
	fmt.Fprintln(p.out, f.Heading("\nSelect extensions:"))
	fmt.Fprintln(p.out, f.Warn(fmt.Sprintf("Extensions in %s are always installed.", p.common)))
	fmt.Fprintln(p.out)

	optional := m.Optional()
	if len(optional) == 0 {
		fmt.Fprintln(p.out, f.Warn("No optional extensions."))
		return []string{}, nil
	}

	for i, r := range optional {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, r.ID)
		if r.Explanation != "" {
			fmt.Fprintf(p.out, "     %s\n", f.Muted(r.Explanation))
		}
	}
	fmt.Fprintln(p.out)
	fmt.Fprint(p.out, "Numbers to install (comma-separated, 'all' for everything, Enter to cancel): ")

	input, err := p.readLine()
	if err != nil {
		return nil, fmt.Errorf("reading selection: %w", err)
	}
	if input == "" {
		return nil, ErrCancelled
	}
	if strings.EqualFold(input, "all") {
		ids := make([]string, 0, len(optional))
		for _, r := range optional {
			ids = append(ids, r.ID)
		}
		return ids, nil
	}

	var nums []int
	for _, part := range strings.Split(input, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			fmt.Fprintln(p.out, f.Warn("Invalid input: enter numbers separated by commas."))
			return []string{}, nil
		}
		nums = append(nums, n)
	}

	ids := []string{}
	for _, n := range nums {
		if n < 1 || n > len(optional) {
			fmt.Fprintln(p.out, f.Warnf("Skipping invalid number %d", n))
			continue
		}
		ids = append(ids, optional[n-1].ID)
	}
	return ids, nil
}

// SelectProfile lists choices with their themes and reads one number.
// Empty input or 0 means common settings only.
func (p *Prompt) SelectProfile(choices []ProfileChoice) (string, error) {
	f := p.format
	if len(choices) == 0 {
		fmt.Fprintln(p.out, f.Warn("\nNo selectable profiles."))
		return "", nil
	}

	fmt.Fprintln(p.out, f.Heading("\nSelect a settings profile:"))
	fmt.Fprintln(p.out, f.Warn("Pick one profile, or press Enter to apply common settings only."))
	fmt.Fprintln(p.out)
	for i, c := range choices {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, c.Name)
		fmt.Fprintf(p.out, "     color theme: %s\n", c.ColorTheme)
		fmt.Fprintf(p.out, "     icon theme:  %s\n", c.IconTheme)
	}
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "  0. %s only (themes unchanged)\n", p.common)
	fmt.Fprintln(p.out)
	fmt.Fprint(p.out, "Profile number (Enter for common only): ")

	input, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("reading selection: %w", err)
	}
	if input == "" || input == "0" {
		return "", nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		fmt.Fprintln(p.out, f.Error("Invalid input."))
		return "", nil
	}
	if n < 1 || n > len(choices) {
		fmt.Fprintln(p.out, f.Errorf("Invalid number: enter 1 to %d.", len(choices)))
		return "", nil
	}
	return choices[n-1].Name, nil
}
