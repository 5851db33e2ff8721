package vscode

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ruminaider/code-profiles/internal/extensions"
)

// DefaultCommand is the VS Code launcher on PATH.
const DefaultCommand = "code"

// Runner executes an external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, env []string, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	return cmd.CombinedOutput()
}

// CLI drives the VS Code command line for listing and installing extensions.
type CLI struct {
	Command     string
	Runner      Runner
	LookPath    func(string) (string, error)
	InsecureSSL bool
	Force       bool
	Logger      zerolog.Logger
}

// New returns a CLI for command using os/exec.
func New(command string, logger zerolog.Logger) *CLI {
	if command == "" {
		command = DefaultCommand
	}
	return &CLI{
		Command:  command,
		Runner:   ExecRunner{},
		LookPath: exec.LookPath,
		Logger:   logger,
	}
}

// Available reports whether the command can be found.
func (c *CLI) Available() bool {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	_, err := lookPath(c.Command)
	return err == nil
}

func (c *CLI) run(ctx context.Context, env []string, args ...string) ([]byte, error) {
	runner := c.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	c.Logger.Debug().Str("command", c.Command).Strs("args", args).Msg("running")
	out, err := runner.Run(ctx, env, c.Command, args...)
	if err != nil {
		return out, fmt.Errorf("%s %s: %w: %s", c.Command, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

// ListInstalled returns the installed extension ids. A missing command or a
// failed listing gives an empty set.
func (c *CLI) ListInstalled(ctx context.Context) extensions.InstalledSet {
	if !c.Available() {
		c.Logger.Warn().Str("command", c.Command).Msg("command not found, assuming no extensions installed")
		return extensions.InstalledSet{}
	}
	out, err := c.run(ctx, nil, "--list-extensions")
	if err != nil {
		c.Logger.Warn().Err(err).Msg("listing installed extensions failed")
		return extensions.InstalledSet{}
	}
	return extensions.NewInstalledSet(splitLines(out))
}

// ListWithVersions returns installed extensions as records with versions.
func (c *CLI) ListWithVersions(ctx context.Context) ([]extensions.Record, error) {
	if !c.Available() {
		return nil, fmt.Errorf("%s command not found", c.Command)
	}
	out, err := c.run(ctx, nil, "--list-extensions", "--show-versions")
	if err != nil {
		return nil, err
	}
	return ParseVersionedList(out), nil
}

// Install installs one extension.
func (c *CLI) Install(ctx context.Context, id string) error {
	args := []string{"--install-extension", id}
	if c.Force {
		args = append(args, "--force")
	}
	var env []string
	if c.InsecureSSL {
		args = append(args, "--strict-ssl", "false")
		env = append(env, "NODE_TLS_REJECT_UNAUTHORIZED=0")
	}
	_, err := c.run(ctx, env, args...)
	return err
}

// ParseVersionedList parses `id@version` lines. Lines without a version get
// an empty one.
func ParseVersionedList(out []byte) []extensions.Record {
	var records []extensions.Record
	for _, line := range splitLines(out) {
		id, version, _ := strings.Cut(line, "@")
		records = append(records, extensions.Record{ID: id, Version: version, Enabled: true})
	}
	return records
}

func splitLines(out []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
