// Package clipboard copies text to the system clipboard by piping it into
// the platform's clipboard utility.
package clipboard

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/fwojciec/jsonextract"
)

// Compile-time interface verification.
var _ jsonextract.Clipboard = (*Clipboard)(nil)

// Command is a clipboard utility and its arguments. Text is written to its
// standard input.
type Command struct {
	Name string
	Args []string
}

// Runner executes a command with the given standard input.
type Runner func(ctx context.Context, cmd Command, stdin string) error

// Clipboard copies text using the first available command.
type Clipboard struct {
	commands []Command
	lookPath func(string) (string, error)
	run      Runner
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithCommands replaces the candidate utilities, in order of preference.
func WithCommands(cmds ...Command) Option {
	return func(c *Clipboard) {
		c.commands = cmds
	}
}

// WithLookPath replaces the executable lookup.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(c *Clipboard) {
		c.lookPath = fn
	}
}

// WithRunner replaces command execution.
func WithRunner(r Runner) Option {
	return func(c *Clipboard) {
		c.run = r
	}
}

// New creates a Clipboard with the utilities usual for the running OS.
func New(opts ...Option) *Clipboard {
	c := &Clipboard{
		commands: DefaultCommands(runtime.GOOS),
		lookPath: exec.LookPath,
		run:      runCommand,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultCommands lists the clipboard utilities tried on goos.
func DefaultCommands(goos string) []Command {
	switch goos {
	case "darwin":
		return []Command{{Name: "pbcopy"}}
	case "windows":
		return []Command{{Name: "clip.exe"}}
	}
	return []Command{
		{Name: "wl-copy"},
		{Name: "xclip", Args: []string{"-selection", "clipboard"}},
		{Name: "xsel", Args: []string{"--clipboard", "--input"}},
	}
}

// Copy places text on the clipboard verbatim.
func (c *Clipboard) Copy(ctx context.Context, text string) error {
	tried := make([]string, 0, len(c.commands))
	for _, cmd := range c.commands {
		tried = append(tried, cmd.Name)
		if _, err := c.lookPath(cmd.Name); err != nil {
			continue
		}
		if err := c.run(ctx, cmd, text); err != nil {
			return jsonextract.Errorf(jsonextract.EINTERNAL, "%s: %v", cmd.Name, err)
		}
		return nil
	}
	return jsonextract.Errorf(jsonextract.ENOTFOUND, "no clipboard utility found (tried %s)", strings.Join(tried, ", "))
}

func runCommand(ctx context.Context, cmd Command, stdin string) error {
	var stderr bytes.Buffer
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdin = strings.NewReader(stdin)
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
