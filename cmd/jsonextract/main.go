package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jsonextract"
	"github.com/fwojciec/jsonextract/clipboard"
	"github.com/fwojciec/jsonextract/fs"
	lochttp "github.com/fwojciec/jsonextract/http"
	"github.com/fwojciec/jsonextract/jsontext"
	"github.com/fwojciec/jsonextract/pdf"
	locslog "github.com/fwojciec/jsonextract/slog"
	"github.com/fwojciec/jsonextract/text"
	"github.com/fwojciec/jsonextract/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read for the "-" input.
	Stdin io.Reader

	// ConfigPaths are YAML files consulted for defaults, in order.
	ConfigPaths []string

	// Clipboard overrides the system clipboard. Used by tests.
	Clipboard jsonextract.Clipboard

	// Saver overrides the file savers for every format. Used by tests.
	Saver jsonextract.Saver
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:       os.Stdin,
		ConfigPaths: []string{"~/.config/jsonextract/config.yaml", "jsonextract.yaml"},
	}
}

// Run executes the CLI with the given arguments. Every returned error has
// been written to stderr exactly once.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	err := m.run(ctx, args, stdout, stderr)
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(stderr, "error: %s\n", errorText(err))
	}
	return err
}

func (m *Main) run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jsonextract"),
		kong.Description("Extract name/role/content records from JSON documents as plain text"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(yaml.Loader, m.ConfigPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no input specified. Run 'jsonextract --help' to see usage")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Decoder = locslog.NewLoggingDecoder(text.NewDecoder(), deps.Logger)
	deps.Parser = locslog.NewLoggingParser(jsontext.NewParser(), deps.Logger)
	deps.Files = locslog.NewLoggingSource(fs.NewSource(m.Stdin), deps.Logger)
	deps.URLs = locslog.NewLoggingSource(lochttp.NewSource(), deps.Logger)
	deps.Clipboard = m.Clipboard
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.New()
	}
	deps.NewSaver = func(format, dir string) jsonextract.Saver {
		if m.Saver != nil {
			return m.Saver
		}
		if format == "pdf" {
			return pdf.NewWriter(dir)
		}
		return fs.NewWriter(dir)
	}

	return kongCtx.Run(deps)
}

// reportedError marks an error a command has already written to stderr.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// errorText returns the message of application errors and the full text of
// anything else, such as flag parsing failures.
func errorText(err error) string {
	var e *jsonextract.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
