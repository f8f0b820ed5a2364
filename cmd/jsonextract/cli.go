package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jsonextract"
	lochttp "github.com/fwojciec/jsonextract/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Decoder   jsonextract.Decoder
	Parser    jsonextract.Parser
	Files     jsonextract.Source
	URLs      jsonextract.Source
	Clipboard jsonextract.Clipboard

	// NewSaver returns the saver for a format ("txt" or "pdf") writing into dir.
	NewSaver func(format, dir string) jsonextract.Saver
}

// Open resolves an input: http(s) URLs are fetched, anything else is a
// local path or "-" for stdin.
func (d *Dependencies) Open(ctx context.Context, location string) (*jsonextract.File, error) {
	if lochttp.IsURL(location) {
		return d.URLs.Open(ctx, location)
	}
	return d.Files.Open(ctx, location)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"Load defaults from a YAML file"`
	Verbose bool            `short:"v" help:"Log each intake step to stderr"`

	Extract ExtractCmd `cmd:"" default:"withargs" help:"Extract records from JSON files, URLs or stdin (default command)"`
	Serve   ServeCmd   `cmd:"" help:"Serve the upload page on a local address"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Inputs      []string      `arg:"" name:"input" help:"JSON files, http(s) URLs, or - for stdin"`
	Mode        string        `short:"m" enum:"records,content" default:"records" env:"JSONEXTRACT_MODE" help:"records: name/role/content objects; content: values under \"content\" keys"`
	Type        string        `help:"Declared media type for every input, overriding the extension or Content-Type"`
	Save        bool          `short:"s" help:"Save each result as <name>_extracted.<format>"`
	Out         string        `short:"o" type:"path" help:"Directory for saved files (default: next to each input)"`
	Format      string        `enum:"txt,pdf" default:"txt" help:"Format of saved files"`
	JSON        bool          `name:"json" help:"Print results as JSON"`
	Copy        bool          `help:"Copy the extracted text to the clipboard"`
	Concurrency int           `short:"c" default:"4" env:"JSONEXTRACT_CONCURRENCY" help:"Inputs processed at once"`
	Delay       time.Duration `default:"0s" help:"Pause before decoding each input"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string        `default:"127.0.0.1:8080" env:"JSONEXTRACT_ADDR" help:"Listen address"`
	Mode      string        `short:"m" enum:"records,content" default:"records" env:"JSONEXTRACT_MODE" help:"Extraction mode for uploads"`
	MaxUpload int64         `default:"33554432" help:"Largest accepted upload in bytes"`
	Rate      float64       `default:"5" help:"Submissions per second allowed per client"`
	Burst     int           `default:"10" help:"Submissions a client may send at once"`
	Delay     time.Duration `default:"0s" help:"Pause before decoding each upload"`
}
