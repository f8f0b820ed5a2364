package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/jsonextract"
	"github.com/fwojciec/jsonextract/fs"
	lochttp "github.com/fwojciec/jsonextract/http"
	"github.com/fwojciec/jsonextract/intake"
	"golang.org/x/sync/errgroup"
)

// outcome is the terminal state reached for one input.
type outcome struct {
	input string
	state jsonextract.State
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	mode, err := jsonextract.ParseMode(c.Mode)
	if err != nil {
		return err
	}

	outcomes := make([]outcome, len(c.Inputs))

	var g errgroup.Group
	g.SetLimit(max(c.Concurrency, 1))
	for i, input := range c.Inputs {
		g.Go(func() error {
			outcomes[i] = outcome{input: input, state: c.extract(deps, mode, input)}
			return nil
		})
	}
	_ = g.Wait()

	return c.report(deps, mode, outcomes)
}

// extract runs one input through its own intake controller.
func (c *ExtractCmd) extract(deps *Dependencies, mode jsonextract.Mode, input string) jsonextract.State {
	f, err := deps.Open(deps.Ctx, input)
	if err != nil {
		return jsonextract.Failure{Err: openError(err)}
	}
	if c.Type != "" {
		f.Type = c.Type
	}

	ctrl := intake.NewController(deps.Decoder, deps.Parser,
		intake.WithMode(mode),
		intake.WithDelay(c.Delay),
	)
	ctrl.Submit(deps.Ctx, f)
	state, err := ctrl.Await(deps.Ctx)
	if err != nil {
		return jsonextract.Failure{Err: jsonextract.Errorf(jsonextract.EINTERNAL, "interrupted")}
	}
	return state
}

// report writes results in input order and returns an error if any input
// failed.
func (c *ExtractCmd) report(deps *Dependencies, mode jsonextract.Mode, outcomes []outcome) error {
	var texts []string
	snapshots := make([]jsonextract.Snapshot, 0, len(outcomes))
	failed := 0

	for _, o := range outcomes {
		snapshots = append(snapshots, jsonextract.NewSnapshot(o.state))

		switch s := o.state.(type) {
		case jsonextract.Success:
			text := s.Result.Text()
			texts = append(texts, text)
			fmt.Fprintf(deps.Stderr, "%s: %d %s (%s)\n", s.FileName, s.Result.Len(), itemNoun(mode, s.Result.Len()), s.Digest)

			if c.Save {
				path, err := deps.NewSaver(c.Format, c.outDir(o.input)).Save(deps.Ctx, s.FileName, text)
				if err != nil {
					failed++
					fmt.Fprintf(deps.Stderr, "error: %s: failed to save: %v\n", o.input, err)
					continue
				}
				fmt.Fprintf(deps.Stderr, "Saved %s\n", path)
			}
		case jsonextract.Failure:
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", o.input, jsonextract.ErrorMessage(s.Err))
		}
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		var err error
		if len(snapshots) == 1 {
			err = enc.Encode(snapshots[0])
		} else {
			err = enc.Encode(snapshots)
		}
		if err != nil {
			return err
		}
	} else if len(texts) > 0 {
		fmt.Fprintln(deps.Stdout, strings.Join(texts, "\n\n"))
	}

	if c.Copy && len(texts) > 0 {
		if err := deps.Clipboard.Copy(deps.Ctx, strings.Join(texts, "\n\n")); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stderr, "Copied!")
	}

	if failed > 0 {
		if len(outcomes) == 1 {
			if f, ok := outcomes[0].state.(jsonextract.Failure); ok {
				return &reportedError{err: f.Err}
			}
		}
		return jsonextract.Errorf(jsonextract.EINVALID, "%d of %d inputs failed", failed, len(outcomes))
	}
	return nil
}

// outDir picks where a saved result goes: --out when given, otherwise next
// to a local input, otherwise the working directory.
func (c *ExtractCmd) outDir(input string) string {
	if c.Out != "" {
		return c.Out
	}
	if input == fs.Stdin || lochttp.IsURL(input) {
		return "."
	}
	return filepath.Dir(input)
}

// openError maps source failures onto intake errors. Application errors
// keep their message; anything else is a plain read failure.
func openError(err error) *jsonextract.Error {
	var e *jsonextract.Error
	if errors.As(err, &e) {
		return e
	}
	return jsonextract.Errorf(jsonextract.EREAD, "failed to read file")
}

func itemNoun(mode jsonextract.Mode, n int) string {
	noun := "record"
	if mode == jsonextract.ModeContent {
		noun = "fragment"
	}
	if n != 1 {
		noun += "s"
	}
	return noun
}
