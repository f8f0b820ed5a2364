// Package intake drives a single document from submission to a terminal
// state: media type gate, decode, parse, extract.
package intake

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fwojciec/jsonextract"
)

// Controller owns one intake State. Each Submit starts a new request; only
// the newest request may move the state on, so a slow decode that finishes
// after a later Submit or Reset is discarded.
type Controller struct {
	decoder jsonextract.Decoder
	parser  jsonextract.Parser
	mode    jsonextract.Mode
	delay   time.Duration

	mu      sync.Mutex
	state   jsonextract.State
	current uint64
	changed chan struct{}

	wg sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithMode selects the extraction policy. The default is records mode.
func WithMode(m jsonextract.Mode) Option {
	return func(c *Controller) {
		c.mode = m
	}
}

// WithDelay pauses before decoding each submission.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

// NewController creates an idle Controller.
func NewController(decoder jsonextract.Decoder, parser jsonextract.Parser, opts ...Option) *Controller {
	c := &Controller{
		decoder: decoder,
		parser:  parser,
		mode:    jsonextract.ModeRecords,
		state:   jsonextract.Idle{},
		changed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() jsonextract.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit starts processing f and returns the request id it was issued.
// A nil file or one without a JSON media type fails immediately without
// being read. Otherwise the state becomes Loading and decoding continues in
// the background; ctx bounds that work.
func (c *Controller) Submit(ctx context.Context, f *jsonextract.File) uint64 {
	c.mu.Lock()
	c.current++
	id := c.current
	if f == nil || !jsonextract.IsJSONType(f.Type) {
		c.setLocked(jsonextract.Failure{Err: jsonextract.Errorf(jsonextract.EUNSUPPORTED, "only JSON files are accepted")})
		c.mu.Unlock()
		return id
	}
	c.setLocked(jsonextract.Loading{FileName: f.Name})
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.process(ctx, id, f)
	}()

	return id
}

// Reset returns to Idle and invalidates any in-flight request.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current++
	c.setLocked(jsonextract.Idle{})
}

// Await blocks until the state is no longer Loading and returns it.
func (c *Controller) Await(ctx context.Context) (jsonextract.State, error) {
	for {
		c.mu.Lock()
		s, changed := c.state, c.changed
		c.mu.Unlock()

		if _, loading := s.(jsonextract.Loading); !loading {
			return s, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return s, ctx.Err()
		}
	}
}

// Wait blocks until every background decode, stale ones included, has
// returned.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) process(ctx context.Context, id uint64, f *jsonextract.File) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}

	text, err := c.decoder.Decode(ctx, f)
	if err != nil {
		c.complete(id, jsonextract.Failure{Err: jsonextract.Errorf(jsonextract.EREAD, "failed to read file")})
		return
	}

	if !c.isCurrent(id) {
		return
	}

	c.complete(id, c.extract(f.Name, text))
}

func (c *Controller) extract(name, text string) jsonextract.State {
	v, err := c.parser.Parse(text)
	if err != nil {
		return jsonextract.Failure{Err: jsonextract.Errorf(jsonextract.EPARSE, "processing failed: %s", detail(err))}
	}

	result := c.mode.Extract(v)
	if result.Len() == 0 {
		return jsonextract.Failure{Err: c.mode.NoMatches()}
	}

	return jsonextract.Success{FileName: name, Result: result, Digest: Digest(result.Text())}
}

// complete applies s if id is still the current request.
func (c *Controller) complete(id uint64, s jsonextract.State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.current {
		return false
	}
	c.setLocked(s)
	return true
}

func (c *Controller) isCurrent(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return id == c.current
}

// setLocked replaces the state and wakes waiters. c.mu must be held.
func (c *Controller) setLocked(s jsonextract.State) {
	c.state = s
	close(c.changed)
	c.changed = make(chan struct{})
}

// detail returns the diagnostic text of a parser error.
func detail(err error) string {
	var e *jsonextract.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
