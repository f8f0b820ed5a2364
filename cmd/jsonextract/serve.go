package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fwojciec/jsonextract"
	lochttp "github.com/fwojciec/jsonextract/http"
)

// Run executes the serve command. It blocks until the context is done.
func (c *ServeCmd) Run(deps *Dependencies) error {
	mode, err := jsonextract.ParseMode(c.Mode)
	if err != nil {
		return err
	}

	srv := lochttp.NewServer(deps.Decoder, deps.Parser,
		lochttp.WithMode(mode),
		lochttp.WithDelay(c.Delay),
		lochttp.WithMaxUploadBytes(c.MaxUpload),
		lochttp.WithLimiter(lochttp.NewClientLimiter(c.Rate, c.Burst)),
		lochttp.WithLogger(deps.Logger),
	)

	fmt.Fprintf(deps.Stdout, "Serving %s mode on http://%s\n", mode, c.Addr)

	if err := srv.ListenAndServe(deps.Ctx, c.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
