package http

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/jsonextract"
	"github.com/fwojciec/jsonextract/intake"
	"github.com/google/uuid"
)

// SessionCookie names the cookie that ties a browser to its intake.
const SessionCookie = "jsonextract_session"

// DefaultMaxUploadBytes bounds the size of an uploaded document.
const DefaultMaxUploadBytes int64 = 32 << 20

// DefaultSessionTTL is how long an untouched session is kept.
const DefaultSessionTTL = 30 * time.Minute

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

//go:embed static/index.html
var indexHTML []byte

// Server serves the upload page and a small JSON API. Every browser session
// owns one intake controller, so concurrent users never see each other's
// results.
type Server struct {
	decoder    jsonextract.Decoder
	parser     jsonextract.Parser
	mode       jsonextract.Mode
	delay      time.Duration
	maxUpload  int64
	limiter    *ClientLimiter
	logger     *slog.Logger
	sessionTTL time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*session

	// swept tracks decodes still running for sessions dropped by Sweep.
	swept sync.WaitGroup

	mux *http.ServeMux
}

type session struct {
	controller *intake.Controller
	lastSeen   time.Time
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMode selects the extraction policy for every session.
func WithMode(m jsonextract.Mode) ServerOption {
	return func(s *Server) {
		s.mode = m
	}
}

// WithDelay pauses before decoding each upload.
func WithDelay(d time.Duration) ServerOption {
	return func(s *Server) {
		s.delay = d
	}
}

// WithMaxUploadBytes sets the largest accepted upload.
func WithMaxUploadBytes(n int64) ServerOption {
	return func(s *Server) {
		s.maxUpload = n
	}
}

// WithLimiter rate limits submissions per client address.
func WithLimiter(l *ClientLimiter) ServerOption {
	return func(s *Server) {
		s.limiter = l
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// WithSessionTTL sets how long idle sessions survive a sweep.
func WithSessionTTL(d time.Duration) ServerOption {
	return func(s *Server) {
		s.sessionTTL = d
	}
}

// NewServer creates a Server. Close must be called to release background
// work.
func NewServer(decoder jsonextract.Decoder, parser jsonextract.Parser, opts ...ServerOption) *Server {
	s := &Server{
		decoder:    decoder,
		parser:     parser,
		mode:       jsonextract.ModeRecords,
		maxUpload:  DefaultMaxUploadBytes,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionTTL: DefaultSessionTTL,
		sessions:   make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /api/submit", s.handleSubmit)
	s.mux.HandleFunc("GET /api/state", s.handleState)
	s.mux.HandleFunc("POST /api/reset", s.handleReset)
	s.mux.HandleFunc("GET /api/download", s.handleDownload)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case err := <-errc:
			s.Close()
			return err
		case <-ticker.C:
			s.Sweep()
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
			defer cancel()
			err := srv.Shutdown(shutdownCtx)
			s.Close()
			return err
		}
	}
}

// Close stops background decodes and waits for them to return.
func (s *Server) Close() {
	s.cancel()

	s.mu.Lock()
	controllers := make([]*intake.Controller, 0, len(s.sessions))
	for _, sess := range s.sessions {
		controllers = append(controllers, sess.controller)
	}
	s.mu.Unlock()

	for _, c := range controllers {
		c.Wait()
	}
	s.swept.Wait()
}

// Sweep drops sessions and rate limiter buckets untouched for longer than
// the session TTL. Decodes still running for a dropped session are waited
// on by Close.
func (s *Server) Sweep() {
	if s.sessionTTL <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.sessionTTL)

	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			s.swept.Add(1)
			go func(c *intake.Controller) {
				defer s.swept.Done()
				c.Wait()
			}(sess.controller)
		}
	}
	s.mu.Unlock()

	if s.limiter != nil {
		s.limiter.Prune(cutoff)
	}
}

// session returns the caller's session, starting one when the cookie is
// missing or unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, err := r.Cookie(SessionCookie); err == nil {
		if sess, ok := s.sessions[c.Value]; ok {
			sess.lastSeen = time.Now()
			return sess
		}
	}

	id := uuid.New().String()
	sess := &session{
		controller: intake.NewController(s.decoder, s.parser, intake.WithMode(s.mode), intake.WithDelay(s.delay)),
		lastSeen:   time.Now(),
	}
	s.sessions[id] = sess
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil && !s.limiter.Allow(clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, jsonextract.Errorf(jsonextract.EINVALID, "too many requests, slow down"))
		return
	}
	if r.ContentLength > s.maxUpload {
		writeError(w, http.StatusRequestEntityTooLarge, jsonextract.Errorf(jsonextract.EINVALID, "upload exceeds %d bytes", s.maxUpload))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	sess := s.session(w, r)

	file, err := uploadedFile(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, jsonextract.Errorf(jsonextract.EINVALID, "upload exceeds %d bytes", s.maxUpload))
			return
		}
		writeError(w, http.StatusBadRequest, jsonextract.Errorf(jsonextract.EINVALID, "invalid upload: %v", err))
		return
	}

	sess.controller.Submit(s.ctx, file)
	state, err := sess.controller.Await(r.Context())
	if err != nil {
		return
	}

	snap := jsonextract.NewSnapshot(state)
	s.logger.Info("submit",
		"client", clientKey(r),
		"file", uploadName(file),
		"state", snap.State,
		"count", snap.Count,
		"code", snap.Code,
	)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	writeJSON(w, http.StatusOK, jsonextract.NewSnapshot(sess.controller.State()))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.controller.Reset()
	writeJSON(w, http.StatusOK, jsonextract.NewSnapshot(sess.controller.State()))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	success, ok := sess.controller.State().(jsonextract.Success)
	if !ok {
		writeError(w, http.StatusNotFound, jsonextract.Errorf(jsonextract.ENOTFOUND, "nothing to download"))
		return
	}

	etag := `"` + success.Digest + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": jsonextract.OutputName(success.FileName, ".txt"),
	}))
	_, _ = io.WriteString(w, success.Result.Text())
}

// uploadedFile reads the "file" part of a multipart upload into memory.
// A request without that part yields a nil file, which intake rejects.
func uploadedFile(r *http.Request) (*jsonextract.File, error) {
	part, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, err
	}

	return &jsonextract.File{
		Name: header.Filename,
		Type: header.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}, nil
}

func uploadName(f *jsonextract.File) string {
	if f == nil {
		return ""
	}
	return f.Name
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Code:    jsonextract.ErrorCode(err),
		Message: jsonextract.ErrorMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
