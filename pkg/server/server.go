// Package server exposes the registration form over HTTP. Each POST replays
// the submitted fields into a fresh registration session, runs one submission
// attempt, and re-renders the page with the resulting errors or notice.
package server

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	theme "github.com/goliatone/go-theme"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goliatone/go-accountform/pkg/model"
	"github.com/goliatone/go-accountform/pkg/registration"
	"github.com/goliatone/go-accountform/pkg/render"
)

const (
	// FormPath serves and accepts the registration form.
	FormPath = "/register"
	// AssetsPath is the prefix static assets are served under.
	AssetsPath = "/assets"

	maxFormBody = 64 << 10
)

// Option configures the Server.
type Option func(*Server)

// WithLogger attaches a logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTheme passes a go-theme config to every render.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithAssets serves files under AssetsPath.
func WithAssets(files fs.FS) Option {
	return func(s *Server) {
		s.assets = files
	}
}

// WithSessionOptions adds options to every per-request session (for example
// a metrics phase observer).
func WithSessionOptions(options ...registration.SessionOption) Option {
	return func(s *Server) {
		s.sessionOptions = append(s.sessionOptions, options...)
	}
}

// WithMetricsHandler overrides the handler mounted on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		if h != nil {
			s.metrics = h
		}
	}
}

// Server is the browser front end.
type Server struct {
	form           model.FormModel
	renderer       render.Renderer
	submitter      registration.Submitter
	theme          *theme.RendererConfig
	assets         fs.FS
	metrics        http.Handler
	sessionOptions []registration.SessionOption
	logger         *zap.SugaredLogger
}

// New builds a Server. The form's endpoint should be FormPath so the page
// posts back here.
func New(form model.FormModel, renderer render.Renderer, submitter registration.Submitter, options ...Option) *Server {
	s := &Server{
		form:      form,
		renderer:  renderer,
		submitter: submitter,
		metrics:   promhttp.Handler(),
		logger:    zap.NewNop().Sugar(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Routes returns the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, FormPath, http.StatusSeeOther)
	})
	r.Get(FormPath, s.show)
	r.Post(FormPath, s.submit)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", s.metrics)
	if s.assets != nil {
		r.Handle(AssetsPath+"/*", http.StripPrefix(AssetsPath+"/", http.FileServer(http.FS(s.assets))))
	}
	return r
}

func (s *Server) show(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, http.StatusOK, uuid.NewString(), registration.Result{})
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	sessionID := sessionIDFrom(r.PostForm.Get(render.SessionFieldName))
	options := append([]registration.SessionOption{
		registration.WithSessionID(sessionID),
		registration.WithLogger(s.logger),
	}, s.sessionOptions...)
	session := registration.NewSession(s.submitter, options...)

	for _, field := range registration.Fields() {
		if err := session.Change(field, r.PostForm.Get(field.String())); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	result := session.Submit(r.Context())
	s.logger.Infow("form submission handled",
		"session", sessionID,
		"request_id", middleware.GetReqID(r.Context()),
		"phase", result.Phase.String(),
	)
	s.write(w, r, statusFor(result), sessionID, result)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, sessionID string, result registration.Result) {
	out, err := s.renderer.Render(r.Context(), s.form, render.RenderOptions{
		Values: result.Data,
		Errors: result.Errors,
		Notice: result.Notice,
		Hidden: render.MergeHiddenFields(nil, render.SessionField(sessionID)),
		Theme:  s.theme,
	})
	if err != nil {
		s.logger.Errorw("render registration form", "session", sessionID, "err", err)
		http.Error(w, "could not render form", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func statusFor(result registration.Result) int {
	switch result.Phase {
	case registration.PhaseRejectedLocally:
		return http.StatusUnprocessableEntity
	case registration.PhaseFailed:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

// sessionIDFrom keeps a well-formed posted id and mints a new one otherwise.
func sessionIDFrom(raw string) string {
	if id, err := uuid.Parse(strings.TrimSpace(raw)); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// NewHTTPServer wraps handler with read, write and idle timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
