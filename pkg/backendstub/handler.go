// Package backendstub is a local stand-in for the user service. It accepts
// registrations on the same route the client posts to, checks them against
// the OpenAPI request schema, and keeps accounts in memory.
package backendstub

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-accountform/pkg/client"
	"github.com/goliatone/go-accountform/pkg/contract"
	"github.com/goliatone/go-accountform/pkg/registration"
)

const maxBody = 64 << 10

// Option configures the Handler.
type Option func(*Handler)

// WithStore swaps the account store.
func WithStore(store *Store) Option {
	return func(h *Handler) {
		if store != nil {
			h.store = store
		}
	}
}

// WithFailMode makes every registration answer 500.
func WithFailMode(fail bool) Option {
	return func(h *Handler) {
		h.failing.Store(fail)
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Handler serves the registration API.
type Handler struct {
	store     *Store
	validator *contract.Validator
	logger    *zap.SugaredLogger
	failing   atomic.Bool
}

// New builds a Handler validating against the embedded contract.
func New(ctx context.Context, options ...Option) (*Handler, error) {
	validator, err := contract.NewValidator(ctx)
	if err != nil {
		return nil, err
	}
	h := &Handler{
		store:     NewStore(),
		validator: validator,
		logger:    zap.NewNop().Sugar(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h, nil
}

// SetFailing toggles fail mode at runtime.
func (h *Handler) SetFailing(fail bool) {
	h.failing.Store(fail)
}

// Store exposes the backing store.
func (h *Handler) Store() *Store {
	return h.store
}

// Routes mounts POST /api/users/register and GET /api/users.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post(client.RegisterPath, h.register)
	r.Get("/api/users", h.list)
	return r
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if h.failing.Load() {
		h.logger.Warnw("fail mode: rejecting registration")
		writeError(w, http.StatusInternalServerError, "user service unavailable")
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	if err := h.validator.ValidateJSON(raw); err != nil {
		h.logger.Infow("registration does not match schema", "err", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var data registration.FormData
	if err := json.Unmarshal(raw, &data); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	account, err := h.store.Create(data)
	if errors.Is(err, ErrDuplicateEmail) {
		h.logger.Infow("duplicate registration", "email", data.Email)
		writeError(w, http.StatusConflict, "an account with this email already exists")
		return
	}
	if err != nil {
		h.logger.Errorw("store registration", "err", err)
		writeError(w, http.StatusInternalServerError, "could not store account")
		return
	}

	h.logger.Infow("account created", "id", account.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": account.ID})
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Accounts())
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
