// Package server exposes a profile store over the pdf3md profile REST API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pdf3md/profilectl/internal/logging"
	"github.com/pdf3md/profilectl/internal/profiles"
	"github.com/pdf3md/profilectl/internal/store"
)

// Template defaults when the query omits them.
const defaultTemplateName = "New Profile"

type server struct {
	store  *store.Store
	logger *zap.Logger
}

// New returns the HTTP handler serving s.
func New(s *store.Store, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &server{store: s, logger: logger}

	r := chi.NewRouter()
	r.Use(
		corsHandler(),
		chimiddleware.RequestID,
		requestLogger(logger),
		accessLogger(logger),
		chimiddleware.Recoverer,
		chimiddleware.RequestSize(1<<20),
	)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api/profiles", func(r chi.Router) {
		r.Get("/", srv.list)
		r.Post("/", srv.create)
		r.Get("/template", srv.template)
		r.Get("/{name}", srv.get)
		r.Put("/{name}", srv.update)
		r.Delete("/{name}", srv.delete)
		r.Post("/{name}/duplicate", srv.duplicate)
	})
	return r
}

// Run serves handler on addr until ctx is cancelled, then shuts down.
func Run(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	logger.Info("server exited")
	return nil
}

// nameParam returns the decoded {name} path segment.
func nameParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

func (s *server) list(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List()
	if err != nil {
		logging.FromContext(r.Context(), s.logger).Error("listing profiles", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": list})
}

func (s *server) get(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	p, err := s.store.Load(name)
	if err != nil {
		logging.FromContext(r.Context(), s.logger).Warn("loading profile", zap.String("name", name), zap.Error(err))
		writeError(w, http.StatusNotFound, fmt.Sprintf("Profile '%s' not found", name))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) template(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := defaultTemplateName
	if q.Has("name") {
		name = q.Get("name")
	}
	writeJSON(w, http.StatusOK, profiles.Template(name, q.Get("description")))
}

func (s *server) create(w http.ResponseWriter, r *http.Request) {
	p, ok := s.decodeProfile(w, r)
	if !ok {
		return
	}
	if !s.save(w, r, p, "Failed to save profile") {
		return
	}
	writeMessage(w, fmt.Sprintf("Profile '%s' saved successfully", p.Name))
}

func (s *server) update(w http.ResponseWriter, r *http.Request) {
	p, ok := s.decodeProfile(w, r)
	if !ok {
		return
	}
	name := nameParam(r)
	p.Name = name
	if !s.save(w, r, p, "Failed to update profile") {
		return
	}
	writeMessage(w, fmt.Sprintf("Profile '%s' updated successfully", name))
}

func (s *server) delete(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	if err := s.store.Delete(name); err != nil {
		logging.FromContext(r.Context(), s.logger).Warn("deleting profile", zap.String("name", name), zap.Error(err))
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to delete profile '%s'", name))
		return
	}
	writeMessage(w, fmt.Sprintf("Profile '%s' deleted successfully", name))
}

func (s *server) duplicate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NewName string `json:"newName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.NewName == "" {
		writeError(w, http.StatusBadRequest, "New profile name required")
		return
	}
	name := nameParam(r)
	if err := s.store.Duplicate(name, body.NewName); err != nil {
		logging.FromContext(r.Context(), s.logger).Warn("duplicating profile",
			zap.String("name", name),
			zap.String("newName", body.NewName),
			zap.Error(err),
		)
		writeError(w, http.StatusBadRequest, "Failed to duplicate profile")
		return
	}
	writeMessage(w, fmt.Sprintf("Profile duplicated as '%s'", body.NewName))
}

func (s *server) decodeProfile(w http.ResponseWriter, r *http.Request) (profiles.Profile, bool) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil || len(raw) == 0 || string(raw) == "null" {
		writeError(w, http.StatusBadRequest, "No profile data provided")
		return profiles.Profile{}, false
	}
	p, err := profiles.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid profile: "+err.Error())
		return profiles.Profile{}, false
	}
	if err := profiles.Validate(p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid profile: "+err.Error())
		return profiles.Profile{}, false
	}
	return p, true
}

func (s *server) save(w http.ResponseWriter, r *http.Request, p profiles.Profile, failure string) bool {
	if err := s.store.Save(p); err != nil {
		logging.FromContext(r.Context(), s.logger).Error("saving profile", zap.String("name", p.Name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, failure)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
