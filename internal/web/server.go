package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/internal/services/status"
)

const shutdownTimeout = 5 * time.Second

type statusService interface {
	Health() status.Status
	Ready(ctx context.Context) status.Status
	Status(ctx context.Context, live bool) status.Status
}

// Server exposes the probe endpoints as JSON.
type Server struct {
	Addr    string
	Service statusService
	logger  *zap.Logger
}

// NewServer creates a new web server instance.
func NewServer(addr string, service statusService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Addr: addr, Service: service, logger: logger}
}

// Handler returns the routed endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /status", s.handleStatus)
	return mux
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("listening", zap.String("addr", s.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Service.Health())
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Service.Ready(r.Context()))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	live := true
	if raw := r.URL.Query().Get("live"); raw != "" {
		v, err := parseBool(raw)
		if err != nil {
			s.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
			return
		}
		live = v
	}
	s.writeJSON(w, http.StatusOK, s.Service.Status(r.Context(), live))
}

// parseBool accepts the usual query spellings: true/false, 1/0, yes/no, on/off.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on", "t", "y":
		return true, nil
	case "false", "0", "no", "off", "f", "n":
		return false, nil
	}
	return false, fmt.Errorf("live: %q is not a valid boolean", raw)
}

// writeJSON encodes v before sending the header, so an encoding failure is
// reported as 500 instead of a truncated body.
func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.Error("encode response", zap.Error(err))
		buf.Reset()
		buf.WriteString(`{"detail":"internal error"}` + "\n")
		code = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("write response", zap.Error(err))
	}
}
