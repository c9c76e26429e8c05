package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	v1 "kpiboard/internal/api/v1"
	"kpiboard/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Server mounts the versioned API behind CORS and owns the listener
// lifecycle. The dashboard frontend is served separately, so every
// browser call crosses origins.
type Server struct {
	addr    string
	origins []string
	service *service.Service
	logger  *slog.Logger
}

func NewServer(addr string, origins []string, service *service.Service, logger *slog.Logger) *Server {
	return &Server{addr: addr, origins: origins, service: service, logger: logger}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Get("/health", handleHealth)
	r.Mount("/api/v1", v1.NewHandler(s.service).Routes())
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("http server listening", slog.String("addr", s.addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
