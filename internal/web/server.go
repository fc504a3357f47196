package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/vbonduro/fishedex/internal/domain"
	"github.com/vbonduro/fishedex/internal/service"
)

// Services bundles everything the HTTP layer serves.
type Services struct {
	Users          *service.UserService
	Locations      *service.LocationService
	Outings        *service.OutingService
	Catches        *service.CatchService
	Insights       *service.InsightService
	CatchImages    *service.ImageService
	SceneryImages  *service.ImageService
	LocationImages *service.ImageService
}

type Server struct {
	svc           Services
	mux           *http.ServeMux
	maxImageBytes int64
	logger        *slog.Logger
}

func NewServer(svc Services, maxImageBytes int64, logger *slog.Logger) *Server {
	s := &Server{
		svc:           svc,
		mux:           http.NewServeMux(),
		maxImageBytes: maxImageBytes,
		logger:        logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /users", s.handleListUsers)
	s.mux.HandleFunc("POST /users", s.handleCreateUser)
	s.mux.HandleFunc("GET /users/{id}", s.handleGetUser)

	s.mux.HandleFunc("GET /locations", s.handleListLocations)
	s.mux.HandleFunc("POST /locations", s.handleCreateLocation)
	s.mux.HandleFunc("POST /location", s.handleCreateLocation)
	s.mux.HandleFunc("GET /locations/{id}", s.handleGetLocation)
	s.mux.HandleFunc("PUT /locations/{id}", s.handleUpdateLocation)
	s.mux.HandleFunc("DELETE /locations/{id}", s.handleDeleteLocation)

	s.mux.HandleFunc("GET /outings", s.handleListOutings)
	s.mux.HandleFunc("POST /outings", s.handleCreateOuting)
	s.mux.HandleFunc("GET /outings/{id}", s.handleGetOuting)
	s.mux.HandleFunc("PUT /outings/{id}", s.handleUpdateOuting)
	s.mux.HandleFunc("DELETE /outings/{id}", s.handleDeleteOuting)
	s.mux.HandleFunc("GET /outings/{id}/catches", s.handleListCatches)
	s.mux.HandleFunc("GET /outings/{id}/weather", s.handleOutingWeather)
	s.mux.HandleFunc("GET /outings_plus_locations", s.handleOutingsWithLocations)

	s.mux.HandleFunc("POST /catches", s.handleCreateCatch)
	s.mux.HandleFunc("GET /catches/{id}", s.handleGetCatch)
	s.mux.HandleFunc("PUT /catches/{id}", s.handleUpdateCatch)
	s.mux.HandleFunc("DELETE /catches/{id}", s.handleDeleteCatch)

	for _, route := range []imageRoute{
		{prefix: "/catch_images", parentField: "catch_id", parentLabel: "Catch ID", svc: s.svc.CatchImages},
		{prefix: "/scenery_images", parentField: "outing_id", parentLabel: "Outing ID", svc: s.svc.SceneryImages},
		{prefix: "/location_images", parentField: "location_id", parentLabel: "Location ID", svc: s.svc.LocationImages},
	} {
		s.registerImageRoutes(route)
	}

	s.mux.HandleFunc("GET /fish_caught", s.handleFishCaught)
	s.mux.HandleFunc("GET /best_spots", s.handleBestSpots)
}

// securityHeaders sets the browser hardening headers on every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; img-src 'self' data:; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

const requestIDHeader = "X-Request-ID"

// requestLogger tags every request with an id (the caller's X-Request-ID when
// given) and logs it once the handler returns.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", id,
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
