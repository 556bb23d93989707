// Package server exposes the detection backend over HTTP for the
// dashboard poller.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"vigia/internal/detect"
	"vigia/internal/stats"
)

// Server routes dashboard requests to the detector and recorder.
type Server struct {
	router   *mux.Router
	detector *detect.Detector
	recorder *stats.Recorder
	log      *slog.Logger
}

func New(det *detect.Detector, rec *stats.Recorder, log *slog.Logger) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		detector: det,
		recorder: rec,
		log:      log.With("component", "server"),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Use(s.loggingMiddleware, s.recoveryMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/vehicle-detection", s.handleVehicleCount).Methods("GET")
	s.router.HandleFunc("/vehicle-stats", s.handleVehicleStats).Methods("GET")
	s.router.HandleFunc("/detected-objects", s.handleDetectedObjects).Methods("GET")
	s.router.HandleFunc("/classes", s.handleClasses).Methods("GET")

	s.router.HandleFunc("/start-detection", s.handleStartDetection).Methods("POST")
	s.router.HandleFunc("/stop-detection", s.handleStopDetection).Methods("POST")
	s.router.HandleFunc("/reset-count", s.handleResetCount).Methods("POST")
}

// Handler returns the routable HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// loggingMiddleware logs one line per request with status and timing.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Seconds()*1000,
			"remote", r.RemoteAddr)
	})
}

// recoveryMiddleware turns handler panics into 500 responses.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.log.Error("panic recovered", "err", err, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"status": "error",
		"error":  message,
	})
}
