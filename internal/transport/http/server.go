package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sloghttp "github.com/samber/slog-http"

	directoryService "github.com/filterbotio/autofilter-bot/internal/modules/directory/service"
	filterService "github.com/filterbotio/autofilter-bot/internal/modules/filter/service"
	"github.com/filterbotio/autofilter-bot/internal/shared/config"
)

const apiVersion = "1.0.0"

// Server exposes service status over HTTP for monitors and uptime pingers
type Server struct {
	cfg       *config.Config
	directory *directoryService.Service
	filters   *filterService.Service
	logger    *slog.Logger
}

// New creates a new HTTP server
func New(cfg *config.Config, directory *directoryService.Service, filters *filterService.Service) *Server {
	return &Server{
		cfg:       cfg,
		directory: directory,
		filters:   filters,
		logger:    slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /health", s.handleHealth)

	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("status server starting", "addr", addr)

	// Use slog-http middleware with recovery
	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

type rootResponse struct {
	Status        string  `json:"status"`
	Bot           string  `json:"bot"`
	Version       string  `json:"version"`
	Timestamp     string  `json:"timestamp"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

type statsResponse struct {
	TotalUsers    int    `json:"total_users"`
	TotalGroups   int    `json:"total_groups"`
	TotalFilters  int    `json:"total_filters"`
	TotalFiles    int    `json:"total_files"`
	TotalSearches int64  `json:"total_searches"`
	Backend       string `json:"backend"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, rootResponse{
		Status:        "online",
		Bot:           "Auto-Filter Bot",
		Version:       apiVersion,
		Timestamp:     time.Now().Format(time.RFC3339),
		UptimeSeconds: s.directory.Uptime().Seconds(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.directory.Stats(r.Context())
	if err != nil {
		s.logger.Error("failed to load stats", "error", err)
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}

	keywords, err := s.filters.All(r.Context())
	if err != nil {
		s.logger.Error("failed to load filters", "error", err)
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}
	totalFiles := 0
	for _, k := range keywords {
		totalFiles += k.Count
	}

	s.writeJSON(w, statsResponse{
		TotalUsers:    stats.Users,
		TotalGroups:   stats.Groups,
		TotalFilters:  len(keywords),
		TotalFiles:    totalFiles,
		TotalSearches: stats.TotalSearches,
		Backend:       stats.Backend,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
