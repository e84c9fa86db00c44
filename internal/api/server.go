// Package api exposes the query boundary over HTTP/JSON: the live spot
// window, worked-set and cache statistics, a forced cache save, and the
// ADIF batch upload.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ft8spots/internal/cache"
	"ft8spots/internal/importer"
	"ft8spots/internal/spot"
	"ft8spots/internal/store"
	"ft8spots/internal/worked"
)

// maxUploadBytes bounds one batch upload document.
const maxUploadBytes = 16 << 20

// Server serves the query boundary over the shared services.
type Server struct {
	port     int
	store    *store.Store
	worked   *worked.Tracker
	cache    *cache.Cache
	importer *importer.Importer
}

// Config holds API server settings.
type Config struct {
	Port int
}

// NewServer creates the query-boundary server.
func NewServer(cfg Config, s *store.Store, w *worked.Tracker, c *cache.Cache, im *importer.Importer) *Server {
	return &Server{
		port:     cfg.Port,
		store:    s,
		worked:   w,
		cache:    c,
		importer: im,
	}
}

// Router returns the configured chi router.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/health", s.handleHealth)
	r.Get("/spots", s.handleSpots)
	r.Get("/worked_stats", s.handleWorkedStats)
	r.Get("/cache_stats", s.handleCacheStats)
	r.Get("/save_cache", s.handleSaveCache)
	r.Post("/upload", s.handleUpload)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run starts the HTTP server and shuts it down when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(s.port),
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("api: serving at http://localhost%s", srv.Addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"active_spots": s.store.Len(),
	})
}

// spotView is one spot plus its computed age.
type spotView struct {
	spot.Spot
	Uptime int64 `json:"uptime"`
}

func (s *Server) handleSpots(w http.ResponseWriter, _ *http.Request) {
	now := time.Now()
	spots := s.store.Snapshot(nil)

	views := make([]spotView, 0, len(spots))
	for i := range spots {
		views = append(views, spotView{
			Spot:   spots[i],
			Uptime: spots[i].Age(now),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleWorkedStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.worked.GetStats())
}

func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cache.GetStats())
}

func (s *Server) handleSaveCache(w http.ResponseWriter, _ *http.Request) {
	if err := s.cache.Save(); err != nil {
		writeError(w, http.StatusInternalServerError, "cache save failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "Cache saved successfully",
		"cache_stats": s.cache.GetStats(),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file selected")
		return
	}
	defer func() { _ = file.Close() }()

	displayOnMap := r.FormValue("display_on_map") != ""

	processed, err := s.importer.Import(file, displayOnMap)
	if err != nil {
		writeError(w, http.StatusBadRequest, "error processing file: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"processed":      processed,
		"display_on_map": displayOnMap,
		"worked_stats":   s.worked.GetStats(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
