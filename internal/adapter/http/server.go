// Package adapthttp is the driving HTTP adapter that routes requests to
// application services.
package adapthttp

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"healthlog/internal/app"
)

// Server routes HTTP requests to the application services.
type Server struct {
	entries *app.EntryService
	flags   *app.FlagsService
	charts  *app.ChartsService
	webDir  string
}

// New creates a Server wired to the given application services.
func New(es *app.EntryService, fs *app.FlagsService, cs *app.ChartsService, webDir string) *Server {
	return &Server{entries: es, flags: fs, charts: cs, webDir: webDir}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/entries", s.handleEntries)
	api.HandleFunc("/entries/", s.handleEntryByID)
	api.HandleFunc("/charts/daily", s.handleChartsDaily)
	api.HandleFunc("/flags", s.handleDayFlags)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/metrics", promhttp.Handler())
	root.Handle("/", spaFromDisk(s.webDir))

	return withMetrics(withRequestLogging(withNoCache(root)))
}
