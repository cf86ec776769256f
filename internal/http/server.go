package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"ledger/internal/cache"
	"ledger/internal/core"
	applog "ledger/internal/log"
	"ledger/internal/sheets"
	appweb "ledger/web"
)

// RecordStore is the full backend surface the server works against. Any
// backend (sqlite adapter, sheets client, memory store) satisfies it.
type RecordStore interface {
	sheets.RecordWriter
	sheets.RecordLister
	sheets.RecordUpdater
	sheets.RecordDeleter
	sheets.CategoryReader
}

type Server struct {
	http.Server
	templates *template.Template

	writer     sheets.RecordWriter
	lister     sheets.RecordLister
	updater    sheets.RecordUpdater
	deleter    sheets.RecordDeleter
	categories sheets.CategoryReader

	rateLimiter   *rateLimiter
	structuredLog *applog.StructuredLogger

	// Dashboard overviews cached per window+category selection. Any record
	// write purges the whole cache: a single record can move several keys.
	overviewCache *cache.LRUCache[core.Overview]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, store RecordStore, cacheSize int, cacheTTL time.Duration) *Server {
	mux := http.NewServeMux()

	if cacheSize <= 0 {
		cacheSize = 64
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}

	logger := applog.New(applog.Config{Component: applog.ComponentHTTP})

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: applog.Middleware(logger)(mux),
		},
		writer:        store,
		lister:        store,
		updater:       store,
		deleter:       store,
		categories:    store,
		rateLimiter:   newRateLimiter(),
		structuredLog: applog.NewStructuredLogger(logger),
		overviewCache: cache.NewLRUCache[core.Overview](cacheSize, cacheTTL),
		cacheManager:  cache.NewManager(),
	}

	s.cacheManager.Register(s.overviewCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/records", s.withSecurityHeaders(s.handleCreateRecord))
	mux.HandleFunc("/records/update", s.withSecurityHeaders(s.handleUpdateRecord))
	mux.HandleFunc("/records/delete", s.withSecurityHeaders(s.handleDeleteRecord))
	// UI partials
	mux.HandleFunc("/ui/dashboard", s.withSecurityHeaders(s.handleDashboard))
	mux.HandleFunc("/ui/categories", s.withSecurityHeaders(s.handleCategoryOptions))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	cats, err := s.categories.Categories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Category list error", "error", err)
	}

	data := struct {
		Today      string
		Categories []string
	}{
		Today:      time.Now().UTC().Format(core.DateFormat),
		Categories: cats,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
