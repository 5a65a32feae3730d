package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"duo-tasks/internal/api"
	"duo-tasks/internal/config"
	"duo-tasks/internal/services"

	"github.com/CAFxX/httpcompression"
)

//go:embed templates/*.html static/*.js static/*.css
var assetsFS embed.FS

// Server serves the JSON API and the browser board.
type Server struct {
	api      api.API
	cfg      *config.Config
	tmpl     *template.Template
	compress func(http.Handler) http.Handler
	now      func() time.Time
}

// NewServer validates cfg and parses the embedded templates.
func NewServer(a api.API, cfg *config.Config) (*Server, error) {
	if a == nil {
		return nil, errors.New("web: api is nil")
	}
	if cfg == nil {
		return nil, errors.New("web: config is nil")
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return nil, errors.New("web: addr is empty")
	}

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"duration": func(ms int64) string {
			return services.FormatDuration(time.Duration(ms) * time.Millisecond)
		},
		"priority": priorityLabel,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	compress := func(h http.Handler) http.Handler { return h }
	if cfg.Server.Compression {
		adapter, err := httpcompression.DefaultAdapter()
		if err != nil {
			return nil, fmt.Errorf("web: compression: %w", err)
		}
		compress = adapter
	}

	return &Server{api: a, cfg: cfg, tmpl: tmpl, compress: compress, now: time.Now}, nil
}

func (s *Server) Addr() string { return s.cfg.Server.Addr }

// Handler returns the routed handler. JSON responses are compressed; the
// datastar event streams under /ui/ are not.
func (s *Server) Handler() http.Handler {
	jsonMux := http.NewServeMux()
	jsonMux.HandleFunc("GET /health", s.handleHealth)
	jsonMux.HandleFunc("GET /api/tasks", s.handleListTasks)
	jsonMux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	jsonMux.HandleFunc("GET /api/tasks/export", s.handleExport)
	jsonMux.HandleFunc("POST /api/tasks/import", s.handleImport)
	jsonMux.HandleFunc("GET /api/tasks/{id}", s.handleGetTask)
	jsonMux.HandleFunc("PATCH /api/tasks/{id}", s.handlePatchTask)
	jsonMux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	jsonMux.HandleFunc("POST /api/tasks/{id}/transfer", s.handleTransfer)
	jsonMux.HandleFunc("GET /api/users", s.handleListUsers)
	jsonMux.HandleFunc("PATCH /api/users/{id}", s.handleRenameUser)
	jsonMux.HandleFunc("GET /api/progress", s.handleProgress)
	jsonMux.HandleFunc("GET /static/{file}", s.handleStatic)
	jsonMux.HandleFunc("GET /{$}", s.handleHome)

	mux := http.NewServeMux()
	mux.Handle("/", s.compress(jsonMux))
	mux.HandleFunc("GET /ui/board", s.handleBoard)
	mux.HandleFunc("POST /ui/tasks", s.handleUICreate)
	mux.HandleFunc("POST /ui/tasks/{id}/{action}", s.handleUIAction)
	mux.HandleFunc("POST /ui/users/{id}", s.handleUIRename)
	mux.HandleFunc("POST /ui/import", s.handleUIImport)

	return logRequests(withTimeout(s.cfg.GetQueryTimeout(), mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("file")
	b, err := assetsFS.ReadFile("static/" + name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	switch {
	case strings.HasSuffix(name, ".js"):
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	case strings.HasSuffix(name, ".css"):
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
	}
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(b)
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
