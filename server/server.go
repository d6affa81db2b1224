// Package server serves the stored demo pages: a listing at / and each page
// under /system_design/{name}.
package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/yuin/goldmark"

	"system_design_demos/artifact"
)

// RoutePrefix is the path under which single demos are served.
const RoutePrefix = "/system_design/"

//go:embed templates/*.tmpl
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

type Server struct {
	library *artifact.Library
	intro   template.HTML
	logger  *slog.Logger
}

type indexData struct {
	Intro       template.HTML
	RoutePrefix string
	Demos       []artifact.Entry
}

// New builds the server. intro is markdown shown above the listing; it comes
// from the operator's configuration and is rendered as trusted HTML.
func New(library *artifact.Library, intro string, logger *slog.Logger) (*Server, error) {
	if library == nil {
		return nil, errors.New("artifact library required")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rendered, err := mdToHTML(intro)
	if err != nil {
		return nil, fmt.Errorf("rendering intro: %w", err)
	}
	return &Server{
		library: library,
		intro:   template.HTML(rendered),
		logger:  logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET "+RoutePrefix+"{name}", s.handleDemo)
	return logMiddleware(s.logger, mux)
}

// --- Handlers ---

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	demos, err := s.library.List()
	if err != nil {
		s.logger.Error("listing demos", "error", err)
		http.Error(w, "failed to list demos", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, indexData{Intro: s.intro, RoutePrefix: RoutePrefix, Demos: demos}); err != nil {
		s.logger.Error("rendering index", "error", err)
		http.Error(w, "failed to render index", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	body, err := s.library.Get(name)
	if errors.Is(err, artifact.ErrNotFound) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(w, "Demo '%s' not found. <a href='/'>Back to index</a>", html.EscapeString(artifact.FileName(name)))
		return
	}
	if err != nil {
		s.logger.Error("reading demo", "name", name, "error", err)
		http.Error(w, "failed to read demo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

// --- Helpers ---

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func logMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		logger.Info("http request",
			"method", r.Method,
			"path", path,
			"status", status,
			"bytes", rec.bytes,
			"duration", time.Since(start))
	})
}
