package server

import (
	_ "embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/yourorg/playground/internal/config"
	"github.com/yourorg/playground/internal/playground"
	"github.com/yourorg/playground/internal/spec"
	"github.com/yourorg/playground/internal/store"
)

var (
	//go:embed ui.html
	uiHTML string

	uiTemplate = template.Must(template.New("ui").Parse(uiHTML))
)

// Server wraps the preview UI and API handlers.
type Server struct {
	cfg   *config.Config
	store store.Store
	log   *slog.Logger
	mux   *http.ServeMux

	mu       sync.Mutex
	builders map[string]*playground.Builder
}

type uiData struct {
	SpecID string
}

// New constructs a new Server with routes registered.
func New(cfg *config.Config, st store.Store, log *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if st == nil {
		return nil, errors.New("store is nil")
	}

	srv := &Server{
		cfg:      cfg,
		store:    st,
		log:      log,
		mux:      http.NewServeMux(),
		builders: map[string]*playground.Builder{},
	}
	srv.registerRoutes()
	return srv, nil
}

// Handler returns the http handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the server on addr.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) registerRoutes() {
	// Static file server for rendered output.
	s.mux.Handle("/docs/", http.StripPrefix("/docs/", http.FileServer(http.Dir(s.cfg.Output.Dir))))

	// UI routes.
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/spec/", s.handleSpecPage)

	// API routes.
	s.mux.HandleFunc("/api/specs", s.handleSpecs)
	s.mux.HandleFunc("/api/specs/", s.handleSpecRoutes)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderUI(w, "")
}

func (s *Server) handleSpecPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, tail, ok := splitPath(r.URL.Path, "/spec/")
	if !ok || id == "" || tail != "" {
		http.NotFound(w, r)
		return
	}
	s.renderUI(w, id)
}

func (s *Server) handleSpecs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	specs, err := s.store.ListSpecs()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, specs)
}

func (s *Server) handleSpecRoutes(w http.ResponseWriter, r *http.Request) {
	id, tail, ok := splitPath(r.URL.Path, "/api/specs/")
	if !ok || id == "" {
		http.NotFound(w, r)
		return
	}
	switch {
	case tail == "":
		s.handleSpecDetail(w, r, id)
	case tail == "endpoints":
		s.handleEndpoints(w, r, id)
	case strings.HasPrefix(tail, "endpoints/"):
		rest := strings.TrimPrefix(tail, "endpoints/")
		parts := strings.Split(rest, "/")
		key := parts[0]
		switch {
		case len(parts) == 1:
			s.handleEndpointDetail(w, r, id, key)
		case len(parts) == 2 && parts[1] == "samples":
			s.handleSamples(w, r, id, key)
		case len(parts) == 2 && parts[1] == "parse":
			s.handleParse(w, r, id, key)
		default:
			http.NotFound(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleSpecDetail(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method == http.MethodDelete {
		if err := s.store.DeleteSpec(id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		s.mu.Lock()
		delete(s.builders, id)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rec, _, err := s.store.GetSpec(id)
	if err != nil {
		http.Error(w, "spec not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	configs, err := s.store.ListEndpoints(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(configs) == 0 {
		b, err := s.builder(id)
		if err != nil {
			http.Error(w, "spec not found", http.StatusNotFound)
			return
		}
		configs = b.Endpoints()
	}
	writeJSON(w, http.StatusOK, configs)
}

func (s *Server) handleEndpointDetail(w http.ResponseWriter, r *http.Request, id, key string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if cfg, err := s.store.GetEndpoint(id, key); err == nil {
		writeJSON(w, http.StatusOK, cfg)
		return
	}
	b, err := s.builder(id)
	if err != nil {
		http.Error(w, "spec not found", http.StatusNotFound)
		return
	}
	cfg := b.Endpoint(key)
	if cfg == nil {
		http.Error(w, "endpoint not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request, id, key string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Values map[string]any `json:"values"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	b, err := s.builder(id)
	if err != nil {
		http.Error(w, "spec not found", http.StatusNotFound)
		return
	}
	samples := b.Samples(key, req.Values)
	if samples == nil {
		http.Error(w, "endpoint not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"samples": samples})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request, id, key string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Lang   string `json:"lang"`
		Source string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	b, err := s.builder(id)
	if err != nil {
		http.Error(w, "spec not found", http.StatusNotFound)
		return
	}
	values := b.ParseExample(key, req.Lang, req.Source)
	writeJSON(w, http.StatusOK, map[string]any{"values": values})
}

// builder returns the cached playground builder for a stored spec, loading
// and decoding the raw document on first use.
func (s *Server) builder(id string) (*playground.Builder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.builders[id]; ok {
		return b, nil
	}
	_, raw, err := s.store.GetSpec(id)
	if err != nil {
		return nil, err
	}
	doc, err := spec.Decode(raw)
	if err != nil {
		return nil, err
	}
	b := playground.New(doc, playground.Options{
		Languages: s.cfg.Samples.Languages,
		BaseURL:   s.cfg.Samples.BaseURL,
		Logger:    s.log,
	})
	s.builders[id] = b
	return b, nil
}

func (s *Server) renderUI(w http.ResponseWriter, specID string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = uiTemplate.Execute(w, uiData{SpecID: specID})
}

func splitPath(fullPath, prefix string) (string, string, bool) {
	if !strings.HasPrefix(fullPath, prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(fullPath, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return "", "", false
	}
	parts := strings.Split(rest, "/")
	id := parts[0]
	tail := ""
	if len(parts) > 1 {
		tail = strings.Join(parts[1:], "/")
	}
	return id, tail, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
