package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/routelens/routelens/internal/assembler"
	"github.com/routelens/routelens/internal/logging"
)

// Server exposes the assembled specification, a small viewer page, and a
// request proxy for trying endpoints from the browser.
type Server struct {
	doc  *assembler.Document
	log  *slog.Logger
	addr string
	http *http.Server
}

// New builds a server around the assembled document.
func New(doc *assembler.Document, addr string) *Server {
	if addr == "" {
		addr = ":4000"
	}
	s := &Server{
		doc:  doc,
		log:  logging.New("server"),
		addr: addr,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleViewer)
	r.Get("/openapi.json", s.handleSpec)
	r.Post("/proxy", s.handleProxy)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the context is canceled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("documentation server listening", "addr", s.addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// handleSpec serves the assembled document verbatim.
func (s *Server) handleSpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(s.doc); err != nil {
		s.log.Warn("spec encode failed", "error", err)
	}
}

func (s *Server) handleViewer(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, viewerHTML, s.doc.Info.Title)
}

// proxyRequest is the browser-side shape for trying an endpoint.
type proxyRequest struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    string            `json:"body,omitempty"`
}

type proxyResponse struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
}

// handleProxy forwards a request described in the POST body and returns the
// upstream response, so the viewer can call APIs that lack CORS headers.
func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	var req proxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid proxy request", http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		http.Error(w, "proxy target must be an absolute http(s) URL", http.StatusBadRequest)
		return
	}
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	upstream, err := http.NewRequestWithContext(r.Context(), method, req.URL, strings.NewReader(req.Body))
	if err != nil {
		http.Error(w, "invalid proxy target", http.StatusBadRequest)
		return
	}
	for k, v := range req.Headers {
		upstream.Header.Set(k, v)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(upstream)
	if err != nil {
		http.Error(w, fmt.Sprintf("proxy request failed: %v", err), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		http.Error(w, "reading upstream response failed", http.StatusBadGateway)
		return
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(proxyResponse{
		Status:  resp.StatusCode,
		Headers: headers,
		Body:    string(body),
	})
}
