// Package backendtest runs an in-process fake of the membership backend.
package backendtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"masjid-admin/internal/backend"
)

type Server struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  map[string]int
	bodies map[string][]byte
}

// NewServer starts an empty fake; unknown routes answer 404 with a detail.
func NewServer(t testing.TB) *Server {
	s := &Server{
		routes: make(map[string]http.HandlerFunc),
		calls:  make(map[string]int),
		bodies: make(map[string][]byte),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Client returns a backend client pointed at the fake's /api root.
func (s *Server) Client() *backend.Client {
	return backend.New(s.URL+"/api", backend.WithHTTPClient(s.Server.Client()))
}

func key(method, path string) string {
	return method + " /" + strings.Trim(path, "/")
}

func (s *Server) Handle(method, path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[key(method, path)] = h
}

// Reply answers method+path with status and v encoded as JSON.
func (s *Server) Reply(method, path string, status int, v any) {
	s.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, v)
	})
}

// Fail answers method+path with a {"detail": ...} error body.
func (s *Server) Fail(method, path string, status int, detail string) {
	s.Reply(method, path, status, map[string]string{"detail": detail})
}

func (s *Server) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key(method, path)]
}

// LastBody returns the most recent request body sent to method+path.
func (s *Server) LastBody(method, path string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[key(method, path)]
}

// DecodeLastBody unmarshals the last body of method+path into out.
func (s *Server) DecodeLastBody(t testing.TB, method, path string, out any) {
	t.Helper()
	if err := json.Unmarshal(s.LastBody(method, path), out); err != nil {
		t.Fatalf("decode %s %s body: %v", method, path, err)
	}
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	k := key(r.Method, path)

	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.calls[k]++
	if len(body) > 0 {
		s.bodies[k] = body
	}
	h, ok := s.routes[k]
	s.mu.Unlock()

	if !ok {
		WriteJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
		return
	}
	h(w, r)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
