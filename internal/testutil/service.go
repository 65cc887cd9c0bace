package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Request is one request received by a Service.
type Request struct {
	Operation     string
	Params        []json.RawMessage
	Username      string
	Password      string
	CorrelationID string
}

// Handler answers a request with an HTTP status and a response envelope.
type Handler func(req Request) (status int, envelope map[string]any)

// Service is an httptest server speaking the service's wire format:
// POST <endpoint>/<operation> with a {"params": [...]} body.
type Service struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]Handler
	requests []Request
}

// NewService starts a Service that is closed when the test ends.
func NewService(t *testing.T) *Service {
	t.Helper()
	s := &Service{handlers: map[string]Handler{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle installs a handler for operation.
func (s *Service) Handle(operation string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[operation] = h
}

// Result makes operation answer 200 with result and requestID.
func (s *Service) Result(operation, requestID string, result any) {
	s.Handle(operation, func(Request) (int, map[string]any) {
		return http.StatusOK, map[string]any{"requestId": requestID, "result": result}
	})
}

// Fault makes operation answer status with a fault envelope.
func (s *Service) Fault(operation string, status int, code, message string) {
	s.Handle(operation, func(Request) (int, map[string]any) {
		return status, map[string]any{"fault": map[string]any{"code": code, "message": message}}
	})
}

// Requests returns the requests received so far.
func (s *Service) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Service) serve(w http.ResponseWriter, r *http.Request) {
	req := Request{
		Operation:     strings.TrimPrefix(r.URL.Path, "/"),
		CorrelationID: r.Header.Get("X-Correlation-Id"),
	}
	req.Username, req.Password, _ = r.BasicAuth()

	body, _ := io.ReadAll(r.Body)
	var payload struct {
		Params []json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		req.Params = payload.Params
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	h, ok := s.handlers[req.Operation]
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	status, envelope := h(req)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope)
}
