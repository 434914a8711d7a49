package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testPassword = "hunter2"

// mockServer builds an httptest.Server that mimics the dashboard's session
// handling: POST /login sets a cookie, and every other route except
// /status requires it.
type mockServer struct {
	t          *testing.T
	handler    http.HandlerFunc
	expectPath string
	expectMeth string
	expectBody map[string]string
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	return &mockServer{t: t}
}

// ExpectPath sets the expected request path and verifies it in the handler.
func (m *mockServer) ExpectPath(path string) *mockServer {
	m.expectPath = path
	return m
}

// ExpectMethod sets the expected HTTP method and verifies it in the handler.
func (m *mockServer) ExpectMethod(method string) *mockServer {
	m.expectMeth = method
	return m
}

// ExpectBody checks the decoded JSON request body.
func (m *mockServer) ExpectBody(body map[string]string) *mockServer {
	m.expectBody = body
	return m
}

// Handler sets a custom handler function.
func (m *mockServer) Handler(h func(w http.ResponseWriter, r *http.Request)) *mockServer {
	m.handler = h
	return m
}

// RespondJSON sets up a handler that responds with JSON-encoded data.
func (m *mockServer) RespondJSON(v any) *mockServer {
	m.handler = func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(m.t, w, http.StatusOK, v)
	}
	return m
}

// RespondError sets up a handler that responds like the API does on failure.
func (m *mockServer) RespondError(code int, message string) *mockServer {
	m.handler = func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(m.t, w, code, map[string]string{"error": message})
	}
	return m
}

// Build creates the httptest.Server. It is closed when the test ends.
func (m *mockServer) Build() *httptest.Server {
	m.t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			var req map[string]string
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req["password"] != testPassword {
				respondJSON(m.t, w, http.StatusUnauthorized, map[string]string{"error": "Invalid API Password."})
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "cinevault.sid", Value: "ok", Path: "/"})
			respondJSON(m.t, w, http.StatusOK, map[string]bool{"success": true})
			return
		}
		if r.URL.Path != "/status" {
			if c, err := r.Cookie("cinevault.sid"); err != nil || c.Value != "ok" {
				respondJSON(m.t, w, http.StatusUnauthorized, map[string]string{"error": "Session expired or invalid. Please log in again."})
				return
			}
		}

		if m.expectPath != "" {
			assert.Equal(m.t, m.expectPath, r.URL.Path, "unexpected request path")
		}
		if m.expectMeth != "" {
			assert.Equal(m.t, m.expectMeth, r.Method, "unexpected request method")
		}
		if m.expectBody != nil {
			var body map[string]string
			assert.NoError(m.t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(m.t, m.expectBody, body)
		}
		if m.handler != nil {
			m.handler(w, r)
		}
	})

	srv := httptest.NewServer(handler)
	m.t.Cleanup(srv.Close)
	return srv
}

func respondJSON(t *testing.T, w http.ResponseWriter, code int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON response: %v", err)
	}
}

// withGlobals temporarily sets the persistent flag values for a test.
func withGlobals(t *testing.T, url, pw string) {
	t.Helper()
	oldURL, oldPW := serverURL, password
	serverURL, password = url, pw
	t.Cleanup(func() { serverURL, password = oldURL, oldPW })
}

// loggedIn returns a client that has completed the login round trip.
func loggedIn(t *testing.T, url string) *Client {
	t.Helper()
	client := NewClient(url)
	if err := client.Login(testPassword); err != nil {
		t.Fatalf("login: %v", err)
	}
	return client
}
