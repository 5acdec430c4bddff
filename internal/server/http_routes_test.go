package server

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resumatch/internal/errors"
)

func newTestServer(apiKeys ...string) *Server {
	keyMap := make(map[string]bool)
	for _, key := range apiKeys {
		keyMap[key] = true
	}
	return &Server{
		APIKeys: keyMap,
		Logger:  errors.NewLogger(slog.LevelError),
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		serverKeys []string
		apiKey     string
		bearer     string
		wantStatus int
	}{
		{
			name:       "no keys configured skips auth",
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid api key header",
			serverKeys: []string{"valid-key-12345"},
			apiKey:     "valid-key-12345",
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid bearer token",
			serverKeys: []string{"valid-key-12345"},
			bearer:     "valid-key-12345",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing api key",
			serverKeys: []string{"valid-key-12345"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid api key",
			serverKeys: []string{"valid-key-12345"},
			apiKey:     "wrong-key",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(tt.serverKeys...)

			called := false
			handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			r := httptest.NewRequest("POST", "/extract", nil)
			if tt.apiKey != "" {
				r.Header.Set("X-API-Key", tt.apiKey)
			}
			if tt.bearer != "" {
				r.Header.Set("Authorization", "Bearer "+tt.bearer)
			}

			w := httptest.NewRecorder()
			handler(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && !called {
				t.Error("next handler was not called")
			}
			if tt.wantStatus != http.StatusOK && called {
				t.Error("next handler should not have been called")
			}
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	s := newTestServer()
	s.MaxRequestSize = 16

	handler := s.requestSizeLimitMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		if _, err := r.Body.Read(buf); err != nil {
			var maxBytesErr *http.MaxBytesError
			if stderrors.As(err, &maxBytesErr) {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest("POST", "/extract", strings.NewReader(strings.Repeat("x", 100)))
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
		{"", "****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.input); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
