package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		requestOrigin  string
		method         string
		wantStatus     int
		wantHeader     string
	}{
		{
			name:           "no origins configured blocks all",
			allowedOrigins: []string{},
			requestOrigin:  "https://example.com",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "", // No CORS header
		},
		{
			name:           "allowed origin gets header",
			allowedOrigins: []string{"https://app.linkvigia.com.br"},
			requestOrigin:  "https://app.linkvigia.com.br",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "https://app.linkvigia.com.br",
		},
		{
			name:           "disallowed origin blocked on preflight",
			allowedOrigins: []string{"https://app.linkvigia.com.br"},
			requestOrigin:  "https://evil.com",
			method:         http.MethodOptions,
			wantStatus:     http.StatusForbidden,
			wantHeader:     "",
		},
		{
			name:           "preflight returns no content",
			allowedOrigins: []string{"https://app.linkvigia.com.br"},
			requestOrigin:  "https://app.linkvigia.com.br",
			method:         http.MethodOptions,
			wantStatus:     http.StatusNoContent,
			wantHeader:     "https://app.linkvigia.com.br",
		},
		{
			name:           "no origin header skips CORS",
			allowedOrigins: []string{"https://app.linkvigia.com.br"},
			requestOrigin:  "",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultCORSConfig()
			cfg.AllowedOrigins = test.allowedOrigins

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(test.method, "/api/projects", nil)
			if test.requestOrigin != "" {
				req.Header.Set("Origin", test.requestOrigin)
			}
			rec := httptest.NewRecorder()

			CORS(cfg)(next).ServeHTTP(rec, req)

			if rec.Code != test.wantStatus {
				t.Errorf("expected status %d, got %d", test.wantStatus, rec.Code)
			}

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if got != test.wantHeader {
				t.Errorf("expected Allow-Origin %q, got %q", test.wantHeader, got)
			}
		})
	}
}
