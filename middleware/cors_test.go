package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    string
		origin     string
		method     string
		wantOrigin string
		wantNext   bool
	}{
		{"any origin", "", "https://reader.example", http.MethodGet, "*", true},
		{"pinned origin", "https://bookverse.example", "https://bookverse.example", http.MethodGet, "https://bookverse.example", true},
		{"foreign origin", "https://bookverse.example", "https://other.example", http.MethodGet, "", true},
		{"preflight", "", "https://reader.example", http.MethodOptions, "*", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})
			req := httptest.NewRequest(tt.method, "/ready", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantNext, called)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
