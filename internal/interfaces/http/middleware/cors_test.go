package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsRequest(method, origin string) *http.Request {
	req := httptest.NewRequest(method, "/test", nil)
	req.Header.Set("Origin", origin)
	if method == http.MethodOptions {
		req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	}
	return req
}

func TestCORS(t *testing.T) {
	t.Run("no origins configured adds no headers", func(t *testing.T) {
		router := newTestRouter(CORS(DefaultCORSConfig()))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, corsRequest(http.MethodGet, "http://malicious.com"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origin gets credentials", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"http://localhost:4200"}
		router := newTestRouter(CORS(cfg))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, corsRequest(http.MethodGet, "http://localhost:4200"))

		assert.Equal(t, "http://localhost:4200", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unlisted origin is refused", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"http://localhost:4200"}
		router := newTestRouter(CORS(cfg))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, corsRequest(http.MethodGet, "http://malicious.com"))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard never allows credentials", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"*"}
		router := newTestRouter(CORS(cfg))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, corsRequest(http.MethodGet, "http://anywhere.example"))

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight is answered with 204", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"http://localhost:4200"}
		router := newTestRouter(CORS(cfg))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, corsRequest(http.MethodOptions, "http://localhost:4200"))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})
}
