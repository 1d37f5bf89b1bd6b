package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(mw...)
	engine.POST("/echo", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.GET("/echo", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestRequestID(t *testing.T) {
	engine := newEngine(RequestID())

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo", nil))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("honors a client-supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/echo", nil)
		req.Header.Set("X-Request-ID", "req-42")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	})
}

func TestCORS(t *testing.T) {
	t.Run("whitelisted origin", func(t *testing.T) {
		engine := newEngine(CORS(DefaultCORSConfig([]string{"https://mbsolutionscr.com"})))

		req := httptest.NewRequest(http.MethodGet, "/echo", nil)
		req.Header.Set("Origin", "https://mbsolutionscr.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "https://mbsolutionscr.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		engine := newEngine(CORS(DefaultCORSConfig([]string{"https://mbsolutionscr.com"})))

		req := httptest.NewRequest(http.MethodGet, "/echo", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code, "the request itself still runs")
	})

	t.Run("wildcard", func(t *testing.T) {
		engine := newEngine(CORS(DefaultCORSConfig([]string{"*"})))

		req := httptest.NewRequest(http.MethodGet, "/echo", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits with 204", func(t *testing.T) {
		engine := newEngine(CORS(DefaultCORSConfig([]string{"https://mbsolutionscr.com"})))
		engine.OPTIONS("/echo", func(c *gin.Context) {
			t.Fatal("preflight must not reach the handler")
		})

		req := httptest.NewRequest(http.MethodOptions, "/echo", nil)
		req.Header.Set("Origin", "https://mbsolutionscr.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestBodyLimit(t *testing.T) {
	engine := newEngine(BodyLimit(64))

	t.Run("small body passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{}"))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("oversized body is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 128)))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "maximum allowed size")
	})
}
