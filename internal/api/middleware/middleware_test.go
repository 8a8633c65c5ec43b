package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/ytfetch/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newStaticEngine(t *testing.T) *gin.Engine {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"index.html":    "<h1>ytfetch</h1>",
		"js/app.js":     "console.log('hi')",
		"css/style.css": "body{}",
	}
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(filepath.Dir(root), "secret.txt"), []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}

	engine := gin.New()
	engine.Use(CorrelationIDMiddleware())
	engine.POST("/check", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.NoRoute(StaticFiles(root, "index.html"))
	return engine
}

func TestStaticFiles(t *testing.T) {
	engine := newStaticEngine(t)

	testCases := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "root serves index", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantBody: "<h1>ytfetch</h1>"},
		{name: "nested asset", method: http.MethodGet, path: "/js/app.js", wantStatus: http.StatusOK, wantBody: "console.log('hi')"},
		{name: "missing file", method: http.MethodGet, path: "/nope.png", wantStatus: http.StatusNotFound},
		{name: "directory not listed", method: http.MethodGet, path: "/css", wantStatus: http.StatusNotFound},
		{name: "traversal", method: http.MethodGet, path: "/../secret.txt", wantStatus: http.StatusNotFound},
		{name: "post to unknown route", method: http.MethodPost, path: "/index.html", wantStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/", nil)
			req.URL.Path = tc.path
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			if tc.wantBody != "" && w.Body.String() != tc.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tc.wantBody)
			}
			if tc.wantStatus == http.StatusNotFound {
				var resp models.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("404 body is not JSON: %s", w.Body.String())
				}
				if resp.Code != "NOT_FOUND" {
					t.Errorf("code = %q, want NOT_FOUND", resp.Code)
				}
			}
		})
	}
}

func TestResolveStatic(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if file, ok := resolveStatic(root, "index.html", "/"); !ok || filepath.Base(file) != "index.html" {
		t.Errorf("resolveStatic(/) = %q, %v", file, ok)
	}
	for _, p := range []string{"/../../etc/passwd", "/..", "/missing"} {
		if _, ok := resolveStatic(root, "index.html", p); ok {
			t.Errorf("resolveStatic(%q) resolved, want rejection", p)
		}
	}
}

func TestCorrelationIDMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(CorrelationIDMiddleware())
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(CorrelationIDHeader, "corr-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if got := w.Header().Get(CorrelationIDHeader); got != "corr-123" {
		t.Errorf("%s = %q, want corr-123", CorrelationIDHeader, got)
	}
	requestID := w.Header().Get(RequestIDHeader)
	if requestID == "" || requestID != w.Body.String() {
		t.Errorf("%s = %q, handler saw %q", RequestIDHeader, requestID, w.Body.String())
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Header().Get(CorrelationIDHeader) == "" {
		t.Error("correlation ID not generated")
	}
}
