package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestIPLimiter(t *testing.T) {
	l := newIPLimiter(2, time.Minute)
	now := time.Now()

	if !l.allow("1.1.1.1", now) || !l.allow("1.1.1.1", now) {
		t.Fatal("burst should allow two requests")
	}
	if l.allow("1.1.1.1", now) {
		t.Fatal("third request within window should be limited")
	}
	if !l.allow("2.2.2.2", now) {
		t.Fatal("other IP should not share the bucket")
	}

	l.evict(time.Minute, now.Add(2*time.Minute))
	if len(l.visitors) != 0 {
		t.Fatalf("stale visitors kept: %d", len(l.visitors))
	}
}

func TestCORSAllowList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://allowed.example"}), Secure())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://allowed.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://allowed.example" {
		t.Fatalf("allow origin = %q", got)
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatal("secure headers missing")
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("disallowed origin status = %d, want 403", w.Code)
	}
}
