package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/teleconsult/internal/domain/consultation"
	"github.com/BruksfildServices01/teleconsult/internal/session"
	"github.com/BruksfildServices01/teleconsult/pkg/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSessionFixture(t *testing.T) (*session.Tokens, *session.Registry) {
	t.Helper()
	registry := session.NewRegistry(func(id string) *consultation.Widget {
		return consultation.NewWidget(consultation.Options{ID: id})
	}, time.Hour, session.Hooks{})
	t.Cleanup(registry.Close)
	return session.NewTokens("test-secret", time.Hour), registry
}

func TestWidgetMiddleware(t *testing.T) {
	tokens, registry := newSessionFixture(t)
	w, err := registry.Mount(context.Background())
	require.NoError(t, err)
	valid, err := tokens.Issue(w.ID())
	require.NoError(t, err)
	orphan, err := tokens.Issue("gone")
	require.NoError(t, err)

	tests := []struct {
		name    string
		cookie  string
		browser bool
		status  int
	}{
		{"valid browser", valid, true, http.StatusOK},
		{"valid api", valid, false, http.StatusOK},
		{"missing cookie browser", "", true, http.StatusSeeOther},
		{"missing cookie api", "", false, http.StatusUnauthorized},
		{"garbage token", "abc", false, http.StatusUnauthorized},
		{"unknown widget", orphan, true, http.StatusSeeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", WidgetMiddleware(tokens, registry, tt.browser), func(c *gin.Context) {
				c.String(http.StatusOK, Widget(c).ID())
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, w.ID(), rec.Body.String())
			}
			if tt.status == http.StatusSeeOther {
				assert.Equal(t, "/", rec.Header().Get("Location"))
			}
		})
	}
}

func sessionCookieFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	var out *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			out = c
		}
	}
	return out
}

func TestWidgetMiddlewareSlidesSessionExpiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	registry := session.NewRegistry(func(id string) *consultation.Widget {
		return consultation.NewWidget(consultation.Options{ID: id, Now: clock})
	}, 30*time.Minute, session.Hooks{})
	t.Cleanup(registry.Close)
	tokens := session.NewTokens("test-secret", 30*time.Minute).WithClock(clock)

	w, err := registry.Mount(context.Background())
	require.NoError(t, err)
	issued, err := tokens.Issue(w.ID())
	require.NoError(t, err)

	r := gin.New()
	r.POST("/widget/tab", WidgetMiddleware(tokens, registry, true), func(c *gin.Context) {
		if err := Widget(c).SelectTab(consultation.TabDoctor); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	cookie := issued
	for step := 1; step <= 4; step++ {
		now = now.Add(10 * time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/widget/tab", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		registry.Sweep()

		require.Equal(t, http.StatusOK, rec.Code, "after %d minutes", step*10)
		refreshed := sessionCookieFrom(rec)
		require.NotNil(t, refreshed)
		assert.Equal(t, int((30 * time.Minute).Seconds()), refreshed.MaxAge)
		cookie = refreshed.Value
	}

	assert.False(t, w.Closed())
	assert.Equal(t, 1, registry.Len())

	_, err = tokens.Parse(issued)
	assert.ErrorIs(t, err, session.ErrInvalidToken)
	id, err := tokens.Parse(cookie)
	require.NoError(t, err)
	assert.Equal(t, w.ID(), id)
}

func TestWidgetMiddlewareRejectsAPIWithJSON(t *testing.T) {
	tokens, registry := newSessionFixture(t)

	r := gin.New()
	r.GET("/api/widget/state", WidgetMiddleware(tokens, registry, false), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/widget/state", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error_code":"missing_session","message":"Session not found. Load the page again."}`, rec.Body.String())
	assert.Nil(t, sessionCookieFrom(rec))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(logging.NewWithWriter(&buf, "info")))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Contains(t, buf.String(), `"status":204`)
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(nil))
	r.OPTIONS("/api/appointments", func(c *gin.Context) {})

	req := httptest.NewRequest(http.MethodOptions, "/api/appointments", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowList(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://clinic.example"}))
	r.GET("/api/appointments", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.OPTIONS("/api/appointments", func(c *gin.Context) {})

	req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	req.Header.Set("Origin", "https://clinic.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/appointments", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
