package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/teleconsult/internal/domain/consultation"
	"github.com/BruksfildServices01/teleconsult/internal/httperr"
	"github.com/BruksfildServices01/teleconsult/internal/session"
)

const (
	SessionCookie = "teleconsult_session"
	ContextWidget = "widget"
)

// WidgetMiddleware resolves the session cookie to a mounted widget and
// re-issues the cookie, so it expires only after the widget sits idle.
// Browser routes without a live widget are sent to "/" to mount a fresh one;
// API routes get 401.
func WidgetMiddleware(tokens *session.Tokens, registry *session.Registry, browser bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil || raw == "" {
			reject(c, browser, "missing_session")
			return
		}

		widgetID, err := tokens.Parse(raw)
		if err != nil {
			reject(c, browser, "invalid_session")
			return
		}

		w, err := registry.Get(widgetID)
		if err != nil {
			reject(c, browser, httperr.CodeWidgetClosed)
			return
		}

		if fresh, err := tokens.Issue(widgetID); err == nil {
			SetSessionCookie(c, fresh, tokens.TTL())
		}

		c.Set(ContextWidget, w)
		c.Next()
	}
}

// SetSessionCookie writes the widget session cookie. A negative ttl clears it.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	maxAge := -1
	if ttl >= 0 {
		maxAge = int(ttl.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", false, true)
}

// Widget returns the widget resolved by WidgetMiddleware.
func Widget(c *gin.Context) *consultation.Widget {
	return c.MustGet(ContextWidget).(*consultation.Widget)
}

func reject(c *gin.Context, browser bool, code string) {
	if browser {
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
		return
	}
	httperr.Unauthorized(c, code, "Session not found. Load the page again.")
	c.Abort()
}
