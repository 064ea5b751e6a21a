package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/teleconsult/internal/audit"
	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/domain/consultation"
	"github.com/BruksfildServices01/teleconsult/internal/httperr"
	"github.com/BruksfildServices01/teleconsult/internal/metrics"
	"github.com/BruksfildServices01/teleconsult/internal/middleware"
	"github.com/BruksfildServices01/teleconsult/internal/session"
	"github.com/BruksfildServices01/teleconsult/internal/view"
	"github.com/BruksfildServices01/teleconsult/pkg/logging"
)

const widgetPath = "/widget"

type WidgetWebHandler struct {
	registry  *session.Registry
	tokens    *session.Tokens
	audit     *audit.Dispatcher
	metrics   *metrics.WidgetMetrics
	logger    *logging.Logger
	loc       *time.Location
	cookieTTL time.Duration
}

func NewWidgetWebHandler(
	registry *session.Registry,
	tokens *session.Tokens,
	audit *audit.Dispatcher,
	metrics *metrics.WidgetMetrics,
	logger *logging.Logger,
	loc *time.Location,
	cookieTTL time.Duration,
) *WidgetWebHandler {
	return &WidgetWebHandler{
		registry:  registry,
		tokens:    tokens,
		audit:     audit,
		metrics:   metrics,
		logger:    logger,
		loc:       loc,
		cookieTTL: cookieTTL,
	}
}

// ======================================================
// LIFECYCLE
// ======================================================

// Mount starts a fresh widget for this browser, like a page reload.
func (h *WidgetWebHandler) Mount(c *gin.Context) {
	if raw, err := c.Cookie(middleware.SessionCookie); err == nil {
		if id, err := h.tokens.Subject(raw); err == nil {
			h.registry.Teardown(id)
		}
	}

	w, err := h.registry.Mount(c.Request.Context())
	if err != nil {
		h.logger.Error("mount widget", "error", err)
		c.String(http.StatusInternalServerError, "Could not load appointments.")
		return
	}

	token, err := h.tokens.Issue(w.ID())
	if err != nil {
		h.registry.Teardown(w.ID())
		c.String(http.StatusInternalServerError, "Could not start session.")
		return
	}

	middleware.SetSessionCookie(c, token, h.cookieTTL)
	c.Redirect(http.StatusSeeOther, widgetPath)
}

func (h *WidgetWebHandler) Teardown(c *gin.Context) {
	w := middleware.Widget(c)
	h.registry.Teardown(w.ID())

	middleware.SetSessionCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *WidgetWebHandler) Show(c *gin.Context) {
	h.render(c, http.StatusOK, middleware.Widget(c), "")
}

// ======================================================
// PATIENT
// ======================================================

func (h *WidgetWebHandler) SelectTab(c *gin.Context) {
	w := middleware.Widget(c)

	if err := w.SelectTab(consultation.Tab(c.PostForm("tab"))); err != nil {
		h.fail(c, w, err)
		return
	}
	c.Redirect(http.StatusSeeOther, widgetPath)
}

func (h *WidgetWebHandler) SubmitBooking(c *gin.Context) {
	w := middleware.Widget(c)

	for _, field := range []string{domain.FieldName, domain.FieldEmail, domain.FieldSymptoms, domain.FieldTime} {
		if err := w.SetField(field, c.PostForm(field)); err != nil {
			h.fail(c, w, err)
			return
		}
	}

	if _, err := w.SubmitBooking(c.Request.Context()); err != nil {
		h.metrics.ObserveBooking(outcome(err))
		h.fail(c, w, err)
		return
	}

	h.metrics.ObserveBooking("accepted")
	c.Redirect(http.StatusSeeOther, widgetPath)
}

// ======================================================
// DOCTOR
// ======================================================

func (h *WidgetWebHandler) DoctorLogin(c *gin.Context) {
	w := middleware.Widget(c)

	if err := w.DoctorLogin(c.PostForm("username"), c.PostForm("password")); err != nil {
		h.metrics.ObserveLogin(outcome(err))
		h.fail(c, w, err)
		return
	}

	h.metrics.ObserveLogin("accepted")
	h.audit.Dispatch(audit.Event{
		WidgetID: w.ID(),
		Action:   audit.ActionDoctorLoggedIn,
		Entity:   "widget",
	})
	c.Redirect(http.StatusSeeOther, widgetPath)
}

func (h *WidgetWebHandler) OpenVideo(c *gin.Context) {
	h.openDialog(c, "video", audit.ActionVideoOpened, (*consultation.Widget).OpenVideo)
}

func (h *WidgetWebHandler) OpenHistory(c *gin.Context) {
	h.openDialog(c, "history", audit.ActionHistoryOpened, (*consultation.Widget).OpenHistory)
}

func (h *WidgetWebHandler) openDialog(
	c *gin.Context,
	dialog string,
	action string,
	open func(*consultation.Widget, string) (*domain.Appointment, error),
) {
	w := middleware.Widget(c)

	ap, err := open(w, c.PostForm("key"))
	if err != nil {
		h.fail(c, w, err)
		return
	}

	h.metrics.ObserveDialog(dialog)
	h.audit.Dispatch(audit.Event{
		WidgetID:  w.ID(),
		Action:    action,
		Entity:    "appointment",
		EntityKey: ap.Key(),
	})
	c.Redirect(http.StatusSeeOther, widgetPath)
}

func (h *WidgetWebHandler) CloseVideo(c *gin.Context) {
	w := middleware.Widget(c)
	if err := w.CloseVideo(); err != nil {
		h.fail(c, w, err)
		return
	}
	c.Redirect(http.StatusSeeOther, widgetPath)
}

func (h *WidgetWebHandler) CloseHistory(c *gin.Context) {
	w := middleware.Widget(c)
	if err := w.CloseHistory(); err != nil {
		h.fail(c, w, err)
		return
	}
	c.Redirect(http.StatusSeeOther, widgetPath)
}

// ======================================================
// HELPERS
// ======================================================

func (h *WidgetWebHandler) render(c *gin.Context, status int, w *consultation.Widget, errMsg string) {
	page := view.Render(w.Snapshot(), h.loc)
	page.Error = errMsg
	c.HTML(status, "base", page)
}

func (h *WidgetWebHandler) fail(c *gin.Context, w *consultation.Widget, err error) {
	code := httperr.CodeOf(err)
	if code == "" {
		h.logger.Error("widget action failed", "widget_id", w.ID(), "path", c.FullPath(), "error", err)
	}
	if code == httperr.CodeWidgetClosed {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, httperr.StatusFor(code), w, httperr.Message(code))
}

func outcome(err error) string {
	if code := httperr.CodeOf(err); code != "" {
		return code
	}
	return "error"
}
