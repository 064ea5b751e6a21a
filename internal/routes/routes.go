package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/teleconsult/internal/audit"
	"github.com/BruksfildServices01/teleconsult/internal/config"
	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/domain/consultation"
	"github.com/BruksfildServices01/teleconsult/internal/handlers"
	"github.com/BruksfildServices01/teleconsult/internal/metrics"
	"github.com/BruksfildServices01/teleconsult/internal/middleware"
	"github.com/BruksfildServices01/teleconsult/internal/session"
	"github.com/BruksfildServices01/teleconsult/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/teleconsult/internal/usecase/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/validators"
	"github.com/BruksfildServices01/teleconsult/internal/view"
	"github.com/BruksfildServices01/teleconsult/pkg/logging"
)

type Dependencies struct {
	Config   *config.Config
	Repo     domain.Repository
	Audit    *audit.Dispatcher
	Metrics  *metrics.WidgetMetrics
	Gatherer prometheus.Gatherer
	Logger   *logging.Logger

	// Scheduler drives the confirmation reset; nil means real timers.
	Scheduler consultation.Scheduler
}

// RegisterRoutes wires every handler and returns the widget registry so the
// caller can run its sweeper and close it on shutdown.
func RegisterRoutes(r *gin.Engine, deps Dependencies) *session.Registry {
	cfg := deps.Config
	loc := timezone.Location(cfg.ClinicTimezone)
	if deps.Logger == nil {
		deps.Logger = logging.Default()
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.SetHTMLTemplate(view.Templates())

	// ======================================================
	// USE CASES
	// ======================================================
	var domainCheck ucAppointment.EmailDomainCheck
	if cfg.VerifyEmailDomain {
		domainCheck = validators.IsEmailDomainValid
	}

	createBookingUC := ucAppointment.NewCreateBooking(deps.Repo, deps.Audit, domainCheck)
	listAppointmentsUC := ucAppointment.NewListAppointments(deps.Repo, loc)
	getPatientUC := ucAppointment.NewGetPatient(deps.Repo, loc)

	// ======================================================
	// WIDGET SESSIONS
	// ======================================================
	book := func(ctx context.Context, widgetID string, form domain.BookingForm) (*domain.Appointment, error) {
		return createBookingUC.Execute(ctx, ucAppointment.CreateBookingInput{
			WidgetID: widgetID,
			Form:     form,
		})
	}

	registry := session.NewRegistry(func(id string) *consultation.Widget {
		return consultation.NewWidget(consultation.Options{
			ID:                 id,
			Source:             deps.Repo,
			Book:               book,
			Scheduler:          deps.Scheduler,
			ConfirmationWindow: cfg.ConfirmationWindow,
		})
	}, cfg.SessionIdleTTL, session.Hooks{
		OnMount: func(id string) {
			deps.Metrics.WidgetMounted()
			deps.Audit.Dispatch(audit.Event{WidgetID: id, Action: audit.ActionWidgetMounted, Entity: "widget"})
		},
		OnTeardown: func(id, reason string) {
			deps.Metrics.WidgetTornDown(reason)
			deps.Audit.Dispatch(audit.Event{
				WidgetID: id,
				Action:   audit.ActionWidgetTornDown,
				Entity:   "widget",
				Metadata: map[string]string{"reason": reason},
			})
		},
	})
	tokens := session.NewTokens(cfg.JWTSecret, cfg.SessionIdleTTL)

	// ======================================================
	// HANDLERS
	// ======================================================
	widgetHandler := handlers.NewWidgetWebHandler(
		registry,
		tokens,
		deps.Audit,
		deps.Metrics,
		deps.Logger,
		loc,
		cfg.SessionIdleTTL,
	)
	appointmentHandler := handlers.NewAppointmentHandler(
		createBookingUC,
		listAppointmentsUC,
		getPatientUC,
		deps.Metrics,
	)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "widgets": registry.Len()})
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// WEB (HTML)
	// ======================================================
	r.GET("/", widgetHandler.Mount)

	web := r.Group("/widget")
	web.Use(middleware.WidgetMiddleware(tokens, registry, true))
	{
		web.GET("", widgetHandler.Show)
		web.POST("/tab", widgetHandler.SelectTab)
		web.POST("/booking", widgetHandler.SubmitBooking)
		web.POST("/login", widgetHandler.DoctorLogin)
		web.POST("/video", widgetHandler.OpenVideo)
		web.POST("/video/close", widgetHandler.CloseVideo)
		web.POST("/history", widgetHandler.OpenHistory)
		web.POST("/history/close", widgetHandler.CloseHistory)
		web.POST("/teardown", widgetHandler.Teardown)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/appointments", appointmentHandler.List)
		api.GET("/appointments/:key", appointmentHandler.Get)
		api.POST("/appointments", appointmentHandler.Create)

		api.GET("/widget/state",
			middleware.WidgetMiddleware(tokens, registry, false),
			appointmentHandler.WidgetState,
		)
	}

	return registry
}
