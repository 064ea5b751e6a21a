package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/httperr"
	"github.com/BruksfildServices01/teleconsult/internal/httpresp"
	"github.com/BruksfildServices01/teleconsult/internal/metrics"
	"github.com/BruksfildServices01/teleconsult/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/teleconsult/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC *ucAppointment.CreateBooking
	listUC   *ucAppointment.ListAppointments
	getUC    *ucAppointment.GetPatient
	metrics  *metrics.WidgetMetrics
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateBooking,
	listUC *ucAppointment.ListAppointments,
	getUC *ucAppointment.GetPatient,
	metrics *metrics.WidgetMetrics,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		listUC:   listUC,
		getUC:    getUC,
		metrics:  metrics,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Symptoms string `json:"symptoms" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	out, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "list_failed", "Could not load appointments.")
		return
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	out, err := h.getUC.Execute(c.Request.Context(), c.Param("key"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.ObserveBooking("invalid_request")
		httperr.BadRequest(c, "invalid_request", "Name, email, symptoms and time are required.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateBookingInput{
		Form: domain.BookingForm{
			Name:     req.Name,
			Email:    req.Email,
			Symptoms: req.Symptoms,
			Time:     req.Time,
		},
	})
	if err != nil {
		h.metrics.ObserveBooking(outcome(err))
		httperr.FromError(c, err)
		return
	}

	h.metrics.ObserveBooking("accepted")
	c.JSON(http.StatusCreated, ap)
}

// WidgetState returns the caller's widget snapshot.
func (h *AppointmentHandler) WidgetState(c *gin.Context) {
	httpresp.OK(c, middleware.Widget(c).Snapshot())
}
