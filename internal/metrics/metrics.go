package metrics

import "github.com/prometheus/client_golang/prometheus"

// WidgetMetrics counts what patients and doctors do on the booking screen.
type WidgetMetrics struct {
	bookingsTotal *prometheus.CounterVec
	loginsTotal   *prometheus.CounterVec
	dialogsTotal  *prometheus.CounterVec
	activeWidgets prometheus.Gauge
	teardowns     *prometheus.CounterVec
}

func NewWidgetMetrics(reg prometheus.Registerer) *WidgetMetrics {
	m := &WidgetMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teleconsult",
			Subsystem: "widget",
			Name:      "bookings_total",
			Help:      "Booking form submissions by outcome",
		}, []string{"outcome"}),
		loginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teleconsult",
			Subsystem: "widget",
			Name:      "doctor_logins_total",
			Help:      "Doctor login attempts by outcome",
		}, []string{"outcome"}),
		dialogsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teleconsult",
			Subsystem: "widget",
			Name:      "dialogs_opened_total",
			Help:      "Dialogs opened from the consultation dashboard",
		}, []string{"dialog"}),
		activeWidgets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "teleconsult",
			Subsystem: "widget",
			Name:      "active",
			Help:      "Currently mounted widgets",
		}),
		teardowns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teleconsult",
			Subsystem: "widget",
			Name:      "teardowns_total",
			Help:      "Widget teardowns by reason",
		}, []string{"reason"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.loginsTotal, m.dialogsTotal, m.activeWidgets, m.teardowns)
	return m
}

func (m *WidgetMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *WidgetMetrics) ObserveLogin(outcome string) {
	if m == nil {
		return
	}
	m.loginsTotal.WithLabelValues(outcome).Inc()
}

func (m *WidgetMetrics) ObserveDialog(dialog string) {
	if m == nil {
		return
	}
	m.dialogsTotal.WithLabelValues(dialog).Inc()
}

func (m *WidgetMetrics) WidgetMounted() {
	if m == nil {
		return
	}
	m.activeWidgets.Inc()
}

func (m *WidgetMetrics) WidgetTornDown(reason string) {
	if m == nil {
		return
	}
	m.activeWidgets.Dec()
	m.teardowns.WithLabelValues(reason).Inc()
}
