package audit

import (
	"sync"

	"github.com/BruksfildServices01/teleconsult/pkg/logging"
)

const (
	ActionWidgetMounted    = "widget_mounted"
	ActionWidgetTornDown   = "widget_torn_down"
	ActionBookingSubmitted = "booking_submitted"
	ActionDoctorLoggedIn   = "doctor_logged_in"
	ActionVideoOpened      = "video_opened"
	ActionHistoryOpened    = "history_opened"
)

type Event struct {
	WidgetID  string
	Action    string
	Entity    string
	EntityKey string
	Metadata  any
}

// Sink persists audit events.
type Sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sink   Sink
	logger *logging.Logger
	queue  chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(sink Sink, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			d.logger.Error("audit error", "action", ev.Action, "error", err)
		}
	}
}

// Dispatch never blocks; events are dropped when the queue is full.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drains the queue and stops the worker. Dispatch must not be called
// after Close.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.queue)
		<-d.done
	})
}
