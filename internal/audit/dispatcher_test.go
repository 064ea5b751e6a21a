package audit

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/teleconsult/pkg/logging"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Log(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, logging.New("error"))

	d.Dispatch(Event{WidgetID: "w1", Action: ActionWidgetMounted})
	d.Dispatch(Event{WidgetID: "w1", Action: ActionBookingSubmitted, EntityKey: "a@b.co"})
	d.Close()

	if assert.Len(t, sink.events, 2) {
		assert.Equal(t, ActionWidgetMounted, sink.events[0].Action)
		assert.Equal(t, "a@b.co", sink.events[1].EntityKey)
	}
}

func TestDispatcherLogsSinkErrors(t *testing.T) {
	var buf bytes.Buffer
	sink := &recordingSink{err: errors.New("db down")}
	d := NewDispatcher(sink, logging.NewWithWriter(&buf, "error"))

	d.Dispatch(Event{Action: ActionVideoOpened})
	d.Close()

	assert.Contains(t, buf.String(), "audit error")
	assert.Contains(t, buf.String(), "db down")
}

func TestDispatcherNilSafe(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: ActionHistoryOpened})
	d.Close()
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(logging.NewWithWriter(&buf, "info"))

	assert.NoError(t, sink.Log(Event{WidgetID: "w9", Action: ActionDoctorLoggedIn}))
	assert.Contains(t, buf.String(), `"widget_id":"w9"`)
	assert.Contains(t, buf.String(), ActionDoctorLoggedIn)
}
