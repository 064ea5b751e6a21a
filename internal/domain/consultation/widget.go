package consultation

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/httperr"
)

const DefaultConfirmationWindow = 5 * time.Second

// BookFunc validates and persists a submitted form.
type BookFunc func(ctx context.Context, widgetID string, form domain.BookingForm) (*domain.Appointment, error)

type Options struct {
	ID                 string
	Source             domain.Repository
	Book               BookFunc
	Scheduler          Scheduler
	ConfirmationWindow time.Duration
	Now                func() time.Time
}

// Widget owns the view state of one mounted booking screen. All mutations go
// through its methods.
type Widget struct {
	mu sync.Mutex

	id     string
	source domain.Repository
	book   BookFunc
	sched  Scheduler
	window time.Duration
	now    func() time.Time

	state        UIState
	form         domain.BookingForm
	appointments []domain.Appointment

	mounted    bool
	closed     bool
	resetTimer Timer
	generation uint64
	lastActive time.Time
}

func NewWidget(opts Options) *Widget {
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler()
	}
	if opts.ConfirmationWindow <= 0 {
		opts.ConfirmationWindow = DefaultConfirmationWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	w := &Widget{
		id:           opts.ID,
		source:       opts.Source,
		book:         opts.Book,
		sched:        opts.Scheduler,
		window:       opts.ConfirmationWindow,
		now:          opts.Now,
		state:        UIState{ActiveTab: TabPatient},
		appointments: []domain.Appointment{},
	}
	w.lastActive = w.now()
	return w
}

func (w *Widget) ID() string { return w.id }

// Mount loads the appointment list once. Later calls are no-ops.
func (w *Widget) Mount(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return httperr.ErrBusiness(httperr.CodeWidgetClosed)
	}
	if w.mounted {
		return nil
	}
	w.touch()

	if w.source != nil {
		list, err := w.source.ListAppointments(ctx)
		if err != nil {
			return err
		}
		w.appointments = list
	}
	w.mounted = true
	return nil
}

func (w *Widget) SelectTab(tab Tab) error {
	if _, err := ParseTab(string(tab)); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.usable(); err != nil {
		return err
	}
	w.state.ActiveTab = tab
	return nil
}

// SetField applies one input change. The form is hidden while the
// confirmation banner is shown, so edits are refused then.
func (w *Widget) SetField(field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.usable(); err != nil {
		return err
	}
	if w.state.Submitted {
		return httperr.ErrBusiness(httperr.CodeConfirmationPending)
	}
	return w.form.Set(field, value)
}

// SubmitBooking books the current form, appends the new appointment with an
// empty history, shows the confirmation banner and schedules the reset.
func (w *Widget) SubmitBooking(ctx context.Context) (*domain.Appointment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.usable(); err != nil {
		return nil, err
	}
	if w.state.Submitted {
		return nil, httperr.ErrBusiness(httperr.CodeConfirmationPending)
	}

	var ap domain.Appointment
	if w.book != nil {
		booked, err := w.book(ctx, w.id, w.form)
		if err != nil {
			return nil, err
		}
		ap = booked.Clone()
	} else {
		if err := domain.Validate(w.form); err != nil {
			return nil, err
		}
		ap = domain.FromForm(w.form)
	}
	ap.History = []string{}

	w.appointments = append(w.appointments, ap)
	w.state.Submitted = true
	w.scheduleReset()

	out := ap.Clone()
	return &out, nil
}

func (w *Widget) scheduleReset() {
	if w.resetTimer != nil {
		w.resetTimer.Stop()
	}
	w.generation++
	gen := w.generation
	w.resetTimer = w.sched.AfterFunc(w.window, func() {
		w.resetAfterConfirmation(gen)
	})
}

func (w *Widget) resetAfterConfirmation(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || gen != w.generation {
		return
	}
	w.state.Submitted = false
	w.form.Reset()
	w.resetTimer = nil
}

// DoctorLogin opens the dashboard for any non-empty username and password.
// There is no logout.
func (w *Widget) DoctorLogin(username, password string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.usable(); err != nil {
		return err
	}
	if username == "" || password == "" {
		return httperr.ErrBusiness(httperr.CodeMissingCredentials)
	}
	w.state.DoctorLoggedIn = true
	return nil
}

// OpenVideo selects the patient and opens the video dialog.
func (w *Widget) OpenVideo(key string) (*domain.Appointment, error) {
	return w.openDialog(key, func(s *UIState) {
		s.VideoDialogOpen = true
		s.HistoryDialogOpen = false
	})
}

// OpenHistory selects the patient and opens the history dialog.
func (w *Widget) OpenHistory(key string) (*domain.Appointment, error) {
	return w.openDialog(key, func(s *UIState) {
		s.HistoryDialogOpen = true
		s.VideoDialogOpen = false
	})
}

func (w *Widget) openDialog(key string, open func(*UIState)) (*domain.Appointment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.usable(); err != nil {
		return nil, err
	}
	if !w.state.DoctorLoggedIn {
		return nil, httperr.ErrBusiness(httperr.CodeNotLoggedIn)
	}

	ap := w.find(key)
	if ap == nil {
		return nil, httperr.ErrBusiness(httperr.CodePatientNotFound)
	}

	w.state.SelectedPatientKey = ap.Key()
	open(&w.state)

	out := ap.Clone()
	return &out, nil
}

func (w *Widget) CloseVideo() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.usable(); err != nil {
		return err
	}
	w.state.VideoDialogOpen = false
	return nil
}

func (w *Widget) CloseHistory() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.usable(); err != nil {
		return err
	}
	w.state.HistoryDialogOpen = false
	return nil
}

// Close tears the widget down and cancels a pending reset.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	w.generation++
	if w.resetTimer != nil {
		w.resetTimer.Stop()
		w.resetTimer = nil
	}
}

func (w *Widget) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// LastActive is the time of the last accepted mutation.
func (w *Widget) LastActive() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActive
}

func (w *Widget) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{
		WidgetID:     w.id,
		State:        w.state,
		Form:         w.form,
		Appointments: make([]domain.Appointment, 0, len(w.appointments)),
		Closed:       w.closed,
	}
	for _, ap := range w.appointments {
		snap.Appointments = append(snap.Appointments, ap.Clone())
	}
	if w.state.SelectedPatientKey != "" {
		if ap := w.find(w.state.SelectedPatientKey); ap != nil {
			cp := ap.Clone()
			snap.SelectedPatient = &cp
		}
	}
	return snap
}

// usable must be called with mu held.
func (w *Widget) usable() error {
	if w.closed {
		return httperr.ErrBusiness(httperr.CodeWidgetClosed)
	}
	w.touch()
	return nil
}

func (w *Widget) touch() {
	w.lastActive = w.now()
}

func (w *Widget) find(key string) *domain.Appointment {
	key = domain.NormalizeKey(key)
	for i := range w.appointments {
		if w.appointments[i].Key() == key {
			return &w.appointments[i]
		}
	}
	return nil
}
