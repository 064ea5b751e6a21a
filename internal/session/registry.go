package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/teleconsult/internal/domain/consultation"
	"github.com/BruksfildServices01/teleconsult/internal/httperr"
)

// Factory builds an unmounted widget for the given id.
type Factory func(id string) *consultation.Widget

// Hooks are notified about widget lifecycle changes.
type Hooks struct {
	OnMount    func(id string)
	OnTeardown func(id string, reason string)
}

const (
	ReasonExplicit = "explicit"
	ReasonIdle     = "idle"
	ReasonShutdown = "shutdown"
)

// Registry holds the mounted widgets of this process.
type Registry struct {
	mu      sync.Mutex
	widgets map[string]*consultation.Widget

	factory Factory
	idleTTL time.Duration
	hooks   Hooks
	now     func() time.Time

	stop chan struct{}
	once sync.Once
}

func NewRegistry(factory Factory, idleTTL time.Duration, hooks Hooks) *Registry {
	return &Registry{
		widgets: make(map[string]*consultation.Widget),
		factory: factory,
		idleTTL: idleTTL,
		hooks:   hooks,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

// Mount creates a widget, loads its data and registers it.
func (r *Registry) Mount(ctx context.Context) (*consultation.Widget, error) {
	id := uuid.NewString()
	w := r.factory(id)
	if err := w.Mount(ctx); err != nil {
		w.Close()
		return nil, err
	}

	r.mu.Lock()
	r.widgets[id] = w
	r.mu.Unlock()

	if r.hooks.OnMount != nil {
		r.hooks.OnMount(id)
	}
	return w, nil
}

func (r *Registry) Get(id string) (*consultation.Widget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.widgets[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeWidgetClosed)
	}
	return w, nil
}

// Teardown closes and forgets a widget. Unknown ids are ignored.
func (r *Registry) Teardown(id string) {
	r.teardown(id, ReasonExplicit)
}

func (r *Registry) teardown(id, reason string) {
	r.mu.Lock()
	w, ok := r.widgets[id]
	delete(r.widgets, id)
	r.mu.Unlock()

	if !ok {
		return
	}
	w.Close()
	if r.hooks.OnTeardown != nil {
		r.hooks.OnTeardown(id, reason)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.widgets)
}

// Sweep tears down widgets idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var expired []string
	for id, w := range r.widgets {
		if w.LastActive().Before(cutoff) {
			expired = append(expired, id)
		}
	}
	r.mu.Unlock()

	for _, id := range expired {
		r.teardown(id, ReasonIdle)
	}
	return len(expired)
}

// Run sweeps periodically until ctx is done or Close is called.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stop:
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Close stops the sweeper and tears down every widget.
func (r *Registry) Close() {
	r.once.Do(func() {
		close(r.stop)

		r.mu.Lock()
		ids := make([]string, 0, len(r.widgets))
		for id := range r.widgets {
			ids = append(ids, id)
		}
		r.mu.Unlock()

		for _, id := range ids {
			r.teardown(id, ReasonShutdown)
		}
	})
}
