package endpoint

import (
	"slices"
	"sync"
	"time"

	"github.com/mockario/mockario/internal/id"
)

// Change operations reported to listeners.
const (
	OpCreated  = "created"
	OpUpdated  = "updated"
	OpDeleted  = "deleted"
	OpCleared  = "cleared"
	OpRestored = "restored"
)

// ChangeEvent describes one registry mutation.
type ChangeEvent struct {
	Op string
	ID string
}

// ChangeListener is invoked after each mutation, outside the registry lock.
type ChangeListener func(ChangeEvent)

// Registry is a thread-safe, insertion-ordered endpoint store.
// Every mutation is atomic: readers see an endpoint entirely before or
// entirely after an update.
type Registry struct {
	mu        sync.RWMutex
	byID      map[string]*Endpoint
	order     []string
	listeners []ChangeListener

	now   func() time.Time
	newID func() string
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClock sets the time source for CreatedAt.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// WithIDGenerator sets the identifier source.
func WithIDGenerator(gen func() string) RegistryOption {
	return func(r *Registry) { r.newID = gen }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byID:  make(map[string]*Endpoint),
		now:   time.Now,
		newID: id.UUID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnChange registers a listener for mutations.
func (r *Registry) OnChange(fn ChangeListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

func (r *Registry) notify(events ...ChangeEvent) {
	r.mu.RLock()
	listeners := slices.Clone(r.listeners)
	r.mu.RUnlock()
	for _, ev := range events {
		for _, fn := range listeners {
			fn(ev)
		}
	}
}

// Create stores a new endpoint and returns it. It never fails and does not
// check for an existing (path, method) pair.
func (r *Registry) Create(in Input) Endpoint {
	r.mu.Lock()
	ep := r.insertLocked(in)
	r.mu.Unlock()

	r.notify(ChangeEvent{Op: OpCreated, ID: ep.ID})
	return ep
}

// CreateIfAbsent creates the endpoint unless one with the same normalized
// path and method exists, in which case it returns the existing one and false.
func (r *Registry) CreateIfAbsent(in Input) (Endpoint, bool) {
	path := NormalizePath(in.Path)

	r.mu.Lock()
	if existing := r.findLocked(path, in.Method); existing != nil {
		out := existing.clone()
		r.mu.Unlock()
		return out, false
	}
	ep := r.insertLocked(in)
	r.mu.Unlock()

	r.notify(ChangeEvent{Op: OpCreated, ID: ep.ID})
	return ep, true
}

func (r *Registry) insertLocked(in Input) Endpoint {
	responseType := in.ResponseType
	if responseType == "" {
		responseType = ResponseTypeJSON
	}
	ep := &Endpoint{
		ID:           r.newID(),
		Path:         NormalizePath(in.Path),
		Method:       in.Method,
		Response:     in.Response,
		Delay:        max(in.Delay, 0),
		AuthRequired: in.AuthRequired,
		RequestBody:  in.RequestBody.clone(),
		ResponseType: responseType,
		StoredData:   slices.Clone(in.StoredData),
		ResponseKeys: slices.Clone(in.ResponseKeys),
		CreatedAt:    r.now(),
	}
	if in.SchemaRef != nil {
		ref := *in.SchemaRef
		ep.SchemaRef = &ref
	}
	r.byID[ep.ID] = ep
	r.order = append(r.order, ep.ID)
	return ep.clone()
}

// FindAll returns every endpoint in creation order.
func (r *Registry) FindAll() []Endpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Endpoint, 0, len(r.order))
	for _, epID := range r.order {
		out = append(out, r.byID[epID].clone())
	}
	return out
}

// FindByID returns the endpoint with the given id.
func (r *Registry) FindByID(epID string) (Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ep, ok := r.byID[epID]
	if !ok {
		return Endpoint{}, false
	}
	return ep.clone(), true
}

// FindByPath returns the first endpoint, in creation order, whose path and
// method equal the arguments exactly.
func (r *Registry) FindByPath(path, method string) (Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ep := r.findLocked(path, method)
	if ep == nil {
		return Endpoint{}, false
	}
	return ep.clone(), true
}

func (r *Registry) findLocked(path, method string) *Endpoint {
	for _, epID := range r.order {
		ep := r.byID[epID]
		if ep.Path == path && ep.Method == method {
			return ep
		}
	}
	return nil
}

// Update applies p to the endpoint with the given id. It reports false if
// the id is unknown. ID and CreatedAt never change.
func (r *Registry) Update(epID string, p Patch) (Endpoint, bool) {
	r.mu.Lock()
	current, ok := r.byID[epID]
	if !ok {
		r.mu.Unlock()
		return Endpoint{}, false
	}
	next := current.clone()
	p.apply(&next)
	r.byID[epID] = &next
	out := next.clone()
	r.mu.Unlock()

	r.notify(ChangeEvent{Op: OpUpdated, ID: epID})
	return out, true
}

// Delete removes the endpoint with the given id and reports whether it existed.
func (r *Registry) Delete(epID string) bool {
	r.mu.Lock()
	if _, ok := r.byID[epID]; !ok {
		r.mu.Unlock()
		return false
	}
	r.removeLocked(epID)
	r.mu.Unlock()

	r.notify(ChangeEvent{Op: OpDeleted, ID: epID})
	return true
}

// DeleteWhere removes every endpoint matching pred under a single lock and
// returns the removed endpoints.
func (r *Registry) DeleteWhere(pred func(Endpoint) bool) []Endpoint {
	r.mu.Lock()
	var removed []Endpoint
	for _, epID := range slices.Clone(r.order) {
		ep := r.byID[epID]
		if pred(ep.clone()) {
			removed = append(removed, ep.clone())
			r.removeLocked(epID)
		}
	}
	r.mu.Unlock()

	events := make([]ChangeEvent, len(removed))
	for i, ep := range removed {
		events[i] = ChangeEvent{Op: OpDeleted, ID: ep.ID}
	}
	r.notify(events...)
	return removed
}

func (r *Registry) removeLocked(epID string) {
	delete(r.byID, epID)
	if i := slices.Index(r.order, epID); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

// Clear removes all endpoints.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.byID = make(map[string]*Endpoint)
	r.order = nil
	r.mu.Unlock()

	r.notify(ChangeEvent{Op: OpCleared})
}

// Count returns the number of endpoints.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Restore replaces the registry contents with previously saved endpoints,
// keeping their ids and creation times.
func (r *Registry) Restore(endpoints []Endpoint) {
	r.mu.Lock()
	r.byID = make(map[string]*Endpoint, len(endpoints))
	r.order = make([]string, 0, len(endpoints))
	for i := range endpoints {
		ep := endpoints[i].clone()
		ep.Path = NormalizePath(ep.Path)
		if ep.ID == "" {
			ep.ID = r.newID()
		}
		if _, dup := r.byID[ep.ID]; dup {
			continue
		}
		r.byID[ep.ID] = &ep
		r.order = append(r.order, ep.ID)
	}
	r.mu.Unlock()

	r.notify(ChangeEvent{Op: OpRestored})
}
