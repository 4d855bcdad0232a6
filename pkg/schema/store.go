package schema

import (
	"slices"
	"sync"
	"time"

	"github.com/mockario/mockario/internal/id"
)

// Store holds schemas in creation order.
type Store struct {
	mu        sync.RWMutex
	byID      map[string]*Schema
	order     []string
	listeners []func()

	now   func() time.Time
	newID func() string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byID:  make(map[string]*Schema),
		now:   time.Now,
		newID: id.Short,
	}
}

// OnChange registers fn to run after every mutation.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}

// assignIDs fills in missing table, field and relation ids.
func (s *Store) assignIDs(in Input) ([]Table, []Relation) {
	tables := make([]Table, len(in.Tables))
	for i, t := range in.Tables {
		if t.ID == "" {
			t.ID = s.newID()
		}
		t.Fields = cloneFields(t.Fields)
		for j := range t.Fields {
			if t.Fields[j].ID == "" {
				t.Fields[j].ID = s.newID()
			}
		}
		tables[i] = t
	}
	relations := make([]Relation, len(in.Relations))
	for i, r := range in.Relations {
		if r.ID == "" {
			r.ID = s.newID()
		}
		relations[i] = r
	}
	return tables, relations
}

// Create stores a new schema.
func (s *Store) Create(in Input) Schema {
	tables, relations := s.assignIDs(in)
	now := s.now()
	sc := &Schema{
		ID:        id.UUID(),
		Name:      in.Name,
		Tables:    tables,
		Relations: relations,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.byID[sc.ID] = sc
	s.order = append(s.order, sc.ID)
	out := sc.clone()
	s.mu.Unlock()

	s.notify()
	return out
}

// Get returns the schema with the given id.
func (s *Store) Get(schemaID string) (Schema, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.byID[schemaID]
	if !ok {
		return Schema{}, false
	}
	return sc.clone(), true
}

// List returns every schema in creation order.
func (s *Store) List() []Schema {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Schema, 0, len(s.order))
	for _, sid := range s.order {
		out = append(out, s.byID[sid].clone())
	}
	return out
}

// Update replaces the name, tables and relations of a schema.
func (s *Store) Update(schemaID string, in Input) (Schema, bool) {
	tables, relations := s.assignIDs(in)

	s.mu.Lock()
	sc, ok := s.byID[schemaID]
	if !ok {
		s.mu.Unlock()
		return Schema{}, false
	}
	next := sc.clone()
	next.Name = in.Name
	next.Tables = tables
	next.Relations = relations
	next.UpdatedAt = s.now()
	s.byID[schemaID] = &next
	out := next.clone()
	s.mu.Unlock()

	s.notify()
	return out, true
}

// Delete removes a schema by ID. Returns true if deleted, false if not found.
func (s *Store) Delete(schemaID string) bool {
	s.mu.Lock()
	if _, ok := s.byID[schemaID]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.byID, schemaID)
	if i := slices.Index(s.order, schemaID); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	s.mu.Unlock()

	s.notify()
	return true
}

// Table returns one table of one schema.
func (s *Store) Table(schemaID, tableID string) (Table, error) {
	sc, ok := s.Get(schemaID)
	if !ok {
		return Table{}, ErrNotFound
	}
	t, ok := sc.Table(tableID)
	if !ok {
		return Table{}, ErrTableNotFound
	}
	return t, nil
}

// Restore replaces the store contents with previously saved schemas.
func (s *Store) Restore(schemas []Schema) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]*Schema, len(schemas))
	s.order = make([]string, 0, len(schemas))
	for _, sc := range schemas {
		if sc.ID == "" {
			continue
		}
		if _, dup := s.byID[sc.ID]; dup {
			continue
		}
		c := sc.clone()
		s.byID[c.ID] = &c
		s.order = append(s.order, c.ID)
	}
}
