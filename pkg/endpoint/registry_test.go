package endpoint

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockario/mockario/pkg/value"
)

func sampleInput(path, method string) Input {
	return Input{
		Path:     path,
		Method:   method,
		Response: value.Object(value.F("ok", value.Bool(true))),
	}
}

func TestRegistry_CreateNormalizesPath(t *testing.T) {
	r := NewRegistry()

	ep := r.Create(sampleInput("users", MethodGet))
	assert.Equal(t, "/users", ep.Path)
	assert.NotEmpty(t, ep.ID)
	assert.Equal(t, ResponseTypeJSON, ep.ResponseType)
	assert.False(t, ep.CreatedAt.IsZero())

	ep2 := r.Create(sampleInput("/already", MethodGet))
	assert.Equal(t, "/already", ep2.Path)
}

func TestRegistry_CreateClampsNegativeDelay(t *testing.T) {
	r := NewRegistry()
	in := sampleInput("/slow", MethodGet)
	in.Delay = -50

	ep := r.Create(in)
	assert.Equal(t, 0, ep.Delay)
}

func TestRegistry_FindByPathAndMethod(t *testing.T) {
	r := NewRegistry()
	get := r.Create(sampleInput("/users", MethodGet))
	r.Create(sampleInput("/users", MethodPost))

	found, ok := r.FindByPath("/users", MethodGet)
	require.True(t, ok)
	assert.Equal(t, get.ID, found.ID)

	_, ok = r.FindByPath("/users", MethodDelete)
	assert.False(t, ok)

	_, ok = r.FindByPath("/users/", MethodGet)
	assert.False(t, ok, "lookup is exact")
}

func TestRegistry_DuplicateFirstMatchWins(t *testing.T) {
	r := NewRegistry()
	first := r.Create(sampleInput("/dup", MethodGet))
	second := r.Create(sampleInput("/dup", MethodGet))
	require.NotEqual(t, first.ID, second.ID)

	found, ok := r.FindByPath("/dup", MethodGet)
	require.True(t, ok)
	assert.Equal(t, first.ID, found.ID)

	require.True(t, r.Delete(first.ID))
	found, ok = r.FindByPath("/dup", MethodGet)
	require.True(t, ok)
	assert.Equal(t, second.ID, found.ID)
}

func TestRegistry_CreateIfAbsent(t *testing.T) {
	r := NewRegistry()

	ep, created := r.CreateIfAbsent(sampleInput("once", MethodPost))
	require.True(t, created)

	again, created := r.CreateIfAbsent(sampleInput("/once", MethodPost))
	assert.False(t, created)
	assert.Equal(t, ep.ID, again.ID)
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_FindAllPreservesOrder(t *testing.T) {
	r := NewRegistry()
	var ids []string
	for i := range 5 {
		ids = append(ids, r.Create(sampleInput(fmt.Sprintf("/e%d", i), MethodGet)).ID)
	}

	all := r.FindAll()
	require.Len(t, all, 5)
	for i, ep := range all {
		assert.Equal(t, ids[i], ep.ID)
	}
}

func TestRegistry_UpdateIsPartial(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r := NewRegistry(WithClock(func() time.Time { return created }))
	in := sampleInput("/items", MethodGet)
	in.Delay = 250
	in.AuthRequired = true
	ep := r.Create(in)

	zero := 0
	newPath := "renamed"
	updated, ok := r.Update(ep.ID, Patch{Delay: &zero, Path: &newPath})
	require.True(t, ok)

	assert.Equal(t, 0, updated.Delay, "explicit zero must apply")
	assert.Equal(t, "/renamed", updated.Path)
	assert.True(t, updated.AuthRequired)
	assert.Equal(t, MethodGet, updated.Method)
	assert.Equal(t, ep.ID, updated.ID)
	assert.Equal(t, created, updated.CreatedAt)
	assert.True(t, value.Equal(ep.Response, updated.Response))

	stored, ok := r.FindByID(ep.ID)
	require.True(t, ok)
	assert.Equal(t, updated.Path, stored.Path)
}

func TestRegistry_UpdateUnknown(t *testing.T) {
	r := NewRegistry()
	delay := 10
	_, ok := r.Update("missing", Patch{Delay: &delay})
	assert.False(t, ok)
}

func TestRegistry_DeleteAndClear(t *testing.T) {
	r := NewRegistry()
	a := r.Create(sampleInput("/a", MethodGet))
	r.Create(sampleInput("/b", MethodGet))

	assert.True(t, r.Delete(a.ID))
	assert.False(t, r.Delete(a.ID))
	_, ok := r.FindByID(a.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, r.Count())

	r.Clear()
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, r.FindAll())
}

func TestRegistry_DeleteWhere(t *testing.T) {
	r := NewRegistry()
	r.Create(sampleInput("/_auth/login", MethodPost))
	r.Create(sampleInput("/users", MethodGet))
	r.Create(sampleInput("/_auth/me", MethodGet))

	removed := r.DeleteWhere(func(ep Endpoint) bool {
		return len(ep.Path) > 6 && ep.Path[:7] == "/_auth/"
	})
	assert.Len(t, removed, 2)
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	r := NewRegistry()
	in := sampleInput("/copy", MethodGet)
	in.ResponseKeys = []string{"id"}
	ep := r.Create(in)

	ep.ResponseKeys[0] = "mutated"
	ep.Path = "/mutated"

	stored, ok := r.FindByID(ep.ID)
	require.True(t, ok)
	assert.Equal(t, "/copy", stored.Path)
	assert.Equal(t, []string{"id"}, stored.ResponseKeys)
}

func TestRegistry_Restore(t *testing.T) {
	r := NewRegistry()
	r.Create(sampleInput("/old", MethodGet))

	at := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	r.Restore([]Endpoint{
		{ID: "one", Path: "x", Method: MethodGet, CreatedAt: at},
		{ID: "one", Path: "/dupe", Method: MethodGet},
		{ID: "two", Path: "/y", Method: MethodPost},
	})

	all := r.FindAll()
	require.Len(t, all, 2)
	assert.Equal(t, "one", all[0].ID)
	assert.Equal(t, "/x", all[0].Path)
	assert.Equal(t, at, all[0].CreatedAt)
	assert.Equal(t, "two", all[1].ID)
}

func TestRegistry_OnChange(t *testing.T) {
	r := NewRegistry()
	var events []ChangeEvent
	r.OnChange(func(ev ChangeEvent) {
		// Listeners run outside the lock, so reads must not deadlock.
		_ = r.Count()
		events = append(events, ev)
	})

	ep := r.Create(sampleInput("/a", MethodGet))
	delay := 5
	r.Update(ep.ID, Patch{Delay: &delay})
	r.Delete(ep.ID)
	r.Clear()

	require.Len(t, events, 4)
	assert.Equal(t, OpCreated, events[0].Op)
	assert.Equal(t, OpUpdated, events[1].Op)
	assert.Equal(t, OpDeleted, events[2].Op)
	assert.Equal(t, OpCleared, events[3].Op)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ep := r.Create(sampleInput(fmt.Sprintf("/c%d", i), MethodGet))
			delay := i
			r.Update(ep.ID, Patch{Delay: &delay})
			r.FindByPath(ep.Path, MethodGet)
			r.FindAll()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, r.Count())
}

func TestNormalizePath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"users", "/users"},
		{"/users", "/users"},
		{"", "/"},
		{"a/b", "/a/b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePath(tt.in), tt.in)
	}
}
