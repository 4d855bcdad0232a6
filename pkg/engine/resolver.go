package engine

import (
	"context"
	"time"

	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/template"
	"github.com/mockario/mockario/pkg/value"
)

// Resolver turns an inbound (path, method) into a response body.
type Resolver struct {
	endpoints *endpoint.Registry
	templates *template.Engine
}

// NewResolver creates a Resolver over the registry. A nil engine gets a
// fresh template engine.
func NewResolver(endpoints *endpoint.Registry, templates *template.Engine) *Resolver {
	if templates == nil {
		templates = template.New(nil)
	}
	return &Resolver{endpoints: endpoints, templates: templates}
}

// Lookup returns the endpoint registered for (path, method).
func (r *Resolver) Lookup(path, method string) (endpoint.Endpoint, bool) {
	return r.endpoints.FindByPath(path, method)
}

// Wait suspends for the endpoint's delay. Other requests are unaffected.
// It returns early with ctx.Err() when the request goes away.
func (r *Resolver) Wait(ctx context.Context, ep endpoint.Endpoint) error {
	d := ep.DelayDuration()
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Render returns the endpoint's response with every placeholder substituted.
func (r *Resolver) Render(ep endpoint.Endpoint) value.Value {
	return r.templates.Process(ep.Response)
}

// Resolve runs the whole pipeline: lookup, delay, substitution. It returns
// endpoint.ErrNotFound when nothing matches.
func (r *Resolver) Resolve(ctx context.Context, path, method string) (endpoint.Endpoint, value.Value, error) {
	ep, ok := r.Lookup(path, method)
	if !ok {
		return endpoint.Endpoint{}, value.Null(), endpoint.ErrNotFound
	}
	if err := r.Wait(ctx, ep); err != nil {
		return ep, value.Null(), err
	}
	return ep, r.Render(ep), nil
}
