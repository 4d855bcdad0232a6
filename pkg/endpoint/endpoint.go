package endpoint

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/mockario/mockario/pkg/value"
)

// HTTP methods an endpoint may declare.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
	MethodPatch  = "PATCH"
)

// Methods lists the accepted methods.
var Methods = []string{MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch}

// ValidMethod reports whether m is an accepted method.
func ValidMethod(m string) bool {
	return slices.Contains(Methods, m)
}

// Response types.
const (
	ResponseTypeJSON = "json"
	ResponseTypeTS   = "ts"
)

// Request body sources.
const (
	BodySourceSchema  = "schema"
	BodySourceKeys    = "keys"
	BodySourceExample = "example"
)

// Sentinel errors used by callers enforcing registry policy.
var (
	ErrNotFound  = errors.New("endpoint not found")
	ErrDuplicate = errors.New("endpoint with this path and method already exists")
)

// SchemaRef points at a table inside a schema.
type SchemaRef struct {
	SchemaID string `json:"schemaId" yaml:"schemaId"`
	TableID  string `json:"tableId" yaml:"tableId"`
}

// RequestBody documents the payload an endpoint expects. It is never
// checked against real requests.
type RequestBody struct {
	Source    string       `json:"source" yaml:"source"`
	SchemaRef *SchemaRef   `json:"schemaRef,omitempty" yaml:"schemaRef,omitempty"`
	Keys      []string     `json:"keys,omitempty" yaml:"keys,omitempty"`
	Example   *value.Value `json:"example,omitempty" yaml:"example,omitempty"`
}

func (b *RequestBody) clone() *RequestBody {
	if b == nil {
		return nil
	}
	out := *b
	if b.SchemaRef != nil {
		ref := *b.SchemaRef
		out.SchemaRef = &ref
	}
	out.Keys = slices.Clone(b.Keys)
	return &out
}

// Endpoint is a mock route: a (path, method) pair and the body it returns.
type Endpoint struct {
	ID           string        `json:"id" yaml:"id"`
	Path         string        `json:"path" yaml:"path"`
	Method       string        `json:"method" yaml:"method"`
	Response     value.Value   `json:"response" yaml:"response"`
	Delay        int           `json:"delay" yaml:"delay"`
	AuthRequired bool          `json:"authRequired" yaml:"authRequired"`
	RequestBody  *RequestBody  `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	ResponseType string        `json:"responseType,omitempty" yaml:"responseType,omitempty"`
	SchemaRef    *SchemaRef    `json:"schemaRef,omitempty" yaml:"schemaRef,omitempty"`
	StoredData   []value.Value `json:"storedData,omitempty" yaml:"storedData,omitempty"`
	ResponseKeys []string      `json:"responseKeys,omitempty" yaml:"responseKeys,omitempty"`
	CreatedAt    time.Time     `json:"createdAt" yaml:"createdAt"`
}

// DelayDuration returns the configured delay.
func (e Endpoint) DelayDuration() time.Duration {
	return time.Duration(e.Delay) * time.Millisecond
}

func (e *Endpoint) clone() Endpoint {
	out := *e
	out.RequestBody = e.RequestBody.clone()
	if e.SchemaRef != nil {
		ref := *e.SchemaRef
		out.SchemaRef = &ref
	}
	out.StoredData = slices.Clone(e.StoredData)
	out.ResponseKeys = slices.Clone(e.ResponseKeys)
	return out
}

// Input carries the caller-supplied fields of a new endpoint.
type Input struct {
	Path         string        `json:"path" yaml:"path"`
	Method       string        `json:"method" yaml:"method"`
	Response     value.Value   `json:"response" yaml:"response"`
	Delay        int           `json:"delay" yaml:"delay"`
	AuthRequired bool          `json:"authRequired" yaml:"authRequired"`
	RequestBody  *RequestBody  `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	ResponseType string        `json:"responseType,omitempty" yaml:"responseType,omitempty"`
	SchemaRef    *SchemaRef    `json:"schemaRef,omitempty" yaml:"schemaRef,omitempty"`
	StoredData   []value.Value `json:"storedData,omitempty" yaml:"storedData,omitempty"`
	ResponseKeys []string      `json:"responseKeys,omitempty" yaml:"responseKeys,omitempty"`
}

// Patch lists the fields to replace on update. Nil fields keep their value.
type Patch struct {
	Path         *string        `json:"path,omitempty"`
	Method       *string        `json:"method,omitempty"`
	Response     *value.Value   `json:"response,omitempty"`
	Delay        *int           `json:"delay,omitempty"`
	AuthRequired *bool          `json:"authRequired,omitempty"`
	RequestBody  *RequestBody   `json:"requestBody,omitempty"`
	ResponseType *string        `json:"responseType,omitempty"`
	SchemaRef    *SchemaRef     `json:"schemaRef,omitempty"`
	StoredData   *[]value.Value `json:"storedData,omitempty"`
	ResponseKeys *[]string      `json:"responseKeys,omitempty"`
}

func (p Patch) apply(e *Endpoint) {
	if p.Path != nil {
		e.Path = NormalizePath(*p.Path)
	}
	if p.Method != nil {
		e.Method = *p.Method
	}
	if p.Response != nil {
		e.Response = *p.Response
	}
	if p.Delay != nil {
		e.Delay = max(*p.Delay, 0)
	}
	if p.AuthRequired != nil {
		e.AuthRequired = *p.AuthRequired
	}
	if p.RequestBody != nil {
		e.RequestBody = p.RequestBody.clone()
	}
	if p.ResponseType != nil {
		e.ResponseType = *p.ResponseType
	}
	if p.SchemaRef != nil {
		ref := *p.SchemaRef
		e.SchemaRef = &ref
	}
	if p.StoredData != nil {
		e.StoredData = slices.Clone(*p.StoredData)
	}
	if p.ResponseKeys != nil {
		e.ResponseKeys = slices.Clone(*p.ResponseKeys)
	}
}

// NormalizePath returns p with a leading slash. Paths that already start
// with one are returned unchanged.
func NormalizePath(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
