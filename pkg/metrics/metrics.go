package metrics

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrLabelCountMismatch is returned when the number of label values doesn't match the defined labels.
var ErrLabelCountMismatch = errors.New("label count mismatch")

// ErrNegativeCounterValue is returned when attempting to add a negative value to a counter.
var ErrNegativeCounterValue = errors.New("counter cannot be decreased")

// Kind is the exposition type of a metric.
type Kind string

const (
	KindCounter   Kind = "counter"
	KindGauge     Kind = "gauge"
	KindHistogram Kind = "histogram"
)

// Label is one name/value pair of a sample.
type Label struct {
	Name  string
	Value string
}

// Sample is a single exposition line.
type Sample struct {
	Name   string
	Labels []Label
	Value  float64
}

// Metric is implemented by every metric type.
type Metric interface {
	Name() string
	Help() string
	Kind() Kind
	Collect() []Sample
}

// atomicFloat64 stores float64 bits for lock-free updates.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

func (a *atomicFloat64) Store(v float64) {
	a.bits.Store(math.Float64bits(v))
}

func (a *atomicFloat64) Add(delta float64) {
	for {
		old := a.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if a.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// desc holds what every metric has in common.
type desc struct {
	name       string
	help       string
	labelNames []string
}

func (d desc) Name() string { return d.name }
func (d desc) Help() string { return d.help }

// family maps label-value tuples to per-series state of type T.
type family[T any] struct {
	desc
	mu     sync.RWMutex
	series map[string]*series[T]
	newT   func() *T
}

type series[T any] struct {
	labels []Label
	state  *T
}

func (f *family[T]) init(d desc, newT func() *T) {
	f.desc = d
	f.series = make(map[string]*series[T])
	f.newT = newT
}

// lookup returns an existing series without creating it.
func (f *family[T]) lookup(values []string) (*T, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.series[strings.Join(values, "\x00")]
	if !ok {
		return nil, false
	}
	return s.state, true
}

func (f *family[T]) get(values []string) (*T, error) {
	if len(values) != len(f.labelNames) {
		return nil, fmt.Errorf("%w: %s expected %d labels, got %d",
			ErrLabelCountMismatch, f.name, len(f.labelNames), len(values))
	}
	key := strings.Join(values, "\x00")

	f.mu.RLock()
	s, ok := f.series[key]
	f.mu.RUnlock()
	if ok {
		return s.state, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.series[key]; ok {
		return s.state, nil
	}
	labels := make([]Label, len(values))
	for i, v := range values {
		labels[i] = Label{Name: f.labelNames[i], Value: v}
	}
	s = &series[T]{labels: labels, state: f.newT()}
	f.series[key] = s
	return s.state, nil
}

// each visits series in label order so output is deterministic.
func (f *family[T]) each(fn func(labels []Label, state *T)) {
	f.mu.RLock()
	keys := make([]string, 0, len(f.series))
	for k := range f.series {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	picked := make([]*series[T], len(keys))
	for i, k := range keys {
		picked[i] = f.series[k]
	}
	f.mu.RUnlock()

	for _, s := range picked {
		fn(s.labels, s.state)
	}
}

// Counter is a monotonically increasing metric.
type Counter struct {
	family[atomicFloat64]
}

func (*Counter) Kind() Kind { return KindCounter }

// Inc adds one to the series identified by labelValues.
func (c *Counter) Inc(labelValues ...string) error {
	return c.Add(1, labelValues...)
}

// Add adds delta, which must not be negative.
func (c *Counter) Add(delta float64, labelValues ...string) error {
	if delta < 0 {
		return fmt.Errorf("%w: counter %s", ErrNegativeCounterValue, c.name)
	}
	v, err := c.get(labelValues)
	if err != nil {
		return err
	}
	v.Add(delta)
	return nil
}

// Value returns the current value of one series, zero if it was never touched.
func (c *Counter) Value(labelValues ...string) float64 {
	v, ok := c.lookup(labelValues)
	if !ok {
		return 0
	}
	return v.Load()
}

func (c *Counter) Collect() []Sample {
	var out []Sample
	c.each(func(labels []Label, v *atomicFloat64) {
		out = append(out, Sample{Name: c.name, Labels: labels, Value: v.Load()})
	})
	return out
}

// Gauge is a metric that can go up and down.
type Gauge struct {
	family[atomicFloat64]
}

func (*Gauge) Kind() Kind { return KindGauge }

// Set sets the series identified by labelValues.
func (g *Gauge) Set(value float64, labelValues ...string) error {
	v, err := g.get(labelValues)
	if err != nil {
		return err
	}
	v.Store(value)
	return nil
}

// Add adds delta, which may be negative.
func (g *Gauge) Add(delta float64, labelValues ...string) error {
	v, err := g.get(labelValues)
	if err != nil {
		return err
	}
	v.Add(delta)
	return nil
}

func (g *Gauge) Collect() []Sample {
	var out []Sample
	g.each(func(labels []Label, v *atomicFloat64) {
		out = append(out, Sample{Name: g.name, Labels: labels, Value: v.Load()})
	})
	return out
}

// GaugeFunc is an unlabelled gauge whose value is read at collection time.
type GaugeFunc struct {
	desc
	fn func() float64
}

func (*GaugeFunc) Kind() Kind { return KindGauge }

func (g *GaugeFunc) Collect() []Sample {
	return []Sample{{Name: g.name, Value: g.fn()}}
}

// Histogram tracks the distribution of observed values.
type Histogram struct {
	family[histogramState]
	bounds []float64
}

type histogramState struct {
	counts []atomic.Uint64
	sum    atomicFloat64
	count  atomic.Uint64
}

func (*Histogram) Kind() Kind { return KindHistogram }

// Observe records value in the series identified by labelValues.
func (h *Histogram) Observe(value float64, labelValues ...string) error {
	st, err := h.get(labelValues)
	if err != nil {
		return err
	}
	if i, ok := slices.BinarySearch(h.bounds, value); ok || i < len(h.bounds) {
		st.counts[i].Add(1)
	}
	st.sum.Add(value)
	st.count.Add(1)
	return nil
}

// Count returns how many values one series has observed.
func (h *Histogram) Count(labelValues ...string) uint64 {
	st, ok := h.lookup(labelValues)
	if !ok {
		return 0
	}
	return st.count.Load()
}

func (h *Histogram) Collect() []Sample {
	var out []Sample
	h.each(func(labels []Label, st *histogramState) {
		var cumulative uint64
		for i, bound := range h.bounds {
			cumulative += st.counts[i].Load()
			le := formatFloat(bound)
			bucketLabels := append(slices.Clone(labels), Label{Name: "le", Value: le})
			out = append(out, Sample{Name: h.name + "_bucket", Labels: bucketLabels, Value: float64(cumulative)})
		}
		out = append(out,
			Sample{Name: h.name + "_sum", Labels: labels, Value: st.sum.Load()},
			Sample{Name: h.name + "_count", Labels: labels, Value: float64(st.count.Load())},
		)
	})
	return out
}

// normalizeBuckets sorts bounds and appends +Inf when missing.
func normalizeBuckets(buckets []float64) []float64 {
	bounds := slices.Clone(buckets)
	slices.Sort(bounds)
	bounds = slices.Compact(bounds)
	if len(bounds) == 0 || !math.IsInf(bounds[len(bounds)-1], 1) {
		bounds = append(bounds, math.Inf(1))
	}
	return bounds
}

// DefaultBuckets are request duration buckets in seconds.
var DefaultBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
