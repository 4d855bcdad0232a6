package store

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mockario/mockario/pkg/logging"
)

// DefaultDebounce is how long the persister waits after the last change
// before saving.
const DefaultDebounce = 500 * time.Millisecond

const saveTimeout = 10 * time.Second

// SnapshotFunc captures the current state.
type SnapshotFunc func() *Snapshot

// Persister saves snapshots to a Backend in the background. Services call
// MarkDirty from their change hooks; bursts of changes collapse into one
// save after the debounce interval.
type Persister struct {
	backend  Backend
	snapshot SnapshotFunc
	debounce time.Duration
	log      *slog.Logger

	dirty     atomic.Bool
	saveMu    sync.Mutex
	saveCh    chan struct{}
	closeCh   chan struct{}
	closeOnce sync.Once
	closedCh  chan struct{}
}

// PersisterOption configures a Persister.
type PersisterOption func(*Persister)

// WithDebounce sets the debounce interval.
func WithDebounce(d time.Duration) PersisterOption {
	return func(p *Persister) { p.debounce = d }
}

// WithLogger sets the logger used for save failures.
func WithLogger(log *slog.Logger) PersisterOption {
	return func(p *Persister) { p.log = log }
}

// NewPersister starts a persister saving snapshot() to backend.
func NewPersister(backend Backend, snapshot SnapshotFunc, opts ...PersisterOption) *Persister {
	p := &Persister{
		backend:  backend,
		snapshot: snapshot,
		debounce: DefaultDebounce,
		log:      logging.Nop(),
		saveCh:   make(chan struct{}, 1),
		closeCh:  make(chan struct{}),
		closedCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.saveLoop()
	return p
}

// MarkDirty schedules a save. It never blocks.
func (p *Persister) MarkDirty() {
	p.dirty.Store(true)
	select {
	case p.saveCh <- struct{}{}:
	default:
	}
}

// Flush saves immediately if there are unsaved changes.
func (p *Persister) Flush(ctx context.Context) error {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()
	if !p.dirty.Swap(false) {
		return nil
	}
	if err := p.backend.Save(ctx, p.snapshot()); err != nil {
		p.dirty.Store(true)
		return err
	}
	return nil
}

func (p *Persister) saveLoop() {
	defer close(p.closedCh)
	var timer *time.Timer
	for {
		select {
		case <-p.saveCh:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(p.debounce, p.save)
		case <-p.closeCh:
			if timer != nil {
				timer.Stop()
			}
			p.save()
			return
		}
	}
}

func (p *Persister) save() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := p.Flush(ctx); err != nil {
		p.log.Error("failed to save snapshot", "error", err)
	}
}

// Close performs a final save and stops the loop. It does not close the
// backend. Safe to call multiple times.
func (p *Persister) Close() error {
	p.closeOnce.Do(func() {
		close(p.closeCh)
	})
	<-p.closedCh
	return nil
}
