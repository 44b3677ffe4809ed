// Package syncer keeps three views of the same list consistent: the
// in-memory state, the share link, and the durable store. It
// reconciles them once at startup and then projects every mutation
// back out, debounced so rapid edits collapse into one write.
package syncer

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/idilsaglam/shoplist/internal/codec"
	"github.com/idilsaglam/shoplist/internal/model"
)

// DefaultWait is the trailing quiet period after the last mutation
// before a write-back commits.
const DefaultWait = 500 * time.Millisecond

// Store is the durable single-record boundary the controller writes
// through. found=false on Load means nothing stored, as opposed to a
// stored empty list.
type Store interface {
	Save(ctx context.Context, items []model.Item) error
	Load(ctx context.Context) (items []model.Item, found bool, err error)
}

type phase int

const (
	phaseUninitialized phase = iota
	phaseReconciling
	phaseSynchronized
	phaseClosed
)

// Controller orchestrates load-time reconciliation and debounced
// write-backs. There is exactly one logical writer: the link and the
// store are idempotent projections of the latest snapshot, so the only
// ordering guarantee needed is last-value-wins.
type Controller struct {
	link  *Link
	store Store
	wait  time.Duration
	log   *slog.Logger

	mu      sync.Mutex
	phase   phase
	pending []model.Item
	dirty   bool
	gen     uint64 // bumped by every Changed, stamped onto its snapshot
	timer   *time.Timer

	// serializes actual writes so a firing timer and an explicit
	// Flush never interleave their store updates; written tracks the
	// newest generation that reached the link and store, so a stale
	// timer goroutine arriving late cannot clobber a newer snapshot
	wmu     sync.Mutex
	written uint64
}

// Option tunes a Controller.
type Option func(*Controller)

// WithWait overrides the debounce window.
func WithWait(d time.Duration) Option {
	return func(c *Controller) { c.wait = d }
}

// WithLogger overrides the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New returns an uninitialized controller; no reads or writes happen
// until Reconcile.
func New(link *Link, store Store, opts ...Option) *Controller {
	c := &Controller{
		link:  link,
		store: store,
		wait:  DefaultWait,
		log:   slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Reconcile runs the one-time load. A token on the link wins — that is
// the "opened a shared link" case — and immediately overwrites the
// durable store. Otherwise the store is consulted; a missing or empty
// record leaves the list empty. Store failures degrade to link-only
// persistence and never surface to the caller.
//
// Reconcile must complete before the first debounced write is armed;
// Changed is a no-op until it has run.
func (c *Controller) Reconcile(ctx context.Context) []model.Item {
	c.mu.Lock()
	if c.phase != phaseUninitialized {
		out := slices.Clone(c.pending)
		c.mu.Unlock()
		return out
	}
	c.phase = phaseReconciling
	c.mu.Unlock()

	var items []model.Item
	if token := c.link.Data(); token != "" {
		items = codec.Decode(token)
		if err := c.store.Save(ctx, items); err != nil {
			c.log.Warn("durable store write failed, continuing on link only", "err", err)
		}
	} else {
		got, found, err := c.store.Load(ctx)
		if err != nil {
			c.log.Warn("durable store unavailable, continuing on link only", "err", err)
		} else if found && len(got) > 0 {
			items = got
		}
	}
	// Make the share link reflect the adopted state right away.
	c.link.SetData(codec.Encode(items))

	c.mu.Lock()
	c.pending = items
	c.phase = phaseSynchronized
	c.mu.Unlock()
	return slices.Clone(items)
}

// Changed records a new snapshot and restarts the debounce window.
// Only the last snapshot inside the window is ever written; a pending
// window is cancelled by each call and re-armed, and the final write
// still fires once mutations stop.
func (c *Controller) Changed(items []model.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != phaseSynchronized {
		return
	}
	c.pending = slices.Clone(items)
	c.dirty = true
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.wait, c.fire)
}

func (c *Controller) fire() {
	c.mu.Lock()
	if c.phase != phaseSynchronized || !c.dirty {
		c.mu.Unlock()
		return
	}
	items := c.pending
	gen := c.gen
	c.dirty = false
	c.timer = nil
	c.mu.Unlock()
	c.write(context.Background(), items, gen)
}

// Flush writes any pending snapshot immediately, cancelling the
// debounce timer. Safe to call with nothing pending.
func (c *Controller) Flush(ctx context.Context) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.phase != phaseSynchronized || !c.dirty {
		c.mu.Unlock()
		return
	}
	items := c.pending
	gen := c.gen
	c.dirty = false
	c.mu.Unlock()
	c.write(ctx, items, gen)
}

// Close flushes any pending write and tears the controller down; no
// timer outlives it.
func (c *Controller) Close() {
	c.Flush(context.Background())
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.phase = phaseClosed
}

// Link returns the current share address.
func (c *Controller) Link() *Link { return c.link }

func (c *Controller) write(ctx context.Context, items []model.Item, gen uint64) {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	// A timer that dequeued its snapshot, then lost the race to a
	// Changed+Flush of something newer, must not write the older
	// state back. Last value wins.
	if gen <= c.written {
		return
	}
	c.written = gen
	c.link.SetData(codec.Encode(items))
	if err := c.store.Save(ctx, items); err != nil {
		c.log.Warn("durable store write failed, state kept on link only", "err", err)
	}
}
