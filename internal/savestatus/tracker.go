package savestatus

import (
	"context"
	"sync"
	"time"

	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/metrics"
)

// Tracker projects the outcome of the most recent remote write:
// idle → saving → saved | error. It keeps no history and never retries.
//
// Every write gets a sequence number from Begin. Results for a write that
// has been superseded by a later Begin are dropped, so a slow earlier write
// cannot flash "saved" or "error" over a newer one.
type Tracker struct {
	mu          sync.Mutex
	seq         uint64
	status      domain.SaveStatus
	subscribers map[chan domain.SaveStatus]struct{}
}

// NewTracker creates a tracker in the idle state
func NewTracker() *Tracker {
	return &Tracker{
		status:      domain.SaveStatus{State: domain.SaveIdle},
		subscribers: make(map[chan domain.SaveStatus]struct{}),
	}
}

// Snapshot returns the current status
func (t *Tracker) Snapshot() domain.SaveStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Begin enters saving for a new write and returns its sequence number
func (t *Tracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.set(domain.SaveStatus{State: domain.SaveSaving, Seq: t.seq})
	return t.seq
}

// Succeed marks write seq as saved. It returns false if seq was superseded.
func (t *Tracker) Succeed(seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq || t.status.State != domain.SaveSaving {
		metrics.RemoteWrites.WithLabelValues("superseded").Inc()
		return false
	}
	metrics.RemoteWrites.WithLabelValues("saved").Inc()
	t.set(domain.SaveStatus{State: domain.SaveSaved, Seq: seq})
	return true
}

// Fail marks write seq as failed with err's message. It returns false if seq
// was superseded.
func (t *Tracker) Fail(seq uint64, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq || t.status.State != domain.SaveSaving {
		metrics.RemoteWrites.WithLabelValues("superseded").Inc()
		return false
	}
	metrics.RemoteWrites.WithLabelValues("error").Inc()
	status := domain.SaveStatus{State: domain.SaveError, Seq: seq}
	if err != nil {
		status.Message = err.Error()
	}
	t.set(status)
	return true
}

// Reset returns saved write seq to idle once the caller's display window is over.
// Errors stay visible until the next write.
func (t *Tracker) Reset(seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq || t.status.State != domain.SaveSaved {
		return false
	}
	t.set(domain.SaveStatus{State: domain.SaveIdle, Seq: seq})
	return true
}

// Track runs write between Begin and Succeed/Fail and returns the write's
// sequence number and error. The error is for the caller's logging only;
// the user sees it through the status.
func (t *Tracker) Track(ctx context.Context, write func(ctx context.Context) error) (uint64, error) {
	seq := t.Begin()
	start := time.Now()
	err := write(ctx)
	metrics.RemoteWriteDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		logging.Logger.Warn("Remote write failed", "seq", seq, "error", err)
		t.Fail(seq, err)
		return seq, err
	}
	t.Succeed(seq)
	return seq, nil
}

// Subscribe returns a channel receiving every status change and a function
// to unsubscribe. Slow subscribers miss intermediate states, never the channel.
func (t *Tracker) Subscribe() (<-chan domain.SaveStatus, func()) {
	ch := make(chan domain.SaveStatus, 8)
	t.mu.Lock()
	t.subscribers[ch] = struct{}{}
	t.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subscribers, ch)
			t.mu.Unlock()
			close(ch)
		})
	}
}

// set must be called with mu held
func (t *Tracker) set(status domain.SaveStatus) {
	t.status = status
	for ch := range t.subscribers {
		select {
		case ch <- status:
		default:
		}
	}
}
