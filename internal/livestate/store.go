package livestate

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/metrics"
	"github.com/renato0307/spotter/internal/ports"
)

// KeyPrefix namespaces live coaching state keys in the local store
const KeyPrefix = "spotter:live-coaching:"

// Key returns the local store key holding the state of userID
func Key(userID string) string {
	return KeyPrefix + userID
}

// Outcome describes what a lookup found in the local store
type Outcome string

const (
	OutcomeCorrupt Outcome = "corrupt" // entry exists but does not decode
	OutcomeFailed  Outcome = "failed"  // the local store returned an error
	OutcomeFound   Outcome = "found"
	OutcomeMissing Outcome = "missing"
	OutcomeStale   Outcome = "stale" // older than domain.StaleAfter, cleared
)

// LookupResult is a load with its outcome.
// Only OutcomeFound carries a usable State; every other outcome means absent.
type LookupResult struct {
	Err     error
	Outcome Outcome
	State   domain.LiveCoachingState
}

// Found reports whether the lookup produced a usable state
func (r LookupResult) Found() bool {
	return r.Outcome == OutcomeFound
}

// Store persists in-progress live coaching UI state per user.
// It is a cache of UI intent: every failure is logged and counted, never
// returned, and callers always get either a usable state or a clean slate.
// Operations on the same user are serialized.
type Store struct {
	clock ports.Clock
	kv    ports.KeyValueStore
	locks sync.Map // user key -> *sync.Mutex
}

// NewStore creates a Store over kv
func NewStore(kv ports.KeyValueStore, clock ports.Clock) *Store {
	return &Store{clock: clock, kv: kv}
}

func (s *Store) lock(key string) func() {
	mu, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// Save replaces the stored state of userID. A failed write leaves the
// previously stored state untouched. The state is stored normalized, so a
// later Load returns state.Normalize().
func (s *Store) Save(ctx context.Context, userID string, state domain.LiveCoachingState) {
	if userID == "" {
		logging.Logger.Warn("Skipping live state save without user")
		return
	}
	state = state.Normalize()

	payload, err := json.Marshal(state)
	if err != nil {
		s.fail("save", userID, err)
		return
	}

	key := Key(userID)
	unlock := s.lock(key)
	defer unlock()

	if err := s.kv.Set(ctx, key, string(payload)); err != nil {
		s.fail("save", userID, err)
		return
	}

	logging.Logger.Debug("Live state saved",
		"user_id", userID,
		"step", state.Step,
		"client_index", state.CurrentClientIndex)
}

// Load returns the stored state of userID, or false when there is none,
// it does not decode, or it is stale. Stale entries are cleared.
func (s *Store) Load(ctx context.Context, userID string) (domain.LiveCoachingState, bool) {
	result := s.Lookup(ctx, userID)
	if !result.Found() {
		return domain.LiveCoachingState{}, false
	}
	return result.State, true
}

// Lookup is Load with the outcome exposed, for diagnostics
func (s *Store) Lookup(ctx context.Context, userID string) LookupResult {
	if userID == "" {
		return LookupResult{Outcome: OutcomeMissing}
	}

	key := Key(userID)
	unlock := s.lock(key)
	defer unlock()

	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.fail("load", userID, err)
		return LookupResult{Err: err, Outcome: OutcomeFailed}
	}
	if !ok {
		return LookupResult{Outcome: OutcomeMissing}
	}

	var state domain.LiveCoachingState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		s.fail("decode", userID, err)
		return LookupResult{Err: err, Outcome: OutcomeCorrupt}
	}

	if state.IsStale(s.clock.Now()) {
		logging.Logger.Info("Evicting stale live state",
			"user_id", userID,
			"started_at", state.StartedAt)
		metrics.StaleStatesEvicted.Inc()
		if err := s.kv.Remove(ctx, key); err != nil {
			s.fail("clear", userID, err)
		}
		return LookupResult{Outcome: OutcomeStale, State: state}
	}

	return LookupResult{Outcome: OutcomeFound, State: state}
}

// Clear removes the stored state of userID. Clearing a missing entry is a no-op.
func (s *Store) Clear(ctx context.Context, userID string) {
	if userID == "" {
		return
	}

	key := Key(userID)
	unlock := s.lock(key)
	defer unlock()

	if err := s.kv.Remove(ctx, key); err != nil {
		s.fail("clear", userID, err)
		return
	}
	logging.Logger.Debug("Live state cleared", "user_id", userID)
}

func (s *Store) fail(op, userID string, err error) {
	metrics.LocalStoreFailures.WithLabelValues(op).Inc()
	logging.Logger.Warn("Local live state store failure",
		"op", op,
		"user_id", userID,
		"error", err)
}
