// Package session holds the in-memory state of one booking flow: the current
// batch, the selected offer and the latest confirmation. The recovery store
// is consulted only when the in-memory state is absent, e.g. after a restart
// or a deep link.
package session

import (
	"context"
	"sync"

	"flights/entity"
	"flights/recovery"
)

type State struct {
	mu sync.Mutex

	seq          uint64
	batch        *entity.SearchBatch
	selected     *entity.FlightOffer
	traceID      string
	confirmation *entity.FareConfirmation

	store recovery.Store
}

func New(store recovery.Store) *State {
	return &State{store: store}
}

// SetBatch installs a fresh search batch and discards the previous flow
// state; offers are never reused across searches.
func (s *State) SetBatch(batch entity.SearchBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = &batch
	s.traceID = batch.TraceID
	s.selected = nil
	s.confirmation = nil
}

func (s *State) Batch() (entity.SearchBatch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch == nil {
		return entity.SearchBatch{}, false
	}
	return *s.batch, true
}

// Select records the chosen offer and writes the recovery slot. The write is
// best-effort; the selection itself never fails on it.
func (s *State) Select(ctx context.Context, offer entity.FlightOffer, traceID string) error {
	s.mu.Lock()
	s.selected = &offer
	s.traceID = traceID
	s.confirmation = nil
	s.mu.Unlock()

	return s.store.Remember(ctx, offer, traceID)
}

// Begin opens a new confirmation attempt and returns its token. Tokens are
// monotonic: a later Begin supersedes all earlier ones.
func (s *State) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// ApplyConfirmation installs a confirmation result only if its token is still
// the latest one issued. A slow, stale response never overwrites a newer
// request's result: ordering is last-request-wins, not response-arrival-order.
func (s *State) ApplyConfirmation(token uint64, conf entity.FareConfirmation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		return false
	}
	s.confirmation = &conf
	return true
}

// AttachRules sets rule text on the current confirmation, clearing any
// earlier warning. No-op when no confirmation is held.
func (s *State) AttachRules(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmation == nil {
		return
	}
	s.confirmation.Rules = text
	s.confirmation.RulesWarning = ""
}

func (s *State) Confirmation() (entity.FareConfirmation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmation == nil {
		return entity.FareConfirmation{}, false
	}
	return *s.confirmation, true
}

// TraceID returns the current trace id, falling back to the recovery slot
// when no search ran in this process.
func (s *State) TraceID(ctx context.Context) (string, bool) {
	s.mu.Lock()
	traceID := s.traceID
	s.mu.Unlock()
	if traceID != "" {
		return traceID, true
	}
	return s.store.RecallTraceID(ctx)
}

// SelectedOffer returns the current selection, falling back to the recovery
// slot. A recalled offer is possibly stale and must be re-confirmed before
// any booking or ticketing decision.
func (s *State) SelectedOffer(ctx context.Context) (entity.FlightOffer, bool) {
	s.mu.Lock()
	selected := s.selected
	s.mu.Unlock()
	if selected != nil {
		return *selected, true
	}
	return s.store.RecallOffer(ctx)
}
