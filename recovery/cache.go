// Package recovery is the durable single-slot side channel that lets the
// pipeline survive a full reload: the last-selected offer and trace id are
// overwritten on every selection and recalled only when in-memory state is
// absent. It is never a source of truth for pricing.
package recovery

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"flights/entity"
)

const (
	offerKey = "flights:recovery:last-offer"
	traceKey = "flights:recovery:last-trace"
)

type Store interface {
	Remember(ctx context.Context, offer entity.FlightOffer, traceID string) error
	RecallOffer(ctx context.Context) (entity.FlightOffer, bool)
	RecallTraceID(ctx context.Context) (string, bool)
}

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Remember(ctx context.Context, offer entity.FlightOffer, traceID string) error {
	record := entity.RecoveryRecord{
		Offer:   offer,
		TraceID: traceID,
		SavedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, offerKey, payload, 0).Err(); err != nil {
		return err
	}
	return s.rdb.Set(ctx, traceKey, traceID, 0).Err()
}

// RecallOffer returns the last remembered offer. Missing or corrupt entries
// read as "none".
func (s *RedisStore) RecallOffer(ctx context.Context) (entity.FlightOffer, bool) {
	payload, err := s.rdb.Get(ctx, offerKey).Bytes()
	if err != nil {
		return entity.FlightOffer{}, false
	}
	var record entity.RecoveryRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return entity.FlightOffer{}, false
	}
	return record.Offer, true
}

func (s *RedisStore) RecallTraceID(ctx context.Context) (string, bool) {
	traceID, err := s.rdb.Get(ctx, traceKey).Result()
	if err != nil || traceID == "" {
		return "", false
	}
	return traceID, true
}

// MemoryStore mirrors RedisStore semantics for tests and single-process runs,
// including the marshal round trip so corrupt entries degrade the same way.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (s *MemoryStore) Remember(_ context.Context, offer entity.FlightOffer, traceID string) error {
	record := entity.RecoveryRecord{
		Offer:   offer,
		TraceID: traceID,
		SavedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[offerKey] = payload
	s.data[traceKey] = []byte(traceID)
	return nil
}

func (s *MemoryStore) RecallOffer(_ context.Context) (entity.FlightOffer, bool) {
	s.mu.Lock()
	payload, ok := s.data[offerKey]
	s.mu.Unlock()
	if !ok {
		return entity.FlightOffer{}, false
	}
	var record entity.RecoveryRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return entity.FlightOffer{}, false
	}
	return record.Offer, true
}

func (s *MemoryStore) RecallTraceID(_ context.Context) (string, bool) {
	s.mu.Lock()
	payload, ok := s.data[traceKey]
	s.mu.Unlock()
	if !ok || len(payload) == 0 {
		return "", false
	}
	return string(payload), true
}

func (s *MemoryStore) seed(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
}
