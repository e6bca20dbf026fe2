package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/luisrojasb/doorline-backend/pkg/errors"
	"github.com/luisrojasb/doorline-backend/pkg/redis"
)

// SessionStore persists cart sessions between requests.
type SessionStore interface {
	Load(ctx context.Context, dealerID, sessionID uuid.UUID) (*State, error)
	Save(ctx context.Context, dealerID, sessionID uuid.UUID, state *State) error
	Clear(ctx context.Context, dealerID, sessionID uuid.UUID) error
}

type sessionCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartSessionKey(dealerID, sessionID string) string
}

type redisStore struct {
	cache sessionCache
	ttl   time.Duration
}

// NewRedisStore builds a SessionStore over the shared redis client. Every
// save refreshes the session TTL so active carts never expire mid-edit.
func NewRedisStore(cache sessionCache, ttl time.Duration) (SessionStore, error) {
	if cache == nil {
		return nil, errors.New("cart: redis cache is required")
	}
	if ttl <= 0 {
		return nil, errors.New("cart: session ttl must be positive")
	}
	return &redisStore{cache: cache, ttl: ttl}, nil
}

// Load fetches the cart session, returning a fresh state on a cache miss.
func (s *redisStore) Load(ctx context.Context, dealerID, sessionID uuid.UUID) (*State, error) {
	key := s.cache.CartSessionKey(dealerID.String(), sessionID.String())
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return NewState(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart session")
	}

	var state State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		// A corrupt session is unrecoverable; start over rather than wedge the dealer.
		return NewState(), nil
	}
	if len(state.Rows) == 0 {
		state.Rows = []DimensionRow{defaultRow()}
	}
	return &state, nil
}

// Save writes the cart session back, refreshing its TTL.
func (s *redisStore) Save(ctx context.Context, dealerID, sessionID uuid.UUID, state *State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart session")
	}
	key := s.cache.CartSessionKey(dealerID.String(), sessionID.String())
	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart session")
	}
	return nil
}

// Clear removes the cart session outright.
func (s *redisStore) Clear(ctx context.Context, dealerID, sessionID uuid.UUID) error {
	key := s.cache.CartSessionKey(dealerID.String(), sessionID.String())
	if err := s.cache.Del(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart session")
	}
	return nil
}
