package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/vitrinalabs/storefront-backend/pkg/errors"
	"github.com/vitrinalabs/storefront-backend/pkg/redis"
)

// Storage persists session carts between requests.
type Storage interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisStorage keeps each session's cart as a JSON blob under a namespaced
// key with a rolling TTL.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, ttl time.Duration) (*RedisStorage, error) {
	if client == nil {
		return nil, errors.New(errors.CodeInternal, "redis client is required")
	}
	return &RedisStorage{client: client, ttl: ttl}, nil
}

// Load returns the stored cart, or an empty one when the session has none.
func (s *RedisStorage) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(sessionID))
	if err == redis.Nil {
		return &Cart{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "loading cart")
	}
	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// A corrupt blob should not lock the session out of the store.
		return &Cart{}, nil
	}
	return &cart, nil
}

func (s *RedisStorage) Save(ctx context.Context, sessionID string, cart *Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding cart")
	}
	if err := s.client.Set(ctx, s.client.CartKey(sessionID), payload, s.ttl); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "saving cart")
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(sessionID)); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "deleting cart")
	}
	return nil
}

// MemoryStorage backs carts with an in-process map. Used in tests and when
// no Redis is configured.
type MemoryStorage struct {
	mu    sync.Mutex
	carts map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: make(map[string][]byte)}
}

func (s *MemoryStorage) Load(ctx context.Context, sessionID string) (*Cart, error) {
	s.mu.Lock()
	raw, ok := s.carts[sessionID]
	s.mu.Unlock()
	if !ok {
		return &Cart{}, nil
	}
	var cart Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return &Cart{}, nil
	}
	return &cart, nil
}

func (s *MemoryStorage) Save(ctx context.Context, sessionID string, cart *Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding cart")
	}
	s.mu.Lock()
	s.carts[sessionID] = payload
	s.mu.Unlock()
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}
