package cart

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"shopdir/internal"
)

const keyPrefix = "shopdir:cart:"

// Store keeps carts in Redis per session so a cart survives between CLI
// invocations. Entries expire after TTL of inactivity; both Load and Save
// refresh it.
type Store struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewStore(redisURL string, ttl time.Duration) (*Store, error) {
	opts := &redis.Options{Addr: redisURL}
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}
	return &Store{Client: redis.NewClient(opts), TTL: ttl}, nil
}

func (s *Store) Close() error {
	return s.Client.Close()
}

func (s *Store) Load(ctx context.Context, sessionID string) (*Cart, error) {
	val, err := s.Client.Get(ctx, cartKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return &Cart{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []internal.CartItem
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, err
	}
	if err := s.Client.Expire(ctx, cartKey(sessionID), s.TTL).Err(); err != nil {
		return nil, err
	}
	return New(items), nil
}

// Save writes the cart and refreshes its TTL. An empty cart deletes the key.
func (s *Store) Save(ctx context.Context, sessionID string, c *Cart) error {
	if c == nil || c.Len() == 0 {
		return s.Delete(ctx, sessionID)
	}
	b, err := json.Marshal(c.Items())
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, cartKey(sessionID), b, s.TTL).Err()
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, cartKey(sessionID)).Err()
}

func cartKey(sessionID string) string {
	return keyPrefix + sessionID
}
