package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/bellakids/storefront-backend/pkg/config"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
	redisclient "github.com/bellakids/storefront-backend/pkg/redis"
)

type kvStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type cartKeyer interface {
	CartKey(token string) string
}

// Store persists carts as JSON blobs in Redis. Every write refreshes the TTL,
// so an active shopper never loses their cart while an abandoned one ages out.
type Store struct {
	store kvStore
	keyer cartKeyer
	ttl   time.Duration
}

// NewStore constructs a cart store backed by Redis.
func NewStore(client *redisclient.Client, cfg config.CartConfig) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &Store{
		store: client,
		keyer: client,
		ttl:   cfg.TTL,
	}, nil
}

// Load returns the cart for the token. A token with no stored cart yields a
// fresh empty cart, not an error.
func (s *Store) Load(ctx context.Context, token string) (*Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}

	raw, err := s.store.Get(ctx, s.keyer.CartKey(token))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return NewCart(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "loading cart")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "decoding stored cart")
	}
	if cart.Lines == nil {
		cart.Lines = []Line{}
	}
	return &cart, nil
}

// Save writes the cart back and restarts its TTL.
func (s *Store) Save(ctx context.Context, token string, cart *Cart) error {
	if err := validateToken(token); err != nil {
		return err
	}
	cart.UpdatedAt = time.Now().UTC()

	raw, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "encoding cart")
	}
	if err := s.store.Set(ctx, s.keyer.CartKey(token), string(raw), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "saving cart")
	}
	return nil
}

// Delete drops the stored cart entirely.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := validateToken(token); err != nil {
		return err
	}
	if err := s.store.Del(ctx, s.keyer.CartKey(token)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "deleting cart")
	}
	return nil
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	return nil
}
