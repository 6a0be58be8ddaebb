package userprofile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKeyPrefix = "user_profile:"

// RedisOption configures a RedisService.
type RedisOption func(*RedisService)

// WithRedisKeyPrefix overrides the default "user_profile:" key prefix.
func WithRedisKeyPrefix(prefix string) RedisOption {
	return func(s *RedisService) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithRedisTTL sets an expiry on stored profiles. Zero keeps them forever.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *RedisService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// RedisService stores profiles as JSON blobs in Redis. The caller owns the
// client lifecycle; see the redis package docs for connection management.
type RedisService struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisService wraps an already-connected Redis client.
func NewRedisService(client *redis.Client, opts ...RedisOption) *RedisService {
	svc := &RedisService{client: client, prefix: defaultRedisKeyPrefix}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Lookup implements Service.
func (s *RedisService) Lookup(ctx context.Context, userID string) (*Profile, error) {
	raw, err := s.client.Get(ctx, s.prefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var profile Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, errors.Join(ErrMalformedRecord, err)
	}
	if profile.UserID == "" {
		profile.UserID = userID
	}
	return &profile, nil
}

// Save implements Service.
func (s *RedisService) Save(ctx context.Context, profile *Profile) error {
	if profile == nil || profile.UserID == "" {
		return errors.Join(ErrInvalidProfile, errors.New("missing user id"))
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+profile.UserID, raw, s.ttl).Err()
}
