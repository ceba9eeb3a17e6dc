// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rolodex-app/rolodex/internal/platform/apperr"
	"github.com/rolodex-app/rolodex/internal/platform/constants"
	"github.com/rolodex-app/rolodex/internal/platform/sec"
)

// # Session Cache Repository

// RedisSessionCacheRepository implements SessionCacheRepository using Redis.
//
// Keys are SHA-256 fingerprints of the bearer token; raw tokens are never
// written to the cache. Values are JSON-encoded identity snapshots with a
// TTL, so Redis itself enforces expiry and the cache can never outlive the
// token it mirrors.
type RedisSessionCacheRepository struct {
	client *redis.Client
}

// NewSessionCacheRepository creates a new Redis-backed SessionCacheRepository.
func NewSessionCacheRepository(client *redis.Client) *RedisSessionCacheRepository {
	return &RedisSessionCacheRepository{client: client}
}

/*
Put stores the identity snapshot for a bearer token with a TTL.

Description: Overwrites any existing entry under the same token fingerprint
(last writer wins).

Parameters:
  - context: context.Context
  - token: string
  - identity: *sec.Identity
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionCacheRepository) Put(context context.Context, token string, identity *sec.Identity, ttl time.Duration) error {
	key := sessionKey(token)

	// Identity implements encoding.BinaryMarshaler, go-redis serializes it directly
	if err := repository.client.Set(context, key, identity, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_cache_put_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the identity snapshot for a bearer token.

Description: Returns apperr.NotFound if the entry is absent or already
expired. Expired entries are evicted by Redis, never surfaced.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.Identity: Cached snapshot
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionCacheRepository) Get(context context.Context, token string) (*sec.Identity, error) {
	key := sessionKey(token)

	payload, err := repository.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_cache_get_failed: %w", err)
	}

	identity := &sec.Identity{}
	if err := identity.UnmarshalBinary(payload); err != nil {
		return nil, fmt.Errorf("redis_session_cache_decode_failed: %w", err)
	}

	return identity, nil
}

// sessionKey fingerprints the bearer token into a fixed-length cache key.
func sessionKey(token string) string {
	digest := sha256.Sum256([]byte(token))
	return constants.RedisPrefixSession + hex.EncodeToString(digest[:])
}
