// Copyright (c) 2026 BoiBritto. All rights reserved.

package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/constants"
)

// RedisClaimCache implements [ClaimCache] using Redis.
//
// # Purpose
//
// Token verification is pure CPU work plus a key lookup, but it runs on
// every authenticated request. Caching verified claims for a few minutes
// (never beyond the token's own expiry) keeps the hot path cheap.
type RedisClaimCache struct {
	client *redis.Client
}

// NewRedisClaimCache creates a new Redis-backed [ClaimCache].
func NewRedisClaimCache(client *redis.Client) *RedisClaimCache {
	return &RedisClaimCache{client: client}
}

/*
Get retrieves a cached claim by token hash.

Description: Returns (nil, nil) on a cache miss so callers can fall
through to direct verification.

Parameters:
  - ctx: context.Context
  - tokenHash: string (SHA-256 hex digest of the bearer token)

Returns:
  - *Claim: The cached verified claim, or nil on a miss
  - error: Connectivity or decoding failures
*/
func (cache *RedisClaimCache) Get(ctx context.Context, tokenHash string) (*Claim, error) {
	key := constants.RedisPrefixClaim + tokenHash

	raw, err := cache.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_claim_cache_get_failed: %w", err)
	}

	claim := &Claim{}
	if err := json.Unmarshal(raw, claim); err != nil {
		return nil, fmt.Errorf("redis_claim_cache_decode_failed: %w", err)
	}

	return claim, nil
}

/*
Set stores a verified claim under the token hash with a TTL.

Parameters:
  - ctx: context.Context
  - tokenHash: string
  - claim: *Claim
  - ttl: time.Duration (must not exceed the token's remaining lifetime)

Returns:
  - error: Encoding or connectivity failures
*/
func (cache *RedisClaimCache) Set(ctx context.Context, tokenHash string, claim *Claim, ttl time.Duration) error {
	key := constants.RedisPrefixClaim + tokenHash

	raw, err := json.Marshal(claim)
	if err != nil {
		return fmt.Errorf("redis_claim_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis_claim_cache_set_failed: %w", err)
	}

	return nil
}
