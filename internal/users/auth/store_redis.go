// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tranminhvu/taskhive/internal/platform/apperr"
	"github.com/tranminhvu/taskhive/internal/platform/constants"
)

// RedisResetTokenRepository implements ResetTokenRepository using Redis.
//
// Tokens expire automatically via Redis TTL, so no cleanup job is needed.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

/*
Set stores a reset token digest with its associated userID and TTL.

Parameters:
  - context: context.Context
  - tokenDigest: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisResetTokenRepository) Set(context context.Context, tokenDigest string, userID string, ttl time.Duration) error {

	// Build the namespaced key
	key := constants.RedisPrefixResetToken + tokenDigest

	// Set the token with TTL
	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return apperr.Internal(err)
	}

	// Return nil on success
	return nil
}

/*
Get retrieves the userID for a given token digest.

Description: Returns apperr.NotFound if the token is absent or expired.

Parameters:
  - context: context.Context
  - tokenDigest: string

Returns:
  - string: Original UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisResetTokenRepository) Get(context context.Context, tokenDigest string) (string, error) {

	// Build the namespaced key
	key := constants.RedisPrefixResetToken + tokenDigest

	// Get the token from Redis
	userID, err := repository.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", apperr.Internal(err)
	}

	// Return the userID
	return userID, nil
}

/*
Delete removes the token digest from Redis.

Parameters:
  - context: context.Context
  - tokenDigest: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisResetTokenRepository) Delete(context context.Context, tokenDigest string) error {

	// Build the namespaced key
	key := constants.RedisPrefixResetToken + tokenDigest

	// Delete the token from Redis
	if err := repository.client.Del(context, key).Err(); err != nil {
		return apperr.Internal(err)
	}

	// Return nil on success
	return nil
}
