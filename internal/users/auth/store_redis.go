// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/constants"
)

// RedisCodeRepository implements CodeRepository using Redis.
//
// Keys are `auth:confirmation_code:<username>` and the value is the SHA-256
// digest of the code. Redis handles expiry; a repeated SET is the code
// rotation the signup flow relies on.
type RedisCodeRepository struct {
	client *redis.Client
}

// NewCodeRepository creates a new Redis-backed CodeRepository.
func NewCodeRepository(client *redis.Client) *RedisCodeRepository {
	return &RedisCodeRepository{client: client}
}

// Set stores the code digest for a username, replacing any existing one.
func (repository *RedisCodeRepository) Set(context context.Context, username, codeDigest string, ttl time.Duration) error {
	key := constants.RedisPrefixConfirmationCode + username

	if err := repository.client.Set(context, key, codeDigest, ttl).Err(); err != nil {
		return fmt.Errorf("redis_confirmation_code_set_failed: %w", err)
	}

	return nil
}

// Get retrieves the stored digest for a username.
// Returns apperr.NotFound if the code is absent or expired.
func (repository *RedisCodeRepository) Get(context context.Context, username string) (string, error) {
	key := constants.RedisPrefixConfirmationCode + username

	codeDigest, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Confirmation code")
		}
		return "", fmt.Errorf("redis_confirmation_code_get_failed: %w", err)
	}

	return codeDigest, nil
}

// Delete removes the code after successful use.
func (repository *RedisCodeRepository) Delete(context context.Context, username string) error {
	key := constants.RedisPrefixConfirmationCode + username

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_confirmation_code_delete_failed: %w", err)
	}

	return nil
}
