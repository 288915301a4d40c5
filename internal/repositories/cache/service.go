package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get decodes the cached value into dest and reports whether the key existed.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Monthly volume caching. Entries are keyed by a per-contractor version that
// InvalidateMonthlyVolume bumps, so a reader that loaded the ledger before an
// invalidation writes to a key nobody reads any more.

// volumeVersionTTL outlives any volume entry.
const volumeVersionTTL = 31 * 24 * time.Hour

func monthlyVolumeKey(contractorID uuid.UUID, version int64) string {
	return GenerateKey(EntityContractor, KeyMonthlyVolume, fmt.Sprintf("%s:v%d", contractorID, version))
}

func volumeVersionKey(contractorID uuid.UUID) string {
	return GenerateKey(EntityContractor, KeyVolumeVersion, contractorID)
}

// MonthlyVolumeVersion returns the current cache version for a contractor's volume.
func (s *CacheService) MonthlyVolumeVersion(ctx context.Context, contractorID uuid.UUID) (int64, error) {
	version, err := s.client.Get(ctx, volumeVersionKey(contractorID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get volume version: %w", err)
	}
	return version, nil
}

func (s *CacheService) GetMonthlyVolume(ctx context.Context, contractorID uuid.UUID, version int64) (int64, bool, error) {
	var volume int64
	found, err := s.Get(ctx, monthlyVolumeKey(contractorID, version), &volume)
	if err != nil || !found {
		return 0, false, err
	}
	return volume, true, nil
}

func (s *CacheService) SetMonthlyVolume(ctx context.Context, contractorID uuid.UUID, version, volume int64) error {
	return s.Set(ctx, monthlyVolumeKey(contractorID, version), volume)
}

func (s *CacheService) InvalidateMonthlyVolume(ctx context.Context, contractorID uuid.UUID) error {
	key := volumeVersionKey(contractorID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, volumeVersionTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to bump volume version: %w", err)
	}
	return nil
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
