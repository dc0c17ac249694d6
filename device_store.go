package trustkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

var errDeviceRedisUnavailable = errors.New("device trust redis unavailable")

// trustedDeviceStore persists one registry per (tenant, user) as a JSON
// array, rewritten whole on every mutation. Concurrent writers for the same
// user can lose updates; the registry is owned by a single interactive
// session by design of the flows that feed it.
type trustedDeviceStore struct {
	redis  *redis.Client
	prefix string
}

func newTrustedDeviceStore(redisClient *redis.Client, cfg DeviceTrustConfig) *trustedDeviceStore {
	return &trustedDeviceStore{
		redis:  redisClient,
		prefix: cfg.RedisPrefix,
	}
}

func (s *trustedDeviceStore) key(tenantID, userID string) string {
	return s.prefix + ":" + normalizeTenantID(tenantID) + ":" + userID
}

// List returns the registry in insertion order. A missing key yields an
// empty list; a corrupt payload is treated the same after a warn-level log,
// so one bad write can never brick a user's device management.
func (s *trustedDeviceStore) List(ctx context.Context, tenantID, userID string) ([]TrustedDevice, bool, error) {
	data, err := s.redis.Get(ctx, s.key(tenantID, userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %v", errDeviceRedisUnavailable, err)
	}

	var devices []TrustedDevice
	if err := json.Unmarshal(data, &devices); err != nil {
		log.Print("trustkit: corrupt trusted device registry, resetting to empty")
		return nil, true, nil
	}

	return devices, false, nil
}

// Replace overwrites the registry with the given collection. An empty
// collection deletes the key.
func (s *trustedDeviceStore) Replace(ctx context.Context, tenantID, userID string, devices []TrustedDevice) error {
	key := s.key(tenantID, userID)

	if len(devices) == 0 {
		if err := s.redis.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("%w: %v", errDeviceRedisUnavailable, err)
		}
		return nil
	}

	encoded, err := json.Marshal(devices)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, key, encoded, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", errDeviceRedisUnavailable, err)
	}

	return nil
}

func normalizeTenantID(tenantID string) string {
	if tenantID == "" {
		return "0"
	}
	return tenantID
}
