package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// View names for cached clinic projections.
const (
	ViewAppointments = "appointments"
	ViewDashboard    = "dashboard"
)

// ClinicCache caches per-clinic view snapshots and invalidates them when the
// underlying rows change. A successful booking marks the appointment list and
// the dashboard aggregates stale; the next read recomputes them.
type ClinicCache interface {
	Get(ctx context.Context, clinicID uuid.UUID, view string, dest interface{}) (bool, error)
	Set(ctx context.Context, clinicID uuid.UUID, view string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, clinicID uuid.UUID, views ...string) error
}

type redisClinicCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewClinicCache(redisClient *redis.Client, log *logrus.Logger) ClinicCache {
	return &redisClinicCache{
		redisClient: redisClient,
		log:         log,
	}
}

func cacheKey(clinicID uuid.UUID, view string) string {
	return fmt.Sprintf("clinic:%s:view:%s", clinicID.String(), view)
}

func (c *redisClinicCache) Get(ctx context.Context, clinicID uuid.UUID, view string, dest interface{}) (bool, error) {
	payload, err := c.redisClient.Get(ctx, cacheKey(clinicID, view)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		c.log.Warnf("Failed to read cached view %s for clinic %s: %+v", view, clinicID, err)
		return false, err
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		// A corrupt entry behaves like a miss.
		c.log.Warnf("Failed to decode cached view %s for clinic %s: %+v", view, clinicID, err)
		return false, nil
	}
	return true, nil
}

func (c *redisClinicCache) Set(ctx context.Context, clinicID uuid.UUID, view string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := c.redisClient.Set(ctx, cacheKey(clinicID, view), payload, ttl).Err(); err != nil {
		c.log.Warnf("Failed to cache view %s for clinic %s: %+v", view, clinicID, err)
		return err
	}
	return nil
}

func (c *redisClinicCache) Invalidate(ctx context.Context, clinicID uuid.UUID, views ...string) error {
	if len(views) == 0 {
		return nil
	}

	keys := make([]string, len(views))
	for i, view := range views {
		keys[i] = cacheKey(clinicID, view)
	}

	if err := c.redisClient.Del(ctx, keys...).Err(); err != nil {
		c.log.Warnf("Failed to invalidate views %v for clinic %s: %+v", views, clinicID, err)
		return err
	}
	return nil
}
