package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/tour_booking/internal/core/domain"
)

const DefaultTTL = 5 * time.Minute

type BookingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookingCache returns a redis backed cache of per-tour booking lists.
// A zero ttl selects DefaultTTL.
func NewBookingCache(client *redis.Client, ttl time.Duration) *BookingCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BookingCache{client: client, ttl: ttl}
}

func TourBookingsKey(tourID, version int64) string {
	return fmt.Sprintf("tour_bookings:%d:v%d", tourID, version)
}

func TourVersionKey(tourID int64) string {
	return fmt.Sprintf("tour_bookings:%d:version", tourID)
}

func (c *BookingCache) version(ctx context.Context, tourID int64) (int64, error) {
	v, err := c.client.Get(ctx, TourVersionKey(tourID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *BookingCache) GetTourBookings(ctx context.Context, tourID int64) ([]domain.BookingRecord, int64, bool, error) {
	version, err := c.version(ctx, tourID)
	if err != nil {
		return nil, 0, false, err
	}

	data, err := c.client.Get(ctx, TourBookingsKey(tourID, version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, version, false, nil
		}
		return nil, version, false, err
	}

	var records []domain.BookingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, version, false, fmt.Errorf("decode cached bookings: %w", err)
	}

	return records, version, true, nil
}

func (c *BookingCache) SetTourBookings(ctx context.Context, tourID int64, version int64, records []domain.BookingRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}

	return c.client.Set(ctx, TourBookingsKey(tourID, version), data, c.ttl).Err()
}

// Invalidate moves the tour to a new version; entries of older versions
// expire with their ttl.
func (c *BookingCache) Invalidate(ctx context.Context, tourID int64) error {
	return c.client.Incr(ctx, TourVersionKey(tourID)).Err()
}
