package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// ReminderDedup provides idempotency checks for reminder events backed by
// Redis. Key format: reminder:<patient_id>:<medication>:<unix_timestamp>
type ReminderDedup struct {
	client *redis.Client
}

// NewReminderDedup creates a ReminderDedup wrapping the given Redis client.
func NewReminderDedup(client *redis.Client) *ReminderDedup {
	return &ReminderDedup{client: client}
}

// IsDuplicate reports whether this exact reminder has already been recorded.
func (d *ReminderDedup) IsDuplicate(ctx context.Context, patientID, medication string, at time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(patientID, medication, at)).Result()
	if err != nil {
		return false, fmt.Errorf("reminder dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this reminder has been processed (expires after dedupTTL).
func (d *ReminderDedup) Mark(ctx context.Context, patientID, medication string, at time.Time) error {
	return d.client.Set(ctx, d.key(patientID, medication, at), "1", dedupTTL).Err()
}

func (d *ReminderDedup) key(patientID, medication string, at time.Time) string {
	return fmt.Sprintf("reminder:%s:%s:%d", patientID, medication, at.Unix())
}
