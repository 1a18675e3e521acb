package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Murshi404/Online-store-Project/models"
)

// PendingTTL bounds how long a staged payment survives before the user
// must re-initiate checkout.
const PendingTTL = 15 * time.Minute

// PendingStore stages one pending payment per user in redis. Stage
// overwrites any previous record; Consume reads-and-deletes in one call, so
// a staged record triggers the payment widget at most once.
type PendingStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPendingStore(rdb *redis.Client) *PendingStore {
	return &PendingStore{rdb: rdb, ttl: PendingTTL}
}

func pendingKey(userID string) string {
	return "pending_payment:" + userID
}

func (s *PendingStore) Stage(ctx context.Context, userID string, p *models.PendingPayment) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pending payment: %w", err)
	}
	return s.rdb.Set(ctx, pendingKey(userID), data, s.ttl).Err()
}

// Consume returns (nil, nil) when nothing is staged.
func (s *PendingStore) Consume(ctx context.Context, userID string) (*models.PendingPayment, error) {
	data, err := s.rdb.GetDel(ctx, pendingKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var p models.PendingPayment
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode pending payment: %w", err)
	}
	return &p, nil
}
