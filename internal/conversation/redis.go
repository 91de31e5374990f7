package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "conversation:"

// redisStore keeps records as JSON values. A zero ttl means no expiry.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (s *redisStore) Save(ctx context.Context, record *CallRecord) error {
	if record == nil || record.CallID == "" {
		return ErrMissingCallID
	}

	val, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal call record: %w", err)
	}

	return s.client.Set(ctx, redisKey(record.CallID), val, s.ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, callID string) (*CallRecord, error) {
	val, err := s.client.Get(ctx, redisKey(callID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var record CallRecord
	if err := json.Unmarshal(val, &record); err != nil {
		return nil, fmt.Errorf("unmarshal call record %s: %w", callID, err)
	}
	return &record, nil
}

func (s *redisStore) Close() error {
	return s.client.Close()
}

func redisKey(callID string) string {
	return redisKeyPrefix + callID
}
