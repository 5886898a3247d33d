package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resto-pos-backend/internal/domain/dayclose"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// DateLocker is a cross-instance mutex per business date, layered over the DB guard row.
type DateLocker struct {
	client  *redislock.Client
	ttl     time.Duration
	retries int
	backoff time.Duration
}

func NewDateLocker(rdb *redis.Client, ttl time.Duration) *DateLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &DateLocker{
		client:  redislock.New(rdb),
		ttl:     ttl,
		retries: 5,
		backoff: 100 * time.Millisecond,
	}
}

func DateLockKey(businessDate time.Time) string {
	return fmt.Sprintf("dayclose:%s", dayclose.NormalizeDate(businessDate).Format(dayclose.DateLayout))
}

// Lock obtains the date key, retrying briefly. The returned func releases it and is safe to defer.
// A held key yields dayclose.ErrDateBusy.
func (l *DateLocker) Lock(ctx context.Context, businessDate time.Time) (func(), error) {
	lock, err := l.client.Obtain(ctx, DateLockKey(businessDate), l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.backoff), l.retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return func() {}, dayclose.ErrDateBusy
	}
	if err != nil {
		return func() {}, err
	}
	return func() {
		// release with a fresh context, the request one may already be cancelled
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = lock.Release(ctx)
	}, nil
}
