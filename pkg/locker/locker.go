package locker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL        = 10 * time.Second
	defaultWait       = 3 * time.Second
	defaultRetryDelay = 50 * time.Millisecond
)

// releaseScript удаляет ключ только если он всё ещё принадлежит владельцу токена
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

var (
	// ErrNotAcquired возвращается, если блокировку не удалось взять за отведённое время
	ErrNotAcquired = errors.New("locker: lock not acquired")

	// ErrRedis возвращается при ошибке обращения к redis
	ErrRedis = errors.New("locker: redis error")
)

// Client подмножество методов redis-клиента, нужное блокировке
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// ReleaseFunc освобождает взятую блокировку
type ReleaseFunc func()

// SlotKey ключ блокировки расписания площадки на дату
func SlotKey(venueID int64, date string) string {
	return fmt.Sprintf("slot_lock:%d:%s", venueID, date)
}

// RedisLocker распределённая блокировка на SETNX с TTL
type RedisLocker struct {
	client     Client
	ttl        time.Duration
	wait       time.Duration
	retryDelay time.Duration
	logger     Logger
}

// NewRedisLocker создает блокировку; нулевые ttl и wait заменяются значениями по умолчанию
func NewRedisLocker(client Client, ttl, wait time.Duration, logger Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if wait <= 0 {
		wait = defaultWait
	}
	return &RedisLocker{
		client:     client,
		ttl:        ttl,
		wait:       wait,
		retryDelay: defaultRetryDelay,
		logger:     logger,
	}
}

// Acquire берёт блокировку по ключу, повторяя попытки до истечения wait или отмены ctx
func (l *RedisLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: Acquire - setnx %s: %v", ErrRedis, key, err)
		}
		if ok {
			return l.releaser(key, token), nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
		}

		select {
		case <-ctx.Done():
			// отмена запроса не означает занятость расписания
			return nil, fmt.Errorf("locker: Acquire - wait for %s: %w", key, ctx.Err())
		case <-time.After(l.retryDelay):
		}
	}
}

func (l *RedisLocker) releaser(key, token string) ReleaseFunc {
	return func() {
		// Освобождаем даже если контекст запроса уже отменён
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := l.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
			l.logger.Warn("Locker: failed to release %s: %v", key, err)
		}
	}
}

// Noop блокировка-заглушка для запуска без redis: конкурентные записи разрешаются по last-write-wins
type Noop struct{}

func (Noop) Acquire(context.Context, string) (ReleaseFunc, error) {
	return func() {}, nil
}
