package cache

import (
	"context"
	"time"
)

// Store là phần key/value: values được encode JSON, key hết hạn theo TTL.
// Get trả về found=false khi miss và không đụng vào dest.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Counter là phần atomic counter (failed-login tracking).
// TTL âm nghĩa là key không có expiry hoặc không tồn tại.
type Counter interface {
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// Cache backs auth state only (throttling + revoked tokens); resources are
// never cached. Implementations: MemoryCache and infrastructure/cache.RedisCache.
type Cache interface {
	Store
	Counter

	Ping(ctx context.Context) error
}
