package metadata

import (
	"context"
	"time"
)

// Repository is a small key-value store for client-side state, such as the
// remembered email and refresh token. A zero expiry means the value is kept
// until deleted; otherwise Get stops returning it once the deadline passes.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiry time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
