package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/uniform-stock/internal/domain/repository"
)

var _ repository.BlobStore = (*RedisStore)(nil)

// RedisStore keeps blobs as plain Redis string values without expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore pings the server before returning so a misconfigured address
// fails at startup rather than on the first mutation.
func NewRedisStore(ctx context.Context, client *redis.Client, prefix string) (*RedisStore, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("blob: redis ping: %w", err)
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

// Load returns the blob under key; redis.Nil means absent.
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("blob: redis get %s: %w", key, err)
	}
	return data, true, nil
}

// Save writes the blob with no TTL.
func (s *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("blob: redis set %s: %w", key, err)
	}
	return nil
}
