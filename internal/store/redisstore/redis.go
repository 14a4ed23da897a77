package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/suPer8Hu/chatrelay/internal/store"
)

// Backend keeps each collection document under <prefix><collection>.
type Backend struct {
	rdb    *redis.Client
	prefix string
}

func New(addr, password string, db int, prefix string) (*Backend, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Backend{rdb: rdb, prefix: prefix}, nil
}

func (b *Backend) key(name string) string {
	return b.prefix + name
}

func (b *Backend) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := b.rdb.Get(ctx, b.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotExist
	}
	return data, err
}

func (b *Backend) Save(ctx context.Context, name string, data []byte) error {
	return b.rdb.Set(ctx, b.key(name), data, 0).Err()
}

func (b *Backend) Close() error {
	return b.rdb.Close()
}
