package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

const DefaultRedisKey = "barisense:document"

// RedisStore keeps the document as one JSON value under a single key.
type RedisStore struct {
	rdb *goredis.Client
	key string
	log *logger.Logger
}

// NewRedisStore connects and pings addr before returning.
func NewRedisStore(addr, key string, baseLog *logger.Logger) (*RedisStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStoreWithClient(rdb, key, baseLog), nil
}

func NewRedisStoreWithClient(rdb *goredis.Client, key string, baseLog *logger.Logger) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{
		rdb: rdb,
		key: key,
		log: baseLog.With("service", "RedisStore", "key", key),
	}
}

func (s *RedisStore) Load(ctx context.Context) (*Document, error) {
	raw, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	doc := &Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc.normalize(), nil
}

func (s *RedisStore) Save(ctx context.Context, doc *Document) error {
	raw, err := json.Marshal(doc.normalize())
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
