package store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/itsyanis/1Day1Quote/internal/domain"
)

const touchedKey = "quotes:touched"

type RedisStore struct {
	client *redis.Client
	prefix string
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	UseTLS   bool   `yaml:"use_tls"`
}

// NewRedisStore scopes every key under prefix, usually "quotes:<client id>".
func NewRedisStore(cfg RedisConfig, prefix string) *RedisStore {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	return &RedisStore{client: redis.NewClient(opts), prefix: prefix}
}

func (r *RedisStore) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return "", false, nil
	} else if err != nil {
		return "", false, domain.Persistence("redis get "+key, err)
	}

	decompressed, err := decompress(val)
	if err != nil {
		return "", false, domain.Persistence("redis get "+key, fmt.Errorf("failed to decompress: %w", err))
	}
	if decompressed == nil {
		return "", false, nil
	}

	return string(decompressed), true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	compressed, err := compress([]byte(value))
	if err != nil {
		return domain.Persistence("redis set "+key, fmt.Errorf("failed to compress: %w", err))
	}

	full := r.key(key)
	if err := r.client.Set(ctx, full, compressed, 0).Err(); err != nil {
		return domain.Persistence("redis set "+key, err)
	}

	err = r.client.ZAdd(ctx, touchedKey, redis.Z{
		Score:  float64(time.Now().Unix()),
		Member: r.scope(full),
	}).Err()
	if err != nil {
		return domain.Persistence("redis touch "+key, err)
	}
	return nil
}

func (r *RedisStore) scope(full string) string {
	if r.prefix == "" {
		return full
	}
	return r.prefix
}

func (r *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return domain.Persistence("redis delete", err)
	}
	return nil
}

func (r *RedisStore) DeleteOlderThan(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan).Unix()

	scopes, err := r.client.ZRangeByScore(ctx, touchedKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", cutoff),
	}).Result()

	if err != nil {
		return 0, domain.Persistence("redis scan touched", err)
	}

	if len(scopes) == 0 {
		return 0, nil
	}

	removed := 0
	for _, scope := range scopes {
		keys := []string{scope}
		iter := r.client.Scan(ctx, 0, scope+":*", 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return removed, domain.Persistence("redis scan scope "+scope, err)
		}

		n, err := r.client.Del(ctx, keys...).Result()
		if err != nil {
			return removed, domain.Persistence("redis delete stale", err)
		}
		removed += int(n)
	}

	if err := r.client.ZRem(ctx, touchedKey, scopes).Err(); err != nil {
		return removed, domain.Persistence("redis untouch stale", err)
	}
	return removed, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func compress(data []byte) ([]byte, error) {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	_, err := w.Write(data)
	if err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
