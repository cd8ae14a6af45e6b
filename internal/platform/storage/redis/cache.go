package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/antonprafanto/MRLKS/internal/domain"
)

// KlasemenCache menyimpan snapshot klasemen sebagai JSON dengan TTL pendek.
// Tulisan skor menghapus snapshot; worker rekap menyegarkannya kembali.
type KlasemenCache struct {
	client *redis.Client
	key    string
}

func NewKlasemenCache(client *redis.Client, key string) *KlasemenCache {
	return &KlasemenCache{
		client: client,
		key:    key,
	}
}

func (c *KlasemenCache) Simpan(ctx context.Context, entries []domain.RankingEntry, ttl time.Duration) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("redis cache: gagal serialisasi klasemen: %w", err)
	}
	if err := c.client.Set(ctx, c.key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis cache: gagal simpan klasemen: %w", err)
	}
	return nil
}

func (c *KlasemenCache) Ambil(ctx context.Context) ([]domain.RankingEntry, bool, error) {
	payload, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis cache: gagal baca klasemen: %w", err)
	}

	var entries []domain.RankingEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, false, fmt.Errorf("redis cache: snapshot rusak: %w", err)
	}
	return entries, true, nil
}

func (c *KlasemenCache) Hapus(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redis cache: gagal hapus klasemen: %w", err)
	}
	return nil
}

var _ domain.KlasemenCache = (*KlasemenCache)(nil)
