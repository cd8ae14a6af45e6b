// Paket kunci menyediakan mutex terdistribusi berbasis Redis SET NX untuk
// menyerialkan rekomputasi agregat per (peserta, kategori).
package kunci

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/antonprafanto/MRLKS/internal/domain"
)

const tungguUlang = 50 * time.Millisecond

// skripLepas menghapus kunci hanya jika token masih milik pemanggil; GET dan
// DEL terpisah membuka celah menghapus kunci yang sudah direbut proses lain.
var skripLepas = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`)

// RedisKunci memegang kunci bernama dengan token acak plus kedaluwarsa, agar
// proses yang mati tidak meninggalkan kunci selamanya.
type RedisKunci struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

func NewRedisKunci(client *redis.Client, prefix string, timeout time.Duration) *RedisKunci {
	return &RedisKunci{
		client:  client,
		prefix:  prefix,
		timeout: timeout,
	}
}

func (k *RedisKunci) Acquire(ctx context.Context, key string) (func(), error) {
	namaKunci := k.prefix + key
	token := ulid.Make().String()

	for {
		ok, err := k.client.SetNX(ctx, namaKunci, token, k.timeout).Result()
		if err != nil {
			return nil, fmt.Errorf("kunci: gagal akuisisi %s: %w", namaKunci, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("kunci: menunggu %s: %w", namaKunci, ctx.Err())
		case <-time.After(tungguUlang):
		}
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_, _ = skripLepas.Run(ctx, k.client, []string{namaKunci}, token).Result()
	}
	return release, nil
}

var _ domain.Mutex = (*RedisKunci)(nil)
