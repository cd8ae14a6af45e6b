// Paket redis mengimplementasikan antrean event skor, cache klasemen, dan
// koneksi klien di atas Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/antonprafanto/MRLKS/internal/domain"
	"github.com/antonprafanto/MRLKS/internal/platform/logger"
)

// Antrean memakai list Redis untuk meneruskan event skor ke worker rekap.
type Antrean struct {
	client *redis.Client
	key    string
}

func NewAntrean(client *redis.Client, key string) *Antrean {
	return &Antrean{
		client: client,
		key:    key,
	}
}

func (a *Antrean) PublikasiEvent(ctx context.Context, event domain.SkorEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis antrean: gagal serialisasi event: %w", err)
	}
	if err := a.client.LPush(ctx, a.key, payload).Err(); err != nil {
		return fmt.Errorf("redis antrean: gagal publikasi event: %w", err)
	}
	return nil
}

func (a *Antrean) KonsumsiEvent(ctx context.Context, handler func(context.Context, domain.SkorEvent) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// BRPOP memblokir dengan timeout pendek supaya context tetap dihormati.
		res, err := a.client.BRPop(ctx, 5*time.Second, a.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return fmt.Errorf("redis antrean: gagal konsumsi event: %w", err)
		}

		if len(res) != 2 {
			continue
		}

		var event domain.SkorEvent
		if err := json.Unmarshal([]byte(res[1]), &event); err != nil {
			// Payload rusak sudah keluar dari antrean; menghentikan konsumer
			// karenanya membuat satu pesan beracun mematikan worker.
			logger.Warn("redis antrean: payload invalid dilewati", "err", err)
			continue
		}

		// Handler yang gagal menghentikan rutinitas; pemanggil memutuskan retry.
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

var _ domain.Antrean = (*Antrean)(nil)
