package kunci

import (
	"context"

	"github.com/antonprafanto/MRLKS/internal/domain"
)

// Noop dipakai saat KUNCI_AGREGAT_ENABLED=false (deploy satu instans):
// transaksi database sudah cukup menyerialkan tulisan.
type Noop struct{}

func (Noop) Acquire(ctx context.Context, key string) (func(), error) {
	return func() {}, nil
}

var _ domain.Mutex = Noop{}
