package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/antonprafanto/MRLKS/internal/domain"
)

type txKey struct{}

// TxManager menjalankan fungsi dalam satu transaksi GORM. Handle transaksi
// dititipkan lewat context sehingga seluruh repositori paket ini otomatis
// ikut transaksi yang sama (upsert skor + rekomputasi agregat satu unit).
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// sesi memilih handle transaksi dari context bila ada, selain itu pool biasa.
func sesi(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

var _ domain.Transactor = (*TxManager)(nil)
