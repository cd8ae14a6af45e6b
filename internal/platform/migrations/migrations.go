// Paket migrations memusatkan versi skema gormigrate yang dijalankan saat start.
package migrations

import (
	"fmt"

	gormigrate "github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/antonprafanto/MRLKS/internal/domain"
)

func Run(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrations: db nil")
	}

	// gormigrate memberi versi pada skema tanpa bergantung AutoMigrate langsung
	// di produksi; seed katalog ikut diversi agar semua lingkungan seragam.
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "202601120001_init_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&domain.Peserta{},
					&domain.MasterItem{},
					&domain.JudgmentScore{},
					&domain.MeasurementScore{},
					&domain.MainScore{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"main_score",
					"measurement_scores",
					"judgment_scores",
					"master_items",
					"peserta",
				)
			},
		},
		{
			ID: "202601120002_seed_master_items",
			Migrate: func(tx *gorm.DB) error {
				items := SeedMasterItems()
				return tx.Create(&items).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DELETE FROM master_items").Error
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrations: gagal menjalankan: %w", err)
	}

	return nil
}
