package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/antonprafanto/MRLKS/internal/domain"
)

// PesertaRepository mempersistenkan tim peserta lewat GORM.
type PesertaRepository struct {
	db *gorm.DB
}

func NewPesertaRepository(db *gorm.DB) *PesertaRepository {
	return &PesertaRepository{db: db}
}

type pesertaModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Nama      string    `gorm:"column:nama"`
	Sekolah   string    `gorm:"column:sekolah"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (pesertaModel) TableName() string {
	return "peserta"
}

func (m pesertaModel) toDomain() domain.Peserta {
	return domain.Peserta{
		ID:        domain.PesertaID(m.ID),
		Nama:      m.Nama,
		Sekolah:   m.Sekolah,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDomainPeserta(p domain.Peserta) pesertaModel {
	return pesertaModel{
		ID:        string(p.ID),
		Nama:      p.Nama,
		Sekolah:   p.Sekolah,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *PesertaRepository) Create(ctx context.Context, p domain.Peserta) error {
	model := fromDomainPeserta(p)
	if err := sesi(ctx, r.db).Create(&model).Error; err != nil {
		return fmt.Errorf("gorm peserta: insert: %w", err)
	}
	return nil
}

func (r *PesertaRepository) Update(ctx context.Context, p domain.Peserta) error {
	model := fromDomainPeserta(p)
	if err := sesi(ctx, r.db).Model(&pesertaModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"nama":       model.Nama,
			"sekolah":    model.Sekolah,
			"updated_at": model.UpdatedAt,
		}).Error; err != nil {
		return fmt.Errorf("gorm peserta: update: %w", err)
	}
	return nil
}

func (r *PesertaRepository) FindByID(ctx context.Context, id domain.PesertaID) (domain.Peserta, error) {
	var model pesertaModel
	if err := sesi(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Peserta{}, domain.ErrNotFound
		}
		return domain.Peserta{}, fmt.Errorf("gorm peserta: cari id: %w", err)
	}
	return model.toDomain(), nil
}

func (r *PesertaRepository) ListAll(ctx context.Context) ([]domain.Peserta, error) {
	var models []pesertaModel
	if err := sesi(ctx, r.db).
		// Urut nama agar tampilan panitia stabil.
		Order("nama ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("gorm peserta: list: %w", err)
	}

	result := make([]domain.Peserta, len(models))
	for i, model := range models {
		result[i] = model.toDomain()
	}
	return result, nil
}

func (r *PesertaRepository) Search(ctx context.Context, kataKunci string) ([]domain.Peserta, error) {
	pola := "%" + kataKunci + "%"
	var models []pesertaModel
	if err := sesi(ctx, r.db).
		Where("id LIKE ? OR nama LIKE ? OR sekolah LIKE ?", pola, pola, pola).
		Order("nama ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("gorm peserta: cari: %w", err)
	}

	result := make([]domain.Peserta, len(models))
	for i, model := range models {
		result[i] = model.toDomain()
	}
	return result, nil
}

func (r *PesertaRepository) Delete(ctx context.Context, id domain.PesertaID) error {
	res := sesi(ctx, r.db).Delete(&pesertaModel{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("gorm peserta: hapus: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PesertaRepository) HasScores(ctx context.Context, id domain.PesertaID) (bool, error) {
	var total int64
	// UNION ALL kedua tabel penilaian; satu baris saja sudah memblokir penghapusan.
	if err := sesi(ctx, r.db).Raw(`
        SELECT COUNT(*) FROM (
            SELECT peserta_id FROM judgment_scores WHERE peserta_id = ?
            UNION ALL
            SELECT peserta_id FROM measurement_scores WHERE peserta_id = ?
        ) AS skor
    `, id, id).Scan(&total).Error; err != nil {
		return false, fmt.Errorf("gorm peserta: cek skor: %w", err)
	}
	return total > 0, nil
}

var _ domain.PesertaRepository = (*PesertaRepository)(nil)
