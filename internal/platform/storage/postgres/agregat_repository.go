package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/antonprafanto/MRLKS/internal/domain"
)

// AgregatRepository menyimpan baris main_score (agregat per peserta-kategori)
// dan menyediakan kueri agregasi untuk klasemen serta rekap per hari.
type AgregatRepository struct {
	db *gorm.DB
}

func NewAgregatRepository(db *gorm.DB) *AgregatRepository {
	return &AgregatRepository{db: db}
}

type mainScoreModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	PesertaID     string    `gorm:"column:peserta_id"`
	PesertaNama   string    `gorm:"column:peserta_name"`
	Kategori      string    `gorm:"column:kategori"`
	Hari          string    `gorm:"column:hari"`
	SkorDiperoleh float64   `gorm:"column:skor_diperoleh"`
	SkorMaksimal  float64   `gorm:"column:skor_maksimal"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (mainScoreModel) TableName() string {
	return "main_score"
}

func (m mainScoreModel) toDomain() domain.MainScore {
	return domain.MainScore{
		ID:            m.ID,
		PesertaID:     domain.PesertaID(m.PesertaID),
		PesertaNama:   m.PesertaNama,
		Kategori:      domain.Kategori(m.Kategori),
		Hari:          domain.Hari(m.Hari),
		SkorDiperoleh: m.SkorDiperoleh,
		SkorMaksimal:  m.SkorMaksimal,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromDomainMainScore(s domain.MainScore) mainScoreModel {
	return mainScoreModel{
		ID:            s.ID,
		PesertaID:     string(s.PesertaID),
		PesertaNama:   s.PesertaNama,
		Kategori:      string(s.Kategori),
		Hari:          string(s.Hari),
		SkorDiperoleh: s.SkorDiperoleh,
		SkorMaksimal:  s.SkorMaksimal,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (r *AgregatRepository) Find(ctx context.Context, pesertaID domain.PesertaID, kategori domain.Kategori) (domain.MainScore, error) {
	var model mainScoreModel
	if err := sesi(ctx, r.db).
		First(&model, "peserta_id = ? AND kategori = ?", pesertaID, kategori).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MainScore{}, domain.ErrNotFound
		}
		return domain.MainScore{}, fmt.Errorf("gorm agregat: cari: %w", err)
	}
	return model.toDomain(), nil
}

func (r *AgregatRepository) Upsert(ctx context.Context, skor domain.MainScore) error {
	model := fromDomainMainScore(skor)
	if err := sesi(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "peserta_id"}, {Name: "kategori"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"peserta_name", "skor_diperoleh", "skor_maksimal", "updated_at",
			}),
		}).
		Create(&model).Error; err != nil {
		return fmt.Errorf("gorm agregat: upsert: %w", err)
	}
	return nil
}

func (r *AgregatRepository) ListByPeserta(ctx context.Context, pesertaID domain.PesertaID) ([]domain.MainScore, error) {
	var models []mainScoreModel
	if err := sesi(ctx, r.db).
		Where("peserta_id = ?", pesertaID).
		Order("hari ASC, kategori ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("gorm agregat: list: %w", err)
	}

	result := make([]domain.MainScore, len(models))
	for i, model := range models {
		result[i] = model.toDomain()
	}
	return result, nil
}

func (r *AgregatRepository) RekapPerHari(ctx context.Context, pesertaID domain.PesertaID) ([]domain.RekapHari, error) {
	type hasil struct {
		Hari         string
		TotalSkor    float64
		SkorMaksimal float64
	}

	var baris []hasil
	if err := sesi(ctx, r.db).Raw(`
        SELECT hari,
               SUM(skor_diperoleh) AS total_skor,
               SUM(skor_maksimal)  AS skor_maksimal
        FROM main_score
        WHERE peserta_id = ?
        GROUP BY hari
        ORDER BY hari ASC
    `, pesertaID).Scan(&baris).Error; err != nil {
		return nil, fmt.Errorf("gorm agregat: rekap hari: %w", err)
	}

	rekap := make([]domain.RekapHari, len(baris))
	for i, b := range baris {
		rekap[i] = domain.RekapHari{
			Hari:         domain.Hari(b.Hari),
			TotalSkor:    b.TotalSkor,
			SkorMaksimal: b.SkorMaksimal,
		}
	}
	return rekap, nil
}

func (r *AgregatRepository) ListPerHari(ctx context.Context, hari domain.Hari) ([]domain.SkorHariEntry, error) {
	type hasil struct {
		PesertaID     string
		Nama          string
		Sekolah       string
		Kategori      string
		SkorDiperoleh float64
		SkorMaksimal  float64
	}

	var baris []hasil
	if err := sesi(ctx, r.db).Raw(`
        SELECT p.id      AS peserta_id,
               p.nama    AS nama,
               p.sekolah AS sekolah,
               ms.kategori       AS kategori,
               ms.skor_diperoleh AS skor_diperoleh,
               ms.skor_maksimal  AS skor_maksimal
        FROM main_score ms
        JOIN peserta p ON ms.peserta_id = p.id
        WHERE ms.hari = ?
        ORDER BY p.nama ASC, ms.kategori ASC
    `, hari).Scan(&baris).Error; err != nil {
		return nil, fmt.Errorf("gorm agregat: list per hari: %w", err)
	}

	entries := make([]domain.SkorHariEntry, len(baris))
	for i, b := range baris {
		entries[i] = domain.SkorHariEntry{
			PesertaID:     domain.PesertaID(b.PesertaID),
			Nama:          b.Nama,
			Sekolah:       b.Sekolah,
			Kategori:      domain.Kategori(b.Kategori),
			SkorDiperoleh: b.SkorDiperoleh,
			SkorMaksimal:  b.SkorMaksimal,
		}
	}
	return entries, nil
}

func (r *AgregatRepository) TotalSemuaPeserta(ctx context.Context) ([]domain.PesertaTotal, error) {
	type hasil struct {
		PesertaID string
		Nama      string
		Sekolah   string
		TotalSkor float64
	}

	var baris []hasil
	// LEFT JOIN menjamin peserta tanpa skor tetap muncul dengan total 0.
	if err := sesi(ctx, r.db).Raw(`
        SELECT p.id   AS peserta_id,
               p.nama AS nama,
               p.sekolah AS sekolah,
               COALESCE(SUM(ms.skor_diperoleh), 0) AS total_skor
        FROM peserta p
        LEFT JOIN main_score ms ON ms.peserta_id = p.id
        GROUP BY p.id, p.nama, p.sekolah
    `).Scan(&baris).Error; err != nil {
		return nil, fmt.Errorf("gorm agregat: total semua peserta: %w", err)
	}

	totals := make([]domain.PesertaTotal, len(baris))
	for i, b := range baris {
		totals[i] = domain.PesertaTotal{
			PesertaID: domain.PesertaID(b.PesertaID),
			Nama:      b.Nama,
			Sekolah:   b.Sekolah,
			TotalSkor: b.TotalSkor,
		}
	}
	return totals, nil
}

var _ domain.AgregatRepository = (*AgregatRepository)(nil)
