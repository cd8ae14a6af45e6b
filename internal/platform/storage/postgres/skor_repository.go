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

// SkorRepository menyimpan catatan skor judgment dan measurement. Kedua tabel
// memakai kunci unik (peserta_id, item_code); upsert memakai ON CONFLICT agar
// pengiriman ulang menimpa baris yang sama tanpa jendela balapan cek-lalu-tulis.
type SkorRepository struct {
	db *gorm.DB
}

func NewSkorRepository(db *gorm.DB) *SkorRepository {
	return &SkorRepository{db: db}
}

type judgmentScoreModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	PesertaID string    `gorm:"column:peserta_id"`
	ItemCode  string    `gorm:"column:item_code"`
	Hari      string    `gorm:"column:hari"`
	Juri1     int       `gorm:"column:juri_1"`
	Juri2     int       `gorm:"column:juri_2"`
	Juri3     int       `gorm:"column:juri_3"`
	RataRata  float64   `gorm:"column:rata_rata"`
	Bobot     int       `gorm:"column:bobot"`
	SkorFinal float64   `gorm:"column:skor_final"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (judgmentScoreModel) TableName() string {
	return "judgment_scores"
}

type measurementScoreModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	PesertaID string    `gorm:"column:peserta_id"`
	ItemCode  string    `gorm:"column:item_code"`
	Hari      string    `gorm:"column:hari"`
	NilaiUkur int       `gorm:"column:nilai_ukur"`
	Bobot     int       `gorm:"column:bobot"`
	SkorFinal float64   `gorm:"column:skor_final"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (measurementScoreModel) TableName() string {
	return "measurement_scores"
}

func (m judgmentScoreModel) toDomain() domain.JudgmentScore {
	return domain.JudgmentScore{
		ID:        m.ID,
		PesertaID: domain.PesertaID(m.PesertaID),
		ItemCode:  domain.ItemCode(m.ItemCode),
		Hari:      domain.Hari(m.Hari),
		Juri1:     m.Juri1,
		Juri2:     m.Juri2,
		Juri3:     m.Juri3,
		RataRata:  m.RataRata,
		Bobot:     m.Bobot,
		SkorFinal: m.SkorFinal,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDomainJudgment(s domain.JudgmentScore) judgmentScoreModel {
	return judgmentScoreModel{
		ID:        s.ID,
		PesertaID: string(s.PesertaID),
		ItemCode:  string(s.ItemCode),
		Hari:      string(s.Hari),
		Juri1:     s.Juri1,
		Juri2:     s.Juri2,
		Juri3:     s.Juri3,
		RataRata:  s.RataRata,
		Bobot:     s.Bobot,
		SkorFinal: s.SkorFinal,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m measurementScoreModel) toDomain() domain.MeasurementScore {
	return domain.MeasurementScore{
		ID:        m.ID,
		PesertaID: domain.PesertaID(m.PesertaID),
		ItemCode:  domain.ItemCode(m.ItemCode),
		Hari:      domain.Hari(m.Hari),
		NilaiUkur: m.NilaiUkur,
		Bobot:     m.Bobot,
		SkorFinal: m.SkorFinal,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDomainMeasurement(s domain.MeasurementScore) measurementScoreModel {
	return measurementScoreModel{
		ID:        s.ID,
		PesertaID: string(s.PesertaID),
		ItemCode:  string(s.ItemCode),
		Hari:      string(s.Hari),
		NilaiUkur: s.NilaiUkur,
		Bobot:     s.Bobot,
		SkorFinal: s.SkorFinal,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (r *SkorRepository) FindJudgment(ctx context.Context, pesertaID domain.PesertaID, code domain.ItemCode) (domain.JudgmentScore, error) {
	var model judgmentScoreModel
	if err := sesi(ctx, r.db).
		First(&model, "peserta_id = ? AND item_code = ?", pesertaID, code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.JudgmentScore{}, domain.ErrNotFound
		}
		return domain.JudgmentScore{}, fmt.Errorf("gorm skor judgment: cari: %w", err)
	}
	return model.toDomain(), nil
}

func (r *SkorRepository) UpsertJudgment(ctx context.Context, skor domain.JudgmentScore) error {
	model := fromDomainJudgment(skor)
	if err := sesi(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "peserta_id"}, {Name: "item_code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"hari", "juri_1", "juri_2", "juri_3", "rata_rata", "bobot", "skor_final", "updated_at",
			}),
		}).
		Create(&model).Error; err != nil {
		return fmt.Errorf("gorm skor judgment: upsert: %w", err)
	}
	return nil
}

func (r *SkorRepository) FindMeasurement(ctx context.Context, pesertaID domain.PesertaID, code domain.ItemCode) (domain.MeasurementScore, error) {
	var model measurementScoreModel
	if err := sesi(ctx, r.db).
		First(&model, "peserta_id = ? AND item_code = ?", pesertaID, code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MeasurementScore{}, domain.ErrNotFound
		}
		return domain.MeasurementScore{}, fmt.Errorf("gorm skor measurement: cari: %w", err)
	}
	return model.toDomain(), nil
}

func (r *SkorRepository) UpsertMeasurement(ctx context.Context, skor domain.MeasurementScore) error {
	model := fromDomainMeasurement(skor)
	if err := sesi(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "peserta_id"}, {Name: "item_code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"hari", "nilai_ukur", "bobot", "skor_final", "updated_at",
			}),
		}).
		Create(&model).Error; err != nil {
		return fmt.Errorf("gorm skor measurement: upsert: %w", err)
	}
	return nil
}

func (r *SkorRepository) SumSkorFinal(ctx context.Context, pesertaID domain.PesertaID, kategori domain.Kategori) (float64, error) {
	var total float64
	// Penjumlahan segar dari kedua tabel; kategori diturunkan dari katalog,
	// bukan disimpan di baris skor.
	if err := sesi(ctx, r.db).Raw(`
        SELECT
            COALESCE((
                SELECT SUM(js.skor_final)
                FROM judgment_scores js
                JOIN master_items mi ON js.item_code = mi.item_code
                WHERE js.peserta_id = ? AND mi.kategori = ?
            ), 0)
            +
            COALESCE((
                SELECT SUM(ms.skor_final)
                FROM measurement_scores ms
                JOIN master_items mi ON ms.item_code = mi.item_code
                WHERE ms.peserta_id = ? AND mi.kategori = ?
            ), 0)
    `, pesertaID, kategori, pesertaID, kategori).Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("gorm skor: jumlah kategori: %w", err)
	}
	return total, nil
}

func (r *SkorRepository) ListByPeserta(ctx context.Context, pesertaID domain.PesertaID) (domain.SkorPeserta, error) {
	var judgmentModels []judgmentScoreModel
	if err := sesi(ctx, r.db).
		Where("peserta_id = ?", pesertaID).
		Order("item_code ASC").
		Find(&judgmentModels).Error; err != nil {
		return domain.SkorPeserta{}, fmt.Errorf("gorm skor judgment: list: %w", err)
	}

	var measurementModels []measurementScoreModel
	if err := sesi(ctx, r.db).
		Where("peserta_id = ?", pesertaID).
		Order("item_code ASC").
		Find(&measurementModels).Error; err != nil {
		return domain.SkorPeserta{}, fmt.Errorf("gorm skor measurement: list: %w", err)
	}

	hasil := domain.SkorPeserta{
		Judgment:    make([]domain.JudgmentScore, len(judgmentModels)),
		Measurement: make([]domain.MeasurementScore, len(measurementModels)),
	}
	for i, model := range judgmentModels {
		hasil.Judgment[i] = model.toDomain()
	}
	for i, model := range measurementModels {
		hasil.Measurement[i] = model.toDomain()
	}
	return hasil, nil
}

var _ domain.SkorRepository = (*SkorRepository)(nil)
