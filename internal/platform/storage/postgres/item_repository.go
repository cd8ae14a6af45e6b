package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/antonprafanto/MRLKS/internal/domain"
)

// ItemRepository membaca katalog master item; katalog tidak berubah saat lomba.
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

type masterItemModel struct {
	ItemCode    string  `gorm:"column:item_code;primaryKey"`
	Kategori    string  `gorm:"column:kategori"`
	SubKategori string  `gorm:"column:sub_kategori"`
	Deskripsi   string  `gorm:"column:deskripsi"`
	Metode      string  `gorm:"column:metode"`
	Bobot       int     `gorm:"column:bobot"`
	Hari        string  `gorm:"column:hari"`
	MaxScore    float64 `gorm:"column:max_score"`
}

func (masterItemModel) TableName() string {
	return "master_items"
}

func (m masterItemModel) toDomain() domain.MasterItem {
	return domain.MasterItem{
		ItemCode:    domain.ItemCode(m.ItemCode),
		Kategori:    domain.Kategori(m.Kategori),
		SubKategori: m.SubKategori,
		Deskripsi:   m.Deskripsi,
		Metode:      domain.Metode(m.Metode),
		Bobot:       m.Bobot,
		Hari:        domain.Hari(m.Hari),
		MaxScore:    m.MaxScore,
	}
}

func (r *ItemRepository) FindByCode(ctx context.Context, code domain.ItemCode) (domain.MasterItem, error) {
	var model masterItemModel
	if err := sesi(ctx, r.db).First(&model, "item_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MasterItem{}, domain.ErrNotFound
		}
		return domain.MasterItem{}, fmt.Errorf("gorm item: cari kode: %w", err)
	}
	return model.toDomain(), nil
}

func (r *ItemRepository) ListAll(ctx context.Context) ([]domain.MasterItem, error) {
	var models []masterItemModel
	if err := sesi(ctx, r.db).
		Order("hari ASC, kategori ASC, item_code ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("gorm item: list: %w", err)
	}
	return toDomainItems(models), nil
}

func (r *ItemRepository) ListByHari(ctx context.Context, hari domain.Hari) ([]domain.MasterItem, error) {
	var models []masterItemModel
	if err := sesi(ctx, r.db).
		Where("hari = ?", hari).
		Order("kategori ASC, item_code ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("gorm item: list hari: %w", err)
	}
	return toDomainItems(models), nil
}

func (r *ItemRepository) MaxSkorKategori(ctx context.Context, kategori domain.Kategori) (float64, error) {
	var maks float64
	if err := sesi(ctx, r.db).
		Model(&masterItemModel{}).
		Select("COALESCE(SUM(max_score), 0)").
		Where("kategori = ?", kategori).
		Scan(&maks).Error; err != nil {
		return 0, fmt.Errorf("gorm item: max skor kategori: %w", err)
	}
	return maks, nil
}

func toDomainItems(models []masterItemModel) []domain.MasterItem {
	result := make([]domain.MasterItem, len(models))
	for i, model := range models {
		result[i] = model.toDomain()
	}
	return result
}

var _ domain.ItemRepository = (*ItemRepository)(nil)
