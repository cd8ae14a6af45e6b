package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonprafanto/MRLKS/internal/domain"
)

func TestItemRepository_FindByCode_KetikaAda_HarusMengembalikanItem(t *testing.T) {
	db := setupPostgres(t)
	repo := NewItemRepository(db)

	seedItems(t, db,
		domain.MasterItem{ItemCode: "A1", Kategori: domain.KategoriA, Metode: domain.MetodeMeasurement, Bobot: 2, Hari: domain.HariC1, MaxScore: 2},
	)

	item, err := repo.FindByCode(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, domain.KategoriA, item.Kategori)
	assert.Equal(t, domain.MetodeMeasurement, item.Metode)
	assert.Equal(t, 2, item.Bobot)
}

func TestItemRepository_FindByCode_KetikaTidakAda_HarusErrNotFound(t *testing.T) {
	db := setupPostgres(t)
	repo := NewItemRepository(db)

	_, err := repo.FindByCode(context.Background(), "Z9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemRepository_ListByHari_HarusMemfilterHari(t *testing.T) {
	db := setupPostgres(t)
	repo := NewItemRepository(db)

	seedItems(t, db,
		domain.MasterItem{ItemCode: "A1", Kategori: domain.KategoriA, Metode: domain.MetodeMeasurement, Bobot: 2, Hari: domain.HariC1, MaxScore: 2},
		domain.MasterItem{ItemCode: "B1", Kategori: domain.KategoriB, Metode: domain.MetodeJudgment, Bobot: 1, Hari: domain.HariC1, MaxScore: 3},
		domain.MasterItem{ItemCode: "A2", Kategori: domain.KategoriA, Metode: domain.MetodeMeasurement, Bobot: 2, Hari: domain.HariC2, MaxScore: 2},
	)

	items, err := repo.ListByHari(context.Background(), domain.HariC1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.ItemCode("A1"), items[0].ItemCode)
	assert.Equal(t, domain.ItemCode("B1"), items[1].ItemCode)

	semua, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, semua, 3)
}

func TestItemRepository_MaxSkorKategori_HarusMenjumlahkanMaxScore(t *testing.T) {
	db := setupPostgres(t)
	repo := NewItemRepository(db)

	seedItems(t, db,
		domain.MasterItem{ItemCode: "B1", Kategori: domain.KategoriB, Metode: domain.MetodeJudgment, Bobot: 1, Hari: domain.HariC1, MaxScore: 3},
		domain.MasterItem{ItemCode: "B2", Kategori: domain.KategoriB, Metode: domain.MetodeJudgment, Bobot: 1, Hari: domain.HariC1, MaxScore: 3},
		domain.MasterItem{ItemCode: "B3", Kategori: domain.KategoriB, Metode: domain.MetodeMeasurement, Bobot: 1, Hari: domain.HariC1, MaxScore: 1},
		domain.MasterItem{ItemCode: "A1", Kategori: domain.KategoriA, Metode: domain.MetodeMeasurement, Bobot: 2, Hari: domain.HariC1, MaxScore: 2},
	)

	maks, err := repo.MaxSkorKategori(context.Background(), domain.KategoriB)
	require.NoError(t, err)
	assert.Equal(t, 7.0, maks)
}

func TestItemRepository_MaxSkorKategori_KetikaKategoriKosong_HarusNol(t *testing.T) {
	db := setupPostgres(t)
	repo := NewItemRepository(db)

	maks, err := repo.MaxSkorKategori(context.Background(), domain.KategoriF2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, maks)
}
