package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonprafanto/MRLKS/internal/domain"
)

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
	})
	return client, mr
}

func TestKlasemenCache_SimpanDanAmbil_KetikaAdaSnapshot_HarusKembaliUtuh(t *testing.T) {
	client, _ := setupRedis(t)
	cache := NewKlasemenCache(client, "cache:klasemen")

	ctx := context.Background()
	entries := []domain.RankingEntry{
		{PesertaID: "tim-y", Nama: "Tim Y", TotalSkor: 95, MaxTotal: 100, Persentase: 95, Peringkat: 1},
		{PesertaID: "tim-x", Nama: "Tim X", TotalSkor: 80, MaxTotal: 100, Persentase: 80, Peringkat: 2},
	}

	require.NoError(t, cache.Simpan(ctx, entries, 30*time.Second))

	got, ok, err := cache.Ambil(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, domain.PesertaID("tim-y"), got[0].PesertaID)
	assert.Equal(t, 95.0, got[0].TotalSkor)
	assert.Equal(t, 2, got[1].Peringkat)
}

func TestKlasemenCache_Ambil_KetikaKosong_HarusMissTanpaError(t *testing.T) {
	client, _ := setupRedis(t)
	cache := NewKlasemenCache(client, "cache:klasemen")

	got, ok, err := cache.Ambil(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestKlasemenCache_Ambil_KetikaTTLLewat_HarusMiss(t *testing.T) {
	client, mr := setupRedis(t)
	cache := NewKlasemenCache(client, "cache:klasemen")

	ctx := context.Background()
	require.NoError(t, cache.Simpan(ctx, []domain.RankingEntry{{PesertaID: "tim-x"}}, 30*time.Second))

	mr.FastForward(31 * time.Second)

	_, ok, err := cache.Ambil(ctx)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestKlasemenCache_Hapus_HarusMembatalkanSnapshot(t *testing.T) {
	client, _ := setupRedis(t)
	cache := NewKlasemenCache(client, "cache:klasemen")

	ctx := context.Background()
	require.NoError(t, cache.Simpan(ctx, []domain.RankingEntry{{PesertaID: "tim-x"}}, time.Minute))
	require.NoError(t, cache.Hapus(ctx))

	_, ok, err := cache.Ambil(ctx)
	assert.NoError(t, err)
	assert.False(t, ok)
}
