package kunci

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupKunci(t *testing.T) (*RedisKunci, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
	})
	return NewRedisKunci(client, "kunci:", 10*time.Second), mr
}

func TestRedisKunci_Acquire_KetikaBebas_HarusLangsungDapat(t *testing.T) {
	kunci, mr := setupKunci(t)

	release, err := kunci.Acquire(context.Background(), "agregat:tim-1:B")
	if err != nil {
		t.Fatalf("akuisisi pertama harap berhasil: %v", err)
	}

	if !mr.Exists("kunci:agregat:tim-1:B") {
		t.Fatal("kunci harap tersimpan di redis")
	}

	release()
	if mr.Exists("kunci:agregat:tim-1:B") {
		t.Fatal("kunci harap terhapus setelah release")
	}
}

func TestRedisKunci_Acquire_KetikaSedangDipegang_HarusMenungguSampaiDilepas(t *testing.T) {
	kunci, _ := setupKunci(t)

	release, err := kunci.Acquire(context.Background(), "agregat:tim-1:B")
	if err != nil {
		t.Fatalf("akuisisi pertama harap berhasil: %v", err)
	}

	selesai := make(chan struct{})
	go func() {
		defer close(selesai)
		release2, err := kunci.Acquire(context.Background(), "agregat:tim-1:B")
		if err != nil {
			t.Errorf("akuisisi kedua harap berhasil setelah rilis: %v", err)
			return
		}
		release2()
	}()

	select {
	case <-selesai:
		t.Fatal("akuisisi kedua tidak boleh lolos selagi kunci dipegang")
	case <-time.After(150 * time.Millisecond):
	}

	release()

	select {
	case <-selesai:
	case <-time.After(2 * time.Second):
		t.Fatal("akuisisi kedua harap lolos setelah kunci dilepas")
	}
}

func TestRedisKunci_Acquire_KetikaKonteksBatal_HarusBerhentiMenunggu(t *testing.T) {
	kunci, _ := setupKunci(t)

	release, err := kunci.Acquire(context.Background(), "agregat:tim-1:B")
	if err != nil {
		t.Fatalf("akuisisi pertama harap berhasil: %v", err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if _, err := kunci.Acquire(ctx, "agregat:tim-1:B"); err == nil {
		t.Fatal("akuisisi harap gagal saat konteks habis")
	}
}

func TestRedisKunci_Release_KetikaKunciSudahDirebutProsesLain_TidakBolehMenghapus(t *testing.T) {
	kunci, mr := setupKunci(t)

	release, err := kunci.Acquire(context.Background(), "agregat:tim-1:B")
	if err != nil {
		t.Fatalf("akuisisi harap berhasil: %v", err)
	}

	// Simulasi kedaluwarsa: proses lain merebut kunci dengan token berbeda.
	mr.Set("kunci:agregat:tim-1:B", "token-proses-lain")

	release()
	if nilai, _ := mr.Get("kunci:agregat:tim-1:B"); nilai != "token-proses-lain" {
		t.Fatalf("release tidak boleh menghapus kunci milik proses lain, dapat %q", nilai)
	}
}

func TestNoop_Acquire_HarusSelaluLolos(t *testing.T) {
	release, err := Noop{}.Acquire(context.Background(), "apa-saja")
	if err != nil {
		t.Fatalf("noop harap tanpa error: %v", err)
	}
	release()
}
