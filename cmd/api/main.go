// Binari utama API: memuat konfigurasi, menginisialisasi dependensi, dan
// menjalankan server HTTP penilaian.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/antonprafanto/MRLKS/internal/app/httpapi"
	"github.com/antonprafanto/MRLKS/internal/app/scoring"
	"github.com/antonprafanto/MRLKS/internal/domain"
	"github.com/antonprafanto/MRLKS/internal/platform/clock"
	"github.com/antonprafanto/MRLKS/internal/platform/config"
	"github.com/antonprafanto/MRLKS/internal/platform/health"
	"github.com/antonprafanto/MRLKS/internal/platform/ids"
	"github.com/antonprafanto/MRLKS/internal/platform/kunci"
	"github.com/antonprafanto/MRLKS/internal/platform/logger"
	"github.com/antonprafanto/MRLKS/internal/platform/migrations"
	postgresstorage "github.com/antonprafanto/MRLKS/internal/platform/storage/postgres"
	redisstorage "github.com/antonprafanto/MRLKS/internal/platform/storage/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("konfigurasi invalid", "err", err)
	}

	// Koneksi dipakai bersama sepanjang proses supaya pool dan readiness satu sumber.
	db, err := postgresstorage.Open(ctx, cfg.PostgresDSN())
	if err != nil {
		logger.Fatal("gagal terhubung ke postgres", "err", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("gagal mengambil sql.DB", "err", err)
	}
	defer sqlDB.Close()

	if cfg.AutoMigrate {
		// Migrasi otomatis hanya jika diaktifkan, menghindari kejutan di produksi.
		if err := migrations.Run(db); err != nil {
			logger.Fatal("migrasi otomatis gagal", "err", err)
		}
	}

	// Redis memegang antrean event, cache klasemen, dan kunci agregat.
	redisClient, err := redisstorage.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("gagal terhubung ke redis", "err", err)
	}
	defer redisClient.Close()

	pesertaRepo := postgresstorage.NewPesertaRepository(db)
	itemRepo := postgresstorage.NewItemRepository(db)
	skorRepo := postgresstorage.NewSkorRepository(db)
	agregatRepo := postgresstorage.NewAgregatRepository(db)
	txManager := postgresstorage.NewTxManager(db)
	cache := redisstorage.NewKlasemenCache(redisClient, cfg.KlasemenCacheKey)
	antrean := redisstorage.NewAntrean(redisClient, cfg.AntreanKey)
	clockSystem := clock.NewSystemClock()
	idGen := ids.NewGenerator()

	var mutex domain.Mutex = kunci.Noop{}
	if cfg.KunciEnabled {
		timeout := time.Duration(cfg.KunciTimeoutDetik) * time.Second
		mutex = kunci.NewRedisKunci(redisClient, cfg.KunciPrefix+":", timeout)
	}

	// Service menggabungkan repositori, transaksi, dan kunci menjadi mesin penilaian.
	servis := scoring.NewService(
		pesertaRepo,
		itemRepo,
		skorRepo,
		agregatRepo,
		txManager,
		mutex,
		cache,
		antrean,
		clockSystem,
		idGen,
	)

	mux := http.NewServeMux()
	checker := health.NewChecker(sqlDB, redisClient)

	// HTTP mengekspos API, health check, dan metrik yang dikumpulkan Prometheus.
	api := httpapi.New(servis, logger.L())
	api.Register(mux)
	mux.HandleFunc("/readyz", checker.ReadyHandler())
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info("api mendengarkan", "addr", cfg.HTTPAddress)
	if err := http.ListenAndServe(cfg.HTTPAddress, mux); err != nil {
		logger.Fatal("server berhenti dengan error", "err", err)
	}
}
