// Worker asinkron yang mengonsumsi event skor dari antrean, menyusun ulang
// klasemen, dan mengekspos metrik.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/antonprafanto/MRLKS/internal/app/worker"
	"github.com/antonprafanto/MRLKS/internal/domain"
	"github.com/antonprafanto/MRLKS/internal/platform/config"
	"github.com/antonprafanto/MRLKS/internal/platform/health"
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

	// Worker memakai koneksi GORM yang sama dengan API agar migrasi dan model seragam.
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
		if err := migrations.Run(db); err != nil {
			logger.Fatal("migrasi otomatis gagal", "err", err)
		}
	}

	// Redis wajib di sini karena antrean dan cache klasemen hidup di instans yang sama.
	redisClient, err := redisstorage.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("gagal terhubung ke redis", "err", err)
	}
	defer redisClient.Close()

	antrean := redisstorage.NewAntrean(redisClient, cfg.AntreanKey)
	cache := redisstorage.NewKlasemenCache(redisClient, cfg.KlasemenCacheKey)
	checker := health.NewChecker(sqlDB, redisClient)

	if cfg.WorkerMetricsAddress != "" {
		go func() {
			// Metrik tetap terekspos selagi goroutine utama mengonsumsi antrean.
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/readyz", checker.ReadyHandler())
			logger.Info("worker metrics mendengarkan", "addr", cfg.WorkerMetricsAddress)
			if err := http.ListenAndServe(cfg.WorkerMetricsAddress, mux); err != nil {
				logger.Error("server metrics worker berhenti", "err", err)
			}
		}()
	}

	agregatRepo := postgresstorage.NewAgregatRepository(db)
	processor := worker.NewRekapProcessor(agregatRepo, cache)

	logger.Info("worker dimulai, menunggu event skor")
	err = antrean.KonsumsiEvent(ctx, func(ctx context.Context, event domain.SkorEvent) error {
		// Event diproses satu per satu mengikuti semantik antrean sederhana.
		if err := processor.Process(ctx, event); err != nil {
			logger.Error("gagal memproses event skor", "peserta", event.PesertaID, "item", event.ItemCode, "err", err)
		}
		return nil
	})

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		logger.Fatal("worker berhenti dengan error", "err", err)
	}

	logger.Info("worker selesai")
}
