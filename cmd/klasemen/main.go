// CLI panitia: mencetak klasemen lomba langsung dari database, tanpa
// membutuhkan Redis maupun server HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/antonprafanto/MRLKS/internal/app/scoring"
	"github.com/antonprafanto/MRLKS/internal/platform/clock"
	"github.com/antonprafanto/MRLKS/internal/platform/config"
	"github.com/antonprafanto/MRLKS/internal/platform/kunci"
	"github.com/antonprafanto/MRLKS/internal/platform/logger"
	postgresstorage "github.com/antonprafanto/MRLKS/internal/platform/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("konfigurasi invalid", "err", err)
	}

	db, err := postgresstorage.Open(ctx, cfg.PostgresDSN())
	if err != nil {
		logger.Fatal("gagal terhubung ke postgres", "err", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("gagal mengambil sql.DB", "err", err)
	}
	defer sqlDB.Close()

	// CLI membaca langsung dari Postgres; cache, antrean, dan kunci tidak dipakai.
	servis := scoring.NewService(
		postgresstorage.NewPesertaRepository(db),
		postgresstorage.NewItemRepository(db),
		postgresstorage.NewSkorRepository(db),
		postgresstorage.NewAgregatRepository(db),
		postgresstorage.NewTxManager(db),
		kunci.Noop{},
		nil,
		nil,
		clock.NewSystemClock(),
		nil,
	)

	entries, err := servis.Klasemen(ctx)
	if err != nil {
		logger.Fatal("gagal menyusun klasemen", "err", err)
	}

	judul := color.New(color.FgCyan, color.Bold)
	judul.Println("KLASEMEN LOMBA ROBOTIKA")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Peringkat", "ID", "Nama", "Sekolah", "Total", "Persentase"})
	for _, entry := range entries {
		baris := []string{
			fmt.Sprintf("%d", entry.Peringkat),
			string(entry.PesertaID),
			entry.Nama,
			entry.Sekolah,
			fmt.Sprintf("%.2f", entry.TotalSkor),
			fmt.Sprintf("%.2f%%", entry.Persentase),
		}
		if entry.Peringkat == 1 {
			table.Rich(baris, []tablewriter.Colors{
				{tablewriter.Bold, tablewriter.FgGreenColor},
				{tablewriter.Bold, tablewriter.FgGreenColor},
				{tablewriter.Bold, tablewriter.FgGreenColor},
				{tablewriter.Bold, tablewriter.FgGreenColor},
				{tablewriter.Bold, tablewriter.FgGreenColor},
				{tablewriter.Bold, tablewriter.FgGreenColor},
			})
			continue
		}
		table.Append(baris)
	}
	table.Render()
}
