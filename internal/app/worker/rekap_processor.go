// Paket worker memuat pemrosesan asinkron event skor dari antrean Redis.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/antonprafanto/MRLKS/internal/app/scoring"
	"github.com/antonprafanto/MRLKS/internal/domain"
	"github.com/antonprafanto/MRLKS/internal/platform/metrics"
)

// Umur snapshot yang ditulis worker; lebih panjang dari TTL sisi baca karena
// worker menyegarkan snapshot setiap kali ada skor baru.
const snapshotTTL = 5 * time.Minute

// RekapProcessor menyusun ulang klasemen dari agregat di storage setiap kali
// sebuah skor tersimpan, lalu menulis snapshot-nya ke cache.
type RekapProcessor struct {
	agregat domain.AgregatRepository
	cache   domain.KlasemenCache
}

func NewRekapProcessor(agregat domain.AgregatRepository, cache domain.KlasemenCache) *RekapProcessor {
	return &RekapProcessor{
		agregat: agregat,
		cache:   cache,
	}
}

func (p *RekapProcessor) Process(ctx context.Context, event domain.SkorEvent) error {
	start := time.Now()

	totals, err := p.agregat.TotalSemuaPeserta(ctx)
	if err != nil {
		return fmt.Errorf("worker: muat total peserta untuk %s: %w", event.PesertaID, err)
	}

	entries := scoring.SusunKlasemen(totals)

	if p.cache != nil {
		if err := p.cache.Simpan(ctx, entries, snapshotTTL); err != nil {
			return fmt.Errorf("worker: simpan snapshot klasemen: %w", err)
		}
	}

	metrics.IncSkorEventProcessed()
	metrics.ObserveRekapDuration(time.Since(start).Seconds())

	return nil
}
