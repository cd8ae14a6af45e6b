package scoring

import (
	"fmt"
	"sort"

	"github.com/antonprafanto/MRLKS/internal/domain"
)

// MaxTotalSkor adalah pembagi persentase klasemen. Rubrik lomba menetapkan
// angka 100 untuk seluruh kompetisi; nilainya sengaja tidak diturunkan dari
// penjumlahan max_score katalog.
const MaxTotalSkor = 100.0

// SusunKlasemen mengurutkan total menurun dan memberi peringkat berurutan
// (1, 2, 3, ... tanpa peringkat ganda). Nilai seri dipecah dengan id peserta
// menaik supaya hasilnya selalu deterministik.
func SusunKlasemen(totals []domain.PesertaTotal) []domain.RankingEntry {
	urut := make([]domain.PesertaTotal, len(totals))
	copy(urut, totals)
	sort.Slice(urut, func(i, j int) bool {
		if urut[i].TotalSkor != urut[j].TotalSkor {
			return urut[i].TotalSkor > urut[j].TotalSkor
		}
		return urut[i].PesertaID < urut[j].PesertaID
	})

	entries := make([]domain.RankingEntry, len(urut))
	for i, total := range urut {
		entries[i] = domain.RankingEntry{
			PesertaID:  total.PesertaID,
			Nama:       total.Nama,
			Sekolah:    total.Sekolah,
			TotalSkor:  total.TotalSkor,
			MaxTotal:   MaxTotalSkor,
			Persentase: round2(total.TotalSkor / MaxTotalSkor * 100),
			Peringkat:  i + 1,
		}
	}
	return entries
}

// MutexKeyAgregat membentuk kunci serialisasi tulis per (peserta, kategori).
func MutexKeyAgregat(pesertaID domain.PesertaID, kategori domain.Kategori) string {
	return fmt.Sprintf("agregat:%s:%s", pesertaID, kategori)
}
