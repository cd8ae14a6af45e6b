// Paket scoring memuat aturan penilaian lomba: kalkulasi skor item, validasi
// struktur hari/item, agregasi per kategori, dan penyusunan klasemen.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/antonprafanto/MRLKS/internal/domain"
	"github.com/antonprafanto/MRLKS/internal/platform/ids"
	"github.com/antonprafanto/MRLKS/internal/platform/metrics"
)

var (
	ErrInputInvalid          = errors.New("input penilaian tidak valid")
	ErrStrukturInvalid       = errors.New("struktur penilaian tidak valid")
	ErrPesertaInvalid        = errors.New("data peserta tidak valid")
	ErrPesertaTidakDitemukan = errors.New("peserta tidak ditemukan")
	ErrItemTidakDitemukan    = errors.New("item penilaian tidak ditemukan")
	ErrPesertaSudahAda       = errors.New("peserta dengan id tersebut sudah ada")
	ErrPesertaMemilikiSkor   = errors.New("peserta masih memiliki data penilaian")
)

// Snapshot klasemen kedaluwarsa cepat; worker menyegarkannya setiap ada skor baru.
const klasemenTTL = 30 * time.Second

// Service menggabungkan katalog, kalkulator, dan repositori skor menjadi satu
// mesin agregasi. Setiap tulis skor menimpa baris (peserta, item) lalu
// menjumlah ulang agregat kategorinya dalam satu transaksi.
type Service struct {
	peserta domain.PesertaRepository
	items   domain.ItemRepository
	skor    domain.SkorRepository
	agregat domain.AgregatRepository
	tx      domain.Transactor
	mutex   domain.Mutex
	cache   domain.KlasemenCache
	antrean domain.Antrean
	clock   domain.Clock
	ids     *ids.Generator
}

func NewService(
	peserta domain.PesertaRepository,
	items domain.ItemRepository,
	skor domain.SkorRepository,
	agregat domain.AgregatRepository,
	tx domain.Transactor,
	mutex domain.Mutex,
	cache domain.KlasemenCache,
	antrean domain.Antrean,
	clock domain.Clock,
	idsGen *ids.Generator,
) *Service {
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	return &Service{
		peserta: peserta,
		items:   items,
		skor:    skor,
		agregat: agregat,
		tx:      tx,
		mutex:   mutex,
		cache:   cache,
		antrean: antrean,
		clock:   clock,
		ids:     idsGen,
	}
}

// SimpanSkorJudgment memvalidasi struktur dan nilai juri, lalu menimpa catatan
// (peserta, item) dan menjumlah ulang agregat kategorinya secara atomik.
func (s *Service) SimpanSkorJudgment(ctx context.Context, input domain.SkorJudgmentInput) (domain.HasilSkor, error) {
	peserta, item, err := s.periksaStruktur(ctx, input.PesertaID, input.ItemCode, input.Hari)
	if err != nil {
		return domain.HasilSkor{}, err
	}

	rataRata, skorFinal, err := HitungSkorJudgment(input.Juri1, input.Juri2, input.Juri3, input.Bobot)
	if err != nil {
		return domain.HasilSkor{}, err
	}

	release, err := s.mutex.Acquire(ctx, MutexKeyAgregat(peserta.ID, item.Kategori))
	if err != nil {
		return domain.HasilSkor{}, err
	}
	defer release()

	now := s.clock.Sekarang()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		record, findErr := s.skor.FindJudgment(ctx, peserta.ID, item.ItemCode)
		switch {
		case findErr == nil:
			// Pengiriman ulang: kunci (peserta, item) dipertahankan, hari ikut
			// ditimpa mengikuti submission terakhir.
		case errors.Is(findErr, domain.ErrNotFound):
			record = domain.JudgmentScore{
				ID:        s.ids.New(),
				PesertaID: peserta.ID,
				ItemCode:  item.ItemCode,
				CreatedAt: now,
			}
		default:
			return findErr
		}

		record.Hari = input.Hari
		record.Juri1 = input.Juri1
		record.Juri2 = input.Juri2
		record.Juri3 = input.Juri3
		record.RataRata = rataRata
		record.Bobot = input.Bobot
		record.SkorFinal = skorFinal
		record.UpdatedAt = now

		if upErr := s.skor.UpsertJudgment(ctx, record); upErr != nil {
			return upErr
		}
		return s.rekomputasiAgregat(ctx, peserta, item, now)
	})
	if err != nil {
		return domain.HasilSkor{}, err
	}

	if err := s.umumkanSkor(ctx, peserta.ID, item, skorFinal, now); err != nil {
		return domain.HasilSkor{}, err
	}

	return domain.HasilSkor{
		ItemCode:  item.ItemCode,
		Kategori:  item.Kategori,
		RataRata:  rataRata,
		SkorFinal: skorFinal,
	}, nil
}

// SimpanSkorMeasurement mencatat hasil ukur biner dengan alur yang sama
// dengan judgment: validasi, timpa catatan, jumlah ulang agregat.
func (s *Service) SimpanSkorMeasurement(ctx context.Context, input domain.SkorMeasurementInput) (domain.HasilSkor, error) {
	peserta, item, err := s.periksaStruktur(ctx, input.PesertaID, input.ItemCode, input.Hari)
	if err != nil {
		return domain.HasilSkor{}, err
	}

	skorFinal, err := HitungSkorMeasurement(input.NilaiUkur, input.Bobot)
	if err != nil {
		return domain.HasilSkor{}, err
	}

	release, err := s.mutex.Acquire(ctx, MutexKeyAgregat(peserta.ID, item.Kategori))
	if err != nil {
		return domain.HasilSkor{}, err
	}
	defer release()

	now := s.clock.Sekarang()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		record, findErr := s.skor.FindMeasurement(ctx, peserta.ID, item.ItemCode)
		switch {
		case findErr == nil:
		case errors.Is(findErr, domain.ErrNotFound):
			record = domain.MeasurementScore{
				ID:        s.ids.New(),
				PesertaID: peserta.ID,
				ItemCode:  item.ItemCode,
				CreatedAt: now,
			}
		default:
			return findErr
		}

		record.Hari = input.Hari
		record.NilaiUkur = input.NilaiUkur
		record.Bobot = input.Bobot
		record.SkorFinal = skorFinal
		record.UpdatedAt = now

		if upErr := s.skor.UpsertMeasurement(ctx, record); upErr != nil {
			return upErr
		}
		return s.rekomputasiAgregat(ctx, peserta, item, now)
	})
	if err != nil {
		return domain.HasilSkor{}, err
	}

	if err := s.umumkanSkor(ctx, peserta.ID, item, skorFinal, now); err != nil {
		return domain.HasilSkor{}, err
	}

	return domain.HasilSkor{
		ItemCode:  item.ItemCode,
		Kategori:  item.Kategori,
		SkorFinal: skorFinal,
	}, nil
}

// periksaStruktur menjalankan prasyarat setiap tulis skor: peserta ada,
// pasangan item/hari sah, dan item terdaftar di katalog.
func (s *Service) periksaStruktur(ctx context.Context, pesertaID domain.PesertaID, code domain.ItemCode, hari domain.Hari) (domain.Peserta, domain.MasterItem, error) {
	peserta, err := s.peserta.FindByID(ctx, pesertaID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Peserta{}, domain.MasterItem{}, ErrPesertaTidakDitemukan
		}
		return domain.Peserta{}, domain.MasterItem{}, err
	}

	if !ValidStruktur(code, hari) {
		return domain.Peserta{}, domain.MasterItem{}, fmt.Errorf("%w: item %s tidak dinilai pada hari %s", ErrStrukturInvalid, code, hari)
	}

	item, err := s.items.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Peserta{}, domain.MasterItem{}, ErrItemTidakDitemukan
		}
		return domain.Peserta{}, domain.MasterItem{}, err
	}

	return peserta, item, nil
}

// rekomputasiAgregat menjumlah ulang seluruh skor_final kategori dari storage
// (bukan delta inkremental) lalu menimpa baris main_score terkait.
func (s *Service) rekomputasiAgregat(ctx context.Context, peserta domain.Peserta, item domain.MasterItem, now time.Time) error {
	total, err := s.skor.SumSkorFinal(ctx, peserta.ID, item.Kategori)
	if err != nil {
		return err
	}

	maksimal, err := s.items.MaxSkorKategori(ctx, item.Kategori)
	if err != nil {
		return err
	}

	agregat, err := s.agregat.Find(ctx, peserta.ID, item.Kategori)
	switch {
	case err == nil:
		// Hari agregat dipertahankan dari insert pertama; hanya nilai yang berubah.
	case errors.Is(err, domain.ErrNotFound):
		agregat = domain.MainScore{
			ID:        s.ids.New(),
			PesertaID: peserta.ID,
			Kategori:  item.Kategori,
			Hari:      item.Hari,
			CreatedAt: now,
		}
	default:
		return err
	}

	agregat.PesertaNama = peserta.Nama
	agregat.SkorDiperoleh = total
	agregat.SkorMaksimal = maksimal
	agregat.UpdatedAt = now

	return s.agregat.Upsert(ctx, agregat)
}

// umumkanSkor membatalkan snapshot klasemen dan memberi tahu worker bahwa
// ada skor baru. Dijalankan setelah transaksi commit.
func (s *Service) umumkanSkor(ctx context.Context, pesertaID domain.PesertaID, item domain.MasterItem, skorFinal float64, now time.Time) error {
	if s.cache != nil {
		if err := s.cache.Hapus(ctx); err != nil {
			return err
		}
	}
	if s.antrean != nil {
		return s.antrean.PublikasiEvent(ctx, domain.SkorEvent{
			PesertaID:   pesertaID,
			ItemCode:    item.ItemCode,
			Kategori:    item.Kategori,
			Hari:        item.Hari,
			SkorFinal:   skorFinal,
			DicatatPada: now,
		})
	}
	return nil
}

// MasterItems mengembalikan katalog, seluruhnya atau difilter per hari.
func (s *Service) MasterItems(ctx context.Context, hari domain.Hari) ([]domain.MasterItem, error) {
	if hari == "" {
		return s.items.ListAll(ctx)
	}
	return s.items.ListByHari(ctx, hari)
}

// SkorPeserta mengembalikan catatan mentah kedua metode untuk satu peserta.
func (s *Service) SkorPeserta(ctx context.Context, id domain.PesertaID) (domain.SkorPeserta, error) {
	if _, err := s.peserta.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.SkorPeserta{}, ErrPesertaTidakDitemukan
		}
		return domain.SkorPeserta{}, err
	}
	return s.skor.ListByPeserta(ctx, id)
}

// SkorPerHari mengembalikan agregat kategori seluruh peserta pada satu hari
// penilaian, diurutkan nama peserta lalu kategori.
func (s *Service) SkorPerHari(ctx context.Context, hari domain.Hari) ([]domain.SkorHariEntry, error) {
	if _, ok := hariMapping[hari]; !ok {
		return nil, fmt.Errorf("%w: hari %s tak dikenal", ErrStrukturInvalid, hari)
	}
	return s.agregat.ListPerHari(ctx, hari)
}

// Klasemen membaca snapshot cache bila masih segar; selain itu menyusun ulang
// dari agregat di storage. Peserta tanpa skor tetap masuk dengan total 0.
func (s *Service) Klasemen(ctx context.Context) ([]domain.RankingEntry, error) {
	if s.cache != nil {
		if entries, ok, err := s.cache.Ambil(ctx); err == nil && ok {
			metrics.ObserveKlasemenCache("hit")
			return entries, nil
		}
		metrics.ObserveKlasemenCache("miss")
	}

	totals, err := s.agregat.TotalSemuaPeserta(ctx)
	if err != nil {
		return nil, err
	}

	entries := SusunKlasemen(totals)
	if s.cache != nil {
		// Snapshot basi tidak fatal; pembacaan berikutnya menyusun ulang.
		_ = s.cache.Simpan(ctx, entries, klasemenTTL)
	}
	return entries, nil
}

// Rincian mengembalikan agregat per kategori plus rekap per hari penilaian.
func (s *Service) Rincian(ctx context.Context, id domain.PesertaID) (domain.RincianPeserta, error) {
	peserta, err := s.peserta.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.RincianPeserta{}, ErrPesertaTidakDitemukan
		}
		return domain.RincianPeserta{}, err
	}

	kategori, err := s.agregat.ListByPeserta(ctx, id)
	if err != nil {
		return domain.RincianPeserta{}, err
	}

	perHari, err := s.agregat.RekapPerHari(ctx, id)
	if err != nil {
		return domain.RincianPeserta{}, err
	}

	var total float64
	for _, agregat := range kategori {
		total += agregat.SkorDiperoleh
	}

	return domain.RincianPeserta{
		Peserta:    peserta,
		Kategori:   kategori,
		PerHari:    perHari,
		Total:      total,
		MaxTotal:   MaxTotalSkor,
		Persentase: round2(total / MaxTotalSkor * 100),
	}, nil
}

// DaftarPeserta mendaftarkan tim baru; id ditentukan panitia dan harus unik.
func (s *Service) DaftarPeserta(ctx context.Context, p domain.Peserta) (domain.Peserta, error) {
	if err := validasiPeserta(p); err != nil {
		return domain.Peserta{}, err
	}

	_, err := s.peserta.FindByID(ctx, p.ID)
	switch {
	case err == nil:
		return domain.Peserta{}, ErrPesertaSudahAda
	case errors.Is(err, domain.ErrNotFound):
	default:
		return domain.Peserta{}, err
	}

	now := s.clock.Sekarang()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.peserta.Create(ctx, p); err != nil {
		return domain.Peserta{}, err
	}
	return p, nil
}

func (s *Service) UbahPeserta(ctx context.Context, p domain.Peserta) (domain.Peserta, error) {
	if err := validasiPeserta(p); err != nil {
		return domain.Peserta{}, err
	}

	existing, err := s.peserta.FindByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Peserta{}, ErrPesertaTidakDitemukan
		}
		return domain.Peserta{}, err
	}

	existing.Nama = p.Nama
	existing.Sekolah = p.Sekolah
	existing.UpdatedAt = s.clock.Sekarang()
	if err := s.peserta.Update(ctx, existing); err != nil {
		return domain.Peserta{}, err
	}
	return existing, nil
}

// HapusPeserta menolak penghapusan selama peserta masih punya catatan skor
// di salah satu tabel penilaian.
func (s *Service) HapusPeserta(ctx context.Context, id domain.PesertaID) error {
	if _, err := s.peserta.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrPesertaTidakDitemukan
		}
		return err
	}

	punyaSkor, err := s.peserta.HasScores(ctx, id)
	if err != nil {
		return err
	}
	if punyaSkor {
		return ErrPesertaMemilikiSkor
	}

	return s.peserta.Delete(ctx, id)
}

func (s *Service) GetPeserta(ctx context.Context, id domain.PesertaID) (domain.Peserta, error) {
	peserta, err := s.peserta.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Peserta{}, ErrPesertaTidakDitemukan
		}
		return domain.Peserta{}, err
	}
	return peserta, nil
}

func (s *Service) ListPeserta(ctx context.Context) ([]domain.Peserta, error) {
	return s.peserta.ListAll(ctx)
}

func (s *Service) CariPeserta(ctx context.Context, kataKunci string) ([]domain.Peserta, error) {
	if kataKunci == "" {
		return nil, fmt.Errorf("%w: kata kunci pencarian kosong", ErrPesertaInvalid)
	}
	return s.peserta.Search(ctx, kataKunci)
}

// PesertaDenganSkor memakai LEFT JOIN yang sama dengan klasemen, diurutkan
// total menurun lalu nama, untuk layar rekap panitia.
func (s *Service) PesertaDenganSkor(ctx context.Context) ([]domain.PesertaTotal, error) {
	totals, err := s.agregat.TotalSemuaPeserta(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].TotalSkor != totals[j].TotalSkor {
			return totals[i].TotalSkor > totals[j].TotalSkor
		}
		return totals[i].Nama < totals[j].Nama
	})
	return totals, nil
}

func validasiPeserta(p domain.Peserta) error {
	if p.ID == "" || len(p.ID) > 50 {
		return fmt.Errorf("%w: id wajib diisi, maksimal 50 karakter", ErrPesertaInvalid)
	}
	if p.Nama == "" || len(p.Nama) > 100 {
		return fmt.Errorf("%w: nama wajib diisi, maksimal 100 karakter", ErrPesertaInvalid)
	}
	return nil
}

var _ domain.ScoringService = (*Service)(nil)
