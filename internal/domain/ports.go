package domain

import (
	"context"
	"time"
)

type PesertaRepository interface {
	Create(ctx context.Context, p Peserta) error
	Update(ctx context.Context, p Peserta) error
	FindByID(ctx context.Context, id PesertaID) (Peserta, error)
	ListAll(ctx context.Context) ([]Peserta, error)
	Search(ctx context.Context, kataKunci string) ([]Peserta, error)
	Delete(ctx context.Context, id PesertaID) error
	HasScores(ctx context.Context, id PesertaID) (bool, error)
}

type ItemRepository interface {
	FindByCode(ctx context.Context, code ItemCode) (MasterItem, error)
	ListAll(ctx context.Context) ([]MasterItem, error)
	ListByHari(ctx context.Context, hari Hari) ([]MasterItem, error)
	MaxSkorKategori(ctx context.Context, kategori Kategori) (float64, error)
}

type SkorRepository interface {
	FindJudgment(ctx context.Context, pesertaID PesertaID, code ItemCode) (JudgmentScore, error)
	UpsertJudgment(ctx context.Context, skor JudgmentScore) error
	FindMeasurement(ctx context.Context, pesertaID PesertaID, code ItemCode) (MeasurementScore, error)
	UpsertMeasurement(ctx context.Context, skor MeasurementScore) error
	// SumSkorFinal menjumlahkan skor_final kedua tabel (judgment + measurement)
	// untuk satu peserta pada satu kategori, dibaca segar dari storage.
	SumSkorFinal(ctx context.Context, pesertaID PesertaID, kategori Kategori) (float64, error)
	ListByPeserta(ctx context.Context, pesertaID PesertaID) (SkorPeserta, error)
}

type AgregatRepository interface {
	Find(ctx context.Context, pesertaID PesertaID, kategori Kategori) (MainScore, error)
	Upsert(ctx context.Context, skor MainScore) error
	ListByPeserta(ctx context.Context, pesertaID PesertaID) ([]MainScore, error)
	RekapPerHari(ctx context.Context, pesertaID PesertaID) ([]RekapHari, error)
	ListPerHari(ctx context.Context, hari Hari) ([]SkorHariEntry, error)
	TotalSemuaPeserta(ctx context.Context) ([]PesertaTotal, error)
}

// Transactor menjalankan fn dalam satu transaksi storage; ctx yang diterima fn
// membawa handle transaksi sehingga repositori ikut serta secara otomatis.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mutex menyerialkan region kritis per kunci (dipakai per peserta+kategori).
type Mutex interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type KlasemenCache interface {
	Simpan(ctx context.Context, entries []RankingEntry, ttl time.Duration) error
	Ambil(ctx context.Context) ([]RankingEntry, bool, error)
	Hapus(ctx context.Context) error
}

type Antrean interface {
	PublikasiEvent(ctx context.Context, event SkorEvent) error
	KonsumsiEvent(ctx context.Context, handler func(context.Context, SkorEvent) error) error
}

type Clock interface {
	Sekarang() time.Time
}

// ScoringService adalah kontrak lengkap yang diekspos ke transport HTTP dan CLI.
type ScoringService interface {
	SimpanSkorJudgment(ctx context.Context, input SkorJudgmentInput) (HasilSkor, error)
	SimpanSkorMeasurement(ctx context.Context, input SkorMeasurementInput) (HasilSkor, error)
	MasterItems(ctx context.Context, hari Hari) ([]MasterItem, error)
	SkorPeserta(ctx context.Context, id PesertaID) (SkorPeserta, error)
	SkorPerHari(ctx context.Context, hari Hari) ([]SkorHariEntry, error)
	Klasemen(ctx context.Context) ([]RankingEntry, error)
	Rincian(ctx context.Context, id PesertaID) (RincianPeserta, error)

	DaftarPeserta(ctx context.Context, p Peserta) (Peserta, error)
	UbahPeserta(ctx context.Context, p Peserta) (Peserta, error)
	HapusPeserta(ctx context.Context, id PesertaID) error
	GetPeserta(ctx context.Context, id PesertaID) (Peserta, error)
	ListPeserta(ctx context.Context) ([]Peserta, error)
	CariPeserta(ctx context.Context, kataKunci string) ([]Peserta, error)
	PesertaDenganSkor(ctx context.Context) ([]PesertaTotal, error)
}

// SkorJudgmentInput adalah payload mentah penilaian tiga juri.
type SkorJudgmentInput struct {
	PesertaID PesertaID
	ItemCode  ItemCode
	Hari      Hari
	Juri1     int
	Juri2     int
	Juri3     int
	Bobot     int
}

// SkorMeasurementInput adalah payload mentah penilaian objektif.
type SkorMeasurementInput struct {
	PesertaID PesertaID
	ItemCode  ItemCode
	Hari      Hari
	NilaiUkur int
	Bobot     int
}
