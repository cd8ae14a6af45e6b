package domain

import (
	"time"
)

type (
	PesertaID string
	ItemCode  string
	Kategori  string
	Hari      string
	Metode    string
)

const (
	MetodeJudgment    Metode = "judgment"
	MetodeMeasurement Metode = "measurement"
)

const (
	HariC1 Hari = "C1"
	HariC2 Hari = "C2"
	HariC3 Hari = "C3"
)

const (
	KategoriA  Kategori = "A"
	KategoriB  Kategori = "B"
	KategoriC  Kategori = "C"
	KategoriD  Kategori = "D"
	KategoriE1 Kategori = "E1"
	KategoriE2 Kategori = "E2"
	KategoriF1 Kategori = "F1"
	KategoriF2 Kategori = "F2"
)

// SemuaKategori dipakai untuk iterasi deterministik (urutan sama dengan rubrik penilaian).
var SemuaKategori = []Kategori{
	KategoriA, KategoriB, KategoriC, KategoriD,
	KategoriE1, KategoriE2, KategoriF1, KategoriF2,
}

// Peserta adalah tim yang berlomba. ID ditentukan panitia, bukan auto-generate.
type Peserta struct {
	ID        PesertaID `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	Nama      string    `gorm:"column:nama;type:varchar(100);not null" json:"nama"`
	Sekolah   string    `gorm:"column:sekolah;type:text" json:"sekolah"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// MasterItem adalah definisi item penilaian. Katalog bersifat read-only saat lomba berjalan.
type MasterItem struct {
	ItemCode    ItemCode `gorm:"column:item_code;type:varchar(10);primaryKey" json:"item_code"`
	Kategori    Kategori `gorm:"column:kategori;type:varchar(5);not null;index" json:"kategori"`
	SubKategori string   `gorm:"column:sub_kategori;type:text" json:"sub_kategori"`
	Deskripsi   string   `gorm:"column:deskripsi;type:text" json:"deskripsi"`
	Metode      Metode   `gorm:"column:metode;type:varchar(20);not null" json:"metode"`
	Bobot       int      `gorm:"column:bobot;not null" json:"bobot"`
	Hari        Hari     `gorm:"column:hari;type:varchar(2);not null;index" json:"hari"`
	MaxScore    float64  `gorm:"column:max_score;not null" json:"max_score"`
}

// JudgmentScore menyimpan penilaian tiga juri untuk satu item.
// Pasangan (peserta_id, item_code) unik; pengiriman ulang menimpa baris yang sama.
type JudgmentScore struct {
	ID        string    `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	PesertaID PesertaID `gorm:"column:peserta_id;type:varchar(50);not null;uniqueIndex:idx_judgment_peserta_item,priority:1" json:"peserta_id"`
	ItemCode  ItemCode  `gorm:"column:item_code;type:varchar(10);not null;uniqueIndex:idx_judgment_peserta_item,priority:2" json:"item_code"`
	Hari      Hari      `gorm:"column:hari;type:varchar(2);not null" json:"hari"`
	Juri1     int       `gorm:"column:juri_1;not null" json:"juri_1"`
	Juri2     int       `gorm:"column:juri_2;not null" json:"juri_2"`
	Juri3     int       `gorm:"column:juri_3;not null" json:"juri_3"`
	RataRata  float64   `gorm:"column:rata_rata;not null" json:"rata_rata"`
	Bobot     int       `gorm:"column:bobot;not null" json:"bobot"`
	SkorFinal float64   `gorm:"column:skor_final;not null" json:"skor_final"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// MeasurementScore menyimpan hasil ukur objektif (0 atau 1) untuk satu item.
type MeasurementScore struct {
	ID        string    `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	PesertaID PesertaID `gorm:"column:peserta_id;type:varchar(50);not null;uniqueIndex:idx_measurement_peserta_item,priority:1" json:"peserta_id"`
	ItemCode  ItemCode  `gorm:"column:item_code;type:varchar(10);not null;uniqueIndex:idx_measurement_peserta_item,priority:2" json:"item_code"`
	Hari      Hari      `gorm:"column:hari;type:varchar(2);not null" json:"hari"`
	NilaiUkur int       `gorm:"column:nilai_ukur;not null" json:"nilai_ukur"`
	Bobot     int       `gorm:"column:bobot;not null" json:"bobot"`
	SkorFinal float64   `gorm:"column:skor_final;not null" json:"skor_final"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// MainScore adalah agregat per (peserta, kategori). Nilainya selalu hasil
// penjumlahan ulang seluruh skor_final item pada kategori tersebut.
type MainScore struct {
	ID            string    `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	PesertaID     PesertaID `gorm:"column:peserta_id;type:varchar(50);not null;uniqueIndex:idx_main_peserta_kategori,priority:1" json:"peserta_id"`
	PesertaNama   string    `gorm:"column:peserta_name;type:varchar(100)" json:"peserta_name"`
	Kategori      Kategori  `gorm:"column:kategori;type:varchar(5);not null;uniqueIndex:idx_main_peserta_kategori,priority:2" json:"kategori"`
	Hari          Hari      `gorm:"column:hari;type:varchar(2);not null" json:"hari"`
	SkorDiperoleh float64   `gorm:"column:skor_diperoleh;not null" json:"skor_diperoleh"`
	SkorMaksimal  float64   `gorm:"column:skor_maksimal;not null" json:"skor_maksimal"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// RankingEntry adalah satu baris klasemen; tidak dipersist, selalu diturunkan.
type RankingEntry struct {
	PesertaID  PesertaID `json:"peserta_id"`
	Nama       string    `json:"nama"`
	Sekolah    string    `json:"sekolah"`
	TotalSkor  float64   `json:"total_skor"`
	MaxTotal   float64   `json:"max_total"`
	Persentase float64   `json:"persentase"`
	Peringkat  int       `json:"peringkat"`
}

// PesertaTotal adalah hasil LEFT JOIN peserta × main_score: peserta tanpa
// skor tetap muncul dengan total 0.
type PesertaTotal struct {
	PesertaID PesertaID `json:"peserta_id"`
	Nama      string    `json:"nama"`
	Sekolah   string    `json:"sekolah"`
	TotalSkor float64   `json:"total_skor"`
}

// SkorHariEntry adalah satu baris agregat kategori milik seorang peserta pada
// satu hari penilaian; dipakai layar rekap harian lintas peserta.
type SkorHariEntry struct {
	PesertaID     PesertaID `json:"peserta_id"`
	Nama          string    `json:"nama"`
	Sekolah       string    `json:"sekolah"`
	Kategori      Kategori  `json:"kategori"`
	SkorDiperoleh float64   `json:"skor_diperoleh"`
	SkorMaksimal  float64   `json:"skor_maksimal"`
}

// RekapHari merangkum agregat kategori per hari penilaian.
type RekapHari struct {
	Hari         Hari    `json:"hari"`
	TotalSkor    float64 `json:"total_skor"`
	SkorMaksimal float64 `json:"skor_maksimal"`
}

// RincianPeserta adalah proyeksi baca: agregat per kategori plus rekap per hari.
type RincianPeserta struct {
	Peserta    Peserta     `json:"peserta"`
	Kategori   []MainScore `json:"kategori"`
	PerHari    []RekapHari `json:"per_hari"`
	Total      float64     `json:"total_skor"`
	MaxTotal   float64     `json:"max_total"`
	Persentase float64     `json:"persentase"`
}

// SkorPeserta mengembalikan catatan mentah kedua metode untuk satu peserta.
type SkorPeserta struct {
	Judgment    []JudgmentScore    `json:"judgment"`
	Measurement []MeasurementScore `json:"measurement"`
}

// HasilSkor adalah keluaran pencatatan skor. RataRata hanya terisi untuk judgment.
type HasilSkor struct {
	ItemCode  ItemCode `json:"item_code"`
	Kategori  Kategori `json:"kategori"`
	RataRata  float64  `json:"rata_rata,omitempty"`
	SkorFinal float64  `json:"skor_final"`
}

// SkorEvent dipublikasikan setelah sebuah skor tersimpan; worker memakainya
// untuk menyegarkan snapshot klasemen.
type SkorEvent struct {
	PesertaID   PesertaID `json:"peserta_id"`
	ItemCode    ItemCode  `json:"item_code"`
	Kategori    Kategori  `json:"kategori"`
	Hari        Hari      `json:"hari"`
	SkorFinal   float64   `json:"skor_final"`
	DicatatPada time.Time `json:"dicatat_pada"`
}

func (Peserta) TableName() string { return "peserta" }

func (MasterItem) TableName() string { return "master_items" }

func (JudgmentScore) TableName() string { return "judgment_scores" }

func (MeasurementScore) TableName() string { return "measurement_scores" }

func (MainScore) TableName() string { return "main_score" }
