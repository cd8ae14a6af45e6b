package migrations

import (
	"github.com/antonprafanto/MRLKS/internal/domain"
)

// judgment dinilai tiga juri skala 0-3, jadi max = 3 × bobot;
// measurement biner, max = bobot. Total max seluruh kategori = 100.
func judgment(code string, kategori domain.Kategori, sub, deskripsi string, bobot int, hari domain.Hari) domain.MasterItem {
	return domain.MasterItem{
		ItemCode:    domain.ItemCode(code),
		Kategori:    kategori,
		SubKategori: sub,
		Deskripsi:   deskripsi,
		Metode:      domain.MetodeJudgment,
		Bobot:       bobot,
		Hari:        hari,
		MaxScore:    float64(3 * bobot),
	}
}

func measurement(code string, kategori domain.Kategori, sub, deskripsi string, bobot int, hari domain.Hari) domain.MasterItem {
	return domain.MasterItem{
		ItemCode:    domain.ItemCode(code),
		Kategori:    kategori,
		SubKategori: sub,
		Deskripsi:   deskripsi,
		Metode:      domain.MetodeMeasurement,
		Bobot:       bobot,
		Hari:        hari,
		MaxScore:    float64(bobot),
	}
}

// SeedMasterItems mengembalikan katalog item penilaian MRLKS: 35 item,
// tiga hari penilaian, delapan kategori.
func SeedMasterItems() []domain.MasterItem {
	return []domain.MasterItem{
		// Hari C1 — manajemen kerja, komisioning, uji gerak, uji fungsi.
		measurement("A1", domain.KategoriA, "Manajemen Kerja", "Kedisiplinan dan keselamatan kerja hari pertama", 2, domain.HariC1),
		judgment("B1", domain.KategoriB, "Komisioning", "Kualitas desain dan perakitan mekanik robot", 1, domain.HariC1),
		judgment("B2", domain.KategoriB, "Komisioning", "Struktur dan dokumentasi program kendali", 1, domain.HariC1),
		measurement("B3", domain.KategoriB, "Komisioning", "Kalibrasi seluruh sensor berhasil", 1, domain.HariC1),
		measurement("B4", domain.KategoriB, "Komisioning", "Gerak dasar maju-mundur-putar berfungsi", 1, domain.HariC1),
		measurement("B5", domain.KategoriB, "Komisioning", "Deteksi garis lintasan berfungsi", 1, domain.HariC1),
		measurement("B6", domain.KategoriB, "Komisioning", "Deteksi dan pengambilan objek berfungsi", 1, domain.HariC1),
		measurement("C1", domain.KategoriC, "Uji Gerak", "Menyusuri lintasan lurus tanpa keluar jalur", 2, domain.HariC1),
		measurement("C2", domain.KategoriC, "Uji Gerak", "Menikung di persimpangan sesuai perintah", 2, domain.HariC1),
		measurement("C3", domain.KategoriC, "Uji Gerak", "Berhenti presisi pada zona target", 2, domain.HariC1),
		measurement("C4", domain.KategoriC, "Uji Gerak", "Menghindari rintangan statis", 2, domain.HariC1),
		measurement("C5", domain.KategoriC, "Uji Gerak", "Kembali ke posisi awal secara mandiri", 2, domain.HariC1),
		measurement("D1", domain.KategoriD, "Uji Fungsi", "Mengangkat objek dari rak rendah", 2, domain.HariC1),
		measurement("D2", domain.KategoriD, "Uji Fungsi", "Mengangkat objek dari rak tinggi", 2, domain.HariC1),
		measurement("D3", domain.KategoriD, "Uji Fungsi", "Meletakkan objek pada zona warna", 2, domain.HariC1),
		measurement("D4", domain.KategoriD, "Uji Fungsi", "Memindahkan objek antar meja", 2, domain.HariC1),
		measurement("D5", domain.KategoriD, "Uji Fungsi", "Menumpuk dua objek", 2, domain.HariC1),
		measurement("D6", domain.KategoriD, "Uji Fungsi", "Memilah objek berdasarkan warna", 2, domain.HariC1),
		measurement("D7", domain.KategoriD, "Uji Fungsi", "Indikator status menyala sesuai kondisi", 1, domain.HariC1),
		measurement("D8", domain.KategoriD, "Uji Fungsi", "Penanganan kondisi objek tidak ditemukan", 1, domain.HariC1),
		measurement("D9", domain.KategoriD, "Uji Fungsi", "Berhenti darurat berfungsi", 1, domain.HariC1),

		// Hari C2 — pengantaran terprogram dan otonom penuh.
		measurement("A2", domain.KategoriA, "Manajemen Kerja", "Kedisiplinan dan keselamatan kerja hari kedua", 2, domain.HariC2),
		judgment("E1K1", domain.KategoriE1, "Pengantaran Terprogram", "Strategi dan perencanaan rute pengantaran", 1, domain.HariC2),
		judgment("E1K2", domain.KategoriE1, "Pengantaran Terprogram", "Kehalusan gerak selama misi", 1, domain.HariC2),
		measurement("E1K3", domain.KategoriE1, "Pengantaran Terprogram", "Seluruh paket terantar ke tujuan terprogram", 4, domain.HariC2),
		judgment("E2K4", domain.KategoriE2, "Pengantaran Otonom", "Adaptasi terhadap tata letak acak", 2, domain.HariC2),
		judgment("E2K5", domain.KategoriE2, "Pengantaran Otonom", "Efisiensi waktu penyelesaian misi", 2, domain.HariC2),
		measurement("E2K6", domain.KategoriE2, "Pengantaran Otonom", "Seluruh paket terantar tanpa intervensi", 5, domain.HariC2),

		// Hari C3 — pengantaran dan pengembalian.
		measurement("A3", domain.KategoriA, "Manajemen Kerja", "Kedisiplinan dan keselamatan kerja hari ketiga", 2, domain.HariC3),
		judgment("F1K1", domain.KategoriF1, "Antar-Kembali Terprogram", "Strategi pengantaran dan pengembalian", 2, domain.HariC3),
		judgment("F1K2", domain.KategoriF1, "Antar-Kembali Terprogram", "Penanganan paket saat pengembalian", 1, domain.HariC3),
		measurement("F1K3", domain.KategoriF1, "Antar-Kembali Terprogram", "Seluruh paket kembali ke depo", 3, domain.HariC3),
		judgment("F2K4", domain.KategoriF2, "Antar-Kembali Penuh", "Adaptasi misi penuh tanpa pola tetap", 3, domain.HariC3),
		judgment("F2K5", domain.KategoriF2, "Antar-Kembali Penuh", "Ketangguhan terhadap gangguan lintasan", 2, domain.HariC3),
		measurement("F2K6", domain.KategoriF2, "Antar-Kembali Penuh", "Misi penuh selesai tanpa intervensi", 5, domain.HariC3),
	}
}
