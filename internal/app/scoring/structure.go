package scoring

import (
	"github.com/antonprafanto/MRLKS/internal/domain"
)

// hariMapping adalah tabel tertutup hari → item yang dinilai pada hari itu.
// Penetapan hari adalah kebijakan katalog, bukan diturunkan dari kategori.
var hariMapping = map[domain.Hari][]domain.ItemCode{
	domain.HariC1: {
		"A1",
		"B1", "B2", "B3", "B4", "B5", "B6",
		"C1", "C2", "C3", "C4", "C5",
		"D1", "D2", "D3", "D4", "D5", "D6", "D7", "D8", "D9",
	},
	domain.HariC2: {
		"A2",
		"E1K1", "E1K2", "E1K3",
		"E2K4", "E2K5", "E2K6",
	},
	domain.HariC3: {
		"A3",
		"F1K1", "F1K2", "F1K3",
		"F2K4", "F2K5", "F2K6",
	},
}

// ValidStruktur memastikan sebuah item memang dinilai pada hari tersebut.
// Hari tak dikenal atau item di luar daftar hari itu dianggap tidak sah.
func ValidStruktur(itemCode domain.ItemCode, hari domain.Hari) bool {
	for _, code := range hariMapping[hari] {
		if code == itemCode {
			return true
		}
	}
	return false
}
