package scoring

import (
	"testing"

	"github.com/antonprafanto/MRLKS/internal/domain"
)

func TestValidStruktur(t *testing.T) {
	kasus := []struct {
		nama  string
		item  domain.ItemCode
		hari  domain.Hari
		valid bool
	}{
		{"item hari pertama pada harinya", "A1", domain.HariC1, true},
		{"item measurement hari pertama", "D9", domain.HariC1, true},
		{"item hari pertama di hari kedua", "A1", domain.HariC2, false},
		{"item hari kedua pada harinya", "E1K2", domain.HariC2, true},
		{"item hari ketiga pada harinya", "F2K6", domain.HariC3, true},
		{"item hari ketiga di hari pertama", "F2K6", domain.HariC1, false},
		{"item tidak dikenal", "Z9", domain.HariC1, false},
		{"hari tidak dikenal", "A1", domain.Hari("C4"), false},
		{"hari kosong", "A1", domain.Hari(""), false},
	}

	for _, k := range kasus {
		t.Run(k.nama, func(t *testing.T) {
			if got := ValidStruktur(k.item, k.hari); got != k.valid {
				t.Fatalf("ValidStruktur(%s, %s) = %v, harap %v", k.item, k.hari, got, k.valid)
			}
		})
	}
}
