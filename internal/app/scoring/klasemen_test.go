package scoring

import (
	"testing"

	"github.com/antonprafanto/MRLKS/internal/domain"
)

func TestSusunKlasemen(t *testing.T) {
	totals := []domain.PesertaTotal{
		{PesertaID: "tim-x", Nama: "Tim X", TotalSkor: 80},
		{PesertaID: "tim-y", Nama: "Tim Y", TotalSkor: 95},
		{PesertaID: "tim-z", Nama: "Tim Z", TotalSkor: 0},
	}

	entries := SusunKlasemen(totals)
	if len(entries) != 3 {
		t.Fatalf("harap 3 entri, dapat %d", len(entries))
	}

	harap := []struct {
		id         domain.PesertaID
		peringkat  int
		persentase float64
	}{
		{"tim-y", 1, 95},
		{"tim-x", 2, 80},
		{"tim-z", 3, 0},
	}
	for i, h := range harap {
		if entries[i].PesertaID != h.id {
			t.Fatalf("posisi %d harap %s, dapat %s", i, h.id, entries[i].PesertaID)
		}
		if entries[i].Peringkat != h.peringkat {
			t.Fatalf("peringkat %s harap %d, dapat %d", h.id, h.peringkat, entries[i].Peringkat)
		}
		if entries[i].Persentase != h.persentase {
			t.Fatalf("persentase %s harap %v, dapat %v", h.id, h.persentase, entries[i].Persentase)
		}
		if entries[i].MaxTotal != MaxTotalSkor {
			t.Fatalf("max total harap %v, dapat %v", MaxTotalSkor, entries[i].MaxTotal)
		}
	}
}

func TestSusunKlasemen_KetikaSkorSeri_HarusPecahDenganIDMenaik(t *testing.T) {
	totals := []domain.PesertaTotal{
		{PesertaID: "tim-b", TotalSkor: 50},
		{PesertaID: "tim-a", TotalSkor: 50},
	}

	entries := SusunKlasemen(totals)
	if entries[0].PesertaID != "tim-a" || entries[0].Peringkat != 1 {
		t.Fatalf("entri pertama harap tim-a peringkat 1, dapat %s peringkat %d", entries[0].PesertaID, entries[0].Peringkat)
	}
	// Peringkat tetap berurutan meski nilainya seri.
	if entries[1].PesertaID != "tim-b" || entries[1].Peringkat != 2 {
		t.Fatalf("entri kedua harap tim-b peringkat 2, dapat %s peringkat %d", entries[1].PesertaID, entries[1].Peringkat)
	}
}

func TestSusunKlasemen_KetikaKosong_HarusKosong(t *testing.T) {
	if entries := SusunKlasemen(nil); len(entries) != 0 {
		t.Fatalf("harap kosong, dapat %d entri", len(entries))
	}
}
