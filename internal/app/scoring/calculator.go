package scoring

import (
	"fmt"
	"math"
)

// round2 membulatkan dua desimal, setengah ke atas, mengikuti rubrik penilaian.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// HitungSkorJudgment merata-ratakan nilai tiga juri (skala 0-3) lalu mengalikan
// dengan bobot item. Skor final dihitung dari rata-rata yang BELUM dibulatkan,
// baru dibulatkan sekali; rata-rata dibulatkan terpisah untuk ditampilkan.
func HitungSkorJudgment(juri1, juri2, juri3, bobot int) (rataRata, skorFinal float64, err error) {
	for _, nilai := range [3]int{juri1, juri2, juri3} {
		if nilai < 0 || nilai > 3 {
			return 0, 0, fmt.Errorf("%w: nilai juri harus antara 0-3", ErrInputInvalid)
		}
	}
	if bobot <= 0 {
		return 0, 0, fmt.Errorf("%w: bobot harus lebih dari 0", ErrInputInvalid)
	}

	mentah := float64(juri1+juri2+juri3) / 3
	return round2(mentah), round2(mentah * float64(bobot)), nil
}

// HitungSkorMeasurement mengalikan hasil ukur biner (0/1) dengan bobot item.
func HitungSkorMeasurement(nilaiUkur, bobot int) (float64, error) {
	if nilaiUkur != 0 && nilaiUkur != 1 {
		return 0, fmt.Errorf("%w: nilai measurement harus 0 atau 1", ErrInputInvalid)
	}
	if bobot <= 0 {
		return 0, fmt.Errorf("%w: bobot harus lebih dari 0", ErrInputInvalid)
	}
	return float64(nilaiUkur * bobot), nil
}
