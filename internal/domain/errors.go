package domain

import "errors"

// ErrNotFound dikembalikan repositori saat baris yang diminta tidak ada;
// lapisan service menerjemahkannya ke error domain yang lebih spesifik.
var ErrNotFound = errors.New("data tidak ditemukan")
