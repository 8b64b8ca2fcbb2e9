package service

import "errors"

var (
	ErrInvalidInput     = errors.New("input tidak valid")
	ErrInvalidDayOfWeek = errors.New("hari harus 0 (Senin) sampai 6 (Minggu)")
	ErrInvalidTime      = errors.New("format jam harus HH:MM (24 jam)")
	ErrInvalidDate      = errors.New("format tanggal harus YYYY-MM-DD")
	ErrEndBeforeStart   = errors.New("jam selesai harus setelah jam mulai")
	ErrDuplicateSubject = errors.New("kode mata kuliah sudah ada")
	ErrUnknownSubject   = errors.New("mata kuliah tidak ditemukan")
	ErrSlotConflict     = errors.New("jadwal bentrok dengan kelas lain")
	ErrNotFound         = errors.New("data tidak ditemukan")
	ErrConflict         = errors.New("data bentrok")
)
