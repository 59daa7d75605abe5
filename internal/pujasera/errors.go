package pujasera

import "errors"

// Taksonomi error inti; pesan disurface apa adanya ke pemanggil.
var (
	ErrInvalidOrder   = errors.New("data pesanan tidak lengkap")
	ErrMissingParams  = errors.New("data tidak lengkap")
	ErrInvalidAddress = errors.New("alamat harus berupa teks")
	ErrUnauthorized   = errors.New("sesi tidak valid atau sudah berakhir")
	ErrNotFound       = errors.New("data tidak ditemukan")
	ErrStorage        = errors.New("penyimpanan tidak tersedia")
)
