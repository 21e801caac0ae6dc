package authz

import (
	"strconv"
	"strings"
)

const QRPrefix = "PINJAM-"

// Jenis kegagalan parse QR.
const (
	ParseFormatTidakDikenali = "format_tidak_dikenali"
	ParseIDTidakValid        = "id_tidak_valid"
)

// ParseError dikembalikan ParseLoanIDFromCode. Pesan siap ditampilkan.
type ParseError struct {
	Kind string
	Kode string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ParseIDTidakValid:
		return "ID peminjaman di QR tidak valid"
	default:
		return "Format QR tidak dikenali. Harus berupa PINJAM-{id}"
	}
}

// ParseLoanIDFromCode: "PINJAM-<bilangan bulat positif>", tanpa karakter lain.
// Spasi di awal/akhir (hasil input manual) diabaikan.
func ParseLoanIDFromCode(code string) (int64, error) {
	trimmed := strings.TrimSpace(code)
	rest, ok := strings.CutPrefix(trimmed, QRPrefix)
	if !ok {
		return 0, &ParseError{Kind: ParseFormatTidakDikenali, Kode: code}
	}
	if rest == "" {
		return 0, &ParseError{Kind: ParseIDTidakValid, Kode: code}
	}
	// ParseUint menolak tanda +/-; bitSize 63 menjaga muat di int64.
	n, err := strconv.ParseUint(rest, 10, 63)
	if err != nil || n == 0 {
		return 0, &ParseError{Kind: ParseIDTidakValid, Kode: code}
	}
	return int64(n), nil
}

// FormatLoanCode kebalikan ParseLoanIDFromCode.
func FormatLoanCode(id int64) string {
	return QRPrefix + strconv.FormatInt(id, 10)
}
