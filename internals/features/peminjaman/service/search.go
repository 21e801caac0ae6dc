package service

import (
	"strconv"
	"strings"

	"dsr_faste_backend/internals/features/peminjaman/model"
)

// MatchSearch: q kosong cocok dengan semua. Dicari (case-insensitive) di id,
// Agenda, nama peminjam, kode/nama lokasi, lokasi tambahan, dan NUP barang.
// "PINJAM-12" juga cocok dengan id 12.
func MatchSearch(p *model.Peminjaman, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	if p == nil {
		return false
	}

	id := strconv.FormatInt(p.ID, 10)
	if q == id || q == "pinjam-"+id || q == "#"+id {
		return true
	}

	fields := []string{p.Agenda}
	if p.User != nil {
		fields = append(fields, p.User.Nama)
	}
	if p.KodeLokasi != nil {
		fields = append(fields, *p.KodeLokasi)
	}
	if p.Lokasi != nil {
		fields = append(fields, p.Lokasi.KodeLokasi, p.Lokasi.Lokasi)
	}
	if p.LokasiTambahan != nil {
		fields = append(fields, *p.LokasiTambahan)
	}
	for _, it := range p.Items {
		fields = append(fields, it.NupBarang)
		if it.BarangUnit != nil {
			fields = append(fields, it.BarangUnit.NUP)
		}
	}

	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
