package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "dsr_faste_backend/internals/helpers"
)

func validRequest() *CreatePeminjamanRequest {
	return &CreatePeminjamanRequest{
		NoHP:         "081234567890",
		Agenda:       "Seminar Nasional",
		WaktuMulai:   "2026-03-01T08:00",
		WaktuSelesai: "2026-03-01T12:00",
		BarangList:   []string{"3100102001"},
	}
}

func Test_Normalize(t *testing.T) {
	lok := "  "
	r := &CreatePeminjamanRequest{
		NoHP:           " +6281234567 ",
		Agenda:         "  Rapat ",
		LokasiTambahan: &lok,
		BarangList:     []string{"A1", " ", "B2"},
		NupText:        "B2, C3 ,,A1",
	}
	r.Normalize()

	assert.Equal(t, "+6281234567", r.NoHP)
	assert.Equal(t, "Rapat", r.Agenda)
	assert.Nil(t, r.LokasiTambahan)
	assert.Equal(t, []string{"A1", "B2", "C3"}, r.BarangList)
	assert.Empty(t, r.NupText)
}

func Test_Validate(t *testing.T) {
	v := NewValidator()

	t.Run("ok", func(t *testing.T) {
		require.NoError(t, validRequest().Validate(v))
	})

	tests := []struct {
		name   string
		mutate func(r *CreatePeminjamanRequest)
		field  string
		msg    string
	}{
		{"no_hp_letters", func(r *CreatePeminjamanRequest) { r.NoHP = "08abc" }, "no_hp", "nomor HP 8-15 digit, boleh diawali +"},
		{"no_hp_short", func(r *CreatePeminjamanRequest) { r.NoHP = "0812" }, "no_hp", "nomor HP 8-15 digit, boleh diawali +"},
		{"no_barang", func(r *CreatePeminjamanRequest) { r.BarangList = nil }, "barangList", "Minimal 1 NUP barang harus diisi"},
		{"bad_time", func(r *CreatePeminjamanRequest) { r.WaktuMulai = "besok pagi" }, "waktuMulai", "format waktu tidak valid"},
		{"end_before_start", func(r *CreatePeminjamanRequest) { r.WaktuSelesai = "2026-03-01T07:00" }, "waktuSelesai", "waktu selesai harus setelah waktu mulai"},
		{"same_time", func(r *CreatePeminjamanRequest) { r.WaktuSelesai = r.WaktuMulai }, "waktuSelesai", "waktu selesai harus setelah waktu mulai"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(r)
			err := r.Validate(v)
			require.Error(t, err)

			fields, ok := err.(helper.FieldErrors)
			require.True(t, ok)
			assert.Contains(t, fields[tt.field], tt.msg)
		})
	}
}

func Test_ParseWaktu(t *testing.T) {
	for _, s := range []string{"2026-03-01T08:00", "2026-03-01T08:00:30", "2026-03-01T08:00:00+07:00"} {
		_, ok := ParseWaktu(s)
		assert.True(t, ok, s)
	}
	_, ok := ParseWaktu("01/03/2026")
	assert.False(t, ok)
}

func Test_ListQuery_Filter(t *testing.T) {
	f := ListQuery{Status: "aktif", Verifikasi: "diterima", Kategori: "lokasi"}.Filter()
	assert.EqualValues(t, "aktif", f.Status)
	assert.EqualValues(t, "diterima", f.Verifikasi)
}
