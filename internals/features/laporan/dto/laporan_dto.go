package dto

import (
	"net/url"

	"dsr_faste_backend/internals/helpers/dbtime"
)

const LayoutTanggal = "2006-01-02"

// ExportQuery: semua filter opsional.
type ExportQuery struct {
	Verifikasi string `query:"verifikasi" json:"verifikasi" validate:"omitempty,oneof=pending diterima ditolak"`
	StartDate  string `query:"startDate" json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `query:"endDate" json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// RangeValid: false jika kedua tanggal terisi dan start > end.
func (q ExportQuery) RangeValid() bool {
	if q.StartDate == "" || q.EndDate == "" {
		return true
	}
	start, ok1 := dbtime.ParseLocal(q.StartDate, LayoutTanggal)
	end, ok2 := dbtime.ParseLocal(q.EndDate, LayoutTanggal)
	if !ok1 || !ok2 {
		return false
	}
	return !start.After(end)
}

func (q ExportQuery) Values() url.Values {
	v := url.Values{}
	if q.Verifikasi != "" {
		v.Set("verifikasi", q.Verifikasi)
	}
	if q.StartDate != "" {
		v.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("endDate", q.EndDate)
	}
	return v
}
