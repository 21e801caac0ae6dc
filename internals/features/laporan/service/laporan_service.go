// file: internals/features/laporan/service/laporan_service.go
package service

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/laporan/dto"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

const (
	exportPath     = "/laporan/peminjaman/export"
	ExportFilename = "Laporan_Peminjaman_Selesai.xlsx"
)

type Downloader interface {
	Download(ctx context.Context, token, path string, query url.Values) (*dsrapi.Response, error)
}

// File hasil unduhan siap dikirim ke klien.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

type LaporanService struct {
	API Downloader
}

func NewLaporanService(api Downloader) *LaporanService {
	return &LaporanService{API: api}
}

// ExportPeminjaman: khusus kepala bagian akademik.
func (s *LaporanService) ExportPeminjaman(ctx context.Context, actor helperAuth.Actor, token string, q dto.ExportQuery) (*File, error) {
	if !actor.Is(constants.KepalaBagianOnly...) {
		return nil, fiber.NewError(fiber.StatusForbidden, constants.RoleErrorKepalaBagian("laporan"))
	}
	if !q.RangeValid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "startDate tidak boleh setelah endDate")
	}

	res, err := s.API.Download(ctx, token, exportPath, q.Values())
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}

	ct := strings.TrimSpace(res.ContentType)
	if ct == "" || strings.HasPrefix(ct, fiber.MIMEApplicationJSON) || strings.HasPrefix(ct, fiber.MIMETextPlain) {
		ct = constants.DetectContentTypeFromExt(ExportFilename)
	}
	log.Printf("[INFO] Export laporan oleh nik=%s (%d bytes, verifikasi=%q %s..%s)", actor.NIK, len(res.Body), q.Verifikasi, q.StartDate, q.EndDate)
	return &File{Name: ExportFilename, ContentType: ct, Body: res.Body}, nil
}
