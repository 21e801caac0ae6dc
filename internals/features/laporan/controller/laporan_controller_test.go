package controller_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/laporan/controller"
	"dsr_faste_backend/internals/features/laporan/service"
	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

type fakeDownloader struct {
	path  string
	query url.Values
	res   *dsrapi.Response
	err   error
	calls int
}

func (f *fakeDownloader) Download(_ context.Context, _ string, path string, q url.Values) (*dsrapi.Response, error) {
	f.calls++
	f.path, f.query = path, q
	return f.res, f.err
}

func newApp(api *fakeDownloader, role constants.Role) *fiber.App {
	ctl := controller.NewLaporanController(service.NewLaporanService(api))
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocActor, helperAuth.Actor{NIK: "1", Role: role})
		return c.Next()
	})
	app.Get("/export", ctl.ExportPeminjaman)
	return app
}

func get(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	return resp
}

func Test_Export_PassesFileThrough(t *testing.T) {
	api := &fakeDownloader{res: &dsrapi.Response{Status: 200, ContentType: "", Body: []byte("PK\x03\x04xlsx")}}
	app := newApp(api, constants.RoleKepalaBagian)

	resp := get(t, app, "/export?verifikasi=Diterima&startDate=2026-01-01&endDate=2026-01-31")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, constants.MimeXLSX, resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename="Laporan_Peminjaman_Selesai.xlsx"`, resp.Header.Get(fiber.HeaderContentDisposition))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "PK\x03\x04xlsx", string(body))

	assert.Equal(t, "/laporan/peminjaman/export", api.path)
	assert.Equal(t, "diterima", api.query.Get("verifikasi"))
	assert.Equal(t, "2026-01-01", api.query.Get("startDate"))
}

func Test_Export_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		role   constants.Role
		target string
		want   int
	}{
		{"staff", constants.RoleStaff, "/export", fiber.StatusForbidden},
		{"bad_date", constants.RoleKepalaBagian, "/export?startDate=01-02-2026", fiber.StatusUnprocessableEntity},
		{"bad_verifikasi", constants.RoleKepalaBagian, "/export?verifikasi=semua", fiber.StatusUnprocessableEntity},
		{"inverted_range", constants.RoleKepalaBagian, "/export?startDate=2026-02-01&endDate=2026-01-01", fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeDownloader{res: &dsrapi.Response{Status: 200}}
			resp := get(t, newApp(api, tt.role), tt.target)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Zero(t, api.calls)
		})
	}
}

func Test_Export_UpstreamError(t *testing.T) {
	api := &fakeDownloader{err: &dsrapi.UpstreamError{Status: fiber.StatusNotFound, Message: "Tidak ada data"}}
	resp := get(t, newApp(api, constants.RoleKepalaBagian), "/export")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
