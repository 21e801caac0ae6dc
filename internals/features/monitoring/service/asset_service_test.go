package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/monitoring/dto"
	"dsr_faste_backend/internals/features/peminjaman/model"
	helper "dsr_faste_backend/internals/helpers"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

type fakeAsset struct {
	calls    []string
	payloads []any
	katalog  []model.DataBarang
	err      error
}

func (f *fakeAsset) record(call string, payload any) (json.RawMessage, error) {
	f.calls = append(f.calls, call)
	f.payloads = append(f.payloads, payload)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"ok":true}`), nil
}

func (f *fakeAsset) GetBarangUnit(_ context.Context, _ string, nup string) (json.RawMessage, error) {
	return f.record("get-barang "+nup, nil)
}

func (f *fakeAsset) UpdateBarangUnit(_ context.Context, _ string, nup string, p any) (json.RawMessage, error) {
	return f.record("put-barang "+nup, p)
}

func (f *fakeAsset) CreateBarangUnit(_ context.Context, _ string, p any) (json.RawMessage, error) {
	return f.record("post-barangunit", p)
}

func (f *fakeAsset) ListDataBarang(context.Context, string) ([]model.DataBarang, error) {
	f.calls = append(f.calls, "list-databarang")
	return f.katalog, nil
}

func (f *fakeAsset) CreateDataBarang(_ context.Context, _ string, p any) (json.RawMessage, error) {
	return f.record("post-databarang", p)
}

func (f *fakeAsset) GetLokasi(_ context.Context, _ string, kode string) (json.RawMessage, error) {
	return f.record("get-lokasi "+kode, nil)
}

func (f *fakeAsset) UpdateLokasi(_ context.Context, _ string, kode string, p any) (json.RawMessage, error) {
	return f.record("put-lokasi "+kode, p)
}

func (f *fakeAsset) CreateLokasi(_ context.Context, _ string, p any) (json.RawMessage, error) {
	return f.record("post-lokasi", p)
}

func (f *fakeAsset) CreateKondisi(_ context.Context, _ string, contentType string, _ []byte) (json.RawMessage, error) {
	return f.record("post-kondisi", contentType)
}

func strPtr(s string) *string { return &s }

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func Test_Asset_RoleTable(t *testing.T) {
	ctx := context.Background()
	upd := dto.UpdateBarangRequest{Status: strPtr("TidakTersedia")}
	updLok := dto.UpdateLokasiRequest{Status: strPtr("dipinjam")}
	newLok := dto.CreateLokasiRequest{KodeLokasi: "R9", Lokasi: "Ruang 9", Status: "tidakDipinjam"}

	ops := map[string]func(s *AssetService, r constants.Role) error{
		"detail barang": func(s *AssetService, r constants.Role) error {
			_, err := s.BarangDetail(ctx, as(r), "tok", "N1")
			return err
		},
		"detail lokasi": func(s *AssetService, r constants.Role) error {
			_, err := s.LokasiDetail(ctx, as(r), "tok", "R1")
			return err
		},
		"ubah barang": func(s *AssetService, r constants.Role) error {
			_, err := s.UpdateBarang(ctx, as(r), "tok", "N1", upd)
			return err
		},
		"ubah lokasi": func(s *AssetService, r constants.Role) error {
			_, err := s.UpdateLokasi(ctx, as(r), "tok", "R1", updLok)
			return err
		},
		"tambah lokasi": func(s *AssetService, r constants.Role) error {
			_, err := s.CreateLokasi(ctx, as(r), "tok", newLok)
			return err
		},
		"catat kondisi": func(s *AssetService, r constants.Role) error {
			_, err := s.CatatKondisi(ctx, as(r), "tok", "multipart/form-data; boundary=x", []byte("--x--"), "N1")
			return err
		},
	}

	allowed := map[string][]constants.Role{
		"detail barang": constants.AdminRoles,
		"detail lokasi": constants.AdminRoles,
		"ubah barang":   {constants.RoleStaff},
		"ubah lokasi":   {constants.RoleStaff, constants.RoleStaffProdi},
		"tambah lokasi": {constants.RoleStaff},
		"catat kondisi": {constants.RoleStaff},
	}

	for name, op := range ops {
		for _, r := range constants.AllRoles {
			t.Run(name+"/"+string(r), func(t *testing.T) {
				api := &fakeAsset{}
				err := op(NewAssetService(api), r)
				if constants.HasRole(allowed[name], r) {
					require.NoError(t, err)
					assert.Len(t, api.calls, 1)
					return
				}
				assert.Equal(t, fiber.StatusForbidden, statusOf(t, err))
				assert.Empty(t, api.calls)
			})
		}
	}
}

func Test_Asset_UpdateWithoutChanges(t *testing.T) {
	api := &fakeAsset{}
	svc := NewAssetService(api)

	_, err := svc.UpdateBarang(context.Background(), as(constants.RoleStaff), "tok", "N1", dto.UpdateBarangRequest{})
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))
	_, err = svc.UpdateLokasi(context.Background(), as(constants.RoleStaffProdi), "tok", "R1", dto.UpdateLokasiRequest{})
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))
	assert.Empty(t, api.calls)
}

func Test_Asset_CreateBarang(t *testing.T) {
	req := dto.CreateBarangRequest{
		NUP: "N9", KodeBarang: "3100102", JenisBarang: "Proyektor", Merek: "Epson",
		Lokasi: "R101", Status: "Tersedia", Jurusan: "tif",
	}
	staffActor := as(constants.RoleStaff)

	t.Run("kode baru membuat data barang", func(t *testing.T) {
		api := &fakeAsset{}
		_, err := NewAssetService(api).CreateBarang(context.Background(), staffActor, "tok", req)
		require.NoError(t, err)
		assert.Equal(t, []string{"list-databarang", "post-databarang", "post-barangunit"}, api.calls)

		unitPayload, ok := api.payloads[1].(dto.BarangUnitPayload)
		require.True(t, ok)
		assert.Equal(t, staffActor.NIK, unitPayload.NikUser)
		assert.Equal(t, "3100102", unitPayload.KodeBarang)
	})

	t.Run("kode terdaftar langsung unit", func(t *testing.T) {
		api := &fakeAsset{katalog: []model.DataBarang{{KodeBarang: "3100102"}}}
		_, err := NewAssetService(api).CreateBarang(context.Background(), staffActor, "tok", req)
		require.NoError(t, err)
		assert.Equal(t, []string{"list-databarang", "post-barangunit"}, api.calls)
	})

	t.Run("kode baru tanpa jenis", func(t *testing.T) {
		api := &fakeAsset{}
		r := req
		r.JenisBarang = ""
		_, err := NewAssetService(api).CreateBarang(context.Background(), staffActor, "tok", r)
		var fields helper.FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "jenis_barang")
		assert.Equal(t, []string{"list-databarang"}, api.calls)
	})

	t.Run("bukan staff", func(t *testing.T) {
		api := &fakeAsset{}
		_, err := NewAssetService(api).CreateBarang(context.Background(), as(constants.RoleStaffProdi), "tok", req)
		assert.Equal(t, fiber.StatusForbidden, statusOf(t, err))
		assert.Empty(t, api.calls)
	})
}

func Test_Asset_UpstreamError(t *testing.T) {
	api := &fakeAsset{err: &dsrapi.UpstreamError{Status: fiber.StatusNotFound, Message: "Barang tidak ditemukan"}}
	_, err := NewAssetService(api).BarangDetail(context.Background(), as(constants.RoleKepalaBagian), "tok", "X")
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))
	assert.EqualError(t, err, "Barang tidak ditemukan")

	api = &fakeAsset{err: errors.New("dial tcp: refused")}
	_, err = NewAssetService(api).LokasiDetail(context.Background(), as(constants.RoleStaff), "tok", "R1")
	assert.Equal(t, fiber.StatusBadGateway, statusOf(t, err))
}
