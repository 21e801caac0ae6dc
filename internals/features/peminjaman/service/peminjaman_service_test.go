package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/peminjaman/dto"
	"dsr_faste_backend/internals/features/peminjaman/model"
	"dsr_faste_backend/internals/features/peminjaman/service"
	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

/* ===================== fakes ===================== */

type fakeAPI struct {
	loans     map[int64]*model.Peminjaman
	qr        *string
	calls     []string
	verifyArg model.Verifikasi
	mutateErr error
	created   *dsrapi.CreatePayload
}

func (f *fakeAPI) ListPeminjaman(_ context.Context, _ string, flt dsrapi.ListFilter) ([]model.Peminjaman, error) {
	f.calls = append(f.calls, "list")
	out := []model.Peminjaman{}
	for id := int64(1); id <= int64(len(f.loans)+10); id++ {
		p, ok := f.loans[id]
		if !ok {
			continue
		}
		if flt.Status != "" && p.Status != flt.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeAPI) GetPeminjaman(_ context.Context, _ string, id int64) (*model.Peminjaman, *string, error) {
	f.calls = append(f.calls, "get")
	p, ok := f.loans[id]
	if !ok {
		return nil, nil, &dsrapi.UpstreamError{Status: 404, Message: "Peminjaman tidak ditemukan"}
	}
	cp := *p
	return &cp, f.qr, nil
}

func (f *fakeAPI) CreatePeminjaman(_ context.Context, _ string, payload dsrapi.CreatePayload) (*model.Peminjaman, error) {
	f.calls = append(f.calls, "create")
	f.created = &payload
	return &model.Peminjaman{ID: 99, Status: model.StatusBooking, Verifikasi: model.VerifikasiPending}, nil
}

func (f *fakeAPI) mutate(name string) (string, error) {
	f.calls = append(f.calls, name)
	if f.mutateErr != nil {
		return "", f.mutateErr
	}
	return "", nil
}

func (f *fakeAPI) Verify(_ context.Context, _ string, _ int64, v model.Verifikasi) (string, error) {
	f.verifyArg = v
	return f.mutate("verify")
}
func (f *fakeAPI) Activate(context.Context, string, int64) (string, error) { return f.mutate("activate") }
func (f *fakeAPI) Return(context.Context, string, int64) (string, error)   { return f.mutate("return") }
func (f *fakeAPI) ScanPickup(context.Context, string, int64) (string, error) {
	return f.mutate("scan-pickup")
}
func (f *fakeAPI) ScanReturn(context.Context, string, int64) (string, error) {
	return f.mutate("scan-return")
}
func (f *fakeAPI) ListLokasiAvailable(context.Context, string) ([]model.Lokasi, error) {
	return []model.Lokasi{{KodeLokasi: "R101", Lokasi: "Ruang 101"}}, nil
}

func (f *fakeAPI) mutations() []string {
	out := []string{}
	for _, c := range f.calls {
		if c != "get" && c != "list" {
			out = append(out, c)
		}
	}
	return out
}

type fakeLogs struct {
	rows []*model.PeminjamanActionLogModel
	err  error
}

func (l *fakeLogs) Create(_ context.Context, row *model.PeminjamanActionLogModel) error {
	if l.err != nil {
		return l.err
	}
	l.rows = append(l.rows, row)
	return nil
}

func (l *fakeLogs) ListByPeminjaman(_ context.Context, id int64, _ int) ([]model.PeminjamanActionLogModel, error) {
	out := []model.PeminjamanActionLogModel{}
	for _, r := range l.rows {
		if r.PeminjamanID == id {
			out = append(out, *r)
		}
	}
	return out, nil
}

/* ===================== fixtures ===================== */

func ptr[T any](v T) *T { return &v }

func unit(nup, jenis string, jur model.Jurusan) model.PeminjamanItem {
	return model.PeminjamanItem{
		NupBarang: nup,
		BarangUnit: &model.BarangUnit{
			NUP:        nup,
			Jurusan:    ptr(jur),
			DataBarang: &model.DataBarang{JenisBarang: ptr(jenis)},
		},
	}
}

func loan(id int64, nik string, st model.Status, v model.Verifikasi, items ...model.PeminjamanItem) *model.Peminjaman {
	return &model.Peminjaman{
		ID:         id,
		NikUser:    nik,
		Agenda:     "Agenda " + nik,
		Status:     st,
		Verifikasi: v,
		Items:      items,
		User:       &model.UserRingkas{NIK: nik, Nama: "User " + nik},
	}
}

func actor(role constants.Role) helperAuth.Actor {
	return helperAuth.Actor{NIK: "900", Nama: "Petugas", Role: role}
}

func newSvc(loans ...*model.Peminjaman) (*service.PeminjamanService, *fakeAPI, *fakeLogs) {
	api := &fakeAPI{loans: map[int64]*model.Peminjaman{}}
	for _, l := range loans {
		api.loans[l.ID] = l
	}
	logs := &fakeLogs{}
	return service.NewPeminjamanService(api, logs), api, logs
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe), "expected *fiber.Error, got %v", err)
	return fe.Code
}

var (
	restricted = loan(1, "100", model.StatusBooking, model.VerifikasiPending, unit("N1", "Proyektor", model.JurusanTIF))
	general    = loan(2, "100", model.StatusBooking, model.VerifikasiPending, unit("N2", "Kursi", model.JurusanUmum))
	deptItem   = loan(3, "200", model.StatusBooking, model.VerifikasiPending, unit("N3", "Osiloskop", model.JurusanTE))
	accepted   = loan(4, "200", model.StatusBooking, model.VerifikasiDiterima, unit("N4", "Kursi", model.JurusanUmum))
	active     = loan(5, "300", model.StatusAktif, model.VerifikasiDiterima, unit("N5", "Kursi", model.JurusanUmum))
	done       = loan(6, "300", model.StatusSelesai, model.VerifikasiDiterima, unit("N6", "Kursi", model.JurusanUmum))
)

/* ===================== transitions ===================== */

func Test_Verify_RoutedByAuthority(t *testing.T) {
	tests := []struct {
		name string
		p    *model.Peminjaman
		role constants.Role
		ok   bool
	}{
		{"prodi_restricted", restricted, constants.RoleStaffProdi, true},
		{"staff_restricted", restricted, constants.RoleStaff, false},
		{"kepala_restricted", restricted, constants.RoleKepalaBagian, false},
		{"staff_general", general, constants.RoleStaff, true},
		{"kepala_general", general, constants.RoleKepalaBagian, false},
		{"prodi_general", general, constants.RoleStaffProdi, false},
		{"kepala_dept_item", deptItem, constants.RoleKepalaBagian, true},
		{"staff_dept_item", deptItem, constants.RoleStaff, false},
		{"civitas", general, constants.RoleCivitas, false},
		{"already_accepted", accepted, constants.RoleStaff, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, api, logs := newSvc(tt.p)

			view, msg, err := svc.Verify(context.Background(), actor(tt.role), "tok", tt.p.ID, model.VerifikasiDiterima)
			if !tt.ok {
				require.Error(t, err)
				assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
				assert.Empty(t, api.mutations(), "DSR API must not be called")
				assert.Empty(t, logs.rows)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"verify"}, api.mutations())
			assert.Equal(t, model.VerifikasiDiterima, api.verifyArg)
			assert.Equal(t, model.StatusBooking, view.Peminjaman.Status)
			assert.Equal(t, model.VerifikasiDiterima, view.Peminjaman.Verifikasi)
			assert.Equal(t, "Peminjaman diterima", msg)

			require.Len(t, logs.rows, 1)
			assert.True(t, logs.rows[0].Berhasil)
			assert.Equal(t, model.AksiTerima, logs.rows[0].Aksi)
			assert.Equal(t, model.VerifikasiPending, logs.rows[0].VerifikasiSebelum)
			assert.Equal(t, model.VerifikasiDiterima, logs.rows[0].VerifikasiSesudah)
		})
	}
}

func Test_Verify_Tolak(t *testing.T) {
	svc, api, _ := newSvc(general)

	view, _, err := svc.Verify(context.Background(), actor(constants.RoleStaff), "tok", 2, model.VerifikasiDitolak)
	require.NoError(t, err)
	assert.Equal(t, model.VerifikasiDitolak, api.verifyArg)
	assert.Equal(t, model.VerifikasiDitolak, view.Peminjaman.Verifikasi)
	assert.Empty(t, view.Aksi, "rejected booking allows nothing")
}

func Test_Verify_InvalidValue(t *testing.T) {
	svc, api, _ := newSvc(general)
	_, _, err := svc.Verify(context.Background(), actor(constants.RoleStaff), "tok", 2, model.VerifikasiPending)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
	assert.Empty(t, api.calls)
}

func Test_ActivateReturn(t *testing.T) {
	tests := []struct {
		name   string
		p      *model.Peminjaman
		role   constants.Role
		run    func(*service.PeminjamanService, helperAuth.Actor, int64) (dto.LoanView, string, error)
		call   string
		status model.Status
	}{
		{"activate_staff", accepted, constants.RoleStaff, activate, "activate", model.StatusAktif},
		{"activate_prodi", accepted, constants.RoleStaffProdi, activate, "activate", model.StatusAktif},
		{"activate_kepala", accepted, constants.RoleKepalaBagian, activate, "", ""},
		{"activate_pending", general, constants.RoleStaff, activate, "", ""},
		{"activate_active", active, constants.RoleStaff, activate, "", ""},
		{"return_staff", active, constants.RoleStaff, ret, "return", model.StatusSelesai},
		{"return_kepala", active, constants.RoleKepalaBagian, ret, "", ""},
		{"return_booking", accepted, constants.RoleStaff, ret, "", ""},
		{"return_done", done, constants.RoleStaff, ret, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, api, _ := newSvc(tt.p)
			view, _, err := tt.run(svc, actor(tt.role), tt.p.ID)
			if tt.call == "" {
				require.Error(t, err)
				assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
				assert.Equal(t, service.ErrAksiDitolak, err.(*fiber.Error).Message)
				assert.Empty(t, api.mutations())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{tt.call}, api.mutations())
			assert.Equal(t, tt.status, view.Peminjaman.Status)
		})
	}
}

func activate(s *service.PeminjamanService, a helperAuth.Actor, id int64) (dto.LoanView, string, error) {
	return s.Activate(context.Background(), a, "tok", id)
}

func ret(s *service.PeminjamanService, a helperAuth.Actor, id int64) (dto.LoanView, string, error) {
	return s.Return(context.Background(), a, "tok", id)
}

func Test_Transition_UpstreamFailure(t *testing.T) {
	svc, api, logs := newSvc(accepted)
	api.mutateErr = &dsrapi.UpstreamError{Status: fiber.StatusConflict, Message: "Barang sedang dipakai"}

	_, _, err := svc.Activate(context.Background(), actor(constants.RoleStaff), "tok", 4)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
	assert.Equal(t, "Barang sedang dipakai", err.(*fiber.Error).Message)

	require.Len(t, logs.rows, 1)
	assert.False(t, logs.rows[0].Berhasil)
	assert.Equal(t, "Barang sedang dipakai", logs.rows[0].Pesan)
	assert.Empty(t, logs.rows[0].StatusSesudah)
}

func Test_Transition_LogFailureNotFatal(t *testing.T) {
	svc, _, logs := newSvc(active)
	logs.err = errors.New("db down")

	view, _, err := svc.Return(context.Background(), actor(constants.RoleStaffProdi), "tok", 5)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSelesai, view.Peminjaman.Status)
}

func Test_Transition_NotFound(t *testing.T) {
	svc, _, _ := newSvc()
	_, _, err := svc.Activate(context.Background(), actor(constants.RoleStaff), "tok", 404)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

/* ===================== scan ===================== */

func Test_Scan(t *testing.T) {
	svc, api, logs := newSvc(accepted, active)

	view, msg, err := svc.ScanPickup(context.Background(), actor(constants.RoleStaff), "tok", " PINJAM-4 ")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAktif, view.Peminjaman.Status)
	assert.Equal(t, "Scan pickup berhasil untuk peminjaman #4.", msg)

	_, msg, err = svc.ScanReturn(context.Background(), actor(constants.RoleStaffProdi), "tok", "PINJAM-5")
	require.NoError(t, err)
	assert.Equal(t, "Scan return berhasil untuk peminjaman #5.", msg)

	assert.Equal(t, []string{"scan-pickup", "scan-return"}, api.mutations())
	require.Len(t, logs.rows, 2)
	assert.Equal(t, model.SumberScan, logs.rows[0].Sumber)
}

func Test_Scan_Rejected(t *testing.T) {
	tests := []struct {
		name string
		kode string
		role constants.Role
		want int
	}{
		{"bad_prefix", "LOAN-4", constants.RoleStaff, fiber.StatusBadRequest},
		{"bad_id", "PINJAM-x", constants.RoleStaff, fiber.StatusBadRequest},
		{"zero", "PINJAM-0", constants.RoleStaff, fiber.StatusBadRequest},
		{"return_on_booking", "PINJAM-4", constants.RoleStaff, fiber.StatusForbidden},
		{"kepala", "PINJAM-5", constants.RoleKepalaBagian, fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, api, _ := newSvc(accepted, active)
			_, _, err := svc.ScanReturn(context.Background(), actor(tt.role), "tok", tt.kode)
			require.Error(t, err)
			assert.Equal(t, tt.want, fiberCode(t, err))
			assert.Empty(t, api.mutations())
		})
	}
}

func Test_Scan_ParseMessage(t *testing.T) {
	svc, api, _ := newSvc()
	_, _, err := svc.ScanPickup(context.Background(), actor(constants.RoleStaff), "tok", "hello")
	require.Error(t, err)
	assert.Equal(t, "Format QR tidak dikenali. Harus berupa PINJAM-{id}", err.(*fiber.Error).Message)
	assert.Empty(t, api.calls, "no fetch for unparsable code")
}

/* ===================== read ===================== */

func Test_Detail_CivitasOwnership(t *testing.T) {
	svc, api, _ := newSvc(general)
	api.qr = ptr("data:image/png;base64,AAA")

	owner := helperAuth.Actor{NIK: "100", Role: constants.RoleCivitas}
	v, err := svc.Detail(context.Background(), owner, "tok", 2)
	require.NoError(t, err)
	assert.Equal(t, "PINJAM-2", v.KodeQR)
	require.NotNil(t, v.QRCode)
	assert.Empty(t, v.Aksi)
	assert.Equal(t, constants.RoleStaff, v.Otoritas)

	other := helperAuth.Actor{NIK: "555", Role: constants.RoleCivitas}
	_, err = svc.Detail(context.Background(), other, "tok", 2)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))

	_, err = svc.Detail(context.Background(), actor(constants.RoleKepalaBagian), "tok", 2)
	require.NoError(t, err)
}

func Test_List(t *testing.T) {
	svc, _, _ := newSvc(restricted, general, deptItem, accepted, active, done)

	t.Run("civitas_own_only", func(t *testing.T) {
		views, meta, err := svc.List(context.Background(), helperAuth.Actor{NIK: "100", Role: constants.RoleCivitas}, "tok", dto.ListQuery{})
		require.NoError(t, err)
		assert.Len(t, views, 2)
		assert.EqualValues(t, 2, meta.Total)
	})

	t.Run("kategori", func(t *testing.T) {
		views, _, err := svc.List(context.Background(), actor(constants.RoleKepalaBagian), "tok", dto.ListQuery{Kategori: "jurusan"})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, int64(1), views[0].Peminjaman.ID)
	})

	t.Run("perlu_aksi_staff", func(t *testing.T) {
		views, _, err := svc.List(context.Background(), actor(constants.RoleStaff), "tok", dto.ListQuery{PerluAksi: true})
		require.NoError(t, err)
		ids := []int64{}
		for _, v := range views {
			ids = append(ids, v.Peminjaman.ID)
		}
		assert.Equal(t, []int64{2, 4, 5}, ids)
	})

	t.Run("search_and_paging", func(t *testing.T) {
		views, meta, err := svc.List(context.Background(), actor(constants.RoleStaff), "tok", dto.ListQuery{
			Q:      "user 300",
			Paging: helper.Params{Page: 2, PerPage: 1},
		})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, int64(6), views[0].Peminjaman.ID)
		assert.EqualValues(t, 2, meta.Total)
		assert.Equal(t, 2, meta.TotalPages)
		assert.True(t, meta.HasPrev)
		assert.False(t, meta.HasNext)
	})

	t.Run("status_filter_forwarded", func(t *testing.T) {
		views, _, err := svc.List(context.Background(), actor(constants.RoleStaff), "tok", dto.ListQuery{Status: "aktif"})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, []model.Aksi{model.AksiKembalikan}, views[0].Aksi)
	})
}

func Test_History(t *testing.T) {
	svc, _, _ := newSvc(accepted)
	_, _, err := svc.Activate(context.Background(), actor(constants.RoleStaff), "tok", 4)
	require.NoError(t, err)

	rows, err := svc.History(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "900", rows[0].ActorNIK)
	assert.Equal(t, []string{"Kursi"}, []string(rows[0].JenisBarang))
	assert.NotEmpty(t, rows[0].Snapshot)

	noLogs := service.NewPeminjamanService(&fakeAPI{}, nil)
	rows, err = noLogs.History(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

/* ===================== create ===================== */

func Test_Create(t *testing.T) {
	svc, api, _ := newSvc()
	req := &dto.CreatePeminjamanRequest{
		NoHP: "081234567890", Agenda: "Seminar", WaktuMulai: "2026-01-10T08:00",
		WaktuSelesai: "2026-01-10T10:00", BarangList: []string{"N1", "N2"},
	}

	_, err := svc.Create(context.Background(), actor(constants.RoleStaff), "tok", req)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	p, err := svc.Create(context.Background(), helperAuth.Actor{NIK: "100", Role: constants.RoleCivitas}, "tok", req)
	require.NoError(t, err)
	assert.Equal(t, int64(99), p.ID)
	require.NotNil(t, api.created)
	assert.Equal(t, []string{"N1", "N2"}, api.created.BarangList)
}
