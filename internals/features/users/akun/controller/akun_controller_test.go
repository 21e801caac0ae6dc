package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/users/akun/controller"
	"dsr_faste_backend/internals/features/users/akun/service"
	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

type stubAkun struct {
	calls   []string
	payload any
	err     error
}

func (s *stubAkun) done(call string, p any) (json.RawMessage, error) {
	s.calls = append(s.calls, call)
	s.payload = p
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(`{"nik":"123"}`), nil
}

func (s *stubAkun) GetAkun(_ context.Context, _ string, nik string) (json.RawMessage, error) {
	return s.done("get "+nik, nil)
}

func (s *stubAkun) UpdateAkun(_ context.Context, _ string, nik string, p any) (json.RawMessage, error) {
	return s.done("put "+nik, p)
}

func (s *stubAkun) UpdateAkunSendiri(_ context.Context, _ string, p any) (json.RawMessage, error) {
	return s.done("put akun", p)
}

func newApp(api *stubAkun, role constants.Role) *fiber.App {
	ctl := controller.NewAkunController(service.NewAkunService(api))
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocActor, helperAuth.Actor{NIK: "900", Role: role})
		return c.Next()
	})
	app.Get("/akun/:nik", ctl.Detail)
	app.Put("/akun/:nik", ctl.Update)
	app.Put("/me/akun", ctl.UpdateSelf)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func Test_Akun_Update(t *testing.T) {
	valid := `{"nama":" Ani ","email":"Ani@Kampus.ac.id","role":"staff"}`

	tests := []struct {
		name   string
		role   constants.Role
		target string
		body   string
		want   int
		calls  int
	}{
		{"kepala", constants.RoleKepalaBagian, "/akun/123", valid, fiber.StatusOK, 1},
		{"staff_ditolak", constants.RoleStaff, "/akun/123", valid, fiber.StatusForbidden, 0},
		{"nik_bukan_angka", constants.RoleKepalaBagian, "/akun/akun", valid, fiber.StatusBadRequest, 0},
		{"role_tidak_dikenal", constants.RoleKepalaBagian, "/akun/123", `{"nama":"A","email":"a@b.id","role":"admin"}`, fiber.StatusUnprocessableEntity, 0},
		{"password_pendek", constants.RoleKepalaBagian, "/akun/123", `{"nama":"A","email":"a@b.id","role":"staff","password":"123"}`, fiber.StatusUnprocessableEntity, 0},
		{"lepas_role_sendiri", constants.RoleKepalaBagian, "/akun/900", valid, fiber.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubAkun{}
			resp := do(t, newApp(api, tt.role), http.MethodPut, tt.target, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Len(t, api.calls, tt.calls)
		})
	}
}

func Test_Akun_UpdateNormalizesPayload(t *testing.T) {
	api := &stubAkun{}
	resp := do(t, newApp(api, constants.RoleKepalaBagian), http.MethodPut, "/akun/123", `{"nama":" Ani ","email":" Ani@Kampus.ac.id","role":"staff_prodi"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, err := json.Marshal(api.payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nama":"Ani","email":"ani@kampus.ac.id","role":"staff_prodi"}`, string(b))
}

func Test_Akun_Detail(t *testing.T) {
	api := &stubAkun{}
	resp := do(t, newApp(api, constants.RoleKepalaBagian), http.MethodGet, "/akun/123", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"get 123"}, api.calls)

	api = &stubAkun{err: &dsrapi.UpstreamError{Status: fiber.StatusNotFound, Message: "User tidak ditemukan"}}
	resp = do(t, newApp(api, constants.RoleKepalaBagian), http.MethodGet, "/akun/404", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func Test_Akun_UpdateSelf(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
		sent string
	}{
		{"tanpa_password", `{"nama":"Budi","email":"budi@kampus.ac.id"}`, fiber.StatusOK, `{"nama":"Budi","email":"budi@kampus.ac.id"}`},
		{"password_cocok", `{"nama":"Budi","email":"budi@kampus.ac.id","password":"rahasia123","password_confirm":"rahasia123"}`, fiber.StatusOK, `{"nama":"Budi","email":"budi@kampus.ac.id","password":"rahasia123"}`},
		{"konfirmasi_beda", `{"nama":"Budi","email":"budi@kampus.ac.id","password":"rahasia123","password_confirm":"rahasia321"}`, fiber.StatusUnprocessableEntity, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubAkun{}
			resp := do(t, newApp(api, constants.RoleCivitas), http.MethodPut, "/me/akun", tt.body)
			require.Equal(t, tt.want, resp.StatusCode)
			if tt.sent == "" {
				assert.Empty(t, api.calls)
				return
			}
			b, err := json.Marshal(api.payload)
			require.NoError(t, err)
			assert.JSONEq(t, tt.sent, string(b))
		})
	}
}
