// file: internals/helpers/dsrapi/dsr_endpoints.go
package helper

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/features/peminjaman/model"
)

type ListFilter struct {
	Status     model.Status
	Verifikasi model.Verifikasi
}

func (f ListFilter) values() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Verifikasi != "" {
		q.Set("verifikasi", string(f.Verifikasi))
	}
	return q
}

// CreatePayload: body POST /peminjaman sesuai kontrak DSR API.
type CreatePayload struct {
	NoHP           string   `json:"no_hp"`
	Agenda         string   `json:"Agenda"`
	WaktuMulai     string   `json:"waktuMulai"`
	WaktuSelesai   string   `json:"waktuSelesai"`
	KodeLokasi     *string  `json:"kodeLokasi,omitempty"`
	LokasiTambahan *string  `json:"lokasiTambahan,omitempty"`
	BarangList     []string `json:"barangList"`
}

type detailEnvelope struct {
	Peminjaman *model.Peminjaman `json:"peminjaman"`
	QRCode     *string           `json:"qrCode"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

/* =========================================================
   PEMINJAMAN
========================================================= */

func (cl *Client) ListPeminjaman(ctx context.Context, token string, f ListFilter) ([]model.Peminjaman, error) {
	raw, err := cl.do(ctx, fiber.MethodGet, "/peminjaman", token, f.values(), nil)
	if err != nil {
		return nil, err
	}
	items, err := decode[[]model.Peminjaman](raw)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Peminjaman{}
	}
	return items, nil
}

// GetPeminjaman: detail + qrCode (data URL) jika tersedia.
func (cl *Client) GetPeminjaman(ctx context.Context, token string, id int64) (*model.Peminjaman, *string, error) {
	raw, err := cl.do(ctx, fiber.MethodGet, idPath("/peminjaman", id), token, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	return decodeDetail(raw)
}

func (cl *Client) CreatePeminjaman(ctx context.Context, token string, payload CreatePayload) (*model.Peminjaman, error) {
	raw, err := cl.do(ctx, fiber.MethodPost, "/peminjaman", token, nil, payload)
	if err != nil {
		return nil, err
	}
	p, _, err := decodeDetail(raw)
	return p, err
}

func (cl *Client) Verify(ctx context.Context, token string, id int64, v model.Verifikasi) (string, error) {
	body := map[string]string{"verifikasi": string(v)}
	return cl.mutate(ctx, fiber.MethodPut, idPath("/peminjaman/verify", id), token, body)
}

func (cl *Client) Activate(ctx context.Context, token string, id int64) (string, error) {
	return cl.mutate(ctx, fiber.MethodPut, idPath("/peminjaman/activate", id), token, nil)
}

func (cl *Client) Return(ctx context.Context, token string, id int64) (string, error) {
	return cl.mutate(ctx, fiber.MethodPut, idPath("/peminjaman/return", id), token, nil)
}

func (cl *Client) ScanPickup(ctx context.Context, token string, id int64) (string, error) {
	return cl.mutate(ctx, fiber.MethodPost, idPath("/peminjaman/scan-pickup", id), token, nil)
}

func (cl *Client) ScanReturn(ctx context.Context, token string, id int64) (string, error) {
	return cl.mutate(ctx, fiber.MethodPost, idPath("/peminjaman/scan-return", id), token, nil)
}

/* =========================================================
   MASTER DATA
========================================================= */

func (cl *Client) ListBarangUnit(ctx context.Context, token string) ([]model.BarangUnit, error) {
	return list[model.BarangUnit](ctx, cl, "/barangunit", token, nil)
}

func (cl *Client) ListLokasi(ctx context.Context, token string) ([]model.Lokasi, error) {
	return list[model.Lokasi](ctx, cl, "/lokasi", token, nil)
}

func (cl *Client) ListLokasiAvailable(ctx context.Context, token string) ([]model.Lokasi, error) {
	return list[model.Lokasi](ctx, cl, "/lokasi/available", token, nil)
}

// ListAkun: role kosong = semua akun.
func (cl *Client) ListAkun(ctx context.Context, token, role string) ([]model.UserRingkas, error) {
	q := url.Values{}
	if strings.TrimSpace(role) != "" {
		q.Set("role", role)
	}
	return list[model.UserRingkas](ctx, cl, "/auth", token, q)
}

/* =========================================================
   ASET (detail, perubahan, kondisi)
========================================================= */

func (cl *Client) GetBarangUnit(ctx context.Context, token, nup string) (json.RawMessage, error) {
	return cl.Fetch(ctx, fiber.MethodGet, keyPath("/barangunit", nup), token, nil)
}

func (cl *Client) UpdateBarangUnit(ctx context.Context, token, nup string, payload any) (json.RawMessage, error) {
	return cl.Fetch(ctx, fiber.MethodPut, keyPath("/barangunit", nup), token, payload)
}

func (cl *Client) CreateBarangUnit(ctx context.Context, token string, payload any) (json.RawMessage, error) {
	return cl.Fetch(ctx, fiber.MethodPost, "/barangunit", token, payload)
}

func (cl *Client) ListDataBarang(ctx context.Context, token string) ([]model.DataBarang, error) {
	return list[model.DataBarang](ctx, cl, "/databarang", token, nil)
}

func (cl *Client) CreateDataBarang(ctx context.Context, token string, payload any) (json.RawMessage, error) {
	return cl.Fetch(ctx, fiber.MethodPost, "/databarang", token, payload)
}

func (cl *Client) GetLokasi(ctx context.Context, token, kode string) (json.RawMessage, error) {
	return cl.Fetch(ctx, fiber.MethodGet, keyPath("/lokasi", kode), token, nil)
}

func (cl *Client) UpdateLokasi(ctx context.Context, token, kode string, payload any) (json.RawMessage, error) {
	return cl.Fetch(ctx, fiber.MethodPut, keyPath("/lokasi", kode), token, payload)
}

func (cl *Client) CreateLokasi(ctx context.Context, token string, payload any) (json.RawMessage, error) {
	return cl.Fetch(ctx, fiber.MethodPost, "/lokasi", token, payload)
}

// CreateKondisi: form multipart (dengan foto) diteruskan apa adanya ke POST /monitoring.
func (cl *Client) CreateKondisi(ctx context.Context, token, contentType string, body []byte) (json.RawMessage, error) {
	res, err := cl.Raw(ctx, fiber.MethodPost, "/monitoring", token, nil, body, contentType)
	if err != nil {
		return nil, err
	}
	if res.Status < 200 || res.Status > 299 {
		return nil, upstreamError(res)
	}
	return rawData(unwrapData(res.Body)), nil
}

/* =========================================================
   AKUN
========================================================= */

func (cl *Client) GetAkun(ctx context.Context, token, nik string) (json.RawMessage, error) {
	return cl.Fetch(ctx, fiber.MethodGet, keyPath("/auth", nik), token, nil)
}

func (cl *Client) UpdateAkun(ctx context.Context, token, nik string, payload any) (json.RawMessage, error) {
	return cl.Fetch(ctx, fiber.MethodPut, keyPath("/auth", nik), token, payload)
}

// UpdateAkunSendiri: profil pemilik token.
func (cl *Client) UpdateAkunSendiri(ctx context.Context, token string, payload any) (json.RawMessage, error) {
	return cl.Fetch(ctx, fiber.MethodPut, "/auth/akun", token, payload)
}

/* =========================================================
   PASSTHROUGH
========================================================= */

// Fetch: request JSON; non-2xx → *UpstreamError; {data: X} dibuka jadi X mentah.
func (cl *Client) Fetch(ctx context.Context, method, path, token string, payload any) (json.RawMessage, error) {
	raw, err := cl.do(ctx, method, path, token, nil, payload)
	if err != nil {
		return nil, err
	}
	return rawData(raw), nil
}

// Download: GET biner (xlsx). Non-2xx tetap jadi *UpstreamError.
func (cl *Client) Download(ctx context.Context, token, path string, query url.Values) (*Response, error) {
	res, err := cl.Raw(ctx, fiber.MethodGet, path, token, query, nil, "")
	if err != nil {
		return nil, err
	}
	if res.Status < 200 || res.Status > 299 {
		return nil, upstreamError(res)
	}
	return res, nil
}

// Forward: teruskan body mentah; status upstream dikembalikan apa adanya.
func (cl *Client) Forward(ctx context.Context, method, path, token string, body []byte) (*Response, error) {
	return cl.Raw(ctx, method, path, token, nil, body, fiber.MIMEApplicationJSON)
}

/* =========================================================
   INTERNAL
========================================================= */

func (cl *Client) mutate(ctx context.Context, method, path, token string, payload any) (string, error) {
	res, err := cl.send(ctx, method, path, token, nil, payload)
	if err != nil {
		return "", err
	}
	var m messageEnvelope
	if err := sonic.Unmarshal(res.Body, &m); err == nil {
		return strings.TrimSpace(m.Message), nil
	}
	return "", nil
}

func list[T any](ctx context.Context, cl *Client, path, token string, q url.Values) ([]T, error) {
	raw, err := cl.do(ctx, fiber.MethodGet, path, token, q, nil)
	if err != nil {
		return nil, err
	}
	out, err := decode[[]T](raw)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// decodeDetail: {peminjaman, qrCode} atau objek peminjaman langsung.
func decodeDetail(raw []byte) (*model.Peminjaman, *string, error) {
	var env detailEnvelope
	if err := sonic.Unmarshal(raw, &env); err == nil && env.Peminjaman != nil {
		return env.Peminjaman, env.QRCode, nil
	}
	p, err := decode[model.Peminjaman](raw)
	if err != nil {
		return nil, nil, err
	}
	return &p, env.QRCode, nil
}

// keyPath: segmen dari input pengguna selalu di-escape.
func keyPath(prefix, key string) string {
	return prefix + "/" + url.PathEscape(strings.TrimSpace(key))
}

// rawData: body kosong → nil (dirender null); body bukan JSON → string JSON.
func rawData(b []byte) json.RawMessage {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	if !sonic.Valid(b) {
		quoted, err := sonic.Marshal(string(b))
		if err != nil {
			return nil
		}
		return quoted
	}
	return json.RawMessage(b)
}
