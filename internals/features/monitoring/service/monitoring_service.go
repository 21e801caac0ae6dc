// file: internals/features/monitoring/service/monitoring_service.go
package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/monitoring/dto"
	"dsr_faste_backend/internals/features/peminjaman/model"
	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

const jenisProyektor = "Proyektor"

// MonitoringAPI: data master dari DSR API.
type MonitoringAPI interface {
	ListBarangUnit(ctx context.Context, token string) ([]model.BarangUnit, error)
	ListLokasi(ctx context.Context, token string) ([]model.Lokasi, error)
	ListAkun(ctx context.Context, token, role string) ([]model.UserRingkas, error)
}

type fetchFunc func(ctx context.Context, api MonitoringAPI, token, q string, p helper.Params) (any, helper.Pagination, error)

type view struct {
	dto.MenuItem
	fetch fetchFunc
}

var (
	kepala     = []constants.Role{constants.RoleKepalaBagian}
	staff      = []constants.Role{constants.RoleStaff}
	staffProdi = []constants.Role{constants.RoleStaffProdi}
)

// urutan = urutan menu
var views = []view{
	{dto.MenuItem{Slug: "users-civitas", Judul: "Akun Civitas", Roles: kepala}, fetchCivitas},
	{dto.MenuItem{Slug: "users-staff", Judul: "Akun Staff", Roles: kepala}, fetchStaff},
	{dto.MenuItem{Slug: "semua-barang", Judul: "Semua Barang", Roles: kepala}, barangWhere(nil)},
	{dto.MenuItem{Slug: "semua-lokasi", Judul: "Semua Lokasi", Roles: []constants.Role{constants.RoleKepalaBagian, constants.RoleStaff}}, fetchLokasi},
	{dto.MenuItem{Slug: "barang-non-proyektor", Judul: "Barang Non-Proyektor", Roles: staff}, barangWhere(func(u *model.BarangUnit) bool {
		return !isProyektor(u)
	})},
	{dto.MenuItem{Slug: "proyektor", Judul: "Proyektor", Roles: staffProdi}, barangWhere(isProyektor)},
}

type MonitoringService struct {
	API MonitoringAPI
}

func NewMonitoringService(api MonitoringAPI) *MonitoringService {
	return &MonitoringService{API: api}
}

// Menu: tampilan yang boleh dibuka aktor.
func (s *MonitoringService) Menu(actor helperAuth.Actor) []dto.MenuItem {
	out := make([]dto.MenuItem, 0, len(views))
	for _, v := range views {
		if actor.Is(v.Roles...) {
			out = append(out, v.MenuItem)
		}
	}
	return out
}

// View: slug tak dikenal → 404, slug bukan untuk role aktor → 403.
func (s *MonitoringService) View(ctx context.Context, actor helperAuth.Actor, token, slug, q string, p helper.Params) (any, helper.Pagination, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, v := range views {
		if v.Slug != slug {
			continue
		}
		if !actor.Is(v.Roles...) {
			return nil, helper.Pagination{}, fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses ke halaman monitoring ini")
		}
		data, meta, err := v.fetch(ctx, s.API, token, strings.ToLower(strings.TrimSpace(q)), p)
		if err != nil {
			return nil, helper.Pagination{}, dsrapi.AsFiberError(err)
		}
		return data, meta, nil
	}
	return nil, helper.Pagination{}, fiber.NewError(fiber.StatusNotFound, "Halaman monitoring tidak ditemukan")
}

/* =========================================================
   FETCHERS
========================================================= */

func fetchCivitas(ctx context.Context, api MonitoringAPI, token, q string, p helper.Params) (any, helper.Pagination, error) {
	users, err := api.ListAkun(ctx, token, string(constants.RoleCivitas))
	if err != nil {
		return nil, helper.Pagination{}, err
	}
	out := filter(users, func(u *model.UserRingkas) bool { return matchUser(u, q) })
	page, meta := helper.Paginate(out, p)
	return page, meta, nil
}

func fetchStaff(ctx context.Context, api MonitoringAPI, token, q string, p helper.Params) (any, helper.Pagination, error) {
	users, err := api.ListAkun(ctx, token, "")
	if err != nil {
		return nil, helper.Pagination{}, err
	}
	out := filter(users, func(u *model.UserRingkas) bool {
		r, ok := constants.ParseRole(u.Role)
		return ok && constants.HasRole(constants.OperatorRoles, r) && matchUser(u, q)
	})
	page, meta := helper.Paginate(out, p)
	return page, meta, nil
}

func fetchLokasi(ctx context.Context, api MonitoringAPI, token, q string, p helper.Params) (any, helper.Pagination, error) {
	lokasi, err := api.ListLokasi(ctx, token)
	if err != nil {
		return nil, helper.Pagination{}, err
	}
	out := filter(lokasi, func(l *model.Lokasi) bool {
		return contains(q, l.KodeLokasi, l.Lokasi, l.Status)
	})
	page, meta := helper.Paginate(out, p)
	return page, meta, nil
}

func barangWhere(keep func(*model.BarangUnit) bool) fetchFunc {
	return func(ctx context.Context, api MonitoringAPI, token, q string, p helper.Params) (any, helper.Pagination, error) {
		units, err := api.ListBarangUnit(ctx, token)
		if err != nil {
			return nil, helper.Pagination{}, err
		}
		out := filter(units, func(u *model.BarangUnit) bool {
			if keep != nil && !keep(u) {
				return false
			}
			return contains(q, u.NUP, u.KodeBarang, u.Lokasi, u.JenisBarang())
		})
		page, meta := helper.Paginate(out, p)
		return page, meta, nil
	}
}

/* =========================================================
   HELPERS
========================================================= */

func filter[T any](items []T, keep func(*T) bool) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if keep(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

func isProyektor(u *model.BarangUnit) bool {
	return strings.EqualFold(u.JenisBarang(), jenisProyektor)
}

func matchUser(u *model.UserRingkas, q string) bool {
	return contains(q, u.NIK, u.Nama, u.Email)
}

// contains: q sudah lowercase; q kosong cocok dengan semua.
func contains(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
