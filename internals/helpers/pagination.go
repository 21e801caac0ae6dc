// file: internals/helpers/pagination.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage = 1
)

type Options struct {
	DefaultPerPage int
	MaxPerPage     int
}

// ===== Preset =====
var (
	DefaultOpts = Options{DefaultPerPage: 10, MaxPerPage: 100}
	AdminOpts   = Options{DefaultPerPage: 20, MaxPerPage: 200}
)

type Params struct {
	Page    int
	PerPage int
}

// ParseFiber membaca ?page= & ?per_page= (alias ?limit=) lalu normalisasi.
func ParseFiber(c *fiber.Ctx, opt Options) Params {
	page := atoiDefault(c.Query("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	per := opt.DefaultPerPage
	perRaw := strings.TrimSpace(c.Query("per_page"))
	if perRaw == "" {
		perRaw = strings.TrimSpace(c.Query("limit"))
	}
	if n, err := strconv.Atoi(perRaw); err == nil && n > 0 {
		per = n
	}
	if opt.MaxPerPage > 0 && per > opt.MaxPerPage {
		per = opt.MaxPerPage
	}
	if per < 1 {
		per = 10
	}

	return Params{Page: page, PerPage: per}
}

func (p Params) Limit() int  { return p.PerPage }
func (p Params) Offset() int { return (p.Page - 1) * p.PerPage }

// Paginate memotong slice yang sudah difilter di memori (data dari DSR API
// tidak mendukung paging sisi server).
func Paginate[T any](items []T, p Params) ([]T, Pagination) {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultOpts.DefaultPerPage
	}
	total := len(items)
	meta := BuildPaginationFromPage(int64(total), p.Page, p.PerPage)

	// halaman di luar data → kosong; (Page-1)*PerPage tidak dihitung agar tidak overflow
	start, end := total, total
	if p.Page-1 <= total/p.PerPage {
		start = p.Offset()
		if start > total {
			start = total
		}
		end = start + min(p.Limit(), total-start)
	}

	page := items[start:end]
	if page == nil {
		page = []T{}
	}
	meta.Count = len(page)
	return page, meta
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
