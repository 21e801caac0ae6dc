package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/constants"
)

// Kunci Locals yang diisi middleware AuthJWT.
const (
	LocActor    = "actor"
	LocRawToken = "raw_token"
	LocTokenExp = "token_exp"
	LocUserRole = "userRole"
)

// Actor = pengguna yang sedang bertindak. Diteruskan eksplisit ke engine
// otorisasi, tidak dibaca dari state global.
type Actor struct {
	NIK     string         `json:"nik"`
	Nama    string         `json:"nama"`
	Email   string         `json:"email"`
	Role    constants.Role `json:"role"`
	Jurusan string         `json:"jurusan"`
}

func (a Actor) Is(roles ...constants.Role) bool {
	return constants.HasRole(roles, a.Role)
}

// GetActor mengambil Actor dari Locals.
func GetActor(c *fiber.Ctx) (Actor, error) {
	a, ok := c.Locals(LocActor).(Actor)
	if !ok || a.Role == "" {
		return Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - sesi tidak ditemukan")
	}
	return a, nil
}

// GetRawToken: token mentah untuk diteruskan ke DSR API.
func GetRawToken(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocRawToken).(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
