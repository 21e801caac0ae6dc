// helpers/token.go
package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const accessTokenCookie = "access_token"

var (
	ErrNoToken          = errors.New("unauthorized - no token provided")
	ErrInvalidTokenForm = errors.New("unauthorized - invalid token format")
)

// ExtractAccessToken membaca "Authorization: Bearer <token>", fallback ke
// cookie access_token. Spasi ganda dan kutip di sekitar token ditoleransi.
func ExtractAccessToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if v := strings.TrimSpace(c.Cookies(accessTokenCookie)); v != "" {
			auth = "Bearer " + v
		}
	}
	if auth == "" {
		return "", ErrNoToken
	}

	fields := strings.Fields(auth)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", ErrInvalidTokenForm
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// ClearAccessTokenCookie dipakai saat logout.
func ClearAccessTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
