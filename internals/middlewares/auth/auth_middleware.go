// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret string
	// nil = tanpa cek blacklist
	BlacklistChecker func(ctx context.Context, rawToken string) (bool, error)
	// toleransi jam (exp)
	Leeway time.Duration
}

// AuthJWT memverifikasi access token (HS256) yang diterbitkan DSR API lalu
// menyimpan Actor, token mentah, dan exp ke Locals.
func AuthJWT(opts AuthJWTOpts) fiber.Handler {
	if opts.Leeway == 0 {
		opts.Leeway = 30 * time.Second
	}
	return func(c *fiber.Ctx) error {
		tokenString, err := helper.ExtractAccessToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		if opts.Secret == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(opts.Secret), nil
		}); err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		exp, err := validateTokenExpiry(claims, opts.Leeway)
		if err != nil {
			log.Println("[ERROR] Exp validation:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		if opts.BlacklistChecker != nil {
			bl, err := opts.BlacklistChecker(c.UserContext(), tokenString)
			if err != nil {
				log.Println("[ERROR] DB error saat cek blacklist:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			if bl {
				log.Println("[WARNING] Token ditemukan di blacklist")
				return fiber.NewError(fiber.StatusUnauthorized, "Sesi sudah keluar. Silakan login lagi.")
			}
		}

		actor, err := actorFromClaims(claims)
		if err != nil {
			log.Println("[WARNING] Klaim tidak valid:", err)
			return fiber.NewError(fiber.StatusForbidden, "Peran akun tidak dikenali")
		}

		c.Locals(helperAuth.LocActor, actor)
		c.Locals(helperAuth.LocUserRole, string(actor.Role))
		c.Locals(helperAuth.LocRawToken, tokenString)
		c.Locals(helperAuth.LocTokenExp, exp)
		return c.Next()
	}
}
