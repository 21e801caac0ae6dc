// internals/middlewares/auth/claim_utils.go
package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"dsr_faste_backend/internals/constants"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
)

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) (time.Time, error) {
	expVal, ok := claims["exp"]
	if !ok {
		return time.Time{}, fmt.Errorf("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid exp format")
		}
		expUnix = n
	default:
		return time.Time{}, fmt.Errorf("invalid exp type %T", expVal)
	}

	expTime := time.Unix(expUnix, 0).UTC()
	if time.Now().UTC().After(expTime.Add(skew)) {
		return time.Time{}, fmt.Errorf("token expired at %v", expTime)
	}
	return expTime, nil
}

// actorFromClaims: nik (atau sub), nama (atau name), email, role, jurusan.
func actorFromClaims(claims jwt.MapClaims) (helperAuth.Actor, error) {
	role, ok := constants.ParseRole(claimString(claims, "role"))
	if !ok {
		return helperAuth.Actor{}, fmt.Errorf("unknown role %q", claimString(claims, "role"))
	}
	nik := firstNonEmpty(claimString(claims, "nik"), claimString(claims, "sub"))
	if nik == "" {
		return helperAuth.Actor{}, fmt.Errorf("no nik")
	}
	return helperAuth.Actor{
		NIK:     nik,
		Nama:    firstNonEmpty(claimString(claims, "nama"), claimString(claims, "name")),
		Email:   claimString(claims, "email"),
		Role:    role,
		Jurusan: claimString(claims, "jurusan"),
	}, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
