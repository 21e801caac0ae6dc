package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"

	authModel "dsr_faste_backend/internals/features/users/auth/model"
	authRepo "dsr_faste_backend/internals/features/users/auth/repository"
)

// TokenHash: HMAC-SHA256(raw, secret) dalam hex (64 karakter).
func TokenHash(rawAccessToken, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(rawAccessToken))
	return hex.EncodeToString(m.Sum(nil))
}

// Add: simpan hash access token sampai expiresAt.
func Add(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret, nik string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return nil
	}
	return authRepo.BlacklistToken(ctx, db, &authModel.TokenBlacklist{
		Token:     TokenHash(rawAccessToken, jwtSecret),
		NIK:       nik,
		ExpiredAt: expiresAt.UTC(),
	})
}

// IsBlacklisted: ada baris aktif dan belum expired?
func IsBlacklisted(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return false, nil
	}
	return authRepo.IsTokenBlacklisted(ctx, db, TokenHash(rawAccessToken, jwtSecret), time.Now().UTC())
}

// BlacklistChecker dipasang di middleware JWT.
type BlacklistChecker func(ctx context.Context, rawAccessToken string) (bool, error)

func NewBlacklistChecker(db *gorm.DB, jwtSecret string) BlacklistChecker {
	return func(ctx context.Context, raw string) (bool, error) {
		return IsBlacklisted(ctx, db, raw, jwtSecret)
	}
}
