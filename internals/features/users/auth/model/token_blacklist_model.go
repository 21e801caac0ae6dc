package model

import (
	"time"

	"gorm.io/gorm"
)

// TokenBlacklist: access token yang sudah logout. Kolom token berisi
// HMAC-SHA256 (hex) dari token mentah, bukan token itu sendiri.
type TokenBlacklist struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Token     string         `gorm:"type:varchar(64);not null;uniqueIndex" json:"-"`
	NIK       string         `gorm:"type:varchar(32);index" json:"nik"`
	ExpiredAt time.Time      `gorm:"index" json:"expired_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
