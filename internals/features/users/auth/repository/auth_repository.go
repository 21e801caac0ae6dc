// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "dsr_faste_backend/internals/databases"
	authModel "dsr_faste_backend/internals/features/users/auth/model"
)

/* ====================== BLACKLIST TOKEN ====================== */

// BlacklistToken menyimpan hash token. Hash yang sudah ada (logout ganda)
// diperbarui masa berlakunya dan dihidupkan lagi jika sempat terhapus.
func BlacklistToken(ctx context.Context, db *gorm.DB, row *authModel.TokenBlacklist) error {
	err := db.WithContext(ctx).Create(row).Error
	if err == nil || !database.IsUniqueViolation(err) {
		return err
	}
	return db.WithContext(ctx).
		Unscoped().
		Model(&authModel.TokenBlacklist{}).
		Where("token = ?", row.Token).
		Updates(map[string]any{
			"expired_at": row.ExpiredAt,
			"deleted_at": nil,
		}).Error
}

// IsTokenBlacklisted: ada baris aktif yang belum lewat masa berlaku.
func IsTokenBlacklisted(ctx context.Context, db *gorm.DB, tokenHash string, now time.Time) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", tokenHash, now).
		Count(&n).Error
	return n > 0, err
}

// CleanupExpiredBlacklist menghapus permanen baris yang kadaluarsa sebelum `before`,
// per batch agar tidak mengunci tabel terlalu lama.
func CleanupExpiredBlacklist(ctx context.Context, db *gorm.DB, before time.Time, batch int) (int64, error) {
	if batch <= 0 {
		batch = 500
	}
	var total int64
	for {
		var ids []uint
		if err := db.WithContext(ctx).
			Unscoped().
			Model(&authModel.TokenBlacklist{}).
			Where("expired_at < ?", before).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
			Limit(batch).
			Pluck("id", &ids).Error; err != nil {
			return total, err
		}
		if len(ids) == 0 {
			return total, nil
		}
		res := db.WithContext(ctx).Unscoped().Delete(&authModel.TokenBlacklist{}, ids)
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
		if len(ids) < batch {
			return total, nil
		}
	}
}
