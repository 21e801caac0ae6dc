package repository

import (
	"context"

	"gorm.io/gorm"

	"dsr_faste_backend/internals/features/peminjaman/model"
)

type ActionLogRepository struct {
	DB *gorm.DB
}

func NewActionLogRepository(db *gorm.DB) *ActionLogRepository {
	return &ActionLogRepository{DB: db}
}

func (r *ActionLogRepository) Create(ctx context.Context, row *model.PeminjamanActionLogModel) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

// ListByPeminjaman: terbaru dulu.
func (r *ActionLogRepository) ListByPeminjaman(ctx context.Context, peminjamanID int64, limit int) ([]model.PeminjamanActionLogModel, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []model.PeminjamanActionLogModel
	err := r.DB.WithContext(ctx).
		Where("peminjaman_action_log_peminjaman_id = ?", peminjamanID).
		Order("peminjaman_action_log_created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
