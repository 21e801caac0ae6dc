package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authRepo "dsr_faste_backend/internals/features/users/auth/repository"
)

const cleanupBatch = 500

// StartBlacklistCleanupScheduler menjadwalkan pembersihan token_blacklist.
// Baris dihapus setelah kadaluarsa lebih dari ttlDays hari.
// Cron yang dikembalikan harus di-Stop saat shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB, schedule string, ttlDays int) (*cron.Cron, error) {
	if ttlDays < 0 {
		ttlDays = 0
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		RunBlacklistCleanup(ctx, db, ttlDays, time.Now())
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[CLEANUP] started schedule=%q ttl=%dd", schedule, ttlDays)
	c.Start()
	return c, nil
}

// RunBlacklistCleanup satu putaran pembersihan; dipanggil cron.
func RunBlacklistCleanup(ctx context.Context, db *gorm.DB, ttlDays int, now time.Time) int64 {
	log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")

	deleteBefore := now.UTC().Add(-time.Duration(ttlDays) * 24 * time.Hour)
	n, err := authRepo.CleanupExpiredBlacklist(ctx, db, deleteBefore, cleanupBatch)
	switch {
	case err != nil:
		log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
	case n > 0:
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	default:
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
	return n
}
