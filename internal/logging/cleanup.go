package logging

import (
	"log/slog"
	"time"

	"github.com/motorplaza/motorplaza-backend/internal/models"
	"gorm.io/gorm"
)

// Persisted error records are kept for 30 days.
const logRetention = 30 * 24 * time.Hour

// StartCleanup deletes expired system_logs rows once a day until done is
// closed. The first sweep runs immediately so restarts do not let a
// backlog accumulate.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		sweep(db)

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sweep(db)
			case <-done:
				return
			}
		}
	}()
}

func sweep(db *gorm.DB) {
	cutoff := time.Now().Add(-logRetention)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("log cleanup failed", "error", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		slog.Info("expired log records removed", "deleted", result.RowsAffected)
	}
}
