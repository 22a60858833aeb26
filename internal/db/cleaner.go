package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartReportRetentionCleaner purges reports older than retention with interval
func StartReportRetentionCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				res, err := db.ExecContext(ctx, `
                    DELETE FROM reports
                     WHERE created_at < $1
                `, cutoff)
				if err != nil {
					log.Error("failed to purge expired reports", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("purged expired reports", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
