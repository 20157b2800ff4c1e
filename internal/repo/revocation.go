package repo

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yasirmansoori/Authentication-with-JWT/internal/models"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/tokens"
)

// RevokeToken marks a refresh token as unusable until its natural expiry.
// Revoking an already-revoked token is not an error.
func (r *GormRepo) RevokeToken(ctx context.Context, rawToken string, userID uuid.UUID, expiresAt time.Time) error {
	entry := models.RevokedToken{
		TokenHash: tokens.Sha256Hex(rawToken),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return r.DB.WithContext(ctx).
		Where("token_hash = ?", entry.TokenHash).
		FirstOrCreate(&entry).Error
}

func (r *GormRepo) IsTokenRevoked(ctx context.Context, rawToken string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.RevokedToken{}).
		Where("token_hash = ?", tokens.Sha256Hex(rawToken)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteExpiredTokens evicts entries whose underlying token has passed its
// own expiry. Entries are never removed early, so a revoked token can never
// report as valid again while it is still live.
func (r *GormRepo) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	tx := r.DB.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&models.RevokedToken{})
	return tx.RowsAffected, tx.Error
}

// StartRevocationSweep prunes expired revocation entries on a fixed interval
// until ctx is cancelled.
func (r *GormRepo) StartRevocationSweep(ctx context.Context, interval time.Duration, l *slog.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := r.DeleteExpiredTokens(ctx)
				if err != nil {
					l.Error("revocation_sweep_failed", "error", err)
					continue
				}
				if removed > 0 {
					l.Info("revocation_sweep", "removed", removed)
				}
			}
		}
	}()
}
