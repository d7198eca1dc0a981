package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-library-ledger/internal/logger"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
)

// SessionRepository keeps revoked token ids in Redis until the tokens expire.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a SessionRepository.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("revoked_token:%s", tokenID)
}

// Revoke marks the token as logged out for ttl. Tokens that already expired are skipped.
func (r *SessionRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := revokedKey(tokenID)
	err := r.client.Set(ctx, key, "1", ttl).Err()

	logger.Log.Debugw("redis set",
		"key", key,
		"ttl", ttl,
		"error", err,
	)

	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether the token was logged out.
func (r *SessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedKey(tokenID)
	n, err := r.client.Exists(ctx, key).Result()

	logger.Log.Debugw("redis exists",
		"key", key,
		"result", n,
		"error", err,
	)

	if err != nil {
		return false, fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}
	return n > 0, nil
}
