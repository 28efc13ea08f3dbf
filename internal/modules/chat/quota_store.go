// README: Monthly LLM token quota persisted in chat_usage.
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrInsufficientTokens is returned when a user has no LLM tokens remaining
// for the current month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultTokens is the number of LLM calls granted per user per month.
const DefaultTokens = 100

type QuotaStore struct {
	db     *pgxpool.Pool
	tokens int
}

func NewQuotaStore(db *pgxpool.Pool, tokens int) *QuotaStore {
	if tokens <= 0 {
		tokens = DefaultTokens
	}
	return &QuotaStore{db: db, tokens: tokens}
}

// UseToken atomically checks the monthly quota and deducts one token,
// resetting the counter when last_reset_month is behind the current month.
// Returns ErrInsufficientTokens when no row qualifies.
func (s *QuotaStore) UseToken(ctx context.Context, userID string) error {
	month := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE chat_usage SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE user_id = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
	`, month, s.tokens, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// EnsureUser inserts a fresh quota row; existing rows are left untouched.
func (s *QuotaStore) EnsureUser(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO chat_usage (user_id, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, s.tokens, time.Now().Format("2006-01"))
	return err
}
