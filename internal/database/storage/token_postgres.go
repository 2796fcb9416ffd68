package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/jmoiron/sqlx"
)

// TokenStorage реализует ports.TokenStorage поверх sqlx.
type TokenStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewTokenStorage(db *sqlx.DB, logger *slog.Logger) *TokenStorage {
	return &TokenStorage{db: db, logger: logger}
}

// ReplaceToken удаляет старый токен пользователя и сохраняет новый
// в одной транзакции: на пользователя остается не более одного токена.
func (s *TokenStorage) ReplaceToken(ctx context.Context, token *domain.Token) error {
	start := time.Now()
	token.CreatedAt = time.Now()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, token.UserID); err != nil {
		s.logger.Error("failed to delete previous token", "user_id", token.UserID, "error", err)
		return fmt.Errorf("ошибка при удалении старого токена: %w", err)
	}

	if _, err := tx.NamedExecContext(ctx,
		`INSERT INTO auth_tokens (key, user_id, created_at) VALUES (:key, :user_id, :created_at)`,
		token,
	); err != nil {
		s.logger.Error("failed to insert token", "user_id", token.UserID, "error", err)
		return fmt.Errorf("ошибка при сохранении токена: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	s.logger.Info("token replaced successfully",
		"user_id", token.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetToken получает токен по ключу
func (s *TokenStorage) GetToken(ctx context.Context, key string) (*domain.Token, error) {
	var token domain.Token
	query := `SELECT * FROM auth_tokens WHERE key = $1 LIMIT 1`

	err := s.db.GetContext(ctx, &token, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get token", "error", err)
		return nil, fmt.Errorf("ошибка при получении токена: %w", err)
	}
	return &token, nil
}
