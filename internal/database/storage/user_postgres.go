package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// uniqueViolation — код ошибки PostgreSQL для нарушения unique-ограничения.
const uniqueViolation = "23505"

// UserStorage реализует ports.UserStorage поверх sqlx.
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser сохраняет нового пользователя в базе данных
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
	INSERT INTO users (id, email, password_hash, name, is_active, is_staff, created_at, updated_at)
	VALUES (:id, :email, :password_hash, :name, :is_active, :is_staff, :created_at, :updated_at)
	`

	_, err := s.db.NamedExecContext(ctx, query, user)
	if err != nil {
		// Гонку на одинаковый email разрешает unique-ограничение в бд
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			ve := domain.NewValidationError()
			ve.Add("email", "user with this email already exists")
			return ve
		}
		s.logger.Error("failed to create user", "email", user.Email, "error", err)
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	s.logger.Info("user created successfully",
		"id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByEmail получает пользователя по email
func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1 LIMIT 1`

	err := s.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get user by email", "error", err)
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}
	return &user, nil
}

// GetUserByID получает пользователя по внутреннему ID
func (s *UserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1 LIMIT 1`

	err := s.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get user by id", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении пользователя по ID: %w", err)
	}
	return &user, nil
}

// UpdateUser перезаписывает изменяемые поля пользователя
func (s *UserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()
	user.UpdatedAt = time.Now()

	query := `
	UPDATE users
	SET email = :email, password_hash = :password_hash, name = :name,
	    is_active = :is_active, is_staff = :is_staff, updated_at = :updated_at
	WHERE id = :id
	`

	res, err := s.db.NamedExecContext(ctx, query, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			ve := domain.NewValidationError()
			ve.Add("email", "user with this email already exists")
			return ve
		}
		s.logger.Error("failed to update user", "id", user.ID, "error", err)
		return fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}

	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("user updated successfully",
		"id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
