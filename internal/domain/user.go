// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	IsStaff      bool      `json:"is_staff" db:"is_staff"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Token представляет непрозрачный bearer-токен пользователя,
// соответствует таблице auth_tokens в бд.
// Инвариант: не более одной валидной строки на пользователя.
type Token struct {
	Key       string    `json:"key" db:"key"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserUpdate описывает частичное обновление профиля:
// nil-поле означает "оставить как есть".
type UserUpdate struct {
	Email    *string
	Name     *string
	Password *string
}
