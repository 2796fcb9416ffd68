package usecase

import (
	"context"

	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/google/uuid"
)

// UserUseCase определяет интерфейс для бизнес-логики работы с пользователями и токенами.
// Аутентифицированный пользователь всегда передается явно — никакого
// неявного "текущего пользователя" в слое бизнес-логики нет.
type UserUseCase interface {
	// Register создает нового пользователя.
	// Ошибки валидации (email, длина пароля, дубликат) -> domain.ValidationError.
	Register(ctx context.Context, email, password, name string) (*domain.User, error)

	// IssueToken проверяет учетные данные и выдает свежий непрозрачный токен.
	// Старый токен пользователя при этом перестает действовать.
	// Неверные данные -> domain.AuthenticationError; какое именно поле
	// оказалось неверным, наружу не сообщается.
	IssueToken(ctx context.Context, email, password string) (string, error)

	// ResolveToken возвращает активного пользователя по ключу токена.
	// Неизвестный/испорченный ключ и неактивный пользователь одинаково
	// дают domain.ErrUnauthenticated.
	ResolveToken(ctx context.Context, key string) (*domain.User, error)

	// Profile возвращает профиль пользователя.
	Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile применяет частичное обновление профиля;
	// пароль при изменении перехешируется.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update domain.UserUpdate) (*domain.User, error)
}
