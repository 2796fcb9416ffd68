package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/google/uuid"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей.
type UserStorage interface {
	// CreateUser сохраняет нового пользователя. Дубликат email (без учета регистра)
	// возвращает domain.ValidationError.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByEmail возвращает пользователя по нормализованному email
	// или domain.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUserByID возвращает пользователя по id или domain.ErrNotFound.
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// UpdateUser перезаписывает изменяемые поля пользователя.
	UpdateUser(ctx context.Context, user *domain.User) error
}

// TokenStorage определяет методы для взаимодействия с хранилищем токенов.
type TokenStorage interface {
	// ReplaceToken атомарно удаляет старый токен пользователя и сохраняет новый.
	ReplaceToken(ctx context.Context, token *domain.Token) error

	// GetToken возвращает токен по ключу или domain.ErrNotFound.
	GetToken(ctx context.Context, key string) (*domain.Token, error)
}

// TagStorage определяет методы для взаимодействия с хранилищем тегов.
type TagStorage interface {
	// ListTags возвращает теги владельца в стабильном порядке (name, id).
	ListTags(ctx context.Context, ownerID uuid.UUID) ([]domain.Tag, error)

	// CreateTag сохраняет тег; дубликат (owner, name) -> domain.ValidationError.
	CreateTag(ctx context.Context, tag *domain.Tag) error

	// GetTagsByIDs возвращает теги владельца с перечисленными id.
	// Чужие и несуществующие id в результат не попадают.
	GetTagsByIDs(ctx context.Context, ownerID uuid.UUID, ids []int64) ([]domain.Tag, error)
}

type IngredientStorage interface {
	ListIngredients(ctx context.Context, ownerID uuid.UUID) ([]domain.Ingredient, error)
	CreateIngredient(ctx context.Context, ingredient *domain.Ingredient) error
	GetIngredientsByIDs(ctx context.Context, ownerID uuid.UUID, ids []int64) ([]domain.Ingredient, error)
}

// RecipeStorage определяет методы для взаимодействия с хранилищем рецептов.
type RecipeStorage interface {
	// ListRecipes возвращает рецепты владельца по убыванию id (новые первыми).
	ListRecipes(ctx context.Context, ownerID uuid.UUID, filter domain.RecipeFilter) ([]domain.Recipe, error)

	// GetRecipe возвращает рецепт владельца со связями или domain.ErrNotFound.
	GetRecipe(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Recipe, error)

	// CreateRecipe сохраняет рецепт и связи с тегами/ингредиентами в одной транзакции.
	CreateRecipe(ctx context.Context, recipe *domain.Recipe) error

	// UpdateRecipe перезаписывает поля рецепта; replaceTags/replaceIngredients
	// управляют заменой наборов связей.
	UpdateRecipe(ctx context.Context, recipe *domain.Recipe, replaceTags, replaceIngredients bool) error

	// DeleteRecipe удаляет рецепт владельца вместе со связями или возвращает domain.ErrNotFound.
	DeleteRecipe(ctx context.Context, ownerID uuid.UUID, id int64) error
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (S3/MinIO),
// порт для хранения бинарных данных (картинок рецептов).
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его публичный URL.
	// key — уникальное имя объекта, reader — источник данных,
	// contentType — MIME-тип файла.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteFile удаляет файл из хранилища по его ключу.
	DeleteFile(ctx context.Context, key string) error
}
