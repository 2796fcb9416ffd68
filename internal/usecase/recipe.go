package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/google/uuid"
)

// CreateRecipeInput — проверенные данные для создания рецепта.
type CreateRecipeInput struct {
	Title         string
	TimeMinutes   int
	Price         float64
	Link          string
	TagIDs        []int64
	IngredientIDs []int64
}

// RecipeUseCase определяет интерфейс для бизнес-логики работы с рецептами.
// Владелец (ownerID) всегда приходит из аутентифицированного запроса,
// клиентский ввод на него не влияет.
type RecipeUseCase interface {
	// List возвращает рецепты владельца по убыванию id, с опциональным
	// фильтром по тегам/ингредиентам.
	List(ctx context.Context, ownerID uuid.UUID, filter domain.RecipeFilter) ([]domain.Recipe, error)

	// Get возвращает рецепт владельца или domain.ErrNotFound.
	Get(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Recipe, error)

	// Create валидирует ввод, проверяет принадлежность тегов/ингредиентов
	// владельцу и сохраняет рецепт.
	Create(ctx context.Context, ownerID uuid.UUID, input CreateRecipeInput) (*domain.Recipe, error)

	// Update применяет изменения. full=true — полная замена: обязательные поля
	// должны присутствовать, отсутствующие наборы тегов/ингредиентов очищаются.
	// full=false — частичное обновление: не переданные поля не трогаются.
	Update(ctx context.Context, ownerID uuid.UUID, id int64, changes domain.RecipeChanges, full bool) (*domain.Recipe, error)

	// Delete удаляет рецепт владельца вместе со связями.
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error

	// UploadImage сохраняет картинку рецепта в файловом хранилище
	// и записывает ее публичный URL в рецепт.
	UploadImage(ctx context.Context, ownerID uuid.UUID, id int64, content io.Reader, contentType string) (*domain.Recipe, error)
}

// TagUseCase определяет интерфейс для бизнес-логики работы с тегами.
type TagUseCase interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Tag, error)
	Create(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Tag, error)
}

// IngredientUseCase определяет интерфейс для бизнес-логики работы с ингредиентами.
type IngredientUseCase interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Ingredient, error)
	Create(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Ingredient, error)
}
