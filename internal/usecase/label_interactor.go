package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/GoArmGo/RecipeApp/internal/core/ports"
	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/google/uuid"
)

// tagInteractor реализует TagUseCase.
type tagInteractor struct {
	tags   ports.TagStorage
	logger *slog.Logger
}

func NewTagUseCase(tags ports.TagStorage, logger *slog.Logger) TagUseCase {
	return &tagInteractor{tags: tags, logger: logger}
}

func (t *tagInteractor) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Tag, error) {
	return t.tags.ListTags(ctx, ownerID)
}

func (t *tagInteractor) Create(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		ve := domain.NewValidationError()
		ve.Add("name", "this field is required")
		return nil, ve
	}

	tag := &domain.Tag{UserID: ownerID, Name: name}
	if err := t.tags.CreateTag(ctx, tag); err != nil {
		return nil, err
	}

	t.logger.Info("tag created", "id", tag.ID, "user_id", ownerID)
	return tag, nil
}

// ingredientInteractor реализует IngredientUseCase.
type ingredientInteractor struct {
	ingredients ports.IngredientStorage
	logger      *slog.Logger
}

func NewIngredientUseCase(ingredients ports.IngredientStorage, logger *slog.Logger) IngredientUseCase {
	return &ingredientInteractor{ingredients: ingredients, logger: logger}
}

func (i *ingredientInteractor) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Ingredient, error) {
	return i.ingredients.ListIngredients(ctx, ownerID)
}

func (i *ingredientInteractor) Create(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		ve := domain.NewValidationError()
		ve.Add("name", "this field is required")
		return nil, ve
	}

	ingredient := &domain.Ingredient{UserID: ownerID, Name: name}
	if err := i.ingredients.CreateIngredient(ctx, ingredient); err != nil {
		return nil, err
	}

	i.logger.Info("ingredient created", "id", ingredient.ID, "user_id", ownerID)
	return ingredient, nil
}
