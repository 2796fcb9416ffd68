package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/GoArmGo/RecipeApp/internal/core/ports"
	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/google/uuid"
)

// recipeInteractor реализует RecipeUseCase поверх хранилищ рецептов,
// тегов, ингредиентов и файлового хранилища картинок.
type recipeInteractor struct {
	recipes     ports.RecipeStorage
	tags        ports.TagStorage
	ingredients ports.IngredientStorage
	files       ports.FileStorage
	logger      *slog.Logger
}

func NewRecipeUseCase(
	recipes ports.RecipeStorage,
	tags ports.TagStorage,
	ingredients ports.IngredientStorage,
	files ports.FileStorage,
	logger *slog.Logger,
) RecipeUseCase {
	return &recipeInteractor{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		files:       files,
		logger:      logger,
	}
}

func validateRecipeFields(ve *domain.ValidationError, title string, timeMinutes int, price float64) {
	if strings.TrimSpace(title) == "" {
		ve.Add("title", "this field is required")
	}
	if timeMinutes < 0 {
		ve.Add("time_minutes", "ensure this value is greater than or equal to 0")
	}
	if price < 0 {
		ve.Add("price", "ensure this value is greater than or equal to 0")
	}
}

// resolveTags проверяет, что каждый id тега принадлежит владельцу.
// Чужой id и несуществующий id дают одну и ту же ошибку валидации.
func (r *recipeInteractor) resolveTags(ctx context.Context, ownerID uuid.UUID, ids []int64, ve *domain.ValidationError) ([]domain.Tag, error) {
	tags, err := r.tags.GetTagsByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[int64]bool, len(tags))
	for _, t := range tags {
		found[t.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			ve.Add("tags", fmt.Sprintf("invalid id %d - object does not exist", id))
		}
	}
	return tags, nil
}

// resolveIngredients — то же, что resolveTags, для ингредиентов.
func (r *recipeInteractor) resolveIngredients(ctx context.Context, ownerID uuid.UUID, ids []int64, ve *domain.ValidationError) ([]domain.Ingredient, error) {
	ingredients, err := r.ingredients.GetIngredientsByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[int64]bool, len(ingredients))
	for _, i := range ingredients {
		found[i.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			ve.Add("ingredients", fmt.Sprintf("invalid id %d - object does not exist", id))
		}
	}
	return ingredients, nil
}

func (r *recipeInteractor) List(ctx context.Context, ownerID uuid.UUID, filter domain.RecipeFilter) ([]domain.Recipe, error) {
	return r.recipes.ListRecipes(ctx, ownerID, filter)
}

func (r *recipeInteractor) Get(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Recipe, error) {
	return r.recipes.GetRecipe(ctx, ownerID, id)
}

// Create валидирует ввод, резолвит связи и сохраняет рецепт с владельцем-вызывающим.
func (r *recipeInteractor) Create(ctx context.Context, ownerID uuid.UUID, input CreateRecipeInput) (*domain.Recipe, error) {
	ve := domain.NewValidationError()
	validateRecipeFields(ve, input.Title, input.TimeMinutes, input.Price)

	tags, err := r.resolveTags(ctx, ownerID, input.TagIDs, ve)
	if err != nil {
		return nil, err
	}
	ingredients, err := r.resolveIngredients(ctx, ownerID, input.IngredientIDs, ve)
	if err != nil {
		return nil, err
	}
	if !ve.Empty() {
		return nil, ve
	}

	recipe := &domain.Recipe{
		UserID:      ownerID,
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Link:        input.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := r.recipes.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	r.logger.Info("recipe created", "id", recipe.ID, "user_id", ownerID)
	return recipe, nil
}

// Update применяет изменения к рецепту владельца.
//
// Семантика двух режимов различается сознательно:
//   - full=true (PUT): title/time_minutes/price обязательны; не переданные
//     наборы тегов/ингредиентов очищаются до пустых;
//   - full=false (PATCH): меняются только переданные поля, не переданные
//     наборы связей остаются как были.
func (r *recipeInteractor) Update(ctx context.Context, ownerID uuid.UUID, id int64, changes domain.RecipeChanges, full bool) (*domain.Recipe, error) {
	recipe, err := r.recipes.GetRecipe(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	ve := domain.NewValidationError()

	if full {
		if changes.Title == nil {
			ve.Add("title", "this field is required")
		}
		if changes.TimeMinutes == nil {
			ve.Add("time_minutes", "this field is required")
		}
		if changes.Price == nil {
			ve.Add("price", "this field is required")
		}
		if changes.Link == nil {
			recipe.Link = ""
		}
		if changes.TagIDs == nil {
			changes.TagIDs = []int64{}
		}
		if changes.IngredientIDs == nil {
			changes.IngredientIDs = []int64{}
		}
	}

	if changes.Title != nil {
		recipe.Title = *changes.Title
	}
	if changes.TimeMinutes != nil {
		recipe.TimeMinutes = *changes.TimeMinutes
	}
	if changes.Price != nil {
		recipe.Price = *changes.Price
	}
	if changes.Link != nil {
		recipe.Link = *changes.Link
	}

	validateRecipeFields(ve, recipe.Title, recipe.TimeMinutes, recipe.Price)

	replaceTags := changes.TagIDs != nil
	replaceIngredients := changes.IngredientIDs != nil

	if replaceTags {
		tags, err := r.resolveTags(ctx, ownerID, changes.TagIDs, ve)
		if err != nil {
			return nil, err
		}
		recipe.Tags = tags
	}
	if replaceIngredients {
		ingredients, err := r.resolveIngredients(ctx, ownerID, changes.IngredientIDs, ve)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = ingredients
	}
	if !ve.Empty() {
		return nil, ve
	}

	if err := r.recipes.UpdateRecipe(ctx, recipe, replaceTags, replaceIngredients); err != nil {
		return nil, err
	}

	r.logger.Info("recipe updated", "id", recipe.ID, "user_id", ownerID, "full", full)
	return r.recipes.GetRecipe(ctx, ownerID, id)
}

func (r *recipeInteractor) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	return r.recipes.DeleteRecipe(ctx, ownerID, id)
}

// imageExtension подбирает расширение объекта по MIME-типу.
func imageExtension(contentType string) (string, bool) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/gif":
		return ".gif", true
	case "image/webp":
		return ".webp", true
	default:
		return "", false
	}
}

// UploadImage кладет картинку в файловое хранилище под непрозрачным ключом
// и сохраняет публичный URL на рецепте.
func (r *recipeInteractor) UploadImage(ctx context.Context, ownerID uuid.UUID, id int64, content io.Reader, contentType string) (*domain.Recipe, error) {
	recipe, err := r.recipes.GetRecipe(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	ext, ok := imageExtension(contentType)
	if !ok {
		ve := domain.NewValidationError()
		ve.Add("image", "unsupported image content type")
		return nil, ve
	}

	key := fmt.Sprintf("recipes/%s%s", uuid.New(), ext)
	url, err := r.files.UploadFile(ctx, key, content, contentType)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки картинки рецепта: %w", err)
	}

	recipe.ImageURL = url
	if err := r.recipes.UpdateRecipe(ctx, recipe, false, false); err != nil {
		return nil, err
	}

	r.logger.Info("recipe image uploaded", "id", recipe.ID, "key", key)
	return recipe, nil
}
