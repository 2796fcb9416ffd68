package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeStorage реализует ports.RecipeStorage с использованием GORM.
type RecipeStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRecipeStorage(db *gorm.DB, logger *slog.Logger) *RecipeStorage {
	return &RecipeStorage{db: db, logger: logger}
}

// ListRecipes получает рецепты владельца по убыванию id (новые первыми).
// Порядок по убыванию id — часть контракта API, а не случайность.
func (s *RecipeStorage) ListRecipes(ctx context.Context, ownerID uuid.UUID, filter domain.RecipeFilter) ([]domain.Recipe, error) {
	var recipes []domain.Recipe

	q := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("recipes.user_id = ?", ownerID)

	if len(filter.TagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags rt ON rt.recipe_id = recipes.id").
			Where("rt.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ri ON ri.recipe_id = recipes.id").
			Where("ri.ingredient_id IN ?", filter.IngredientIDs)
	}

	result := q.Distinct("recipes.*").Order("recipes.id DESC").Find(&recipes)
	if result.Error != nil {
		s.logger.Error("failed to list recipes", "user_id", ownerID, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении списка рецептов из БД с помощью GORM: %w", result.Error)
	}
	return recipes, nil
}

// GetRecipe получает рецепт владельца вместе со связями.
// Чужой и несуществующий рецепт неразличимы: оба дают domain.ErrNotFound.
func (s *RecipeStorage) GetRecipe(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Recipe, error) {
	var recipe domain.Recipe
	result := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&recipe)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get recipe", "id", id, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении рецепта из БД с помощью GORM: %w", result.Error)
	}
	return &recipe, nil
}

// CreateRecipe сохраняет рецепт и связи с тегами/ингредиентами в одной транзакции.
// Omit("Tags.*", ...) не дает GORM трогать сами строки тегов — создаются только связи.
func (s *RecipeStorage) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	start := time.Now()

	result := s.db.WithContext(ctx).
		Omit("Tags.*", "Ingredients.*").
		Create(recipe)
	if result.Error != nil {
		s.logger.Error("failed to create recipe", "user_id", recipe.UserID, "error", result.Error)
		return fmt.Errorf("ошибка при сохранении рецепта в БД с помощью GORM: %w", result.Error)
	}

	s.logger.Info("recipe created successfully",
		"id", recipe.ID,
		"user_id", recipe.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// UpdateRecipe перезаписывает скалярные поля рецепта и, если запрошено,
// заменяет наборы связей целиком (пустой набор очищает связи).
func (s *RecipeStorage) UpdateRecipe(ctx context.Context, recipe *domain.Recipe, replaceTags, replaceIngredients bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Recipe{}).
			Where("id = ? AND user_id = ?", recipe.ID, recipe.UserID).
			Updates(map[string]interface{}{
				"title":        recipe.Title,
				"time_minutes": recipe.TimeMinutes,
				"price":        recipe.Price,
				"link":         recipe.Link,
				"image_url":    recipe.ImageURL,
			})
		if result.Error != nil {
			s.logger.Error("failed to update recipe", "id", recipe.ID, "error", result.Error)
			return fmt.Errorf("ошибка при обновлении рецепта в БД с помощью GORM: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if replaceTags {
			if err := tx.Model(recipe).Omit("Tags.*").Association("Tags").Replace(recipe.Tags); err != nil {
				return fmt.Errorf("ошибка при замене тегов рецепта: %w", err)
			}
		}
		if replaceIngredients {
			if err := tx.Model(recipe).Omit("Ingredients.*").Association("Ingredients").Replace(recipe.Ingredients); err != nil {
				return fmt.Errorf("ошибка при замене ингредиентов рецепта: %w", err)
			}
		}
		return nil
	})
}

// DeleteRecipe удаляет рецепт владельца; строки связей уходят по ON DELETE CASCADE.
func (s *RecipeStorage) DeleteRecipe(ctx context.Context, ownerID uuid.UUID, id int64) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&domain.Recipe{})
	if result.Error != nil {
		s.logger.Error("failed to delete recipe", "id", id, "error", result.Error)
		return fmt.Errorf("ошибка при удалении рецепта из БД с помощью GORM: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("recipe deleted successfully", "id", id, "user_id", ownerID)
	return nil
}
