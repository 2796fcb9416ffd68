package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TagStorage реализует ports.TagStorage с использованием GORM.
type TagStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewTagStorage(db *gorm.DB, logger *slog.Logger) *TagStorage {
	return &TagStorage{db: db, logger: logger}
}

// ListTags получает теги владельца в стабильном порядке
func (s *TagStorage) ListTags(ctx context.Context, ownerID uuid.UUID) ([]domain.Tag, error) {
	var tags []domain.Tag
	result := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("name, id").
		Find(&tags)
	if result.Error != nil {
		s.logger.Error("failed to list tags", "user_id", ownerID, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении списка тегов из БД с помощью GORM: %w", result.Error)
	}
	return tags, nil
}

// CreateTag сохраняет тег; гонку на одинаковое имя разрешает
// unique-ограничение (user_id, name) в бд.
func (s *TagStorage) CreateTag(ctx context.Context, tag *domain.Tag) error {
	result := s.db.WithContext(ctx).Create(tag)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			ve := domain.NewValidationError()
			ve.Add("name", "tag with this name already exists")
			return ve
		}
		s.logger.Error("failed to create tag", "user_id", tag.UserID, "error", result.Error)
		return fmt.Errorf("ошибка при сохранении тега в БД с помощью GORM: %w", result.Error)
	}

	s.logger.Info("tag created successfully", "id", tag.ID, "user_id", tag.UserID)
	return nil
}

// GetTagsByIDs получает теги владельца с перечисленными id.
// Чужие и несуществующие id просто не попадают в результат.
func (s *TagStorage) GetTagsByIDs(ctx context.Context, ownerID uuid.UUID, ids []int64) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return []domain.Tag{}, nil
	}
	var tags []domain.Tag
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Find(&tags)
	if result.Error != nil {
		s.logger.Error("failed to get tags by ids", "user_id", ownerID, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении тегов по ID из БД с помощью GORM: %w", result.Error)
	}
	return tags, nil
}

// IngredientStorage реализует ports.IngredientStorage с использованием GORM.
type IngredientStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewIngredientStorage(db *gorm.DB, logger *slog.Logger) *IngredientStorage {
	return &IngredientStorage{db: db, logger: logger}
}

// ListIngredients получает ингредиенты владельца в стабильном порядке
func (s *IngredientStorage) ListIngredients(ctx context.Context, ownerID uuid.UUID) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	result := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("name, id").
		Find(&ingredients)
	if result.Error != nil {
		s.logger.Error("failed to list ingredients", "user_id", ownerID, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении списка ингредиентов из БД с помощью GORM: %w", result.Error)
	}
	return ingredients, nil
}

// CreateIngredient сохраняет ингредиент; правила те же, что у CreateTag.
func (s *IngredientStorage) CreateIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	result := s.db.WithContext(ctx).Create(ingredient)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			ve := domain.NewValidationError()
			ve.Add("name", "ingredient with this name already exists")
			return ve
		}
		s.logger.Error("failed to create ingredient", "user_id", ingredient.UserID, "error", result.Error)
		return fmt.Errorf("ошибка при сохранении ингредиента в БД с помощью GORM: %w", result.Error)
	}

	s.logger.Info("ingredient created successfully", "id", ingredient.ID, "user_id", ingredient.UserID)
	return nil
}

// GetIngredientsByIDs получает ингредиенты владельца с перечисленными id.
func (s *IngredientStorage) GetIngredientsByIDs(ctx context.Context, ownerID uuid.UUID, ids []int64) ([]domain.Ingredient, error) {
	if len(ids) == 0 {
		return []domain.Ingredient{}, nil
	}
	var ingredients []domain.Ingredient
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Find(&ingredients)
	if result.Error != nil {
		s.logger.Error("failed to get ingredients by ids", "user_id", ownerID, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении ингредиентов по ID из БД с помощью GORM: %w", result.Error)
	}
	return ingredients, nil
}
