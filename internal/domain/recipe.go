package domain

import (
	"time"

	"github.com/google/uuid"
)

// Recipe представляет модель рецепта в системе,
// соответствует таблице recipes в бд.
// Владелец (UserID) задается при создании и больше не меняется.
type Recipe struct {
	ID          int64        `json:"id" gorm:"primaryKey"`
	UserID      uuid.UUID    `json:"user_id" gorm:"type:uuid;not null"`
	Title       string       `json:"title" gorm:"not null"`
	TimeMinutes int          `json:"time_minutes" gorm:"not null"`
	Price       float64      `json:"price" gorm:"type:numeric(5,2);not null"`
	Link        string       `json:"link"`
	ImageURL    string       `json:"image_url"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Tags        []Tag        `json:"tags,omitempty" gorm:"many2many:recipe_tags"`
	Ingredients []Ingredient `json:"ingredients,omitempty" gorm:"many2many:recipe_ingredients"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// Tag представляет модель тега,
// соответствует таблице tags в бд.
// Уникальность пары (user_id, name) обеспечивается ограничением в бд.
type Tag struct {
	ID     int64     `json:"id" gorm:"primaryKey"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_tags_user_name"`
	Name   string    `json:"name" gorm:"not null;uniqueIndex:idx_tags_user_name"`
}

func (Tag) TableName() string {
	return "tags"
}

// Ingredient представляет модель ингредиента,
// соответствует таблице ingredients в бд.
// Правила владения и уникальности те же, что у Tag.
type Ingredient struct {
	ID     int64     `json:"id" gorm:"primaryKey"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ingredients_user_name"`
	Name   string    `json:"name" gorm:"not null;uniqueIndex:idx_ingredients_user_name"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// RecipeChanges описывает изменения рецепта для update-операций.
// nil-поле означает "не передано": при частичном обновлении оно не трогается,
// при полном — обязательные поля проверяются валидацией, а не переданные
// наборы TagIDs/IngredientIDs очищают связи. Непустой срез нулевой длины
// означает "передан пустой набор" и связи тоже очищает.
type RecipeChanges struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	TagIDs        []int64
	IngredientIDs []int64
}

// RecipeFilter ограничивает выборку списка рецептов
// по идентификаторам тегов/ингредиентов (пустой срез — без фильтра).
type RecipeFilter struct {
	TagIDs        []int64
	IngredientIDs []int64
}
