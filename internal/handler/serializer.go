package handler

import (
	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/google/uuid"
)

// userResponse — профиль пользователя в ответах API.
// Пароля (и его хеша) здесь нет ни в каком виде.
type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

func newUserResponse(user *domain.User) userResponse {
	return userResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}

// labelResponse — тег или ингредиент в ответах API.
type labelResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// recipeListItem — элемент списка рецептов: связи сериализуются как
// голые id, чтобы не раздувать списочный ответ. Асимметрия со
// вложенными объектами детального ответа — осознанный контракт.
type recipeListItem struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	ImageURL    string  `json:"image_url"`
	Tags        []int64 `json:"tags"`
	Ingredients []int64 `json:"ingredients"`
}

// recipeDetail — детальный ответ: связи как вложенные объекты {id, name}.
type recipeDetail struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       float64         `json:"price"`
	Link        string          `json:"link"`
	ImageURL    string          `json:"image_url"`
	Tags        []labelResponse `json:"tags"`
	Ingredients []labelResponse `json:"ingredients"`
}

func newRecipeListItem(recipe *domain.Recipe) recipeListItem {
	tagIDs := make([]int64, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tagIDs = append(tagIDs, t.ID)
	}
	ingredientIDs := make([]int64, 0, len(recipe.Ingredients))
	for _, i := range recipe.Ingredients {
		ingredientIDs = append(ingredientIDs, i.ID)
	}
	return recipeListItem{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		ImageURL:    recipe.ImageURL,
		Tags:        tagIDs,
		Ingredients: ingredientIDs,
	}
}

func newRecipeDetail(recipe *domain.Recipe) recipeDetail {
	tags := make([]labelResponse, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tags = append(tags, labelResponse{ID: t.ID, Name: t.Name})
	}
	ingredients := make([]labelResponse, 0, len(recipe.Ingredients))
	for _, i := range recipe.Ingredients {
		ingredients = append(ingredients, labelResponse{ID: i.ID, Name: i.Name})
	}
	return recipeDetail{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		ImageURL:    recipe.ImageURL,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func newTagResponses(tags []domain.Tag) []labelResponse {
	out := make([]labelResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, labelResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

func newIngredientResponses(ingredients []domain.Ingredient) []labelResponse {
	out := make([]labelResponse, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, labelResponse{ID: i.ID, Name: i.Name})
	}
	return out
}
