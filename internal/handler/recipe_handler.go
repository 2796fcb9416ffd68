package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/GoArmGo/RecipeApp/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// maxImageUploadBytes ограничивает размер multipart-запроса с картинкой.
const maxImageUploadBytes = 10 << 20

// RecipeHandler — обработчик HTTP-запросов для работы с рецептами.
// Владелец каждой операции берется из контекста запроса (Authenticator),
// клиентский ввод на него повлиять не может.
type RecipeHandler struct {
	recipeUseCase usecase.RecipeUseCase
	logger        *slog.Logger
}

// NewRecipeHandler создаёт новый экземпляр RecipeHandler.
func NewRecipeHandler(uc usecase.RecipeUseCase, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{recipeUseCase: uc, logger: logger}
}

// parseIDList разбирает query-параметр вида "1,2,3" в срез id.
// Мусорные элементы молча пропускаются.
func parseIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// recipeID достает id рецепта из URL.
func recipeID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// List — возвращает рецепты владельца (новые первыми), с опциональным
// фильтром ?tags=1,2&ingredients=3.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	filter := domain.RecipeFilter{
		TagIDs:        parseIDList(r.URL.Query().Get("tags")),
		IngredientIDs: parseIDList(r.URL.Query().Get("ingredients")),
	}

	recipes, err := h.recipeUseCase.List(r.Context(), user.ID, filter)
	if err != nil {
		h.logger.Error("failed to list recipes", "user_id", user.ID, "error", err)
		respondDomainError(w, err, h.logger)
		return
	}

	items := make([]recipeListItem, 0, len(recipes))
	for idx := range recipes {
		items = append(items, newRecipeListItem(&recipes[idx]))
	}
	respondWithJSON(w, http.StatusOK, items, h.logger)
}

type createRecipeRequest struct {
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Tags        []int64 `json:"tags"`
	Ingredients []int64 `json:"ingredients"`
}

// Create — создает рецепт с владельцем, равным аутентифицированному пользователю.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	var req createRecipeRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	recipe, err := h.recipeUseCase.Create(r.Context(), user.ID, usecase.CreateRecipeInput{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("recipe created", "endpoint", "Create", "id", recipe.ID, "user_id", user.ID)
	respondWithJSON(w, http.StatusCreated, newRecipeDetail(recipe), h.logger)
}

// Detail — возвращает рецепт со вложенными тегами/ингредиентами.
// Чужой рецепт неотличим от несуществующего: в обоих случаях 404.
func (h *RecipeHandler) Detail(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	id, ok := recipeID(r)
	if !ok {
		respondDomainError(w, domain.ErrNotFound, h.logger)
		return
	}

	recipe, err := h.recipeUseCase.Get(r.Context(), user.ID, id)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, newRecipeDetail(recipe), h.logger)
}

type updateRecipeRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes"`
	Price       *float64 `json:"price"`
	Link        *string  `json:"link"`
	Tags        *[]int64 `json:"tags"`
	Ingredients *[]int64 `json:"ingredients"`
}

// changes переводит запрос в доменные изменения: отсутствие поля в JSON
// и переданный пустой набор — разные вещи, и это различие здесь сохраняется.
func (req *updateRecipeRequest) changes() domain.RecipeChanges {
	c := domain.RecipeChanges{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
	}
	if req.Tags != nil {
		c.TagIDs = *req.Tags
		if c.TagIDs == nil {
			c.TagIDs = []int64{}
		}
	}
	if req.Ingredients != nil {
		c.IngredientIDs = *req.Ingredients
		if c.IngredientIDs == nil {
			c.IngredientIDs = []int64{}
		}
	}
	return c
}

func (h *RecipeHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	id, ok := recipeID(r)
	if !ok {
		respondDomainError(w, domain.ErrNotFound, h.logger)
		return
	}

	var req updateRecipeRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	recipe, err := h.recipeUseCase.Update(r.Context(), user.ID, id, req.changes(), full)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("recipe updated", "endpoint", "Update", "id", id, "full", full)
	respondWithJSON(w, http.StatusOK, newRecipeDetail(recipe), h.logger)
}

// FullUpdate — PUT: полная замена, отсутствующие наборы связей очищаются.
func (h *RecipeHandler) FullUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

// PartialUpdate — PATCH: меняются только переданные поля.
func (h *RecipeHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// Delete — удаляет рецепт владельца.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	id, ok := recipeID(r)
	if !ok {
		respondDomainError(w, domain.ErrNotFound, h.logger)
		return
	}

	if err := h.recipeUseCase.Delete(r.Context(), user.ID, id); err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("recipe deleted", "endpoint", "Delete", "id", id, "user_id", user.ID)
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage — принимает multipart-форму с полем "image" и сохраняет
// картинку рецепта в файловом хранилище.
func (h *RecipeHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	id, ok := recipeID(r)
	if !ok {
		respondDomainError(w, domain.ErrNotFound, h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed multipart form", h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		ve := domain.NewValidationError()
		ve.Add("image", "this field is required")
		respondDomainError(w, ve, h.logger)
		return
	}
	defer file.Close()

	recipe, err := h.recipeUseCase.UploadImage(r.Context(), user.ID, id, file, header.Header.Get("Content-Type"))
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("recipe image uploaded", "endpoint", "UploadImage", "id", id)
	respondWithJSON(w, http.StatusOK, newRecipeDetail(recipe), h.logger)
}
