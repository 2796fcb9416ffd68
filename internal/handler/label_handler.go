package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/GoArmGo/RecipeApp/internal/usecase"
)

// LabelHandler — обработчик HTTP-запросов для тегов и ингредиентов.
// Обе сущности ведут себя одинаково, поэтому живут в одном хендлере.
type LabelHandler struct {
	tagUseCase        usecase.TagUseCase
	ingredientUseCase usecase.IngredientUseCase
	logger            *slog.Logger
}

// NewLabelHandler создаёт новый экземпляр LabelHandler.
func NewLabelHandler(tags usecase.TagUseCase, ingredients usecase.IngredientUseCase, logger *slog.Logger) *LabelHandler {
	return &LabelHandler{tagUseCase: tags, ingredientUseCase: ingredients, logger: logger}
}

type createLabelRequest struct {
	Name string `json:"name"`
}

// ListTags — возвращает теги владельца.
func (h *LabelHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	tags, err := h.tagUseCase.List(r.Context(), user.ID)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, newTagResponses(tags), h.logger)
}

// CreateTag — создает тег владельца.
func (h *LabelHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	var req createLabelRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	tag, err := h.tagUseCase.Create(r.Context(), user.ID, req.Name)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("tag created", "endpoint", "CreateTag", "id", tag.ID, "user_id", user.ID)
	respondWithJSON(w, http.StatusCreated, labelResponse{ID: tag.ID, Name: tag.Name}, h.logger)
}

// ListIngredients — возвращает ингредиенты владельца.
func (h *LabelHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	ingredients, err := h.ingredientUseCase.List(r.Context(), user.ID)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, newIngredientResponses(ingredients), h.logger)
}

// CreateIngredient — создает ингредиент владельца.
func (h *LabelHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	var req createLabelRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	ingredient, err := h.ingredientUseCase.Create(r.Context(), user.ID, req.Name)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("ingredient created", "endpoint", "CreateIngredient", "id", ingredient.ID, "user_id", user.ID)
	respondWithJSON(w, http.StatusCreated, labelResponse{ID: ingredient.ID, Name: ingredient.Name}, h.logger)
}
