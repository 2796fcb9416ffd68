package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/RecipeApp/internal/domain"
)

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой общего вида.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// respondDomainError переводит ошибку доменного слоя в HTTP-ответ.
// Все ошибки гасятся на границе хендлера, наружу не пролетает ничего сырого.
func respondDomainError(w http.ResponseWriter, err error, logger *slog.Logger) {
	if ve, ok := domain.AsValidation(err); ok {
		respondWithJSON(w, http.StatusBadRequest, ve.Fields, logger)
		return
	}
	if ae, ok := domain.AsAuthentication(err); ok {
		// Ошибка не привязана к конкретному полю формы,
		// значения токена в ответе нет ни под каким ключом.
		respondWithJSON(w, http.StatusBadRequest, map[string][]string{
			"non_field_errors": {ae.Message},
		}, logger)
		return
	}
	if errors.Is(err, domain.ErrUnauthenticated) {
		respondWithJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "authentication credentials were not provided or are invalid",
		}, logger)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		respondWithJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"}, logger)
		return
	}

	logger.Error("unhandled error in handler", "error", err)
	respondWithError(w, http.StatusInternalServerError, "internal server error", logger)
}

// decodeJSON читает тело запроса; мусорный JSON — это ошибка клиента.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger *slog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed request body", logger)
		return false
	}
	return true
}
