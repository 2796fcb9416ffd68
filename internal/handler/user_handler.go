package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/GoArmGo/RecipeApp/internal/usecase"
)

// UserHandler — обработчик HTTP-запросов для регистрации, выдачи токена и профиля.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(uc usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUseCase: uc, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register — регистрирует нового пользователя. Аутентификация не требуется.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.userUseCase.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("user registered", "endpoint", "Register", "user_id", user.ID)
	respondWithJSON(w, http.StatusCreated, newUserResponse(user), h.logger)
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IssueToken — проверяет учетные данные и возвращает непрозрачный токен.
func (h *UserHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	key, err := h.userUseCase.IssueToken(r.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"token": key}, h.logger)
}

// Me — возвращает профиль аутентифицированного пользователя.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	profile, err := h.userUseCase.Profile(r.Context(), user.ID)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, newUserResponse(profile), h.logger)
}

type updateMeRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
}

// UpdateMe — частично обновляет профиль: не переданные поля не трогаются.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	var req updateMeRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	profile, err := h.userUseCase.UpdateProfile(r.Context(), user.ID, domain.UserUpdate{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("profile updated", "endpoint", "UpdateMe", "user_id", user.ID)
	respondWithJSON(w, http.StatusOK, newUserResponse(profile), h.logger)
}
