package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/GoArmGo/RecipeApp/internal/usecase"
)

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", duration.Milliseconds(),
			)
		})
	}
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// extractTokenKey достает ключ токена из заголовка Authorization.
// Принимаются префиксы "Bearer" и "Token"; пустой результат означает,
// что валидного заголовка нет.
func extractTokenKey(authHeader string) string {
	for _, prefix := range []string{"Bearer ", "Token "} {
		if strings.HasPrefix(authHeader, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		}
	}
	return ""
}

// Authenticator — middleware, резолвящий bearer-токен в пользователя
// до любой логики хендлера. Отсутствующий, неизвестный и испорченный
// токены для клиента неразличимы: всегда 401 с одинаковым телом.
func Authenticator(users usecase.UserUseCase, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractTokenKey(r.Header.Get("Authorization"))

			user, err := users.ResolveToken(r.Context(), key)
			if err != nil {
				respondDomainError(w, err, logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}
