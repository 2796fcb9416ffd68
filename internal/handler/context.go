package handler

import (
	"context"

	"github.com/GoArmGo/RecipeApp/internal/domain"
)

type contextKey string

// userContextKey — ключ, под которым middleware кладет
// аутентифицированного пользователя в контекст запроса.
const userContextKey contextKey = "auth.user"

// withUser возвращает контекст с аутентифицированным пользователем.
func withUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext достает аутентифицированного пользователя из контекста.
// Хендлеры за Authenticator-ом могут рассчитывать, что он там есть.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}
