package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/RecipeApp/internal/handler"
	"github.com/GoArmGo/RecipeApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает HTTP-роутер приложения. Вынесен отдельно от запуска
// сервера, чтобы тот же роутер можно было поднять в тестах через httptest.
func NewRouter(
	logger *slog.Logger,
	requestTimeout time.Duration,
	userUseCase usecase.UserUseCase,
	recipeUseCase usecase.RecipeUseCase,
	tagUseCase usecase.TagUseCase,
	ingredientUseCase usecase.IngredientUseCase,
) http.Handler {
	userHandler := handler.NewUserHandler(userUseCase, logger)
	recipeHandler := handler.NewRecipeHandler(recipeUseCase, logger)
	labelHandler := handler.NewLabelHandler(tagUseCase, ingredientUseCase, logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(requestTimeout))

	// Неподдерживаемый метод на существующем пути — структурный 405
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"detail":"method %q not allowed"}`, req.Method)
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Публичные эндпоинты: регистрация и выдача токена
	r.Post("/users/create", userHandler.Register)
	r.Post("/users/token", userHandler.IssueToken)

	// Все остальное требует валидного токена
	r.Group(func(pr chi.Router) {
		pr.Use(handler.Authenticator(userUseCase, logger))

		pr.Get("/users/me", userHandler.Me)
		pr.Patch("/users/me", userHandler.UpdateMe)

		pr.Get("/tags", labelHandler.ListTags)
		pr.Post("/tags", labelHandler.CreateTag)
		pr.Get("/ingredients", labelHandler.ListIngredients)
		pr.Post("/ingredients", labelHandler.CreateIngredient)

		pr.Route("/recipes", func(rr chi.Router) {
			rr.Get("/", recipeHandler.List)
			rr.Post("/", recipeHandler.Create)
			rr.Route("/{id}", func(dr chi.Router) {
				dr.Get("/", recipeHandler.Detail)
				dr.Put("/", recipeHandler.FullUpdate)
				dr.Patch("/", recipeHandler.PartialUpdate)
				dr.Delete("/", recipeHandler.Delete)
				dr.Post("/upload-image", recipeHandler.UploadImage)
			})
		})
	})

	return r
}
