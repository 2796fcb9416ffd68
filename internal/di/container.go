package di

import (
	"github.com/GoArmGo/RecipeApp/internal/adapter/storage/minio"
	"github.com/GoArmGo/RecipeApp/internal/app"
	"github.com/GoArmGo/RecipeApp/internal/config"
	"github.com/GoArmGo/RecipeApp/internal/database/client"
	"github.com/GoArmGo/RecipeApp/internal/database/postgres"
	"github.com/GoArmGo/RecipeApp/internal/database/storage"
	"github.com/GoArmGo/RecipeApp/internal/logger"
	"github.com/GoArmGo/RecipeApp/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (sqlx + миграции)
	dbClient, err := client.NewClient(cfg.DatabaseURL, slogger)
	if err != nil {
		return nil, err
	}

	// 3. GORM поверх того же DSN — для хранилищ рецептов/тегов/ингредиентов
	gormDB, err := postgres.NewGorm(cfg.DatabaseURL, slogger)
	if err != nil {
		return nil, err
	}

	// 4. Инициализация хранилищ
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	tokenStorage := storage.NewTokenStorage(dbClient.DB, slogger)
	recipeStorage := postgres.NewRecipeStorage(gormDB, slogger)
	tagStorage := postgres.NewTagStorage(gormDB, slogger)
	ingredientStorage := postgres.NewIngredientStorage(gormDB, slogger)

	// 5. Файловое хранилище картинок рецептов (S3 / MinIO адаптер)
	fileStorage, err := minio.NewMinioClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 6. Инициализация бизнес-логики (usecases)
	userUseCase := usecase.NewUserUseCase(userStorage, tokenStorage, slogger)
	recipeUseCase := usecase.NewRecipeUseCase(recipeStorage, tagStorage, ingredientStorage, fileStorage, slogger)
	tagUseCase := usecase.NewTagUseCase(tagStorage, slogger)
	ingredientUseCase := usecase.NewIngredientUseCase(ingredientStorage, slogger)

	// 7. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		userUseCase,
		recipeUseCase,
		tagUseCase,
		ingredientUseCase,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
