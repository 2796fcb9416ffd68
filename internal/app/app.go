package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/RecipeApp/internal/config"
	"github.com/GoArmGo/RecipeApp/internal/database/client"
	"github.com/GoArmGo/RecipeApp/internal/usecase"
)

type App struct {
	Config            *config.Config
	logger            *slog.Logger
	dbClient          *client.Client
	userUseCase       usecase.UserUseCase
	recipeUseCase     usecase.RecipeUseCase
	tagUseCase        usecase.TagUseCase
	ingredientUseCase usecase.IngredientUseCase
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	userUseCase usecase.UserUseCase,
	recipeUseCase usecase.RecipeUseCase,
	tagUseCase usecase.TagUseCase,
	ingredientUseCase usecase.IngredientUseCase,
) *App {
	return &App{
		Config:            cfg,
		logger:            logger,
		dbClient:          dbClient,
		userUseCase:       userUseCase,
		recipeUseCase:     recipeUseCase,
		tagUseCase:        tagUseCase,
		ingredientUseCase: ingredientUseCase,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает HTTP-сервер и блокируется до сигнала завершения.
func (a *App) Run(ctx context.Context) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runServer(ctx, a.Config, a.logger, a.userUseCase, a.recipeUseCase, a.tagUseCase, a.ingredientUseCase); err != nil {
		return err
	}

	// аккуратно закрываем ресурсы
	if err := a.Shutdown(); err != nil {
		a.logger.Error("shutdown error", "error", err)
	}

	a.logger.Info("application stopped")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}
	return nil
}
