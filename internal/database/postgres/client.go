package postgres

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewGorm открывает GORM-подключение поверх того же DSN, что и sqlx-клиент.
// TranslateError нужен, чтобы нарушения unique-ограничений приходили
// как gorm.ErrDuplicatedKey, а не как сырые ошибки драйвера.
func NewGorm(databaseURL string, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Error("failed to open GORM connection", "error", err)
		return nil, fmt.Errorf("ошибка открытия GORM-соединения с БД: %w", err)
	}

	logger.Info("GORM connection established successfully")
	return db, nil
}
