// Файл: main.go

package main

import (
	"context"
	"log"
	"net/http"
	"path/filepath"

	"contact-system/internal/repositories"
	"contact-system/internal/routes"
	"contact-system/internal/services"
	appconfig "contact-system/pkg/config"
	"contact-system/pkg/customvalidator"
	"contact-system/pkg/database/postgresql"
	apperrors "contact-system/pkg/errors"
	"contact-system/pkg/fallback"
	"contact-system/pkg/filestorage"
	applogger "contact-system/pkg/logger"
	appmiddleware "contact-system/pkg/middleware"
	"contact-system/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded.")
	}

	e := echo.New()
	logger := applogger.NewLogger()

	cfg := appconfig.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	e.Use(appmiddleware.InjectLogger(logger))

	// Статика для локального блоб-хранилища вложений
	absPath, err := filepath.Abs(cfg.Storage.BasePath)
	if err != nil {
		logger.Fatal("не удалось получить абсолютный путь к uploads", zap.Error(err))
	}
	e.Static("/uploads", absPath)

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	// Redis опционален: без него кеш становится no-op,
	// приём обращений от кеша не зависит.
	var cacheRepo repositories.CacheRepositoryInterface
	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}
		cacheRepo = repositories.NewRedisCacheRepository(redisClient)
	} else {
		logger.Info("REDIS_ADDRESS не задан, кеш списка обращений отключён")
		cacheRepo = repositories.NewNoopCacheRepository()
	}

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Storage.BasePath, cfg.Storage.PublicBaseURL)
	if err != nil {
		logger.Fatal("не удалось инициализировать хранилище файлов", zap.Error(err))
	}

	fallbackStore := fallback.NewStore(cfg.Fallback.FilePath)

	var notifier services.NotificationServiceInterface
	if cfg.SMTP.Host != "" {
		notifier = services.NewSMTPNotificationService(cfg.SMTP, logger)
	} else {
		logger.Info("SMTP не сконфигурирован, уведомления отключены")
		notifier = services.NewMockNotificationService(logger)
	}

	routes.InitRouter(e, dbConn, fileStorage, fallbackStore, cacheRepo, notifier, logger, cfg)

	logger.Info("🚀 Сервер запущен на :" + cfg.Server.Port)
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
