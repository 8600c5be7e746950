package main

import (
	"net/http"

	"linkdir/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"linkdir/internal/auth"
	"linkdir/internal/cache"
	"linkdir/internal/config"
	"linkdir/internal/db"
	"linkdir/internal/handler"
	"linkdir/internal/model"
	"linkdir/internal/repository"
	"linkdir/internal/router"
	"linkdir/internal/service"
)

// @title Linkdir API
// @version 1.0
// @description Bookmark/link directory API with categories, user suggestions, and role-based administration.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Entry{},
	); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	entryRepo := repository.NewEntryRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	entryService := service.NewEntryService(entryRepo, categoryRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	entryHandler := handler.NewEntryHandler(entryService)
	suggestionHandler := handler.NewSuggestionHandler(entryService)

	router.Register(
		e,
		logger,
		jwtService,
		authHandler,
		userHandler,
		categoryHandler,
		entryHandler,
		suggestionHandler,
	)

	addr := ":" + cfg.ServerPort
	logger.Info("starting server", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server start", zap.Error(err))
	}
}
