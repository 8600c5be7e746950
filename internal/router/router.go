package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"linkdir/internal/auth"
	"linkdir/internal/handler"
	"linkdir/internal/validation"
)

// Register wires routes and middleware. Reads on categories and published
// entries are public; suggestion and user endpoints require a bearer token;
// registration accepts an optional token for the role-escalation rule.
func Register(
	e *echo.Echo,
	logger *zap.Logger,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	entryHandler *handler.EntryHandler,
	suggestionHandler *handler.SuggestionHandler,
) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.Validator = &CustomValidator{}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := auth.RequireAuth(jwtService)
	optionalAuth := auth.OptionalAuth(jwtService)

	users := e.Group("/users")
	users.POST("/register", authHandler.Register, optionalAuth)
	users.POST("/login", authHandler.Login)
	users.GET("", userHandler.List, requireAuth)
	users.GET("/:id", userHandler.Get, requireAuth)
	users.PATCH("/:id", userHandler.Patch, requireAuth)
	users.DELETE("/:id", userHandler.Delete, requireAuth)

	categories := e.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.POST("", categoryHandler.Create, requireAuth)
	categories.PATCH("/:id", categoryHandler.Patch, requireAuth)
	categories.DELETE("/:id", categoryHandler.Delete, requireAuth)

	entries := e.Group("/entries")
	entries.GET("", entryHandler.List)
	entries.GET("/random", entryHandler.Random)
	entries.GET("/:id", entryHandler.Get)
	entries.POST("", entryHandler.Create, requireAuth)
	entries.PATCH("/:id", entryHandler.Patch, requireAuth)
	entries.DELETE("/:id", entryHandler.Delete, requireAuth)

	suggestions := e.Group("/suggestions", requireAuth)
	suggestions.GET("", suggestionHandler.List)
	suggestions.GET("/:id", suggestionHandler.Get)
	suggestions.POST("", suggestionHandler.Create)
	suggestions.PATCH("/:id", suggestionHandler.Patch)
	suggestions.DELETE("/:id", suggestionHandler.Delete)
}

// CustomValidator plugs the validation layer into Echo.
type CustomValidator struct{}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return validation.Struct(i)
}
