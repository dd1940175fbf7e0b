package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fleetflow-api/internal/application/auth"
	"github.com/jhoicas/fleetflow-api/internal/application/usecase"
	"github.com/jhoicas/fleetflow-api/internal/domain/entity"
	"github.com/jhoicas/fleetflow-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	authenticated := AuthMiddleware(deps.JWTSecret)

	// Auth: registro y login públicos; /auth/me requiere token.
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authenticated, authHandler.Me)

	// Users: todo el grupo requiere token; el RBAC se aplica por ruta.
	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	users := app.Group("/users", authenticated)
	users.Get("/", RequireRole(entity.RoleAdmin, entity.RoleManager), userHandler.List)
	users.Post("/", RequireRole(entity.RoleAdmin), userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", RequireRole(entity.RoleAdmin), userHandler.Delete)
	users.Post("/:id/restore", RequireRole(entity.RoleAdmin), userHandler.Restore)
}
