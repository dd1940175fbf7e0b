package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/fleetflow-api/internal/application/dto"
	"github.com/jhoicas/fleetflow-api/internal/application/usecase"
	"github.com/jhoicas/fleetflow-api/internal/domain/entity"
	"github.com/jhoicas/fleetflow-api/pkg/logger"
)

// UserHandler maneja la gestión de usuarios. Las reglas de autorización por
// ruta que no cubre RequireRole (self vs admin, visibilidad de borrados) viven aquí.
type UserHandler struct {
	uc  *usecase.UserUseCase
	log *logger.Logger
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// parseUserID valida el path param :id como uuid antes de tocar la DB.
func parseUserID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// List godoc
// @Summary      Listar usuarios (admin o manager)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        includeDeleted  query  string  false  "incluir soft-deleted (solo admin)"
// @Success      200  {object}  dto.UsersEnvelope
// @Router       /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	raw := c.Query("includeDeleted")
	// Solo un admin ve borrados; a un manager se le degrada en silencio, no se le rechaza.
	includeDeleted := (raw == "true" || raw == "1") && GetRole(c) == entity.RoleAdmin

	users, err := h.uc.List(c.Context(), includeDeleted)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.UsersEnvelope{Users: users})
}

// GetByID godoc
// @Summary      Obtener usuario por id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserEnvelope
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseUserID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}

	isSelf := GetUserID(c) == id
	role := GetRole(c)
	canReadAny := role == entity.RoleAdmin || role == entity.RoleManager

	if !isSelf && !canReadAny {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "forbidden"})
	}

	user, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	// 404 y no 403: no revelar la existencia de filas que el caller no puede ver.
	if user == nil || (user.IsDeleted && !canReadAny) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "user not found"})
	}
	return c.JSON(dto.UserEnvelope{User: *user})
}

// Create godoc
// @Summary      Crear usuario (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUserRequest  true  "fullName, email, password, role"
// @Success      201   {object}  dto.UserEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if in.Role == "" {
		in.Role = entity.RoleDispatcher
	}
	user, err := h.uc.CreateAsAdmin(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UserEnvelope{User: *user})
}

// Update godoc
// @Summary      Actualizar usuario (self o admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateUserRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.UserEnvelope
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := parseUserID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}

	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	isSelf := GetUserID(c) == id
	isAdmin := GetRole(c) == entity.RoleAdmin
	if !isSelf && !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "forbidden"})
	}

	// Un admin siempre va por el camino admin (puede cambiar rol, incluso el
	// propio); cualquier otro caller va por el camino self, donde role se ignora.
	var (
		user *dto.UserResponse
		err  error
	)
	if isAdmin {
		user, err = h.uc.UpdateAsAdmin(c.Context(), id, in)
	} else {
		user, err = h.uc.UpdateAsSelf(c.Context(), id, in)
	}
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.UserEnvelope{User: *user})
}

// Delete godoc
// @Summary      Soft delete de usuario (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseUserID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}
	user, err := h.uc.Delete(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.UserEnvelope{User: *user})
}

// Restore godoc
// @Summary      Restaurar usuario soft-deleted (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/{id}/restore [post]
func (h *UserHandler) Restore(c *fiber.Ctx) error {
	id, ok := parseUserID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}
	user, err := h.uc.Restore(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.UserEnvelope{User: *user})
}
