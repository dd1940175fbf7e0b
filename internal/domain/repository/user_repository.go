package repository

import (
	"context"

	"github.com/jhoicas/fleetflow-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los lookups devuelven (nil, nil) cuando no hay fila; la capa de aplicación
// decide qué significa la ausencia (404, credenciales inválidas, etc.).
type UserRepository interface {
	// Create inserta y devuelve la fila creada (id y timestamps los asigna la DB).
	// Retorna domain.ErrEmailAlreadyExists ante violación del unique de email,
	// sin importar si la fila existente está soft-deleted.
	Create(ctx context.Context, fullName, email, passwordHash, role string) (*entity.User, error)
	// FindByEmail es el único lookup que carga PasswordHash; lo usa solo el login.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// List ordena por created_at descendente; excluye soft-deleted salvo includeDeleted.
	List(ctx context.Context, includeDeleted bool) ([]*entity.User, error)
	// Patch aplica solo los campos no-nil; un patch vacío devuelve la fila actual.
	Patch(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
	SoftDelete(ctx context.Context, id string) (*entity.User, error)
	Restore(ctx context.Context, id string) (*entity.User, error)
}
