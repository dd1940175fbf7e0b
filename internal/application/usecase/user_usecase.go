package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/fleetflow-api/internal/application/auth"
	"github.com/jhoicas/fleetflow-api/internal/application/dto"
	"github.com/jhoicas/fleetflow-api/internal/domain"
	"github.com/jhoicas/fleetflow-api/internal/domain/entity"
	"github.com/jhoicas/fleetflow-api/internal/domain/repository"
	"github.com/jhoicas/fleetflow-api/pkg/password"
)

// UserUseCase gestión de usuarios: listado, lectura, alta administrativa,
// actualización parcial (admin y self), soft delete y restauración.
type UserUseCase struct {
	repo   repository.UserRepository
	hasher *password.Hasher
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, hasher *password.Hasher) *UserUseCase {
	return &UserUseCase{repo: repo, hasher: hasher}
}

// List devuelve usuarios por fecha de creación descendente. Que solo un admin
// pueda pedir includeDeleted lo decide el handler, no esta capa.
func (uc *UserUseCase) List(ctx context.Context, includeDeleted bool) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx, includeDeleted)
	if err != nil {
		return nil, err
	}
	return dto.FromEntities(users), nil
}

// GetByID devuelve un usuario o nil si no existe. El handler aplica las reglas
// de visibilidad (self, privilegio, soft-deleted oculto).
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	out := dto.FromEntity(user)
	return &out, nil
}

// CreateAsAdmin provisiona una cuenta con la misma validación del registro
// público pero sin emitir credencial.
func (uc *UserUseCase) CreateAsAdmin(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	name, email, err := auth.ValidateNewUser(in.Name(), in.Email, in.Password, in.Role)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := uc.repo.Create(ctx, name, email, hash, in.Role)
	if err != nil {
		return nil, err
	}
	out := dto.FromEntity(user)
	return &out, nil
}

// buildPatch valida y normaliza los campos presentes de un update parcial.
// allowRole habilita el cambio de rol (solo camino admin).
func (uc *UserUseCase) buildPatch(in dto.UpdateUserRequest, allowRole bool) (entity.UserPatch, error) {
	var patch entity.UserPatch

	if name := in.Name(); name != nil {
		t := strings.TrimSpace(*name)
		patch.FullName = &t
	}
	if in.Email != nil {
		email := domain.NormalizeEmail(*in.Email)
		if !domain.ValidEmail(email) {
			return patch, domain.Invalid("email is invalid")
		}
		patch.Email = &email
	}
	if in.Password != nil {
		if len(*in.Password) < domain.MinPasswordLen {
			return patch, domain.Invalid("password must be at least 8 characters")
		}
		hash, err := uc.hasher.Hash(*in.Password)
		if err != nil {
			return patch, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}
	if allowRole && in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return patch, domain.Invalid("role is invalid")
		}
		patch.Role = in.Role
	}
	return patch, nil
}

// UpdateAsAdmin actualiza cualquier campo, incluido el rol.
func (uc *UserUseCase) UpdateAsAdmin(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	patch, err := uc.buildPatch(in, true)
	if err != nil {
		return nil, err
	}
	return uc.applyPatch(ctx, id, patch)
}

// UpdateAsSelf igual que el camino admin pero el rol jamás se lee del request:
// un self-update no puede escalar su propio rol.
func (uc *UserUseCase) UpdateAsSelf(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	patch, err := uc.buildPatch(in, false)
	if err != nil {
		return nil, err
	}
	return uc.applyPatch(ctx, id, patch)
}

func (uc *UserUseCase) applyPatch(ctx context.Context, id string, patch entity.UserPatch) (*dto.UserResponse, error) {
	user, err := uc.repo.Patch(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.FromEntity(user)
	return &out, nil
}

// Delete marca el usuario como eliminado conservando la fila.
func (uc *UserUseCase) Delete(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.FromEntity(user)
	return &out, nil
}

// Restore revierte un soft delete.
func (uc *UserUseCase) Restore(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.FromEntity(user)
	return &out, nil
}
