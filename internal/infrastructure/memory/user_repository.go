package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/fleetflow-api/internal/domain"
	"github.com/jhoicas/fleetflow-api/internal/domain/entity"
	"github.com/jhoicas/fleetflow-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria del puerto UserRepository.
// Reproduce la semántica del adaptador PostgreSQL (unicidad de email sobre
// todas las filas, orden de creación descendente, password_hash solo en
// FindByEmail) para tests y desarrollo sin base de datos.
type UserRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	byEmail map[string]string // email normalizado -> id
	order   []string          // ids en orden de inserción
}

// NewUserRepository construye el repositorio en memoria vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]string),
	}
}

// clone copia la entidad; withHash controla si password_hash sale del repo.
func clone(u *entity.User, withHash bool) *entity.User {
	out := *u
	if !withHash {
		out.PasswordHash = ""
	}
	if u.DeletedAt != nil {
		t := *u.DeletedAt
		out.DeletedAt = &t
	}
	return &out
}

// Create inserta respetando la unicidad de email (borrados incluidos).
// El mutex arbitra los registros concurrentes igual que lo haría el unique de la DB:
// exactamente un ganador, el resto ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, fullName, email, passwordHash, role string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[email]; taken {
		return nil, domain.ErrEmailAlreadyExists
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	r.order = append(r.order, u.ID)
	return clone(u, false), nil
}

// FindByEmail devuelve el usuario con password_hash incluido, o (nil, nil).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return clone(r.byID[id], true), nil
}

// FindByID devuelve el usuario sin password_hash, o (nil, nil).
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return clone(u, false), nil
}

// List devuelve en orden de creación descendente; excluye borrados salvo includeDeleted.
func (r *UserRepo) List(ctx context.Context, includeDeleted bool) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		u := r.byID[r.order[i]]
		if u.IsDeleted && !includeDeleted {
			continue
		}
		out = append(out, clone(u, false))
	}
	return out, nil
}

// Patch aplica los campos no-nil. (nil, nil) si el id no existe.
func (r *UserRepo) Patch(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	if patch.Empty() {
		return clone(u, false), nil
	}
	if patch.Email != nil && *patch.Email != u.Email {
		if _, taken := r.byEmail[*patch.Email]; taken {
			return nil, domain.ErrEmailAlreadyExists
		}
		delete(r.byEmail, u.Email)
		u.Email = *patch.Email
		r.byEmail[u.Email] = u.ID
	}
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	u.UpdatedAt = time.Now()
	return clone(u, false), nil
}

// SoftDelete marca la fila y estampa deleted_at. (nil, nil) si no existe.
func (r *UserRepo) SoftDelete(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	now := time.Now()
	u.IsDeleted = true
	u.DeletedAt = &now
	u.UpdatedAt = now
	return clone(u, false), nil
}

// Restore revierte el soft delete. (nil, nil) si no existe.
func (r *UserRepo) Restore(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	u.IsDeleted = false
	u.DeletedAt = nil
	u.UpdatedAt = time.Now()
	return clone(u, false), nil
}
