package dto

import (
	"time"

	"github.com/jhoicas/fleetflow-api/internal/domain/entity"
)

// RegisterRequest entrada para registro. El frontend histórico envía fullName
// en camelCase pero algunos clientes usan full_name: se aceptan ambos.
type RegisterRequest struct {
	FullName      string `json:"fullName"`
	FullNameSnake string `json:"full_name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
}

// Name devuelve fullName con fallback al alias snake_case.
func (r RegisterRequest) Name() string {
	if r.FullName != "" {
		return r.FullName
	}
	return r.FullNameSnake
}

// LoginRequest entrada para login. El rol es parte de la credencial: un login
// con rol distinto al almacenado falla igual que un password incorrecto.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUserRequest entrada para alta administrativa (sin emisión de token).
type CreateUserRequest struct {
	FullName      string `json:"fullName"`
	FullNameSnake string `json:"full_name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
}

// Name devuelve fullName con fallback al alias snake_case.
func (r CreateUserRequest) Name() string {
	if r.FullName != "" {
		return r.FullName
	}
	return r.FullNameSnake
}

// UpdateUserRequest patch parcial: los campos ausentes no se tocan.
// Role solo se lee en el camino de admin; el camino self lo ignora siempre.
type UpdateUserRequest struct {
	FullName      *string `json:"fullName"`
	FullNameSnake *string `json:"full_name"`
	Email         *string `json:"email"`
	Password      *string `json:"password"`
	Role          *string `json:"role"`
}

// Name devuelve el puntero de fullName con fallback al alias snake_case.
func (r UpdateUserRequest) Name() *string {
	if r.FullName != nil {
		return r.FullName
	}
	return r.FullNameSnake
}

// UserResponse proyección de un usuario hacia la API. Nunca incluye password_hash.
type UserResponse struct {
	ID        string     `json:"id"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsDeleted bool       `json:"is_deleted"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// AuthResponse usuario + credencial emitida (registro y login).
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// FromEntity proyecta la entidad hacia la respuesta API.
func FromEntity(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		IsDeleted: u.IsDeleted,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}

// FromEntities proyecta una lista de entidades.
func FromEntities(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromEntity(u))
	}
	return out
}
