package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/fleetflow-api/internal/application/dto"
	"github.com/jhoicas/fleetflow-api/internal/domain"
	"github.com/jhoicas/fleetflow-api/internal/domain/entity"
	"github.com/jhoicas/fleetflow-api/internal/domain/repository"
	"github.com/jhoicas/fleetflow-api/pkg/jwt"
	"github.com/jhoicas/fleetflow-api/pkg/password"
)

// JWTConfig configuración para emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil propio.
// Toda validación y normalización de entrada vive aquí, no en los handlers.
type AuthUseCase struct {
	repo   repository.UserRepository
	hasher *password.Hasher
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(repo repository.UserRepository, hasher *password.Hasher, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{repo: repo, hasher: hasher, jwtCfg: jwtCfg}
}

// ValidateNewUser valida y normaliza los datos de alta de un usuario.
// Compartido entre el registro público y el alta administrativa.
func ValidateNewUser(fullName, email, pass, role string) (name, normEmail string, err error) {
	name = strings.TrimSpace(fullName)
	normEmail = domain.NormalizeEmail(email)
	switch {
	case name == "":
		return "", "", domain.Invalid("fullName is required")
	case !entity.ValidRole(role):
		return "", "", domain.Invalid("role is invalid")
	case normEmail == "":
		return "", "", domain.Invalid("email is required")
	case !domain.ValidEmail(normEmail):
		return "", "", domain.Invalid("email is invalid")
	case len(pass) < domain.MinPasswordLen:
		return "", "", domain.Invalid("password must be at least 8 characters")
	}
	return name, normEmail, nil
}

// Register crea la cuenta y emite la credencial inicial.
// El email queda reservado aunque la fila existente esté soft-deleted: el
// pre-chequeo y el unique de la DB rechazan ambos estados con Conflict.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	name, email, err := ValidateNewUser(in.Name(), in.Email, in.Password, in.Role)
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

	// Registros concurrentes con el mismo email los arbitra el unique de la DB,
	// no un lock en proceso: el perdedor recibe ErrEmailAlreadyExists del repo.
	user, err := uc.repo.Create(ctx, name, email, hash, in.Role)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &dto.AuthResponse{User: dto.FromEntity(user), AccessToken: token}, nil
}

// Login verifica email/password/rol y emite la credencial.
// Los tres fallos posibles (usuario inexistente o borrado, password incorrecto,
// rol equivocado) devuelven el mismo ErrInvalidCredentials: no filtrar cuál fue.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := domain.NormalizeEmail(in.Email)
	switch {
	case email == "":
		return nil, domain.Invalid("email is required")
	case in.Password == "":
		return nil, domain.Invalid("password is required")
	case !entity.ValidRole(in.Role):
		return nil, domain.Invalid("role is invalid")
	}

	user, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted {
		return nil, domain.ErrInvalidCredentials
	}
	if !uc.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Role != in.Role {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	// FromEntity no proyecta el hash; la respuesta va limpia.
	return &dto.AuthResponse{User: dto.FromEntity(user), AccessToken: token}, nil
}

// Me devuelve el perfil del usuario autenticado. Una identidad soft-deleted
// deja de ser válida aunque su token no haya expirado todavía.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted {
		return nil, domain.ErrUnauthorized
	}
	out := dto.FromEntity(user)
	return &out, nil
}
