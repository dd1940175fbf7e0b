package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/fleetflow-api/internal/domain"
	"github.com/jhoicas/fleetflow-api/internal/domain/entity"
	"github.com/jhoicas/fleetflow-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// userColumns columnas devueltas por defecto. password_hash queda fuera:
// solo FindByEmail lo selecciona, para verificar login.
const userColumns = "id, full_name, email, role, is_deleted, created_at, updated_at, deleted_at"

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// No contiene reglas de negocio: la unicidad y los NOT NULL los aplica el schema.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Role, &u.IsDeleted,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserta un usuario; id y timestamps los asigna la base de datos.
func (r *UserRepo) Create(ctx context.Context, fullName, email, passwordHash, role string) (*entity.User, error) {
	query := `
		INSERT INTO users (full_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, query, fullName, email, passwordHash, role))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// FindByEmail obtiene un usuario por email, incluyendo password_hash (login).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, full_name, email, password_hash, role, is_deleted, created_at, updated_at, deleted_at
		FROM users WHERE email = $1 LIMIT 1`
	var u entity.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.IsDeleted,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// FindByID obtiene un usuario por ID (sin password_hash).
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// List devuelve usuarios ordenados por fecha de creación descendente.
// Con includeDeleted=false excluye los soft-deleted.
func (r *UserRepo) List(ctx context.Context, includeDeleted bool) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1::boolean = true) OR (is_deleted = false)
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.Role, &u.IsDeleted,
			&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Patch aplica solo los campos no-nil construyendo el SET dinámicamente.
// Un patch vacío devuelve la fila actual sin tocar columnas (no-op válido).
// Retorna (nil, nil) si el id no existe.
func (r *UserRepo) Patch(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	if patch.Empty() {
		return r.FindByID(ctx, id)
	}

	sets := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)
	add := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.FullName != nil {
		add("full_name", *patch.FullName)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		add("password_hash", *patch.PasswordHash)
	}
	if patch.Role != nil {
		add("role", *patch.Role)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d RETURNING %s",
		joinSets(sets), len(args), userColumns)

	u, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("patch user: %w", err)
	}
	return u, nil
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, s := range sets[1:] {
		out += ", " + s
	}
	return out
}

// SoftDelete marca el usuario como eliminado y estampa deleted_at.
// La fila se conserva: ninguna operación borra filas de users.
func (r *UserRepo) SoftDelete(ctx context.Context, id string) (*entity.User, error) {
	query := `
		UPDATE users SET is_deleted = true, deleted_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("soft delete user: %w", err)
	}
	return u, nil
}

// Restore revierte el soft delete.
func (r *UserRepo) Restore(ctx context.Context, id string) (*entity.User, error) {
	query := `
		UPDATE users SET is_deleted = false, deleted_at = NULL
		WHERE id = $1
		RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("restore user: %w", err)
	}
	return u, nil
}
