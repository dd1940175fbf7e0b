package entity

import "time"

// Roles válidos para User. Conjunto cerrado: ningún otro valor se persiste ni se acepta.
const (
	RoleAdmin         = "admin"
	RoleManager       = "manager"
	RoleDispatcher    = "dispatcher"
	RoleSafetyOfficer = "safety_officer"
)

// ValidRole indica si role pertenece al conjunto cerrado de roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleDispatcher, RoleSafetyOfficer:
		return true
	}
	return false
}

// User representa un usuario del sistema.
// PasswordHash solo se carga en el lookup por email (login); el resto de
// consultas lo dejan vacío y nunca sale del dominio hacia la API.
type User struct {
	ID           string
	FullName     string
	Email        string // normalizado: trim + lower antes de persistir o comparar
	PasswordHash string
	Role         string
	IsDeleted    bool
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch actualización parcial: un puntero nil deja la columna intacta.
// Un patch completamente vacío es un no-op válido que devuelve la fila actual.
type UserPatch struct {
	FullName     *string
	Email        *string
	PasswordHash *string
	Role         *string
}

// Empty indica si el patch no toca ningún campo.
func (p UserPatch) Empty() bool {
	return p.FullName == nil && p.Email == nil && p.PasswordHash == nil && p.Role == nil
}
