package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los mensajes son los que ve el
// cliente cuando el handler los mapea a HTTP, por eso van en inglés.
var (
	ErrNotFound           = errors.New("not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrInvalidInput       = errors.New("invalid input")
	// ErrInvalidCredentials colapsa a propósito "usuario inexistente", "password
	// incorrecto" y "rol equivocado" en un único mensaje anti-enumeración.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

// Invalid construye un error de validación con mensaje específico de campo,
// envolviendo ErrInvalidInput para que errors.Is siga funcionando en el mapeo HTTP.
func Invalid(msg string) error {
	return &invalidError{msg: msg}
}

type invalidError struct {
	msg string
}

func (e *invalidError) Error() string { return e.msg }

func (e *invalidError) Is(target error) bool { return target == ErrInvalidInput }
