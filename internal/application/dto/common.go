package dto

// ErrorResponse cuerpo de error HTTP: {"error": "<mensaje>"}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UserEnvelope respuesta {user: ...}.
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// UsersEnvelope respuesta {users: [...]}.
type UsersEnvelope struct {
	Users []UserResponse `json:"users"`
}
