package domain

import "strings"

// MinPasswordLen longitud mínima de contraseña aceptada.
const MinPasswordLen = 8

// NormalizeEmail aplica la normalización canónica: trim + lowercase.
// Toda comparación y persistencia de emails pasa por aquí.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail valida la forma mínima de un email ya normalizado: parte local no
// vacía, un solo @, dominio con punto y sin whitespace. No pretende validar
// RFC 5322 completo; es el mismo criterio pragmático del resto del sistema.
func ValidEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	dom := email[at+1:]
	dot := strings.Index(dom, ".")
	// El dominio necesita un punto que no sea ni el primer ni el último carácter.
	return dot > 0 && dot < len(dom)-1
}
