package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más el rol del usuario.
// El rol viaja en el token para que el middleware RBAC pueda decidir sin consultar la DB.
// Nota: el token es válido hasta su expiración natural aunque un admin cambie el rol
// o elimine al usuario después de emitirlo (no hay listas de revocación).
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"` // "admin" | "manager" | "dispatcher" | "safety_officer"
}

func validRole(role string) bool {
	switch role {
	case "admin", "manager", "dispatcher", "safety_officer":
		return true
	}
	return false
}

// Generate genera un token JWT firmado (HS256) con el usuario como subject y su rol.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve userID (subject) y role.
// Todo fallo (firma incorrecta, token malformado, expirado, subject ausente o rol
// fuera del conjunto válido) retorna el mismo tipo de error: el caller no puede
// distinguir un token expirado de uno falsificado.
func Parse(secret, tokenString string) (userID, role string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("jwt: token inválido: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("jwt: claims inválidos")
	}
	if claims.Subject == "" {
		return "", "", fmt.Errorf("jwt: subject ausente")
	}
	if !validRole(claims.Role) {
		return "", "", fmt.Errorf("jwt: rol inválido")
	}
	return claims.Subject, claims.Role, nil
}
