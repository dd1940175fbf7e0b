package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost costo bcrypt por defecto. Deliberadamente alto: ~250ms por hash.
const DefaultCost = 12

// Hasher hashea y verifica contraseñas con bcrypt y costo fijo.
// El costo se inyecta desde la configuración en el arranque; nunca por petición.
// Cada hash corre en la goroutine de su propia petición, así que el costo alto
// no bloquea el resto del servidor.
type Hasher struct {
	cost int
}

// New construye un Hasher. Un costo <= 0 usa DefaultCost.
func New(cost int) *Hasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash genera el hash bcrypt (con salt propio) de un secreto en texto plano.
func (h *Hasher) Hash(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara secreto y digest en tiempo constante.
// Retorna false ante mismatch o digest malformado; nunca error.
func (h *Hasher) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
