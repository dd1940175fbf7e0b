package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/fleetflow-api/internal/domain"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@ex.com", domain.NormalizeEmail(" Jane@Ex.com "))
	assert.Equal(t, "jane@ex.com", domain.NormalizeEmail("jane@ex.com"))
	assert.Equal(t, "", domain.NormalizeEmail("   "))
}

func TestValidEmail(t *testing.T) {
	valid := []string{"jane@ex.com", "a.b@sub.domain.org", "x@y.co"}
	for _, e := range valid {
		assert.True(t, domain.ValidEmail(e), e)
	}

	invalid := []string{
		"",
		"sin-arroba.com",
		"@ex.com",          // parte local vacía
		"jane@excom",       // dominio sin punto
		"jane@.com",        // punto al inicio del dominio
		"jane@excom.",      // punto al final del dominio
		"ja ne@ex.com",     // whitespace embebido
		"jane@ex@ample.com", // doble @
	}
	for _, e := range invalid {
		assert.False(t, domain.ValidEmail(e), e)
	}
}

func TestInvalid_EsErrInvalidInput(t *testing.T) {
	err := domain.Invalid("email is required")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "email is required", err.Error())
}
