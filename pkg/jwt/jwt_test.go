package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/fleetflow-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "fleetflow-test"
	testExpMin = 60
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "dispatcher", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "dispatcher", role)
}

func TestParse_TokenExpirado(t *testing.T) {
	// Expiración -1 minuto: ya expirado al generarse
	tok, err := pkgjwt.Generate(testSecret, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestParse_TokenMalformado(t *testing.T) {
	_, _, err := pkgjwt.Parse(testSecret, "no.es.un-jwt")
	assert.Error(t, err)
}

func TestParse_RolFueraDelConjunto(t *testing.T) {
	// Generate no valida el rol (lo hace el servicio); Parse sí debe rechazarlo.
	tok, err := pkgjwt.Generate(testSecret, testUserID, "superuser", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "rol fuera del enum debe invalidar el token")
}

func TestParse_SubjectAusente(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "", "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "subject vacío debe invalidar el token")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, "admin", testIssuer, testExpMin)
	assert.Error(t, err)
}
