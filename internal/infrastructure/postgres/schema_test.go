package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cada paso declarado debe existir embebido y no estar vacío.
func TestSchemaSteps_ArchivosEmbebidos(t *testing.T) {
	for _, step := range schemaSteps {
		sql, err := schemaFS.ReadFile("sql/" + step.Filename)
		require.NoError(t, err, "paso %s debe estar embebido", step.Filename)
		assert.NotEmpty(t, strings.TrimSpace(string(sql)), "paso %s no puede estar vacío", step.Filename)
	}
}

// Idempotencia: todo CREATE TABLE lleva IF NOT EXISTS, y el paso de cada tabla
// realmente define la tabla que declara verificar.
func TestSchemaSteps_CreateTableIdempotente(t *testing.T) {
	for _, step := range schemaSteps {
		if step.Table == "" {
			continue
		}
		raw, err := schemaFS.ReadFile("sql/" + step.Filename)
		require.NoError(t, err)
		sql := strings.ToLower(string(raw))

		assert.Contains(t, sql, "create table if not exists "+step.Table,
			"paso %s debe crear %s de forma idempotente", step.Filename, step.Table)
	}
}

// El orden de los pasos respeta las dependencias: extensiones y el enum
// user_role antes de users, y todas las tablas antes de triggers y vistas.
func TestSchemaSteps_Orden(t *testing.T) {
	pos := make(map[string]int, len(schemaSteps))
	for i, step := range schemaSteps {
		pos[step.Filename] = i
	}

	require.Contains(t, pos, "00_extensions.sql")
	require.Contains(t, pos, "00_user_role.sql")
	require.Contains(t, pos, "01_users.sql")
	require.Contains(t, pos, "09_triggers.sql")
	require.Contains(t, pos, "10_views.sql")

	assert.Less(t, pos["00_extensions.sql"], pos["01_users.sql"],
		"pgcrypto debe existir antes de tablas con gen_random_uuid()")
	assert.Less(t, pos["00_user_role.sql"], pos["01_users.sql"],
		"el enum user_role debe existir antes de users")

	lastTable := 0
	for i, step := range schemaSteps {
		if step.Table != "" && i > lastTable {
			lastTable = i
		}
	}
	assert.Less(t, lastTable, pos["08_functions.sql"])
	assert.Less(t, pos["08_functions.sql"], pos["09_triggers.sql"],
		"set_updated_at() debe definirse antes de sus triggers")
	assert.Less(t, pos["09_triggers.sql"], pos["10_views.sql"])
}

// El DDL de users fija las invariantes que asume el repositorio: email único
// sobre todas las filas (borradas incluidas), id generado por la base y las
// columnas de soft delete.
func TestSchemaSteps_UsersDDL(t *testing.T) {
	raw, err := schemaFS.ReadFile("sql/01_users.sql")
	require.NoError(t, err)
	sql := strings.ToLower(string(raw))

	assert.Contains(t, sql, "unique", "email debe llevar restricción de unicidad")
	assert.NotContains(t, sql, "where is_deleted",
		"la unicidad de email cubre también las filas borradas")
	assert.Contains(t, sql, "gen_random_uuid()")
	assert.Contains(t, sql, "is_deleted")
	assert.Contains(t, sql, "deleted_at")
}
