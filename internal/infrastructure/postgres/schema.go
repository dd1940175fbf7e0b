package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/fleetflow-api/pkg/logger"
)

//go:embed sql/*.sql
var schemaFS embed.FS

// schemaStep un paso de definición del schema. Si Table no está vacío, se
// verifica la existencia de la tabla antes y después de aplicar el SQL.
type schemaStep struct {
	Filename string
	Table    string
}

// schemaSteps secuencia ordenada de pasos. El orden importa: el tipo user_role
// debe existir antes de users, y las tablas antes de sus triggers y vistas.
var schemaSteps = []schemaStep{
	{Filename: "00_extensions.sql"},
	{Filename: "00_user_role.sql"},
	{Filename: "01_users.sql", Table: "users"},
	{Filename: "02_vehicles.sql", Table: "vehicles"},
	{Filename: "03_drivers.sql", Table: "drivers"},
	{Filename: "04_driver_complaints.sql", Table: "driver_complaints"},
	{Filename: "05_trips.sql", Table: "trips"},
	{Filename: "06_service_logs.sql", Table: "service_logs"},
	{Filename: "07_trip_expenses.sql", Table: "trip_expenses"},
	{Filename: "08_functions.sql"},
	{Filename: "09_triggers.sql"},
	{Filename: "10_views.sql"},
}

func tableExists(ctx context.Context, pool *pgxpool.Pool, table string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", "public."+table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("verificar tabla %s: %w", table, err)
	}
	return exists, nil
}

// EnsureSchema aplica la secuencia de pasos del schema. Es idempotente: todo el
// SQL usa IF NOT EXISTS / OR REPLACE, así que correr en cada arranque contra una
// base ya inicializada no produce errores ni estructuras duplicadas.
//
// Para cada paso con tabla asociada:
//  1. registra si la tabla ya existía,
//  2. aplica el SQL (cualquier fallo es fatal: el arranque se aborta),
//  3. re-verifica la existencia; si sigue ausente tras un apply "exitoso" se
//     aborta con error de inconsistencia (defensa contra statements tragados),
//  4. loggea si la tabla se creó o ya existía.
//
// Los pasos sin tabla (funciones, triggers, vistas) se aplican sin verificación.
// Debe ejecutarse antes de que el servidor acepte conexiones.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	slog := log.WithComponent("schema")
	for _, step := range schemaSteps {
		existedBefore := false
		if step.Table != "" {
			var err error
			existedBefore, err = tableExists(ctx, pool, step.Table)
			if err != nil {
				return err
			}
		}

		sql, err := schemaFS.ReadFile("sql/" + step.Filename)
		if err != nil {
			return fmt.Errorf("leer paso de schema %s: %w", step.Filename, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			slog.Error().Err(err).Str("step", step.Filename).Msg("fallo al aplicar paso de schema")
			return fmt.Errorf("aplicar paso de schema %s: %w", step.Filename, err)
		}

		if step.Table == "" {
			slog.Debug().Str("step", step.Filename).Msg("paso aplicado")
			continue
		}

		existsAfter, err := tableExists(ctx, pool, step.Table)
		if err != nil {
			return err
		}
		if !existsAfter {
			return fmt.Errorf("inconsistencia de schema: la tabla %s no existe tras aplicar %s", step.Table, step.Filename)
		}
		if existedBefore {
			slog.Info().Str("table", step.Table).Msg("tabla ya existía")
		} else {
			slog.Info().Str("table", step.Table).Msg("tabla creada")
		}
	}
	return nil
}
