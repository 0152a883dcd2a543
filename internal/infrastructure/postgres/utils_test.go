package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgErrorCode(t *testing.T) {
	unique := fmt.Errorf("insertar insumo: %w", &pgconn.PgError{Code: codeUniqueViolation})
	check := &pgconn.PgError{Code: codeCheckViolation}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isCheckViolation(unique))
	assert.True(t, isCheckViolation(check))
	assert.Empty(t, pgErrorCode(errors.New("otro")))
	assert.Empty(t, pgErrorCode(nil))
}

func TestMigrationsEmbebidas(t *testing.T) {
	script, err := migrationsFS.ReadFile("migrations/001_init.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS")
}

// Una escala fija redondearía en silencio cantidades como 0.12345 g.
func TestMigrations_NumericSinEscalaFija(t *testing.T) {
	script, err := migrationsFS.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)
	assert.NotRegexp(t, `NUMERIC\s*\(`, string(script))
}
