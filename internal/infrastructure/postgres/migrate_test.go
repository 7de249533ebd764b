package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_OrdenadasYEmbebidas(t *testing.T) {
	names, err := migrationFiles()
	require.NoError(t, err)
	require.Equal(t, []string{"001_catalogo.sql", "002_usuario.sql"}, names)

	body, err := fs.ReadFile(migrationFS, "migrations/001_catalogo.sql")
	require.NoError(t, err)
	sql := string(body)
	assert.Contains(t, sql, "uq_categoria_nombre UNIQUE (nombre)")
	assert.Contains(t, sql, "uq_producto_nombre UNIQUE (nombre)")
	assert.True(t, strings.Contains(sql, "REFERENCES categoria (id) ON DELETE CASCADE"))
}
