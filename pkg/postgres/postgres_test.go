package postgres

import (
	"testing"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(&cfg.PGDBCfg{
		Host:     "db",
		Port:     "5432",
		User:     "shop",
		Password: "secret",
		DBName:   "storefront",
		SSLMode:  "disable",
	})

	assert.Equal(t, "postgres://shop:secret@db:5432/storefront?sslmode=disable", dsn)
}

func TestDSNEscapesPassword(t *testing.T) {
	dsn := DSN(&cfg.PGDBCfg{
		Host:     "db",
		Port:     "5432",
		User:     "shop",
		Password: "p@ss word/#",
		DBName:   "storefront",
	})

	parsed, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	assert.Equal(t, "p@ss word/#", parsed.ConnConfig.Password)
	assert.Equal(t, "storefront", parsed.ConnConfig.Database)
	assert.Equal(t, uint16(5432), parsed.ConnConfig.Port)
}

func TestMigrationsSource(t *testing.T) {
	assert.Equal(t, "file://db/migrations", MigrationsSource(""))
	assert.Equal(t, "file:///srv/migrations", MigrationsSource("/srv/migrations"))
}
