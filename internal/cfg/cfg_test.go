package cfg

import (
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"POSTGRES_DB", "REDIS_ADDR", "MINIO_ENDPOINT", "KAFKA_BROKERS", "CATALOG_SOURCE", "PAGE_SIZE"} {
		t.Setenv(k, "")
	}

	c, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Http.Port)
	assert.Equal(t, CatalogSourceHTTP, c.Catalog.Source)
	assert.Equal(t, "http://127.0.0.1:5000/products", c.Catalog.SourceURL)
	assert.Equal(t, 10, c.Catalog.PageSize)
	assert.Equal(t, "USD", c.Catalog.CartCurrency)
	assert.Equal(t, 300*time.Millisecond, c.Session.PulseDuration)
	assert.Equal(t, "sf_session", c.Session.CookieName)

	assert.False(t, c.Db.Enabled())
	assert.False(t, c.Redis.Enabled())
	assert.False(t, c.Minio.Enabled())
	assert.False(t, c.Kafka.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PAGE_SIZE", "24")
	t.Setenv("PULSE_DURATION", "1s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("READ_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "4s")

	c, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 24, c.Catalog.PageSize)
	assert.Equal(t, time.Second, c.Session.PulseDuration)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
	assert.True(t, c.Kafka.Enabled())
	assert.True(t, c.Redis.Enabled())
	assert.Equal(t, 4*time.Second, c.Redis.Timeout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"page size not a number", "PAGE_SIZE", "ten"},
		{"page size zero", "PAGE_SIZE", "0"},
		{"bad duration", "SESSION_IDLE_TTL", "forever"},
		{"unknown source", "CATALOG_SOURCE", "ftp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load(logger.NewNop())
			require.Error(t, err)
		})
	}
}

func TestPostgresSourceRequiresDatabase(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("POSTGRES_DB", "")

	_, err := Load(logger.NewNop())
	require.Error(t, err)
}

func TestPostgresRequiresCredentials(t *testing.T) {
	t.Setenv("POSTGRES_DB", "storefront")
	t.Setenv("POSTGRES_USER", "")

	_, err := Load(logger.NewNop())
	require.Error(t, err)
}

func TestPostgresPoolSettings(t *testing.T) {
	t.Setenv("POSTGRES_DB", "storefront")
	t.Setenv("POSTGRES_USER", "shop")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_MAX_CONNS", "")
	t.Setenv("MIGRATIONS_DIR", "")

	c, err := loadPGDBCfg(logger.NewNop())
	require.NoError(t, err)
	assert.True(t, c.Enabled())
	assert.Equal(t, int32(10), c.MaxConns)
	assert.Equal(t, "db/migrations", c.MigrationsDir)

	t.Setenv("POSTGRES_MAX_CONNS", "0")
	_, err = loadPGDBCfg(logger.NewNop())
	assert.True(t, errors.Is(err, e.ErrIncorrectEnvVariable))
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("SOME_INT", "x")
	_, err := parseIntEnv("SOME_INT", 5)
	assert.True(t, errors.Is(err, e.ErrIncorrectEnvVariable))

	t.Setenv("SOME_INT", "")
	v, err := parseIntEnv("SOME_INT", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}
