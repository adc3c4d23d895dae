package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "repuestos-api", cfg.App.Name)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, DriverRedis, cfg.KV.Driver)
	assert.Equal(t, int64(999), cfg.KV.QuoteStart)
	assert.True(t, cfg.Policy.StrictLookup)
	assert.False(t, cfg.Policy.AllowReapproval)
	assert.False(t, cfg.Policy.RestoreStockOnDelete)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("KV_DRIVER", "memory")
	t.Setenv("STOCK_STRICT_LOOKUP", "false")
	t.Setenv("QUOTE_ALLOW_REAPPROVAL", "true")
	t.Setenv("REDIS_READ_TIMEOUT", "250ms")
	t.Setenv("REDIS_DIAL_TIMEOUT", "2")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, DriverMemory, cfg.KV.Driver)
	assert.False(t, cfg.Policy.StrictLookup)
	assert.True(t, cfg.Policy.AllowReapproval)
	assert.Equal(t, 250*time.Millisecond, cfg.Redis.ReadTimeout)
	assert.Equal(t, 2*time.Second, cfg.Redis.DialTimeout)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "repuestos", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/repuestos?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestLoad_PostgresConKVEnMemoriaSeRechaza(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("KV_DRIVER", "memory")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KV_DRIVER=memory")

	cfg := Config{
		Store: StoreConfig{Driver: DriverMemory},
		KV:    KVConfig{Driver: DriverRedis},
		JWT:   JWTConfig{Expiration: 60},
	}
	assert.NoError(t, cfg.Validate(), "PostgreSQL no es obligatorio para usar Redis")
}

func TestLoad_PoolDeConexiones(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "8")
	t.Setenv("DB_MAX_CONN_IDLE_TIME", "90s")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int32(8), cfg.DB.MaxConns)
	assert.Equal(t, int32(2), cfg.DB.MinConns)
	assert.Equal(t, time.Hour, cfg.DB.MaxConnLifetime)
	assert.Equal(t, 90*time.Second, cfg.DB.MaxConnIdleTime)
	assert.True(t, cfg.DB.ForceIPv4)
}
