package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/repuestos-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolConfig_UsaValoresDeConfig(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db", Port: 5432, User: "app", Password: "secret", DBName: "repuestos", SSLMode: "disable",
		MaxConns: 8, MinConns: 3, MaxConnLifetime: 10 * time.Minute, MaxConnIdleTime: time.Minute,
	}

	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 10*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.NotNil(t, pc.AfterConnect)
}

func TestNewPoolConfig_ForzarIPv4(t *testing.T) {
	pc, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://app@localhost:5432/repuestos", ForceIPv4: true})
	require.NoError(t, err)
	require.NotNil(t, pc.ConnConfig.DialFunc)

	// Una dirección IPv6 no es válida para tcp4; falla sin salir a la red.
	_, err = pc.ConnConfig.DialFunc(context.Background(), "tcp", "[::1]:5432")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no suitable address")
}

func TestNewPoolConfig_MinMayorQueMaxSeIgnora(t *testing.T) {
	pc, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://app@localhost:5432/repuestos", MaxConns: 2, MinConns: 5})
	require.NoError(t, err)
	assert.Equal(t, int32(2), pc.MaxConns)
	assert.Equal(t, int32(0), pc.MinConns)
}

func TestNewPoolConfig_DSNInvalido(t *testing.T) {
	_, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
