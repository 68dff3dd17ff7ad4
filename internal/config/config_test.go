package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "cpe_portal", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
	assert.Equal(t, int64(16<<20), cfg.Uploads.MaxSizeBytes)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_DBNAME", "cpe_test")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("UPLOAD_DIR", "/tmp/proofs")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "cpe_test", cfg.Database.DBName)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "/tmp/proofs", cfg.Uploads.Dir)
}

func TestDatabaseURL(t *testing.T) {
	db := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "cpe", Password: "pw",
		DBName: "cpe_portal", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://cpe:pw@localhost:5432/cpe_portal?sslmode=disable", db.GetDatabaseURL())
}
