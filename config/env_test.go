package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/nexus/config"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.LoadFrom(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "nexus.db", cfg.DatabaseDSN)
	assert.Equal(t, "products", cfg.MongoCollection)
	assert.Equal(t, 60*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Zero(t, cfg.AuthRateLimit)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFrom_LayerOrder(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"app_port": "9000", "jwt_ttl_minutes": 15, "db_driver": "postgres"}`)
	envPath := writeFile(t, dir, ".env", "# comment\nAPP_PORT=9100\nexport JWT_SECRET=\"s3cret\"\n")

	t.Setenv("MONGO_DATABASE", "catalog_test")

	cfg, err := config.LoadFrom(jsonPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.AppPort, ".env overrides app.json")
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL, "numbers in app.json are accepted")
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "catalog_test", cfg.MongoDatabase, "environment overrides files")
	assert.Contains(t, cfg.DatabaseDSN, "dbname=nexus_core_db")
}

func TestLoadFrom_UnknownDriverIsRejected(t *testing.T) {
	dir := t.TempDir()

	for _, driver := range []string{"oracle", "postgresql"} {
		envPath := writeFile(t, dir, ".env", "DB_DRIVER="+driver+"\n")
		_, err := config.LoadFrom(filepath.Join(dir, "none.json"), envPath)
		assert.ErrorContains(t, err, "DB_DRIVER", driver)
	}

	envPath := writeFile(t, dir, ".env", "DB_DRIVER=Postgres\n")
	cfg, err := config.LoadFrom(filepath.Join(dir, "none.json"), envPath)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
}

func TestLoadFrom_RejectsBadNumbers(t *testing.T) {
	dir := t.TempDir()

	envPath := writeFile(t, dir, ".env", "JWT_TTL_MINUTES=0\n")
	_, err := config.LoadFrom(filepath.Join(dir, "none.json"), envPath)
	assert.Error(t, err)

	envPath = writeFile(t, dir, ".env", "BCRYPT_COST=high\n")
	_, err = config.LoadFrom(filepath.Join(dir, "none.json"), envPath)
	assert.Error(t, err)

	envPath = writeFile(t, dir, ".env", "AUTH_RATE_LIMIT=-5\n")
	_, err = config.LoadFrom(filepath.Join(dir, "none.json"), envPath)
	assert.Error(t, err)
}

func TestLoadFrom_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{not json`)

	_, err := config.LoadFrom(jsonPath, filepath.Join(dir, "none.env"))
	assert.Error(t, err)
}

func TestCORSOriginsSplit(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "CORS_ORIGINS=https://a.example, https://b.example,\nAPP_ENV=production\n")

	cfg, err := config.LoadFrom(filepath.Join(dir, "none.json"), envPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsProduction())
}
