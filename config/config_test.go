package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PedroHSSoares-Dev/portfolio/field"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "FIELD_CONFIG", "FIELD_FPS", "DB_PATH", "TO_EMAIL", "CONTACT_EMAIL", "VISITOR_RETENTION_DAYS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "portfolio.db", cfg.DBPath)
	assert.Equal(t, 30, cfg.FieldFPS)
	assert.Equal(t, field.DefaultParams(), cfg.Field)
	assert.Equal(t, 365*24*time.Hour, cfg.VisitorRetention)
}

func TestLoadEnvFileAndFieldConfig(t *testing.T) {
	dir := t.TempDir()
	params := filepath.Join(dir, "field.yaml")
	require.NoError(t, os.WriteFile(params, []byte("count: 40\n"), 0o644))

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FIELD_FPS=24\nCONTACT_EMAIL=me@example.com\n"), 0o644))

	t.Setenv("FIELD_CONFIG", params)
	t.Setenv("PORT", "9999")
	t.Setenv("TO_EMAIL", "")
	// t.Setenv restores these after the test; godotenv only fills unset keys
	t.Setenv("FIELD_FPS", "")
	t.Setenv("CONTACT_EMAIL", "")
	os.Unsetenv("FIELD_FPS")
	os.Unsetenv("CONTACT_EMAIL")

	cfg, err := Load(envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 24, cfg.FieldFPS)
	assert.Equal(t, 40, cfg.Field.Count)
	assert.Equal(t, "me@example.com", cfg.SMTP.To)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("FIELD_CONFIG", "")
	t.Setenv("FIELD_FPS", "fast")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("FIELD_FPS", "500")
	_, err = Load()
	assert.Error(t, err)
}
