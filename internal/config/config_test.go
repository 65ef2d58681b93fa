package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_PATH", "LISTEN_ADDR", "UPLOAD_DIR", "MAX_BODY_BYTES", "ALLOWED_ORIGINS",
		"LOG_LEVEL", "LENIENT_STREAM", "KEEP_PARTIAL", "METRICS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.EqualValues(t, 10*1024*1024, cfg.MaxBodyBytes)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.False(t, cfg.LenientStream)
	assert.True(t, cfg.KeepPartial)
	assert.True(t, cfg.Metrics)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte(`
listen_addr: ":9000"
upload_dir: "/tmp/in"
max_body_bytes: 2048
allowed_origins: ["http://a.example"]
keep_partial: false
`)
	require.NoError(t, os.WriteFile(path, body, 0o644))

	t.Setenv("UPLOAD_DIR", "/srv/files")
	t.Setenv("ALLOWED_ORIGINS", "http://b.example, http://c.example")
	t.Setenv("LENIENT_STREAM", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/srv/files", cfg.UploadDir)
	assert.EqualValues(t, 2048, cfg.MaxBodyBytes)
	assert.Equal(t, []string{"http://b.example", "http://c.example"}, cfg.AllowedOrigins)
	assert.False(t, cfg.KeepPartial)
	assert.True(t, cfg.LenientStream)
	assert.True(t, cfg.Metrics)
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_BODY_BYTES", "ten")

	_, err := Load("")
	require.ErrorContains(t, err, "MAX_BODY_BYTES")

	t.Setenv("MAX_BODY_BYTES", "")
	t.Setenv("METRICS", "maybe")
	_, err = Load("")
	require.ErrorContains(t, err, "METRICS")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.MaxBodyBytes = 0
	require.ErrorContains(t, cfg.Validate(), "must be > 0")

	cfg = Default()
	cfg.UploadDir = " "
	require.ErrorContains(t, cfg.Validate(), "upload dir")
}

func TestLoad_EmptyOriginsRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", " , ")

	_, err := Load("")
	require.ErrorContains(t, err, "allowed origins is empty")

	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("allowed_origins: []\n"), 0o644))

	_, err = Load(path)
	require.ErrorContains(t, err, "allowed origins is empty")
}

func TestValidate_Origins(t *testing.T) {
	for _, origins := range [][]string{nil, {}, {" "}, {"*"}, {"http://localhost:5173", "https://*.example"}} {
		cfg := Default()
		cfg.AllowedOrigins = origins
		assert.Error(t, cfg.Validate(), "%q", origins)
	}

	cfg := Default()
	cfg.AllowedOrigins = []string{"http://a.example", "http://b.example"}
	assert.NoError(t, cfg.Validate())
}
