package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setCredentials supplies the required Dropbox credentials so Load passes
// validation in tests that exercise other fields.
func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("DROPSEARCH_DROPBOX_APP_KEY", "app-key")
	t.Setenv("DROPSEARCH_DROPBOX_APP_SECRET", "app-secret")
	t.Setenv("DROPSEARCH_DROPBOX_REFRESH_TOKEN", "refresh-token")
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "", cfg.Root)
	assert.Equal(t, ".txt", cfg.Extension)
	assert.Equal(t, "./data/index.bleve", cfg.IndexPath)
	assert.Equal(t, "./data/history.db", cfg.DBPath)
	assert.True(t, cfg.SyncOnStart)
	assert.Zero(t, cfg.SyncInterval)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "app-key", cfg.Dropbox.AppKey)
}

func TestLoad_MissingCredentials(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoad_EnvOverlay(t *testing.T) {
	setCredentials(t)
	t.Setenv("DROPSEARCH_ADDR", ":9090")
	t.Setenv("DROPSEARCH_ROOT", "/notes")
	t.Setenv("DROPSEARCH_SYNC_ON_START", "false")
	t.Setenv("DROPSEARCH_SYNC_INTERVAL", "15m")
	t.Setenv("DROPSEARCH_VERBOSE", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/notes", cfg.Root)
	assert.False(t, cfg.SyncOnStart)
	assert.Equal(t, 15*time.Minute, cfg.SyncInterval)
	assert.True(t, cfg.Verbose)
}

func TestLoad_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dropsearch.toml")
	content := `
addr = "127.0.0.1:9000"
extension = ".md"
sync_interval = "1h"

[dropbox]
app_key = "file-key"
app_secret = "file-secret"
refresh_token = "file-refresh"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, ".md", cfg.Extension)
	assert.Equal(t, time.Hour, cfg.SyncInterval)
	assert.Equal(t, "file-key", cfg.Dropbox.AppKey)
	// Untouched fields keep their defaults.
	assert.Equal(t, "./data/index.bleve", cfg.IndexPath)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dropsearch.toml")
	content := `
addr = "127.0.0.1:9000"

[dropbox]
app_key = "file-key"
app_secret = "file-secret"
refresh_token = "file-refresh"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("DROPSEARCH_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "file-key", cfg.Dropbox.AppKey)
}

func TestLoad_FileMissing(t *testing.T) {
	setCredentials(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config file")
}

func TestLoad_InvalidExtension(t *testing.T) {
	setCredentials(t)
	t.Setenv("DROPSEARCH_EXTENSION", "txt")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_InvalidTokenURL(t *testing.T) {
	setCredentials(t)
	t.Setenv("DROPSEARCH_DROPBOX_TOKEN_URL", "not a url")

	_, err := Load("")
	require.Error(t, err)
}

func TestValidListenAddr(t *testing.T) {
	type sample struct {
		Addr string `validate:"listen_addr"`
	}

	v := validator.New()
	require.NoError(t, v.RegisterValidation("listen_addr", validListenAddr))

	tests := []struct {
		name  string
		addr  string
		valid bool
	}{
		{name: "empty", addr: "", valid: false},
		{name: "missing_port", addr: "127.0.0.1", valid: false},
		{name: "missing_port_after_colon", addr: "127.0.0.1:", valid: false},
		{name: "just_colon_port", addr: ":8080", valid: true},
		{name: "loopback_ipv4", addr: "127.0.0.1:8080", valid: true},
		{name: "hostname", addr: "localhost:8080", valid: true},
		{name: "ipv6_loopback", addr: "[::1]:8080", valid: true},
		{name: "non_numeric_port", addr: "127.0.0.1:http", valid: false},
		{name: "port_zero", addr: "127.0.0.1:0", valid: false},
		{name: "port_max_valid", addr: "127.0.0.1:65535", valid: true},
		{name: "port_overflow", addr: "127.0.0.1:65536", valid: false},
		{name: "space_prefixed", addr: " :8080", valid: false},
		{name: "trailing_space", addr: "127.0.0.1:8080 ", valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(&sample{Addr: tc.addr})
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadDefaultLoaderError(t *testing.T) {
	orig := defaultLoader
	t.Cleanup(func() { defaultLoader = orig })
	defaultLoader = func(k *koanf.Koanf) error {
		assert.NotNil(t, k)
		return assert.AnError
	}

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, assert.AnError))
}

func TestLoadEnvLoaderError(t *testing.T) {
	orig := envLoader
	t.Cleanup(func() { envLoader = orig })
	envLoader = func(k *koanf.Koanf) error {
		assert.NotNil(t, k)
		return assert.AnError
	}

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, assert.AnError))
}

func TestLoadRegisterValidatorsError(t *testing.T) {
	orig := registerValidators
	t.Cleanup(func() { registerValidators = orig })
	registerValidators = func(v *validator.Validate) error {
		assert.NotNil(t, v)
		return assert.AnError
	}

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, assert.AnError))
}
