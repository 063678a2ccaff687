package config

import (
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truemediaorg/igfetch/instagram"
)

// chdirTemp runs the test from an empty directory so no stray .env is read.
func chdirTemp(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

func TestLoad(t *testing.T) {
	t.Run("falls back to defaults without a .env file", func(t *testing.T) {
		chdirTemp(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.ListenPort)
		assert.Equal(t, instagram.DefaultGraphURL, cfg.Instagram.GraphURL.String())
		assert.Equal(t, instagram.DefaultDocID, cfg.Instagram.DocID)
		assert.Equal(t, "video.mp4", cfg.Proxy.DefaultFilename)
		assert.Equal(t, []string{"https://", "http://"}, cfg.Proxy.AllowedSchemes)
		assert.Equal(t, log.InfoLevel, cfg.LogLevel)
		assert.Equal(t, LogFormat(LogFormatText), cfg.LogFormat)
	})

	t.Run("reads values from the environment", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv(EnvfileKeyListenPort, "9090")
		t.Setenv(EnvfileKeyInstagramGraphURL, "http://localhost:3000/graphql")
		t.Setenv(EnvfileKeyInstagramDocID, "42")
		t.Setenv(EnvfileKeyProxyAllowedSchemes, "https:// , ")
		t.Setenv(EnvfileKeyLogLevel, "debug")
		t.Setenv(EnvfileKeyLogFormat, "JSON")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.ListenPort)
		assert.Equal(t, "localhost:3000", cfg.Instagram.GraphURL.Host)
		assert.Equal(t, "42", cfg.Instagram.DocID)
		assert.Equal(t, []string{"https://"}, cfg.Proxy.AllowedSchemes)
		assert.Equal(t, log.DebugLevel, cfg.LogLevel)
		assert.Equal(t, LogFormat(LogFormatJSON), cfg.LogFormat)
	})

	t.Run("reads values from a .env file", func(t *testing.T) {
		chdirTemp(t)
		require.NoError(t, os.WriteFile(".env", []byte("LISTEN_PORT=7070\nINSTAGRAM_APP_ID=app\n"), 0o600))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.ListenPort)
		assert.Equal(t, "app", cfg.Instagram.AppID)
	})

	t.Run("rejects a non-http graph URL", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv(EnvfileKeyInstagramGraphURL, "ftp://example.com/graphql")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestInstagramSecretDataApply(t *testing.T) {
	cfg := InstagramConfig{DocID: "1", AppID: "2", UserAgent: "ua"}
	InstagramSecretData{DocID: "10"}.Apply(&cfg)
	assert.Equal(t, InstagramConfig{DocID: "10", AppID: "2", UserAgent: "ua"}, cfg)
}
