package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *Config {
	return &Config{
		Port:          "3000",
		Env:           "development",
		JWTSecret:     "a-development-secret-that-is-long-enough",
		AdminPassword: "admin123",
	}
}

func TestValidateRequiresPortAndSecret(t *testing.T) {
	cfg := baseConfig()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())

	cfg = baseConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	assert.NoError(t, baseConfig().Validate())
}

func TestValidateProductionStrictness(t *testing.T) {
	cfg := baseConfig()
	cfg.Env = "production"
	cfg.WechatAppID = "wx123"
	cfg.WechatSecret = "s3cret"
	cfg.JWTSecret = "a-production-secret-that-is-long-enough!"
	cfg.AdminPassword = "something-else"
	assert.NoError(t, cfg.Validate())

	missing := *cfg
	missing.WechatAppID = ""
	assert.Error(t, missing.Validate())

	defaulted := *cfg
	defaulted.JWTSecret = "your-secret-key-change-in-production"
	assert.Error(t, defaulted.Validate())

	short := *cfg
	short.JWTSecret = "too-short"
	assert.Error(t, short.Validate())

	weakAdmin := *cfg
	weakAdmin.AdminPassword = "admin123"
	assert.Error(t, weakAdmin.Validate())
}

func TestChannelIDs(t *testing.T) {
	cfg := &Config{YoutubeChannels: "UC1, UC2,,  UC3 "}
	assert.Equal(t, []string{"UC1", "UC2", "UC3"}, cfg.ChannelIDs())

	empty := &Config{YoutubeChannels: ""}
	assert.Empty(t, empty.ChannelIDs())
}

func TestLoadChannelsPrefersFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "channels.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
channels:
  - id: UCfile1
    label: Running tips
  - id: UCfile2
  - label: missing id
`), 0o600))

	cfg := &Config{
		YoutubeChannels: "UCenv1",
		ChannelsFile:    path,
	}
	ids, err := cfg.LoadChannels()
	require.NoError(t, err)
	assert.Equal(t, []string{"UCfile1", "UCfile2"}, ids)

	// Without a file the env list applies.
	cfg.ChannelsFile = ""
	ids, err = cfg.LoadChannels()
	require.NoError(t, err)
	assert.Equal(t, []string{"UCenv1"}, ids)
}

func TestLoadChannelsBadFile(t *testing.T) {
	cfg := &Config{ChannelsFile: "/nonexistent/channels.yml"}
	_, err := cfg.LoadChannels()
	assert.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte("channels: [unbalanced"), 0o600))

	cfg = &Config{ChannelsFile: path}
	_, err = cfg.LoadChannels()
	assert.Error(t, err)
}
