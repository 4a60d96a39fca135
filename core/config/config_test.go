package config_test

import (
	"testing"

	"hood-sync/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults are applied", func(t *testing.T) {
		cfg, err := config.LoadConfig(".")
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, ";", cfg.Feed.Delimiter)
		assert.Equal(t, "https://www.hood.de/api.htm", cfg.Hood.Endpoint)
		assert.Equal(t, "hood-sync-audit", cfg.Storage.Bucket)
		assert.False(t, cfg.Storage.Enabled)
		assert.False(t, cfg.Database.Enabled)
	})

	t.Run("Environment variables override defaults", func(t *testing.T) {
		t.Setenv("FEED_URL", "https://shop.example/feed.csv")
		t.Setenv("FEED_DELIMITER", ",")
		t.Setenv("HOOD_ACCOUNT_NAME", "merchant")
		t.Setenv("HOOD_PASSWORD", "secret")
		t.Setenv("SERVER_PORT", "9090")

		cfg, err := config.LoadConfig(".")
		require.NoError(t, err)

		assert.Equal(t, "https://shop.example/feed.csv", cfg.Feed.URL)
		assert.Equal(t, ",", cfg.Feed.Delimiter)
		assert.Equal(t, "merchant", cfg.Hood.AccountName)
		assert.Equal(t, "secret", cfg.Hood.Password)
		assert.Equal(t, "9090", cfg.Server.Port)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func(t *testing.T) *config.Config {
		t.Helper()
		t.Setenv("FEED_URL", "https://shop.example/feed.csv")
		t.Setenv("HOOD_ACCOUNT_NAME", "merchant")
		t.Setenv("HOOD_PASSWORD", "secret")

		cfg, err := config.LoadConfig(".")
		require.NoError(t, err)
		return cfg
	}

	t.Run("Complete configuration passes", func(t *testing.T) {
		assert.NoError(t, valid(t).Validate())
	})

	t.Run("Missing feed URL fails", func(t *testing.T) {
		cfg := valid(t)
		cfg.Feed.URL = ""

		var cfgErr *config.ConfigurationError
		require.ErrorAs(t, cfg.Validate(), &cfgErr)
	})

	t.Run("Missing credentials fail", func(t *testing.T) {
		cfg := valid(t)
		cfg.Hood.Password = ""
		cfg.Hood.PasswordMD5 = ""

		var cfgErr *config.ConfigurationError
		require.ErrorAs(t, cfg.Validate(), &cfgErr)
	})

	t.Run("Pre-hashed password satisfies the credential rule", func(t *testing.T) {
		cfg := valid(t)
		cfg.Hood.Password = ""
		cfg.Hood.PasswordMD5 = "5f4dcc3b5aa765d61d8327deb882cf99"

		assert.NoError(t, cfg.Validate())
	})
}
