package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Feed.PageSize)
	assert.True(t, cfg.Notifications.Async)
	assert.Equal(t, ":8080", cfg.Server.Address())
}

func TestLoadEnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("BLOG_DATABASE_DRIVER", "sqlite")
	t.Setenv("BLOG_DATABASE_DSN", "file:blog.db")
	t.Setenv("BLOG_FEED_PAGE_SIZE", "25")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:blog.db", cfg.Database.DSN)
	assert.Equal(t, 25, cfg.Feed.PageSize)
}

func TestValidate(t *testing.T) {
	base := Config{
		Database: DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
		Feed:     FeedConfig{PageSize: 10},
		JWT:      JWTConfig{Secret: "s"},
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.Database.Driver = "mysql"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Feed.PageSize = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.JWT.Secret = " "
	assert.Error(t, bad.Validate())
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
