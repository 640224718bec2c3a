package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedErrors "github.com/filterbotio/autofilter-bot/internal/shared/errors"
)

// clearEnv unsets a variable for the test while letting the harness restore
// the original value afterwards.
func clearEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad_MissingTokenFails(t *testing.T) {
	t.Chdir(t.TempDir())
	clearEnv(t, "TELEGRAM_BOT_TOKEN")

	_, err := Load()
	require.ErrorIs(t, err, sharedErrors.ErrMissingBotToken)
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	clearEnv(t, "HTTP_PORT")
	clearEnv(t, "PORT")
	clearEnv(t, "APP_ENV")
	clearEnv(t, "ADMIN_IDS")
	clearEnv(t, "MONGO_URL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.TelegramBotToken)
	assert.Equal(t, "https://api.telegram.org", cfg.TelegramAPIURL)
	assert.Equal(t, "./data", cfg.StoragePath)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "autofilter", cfg.MongoDatabase)
	assert.Equal(t, AppEnvProduction, cfg.AppEnv)
	assert.Empty(t, cfg.MongoURL)
	assert.Empty(t, cfg.AdminIDs)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_IDS", "100, 200,abc,300")
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("APP_ENV", "development")
	t.Setenv("SUPPORT_CHAT", "mychat")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []int64{100, 200, 300}, cfg.AdminIDs)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURL)
	assert.Equal(t, AppEnvDevelopment, cfg.AppEnv)
	assert.Equal(t, "mychat", cfg.SupportChat)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	clearEnv(t, "HTTP_PORT")
	t.Setenv("PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.HTTPPort)
}

func TestLoad_ConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := "telegram_bot_token: from-file\nhttp_port: \"9090\"\nsupport_chat: filechat\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Chdir(dir)
	clearEnv(t, "TELEGRAM_BOT_TOKEN")
	clearEnv(t, "SUPPORT_CHAT")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.TelegramBotToken)
	assert.Equal(t, "filechat", cfg.SupportChat)
	assert.Equal(t, "7070", cfg.HTTPPort)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TELEGRAM_BOT_TOKEN=from-dotenv\n"), 0644))

	t.Chdir(dir)
	clearEnv(t, "TELEGRAM_BOT_TOKEN")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.TelegramBotToken)
}

func TestParseAdminIDs(t *testing.T) {
	assert.Empty(t, ParseAdminIDs(""))
	assert.Equal(t, []int64{1}, ParseAdminIDs("1"))
	assert.Equal(t, []int64{1, 2, 3}, ParseAdminIDs(" 1, 2 ,3"))
	assert.Equal(t, []int64{5}, ParseAdminIDs("x,5,,"))
	assert.Equal(t, []int64{-100123}, ParseAdminIDs("-100123"))
}
