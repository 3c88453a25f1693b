package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"meater/internal/meater"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty working directory with its own data dir.
func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("SLACK_BOT_USER_TOKEN", "")
	t.Setenv("DISCORD_WEBHOOK_URL", "")
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		dir := isolate(t)

		require.NoError(t, Load(""))

		s := Current()
		assert.Equal(t, meater.DefaultBaseURL, s.APIURL)
		assert.Equal(t, 2*time.Second, s.PollInterval)
		assert.Equal(t, 10*time.Second, s.HTTPTimeout)
		assert.Equal(t, filepath.Join(dir, "xdg", "meater"), s.DataDir)
		assert.False(t, s.History.Enabled)
		assert.Equal(t, "sqlite", s.History.Type)
		assert.Equal(t, filepath.Join(s.DataDir, "history.db"), s.History.DSN)
		assert.False(t, s.Notifications.Slack)
		assert.Equal(t, "#bbq", s.Notifications.SlackChannel)
		assert.Empty(t, s.MetricsAddr)
		assert.Equal(t, filepath.Join(s.DataDir, "meater.log"), s.DefaultLogFile())
		assert.NoFileExists(t, filepath.Join(dir, "config.yaml"))
	})

	t.Run("Load From Env", func(t *testing.T) {
		isolate(t)
		t.Setenv("MEATER_POLL_INTERVAL", "5s")
		t.Setenv("MEATER_HISTORY_ENABLED", "true")
		t.Setenv("SLACK_BOT_USER_TOKEN", "xoxb-test")

		require.NoError(t, Load(""))

		s := Current()
		assert.Equal(t, 5*time.Second, s.PollInterval)
		assert.True(t, s.History.Enabled)
		assert.True(t, s.Notifications.Slack)
	})

	t.Run("Bare Seconds", func(t *testing.T) {
		isolate(t)
		t.Setenv("MEATER_HTTP_TIMEOUT", "3")

		require.NoError(t, Load(""))
		assert.Equal(t, 3*time.Second, Current().HTTPTimeout)
	})

	t.Run("Load From File", func(t *testing.T) {
		dir := isolate(t)
		cfg := filepath.Join(dir, "meater.yaml")
		content := "api_url: http://localhost:9999/v1\npoll_interval: 500ms\ndata_dir: " + filepath.Join(dir, "data") + "\nhistory:\n  type: sqlite\n"
		require.NoError(t, os.WriteFile(cfg, []byte(content), 0o644))

		require.NoError(t, Load(cfg))

		s := Current()
		assert.Equal(t, "http://localhost:9999/v1", s.APIURL)
		assert.Equal(t, 500*time.Millisecond, s.PollInterval)
		assert.Equal(t, filepath.Join(dir, "data", "history.db"), s.History.DSN)
	})

	t.Run("Missing Explicit File", func(t *testing.T) {
		dir := isolate(t)
		err := Load(filepath.Join(dir, "nope.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})
}

func TestSettings_DefaultLogFile(t *testing.T) {
	assert.Equal(t, "/tmp/x.log", Settings{LogFile: "/tmp/x.log", DataDir: "/data"}.DefaultLogFile())
	assert.Equal(t, filepath.Join("/data", "meater.log"), Settings{DataDir: "/data"}.DefaultLogFile())
	assert.Empty(t, Settings{}.DefaultLogFile())
}

func TestCurrent_PostgresKeepsEmptyDSN(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("data_dir", "/data")
	viper.Set("history.type", "postgres")

	assert.Empty(t, Current().History.DSN)
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
