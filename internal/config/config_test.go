package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/reschool/internal/periods"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{
		"RESCHOOL_CONFIG", "RESCHOOL_BASE_URL", "RESCHOOL_TIMEOUT_MS", "RESCHOOL_DB",
		"RESCHOOL_LOG_LEVEL", "RESCHOOL_LOG_FILE", "RESCHOOL_LOG_CALLS", "RESCHOOL_ORPHANS",
	} {
		// Setenv registers the restore; unset so godotenv treats the key as absent.
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(Sources{EnvFile: filepath.Join(home, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "https://app.eschool.center/ec-server", cfg.BaseURL)
	assert.Equal(t, 15000, cfg.TimeoutMs)
	assert.Equal(t, filepath.Join(home, ".reschool", "reschool.db"), cfg.DBPath)
	assert.Equal(t, periods.DropOrphans, cfg.Periods().Orphans)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoad_YAMLThenDotEnvThenEnv(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".reschool", "config.yaml"), `
base_url: http://yaml.example/ec-server
timeout_ms: 2000
orphan_policy: promote
log_level: debug
`)
	envFile := filepath.Join(home, "test.env")
	writeFile(t, envFile, "RESCHOOL_TIMEOUT_MS=3000\nRESCHOOL_DB=/tmp/from-dotenv.db\n")
	t.Setenv("RESCHOOL_DB", "/tmp/from-env.db")

	cfg, err := Load(Sources{EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, "http://yaml.example/ec-server", cfg.BaseURL)
	assert.Equal(t, 3000, cfg.TimeoutMs)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath, "real env wins over .env")
	assert.Equal(t, periods.PromoteOrphans, cfg.Periods().Orphans)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 3000, cfg.Eschool().TimeoutMs)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "elsewhere.yaml")
	writeFile(t, path, "log_calls: true\n")
	t.Setenv("RESCHOOL_CONFIG", path)

	cfg, err := Load(Sources{EnvFile: filepath.Join(home, "none.env")})
	require.NoError(t, err)
	assert.True(t, cfg.LogCalls)
}

func TestLoad_MalformedYAML(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "bad.yaml")
	writeFile(t, path, "timeout_ms: [\n")

	_, err := Load(Sources{ConfigFile: path, EnvFile: filepath.Join(home, "none.env")})
	assert.Error(t, err)
}

func TestLoad_UnknownOrphanPolicy(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "typo.yaml")
	writeFile(t, path, "orphan_policy: promte\n")

	_, err := Load(Sources{ConfigFile: path, EnvFile: filepath.Join(home, "none.env")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "promte")

	isolate(t)
	t.Setenv("RESCHOOL_ORPHANS", "keep")
	_, err = Load(Sources{EnvFile: filepath.Join(home, "none.env")})
	assert.Error(t, err)
}

func TestLoad_InvalidTimeoutIgnored(t *testing.T) {
	home := isolate(t)
	t.Setenv("RESCHOOL_TIMEOUT_MS", "soon")

	cfg, err := Load(Sources{EnvFile: filepath.Join(home, "none.env")})
	require.NoError(t, err)
	assert.Equal(t, 15000, cfg.TimeoutMs)
}

func TestNewLogger_JSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false, slog.LevelInfo).Info("hello", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	newLogger(&buf, true, slog.LevelInfo).Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestNewFileLogger(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{LogFile: filepath.Join(dir, "logs", "r.log"), LogLevel: "info"}

	logger, closer, err := NewFileLogger(cfg)
	require.NoError(t, err)
	logger.Info("written")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")
}
