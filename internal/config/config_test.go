package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inovacc/ghprofile/internal/application"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable Load reads and stubs the gh CLI lookup
func isolate(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		"GITHUB_USERNAME", "GHPROFILE_USERNAME",
		"GHPROFILE_TOKEN", "GITHUB_TOKEN", "GH_TOKEN",
		"GHPROFILE_API_URL", "GHPROFILE_WEB_URL", "GHPROFILE_PAGE_SIZE",
		"GHPROFILE_LANGUAGE_STATS", "GHPROFILE_ALLOW_PARTIAL",
		"GHPROFILE_PREAMBLE_FILE", "GHPROFILE_REPO_DIR", "GHPROFILE_OUTPUT_FILE",
		"GHPROFILE_REMOTE", "GHPROFILE_BRANCH", "GHPROFILE_COMMIT_MESSAGE",
		"GHPROFILE_SCAN_SECRETS", "GHPROFILE_LOG_LEVEL", "GHPROFILE_LOG_FORMAT",
	} {
		t.Setenv(name, "")
	}

	t.Setenv("GHPROFILE_HISTORY_FILE", filepath.Join(t.TempDir(), "history.bolt"))

	prev := ghTokenForHost
	ghTokenForHost = func(string) (string, string) { return "", "" }

	t.Cleanup(func() { ghTokenForHost = prev })
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_USERNAME", "octocat")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "octocat", cfg.Username)
	assert.Equal(t, 30, cfg.PageSize)
	assert.True(t, cfg.LanguageStats)
	assert.False(t, cfg.AllowPartial)
	assert.True(t, cfg.ScanSecrets)
	assert.Equal(t, ".", cfg.RepoDir)
	assert.Equal(t, "README.md", cfg.OutputFile)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "https://github.com", cfg.WebURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, LogFormatAuto, cfg.LogFormat)
	assert.Equal(t, TokenSourceNone, cfg.TokenSource)
	assert.Empty(t, cfg.Token)
	assert.NotEmpty(t, cfg.HistoryFile)
}

func TestLoad_UsernameRequired(t *testing.T) {
	isolate(t)

	_, err := Load(LoadOptions{})
	assert.ErrorIs(t, err, ErrUsernameRequired)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)

	path := writeConfig(t, "ghprofile.yaml", `
username: hubot
page_size: 10
allow_partial: true
web_url: https://ghe.example.com/
languages:
  Go: "🐹"
  Zig: "⚡"
`)

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "hubot", cfg.Username)
	assert.Equal(t, 10, cfg.PageSize)
	assert.True(t, cfg.AllowPartial)
	assert.Equal(t, "https://ghe.example.com", cfg.WebURL)
	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "⚡", cfg.Languages["zig"])
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)

	path := writeConfig(t, "ghprofile.yaml", "username: hubot\npage_size: 10\n")

	t.Setenv("GHPROFILE_PAGE_SIZE", "50")
	t.Setenv("GHPROFILE_USERNAME", "monalisa")

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, "monalisa", cfg.Username)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_USERNAME", "octocat")
	t.Setenv("GHPROFILE_PAGE_SIZE", "50")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("user", "", "")
	flags.Int("page-size", 0, "")
	require.NoError(t, flags.Parse([]string{"--page-size=5"}))

	cfg, err := Load(LoadOptions{Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, "octocat", cfg.Username)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_USERNAME", "octocat")

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	isolate(t)

	envFile := writeConfig(t, ".env", "GHPROFILE_USERNAME=from-dotenv\nGHPROFILE_DOTENV_ONLY=1\n")

	t.Cleanup(func() {
		_ = os.Unsetenv("GHPROFILE_USERNAME")
		_ = os.Unsetenv("GHPROFILE_DOTENV_ONLY")
	})
	require.NoError(t, os.Unsetenv("GHPROFILE_USERNAME"))

	cfg, err := Load(LoadOptions{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Username)

	_, err = Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	assert.NoError(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "zero page size", env: map[string]string{"GHPROFILE_PAGE_SIZE": "0"}},
		{name: "negative page size", env: map[string]string{"GHPROFILE_PAGE_SIZE": "-3"}},
		{name: "unknown level", env: map[string]string{"GHPROFILE_LOG_LEVEL": "chatty"}},
		{name: "unknown format", env: map[string]string{"GHPROFILE_LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv("GITHUB_USERNAME", "octocat")

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(LoadOptions{})
			assert.Error(t, err)
		})
	}
}

func TestResolveToken(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		env        map[string]string
		cli        string
		want       string
		wantSource TokenSource
	}{
		{
			name:       "config wins",
			configured: "cfg",
			env:        map[string]string{"GITHUB_TOKEN": "env"},
			want:       "cfg",
			wantSource: TokenSourceConfig,
		},
		{
			name:       "app env before GITHUB_TOKEN",
			env:        map[string]string{"GHPROFILE_TOKEN": "app", "GITHUB_TOKEN": "gh"},
			want:       "app",
			wantSource: TokenSourceEnvApp,
		},
		{
			name:       "GITHUB_TOKEN before GH_TOKEN",
			env:        map[string]string{"GITHUB_TOKEN": "one", "GH_TOKEN": "two"},
			want:       "one",
			wantSource: TokenSourceEnvGitHub,
		},
		{
			name:       "GH_TOKEN",
			env:        map[string]string{"GH_TOKEN": "two"},
			want:       "two",
			wantSource: TokenSourceEnvGH,
		},
		{
			name:       "gh cli fallback",
			cli:        "cli",
			want:       "cli",
			wantSource: TokenSourceGHCLI,
		},
		{
			name:       "none",
			wantSource: TokenSourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			ghTokenForHost = func(string) (string, string) { return tt.cli, "oauth_token" }

			got, src := resolveToken(tt.configured, "github.com")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSource, src)
		})
	}
}

func TestConfig_Host(t *testing.T) {
	tests := []struct {
		apiURL string
		want   string
	}{
		{apiURL: "", want: "github.com"},
		{apiURL: "https://api.github.com/", want: "github.com"},
		{apiURL: "https://ghe.example.com/api/v3/", want: "ghe.example.com"},
		{apiURL: "::bad", want: "github.com"},
	}

	for _, tt := range tests {
		cfg := &Config{APIURL: tt.apiURL}
		assert.Equal(t, tt.want, cfg.Host(), tt.apiURL)
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_AllowMissingUser(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{AllowMissingUser: true})
	require.NoError(t, err)
	assert.Empty(t, cfg.Username)
	assert.NotEmpty(t, cfg.HistoryFile)

	t.Setenv("GHPROFILE_PAGE_SIZE", "0")

	_, err = Load(LoadOptions{AllowMissingUser: true})
	assert.Error(t, err)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "GHPROFILE_PAGE_SIZE", envName("page_size"))
	assert.Equal(t, "GHPROFILE_TOKEN", string(TokenSourceEnvApp))

	for _, key := range envKeys {
		assert.True(t, strings.HasPrefix(envName(key), application.EnvPrefix+"_"), key)
	}
}
