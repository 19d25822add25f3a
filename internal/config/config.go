package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/inovacc/ghprofile/internal/application"
	"github.com/inovacc/ghprofile/internal/core"
	"github.com/inovacc/ghprofile/internal/publish"
	"github.com/inovacc/ghprofile/internal/render"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// TokenSource indicates where the token was found
type TokenSource string

const (
	TokenSourceConfig    TokenSource = "config"
	TokenSourceEnvApp    TokenSource = application.EnvPrefix + "_TOKEN"
	TokenSourceEnvGitHub TokenSource = "GITHUB_TOKEN"
	TokenSourceEnvGH     TokenSource = "GH_TOKEN"
	TokenSourceGHCLI     TokenSource = "gh-cli"
	TokenSourceNone      TokenSource = "none"
)

// Log formats accepted by log_format
const (
	LogFormatAuto = "auto"
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ErrUsernameRequired is returned when no account name is configured
var ErrUsernameRequired = errors.New("username is required (set GITHUB_USERNAME or username in the config file)")

// ghTokenForHost reads the gh CLI credential store
var ghTokenForHost = auth.TokenForHost

// Config is the resolved runtime configuration
type Config struct {
	Username      string
	Token         string
	TokenSource   TokenSource
	APIURL        string
	WebURL        string
	PageSize      int
	LanguageStats bool
	AllowPartial  bool
	PreambleFile  string
	RepoDir       string
	OutputFile    string
	Remote        string
	Branch        string
	CommitMessage string
	ScanSecrets   bool
	HistoryFile   string
	LogLevel      string
	LogFormat     string
	Languages     map[string]string

	// ConfigFile is the file that was read, empty when none was found
	ConfigFile string
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigFile is an explicit config path. When empty, ghprofile.{yaml,toml,json}
	// is searched in the working directory and the application directory.
	ConfigFile string

	// EnvFile is loaded into the environment without overriding set variables.
	// A missing file is ignored.
	EnvFile string

	// Flags are bound over every other source when changed
	Flags *pflag.FlagSet

	// AllowMissingUser skips the username check for commands that never
	// contact GitHub
	AllowMissingUser bool
}

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"user":      "username",
	"page-size": "page_size",
	"repo-dir":  "repo_dir",
	"output":    "output_file",
	"log-level": "log_level",
}

// Load resolves configuration from defaults, config file, environment and flags
func Load(opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		if err := gotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Username:      strings.TrimSpace(v.GetString("username")),
		APIURL:        v.GetString("api_url"),
		WebURL:        strings.TrimRight(v.GetString("web_url"), "/"),
		PageSize:      v.GetInt("page_size"),
		LanguageStats: v.GetBool("language_stats"),
		AllowPartial:  v.GetBool("allow_partial"),
		PreambleFile:  v.GetString("preamble_file"),
		RepoDir:       v.GetString("repo_dir"),
		OutputFile:    v.GetString("output_file"),
		Remote:        v.GetString("remote"),
		Branch:        v.GetString("branch"),
		CommitMessage: v.GetString("commit_message"),
		ScanSecrets:   v.GetBool("scan_secrets"),
		HistoryFile:   v.GetString("history_file"),
		LogLevel:      strings.ToLower(v.GetString("log_level")),
		LogFormat:     strings.ToLower(v.GetString("log_format")),
		Languages:     v.GetStringMapString("languages"),
		ConfigFile:    v.ConfigFileUsed(),
	}

	cfg.Token, cfg.TokenSource = resolveToken(v.GetString("token"), cfg.Host())

	if cfg.HistoryFile == "" {
		path, err := application.DefaultHistoryFile()
		if err != nil {
			return nil, err
		}

		cfg.HistoryFile = path
	}

	if err := cfg.Validate(); err != nil {
		if opts.AllowMissingUser && errors.Is(err, ErrUsernameRequired) {
			return cfg, nil
		}

		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "")
	v.SetDefault("web_url", render.DefaultWebURL)
	v.SetDefault("page_size", core.DefaultPageSize)
	v.SetDefault("language_stats", true)
	v.SetDefault("allow_partial", false)
	v.SetDefault("preamble_file", "")
	v.SetDefault("repo_dir", ".")
	v.SetDefault("output_file", "README.md")
	v.SetDefault("remote", "origin")
	v.SetDefault("branch", "")
	v.SetDefault("commit_message", publish.DefaultCommitMessage)
	v.SetDefault("scan_secrets", true)
	v.SetDefault("history_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", LogFormatAuto)
}

// envKeys are the configuration keys read from <EnvPrefix>_<KEY>
var envKeys = []string{
	"api_url", "web_url", "page_size", "language_stats", "allow_partial",
	"preamble_file", "repo_dir", "output_file", "remote", "branch",
	"commit_message", "scan_secrets", "history_file", "log_level", "log_format",
}

// envName returns the application environment variable for key
func envName(key string) string {
	return application.EnvPrefix + "_" + strings.ToUpper(key)
}

func bindEnv(v *viper.Viper) error {
	if err := v.BindEnv("username", "GITHUB_USERNAME", envName("username")); err != nil {
		return fmt.Errorf("failed to bind username: %w", err)
	}

	for _, key := range envKeys {
		if err := v.BindEnv(key, envName(key)); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}

		return nil
	}

	v.SetConfigName(application.ConfigName)
	v.AddConfigPath(".")

	if dir, err := application.GetApplicationDirectory(); err == nil {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("failed to read config: %w", err)
	}

	return nil
}

// resolveToken picks the token in priority order:
//  1. token key in the config file
//  2. GHPROFILE_TOKEN environment variable
//  3. GITHUB_TOKEN environment variable
//  4. GH_TOKEN environment variable
//  5. gh CLI auth for the host
func resolveToken(configured, host string) (string, TokenSource) {
	if configured != "" {
		return configured, TokenSourceConfig
	}

	for _, src := range []TokenSource{TokenSourceEnvApp, TokenSourceEnvGitHub, TokenSourceEnvGH} {
		if token := os.Getenv(string(src)); token != "" {
			return token, src
		}
	}

	if token, _ := ghTokenForHost(host); token != "" {
		return token, TokenSourceGHCLI
	}

	return "", TokenSourceNone
}

// Host returns the GitHub host the API URL points at
func (c *Config) Host() string {
	if c.APIURL == "" {
		return "github.com"
	}

	u, err := url.Parse(c.APIURL)
	if err != nil || u.Hostname() == "" {
		return "github.com"
	}

	return strings.TrimPrefix(u.Hostname(), "api.")
}

// Validate checks the values a run cannot proceed without
func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	switch c.LogFormat {
	case LogFormatAuto, LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log_format %q (want auto|text|json)", c.LogFormat)
	}

	if c.OutputFile == "" {
		return errors.New("output_file must not be empty")
	}

	if c.Username == "" {
		return ErrUsernameRequired
	}

	return nil
}

// SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q: %w", c.LogLevel, err)
	}

	return level, nil
}
