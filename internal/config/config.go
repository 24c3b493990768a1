// Package config loads ghfetch settings.
//
// Sources, lowest precedence first:
//
//  1. built-in defaults
//  2. the TOML config file (~/.config/ghfetch/config.toml or --config)
//  3. a .env file in the working directory
//  4. environment variables: GITHUB_TOKEN, then GHFETCH_* (GHFETCH_RETRY_MAX → retry.max)
//  5. command-line flags that were set explicitly
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/ghfetch/ghfetch/pkg/httputil"
	"github.com/ghfetch/ghfetch/pkg/integrations"
	"github.com/ghfetch/ghfetch/pkg/integrations/github"
	"github.com/ghfetch/ghfetch/pkg/pipeline"
	"github.com/ghfetch/ghfetch/pkg/render"
)

const (
	envPrefix = "GHFETCH_"

	// tokenEnv is the conventional token variable, honored below GHFETCH_TOKEN.
	tokenEnv = "GITHUB_TOKEN"

	dotEnvFile = ".env"
)

// Config holds the resolved settings.
type Config struct {
	Token            string        `koanf:"token"`
	Width            int           `koanf:"width"`
	Timeout          time.Duration `koanf:"timeout"`
	APIURL           string        `koanf:"api_url"`
	TmpDir           string        `koanf:"tmp_dir"`
	ConfirmThreshold int           `koanf:"confirm_threshold"`
	Retry            Retry         `koanf:"retry"`
	NoColor          bool          `koanf:"no_color"`
	Verbose          bool          `koanf:"verbose"`

	// File is the config file that was read, empty if none.
	File string `koanf:"-"`
}

// Retry bounds conflict retries.
type Retry struct {
	Max   int           `koanf:"max"`
	Delay time.Duration `koanf:"delay"`
}

// Policy returns the conflict retry policy.
func (c *Config) Policy() httputil.Policy {
	return httputil.Policy{MaxRetries: c.Retry.Max, Delay: c.Retry.Delay, Multiplier: 1}
}

// Options controls where Load looks. Zero values select the defaults.
type Options struct {
	// ConfigFile is an explicit config file; it must exist.
	ConfigFile string

	// DotEnv overrides the .env path. Use "-" to skip .env loading.
	DotEnv string

	// Flags are the command-line flags; only changed flags are applied.
	Flags *pflag.FlagSet
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"token":             "",
		"width":             render.DefaultWidth,
		"timeout":           integrations.DefaultTimeout.String(),
		"api_url":           github.DefaultBaseURL,
		"tmp_dir":           DefaultTmpDir(),
		"confirm_threshold": pipeline.DefaultConfirmThreshold,
		"retry.max":         httputil.DefaultConflictPolicy().MaxRetries,
		"retry.delay":       httputil.DefaultConflictPolicy().Delay.String(),
		"no_color":          false,
		"verbose":           false,
	}
}

// DefaultTmpDir is ~/.ghfetch/tmp, or a directory under the system temp
// dir when there is no home directory.
func DefaultTmpDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".ghfetch", "tmp")
	}
	return filepath.Join(os.TempDir(), "ghfetch")
}

// DefaultConfigFile is ~/.config/ghfetch/config.toml.
func DefaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ghfetch", "config.toml")
}

// Load reads every source and returns the validated config.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Config file
	file, required := opts.ConfigFile, true
	if file == "" {
		file, required = DefaultConfigFile(), false
	}
	used, err := loadTOML(k, file, required)
	if err != nil {
		return nil, err
	}

	// 3. .env
	if opts.DotEnv != "-" {
		path := opts.DotEnv
		if path == "" {
			path = dotEnvFile
		}
		if err := loadDotEnv(k, path); err != nil {
			return nil, err
		}
	}

	// 4. Environment
	if tok := os.Getenv(tokenEnv); tok != "" {
		if err := k.Set("token", tok); err != nil {
			return nil, fmt.Errorf("load %s: %w", tokenEnv, err)
		}
	}
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	// 5. Flags
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, flagKey(opts.Flags)), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = used
	cfg.TmpDir = expandHome(cfg.TmpDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadTOML merges a TOML file. A missing optional file is not an error.
func loadTOML(k *koanf.Koanf, path string, required bool) (string, error) {
	if path == "" {
		return "", nil
	}
	var data map[string]any
	if _, err := toml.DecodeFile(path, &data); err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := k.Load(confmap.Provider(data, "."), nil); err != nil {
		return "", fmt.Errorf("load config file %s: %w", path, err)
	}
	return path, nil
}

// loadDotEnv merges GITHUB_TOKEN and GHFETCH_* entries of a .env file
// without touching the process environment.
func loadDotEnv(k *koanf.Koanf, path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	values := make(map[string]any)
	if tok := vars[tokenEnv]; tok != "" {
		values["token"] = tok
	}
	for name, v := range vars {
		if v != "" && strings.HasPrefix(name, envPrefix) {
			key := envKey(name)
			values[key] = v
		}
	}
	if len(values) == 0 {
		return nil
	}
	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// envKey maps GHFETCH_CONFIRM_THRESHOLD to confirm_threshold and
// GHFETCH_RETRY_DELAY to retry.delay.
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	if rest, ok := strings.CutPrefix(key, "retry_"); ok {
		return "retry." + rest
	}
	return key
}

// envValue skips empty variables so that an exported but blank
// GHFETCH_TOKEN does not clear a token from a lower source.
func envValue(name, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	return envKey(name), value
}

// flagKey keeps only explicitly set flags that name a config key.
func flagKey(flags *pflag.FlagSet) func(*pflag.Flag) (string, any) {
	known := Defaults()
	return func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if rest, ok := strings.CutPrefix(key, "retry_"); ok {
			key = "retry." + rest
		}
		if _, ok := known[key]; !ok {
			return "", nil
		}
		return key, posflag.FlagVal(flags, f)
	}
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Width < 1 || c.Width > 500 {
		return fmt.Errorf("width must be between 1 and 500, got %d", c.Width)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Retry.Max < 0 {
		return fmt.Errorf("retry.max cannot be negative, got %d", c.Retry.Max)
	}
	if c.Retry.Delay < 0 {
		return fmt.Errorf("retry.delay cannot be negative, got %s", c.Retry.Delay)
	}
	if c.ConfirmThreshold < 0 {
		return fmt.Errorf("confirm_threshold cannot be negative, got %d", c.ConfirmThreshold)
	}
	if c.APIURL == "" {
		return errors.New("api_url cannot be empty")
	}
	if c.TmpDir == "" {
		return errors.New("tmp_dir cannot be empty")
	}
	return nil
}

// EnsureTmpDir creates the temp directory for downloaded avatars.
func (c *Config) EnsureTmpDir() error {
	if err := os.MkdirAll(c.TmpDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", c.TmpDir, err)
	}
	return nil
}
