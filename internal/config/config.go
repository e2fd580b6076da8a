// ABOUTME: Settings loading: defaults, .clib.yaml (project or global), CLIB_* env, flags
// ABOUTME: Viper does the layering; Validate rejects values the installer cannot use

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/spf13/viper"

	"github.com/tjk/clib-package/internal/log"
)

// Settings holds the merged configuration.
type Settings struct {
	Out            string        `mapstructure:"out"`
	BaseURL        string        `mapstructure:"base_url"`
	DefaultAuthor  string        `mapstructure:"default_author"`
	DefaultVersion string        `mapstructure:"default_version"`
	Jobs           int           `mapstructure:"jobs"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Dev            bool          `mapstructure:"dev"`
	Verbose        bool          `mapstructure:"verbose"`
	LogLevel       string        `mapstructure:"log_level"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("out", "./deps")
	v.SetDefault("base_url", "https://raw.github.com")
	v.SetDefault("default_author", "clibs")
	v.SetDefault("default_version", "master")
	v.SetDefault("jobs", 1)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("dev", false)
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
}

// Init points v at a config file and the CLIB_ environment. An explicit file
// must exist; otherwise .clib.yaml in projectRoot wins over the global file,
// and a missing file is not an error.
func Init(v *viper.Viper, file, projectRoot string) error {
	SetDefaults(v)
	v.SetEnvPrefix("CLIB")
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", file, err)
		}
		return nil
	}

	v.SetConfigName(projectConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(projectRoot)
	if err := v.ReadInConfig(); err == nil {
		return nil
	} else if !isNotFound(err) {
		return fmt.Errorf("reading project config: %w", err)
	}

	v.SetConfigFile(GlobalConfigFile())
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return fmt.Errorf("reading global config: %w", err)
	}
	return nil
}

// Load decodes v into Settings, expands ${VAR} references and validates.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	ResolveEnvVars(&s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the settings describe a usable installer.
func (s *Settings) Validate() error {
	var errs []error
	if s.Out == "" {
		errs = append(errs, errors.New("out must not be empty"))
	}
	if u, err := url.Parse(s.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("base_url %q must be an absolute URL", s.BaseURL))
	}
	if s.DefaultAuthor == "" {
		errs = append(errs, errors.New("default_author must not be empty"))
	}
	if s.DefaultVersion == "" || s.DefaultVersion == "*" {
		errs = append(errs, fmt.Errorf("default_version %q is not a usable ref", s.DefaultVersion))
	}
	if s.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", s.Jobs))
	}
	if s.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %v", s.Timeout))
	}
	if s.LogLevel != "" {
		if _, err := log.ParseLevel(s.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("log_level %q: expected debug, info, warn or error", s.LogLevel))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid settings: %w", errors.Join(errs...))
	}
	return nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	if errors.As(err, &nf) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}
