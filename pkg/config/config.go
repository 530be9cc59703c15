// Package config loads tool settings with viper.
//
// Precedence, highest first: LIBRA_* environment variables, the config
// file, built-in defaults. The file is the one passed explicitly, else
// config.yaml in the repository's control directory, else
// ~/.libra/config.yaml. Having no file at all is fine.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/utkarsh5026/libra/pkg/common/err"
	"github.com/utkarsh5026/libra/pkg/common/logger"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

const (
	pkgName = "config"

	// EnvPrefix namespaces environment overrides, e.g. LIBRA_LOG_LEVEL
	EnvPrefix = "LIBRA"
)

// Config is the resolved configuration
type Config struct {
	Core     CoreConfig     `mapstructure:"core"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`

	// FileUsed is the config file that was read, empty when none was found
	FileUsed string `mapstructure:"-"`
}

// CoreConfig holds repository defaults
type CoreConfig struct {
	DefaultBranch string `mapstructure:"default_branch"`
}

// LogConfig selects the log level and handler
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig locates the metadata database
type DatabaseConfig struct {
	// Path overrides the default <control dir>/libra.db
	Path   string `mapstructure:"path"`
	LogSQL bool   `mapstructure:"log_sql"`
}

// LoadOptions says where to look for a config file
type LoadOptions struct {
	// File is an explicit config file; it must exist
	File string
	// ControlDir is the located repository's control directory, if any
	ControlDir scpath.SourcePath
	// Home overrides the user's home directory
	Home string
}

// Load resolves the configuration
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		if _, e := os.Stat(opts.File); e != nil {
			return nil, err.New(pkgName, err.CodeNotFound, "load", fmt.Sprintf("config file %s", opts.File), e)
		}
		v.SetConfigFile(opts.File)
	} else {
		if opts.ControlDir.IsValid() {
			v.AddConfigPath(opts.ControlDir.String())
		}
		home := opts.Home
		if home == "" {
			home, _ = os.UserHomeDir()
		}
		if home != "" {
			v.AddConfigPath(filepath.Join(home, scpath.ControlDir))
		}
		v.SetConfigName(strings.TrimSuffix(scpath.ConfigFile, filepath.Ext(scpath.ConfigFile)))
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if e := v.ReadInConfig(); e != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(e, &notFound) {
			return nil, err.New(pkgName, err.CodeInvalidFormat, "load", "cannot read config file", e)
		}
		logger.Component(pkgName).Debug("no config file found, using defaults and environment")
	}

	var cfg Config
	if e := v.Unmarshal(&cfg); e != nil {
		return nil, err.New(pkgName, err.CodeInvalidFormat, "load", "cannot decode config", e)
	}
	cfg.FileUsed = v.ConfigFileUsed()

	if e := cfg.Validate(); e != nil {
		return nil, e
	}
	return &cfg, nil
}

// Default returns the configuration with nothing but defaults applied
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks values viper cannot type-check
func (c *Config) Validate() error {
	if _, e := scpath.NewBranchRef(c.Core.DefaultBranch); e != nil {
		return err.New(pkgName, err.CodeInvalidInput, "validate", fmt.Sprintf("core.default_branch %q is not a valid branch name", c.Core.DefaultBranch), e)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return err.New(pkgName, err.CodeInvalidInput, "validate", fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format), nil)
	}
	return nil
}

// DatabasePath returns the metadata database location for a repository
func (c *Config) DatabasePath(controlDir scpath.SourcePath) scpath.AbsolutePath {
	if c.Database.Path != "" {
		return scpath.AbsolutePath(c.Database.Path)
	}
	return controlDir.DatabasePath().ToAbsolutePath()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("core.default_branch", "master")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("database.path", "")
	v.SetDefault("database.log_sql", false)
}
