package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/census-prep/internal/common"
	"github.com/Veraticus/census-prep/internal/model"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. CENSUSPREP_MODE.
const EnvPrefix = "CENSUSPREP"

// Keys used in the config file and bound to command flags.
const (
	KeyMode          = "mode"
	KeyMappings      = "mappings"
	KeyDatabase      = "database"
	KeyOutDir        = "out_dir"
	KeyLoggingLevel  = "logging.level"
	KeyLoggingFormat = "logging.format"
)

// Config is the resolved configuration for a censusprep invocation.
type Config struct {
	Mode          model.Mode
	MappingsPath  string
	DatabasePath  string
	OutDir        string
	LoggingLevel  string
	LoggingFormat string
}

// DefaultDatabasePath is where run history is kept unless configured.
const DefaultDatabasePath = "~/.local/share/censusprep/censusprep.db"

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMode, string(model.ModeScore))
	v.SetDefault(KeyDatabase, DefaultDatabasePath)
	v.SetDefault(KeyOutDir, ".")
	v.SetDefault(KeyLoggingLevel, "info")
	v.SetDefault(KeyLoggingFormat, "console")
}

// Load reads the configuration from v. Values come from, in order of
// precedence, bound flags, CENSUSPREP_ environment variables, the config
// file and the defaults.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	mode, err := model.ParseMode(v.GetString(KeyMode))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	cfg := &Config{
		Mode:          mode,
		MappingsPath:  ExpandPath(v.GetString(KeyMappings)),
		DatabasePath:  ExpandPath(v.GetString(KeyDatabase)),
		OutDir:        ExpandPath(v.GetString(KeyOutDir)),
		LoggingLevel:  v.GetString(KeyLoggingLevel),
		LoggingFormat: v.GetString(KeyLoggingFormat),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values that Load cannot fix up.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database path", common.ErrMissingConfig)
	}
	if c.OutDir == "" {
		return fmt.Errorf("%w: output directory", common.ErrMissingConfig)
	}
	if _, err := common.ParseLevel(c.LoggingLevel); err != nil {
		return err
	}
	switch c.LoggingFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.LoggingFormat)
	}
	return nil
}

// OutputPath returns where the annotated table called name is written.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.OutDir, name+".csv")
}

// Init points v at the config file and the CENSUSPREP_ environment. An
// explicit cfgFile must exist; otherwise $HOME/.config/censusprep/config.yaml
// and ./config.yaml are tried and may be absent.
func Init(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".config", "censusprep"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}
