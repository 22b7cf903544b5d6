// Package config manages application configuration from various sources.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ThemeConfig selects the UI theme.
type ThemeConfig struct {
	Name string `mapstructure:"name" json:"name" toml:"name" validate:"required"`
	Mode string `mapstructure:"mode" json:"mode,omitempty" toml:"mode,omitempty" validate:"omitempty,oneof=dark light"`
}

// SyntaxConfig selects the syntax highlighting theme.
type SyntaxConfig struct {
	Mode  string `mapstructure:"mode" json:"mode,omitempty" toml:"mode,omitempty" validate:"omitempty,oneof=on off"`
	Theme string `mapstructure:"theme" json:"theme,omitempty" toml:"theme,omitempty"`
}

// UIConfig groups the appearance settings.
type UIConfig struct {
	Theme  ThemeConfig  `mapstructure:"theme" json:"theme" toml:"theme"`
	Syntax SyntaxConfig `mapstructure:"syntax" json:"syntax" toml:"syntax"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level,omitempty" toml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" json:"format,omitempty" toml:"format,omitempty" validate:"omitempty,oneof=text logfmt json"`
}

// Config is the main configuration structure for the application.
type Config struct {
	UI        UIConfig  `mapstructure:"ui" json:"ui" toml:"ui"`
	Log       LogConfig `mapstructure:"log" json:"log" toml:"log"`
	Debug     bool      `mapstructure:"debug" json:"debug,omitempty" toml:"debug,omitempty"`
	ThemesDir string    `mapstructure:"themes_dir" json:"themes_dir,omitempty" toml:"themes_dir,omitempty"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" json:"-" toml:"-"`
}

// Application constants
const (
	appName         = "oyo"
	configName      = "config"
	configType      = "toml"
	defaultTheme    = "tokyonight"
	defaultLogLevel = "info"
)

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"theme":        "ui.theme.name",
	"theme-mode":   "ui.theme.mode",
	"syntax":       "ui.syntax.mode",
	"syntax-theme": "ui.syntax.theme",
	"debug":        "debug",
}

// Options controls where Load looks for settings.
type Options struct {
	// File overrides the default config file location.
	File string
	// Flags are bound over file and environment values when set.
	Flags *pflag.FlagSet
}

// Load reads the configuration from defaults, the config file, OYO_*
// environment variables and flags, in increasing order of precedence.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	configureViper(v, opts.File)
	setDefaults(v)

	if opts.Flags != nil {
		for flag, key := range flagKeys {
			if f := opts.Flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}
	}

	if err := readConfig(v.ReadInConfig(), opts.File != ""); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Normalize()
	if cfg.Debug {
		cfg.Log.Level = "debug"
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// configureViper sets up viper's configuration paths and environment variables.
func configureViper(v *viper.Viper, file string) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// setDefaults registers every key so environment variables are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.theme.name", defaultTheme)
	v.SetDefault("ui.theme.mode", "")
	v.SetDefault("ui.syntax.mode", "on")
	v.SetDefault("ui.syntax.theme", "")
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", "text")
	v.SetDefault("debug", false)
	v.SetDefault("themes_dir", "")
}

// readConfig handles the result of reading a configuration file.
func readConfig(err error, explicit bool) error {
	if err == nil {
		return nil
	}

	// It's okay if the default config file doesn't exist
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("failed to read config: %w", err)
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks the decoded configuration against its field rules.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}

	err := validatorInstance().Struct(cfg)
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		fe := ves[0]
		key := fe.Namespace()
		if _, rest, ok := strings.Cut(key, "."); ok {
			key = rest
		}
		if fe.Param() != "" {
			return fmt.Errorf("%s: invalid value %q (%s %s)", key, fe.Value(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("%s: failed validation for tag '%s'", key, fe.Tag())
	}
	return err
}

// Normalize trims surrounding whitespace from the theme selections so
// " nord " names the same theme as "nord".
func (c *Config) Normalize() {
	for _, field := range []*string{
		&c.UI.Theme.Name,
		&c.UI.Theme.Mode,
		&c.UI.Syntax.Mode,
		&c.UI.Syntax.Theme,
	} {
		*field = strings.TrimSpace(*field)
	}
}

// Dir returns the oyo configuration directory, honouring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultFile returns the default config file path.
func DefaultFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+"."+configType), nil
}

// ResolveThemesDir returns the directory holding custom theme files.
func (c *Config) ResolveThemesDir() (string, error) {
	if c.ThemesDir != "" {
		return c.ThemesDir, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Theme:  ThemeConfig{Name: defaultTheme},
			Syntax: SyntaxConfig{Mode: "on"},
		},
		Log: LogConfig{Level: defaultLogLevel, Format: "text"},
	}
}

// Save writes the provided Config struct to the specified TOML file.
// It will create the file and its directory if they don't exist.
func Save(filePath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create/open config file %s: %w", filePath, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	encoder := toml.NewEncoder(writer)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to TOML file %s: %w", filePath, err)
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer for config file %s: %w", filePath, err)
	}

	slog.Debug("Configuration saved to file", "file", filePath)
	return nil
}
