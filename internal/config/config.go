package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. AUTODOC_PROVIDER.
const EnvPrefix = "AUTODOC"

// DefaultFileName is where `autodoc init` writes its configuration.
const DefaultFileName = ".autodoc.yaml"

var candidateNames = []string{".autodoc.yaml", ".autodoc.yml"}

// Config represents the autodoc configuration
type Config struct {
	// Generation settings
	Strategy string `yaml:"strategy" mapstructure:"strategy"`
	Style    string `yaml:"style" mapstructure:"style"`

	// Provider settings, used by the llm strategy
	Provider          string `yaml:"provider" mapstructure:"provider"`
	Model             string `yaml:"model,omitempty" mapstructure:"model"`
	BaseURL           string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	RequestsPerMinute int    `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`

	// Edit settings
	InPlace           bool `yaml:"in_place" mapstructure:"in_place"`
	OverwriteExisting bool `yaml:"overwrite_existing" mapstructure:"overwrite_existing"`
	AddTypeHints      bool `yaml:"add_type_hints" mapstructure:"add_type_hints"`
	Lint              bool `yaml:"lint" mapstructure:"lint"`

	// File selection
	Exclude      []string `yaml:"exclude,omitempty" mapstructure:"exclude"`
	MaxFileBytes int64    `yaml:"max_file_bytes" mapstructure:"max_file_bytes"`
	Jobs         int      `yaml:"jobs" mapstructure:"jobs"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Strategy:          "mock",
		Style:             "google",
		Provider:          "groq",
		RequestsPerMinute: 30,
		MaxFileBytes:      1 << 20,
		Jobs:              1,
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("strategy", d.Strategy)
	v.SetDefault("style", d.Style)
	v.SetDefault("provider", d.Provider)
	v.SetDefault("model", d.Model)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("requests_per_minute", d.RequestsPerMinute)
	v.SetDefault("in_place", d.InPlace)
	v.SetDefault("overwrite_existing", d.OverwriteExisting)
	v.SetDefault("add_type_hints", d.AddTypeHints)
	v.SetDefault("lint", d.Lint)
	// no default, so an unset list stays nil
	_ = v.BindEnv("exclude")
	v.SetDefault("max_file_bytes", d.MaxFileBytes)
	v.SetDefault("jobs", d.Jobs)
}

// LoadConfig loads configuration from a file, falling back to defaults when
// no file exists. AUTODOC_* environment variables override file values.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrapf(err, "read config file %s", configPath)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "stat config file %s", configPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return &cfg, nil
}

// SaveConfig saves configuration to a file as YAML
func SaveConfig(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.Wrap(err, "write config file")
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "marshal config")
	}
	return data, nil
}

// findConfigFile looks for config files in the current and home directories
func findConfigFile() string {
	for _, candidate := range candidateNames {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		for _, name := range candidateNames {
			candidate := filepath.Join(homeDir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}

	return ""
}

// GetConfigPath returns the config file path to use
func GetConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if found := findConfigFile(); found != "" {
		return found
	}

	return DefaultFileName
}
