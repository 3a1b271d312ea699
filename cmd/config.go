package cmd

import (
	"fmt"

	"github.com/getlawrence/autodoc/internal/config"
	"github.com/getlawrence/autodoc/internal/logger"
	"github.com/spf13/cobra"
)

// AppConfig holds all the shared configuration and dependencies
type AppConfig struct {
	Config     *config.Config
	ConfigPath string
	Logger     logger.Logger

	zap *logger.ZapLogger
}

// NewAppConfig creates a configuration instance with defaults and a silent
// logger; setupApp replaces both once flags are parsed.
func NewAppConfig() *AppConfig {
	return &AppConfig{
		Config: config.DefaultConfig(),
		Logger: logger.Nop(),
	}
}

// Sync flushes buffered log output.
func (a *AppConfig) Sync() {
	if a.zap != nil {
		_ = a.zap.Sync()
	}
}

func appConfig(cmd *cobra.Command) *AppConfig {
	if ctx := cmd.Context(); ctx != nil {
		if app, ok := ctx.Value(ConfigKey).(*AppConfig); ok && app != nil {
			return app
		}
	}
	return NewAppConfig()
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Long: `Show prints the configuration after defaults, the config file and
AUTODOC_* environment variables have been merged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Marshal(appConfig(cmd).Config)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path in use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), appConfig(cmd).ConfigPath)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}
