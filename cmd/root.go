package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/getlawrence/autodoc/internal/config"
	"github.com/getlawrence/autodoc/internal/logger"
	"github.com/spf13/cobra"
)

type contextKey string

// Context key for configuration
const ConfigKey contextKey = "config"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "autodoc",
	Short: "Generate documentation and type hints for source code",
	Long: `autodoc finds functions and classes without documentation and writes
docstrings or doc comments for them, editing only the exact byte ranges
it needs so the rest of each file is left untouched.

Python, JavaScript, Java, Go and C++ are supported. Python signatures
can also be annotated with inferred type hints.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	app := NewAppConfig()
	ctx := context.WithValue(context.Background(), ConfigKey, app)
	err := rootCmd.ExecuteContext(ctx)
	app.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default .autodoc.yaml in the current or home directory)")
}

// setupApp builds the logger and loads configuration before any subcommand runs.
func setupApp(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)

	verbose, _ := cmd.Flags().GetBool("verbose")
	format, _ := cmd.Flags().GetString("log-format")
	switch format {
	case "console", "json":
	default:
		return errors.WithHint(errors.Newf("unknown log format %q", format), "use console or json")
	}
	zl := logger.New(logger.Options{Verbose: verbose, JSON: format == "json", Writer: cmd.ErrOrStderr()})
	app.Logger = zl
	app.zap = zl

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return errors.WithHint(err, "fix the config file or pass --config")
	}
	app.Config = cfg
	app.ConfigPath = config.GetConfigPath(path)
	return nil
}
