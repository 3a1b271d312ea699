package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/cockroachdb/errors"
	"github.com/getlawrence/autodoc/internal/config"
	"github.com/getlawrence/autodoc/internal/credentials"
	"github.com/getlawrence/autodoc/internal/generator"
	"github.com/getlawrence/autodoc/internal/llm"
	"github.com/getlawrence/autodoc/internal/logger"
	"github.com/getlawrence/autodoc/internal/ui"
	"github.com/spf13/cobra"
)

const connectivityTimeout = 30 * time.Second

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Choose an LLM provider and store its API key",
	Long: `Init walks through choosing a provider and model, stores the API key
in the system keychain and writes .autodoc.yaml in the current directory.

When the keychain is unavailable the key is not stored; export the
provider's environment variable instead.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("provider", "", "provider to configure, skips the selection prompt")
	initCmd.Flags().String("model", "", "model to use, skips the model prompt")
	initCmd.Flags().Bool("skip-check", false, "do not send a test request to the provider")
}

type initAnswers struct {
	provider string
	model    string
	apiKey   string
}

func runInit(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)
	cfg := *app.Config
	out := cmd.OutOrStdout()

	answers := initAnswers{provider: cfg.Provider, model: cfg.Model}
	if cmd.Flags().Changed("provider") {
		answers.provider, _ = cmd.Flags().GetString("provider")
	}
	if cmd.Flags().Changed("model") {
		answers.model, _ = cmd.Flags().GetString("model")
	}

	interactive := logger.IsInteractive()
	if interactive {
		if err := promptInit(&answers, !cmd.Flags().Changed("provider"), !cmd.Flags().Changed("model")); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return errors.New("init canceled")
			}
			return errors.Wrap(err, "init form")
		}
	}

	provider, ok := llm.LookupProvider(answers.provider)
	if !ok {
		return errors.WithHint(errors.Newf("unknown provider %q", answers.provider),
			"run `autodoc init` and pick one from the list")
	}

	if answers.apiKey != "" {
		if err := credentials.Store(provider.Name, answers.apiKey); err != nil {
			if !errors.Is(err, credentials.ErrKeychainUnavailable) {
				return err
			}
			app.Logger.Warnf("keychain unavailable: %v", err)
			fmt.Fprintf(out, "🔑 Could not store the key. Add this to your shell profile instead:\n   export %s=<your key>\n", provider.KeyEnv())
		} else {
			fmt.Fprintf(out, "🔑 Stored %s API key in the system keychain\n", provider.DisplayName)
		}
	} else if provider.NeedsKey {
		if _, source, err := credentials.Lookup(provider.Name, provider.KeyEnv()); err != nil {
			fmt.Fprintf(out, "🔑 No API key found. Set %s or rerun init in a terminal.\n", provider.KeyEnv())
		} else {
			fmt.Fprintf(out, "🔑 Using %s API key from the %s\n", provider.DisplayName, source)
		}
	}

	cfg.Strategy = generator.StrategyLLM
	cfg.Provider = provider.Name
	cfg.Model = answers.model

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultFileName
	}
	if err := config.SaveConfig(&cfg, path); err != nil {
		return err
	}
	abs, _ := filepath.Abs(path)
	fmt.Fprintf(out, "📄 Wrote %s\n", abs)

	if skip, _ := cmd.Flags().GetBool("skip-check"); skip {
		return nil
	}
	check := func() error { return checkProvider(cmd.Context(), provider, cfg, answers.apiKey) }
	var err error
	if interactive {
		err = ui.RunSpinner(cmd.Context(), "Contacting "+provider.DisplayName, check)
	} else {
		err = check()
	}
	if err != nil {
		// configuration is already saved; a failed check is only a warning
		app.Logger.Warnf("provider check failed: %v", err)
		return nil
	}
	fmt.Fprintf(out, "✅ %s is reachable. Try `autodoc run`.\n", provider.DisplayName)
	return nil
}

func promptInit(answers *initAnswers, askProvider, askModel bool) error {
	if askProvider {
		options := make([]huh.Option[string], 0, len(llm.Providers()))
		for _, p := range llm.Providers() {
			options = append(options, huh.NewOption(fmt.Sprintf("%s - %s", p.DisplayName, p.Description), p.Name))
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Provider").
					Description("Select the LLM provider that writes documentation").
					Options(options...).
					Value(&answers.provider),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	provider, ok := llm.LookupProvider(answers.provider)
	if !ok {
		return errors.Newf("unknown provider %q", answers.provider)
	}

	var fields []huh.Field
	if askModel {
		fields = append(fields, huh.NewInput().
			Title("Model").
			Description("Leave empty for the provider default").
			Placeholder(provider.DefaultModel).
			Value(&answers.model))
	}
	if provider.NeedsKey {
		_, source, lookupErr := credentials.Lookup(provider.Name, provider.KeyEnv())
		description := "Stored in the system keychain"
		if lookupErr == nil {
			description = fmt.Sprintf("A key is already available from the %s; leave empty to keep it", source)
		}
		fields = append(fields, huh.NewInput().
			Title(fmt.Sprintf("API Key for %s:", provider.DisplayName)).
			Description(description).
			EchoMode(huh.EchoModePassword).
			Value(&answers.apiKey).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" && lookupErr != nil {
					return errors.New("API key is required")
				}
				return nil
			}))
	}
	if len(fields) == 0 {
		return nil
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}
	answers.apiKey = strings.TrimSpace(answers.apiKey)
	return nil
}

// checkProvider sends one short completion request to confirm the key and
// endpoint work.
func checkProvider(ctx context.Context, provider llm.Provider, cfg config.Config, apiKey string) error {
	if apiKey == "" {
		key, _, err := credentials.Lookup(provider.Name, provider.KeyEnv())
		if err != nil && provider.NeedsKey {
			return err
		}
		apiKey = key
	}
	client, err := llm.NewClient(llm.Config{
		Provider: provider.Name,
		Model:    cfg.Model,
		APIKey:   apiKey,
		BaseURL:  cfg.BaseURL,
		Timeout:  connectivityTimeout,
	})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, connectivityTimeout)
	defer cancel()
	_, err = client.Complete(ctx, "Reply with the single word OK.")
	return err
}
