package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/getlawrence/autodoc/internal/config"
	"github.com/getlawrence/autodoc/internal/detector"
	"github.com/getlawrence/autodoc/internal/engine"
	"github.com/getlawrence/autodoc/internal/generator"
	"github.com/getlawrence/autodoc/internal/languages"
	"github.com/getlawrence/autodoc/internal/logger"
	"github.com/getlawrence/autodoc/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [path]",
	Short: "Generate missing documentation for a file or directory",
	Long: `Run finds undocumented functions and classes under the given path (or
the current directory) and generates documentation for them.

Without --in-place the rewritten files are printed and nothing is written.

Example usage:
  autodoc run                                 # Preview changes for the current directory
  autodoc run src/ --in-place                 # Write changes back
  autodoc run --diff --in-place               # Only files changed in git
  autodoc run app.py --add-type-hints --strategy llm --provider openai`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd.Flags())
}

func addRunFlags(f *pflag.FlagSet) {
	f.Bool("diff", false, "only process files with uncommitted changes in the enclosing git repository")
	f.String("strategy", "", "generation strategy (mock, llm, or a provider name)")
	f.String("style", "", "docstring style (google, numpy, rst)")
	f.BoolP("in-place", "i", false, "write changes back to the files")
	f.Bool("overwrite-existing", false, "regenerate existing documentation the model judges inadequate")
	f.Bool("add-type-hints", false, "annotate Python signatures with inferred types")
	f.String("provider", "", "LLM provider (groq, openai, anthropic, gemini, openrouter, ollama)")
	f.String("model", "", "model name, defaults per provider")
	f.IntP("jobs", "j", 0, "number of files processed concurrently")
	f.StringSlice("exclude", nil, "glob patterns of paths to skip, relative to the target directory")
	f.Bool("lint", false, "report short parameter and variable names")
}

// applyRunFlags overrides cfg with the flags the user actually set.
func applyRunFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("strategy") {
		cfg.Strategy, _ = flags.GetString("strategy")
	}
	if flags.Changed("style") {
		cfg.Style, _ = flags.GetString("style")
	}
	if flags.Changed("in-place") {
		cfg.InPlace, _ = flags.GetBool("in-place")
	}
	if flags.Changed("overwrite-existing") {
		cfg.OverwriteExisting, _ = flags.GetBool("overwrite-existing")
	}
	if flags.Changed("add-type-hints") {
		cfg.AddTypeHints, _ = flags.GetBool("add-type-hints")
	}
	if flags.Changed("provider") {
		cfg.Provider, _ = flags.GetString("provider")
	}
	if flags.Changed("model") {
		cfg.Model, _ = flags.GetString("model")
	}
	if flags.Changed("jobs") {
		cfg.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("exclude") {
		cfg.Exclude, _ = flags.GetStringSlice("exclude")
	}
	if flags.Changed("lint") {
		cfg.Lint, _ = flags.GetBool("lint")
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)
	cfg := *app.Config
	applyRunFlags(cmd.Flags(), &cfg)

	targetPath := "."
	if len(args) > 0 {
		targetPath = args[0]
	}
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return errors.Wrap(err, "resolve path")
	}
	if _, err := os.Stat(absPath); err != nil {
		return errors.Wrapf(err, "path %s", targetPath)
	}

	diff, _ := cmd.Flags().GetBool("diff")
	files, err := selectFiles(absPath, diff, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		app.Logger.Log("No supported source files found")
		return nil
	}
	counts := detector.CountLanguages(files, languages.DefaultRegistry)
	langs := make([]string, 0, len(counts))
	for _, name := range detector.SortedLanguages(counts) {
		langs = append(langs, fmt.Sprintf("%s=%d", name, counts[name]))
	}
	app.Logger.Debugf("languages: %s", strings.Join(langs, ", "))

	ulog := logger.NewUILogger(app.Logger)
	gen, err := generator.New(generator.Options{
		Strategy:          cfg.Strategy,
		Style:             cfg.Style,
		Provider:          cfg.Provider,
		Model:             cfg.Model,
		BaseURL:           cfg.BaseURL,
		RequestsPerMinute: cfg.RequestsPerMinute,
		Log:               ulog,
	})
	if err != nil {
		return err
	}

	eng := engine.New(languages.DefaultRegistry, gen, ulog, engine.Options{
		InPlace:           cfg.InPlace,
		OverwriteExisting: cfg.OverwriteExisting,
		AddTypeHints:      cfg.AddTypeHints,
		Lint:              cfg.Lint,
		MaxFileBytes:      cfg.MaxFileBytes,
		Jobs:              cfg.Jobs,
	})

	spin := ulog.StartSpinner(fmt.Sprintf("Processing %d file(s)", len(files)))
	results, runErr := eng.Run(cmd.Context(), files)
	summary := engine.Summarize(results)
	if runErr != nil || summary.Errored > 0 {
		spin.Fail()
	} else {
		spin.Stop()
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		if r == nil {
			continue
		}
		if !cfg.InPlace && r.Changed() {
			fmt.Fprint(out, ui.RenderPreview(r))
		}
		fmt.Fprint(out, ui.RenderFindings(r))
	}
	if problems := ui.RenderProblems(results); problems != "" {
		fmt.Fprint(out, problems)
	}
	fmt.Fprint(out, ui.RenderSummary(summary, cfg.InPlace))

	if runErr != nil {
		return errors.Wrap(runErr, "run interrupted")
	}
	if summary.Errored > 0 {
		return errors.Newf("%d file(s) could not be processed", summary.Errored)
	}
	return nil
}

func selectFiles(absPath string, diff bool, cfg config.Config) ([]string, error) {
	if !diff {
		return detector.CollectSourceFiles(absPath, detector.Options{
			Registry: languages.DefaultRegistry,
			Exclude:  cfg.Exclude,
		})
	}
	files, err := detector.ChangedFiles(absPath, languages.DefaultRegistry)
	if err != nil {
		if errors.Is(err, detector.ErrNotRepository) {
			return nil, errors.WithHint(err, "--diff needs a git repository; drop the flag to process every file")
		}
		return nil, err
	}
	return detector.FilterExcluded(absPath, files, cfg.Exclude), nil
}
