package generator

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/getlawrence/autodoc/internal/credentials"
	"github.com/getlawrence/autodoc/internal/llm"
	"github.com/getlawrence/autodoc/internal/logger"
	"github.com/getlawrence/autodoc/internal/templates"
)

// Strategy names.
const (
	StrategyMock = "mock"
	StrategyLLM  = "llm"
)

// Options selects and configures a generator.
type Options struct {
	Strategy          string
	Style             string
	Provider          string
	Model             string
	BaseURL           string
	RequestsPerMinute int
	Log               logger.Logger
}

// New builds the generator named by opts.Strategy. A strategy equal to a
// provider name selects the LLM strategy for that provider.
func New(opts Options) (ContentGenerator, error) {
	if opts.Style == "" {
		opts.Style = StyleGoogle
	}
	if !ValidStyle(opts.Style) {
		return nil, errors.Newf("unknown documentation style %q", opts.Style)
	}
	if _, ok := llm.LookupProvider(opts.Strategy); ok {
		opts.Provider = opts.Strategy
		opts.Strategy = StrategyLLM
	}

	switch opts.Strategy {
	case "", StrategyMock:
		return NewMock(opts.Style), nil
	case StrategyLLM:
	default:
		return nil, errors.Newf("unknown strategy %q", opts.Strategy)
	}

	provider, ok := llm.LookupProvider(opts.Provider)
	if !ok {
		return nil, errors.Newf("unknown provider %q", opts.Provider)
	}
	key, source, err := credentials.Lookup(provider.Name, provider.KeyEnv())
	if err != nil && !errors.Is(err, credentials.ErrNotFound) {
		return nil, err
	}
	model := opts.Model
	if model == "" {
		model = os.Getenv(provider.ModelEnv())
	}
	if opts.Log != nil {
		opts.Log.Debugf("using %s (model %q, key from %s)", provider.DisplayName, model, source)
	}

	client, err := llm.NewClient(llm.Config{
		Provider:          provider.Name,
		Model:             model,
		APIKey:            key,
		BaseURL:           opts.BaseURL,
		RequestsPerMinute: opts.RequestsPerMinute,
		Logger:            logger.Sugar(opts.Log),
	})
	if err != nil {
		return nil, err
	}
	prompts, err := templates.NewTemplateEngine()
	if err != nil {
		return nil, err
	}
	return NewLLM(client, prompts, opts.Style), nil
}
