package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrMissingAPIKey is returned when a provider that needs a key has none.
var ErrMissingAPIKey = errors.New("API key not configured")

// Completer sends a single prompt and returns the model's reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds client configuration.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature *float64 // nil = use default (0.2)
	MaxTokens   *int     // nil = use default (1000)
	// RequestsPerMinute paces calls; zero disables pacing.
	RequestsPerMinute int
	Timeout           time.Duration
	HTTPClient        *http.Client
	Logger            *zap.SugaredLogger
}

// NewClient builds a Completer for the configured provider.
func NewClient(config Config) (Completer, error) {
	provider, ok := LookupProvider(config.Provider)
	if !ok {
		return nil, errors.WithHint(
			errors.Newf("unknown provider %q", config.Provider),
			"supported providers: groq, openai, anthropic, gemini, openrouter, ollama")
	}
	if provider.NeedsKey && config.APIKey == "" {
		return nil, errors.WithHint(
			errors.Wrapf(ErrMissingAPIKey, "%s", provider.DisplayName),
			"run `autodoc init` or set "+provider.KeyEnv())
	}
	if config.Model == "" {
		config.Model = provider.DefaultModel
	}
	if config.BaseURL == "" {
		config.BaseURL = provider.BaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Temperature == nil {
		defaultTemp := 0.2
		config.Temperature = &defaultTemp
	}
	if config.MaxTokens == nil {
		defaultTokens := 1000
		config.MaxTokens = &defaultTokens
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop().Sugar()
	}
	if config.HTTPClient == nil {
		timeout := config.Timeout
		if timeout == 0 {
			timeout = 120 * time.Second
		}
		config.HTTPClient = &http.Client{Timeout: timeout}
	}

	var c Completer
	switch provider.Protocol {
	case ProtocolAnthropic:
		c = &AnthropicClient{config: config}
	default:
		c = &ChatClient{config: config}
	}
	if config.RequestsPerMinute > 0 {
		c = NewPaced(c, config.RequestsPerMinute)
	}
	return c, nil
}

// ChatClient speaks the OpenAI chat completions protocol.
type ChatClient struct {
	config Config
}

// ChatCompletionRequest represents a request to the chat completions endpoint
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// Message represents a message in a chat completion.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse represents the response from chat completions
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice represents a completion choice
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage represents token usage information
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Complete sends prompt as a single user message.
func (c *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: *c.config.Temperature,
		MaxTokens:   *c.config.MaxTokens,
	}
	headers := map[string]string{}
	if c.config.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.config.APIKey
	}

	var resp ChatCompletionResponse
	if err := postJSON(ctx, c.config, c.config.BaseURL+"/chat/completions", headers, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response choices")
	}

	c.config.Logger.Debugw("chat completion",
		"model", c.config.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func postJSON(ctx context.Context, config Config, url string, headers map[string]string, body, out interface{}) error {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := config.HTTPClient.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrap(err, "failed to unmarshal response")
	}
	return nil
}

// Paced delays calls so that no more than a fixed number start per minute.
type Paced struct {
	next    Completer
	limiter *rate.Limiter
}

// NewPaced wraps next with a limiter allowing perMinute calls per minute.
func NewPaced(next Completer, perMinute int) *Paced {
	return &Paced{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (p *Paced) Complete(ctx context.Context, prompt string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, "rate limiter")
	}
	return p.next.Complete(ctx, prompt)
}
