package llm

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
)

const anthropicVersion = "2023-06-01"

// AnthropicClient speaks the Anthropic messages protocol.
type AnthropicClient struct {
	config Config
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
	Messages    []Message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := messagesRequest{
		Model:       c.config.Model,
		MaxTokens:   *c.config.MaxTokens,
		Temperature: *c.config.Temperature,
		Messages:    []Message{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{
		"x-api-key":         c.config.APIKey,
		"anthropic-version": anthropicVersion,
	}

	var resp messagesResponse
	if err := postJSON(ctx, c.config, c.config.BaseURL+"/messages", headers, req, &resp); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, part := range resp.Content {
		if part.Type == "text" {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("no text content in response")
	}

	c.config.Logger.Debugw("messages completion",
		"model", c.config.Model,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)
	return strings.TrimSpace(b.String()), nil
}
