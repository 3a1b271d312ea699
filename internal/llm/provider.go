// Package llm talks to hosted and local language models over their HTTP APIs.
package llm

import "strings"

// Protocol is the wire format a provider speaks.
type Protocol string

const (
	// ProtocolOpenAI is the chat completions API shared by most providers.
	ProtocolOpenAI Protocol = "openai"
	// ProtocolAnthropic is the Anthropic messages API.
	ProtocolAnthropic Protocol = "anthropic"
)

// Provider describes one model vendor.
type Provider struct {
	Name         string
	DisplayName  string
	Description  string
	BaseURL      string
	DefaultModel string
	Protocol     Protocol
	NeedsKey     bool
}

// KeyEnv is the environment variable holding the provider's API key.
func (p Provider) KeyEnv() string { return strings.ToUpper(p.Name) + "_API_KEY" }

// ModelEnv is the environment variable overriding the provider's model.
func (p Provider) ModelEnv() string { return strings.ToUpper(p.Name) + "_MODEL_NAME" }

var providers = []Provider{
	{
		Name:         "groq",
		DisplayName:  "Groq",
		Description:  "Fast inference, generous free tier",
		BaseURL:      "https://api.groq.com/openai/v1",
		DefaultModel: "llama-3.3-70b-versatile",
		Protocol:     ProtocolOpenAI,
		NeedsKey:     true,
	},
	{
		Name:         "openai",
		DisplayName:  "OpenAI",
		Description:  "GPT models",
		BaseURL:      "https://api.openai.com/v1",
		DefaultModel: "gpt-4o-mini",
		Protocol:     ProtocolOpenAI,
		NeedsKey:     true,
	},
	{
		Name:         "anthropic",
		DisplayName:  "Anthropic",
		Description:  "Claude models",
		BaseURL:      "https://api.anthropic.com/v1",
		DefaultModel: "claude-3-5-sonnet-latest",
		Protocol:     ProtocolAnthropic,
		NeedsKey:     true,
	},
	{
		Name:         "gemini",
		DisplayName:  "Google Gemini",
		Description:  "Gemini models through the OpenAI compatible endpoint",
		BaseURL:      "https://generativelanguage.googleapis.com/v1beta/openai",
		DefaultModel: "gemini-1.5-pro",
		Protocol:     ProtocolOpenAI,
		NeedsKey:     true,
	},
	{
		Name:         "openrouter",
		DisplayName:  "OpenRouter",
		Description:  "Many vendors behind one key",
		BaseURL:      "https://openrouter.ai/api/v1",
		DefaultModel: "openai/gpt-4o-mini",
		Protocol:     ProtocolOpenAI,
		NeedsKey:     true,
	},
	{
		Name:         "ollama",
		DisplayName:  "Ollama",
		Description:  "Local models, no key needed",
		BaseURL:      "http://localhost:11434/v1",
		DefaultModel: "llama3.2",
		Protocol:     ProtocolOpenAI,
	},
}

// Providers returns every known provider in display order.
func Providers() []Provider {
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// LookupProvider finds a provider by name, case-insensitively.
func LookupProvider(name string) (Provider, bool) {
	for _, p := range providers {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Provider{}, false
}
