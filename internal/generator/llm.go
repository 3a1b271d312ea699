package generator

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/getlawrence/autodoc/internal/extractor"
	"github.com/getlawrence/autodoc/internal/languages"
	"github.com/getlawrence/autodoc/internal/llm"
	"github.com/getlawrence/autodoc/internal/templates"
	"github.com/getlawrence/autodoc/internal/typehints"
)

// LLM renders prompts and asks a language model for content.
type LLM struct {
	client   llm.Completer
	prompts  *templates.TemplateEngine
	registry *languages.LanguageRegistry
	style    string
}

func NewLLM(client llm.Completer, prompts *templates.TemplateEngine, style string) *LLM {
	return &LLM{
		client:   client,
		prompts:  prompts,
		registry: languages.DefaultRegistry,
		style:    style,
	}
}

func (g *LLM) promptData(sym extractor.Symbol) templates.PromptData {
	name := sym.Language
	if p, ok := g.registry.Get(sym.Language); ok {
		name = p.DisplayName()
	}
	return templates.PromptData{
		Language:     sym.Language,
		LanguageName: name,
		Kind:         declarationKind(sym),
		Name:         sym.Name,
		Code:         sym.Code,
	}
}

func (g *LLM) Generate(ctx context.Context, sym extractor.Symbol) (string, error) {
	prompt, err := g.prompts.DocstringPrompt(g.style, g.promptData(sym))
	if err != nil {
		return "", err
	}
	out, err := g.client.Complete(ctx, prompt)
	if err != nil {
		return "", errors.Wrapf(err, "generate documentation for %s", sym.Name)
	}
	out = stripFences(out)
	if strings.TrimSpace(out) == "" {
		return "", errors.Wrapf(ErrEmptyResponse, "generate documentation for %s", sym.Name)
	}
	return out, nil
}

// Evaluate treats any reply containing "yes" as acceptance.
func (g *LLM) Evaluate(ctx context.Context, sym extractor.Symbol, existing string) (bool, error) {
	data := g.promptData(sym)
	data.Existing = existing
	prompt, err := g.prompts.Render(templates.PromptEvaluate, data)
	if err != nil {
		return true, err
	}
	out, err := g.client.Complete(ctx, prompt)
	if err != nil {
		return true, errors.Wrapf(err, "evaluate documentation for %s", sym.Name)
	}
	return strings.Contains(strings.ToLower(out), "yes"), nil
}

func (g *LLM) InferTypes(ctx context.Context, sym extractor.Symbol) (typehints.Hints, error) {
	prompt, err := g.prompts.Render(templates.PromptInferTypes, g.promptData(sym))
	if err != nil {
		return typehints.Hints{}, err
	}
	out, err := g.client.Complete(ctx, prompt)
	if err != nil {
		return typehints.Hints{}, errors.Wrapf(err, "infer types for %s", sym.Name)
	}
	return parseHints(out)
}

// parseHints decodes the first JSON object found in a model reply.
func parseHints(reply string) (typehints.Hints, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return typehints.Hints{}, errors.Wrap(ErrEmptyResponse, "no JSON object in type inference reply")
	}
	var h typehints.Hints
	if err := json.Unmarshal([]byte(reply[start:end+1]), &h); err != nil {
		return typehints.Hints{}, errors.Wrap(err, "decode type inference reply")
	}
	delete(h.Parameters, "self")
	delete(h.Parameters, "cls")
	return h, nil
}

// stripFences removes a surrounding markdown code fence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "```" {
		lines = lines[:n-1]
	}
	return strings.Join(lines, "\n")
}

func declarationKind(sym extractor.Symbol) string {
	if sym.Decl == nil {
		return "function"
	}
	kind := sym.Decl.Type()
	switch {
	case strings.HasPrefix(kind, "class"):
		return "class"
	case strings.HasPrefix(kind, "interface"):
		return "interface"
	case strings.HasPrefix(kind, "method"):
		return "method"
	case strings.HasPrefix(kind, "constructor"):
		return "constructor"
	}
	return "function"
}
