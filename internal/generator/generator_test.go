package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/getlawrence/autodoc/internal/extractor"
	"github.com/getlawrence/autodoc/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (s *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func newTestLLM(t *testing.T, c *scriptedCompleter) *LLM {
	t.Helper()
	prompts, err := templates.NewTemplateEngine()
	require.NoError(t, err)
	return NewLLM(c, prompts, StyleGoogle)
}

var addSymbol = extractor.Symbol{Name: "add", Language: "python", Code: "def add(a, b):\n    return a + b"}

func TestLLMGenerateStripsFences(t *testing.T) {
	c := &scriptedCompleter{reply: "```text\nAdd two numbers.\n```"}
	g := newTestLLM(t, c)

	out, err := g.Generate(context.Background(), addSymbol)
	require.NoError(t, err)
	assert.Equal(t, "Add two numbers.", out)
	require.Len(t, c.prompts, 1)
	assert.Contains(t, c.prompts[0], "Google style")
	assert.Contains(t, c.prompts[0], "Python function `add`")
}

func TestLLMGenerateEmpty(t *testing.T) {
	g := newTestLLM(t, &scriptedCompleter{reply: "  "})
	_, err := g.Generate(context.Background(), addSymbol)
	assert.True(t, errors.Is(err, ErrEmptyResponse))
}

func TestLLMEvaluate(t *testing.T) {
	cases := []struct {
		reply string
		err   error
		want  bool
	}{
		{reply: "YES", want: true},
		{reply: "yes, it is fine", want: true},
		{reply: "NO", want: false},
		{err: errors.New("boom"), want: true},
	}
	for _, tc := range cases {
		c := &scriptedCompleter{reply: tc.reply, err: tc.err}
		ok, err := newTestLLM(t, c).Evaluate(context.Background(), addSymbol, `"""Adds."""`)
		assert.Equal(t, tc.want, ok, tc.reply)
		assert.Equal(t, tc.err != nil, err != nil)
		assert.Contains(t, c.prompts[0], `"""Adds."""`)
	}
}

func TestLLMInferTypes(t *testing.T) {
	c := &scriptedCompleter{reply: "Here you go:\n```json\n{\"parameters\": {\"self\": \"X\", \"a\": \"int\", \"b\": \"int\"}, \"return_type\": \"int\"}\n```"}
	h, err := newTestLLM(t, c).InferTypes(context.Background(), addSymbol)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "int", "b": "int"}, h.Parameters)
	assert.Equal(t, "int", h.ReturnType)

	_, err = newTestLLM(t, &scriptedCompleter{reply: "no idea"}).InferTypes(context.Background(), addSymbol)
	assert.Error(t, err)
}

func TestMockIsDeterministic(t *testing.T) {
	m := NewMock(StyleNumpy)
	a, err := m.Generate(context.Background(), addSymbol)
	require.NoError(t, err)
	b, _ := m.Generate(context.Background(), addSymbol)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "Summary of add."))
	assert.Contains(t, a, "-------")

	ok, err := m.Evaluate(context.Background(), addSymbol, "x")
	assert.NoError(t, err)
	assert.True(t, ok)

	h, err := m.InferTypes(context.Background(), addSymbol)
	assert.NoError(t, err)
	assert.True(t, h.Empty())
}

func TestNewSelectsStrategy(t *testing.T) {
	g, err := New(Options{Strategy: "mock", Style: "rst"})
	require.NoError(t, err)
	assert.IsType(t, &Mock{}, g)

	_, err = New(Options{Strategy: "mock", Style: "epytext"})
	assert.Error(t, err)

	_, err = New(Options{Strategy: "telepathy"})
	assert.Error(t, err)

	g, err = New(Options{Strategy: "llm", Provider: "ollama"})
	require.NoError(t, err)
	assert.IsType(t, &LLM{}, g)
}
