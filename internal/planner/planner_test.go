package planner

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/getlawrence/autodoc/internal/extractor"
	"github.com/getlawrence/autodoc/internal/languages"
	"github.com/getlawrence/autodoc/internal/patch"
	"github.com/getlawrence/autodoc/internal/syntax"
	"github.com/getlawrence/autodoc/internal/typehints"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	doc        string
	genErr     error
	acceptable bool
	evalErr    error
	generated  []string
}

func (f *fakeGenerator) Generate(_ context.Context, sym extractor.Symbol) (string, error) {
	f.generated = append(f.generated, sym.Name)
	return f.doc, f.genErr
}

func (f *fakeGenerator) Evaluate(context.Context, extractor.Symbol, string) (bool, error) {
	return f.acceptable, f.evalErr
}

func (f *fakeGenerator) InferTypes(context.Context, extractor.Symbol) (typehints.Hints, error) {
	return typehints.Hints{}, nil
}

type fixture struct {
	unit    *syntax.SourceUnit
	result  *extractor.Result
	planner *Planner
}

func setup(t *testing.T, plugin languages.LanguagePlugin, src string, gen *fakeGenerator) fixture {
	t.Helper()
	unit, err := syntax.Parse(context.Background(), "f", plugin.ID(), plugin.TreeSitterLanguage(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(unit.Close)
	res, err := extractor.Extract(unit, plugin)
	require.NoError(t, err)
	return fixture{unit: unit, result: res, planner: New(unit, plugin, gen, nil)}
}

func apply(t *testing.T, src string, edits ...patch.Edit) string {
	t.Helper()
	out, err := patch.ApplyString(src, edits...)
	require.NoError(t, err)
	return out
}

func TestInsertPythonDocstring(t *testing.T) {
	src := "def add(a, b):\n    return a + b\n"
	gen := &fakeGenerator{doc: "Adds two numbers."}
	f := setup(t, languages.NewPythonPlugin(), src, gen)

	sym := f.result.Undocumented()[0]
	edit, ok, err := f.planner.Missing(context.Background(), sym)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "def add(a, b):\n    \"\"\"Adds two numbers.\"\"\"\n    return a + b\n", apply(t, src, edit))
}

func TestInsertNestedPythonMethodMultiline(t *testing.T) {
	src := "class A:\n    def run(self):\n        x = 1\n        return x\n"
	gen := &fakeGenerator{doc: "Runs.\n\nReturns:\n    One."}
	f := setup(t, languages.NewPythonPlugin(), src, gen)

	var run extractor.Symbol
	for _, s := range f.result.Undocumented() {
		if s.Name == "run" {
			run = s
		}
	}
	edit, ok := f.planner.Insert(run, gen.doc)
	require.True(t, ok)
	want := "class A:\n    def run(self):\n" +
		"        \"\"\"\n" +
		"        Runs.\n" +
		"        \n" +
		"        Returns:\n" +
		"            One.\n" +
		"        \"\"\"\n" +
		"        x = 1\n        return x\n"
	assert.Equal(t, want, apply(t, src, edit))
}

func TestInsertFollowsBodyIndentation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "two spaces",
			src:  "def f():\n  return 1\n",
			want: "def f():\n  \"\"\"Doc.\"\"\"\n  return 1\n",
		},
		{
			name: "tabs",
			src:  "class A:\n\tdef f(self):\n\t\treturn 1\n",
			want: "class A:\n\tdef f(self):\n\t\t\"\"\"Doc.\"\"\"\n\t\treturn 1\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plugin := languages.NewPythonPlugin()
			f := setup(t, plugin, tt.src, &fakeGenerator{})
			var sym extractor.Symbol
			for _, s := range f.result.Undocumented() {
				if s.Name == "f" {
					sym = s
				}
			}
			edit, ok := f.planner.Insert(sym, "Doc.")
			require.True(t, ok)
			out := apply(t, tt.src, edit)
			assert.Equal(t, tt.want, out)

			unit, err := syntax.Parse(context.Background(), "f", plugin.ID(), plugin.TreeSitterLanguage(), []byte(out))
			require.NoError(t, err)
			defer unit.Close()
			assert.False(t, unit.HasErrors())
		})
	}
}

func TestInsertSkipsOneLineBody(t *testing.T) {
	src := "def f(): return 1\n"
	f := setup(t, languages.NewPythonPlugin(), src, &fakeGenerator{})
	_, ok := f.planner.Insert(f.result.Undocumented()[0], "Doc.")
	assert.False(t, ok)
}

func TestReplacePoorPythonDocstring(t *testing.T) {
	src := "def f():\n    \"\"\"bad\"\"\"\n    return 1\n"
	gen := &fakeGenerator{doc: "Return one.", acceptable: false}
	f := setup(t, languages.NewPythonPlugin(), src, gen)

	syms := f.result.Redocumentable()
	require.Len(t, syms, 1)
	edit, ok, err := f.planner.Improve(context.Background(), syms[0])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "def f():\n    \"\"\"Return one.\"\"\"\n    return 1\n", apply(t, src, edit))
}

func TestImproveKeepsAcceptableOrUnevaluated(t *testing.T) {
	src := "def f():\n    \"\"\"Fine.\"\"\"\n    return 1\n"
	for _, gen := range []*fakeGenerator{
		{doc: "x", acceptable: true},
		{doc: "x", acceptable: false, evalErr: errors.New("offline")},
	} {
		f := setup(t, languages.NewPythonPlugin(), src, gen)
		_, ok, err := f.planner.Improve(context.Background(), f.result.Redocumentable()[0])
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, gen.generated)
	}
}

func TestMissingPropagatesGeneratorFailure(t *testing.T) {
	src := "def f():\n    return 1\n"
	f := setup(t, languages.NewPythonPlugin(), src, &fakeGenerator{genErr: errors.New("quota")})
	_, ok, err := f.planner.Missing(context.Background(), f.result.Undocumented()[0])
	assert.Error(t, err)
	assert.False(t, ok)

	f = setup(t, languages.NewPythonPlugin(), src, &fakeGenerator{doc: "  \n"})
	_, ok, err = f.planner.Missing(context.Background(), f.result.Undocumented()[0])
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestInsertLeadingJSDoc(t *testing.T) {
	src := "class Box {\n  open() {\n    return 1;\n  }\n}\n"
	gen := &fakeGenerator{doc: "Opens the box."}
	f := setup(t, languages.NewJavaScriptPlugin(), src, gen)

	var open extractor.Symbol
	for _, s := range f.result.Undocumented() {
		if s.Name == "open" {
			open = s
		}
	}
	edit, ok, err := f.planner.Missing(context.Background(), open)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, edit.IsInsert())
	want := "class Box {\n  /**\n   * Opens the box.\n   */\n  open() {\n    return 1;\n  }\n}\n"
	assert.Equal(t, want, apply(t, src, edit))
}

func TestInsertLeadingJavaDoc(t *testing.T) {
	src := "public class Calc {\n    public int add(int a, int b) {\n        return a + b;\n    }\n}\n"
	f := setup(t, languages.NewJavaPlugin(), src, &fakeGenerator{})

	var add extractor.Symbol
	for _, s := range f.result.Undocumented() {
		if s.Name == "add" {
			add = s
		}
	}
	edit, ok := f.planner.Insert(add, "Adds.")
	require.True(t, ok)
	out := apply(t, src, edit)
	assert.Contains(t, out, "    /**\n     * Adds.\n     */\n    public int add(int a, int b) {\n")
}

func TestReplaceGoLineComments(t *testing.T) {
	src := "package p\n\n// x\n// y\nfunc Add(a, b int) int { return a + b }\n"
	f := setup(t, languages.NewGoPlugin(), src, &fakeGenerator{})
	sym := f.result.Redocumentable()[0]
	edit, ok := f.planner.Replace(sym, "Add returns a+b.\n\nIt never fails.")
	require.True(t, ok)
	want := "package p\n\n// Add returns a+b.\n//\n// It never fails.\nfunc Add(a, b int) int { return a + b }\n"
	assert.Equal(t, want, apply(t, src, edit))
}

func TestInsertExportedFunctionAboveExport(t *testing.T) {
	src := "export function mul(a, b) {\n  return a * b;\n}\n"
	f := setup(t, languages.NewJavaScriptPlugin(), src, &fakeGenerator{})
	edit, ok := f.planner.Insert(f.result.Undocumented()[0], "Multiplies.")
	require.True(t, ok)
	assert.Equal(t, 0, edit.Start)
	assert.Equal(t, "/**\n * Multiplies.\n */\n"+src, apply(t, src, edit))
}
