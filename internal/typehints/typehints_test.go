package typehints

import (
	"context"
	"testing"

	"github.com/getlawrence/autodoc/internal/extractor"
	"github.com/getlawrence/autodoc/internal/languages"
	"github.com/getlawrence/autodoc/internal/patch"
	"github.com/getlawrence/autodoc/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) (*syntax.SourceUnit, *extractor.Result) {
	t.Helper()
	plugin := languages.NewPythonPlugin()
	unit, err := syntax.Parse(context.Background(), "t.py", plugin.ID(), plugin.TreeSitterLanguage(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(unit.Close)
	res, err := extractor.Extract(unit, plugin)
	require.NoError(t, err)
	return unit, res
}

func rewrite(t *testing.T, src string, hints Hints) (string, *Imports, bool) {
	t.Helper()
	unit, res := parse(t, src)
	require.NotEmpty(t, res.Unannotated())
	imports := NewImports()
	edit, ok := Rewrite(unit, res.Unannotated()[0], hints, imports)
	if !ok {
		return src, imports, false
	}
	assert.Equal(t, patch.KindSignature, edit.Kind)
	out, err := patch.ApplyString(src, edit)
	require.NoError(t, err)
	return out, imports, true
}

func TestRewriteSimpleSignature(t *testing.T) {
	src := "def f(x, y):\n    return x + y\n"
	out, imports, ok := rewrite(t, src, Hints{
		Parameters: map[string]string{"x": "int", "y": "int"},
		ReturnType: "int",
	})
	require.True(t, ok)
	assert.Equal(t, "def f(x: int, y: int) -> int:\n    return x + y\n", out)
	assert.Empty(t, imports.Names())
}

func TestRewritePreservesDefaultsAndSelf(t *testing.T) {
	src := "class C:\n    async def load(self, path, retries=3, *args, **kw):\n        pass\n"
	out, imports, ok := rewrite(t, src, Hints{
		Parameters: map[string]string{
			"self": "C", "path": "str", "retries": "int",
			"*args": "Any", "kw": "Dict[str, Any]",
		},
		ReturnType: "Optional[List[str]]",
	})
	require.True(t, ok)
	assert.Equal(t,
		"class C:\n    async def load(self, path: str, retries: int = 3, *args: Any, **kw: Dict[str, Any]) -> Optional[List[str]]:\n        pass\n",
		out)
	assert.Equal(t, []string{"Any", "Dict", "List", "Optional"}, imports.Names())
}

func TestRewriteLeavesDefaultWithoutType(t *testing.T) {
	src := "def g(a, b=1):\n    pass\n"
	out, _, ok := rewrite(t, src, Hints{Parameters: map[string]string{"a": "float"}})
	require.True(t, ok)
	assert.Equal(t, "def g(a: float, b=1):\n    pass\n", out)
}

func TestRewriteWithoutUsableHints(t *testing.T) {
	src := "def g(a):\n    pass\n"
	_, _, ok := rewrite(t, src, Hints{Parameters: map[string]string{"zz": "int", "a": "int\nimport os"}})
	assert.False(t, ok)
	assert.True(t, Hints{Parameters: map[string]string{"a": " "}}.Empty())
	assert.False(t, Hints{ReturnType: "int"}.Empty())
}

func TestImportPlan(t *testing.T) {
	src := "def f(x):\n    return x\n"
	unit, _ := parse(t, src)

	imports := NewImports()
	_, ok := imports.Plan(unit)
	assert.False(t, ok)

	imports.Collect("Union[List[int], Tuple[str, ...]]")
	imports.Collect("AnyStr")
	edit, ok := imports.Plan(unit)
	require.True(t, ok)
	assert.Equal(t, 0, edit.Start)
	assert.True(t, edit.IsInsert())
	assert.Equal(t, "from typing import List, Tuple, Union\n\n", edit.Text)
}

func TestImportPlanSkipsExistingTypingImport(t *testing.T) {
	for _, src := range []string{
		"from typing import List\n\ndef f(x):\n    pass\n",
		"import typing\n\ndef f(x):\n    pass\n",
	} {
		unit, _ := parse(t, src)
		imports := NewImports()
		imports.Collect("List[int]")
		_, ok := imports.Plan(unit)
		assert.False(t, ok, src)
	}
}

func TestImportPlanAfterFutureImports(t *testing.T) {
	src := "from __future__ import annotations\n\ndef f(x):\n    pass\n"
	unit, _ := parse(t, src)
	imports := NewImports()
	imports.Collect("Any")
	edit, ok := imports.Plan(unit)
	require.True(t, ok)
	assert.Equal(t, len("from __future__ import annotations\n"), edit.Start)
}
