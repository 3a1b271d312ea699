package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryForPath(t *testing.T) {
	r := NewDefaultRegistry()

	cases := map[string]string{
		"a/b/main.py":   "python",
		"lib/index.js":  "javascript",
		"lib/mod.MJS":   "javascript",
		"src/App.java":  "java",
		"cmd/main.go":   "go",
		"src/vec.cpp":   "cpp",
		"include/vec.h": "cpp",
	}
	for path, want := range cases {
		p, ok := r.ForPath(path)
		require.True(t, ok, path)
		assert.Equal(t, want, p.ID(), path)
	}

	_, ok := r.ForPath("README.md")
	assert.False(t, ok)
	assert.False(t, r.Supports("Makefile"))
}

func TestRegistryIDsSorted(t *testing.T) {
	r := NewDefaultRegistry()
	assert.Equal(t, []string{"cpp", "go", "java", "javascript", "python"}, r.IDs())
}

func TestEveryPluginDefinesAllFunctions(t *testing.T) {
	r := NewDefaultRegistry()
	for _, id := range r.IDs() {
		p, _ := r.Get(id)
		_, ok := p.Query(QueryAllFunctions)
		assert.True(t, ok, id)
		assert.NotNil(t, p.TreeSitterLanguage(), id)
		assert.NotNil(t, p.Formatter(), id)
	}
	_, ok := NewJavaPlugin().Query(QueryDocumentedFunction)
	assert.False(t, ok)
	_, ok = NewGoPlugin().Query(QueryTypedFunctions)
	assert.False(t, ok)
}

func TestReservedNames(t *testing.T) {
	py := NewPythonPlugin()
	assert.True(t, py.IsReserved("__init__"))
	assert.False(t, py.IsReserved("_private"))
	assert.False(t, py.IsReserved("____"))

	cpp := NewCppPlugin()
	assert.True(t, cpp.IsReserved("operator+"))
	assert.True(t, cpp.IsReserved("Vec::operator=="))
	assert.False(t, cpp.IsReserved("operational"))
	assert.False(t, NewGoPlugin().IsReserved("__init__"))
}

func TestDocStyles(t *testing.T) {
	assert.Equal(t, DocInBody, NewPythonPlugin().DocStyle())
	assert.Equal(t, DocLeading, NewGoPlugin().DocStyle())
	assert.Equal(t, "leading", DocLeading.String())
	assert.True(t, NewPythonPlugin().SupportsTypeHints())
	assert.False(t, NewJavaPlugin().SupportsTypeHints())
}
