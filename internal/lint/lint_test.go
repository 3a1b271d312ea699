package lint

import (
	"context"
	"testing"

	"github.com/getlawrence/autodoc/internal/extractor"
	"github.com/getlawrence/autodoc/internal/languages"
	"github.com/getlawrence/autodoc/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortNames(t *testing.T) {
	src := "def area(w, h, id):\n    ar = w * h\n    x = ar\n    return x\n"
	plugin := languages.NewPythonPlugin()
	unit, err := syntax.Parse(context.Background(), "a.py", plugin.ID(), plugin.TreeSitterLanguage(), []byte(src))
	require.NoError(t, err)
	defer unit.Close()
	res, err := extractor.Extract(unit, plugin)
	require.NoError(t, err)

	findings, err := ShortNames(unit, res.Symbols)
	require.NoError(t, err)

	var got []string
	for _, f := range findings {
		got = append(got, f.String())
	}
	assert.Equal(t, []string{
		"L1:[Naming] Argument 'w' in function 'area' is too short.",
		"L1:[Naming] Argument 'h' in function 'area' is too short.",
		"L2:[Naming] Variable name 'ar' is too short.",
	}, got)
	assert.True(t, Supported("python"))
	assert.False(t, Supported("go"))
}
