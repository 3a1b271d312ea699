package templates

import (
	"strings"
	"testing"
)

func TestTemplateEngine_LoadsTemplates(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}
	want := []string{"docstring_google", "docstring_numpy", "docstring_rst", "evaluate", "infer_types"}
	got := eng.GetAvailableTemplates()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("templates = %v, want %v", got, want)
	}
	if styles := eng.Styles(); strings.Join(styles, ",") != "google,numpy,rst" {
		t.Errorf("styles = %v", styles)
	}
}

func TestTemplateEngine_DocstringPrompt(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}
	out, err := eng.DocstringPrompt("numpy", PromptData{
		Language:     "python",
		LanguageName: "Python",
		Kind:         "function",
		Name:         "add",
		Code:         "def add(a, b):\n    return a + b",
	})
	if err != nil {
		t.Fatalf("DocstringPrompt error: %v", err)
	}
	for _, s := range []string{"NumPy style", "`add`", "```python", "return a + b"} {
		if !strings.Contains(out, s) {
			t.Errorf("prompt missing %q:\n%s", s, out)
		}
	}
}

func TestTemplateEngine_UnknownStyle(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}
	if _, err := eng.DocstringPrompt("epytext", PromptData{}); err == nil {
		t.Fatalf("expected error for unknown style")
	}
}

func TestTemplateEngine_Evaluate(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}
	out, err := eng.Render(PromptEvaluate, PromptData{Language: "go", LanguageName: "Go", Code: "func F() {}", Existing: "// F does things."})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(out, "// F does things.") || !strings.Contains(out, "YES or NO") {
		t.Errorf("unexpected prompt:\n%s", out)
	}
}
