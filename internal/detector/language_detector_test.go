package detector

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for filePath, content := range files {
		fullPath := filepath.Join(root, filePath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", filePath, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", filePath, err)
		}
	}
}

func relAll(t *testing.T, root string, files []string) []string {
	t.Helper()
	var out []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestCollectSourceFiles(t *testing.T) {
	tempDir := t.TempDir()
	writeTree(t, tempDir, map[string]string{
		"main.go":                    "package main\n\nfunc main() {}\n",
		"server/handler.go":          "package server\n\nfunc Handler() {}\n",
		"client/client.py":           "def get_data():\n    pass\n",
		"client/tests/test_x.py":     "def test_x():\n    pass\n",
		"frontend/app.js":            "console.log('hello');\n",
		"frontend/node_modules/a.js": "module.exports = 1;\n",
		"config/config.yaml":         "database:\n  host: localhost\n",
		"docs/README.md":             "# Project Documentation\n",
		".hidden/x.py":               "def x():\n    pass\n",
		"api/api.pb.go":              "// Code generated by protoc-gen-go. DO NOT EDIT.\npackage api\n",
	})

	files, err := CollectSourceFiles(tempDir, Options{Exclude: []string{"**/tests/**"}})
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}
	got := strings.Join(relAll(t, tempDir, files), ",")
	want := "client/client.py,frontend/app.js,main.go,server/handler.go"
	if got != want {
		t.Errorf("files = %s, want %s", got, want)
	}

	counts := CountLanguages(files, nil)
	if counts["Go"] != 2 || counts["Python"] != 1 || counts["JavaScript"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if langs := strings.Join(SortedLanguages(counts), ","); langs != "Go,JavaScript,Python" {
		t.Errorf("sorted languages = %s", langs)
	}
}

func TestCollectSourceFilesSingleFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "one.py")
	writeTree(t, tempDir, map[string]string{"one.py": "x = 1\n"})

	files, err := CollectSourceFiles(path, Options{})
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("files = %v", files)
	}
}

func TestCollectSourceFilesRejectsBadPattern(t *testing.T) {
	if _, err := CollectSourceFiles(t.TempDir(), Options{Exclude: []string{"[unclosed"}}); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestDetectLanguageForFile(t *testing.T) {
	tempDir := t.TempDir()
	writeTree(t, tempDir, map[string]string{"deploy.sh": "#!/bin/bash\necho hi\n", "a.py": "pass\n"})

	if lang := DetectLanguageForFile(filepath.Join(tempDir, "a.py")); lang != "Python" {
		t.Errorf("a.py detected as %q", lang)
	}
	if lang := DetectLanguageForFile(filepath.Join(tempDir, "deploy.sh")); lang != "Shell" {
		t.Errorf("deploy.sh detected as %q", lang)
	}
}

func TestCollectSourceFilesSkipsObjectiveCHeaders(t *testing.T) {
	tempDir := t.TempDir()
	writeTree(t, tempDir, map[string]string{
		"include/vec.h":  "#pragma once\n\nnamespace geo {\ntemplate <typename T>\nclass Vec {\npublic:\n  T x;\n};\n}\n",
		"include/view.h": "#import <Foundation/Foundation.h>\n\n@interface View : NSObject\n@property int width;\n@end\n",
	})

	files, err := CollectSourceFiles(tempDir, Options{})
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}
	got := strings.Join(relAll(t, tempDir, files), ",")
	if want := "include/vec.h"; got != want {
		t.Errorf("files = %s, want %s", got, want)
	}
	if lang := DetectLanguageForFile(filepath.Join(tempDir, "include", "view.h")); lang != "Objective-C" {
		t.Errorf("view.h detected as %q", lang)
	}
}

func TestFilterExcluded(t *testing.T) {
	root := filepath.Join("/", "repo")
	files := []string{
		filepath.Join(root, "a.py"),
		filepath.Join(root, "gen", "b.py"),
		filepath.Join(root, "src", "gen", "c.py"),
	}
	got := FilterExcluded(root, files, []string{"gen/**"})
	if len(got) != 2 || got[0] != files[0] || got[1] != files[2] {
		t.Errorf("FilterExcluded = %v", got)
	}
	if out := FilterExcluded(root, files, nil); len(out) != 3 {
		t.Errorf("no patterns should keep everything, got %v", out)
	}
}
