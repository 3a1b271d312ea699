// Package detector finds the source files a run should process.
package detector

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"github.com/getlawrence/autodoc/internal/languages"
	"github.com/go-enry/go-enry/v2"
)

// generatedHeadBytes is how much of a file is read to spot generated code.
const generatedHeadBytes = 8 << 10

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	".git":         true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	"build":        true,
	"dist":         true,
	"target":       true,
}

// Options controls file discovery.
type Options struct {
	Registry *languages.LanguageRegistry
	// Exclude holds doublestar patterns matched against slash-separated
	// paths relative to the walk root.
	Exclude []string
	// IncludeGenerated keeps vendored and generated files.
	IncludeGenerated bool
}

func (o Options) registry() *languages.LanguageRegistry {
	if o.Registry == nil {
		return languages.DefaultRegistry
	}
	return o.Registry
}

// CollectSourceFiles returns the supported source files under root in lexical
// order. A root that names a file is returned as is.
func CollectSourceFiles(root string, opts Options) ([]string, error) {
	for _, p := range opts.Exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Newf("invalid exclude pattern %q", p)
		}
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", root)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	reg := opts.registry()
	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if shouldSkipDir(d.Name(), rel, opts) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || strings.HasPrefix(d.Name(), ".") || !reg.Supports(path) {
			return nil
		}
		if excluded(rel, opts.Exclude) || !headerIsCpp(path) {
			return nil
		}
		if !opts.IncludeGenerated && (enry.IsVendor(rel) || isGenerated(path, rel)) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}
	return files, nil
}

// FilterExcluded drops files whose path relative to root matches one of
// patterns.
func FilterExcluded(root string, files []string, patterns []string) []string {
	if len(patterns) == 0 {
		return files
	}
	kept := files[:0:0]
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err == nil && excluded(filepath.ToSlash(rel), patterns) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func shouldSkipDir(name, rel string, opts Options) bool {
	if skipDirs[name] || strings.HasPrefix(name, ".") {
		return true
	}
	if excluded(rel, opts.Exclude) {
		return true
	}
	return !opts.IncludeGenerated && enry.IsVendor(rel+"/")
}

func excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func isGenerated(path, rel string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head := make([]byte, generatedHeadBytes)
	n, _ := io.ReadFull(f, head)
	return enry.IsGenerated(rel, head[:n])
}

// headerIsCpp rejects .h files that go-enry reads as Objective-C. Every
// other file passes.
func headerIsCpp(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".h") {
		return true
	}
	return DetectLanguageForFile(path) != "Objective-C"
}

// CountLanguages groups files by the display name of the language handling
// them.
func CountLanguages(files []string, reg *languages.LanguageRegistry) map[string]int {
	if reg == nil {
		reg = languages.DefaultRegistry
	}
	counts := make(map[string]int)
	for _, f := range files {
		if p, ok := reg.ForPath(f); ok {
			counts[p.DisplayName()]++
		}
	}
	return counts
}

// DetectLanguageForFile names the language of a file as go-enry sees it,
// whether or not a plugin handles it.
func DetectLanguageForFile(filePath string) string {
	lang, safe := enry.GetLanguageByExtension(filePath)
	if safe && lang != "" {
		return lang
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return ""
	}
	return enry.GetLanguage(filepath.Base(filePath), content)
}

// SortedLanguages returns the keys of counts in order.
func SortedLanguages(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
