// Package engine runs the documentation pipeline over files: parse, extract,
// plan, apply and optionally write back.
package engine

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/getlawrence/autodoc/internal/extractor"
	"github.com/getlawrence/autodoc/internal/generator"
	"github.com/getlawrence/autodoc/internal/languages"
	"github.com/getlawrence/autodoc/internal/lint"
	"github.com/getlawrence/autodoc/internal/logger"
	"github.com/getlawrence/autodoc/internal/patch"
	"github.com/getlawrence/autodoc/internal/planner"
	"github.com/getlawrence/autodoc/internal/syntax"
	"github.com/getlawrence/autodoc/internal/typehints"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnsupportedLanguage marks files no plugin handles.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrFileTooLarge marks files above Options.MaxFileBytes.
	ErrFileTooLarge = errors.New("file too large")
)

// Options controls which features run.
type Options struct {
	InPlace           bool
	OverwriteExisting bool
	AddTypeHints      bool
	Lint              bool
	// MaxFileBytes skips larger files; zero means no limit.
	MaxFileBytes int64
	// Jobs bounds how many files are processed at once.
	Jobs int
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path     string
	Language string
	Original []byte
	Output   []byte
	Edits    []patch.Edit
	Findings []lint.Finding
	// Failures counts symbols whose generation failed.
	Failures int
	Written  bool
	// Skipped is set when the file was not processed at all.
	Skipped error
	// Err is set when processing was abandoned.
	Err error
}

// Changed reports whether processing produced different bytes.
func (r *FileResult) Changed() bool {
	return r.Err == nil && r.Skipped == nil && !bytes.Equal(r.Original, r.Output)
}

// Count returns how many edits of kind were applied.
func (r *FileResult) Count(kind patch.Kind) int {
	n := 0
	for _, e := range r.Edits {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Engine processes files with one generator and one set of options.
type Engine struct {
	registry *languages.LanguageRegistry
	gen      generator.ContentGenerator
	log      logger.Logger
	opts     Options
}

func New(registry *languages.LanguageRegistry, gen generator.ContentGenerator, log logger.Logger, opts Options) *Engine {
	if registry == nil {
		registry = languages.DefaultRegistry
	}
	if log == nil {
		log = logger.Nop()
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	return &Engine{registry: registry, gen: gen, log: log, opts: opts}
}

// Run processes paths with at most Options.Jobs files in flight. Results are
// returned in the order of paths. The error is non-nil only when ctx ends.
func (e *Engine) Run(ctx context.Context, paths []string) ([]*FileResult, error) {
	results := make([]*FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.ProcessFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// ProcessFile reads path, processes it and writes the result back when
// in-place mode is on and the bytes changed.
func (e *Engine) ProcessFile(ctx context.Context, path string) *FileResult {
	if _, ok := e.registry.ForPath(path); !ok {
		return &FileResult{Path: path, Skipped: errors.Wrapf(ErrUnsupportedLanguage, "%s", path)}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &FileResult{Path: path, Err: errors.Wrapf(err, "stat %s", path)}
	}
	if e.opts.MaxFileBytes > 0 && info.Size() > e.opts.MaxFileBytes {
		return &FileResult{Path: path, Skipped: errors.Wrapf(ErrFileTooLarge, "%s (%d bytes)", path, info.Size())}
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return &FileResult{Path: path, Err: errors.Wrapf(err, "read %s", path)}
	}

	res := e.ProcessSource(ctx, path, src)
	if res.Changed() && e.opts.InPlace {
		if err := os.WriteFile(path, res.Output, info.Mode().Perm()); err != nil {
			res.Err = errors.Wrapf(err, "write %s", path)
			return res
		}
		res.Written = true
	}
	return res
}

// ProcessSource runs the pipeline over an in-memory buffer. src is never
// modified; the new content is in the result's Output.
func (e *Engine) ProcessSource(ctx context.Context, path string, src []byte) *FileResult {
	res := &FileResult{Path: path, Original: src, Output: src}

	plugin, ok := e.registry.ForPath(path)
	if !ok {
		res.Skipped = errors.Wrapf(ErrUnsupportedLanguage, "%s", path)
		return res
	}
	res.Language = plugin.ID()

	unit, err := syntax.Parse(ctx, path, plugin.ID(), plugin.TreeSitterLanguage(), src)
	if err != nil {
		res.Err = err
		return res
	}
	defer unit.Close()
	if unit.HasErrors() {
		e.log.Warnf("%s: parsed with syntax errors, results may be incomplete", path)
	}

	symbols, err := extractor.Extract(unit, plugin)
	if err != nil {
		if errors.Is(err, extractor.ErrNoQueries) {
			res.Skipped = err
		} else {
			res.Err = err
		}
		return res
	}
	e.log.Logf("Processing %s (%s): %d declarations, %d undocumented",
		path, plugin.DisplayName(), len(symbols.Symbols), len(symbols.Undocumented()))

	set := patch.NewEditSet(len(src))
	if err := e.planDocs(ctx, unit, plugin, symbols, set, res); err != nil {
		res.Err = err
		return res
	}
	if e.opts.AddTypeHints && plugin.SupportsTypeHints() {
		if err := e.planTypeHints(ctx, unit, symbols, set, res); err != nil {
			res.Err = err
			return res
		}
	}
	if e.opts.Lint && lint.Supported(plugin.ID()) {
		findings, err := lint.ShortNames(unit, symbols.Symbols)
		if err != nil {
			e.log.Warnf("%s: lint failed: %v", path, err)
		}
		res.Findings = findings
	}

	out, err := patch.Apply(src, set)
	if err != nil {
		res.Err = errors.Wrapf(err, "apply edits to %s", path)
		return res
	}
	res.Output = out
	res.Edits = set.Sorted()
	return res
}

func (e *Engine) planDocs(ctx context.Context, unit *syntax.SourceUnit, plugin languages.LanguagePlugin,
	symbols *extractor.Result, set *patch.EditSet, res *FileResult) error {
	p := planner.New(unit, plugin, e.gen, e.log)

	for _, sym := range symbols.Undocumented() {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.log.Logf("%s:%d: Generating docstring for %s()", res.Path, sym.Line, sym.Name)
		edit, ok, err := p.Missing(ctx, sym)
		if err != nil {
			res.Failures++
			e.log.Warnf("%s:%d: no documentation for %s: %v", res.Path, sym.Line, sym.Name, err)
			continue
		}
		if !ok {
			e.log.Debugf("%s:%d: %s has no body line to document", res.Path, sym.Line, sym.Name)
			continue
		}
		if err := set.Add(edit); err != nil {
			return err
		}
		e.log.Debugf("%s:%d: documented %s", res.Path, sym.Line, sym.Name)
	}

	if !e.opts.OverwriteExisting {
		return nil
	}
	for _, sym := range symbols.Redocumentable() {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.log.Logf("%s:%d: Evaluating docstring for %s()", res.Path, sym.Line, sym.Name)
		edit, ok, err := p.Improve(ctx, sym)
		if err != nil {
			res.Failures++
			e.log.Warnf("%s:%d: could not regenerate documentation for %s: %v", res.Path, sym.Line, sym.Name, err)
			continue
		}
		if !ok {
			continue
		}
		if err := set.Add(edit); err != nil {
			return err
		}
		e.log.Logf("%s:%d: Improving docstring for %s()", res.Path, sym.Line, sym.Name)
	}
	return nil
}

func (e *Engine) planTypeHints(ctx context.Context, unit *syntax.SourceUnit, symbols *extractor.Result,
	set *patch.EditSet, res *FileResult) error {
	imports := typehints.NewImports()
	for _, sym := range symbols.Unannotated() {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.log.Logf("%s:%d: Inferring types for %s()", res.Path, sym.Line, sym.Name)
		hints, err := e.gen.InferTypes(ctx, sym)
		if err != nil {
			res.Failures++
			e.log.Warnf("%s:%d: could not infer types for %s: %v", res.Path, sym.Line, sym.Name, err)
			continue
		}
		if hints.Empty() {
			e.log.Debugf("%s:%d: no types inferred for %s", res.Path, sym.Line, sym.Name)
			continue
		}
		edit, ok := typehints.Rewrite(unit, sym, hints, imports)
		if !ok {
			continue
		}
		if err := set.Add(edit); err != nil {
			return err
		}
		e.log.Logf("%s:%d: Adding type hints to %s()", res.Path, sym.Line, sym.Name)
	}
	if edit, ok := imports.Plan(unit); ok {
		if err := set.Add(edit); err != nil {
			return err
		}
		e.log.Logf("%s: Added typing import for %s", res.Path, strings.Join(imports.Names(), ", "))
	}
	return nil
}
