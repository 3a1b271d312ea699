// Package planner turns generated documentation into edits against the
// original buffer.
package planner

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/getlawrence/autodoc/internal/extractor"
	"github.com/getlawrence/autodoc/internal/formatter"
	"github.com/getlawrence/autodoc/internal/generator"
	"github.com/getlawrence/autodoc/internal/languages"
	"github.com/getlawrence/autodoc/internal/logger"
	"github.com/getlawrence/autodoc/internal/patch"
	"github.com/getlawrence/autodoc/internal/syntax"
	sitter "github.com/smacker/go-tree-sitter"
)

// defaultIndentUnit is used when a body has no statement on its own line to
// copy the indentation from.
const defaultIndentUnit = "    "

// Planner plans documentation edits for one source unit.
type Planner struct {
	unit   *syntax.SourceUnit
	plugin languages.LanguagePlugin
	format formatter.Formatter
	gen    generator.ContentGenerator
	log    logger.Logger
}

func New(unit *syntax.SourceUnit, plugin languages.LanguagePlugin, gen generator.ContentGenerator, log logger.Logger) *Planner {
	if log == nil {
		log = logger.Nop()
	}
	return &Planner{
		unit:   unit,
		plugin: plugin,
		format: plugin.Formatter(),
		gen:    gen,
		log:    log,
	}
}

// Missing generates documentation for an undocumented symbol and plans its
// insertion. ok is false when nothing should change.
func (p *Planner) Missing(ctx context.Context, sym extractor.Symbol) (patch.Edit, bool, error) {
	text, err := p.gen.Generate(ctx, sym)
	if err != nil {
		return patch.Edit{}, false, err
	}
	if strings.TrimSpace(text) == "" {
		return patch.Edit{}, false, errors.Wrapf(generator.ErrEmptyResponse, "documentation for %s", sym.Name)
	}
	edit, ok := p.Insert(sym, text)
	return edit, ok, nil
}

// Improve asks the generator to judge existing documentation and replaces it
// when judged inadequate. A failed evaluation counts as acceptable.
func (p *Planner) Improve(ctx context.Context, sym extractor.Symbol) (patch.Edit, bool, error) {
	if sym.Doc == nil {
		return patch.Edit{}, false, nil
	}
	acceptable, err := p.gen.Evaluate(ctx, sym, sym.Doc.Text)
	if err != nil {
		p.log.Debugf("evaluation of %s failed, keeping existing documentation: %v", sym.Name, err)
		return patch.Edit{}, false, nil
	}
	if acceptable {
		return patch.Edit{}, false, nil
	}
	text, err := p.gen.Generate(ctx, sym)
	if err != nil {
		return patch.Edit{}, false, err
	}
	if strings.TrimSpace(text) == "" {
		return patch.Edit{}, false, errors.Wrapf(generator.ErrEmptyResponse, "documentation for %s", sym.Name)
	}
	edit, ok := p.Replace(sym, text)
	return edit, ok, nil
}

// Insert plans new documentation for sym.
//
// Body-style documentation replaces the whitespace in front of the first
// statement of the body with the rendered block followed by the statement's
// indentation, so the statement itself is untouched. Leading documentation
// is a pure insertion at the start of the declaration's line.
func (p *Planner) Insert(sym extractor.Symbol, text string) (patch.Edit, bool) {
	src := p.unit.Content
	if p.plugin.DocStyle() == languages.DocInBody {
		stmt := firstStatement(src, sym.Decl)
		if stmt == nil {
			return patch.Edit{}, false
		}
		stmtStart, _ := syntax.Span(stmt)
		// the block takes the body's own indentation, whatever its width or tab use
		indent := syntax.Indentation(src, stmtStart)
		if declStart, _ := syntax.Span(sym.Decl); len(indent) <= syntax.IndentWidth(src, declStart) {
			return patch.Edit{}, false
		}
		lineStart := syntax.LineStart(src, stmtStart)
		return patch.Edit{
			Start:  lineStart,
			End:    stmtStart,
			Text:   p.format.Format(text, indent) + indent,
			Kind:   patch.KindDoc,
			Symbol: sym.Name,
		}, true
	}

	anchorStart, _ := syntax.Span(sym.Anchor)
	lineStart := syntax.LineStart(src, anchorStart)
	return patch.Edit{
		Start:  lineStart,
		End:    lineStart,
		Text:   p.format.Format(text, syntax.Indentation(src, anchorStart)),
		Kind:   patch.KindDoc,
		Symbol: sym.Name,
	}, true
}

// Replace plans the substitution of sym's existing documentation span.
func (p *Planner) Replace(sym extractor.Symbol, text string) (patch.Edit, bool) {
	if sym.Doc == nil {
		return patch.Edit{}, false
	}
	src := p.unit.Content
	indent := syntax.Indentation(src, sym.Doc.Start)
	if !syntax.OnlyWhitespaceBefore(src, sym.Doc.Start) && p.plugin.DocStyle() == languages.DocInBody {
		declStart, _ := syntax.Span(sym.Decl)
		indent = syntax.Indentation(src, declStart) + defaultIndentUnit
	}
	return patch.Edit{
		Start:  sym.Doc.Start,
		End:    sym.Doc.End,
		Text:   strings.TrimSpace(p.format.Format(text, indent)),
		Kind:   patch.KindDoc,
		Symbol: sym.Name,
	}, true
}

// firstStatement returns the first body child that starts its own line.
// Comments sharing the declaration line are skipped; a body whose first
// statement shares that line cannot take a docstring and yields nil.
func firstStatement(src []byte, decl *sitter.Node) *sitter.Node {
	body := decl.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		start, _ := syntax.Span(c)
		if syntax.OnlyWhitespaceBefore(src, start) {
			return c
		}
		if !strings.Contains(c.Type(), "comment") {
			return nil
		}
	}
	return nil
}
