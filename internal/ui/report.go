package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/getlawrence/autodoc/internal/engine"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// RenderFileHeader returns the banner printed above a file preview.
func RenderFileHeader(r *engine.FileResult) string {
	title := fmt.Sprintf("📄 %s", r.Path)
	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("=", lipgloss.Width(title))))
	b.WriteString("\n")
	return b.String()
}

// RenderPreview returns the header followed by the rewritten buffer.
func RenderPreview(r *engine.FileResult) string {
	var b strings.Builder
	b.WriteString(RenderFileHeader(r))
	b.Write(r.Output)
	if len(r.Output) > 0 && r.Output[len(r.Output)-1] != '\n' {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// RenderFindings lists lint findings for a file, one per line.
func RenderFindings(r *engine.FileResult) string {
	if len(r.Findings) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range r.Findings {
		fmt.Fprintf(&b, "%s %s\n", warnStyle.Render("⚠️  "+r.Path), f.String())
	}
	return b.String()
}

// RenderProblems lists files that were skipped or failed.
func RenderProblems(results []*engine.FileResult) string {
	var b strings.Builder
	for _, r := range results {
		switch {
		case r == nil:
		case r.Err != nil:
			fmt.Fprintf(&b, "  %s %s: %v\n", errorStyle.Render("✗"), r.Path, r.Err)
		case r.Skipped != nil:
			fmt.Fprintf(&b, "  %s %s: %v\n", dimStyle.Render("-"), r.Path, r.Skipped)
		}
	}
	return b.String()
}

// RenderSummary returns the end-of-run totals.
func RenderSummary(s engine.Summary, inPlace bool) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("📊 autodoc summary"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", 18))
	b.WriteString("\n")

	changed := fmt.Sprintf("✏️  Changed: %d", s.Changed)
	if inPlace {
		changed += fmt.Sprintf(" (written: %d)", s.Written)
	} else if s.Changed > 0 {
		changed += " (dry run, nothing written)"
	}

	lines := []string{
		fmt.Sprintf("📂 Files processed: %d", s.Files),
		changed,
		fmt.Sprintf("📝 Docstrings: %d", s.Docs),
		fmt.Sprintf("🔤 Signatures annotated: %d", s.Signatures),
		fmt.Sprintf("📥 Imports added: %d", s.Imports),
	}
	if s.Skipped > 0 {
		lines = append(lines, fmt.Sprintf("⏭️  Skipped: %d", s.Skipped))
	}
	if s.Findings > 0 {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("⚠️  Lint findings: %d", s.Findings)))
	}
	if s.Failures > 0 {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("⚠️  Generation failures: %d", s.Failures)))
	}
	if s.Errored > 0 {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("✗ Files failed: %d", s.Errored)))
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")

	if s.Errored == 0 && s.Failures == 0 {
		if s.Changed == 0 {
			b.WriteString(successStyle.Render("✅ Nothing to do, everything is documented."))
		} else {
			b.WriteString(successStyle.Render("✅ Done."))
		}
		b.WriteString("\n")
	}
	return b.String()
}
