package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderSummary renders the outcome of a run as a styled TUI string.
func RenderSummary(run *domain.RunOutcome) string {
	var b strings.Builder

	files, documents := countEvaluated(run)
	title := headerStyle.Render("yamlvalidator")
	var status string
	if run.Succeeded() {
		status = passStyle.Bold(true).Render("PASS")
	} else {
		status = failStyle.Bold(true).Render("FAIL")
	}
	counts := dimStyle.Render(fmt.Sprintf("%s, %s", plural(files, "file"), plural(documents, "document")))

	b.WriteString(boxStyle.Render(title + "\n\n" + status + "  " + counts))
	b.WriteString("\n\n")

	for _, f := range run.Files {
		renderFile(&b, f)
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	if run.Failure == nil {
		b.WriteString("  " + passStyle.Render("All YAML files are valid.") + "\n")
		return b.String()
	}

	b.WriteString("  " + titleStyle.Render("Failure") + "\n\n")
	fmt.Fprintf(&b, "    %s %s\n", errorTagStyle.Render("error"), run.Failure.Path)
	if run.Failure.Document > 0 {
		fmt.Fprintf(&b, "         %s\n", dimStyle.Render(fmt.Sprintf("document %d", run.Failure.Document)))
	}
	fmt.Fprintf(&b, "         %s\n", dimStyle.Render(run.Failure.Cause))
	b.WriteString("\n  " + faintStyle.Render("Remaining files were not evaluated.") + "\n")

	return b.String()
}

// RenderAbort renders an error that stopped the run before a file failed.
func RenderAbort(err error) string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Run aborted") + "\n\n")
	fmt.Fprintf(&b, "    %s %s\n", errorTagStyle.Render("error"), dimStyle.Render(err.Error()))
	return b.String()
}

func renderFile(b *strings.Builder, f domain.FileOutcome) {
	icon := passStyle.Render("●")
	if !f.Success {
		icon = failStyle.Render("●")
	}
	docs := dimStyle.Render(plural(len(f.Documents), "document"))
	fmt.Fprintf(b, "  %s %s  %s\n", icon, shortenPath(f.Path), docs)
}

func countEvaluated(run *domain.RunOutcome) (files, documents int) {
	for _, f := range run.Files {
		files++
		documents += len(f.Documents)
	}
	return files, documents
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 4 {
		return ".../" + strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}
