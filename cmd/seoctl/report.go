package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/seo-optimizer/content-optimizer/analyzer"
)

var (
	brandPrimary = lipgloss.Color("#7C3AED")
	brandAccent  = lipgloss.Color("#10B981")
	brandWarning = lipgloss.Color("#F59E0B")
	brandError   = lipgloss.Color("#EF4444")
	brandInfo    = lipgloss.Color("#3B82F6")
	textMuted    = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Foreground(brandPrimary).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(brandAccent).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(brandWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(brandError).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(brandInfo)

	dimStyle = lipgloss.NewStyle().
			Foreground(textMuted)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brandPrimary).
			Padding(0, 2)
)

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return successStyle
	case score >= 40:
		return warningStyle
	default:
		return errorStyle
	}
}

func tipStyle(t analyzer.TipType) lipgloss.Style {
	switch t {
	case analyzer.TipSuccess:
		return successStyle
	case analyzer.TipWarning:
		return warningStyle
	case analyzer.TipError:
		return errorStyle
	default:
		return infoStyle
	}
}

// renderReport formats an analysis for the terminal
func renderReport(r *analyzer.AnalysisResult) string {
	scores := fmt.Sprintf("%s %s   %s %s   %s %s",
		dimStyle.Render("SEO"), scoreStyle(r.SEOScore).Render(fmt.Sprintf("%d/100", r.SEOScore)),
		dimStyle.Render("Readability"), scoreStyle(r.ReadabilityScore).Render(fmt.Sprintf("%d/100", r.ReadabilityScore)),
		dimStyle.Render("Density"), fmt.Sprintf("%.1f%%", r.KeywordDensity),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Content analysis"))
	b.WriteString("\n")
	b.WriteString(scores)
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Suggested keywords"))
	b.WriteString("\n")
	for _, kw := range r.SuggestedKeywords {
		mark := dimStyle.Render("·")
		if kw.Inserted {
			mark = successStyle.Render("✓")
		}
		fmt.Fprintf(&b, "%s %s %s\n", mark, kw.Term,
			dimStyle.Render(fmt.Sprintf("(%s, %s)", kw.Volume, kw.Difficulty)))
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Tips"))
	b.WriteString("\n")
	for _, tip := range r.OptimizationTips {
		fmt.Fprintf(&b, "%s %s\n", tipStyle(tip.Type).Render("["+string(tip.Type)+"]"), tip.Title)
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render(tip.Description))
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
