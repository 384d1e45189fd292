package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/newscheck/internal/client/banner"
	"github.com/dmitrijs2005/newscheck/internal/client/models"
)

var (
	realStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	fakeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("88")).
			Padding(0, 1)

	bannerFadeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("138")).
			Padding(0, 1)
)

// renderVerdict formats a classification verdict with its confidence, e.g.
// "Real (97.2%)".
func renderVerdict(result string, confidence float64) string {
	label := fmt.Sprintf("%s (%.1f%%)", result, confidence*100)
	switch result {
	case models.ResultReal:
		return realStyle.Render(label)
	case models.ResultFake:
		return fakeStyle.Render(label)
	default:
		return label
	}
}

// renderBanner formats the error banner according to its phase. An empty
// string is returned for a hidden banner.
func renderBanner(st banner.State) string {
	switch st.Phase {
	case banner.PhaseVisible:
		return bannerStyle.Render(st.Message)
	case banner.PhaseFadingOut:
		return bannerFadeStyle.Render(st.Message)
	default:
		return ""
	}
}

// renderHistoryRow formats a single history list row with its 1-based index.
func renderHistoryRow(idx int, s models.AnalysisSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%3d. %s  %s", idx, renderVerdict(s.Result, s.Confidence), s.Text)
	if s.Timestamp != "" {
		b.WriteString("  " + dimStyle.Render(s.Timestamp))
	}
	return b.String()
}

// renderFull formats an expanded analysis record.
func renderFull(a *models.AnalysisFull) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s\n", renderVerdict(a.Result, a.Confidence))
	if a.Timestamp != "" {
		fmt.Fprintf(&b, "Analyzed: %s\n", dimStyle.Render(a.Timestamp))
	}
	b.WriteString(a.Text)
	return b.String()
}
