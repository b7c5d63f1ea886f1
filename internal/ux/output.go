// Package ux renders analyzer results for the terminal.
package ux

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/njchilds90/polylead"
)

// Palette
var (
	ColorAccent  = lipgloss.Color("#7AA2F7") // leading term, titles
	ColorPrimary = lipgloss.Color("#9ECE6A") // values
	ColorBorder  = lipgloss.Color("#565F89")
	ColorMuted   = lipgloss.Color("#737AA2")

	ColorSuccess = lipgloss.Color("#9ECE6A")
	ColorWarning = lipgloss.Color("#E0AF68")
	ColorError   = lipgloss.Color("#F7768E")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Muted     lipgloss.Style
	Highlight lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style

	Box      lipgloss.Style
	ErrorBox lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
	Label:     lipgloss.NewStyle().Foreground(ColorMuted).Width(12),
	Value:     lipgloss.NewStyle().Foreground(ColorPrimary),
	Muted:     lipgloss.NewStyle().Foreground(ColorMuted),
	Highlight: lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(0, 1),
}

const (
	IconSuccess = "✓"
	IconError   = "✗"
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, Styles.Label.Render(label), Styles.Value.Render(value))
}

// FormatAnalysis renders an analysis as a boxed report: the leading term
// first, then its coefficient and degree, the known variables and every
// surviving term group.
func FormatAnalysis(a *polylead.Analysis) string {
	d := a.Render()
	groups := make([]string, len(a.Groups))
	for i, g := range a.Groups {
		groups[i] = fmt.Sprintf("%s (deg %d)", polylead.Render(g, nil).Pretty, g.Degree)
	}
	if len(groups) == 0 {
		groups = []string{"none, every term cancelled"}
	}

	lines := []string{
		Styles.Title.Render("Leading term ") + Styles.Highlight.Render(d.Pretty),
		"",
		row("Input", a.OriginalExpression),
		row("Normalized", a.NormalizedExpression),
		row("Coefficient", d.Coefficient),
		row("Degree", fmt.Sprint(d.Degree)),
		row("Variables", d.Variables),
		row("Groups", strings.Join(groups, ", ")),
	}
	return Styles.Box.Render(strings.Join(lines, "\n"))
}

// FormatError renders a rejected expression with its code and, when the
// position is known, a caret under the offending character.
func FormatError(expr string, err error) string {
	lines := []string{Styles.Error.Render(IconError+" ") + err.Error()}
	var ve *polylead.ValidationError
	if errors.As(err, &ve) {
		lines = append(lines, Styles.Muted.Render("code: "+ve.Kind.Code()))
		if ve.Pos >= 0 && ve.Pos <= len(expr) && expr != "" {
			lines = append(lines, "", "  "+expr, "  "+strings.Repeat(" ", ve.Pos)+Styles.Warning.Render("^"))
		}
	}
	return Styles.ErrorBox.Render(strings.Join(lines, "\n"))
}

// FormatValid renders the result of a successful pre-flight check.
func FormatValid(expr string) string {
	return Styles.Success.Render(IconSuccess+" valid") + Styles.Muted.Render("  "+expr)
}
