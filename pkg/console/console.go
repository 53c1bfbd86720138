// Package console renders diagnostics and status messages for terminals.
// Styling is applied only when stdout is a TTY, so output stays clean when
// piped or captured.
package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/plugdev/manifestlint/pkg/diag"
)

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))

	filePathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BD93F9"))

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	contextLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F8F8F2"))
)

func isTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// applyStyle conditionally applies styling based on TTY status
func applyStyle(style lipgloss.Style, text string) string {
	if isTTY() {
		return style.Render(text)
	}
	return text
}

// ToRelativePath converts an absolute path to one relative to the working
// directory, falling back to the input when that is not possible
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}
	return rel
}

// FormatDiagnostic renders one diagnostic with an IDE-parseable
// file:line:column header and the offending source line with a caret under
// the range start. Internal positions are zero-based; printed positions are
// one-based.
func FormatDiagnostic(file string, d diag.Diagnostic, source string) string {
	var out strings.Builder

	severityStyle := errorStyle
	if d.Severity == diag.SeverityWarning {
		severityStyle = warningStyle
	}

	location := fmt.Sprintf("%s:%d:%d:", ToRelativePath(file), d.Range.Start.Line+1, d.Range.Start.Column+1)
	out.WriteString(applyStyle(filePathStyle, location))
	out.WriteString(" ")
	out.WriteString(applyStyle(severityStyle, d.Severity.String()+":"))
	out.WriteString(" ")
	out.WriteString(d.Message)
	out.WriteString("\n")

	lines := strings.Split(source, "\n")
	if d.Range.Start.Line < len(lines) {
		line := lines[d.Range.Start.Line]
		lineNum := fmt.Sprintf("%4d", d.Range.Start.Line+1)
		out.WriteString(applyStyle(lineNumberStyle, lineNum))
		out.WriteString(" | ")
		out.WriteString(applyStyle(contextLineStyle, line))
		out.WriteString("\n")

		if d.Range.Start.Column <= len(line) {
			caretLen := 1
			if d.Range.End.Line == d.Range.Start.Line && d.Range.End.Column > d.Range.Start.Column {
				caretLen = d.Range.End.Column - d.Range.Start.Column
			}
			out.WriteString(strings.Repeat(" ", len(lineNum)+3+d.Range.Start.Column))
			out.WriteString(applyStyle(errorStyle, strings.Repeat("^", caretLen)))
			out.WriteString("\n")
		}
	}

	return out.String()
}

// FormatErrorMessage formats an error message with styling
func FormatErrorMessage(message string) string {
	return applyStyle(errorStyle, "✗ ") + message
}

// FormatSuccessMessage formats a success message with styling
func FormatSuccessMessage(message string) string {
	return applyStyle(successStyle, "✓ ") + message
}

// FormatInfoMessage formats an informational message
func FormatInfoMessage(message string) string {
	return applyStyle(infoStyle, "ℹ ") + message
}

// FormatWarningMessage formats a warning message
func FormatWarningMessage(message string) string {
	return applyStyle(warningStyle, "⚠ ") + message
}
