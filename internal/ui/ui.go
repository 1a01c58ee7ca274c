// Package ui renders user facing CLI output.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"field-updater/internal/diagnostic"
)

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	success = color.New(color.FgGreen, color.Bold)
	failure = color.New(color.FgRed, color.Bold)
	warning = color.New(color.FgYellow, color.Bold)
	info    = color.New(color.FgCyan)
	muted   = color.New(color.Faint)
)

// Success prints a success message.
func Success(w io.Writer, format string, args ...any) {
	success.Fprintln(w, "✓ "+fmt.Sprintf(format, args...))
}

// Error prints an error message.
func Error(w io.Writer, format string, args ...any) {
	failure.Fprintln(w, "✗ "+fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func Warning(w io.Writer, format string, args ...any) {
	warning.Fprintln(w, "⚠ "+fmt.Sprintf(format, args...))
}

// Info prints an info message.
func Info(w io.Writer, format string, args ...any) {
	info.Fprintln(w, "ℹ "+fmt.Sprintf(format, args...))
}

// Muted prints a low-emphasis message.
func Muted(w io.Writer, format string, args ...any) {
	muted.Fprintln(w, fmt.Sprintf(format, args...))
}

// Header renders a title with a subtitle below it.
func Header(title, subtitle string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(title),
		SecondaryStyle.Render(subtitle),
	)
}

// Table renders rows under headers.
func Table(headers []string, rows [][]string) (string, error) {
	tableData := pterm.TableData{headers}
	tableData = append(tableData, rows...)

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
}

// Diagnostics prints diagnostics, errors first. Infos are only printed
// when withInfos is set.
func Diagnostics(w io.Writer, diags diagnostic.Diagnostics, withInfos bool) {
	for _, d := range diags.All() {
		switch d.Severity {
		case diagnostic.SeverityError:
			Error(w, "%s", d)
		case diagnostic.SeverityWarning:
			Warning(w, "%s", d)
		default:
			if withInfos {
				Muted(w, "  %s", d)
			}
		}
	}
}
