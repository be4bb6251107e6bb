package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/go-gryphon/internal/errors"
	"github.com/cwbudde/go-gryphon/internal/transpiler"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	summaryStyle = lipgloss.NewStyle().Bold(true)
)

// reportDiagnostics prints the accumulated diagnostics sorted by file,
// range and severity, followed by a summary line.
func reportDiagnostics(context *transpiler.Context) {
	diagnostics := context.Diagnostics.Sorted()
	for _, diagnostic := range diagnostics {
		style := warningStyle
		if diagnostic.Severity == errors.SeverityError {
			style = errorStyle
		}
		fmt.Fprintln(os.Stderr, style.Render(diagnostic.Format()))
	}

	errorCount := context.Diagnostics.ErrorCount()
	warningCount := context.Diagnostics.WarningCount()
	if errorCount > 0 || warningCount > 0 {
		fmt.Fprintln(os.Stderr, summaryStyle.Render(
			fmt.Sprintf("%d error(s), %d warning(s)", errorCount, warningCount)))
	}
}
