// Package errors collects and formats the diagnostics produced by the
// translation pipeline. Diagnostics carry a severity, the source file and
// range they refer to, and a message; they are accumulated concurrently
// during translation and printed sorted at end of run.
package errors

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cwbudde/go-gryphon/internal/ast"
)

// Severity distinguishes warnings from errors. Errors make the run fail;
// warnings do not.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Severity Severity
	Message  string
	File     string
	Range    *ast.SourceRange
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format()
}

// Format renders the diagnostic as file:line:column: severity: message.
func (d *Diagnostic) Format() string {
	var sb strings.Builder
	if d.File != "" {
		sb.WriteString(d.File)
		if d.Range != nil {
			fmt.Fprintf(&sb, ":%d:%d", d.Range.LineStart, d.Range.ColumnStart)
		}
		sb.WriteString(": ")
	}
	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	return sb.String()
}

// FormatWithContext renders the diagnostic with the offending source line
// and a caret indicator, when the source text is available.
func (d *Diagnostic) FormatWithContext(source string) string {
	var sb strings.Builder
	sb.WriteString(d.Format())
	if source == "" || d.Range == nil {
		return sb.String()
	}

	lines := strings.Split(source, "\n")
	lineNumber := d.Range.LineStart
	if lineNumber < 1 || lineNumber > len(lines) {
		return sb.String()
	}

	prefix := fmt.Sprintf("%4d | ", lineNumber)
	sb.WriteString("\n")
	sb.WriteString(prefix)
	sb.WriteString(lines[lineNumber-1])
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(prefix)+d.Range.ColumnStart-1))
	sb.WriteString("^")
	return sb.String()
}

// List accumulates diagnostics. Append is safe for concurrent use; the
// pipeline's phases report from one goroutine per file.
type List struct {
	mutex       sync.Mutex
	diagnostics []*Diagnostic
}

// NewList creates an empty diagnostic list.
func NewList() *List {
	return &List{}
}

// Append adds a diagnostic to the list.
func (l *List) Append(diagnostic *Diagnostic) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.diagnostics = append(l.diagnostics, diagnostic)
}

// AppendError records an error diagnostic.
func (l *List) AppendError(file string, sourceRange *ast.SourceRange, format string, args ...any) {
	l.Append(&Diagnostic{
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
		Range:    sourceRange,
	})
}

// AppendWarning records a warning diagnostic.
func (l *List) AppendWarning(file string, sourceRange *ast.SourceRange, format string, args ...any) {
	l.Append(&Diagnostic{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
		Range:    sourceRange,
	})
}

// Merge appends every diagnostic of other to this list.
func (l *List) Merge(other *List) {
	for _, diagnostic := range other.All() {
		l.Append(diagnostic)
	}
}

// All returns a copy of the accumulated diagnostics, unsorted.
func (l *List) All() []*Diagnostic {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	result := make([]*Diagnostic, len(l.diagnostics))
	copy(result, l.diagnostics)
	return result
}

// Sorted returns the diagnostics sorted by (file, range, severity), the
// presentation order.
func (l *List) Sorted() []*Diagnostic {
	result := l.All()
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.File != b.File {
			return a.File < b.File
		}
		aLine, aColumn := rangeKey(a.Range)
		bLine, bColumn := rangeKey(b.Range)
		if aLine != bLine {
			return aLine < bLine
		}
		if aColumn != bColumn {
			return aColumn < bColumn
		}
		return a.Severity > b.Severity
	})
	return result
}

func rangeKey(sourceRange *ast.SourceRange) (int, int) {
	if sourceRange == nil {
		return 0, 0
	}
	return sourceRange.LineStart, sourceRange.ColumnStart
}

// ErrorCount returns the number of error-severity diagnostics.
func (l *List) ErrorCount() int {
	count := 0
	for _, diagnostic := range l.All() {
		if diagnostic.Severity == SeverityError {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-severity diagnostics.
func (l *List) WarningCount() int {
	count := 0
	for _, diagnostic := range l.All() {
		if diagnostic.Severity == SeverityWarning {
			count++
		}
	}
	return count
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (l *List) HasErrors() bool {
	return l.ErrorCount() > 0
}
