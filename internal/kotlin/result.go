// Package kotlin emits Kotlin source text from a fully transpiled Gryphon
// AST. The emitter chooses layout but never discards origin: every output
// line carries the Swift range it derives from, and the error map rewrites
// Kotlin compiler coordinates back into Swift ones.
package kotlin

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-gryphon/internal/ast"
)

// OutputLine is one emitted line of Kotlin together with the source range
// it derives from.
type OutputLine struct {
	Text  string
	Range *ast.SourceRange
}

// TranslationResult is the ordered sequence of output lines for one file.
type TranslationResult struct {
	SourcePath string
	Lines      []OutputLine
}

// Kotlin renders the output text.
func (r *TranslationResult) Kotlin() string {
	var sb strings.Builder
	for _, line := range r.Lines {
		sb.WriteString(line.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ErrorMap renders the error-map file: the source path on the first line,
// then one record per output line mapping the Kotlin range to the Swift
// range it derives from.
func (r *TranslationResult) ErrorMap() string {
	var sb strings.Builder
	sb.WriteString(r.SourcePath)
	sb.WriteString("\n")
	for i, line := range r.Lines {
		kotlinLine := i + 1
		sourceRange := line.Range
		if sourceRange == nil {
			sourceRange = &ast.SourceRange{
				Path:      r.SourcePath,
				LineStart: 1, ColumnStart: 1, LineEnd: 1, ColumnEnd: 1,
			}
		}
		fmt.Fprintf(&sb, "%d:%d:%d:%d:%d:%d:%d:%d\n",
			kotlinLine, 1, kotlinLine, len(line.Text)+1,
			sourceRange.LineStart, sourceRange.ColumnStart,
			sourceRange.LineEnd, sourceRange.ColumnEnd)
	}
	return sb.String()
}

// ContainsErrorSentinel reports whether any emitted line carries the
// <<Error>> marker.
func (r *TranslationResult) ContainsErrorSentinel() bool {
	for _, line := range r.Lines {
		if strings.Contains(line.Text, ErrorSentinel) {
			return true
		}
	}
	return false
}
