package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/go-gryphon/internal/ast"
)

func TestDiagnosticFormat(t *testing.T) {
	diagnostic := &Diagnostic{
		Severity: SeverityError,
		Message:  "unknown statement",
		File:     "/tmp/test.swift",
		Range:    &ast.SourceRange{Path: "/tmp/test.swift", LineStart: 3, ColumnStart: 7},
	}
	assert.Equal(t, "/tmp/test.swift:3:7: error: unknown statement", diagnostic.Format())
}

func TestDiagnosticFormatWithContext(t *testing.T) {
	diagnostic := &Diagnostic{
		Severity: SeverityWarning,
		Message:  "native array literal",
		File:     "/tmp/test.swift",
		Range:    &ast.SourceRange{Path: "/tmp/test.swift", LineStart: 2, ColumnStart: 5},
	}
	formatted := diagnostic.FormatWithContext("let a = 1\nlet b = [1]\n")
	assert.Contains(t, formatted, "let b = [1]")
	assert.Contains(t, formatted, "^")
}

func TestListSorting(t *testing.T) {
	list := NewList()
	list.AppendWarning("b.swift", &ast.SourceRange{LineStart: 1, ColumnStart: 1}, "late")
	list.AppendError("a.swift", &ast.SourceRange{LineStart: 9, ColumnStart: 1}, "second")
	list.AppendError("a.swift", &ast.SourceRange{LineStart: 2, ColumnStart: 4}, "first")

	sorted := list.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, "first", sorted[0].Message)
	assert.Equal(t, "second", sorted[1].Message)
	assert.Equal(t, "late", sorted[2].Message)
}

func TestListSeveritySortsErrorsFirst(t *testing.T) {
	list := NewList()
	position := &ast.SourceRange{LineStart: 1, ColumnStart: 1}
	list.AppendWarning("a.swift", position, "warning")
	list.AppendError("a.swift", position, "error")

	sorted := list.Sorted()
	assert.Equal(t, "error", sorted[0].Message)
	assert.Equal(t, "warning", sorted[1].Message)
}

func TestListCountsAndMerge(t *testing.T) {
	list := NewList()
	list.AppendError("a.swift", nil, "boom")
	assert.True(t, list.HasErrors())
	assert.Equal(t, 1, list.ErrorCount())
	assert.Equal(t, 0, list.WarningCount())

	other := NewList()
	other.AppendWarning("b.swift", nil, "hm")
	list.Merge(other)
	assert.Equal(t, 1, list.WarningCount())
}

func TestConcurrentAppend(t *testing.T) {
	list := NewList()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				list.AppendWarning("a.swift", nil, "w")
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	assert.Equal(t, 800, list.WarningCount())
}
