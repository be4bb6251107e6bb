package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTree() *SourceFile {
	return &SourceFile{
		Path: "/tmp/test.swift",
		Statements: []Statement{
			&VariableDeclaration{VariableDeclarationData: VariableDeclarationData{
				Identifier: "x",
				TypeName:   "Int",
				IsLet:      true,
				Expression: &LiteralIntExpression{Value: 0},
			}},
			&ReturnStatement{},
		},
	}
}

func TestPrintUnicodeGlyphs(t *testing.T) {
	output := Print(sampleTree(), false)
	assert.True(t, strings.HasPrefix(output, "sourceFile\n"))
	assert.Contains(t, output, "├─")
	assert.Contains(t, output, "└─")
	assert.Contains(t, output, "variableDeclaration")
	assert.Contains(t, output, "returnStatement")
}

func TestPrintAvoidUnicode(t *testing.T) {
	output := Print(sampleTree(), true)
	assert.NotContains(t, output, "├")
	assert.NotContains(t, output, "└")
	assert.Contains(t, output, "|-")
	assert.Contains(t, output, "\\-")
}

func TestPrintKeepsScalarLeaves(t *testing.T) {
	output := Print(sampleTree(), false)
	assert.Contains(t, output, "identifier: x")
	assert.Contains(t, output, "type: Int")
	assert.Contains(t, output, "let")
}

func TestPrintableName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Class Declaration", "classDeclaration"},
		{"Source File", "sourceFile"},
		{"identifier: x", "identifier: x"},
		{"let", "let"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, printableName(tt.input))
	}
}

func TestSwiftTypeOfExpressions(t *testing.T) {
	force := &ForceValueExpression{
		Expression: &DeclarationReferenceExpression{Identifier: "x", TypeName: "Int?"},
	}
	assert.Equal(t, "Int", force.SwiftType())

	dot := &DotExpression{
		LeftExpression:  &TypeExpression{TypeName: "Int"},
		RightExpression: &DeclarationReferenceExpression{Identifier: "min", TypeName: "Int"},
	}
	assert.Equal(t, "Int", dot.SwiftType())

	assert.Equal(t, "String", (&LiteralStringExpression{Value: "s"}).SwiftType())
	assert.Equal(t, "Bool", (&LiteralBoolExpression{Value: true}).SwiftType())
}

func TestCleanUpType(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(Int)", "Int"},
		{"@lvalue Int", "Int"},
		{"inout String", "String"},
		{"Int.Type", "Int"},
		{"(Int, Int)", "(Int, Int)"},
		{"[Int]", "[Int]"},
		{"[String: Int]", "[String: Int]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CleanUpType(tt.input), "input %q", tt.input)
	}
}

func TestOptionalTypeHelpers(t *testing.T) {
	assert.True(t, IsOptionalType("Int?"))
	assert.True(t, IsOptionalType("Optional<Int>"))
	assert.False(t, IsOptionalType("Int"))
	assert.Equal(t, "Int", UnwrapOptionalType("Int?"))
	assert.Equal(t, "Int", UnwrapOptionalType("Optional<Int>"))
	assert.Equal(t, "Int", UnwrapOptionalType("Int"))
}
