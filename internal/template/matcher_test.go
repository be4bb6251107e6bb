package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/go-gryphon/internal/ast"
)

func hole(name, typeName string) ast.Expression {
	return &ast.DeclarationReferenceExpression{Identifier: name, TypeName: typeName}
}

func reference(name, typeName string) ast.Expression {
	return &ast.DeclarationReferenceExpression{Identifier: name, TypeName: typeName}
}

func TestMatchTypedHole(t *testing.T) {
	userTemplate := &Template{
		Pattern: hole("_string", "String"),
	}

	matches, ok := userTemplate.Match(&ast.LiteralStringExpression{Value: "abc"})
	require.True(t, ok)
	assert.Contains(t, matches, "_string")

	_, ok = userTemplate.Match(&ast.LiteralIntExpression{Value: 1})
	assert.False(t, ok)
}

func TestMatchDotCall(t *testing.T) {
	// Pattern: _string.dropLast()
	userTemplate := &Template{
		Pattern: &ast.CallExpression{
			Function: &ast.DotExpression{
				LeftExpression:  hole("_string", "String"),
				RightExpression: reference("dropLast", "() -> String"),
			},
			Parameters: &ast.TupleExpression{},
		},
		Replacement: "${_string}.dropLast(1)",
	}

	expression := &ast.CallExpression{
		Function: &ast.DotExpression{
			LeftExpression:  &ast.LiteralStringExpression{Value: "abc"},
			RightExpression: reference("dropLast", "() -> String"),
		},
		Parameters: &ast.TupleExpression{},
		TypeName:   "String",
	}

	matches, ok := userTemplate.Match(expression)
	require.True(t, ok)
	bound, isLiteral := matches["_string"].(*ast.LiteralStringExpression)
	require.True(t, isLiteral)
	assert.Equal(t, "abc", bound.Value)
}

func TestMatchRejectsDifferentStructure(t *testing.T) {
	userTemplate := &Template{
		Pattern: &ast.BinaryOperatorExpression{
			LeftExpression:  hole("_a", "Int"),
			RightExpression: hole("_b", "Int"),
			OperatorSymbol:  "+",
		},
	}

	_, ok := userTemplate.Match(&ast.BinaryOperatorExpression{
		LeftExpression:  &ast.LiteralIntExpression{Value: 1},
		RightExpression: &ast.LiteralIntExpression{Value: 2},
		OperatorSymbol:  "-",
		TypeName:        "Int",
	})
	assert.False(t, ok)
}

func TestMatchCommutativeLabels(t *testing.T) {
	userTemplate := &Template{
		Pattern: &ast.CallExpression{
			Function: reference("f", ""),
			Parameters: &ast.TupleExpression{Pairs: []ast.LabeledExpression{
				{Label: "a", Expression: hole("_a", "Int")},
				{Label: "b", Expression: hole("_b", "Int")},
			}},
		},
	}

	// Labels in swapped order still match.
	matches, ok := userTemplate.Match(&ast.CallExpression{
		Function: reference("f", ""),
		Parameters: &ast.TupleExpression{Pairs: []ast.LabeledExpression{
			{Label: "b", Expression: &ast.LiteralIntExpression{Value: 2}},
			{Label: "a", Expression: &ast.LiteralIntExpression{Value: 1}},
		}},
	})
	require.True(t, ok)
	assert.Equal(t, int64(1), matches["_a"].(*ast.LiteralIntExpression).Value)
	assert.Equal(t, int64(2), matches["_b"].(*ast.LiteralIntExpression).Value)
}

func TestMatchOptionalLifting(t *testing.T) {
	userTemplate := &Template{Pattern: hole("_value", "Int?")}
	_, ok := userTemplate.Match(reference("x", "Int"))
	assert.True(t, ok)
}

func TestMatchCollectionTypes(t *testing.T) {
	userTemplate := &Template{Pattern: hole("_array", "[Int]")}

	_, ok := userTemplate.Match(reference("xs", "Array<Int>"))
	assert.True(t, ok, "Array<Int> should match [Int]")

	_, ok = userTemplate.Match(reference("xs", "[String]"))
	assert.False(t, ok)
}

func TestMatchAnyType(t *testing.T) {
	userTemplate := &Template{Pattern: hole("_value", "Any")}
	_, ok := userTemplate.Match(reference("x", "SomeClass"))
	assert.True(t, ok)
}

func TestMatchRepeatedHole(t *testing.T) {
	userTemplate := &Template{
		Pattern: &ast.BinaryOperatorExpression{
			LeftExpression:  hole("_a", "Int"),
			RightExpression: hole("_a", "Int"),
			OperatorSymbol:  "+",
		},
	}

	_, ok := userTemplate.Match(&ast.BinaryOperatorExpression{
		LeftExpression:  reference("x", "Int"),
		RightExpression: reference("x", "Int"),
		OperatorSymbol:  "+",
	})
	assert.True(t, ok)

	_, ok = userTemplate.Match(&ast.BinaryOperatorExpression{
		LeftExpression:  reference("x", "Int"),
		RightExpression: reference("y", "Int"),
		OperatorSymbol:  "+",
	})
	assert.False(t, ok)
}

func TestMatchThroughParentheses(t *testing.T) {
	userTemplate := &Template{Pattern: hole("_value", "Int")}
	_, ok := userTemplate.Match(&ast.ParenthesesExpression{
		Expression: &ast.LiteralIntExpression{Value: 5},
	})
	assert.True(t, ok)
}
