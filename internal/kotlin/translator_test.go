package kotlin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/go-gryphon/internal/ast"
	"github.com/cwbudde/go-gryphon/internal/errors"
)

func emit(t *testing.T, statements ...ast.Statement) string {
	t.Helper()
	translator := NewTranslator(Config{}, errors.NewList())
	result := translator.TranslateFile(&ast.SourceFile{
		Path:       "/tmp/test.swift",
		Statements: statements,
	})
	return result.Kotlin()
}

func reference(name, typeName string) *ast.DeclarationReferenceExpression {
	return &ast.DeclarationReferenceExpression{Identifier: name, TypeName: typeName}
}

func TestEmitGuardShape(t *testing.T) {
	// The rewritten form of: guard x == 0 else { println("--"); return }
	output := emit(t,
		&ast.IfStatement{IfStatementData: ast.IfStatementData{
			Conditions: []ast.IfCondition{{
				Expression: &ast.PrefixUnaryExpression{
					Expression: &ast.ParenthesesExpression{
						Expression: &ast.BinaryOperatorExpression{
							LeftExpression:  reference("x", "Int"),
							RightExpression: &ast.LiteralIntExpression{Value: 0},
							OperatorSymbol:  "==",
							TypeName:        "Bool",
						},
					},
					OperatorSymbol: "!",
					TypeName:       "Bool",
				},
			}},
			Statements: []ast.Statement{
				&ast.ExpressionStatement{Expression: &ast.CallExpression{
					Function: reference("println", "(Any) -> ()"),
					Parameters: &ast.TupleExpression{Pairs: []ast.LabeledExpression{{
						Expression: &ast.LiteralStringExpression{Value: "--"},
					}}},
				}},
				&ast.ReturnStatement{},
			},
		}},
	)

	assert.Contains(t, output, "if (!(x == 0)) {")
	assert.Contains(t, output, "println(\"--\")")
	assert.Contains(t, output, "return")
}

func TestEmitRangeCall(t *testing.T) {
	output := emit(t, &ast.ExpressionStatement{Expression: &ast.CallExpression{
		Function: reference("println", "(Any) -> ()"),
		Parameters: &ast.TupleExpression{Pairs: []ast.LabeledExpression{{
			Expression: &ast.BinaryOperatorExpression{
				LeftExpression: &ast.DotExpression{
					LeftExpression:  &ast.TypeExpression{TypeName: "Int"},
					RightExpression: reference("MIN_VALUE", "Int"),
				},
				RightExpression: &ast.LiteralIntExpression{Value: 0},
				OperatorSymbol:  "until",
				TypeName:        "Range<Int>",
			},
		}}},
	}})

	assert.Contains(t, output, "println(Int.MIN_VALUE until 0)")
}

func TestEmitIfLetShape(t *testing.T) {
	output := emit(t,
		&ast.VariableDeclaration{VariableDeclarationData: ast.VariableDeclarationData{
			Identifier: "a",
			TypeName:   "Int?",
			IsLet:      true,
			Expression: reference("x", "Int?"),
		}},
		&ast.IfStatement{IfStatementData: ast.IfStatementData{
			Conditions: []ast.IfCondition{{
				Expression: &ast.BinaryOperatorExpression{
					LeftExpression:  reference("a", "Int?"),
					RightExpression: &ast.NilLiteralExpression{},
					OperatorSymbol:  "!=",
					TypeName:        "Bool",
				},
			}},
			Statements: []ast.Statement{&ast.ExpressionStatement{Expression: &ast.CallExpression{
				Function: reference("println", "(Any) -> ()"),
				Parameters: &ast.TupleExpression{Pairs: []ast.LabeledExpression{{
					Expression: reference("a", "Int?"),
				}}},
			}}},
		}},
	)

	assert.Contains(t, output, "val a: Int? = x")
	assert.Contains(t, output, "if (a != null) {")
	assert.Contains(t, output, "println(a)")
}

func TestEmitWhenWithRanges(t *testing.T) {
	output := emit(t, &ast.SwitchStatement{
		Expression: reference("x", "Int"),
		Cases: []ast.SwitchCase{
			{
				Expressions: []ast.Expression{&ast.BinaryOperatorExpression{
					LeftExpression:  &ast.LiteralIntExpression{Value: 4},
					RightExpression: &ast.LiteralIntExpression{Value: 5},
					OperatorSymbol:  "..",
					TypeName:        "ClosedRange<Int>",
				}},
				Statements: []ast.Statement{&ast.ExpressionStatement{Expression: &ast.CallExpression{
					Function: reference("println", "(Any) -> ()"),
					Parameters: &ast.TupleExpression{Pairs: []ast.LabeledExpression{{
						Expression: &ast.LiteralStringExpression{Value: "Four or five"},
					}}},
				}}},
			},
			{
				Statements: []ast.Statement{&ast.BreakStatement{}},
			},
		},
	})

	assert.Contains(t, output, "when (x) {")
	assert.Contains(t, output, `in 4..5 -> println("Four or five")`)
	assert.Contains(t, output, "else -> break")
}

func TestEmitWhenAsExpression(t *testing.T) {
	output := emit(t, &ast.SwitchStatement{
		ConvertsToExpression: &ast.AssignmentStatement{LeftHand: reference("y", "Int")},
		Expression:           reference("x", "Int"),
		Cases: []ast.SwitchCase{
			{
				Expressions: []ast.Expression{&ast.LiteralIntExpression{Value: 1}},
				Statements: []ast.Statement{&ast.ExpressionStatement{
					Expression: &ast.LiteralIntExpression{Value: 10},
				}},
			},
			{
				Statements: []ast.Statement{&ast.ExpressionStatement{
					Expression: &ast.LiteralIntExpression{Value: 20},
				}},
			},
		},
	})

	assert.Contains(t, output, "y = when (x) {")
	assert.Contains(t, output, "1 -> 10")
	assert.Contains(t, output, "else -> 20")
}

func TestEmitEnumClass(t *testing.T) {
	output := emit(t, &ast.EnumDeclaration{
		EnumName: "Direction",
		Elements: []*ast.EnumElement{
			{Name: "north"},
			{Name: "southWest"},
		},
	})

	assert.Contains(t, output, "enum class Direction {")
	assert.Contains(t, output, "NORTH,")
	assert.Contains(t, output, "SOUTH_WEST;")
}

func TestEmitSealedClass(t *testing.T) {
	output := emit(t, &ast.EnumDeclaration{
		EnumName: "OtherError",
		Elements: []*ast.EnumElement{{
			Name:             "oneInt",
			AssociatedValues: []ast.LabeledType{{Label: "int", Type: "Int"}},
		}},
	})

	assert.Contains(t, output, "sealed class OtherError {")
	assert.Contains(t, output, "data class OneInt(val int: Int) : OtherError()")
}

func TestEmitSealedCasePattern(t *testing.T) {
	translator := NewTranslator(Config{
		IsSealedEnum: func(name string) bool { return name == "OtherError" },
	}, errors.NewList())

	result := translator.TranslateFile(&ast.SourceFile{
		Path: "/tmp/test.swift",
		Statements: []ast.Statement{&ast.SwitchStatement{
			Expression: reference("error", "OtherError"),
			Cases: []ast.SwitchCase{{
				Expressions: []ast.Expression{&ast.DotExpression{
					LeftExpression:  &ast.TypeExpression{TypeName: "OtherError"},
					RightExpression: reference("OneInt", "OtherError"),
				}},
				Statements: []ast.Statement{&ast.BreakStatement{}},
			}},
		}},
	})

	assert.Contains(t, result.Kotlin(), "is OtherError.OneInt -> break")
}

func TestEmitTemplateExpression(t *testing.T) {
	output := emit(t, &ast.ExpressionStatement{Expression: &ast.TemplateExpression{
		Pattern: "${_string}.dropLast(1)",
		Matches: map[string]ast.Expression{
			"_string": &ast.LiteralStringExpression{Value: "abc"},
		},
	}})
	assert.Contains(t, output, `"abc".dropLast(1)`)
}

func TestEmitTemplateLongestNameFirst(t *testing.T) {
	output := emit(t, &ast.ExpressionStatement{Expression: &ast.TemplateExpression{
		Pattern: "${_closure2}(${_closure})",
		Matches: map[string]ast.Expression{
			"_closure":  reference("f", ""),
			"_closure2": reference("g", ""),
		},
	}})
	assert.Contains(t, output, "g(f)")
}

func TestEmitOptionalChainAndLet(t *testing.T) {
	output := emit(t, &ast.ExpressionStatement{Expression: &ast.CallExpression{
		Function: &ast.DotExpression{
			LeftExpression:  &ast.OptionalExpression{Expression: reference("maybe", "Int?")},
			RightExpression: reference("let", ""),
		},
		Parameters: &ast.TupleExpression{Pairs: []ast.LabeledExpression{{
			Expression: &ast.ClosureExpression{
				Statements: []ast.Statement{&ast.ExpressionStatement{
					Expression: reference("it", "Int"),
				}},
			},
		}}},
	}})
	assert.Contains(t, output, "maybe?.let { it }")
}

func TestEmitForceUnwrap(t *testing.T) {
	output := emit(t, &ast.ExpressionStatement{Expression: &ast.ForceValueExpression{
		Expression: reference("x", "Int?"),
	}})
	assert.Contains(t, output, "x!!")
}

func TestEmitInterpolatedString(t *testing.T) {
	output := emit(t, &ast.ExpressionStatement{Expression: &ast.InterpolatedStringLiteralExpression{
		Expressions: []ast.Expression{
			&ast.LiteralStringExpression{Value: "pre"},
			reference("x", "Int"),
			&ast.LiteralStringExpression{Value: "post"},
		},
	}})
	assert.Contains(t, output, `"pre${x}post"`)
}

func TestEmitElvisAndPrecedence(t *testing.T) {
	output := emit(t, &ast.ExpressionStatement{Expression: &ast.BinaryOperatorExpression{
		LeftExpression: &ast.BinaryOperatorExpression{
			LeftExpression:  &ast.LiteralIntExpression{Value: 1},
			RightExpression: &ast.LiteralIntExpression{Value: 2},
			OperatorSymbol:  "+",
			TypeName:        "Int",
		},
		RightExpression: &ast.BinaryOperatorExpression{
			LeftExpression:  &ast.LiteralIntExpression{Value: 3},
			RightExpression: &ast.LiteralIntExpression{Value: 4},
			OperatorSymbol:  "+",
			TypeName:        "Int",
		},
		OperatorSymbol: "*",
		TypeName:       "Int",
	}})
	assert.Contains(t, output, "(1 + 2) * (3 + 4)")
}

func TestEmitStructAsDataClass(t *testing.T) {
	output := emit(t, &ast.StructDeclaration{
		StructName: "Point",
		Members: []ast.Statement{
			&ast.VariableDeclaration{VariableDeclarationData: ast.VariableDeclarationData{
				Identifier: "x", TypeName: "Int", IsLet: true,
			}},
			&ast.VariableDeclaration{VariableDeclarationData: ast.VariableDeclarationData{
				Identifier: "y", TypeName: "Int", IsLet: true,
			}},
		},
	})
	assert.Contains(t, output, "data class Point(val x: Int, val y: Int)")
}

func TestEmitSingleExpressionFunction(t *testing.T) {
	output := emit(t, &ast.FunctionDeclaration{FunctionDeclarationData: ast.FunctionDeclarationData{
		Prefix:     "double",
		Parameters: []ast.FunctionParameter{{Label: "x", Type: "Int"}},
		ReturnType: "Int",
		HasBody:    true,
		Statements: []ast.Statement{&ast.ExpressionStatement{
			Expression: &ast.BinaryOperatorExpression{
				LeftExpression:  reference("x", "Int"),
				RightExpression: &ast.LiteralIntExpression{Value: 2},
				OperatorSymbol:  "*",
				TypeName:        "Int",
			},
		}},
	}})
	assert.Contains(t, output, "fun double(x: Int): Int = x * 2")
}

func TestEmitEqualsOverride(t *testing.T) {
	output := emit(t, &ast.FunctionDeclaration{FunctionDeclarationData: ast.FunctionDeclarationData{
		Prefix:      "equals",
		Annotations: "override",
		Parameters:  []ast.FunctionParameter{{Label: "other", Type: "Any?"}},
		ReturnType:  "Bool",
		HasBody:     true,
		Statements: []ast.Statement{
			&ast.IfStatement{IfStatementData: ast.IfStatementData{
				Conditions: []ast.IfCondition{{Expression: &ast.BinaryOperatorExpression{
					LeftExpression:  reference("other", "Any?"),
					RightExpression: &ast.TypeExpression{TypeName: "Point"},
					OperatorSymbol:  "!is",
					TypeName:        "Bool",
				}}},
				Statements: []ast.Statement{&ast.ReturnStatement{
					Expression: &ast.LiteralBoolExpression{Value: false},
				}},
			}},
			&ast.ReturnStatement{Expression: &ast.LiteralBoolExpression{Value: true}},
		},
	}})

	assert.Contains(t, output, "override fun equals(other: Any?): Boolean {")
	assert.Contains(t, output, "if (other !is Point) {")
	assert.Contains(t, output, "return false")
}

func TestEmitOperatorDeclarationGuard(t *testing.T) {
	diagnostics := errors.NewList()
	translator := NewTranslator(Config{}, diagnostics)
	result := translator.TranslateFile(&ast.SourceFile{
		Path: "/tmp/test.swift",
		Statements: []ast.Statement{&ast.FunctionDeclaration{FunctionDeclarationData: ast.FunctionDeclarationData{
			Prefix:     "+",
			ReturnType: "Int",
			HasBody:    true,
		}}},
	})

	assert.True(t, result.ContainsErrorSentinel())
	assert.True(t, diagnostics.HasErrors())
}

func TestEmitDeferAsTryFinally(t *testing.T) {
	output := emit(t, &ast.FunctionDeclaration{FunctionDeclarationData: ast.FunctionDeclarationData{
		Prefix:  "f",
		HasBody: true,
		Statements: []ast.Statement{
			&ast.DeferStatement{Statements: []ast.Statement{
				&ast.ExpressionStatement{Expression: reference("cleanup", "")},
			}},
			&ast.ReturnStatement{},
		},
	}})

	assert.Contains(t, output, "try {")
	assert.Contains(t, output, "} finally {")
	assert.Contains(t, output, "cleanup")
}

func TestEmitErrorSentinel(t *testing.T) {
	translator := NewTranslator(Config{}, errors.NewList())
	result := translator.TranslateFile(&ast.SourceFile{
		Path:       "/tmp/test.swift",
		Statements: []ast.Statement{&ast.ErrorStatement{}},
	})
	assert.True(t, result.ContainsErrorSentinel())
	assert.Contains(t, result.Kotlin(), "<<Error>>")
}

func TestEmitMultilineString(t *testing.T) {
	output := emit(t, &ast.ExpressionStatement{Expression: &ast.LiteralStringExpression{
		Value:       "line1\nline2",
		IsMultiline: true,
	}})
	assert.Contains(t, output, `"""`)
}

func TestErrorMapFormat(t *testing.T) {
	translator := NewTranslator(Config{}, errors.NewList())
	result := translator.TranslateFile(&ast.SourceFile{
		Path: "/tmp/test.swift",
		Statements: []ast.Statement{&ast.ExpressionStatement{Expression: &ast.CallExpression{
			Function:   reference("println", "(Any) -> ()"),
			Parameters: &ast.TupleExpression{},
			Range: &ast.SourceRange{
				Path:      "/tmp/test.swift",
				LineStart: 3, ColumnStart: 1, LineEnd: 3, ColumnEnd: 10,
			},
		}}},
	})

	errorMap := result.ErrorMap()
	lines := strings.Split(strings.TrimSuffix(errorMap, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "/tmp/test.swift", lines[0])
	assert.Equal(t, "1:1:1:10:3:1:3:10", lines[1])
}

// TestSourceRangePreservation checks that every output line carries a
// source range for the input file.
func TestSourceRangePreservation(t *testing.T) {
	translator := NewTranslator(Config{}, errors.NewList())
	result := translator.TranslateFile(&ast.SourceFile{
		Path: "/tmp/test.swift",
		Statements: []ast.Statement{
			&ast.ExpressionStatement{Expression: &ast.CallExpression{
				Function:   reference("println", "(Any) -> ()"),
				Parameters: &ast.TupleExpression{},
				Range: &ast.SourceRange{
					Path:      "/tmp/test.swift",
					LineStart: 1, ColumnStart: 1, LineEnd: 1, ColumnEnd: 5,
				},
			}},
			&ast.ReturnStatement{},
		},
	})

	for _, line := range result.Lines {
		require.NotNil(t, line.Range)
		assert.Equal(t, "/tmp/test.swift", line.Range.Path)
	}
}

func TestTranslateTypeMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Bool", "Boolean"},
		{"Int", "Int"},
		{"Character", "Char"},
		{"Int?", "Int?"},
		{"[Int]", "MutableList<Int>"},
		{"[String: Int]", "MutableMap<String, Int>"},
		{"Array<Int>", "MutableList<Int>"},
		{"Optional<Int>", "Int?"},
		{"(Int) -> Bool", "(Int) -> Boolean"},
		{"()", "Unit"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, TranslateType(tt.input), "input %q", tt.input)
	}
}
