package transpiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/go-gryphon/internal/ast"
	"github.com/cwbudde/go-gryphon/internal/template"
)

func newTestContext() (*Context, *FileScope) {
	context := NewContext()
	scope := NewFileScope("/tmp/test.swift")
	return context, scope
}

func sourceFile(statements ...ast.Statement) *ast.SourceFile {
	return &ast.SourceFile{Path: "/tmp/test.swift", Statements: statements}
}

func reference(name, typeName string) *ast.DeclarationReferenceExpression {
	return &ast.DeclarationReferenceExpression{Identifier: name, TypeName: typeName}
}

func TestRecordEnumsPass(t *testing.T) {
	context, scope := newTestContext()
	file := sourceFile(
		&ast.EnumDeclaration{EnumName: "Direction", Elements: []*ast.EnumElement{{Name: "north"}}},
		&ast.EnumDeclaration{EnumName: "OtherError", Elements: []*ast.EnumElement{{
			Name:             "oneInt",
			AssociatedValues: []ast.LabeledType{{Label: "int", Type: "Int"}},
		}}},
	)

	NewRecordEnumsPass(context, scope).Rewrite(file)
	context.Merge([]*FileScope{scope})

	assert.True(t, context.IsEnum("Direction"))
	assert.True(t, context.IsEnum("OtherError"))
	assert.False(t, context.IsSealedEnum("Direction"))
	assert.True(t, context.IsSealedEnum("OtherError"))
}

func TestRecordTemplatesPass(t *testing.T) {
	context, scope := newTestContext()
	scope.IsTemplate = true
	file := sourceFile(
		&ast.ExpressionStatement{Expression: &ast.CallExpression{
			Function:   reference("_string", "String"),
			Parameters: &ast.TupleExpression{},
		}},
		&ast.ExpressionStatement{Expression: &ast.LiteralStringExpression{
			Value: "${_string}.dropLast(1)",
		}},
	)

	NewRecordTemplatesPass(context, scope).Rewrite(file)
	require.Len(t, scope.Templates, 1)
	assert.Equal(t, "${_string}.dropLast(1)", scope.Templates[0].Replacement)
}

func TestRewriteGuardsPass(t *testing.T) {
	context, scope := newTestContext()
	guard := &ast.IfStatement{IfStatementData: ast.IfStatementData{
		IsGuard: true,
		Conditions: []ast.IfCondition{{
			Expression: &ast.BinaryOperatorExpression{
				LeftExpression:  reference("x", "Int"),
				RightExpression: &ast.LiteralIntExpression{Value: 0},
				OperatorSymbol:  "==",
				TypeName:        "Bool",
			},
		}},
		Statements: []ast.Statement{&ast.ReturnStatement{}},
	}}

	result := NewRewriteGuardsPass(context, scope).Rewrite(sourceFile(guard))
	require.Len(t, result.Statements, 1)

	ifStatement, ok := result.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	assert.False(t, ifStatement.IsGuard)
	require.Len(t, ifStatement.Conditions, 1)

	negation, ok := ifStatement.Conditions[0].Expression.(*ast.PrefixUnaryExpression)
	require.True(t, ok)
	assert.Equal(t, "!", negation.OperatorSymbol)
	assert.IsType(t, &ast.ParenthesesExpression{}, negation.Expression)
}

func TestRewriteIfLetPass(t *testing.T) {
	context, scope := newTestContext()
	ifLet := &ast.IfStatement{IfStatementData: ast.IfStatementData{
		Conditions: []ast.IfCondition{{
			Declaration: &ast.VariableDeclarationData{
				Identifier: "a",
				TypeName:   "Int",
				IsLet:      true,
				Expression: reference("x", "Int?"),
			},
		}},
		Statements: []ast.Statement{&ast.ReturnStatement{}},
	}}

	result := NewRewriteIfLetPass(context, scope).Rewrite(sourceFile(ifLet))
	require.Len(t, result.Statements, 2)

	declaration, ok := result.Statements[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "a", declaration.Identifier)
	assert.Equal(t, "Int?", declaration.TypeName)

	ifStatement, ok := result.Statements[1].(*ast.IfStatement)
	require.True(t, ok)
	check, ok := ifStatement.Conditions[0].Expression.(*ast.BinaryOperatorExpression)
	require.True(t, ok)
	assert.Equal(t, "!=", check.OperatorSymbol)
	assert.IsType(t, &ast.NilLiteralExpression{}, check.RightExpression)
}

func TestRewriteSwitchAssignmentHoisting(t *testing.T) {
	context, scope := newTestContext()
	switchStatement := &ast.SwitchStatement{
		Expression: reference("x", "Int"),
		Cases: []ast.SwitchCase{
			{
				Expressions: []ast.Expression{&ast.LiteralIntExpression{Value: 1}},
				Statements: []ast.Statement{&ast.AssignmentStatement{
					LeftHand:  reference("y", "Int"),
					RightHand: &ast.LiteralIntExpression{Value: 10},
				}},
			},
			{
				Statements: []ast.Statement{&ast.AssignmentStatement{
					LeftHand:  reference("y", "Int"),
					RightHand: &ast.LiteralIntExpression{Value: 20},
				}},
			},
		},
	}

	result := NewRewriteSwitchPass(context, scope).Rewrite(sourceFile(switchStatement))
	rewritten := result.Statements[0].(*ast.SwitchStatement)
	require.NotNil(t, rewritten.ConvertsToExpression)
	assert.IsType(t, &ast.AssignmentStatement{}, rewritten.ConvertsToExpression)

	for _, switchCase := range rewritten.Cases {
		last := switchCase.Statements[len(switchCase.Statements)-1]
		assert.IsType(t, &ast.ExpressionStatement{}, last)
	}
}

func TestRewriteSwitchReturnHoisting(t *testing.T) {
	context, scope := newTestContext()
	switchStatement := &ast.SwitchStatement{
		Expression: reference("x", "Int"),
		Cases: []ast.SwitchCase{
			{
				Expressions: []ast.Expression{&ast.LiteralIntExpression{Value: 1}},
				Statements: []ast.Statement{&ast.ReturnStatement{
					Expression: &ast.LiteralStringExpression{Value: "one"},
				}},
			},
			{
				Statements: []ast.Statement{&ast.ReturnStatement{
					Expression: &ast.LiteralStringExpression{Value: "other"},
				}},
			},
		},
	}

	result := NewRewriteSwitchPass(context, scope).Rewrite(sourceFile(switchStatement))
	rewritten := result.Statements[0].(*ast.SwitchStatement)
	assert.IsType(t, &ast.ReturnStatement{}, rewritten.ConvertsToExpression)
}

func TestRewriteEnumReferencesPass(t *testing.T) {
	context, scope := newTestContext()
	scope.Enums = []string{"Direction"}
	context.Merge([]*FileScope{scope})

	expression := &ast.ExpressionStatement{Expression: &ast.DotExpression{
		LeftExpression:  &ast.TypeExpression{TypeName: "Direction"},
		RightExpression: reference("northWest", "Direction"),
	}}

	result := NewRewriteEnumReferencesPass(context, scope).Rewrite(sourceFile(expression))
	dot := result.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.DotExpression)
	assert.Equal(t, "NORTH_WEST",
		dot.RightExpression.(*ast.DeclarationReferenceExpression).Identifier)
}

func TestRewriteRangesPass(t *testing.T) {
	context, scope := newTestContext()

	halfOpen := &ast.ExpressionStatement{Expression: &ast.BinaryOperatorExpression{
		LeftExpression:  &ast.LiteralIntExpression{Value: 0},
		RightExpression: &ast.LiteralIntExpression{Value: 10},
		OperatorSymbol:  "..<",
		TypeName:        "Range<Int>",
	}}
	closed := &ast.ExpressionStatement{Expression: &ast.BinaryOperatorExpression{
		LeftExpression:  &ast.LiteralIntExpression{Value: 4},
		RightExpression: &ast.LiteralIntExpression{Value: 5},
		OperatorSymbol:  "...",
		TypeName:        "ClosedRange<Int>",
	}}
	doubles := &ast.ExpressionStatement{Expression: &ast.BinaryOperatorExpression{
		LeftExpression:  &ast.LiteralDoubleExpression{Value: 0},
		RightExpression: &ast.LiteralDoubleExpression{Value: 1},
		OperatorSymbol:  "...",
		TypeName:        "ClosedRange<Double>",
	}}

	result := NewRewriteRangesPass(context, scope).Rewrite(sourceFile(halfOpen, closed, doubles))

	first := result.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.BinaryOperatorExpression)
	assert.Equal(t, "until", first.OperatorSymbol)

	second := result.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.BinaryOperatorExpression)
	assert.Equal(t, "..", second.OperatorSymbol)

	third, ok := result.Statements[2].(*ast.ExpressionStatement).Expression.(*ast.TemplateExpression)
	require.True(t, ok)
	assert.Equal(t, "(${lower}).rangeTo(${upper})", third.Pattern)
}

func TestRewriteOptionalsPass(t *testing.T) {
	context, scope := newTestContext()
	call := &ast.ExpressionStatement{Expression: &ast.CallExpression{
		Function: &ast.DotExpression{
			LeftExpression:  reference("maybe", "Int?"),
			RightExpression: reference("map", "((Int) -> Int) -> Int?"),
		},
		Parameters: &ast.TupleExpression{Pairs: []ast.LabeledExpression{{
			Expression: &ast.ClosureExpression{TypeName: "(Int) -> Int"},
		}}},
		TypeName: "Int?",
	}}

	result := NewRewriteOptionalsPass(context, scope).Rewrite(sourceFile(call))
	rewritten := result.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	dot := rewritten.Function.(*ast.DotExpression)
	assert.IsType(t, &ast.OptionalExpression{}, dot.LeftExpression)
	assert.Equal(t, "let", dot.RightExpression.(*ast.DeclarationReferenceExpression).Identifier)
}

func TestApplyTemplatesFirstMatchWins(t *testing.T) {
	context, scope := newTestContext()
	scope.Templates = []template.Template{
		{
			Pattern:     &ast.DeclarationReferenceExpression{Identifier: "_x", TypeName: "Int"},
			Replacement: "first(${_x})",
		},
		{
			Pattern:     &ast.DeclarationReferenceExpression{Identifier: "_x", TypeName: "Int"},
			Replacement: "second(${_x})",
		},
	}
	context.Merge([]*FileScope{scope})

	file := sourceFile(&ast.ExpressionStatement{Expression: reference("value", "Int")})
	result := NewApplyTemplatesPass(context, scope).Rewrite(file)

	templateExpression, ok := result.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.TemplateExpression)
	require.True(t, ok)
	assert.Equal(t, "first(${_x})", templateExpression.Pattern)
}

func TestOmitReturnsPass(t *testing.T) {
	context, scope := newTestContext()
	file := sourceFile(&ast.FunctionDeclaration{FunctionDeclarationData: ast.FunctionDeclarationData{
		Prefix:     "double",
		ReturnType: "Int",
		HasBody:    true,
		Statements: []ast.Statement{&ast.ReturnStatement{
			Expression: &ast.BinaryOperatorExpression{
				LeftExpression:  reference("x", "Int"),
				RightExpression: &ast.LiteralIntExpression{Value: 2},
				OperatorSymbol:  "*",
				TypeName:        "Int",
			},
		}},
	}})

	result := NewOmitReturnsPass(context, scope).Rewrite(file)
	function := result.Statements[0].(*ast.FunctionDeclaration)
	require.Len(t, function.Statements, 1)
	assert.IsType(t, &ast.ExpressionStatement{}, function.Statements[0])
}

func TestOmitReturnsPassKeepsUnitFunctions(t *testing.T) {
	context, scope := newTestContext()
	file := sourceFile(&ast.FunctionDeclaration{FunctionDeclarationData: ast.FunctionDeclarationData{
		Prefix:     "run",
		ReturnType: "",
		HasBody:    true,
		Statements: []ast.Statement{&ast.ReturnStatement{}},
	}})

	result := NewOmitReturnsPass(context, scope).Rewrite(file)
	function := result.Statements[0].(*ast.FunctionDeclaration)
	assert.IsType(t, &ast.ReturnStatement{}, function.Statements[0])
}

func TestEquatableOperatorsPass(t *testing.T) {
	context, scope := newTestContext()
	file := sourceFile(&ast.FunctionDeclaration{FunctionDeclarationData: ast.FunctionDeclarationData{
		Prefix:   "==",
		IsStatic: true,
		Parameters: []ast.FunctionParameter{
			{Label: "lhs", APILabel: "lhs", Type: "Point"},
			{Label: "rhs", APILabel: "rhs", Type: "Point"},
		},
		ReturnType: "Bool",
		HasBody:    true,
		Statements: []ast.Statement{&ast.ReturnStatement{
			Expression: &ast.LiteralBoolExpression{Value: true},
		}},
	}})

	result := NewEquatableOperatorsPass(context, scope).Rewrite(file)
	function := result.Statements[0].(*ast.FunctionDeclaration)
	assert.Equal(t, "equals", function.Prefix)
	assert.False(t, function.IsStatic)
	assert.Equal(t, "override", function.Annotations)
	require.Len(t, function.Parameters, 1)
	assert.Equal(t, "other", function.Parameters[0].Label)
	assert.Equal(t, "Any?", function.Parameters[0].Type)

	// Prologue: type guard, then bindings for both operand names.
	require.GreaterOrEqual(t, len(function.Statements), 4)
	assert.IsType(t, &ast.IfStatement{}, function.Statements[0])
	lhs := function.Statements[1].(*ast.VariableDeclaration)
	assert.Equal(t, "lhs", lhs.Identifier)
	assert.Equal(t, "this", lhs.Expression.(*ast.DeclarationReferenceExpression).Identifier)
	rhs := function.Statements[2].(*ast.VariableDeclaration)
	assert.Equal(t, "rhs", rhs.Identifier)
	assert.Equal(t, "other", rhs.Expression.(*ast.DeclarationReferenceExpression).Identifier)
}

func TestRaiseWarningsPass(t *testing.T) {
	context, scope := newTestContext()
	file := sourceFile(&ast.StructDeclaration{
		StructName: "Point",
		Members: []ast.Statement{
			&ast.FunctionDeclaration{FunctionDeclarationData: ast.FunctionDeclarationData{
				Prefix:     "move",
				IsMutating: true,
				HasBody:    true,
			}},
		},
	})

	NewRaiseWarningsPass(context, scope).Rewrite(file)
	assert.Equal(t, 1, context.Diagnostics.WarningCount())
	assert.False(t, context.Diagnostics.HasErrors())
}

// TestPassIdempotence checks that the full rewriting sequence is a fixed
// point: running it a second time reproduces the first run's output.
func TestPassIdempotence(t *testing.T) {
	context, scope := newTestContext()
	scope.Enums = []string{"Direction"}
	context.Merge([]*FileScope{scope})

	file := sourceFile(
		&ast.FunctionDeclaration{FunctionDeclarationData: ast.FunctionDeclarationData{
			Prefix:  "f",
			HasBody: true,
			Statements: []ast.Statement{
				&ast.IfStatement{IfStatementData: ast.IfStatementData{
					IsGuard: true,
					Conditions: []ast.IfCondition{{
						Expression: &ast.BinaryOperatorExpression{
							LeftExpression:  reference("x", "Int"),
							RightExpression: &ast.LiteralIntExpression{Value: 0},
							OperatorSymbol:  "==",
							TypeName:        "Bool",
						},
					}},
					Statements: []ast.Statement{&ast.ReturnStatement{}},
				}},
				&ast.ExpressionStatement{Expression: &ast.BinaryOperatorExpression{
					LeftExpression:  &ast.LiteralIntExpression{Value: 0},
					RightExpression: &ast.LiteralIntExpression{Value: 10},
					OperatorSymbol:  "..<",
					TypeName:        "Range<Int>",
				}},
			},
		}},
	)

	runAll := func(input *ast.SourceFile) *ast.SourceFile {
		return RunPasses(input, RewritingPasses(context, scope), context)
	}

	once := runAll(file)
	twice := runAll(once)
	assert.Equal(t, ast.Print(once, false), ast.Print(twice, false))
}

func TestStopOnFirstErrorShortCircuits(t *testing.T) {
	context, scope := newTestContext()
	context.StopOnFirstError = true
	context.Diagnostics.AppendError("/tmp/test.swift", nil, "boom")

	file := sourceFile(&ast.ExpressionStatement{Expression: &ast.ArrayExpression{
		TypeName: "[Int]",
	}})
	RunPasses(file, RewritingPasses(context, scope), context)

	// The warning pass never ran, so the only diagnostic is the seeded one.
	assert.Equal(t, 0, context.Diagnostics.WarningCount())
	assert.Equal(t, 1, context.Diagnostics.ErrorCount())
}
