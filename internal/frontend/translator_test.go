package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/go-gryphon/internal/ast"
	"github.com/cwbudde/go-gryphon/internal/astdump"
	"github.com/cwbudde/go-gryphon/internal/errors"
)

func translateSource(t *testing.T, dump string) (*ast.SourceFile, *errors.List) {
	t.Helper()
	root, err := astdump.Decode(dump)
	require.NoError(t, err)

	diagnostics := errors.NewList()
	translator := New("/tmp/test.swift", diagnostics)
	return translator.TranslateAST(root), diagnostics
}

func TestTranslateFunctionDeclaration(t *testing.T) {
	file, diagnostics := translateSource(t, `(source_file
  (func_decl "testGuard()" interface type='() -> ()' access=internal
    (parameter_list)
    (brace_stmt
      (return_stmt))))`)

	assert.False(t, diagnostics.HasErrors())
	require.Len(t, file.Statements, 1)

	function, ok := file.Statements[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	assert.Equal(t, "testGuard", function.Prefix)
	assert.Equal(t, "", function.ReturnType)
	assert.True(t, function.HasBody)
	require.Len(t, function.Statements, 1)
	assert.IsType(t, &ast.ReturnStatement{}, function.Statements[0])
}

func TestTranslatePatternBinding(t *testing.T) {
	file, diagnostics := translateSource(t, `(source_file
  (top_level_code_decl
    (brace_stmt
      (pattern_binding_decl
        (pattern_named type='Int' 'x')
        (integer_literal_expr type='Int' value=0))))
  (var_decl "x" type='Int' interface type='Int' access=internal let))`)

	assert.False(t, diagnostics.HasErrors())
	require.Len(t, file.Statements, 1)

	variable, ok := file.Statements[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "x", variable.Identifier)
	assert.Equal(t, "Int", variable.TypeName)
	assert.True(t, variable.IsLet)

	literal, ok := variable.Expression.(*ast.LiteralIntExpression)
	require.True(t, ok)
	assert.Equal(t, int64(0), literal.Value)
}

func TestTranslateGuardStatement(t *testing.T) {
	file, diagnostics := translateSource(t, `(source_file
  (func_decl "f()" interface type='() -> ()'
    (brace_stmt
      (guard_stmt
        (binary_expr type='Bool'
          (declref_expr type='(Int, Int) -> Bool' decl=Swift.(file).==)
          (tuple_expr type='(Int, Int)'
            (declref_expr type='Int' decl=test.(file).x@/tmp/test.swift:1:9)
            (integer_literal_expr type='Int' value=0)))
        (brace_stmt
          (return_stmt))))))`)

	assert.False(t, diagnostics.HasErrors())
	function := file.Statements[0].(*ast.FunctionDeclaration)
	guard, ok := function.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	assert.True(t, guard.IsGuard)
	require.Len(t, guard.Conditions, 1)

	condition, ok := guard.Conditions[0].Expression.(*ast.BinaryOperatorExpression)
	require.True(t, ok)
	assert.Equal(t, "==", condition.OperatorSymbol)
	assert.Equal(t, "x", condition.LeftExpression.(*ast.DeclarationReferenceExpression).Identifier)
}

func TestTranslateIfLet(t *testing.T) {
	file, _ := translateSource(t, `(source_file
  (func_decl "f()" interface type='() -> ()'
    (brace_stmt
      (if_stmt
        (pattern_let
          (pattern_named type='Int' 'a'))
        (declref_expr type='Int?' decl=test.(file).x@/tmp/test.swift:1:5)
        (brace_stmt)))))`)

	function := file.Statements[0].(*ast.FunctionDeclaration)
	ifStatement := function.Statements[0].(*ast.IfStatement)
	require.Len(t, ifStatement.Conditions, 1)

	declaration := ifStatement.Conditions[0].Declaration
	require.NotNil(t, declaration)
	assert.Equal(t, "a", declaration.Identifier)
	assert.Equal(t, "Int", declaration.TypeName)
	assert.True(t, declaration.IsLet)
	assert.NotNil(t, declaration.Expression)
}

func TestTranslateRangeOperator(t *testing.T) {
	file, diagnostics := translateSource(t, `(source_file
  (top_level_code_decl
    (brace_stmt
      (binary_expr type='Range<Int>'
        (declref_expr type='(Int, Int) -> Range<Int>' decl=Swift.(file)...<)
        (tuple_expr type='(Int, Int)'
          (member_ref_expr type='Int' decl=Swift.(file).Int.min
            (type_expr type='Int.Type'))
          (integer_literal_expr type='Int' value=0))))))`)

	assert.False(t, diagnostics.HasErrors())
	statement := file.Statements[0].(*ast.ExpressionStatement)
	binary := statement.Expression.(*ast.BinaryOperatorExpression)
	assert.Equal(t, "..<", binary.OperatorSymbol)

	dot := binary.LeftExpression.(*ast.DotExpression)
	assert.Equal(t, "Int", dot.LeftExpression.(*ast.TypeExpression).TypeName)
	member := dot.RightExpression.(*ast.DeclarationReferenceExpression)
	assert.Equal(t, "min", member.Identifier)
	assert.True(t, member.IsStandardLibrary)
}

func TestTranslateEnumWithAssociatedValues(t *testing.T) {
	file, diagnostics := translateSource(t, `(source_file
  (enum_decl "OtherError" access=internal
    (enum_case_decl
      (enum_element_decl "oneInt(int:)" interface type='(OtherError.Type) -> (int: Int) -> OtherError'))))`)

	assert.False(t, diagnostics.HasErrors())
	enum := file.Statements[0].(*ast.EnumDeclaration)
	assert.Equal(t, "OtherError", enum.EnumName)
	require.Len(t, enum.Elements, 1)

	element := enum.Elements[0]
	assert.Equal(t, "oneInt", element.Name)
	require.Len(t, element.AssociatedValues, 1)
	assert.Equal(t, "int", element.AssociatedValues[0].Label)
	assert.Equal(t, "Int", element.AssociatedValues[0].Type)
}

func TestTranslateSwitchStatement(t *testing.T) {
	file, _ := translateSource(t, `(source_file
  (func_decl "f()" interface type='() -> ()'
    (brace_stmt
      (switch_stmt
        (declref_expr type='Int' decl=test.(file).x@/tmp/test.swift:2:4)
        (case_stmt
          (case_label_item
            (pattern_expr
              (integer_literal_expr type='Int' value=1)))
          (brace_stmt
            (break_stmt)))
        (case_stmt
          (case_label_item
            (pattern_any))
          (brace_stmt
            (break_stmt)))))))`)

	function := file.Statements[0].(*ast.FunctionDeclaration)
	switchStatement := function.Statements[0].(*ast.SwitchStatement)
	require.Len(t, switchStatement.Cases, 2)
	assert.Len(t, switchStatement.Cases[0].Expressions, 1)
	assert.Empty(t, switchStatement.Cases[1].Expressions)
}

func TestTranslateUnknownNodeProducesError(t *testing.T) {
	file, diagnostics := translateSource(t, `(source_file
  (made_up_declaration))`)

	assert.True(t, diagnostics.HasErrors())
	require.Len(t, file.Statements, 1)
	assert.IsType(t, &ast.ErrorStatement{}, file.Statements[0])
}

func TestTranslateTupleShuffle(t *testing.T) {
	file, _ := translateSource(t, `(source_file
  (top_level_code_decl
    (brace_stmt
      (call_expr type='()'
        (declref_expr type='(Int, Int) -> ()' decl=test.(file).f@/tmp/test.swift:3:1)
        (tuple_shuffle_expr elements='a,b' pattern='0 x'
          (tuple_expr type='(Int)'
            (integer_literal_expr type='Int' value=1)))))))`)

	statement := file.Statements[0].(*ast.ExpressionStatement)
	call := statement.Expression.(*ast.CallExpression)
	shuffle, ok := call.Parameters.(*ast.TupleShuffleExpression)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, shuffle.Labels)
	require.Len(t, shuffle.Indices, 2)
	assert.Equal(t, ast.TupleShufflePresent, shuffle.Indices[0].Kind)
	assert.Equal(t, ast.TupleShuffleAbsent, shuffle.Indices[1].Kind)
	assert.Len(t, shuffle.Expressions, 1)
}

func TestParseDeclaration(t *testing.T) {
	tests := []struct {
		declaration string
		identifier  string
		stdlib      bool
	}{
		{"Swift.(file).print", "print", true},
		{"Swift.(file).Int.min", "min", true},
		{"Swift.(file)...<", "..<", true},
		{"Swift.(file).==", "==", true},
		{"test.(file).x@/tmp/test.swift:1:30", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.declaration, func(t *testing.T) {
			identifier, stdlib := parseDeclaration(tt.declaration)
			assert.Equal(t, tt.identifier, identifier)
			assert.Equal(t, tt.stdlib, stdlib)
		})
	}
}
