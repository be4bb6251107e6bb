package transpiler

import (
	"github.com/cwbudde/go-gryphon/internal/ast"
)

// OmitReturnsPass unwraps the return of a single-return function body so
// the emitter can use Kotlin's single-expression form, fun f(): T = expr.
// Only typed functions qualify; a Unit function's lone statement is a
// plain effect and stays as it is.
type OmitReturnsPass struct {
	Walker
}

func NewOmitReturnsPass(context *Context, scope *FileScope) *OmitReturnsPass {
	p := &OmitReturnsPass{}
	p.Init(p, context, scope)
	return p
}

func (p *OmitReturnsPass) Name() string { return "omitReturns" }

func (p *OmitReturnsPass) ReplaceFunctionDeclaration(declaration *ast.FunctionDeclaration) []ast.Statement {
	replaced := p.Walker.ReplaceFunctionDeclaration(declaration)
	if len(replaced) != 1 {
		return replaced
	}
	function, ok := replaced[0].(*ast.FunctionDeclaration)
	if !ok || !function.HasBody || len(function.Statements) != 1 {
		return replaced
	}
	if function.ReturnType == "" || function.ReturnType == "()" || function.ReturnType == "Void" {
		return replaced
	}

	if returnStatement, ok := function.Statements[0].(*ast.ReturnStatement); ok && returnStatement.Expression != nil {
		function.Statements[0] = &ast.ExpressionStatement{
			Expression: returnStatement.Expression,
		}
	}
	return replaced
}

// EquatableOperatorsPass rewrites == operator declarations into equals
// overrides. The static two-operand form becomes an instance method over
// other: Any?, with a type check and bindings that keep the original
// operand names meaningful inside the unchanged body.
type EquatableOperatorsPass struct {
	Walker
}

func NewEquatableOperatorsPass(context *Context, scope *FileScope) *EquatableOperatorsPass {
	p := &EquatableOperatorsPass{}
	p.Init(p, context, scope)
	return p
}

func (p *EquatableOperatorsPass) Name() string { return "equatableOperators" }

func (p *EquatableOperatorsPass) ReplaceFunctionDeclaration(declaration *ast.FunctionDeclaration) []ast.Statement {
	if declaration.Prefix != "==" {
		return p.Walker.ReplaceFunctionDeclaration(declaration)
	}

	replaced := p.Walker.ReplaceFunctionDeclaration(declaration)
	if len(replaced) != 1 {
		return replaced
	}
	function, ok := replaced[0].(*ast.FunctionDeclaration)
	if !ok {
		return replaced
	}

	equals := function.FunctionDeclarationData
	equals.Prefix = "equals"
	equals.IsStatic = false
	equals.ReturnType = "Bool"
	equals.Annotations = "override"

	operandType := equals.ExtendsType
	if len(equals.Parameters) > 0 && equals.Parameters[0].Type != "" {
		operandType = equals.Parameters[0].Type
	}

	var prologue []ast.Statement
	if operandType != "" {
		// A mismatched operand can never compare equal; the negative
		// is-check also smart-casts other for the bindings below.
		notOperand := &ast.BinaryOperatorExpression{
			LeftExpression:  &ast.DeclarationReferenceExpression{Identifier: "other", TypeName: "Any?"},
			RightExpression: &ast.TypeExpression{TypeName: operandType},
			OperatorSymbol:  "!is",
			TypeName:        "Bool",
		}
		prologue = append(prologue, &ast.IfStatement{IfStatementData: ast.IfStatementData{
			Conditions: []ast.IfCondition{{Expression: notOperand}},
			Statements: []ast.Statement{&ast.ReturnStatement{
				Expression: &ast.LiteralBoolExpression{Value: false},
			}},
		}})
	}

	operands := []string{"this", "other"}
	for i, parameter := range equals.Parameters {
		if i >= len(operands) || parameter.Label == "" || parameter.Label == "_" {
			continue
		}
		prologue = append(prologue, &ast.VariableDeclaration{VariableDeclarationData: ast.VariableDeclarationData{
			Identifier: parameter.Label,
			TypeName:   parameter.Type,
			IsLet:      true,
			Expression: &ast.DeclarationReferenceExpression{
				Identifier: operands[i],
				TypeName:   parameter.Type,
			},
		}})
	}

	equals.Parameters = []ast.FunctionParameter{{Label: "other", APILabel: "other", Type: "Any?"}}
	equals.Statements = append(prologue, equals.Statements...)
	return []ast.Statement{&ast.FunctionDeclaration{FunctionDeclarationData: equals}}
}
