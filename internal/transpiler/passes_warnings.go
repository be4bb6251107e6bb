package transpiler

import (
	"github.com/cwbudde/go-gryphon/internal/ast"
)

// RaiseWarningsPass reports the constructs that translate with changed
// semantics: mutating methods on value types, native collection literals,
// and fileprivate members whose visibility widens to internal.
type RaiseWarningsPass struct {
	Walker
}

func NewRaiseWarningsPass(context *Context, scope *FileScope) *RaiseWarningsPass {
	p := &RaiseWarningsPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RaiseWarningsPass) Name() string { return "raiseWarnings" }

func (p *RaiseWarningsPass) ReplaceStructDeclaration(declaration *ast.StructDeclaration) []ast.Statement {
	p.warnMutatingMembers(declaration.StructName, declaration.Members)
	return p.Walker.ReplaceStructDeclaration(declaration)
}

func (p *RaiseWarningsPass) ReplaceEnumDeclaration(declaration *ast.EnumDeclaration) []ast.Statement {
	p.warnMutatingMembers(declaration.EnumName, declaration.Members)
	return p.Walker.ReplaceEnumDeclaration(declaration)
}

func (p *RaiseWarningsPass) warnMutatingMembers(typeName string, members []ast.Statement) {
	for _, member := range members {
		function, ok := member.(*ast.FunctionDeclaration)
		if !ok || !function.IsMutating {
			continue
		}
		if p.Context.IsPureFunction(function.Prefix) {
			continue
		}
		p.Context.Diagnostics.AppendWarning(p.Scope.Path, nil,
			"mutating method %s on value type %s translates to a reference-semantics class method",
			function.Prefix, typeName)
	}
}

func (p *RaiseWarningsPass) ReplaceFunctionDeclaration(declaration *ast.FunctionDeclaration) []ast.Statement {
	if declaration.Access == "fileprivate" {
		p.Context.Diagnostics.AppendWarning(p.Scope.Path, nil,
			"fileprivate member %s becomes internal", declaration.Prefix)
	}
	return p.Walker.ReplaceFunctionDeclaration(declaration)
}

func (p *RaiseWarningsPass) ReplaceVariableDeclaration(declaration *ast.VariableDeclaration) []ast.Statement {
	if declaration.Annotations == "fileprivate" {
		p.Context.Diagnostics.AppendWarning(p.Scope.Path, nil,
			"fileprivate member %s becomes internal", declaration.Identifier)
	}
	return p.Walker.ReplaceVariableDeclaration(declaration)
}

func (p *RaiseWarningsPass) ReplaceArrayExpression(expression *ast.ArrayExpression) ast.Expression {
	p.Context.Diagnostics.AppendWarning(p.Scope.Path, nil,
		"native array literal translates to mutableListOf; consider the List wrapper types for value semantics")
	return p.Walker.ReplaceArrayExpression(expression)
}

func (p *RaiseWarningsPass) ReplaceDictionaryExpression(expression *ast.DictionaryExpression) ast.Expression {
	p.Context.Diagnostics.AppendWarning(p.Scope.Path, nil,
		"native dictionary literal translates to mutableMapOf; consider the Map wrapper types for value semantics")
	return p.Walker.ReplaceDictionaryExpression(expression)
}
