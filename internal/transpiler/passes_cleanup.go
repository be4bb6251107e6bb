package transpiler

import (
	"github.com/cwbudde/go-gryphon/internal/ast"
)

// RemoveImplicitDeclarationsPass drops declarations the Swift compiler
// synthesized into the dump: implicit typealiases, variables, functions and
// enums that have no counterpart in the source.
type RemoveImplicitDeclarationsPass struct {
	Walker
}

func NewRemoveImplicitDeclarationsPass(context *Context, scope *FileScope) *RemoveImplicitDeclarationsPass {
	p := &RemoveImplicitDeclarationsPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RemoveImplicitDeclarationsPass) Name() string { return "removeImplicitDeclarations" }

func (p *RemoveImplicitDeclarationsPass) ReplaceTypealiasDeclaration(declaration *ast.TypealiasDeclaration) []ast.Statement {
	if declaration.IsImplicit {
		return nil
	}
	return p.Walker.ReplaceTypealiasDeclaration(declaration)
}

func (p *RemoveImplicitDeclarationsPass) ReplaceVariableDeclaration(declaration *ast.VariableDeclaration) []ast.Statement {
	if declaration.IsImplicit {
		return nil
	}
	return p.Walker.ReplaceVariableDeclaration(declaration)
}

func (p *RemoveImplicitDeclarationsPass) ReplaceFunctionDeclaration(declaration *ast.FunctionDeclaration) []ast.Statement {
	if declaration.IsImplicit {
		return nil
	}
	return p.Walker.ReplaceFunctionDeclaration(declaration)
}

func (p *RemoveImplicitDeclarationsPass) ReplaceEnumDeclaration(declaration *ast.EnumDeclaration) []ast.Statement {
	if declaration.IsImplicit {
		return nil
	}
	return p.Walker.ReplaceEnumDeclaration(declaration)
}

// RemoveExtensionsPass hoists extension members to the top level. The
// frontend already stamped each member with its receiver type, which the
// emitter renders as an extension function or property.
type RemoveExtensionsPass struct {
	Walker
}

func NewRemoveExtensionsPass(context *Context, scope *FileScope) *RemoveExtensionsPass {
	p := &RemoveExtensionsPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RemoveExtensionsPass) Name() string { return "removeExtensions" }

func (p *RemoveExtensionsPass) ReplaceExtensionDeclaration(declaration *ast.ExtensionDeclaration) []ast.Statement {
	return p.ReplaceStatements(declaration.Members)
}

// RemoveParenthesesPass drops redundant parentheses: a directly nested pair
// collapses to one, and parentheses around atomic expressions (references,
// literals, dots, calls) are removed. Parentheses around any other
// expression are kept, including in condition and scrutinee positions.
type RemoveParenthesesPass struct {
	Walker
}

func NewRemoveParenthesesPass(context *Context, scope *FileScope) *RemoveParenthesesPass {
	p := &RemoveParenthesesPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RemoveParenthesesPass) Name() string { return "removeParentheses" }

func (p *RemoveParenthesesPass) ReplaceParenthesesExpression(expression *ast.ParenthesesExpression) ast.Expression {
	inner := p.ReplaceExpression(expression.Expression)
	if nested, ok := inner.(*ast.ParenthesesExpression); ok {
		return nested
	}
	switch inner.(type) {
	case *ast.DeclarationReferenceExpression, *ast.LiteralIntExpression,
		*ast.LiteralDoubleExpression, *ast.LiteralBoolExpression,
		*ast.LiteralStringExpression, *ast.DotExpression,
		*ast.CallExpression:
		// Atomic expressions never need wrapping.
		return inner
	}
	return &ast.ParenthesesExpression{Expression: inner}
}

// SelfToThisPass removes implicit self references and renames explicit
// ones to this.
type SelfToThisPass struct {
	Walker
}

func NewSelfToThisPass(context *Context, scope *FileScope) *SelfToThisPass {
	p := &SelfToThisPass{}
	p.Init(p, context, scope)
	return p
}

func (p *SelfToThisPass) Name() string { return "selfToThis" }

func (p *SelfToThisPass) ReplaceDotExpression(expression *ast.DotExpression) ast.Expression {
	if reference, ok := expression.LeftExpression.(*ast.DeclarationReferenceExpression); ok {
		if reference.Identifier == "self" && reference.IsImplicit {
			return p.ReplaceExpression(expression.RightExpression)
		}
	}
	return p.Walker.ReplaceDotExpression(expression)
}

func (p *SelfToThisPass) ReplaceDeclarationReferenceExpression(expression *ast.DeclarationReferenceExpression) ast.Expression {
	if expression.Identifier == "self" {
		renamed := *expression
		renamed.Identifier = "this"
		return &renamed
	}
	return p.Walker.ReplaceDeclarationReferenceExpression(expression)
}

// CleanInheritancesPass drops Swift protocols with no Kotlin analogue from
// inheritance lists (conformances like Equatable or Hashable that Kotlin
// covers structurally) and keeps the superclass first.
type CleanInheritancesPass struct {
	Walker
}

func NewCleanInheritancesPass(context *Context, scope *FileScope) *CleanInheritancesPass {
	p := &CleanInheritancesPass{}
	p.Init(p, context, scope)
	return p
}

func (p *CleanInheritancesPass) Name() string { return "cleanInheritances" }

// syntheticConformances are Swift protocols whose behavior Kotlin provides
// without declaration.
var syntheticConformances = map[string]bool{
	"Equatable":                    true,
	"Hashable":                     true,
	"Comparable":                   true,
	"Codable":                      true,
	"Decodable":                    true,
	"Encodable":                    true,
	"CustomStringConvertible":      true,
	"CustomDebugStringConvertible": true,
	"CaseIterable":                 true,
}

func (p *CleanInheritancesPass) cleanInheritances(inherits []string) []string {
	var classes []string
	var others []string
	for _, name := range inherits {
		if syntheticConformances[name] {
			continue
		}
		if p.Context.IsProtocol(name) || p.Context.IsEnum(name) {
			others = append(others, name)
			continue
		}
		classes = append(classes, name)
	}
	return append(classes, others...)
}

func (p *CleanInheritancesPass) ReplaceClassDeclaration(declaration *ast.ClassDeclaration) []ast.Statement {
	cleaned := *declaration
	cleaned.Inherits = p.cleanInheritances(declaration.Inherits)
	return p.Walker.ReplaceClassDeclaration(&cleaned)
}

func (p *CleanInheritancesPass) ReplaceStructDeclaration(declaration *ast.StructDeclaration) []ast.Statement {
	cleaned := *declaration
	cleaned.Inherits = p.cleanInheritances(declaration.Inherits)
	return p.Walker.ReplaceStructDeclaration(&cleaned)
}

func (p *CleanInheritancesPass) ReplaceEnumDeclaration(declaration *ast.EnumDeclaration) []ast.Statement {
	// Raw-value types stay so the emitter can type the rawValue property;
	// Error stays and maps to Exception in the emitter.
	cleaned := *declaration
	cleaned.Inherits = p.cleanInheritances(declaration.Inherits)
	return p.Walker.ReplaceEnumDeclaration(&cleaned)
}

// AnonymousParametersPass renames the anonymous closure parameter $0 to
// Kotlin's it and erases the parameter list of single-parameter closures
// that only use it.
type AnonymousParametersPass struct {
	Walker
}

func NewAnonymousParametersPass(context *Context, scope *FileScope) *AnonymousParametersPass {
	p := &AnonymousParametersPass{}
	p.Init(p, context, scope)
	return p
}

func (p *AnonymousParametersPass) Name() string { return "anonymousParameters" }

func (p *AnonymousParametersPass) ReplaceDeclarationReferenceExpression(expression *ast.DeclarationReferenceExpression) ast.Expression {
	if expression.Identifier == "$0" {
		renamed := *expression
		renamed.Identifier = "it"
		return &renamed
	}
	return p.Walker.ReplaceDeclarationReferenceExpression(expression)
}

func (p *AnonymousParametersPass) ReplaceClosureExpression(expression *ast.ClosureExpression) ast.Expression {
	replaced := p.Walker.ReplaceClosureExpression(expression)
	closure, ok := replaced.(*ast.ClosureExpression)
	if !ok {
		return replaced
	}
	if len(closure.Parameters) == 1 && closure.Parameters[0].Label == "$0" {
		closure.Parameters = nil
	}
	return closure
}

// ReturnsInLambdasPass turns a closure's trailing return statement into a
// plain expression, since Kotlin lambdas return their last expression.
type ReturnsInLambdasPass struct {
	Walker
}

func NewReturnsInLambdasPass(context *Context, scope *FileScope) *ReturnsInLambdasPass {
	p := &ReturnsInLambdasPass{}
	p.Init(p, context, scope)
	return p
}

func (p *ReturnsInLambdasPass) Name() string { return "returnsInLambdas" }

func (p *ReturnsInLambdasPass) ReplaceClosureExpression(expression *ast.ClosureExpression) ast.Expression {
	replaced := p.Walker.ReplaceClosureExpression(expression)
	closure, ok := replaced.(*ast.ClosureExpression)
	if !ok {
		return replaced
	}
	if len(closure.Statements) == 0 {
		return closure
	}
	last := closure.Statements[len(closure.Statements)-1]
	if returnStatement, ok := last.(*ast.ReturnStatement); ok && returnStatement.Expression != nil {
		closure.Statements[len(closure.Statements)-1] = &ast.ExpressionStatement{
			Expression: returnStatement.Expression,
		}
	}
	return closure
}

// InnerTypePrefixesPass removes redundant qualifications of members by the
// type that encloses them, tracking the lexical type nesting.
type InnerTypePrefixesPass struct {
	Walker
	typeStack []string
}

func NewInnerTypePrefixesPass(context *Context, scope *FileScope) *InnerTypePrefixesPass {
	p := &InnerTypePrefixesPass{}
	p.Init(p, context, scope)
	return p
}

func (p *InnerTypePrefixesPass) Name() string { return "innerTypePrefixes" }

func (p *InnerTypePrefixesPass) ReplaceClassDeclaration(declaration *ast.ClassDeclaration) []ast.Statement {
	p.typeStack = append(p.typeStack, declaration.ClassName)
	defer func() { p.typeStack = p.typeStack[:len(p.typeStack)-1] }()
	return p.Walker.ReplaceClassDeclaration(declaration)
}

func (p *InnerTypePrefixesPass) ReplaceStructDeclaration(declaration *ast.StructDeclaration) []ast.Statement {
	p.typeStack = append(p.typeStack, declaration.StructName)
	defer func() { p.typeStack = p.typeStack[:len(p.typeStack)-1] }()
	return p.Walker.ReplaceStructDeclaration(declaration)
}

func (p *InnerTypePrefixesPass) ReplaceDotExpression(expression *ast.DotExpression) ast.Expression {
	if typeExpression, ok := expression.LeftExpression.(*ast.TypeExpression); ok {
		for _, enclosing := range p.typeStack {
			if typeExpression.TypeName == enclosing {
				return p.ReplaceExpression(expression.RightExpression)
			}
		}
	}
	return p.Walker.ReplaceDotExpression(expression)
}

// RenameOperatorsPass maps Swift operator spellings onto their Kotlin
// equivalents.
type RenameOperatorsPass struct {
	Walker
}

func NewRenameOperatorsPass(context *Context, scope *FileScope) *RenameOperatorsPass {
	p := &RenameOperatorsPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RenameOperatorsPass) Name() string { return "renameOperators" }

var operatorRenamings = map[string]string{
	"??": "?:",
}

func (p *RenameOperatorsPass) ReplaceBinaryOperatorExpression(expression *ast.BinaryOperatorExpression) ast.Expression {
	replaced := p.Walker.ReplaceBinaryOperatorExpression(expression)
	binary, ok := replaced.(*ast.BinaryOperatorExpression)
	if !ok {
		return replaced
	}
	if renamed, ok := operatorRenamings[binary.OperatorSymbol]; ok {
		binary.OperatorSymbol = renamed
	}
	return binary
}

// DoubleNegationsPass simplifies double negations.
type DoubleNegationsPass struct {
	Walker
}

func NewDoubleNegationsPass(context *Context, scope *FileScope) *DoubleNegationsPass {
	p := &DoubleNegationsPass{}
	p.Init(p, context, scope)
	return p
}

func (p *DoubleNegationsPass) Name() string { return "doubleNegations" }

func (p *DoubleNegationsPass) ReplacePrefixUnaryExpression(expression *ast.PrefixUnaryExpression) ast.Expression {
	replaced := p.Walker.ReplacePrefixUnaryExpression(expression)
	unary, ok := replaced.(*ast.PrefixUnaryExpression)
	if !ok || unary.OperatorSymbol != "!" {
		return replaced
	}

	inner := stripParentheses(unary.Expression)
	if nested, ok := inner.(*ast.PrefixUnaryExpression); ok && nested.OperatorSymbol == "!" {
		return nested.Expression
	}
	return unary
}

// stripParentheses unwraps any number of parentheses layers.
func stripParentheses(expression ast.Expression) ast.Expression {
	for {
		parenthesized, ok := expression.(*ast.ParenthesesExpression)
		if !ok {
			return expression
		}
		expression = parenthesized.Expression
	}
}

// identifierOf returns the referenced identifier, looking through dots.
func identifierOf(expression ast.Expression) string {
	switch typed := expression.(type) {
	case *ast.DeclarationReferenceExpression:
		return typed.Identifier
	case *ast.DotExpression:
		return identifierOf(typed.RightExpression)
	}
	return ""
}
