package transpiler

import (
	"github.com/cwbudde/go-gryphon/internal/ast"
)

// Visitor has one Replace method per Statement and Expression variant plus
// the two dispatchers. The Walker implements every method with a default
// that reconstructs the node from its transformed children; a concrete pass
// embeds Walker and overrides only the variants it cares about. Dispatch is
// dynamic through the embedded walker's back-reference, so a default method
// transforming children reaches the pass's overrides.
//
// Statement methods return slices so a pass can expand one statement into
// several or drop it entirely.
type Visitor interface {
	ReplaceStatement(ast.Statement) []ast.Statement
	ReplaceExpression(ast.Expression) ast.Expression

	ReplaceExpressionStatement(*ast.ExpressionStatement) []ast.Statement
	ReplaceTypealiasDeclaration(*ast.TypealiasDeclaration) []ast.Statement
	ReplaceExtensionDeclaration(*ast.ExtensionDeclaration) []ast.Statement
	ReplaceImportDeclaration(*ast.ImportDeclaration) []ast.Statement
	ReplaceClassDeclaration(*ast.ClassDeclaration) []ast.Statement
	ReplaceCompanionObject(*ast.CompanionObject) []ast.Statement
	ReplaceEnumDeclaration(*ast.EnumDeclaration) []ast.Statement
	ReplaceProtocolDeclaration(*ast.ProtocolDeclaration) []ast.Statement
	ReplaceStructDeclaration(*ast.StructDeclaration) []ast.Statement
	ReplaceFunctionDeclaration(*ast.FunctionDeclaration) []ast.Statement
	ReplaceVariableDeclaration(*ast.VariableDeclaration) []ast.Statement
	ReplaceForEachStatement(*ast.ForEachStatement) []ast.Statement
	ReplaceWhileStatement(*ast.WhileStatement) []ast.Statement
	ReplaceIfStatement(*ast.IfStatement) []ast.Statement
	ReplaceSwitchStatement(*ast.SwitchStatement) []ast.Statement
	ReplaceDeferStatement(*ast.DeferStatement) []ast.Statement
	ReplaceThrowStatement(*ast.ThrowStatement) []ast.Statement
	ReplaceReturnStatement(*ast.ReturnStatement) []ast.Statement
	ReplaceBreakStatement(*ast.BreakStatement) []ast.Statement
	ReplaceContinueStatement(*ast.ContinueStatement) []ast.Statement
	ReplaceAssignmentStatement(*ast.AssignmentStatement) []ast.Statement
	ReplaceErrorStatement(*ast.ErrorStatement) []ast.Statement

	ReplaceLiteralCodeExpression(*ast.LiteralCodeExpression) ast.Expression
	ReplaceLiteralDeclarationExpression(*ast.LiteralDeclarationExpression) ast.Expression
	ReplaceTemplateExpression(*ast.TemplateExpression) ast.Expression
	ReplaceParenthesesExpression(*ast.ParenthesesExpression) ast.Expression
	ReplaceForceValueExpression(*ast.ForceValueExpression) ast.Expression
	ReplaceOptionalExpression(*ast.OptionalExpression) ast.Expression
	ReplaceDeclarationReferenceExpression(*ast.DeclarationReferenceExpression) ast.Expression
	ReplaceTypeExpression(*ast.TypeExpression) ast.Expression
	ReplaceSubscriptExpression(*ast.SubscriptExpression) ast.Expression
	ReplaceArrayExpression(*ast.ArrayExpression) ast.Expression
	ReplaceDictionaryExpression(*ast.DictionaryExpression) ast.Expression
	ReplaceReturnExpression(*ast.ReturnExpression) ast.Expression
	ReplaceDotExpression(*ast.DotExpression) ast.Expression
	ReplaceBinaryOperatorExpression(*ast.BinaryOperatorExpression) ast.Expression
	ReplacePrefixUnaryExpression(*ast.PrefixUnaryExpression) ast.Expression
	ReplacePostfixUnaryExpression(*ast.PostfixUnaryExpression) ast.Expression
	ReplaceIfExpression(*ast.IfExpression) ast.Expression
	ReplaceCallExpression(*ast.CallExpression) ast.Expression
	ReplaceClosureExpression(*ast.ClosureExpression) ast.Expression
	ReplaceLiteralIntExpression(*ast.LiteralIntExpression) ast.Expression
	ReplaceLiteralUIntExpression(*ast.LiteralUIntExpression) ast.Expression
	ReplaceLiteralDoubleExpression(*ast.LiteralDoubleExpression) ast.Expression
	ReplaceLiteralFloatExpression(*ast.LiteralFloatExpression) ast.Expression
	ReplaceLiteralBoolExpression(*ast.LiteralBoolExpression) ast.Expression
	ReplaceLiteralStringExpression(*ast.LiteralStringExpression) ast.Expression
	ReplaceLiteralCharacterExpression(*ast.LiteralCharacterExpression) ast.Expression
	ReplaceNilLiteralExpression(*ast.NilLiteralExpression) ast.Expression
	ReplaceInterpolatedStringLiteralExpression(*ast.InterpolatedStringLiteralExpression) ast.Expression
	ReplaceTupleExpression(*ast.TupleExpression) ast.Expression
	ReplaceTupleShuffleExpression(*ast.TupleShuffleExpression) ast.Expression
	ReplaceErrorExpression(*ast.ErrorExpression) ast.Expression
}

// Walker provides the default tree reconstruction for every Visitor method.
// The walk is depth-first, statements before expressions.
type Walker struct {
	visitor Visitor
	Context *Context
	Scope   *FileScope
}

// Init binds the walker to its concrete pass, context and file scope. Every
// pass constructor calls it.
func (w *Walker) Init(visitor Visitor, context *Context, scope *FileScope) {
	w.visitor = visitor
	w.Context = context
	w.Scope = scope
}

// Rewrite transforms a whole source file.
func (w *Walker) Rewrite(file *ast.SourceFile) *ast.SourceFile {
	return &ast.SourceFile{
		Path:       file.Path,
		Statements: w.ReplaceStatements(file.Statements),
	}
}

// ReplaceStatements transforms a statement list, flattening expansions.
func (w *Walker) ReplaceStatements(statements []ast.Statement) []ast.Statement {
	var result []ast.Statement
	for _, statement := range statements {
		result = append(result, w.visitor.ReplaceStatement(statement)...)
	}
	return result
}

// ReplaceStatement dispatches one statement to its variant method. The
// switch is exhaustive over the statement sum; an unknown variant is a
// framework bug and is recorded as a pass error.
func (w *Walker) ReplaceStatement(statement ast.Statement) []ast.Statement {
	switch typed := statement.(type) {
	case *ast.ExpressionStatement:
		return w.visitor.ReplaceExpressionStatement(typed)
	case *ast.TypealiasDeclaration:
		return w.visitor.ReplaceTypealiasDeclaration(typed)
	case *ast.ExtensionDeclaration:
		return w.visitor.ReplaceExtensionDeclaration(typed)
	case *ast.ImportDeclaration:
		return w.visitor.ReplaceImportDeclaration(typed)
	case *ast.ClassDeclaration:
		return w.visitor.ReplaceClassDeclaration(typed)
	case *ast.CompanionObject:
		return w.visitor.ReplaceCompanionObject(typed)
	case *ast.EnumDeclaration:
		return w.visitor.ReplaceEnumDeclaration(typed)
	case *ast.ProtocolDeclaration:
		return w.visitor.ReplaceProtocolDeclaration(typed)
	case *ast.StructDeclaration:
		return w.visitor.ReplaceStructDeclaration(typed)
	case *ast.FunctionDeclaration:
		return w.visitor.ReplaceFunctionDeclaration(typed)
	case *ast.VariableDeclaration:
		return w.visitor.ReplaceVariableDeclaration(typed)
	case *ast.ForEachStatement:
		return w.visitor.ReplaceForEachStatement(typed)
	case *ast.WhileStatement:
		return w.visitor.ReplaceWhileStatement(typed)
	case *ast.IfStatement:
		return w.visitor.ReplaceIfStatement(typed)
	case *ast.SwitchStatement:
		return w.visitor.ReplaceSwitchStatement(typed)
	case *ast.DeferStatement:
		return w.visitor.ReplaceDeferStatement(typed)
	case *ast.ThrowStatement:
		return w.visitor.ReplaceThrowStatement(typed)
	case *ast.ReturnStatement:
		return w.visitor.ReplaceReturnStatement(typed)
	case *ast.BreakStatement:
		return w.visitor.ReplaceBreakStatement(typed)
	case *ast.ContinueStatement:
		return w.visitor.ReplaceContinueStatement(typed)
	case *ast.AssignmentStatement:
		return w.visitor.ReplaceAssignmentStatement(typed)
	case *ast.ErrorStatement:
		return w.visitor.ReplaceErrorStatement(typed)
	}

	w.Context.Diagnostics.AppendError(w.Scope.Path, nil,
		"pass cannot dispatch unknown statement variant %T", statement)
	return []ast.Statement{&ast.ErrorStatement{}}
}

// ReplaceExpression dispatches one expression to its variant method.
func (w *Walker) ReplaceExpression(expression ast.Expression) ast.Expression {
	switch typed := expression.(type) {
	case *ast.LiteralCodeExpression:
		return w.visitor.ReplaceLiteralCodeExpression(typed)
	case *ast.LiteralDeclarationExpression:
		return w.visitor.ReplaceLiteralDeclarationExpression(typed)
	case *ast.TemplateExpression:
		return w.visitor.ReplaceTemplateExpression(typed)
	case *ast.ParenthesesExpression:
		return w.visitor.ReplaceParenthesesExpression(typed)
	case *ast.ForceValueExpression:
		return w.visitor.ReplaceForceValueExpression(typed)
	case *ast.OptionalExpression:
		return w.visitor.ReplaceOptionalExpression(typed)
	case *ast.DeclarationReferenceExpression:
		return w.visitor.ReplaceDeclarationReferenceExpression(typed)
	case *ast.TypeExpression:
		return w.visitor.ReplaceTypeExpression(typed)
	case *ast.SubscriptExpression:
		return w.visitor.ReplaceSubscriptExpression(typed)
	case *ast.ArrayExpression:
		return w.visitor.ReplaceArrayExpression(typed)
	case *ast.DictionaryExpression:
		return w.visitor.ReplaceDictionaryExpression(typed)
	case *ast.ReturnExpression:
		return w.visitor.ReplaceReturnExpression(typed)
	case *ast.DotExpression:
		return w.visitor.ReplaceDotExpression(typed)
	case *ast.BinaryOperatorExpression:
		return w.visitor.ReplaceBinaryOperatorExpression(typed)
	case *ast.PrefixUnaryExpression:
		return w.visitor.ReplacePrefixUnaryExpression(typed)
	case *ast.PostfixUnaryExpression:
		return w.visitor.ReplacePostfixUnaryExpression(typed)
	case *ast.IfExpression:
		return w.visitor.ReplaceIfExpression(typed)
	case *ast.CallExpression:
		return w.visitor.ReplaceCallExpression(typed)
	case *ast.ClosureExpression:
		return w.visitor.ReplaceClosureExpression(typed)
	case *ast.LiteralIntExpression:
		return w.visitor.ReplaceLiteralIntExpression(typed)
	case *ast.LiteralUIntExpression:
		return w.visitor.ReplaceLiteralUIntExpression(typed)
	case *ast.LiteralDoubleExpression:
		return w.visitor.ReplaceLiteralDoubleExpression(typed)
	case *ast.LiteralFloatExpression:
		return w.visitor.ReplaceLiteralFloatExpression(typed)
	case *ast.LiteralBoolExpression:
		return w.visitor.ReplaceLiteralBoolExpression(typed)
	case *ast.LiteralStringExpression:
		return w.visitor.ReplaceLiteralStringExpression(typed)
	case *ast.LiteralCharacterExpression:
		return w.visitor.ReplaceLiteralCharacterExpression(typed)
	case *ast.NilLiteralExpression:
		return w.visitor.ReplaceNilLiteralExpression(typed)
	case *ast.InterpolatedStringLiteralExpression:
		return w.visitor.ReplaceInterpolatedStringLiteralExpression(typed)
	case *ast.TupleExpression:
		return w.visitor.ReplaceTupleExpression(typed)
	case *ast.TupleShuffleExpression:
		return w.visitor.ReplaceTupleShuffleExpression(typed)
	case *ast.ErrorExpression:
		return w.visitor.ReplaceErrorExpression(typed)
	}

	w.Context.Diagnostics.AppendError(w.Scope.Path, nil,
		"pass cannot dispatch unknown expression variant %T", expression)
	return &ast.ErrorExpression{}
}

// replaceExpressionOrNil transforms an optional expression.
func (w *Walker) replaceExpressionOrNil(expression ast.Expression) ast.Expression {
	if expression == nil {
		return nil
	}
	return w.visitor.ReplaceExpression(expression)
}

// ReplaceFunctionData reconstructs a function declaration's contents.
func (w *Walker) ReplaceFunctionData(data ast.FunctionDeclarationData) ast.FunctionDeclarationData {
	result := data
	result.Parameters = make([]ast.FunctionParameter, len(data.Parameters))
	for i, parameter := range data.Parameters {
		result.Parameters[i] = parameter
		result.Parameters[i].Value = w.replaceExpressionOrNil(parameter.Value)
	}
	result.Statements = w.ReplaceStatements(data.Statements)
	return result
}

// ReplaceVariableData reconstructs a variable declaration's contents.
func (w *Walker) ReplaceVariableData(data ast.VariableDeclarationData) ast.VariableDeclarationData {
	result := data
	result.Expression = w.replaceExpressionOrNil(data.Expression)
	if data.Getter != nil {
		getter := w.ReplaceFunctionData(*data.Getter)
		result.Getter = &getter
	}
	if data.Setter != nil {
		setter := w.ReplaceFunctionData(*data.Setter)
		result.Setter = &setter
	}
	return result
}

// ReplaceIfData reconstructs an if statement's contents, following the
// else-if chain.
func (w *Walker) ReplaceIfData(data ast.IfStatementData) ast.IfStatementData {
	result := data
	result.Conditions = make([]ast.IfCondition, len(data.Conditions))
	for i, condition := range data.Conditions {
		if condition.Expression != nil {
			result.Conditions[i] = ast.IfCondition{
				Expression: w.visitor.ReplaceExpression(condition.Expression),
			}
			continue
		}
		declaration := w.ReplaceVariableData(*condition.Declaration)
		result.Conditions[i] = ast.IfCondition{Declaration: &declaration}
	}
	result.Declarations = w.ReplaceStatements(data.Declarations)
	result.Statements = w.ReplaceStatements(data.Statements)
	if data.ElseStatement != nil {
		elseData := w.ReplaceIfData(*data.ElseStatement)
		result.ElseStatement = &elseData
	}
	return result
}

// Statement defaults.

func (w *Walker) ReplaceExpressionStatement(statement *ast.ExpressionStatement) []ast.Statement {
	return []ast.Statement{&ast.ExpressionStatement{
		Expression: w.visitor.ReplaceExpression(statement.Expression),
	}}
}

func (w *Walker) ReplaceTypealiasDeclaration(statement *ast.TypealiasDeclaration) []ast.Statement {
	return []ast.Statement{statement}
}

func (w *Walker) ReplaceExtensionDeclaration(statement *ast.ExtensionDeclaration) []ast.Statement {
	return []ast.Statement{&ast.ExtensionDeclaration{
		TypeName: statement.TypeName,
		Members:  w.ReplaceStatements(statement.Members),
	}}
}

func (w *Walker) ReplaceImportDeclaration(statement *ast.ImportDeclaration) []ast.Statement {
	return []ast.Statement{statement}
}

func (w *Walker) ReplaceClassDeclaration(statement *ast.ClassDeclaration) []ast.Statement {
	return []ast.Statement{&ast.ClassDeclaration{
		ClassName: statement.ClassName,
		Inherits:  statement.Inherits,
		Members:   w.ReplaceStatements(statement.Members),
	}}
}

func (w *Walker) ReplaceCompanionObject(statement *ast.CompanionObject) []ast.Statement {
	return []ast.Statement{&ast.CompanionObject{
		Members: w.ReplaceStatements(statement.Members),
	}}
}

func (w *Walker) ReplaceEnumDeclaration(statement *ast.EnumDeclaration) []ast.Statement {
	elements := make([]*ast.EnumElement, len(statement.Elements))
	for i, element := range statement.Elements {
		copied := *element
		copied.RawValue = w.replaceExpressionOrNil(element.RawValue)
		elements[i] = &copied
	}
	return []ast.Statement{&ast.EnumDeclaration{
		Access:     statement.Access,
		EnumName:   statement.EnumName,
		Inherits:   statement.Inherits,
		Elements:   elements,
		Members:    w.ReplaceStatements(statement.Members),
		IsImplicit: statement.IsImplicit,
	}}
}

func (w *Walker) ReplaceProtocolDeclaration(statement *ast.ProtocolDeclaration) []ast.Statement {
	return []ast.Statement{&ast.ProtocolDeclaration{
		ProtocolName: statement.ProtocolName,
		Members:      w.ReplaceStatements(statement.Members),
	}}
}

func (w *Walker) ReplaceStructDeclaration(statement *ast.StructDeclaration) []ast.Statement {
	return []ast.Statement{&ast.StructDeclaration{
		Annotations: statement.Annotations,
		StructName:  statement.StructName,
		Inherits:    statement.Inherits,
		Members:     w.ReplaceStatements(statement.Members),
	}}
}

func (w *Walker) ReplaceFunctionDeclaration(statement *ast.FunctionDeclaration) []ast.Statement {
	return []ast.Statement{&ast.FunctionDeclaration{
		FunctionDeclarationData: w.ReplaceFunctionData(statement.FunctionDeclarationData),
	}}
}

func (w *Walker) ReplaceVariableDeclaration(statement *ast.VariableDeclaration) []ast.Statement {
	return []ast.Statement{&ast.VariableDeclaration{
		VariableDeclarationData: w.ReplaceVariableData(statement.VariableDeclarationData),
	}}
}

func (w *Walker) ReplaceForEachStatement(statement *ast.ForEachStatement) []ast.Statement {
	return []ast.Statement{&ast.ForEachStatement{
		Collection: w.visitor.ReplaceExpression(statement.Collection),
		Variable:   w.visitor.ReplaceExpression(statement.Variable),
		Statements: w.ReplaceStatements(statement.Statements),
	}}
}

func (w *Walker) ReplaceWhileStatement(statement *ast.WhileStatement) []ast.Statement {
	return []ast.Statement{&ast.WhileStatement{
		Expression: w.visitor.ReplaceExpression(statement.Expression),
		Statements: w.ReplaceStatements(statement.Statements),
	}}
}

func (w *Walker) ReplaceIfStatement(statement *ast.IfStatement) []ast.Statement {
	return []ast.Statement{&ast.IfStatement{
		IfStatementData: w.ReplaceIfData(statement.IfStatementData),
	}}
}

func (w *Walker) ReplaceSwitchStatement(statement *ast.SwitchStatement) []ast.Statement {
	cases := make([]ast.SwitchCase, len(statement.Cases))
	for i, switchCase := range statement.Cases {
		expressions := make([]ast.Expression, len(switchCase.Expressions))
		for j, expression := range switchCase.Expressions {
			expressions[j] = w.visitor.ReplaceExpression(expression)
		}
		cases[i] = ast.SwitchCase{
			Expressions: expressions,
			Statements:  w.ReplaceStatements(switchCase.Statements),
		}
	}

	var converts ast.Statement
	if statement.ConvertsToExpression != nil {
		replaced := w.visitor.ReplaceStatement(statement.ConvertsToExpression)
		if len(replaced) == 1 {
			converts = replaced[0]
		}
	}
	return []ast.Statement{&ast.SwitchStatement{
		ConvertsToExpression: converts,
		Expression:           w.visitor.ReplaceExpression(statement.Expression),
		Cases:                cases,
	}}
}

func (w *Walker) ReplaceDeferStatement(statement *ast.DeferStatement) []ast.Statement {
	return []ast.Statement{&ast.DeferStatement{
		Statements: w.ReplaceStatements(statement.Statements),
	}}
}

func (w *Walker) ReplaceThrowStatement(statement *ast.ThrowStatement) []ast.Statement {
	return []ast.Statement{&ast.ThrowStatement{
		Expression: w.visitor.ReplaceExpression(statement.Expression),
	}}
}

func (w *Walker) ReplaceReturnStatement(statement *ast.ReturnStatement) []ast.Statement {
	return []ast.Statement{&ast.ReturnStatement{
		Expression: w.replaceExpressionOrNil(statement.Expression),
	}}
}

func (w *Walker) ReplaceBreakStatement(statement *ast.BreakStatement) []ast.Statement {
	return []ast.Statement{statement}
}

func (w *Walker) ReplaceContinueStatement(statement *ast.ContinueStatement) []ast.Statement {
	return []ast.Statement{statement}
}

func (w *Walker) ReplaceAssignmentStatement(statement *ast.AssignmentStatement) []ast.Statement {
	// A nil right-hand side is the marker form used by a switch's
	// converts-to-expression slot.
	return []ast.Statement{&ast.AssignmentStatement{
		LeftHand:  w.visitor.ReplaceExpression(statement.LeftHand),
		RightHand: w.replaceExpressionOrNil(statement.RightHand),
	}}
}

func (w *Walker) ReplaceErrorStatement(statement *ast.ErrorStatement) []ast.Statement {
	return []ast.Statement{statement}
}

// Expression defaults.

func (w *Walker) ReplaceLiteralCodeExpression(expression *ast.LiteralCodeExpression) ast.Expression {
	return expression
}

func (w *Walker) ReplaceLiteralDeclarationExpression(expression *ast.LiteralDeclarationExpression) ast.Expression {
	return expression
}

func (w *Walker) ReplaceTemplateExpression(expression *ast.TemplateExpression) ast.Expression {
	matches := make(map[string]ast.Expression, len(expression.Matches))
	for name, bound := range expression.Matches {
		matches[name] = w.visitor.ReplaceExpression(bound)
	}
	return &ast.TemplateExpression{Pattern: expression.Pattern, Matches: matches}
}

func (w *Walker) ReplaceParenthesesExpression(expression *ast.ParenthesesExpression) ast.Expression {
	return &ast.ParenthesesExpression{
		Expression: w.visitor.ReplaceExpression(expression.Expression),
	}
}

func (w *Walker) ReplaceForceValueExpression(expression *ast.ForceValueExpression) ast.Expression {
	return &ast.ForceValueExpression{
		Expression: w.visitor.ReplaceExpression(expression.Expression),
	}
}

func (w *Walker) ReplaceOptionalExpression(expression *ast.OptionalExpression) ast.Expression {
	return &ast.OptionalExpression{
		Expression: w.visitor.ReplaceExpression(expression.Expression),
	}
}

func (w *Walker) ReplaceDeclarationReferenceExpression(expression *ast.DeclarationReferenceExpression) ast.Expression {
	return expression
}

func (w *Walker) ReplaceTypeExpression(expression *ast.TypeExpression) ast.Expression {
	return expression
}

func (w *Walker) ReplaceSubscriptExpression(expression *ast.SubscriptExpression) ast.Expression {
	return &ast.SubscriptExpression{
		SubscriptedExpression: w.visitor.ReplaceExpression(expression.SubscriptedExpression),
		IndexExpression:       w.visitor.ReplaceExpression(expression.IndexExpression),
		TypeName:              expression.TypeName,
	}
}

func (w *Walker) ReplaceArrayExpression(expression *ast.ArrayExpression) ast.Expression {
	elements := make([]ast.Expression, len(expression.Elements))
	for i, element := range expression.Elements {
		elements[i] = w.visitor.ReplaceExpression(element)
	}
	return &ast.ArrayExpression{Elements: elements, TypeName: expression.TypeName}
}

func (w *Walker) ReplaceDictionaryExpression(expression *ast.DictionaryExpression) ast.Expression {
	keys := make([]ast.Expression, len(expression.Keys))
	values := make([]ast.Expression, len(expression.Values))
	for i := range expression.Keys {
		keys[i] = w.visitor.ReplaceExpression(expression.Keys[i])
		values[i] = w.visitor.ReplaceExpression(expression.Values[i])
	}
	return &ast.DictionaryExpression{Keys: keys, Values: values, TypeName: expression.TypeName}
}

func (w *Walker) ReplaceReturnExpression(expression *ast.ReturnExpression) ast.Expression {
	return &ast.ReturnExpression{
		Expression: w.replaceExpressionOrNil(expression.Expression),
	}
}

func (w *Walker) ReplaceDotExpression(expression *ast.DotExpression) ast.Expression {
	return &ast.DotExpression{
		LeftExpression:  w.visitor.ReplaceExpression(expression.LeftExpression),
		RightExpression: w.visitor.ReplaceExpression(expression.RightExpression),
	}
}

func (w *Walker) ReplaceBinaryOperatorExpression(expression *ast.BinaryOperatorExpression) ast.Expression {
	return &ast.BinaryOperatorExpression{
		LeftExpression:  w.visitor.ReplaceExpression(expression.LeftExpression),
		RightExpression: w.visitor.ReplaceExpression(expression.RightExpression),
		OperatorSymbol:  expression.OperatorSymbol,
		TypeName:        expression.TypeName,
	}
}

func (w *Walker) ReplacePrefixUnaryExpression(expression *ast.PrefixUnaryExpression) ast.Expression {
	return &ast.PrefixUnaryExpression{
		Expression:     w.visitor.ReplaceExpression(expression.Expression),
		OperatorSymbol: expression.OperatorSymbol,
		TypeName:       expression.TypeName,
	}
}

func (w *Walker) ReplacePostfixUnaryExpression(expression *ast.PostfixUnaryExpression) ast.Expression {
	return &ast.PostfixUnaryExpression{
		Expression:     w.visitor.ReplaceExpression(expression.Expression),
		OperatorSymbol: expression.OperatorSymbol,
		TypeName:       expression.TypeName,
	}
}

func (w *Walker) ReplaceIfExpression(expression *ast.IfExpression) ast.Expression {
	return &ast.IfExpression{
		Condition:       w.visitor.ReplaceExpression(expression.Condition),
		TrueExpression:  w.visitor.ReplaceExpression(expression.TrueExpression),
		FalseExpression: w.visitor.ReplaceExpression(expression.FalseExpression),
	}
}

func (w *Walker) ReplaceCallExpression(expression *ast.CallExpression) ast.Expression {
	return &ast.CallExpression{
		Function:   w.visitor.ReplaceExpression(expression.Function),
		Parameters: w.visitor.ReplaceExpression(expression.Parameters),
		TypeName:   expression.TypeName,
		Range:      expression.Range,
	}
}

func (w *Walker) ReplaceClosureExpression(expression *ast.ClosureExpression) ast.Expression {
	return &ast.ClosureExpression{
		Parameters: expression.Parameters,
		Statements: w.ReplaceStatements(expression.Statements),
		TypeName:   expression.TypeName,
	}
}

func (w *Walker) ReplaceLiteralIntExpression(expression *ast.LiteralIntExpression) ast.Expression {
	return expression
}

func (w *Walker) ReplaceLiteralUIntExpression(expression *ast.LiteralUIntExpression) ast.Expression {
	return expression
}

func (w *Walker) ReplaceLiteralDoubleExpression(expression *ast.LiteralDoubleExpression) ast.Expression {
	return expression
}

func (w *Walker) ReplaceLiteralFloatExpression(expression *ast.LiteralFloatExpression) ast.Expression {
	return expression
}

func (w *Walker) ReplaceLiteralBoolExpression(expression *ast.LiteralBoolExpression) ast.Expression {
	return expression
}

func (w *Walker) ReplaceLiteralStringExpression(expression *ast.LiteralStringExpression) ast.Expression {
	return expression
}

func (w *Walker) ReplaceLiteralCharacterExpression(expression *ast.LiteralCharacterExpression) ast.Expression {
	return expression
}

func (w *Walker) ReplaceNilLiteralExpression(expression *ast.NilLiteralExpression) ast.Expression {
	return expression
}

func (w *Walker) ReplaceInterpolatedStringLiteralExpression(expression *ast.InterpolatedStringLiteralExpression) ast.Expression {
	expressions := make([]ast.Expression, len(expression.Expressions))
	for i, part := range expression.Expressions {
		expressions[i] = w.visitor.ReplaceExpression(part)
	}
	return &ast.InterpolatedStringLiteralExpression{Expressions: expressions}
}

func (w *Walker) ReplaceTupleExpression(expression *ast.TupleExpression) ast.Expression {
	pairs := make([]ast.LabeledExpression, len(expression.Pairs))
	for i, pair := range expression.Pairs {
		pairs[i] = ast.LabeledExpression{
			Label:      pair.Label,
			Expression: w.visitor.ReplaceExpression(pair.Expression),
		}
	}
	return &ast.TupleExpression{Pairs: pairs}
}

func (w *Walker) ReplaceTupleShuffleExpression(expression *ast.TupleShuffleExpression) ast.Expression {
	expressions := make([]ast.Expression, len(expression.Expressions))
	for i, element := range expression.Expressions {
		expressions[i] = w.visitor.ReplaceExpression(element)
	}
	return &ast.TupleShuffleExpression{
		Labels:      expression.Labels,
		Indices:     expression.Indices,
		Expressions: expressions,
	}
}

func (w *Walker) ReplaceErrorExpression(expression *ast.ErrorExpression) ast.Expression {
	return expression
}
