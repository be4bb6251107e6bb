// Package frontend lowers the raw SwiftAST tree into the intermediate
// Gryphon AST. The walk is a single pass dispatching on expanded node
// names; unknown shapes produce Error variants and a diagnostic, never a
// panic.
package frontend

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-gryphon/internal/ast"
	"github.com/cwbudde/go-gryphon/internal/astdump"
	"github.com/cwbudde/go-gryphon/internal/errors"
)

// Translator converts one file's SwiftAST into a Gryphon AST source file.
type Translator struct {
	sourcePath  string
	diagnostics *errors.List

	// danglingPatternBindings holds initializer expressions from
	// pattern-binding declarations until the matching variable
	// declaration consumes them. The dump always emits the binding
	// before the variable it initializes.
	danglingPatternBindings []patternBinding
}

type patternBinding struct {
	identifier string
	typeName   string
	expression ast.Expression
}

// New creates a translator for the given source path, reporting into the
// given diagnostic list.
func New(sourcePath string, diagnostics *errors.List) *Translator {
	return &Translator{
		sourcePath:  sourcePath,
		diagnostics: diagnostics,
	}
}

// TranslateAST lowers the decoded dump of a whole file. Translation never
// fails as a whole: untranslatable constructs become Error variants and a
// recorded diagnostic.
func (t *Translator) TranslateAST(root *astdump.SwiftAST) *ast.SourceFile {
	file := &ast.SourceFile{Path: t.sourcePath}
	if root.Name != "Source File" {
		t.diagnostics.AppendError(t.sourcePath, nil,
			"expected a Source File dump, got %q", root.Name)
		return file
	}

	for _, subtree := range root.Subtrees {
		file.Statements = append(file.Statements, t.translateStatements(subtree)...)
	}
	return file
}

// translateStatements translates one dump node into zero or more
// statements. Container nodes (top-level code, pattern bindings) expand or
// vanish; everything else yields exactly one statement.
func (t *Translator) translateStatements(node *astdump.SwiftAST) []ast.Statement {
	switch node.Name {
	case "Top Level Code Declaration":
		if brace := node.Subtree("Brace Statement"); brace != nil {
			return t.translateBraceStatement(brace)
		}
		return nil
	case "Pattern Binding Declaration":
		t.processPatternBindingDeclaration(node)
		return nil
	case "Brace Statement":
		return t.translateBraceStatement(node)
	default:
		statement := t.translateStatement(node)
		if statement == nil {
			return nil
		}
		return []ast.Statement{statement}
	}
}

func (t *Translator) translateBraceStatement(brace *astdump.SwiftAST) []ast.Statement {
	var result []ast.Statement
	for _, subtree := range brace.Subtrees {
		result = append(result, t.translateStatements(subtree)...)
	}
	return result
}

// translateStatement dispatches a single statement-shaped node.
func (t *Translator) translateStatement(node *astdump.SwiftAST) ast.Statement {
	switch node.Name {
	case "Import Declaration":
		return &ast.ImportDeclaration{ModuleName: firstStandalone(node)}
	case "Typealias", "Typealias Declaration":
		return t.translateTypealiasDeclaration(node)
	case "Class Declaration":
		return t.translateClassDeclaration(node)
	case "Struct Declaration":
		return t.translateStructDeclaration(node)
	case "Enum Declaration":
		return t.translateEnumDeclaration(node)
	case "Protocol", "Protocol Declaration":
		return t.translateProtocolDeclaration(node)
	case "Extension Declaration":
		return t.translateExtensionDeclaration(node)
	case "Function Declaration", "Constructor Declaration":
		return t.translateFunctionDeclaration(node)
	case "Variable Declaration":
		return t.translateVariableDeclaration(node)
	case "If Statement", "Guard Statement":
		return t.translateIfStatement(node)
	case "While Statement":
		return t.translateWhileStatement(node)
	case "For Each Statement":
		return t.translateForEachStatement(node)
	case "Switch Statement":
		return t.translateSwitchStatement(node)
	case "Defer Statement":
		return &ast.DeferStatement{Statements: t.translateBraceOf(node)}
	case "Throw Statement":
		return t.translateThrowStatement(node)
	case "Return Statement":
		return t.translateReturnStatement(node)
	case "Break Statement":
		return &ast.BreakStatement{}
	case "Continue Statement":
		return &ast.ContinueStatement{}
	case "Assign Expression":
		return t.translateAssignExpression(node)
	case "Do Catch Statement":
		t.diagnostics.AppendWarning(t.sourcePath, t.rangeOf(node),
			"do-catch statements have no direct equivalent and are not translated")
		return &ast.ErrorStatement{}
	}

	if expression := t.translateExpressionIfPossible(node); expression != nil {
		return &ast.ExpressionStatement{Expression: expression}
	}

	t.diagnostics.AppendError(t.sourcePath, t.rangeOf(node),
		"unknown statement node %q", node.Name)
	return &ast.ErrorStatement{}
}

func (t *Translator) translateThrowStatement(node *astdump.SwiftAST) ast.Statement {
	expression := t.translateFirstExpression(node)
	if expression == nil {
		t.diagnostics.AppendError(t.sourcePath, t.rangeOf(node),
			"throw statement without an expression")
		return &ast.ErrorStatement{}
	}
	return &ast.ThrowStatement{Expression: expression}
}

func (t *Translator) translateReturnStatement(node *astdump.SwiftAST) ast.Statement {
	return &ast.ReturnStatement{Expression: t.translateFirstExpression(node)}
}

func (t *Translator) translateAssignExpression(node *astdump.SwiftAST) ast.Statement {
	if len(node.Subtrees) < 2 {
		t.diagnostics.AppendError(t.sourcePath, t.rangeOf(node),
			"assignment without two operands")
		return &ast.ErrorStatement{}
	}
	leftHand := t.translateExpression(node.Subtrees[0])
	rightHand := t.translateExpression(node.Subtrees[1])
	if isDiscardReference(leftHand) {
		// "_ = expr" keeps only the effect.
		return &ast.ExpressionStatement{Expression: rightHand}
	}
	return &ast.AssignmentStatement{LeftHand: leftHand, RightHand: rightHand}
}

func isDiscardReference(expression ast.Expression) bool {
	reference, ok := expression.(*ast.DeclarationReferenceExpression)
	return ok && reference.Identifier == "_"
}

func (t *Translator) translateWhileStatement(node *astdump.SwiftAST) ast.Statement {
	var condition ast.Expression
	var body []ast.Statement
	for _, subtree := range node.Subtrees {
		if subtree.Name == "Brace Statement" {
			body = t.translateBraceStatement(subtree)
			continue
		}
		if condition == nil {
			condition = t.translateExpression(subtree)
		}
	}
	if condition == nil {
		t.diagnostics.AppendError(t.sourcePath, t.rangeOf(node),
			"while statement without a condition")
		return &ast.ErrorStatement{}
	}
	return &ast.WhileStatement{Expression: condition, Statements: body}
}

func (t *Translator) translateForEachStatement(node *astdump.SwiftAST) ast.Statement {
	var variable ast.Expression
	var collection ast.Expression
	var body []ast.Statement

	for _, subtree := range node.Subtrees {
		switch subtree.Name {
		case "Pattern Named":
			variable = &ast.DeclarationReferenceExpression{
				Identifier: patternName(subtree),
				TypeName:   typeOf(subtree),
				Range:      t.rangeOf(subtree),
			}
		case "Pattern Any":
			variable = &ast.DeclarationReferenceExpression{Identifier: "_"}
		case "Brace Statement":
			body = t.translateBraceStatement(subtree)
		default:
			if expression := t.translateExpressionIfPossible(subtree); expression != nil && collection == nil {
				collection = expression
			}
		}
	}

	if variable == nil || collection == nil {
		t.diagnostics.AppendError(t.sourcePath, t.rangeOf(node),
			"for-each statement without a variable or collection")
		return &ast.ErrorStatement{}
	}
	return &ast.ForEachStatement{
		Collection: collection,
		Variable:   variable,
		Statements: body,
	}
}

func (t *Translator) translateIfStatement(node *astdump.SwiftAST) ast.Statement {
	data := t.translateIfStatementData(node)
	return &ast.IfStatement{IfStatementData: data}
}

func (t *Translator) translateIfStatementData(node *astdump.SwiftAST) ast.IfStatementData {
	data := ast.IfStatementData{IsGuard: node.Name == "Guard Statement"}

	var braces []*astdump.SwiftAST
	var elseIf *astdump.SwiftAST

	subtrees := node.Subtrees
	for i := 0; i < len(subtrees); i++ {
		subtree := subtrees[i]
		switch subtree.Name {
		case "Brace Statement":
			braces = append(braces, subtree)
		case "If Statement":
			elseIf = subtree
		case "Pattern", "Pattern Let", "Pattern Optional Some", "Pattern Named", "Pattern Typed":
			declaration, consumed := t.translateConditionBinding(subtrees, i)
			data.Conditions = append(data.Conditions, ast.IfCondition{Declaration: declaration})
			i += consumed
		default:
			if expression := t.translateExpressionIfPossible(subtree); expression != nil {
				data.Conditions = append(data.Conditions, ast.IfCondition{Expression: expression})
			} else {
				t.diagnostics.AppendError(t.sourcePath, t.rangeOf(subtree),
					"unknown condition node %q", subtree.Name)
				data.Conditions = append(data.Conditions, ast.IfCondition{Expression: &ast.ErrorExpression{}})
			}
		}
	}

	switch {
	case data.IsGuard:
		// A guard's single brace is its else body.
		if len(braces) > 0 {
			data.Statements = t.translateBraceStatement(braces[0])
		}
	default:
		if len(braces) > 0 {
			data.Statements = t.translateBraceStatement(braces[0])
		}
		if len(braces) > 1 {
			elseData := ast.IfStatementData{
				Statements: t.translateBraceStatement(braces[1]),
			}
			data.ElseStatement = &elseData
		} else if elseIf != nil {
			elseData := t.translateIfStatementData(elseIf)
			data.ElseStatement = &elseData
		}
	}
	return data
}

// translateConditionBinding translates an optional-binding condition: a
// pattern subtree followed by its initializer expression. It returns the
// number of extra subtrees consumed.
func (t *Translator) translateConditionBinding(subtrees []*astdump.SwiftAST, index int) (*ast.VariableDeclarationData, int) {
	pattern := subtrees[index]
	declaration := &ast.VariableDeclarationData{
		Identifier: patternName(pattern),
		TypeName:   patternType(pattern),
		IsLet:      pattern.Name != "Pattern Variable",
	}

	if index+1 < len(subtrees) {
		if expression := t.translateExpressionIfPossible(subtrees[index+1]); expression != nil {
			declaration.Expression = expression
			return declaration, 1
		}
	}
	return declaration, 0
}

func (t *Translator) translateSwitchStatement(node *astdump.SwiftAST) ast.Statement {
	var scrutinee ast.Expression
	var cases []ast.SwitchCase

	for _, subtree := range node.Subtrees {
		if subtree.Name == "Case Statement" {
			cases = append(cases, t.translateSwitchCase(subtree))
			continue
		}
		if scrutinee == nil {
			if expression := t.translateExpressionIfPossible(subtree); expression != nil {
				scrutinee = expression
			}
		}
	}

	if scrutinee == nil {
		t.diagnostics.AppendError(t.sourcePath, t.rangeOf(node),
			"switch statement without a scrutinee")
		return &ast.ErrorStatement{}
	}
	return &ast.SwitchStatement{Expression: scrutinee, Cases: cases}
}

func (t *Translator) translateSwitchCase(node *astdump.SwiftAST) ast.SwitchCase {
	var result ast.SwitchCase
	for _, subtree := range node.Subtrees {
		switch subtree.Name {
		case "Case Label Item":
			if expression := t.translateCaseLabelItem(subtree); expression != nil {
				result.Expressions = append(result.Expressions, expression)
			}
		case "Brace Statement":
			result.Statements = append(result.Statements, t.translateBraceStatement(subtree)...)
		default:
			result.Statements = append(result.Statements, t.translateStatements(subtree)...)
		}
	}
	return result
}

// translateCaseLabelItem translates one pattern of a case label. The
// default case has no pattern expression and returns nil.
func (t *Translator) translateCaseLabelItem(node *astdump.SwiftAST) ast.Expression {
	for _, subtree := range node.Subtrees {
		switch subtree.Name {
		case "Pattern Any":
			return nil
		case "Pattern Let", "Pattern Expression", "Pattern Typed":
			if inner := t.firstExpressionIn(subtree); inner != nil {
				return inner
			}
		default:
			if expression := t.translateExpressionIfPossible(subtree); expression != nil {
				return expression
			}
		}
	}
	return nil
}

func (t *Translator) firstExpressionIn(node *astdump.SwiftAST) ast.Expression {
	for _, subtree := range node.Subtrees {
		if expression := t.translateExpressionIfPossible(subtree); expression != nil {
			return expression
		}
		if inner := t.firstExpressionIn(subtree); inner != nil {
			return inner
		}
	}
	return nil
}

// translateBraceOf translates the node's brace subtree, or nothing.
func (t *Translator) translateBraceOf(node *astdump.SwiftAST) []ast.Statement {
	if brace := node.Subtree("Brace Statement"); brace != nil {
		return t.translateBraceStatement(brace)
	}
	return nil
}

// translateFirstExpression translates the node's first expression subtree,
// or nil when there is none.
func (t *Translator) translateFirstExpression(node *astdump.SwiftAST) ast.Expression {
	for _, subtree := range node.Subtrees {
		if expression := t.translateExpressionIfPossible(subtree); expression != nil {
			return expression
		}
	}
	return nil
}

// rangeOf parses the node's range or location attribute into a source
// range, or nil when the node carries neither.
func (t *Translator) rangeOf(node *astdump.SwiftAST) *ast.SourceRange {
	if raw := node.Attribute("range"); raw != "" {
		if parsed := parseRange(raw, t.sourcePath); parsed != nil {
			return parsed
		}
	}
	if raw := node.Attribute("location"); raw != "" {
		if path, line, column, ok := parseLocation(raw); ok {
			if path == "line" {
				path = t.sourcePath
			}
			return &ast.SourceRange{
				Path:        path,
				LineStart:   line,
				ColumnStart: column,
				LineEnd:     line,
				ColumnEnd:   column,
			}
		}
	}
	return nil
}

// parseRange parses "[path:l:c - line:l:c]" into a source range.
func parseRange(raw, sourcePath string) *ast.SourceRange {
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	parts := strings.Split(raw, " - ")
	if len(parts) != 2 {
		return nil
	}
	startPath, startLine, startColumn, ok := parseLocation(strings.TrimSpace(parts[0]))
	if !ok {
		return nil
	}
	_, endLine, endColumn, ok := parseLocation(strings.TrimSpace(parts[1]))
	if !ok {
		return nil
	}
	if startPath == "line" {
		startPath = sourcePath
	}
	return &ast.SourceRange{
		Path:        startPath,
		LineStart:   startLine,
		ColumnStart: startColumn,
		LineEnd:     endLine,
		ColumnEnd:   endColumn,
	}
}

// parseLocation splits "path:line:column". The dump abbreviates repeated
// paths as "line", which callers substitute with the file's path.
func parseLocation(raw string) (path string, line, column int, ok bool) {
	lastColon := strings.LastIndexByte(raw, ':')
	if lastColon < 0 {
		return "", 0, 0, false
	}
	column, err := strconv.Atoi(raw[lastColon+1:])
	if err != nil {
		return "", 0, 0, false
	}
	rest := raw[:lastColon]
	secondColon := strings.LastIndexByte(rest, ':')
	if secondColon < 0 {
		return "", 0, 0, false
	}
	line, err = strconv.Atoi(rest[secondColon+1:])
	if err != nil {
		return "", 0, 0, false
	}
	return rest[:secondColon], line, column, true
}

// firstStandalone returns the node's first standalone attribute, unquoted.
func firstStandalone(node *astdump.SwiftAST) string {
	if len(node.StandaloneAttributes) == 0 {
		return ""
	}
	return unquote(node.StandaloneAttributes[0])
}

// unquote strips a surrounding double-quote pair.
func unquote(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}

// patternName extracts the bound identifier from a pattern subtree.
func patternName(pattern *astdump.SwiftAST) string {
	if pattern.Name == "Pattern Named" {
		return firstStandalone(pattern)
	}
	for _, subtree := range pattern.Subtrees {
		if name := patternName(subtree); name != "" {
			return name
		}
	}
	if len(pattern.StandaloneAttributes) > 0 {
		return firstStandalone(pattern)
	}
	return ""
}

// patternType finds the bound type of a pattern, descending into nested
// patterns when the outer one carries no type attribute.
func patternType(pattern *astdump.SwiftAST) string {
	if typeName := typeOf(pattern); typeName != "" {
		return typeName
	}
	for _, subtree := range pattern.Subtrees {
		if typeName := patternType(subtree); typeName != "" {
			return typeName
		}
	}
	return ""
}

// typeOf returns the node's cleaned-up type attribute, preferring the
// concrete type over the interface type.
func typeOf(node *astdump.SwiftAST) string {
	if value := node.Attribute("type"); value != "" {
		return ast.CleanUpType(value)
	}
	if value := node.Attribute("interface type"); value != "" {
		return ast.CleanUpType(value)
	}
	return ""
}
