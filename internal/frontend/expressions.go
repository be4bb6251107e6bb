package frontend

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-gryphon/internal/ast"
	"github.com/cwbudde/go-gryphon/internal/astdump"
)

// transparentWrappers are compiler-inserted conversions with no semantic
// content of their own; translation looks through them.
var transparentWrappers = map[string]bool{
	"Load Expression":                       true,
	"Inout Expression":                      true,
	"Function Conversion Expression":        true,
	"Erasure Expression":                    true,
	"Derived To Base Expression":            true,
	"Rebind Self In Constructor Expression": true,
	"Dot Self Expression":                   true,
	"Inject Into Optional":                  true,
	"Covariant Return Conversion Expression": true,
	"Underlying To Opaque Expression":       true,
}

// translateExpressionIfPossible translates the node when it is
// expression-shaped and returns nil otherwise. Statement dispatch uses it
// to fall through to expression statements.
func (t *Translator) translateExpressionIfPossible(node *astdump.SwiftAST) ast.Expression {
	if !t.isExpressionNode(node) {
		return nil
	}
	return t.translateExpression(node)
}

func (t *Translator) isExpressionNode(node *astdump.SwiftAST) bool {
	if transparentWrappers[node.Name] {
		return true
	}
	switch node.Name {
	case "Call Expression", "Dot Syntax Call Expression",
		"Constructor Reference Call Expression", "Declaration Reference Expression",
		"Member Reference Expression", "Type Expression",
		"Binary Expression", "Prefix Unary Expression",
		"Postfix Unary Expression", "If Expression", "Ternary Expression",
		"Parentheses Expression", "Paren Expression",
		"Force Value Expression", "Bind Optional Expression",
		"Optional Evaluation Expression", "Autoclosure Expression",
		"String Literal Expression", "Interpolated String Literal Expression",
		"Integer Literal Expression", "Float Literal Expression",
		"Boolean Literal Expression", "Nil Literal Expression",
		"Array Expression", "Dictionary Expression",
		"Subscript Expression", "Closure Expression",
		"Tuple Expression", "Tuple Shuffle Expression",
		"Tuple Element Expression", "Super Reference Expression",
		"Open Existential Expression", "Optional Try Expression",
		"Try Expression", "Discard Assignment Expression":
		return true
	}
	return false
}

// translateExpression dispatches a single expression-shaped node.
func (t *Translator) translateExpression(node *astdump.SwiftAST) ast.Expression {
	if transparentWrappers[node.Name] {
		if len(node.Subtrees) > 0 {
			return t.translateExpression(node.Subtrees[0])
		}
		return t.reportUnknownExpression(node)
	}

	switch node.Name {
	case "Call Expression", "Constructor Reference Call Expression":
		return t.translateCallExpression(node)
	case "Dot Syntax Call Expression":
		return t.translateDotSyntaxCallExpression(node)
	case "Declaration Reference Expression":
		return t.translateDeclarationReference(node)
	case "Member Reference Expression":
		return t.translateMemberReference(node)
	case "Type Expression":
		return &ast.TypeExpression{TypeName: typeOf(node)}
	case "Binary Expression":
		return t.translateBinaryExpression(node)
	case "Prefix Unary Expression":
		return t.translateUnaryExpression(node, true)
	case "Postfix Unary Expression":
		return t.translateUnaryExpression(node, false)
	case "If Expression", "Ternary Expression":
		return t.translateIfExpression(node)
	case "Parentheses Expression", "Paren Expression":
		if len(node.Subtrees) == 1 {
			return &ast.ParenthesesExpression{Expression: t.translateExpression(node.Subtrees[0])}
		}
		return t.reportUnknownExpression(node)
	case "Force Value Expression":
		if len(node.Subtrees) == 1 {
			return &ast.ForceValueExpression{Expression: t.translateExpression(node.Subtrees[0])}
		}
		return t.reportUnknownExpression(node)
	case "Bind Optional Expression":
		if len(node.Subtrees) == 1 {
			return &ast.OptionalExpression{Expression: t.translateExpression(node.Subtrees[0])}
		}
		return t.reportUnknownExpression(node)
	case "Optional Evaluation Expression", "Autoclosure Expression",
		"Open Existential Expression", "Optional Try Expression", "Try Expression":
		if expression := t.translateFirstExpression(node); expression != nil {
			return expression
		}
		return t.reportUnknownExpression(node)
	case "String Literal Expression":
		return t.translateStringLiteral(node)
	case "Interpolated String Literal Expression":
		return t.translateInterpolatedString(node)
	case "Integer Literal Expression":
		return t.translateIntegerLiteral(node)
	case "Float Literal Expression":
		return t.translateFloatLiteral(node)
	case "Boolean Literal Expression":
		return &ast.LiteralBoolExpression{Value: firstStandalone(node) == "true" || node.Attribute("value") == "true"}
	case "Nil Literal Expression":
		return &ast.NilLiteralExpression{}
	case "Array Expression":
		return t.translateArrayExpression(node)
	case "Dictionary Expression":
		return t.translateDictionaryExpression(node)
	case "Subscript Expression":
		return t.translateSubscriptExpression(node)
	case "Closure Expression":
		return t.translateClosureExpression(node)
	case "Tuple Expression":
		return t.translateTupleExpression(node)
	case "Tuple Shuffle Expression":
		return t.translateTupleShuffleExpression(node)
	case "Tuple Element Expression":
		if expression := t.translateFirstExpression(node); expression != nil {
			return expression
		}
		return t.reportUnknownExpression(node)
	case "Super Reference Expression":
		return &ast.DeclarationReferenceExpression{
			Identifier: "super",
			TypeName:   typeOf(node),
			Range:      t.rangeOf(node),
		}
	case "Discard Assignment Expression":
		return &ast.DeclarationReferenceExpression{Identifier: "_"}
	}
	return t.reportUnknownExpression(node)
}

func (t *Translator) reportUnknownExpression(node *astdump.SwiftAST) ast.Expression {
	t.diagnostics.AppendError(t.sourcePath, t.rangeOf(node),
		"unknown expression node %q", node.Name)
	return &ast.ErrorExpression{}
}

func (t *Translator) translateCallExpression(node *astdump.SwiftAST) ast.Expression {
	var function ast.Expression
	var parameters ast.Expression

	for _, subtree := range node.Subtrees {
		switch subtree.Name {
		case "Tuple Expression", "Paren Expression", "Parentheses Expression":
			if parameters == nil {
				parameters = t.translateCallArguments(subtree)
				continue
			}
		case "Tuple Shuffle Expression", "Argument Shuffle Expression":
			if parameters == nil {
				parameters = t.translateTupleShuffleExpression(subtree)
				continue
			}
		}
		if function == nil && t.isExpressionNode(subtree) {
			function = t.translateExpression(subtree)
		}
	}

	if function == nil {
		return t.reportUnknownExpression(node)
	}
	if parameters == nil {
		parameters = &ast.TupleExpression{}
	}
	return &ast.CallExpression{
		Function:   function,
		Parameters: parameters,
		TypeName:   typeOf(node),
		Range:      t.rangeOf(node),
	}
}

// translateCallArguments normalizes a call's argument subtree into a tuple
// expression, so that CallExpression.Parameters is always a tuple or a
// tuple shuffle.
func (t *Translator) translateCallArguments(node *astdump.SwiftAST) ast.Expression {
	labels := parseNames(node.Attribute("names"))
	var pairs []ast.LabeledExpression
	index := 0
	for _, subtree := range node.Subtrees {
		if !t.isExpressionNode(subtree) {
			continue
		}
		label := ""
		if index < len(labels) && labels[index] != "_" && labels[index] != "" {
			label = labels[index]
		}
		pairs = append(pairs, ast.LabeledExpression{
			Label:      label,
			Expression: t.translateExpression(subtree),
		})
		index++
	}
	return &ast.TupleExpression{Pairs: pairs}
}

// parseNames splits the dump's names attribute ("a,b,_,c" or "''").
func parseNames(raw string) []string {
	raw = strings.Trim(raw, "'\"")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func (t *Translator) translateDotSyntaxCallExpression(node *astdump.SwiftAST) ast.Expression {
	// Shape: (dot_syntax_call_expr (member-fn) (base)). A type-expression
	// base is an implicit member access like Enum.case; other bases are
	// method references.
	if len(node.Subtrees) < 2 {
		if len(node.Subtrees) == 1 {
			return t.translateExpression(node.Subtrees[0])
		}
		return t.reportUnknownExpression(node)
	}

	member := t.translateExpression(node.Subtrees[0])
	base := t.translateExpression(node.Subtrees[1])
	return &ast.DotExpression{LeftExpression: base, RightExpression: member}
}

func (t *Translator) translateDeclarationReference(node *astdump.SwiftAST) ast.Expression {
	declaration := node.Attribute("decl")
	if declaration == "" {
		declaration = firstStandalone(node)
	}
	identifier, isStandardLibrary := parseDeclaration(declaration)
	return &ast.DeclarationReferenceExpression{
		Identifier:        identifier,
		TypeName:          typeOf(node),
		IsStandardLibrary: isStandardLibrary,
		IsImplicit:        node.Standalone("implicit"),
		Range:             t.rangeOf(node),
	}
}

func (t *Translator) translateMemberReference(node *astdump.SwiftAST) ast.Expression {
	identifier, isStandardLibrary := parseDeclaration(node.Attribute("decl"))
	member := &ast.DeclarationReferenceExpression{
		Identifier:        identifier,
		TypeName:          typeOf(node),
		IsStandardLibrary: isStandardLibrary,
		IsImplicit:        node.Standalone("implicit"),
		Range:             t.rangeOf(node),
	}
	if len(node.Subtrees) == 0 {
		return member
	}
	base := t.translateExpression(node.Subtrees[0])
	return &ast.DotExpression{LeftExpression: base, RightExpression: member}
}

// parseDeclaration extracts the referenced identifier from a dump
// declaration token like "Swift.(file).Int.min@/path:12:4" and reports
// whether it belongs to the standard library. Operator components consume
// the rest of the token, so "Swift.(file)...<" yields "..<".
func parseDeclaration(declaration string) (string, bool) {
	if declaration == "" {
		return "", false
	}
	isStandardLibrary := strings.HasPrefix(declaration, "Swift.")

	// Strip a trailing @location.
	if at := strings.IndexByte(declaration, '@'); at >= 0 {
		declaration = declaration[:at]
	}

	// Walk the dotted components left to right. A component starting with
	// an identifier character or a parenthesized module scope runs to the
	// next top-level dot; anything else is an operator spelling and runs
	// to the end of the token.
	identifier := declaration
	rest := declaration
	for {
		if rest == "" || !isIdentifierStart(rest[0]) && rest[0] != '(' {
			identifier = rest
			break
		}
		end := componentEnd(rest)
		if end >= len(rest) {
			identifier = rest
			break
		}
		rest = rest[end+1:]
	}

	identifier = strings.TrimSuffix(identifier, "()")
	if identifier == "" {
		identifier = declaration
	}
	return identifier, isStandardLibrary
}

func isIdentifierStart(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}

// componentEnd finds the dot terminating the current component, honoring
// parenthesis nesting.
func componentEnd(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '.':
			if depth == 0 {
				return i
			}
		}
	}
	return len(s)
}

func (t *Translator) translateBinaryExpression(node *astdump.SwiftAST) ast.Expression {
	// Shape: (binary_expr (operator-ref) (tuple_expr lhs rhs)).
	var operator ast.Expression
	var operands []*astdump.SwiftAST

	for _, subtree := range node.Subtrees {
		if subtree.Name == "Tuple Expression" {
			for _, element := range subtree.Subtrees {
				if t.isExpressionNode(element) {
					operands = append(operands, element)
				}
			}
			continue
		}
		if operator == nil && t.isExpressionNode(subtree) {
			operator = t.translateExpression(subtree)
		}
	}

	if operator == nil || len(operands) != 2 {
		return t.reportUnknownExpression(node)
	}
	return &ast.BinaryOperatorExpression{
		LeftExpression:  t.translateExpression(operands[0]),
		RightExpression: t.translateExpression(operands[1]),
		OperatorSymbol:  operatorSymbol(operator),
		TypeName:        typeOf(node),
	}
}

func (t *Translator) translateUnaryExpression(node *astdump.SwiftAST, prefix bool) ast.Expression {
	var operator ast.Expression
	var operand ast.Expression

	for _, subtree := range node.Subtrees {
		if !t.isExpressionNode(subtree) {
			continue
		}
		if operator == nil {
			operator = t.translateExpression(subtree)
			continue
		}
		if operand == nil {
			operand = t.translateExpression(subtree)
		}
	}

	if operator == nil || operand == nil {
		return t.reportUnknownExpression(node)
	}
	if prefix {
		return &ast.PrefixUnaryExpression{
			Expression:     operand,
			OperatorSymbol: operatorSymbol(operator),
			TypeName:       typeOf(node),
		}
	}
	return &ast.PostfixUnaryExpression{
		Expression:     operand,
		OperatorSymbol: operatorSymbol(operator),
		TypeName:       typeOf(node),
	}
}

// operatorSymbol digs the operator's spelling out of its reference
// expression.
func operatorSymbol(expression ast.Expression) string {
	switch typed := expression.(type) {
	case *ast.DeclarationReferenceExpression:
		return typed.Identifier
	case *ast.DotExpression:
		return operatorSymbol(typed.RightExpression)
	default:
		return ""
	}
}

func (t *Translator) translateIfExpression(node *astdump.SwiftAST) ast.Expression {
	var expressions []ast.Expression
	for _, subtree := range node.Subtrees {
		if t.isExpressionNode(subtree) {
			expressions = append(expressions, t.translateExpression(subtree))
		}
	}
	if len(expressions) != 3 {
		return t.reportUnknownExpression(node)
	}
	return &ast.IfExpression{
		Condition:       expressions[0],
		TrueExpression:  expressions[1],
		FalseExpression: expressions[2],
	}
}

func (t *Translator) translateStringLiteral(node *astdump.SwiftAST) ast.Expression {
	value := node.Attribute("value")
	value = unquote(value)
	return &ast.LiteralStringExpression{
		Value:       value,
		IsMultiline: node.Standalone("multiline"),
	}
}

func (t *Translator) translateInterpolatedString(node *astdump.SwiftAST) ast.Expression {
	var parts []ast.Expression
	for _, subtree := range node.Subtrees {
		if !t.isExpressionNode(subtree) {
			// Modern dumps nest segments in a tap expression body.
			parts = append(parts, t.collectInterpolationSegments(subtree)...)
			continue
		}
		parts = append(parts, t.translateExpression(subtree))
	}
	if len(parts) == 0 {
		return &ast.LiteralStringExpression{Value: unquote(node.Attribute("value"))}
	}
	return &ast.InterpolatedStringLiteralExpression{Expressions: parts}
}

func (t *Translator) collectInterpolationSegments(node *astdump.SwiftAST) []ast.Expression {
	var result []ast.Expression
	for _, subtree := range node.Subtrees {
		if t.isExpressionNode(subtree) {
			result = append(result, t.translateExpression(subtree))
			continue
		}
		result = append(result, t.collectInterpolationSegments(subtree)...)
	}
	return result
}

func (t *Translator) translateIntegerLiteral(node *astdump.SwiftAST) ast.Expression {
	raw := node.Attribute("value")
	typeName := typeOf(node)

	if strings.HasPrefix(typeName, "UInt") {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return t.reportUnknownExpression(node)
		}
		return &ast.LiteralUIntExpression{Value: value}
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return t.reportUnknownExpression(node)
	}
	if typeName == "Double" {
		return &ast.LiteralDoubleExpression{Value: float64(value)}
	}
	if typeName == "Float" {
		return &ast.LiteralFloatExpression{Value: float64(value)}
	}
	return &ast.LiteralIntExpression{Value: value}
}

func (t *Translator) translateFloatLiteral(node *astdump.SwiftAST) ast.Expression {
	value, err := strconv.ParseFloat(node.Attribute("value"), 64)
	if err != nil {
		return t.reportUnknownExpression(node)
	}
	if typeOf(node) == "Float" {
		return &ast.LiteralFloatExpression{Value: value}
	}
	return &ast.LiteralDoubleExpression{Value: value}
}

func (t *Translator) translateArrayExpression(node *astdump.SwiftAST) ast.Expression {
	var elements []ast.Expression
	for _, subtree := range node.Subtrees {
		if t.isExpressionNode(subtree) {
			elements = append(elements, t.translateExpression(subtree))
		}
	}
	return &ast.ArrayExpression{Elements: elements, TypeName: typeOf(node)}
}

func (t *Translator) translateDictionaryExpression(node *astdump.SwiftAST) ast.Expression {
	var keys []ast.Expression
	var values []ast.Expression
	for _, subtree := range node.Subtrees {
		// Each entry is a tuple of (key, value).
		if subtree.Name != "Tuple Expression" {
			continue
		}
		var pair []ast.Expression
		for _, element := range subtree.Subtrees {
			if t.isExpressionNode(element) {
				pair = append(pair, t.translateExpression(element))
			}
		}
		if len(pair) == 2 {
			keys = append(keys, pair[0])
			values = append(values, pair[1])
		}
	}
	return &ast.DictionaryExpression{Keys: keys, Values: values, TypeName: typeOf(node)}
}

func (t *Translator) translateSubscriptExpression(node *astdump.SwiftAST) ast.Expression {
	var base ast.Expression
	var index ast.Expression
	for _, subtree := range node.Subtrees {
		if !t.isExpressionNode(subtree) {
			continue
		}
		if base == nil {
			base = t.translateExpression(subtree)
			continue
		}
		if index == nil {
			index = t.translateExpression(subtree)
			if tuple, ok := index.(*ast.TupleExpression); ok && len(tuple.Pairs) == 1 {
				index = tuple.Pairs[0].Expression
			}
		}
	}
	if base == nil || index == nil {
		return t.reportUnknownExpression(node)
	}
	return &ast.SubscriptExpression{
		SubscriptedExpression: base,
		IndexExpression:       index,
		TypeName:              typeOf(node),
	}
}

func (t *Translator) translateClosureExpression(node *astdump.SwiftAST) ast.Expression {
	var parameters []ast.LabeledType
	var statements []ast.Statement

	if parameterList := node.Subtree("Parameter List"); parameterList != nil {
		for _, parameter := range parameterList.Subtrees {
			if parameter.Name != "Parameter" {
				continue
			}
			parameters = append(parameters, ast.LabeledType{
				Label: firstStandalone(parameter),
				Type:  typeOf(parameter),
			})
		}
	}

	if brace := node.Subtree("Brace Statement"); brace != nil {
		statements = t.translateBraceStatement(brace)
	} else if expression := t.translateFirstExpression(node); expression != nil {
		// Single-expression closures carry the body directly.
		statements = []ast.Statement{&ast.ExpressionStatement{Expression: expression}}
	}

	return &ast.ClosureExpression{
		Parameters: parameters,
		Statements: statements,
		TypeName:   typeOf(node),
	}
}

func (t *Translator) translateTupleExpression(node *astdump.SwiftAST) ast.Expression {
	return t.translateCallArguments(node)
}

func (t *Translator) translateTupleShuffleExpression(node *astdump.SwiftAST) ast.Expression {
	labels := parseNames(node.Attribute("elements"))
	if labels == nil {
		labels = parseNames(node.Attribute("names"))
	}
	indices := parseShuffleIndices(node.Attribute("pattern"))

	var expressions []ast.Expression
	for _, subtree := range node.Subtrees {
		if !t.isExpressionNode(subtree) {
			continue
		}
		translated := t.translateExpression(subtree)
		if tuple, ok := translated.(*ast.TupleExpression); ok {
			for _, pair := range tuple.Pairs {
				expressions = append(expressions, pair.Expression)
			}
			continue
		}
		expressions = append(expressions, translated)
	}

	return &ast.TupleShuffleExpression{
		Labels:      labels,
		Indices:     indices,
		Expressions: expressions,
	}
}

// parseShuffleIndices parses the dump's shuffle pattern: a space-separated
// list where "#N" is a variadic slot consuming N expressions, "x" is an
// absent (defaulted) slot, and any number is a present slot.
func parseShuffleIndices(raw string) []ast.TupleShuffleIndex {
	raw = strings.Trim(raw, "[]'")
	if raw == "" {
		return nil
	}
	var result []ast.TupleShuffleIndex
	for _, field := range strings.Fields(strings.ReplaceAll(raw, ",", " ")) {
		switch {
		case strings.HasPrefix(field, "#"):
			count, _ := strconv.Atoi(field[1:])
			result = append(result, ast.TupleShuffleIndex{Kind: ast.TupleShuffleVariadic, Count: count})
		case field == "x", field == "_":
			result = append(result, ast.TupleShuffleIndex{Kind: ast.TupleShuffleAbsent})
		default:
			result = append(result, ast.TupleShuffleIndex{Kind: ast.TupleShufflePresent})
		}
	}
	return result
}
