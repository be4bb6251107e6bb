package kotlin

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/go-gryphon/internal/ast"
)

// emitExpression renders one expression. The result may span multiple
// lines for closures with statement bodies.
func (t *Translator) emitExpression(expression ast.Expression) string {
	switch typed := expression.(type) {
	case *ast.LiteralCodeExpression:
		return typed.Value
	case *ast.LiteralDeclarationExpression:
		return typed.Value
	case *ast.TemplateExpression:
		return t.emitTemplateExpression(typed)
	case *ast.ParenthesesExpression:
		return "(" + t.emitExpression(typed.Expression) + ")"
	case *ast.ForceValueExpression:
		return t.emitOperand(typed.Expression) + "!!"
	case *ast.OptionalExpression:
		return t.emitExpression(typed.Expression)
	case *ast.DeclarationReferenceExpression:
		return typed.Identifier
	case *ast.TypeExpression:
		return TranslateType(typed.TypeName)
	case *ast.SubscriptExpression:
		return t.emitOperand(typed.SubscriptedExpression) +
			"[" + t.emitExpression(typed.IndexExpression) + "]"
	case *ast.ArrayExpression:
		return t.emitArrayExpression(typed)
	case *ast.DictionaryExpression:
		return t.emitDictionaryExpression(typed)
	case *ast.ReturnExpression:
		if typed.Expression == nil {
			return "return"
		}
		return "return " + t.emitExpression(typed.Expression)
	case *ast.DotExpression:
		return t.emitDotExpression(typed)
	case *ast.BinaryOperatorExpression:
		return t.emitBinaryOperatorExpression(typed)
	case *ast.PrefixUnaryExpression:
		return typed.OperatorSymbol + t.emitOperand(typed.Expression)
	case *ast.PostfixUnaryExpression:
		return t.emitOperand(typed.Expression) + typed.OperatorSymbol
	case *ast.IfExpression:
		return "if (" + t.emitExpression(typed.Condition) + ") " +
			t.emitExpression(typed.TrueExpression) + " else " +
			t.emitExpression(typed.FalseExpression)
	case *ast.CallExpression:
		return t.emitCallExpression(typed)
	case *ast.ClosureExpression:
		return t.emitClosureExpression(typed)
	case *ast.LiteralIntExpression:
		return strconv.FormatInt(typed.Value, 10)
	case *ast.LiteralUIntExpression:
		return strconv.FormatUint(typed.Value, 10) + "u"
	case *ast.LiteralDoubleExpression:
		return formatDouble(typed.Value)
	case *ast.LiteralFloatExpression:
		return formatDouble(typed.Value) + "f"
	case *ast.LiteralBoolExpression:
		return strconv.FormatBool(typed.Value)
	case *ast.LiteralStringExpression:
		return t.emitStringLiteral(typed)
	case *ast.LiteralCharacterExpression:
		return "'" + typed.Value + "'"
	case *ast.NilLiteralExpression:
		return "null"
	case *ast.InterpolatedStringLiteralExpression:
		return t.emitInterpolatedString(typed)
	case *ast.TupleExpression:
		return "(" + t.emitTuplePairs(typed.Pairs) + ")"
	case *ast.TupleShuffleExpression:
		return "(" + strings.Join(t.shuffleArguments(typed), ", ") + ")"
	case *ast.ErrorExpression:
		return ErrorSentinel
	}

	t.diagnostics.AppendError(t.result.SourcePath, t.lastRange,
		"emitter cannot handle unknown expression variant %T", expression)
	return ErrorSentinel
}

// emitOperand renders a subexpression that appears in operand position,
// parenthesizing shapes that would re-parse differently.
func (t *Translator) emitOperand(expression ast.Expression) string {
	switch expression.(type) {
	case *ast.BinaryOperatorExpression, *ast.IfExpression, *ast.PrefixUnaryExpression:
		return "(" + t.emitExpression(expression) + ")"
	}
	return t.emitExpression(expression)
}

// emitTemplateExpression substitutes the bound subexpressions into the
// replacement pattern. Both the ${name} spelling and the bare placeholder
// name are recognized; longer names substitute first so that one hole's
// name being a prefix of another's cannot corrupt the result.
func (t *Translator) emitTemplateExpression(expression *ast.TemplateExpression) string {
	names := make([]string, 0, len(expression.Matches))
	for name := range expression.Matches {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	result := expression.Pattern
	for _, name := range names {
		emitted := t.emitExpression(expression.Matches[name])
		result = strings.ReplaceAll(result, "${"+name+"}", emitted)
		result = strings.ReplaceAll(result, name, emitted)
	}
	return result
}

func (t *Translator) emitArrayExpression(expression *ast.ArrayExpression) string {
	var elements []string
	for _, element := range expression.Elements {
		elements = append(elements, t.emitExpression(element))
	}
	return "mutableListOf(" + strings.Join(elements, ", ") + ")"
}

func (t *Translator) emitDictionaryExpression(expression *ast.DictionaryExpression) string {
	var entries []string
	for i := range expression.Keys {
		entries = append(entries,
			t.emitExpression(expression.Keys[i])+" to "+t.emitExpression(expression.Values[i]))
	}
	return "mutableMapOf(" + strings.Join(entries, ", ") + ")"
}

func (t *Translator) emitDotExpression(expression *ast.DotExpression) string {
	right := t.emitExpression(expression.RightExpression)
	if optional, ok := expression.LeftExpression.(*ast.OptionalExpression); ok {
		return t.emitOperand(optional.Expression) + "?." + right
	}
	return t.emitOperand(expression.LeftExpression) + "." + right
}

// operatorPrecedence orders binary operators; higher binds tighter.
var operatorPrecedence = map[string]int{
	"*": 7, "/": 7, "%": 7,
	"+": 6, "-": 6,
	"..": 5, "until": 5, "step": 5, "downTo": 5,
	"==": 3, "!=": 3, "<": 4, ">": 4, "<=": 4, ">=": 4,
	"&&": 2,
	"||": 1,
	"?:": 1,
}

func (t *Translator) emitBinaryOperatorExpression(expression *ast.BinaryOperatorExpression) string {
	precedence := operatorPrecedence[expression.OperatorSymbol]
	left := t.emitBinaryOperand(expression.LeftExpression, precedence, false)
	right := t.emitBinaryOperand(expression.RightExpression, precedence, true)
	if expression.OperatorSymbol == ".." {
		// The closed-range operator is written without surrounding spaces.
		return left + ".." + right
	}
	return left + " " + expression.OperatorSymbol + " " + right
}

// emitBinaryOperand parenthesizes a nested binary operand when the
// serialized form would re-parse under a different grouping.
func (t *Translator) emitBinaryOperand(expression ast.Expression, parentPrecedence int, isRight bool) string {
	if nested, ok := expression.(*ast.BinaryOperatorExpression); ok {
		nestedPrecedence := operatorPrecedence[nested.OperatorSymbol]
		if nestedPrecedence < parentPrecedence || (isRight && nestedPrecedence == parentPrecedence) {
			return "(" + t.emitExpression(nested) + ")"
		}
		return t.emitExpression(nested)
	}
	if _, ok := expression.(*ast.IfExpression); ok {
		return "(" + t.emitExpression(expression) + ")"
	}
	return t.emitExpression(expression)
}

func (t *Translator) emitCallExpression(expression *ast.CallExpression) string {
	function := t.emitOperand(expression.Function)

	arguments := t.callArguments(expression.Parameters)

	// Kotlin's trailing-closure convention: a call whose only argument is
	// a closure drops the parentheses.
	if len(arguments) == 1 && isClosureArgument(expression.Parameters) {
		return function + " " + arguments[0]
	}
	return function + "(" + strings.Join(arguments, ", ") + ")"
}

func isClosureArgument(parameters ast.Expression) bool {
	tuple, ok := parameters.(*ast.TupleExpression)
	if !ok || len(tuple.Pairs) != 1 {
		return false
	}
	_, isClosure := tuple.Pairs[0].Expression.(*ast.ClosureExpression)
	return isClosure
}

// callArguments renders the argument list of a call, expanding tuple
// shuffles: absent slots fall back to the callee's defaults, variadic
// slots consume their recorded count of expressions.
func (t *Translator) callArguments(parameters ast.Expression) []string {
	switch typed := parameters.(type) {
	case *ast.TupleExpression:
		var arguments []string
		for _, pair := range typed.Pairs {
			text := t.emitExpression(pair.Expression)
			if pair.Label != "" {
				text = pair.Label + " = " + text
			}
			arguments = append(arguments, text)
		}
		return arguments
	case *ast.TupleShuffleExpression:
		return t.shuffleArguments(typed)
	}

	t.diagnostics.AppendError(t.result.SourcePath, t.lastRange,
		"call parameters must be a tuple or tuple shuffle, got %T", parameters)
	return []string{ErrorSentinel}
}

func (t *Translator) shuffleArguments(shuffle *ast.TupleShuffleExpression) []string {
	var arguments []string
	next := 0
	for i, index := range shuffle.Indices {
		label := ""
		if i < len(shuffle.Labels) && shuffle.Labels[i] != "" && shuffle.Labels[i] != "_" {
			label = shuffle.Labels[i] + " = "
		}
		switch index.Kind {
		case ast.TupleShuffleAbsent:
			// The callee's default value fills this slot.
		case ast.TupleShufflePresent:
			if next < len(shuffle.Expressions) {
				arguments = append(arguments, label+t.emitExpression(shuffle.Expressions[next]))
				next++
			}
		case ast.TupleShuffleVariadic:
			var variadic []string
			for consumed := 0; consumed < index.Count && next < len(shuffle.Expressions); consumed++ {
				variadic = append(variadic, t.emitExpression(shuffle.Expressions[next]))
				next++
			}
			arguments = append(arguments, label+strings.Join(variadic, ", "))
		}
	}
	return arguments
}

func (t *Translator) emitClosureExpression(expression *ast.ClosureExpression) string {
	var parameters []string
	for _, parameter := range expression.Parameters {
		parameters = append(parameters, parameter.Label)
	}
	header := "{ "
	if len(parameters) > 0 {
		header += strings.Join(parameters, ", ") + " -> "
	}

	if len(expression.Statements) == 1 {
		if inline, ok := t.inlineStatement(expression.Statements[0]); ok {
			return header + inline + " }"
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimSuffix(header, " "))
	sb.WriteString(t.renderBlock(expression.Statements))
	sb.WriteString("\n}")
	return sb.String()
}

// renderBlock renders statements into an indented multi-line string for
// use inside an expression, keeping the surrounding emitter state intact.
func (t *Translator) renderBlock(statements []ast.Statement) string {
	saved := t.result
	savedIndent := t.indentLevel
	t.result = &TranslationResult{SourcePath: saved.SourcePath}
	t.indentLevel = 0
	t.emitStatements(statements)
	lines := t.result.Lines
	t.result = saved
	t.indentLevel = savedIndent

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString("\n")
		sb.WriteString(t.config.Indentation)
		sb.WriteString(line.Text)
	}
	return sb.String()
}

func (t *Translator) emitStringLiteral(expression *ast.LiteralStringExpression) string {
	if expression.IsMultiline {
		return "\"\"\"" + expression.Value + "\"\"\""
	}
	return "\"" + escapeString(expression.Value) + "\""
}

func (t *Translator) emitInterpolatedString(expression *ast.InterpolatedStringLiteralExpression) string {
	var sb strings.Builder
	sb.WriteString("\"")
	for _, part := range expression.Expressions {
		if literal, ok := part.(*ast.LiteralStringExpression); ok {
			sb.WriteString(escapeString(literal.Value))
			continue
		}
		sb.WriteString("${")
		sb.WriteString(t.emitExpression(part))
		sb.WriteString("}")
	}
	sb.WriteString("\"")
	return sb.String()
}

func (t *Translator) emitTuplePairs(pairs []ast.LabeledExpression) string {
	var parts []string
	for _, pair := range pairs {
		text := t.emitExpression(pair.Expression)
		if pair.Label != "" {
			text = pair.Label + " = " + text
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ", ")
}

// escapeString escapes Kotlin string metacharacters. The decoder already
// preserved backslash escapes from the dump, so existing escapes pass
// through untouched.
func escapeString(value string) string {
	var sb strings.Builder
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch ch {
		case '\\':
			sb.WriteByte(ch)
			if i+1 < len(value) {
				sb.WriteByte(value[i+1])
				i++
			}
		case '"':
			sb.WriteString("\\\"")
		case '$':
			sb.WriteString("\\$")
		case '\n':
			sb.WriteString("\\n")
		case '\t':
			sb.WriteString("\\t")
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

// formatDouble renders a floating literal, keeping a decimal point so the
// Kotlin literal stays floating-typed.
func formatDouble(value float64) string {
	formatted := strconv.FormatFloat(value, 'g', -1, 64)
	if !strings.ContainsAny(formatted, ".eE") {
		formatted += ".0"
	}
	return formatted
}
