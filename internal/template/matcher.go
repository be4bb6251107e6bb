package template

import (
	"strings"

	"github.com/cwbudde/go-gryphon/internal/ast"
)

// match unifies expression against pattern, accumulating hole bindings.
// Variants must match structurally; a hole (an underscore-prefixed
// declaration reference in the pattern) matches any expression whose type
// is compatible with the hole's declared type.
func match(expression, pattern ast.Expression, matches map[string]ast.Expression) bool {
	// Parentheses are transparent on both sides.
	if parenthesized, ok := expression.(*ast.ParenthesesExpression); ok {
		return match(parenthesized.Expression, pattern, matches)
	}
	if parenthesized, ok := pattern.(*ast.ParenthesesExpression); ok {
		return match(expression, parenthesized.Expression, matches)
	}

	if hole, ok := pattern.(*ast.DeclarationReferenceExpression); ok && IsHole(hole.Identifier) {
		if !typeMatches(expression.SwiftType(), hole.TypeName) {
			return false
		}
		if previous, bound := matches[hole.Identifier]; bound {
			// A hole appearing twice must bind equal expressions.
			return expressionsAreEqual(previous, expression)
		}
		matches[hole.Identifier] = expression
		return true
	}

	switch typedPattern := pattern.(type) {
	case *ast.DeclarationReferenceExpression:
		typed, ok := expression.(*ast.DeclarationReferenceExpression)
		return ok && typed.Identifier == typedPattern.Identifier
	case *ast.TypeExpression:
		typed, ok := expression.(*ast.TypeExpression)
		return ok && typeMatches(typed.TypeName, typedPattern.TypeName)
	case *ast.DotExpression:
		typed, ok := expression.(*ast.DotExpression)
		return ok &&
			match(typed.LeftExpression, typedPattern.LeftExpression, matches) &&
			match(typed.RightExpression, typedPattern.RightExpression, matches)
	case *ast.CallExpression:
		typed, ok := expression.(*ast.CallExpression)
		return ok &&
			match(typed.Function, typedPattern.Function, matches) &&
			matchArguments(typed.Parameters, typedPattern.Parameters, matches)
	case *ast.BinaryOperatorExpression:
		typed, ok := expression.(*ast.BinaryOperatorExpression)
		return ok && typed.OperatorSymbol == typedPattern.OperatorSymbol &&
			match(typed.LeftExpression, typedPattern.LeftExpression, matches) &&
			match(typed.RightExpression, typedPattern.RightExpression, matches)
	case *ast.PrefixUnaryExpression:
		typed, ok := expression.(*ast.PrefixUnaryExpression)
		return ok && typed.OperatorSymbol == typedPattern.OperatorSymbol &&
			match(typed.Expression, typedPattern.Expression, matches)
	case *ast.PostfixUnaryExpression:
		typed, ok := expression.(*ast.PostfixUnaryExpression)
		return ok && typed.OperatorSymbol == typedPattern.OperatorSymbol &&
			match(typed.Expression, typedPattern.Expression, matches)
	case *ast.ForceValueExpression:
		typed, ok := expression.(*ast.ForceValueExpression)
		return ok && match(typed.Expression, typedPattern.Expression, matches)
	case *ast.OptionalExpression:
		typed, ok := expression.(*ast.OptionalExpression)
		return ok && match(typed.Expression, typedPattern.Expression, matches)
	case *ast.SubscriptExpression:
		typed, ok := expression.(*ast.SubscriptExpression)
		return ok &&
			match(typed.SubscriptedExpression, typedPattern.SubscriptedExpression, matches) &&
			match(typed.IndexExpression, typedPattern.IndexExpression, matches)
	case *ast.LiteralIntExpression:
		typed, ok := expression.(*ast.LiteralIntExpression)
		return ok && typed.Value == typedPattern.Value
	case *ast.LiteralUIntExpression:
		typed, ok := expression.(*ast.LiteralUIntExpression)
		return ok && typed.Value == typedPattern.Value
	case *ast.LiteralDoubleExpression:
		typed, ok := expression.(*ast.LiteralDoubleExpression)
		return ok && typed.Value == typedPattern.Value
	case *ast.LiteralFloatExpression:
		typed, ok := expression.(*ast.LiteralFloatExpression)
		return ok && typed.Value == typedPattern.Value
	case *ast.LiteralBoolExpression:
		typed, ok := expression.(*ast.LiteralBoolExpression)
		return ok && typed.Value == typedPattern.Value
	case *ast.LiteralStringExpression:
		typed, ok := expression.(*ast.LiteralStringExpression)
		return ok && typed.Value == typedPattern.Value
	case *ast.NilLiteralExpression:
		_, ok := expression.(*ast.NilLiteralExpression)
		return ok
	case *ast.TupleExpression:
		return matchArguments(expression, typedPattern, matches)
	case *ast.ArrayExpression:
		typed, ok := expression.(*ast.ArrayExpression)
		if !ok || len(typed.Elements) != len(typedPattern.Elements) {
			return false
		}
		for i := range typed.Elements {
			if !match(typed.Elements[i], typedPattern.Elements[i], matches) {
				return false
			}
		}
		return true
	}
	return false
}

// matchArguments matches a call's argument tuple against the pattern's.
// Positional arguments match left to right; labeled arguments may appear in
// any order as long as the label sets coincide.
func matchArguments(expression, pattern ast.Expression, matches map[string]ast.Expression) bool {
	expressionTuple, ok := expression.(*ast.TupleExpression)
	if !ok {
		return false
	}
	patternTuple, ok := pattern.(*ast.TupleExpression)
	if !ok {
		return false
	}
	if len(expressionTuple.Pairs) != len(patternTuple.Pairs) {
		return false
	}

	used := make([]bool, len(expressionTuple.Pairs))
	positional := 0
	for _, patternPair := range patternTuple.Pairs {
		if patternPair.Label == "" {
			// Consume the next unused positional argument.
			found := false
			for ; positional < len(expressionTuple.Pairs); positional++ {
				pair := expressionTuple.Pairs[positional]
				if used[positional] || pair.Label != "" {
					continue
				}
				if !match(pair.Expression, patternPair.Expression, matches) {
					return false
				}
				used[positional] = true
				positional++
				found = true
				break
			}
			if !found {
				return false
			}
			continue
		}

		found := false
		for i, pair := range expressionTuple.Pairs {
			if used[i] || pair.Label != patternPair.Label {
				continue
			}
			if !match(pair.Expression, patternPair.Expression, matches) {
				return false
			}
			used[i] = true
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}

// typeMatches reports whether an expression of the given type can fill a
// hole declared with the pattern type. Unknown types are permissive, since
// the dump does not annotate every node.
func typeMatches(expressionType, patternType string) bool {
	expressionType = normalizeType(expressionType)
	patternType = normalizeType(patternType)

	if expressionType == "" || patternType == "" {
		return true
	}
	if expressionType == patternType {
		return true
	}
	if patternType == "Any" || patternType == "AnyType" {
		return true
	}

	// Optional lifting: a T matches a T? hole.
	if strings.HasSuffix(patternType, "?") {
		return typeMatches(strings.TrimSuffix(expressionType, "?"),
			strings.TrimSuffix(patternType, "?"))
	}

	// Element-wise matching for collection types.
	if isBracketed(expressionType) && isBracketed(patternType) {
		return typeMatches(unbracket(expressionType), unbracket(patternType))
	}

	return false
}

// normalizeType canonicalizes the spellings the dump uses interchangeably.
func normalizeType(typeName string) string {
	typeName = strings.TrimSpace(typeName)
	typeName = strings.ReplaceAll(typeName, " : ", ": ")

	if strings.HasPrefix(typeName, "Array<") && strings.HasSuffix(typeName, ">") {
		return "[" + normalizeType(typeName[len("Array<"):len(typeName)-1]) + "]"
	}
	if strings.HasPrefix(typeName, "Optional<") && strings.HasSuffix(typeName, ">") {
		return normalizeType(typeName[len("Optional<"):len(typeName)-1]) + "?"
	}
	if strings.HasPrefix(typeName, "Dictionary<") && strings.HasSuffix(typeName, ">") {
		inner := typeName[len("Dictionary<") : len(typeName)-1]
		if comma := topLevelComma(inner); comma >= 0 {
			return "[" + normalizeType(inner[:comma]) + ": " + normalizeType(inner[comma+1:]) + "]"
		}
	}
	return typeName
}

func topLevelComma(typeName string) int {
	depth := 0
	for i := 0; i < len(typeName); i++ {
		switch typeName[i] {
		case '<', '[', '(':
			depth++
		case '>', ']', ')':
			depth--
		case ',':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isBracketed(typeName string) bool {
	return strings.HasPrefix(typeName, "[") && strings.HasSuffix(typeName, "]")
}

func unbracket(typeName string) string {
	return strings.TrimSpace(typeName[1 : len(typeName)-1])
}

// expressionsAreEqual compares two expressions structurally, used when the
// same hole appears more than once in a pattern.
func expressionsAreEqual(a, b ast.Expression) bool {
	matches := map[string]ast.Expression{}
	return match(a, b, matches) && match(b, a, matches)
}
