package ast

import "strings"

// CleanUpType normalizes a type string at the dump boundary: lvalue and
// inout markers are stripped, a redundant outer parenthesis is unwrapped,
// and metatype suffixes are removed. Array and dictionary spellings are
// kept as-is; the emitter maps them to Kotlin late.
func CleanUpType(typeName string) string {
	typeName = strings.TrimSpace(typeName)
	typeName = strings.TrimPrefix(typeName, "@lvalue ")
	typeName = strings.TrimPrefix(typeName, "inout ")

	for isRedundantlyParenthesized(typeName) {
		typeName = strings.TrimSpace(typeName[1 : len(typeName)-1])
	}

	typeName = strings.TrimSuffix(typeName, ".Type")
	return typeName
}

// isRedundantlyParenthesized reports whether the type is a single
// parenthesized type rather than a tuple or function parameter list.
func isRedundantlyParenthesized(typeName string) bool {
	if len(typeName) < 2 || typeName[0] != '(' || typeName[len(typeName)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(typeName); i++ {
		switch typeName[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(typeName)-1 {
				return false
			}
		case ',':
			if depth == 1 {
				// A tuple type's parentheses are meaningful.
				return false
			}
		}
	}
	return true
}

// IsOptionalType reports whether the type string is an optional.
func IsOptionalType(typeName string) bool {
	return strings.HasSuffix(typeName, "?") ||
		strings.HasPrefix(typeName, "Optional<")
}

// UnwrapOptionalType removes one level of optionality.
func UnwrapOptionalType(typeName string) string {
	if strings.HasSuffix(typeName, "?") {
		return strings.TrimSuffix(typeName, "?")
	}
	if strings.HasPrefix(typeName, "Optional<") && strings.HasSuffix(typeName, ">") {
		return typeName[len("Optional<") : len(typeName)-1]
	}
	return typeName
}
