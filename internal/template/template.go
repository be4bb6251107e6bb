// Package template implements the library-template matcher: it unifies
// Gryphon AST expressions against user-declared patterns with typed holes
// and produces the substitution used to emit the Kotlin replacement.
package template

import (
	"strings"

	"github.com/cwbudde/go-gryphon/internal/ast"
)

// Template pairs a pattern expression with its Kotlin replacement text.
// Hole identifiers in the pattern are prefixed with an underscore; the
// replacement refers to them as ${name}.
type Template struct {
	Pattern     ast.Expression
	Replacement string
}

// IsHole reports whether an identifier is a template hole.
func IsHole(identifier string) bool {
	return strings.HasPrefix(identifier, "_")
}

// Match unifies an expression against the template's pattern. On success it
// returns the bindings from hole names to the matched subexpressions.
// Failure to match is not an error; the caller tries the next template.
func (t *Template) Match(expression ast.Expression) (map[string]ast.Expression, bool) {
	matches := map[string]ast.Expression{}
	if !match(expression, t.Pattern, matches) {
		return nil, false
	}
	return matches, true
}
