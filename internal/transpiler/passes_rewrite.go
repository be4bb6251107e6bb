package transpiler

import (
	"strings"

	"github.com/fatih/camelcase"

	"github.com/cwbudde/go-gryphon/internal/ast"
)

// RewriteEnumReferencesPass rewrites references to plain enum cases into
// the SCREAMING_SNAKE_CASE spelling of Kotlin enum entries. Sealed enums
// keep their subclass naming and are handled by SealedClassCasesPass.
type RewriteEnumReferencesPass struct {
	Walker
}

func NewRewriteEnumReferencesPass(context *Context, scope *FileScope) *RewriteEnumReferencesPass {
	p := &RewriteEnumReferencesPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RewriteEnumReferencesPass) Name() string { return "rewriteEnumReferences" }

func (p *RewriteEnumReferencesPass) ReplaceDotExpression(expression *ast.DotExpression) ast.Expression {
	typeExpression, ok := expression.LeftExpression.(*ast.TypeExpression)
	if !ok {
		return p.Walker.ReplaceDotExpression(expression)
	}
	reference, ok := expression.RightExpression.(*ast.DeclarationReferenceExpression)
	if !ok {
		return p.Walker.ReplaceDotExpression(expression)
	}
	enumName := typeExpression.TypeName
	if !p.Context.IsEnum(enumName) || p.Context.IsSealedEnum(enumName) {
		return p.Walker.ReplaceDotExpression(expression)
	}

	renamed := *reference
	renamed.Identifier = screamingSnakeCase(reference.Identifier)
	return &ast.DotExpression{
		LeftExpression:  typeExpression,
		RightExpression: &renamed,
	}
}

// screamingSnakeCase converts a camelCase case name to SCREAMING_SNAKE_CASE.
// Separator runs from already-snake-cased names are dropped so the
// conversion is stable under repetition.
func screamingSnakeCase(identifier string) string {
	var words []string
	for _, word := range camelcase.Split(identifier) {
		if strings.Trim(word, "_") == "" {
			continue
		}
		words = append(words, strings.ToUpper(word))
	}
	return strings.Join(words, "_")
}

// SealedClassCasesPass renames references to sealed-enum cases to the
// capitalized subclass names the emitter generates for them.
type SealedClassCasesPass struct {
	Walker
}

func NewSealedClassCasesPass(context *Context, scope *FileScope) *SealedClassCasesPass {
	p := &SealedClassCasesPass{}
	p.Init(p, context, scope)
	return p
}

func (p *SealedClassCasesPass) Name() string { return "sealedClassCases" }

func (p *SealedClassCasesPass) ReplaceDotExpression(expression *ast.DotExpression) ast.Expression {
	typeExpression, ok := expression.LeftExpression.(*ast.TypeExpression)
	if !ok {
		return p.Walker.ReplaceDotExpression(expression)
	}
	reference, ok := expression.RightExpression.(*ast.DeclarationReferenceExpression)
	if !ok || !p.Context.IsSealedEnum(typeExpression.TypeName) {
		return p.Walker.ReplaceDotExpression(expression)
	}

	renamed := *reference
	renamed.Identifier = capitalize(reference.Identifier)
	return &ast.DotExpression{
		LeftExpression:  typeExpression,
		RightExpression: &renamed,
	}
}

func capitalize(identifier string) string {
	if identifier == "" {
		return identifier
	}
	return strings.ToUpper(identifier[:1]) + identifier[1:]
}

// NumericCastsPass rewrites numeric conversion initializers like Double(x)
// into Kotlin's postfix conversions x.toDouble().
type NumericCastsPass struct {
	Walker
}

func NewNumericCastsPass(context *Context, scope *FileScope) *NumericCastsPass {
	p := &NumericCastsPass{}
	p.Init(p, context, scope)
	return p
}

func (p *NumericCastsPass) Name() string { return "numericCasts" }

var numericConversions = map[string]string{
	"Int":    "toInt()",
	"Int32":  "toInt()",
	"Int64":  "toLong()",
	"UInt":   "toUInt()",
	"Double": "toDouble()",
	"Float":  "toFloat()",
}

func (p *NumericCastsPass) ReplaceCallExpression(expression *ast.CallExpression) ast.Expression {
	typeName := calledTypeName(expression.Function)
	conversion, isNumeric := numericConversions[typeName]
	if !isNumeric {
		return p.Walker.ReplaceCallExpression(expression)
	}
	tuple, ok := expression.Parameters.(*ast.TupleExpression)
	if !ok || len(tuple.Pairs) != 1 {
		return p.Walker.ReplaceCallExpression(expression)
	}

	return &ast.TemplateExpression{
		Pattern: "${value}." + conversion,
		Matches: map[string]ast.Expression{
			"value": p.ReplaceExpression(tuple.Pairs[0].Expression),
		},
	}
}

// calledTypeName extracts a type name from a call's function position.
func calledTypeName(function ast.Expression) string {
	switch typed := function.(type) {
	case *ast.TypeExpression:
		return typed.TypeName
	case *ast.DeclarationReferenceExpression:
		if typed.Identifier == "init" {
			return ""
		}
		if typed.IsStandardLibrary {
			return typed.Identifier
		}
	case *ast.DotExpression:
		if typeExpression, ok := typed.LeftExpression.(*ast.TypeExpression); ok {
			if reference, ok := typed.RightExpression.(*ast.DeclarationReferenceExpression); ok && reference.Identifier == "init" {
				return typeExpression.TypeName
			}
		}
	}
	return ""
}

// RewriteRangesPass maps Swift range operators to Kotlin: half-open ranges
// become until, closed ranges become .., and floating-point ranges use the
// rangeTo call form.
type RewriteRangesPass struct {
	Walker
}

func NewRewriteRangesPass(context *Context, scope *FileScope) *RewriteRangesPass {
	p := &RewriteRangesPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RewriteRangesPass) Name() string { return "rewriteRanges" }

func (p *RewriteRangesPass) ReplaceBinaryOperatorExpression(expression *ast.BinaryOperatorExpression) ast.Expression {
	replaced := p.Walker.ReplaceBinaryOperatorExpression(expression)
	binary, ok := replaced.(*ast.BinaryOperatorExpression)
	if !ok {
		return replaced
	}

	switch binary.OperatorSymbol {
	case "..<":
		binary.OperatorSymbol = "until"
	case "...":
		if isFloatingPoint(binary.LeftExpression) || isFloatingPoint(binary.RightExpression) {
			return &ast.TemplateExpression{
				Pattern: "(${lower}).rangeTo(${upper})",
				Matches: map[string]ast.Expression{
					"lower": binary.LeftExpression,
					"upper": binary.RightExpression,
				},
			}
		}
		binary.OperatorSymbol = ".."
	}
	return binary
}

func isFloatingPoint(expression ast.Expression) bool {
	typeName := ast.UnwrapOptionalType(expression.SwiftType())
	return typeName == "Double" || typeName == "Float" || typeName == "CGFloat"
}

// RewriteOptionalsPass rewrites optional idioms: map over an optional
// becomes ?.let, and optional chains stay marked for the emitter's ?.
// spelling.
type RewriteOptionalsPass struct {
	Walker
}

func NewRewriteOptionalsPass(context *Context, scope *FileScope) *RewriteOptionalsPass {
	p := &RewriteOptionalsPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RewriteOptionalsPass) Name() string { return "rewriteOptionals" }

func (p *RewriteOptionalsPass) ReplaceCallExpression(expression *ast.CallExpression) ast.Expression {
	dot, ok := expression.Function.(*ast.DotExpression)
	if !ok {
		return p.Walker.ReplaceCallExpression(expression)
	}
	reference, ok := dot.RightExpression.(*ast.DeclarationReferenceExpression)
	if !ok || reference.Identifier != "map" {
		return p.Walker.ReplaceCallExpression(expression)
	}
	receiver := dot.LeftExpression
	if !ast.IsOptionalType(receiver.SwiftType()) {
		if _, alreadyOptional := receiver.(*ast.OptionalExpression); !alreadyOptional {
			return p.Walker.ReplaceCallExpression(expression)
		}
	}

	renamed := *reference
	renamed.Identifier = "let"
	if optional, alreadyOptional := receiver.(*ast.OptionalExpression); alreadyOptional {
		receiver = optional.Expression
	}
	return &ast.CallExpression{
		Function: &ast.DotExpression{
			LeftExpression:  &ast.OptionalExpression{Expression: p.ReplaceExpression(receiver)},
			RightExpression: &renamed,
		},
		Parameters: p.ReplaceExpression(expression.Parameters),
		TypeName:   expression.TypeName,
		Range:      expression.Range,
	}
}

// RenameStandardLibraryPass renames the standard-library operations that
// are not covered by user templates, and applies the function renamings
// recorded from the template file.
type RenameStandardLibraryPass struct {
	Walker
}

func NewRenameStandardLibraryPass(context *Context, scope *FileScope) *RenameStandardLibraryPass {
	p := &RenameStandardLibraryPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RenameStandardLibraryPass) Name() string { return "renameStandardLibrary" }

var standaloneRenamings = map[string]string{
	"print":      "println",
	"fatalError": "error",
}

func (p *RenameStandardLibraryPass) ReplaceDeclarationReferenceExpression(expression *ast.DeclarationReferenceExpression) ast.Expression {
	if !expression.IsStandardLibrary {
		return p.Walker.ReplaceDeclarationReferenceExpression(expression)
	}
	if renamed, ok := standaloneRenamings[expression.Identifier]; ok {
		renamedReference := *expression
		renamedReference.Identifier = renamed
		return &renamedReference
	}
	return p.Walker.ReplaceDeclarationReferenceExpression(expression)
}

func (p *RenameStandardLibraryPass) ReplaceCallExpression(expression *ast.CallExpression) ast.Expression {
	if reference, ok := expression.Function.(*ast.DeclarationReferenceExpression); ok {
		for _, translation := range p.Context.FunctionTranslations() {
			if translation.SwiftName == reference.Identifier {
				renamed := *reference
				renamed.Identifier = translation.KotlinName
				return &ast.CallExpression{
					Function:   &renamed,
					Parameters: p.ReplaceExpression(expression.Parameters),
					TypeName:   expression.TypeName,
					Range:      expression.Range,
				}
			}
		}
	}
	return p.Walker.ReplaceCallExpression(expression)
}

func (p *RenameStandardLibraryPass) ReplaceDotExpression(expression *ast.DotExpression) ast.Expression {
	reference, ok := expression.RightExpression.(*ast.DeclarationReferenceExpression)
	if !ok || !reference.IsStandardLibrary {
		return p.Walker.ReplaceDotExpression(expression)
	}

	switch reference.Identifier {
	case "min", "max":
		if typeExpression, ok := expression.LeftExpression.(*ast.TypeExpression); ok && isIntegerType(typeExpression.TypeName) {
			renamed := *reference
			renamed.Identifier = strings.ToUpper(reference.Identifier) + "_VALUE"
			return &ast.DotExpression{
				LeftExpression:  typeExpression,
				RightExpression: &renamed,
			}
		}
	case "count":
		renamed := *reference
		receiverType := ast.UnwrapOptionalType(expression.LeftExpression.SwiftType())
		if receiverType == "String" || receiverType == "Substring" {
			renamed.Identifier = "length"
		} else {
			renamed.Identifier = "size"
		}
		return &ast.DotExpression{
			LeftExpression:  p.ReplaceExpression(expression.LeftExpression),
			RightExpression: &renamed,
		}
	case "description":
		renamed := *reference
		renamed.Identifier = "toString()"
		return &ast.DotExpression{
			LeftExpression:  p.ReplaceExpression(expression.LeftExpression),
			RightExpression: &renamed,
		}
	}
	return p.Walker.ReplaceDotExpression(expression)
}

// isIntegerType reports whether the type has Kotlin MIN_VALUE/MAX_VALUE
// constants.
func isIntegerType(typeName string) bool {
	switch typeName {
	case "Int", "Int8", "Int16", "Int32", "Int64",
		"UInt", "UInt8", "UInt16", "UInt32", "UInt64":
		return true
	}
	return false
}

// ApplyTemplatesPass matches every expression against the user templates
// in declaration order; the first match wins and the expression becomes a
// template expression carrying the replacement and its bindings.
type ApplyTemplatesPass struct {
	Walker
}

func NewApplyTemplatesPass(context *Context, scope *FileScope) *ApplyTemplatesPass {
	p := &ApplyTemplatesPass{}
	p.Init(p, context, scope)
	return p
}

func (p *ApplyTemplatesPass) Name() string { return "applyTemplates" }

func (p *ApplyTemplatesPass) ReplaceExpression(expression ast.Expression) ast.Expression {
	for _, userTemplate := range p.Context.Templates() {
		matches, ok := userTemplate.Match(expression)
		if !ok {
			continue
		}
		replaced := make(map[string]ast.Expression, len(matches))
		for name, bound := range matches {
			// A bound expression's children are still subject to
			// templates; the bound root is not, or a bare-hole
			// pattern would match its own binding forever.
			replaced[name] = p.Walker.ReplaceExpression(bound)
		}
		return &ast.TemplateExpression{
			Pattern: userTemplate.Replacement,
			Matches: replaced,
		}
	}
	return p.Walker.ReplaceExpression(expression)
}
