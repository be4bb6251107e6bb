package transpiler

import (
	"strings"

	"github.com/cwbudde/go-gryphon/internal/ast"
	"github.com/cwbudde/go-gryphon/internal/template"
)

// RecordEnumsPass collects every enum declaration's name, used after the
// barrier to rewrite .caseName references and to pick the sealed-class
// emission for enums with associated values.
type RecordEnumsPass struct {
	Walker
}

func NewRecordEnumsPass(context *Context, scope *FileScope) *RecordEnumsPass {
	p := &RecordEnumsPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RecordEnumsPass) Name() string { return "recordEnums" }

func (p *RecordEnumsPass) ReplaceEnumDeclaration(declaration *ast.EnumDeclaration) []ast.Statement {
	p.Scope.Enums = append(p.Scope.Enums, declaration.EnumName)
	for _, element := range declaration.Elements {
		if len(element.AssociatedValues) > 0 {
			p.Scope.SealedEnums = append(p.Scope.SealedEnums, declaration.EnumName)
			break
		}
	}
	return p.Walker.ReplaceEnumDeclaration(declaration)
}

// RecordProtocolsPass collects protocol names so later passes can separate
// interface conformances from superclasses.
type RecordProtocolsPass struct {
	Walker
}

func NewRecordProtocolsPass(context *Context, scope *FileScope) *RecordProtocolsPass {
	p := &RecordProtocolsPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RecordProtocolsPass) Name() string { return "recordProtocols" }

func (p *RecordProtocolsPass) ReplaceProtocolDeclaration(declaration *ast.ProtocolDeclaration) []ast.Statement {
	p.Scope.Protocols = append(p.Scope.Protocols, declaration.ProtocolName)
	return p.Walker.ReplaceProtocolDeclaration(declaration)
}

// RecordPureFunctionsPass collects functions annotated as pure, which
// suppresses the side-effect warnings raised after the barrier.
type RecordPureFunctionsPass struct {
	Walker
}

func NewRecordPureFunctionsPass(context *Context, scope *FileScope) *RecordPureFunctionsPass {
	p := &RecordPureFunctionsPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RecordPureFunctionsPass) Name() string { return "recordPureFunctions" }

func (p *RecordPureFunctionsPass) ReplaceFunctionDeclaration(declaration *ast.FunctionDeclaration) []ast.Statement {
	if strings.Contains(declaration.Annotations, "pure") {
		p.Scope.PureFunctions = append(p.Scope.PureFunctions, declaration.Prefix)
	}
	return p.Walker.ReplaceFunctionDeclaration(declaration)
}

// RecordTemplatesPass extracts user templates from a translated template
// file: consecutive pairs of top-level discarded expressions, where the
// first is the pattern and the second is a string literal with the Kotlin
// replacement. A call pattern whose replacement is itself a call spelling
// additionally records a function renaming.
type RecordTemplatesPass struct {
	Walker
}

func NewRecordTemplatesPass(context *Context, scope *FileScope) *RecordTemplatesPass {
	p := &RecordTemplatesPass{}
	p.Init(p, context, scope)
	return p
}

func (p *RecordTemplatesPass) Name() string { return "recordTemplates" }

// Rewrite scans statement pairs instead of walking the tree; a template
// file's contents are data, not code to transform.
func (p *RecordTemplatesPass) Rewrite(file *ast.SourceFile) *ast.SourceFile {
	statements := file.Statements
	for i := 0; i+1 < len(statements); i++ {
		pattern, ok := discardedExpression(statements[i])
		if !ok {
			continue
		}
		replacement, ok := discardedExpression(statements[i+1])
		if !ok {
			continue
		}
		literal, ok := replacement.(*ast.LiteralStringExpression)
		if !ok {
			continue
		}

		p.Scope.Templates = append(p.Scope.Templates, template.Template{
			Pattern:     pattern,
			Replacement: literal.Value,
		})
		p.recordFunctionTranslation(pattern, literal.Value)
		i++
	}
	return file
}

func (p *RecordTemplatesPass) recordFunctionTranslation(pattern ast.Expression, replacement string) {
	call, ok := pattern.(*ast.CallExpression)
	if !ok {
		return
	}
	reference, ok := call.Function.(*ast.DeclarationReferenceExpression)
	if !ok {
		return
	}
	open := strings.IndexByte(replacement, '(')
	if open <= 0 {
		return
	}
	kotlinName := replacement[:open]
	if strings.ContainsAny(kotlinName, " ${.") {
		return
	}
	p.Scope.FunctionTranslations = append(p.Scope.FunctionTranslations, FunctionTranslation{
		SwiftName:  reference.Identifier,
		KotlinName: kotlinName,
	})
}

// discardedExpression unwraps a top-level "_ = expression" statement, which
// the frontend lowers to a plain expression statement.
func discardedExpression(statement ast.Statement) (ast.Expression, bool) {
	expressionStatement, ok := statement.(*ast.ExpressionStatement)
	if !ok {
		return nil, false
	}
	expression := expressionStatement.Expression
	if parenthesized, ok := expression.(*ast.ParenthesesExpression); ok {
		expression = parenthesized.Expression
	}
	return expression, true
}
