package kotlin

import (
	"strconv"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/cwbudde/go-gryphon/internal/ast"
	"github.com/cwbudde/go-gryphon/internal/errors"
)

// ErrorSentinel marks untranslatable constructs in emitted text so the
// Kotlin compiler fails loudly at those sites.
const ErrorSentinel = "<<Error>>"

// Config selects the emitter's layout and language choices.
type Config struct {
	// Indentation is the string for one indent level.
	Indentation string

	// HorizontalLimit wraps lines longer than this; zero disables
	// wrapping.
	HorizontalLimit int

	// DefaultFinal keeps classes closed by default; when false, classes
	// emit as open.
	DefaultFinal bool

	// IsSealedEnum reports whether an enum emits as a sealed class.
	IsSealedEnum func(name string) bool
}

// Translator pretty-prints one transpiled file.
type Translator struct {
	config      Config
	diagnostics *errors.List

	result      *TranslationResult
	indentLevel int
	lastRange   *ast.SourceRange
}

// NewTranslator creates an emitter with the given configuration.
func NewTranslator(config Config, diagnostics *errors.List) *Translator {
	if config.Indentation == "" {
		config.Indentation = "\t"
	}
	if config.IsSealedEnum == nil {
		config.IsSealedEnum = func(string) bool { return false }
	}
	return &Translator{config: config, diagnostics: diagnostics}
}

// TranslateFile emits a whole source file.
func (t *Translator) TranslateFile(file *ast.SourceFile) *TranslationResult {
	t.result = &TranslationResult{SourcePath: file.Path}
	t.indentLevel = 0
	t.lastRange = &ast.SourceRange{
		Path:      file.Path,
		LineStart: 1, ColumnStart: 1, LineEnd: 1, ColumnEnd: 1,
	}
	t.emitStatements(file.Statements)
	return t.result
}

func (t *Translator) emitStatements(statements []ast.Statement) {
	for _, statement := range statements {
		t.emitStatement(statement)
	}
}

// addLine appends one output line at the current indentation, annotated
// with the nearest known source range.
func (t *Translator) addLine(text string) {
	indent := strings.Repeat(t.config.Indentation, t.indentLevel)
	full := indent + text
	if text == "" {
		full = ""
	}

	if t.config.HorizontalLimit > 0 && len(full) > t.config.HorizontalLimit {
		for _, wrapped := range wrapLine(full, indent+t.config.Indentation) {
			t.result.Lines = append(t.result.Lines, OutputLine{Text: wrapped, Range: t.lastRange})
		}
		return
	}
	t.result.Lines = append(t.result.Lines, OutputLine{Text: full, Range: t.lastRange})
}

// addLines splits a possibly multi-line rendering into output lines.
func (t *Translator) addLines(text string) {
	for _, line := range strings.Split(text, "\n") {
		t.addLine(line)
	}
}

// trackRange updates the current origin from the first range found in the
// statement's tree.
func (t *Translator) trackRange(statement ast.Statement) {
	if found := findRange(statement); found != nil {
		t.lastRange = found
	}
}

// findRange walks a printable tree for the first source range recorded on
// a call or declaration reference.
func findRange(node ast.Printable) *ast.SourceRange {
	switch typed := node.(type) {
	case *ast.CallExpression:
		if typed.Range != nil {
			return typed.Range
		}
	case *ast.DeclarationReferenceExpression:
		if typed.Range != nil {
			return typed.Range
		}
	}
	for _, child := range node.TreeChildren() {
		if found := findRange(child); found != nil {
			return found
		}
	}
	return nil
}

func (t *Translator) emitStatement(statement ast.Statement) {
	t.trackRange(statement)

	switch typed := statement.(type) {
	case *ast.ExpressionStatement:
		t.addLines(t.emitExpression(typed.Expression))
	case *ast.TypealiasDeclaration:
		t.addLine("typealias " + typed.Identifier + " = " + TranslateType(typed.TypeName))
	case *ast.ImportDeclaration:
		// Swift module imports have no Kotlin counterpart.
	case *ast.ExtensionDeclaration:
		// Extensions are flattened by the passes; a survivor still emits
		// its members so no code is lost.
		t.emitStatements(typed.Members)
	case *ast.ClassDeclaration:
		t.emitClassDeclaration(typed)
	case *ast.CompanionObject:
		t.addLine("companion object {")
		t.indented(func() { t.emitStatements(typed.Members) })
		t.addLine("}")
	case *ast.EnumDeclaration:
		t.emitEnumDeclaration(typed)
	case *ast.ProtocolDeclaration:
		t.addLine("interface " + typed.ProtocolName + " {")
		t.indented(func() { t.emitStatements(typed.Members) })
		t.addLine("}")
	case *ast.StructDeclaration:
		t.emitStructDeclaration(typed)
	case *ast.FunctionDeclaration:
		t.emitFunctionDeclaration(typed)
	case *ast.VariableDeclaration:
		t.emitVariableDeclaration(typed)
	case *ast.ForEachStatement:
		t.addLine("for (" + t.emitExpression(typed.Variable) + " in " +
			t.emitExpression(typed.Collection) + ") {")
		t.indented(func() { t.emitStatements(typed.Statements) })
		t.addLine("}")
	case *ast.WhileStatement:
		t.addLine("while (" + t.emitExpression(typed.Expression) + ") {")
		t.indented(func() { t.emitStatements(typed.Statements) })
		t.addLine("}")
	case *ast.IfStatement:
		t.emitIfStatement(&typed.IfStatementData, "if")
	case *ast.SwitchStatement:
		t.emitSwitchStatement(typed)
	case *ast.DeferStatement:
		// Function bodies absorb defers into try/finally; one that
		// survives here has no enclosing scope to attach to.
		t.diagnostics.AppendError(t.result.SourcePath, t.lastRange,
			"defer statement outside a function body cannot be translated")
		t.addLine(ErrorSentinel)
	case *ast.ThrowStatement:
		t.addLine("throw " + t.emitExpression(typed.Expression))
	case *ast.ReturnStatement:
		if typed.Expression == nil {
			t.addLine("return")
		} else {
			t.addLine("return " + t.emitExpression(typed.Expression))
		}
	case *ast.BreakStatement:
		t.addLine("break")
	case *ast.ContinueStatement:
		t.addLine("continue")
	case *ast.AssignmentStatement:
		t.addLine(t.emitExpression(typed.LeftHand) + " = " + t.emitExpression(typed.RightHand))
	case *ast.ErrorStatement:
		t.addLine(ErrorSentinel)
	default:
		t.diagnostics.AppendError(t.result.SourcePath, t.lastRange,
			"emitter cannot handle unknown statement variant %T", statement)
		t.addLine(ErrorSentinel)
	}
}

func (t *Translator) indented(emit func()) {
	t.indentLevel++
	emit()
	t.indentLevel--
}

func (t *Translator) emitClassDeclaration(declaration *ast.ClassDeclaration) {
	header := "class " + declaration.ClassName
	if !t.config.DefaultFinal {
		header = "open " + header
	}
	if inherits := t.emitInheritances(declaration.Inherits); inherits != "" {
		header += " : " + inherits
	}
	t.addLine(header + " {")
	t.indented(func() { t.emitClassMembers(declaration.Members) })
	t.addLine("}")
}

// emitClassMembers groups static members into a companion object and
// emits the rest in order.
func (t *Translator) emitClassMembers(members []ast.Statement) {
	var static []ast.Statement
	var instance []ast.Statement
	for _, member := range members {
		if isStatic(member) {
			static = append(static, member)
			continue
		}
		instance = append(instance, member)
	}

	if len(static) > 0 {
		t.addLine("companion object {")
		t.indented(func() { t.emitStatements(static) })
		t.addLine("}")
	}
	t.emitStatements(instance)
}

func isStatic(statement ast.Statement) bool {
	switch typed := statement.(type) {
	case *ast.FunctionDeclaration:
		return typed.IsStatic
	case *ast.VariableDeclaration:
		return typed.IsStatic
	}
	return false
}

func (t *Translator) emitInheritances(inherits []string) string {
	var parts []string
	for i, name := range inherits {
		if name == "Error" {
			name = "Exception()"
		} else if i == 0 && !t.looksLikeInterface(name) {
			name += "()"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}

// looksLikeInterface guesses whether an inherited name is an interface;
// superclasses get constructor parentheses, interfaces do not.
func (t *Translator) looksLikeInterface(name string) bool {
	return strings.HasSuffix(name, "able") || strings.HasSuffix(name, "ible")
}

func (t *Translator) emitStructDeclaration(declaration *ast.StructDeclaration) {
	var constructorProperties []string
	var body []ast.Statement
	for _, member := range declaration.Members {
		variable, ok := member.(*ast.VariableDeclaration)
		if ok && variable.Getter == nil && variable.Setter == nil && !variable.IsStatic {
			keyword := "var"
			if variable.IsLet {
				keyword = "val"
			}
			property := keyword + " " + variable.Identifier + ": " + TranslateType(variable.TypeName)
			if variable.Expression != nil {
				property += " = " + t.emitExpression(variable.Expression)
			}
			constructorProperties = append(constructorProperties, property)
			continue
		}
		body = append(body, member)
	}

	header := "data class " + declaration.StructName +
		"(" + strings.Join(constructorProperties, ", ") + ")"
	if inherits := t.emitInheritances(declaration.Inherits); inherits != "" {
		header += " : " + inherits
	}
	if len(body) == 0 {
		t.addLine(header)
		return
	}
	t.addLine(header + " {")
	t.indented(func() { t.emitClassMembers(body) })
	t.addLine("}")
}

func (t *Translator) emitEnumDeclaration(declaration *ast.EnumDeclaration) {
	if t.isSealed(declaration) {
		t.emitSealedClass(declaration)
		return
	}
	t.emitEnumClass(declaration)
}

func (t *Translator) isSealed(declaration *ast.EnumDeclaration) bool {
	if t.config.IsSealedEnum(declaration.EnumName) {
		return true
	}
	for _, element := range declaration.Elements {
		if len(element.AssociatedValues) > 0 {
			return true
		}
	}
	return false
}

// rawValueType returns the enum's raw-value type, when it inherits one.
func rawValueType(declaration *ast.EnumDeclaration) string {
	for _, name := range declaration.Inherits {
		switch name {
		case "Int", "String", "Double":
			return name
		}
	}
	return ""
}

func (t *Translator) emitEnumClass(declaration *ast.EnumDeclaration) {
	header := "enum class " + declaration.EnumName
	rawType := rawValueType(declaration)
	if rawType != "" {
		header += "(val rawValue: " + TranslateType(rawType) + ")"
	}

	var interfaces []string
	for _, name := range declaration.Inherits {
		if name == rawType {
			continue
		}
		if name == "Error" {
			continue
		}
		interfaces = append(interfaces, name)
	}
	if len(interfaces) > 0 {
		header += " : " + strings.Join(interfaces, ", ")
	}
	t.addLine(header + " {")

	t.indented(func() {
		for i, element := range declaration.Elements {
			entry := screamingSnakeCase(element.Name)
			if rawType != "" {
				rawValue := t.emitExpressionOrDefault(element.RawValue, i)
				entry += "(" + rawValue + ")"
			}
			if i < len(declaration.Elements)-1 {
				entry += ","
			} else {
				entry += ";"
			}
			t.addLine(entry)
		}
		t.emitStatements(declaration.Members)
	})
	t.addLine("}")
}

func (t *Translator) emitExpressionOrDefault(expression ast.Expression, ordinal int) string {
	if expression == nil {
		return strconv.Itoa(ordinal)
	}
	return t.emitExpression(expression)
}

func (t *Translator) emitSealedClass(declaration *ast.EnumDeclaration) {
	header := "sealed class " + declaration.EnumName
	if inherits := t.emitInheritances(declaration.Inherits); inherits != "" {
		header += " : " + inherits
	}
	t.addLine(header + " {")

	t.indented(func() {
		for _, element := range declaration.Elements {
			name := capitalize(element.Name)
			if len(element.AssociatedValues) == 0 {
				t.addLine("object " + name + " : " + declaration.EnumName + "()")
				continue
			}
			var parameters []string
			for _, value := range element.AssociatedValues {
				parameters = append(parameters,
					"val "+value.Label+": "+TranslateType(value.Type))
			}
			t.addLine("data class " + name + "(" + strings.Join(parameters, ", ") +
				") : " + declaration.EnumName + "()")
		}
		t.emitStatements(declaration.Members)
	})
	t.addLine("}")
}

func (t *Translator) emitFunctionDeclaration(declaration *ast.FunctionDeclaration) {
	if declaration.Prefix == "init" {
		t.emitConstructor(declaration)
		return
	}
	if !isValidFunctionName(declaration.Prefix) {
		// Operator overloads other than == (which the passes rewrite
		// into equals) have no Kotlin declaration form.
		t.diagnostics.AppendError(t.result.SourcePath, t.lastRange,
			"operator declaration %q cannot be translated", declaration.Prefix)
		t.addLine(ErrorSentinel)
		return
	}

	header := "fun "
	if declaration.Annotations != "" {
		header = declaration.Annotations + " " + header
	}
	if len(declaration.GenericTypes) > 0 {
		header += "<" + strings.Join(declaration.GenericTypes, ", ") + "> "
	}
	if declaration.ExtendsType != "" {
		header += TranslateType(declaration.ExtendsType) + "."
	}
	header += declaration.Prefix + "(" + t.emitParameters(declaration.Parameters) + ")"

	returnType := TranslateType(declaration.ReturnType)
	hasReturnType := returnType != "" && returnType != "Unit" && returnType != "()"
	if hasReturnType {
		header += ": " + returnType
	}

	if !declaration.HasBody {
		t.addLine(header)
		return
	}

	// A typed body reduced to one expression uses the single-expression
	// form.
	if hasReturnType && len(declaration.Statements) == 1 {
		if expressionStatement, ok := declaration.Statements[0].(*ast.ExpressionStatement); ok {
			if inline, fits := t.inlineStatement(expressionStatement); fits {
				t.addLine(header + " = " + inline)
				return
			}
		}
	}

	t.addLine(header + " {")
	t.indented(func() { t.emitFunctionBody(declaration.Statements) })
	t.addLine("}")
}

// isValidFunctionName reports whether the name is a plain identifier
// rather than an operator spelling.
func isValidFunctionName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch == '_':
		case ch >= '0' && ch <= '9':
			if i == 0 {
				return false
			}
		case ch >= 0x80:
			// Multi-byte identifiers pass through untouched.
		default:
			return false
		}
	}
	return true
}

func (t *Translator) emitConstructor(declaration *ast.FunctionDeclaration) {
	header := "constructor(" + t.emitParameters(declaration.Parameters) + ")"
	if !declaration.HasBody {
		t.addLine(header)
		return
	}
	t.addLine(header + " {")
	t.indented(func() { t.emitFunctionBody(declaration.Statements) })
	t.addLine("}")
}

func (t *Translator) emitParameters(parameters []ast.FunctionParameter) string {
	var parts []string
	for _, parameter := range parameters {
		part := parameter.Label + ": " + TranslateType(parameter.Type)
		if parameter.Value != nil {
			part += " = " + t.emitExpression(parameter.Value)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

// emitFunctionBody emits a body, lowering any defer statements into a
// try/finally around the remaining statements.
func (t *Translator) emitFunctionBody(statements []ast.Statement) {
	var defers []ast.Statement
	var rest []ast.Statement
	for _, statement := range statements {
		if deferred, ok := statement.(*ast.DeferStatement); ok {
			defers = append(defers, deferred.Statements...)
			continue
		}
		rest = append(rest, statement)
	}

	if len(defers) == 0 {
		t.emitStatements(statements)
		return
	}
	t.addLine("try {")
	t.indented(func() { t.emitStatements(rest) })
	t.addLine("} finally {")
	t.indented(func() { t.emitStatements(defers) })
	t.addLine("}")
}

func (t *Translator) emitVariableDeclaration(declaration *ast.VariableDeclaration) {
	keyword := "var"
	if declaration.IsLet {
		keyword = "val"
	}

	header := keyword + " "
	if declaration.ExtendsType != "" {
		header += TranslateType(declaration.ExtendsType) + "."
	}
	header += declaration.Identifier
	if declaration.TypeName != "" {
		header += ": " + TranslateType(declaration.TypeName)
	}

	if declaration.Getter == nil && declaration.Setter == nil {
		if declaration.Expression != nil {
			header += " = " + t.emitExpression(declaration.Expression)
		}
		t.addLine(header)
		return
	}

	t.addLine(header)
	t.indented(func() {
		if declaration.Getter != nil {
			t.addLine("get() {")
			t.indented(func() { t.emitStatements(declaration.Getter.Statements) })
			t.addLine("}")
		}
		if declaration.Setter != nil {
			t.addLine("set(newValue) {")
			t.indented(func() { t.emitStatements(declaration.Setter.Statements) })
			t.addLine("}")
		}
	})
}

func (t *Translator) emitIfStatement(data *ast.IfStatementData, keyword string) {
	var conditions []string
	for _, condition := range data.Conditions {
		if condition.Expression != nil {
			conditions = append(conditions, t.emitExpression(condition.Expression))
		}
	}

	t.addLine(keyword + " (" + strings.Join(conditions, " && ") + ") {")
	t.indented(func() { t.emitStatements(data.Statements) })

	elseData := data.ElseStatement
	if elseData == nil {
		t.addLine("}")
		return
	}
	if len(elseData.Conditions) > 0 {
		t.addLine("} else if (" + t.emitElseIfConditions(elseData) + ") {")
		t.indented(func() { t.emitStatements(elseData.Statements) })
		for elseData.ElseStatement != nil {
			elseData = elseData.ElseStatement
			if len(elseData.Conditions) > 0 {
				t.addLine("} else if (" + t.emitElseIfConditions(elseData) + ") {")
			} else {
				t.addLine("} else {")
			}
			t.indented(func() { t.emitStatements(elseData.Statements) })
		}
		t.addLine("}")
		return
	}
	t.addLine("} else {")
	t.indented(func() { t.emitStatements(elseData.Statements) })
	t.addLine("}")
}

func (t *Translator) emitElseIfConditions(data *ast.IfStatementData) string {
	var conditions []string
	for _, condition := range data.Conditions {
		if condition.Expression != nil {
			conditions = append(conditions, t.emitExpression(condition.Expression))
		}
	}
	return strings.Join(conditions, " && ")
}

func (t *Translator) emitSwitchStatement(statement *ast.SwitchStatement) {
	prefix := ""
	switch converts := statement.ConvertsToExpression.(type) {
	case *ast.AssignmentStatement:
		prefix = t.emitExpression(converts.LeftHand) + " = "
	case *ast.ReturnStatement:
		prefix = "return "
	}

	t.addLine(prefix + "when (" + t.emitExpression(statement.Expression) + ") {")
	t.indented(func() {
		for _, switchCase := range statement.Cases {
			t.emitSwitchCase(switchCase)
		}
	})
	t.addLine("}")
}

func (t *Translator) emitSwitchCase(switchCase ast.SwitchCase) {
	pattern := "else"
	if len(switchCase.Expressions) > 0 {
		var patterns []string
		for _, expression := range switchCase.Expressions {
			patterns = append(patterns, t.emitCasePattern(expression))
		}
		pattern = strings.Join(patterns, ", ")
	}

	if len(switchCase.Statements) == 1 {
		if inline, ok := t.inlineStatement(switchCase.Statements[0]); ok {
			t.addLine(pattern + " -> " + inline)
			return
		}
	}
	t.addLine(pattern + " -> {")
	t.indented(func() { t.emitStatements(switchCase.Statements) })
	t.addLine("}")
}

// emitCasePattern renders one case pattern: ranges become in-clauses and
// sealed-class cases become is-checks.
func (t *Translator) emitCasePattern(expression ast.Expression) string {
	switch typed := expression.(type) {
	case *ast.BinaryOperatorExpression:
		if typed.OperatorSymbol == ".." || typed.OperatorSymbol == "until" {
			return "in " + t.emitExpression(typed)
		}
	case *ast.DotExpression:
		if typeExpression, ok := typed.LeftExpression.(*ast.TypeExpression); ok {
			if t.config.IsSealedEnum(typeExpression.TypeName) {
				return "is " + t.emitExpression(typed)
			}
		}
	}
	return t.emitExpression(expression)
}

// inlineStatement renders a statement on one line when its shape allows.
func (t *Translator) inlineStatement(statement ast.Statement) (string, bool) {
	switch typed := statement.(type) {
	case *ast.ExpressionStatement:
		text := t.emitExpression(typed.Expression)
		if !strings.Contains(text, "\n") {
			return text, true
		}
	case *ast.ReturnStatement:
		if typed.Expression != nil {
			text := "return " + t.emitExpression(typed.Expression)
			if !strings.Contains(text, "\n") {
				return text, true
			}
		}
	case *ast.AssignmentStatement:
		text := t.emitExpression(typed.LeftHand) + " = " + t.emitExpression(typed.RightHand)
		if !strings.Contains(text, "\n") {
			return text, true
		}
	case *ast.BreakStatement:
		return "break", true
	}
	return "", false
}

// wrapLine breaks an overlong line at top-level commas inside its
// outermost parentheses. Lines with no such break points stay as they are.
func wrapLine(line, indent string) []string {
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return []string{line}
	}

	depth := 0
	var breaks []int
	for i := open; i < len(line); i++ {
		switch line[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 1 {
				breaks = append(breaks, i)
			}
		}
	}
	if len(breaks) == 0 {
		return []string{line}
	}

	var result []string
	start := 0
	for _, position := range breaks {
		result = append(result, strings.TrimRight(line[start:position+1], " "))
		start = position + 1
		for start < len(line) && line[start] == ' ' {
			start++
		}
	}
	result = append(result, line[start:])
	for i := 1; i < len(result); i++ {
		result[i] = indent + result[i]
	}
	return result
}

func capitalize(identifier string) string {
	if identifier == "" {
		return identifier
	}
	return strings.ToUpper(identifier[:1]) + identifier[1:]
}

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

