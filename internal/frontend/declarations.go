package frontend

import (
	"strings"

	"github.com/cwbudde/go-gryphon/internal/ast"
	"github.com/cwbudde/go-gryphon/internal/astdump"
)

func (t *Translator) translateTypealiasDeclaration(node *astdump.SwiftAST) ast.Statement {
	return &ast.TypealiasDeclaration{
		Identifier: firstStandalone(node),
		TypeName:   ast.CleanUpType(node.Attribute("type")),
		IsImplicit: node.Standalone("implicit"),
	}
}

func (t *Translator) translateClassDeclaration(node *astdump.SwiftAST) ast.Statement {
	return &ast.ClassDeclaration{
		ClassName: firstStandalone(node),
		Inherits:  t.collectInheritances(node),
		Members:   t.translateMembers(node),
	}
}

func (t *Translator) translateStructDeclaration(node *astdump.SwiftAST) ast.Statement {
	return &ast.StructDeclaration{
		StructName: firstStandalone(node),
		Inherits:   t.collectInheritances(node),
		Members:    t.translateMembers(node),
	}
}

func (t *Translator) translateProtocolDeclaration(node *astdump.SwiftAST) ast.Statement {
	return &ast.ProtocolDeclaration{
		ProtocolName: firstStandalone(node),
		Members:      t.translateMembers(node),
	}
}

func (t *Translator) translateExtensionDeclaration(node *astdump.SwiftAST) ast.Statement {
	extendedType := firstStandalone(node)
	if extendedType == "" {
		extendedType = ast.CleanUpType(node.Attribute("type"))
	}

	members := t.translateMembers(node)
	for _, member := range members {
		setExtendedType(member, extendedType)
	}
	return &ast.ExtensionDeclaration{TypeName: extendedType, Members: members}
}

// setExtendedType marks a member as declared in an extension of the given
// type, which the emitter turns into a receiver.
func setExtendedType(statement ast.Statement, typeName string) {
	switch typed := statement.(type) {
	case *ast.FunctionDeclaration:
		typed.ExtendsType = typeName
	case *ast.VariableDeclaration:
		typed.ExtendsType = typeName
	}
}

func (t *Translator) translateEnumDeclaration(node *astdump.SwiftAST) ast.Statement {
	declaration := &ast.EnumDeclaration{
		Access:     node.Attribute("access"),
		EnumName:   firstStandalone(node),
		Inherits:   t.collectInheritances(node),
		IsImplicit: node.Standalone("implicit"),
	}

	for _, subtree := range node.Subtrees {
		switch subtree.Name {
		case "Enum Case Declaration":
			for _, element := range subtree.Subtrees {
				if element.Name == "Enum Element Declaration" {
					declaration.Elements = append(declaration.Elements, t.translateEnumElement(element))
				}
			}
		case "Enum Element Declaration":
			declaration.Elements = append(declaration.Elements, t.translateEnumElement(subtree))
		case "Constructor Declaration", "Pattern Binding Declaration":
			// Compiler-synthesized members of the enum are dropped; the
			// emitter generates what Kotlin needs.
		default:
			if member := t.translateMemberIfDeclaration(subtree); member != nil {
				declaration.Members = append(declaration.Members, member)
			}
		}
	}
	return declaration
}

// translateEnumElement parses an element name like "oneInt(int:)" together
// with the associated-value types from its interface type.
func (t *Translator) translateEnumElement(node *astdump.SwiftAST) *ast.EnumElement {
	name := firstStandalone(node)
	element := &ast.EnumElement{Name: name}

	open := strings.IndexByte(name, '(')
	if open < 0 {
		return element
	}

	element.Name = name[:open]
	labels := strings.Split(strings.TrimSuffix(name[open+1:], ")"), ":")
	types := parseAssociatedValueTypes(node.Attribute("interface type"))
	for i, label := range labels {
		if label == "" {
			continue
		}
		typeName := ""
		if i < len(types) {
			typeName = types[i]
		}
		element.AssociatedValues = append(element.AssociatedValues, ast.LabeledType{
			Label: label,
			Type:  typeName,
		})
	}
	return element
}

// parseAssociatedValueTypes extracts the parameter types from an enum
// element constructor type like "(E.Type) -> (int: Int) -> E".
func parseAssociatedValueTypes(interfaceType string) []string {
	segments := strings.Split(interfaceType, " -> ")
	if len(segments) < 3 {
		return nil
	}
	parameters := strings.TrimPrefix(strings.TrimSuffix(segments[1], ")"), "(")
	if parameters == "" {
		return nil
	}

	var result []string
	depth := 0
	start := 0
	for i := 0; i < len(parameters); i++ {
		switch parameters[i] {
		case '(', '[', '<':
			depth++
		case ')', ']', '>':
			depth--
		case ',':
			if depth == 0 {
				result = append(result, cleanAssociatedValueType(parameters[start:i]))
				start = i + 1
			}
		}
	}
	result = append(result, cleanAssociatedValueType(parameters[start:]))
	return result
}

func cleanAssociatedValueType(parameter string) string {
	parameter = strings.TrimSpace(parameter)
	if colon := strings.IndexByte(parameter, ':'); colon >= 0 {
		parameter = strings.TrimSpace(parameter[colon+1:])
	}
	return ast.CleanUpType(parameter)
}

// translateMembers translates a type declaration's member subtrees.
func (t *Translator) translateMembers(node *astdump.SwiftAST) []ast.Statement {
	var members []ast.Statement
	for _, subtree := range node.Subtrees {
		switch subtree.Name {
		case "Pattern Binding Declaration":
			t.processPatternBindingDeclaration(subtree)
		default:
			if member := t.translateMemberIfDeclaration(subtree); member != nil {
				members = append(members, member)
			}
		}
	}
	return members
}

func (t *Translator) translateMemberIfDeclaration(node *astdump.SwiftAST) ast.Statement {
	switch node.Name {
	case "Function Declaration", "Constructor Declaration", "Variable Declaration",
		"Class Declaration", "Struct Declaration", "Enum Declaration",
		"Protocol", "Protocol Declaration", "Typealias", "Typealias Declaration":
		return t.translateStatement(node)
	case "Destructor Declaration":
		t.diagnostics.AppendWarning(t.sourcePath, t.rangeOf(node),
			"deinitializers have no equivalent and are not translated")
		return nil
	}
	return nil
}

func (t *Translator) translateFunctionDeclaration(node *astdump.SwiftAST) ast.Statement {
	data := ast.FunctionDeclarationData{
		FunctionType: node.Attribute("interface type"),
		IsImplicit:   node.Standalone("implicit"),
		IsMutating:   node.Standalone("mutating"),
		Access:       node.Attribute("access"),
	}

	name := firstStandalone(node)
	if node.Name == "Constructor Declaration" {
		name = "init"
	}
	if open := strings.IndexByte(name, '('); open >= 0 {
		name = name[:open]
	}
	data.Prefix = name

	data.ReturnType = functionReturnType(data.FunctionType)
	if generics := node.Attribute("generic_signature"); generics != "" {
		data.GenericTypes = parseGenericSignature(generics)
	}

	if parameterList := node.Subtree("Parameter List"); parameterList != nil {
		for _, parameter := range parameterList.Subtrees {
			if parameter.Name != "Parameter" {
				continue
			}
			label := firstStandalone(parameter)
			apiLabel := parameter.Attribute("apiName")
			if apiLabel == "" {
				apiLabel = label
			}
			data.Parameters = append(data.Parameters, ast.FunctionParameter{
				Label:    label,
				APILabel: apiLabel,
				Type:     typeOf(parameter),
			})
		}
	}

	if brace := node.Subtree("Brace Statement"); brace != nil {
		data.Statements = t.translateBraceStatement(brace)
		data.HasBody = true
	}

	// Methods on types arrive as subtrees of the type declaration; the
	// static marker is the only distinction the dump gives us.
	if node.Standalone("type") || node.Standalone("static") {
		data.IsStatic = true
	}

	return &ast.FunctionDeclaration{FunctionDeclarationData: data}
}

// functionReturnType extracts the final result type from an interface type
// like "(Int, Int) -> Bool" or "(Self) -> (Int) -> Bool".
func functionReturnType(functionType string) string {
	last := strings.LastIndex(functionType, " -> ")
	if last < 0 {
		return ""
	}
	result := functionType[last+len(" -> "):]
	return ast.CleanUpType(result)
}

// parseGenericSignature splits "<T, U where ...>" into its parameter names.
func parseGenericSignature(signature string) []string {
	signature = strings.TrimPrefix(signature, "<")
	signature = strings.TrimSuffix(signature, ">")
	if where := strings.Index(signature, " where "); where >= 0 {
		signature = signature[:where]
	}
	parts := strings.Split(signature, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// processPatternBindingDeclaration stashes a pattern binding's initializer
// until the matching variable declaration consumes it.
func (t *Translator) processPatternBindingDeclaration(node *astdump.SwiftAST) {
	var identifier string
	var typeName string
	var expression ast.Expression

	for _, subtree := range node.Subtrees {
		switch subtree.Name {
		case "Pattern Named", "Pattern Typed", "Pattern Let", "Pattern Variable":
			identifier = patternName(subtree)
			typeName = typeOf(subtree)
		default:
			if t.isExpressionNode(subtree) && expression == nil {
				expression = t.translateExpression(subtree)
			}
		}
	}

	if identifier == "" {
		return
	}
	t.danglingPatternBindings = append(t.danglingPatternBindings, patternBinding{
		identifier: identifier,
		typeName:   typeName,
		expression: expression,
	})
}

// popPatternBinding consumes the stashed binding for the given identifier.
func (t *Translator) popPatternBinding(identifier string) (patternBinding, bool) {
	for i, binding := range t.danglingPatternBindings {
		if binding.identifier == identifier {
			t.danglingPatternBindings = append(
				t.danglingPatternBindings[:i],
				t.danglingPatternBindings[i+1:]...)
			return binding, true
		}
	}
	return patternBinding{}, false
}

func (t *Translator) translateVariableDeclaration(node *astdump.SwiftAST) ast.Statement {
	data := ast.VariableDeclarationData{
		Identifier: firstStandalone(node),
		TypeName:   typeOf(node),
		IsLet:      node.Standalone("let"),
		IsImplicit: node.Standalone("implicit"),
		IsStatic:   node.Standalone("type") || node.Standalone("static"),
	}

	if binding, ok := t.popPatternBinding(data.Identifier); ok {
		data.Expression = binding.expression
		if data.TypeName == "" {
			data.TypeName = binding.typeName
		}
	}

	for _, subtree := range node.Subtrees {
		if subtree.Name != "Function Declaration" {
			continue
		}
		accessor := t.translateFunctionDeclaration(subtree)
		function, ok := accessor.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		switch accessorKind(subtree) {
		case "get":
			getter := function.FunctionDeclarationData
			data.Getter = &getter
		case "set":
			setter := function.FunctionDeclarationData
			data.Setter = &setter
		}
	}

	return &ast.VariableDeclaration{VariableDeclarationData: data}
}

// accessorKind classifies a variable's accessor function subtree.
func accessorKind(node *astdump.SwiftAST) string {
	if kind := node.Attribute("accessor_kind"); kind != "" {
		return kind
	}
	for _, attribute := range node.StandaloneAttributes {
		if attribute == "getter_for" || strings.HasPrefix(attribute, "get_for") {
			return "get"
		}
		if attribute == "setter_for" || strings.HasPrefix(attribute, "set_for") {
			return "set"
		}
	}
	if node.HasAttribute("get_for") {
		return "get"
	}
	if node.HasAttribute("set_for") {
		return "set"
	}
	return ""
}

// standaloneMarkers are flag attributes a declaration node can carry.
var standaloneMarkers = map[string]bool{
	"implicit": true,
	"let":      true,
	"static":   true,
	"type":     true,
	"mutating": true,
	"final":    true,
	"required": true,
	"lazy":     true,
}

// collectInheritances reads the inherits attribute, absorbing the
// continuation tokens the dump splits across standalone attributes when
// several protocols are listed.
func (t *Translator) collectInheritances(node *astdump.SwiftAST) []string {
	raw := node.Attribute("inherits")
	if raw == "" {
		return nil
	}

	pieces := []string{raw}
	if strings.HasSuffix(raw, ",") {
		for _, attribute := range node.StandaloneAttributes {
			// The declaration's own name and marker words are not
			// part of the inheritance list.
			if strings.HasPrefix(attribute, "\"") || standaloneMarkers[attribute] {
				continue
			}
			pieces = append(pieces, attribute)
			if !strings.HasSuffix(attribute, ",") {
				break
			}
		}
	}

	var result []string
	for _, piece := range strings.Split(strings.Join(pieces, " "), ",") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			result = append(result, piece)
		}
	}
	return result
}
