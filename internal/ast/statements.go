package ast

import "strings"

// ExpressionStatement wraps an expression evaluated for effect.
type ExpressionStatement struct {
	Expression Expression
}

func (s *ExpressionStatement) statementNode()  {}
func (s *ExpressionStatement) TreeName() string { return "Expression Statement" }
func (s *ExpressionStatement) TreeChildren() []Printable {
	return []Printable{s.Expression}
}

// TypealiasDeclaration declares a type alias.
type TypealiasDeclaration struct {
	Identifier string
	TypeName   string
	IsImplicit bool
}

func (s *TypealiasDeclaration) statementNode()  {}
func (s *TypealiasDeclaration) TreeName() string { return "Typealias Declaration" }
func (s *TypealiasDeclaration) TreeChildren() []Printable {
	children := []Printable{
		labeledLeaf("identifier", s.Identifier),
		labeledLeaf("type", s.TypeName),
	}
	if s.IsImplicit {
		children = append(children, leaf("implicit"))
	}
	return children
}

// ExtensionDeclaration extends a type with additional members.
type ExtensionDeclaration struct {
	TypeName string
	Members  []Statement
}

func (s *ExtensionDeclaration) statementNode()  {}
func (s *ExtensionDeclaration) TreeName() string { return "Extension Declaration" }
func (s *ExtensionDeclaration) TreeChildren() []Printable {
	children := []Printable{labeledLeaf("type", s.TypeName)}
	return append(children, statementsToPrintables(s.Members)...)
}

// ImportDeclaration imports a module.
type ImportDeclaration struct {
	ModuleName string
}

func (s *ImportDeclaration) statementNode()  {}
func (s *ImportDeclaration) TreeName() string { return "Import Declaration" }
func (s *ImportDeclaration) TreeChildren() []Printable {
	return []Printable{leaf(s.ModuleName)}
}

// ClassDeclaration declares a class.
type ClassDeclaration struct {
	ClassName string
	Inherits  []string
	Members   []Statement
}

func (s *ClassDeclaration) statementNode()  {}
func (s *ClassDeclaration) TreeName() string { return "Class Declaration" }
func (s *ClassDeclaration) TreeChildren() []Printable {
	children := []Printable{leaf(s.ClassName)}
	if len(s.Inherits) > 0 {
		children = append(children, labeledLeaf("inherits", strings.Join(s.Inherits, ", ")))
	}
	return append(children, statementsToPrintables(s.Members)...)
}

// CompanionObject groups the static members hoisted out of a type.
type CompanionObject struct {
	Members []Statement
}

func (s *CompanionObject) statementNode()  {}
func (s *CompanionObject) TreeName() string { return "Companion Object" }
func (s *CompanionObject) TreeChildren() []Printable {
	return statementsToPrintables(s.Members)
}

// EnumDeclaration declares an enum, which emits as either an enum class or
// a sealed class depending on its elements.
type EnumDeclaration struct {
	Access     string
	EnumName   string
	Inherits   []string
	Elements   []*EnumElement
	Members    []Statement
	IsImplicit bool
}

func (s *EnumDeclaration) statementNode()  {}
func (s *EnumDeclaration) TreeName() string { return "Enum Declaration" }
func (s *EnumDeclaration) TreeChildren() []Printable {
	children := []Printable{}
	if s.Access != "" {
		children = append(children, labeledLeaf("access", s.Access))
	}
	children = append(children, leaf(s.EnumName))
	if len(s.Inherits) > 0 {
		children = append(children, labeledLeaf("inherits", strings.Join(s.Inherits, ", ")))
	}
	for _, element := range s.Elements {
		children = append(children, element)
	}
	return append(children, statementsToPrintables(s.Members)...)
}

func (e *EnumElement) TreeName() string { return "Element " + e.Name }
func (e *EnumElement) TreeChildren() []Printable {
	var children []Printable
	for _, value := range e.AssociatedValues {
		children = append(children, labeledLeaf(value.Label, value.Type))
	}
	if e.RawValue != nil {
		children = append(children, &group{name: "rawValue", children: []Printable{e.RawValue}})
	}
	return children
}

// ProtocolDeclaration declares a protocol, emitted as a Kotlin interface.
type ProtocolDeclaration struct {
	ProtocolName string
	Members      []Statement
}

func (s *ProtocolDeclaration) statementNode()  {}
func (s *ProtocolDeclaration) TreeName() string { return "Protocol Declaration" }
func (s *ProtocolDeclaration) TreeChildren() []Printable {
	children := []Printable{leaf(s.ProtocolName)}
	return append(children, statementsToPrintables(s.Members)...)
}

// StructDeclaration declares a struct, emitted as a Kotlin data class.
type StructDeclaration struct {
	Annotations string
	StructName  string
	Inherits    []string
	Members     []Statement
}

func (s *StructDeclaration) statementNode()  {}
func (s *StructDeclaration) TreeName() string { return "Struct Declaration" }
func (s *StructDeclaration) TreeChildren() []Printable {
	children := []Printable{}
	if s.Annotations != "" {
		children = append(children, labeledLeaf("annotations", s.Annotations))
	}
	children = append(children, leaf(s.StructName))
	if len(s.Inherits) > 0 {
		children = append(children, labeledLeaf("inherits", strings.Join(s.Inherits, ", ")))
	}
	return append(children, statementsToPrintables(s.Members)...)
}

// FunctionDeclaration declares a function or method.
type FunctionDeclaration struct {
	FunctionDeclarationData
}

func (s *FunctionDeclaration) statementNode()  {}
func (s *FunctionDeclaration) TreeName() string { return "Function Declaration" }
func (s *FunctionDeclaration) TreeChildren() []Printable {
	children := []Printable{labeledLeaf("prefix", s.Prefix)}
	if s.ExtendsType != "" {
		children = append(children, labeledLeaf("extends type", s.ExtendsType))
	}
	for _, parameter := range s.Parameters {
		label := parameter.Label
		if parameter.APILabel != "" && parameter.APILabel != parameter.Label {
			label = parameter.APILabel + " " + parameter.Label
		}
		children = append(children, labeledLeaf("parameter "+label, parameter.Type))
	}
	children = append(children, labeledLeaf("return type", s.ReturnType))
	if s.IsImplicit {
		children = append(children, leaf("implicit"))
	}
	if s.IsStatic {
		children = append(children, leaf("static"))
	}
	if s.IsMutating {
		children = append(children, leaf("mutating"))
	}
	if s.HasBody {
		children = append(children, &group{
			name:     "statements",
			children: statementsToPrintables(s.Statements),
		})
	}
	return children
}

// VariableDeclaration declares a variable or constant.
type VariableDeclaration struct {
	VariableDeclarationData
}

func (s *VariableDeclaration) statementNode()  {}
func (s *VariableDeclaration) TreeName() string { return "Variable Declaration" }
func (s *VariableDeclaration) TreeChildren() []Printable {
	children := []Printable{
		labeledLeaf("identifier", s.Identifier),
		labeledLeaf("type", s.TypeName),
	}
	if s.IsLet {
		children = append(children, leaf("let"))
	}
	if s.IsImplicit {
		children = append(children, leaf("implicit"))
	}
	if s.IsStatic {
		children = append(children, leaf("static"))
	}
	if s.ExtendsType != "" {
		children = append(children, labeledLeaf("extends type", s.ExtendsType))
	}
	if s.Expression != nil {
		children = append(children, &group{name: "expression", children: []Printable{s.Expression}})
	}
	if s.Getter != nil {
		children = append(children, &group{
			name:     "getter",
			children: statementsToPrintables(s.Getter.Statements),
		})
	}
	if s.Setter != nil {
		children = append(children, &group{
			name:     "setter",
			children: statementsToPrintables(s.Setter.Statements),
		})
	}
	return children
}

// ForEachStatement iterates a collection.
type ForEachStatement struct {
	Collection Expression
	Variable   Expression
	Statements []Statement
}

func (s *ForEachStatement) statementNode()  {}
func (s *ForEachStatement) TreeName() string { return "For Each Statement" }
func (s *ForEachStatement) TreeChildren() []Printable {
	return []Printable{
		&group{name: "variable", children: []Printable{s.Variable}},
		&group{name: "collection", children: []Printable{s.Collection}},
		&group{name: "statements", children: statementsToPrintables(s.Statements)},
	}
}

// WhileStatement loops while a condition holds.
type WhileStatement struct {
	Expression Expression
	Statements []Statement
}

func (s *WhileStatement) statementNode()  {}
func (s *WhileStatement) TreeName() string { return "While Statement" }
func (s *WhileStatement) TreeChildren() []Printable {
	return []Printable{
		&group{name: "condition", children: []Printable{s.Expression}},
		&group{name: "statements", children: statementsToPrintables(s.Statements)},
	}
}

// IfStatement is an if or guard statement.
type IfStatement struct {
	IfStatementData
}

func (s *IfStatement) statementNode() {}
func (s *IfStatement) TreeName() string {
	if s.IsGuard {
		return "Guard Statement"
	}
	return "If Statement"
}

func (s *IfStatement) TreeChildren() []Printable {
	var conditions []Printable
	for _, condition := range s.Conditions {
		if condition.Expression != nil {
			conditions = append(conditions, condition.Expression)
		} else if condition.Declaration != nil {
			conditions = append(conditions, (&VariableDeclaration{VariableDeclarationData: *condition.Declaration}))
		}
	}
	children := []Printable{
		&group{name: "conditions", children: conditions},
	}
	if len(s.Declarations) > 0 {
		children = append(children, &group{name: "declarations", children: statementsToPrintables(s.Declarations)})
	}
	children = append(children, &group{name: "statements", children: statementsToPrintables(s.Statements)})
	if s.ElseStatement != nil {
		elseStatement := &IfStatement{IfStatementData: *s.ElseStatement}
		children = append(children, &group{name: "else", children: []Printable{elseStatement}})
	}
	return children
}

// SwitchStatement switches over a scrutinee. ConvertsToExpression is set by
// the switch-rewriting pass when every case ends by assigning the same
// variable or by returning, in which case the emitter hoists the switch
// into a when expression.
type SwitchStatement struct {
	ConvertsToExpression Statement
	Expression           Expression
	Cases                []SwitchCase
}

func (s *SwitchStatement) statementNode()  {}
func (s *SwitchStatement) TreeName() string { return "Switch Statement" }
func (s *SwitchStatement) TreeChildren() []Printable {
	children := []Printable{
		&group{name: "expression", children: []Printable{s.Expression}},
	}
	for _, switchCase := range s.Cases {
		name := "case"
		if len(switchCase.Expressions) == 0 {
			name = "default"
		}
		caseChildren := expressionsToPrintables(switchCase.Expressions)
		caseChildren = append(caseChildren, &group{
			name:     "statements",
			children: statementsToPrintables(switchCase.Statements),
		})
		children = append(children, &group{name: name, children: caseChildren})
	}
	return children
}

// DeferStatement delays statements to scope exit.
type DeferStatement struct {
	Statements []Statement
}

func (s *DeferStatement) statementNode()  {}
func (s *DeferStatement) TreeName() string { return "Defer Statement" }
func (s *DeferStatement) TreeChildren() []Printable {
	return statementsToPrintables(s.Statements)
}

// ThrowStatement throws an error value.
type ThrowStatement struct {
	Expression Expression
}

func (s *ThrowStatement) statementNode()  {}
func (s *ThrowStatement) TreeName() string { return "Throw Statement" }
func (s *ThrowStatement) TreeChildren() []Printable {
	return []Printable{s.Expression}
}

// ReturnStatement returns from a function, with an optional value.
type ReturnStatement struct {
	Expression Expression
}

func (s *ReturnStatement) statementNode()  {}
func (s *ReturnStatement) TreeName() string { return "Return Statement" }
func (s *ReturnStatement) TreeChildren() []Printable {
	if s.Expression == nil {
		return nil
	}
	return []Printable{s.Expression}
}

// BreakStatement breaks out of the enclosing loop.
type BreakStatement struct{}

func (s *BreakStatement) statementNode()           {}
func (s *BreakStatement) TreeName() string          { return "Break Statement" }
func (s *BreakStatement) TreeChildren() []Printable { return nil }

// ContinueStatement continues the enclosing loop.
type ContinueStatement struct{}

func (s *ContinueStatement) statementNode()           {}
func (s *ContinueStatement) TreeName() string          { return "Continue Statement" }
func (s *ContinueStatement) TreeChildren() []Printable { return nil }

// AssignmentStatement assigns a value to a target.
type AssignmentStatement struct {
	LeftHand  Expression
	RightHand Expression
}

func (s *AssignmentStatement) statementNode()  {}
func (s *AssignmentStatement) TreeName() string { return "Assignment Statement" }
func (s *AssignmentStatement) TreeChildren() []Printable {
	children := []Printable{s.LeftHand}
	if s.RightHand != nil {
		children = append(children, s.RightHand)
	}
	return children
}

// ErrorStatement replaces a statement that could not be translated. The
// emitter prints it as the <<Error>> sentinel so downstream compilation
// fails loudly at the site.
type ErrorStatement struct{}

func (s *ErrorStatement) statementNode()           {}
func (s *ErrorStatement) TreeName() string          { return "Error Statement" }
func (s *ErrorStatement) TreeChildren() []Printable { return nil }
