package ast

import (
	"fmt"
	"strings"
)

// LiteralCodeExpression is raw Kotlin code inserted verbatim.
type LiteralCodeExpression struct {
	Value string
}

func (e *LiteralCodeExpression) expressionNode()          {}
func (e *LiteralCodeExpression) SwiftType() string        { return "" }
func (e *LiteralCodeExpression) TreeName() string         { return "Literal Code Expression" }
func (e *LiteralCodeExpression) TreeChildren() []Printable { return []Printable{leaf(e.Value)} }

// LiteralDeclarationExpression is raw Kotlin declaration code inserted
// verbatim at declaration position.
type LiteralDeclarationExpression struct {
	Value string
}

func (e *LiteralDeclarationExpression) expressionNode()   {}
func (e *LiteralDeclarationExpression) SwiftType() string { return "" }
func (e *LiteralDeclarationExpression) TreeName() string {
	return "Literal Declaration Expression"
}
func (e *LiteralDeclarationExpression) TreeChildren() []Printable {
	return []Printable{leaf(e.Value)}
}

// TemplateExpression is the result of a successful template match: the
// replacement pattern plus the bound subexpressions. Emission substitutes
// ${name} in the pattern with the emitted form of Matches[name].
type TemplateExpression struct {
	Pattern string
	Matches map[string]Expression
}

func (e *TemplateExpression) expressionNode()   {}
func (e *TemplateExpression) SwiftType() string { return "" }
func (e *TemplateExpression) TreeName() string  { return "Template Expression" }
func (e *TemplateExpression) TreeChildren() []Printable {
	children := []Printable{labeledLeaf("pattern", e.Pattern)}
	names := make([]string, 0, len(e.Matches))
	for name := range e.Matches {
		names = append(names, name)
	}
	sortStrings(names)
	for _, name := range names {
		children = append(children, &group{name: name, children: []Printable{e.Matches[name]}})
	}
	return children
}

// ParenthesesExpression wraps an expression in parentheses.
type ParenthesesExpression struct {
	Expression Expression
}

func (e *ParenthesesExpression) expressionNode()   {}
func (e *ParenthesesExpression) SwiftType() string { return e.Expression.SwiftType() }
func (e *ParenthesesExpression) TreeName() string  { return "Parentheses Expression" }
func (e *ParenthesesExpression) TreeChildren() []Printable {
	return []Printable{e.Expression}
}

// ForceValueExpression is a force unwrap (x!).
type ForceValueExpression struct {
	Expression Expression
}

func (e *ForceValueExpression) expressionNode() {}
func (e *ForceValueExpression) SwiftType() string {
	return strings.TrimSuffix(e.Expression.SwiftType(), "?")
}
func (e *ForceValueExpression) TreeName() string { return "Force Value Expression" }
func (e *ForceValueExpression) TreeChildren() []Printable {
	return []Printable{e.Expression}
}

// OptionalExpression is an optional chain link (x?).
type OptionalExpression struct {
	Expression Expression
}

func (e *OptionalExpression) expressionNode() {}
func (e *OptionalExpression) SwiftType() string {
	return strings.TrimSuffix(e.Expression.SwiftType(), "?")
}
func (e *OptionalExpression) TreeName() string { return "Optional Expression" }
func (e *OptionalExpression) TreeChildren() []Printable {
	return []Printable{e.Expression}
}

// DeclarationReferenceExpression references a declared name.
type DeclarationReferenceExpression struct {
	Identifier        string
	TypeName          string
	IsStandardLibrary bool
	IsImplicit        bool
	Range             *SourceRange
}

func (e *DeclarationReferenceExpression) expressionNode()   {}
func (e *DeclarationReferenceExpression) SwiftType() string { return e.TypeName }
func (e *DeclarationReferenceExpression) TreeName() string {
	return "Declaration Reference Expression"
}
func (e *DeclarationReferenceExpression) TreeChildren() []Printable {
	children := []Printable{
		labeledLeaf("identifier", e.Identifier),
		labeledLeaf("type", e.TypeName),
	}
	if e.IsStandardLibrary {
		children = append(children, leaf("standard library"))
	}
	if e.IsImplicit {
		children = append(children, leaf("implicit"))
	}
	return children
}

// TypeExpression references a type as a value.
type TypeExpression struct {
	TypeName string
}

func (e *TypeExpression) expressionNode()          {}
func (e *TypeExpression) SwiftType() string        { return e.TypeName }
func (e *TypeExpression) TreeName() string         { return "Type Expression" }
func (e *TypeExpression) TreeChildren() []Printable { return []Printable{leaf(e.TypeName)} }

// SubscriptExpression indexes into a collection.
type SubscriptExpression struct {
	SubscriptedExpression Expression
	IndexExpression       Expression
	TypeName              string
}

func (e *SubscriptExpression) expressionNode()   {}
func (e *SubscriptExpression) SwiftType() string { return e.TypeName }
func (e *SubscriptExpression) TreeName() string  { return "Subscript Expression" }
func (e *SubscriptExpression) TreeChildren() []Printable {
	return []Printable{
		&group{name: "subscripted", children: []Printable{e.SubscriptedExpression}},
		&group{name: "index", children: []Printable{e.IndexExpression}},
		labeledLeaf("type", e.TypeName),
	}
}

// ArrayExpression is an array literal.
type ArrayExpression struct {
	Elements []Expression
	TypeName string
}

func (e *ArrayExpression) expressionNode()   {}
func (e *ArrayExpression) SwiftType() string { return e.TypeName }
func (e *ArrayExpression) TreeName() string  { return "Array Expression" }
func (e *ArrayExpression) TreeChildren() []Printable {
	children := expressionsToPrintables(e.Elements)
	return append(children, labeledLeaf("type", e.TypeName))
}

// DictionaryExpression is a dictionary literal. Keys and Values correspond
// pairwise.
type DictionaryExpression struct {
	Keys     []Expression
	Values   []Expression
	TypeName string
}

func (e *DictionaryExpression) expressionNode()   {}
func (e *DictionaryExpression) SwiftType() string { return e.TypeName }
func (e *DictionaryExpression) TreeName() string  { return "Dictionary Expression" }
func (e *DictionaryExpression) TreeChildren() []Printable {
	children := []Printable{}
	for i := range e.Keys {
		pair := &group{name: "pair", children: []Printable{e.Keys[i], e.Values[i]}}
		children = append(children, pair)
	}
	return append(children, labeledLeaf("type", e.TypeName))
}

// ReturnExpression is a return in expression position, produced when a
// switch is hoisted into a when expression.
type ReturnExpression struct {
	Expression Expression
}

func (e *ReturnExpression) expressionNode() {}
func (e *ReturnExpression) SwiftType() string {
	if e.Expression == nil {
		return ""
	}
	return e.Expression.SwiftType()
}
func (e *ReturnExpression) TreeName() string { return "Return Expression" }
func (e *ReturnExpression) TreeChildren() []Printable {
	if e.Expression == nil {
		return nil
	}
	return []Printable{e.Expression}
}

// DotExpression is member access (a.b).
type DotExpression struct {
	LeftExpression  Expression
	RightExpression Expression
}

func (e *DotExpression) expressionNode()   {}
func (e *DotExpression) SwiftType() string { return e.RightExpression.SwiftType() }
func (e *DotExpression) TreeName() string  { return "Dot Expression" }
func (e *DotExpression) TreeChildren() []Printable {
	return []Printable{
		&group{name: "left", children: []Printable{e.LeftExpression}},
		&group{name: "right", children: []Printable{e.RightExpression}},
	}
}

// BinaryOperatorExpression applies a binary operator.
type BinaryOperatorExpression struct {
	LeftExpression  Expression
	RightExpression Expression
	OperatorSymbol  string
	TypeName        string
}

func (e *BinaryOperatorExpression) expressionNode()   {}
func (e *BinaryOperatorExpression) SwiftType() string { return e.TypeName }
func (e *BinaryOperatorExpression) TreeName() string  { return "Binary Operator Expression" }
func (e *BinaryOperatorExpression) TreeChildren() []Printable {
	return []Printable{
		e.LeftExpression,
		labeledLeaf("operator", e.OperatorSymbol),
		e.RightExpression,
	}
}

// PrefixUnaryExpression applies a prefix operator.
type PrefixUnaryExpression struct {
	Expression     Expression
	OperatorSymbol string
	TypeName       string
}

func (e *PrefixUnaryExpression) expressionNode()   {}
func (e *PrefixUnaryExpression) SwiftType() string { return e.TypeName }
func (e *PrefixUnaryExpression) TreeName() string  { return "Prefix Unary Expression" }
func (e *PrefixUnaryExpression) TreeChildren() []Printable {
	return []Printable{labeledLeaf("operator", e.OperatorSymbol), e.Expression}
}

// PostfixUnaryExpression applies a postfix operator.
type PostfixUnaryExpression struct {
	Expression     Expression
	OperatorSymbol string
	TypeName       string
}

func (e *PostfixUnaryExpression) expressionNode()   {}
func (e *PostfixUnaryExpression) SwiftType() string { return e.TypeName }
func (e *PostfixUnaryExpression) TreeName() string  { return "Postfix Unary Expression" }
func (e *PostfixUnaryExpression) TreeChildren() []Printable {
	return []Printable{e.Expression, labeledLeaf("operator", e.OperatorSymbol)}
}

// IfExpression is a ternary conditional.
type IfExpression struct {
	Condition       Expression
	TrueExpression  Expression
	FalseExpression Expression
}

func (e *IfExpression) expressionNode()   {}
func (e *IfExpression) SwiftType() string { return e.TrueExpression.SwiftType() }
func (e *IfExpression) TreeName() string  { return "If Expression" }
func (e *IfExpression) TreeChildren() []Printable {
	return []Printable{
		&group{name: "condition", children: []Printable{e.Condition}},
		&group{name: "then", children: []Printable{e.TrueExpression}},
		&group{name: "else", children: []Printable{e.FalseExpression}},
	}
}

// CallExpression calls a function. Parameters is always a TupleExpression
// or a TupleShuffleExpression; the emitter rejects any other shape.
type CallExpression struct {
	Function   Expression
	Parameters Expression
	TypeName   string
	Range      *SourceRange
}

func (e *CallExpression) expressionNode()   {}
func (e *CallExpression) SwiftType() string { return e.TypeName }
func (e *CallExpression) TreeName() string  { return "Call Expression" }
func (e *CallExpression) TreeChildren() []Printable {
	return []Printable{
		&group{name: "function", children: []Printable{e.Function}},
		&group{name: "parameters", children: []Printable{e.Parameters}},
		labeledLeaf("type", e.TypeName),
	}
}

// ClosureExpression is a closure literal.
type ClosureExpression struct {
	Parameters []LabeledType
	Statements []Statement
	TypeName   string
}

func (e *ClosureExpression) expressionNode()   {}
func (e *ClosureExpression) SwiftType() string { return e.TypeName }
func (e *ClosureExpression) TreeName() string  { return "Closure Expression" }
func (e *ClosureExpression) TreeChildren() []Printable {
	children := []Printable{}
	for _, parameter := range e.Parameters {
		children = append(children, labeledLeaf("parameter "+parameter.Label, parameter.Type))
	}
	children = append(children, &group{
		name:     "statements",
		children: statementsToPrintables(e.Statements),
	})
	return append(children, labeledLeaf("type", e.TypeName))
}

// LiteralIntExpression is an Int literal.
type LiteralIntExpression struct {
	Value int64
}

func (e *LiteralIntExpression) expressionNode()   {}
func (e *LiteralIntExpression) SwiftType() string { return "Int" }
func (e *LiteralIntExpression) TreeName() string  { return "Literal Int Expression" }
func (e *LiteralIntExpression) TreeChildren() []Printable {
	return []Printable{leaf(fmt.Sprintf("%d", e.Value))}
}

// LiteralUIntExpression is a UInt literal.
type LiteralUIntExpression struct {
	Value uint64
}

func (e *LiteralUIntExpression) expressionNode()   {}
func (e *LiteralUIntExpression) SwiftType() string { return "UInt" }
func (e *LiteralUIntExpression) TreeName() string  { return "Literal UInt Expression" }
func (e *LiteralUIntExpression) TreeChildren() []Printable {
	return []Printable{leaf(fmt.Sprintf("%d", e.Value))}
}

// LiteralDoubleExpression is a Double literal.
type LiteralDoubleExpression struct {
	Value float64
}

func (e *LiteralDoubleExpression) expressionNode()   {}
func (e *LiteralDoubleExpression) SwiftType() string { return "Double" }
func (e *LiteralDoubleExpression) TreeName() string  { return "Literal Double Expression" }
func (e *LiteralDoubleExpression) TreeChildren() []Printable {
	return []Printable{leaf(formatFloat(e.Value))}
}

// LiteralFloatExpression is a Float literal.
type LiteralFloatExpression struct {
	Value float64
}

func (e *LiteralFloatExpression) expressionNode()   {}
func (e *LiteralFloatExpression) SwiftType() string { return "Float" }
func (e *LiteralFloatExpression) TreeName() string  { return "Literal Float Expression" }
func (e *LiteralFloatExpression) TreeChildren() []Printable {
	return []Printable{leaf(formatFloat(e.Value))}
}

// LiteralBoolExpression is a Bool literal.
type LiteralBoolExpression struct {
	Value bool
}

func (e *LiteralBoolExpression) expressionNode()   {}
func (e *LiteralBoolExpression) SwiftType() string { return "Bool" }
func (e *LiteralBoolExpression) TreeName() string  { return "Literal Bool Expression" }
func (e *LiteralBoolExpression) TreeChildren() []Printable {
	return []Printable{leaf(fmt.Sprintf("%t", e.Value))}
}

// LiteralStringExpression is a String literal. IsMultiline marks literals
// that used the triple-quote marker in the source.
type LiteralStringExpression struct {
	Value       string
	IsMultiline bool
}

func (e *LiteralStringExpression) expressionNode()   {}
func (e *LiteralStringExpression) SwiftType() string { return "String" }
func (e *LiteralStringExpression) TreeName() string  { return "Literal String Expression" }
func (e *LiteralStringExpression) TreeChildren() []Printable {
	return []Printable{leaf("\"" + e.Value + "\"")}
}

// LiteralCharacterExpression is a Character literal.
type LiteralCharacterExpression struct {
	Value string
}

func (e *LiteralCharacterExpression) expressionNode()   {}
func (e *LiteralCharacterExpression) SwiftType() string { return "Character" }
func (e *LiteralCharacterExpression) TreeName() string  { return "Literal Character Expression" }
func (e *LiteralCharacterExpression) TreeChildren() []Printable {
	return []Printable{leaf("'" + e.Value + "'")}
}

// NilLiteralExpression is the nil literal.
type NilLiteralExpression struct{}

func (e *NilLiteralExpression) expressionNode()           {}
func (e *NilLiteralExpression) SwiftType() string         { return "" }
func (e *NilLiteralExpression) TreeName() string          { return "Nil Literal Expression" }
func (e *NilLiteralExpression) TreeChildren() []Printable { return nil }

// InterpolatedStringLiteralExpression is a string literal with interpolated
// expressions; literal segments appear as LiteralStringExpressions.
type InterpolatedStringLiteralExpression struct {
	Expressions []Expression
}

func (e *InterpolatedStringLiteralExpression) expressionNode()   {}
func (e *InterpolatedStringLiteralExpression) SwiftType() string { return "String" }
func (e *InterpolatedStringLiteralExpression) TreeName() string {
	return "Interpolated String Literal Expression"
}
func (e *InterpolatedStringLiteralExpression) TreeChildren() []Printable {
	return expressionsToPrintables(e.Expressions)
}

// TupleExpression is an argument tuple.
type TupleExpression struct {
	Pairs []LabeledExpression
}

func (e *TupleExpression) expressionNode()   {}
func (e *TupleExpression) SwiftType() string { return "" }
func (e *TupleExpression) TreeName() string  { return "Tuple Expression" }
func (e *TupleExpression) TreeChildren() []Printable {
	children := make([]Printable, 0, len(e.Pairs))
	for _, pair := range e.Pairs {
		name := pair.Label
		if name == "" {
			name = "_"
		}
		children = append(children, &group{name: name, children: []Printable{pair.Expression}})
	}
	return children
}

// TupleShuffleExpression is an argument tuple with reordering, defaulted and
// variadic slots. Labels and Indices correspond pairwise; Expressions are
// consumed in order by Present and Variadic indices.
type TupleShuffleExpression struct {
	Labels      []string
	Indices     []TupleShuffleIndex
	Expressions []Expression
}

func (e *TupleShuffleExpression) expressionNode()   {}
func (e *TupleShuffleExpression) SwiftType() string { return "" }
func (e *TupleShuffleExpression) TreeName() string  { return "Tuple Shuffle Expression" }
func (e *TupleShuffleExpression) TreeChildren() []Printable {
	children := []Printable{
		labeledLeaf("labels", strings.Join(e.Labels, ", ")),
	}
	indices := make([]string, 0, len(e.Indices))
	for _, index := range e.Indices {
		indices = append(indices, index.String())
	}
	children = append(children, labeledLeaf("indices", strings.Join(indices, ", ")))
	return append(children, expressionsToPrintables(e.Expressions)...)
}

// ErrorExpression replaces an expression that could not be translated.
type ErrorExpression struct{}

func (e *ErrorExpression) expressionNode()           {}
func (e *ErrorExpression) SwiftType() string         { return "" }
func (e *ErrorExpression) TreeName() string          { return "Error Expression" }
func (e *ErrorExpression) TreeChildren() []Printable { return nil }
