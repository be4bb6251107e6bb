// Package ast defines the intermediate tree ("Gryphon AST") shared by the
// frontend, the transpilation passes and the Kotlin emitter. Nodes are
// Kotlin-shaped concepts that still carry Swift flavor until the pass
// pipeline has specialized them.
//
// Statements and expressions are two closed sums: every variant is a struct
// with a marker method, and every consumer dispatches exhaustively. Trees
// are treated as immutable; a pass builds a new tree and may reuse
// unchanged subtrees.
package ast

import "fmt"

// SourceRange locates a construct in the original Swift source.
type SourceRange struct {
	Path        string
	LineStart   int
	ColumnStart int
	LineEnd     int
	ColumnEnd   int
}

// String formats the range as path:line:column.
func (r *SourceRange) String() string {
	return fmt.Sprintf("%s:%d:%d", r.Path, r.LineStart, r.ColumnStart)
}

// Printable is the tree-dump capability implemented by both sums and by
// the auxiliary records that appear in dumps.
type Printable interface {
	// TreeName returns the node's printable name.
	TreeName() string

	// TreeChildren returns the printable children, in dump order.
	TreeChildren() []Printable
}

// Statement is a node that performs an action.
type Statement interface {
	Printable
	statementNode()
}

// Expression is a node that produces a value. SwiftType returns the
// expression's static type as an opaque string in the Swift type grammar,
// or "" when no type is known.
type Expression interface {
	Printable
	expressionNode()
	SwiftType() string
}

// SourceFile is the root of a translated file's tree.
type SourceFile struct {
	Path       string
	Statements []Statement
}

func (f *SourceFile) TreeName() string { return "Source File" }

func (f *SourceFile) TreeChildren() []Printable {
	return statementsToPrintables(f.Statements)
}

// leaf is a plain-string tree node used for scalar fields in dumps.
type leaf string

func (l leaf) TreeName() string          { return string(l) }
func (l leaf) TreeChildren() []Printable { return nil }

// labeledLeaf pairs a field label with a scalar value in dumps.
func labeledLeaf(label, value string) Printable {
	return leaf(label + ": " + value)
}

// group is a named collection of printable children used in dumps.
type group struct {
	name     string
	children []Printable
}

func (g *group) TreeName() string          { return g.name }
func (g *group) TreeChildren() []Printable { return g.children }

func statementsToPrintables(statements []Statement) []Printable {
	result := make([]Printable, 0, len(statements))
	for _, statement := range statements {
		if statement == nil {
			continue
		}
		result = append(result, statement)
	}
	return result
}

func expressionsToPrintables(expressions []Expression) []Printable {
	result := make([]Printable, 0, len(expressions))
	for _, expression := range expressions {
		if expression == nil {
			continue
		}
		result = append(result, expression)
	}
	return result
}
