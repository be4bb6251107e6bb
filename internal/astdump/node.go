package astdump

import (
	"sort"
	"strings"
)

// SwiftAST is a raw node of the decoded AST dump: a name, its unlabeled
// attributes, its key=value attributes, and its children, in dump order.
//
// Invariant: Name is never empty for a decoded node.
type SwiftAST struct {
	Name                 string
	StandaloneAttributes []string
	KeyValueAttributes   map[string]string
	Subtrees             []*SwiftAST
}

// NewSwiftAST creates a node with the given expanded name.
func NewSwiftAST(name string) *SwiftAST {
	return &SwiftAST{
		Name:               name,
		KeyValueAttributes: map[string]string{},
	}
}

// Attribute returns the value for the given key, or "" when absent.
func (n *SwiftAST) Attribute(key string) string {
	return n.KeyValueAttributes[key]
}

// HasAttribute reports whether the node carries the given key.
func (n *SwiftAST) HasAttribute(key string) bool {
	_, ok := n.KeyValueAttributes[key]
	return ok
}

// Standalone reports whether the given unlabeled attribute is present.
func (n *SwiftAST) Standalone(attribute string) bool {
	for _, a := range n.StandaloneAttributes {
		if a == attribute {
			return true
		}
	}
	return false
}

// Subtree returns the first child with the given expanded name, or nil.
func (n *SwiftAST) Subtree(name string) *SwiftAST {
	for _, subtree := range n.Subtrees {
		if subtree.Name == name {
			return subtree
		}
	}
	return nil
}

// SubtreeAt returns the child at the given index, or nil when out of range.
func (n *SwiftAST) SubtreeAt(index int) *SwiftAST {
	if index < 0 || index >= len(n.Subtrees) {
		return nil
	}
	return n.Subtrees[index]
}

// String prints the node back in dump syntax. Keyed attributes are printed
// in sorted key order so the output is deterministic; the printed form
// re-decodes to an equal tree.
func (n *SwiftAST) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *SwiftAST) write(sb *strings.Builder, indent int) {
	// Values that would not read back as a single token are single-quoted.
	quoted := func(value string) string {
		if value == "" || strings.ContainsAny(value[:1], "\"[<") ||
			strings.Contains(value, "'") || !strings.ContainsAny(value, " ()=\t\n") {
			return value
		}
		return "'" + value + "'"
	}

	sb.WriteString("(")
	sb.WriteString(abbreviateName(n.Name))

	for _, attribute := range n.StandaloneAttributes {
		sb.WriteString(" ")
		sb.WriteString(quoted(attribute))
	}

	keys := make([]string, 0, len(n.KeyValueAttributes))
	for key := range n.KeyValueAttributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		sb.WriteString(" ")
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(quoted(n.KeyValueAttributes[key]))
	}

	for _, subtree := range n.Subtrees {
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("  ", indent+1))
		subtree.write(sb, indent+1)
	}

	sb.WriteString(")")
}

// nameAbbreviations expands the abbreviated words the dump uses in node
// names.
var nameAbbreviations = map[string]string{
	"decl":    "Declaration",
	"declref": "Declaration Reference",
	"expr":    "Expression",
	"func":    "Function",
	"ref":     "Reference",
	"stmt":    "Statement",
	"var":     "Variable",
}

// expandName turns a dump node name like "func_decl" into its expanded
// form "Function Declaration", which is what the frontend translator
// dispatches on.
func expandName(name string) string {
	words := strings.Split(name, "_")
	expanded := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		if full, ok := nameAbbreviations[word]; ok {
			expanded = append(expanded, full)
			continue
		}
		expanded = append(expanded, strings.ToUpper(word[:1])+word[1:])
	}
	return strings.Join(expanded, " ")
}

// abbreviateName turns an expanded name back into a lowercase,
// underscore-joined dump name. It does not restore the dump's abbreviations
// ("Function Declaration" becomes "function_declaration"), but expandName
// maps its result back to the same expanded name.
func abbreviateName(name string) string {
	words := strings.Split(name, " ")
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "_")
}
