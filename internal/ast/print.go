package ast

import (
	"sort"
	"strconv"
	"strings"
)

// glyphSet holds the branch drawings used by tree dumps. The unicode set is
// the default; the ASCII set is selected by the avoid-unicode toggle.
type glyphSet struct {
	branch     string
	lastBranch string
	vertical   string
	space      string
}

var (
	unicodeGlyphs = glyphSet{branch: " ├─ ", lastBranch: " └─ ", vertical: " │  ", space: "    "}
	asciiGlyphs   = glyphSet{branch: " |- ", lastBranch: " \\- ", vertical: " |  ", space: "    "}
)

// Print renders a printable tree for stage dumps. Node names are printed in
// camelCase; scalar leaves are printed verbatim.
func Print(node Printable, avoidUnicode bool) string {
	glyphs := unicodeGlyphs
	if avoidUnicode {
		glyphs = asciiGlyphs
	}

	var sb strings.Builder
	sb.WriteString(printableName(node.TreeName()))
	sb.WriteString("\n")
	printChildren(&sb, node.TreeChildren(), "", glyphs)
	return sb.String()
}

func printChildren(sb *strings.Builder, children []Printable, prefix string, glyphs glyphSet) {
	for i, child := range children {
		last := i == len(children)-1

		sb.WriteString(prefix)
		if last {
			sb.WriteString(glyphs.lastBranch)
		} else {
			sb.WriteString(glyphs.branch)
		}
		name := child.TreeName()
		if _, isLeaf := child.(leaf); !isLeaf {
			name = printableName(name)
		}
		sb.WriteString(name)
		sb.WriteString("\n")

		childPrefix := prefix + glyphs.vertical
		if last {
			childPrefix = prefix + glyphs.space
		}
		printChildren(sb, child.TreeChildren(), childPrefix, glyphs)
	}
}

// printableName converts a capitalized node name like "Class Declaration"
// into camelCase for dumps. Leaves that are not capitalized names (scalar
// values, "label: value" pairs) pass through unchanged.
func printableName(name string) string {
	words := strings.Split(name, " ")
	if len(words) == 0 {
		return name
	}
	first := words[0]
	if first == "" || first[0] < 'A' || first[0] > 'Z' {
		return name
	}
	for _, word := range words[1:] {
		if word == "" || strings.ContainsAny(word, ":=\"'") {
			return name
		}
	}

	words[0] = strings.ToLower(first)
	return strings.Join(words, "")
}

func sortStrings(values []string) {
	sort.Strings(values)
}

func formatFloat(value float64) string {
	formatted := strconv.FormatFloat(value, 'g', -1, 64)
	if !strings.ContainsAny(formatted, ".eE") {
		formatted += ".0"
	}
	return formatted
}
