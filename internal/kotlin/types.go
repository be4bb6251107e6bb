package kotlin

import "strings"

// typeMapping maps Swift scalar types to their Kotlin spellings.
var typeMapping = map[string]string{
	"Bool":      "Boolean",
	"Character": "Char",
	"Int8":      "Byte",
	"Int16":     "Short",
	"Int32":     "Int",
	"Int64":     "Long",
	"UInt8":     "UByte",
	"UInt16":    "UShort",
	"UInt32":    "UInt",
	"UInt64":    "ULong",
	"AnyObject": "Any",
	"Void":      "Unit",
	"()":        "Unit",
}

// TranslateType maps a Swift type string to its Kotlin form. Array and
// dictionary shorthands become the mutable platform collections; optionals
// and function types map recursively.
func TranslateType(typeName string) string {
	typeName = strings.TrimSpace(typeName)
	if typeName == "" {
		return ""
	}

	if mapped, ok := typeMapping[typeName]; ok {
		return mapped
	}

	if strings.HasSuffix(typeName, "?") {
		return TranslateType(strings.TrimSuffix(typeName, "?")) + "?"
	}
	if strings.HasPrefix(typeName, "Optional<") && strings.HasSuffix(typeName, ">") {
		return TranslateType(typeName[len("Optional<"):len(typeName)-1]) + "?"
	}
	if strings.HasPrefix(typeName, "Array<") && strings.HasSuffix(typeName, ">") {
		return "MutableList<" + TranslateType(typeName[len("Array<"):len(typeName)-1]) + ">"
	}

	if strings.HasPrefix(typeName, "[") && strings.HasSuffix(typeName, "]") {
		inner := typeName[1 : len(typeName)-1]
		if colon := topLevelIndex(inner, ':'); colon >= 0 {
			key := TranslateType(inner[:colon])
			value := TranslateType(inner[colon+1:])
			return "MutableMap<" + key + ", " + value + ">"
		}
		return "MutableList<" + TranslateType(inner) + ">"
	}

	if arrow := topLevelArrow(typeName); arrow >= 0 {
		parameters := strings.TrimSpace(typeName[:arrow])
		result := strings.TrimSpace(typeName[arrow+len(" -> "):])
		return translateParameterList(parameters) + " -> " + TranslateType(result)
	}

	return typeName
}

func translateParameterList(parameters string) string {
	if !strings.HasPrefix(parameters, "(") || !strings.HasSuffix(parameters, ")") {
		return "(" + TranslateType(parameters) + ")"
	}
	inner := parameters[1 : len(parameters)-1]
	if strings.TrimSpace(inner) == "" {
		return "()"
	}

	var translated []string
	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '(', '[', '<':
			depth++
		case ')', ']', '>':
			depth--
		case ',':
			if depth == 0 {
				translated = append(translated, TranslateType(strings.TrimSpace(inner[start:i])))
				start = i + 1
			}
		}
	}
	translated = append(translated, TranslateType(strings.TrimSpace(inner[start:])))
	return "(" + strings.Join(translated, ", ") + ")"
}

// topLevelIndex finds a byte outside any bracket nesting.
func topLevelIndex(s string, target byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '<':
			depth++
		case ')', ']', '>':
			depth--
		default:
			if s[i] == target && depth == 0 {
				return i
			}
		}
	}
	return -1
}

// topLevelArrow finds the first top-level " -> " separator.
func topLevelArrow(s string) int {
	depth := 0
	for i := 0; i+4 <= len(s); i++ {
		switch s[i] {
		case '(', '[', '<':
			depth++
		case ')', ']', '>':
			depth--
		}
		if depth == 0 && s[i:i+4] == " -> " {
			return i
		}
	}
	return -1
}
