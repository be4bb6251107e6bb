package driver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/go-gryphon/internal/errors"
)

// Output kinds recognized in the output-file map.
const (
	KindASTDump       = "ast-dump"
	KindSwiftAST      = "swiftAST"
	KindGryphonASTRaw = "gryphonASTRaw"
	KindGryphonAST    = "gryphonAST"
	KindKotlin        = "kotlin"
	KindTemplate      = "template"
)

var recognizedKinds = map[string]bool{
	KindASTDump:       true,
	KindSwiftAST:      true,
	KindGryphonASTRaw: true,
	KindGryphonAST:    true,
	KindKotlin:        true,
	KindTemplate:      true,
}

// OutputFileMap maps each source path to its per-kind destinations.
type OutputFileMap map[string]map[string]string

// LoadOutputFileMap reads and validates an output-file map. Unknown kinds
// are dropped with a warning; the rest of the record is kept.
func LoadOutputFileMap(path string, diagnostics *errors.List) (OutputFileMap, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading output file map: %w", err)
	}

	var raw map[string]map[string]string
	if err := yaml.Unmarshal(contents, &raw); err != nil {
		return nil, fmt.Errorf("parsing output file map %s: %w", path, err)
	}

	result := OutputFileMap{}
	for source, kinds := range raw {
		record := map[string]string{}
		for kind, destination := range kinds {
			if !recognizedKinds[kind] {
				diagnostics.AppendWarning(path, nil,
					"unknown output kind %q for %s is ignored", kind, source)
				continue
			}
			record[kind] = destination
		}
		result[source] = record
	}
	return result, nil
}

// Destination returns the configured path for the given source and kind,
// or "" when the map has none.
func (m OutputFileMap) Destination(source, kind string) string {
	if m == nil {
		return ""
	}
	return m[source][kind]
}

// IsTemplateFile reports whether the source is marked as a template file,
// either by an explicit kind or by its extension.
func (m OutputFileMap) IsTemplateFile(source string) bool {
	if m != nil && m[source][KindTemplate] != "" {
		return true
	}
	return hasTemplateExtension(source)
}

func hasTemplateExtension(source string) bool {
	const extension = ".swifttemplates"
	if len(source) < len(extension) {
		return false
	}
	return source[len(source)-len(extension):] == extension
}
