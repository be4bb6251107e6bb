package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/go-gryphon/internal/errors"
)

func writeOutputMap(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "output-map.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadOutputFileMap(t *testing.T) {
	path := writeOutputMap(t, `
"src/test.swift":
    "ast-dump": ".gryphon/test.swiftastdump"
    "kotlin": "out/test.kt"
`)

	diagnostics := errors.NewList()
	outputMap, err := LoadOutputFileMap(path, diagnostics)
	require.NoError(t, err)

	assert.Equal(t, ".gryphon/test.swiftastdump", outputMap.Destination("src/test.swift", KindASTDump))
	assert.Equal(t, "out/test.kt", outputMap.Destination("src/test.swift", KindKotlin))
	assert.Equal(t, "", outputMap.Destination("src/test.swift", KindGryphonAST))
	assert.False(t, diagnostics.HasErrors())
}

func TestLoadOutputFileMapWarnsOnUnknownKind(t *testing.T) {
	path := writeOutputMap(t, `
"src/test.swift":
    "mystery": "somewhere"
    "kotlin": "out/test.kt"
`)

	diagnostics := errors.NewList()
	outputMap, err := LoadOutputFileMap(path, diagnostics)
	require.NoError(t, err)

	assert.Equal(t, 1, diagnostics.WarningCount())
	assert.Equal(t, "out/test.kt", outputMap.Destination("src/test.swift", KindKotlin))
	assert.Equal(t, "", outputMap.Destination("src/test.swift", "mystery"))
}

func TestIsTemplateFile(t *testing.T) {
	path := writeOutputMap(t, `
"src/templates.swift":
    "template": ".gryphon/templates.swiftastdump"
`)

	diagnostics := errors.NewList()
	outputMap, err := LoadOutputFileMap(path, diagnostics)
	require.NoError(t, err)

	assert.True(t, outputMap.IsTemplateFile("src/templates.swift"))
	assert.False(t, outputMap.IsTemplateFile("src/test.swift"))
	assert.True(t, OutputFileMap(nil).IsTemplateFile("lib.swifttemplates"))
}

func TestParseIndentation(t *testing.T) {
	assert.Equal(t, "\t", ParseIndentation("t"))
	assert.Equal(t, "\t", ParseIndentation(""))
	assert.Equal(t, "    ", ParseIndentation("4"))
	assert.Equal(t, "  ", ParseIndentation("2"))
	assert.Equal(t, "\t", ParseIndentation("bogus"))
}
