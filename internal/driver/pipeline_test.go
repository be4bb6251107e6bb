package driver

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	snaps.Clean(m)
	os.Exit(code)
}

func input(name string) InputFile {
	return InputFile{
		SourcePath: "testdata/" + name + ".swift",
		DumpPath:   "testdata/" + name + ".swiftastdump",
	}
}

func templateInput(name string) InputFile {
	file := input(name)
	file.IsTemplate = true
	return file
}

func runPipeline(t *testing.T, files ...InputFile) (*Pipeline, []*FileResult) {
	t.Helper()
	pipeline := NewPipeline(Config{Indentation: "\t", EmitKotlin: true})
	results := pipeline.Run(files)
	return pipeline, results
}

func kotlinOf(t *testing.T, results []*FileResult, sourcePath string) string {
	t.Helper()
	for _, result := range results {
		if result.Input.SourcePath == sourcePath {
			require.NotNil(t, result.Translation, "no translation for %s", sourcePath)
			return result.Translation.Kotlin()
		}
	}
	t.Fatalf("no result for %s", sourcePath)
	return ""
}

func TestTranslateIntegerRange(t *testing.T) {
	pipeline, results := runPipeline(t, input("range"))
	assert.False(t, pipeline.Context.Diagnostics.HasErrors())

	kotlin := kotlinOf(t, results, "testdata/range.swift")
	assert.Contains(t, kotlin, "println(Int.MIN_VALUE until 0)")
	snaps.MatchSnapshot(t, kotlin)
}

func TestTranslateGuard(t *testing.T) {
	pipeline, results := runPipeline(t, input("guard"))
	assert.False(t, pipeline.Context.Diagnostics.HasErrors())

	kotlin := kotlinOf(t, results, "testdata/guard.swift")
	assert.Contains(t, kotlin, "if (!(x == 0)) {")
	assert.Contains(t, kotlin, `println("--")`)
	assert.Contains(t, kotlin, `println("Guard")`)
	snaps.MatchSnapshot(t, kotlin)
}

func TestTranslateIfLet(t *testing.T) {
	pipeline, results := runPipeline(t, input("iflet"))
	assert.False(t, pipeline.Context.Diagnostics.HasErrors())

	kotlin := kotlinOf(t, results, "testdata/iflet.swift")
	assert.Contains(t, kotlin, "val a: Int? = x")
	assert.Contains(t, kotlin, "if (a != null) {")
	assert.Contains(t, kotlin, "println(a)")
	snaps.MatchSnapshot(t, kotlin)
}

func TestTranslateSwitchWithRanges(t *testing.T) {
	pipeline, results := runPipeline(t, input("switch"))
	assert.False(t, pipeline.Context.Diagnostics.HasErrors())

	kotlin := kotlinOf(t, results, "testdata/switch.swift")
	assert.Contains(t, kotlin, "when (x) {")
	assert.Contains(t, kotlin, `in 4..5 -> println("Four or five")`)
	snaps.MatchSnapshot(t, kotlin)
}

func TestTranslateEnumWithAssociatedValues(t *testing.T) {
	pipeline, results := runPipeline(t, input("enum"))
	assert.False(t, pipeline.Context.Diagnostics.HasErrors())

	kotlin := kotlinOf(t, results, "testdata/enum.swift")
	assert.Contains(t, kotlin, "sealed class OtherError {")
	assert.Contains(t, kotlin, "data class OneInt(val int: Int) : OtherError()")
	snaps.MatchSnapshot(t, kotlin)
}

func TestTranslateWithTemplates(t *testing.T) {
	pipeline, results := runPipeline(t, templateInput("templates"), input("droplast"))
	assert.False(t, pipeline.Context.Diagnostics.HasErrors())

	kotlin := kotlinOf(t, results, "testdata/droplast.swift")
	assert.Contains(t, kotlin, `"abc".dropLast(1)`)
	snaps.MatchSnapshot(t, kotlin)
}

// TestDeterminism checks that two runs over the same inputs produce
// byte-identical Kotlin and error maps.
func TestDeterminism(t *testing.T) {
	files := []InputFile{input("guard"), input("switch"), input("enum"), input("range")}

	_, first := runPipeline(t, files...)
	_, second := runPipeline(t, files...)
	require.Equal(t, len(first), len(second))

	for i := range first {
		require.NotNil(t, first[i].Translation)
		require.NotNil(t, second[i].Translation)
		assert.Equal(t, first[i].Translation.Kotlin(), second[i].Translation.Kotlin())
		assert.Equal(t, first[i].Translation.ErrorMap(), second[i].Translation.ErrorMap())
	}
}

// TestBarrierIsolation checks that the diagnostics attributable to one
// file are the same whether it translates alone or with other files.
func TestBarrierIsolation(t *testing.T) {
	alone, _ := runPipeline(t, input("warning"))
	together, _ := runPipeline(t, input("warning"), input("unknown"))

	filterByFile := func(pipeline *Pipeline, path string) []string {
		var messages []string
		for _, diagnostic := range pipeline.Context.Diagnostics.Sorted() {
			if diagnostic.File == path {
				messages = append(messages, diagnostic.Format())
			}
		}
		return messages
	}

	assert.Equal(t,
		filterByFile(alone, "testdata/warning.swift"),
		filterByFile(together, "testdata/warning.swift"))
}

func TestDecoderFailureIsFatalForFile(t *testing.T) {
	pipeline, results := runPipeline(t, InputFile{
		SourcePath: "testdata/missing.swift",
		DumpPath:   "testdata/missing.swiftastdump",
	})

	assert.True(t, pipeline.Context.Diagnostics.HasErrors())
	require.Len(t, results, 1)
	assert.Nil(t, results[0].Translation)
}

func TestUnknownNodeKeepsTranslating(t *testing.T) {
	pipeline, results := runPipeline(t, input("unknown"))
	assert.True(t, pipeline.Context.Diagnostics.HasErrors())

	// The file still emits, with the error sentinel marking the site.
	kotlin := kotlinOf(t, results, "testdata/unknown.swift")
	assert.Contains(t, kotlin, "<<Error>>")
}

func TestErrorMapPointsIntoSourceFile(t *testing.T) {
	_, results := runPipeline(t, input("guard"))
	translation := results[0].Translation
	require.NotNil(t, translation)

	for _, line := range translation.Lines {
		require.NotNil(t, line.Range)
		assert.Equal(t, "testdata/guard.swift", line.Range.Path)
	}
}

func TestNoSentinelOnCleanRun(t *testing.T) {
	pipeline, results := runPipeline(t, input("guard"), input("range"))
	assert.False(t, pipeline.Context.Diagnostics.HasErrors())
	for _, result := range results {
		require.NotNil(t, result.Translation)
		assert.False(t, result.Translation.ContainsErrorSentinel())
	}
}
