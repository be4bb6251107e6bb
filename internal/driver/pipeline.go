package driver

import (
	"fmt"
	"os"
	"sort"

	"github.com/sourcegraph/conc"

	"github.com/cwbudde/go-gryphon/internal/ast"
	"github.com/cwbudde/go-gryphon/internal/astdump"
	"github.com/cwbudde/go-gryphon/internal/frontend"
	"github.com/cwbudde/go-gryphon/internal/kotlin"
	"github.com/cwbudde/go-gryphon/internal/transpiler"
)

// InputFile names one file to translate: the Swift source path it stands
// for and the AST dump produced for it by the frontend.
type InputFile struct {
	SourcePath string
	DumpPath   string
	IsTemplate bool
}

// FileResult carries one file through the pipeline stages.
type FileResult struct {
	Input InputFile

	SwiftAST    *astdump.SwiftAST
	RawAST      *ast.SourceFile
	AST         *ast.SourceFile
	Translation *kotlin.TranslationResult

	scope  *transpiler.FileScope
	failed bool
}

// Pipeline runs the four translation stages over a set of files: per-file
// phase 1 (decode, lower, recording passes), the barrier merge, and
// per-file phase 2 (rewriting passes, emission).
type Pipeline struct {
	Config  Config
	Context *transpiler.Context
}

// NewPipeline creates a pipeline with a fresh shared context configured
// from the run configuration.
func NewPipeline(config Config) *Pipeline {
	context := transpiler.NewContext()
	context.StopOnFirstError = config.StopOnFirstError
	context.Verbose = config.Verbose
	context.DefaultFinal = config.DefaultFinal
	context.AvoidUnicode = config.AvoidUnicode
	return &Pipeline{Config: config, Context: context}
}

// Run translates every input file. Within each phase the files run in
// parallel; all of phase 1 happens before all of phase 2, and the shared
// context is frozen in between. Results come back in sorted path order.
func (p *Pipeline) Run(files []InputFile) []*FileResult {
	results := make([]*FileResult, len(files))

	var phase1 conc.WaitGroup
	for i, file := range files {
		phase1.Go(func() {
			results[i] = p.runPhase1(file)
		})
	}
	phase1.Wait()

	// Barrier: publish every file's recordings, then freeze the context.
	scopes := make([]*transpiler.FileScope, 0, len(results))
	for _, result := range results {
		scopes = append(scopes, result.scope)
	}
	p.Context.Merge(scopes)

	var phase2 conc.WaitGroup
	for _, result := range results {
		phase2.Go(func() {
			p.runPhase2(result)
		})
	}
	phase2.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Input.SourcePath < results[j].Input.SourcePath
	})
	return results
}

func (p *Pipeline) runPhase1(file InputFile) *FileResult {
	result := &FileResult{
		Input: file,
		scope: transpiler.NewFileScope(file.SourcePath),
	}
	result.scope.IsTemplate = file.IsTemplate

	p.logVerbose("decoding %s", file.DumpPath)
	contents, err := os.ReadFile(file.DumpPath)
	if err != nil {
		p.Context.Diagnostics.AppendError(file.SourcePath, nil,
			"cannot read AST dump: %v", err)
		result.failed = true
		return result
	}

	swiftAST, err := astdump.Decode(string(contents))
	if err != nil {
		p.Context.Diagnostics.AppendError(file.SourcePath, nil, "%v", err)
		result.failed = true
		return result
	}
	result.SwiftAST = swiftAST

	p.logVerbose("lowering %s", file.SourcePath)
	translator := frontend.New(file.SourcePath, p.Context.Diagnostics)
	result.RawAST = translator.TranslateAST(swiftAST)

	passes := transpiler.RecordingPasses(p.Context, result.scope)
	result.AST = transpiler.RunPasses(result.RawAST, passes, p.Context)
	return result
}

func (p *Pipeline) runPhase2(result *FileResult) {
	if result.failed || result.Input.IsTemplate {
		return
	}

	p.logVerbose("rewriting %s", result.Input.SourcePath)
	passes := transpiler.RewritingPasses(p.Context, result.scope)
	result.AST = transpiler.RunPasses(result.AST, passes, p.Context)

	emitter := kotlin.NewTranslator(kotlin.Config{
		Indentation:     p.Config.Indentation,
		HorizontalLimit: p.Config.HorizontalLimit,
		DefaultFinal:    p.Config.DefaultFinal,
		IsSealedEnum:    p.Context.IsSealedEnum,
	}, p.Context.Diagnostics)
	result.Translation = emitter.TranslateFile(result.AST)
}

func (p *Pipeline) logVerbose(format string, args ...any) {
	if p.Context.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
