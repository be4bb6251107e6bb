package transpiler

import (
	"github.com/cwbudde/go-gryphon/internal/ast"
)

// Pass is one tree-to-tree transformation. Passes are deterministic; they
// communicate only through the tree and the shared context.
type Pass interface {
	// Name identifies the pass for logging and debugging.
	Name() string

	// Rewrite transforms one file's tree, returning a new tree.
	Rewrite(file *ast.SourceFile) *ast.SourceFile
}

// RecordingPasses builds the fixed pre-barrier sequence for one file. These
// passes only record information into the file's scratch scope; the tree
// passes through unchanged.
func RecordingPasses(context *Context, scope *FileScope) []Pass {
	passes := []Pass{
		NewRecordEnumsPass(context, scope),
		NewRecordProtocolsPass(context, scope),
		NewRecordPureFunctionsPass(context, scope),
	}
	if scope.IsTemplate {
		passes = append(passes, NewRecordTemplatesPass(context, scope))
	}
	return passes
}

// RewritingPasses builds the fixed post-barrier sequence for one file. The
// order is load-bearing: cleanups run before idiom rewrites, templates
// apply before the renamings that would destroy the type information they
// match on, and warnings run last over the final tree.
func RewritingPasses(context *Context, scope *FileScope) []Pass {
	return []Pass{
		NewRemoveImplicitDeclarationsPass(context, scope),
		NewRemoveExtensionsPass(context, scope),
		NewRemoveParenthesesPass(context, scope),
		NewSelfToThisPass(context, scope),
		NewCleanInheritancesPass(context, scope),
		NewAnonymousParametersPass(context, scope),
		NewReturnsInLambdasPass(context, scope),
		NewInnerTypePrefixesPass(context, scope),
		NewRenameOperatorsPass(context, scope),
		NewDoubleNegationsPass(context, scope),
		NewRewriteEnumReferencesPass(context, scope),
		NewSealedClassCasesPass(context, scope),
		NewApplyTemplatesPass(context, scope),
		NewNumericCastsPass(context, scope),
		NewRewriteRangesPass(context, scope),
		NewRewriteOptionalsPass(context, scope),
		NewRenameStandardLibraryPass(context, scope),
		NewRewriteSwitchPass(context, scope),
		NewRewriteGuardsPass(context, scope),
		NewRewriteIfLetPass(context, scope),
		NewEquatableOperatorsPass(context, scope),
		NewOmitReturnsPass(context, scope),
		NewRaiseWarningsPass(context, scope),
	}
}

// RunPasses applies a pass sequence to one file. Pass boundaries observe
// the stop-on-first-error flag and short-circuit the remaining passes.
func RunPasses(file *ast.SourceFile, passes []Pass, context *Context) *ast.SourceFile {
	for _, pass := range passes {
		if context.ShouldStop() {
			break
		}
		file = pass.Rewrite(file)
	}
	return file
}
