// Package transpiler hosts the transpilation-pass framework: the visitor
// walker, the shared context, and the pass library that specializes the
// Gryphon AST for Kotlin.
//
// Passes run in two phases around a single barrier. Phase 1 records
// cross-file information into per-file scratch scopes; the barrier merges
// every scope into the shared Context and freezes it; phase 2 rewrites
// trees reading the frozen context.
package transpiler

import (
	"sort"
	"sync"

	"github.com/cwbudde/go-gryphon/internal/errors"
	"github.com/cwbudde/go-gryphon/internal/template"
)

// FunctionTranslation maps a Swift function's prefix to the Kotlin name a
// user template declared for it.
type FunctionTranslation struct {
	SwiftName  string
	KotlinName string
}

// Context is the shared compiler state: toggles, the diagnostic list, and
// the cross-file tables populated at the barrier.
type Context struct {
	Diagnostics *errors.List

	// Toggles
	StopOnFirstError bool
	Verbose          bool
	DefaultFinal     bool
	AvoidUnicode     bool

	// Cross-file tables. Written only by Merge, before phase 2 starts;
	// read-only afterwards.
	enums                map[string]bool
	sealedEnums          map[string]bool
	protocols            map[string]bool
	pureFunctions        map[string]bool
	templates            []template.Template
	functionTranslations []FunctionTranslation

	frozen bool
	mutex  sync.Mutex
}

// NewContext creates an empty context with a fresh diagnostic list.
func NewContext() *Context {
	return &Context{
		Diagnostics:   errors.NewList(),
		enums:         map[string]bool{},
		sealedEnums:   map[string]bool{},
		protocols:     map[string]bool{},
		pureFunctions: map[string]bool{},
	}
}

// FileScope is one file's pre-barrier scratch: recordings staged here are
// merged into the Context at the barrier. A scope is only touched by its
// own file's goroutine.
type FileScope struct {
	Path       string
	IsTemplate bool

	Enums                []string
	SealedEnums          []string
	Protocols            []string
	PureFunctions        []string
	Templates            []template.Template
	FunctionTranslations []FunctionTranslation
}

// NewFileScope creates a scratch scope for one file.
func NewFileScope(path string) *FileScope {
	return &FileScope{Path: path}
}

// Merge folds the given scopes into the context and freezes it. Scopes are
// merged in sorted path order so the resulting tables are deterministic
// regardless of translation order.
func (c *Context) Merge(scopes []*FileScope) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	sorted := make([]*FileScope, len(scopes))
	copy(sorted, scopes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for _, scope := range sorted {
		for _, name := range scope.Enums {
			c.enums[name] = true
		}
		for _, name := range scope.SealedEnums {
			c.sealedEnums[name] = true
		}
		for _, name := range scope.Protocols {
			c.protocols[name] = true
		}
		for _, name := range scope.PureFunctions {
			c.pureFunctions[name] = true
		}
		c.templates = append(c.templates, scope.Templates...)
		c.functionTranslations = append(c.functionTranslations, scope.FunctionTranslations...)
	}
	c.frozen = true
}

// IsEnum reports whether the given type name was recorded as an enum.
func (c *Context) IsEnum(name string) bool {
	return c.enums[name]
}

// IsSealedEnum reports whether the enum has associated values and so emits
// as a sealed class.
func (c *Context) IsSealedEnum(name string) bool {
	return c.sealedEnums[name]
}

// IsProtocol reports whether the given name was recorded as a protocol.
func (c *Context) IsProtocol(name string) bool {
	return c.protocols[name]
}

// IsPureFunction reports whether warnings are suppressed for the function.
func (c *Context) IsPureFunction(name string) bool {
	return c.pureFunctions[name]
}

// Templates returns the merged user templates in declaration order.
func (c *Context) Templates() []template.Template {
	return c.templates
}

// FunctionTranslations returns the merged function renamings.
func (c *Context) FunctionTranslations() []FunctionTranslation {
	return c.functionTranslations
}

// ShouldStop reports whether the stop-on-first-error toggle has tripped.
// Pass boundaries observe it and short-circuit the remaining passes.
func (c *Context) ShouldStop() bool {
	return c.StopOnFirstError && c.Diagnostics.HasErrors()
}
