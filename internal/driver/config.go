// Package driver wires the pipeline together: it resolves the run
// configuration, reads the output-file map, and runs the two-phase
// translation with its synchronization barrier.
package driver

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved run configuration handed to the core pipeline.
type Config struct {
	// Stage dumps
	EmitSwiftAST bool
	EmitRawAST   bool
	EmitAST      bool
	EmitKotlin   bool

	// Layout
	Indentation     string
	HorizontalLimit int

	// Behavior toggles
	WriteToConsole   bool
	DefaultFinal     bool
	StopOnFirstError bool
	Verbose          bool
	AvoidUnicode     bool

	// Collaborator handles
	OutputFileMapPath string
	Toolchain         string
}

// FromViper resolves a Config from bound flags, environment variables and
// an optional configuration file.
func FromViper(v *viper.Viper) Config {
	return Config{
		EmitSwiftAST:      v.GetBool("emit-swift-ast"),
		EmitRawAST:        v.GetBool("emit-raw-ast"),
		EmitAST:           v.GetBool("emit-ast"),
		EmitKotlin:        v.GetBool("emit-kotlin"),
		Indentation:       ParseIndentation(v.GetString("indentation")),
		HorizontalLimit:   v.GetInt("horizontal-limit"),
		WriteToConsole:    v.GetBool("write-to-console"),
		DefaultFinal:      v.GetBool("default-final"),
		StopOnFirstError:  v.GetBool("stop-on-first-error"),
		Verbose:           v.GetBool("verbose"),
		AvoidUnicode:      v.GetBool("avoid-unicode"),
		OutputFileMapPath: v.GetString("output-file-map"),
		Toolchain:         v.GetString("toolchain"),
	}
}

// ParseIndentation interprets the indentation option: "t" or "tab" selects
// tabs, a number selects that many spaces.
func ParseIndentation(value string) string {
	switch value {
	case "", "t", "tab", "\t":
		return "\t"
	}
	if count, err := strconv.Atoi(value); err == nil && count > 0 {
		return strings.Repeat(" ", count)
	}
	return "\t"
}
