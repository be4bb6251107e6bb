package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cwbudde/go-gryphon/internal/driver"
)

var translateCmd = &cobra.Command{
	Use:   "translate [dump files...]",
	Short: "Translate Swift AST dumps to Kotlin",
	Long: `Translate one or more Swift files to Kotlin.

Each argument is an AST dump produced by the Swift compiler, or a Swift
source path listed in the output file map with an ast-dump entry. Files
translate in parallel; cross-file information (enums, protocols, user
templates) synchronizes at a single barrier between the recording and
rewriting pass phases.

Examples:
  # Translate a dump to stdout
  gryphon translate test.swiftastdump --write-to-console

  # Translate through an output file map
  gryphon translate --output-file-map output-map.yaml src/test.swift

  # Dump the intermediate tree instead of Kotlin
  gryphon translate test.swiftastdump --emit-ast --write-to-console`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	flags := translateCmd.Flags()
	flags.Bool("emit-swift-ast", false, "dump the decoded Swift AST")
	flags.Bool("emit-raw-ast", false, "dump the intermediate tree before the passes run")
	flags.Bool("emit-ast", false, "dump the intermediate tree after the passes run")
	flags.Bool("emit-kotlin", true, "emit Kotlin source")
	flags.String("indentation", "t", "indentation: t for tabs, a number for spaces")
	flags.Int("horizontal-limit", 0, "wrap emitted lines longer than this (0 disables)")
	flags.Bool("write-to-console", false, "write outputs to stdout instead of the output file map")
	flags.Bool("default-final", false, "emit classes closed by default")
	flags.Bool("stop-on-first-error", false, "stop translating after the first error")
	flags.Bool("avoid-unicode", false, "use ASCII glyphs in tree dumps")
	flags.String("output-file-map", "", "path to the output file map")
	flags.String("toolchain", "", "toolchain identifier passed to the Swift frontend")

	if err := viper.BindPFlags(flags); err != nil {
		exitWithError("binding flags: %v", err)
	}
}

func runTranslate(_ *cobra.Command, args []string) error {
	config := driver.FromViper(viper.GetViper())
	pipeline := driver.NewPipeline(config)

	var outputMap driver.OutputFileMap
	if config.OutputFileMapPath != "" {
		loaded, err := driver.LoadOutputFileMap(config.OutputFileMapPath, pipeline.Context.Diagnostics)
		if err != nil {
			return err
		}
		outputMap = loaded
	}

	inputs := resolveInputs(args, outputMap)
	results := pipeline.Run(inputs)
	if err := pipeline.WriteOutputs(results, outputMap); err != nil {
		return err
	}

	reportDiagnostics(pipeline.Context)
	if pipeline.Context.Diagnostics.HasErrors() {
		return fmt.Errorf("translation failed with %d error(s)",
			pipeline.Context.Diagnostics.ErrorCount())
	}
	return nil
}

// resolveInputs pairs each argument with its AST dump: a dump path is its
// own input, a source path resolves through the output file map.
func resolveInputs(args []string, outputMap driver.OutputFileMap) []driver.InputFile {
	inputs := make([]driver.InputFile, 0, len(args))
	for _, argument := range args {
		input := driver.InputFile{
			SourcePath: argument,
			DumpPath:   argument,
			IsTemplate: outputMap.IsTemplateFile(argument),
		}
		if !strings.HasSuffix(argument, ".swiftastdump") {
			if dump := outputMap.Destination(argument, driver.KindASTDump); dump != "" {
				input.DumpPath = dump
			}
		}
		inputs = append(inputs, input)
	}
	return inputs
}
