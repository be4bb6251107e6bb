package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/go-gryphon/internal/ast"
)

// WriteOutputs writes each file's requested artifacts: stage dumps for the
// emit toggles and the Kotlin text with its error map. With write-to-console
// set, everything prints to stdout instead of the mapped destinations.
func (p *Pipeline) WriteOutputs(results []*FileResult, outputMap OutputFileMap) error {
	for _, result := range results {
		if result.failed || result.Input.IsTemplate {
			continue
		}
		if err := p.writeFileOutputs(result, outputMap); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) writeFileOutputs(result *FileResult, outputMap OutputFileMap) error {
	source := result.Input.SourcePath

	if p.Config.EmitSwiftAST && result.SwiftAST != nil {
		destination := outputMap.Destination(source, KindSwiftAST)
		if err := p.writeArtifact(result.SwiftAST.String()+"\n", destination); err != nil {
			return err
		}
	}
	if p.Config.EmitRawAST && result.RawAST != nil {
		destination := outputMap.Destination(source, KindGryphonASTRaw)
		dump := ast.Print(result.RawAST, p.Config.AvoidUnicode)
		if err := p.writeArtifact(dump, destination); err != nil {
			return err
		}
	}
	if p.Config.EmitAST && result.AST != nil {
		destination := outputMap.Destination(source, KindGryphonAST)
		dump := ast.Print(result.AST, p.Config.AvoidUnicode)
		if err := p.writeArtifact(dump, destination); err != nil {
			return err
		}
	}

	if !p.Config.EmitKotlin || result.Translation == nil {
		return nil
	}
	destination := outputMap.Destination(source, KindKotlin)
	if err := p.writeArtifact(result.Translation.Kotlin(), destination); err != nil {
		return err
	}
	if destination != "" && !p.Config.WriteToConsole {
		errorMapPath := destination + ".errorMap"
		if err := os.WriteFile(errorMapPath, []byte(result.Translation.ErrorMap()), 0o644); err != nil {
			return fmt.Errorf("writing error map %s: %w", errorMapPath, err)
		}
	}
	return nil
}

// writeArtifact writes contents to the destination, or to stdout when the
// run prints to console or the map has no destination for this artifact.
func (p *Pipeline) writeArtifact(contents, destination string) error {
	if p.Config.WriteToConsole || destination == "" {
		fmt.Print(contents)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("creating output directory for %s: %w", destination, err)
	}
	if err := os.WriteFile(destination, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", destination, err)
	}
	return nil
}
