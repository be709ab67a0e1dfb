// Package cmd wires the compiler pipeline behind a single cobra command.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hgoncalo/pascalsvm/internal/codegen"
	compilererrors "github.com/hgoncalo/pascalsvm/internal/errors"
	"github.com/hgoncalo/pascalsvm/internal/lexer"
	"github.com/hgoncalo/pascalsvm/internal/parser"
	"github.com/hgoncalo/pascalsvm/internal/semantic"
	"github.com/hgoncalo/pascalsvm/internal/token"
	"github.com/spf13/cobra"
)

var (
	toStdout bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "pascalsvm [file]",
	Short: "Compile a Pascal-subset source file to SVM assembly",
	Long: `pascalsvm reads a single Pascal-subset source file, runs it through
the lexer, parser, semantic analyzer, and code generator, and writes the
emitted SVM assembly next to the source file.`,
	Args: cobra.ExactArgs(1),
	RunE: compileFile,
}

func init() {
	rootCmd.Flags().BoolVar(&toStdout, "stdout", false, "also print the emitted SVM assembly to stdout")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline progress to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// compileFile runs the four-stage pipeline over args[0]. On success it
// writes the emitted assembly to <path-without-ext>.svm. On failure it
// writes the Portuguese diagnostic to stdout — not stderr, per this
// compiler's error-reporting contract — and returns a non-nil error so
// main sets the process exit code.
func compileFile(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	if verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	l := lexer.New(source)
	p := parser.New(l)
	prog, err := p.ParseProgram()
	if err != nil {
		fmt.Println(err.Error())
		if verbose && len(p.Errors()) > 0 {
			printCaret(source, p.Errors()[0].Message, p.Errors()[0].Pos)
		}
		return err
	}

	analyzer := semantic.New()
	if err := analyzer.Analyze(prog); err != nil {
		fmt.Println(err.Error())
		if verbose {
			if semErr, ok := err.(*semantic.Error); ok {
				printCaret(source, semErr.Message, semErr.Pos)
			}
		}
		return err
	}

	gen := codegen.New()
	out, err := gen.Compile(prog)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	outFile := outputName(filename)
	if err := os.WriteFile(outFile, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if toStdout {
		fmt.Print(out)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outFile)
	}
	return nil
}

// printCaret renders a --verbose-only developer view of a diagnostic: the
// offending source line plus a caret under the reported column, via
// internal/errors' CompilerError.
func printCaret(source, message string, pos token.Position) {
	fmt.Fprintln(os.Stderr, compilererrors.New(pos, message, source).WithCaret())
}

func outputName(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return filename + ".svm"
	}
	return strings.TrimSuffix(filename, ext) + ".svm"
}
