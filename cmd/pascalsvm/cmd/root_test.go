package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.pas")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write temp source: %v", err)
	}
	return path
}

func resetFlags() {
	toStdout = false
	verbose = false
}

func TestCompileFileWritesSVMOutput(t *testing.T) {
	resetFlags()
	path := writeTempSource(t, `program H; begin writeln('ola') end.`)

	if err := compileFile(nil, []string{path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outPath := outputName(path)
	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected output file at %s: %v", outPath, err)
	}
	if !strings.Contains(string(content), "START") || !strings.Contains(string(content), "STOP") {
		t.Errorf("expected emitted assembly to contain START/STOP, got:\n%s", content)
	}
}

func TestCompileFilePropagatesSemanticError(t *testing.T) {
	resetFlags()
	path := writeTempSource(t, `program E; var b:boolean; begin b:=1 end.`)

	err := compileFile(nil, []string{path})
	if err == nil {
		t.Fatal("expected a semantic error to propagate")
	}

	if _, statErr := os.Stat(outputName(path)); statErr == nil {
		t.Errorf("no output file should be written on a compilation failure")
	}
}

func TestOutputNameDerivesFromSourcePath(t *testing.T) {
	cases := map[string]string{
		"foo.pas":         "foo.svm",
		"/a/b/bar.pas":    "/a/b/bar.svm",
		"noext":           "noext.svm",
		"dir/both.ext.pas": "dir/both.ext.svm",
	}
	for in, want := range cases {
		if got := outputName(in); got != want {
			t.Errorf("outputName(%q) = %q, want %q", in, got, want)
		}
	}
}
