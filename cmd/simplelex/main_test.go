package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"simplelex", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"simplelex", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"simplelex"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDumpCommandPrintsReferenceTable(t *testing.T) {
	path := writeSource(t, "int age = 45;")

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"simplelex", "dump", path})
	})
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	want := "text\t\ttype\nint\t\tInt\nage\t\tIdentifier\n=\t\tAssignment\n45\t\tIntLiteral\n;\t\tSemiColon\n"
	if out != want {
		t.Fatalf("unexpected dump output: %q", out)
	}
}

func TestDumpCommandLegacyDropsFinalToken(t *testing.T) {
	path := writeSource(t, "int age = 45;")

	out, err := captureStdout(t, func() error {
		return dumpCommand([]string{"-legacy", path})
	})
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if strings.Contains(out, "SemiColon") {
		t.Fatalf("legacy dump should drop the final token: %q", out)
	}
	if !strings.Contains(out, "45\t\tIntLiteral\n") {
		t.Fatalf("unexpected legacy dump: %q", out)
	}
}

func TestDumpCommandFiltersTypes(t *testing.T) {
	path := writeSource(t, "a = b + 1;")

	out, err := captureStdout(t, func() error {
		return dumpCommand([]string{"-only", "Identifier, IntLiteral", path})
	})
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	want := "text\t\ttype\na\t\tIdentifier\nb\t\tIdentifier\n1\t\tIntLiteral\n"
	if out != want {
		t.Fatalf("unexpected filtered output: %q", out)
	}
}

func TestDumpCommandRejectsUnknownType(t *testing.T) {
	path := writeSource(t, "a;")
	err := dumpCommand([]string{"-only", "Float", path})
	if err == nil || !strings.Contains(err.Error(), `unknown token type "Float"`) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}

func TestDumpCommandJSON(t *testing.T) {
	path := writeSource(t, "x >= 10;\ny;")

	out, err := captureStdout(t, func() error {
		return dumpCommand([]string{"-format", "json", path})
	})
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	var tokens []jsonToken
	if err := json.Unmarshal([]byte(out), &tokens); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(tokens) != 6 {
		t.Fatalf("expected 6 tokens, got %d", len(tokens))
	}
	if tokens[1] != (jsonToken{Text: ">=", Type: "GE", Line: 1, Column: 3}) {
		t.Fatalf("unexpected GE token %+v", tokens[1])
	}
	if tokens[4] != (jsonToken{Text: "y", Type: "Identifier", Line: 2, Column: 1}) {
		t.Fatalf("unexpected second line token %+v", tokens[4])
	}
}

func TestDumpCommandSpew(t *testing.T) {
	path := writeSource(t, "int x;")

	out, err := captureStdout(t, func() error {
		return dumpCommand([]string{"-format", "spew", path})
	})
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if !strings.Contains(out, "lexer.Token") || !strings.Contains(out, `(len=3) "int"`) {
		t.Fatalf("unexpected spew output: %q", out)
	}
}

func TestDumpCommandStrictFailure(t *testing.T) {
	path := writeSource(t, "a $ b;")
	err := dumpCommand([]string{"-strict", path})
	if err == nil {
		t.Fatalf("expected strict failure")
	}
	if !strings.Contains(err.Error(), "tokenize failed: lex error at 1:3") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDumpCommandValidatesArguments(t *testing.T) {
	if err := dumpCommand(nil); err == nil || !strings.Contains(err.Error(), "source path required") {
		t.Fatalf("expected missing path error, got %v", err)
	}
	path := writeSource(t, "a;")
	if err := dumpCommand([]string{"-eof", "keep", path}); err == nil {
		t.Fatalf("expected bad eof policy error")
	}
	if err := dumpCommand([]string{"-format", "xml", path}); err == nil {
		t.Fatalf("expected bad format error")
	}
	if err := dumpCommand([]string{"-log-level", "loud", path}); err == nil {
		t.Fatalf("expected bad log level error")
	}
}

func TestCheckCommandNoIssues(t *testing.T) {
	path := writeSource(t, "int a = 1;\na = a * (2 + 3);\n")

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "No issues found") {
		t.Fatalf("unexpected check output: %q", out)
	}
}

func TestCheckCommandReportsEveryIssue(t *testing.T) {
	path := writeSource(t, "int a = 1 $;\nb = @2;\n")

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{path})
	})
	if err == nil {
		t.Fatalf("expected check to report issues")
	}
	if !strings.Contains(err.Error(), "check found 2 issue(s)") {
		t.Fatalf("unexpected check error: %v", err)
	}
	if !strings.Contains(out, path+":1:11: unrecognized character '$'") {
		t.Fatalf("missing first issue in %q", out)
	}
	if !strings.Contains(out, path+":2:5: unrecognized character '@'") {
		t.Fatalf("missing second issue in %q", out)
	}
}

func TestCheckCommandFailPolicyReportsUnterminatedToken(t *testing.T) {
	path := writeSource(t, "a = 1;")

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{"-eof", "fail", path})
	})
	if err == nil {
		t.Fatalf("expected unterminated token issue")
	}
	if !strings.Contains(out, `unterminated SemiColon token ";" at end of input`) {
		t.Fatalf("unexpected check output: %q", out)
	}
}

func TestCheckCommandRequiresPath(t *testing.T) {
	err := checkCommand(nil)
	if err == nil || !strings.Contains(err.Error(), "path required") {
		t.Fatalf("expected path required error, got %v", err)
	}
}

func writeSource(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.sl")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	return abs
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}
