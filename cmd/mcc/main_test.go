package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunEmitTokens(t *testing.T) {
	filename := writeTempCFile(t, "int main() { return 0x2a; }")
	code, out, errOut := captureOutput(t, func() int {
		return runEmitTokens(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitTokens exit=%d\nstderr:\n%s\nstdout:\n%s", code, errOut, out)
	}
	for _, want := range []string{"POSITION", "int", "NAME", `"main"`, "INT", `"0x2a"`, "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("token listing missing %q:\n%s", want, out)
		}
	}
}

func TestRunEmitTokensInvalid(t *testing.T) {
	filename := writeTempCFile(t, "int main() { return @; }")
	code, _, errOut := captureOutput(t, func() int {
		return runEmitTokens(filename)
	})

	if code == 0 {
		t.Fatal("expected non-zero exit for invalid input")
	}
	if !strings.Contains(errOut, "invalid identifier") {
		t.Errorf("stderr missing diagnostic:\n%s", errOut)
	}
}

func TestRunEmitAST(t *testing.T) {
	filename := writeTempCFile(t, "int main() { return 1 + 2; }")
	code, out, errOut := captureOutput(t, func() int {
		return runEmitAST(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitAST exit=%d\nstderr:\n%s\nstdout:\n%s", code, errOut, out)
	}
	for _, want := range []string{"Program", "FuncDecl", "Name: main", "Operation +"} {
		if !strings.Contains(out, want) {
			t.Errorf("AST dump missing %q:\n%s", want, out)
		}
	}
}

func TestRunEmitASTJSON(t *testing.T) {
	filename := writeTempCFile(t, "int main() { return 2; }")

	old := *astFormat
	*astFormat = "json"
	defer func() { *astFormat = old }()

	code, out, errOut := captureOutput(t, func() int {
		return runEmitAST(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitAST exit=%d\nstderr:\n%s", code, errOut)
	}
	if !strings.Contains(out, `"type": "Program"`) {
		t.Errorf("JSON dump missing Program node:\n%s", out)
	}
}

func TestCheckGoVersion(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"go1.21.0", true},
		{"go1.23.3", true},
		{"go1.20", false},
		{"go2.0", true},
		{"devel", false},
	}

	for _, tt := range tests {
		if got := checkGoVersion(tt.version); got != tt.want {
			t.Errorf("checkGoVersion(%q) = %v, want %v", tt.version, got, tt.want)
		}
	}
}

func writeTempCFile(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, "input.c")
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func captureOutput(t *testing.T, fn func() int) (code int, stdout string, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdout: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stderr: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	outBytes, _ := io.ReadAll(rOut)
	errBytes, _ := io.ReadAll(rErr)
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
