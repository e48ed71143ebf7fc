package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcc-lang/mcc/internal/codegen"
	"github.com/mcc-lang/mcc/internal/syntax"
)

func writeSource(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig("/tmp/foo/prog.c")
	if cfg.Output != "/tmp/foo/prog" {
		t.Errorf("Output = %q, want %q", cfg.Output, "/tmp/foo/prog")
	}
	if cfg.AsmFile != "/tmp/foo/prog.s" {
		t.Errorf("AsmFile = %q, want %q", cfg.AsmFile, "/tmp/foo/prog.s")
	}
	if cfg.CC != "cc" {
		t.Errorf("CC = %q, want %q", cfg.CC, "cc")
	}
}

func TestCompileEmitOnly(t *testing.T) {
	src := writeSource(t, "prog.c", "int main() { return 42; }")

	cfg := NewConfig(src)
	cfg.EmitOnly = true
	if err := Compile(cfg); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	asm, err := os.ReadFile(cfg.AsmFile)
	if err != nil {
		t.Fatalf("reading assembly: %v", err)
	}
	text := string(asm)
	if !strings.Contains(text, ".globl "+cfg.Target.SymbolPrefix+"main") {
		t.Errorf("assembly missing .globl directive:\n%s", text)
	}
	if !strings.Contains(text, "movl $42, %eax") {
		t.Errorf("assembly missing literal load:\n%s", text)
	}
}

func TestCompileSyntaxError(t *testing.T) {
	src := writeSource(t, "bad.c", "int main() { return 2 }")

	cfg := NewConfig(src)
	cfg.EmitOnly = true
	err := Compile(cfg)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var serr *syntax.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want *syntax.SyntaxError", err)
	}
	if serr.Kind != syntax.MissingSemicolon {
		t.Errorf("kind = %v, want MissingSemicolon", serr.Kind)
	}

	// No intermediate file may be left behind on a front-end failure.
	if _, err := os.Stat(cfg.AsmFile); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("assembly file exists after syntax error")
	}
}

func TestCompileToolchainError(t *testing.T) {
	src := writeSource(t, "prog.c", "int main() { return 0; }")

	cfg := NewConfig(src)
	cfg.CC = filepath.Join(t.TempDir(), "no-such-cc")
	err := Compile(cfg)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var terr *ToolchainError
	if !errors.As(err, &terr) {
		t.Fatalf("error type = %T, want *ToolchainError", err)
	}
	var serr *syntax.SyntaxError
	if errors.As(err, &serr) {
		t.Error("toolchain error must not match *syntax.SyntaxError")
	}

	// The intermediate is cleaned up even when the toolchain fails.
	if _, err := os.Stat(cfg.AsmFile); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("assembly file exists after toolchain failure")
	}
}

func TestCompileKeepAsmOnToolchainError(t *testing.T) {
	src := writeSource(t, "prog.c", "int main() { return 0; }")

	cfg := NewConfig(src)
	cfg.CC = filepath.Join(t.TempDir(), "no-such-cc")
	cfg.KeepAsm = true
	if err := Compile(cfg); err == nil {
		t.Fatal("expected error, got nil")
	}

	if _, err := os.Stat(cfg.AsmFile); err != nil {
		t.Errorf("assembly file missing despite KeepAsm: %v", err)
	}
}

func TestCompileMissingInput(t *testing.T) {
	cfg := NewConfig(filepath.Join(t.TempDir(), "absent.c"))
	if err := Compile(cfg); err == nil {
		t.Fatal("expected error for missing input")
	}

	if err := Compile(Config{}); err == nil {
		t.Fatal("expected error for empty input path")
	}
}

func TestToolchainErrorMessage(t *testing.T) {
	e := &ToolchainError{Tool: "cc", Output: "undefined symbol: _start\n"}
	if got := e.Error(); !strings.Contains(got, "undefined symbol") {
		t.Errorf("Error() = %q, want the tool output included", got)
	}

	wrapped := errors.New("exit status 1")
	e = &ToolchainError{Tool: "cc", Err: wrapped}
	if !errors.Is(e, wrapped) {
		t.Error("Unwrap does not expose the underlying error")
	}
}

func TestConfigApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcc.toml")
	content := `
[toolchain]
cc = "gcc"
keep_asm = true
symbol_prefix = "_"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	cfg := NewConfig("prog.c")
	fc.Apply(&cfg)

	if cfg.CC != "gcc" {
		t.Errorf("CC = %q, want %q", cfg.CC, "gcc")
	}
	if !cfg.KeepAsm {
		t.Error("KeepAsm = false, want true")
	}
	if cfg.Target.SymbolPrefix != "_" {
		t.Errorf("SymbolPrefix = %q, want %q", cfg.Target.SymbolPrefix, "_")
	}
}

func TestConfigApplyPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcc.toml")
	if err := os.WriteFile(path, []byte("[toolchain]\ncc = \"clang\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	cfg := NewConfig("prog.c")
	cfg.Target = codegen.Target{SymbolPrefix: "_"}
	cfg.KeepAsm = true
	fc.Apply(&cfg)

	if cfg.CC != "clang" {
		t.Errorf("CC = %q, want %q", cfg.CC, "clang")
	}
	// Fields absent from the file stay untouched.
	if !cfg.KeepAsm {
		t.Error("KeepAsm overridden by absent field")
	}
	if cfg.Target.SymbolPrefix != "_" {
		t.Error("SymbolPrefix overridden by absent field")
	}
}

func TestConfigLoadErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed file")
	}
}
