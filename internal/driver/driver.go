// Package driver orchestrates a compilation: source file in, native
// executable out. It runs the in-process pipeline (scan, parse, generate)
// and collaborates with the external assembler/linker to finish.
package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mcc-lang/mcc/internal/codegen"
	"github.com/mcc-lang/mcc/internal/syntax"
)

// Config controls a single compilation. Zero-value fields fall back to the
// conventions NewConfig establishes.
type Config struct {
	Input   string // source file path (required)
	Output  string // executable path; default is Input with its extension stripped
	AsmFile string // intermediate assembly path; default is Input with a .s extension
	CC      string // external assembler/linker command; default "cc"

	KeepAsm  bool // keep the intermediate assembly file
	EmitOnly bool // stop after writing the assembly file

	Target codegen.Target
	Logger *slog.Logger
}

// NewConfig returns a Config for input with all defaults resolved for the
// host platform.
func NewConfig(input string) Config {
	return Config{
		Input:   input,
		Output:  stripExt(input),
		AsmFile: replaceExt(input, ".s"),
		CC:      "cc",
		Target:  codegen.TargetFor(runtime.GOOS),
	}
}

// ToolchainError reports a failure of the external assembler/linker. It is
// deliberately distinct from *syntax.SyntaxError so callers can tell a bad
// program from a toolchain problem. Output carries the tool's raw
// diagnostic text.
type ToolchainError struct {
	Tool   string
	Output string
	Err    error
}

func (e *ToolchainError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s failed: %s", e.Tool, strings.TrimSpace(e.Output))
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ToolchainError) Unwrap() error { return e.Err }

// Compile runs the full pipeline for cfg: read the source, tokenize, parse,
// generate assembly, assemble and link with the external toolchain, then
// delete the intermediate file. The first error anywhere aborts all
// subsequent stages.
func Compile(cfg Config) error {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Input == "" {
		return errors.New("driver: no input file")
	}
	defaults := NewConfig(cfg.Input)
	if cfg.Output == "" {
		cfg.Output = defaults.Output
	}
	if cfg.AsmFile == "" {
		cfg.AsmFile = defaults.AsmFile
	}
	if cfg.CC == "" {
		cfg.CC = defaults.CC
	}

	src, err := os.ReadFile(cfg.Input)
	if err != nil {
		return err
	}
	log.Debug("read source", "file", cfg.Input, "bytes", len(src))

	asm, err := build(cfg.Input, src, cfg.Target)
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfg.AsmFile, asm, 0o644); err != nil {
		return err
	}
	log.Debug("wrote assembly", "file", cfg.AsmFile, "bytes", len(asm))

	if cfg.EmitOnly {
		return nil
	}

	if err := assemble(cfg, log); err != nil {
		// Best-effort cleanup; the toolchain failure is the error that
		// matters to the caller.
		if !cfg.KeepAsm {
			if rmErr := removeIntermediate(cfg.AsmFile); rmErr != nil {
				log.Warn("could not remove intermediate file", "file", cfg.AsmFile, "err", rmErr)
			}
		}
		return err
	}
	log.Debug("linked executable", "file", cfg.Output)

	if cfg.KeepAsm {
		return nil
	}
	return removeIntermediate(cfg.AsmFile)
}

// build runs the in-process stages: source text to assembly text.
func build(filename string, src []byte, target codegen.Target) ([]byte, error) {
	toks, err := syntax.Tokenize(filename, bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	prog, err := syntax.Parse(toks)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := codegen.Generate(&out, prog, target); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// assemble invokes the external assembler/linker on the intermediate file.
// Any non-empty diagnostic output is treated as a hard compile failure.
func assemble(cfg Config, log *slog.Logger) error {
	cmd := exec.Command(cfg.CC, cfg.AsmFile, "-o", cfg.Output)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Debug("invoking toolchain", "cmd", cfg.CC, "asm", cfg.AsmFile, "out", cfg.Output)
	err := cmd.Run()
	if err != nil || stderr.Len() > 0 {
		return &ToolchainError{Tool: cfg.CC, Output: stderr.String(), Err: err}
	}
	return nil
}

// removeIntermediate deletes the assembly file, tolerating "already absent"
// as success.
func removeIntermediate(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// replaceExt returns path with its extension replaced by ext.
func replaceExt(path, ext string) string {
	return stripExt(path) + ext
}

// stripExt returns path with its extension removed.
func stripExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
