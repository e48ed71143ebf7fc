// Package main implements the mcc compiler entry point.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	slogmulti "github.com/samber/slog-multi"

	"github.com/mcc-lang/mcc/internal/driver"
	"github.com/mcc-lang/mcc/internal/syntax"
)

// Compiler flags
var (
	emitTokens = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST    = flag.Bool("emit-ast", false, "Output AST")
	astFormat  = flag.String("ast-format", "text", "AST output format (text or json)")
	emitAsm    = flag.Bool("emit-asm", false, "Stop after writing the assembly file")
	emitAsmS   = flag.Bool("S", false, "Alias for -emit-asm")
	output     = flag.String("o", "", "Output file")
	keepAsm    = flag.Bool("keep-asm", false, "Keep the intermediate assembly file")
	ccCmd      = flag.String("cc", "", "Assembler/linker command (default \"cc\")")
	configPath = flag.String("config", "", "Config file (TOML)")
	verbose    = flag.Bool("v", false, "Verbose logging to stderr")
	logFile    = flag.String("log-file", "", "Append JSON logs to file")
	doctor     = flag.Bool("doctor", false, "Check toolchain")
	version    = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mcc %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: mcc [options] <file.c>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("mcc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	if *doctor {
		os.Exit(runDoctor())
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: mcc [options] <file.c>")
		os.Exit(1)
	}

	filename := args[0]

	if *emitTokens {
		os.Exit(runEmitTokens(filename))
	}

	if *emitAST {
		os.Exit(runEmitAST(filename))
	}

	os.Exit(runCompile(filename))
}

// runCompile drives a full compilation of filename.
func runCompile(filename string) int {
	logger, closeLog, err := buildLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()

	cfg := driver.NewConfig(filename)
	cfg.Logger = logger
	cfg.EmitOnly = *emitAsm || *emitAsmS
	cfg.KeepAsm = *keepAsm

	if *configPath != "" {
		fc, err := driver.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		fc.Apply(&cfg)
	}

	// Command-line flags win over the config file.
	if *ccCmd != "" {
		cfg.CC = *ccCmd
	}
	if *output != "" {
		cfg.Output = *output
	}

	if err := driver.Compile(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// buildLogger assembles the slog fanout: a text handler on stderr when -v
// is set, plus a JSON handler appending to -log-file when given.
func buildLogger() (*slog.Logger, func(), error) {
	var handlers []slog.Handler

	if *verbose {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	closeLog := func() {}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		closeLog = func() { f.Close() }
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	if len(handlers) == 0 {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), closeLog, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeLog, nil
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	s, err := syntax.NewScanner(filename, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	// Print header
	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		s.Next()
		tok := s.Token()

		fmt.Printf("%-20s %-12s %q\n", tok.Pos.String(), tok.Kind.String(), tok.Text)

		if tok.Kind.IsEOF() {
			break
		}
	}

	if err := s.Err(); err != nil {
		fmt.Println()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	toks, err := syntax.Tokenize(filename, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	prog, err := syntax.Parse(toks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, prog); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	default:
		syntax.Fprint(os.Stdout, prog)
	}
	return 0
}

// runDoctor checks the toolchain and returns an exit code.
func runDoctor() int {
	fmt.Println("mcc Toolchain Doctor")
	fmt.Println("====================")
	fmt.Println()

	allOk := true

	// Check Go version
	goVersion := runtime.Version()
	fmt.Printf("Go:  %s", goVersion)
	if checkGoVersion(goVersion) {
		fmt.Println(" ✓")
	} else {
		fmt.Println(" ✗ (need 1.21+)")
		allOk = false
	}

	// Check cc (required for assembling and linking)
	cc := *ccCmd
	if cc == "" {
		cc = "cc"
	}
	ccVersion, ccOk := checkTool(cc, "--version")
	fmt.Printf("%s:  %s", cc, ccVersion)
	if ccOk {
		fmt.Println(" ✓")
	} else {
		fmt.Println(" ✗ (not found)")
		allOk = false
	}

	fmt.Println()
	if allOk {
		fmt.Println("All required tools available!")
		return 0
	}

	fmt.Println("Some required tools are missing.")
	return 1
}

// checkGoVersion returns true if the Go version is 1.21 or higher.
func checkGoVersion(v string) bool {
	if !strings.HasPrefix(v, "go") {
		return false
	}
	v = strings.TrimPrefix(v, "go")
	parts := strings.Split(v, ".")
	if len(parts) < 2 {
		return false
	}

	major := parts[0]
	minor := parts[1]

	if major == "1" {
		var minorNum int
		fmt.Sscanf(minor, "%d", &minorNum)
		return minorNum >= 21
	}

	return major >= "2"
}

// checkTool runs a tool with the given arguments and returns the first line of output.
func checkTool(name string, args ...string) (string, bool) {
	cmd := exec.Command(name, args...)
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}

	lines := strings.Split(string(out), "\n")
	if len(lines) > 0 {
		line := strings.TrimSpace(lines[0])
		if len(line) > 60 {
			line = line[:57] + "..."
		}
		return line, true
	}
	return "", false
}
