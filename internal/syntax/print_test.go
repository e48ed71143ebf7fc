package syntax

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestFprint(t *testing.T) {
	prog := parseSrc(t, "int main() { return 1 + 2; }")

	var buf bytes.Buffer
	Fprint(&buf, prog)
	out := buf.String()

	for _, want := range []string{"Program", "FuncDecl", "Name: main", "ReturnStmt", "Operation +", "IntLit 1", "IntLit 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFprintJSON(t *testing.T) {
	prog := parseSrc(t, "int main() { return -5; }")

	var buf bytes.Buffer
	if err := FprintJSON(&buf, prog); err != nil {
		t.Fatalf("FprintJSON: %v", err)
	}

	// Output must round-trip as valid JSON with the expected spine.
	var root map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if root["type"] != "Program" {
		t.Errorf("root type = %v, want Program", root["type"])
	}
	fn, ok := root["func"].(map[string]interface{})
	if !ok {
		t.Fatalf("func = %T, want object", root["func"])
	}
	if fn["name"] != "main" {
		t.Errorf("func name = %v, want main", fn["name"])
	}
}

func TestStringCompact(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"5", "5"},
		{"-5", "(-5)"},
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1)", "1"}, // parens are transparent in the compact form
	}

	for _, tt := range tests {
		prog := parseSrc(t, "int main() { return "+tt.src+"; }")
		if got := String(prog.Func.Body.Result); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
