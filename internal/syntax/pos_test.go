package syntax

import "testing"

func TestPosString(t *testing.T) {
	tests := []struct {
		pos  Pos
		want string
	}{
		{NewPos("main.c", 1, 1), "main.c:1:1"},
		{NewPos("main.c", 12, 34), "main.c:12:34"},
		{NewPos("", 3, 7), "3:7"},
	}

	for _, tt := range tests {
		if got := tt.pos.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPosIsValid(t *testing.T) {
	var zero Pos
	if zero.IsValid() {
		t.Error("zero Pos reported valid")
	}
	if !NewPos("f.c", 1, 1).IsValid() {
		t.Error("1:1 reported invalid")
	}
}
