package debug

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func capture(t *testing.T, on bool) *bytes.Buffer {
	t.Helper()
	wasEnabled := Enabled()
	var buf bytes.Buffer
	SetEnabled(on)
	SetOutput(&buf)
	t.Cleanup(func() { SetEnabled(wasEnabled) })
	return &buf
}

func TestLogDisabledWritesNothing(t *testing.T) {
	buf := capture(t, false)
	Log("hidden %d", 1)
	LogTiming("x", time.Millisecond)
	LogEnterExit("y")()
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

func TestLogEnabled(t *testing.T) {
	buf := capture(t, true)
	Log("moved %s", "Card-1")
	out := buf.String()
	if !strings.HasPrefix(out, prefix) {
		t.Errorf("missing prefix: %q", out)
	}
	if !strings.Contains(out, "moved Card-1") {
		t.Errorf("missing message: %q", out)
	}
}

func TestLogEnterExit(t *testing.T) {
	buf := capture(t, true)
	LogEnterExit("Frontend")()
	out := buf.String()
	if !strings.Contains(out, "-> Frontend") || !strings.Contains(out, "<- Frontend") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestParseFlag(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"False", false},
		{" 0 ", false},
		{"1", true},
		{"true", true},
		{"yes", true},
	}
	for _, tt := range tests {
		if got := ParseFlag(tt.val); got != tt.want {
			t.Errorf("ParseFlag(%q) = %v, want %v", tt.val, got, tt.want)
		}
	}
}
