package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestVerboseToggle(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Debug("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("expected no output when verbose disabled, got %q", buf.String())
	}

	SetVerbose(true)
	defer SetVerbose(false)

	Debug("shown %d", 2)
	Info("info line")
	Warn("warn line")
	Section("Ranking")

	out := buf.String()
	for _, want := range []string{"[DEBUG] shown 2", "[INFO] info line", "[WARN] warn line", "=== Ranking ==="} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestIsVerbose(t *testing.T) {
	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected IsVerbose true")
	}
	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected IsVerbose false")
	}
}
