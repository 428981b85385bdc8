package hclog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/signdroid/signdroid/internal/domain/interfaces"
)

func TestLogger_LevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New("signdroid", "info", &buf)

	logger.Debug("hidden at info level")
	logger.Info("signing started", interfaces.F("apk", "app.apk"))
	logger.Error("signing failed", interfaces.F("error", "exit 1"))

	out := buf.String()
	if strings.Contains(out, "hidden at info level") {
		t.Error("debug message should be suppressed at info level")
	}
	if !strings.Contains(out, "signing started") || !strings.Contains(out, "apk=app.apk") {
		t.Errorf("info output missing message or field: %q", out)
	}
	if !strings.Contains(out, "signing failed") {
		t.Errorf("error output missing: %q", out)
	}
}

func TestLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New("signdroid", "chatty", &buf)

	logger.Info("still visible")
	if !strings.Contains(buf.String(), "still visible") {
		t.Errorf("info should log under an unknown level string, got %q", buf.String())
	}
}
